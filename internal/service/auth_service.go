package service

import (
	"context"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/transitdesk/lostfound-backend/internal/models"
	"github.com/transitdesk/lostfound-backend/internal/pkg/apperror"
)

// StaffToken выданный токен персонала.
type StaffToken struct {
	AccessToken string    `json:"accessToken"`
	ExpiresAt   time.Time `json:"expiresAt"`
	Role        string    `json:"role"`
}

// AuthService выдаёт токены персоналу по общему коду доступа депо.
type AuthService struct {
	tokens       *TokenManager
	passcodeHash []byte
}

// NewAuthService создаёт сервис. Пустой хэш отключает вход персонала.
func NewAuthService(tokens *TokenManager, passcodeHash string) *AuthService {
	return &AuthService{tokens: tokens, passcodeHash: []byte(passcodeHash)}
}

// StaffLogin проверяет код доступа и выпускает токен с ролью staff.
func (s *AuthService) StaffLogin(ctx context.Context, staffID, passcode string) (*StaffToken, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	staffID = strings.TrimSpace(staffID)
	if staffID == "" {
		return nil, apperror.Validation("staffId", "staffId is required")
	}
	if len(s.passcodeHash) == 0 {
		return nil, apperror.New(apperror.ErrCodeForbidden, "staff login is disabled")
	}
	if err := bcrypt.CompareHashAndPassword(s.passcodeHash, []byte(passcode)); err != nil {
		return nil, apperror.ErrInvalidCredentials
	}

	token, exp, err := s.tokens.Issue(staffID, models.RoleStaff)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeInternal, "failed to issue token")
	}
	return &StaffToken{AccessToken: token, ExpiresAt: exp, Role: models.RoleStaff}, nil
}
