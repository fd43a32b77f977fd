package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/transitdesk/lostfound-backend/internal/dto"
	"github.com/transitdesk/lostfound-backend/internal/http/handlers/common"
	"github.com/transitdesk/lostfound-backend/internal/http/response"
	"github.com/transitdesk/lostfound-backend/internal/service"
)

// AuthHandler выдаёт токены персоналу депо.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler создаёт новый хэндлер.
func NewAuthHandler(auth *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// StaffLogin обрабатывает POST /auth/staff.
func (h *AuthHandler) StaffLogin(c *gin.Context) {
	var req dto.StaffLoginRequest
	if err := common.BindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}

	token, err := h.auth.StaffLogin(c.Request.Context(), req.StaffID, req.Passcode)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, token)
}
