package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/transitdesk/lostfound-backend/internal/domain/valueobject"
	"github.com/transitdesk/lostfound-backend/internal/logger"
	"github.com/transitdesk/lostfound-backend/internal/models"
	"github.com/transitdesk/lostfound-backend/internal/pkg/apperror"
	"github.com/transitdesk/lostfound-backend/internal/repository"
	"github.com/transitdesk/lostfound-backend/internal/repository/common"
)

// ClaimService управляет жизненным циклом заявки.
type ClaimService struct {
	claims   ClaimStore
	lost     LostItemStore
	found    FoundItemStore
	notifier Notifier
}

// NewClaimService создаёт сервис заявок.
func NewClaimService(claims ClaimStore, lost LostItemStore, found FoundItemStore, notifier Notifier) *ClaimService {
	return &ClaimService{claims: claims, lost: lost, found: found, notifier: notifier}
}

// GetClaim возвращает заявку по идентификатору.
func (s *ClaimService) GetClaim(ctx context.Context, id uuid.UUID) (*models.Claim, error) {
	claim, err := s.claims.GetByID(ctx, id)
	if err != nil {
		return nil, translateClaimError(err)
	}
	return claim, nil
}

// ListClaims возвращает заявки с необязательным фильтром по статусу.
func (s *ClaimService) ListClaims(ctx context.Context, statuses []string, page models.Page) ([]models.Claim, error) {
	for _, status := range statuses {
		if _, err := valueobject.NewClaimStatus(status); err != nil {
			return nil, err
		}
	}

	claims, err := s.claims.List(ctx, statuses, page)
	if err != nil {
		return nil, apperror.Persistence(err, "failed to list claims")
	}
	return claims, nil
}

// ClaimsForReport возвращает заявки, где участвует заявление с данным номером.
func (s *ClaimService) ClaimsForReport(ctx context.Context, ref string) ([]models.Claim, error) {
	claims, err := s.claims.ListByReference(ctx, ref)
	if err != nil {
		return nil, apperror.Persistence(err, "failed to list claims for report")
	}
	return claims, nil
}

// RequestClaim переводит заявку Under Review → Claim Requested по действию пассажира.
// Чужую заявку запросить нельзя, если известны и вызывающий, и владелец.
func (s *ClaimService) RequestClaim(ctx context.Context, identity models.Identity, id uuid.UUID) (*models.Claim, error) {
	claim, err := s.claims.GetByID(ctx, id)
	if err != nil {
		return nil, translateClaimError(err)
	}
	if identity.UserID != "" && claim.OwnerID != nil && *claim.OwnerID != identity.UserID {
		return nil, apperror.ErrForbidden
	}
	return s.transition(ctx, identity, claim, valueobject.ClaimStatusClaimRequested)
}

// ResolveClaim применяет решение персонала к заявке в статусе Claim Requested.
// Одобрение переводит оба связанных заявления в Claimed.
func (s *ClaimService) ResolveClaim(ctx context.Context, identity models.Identity, id uuid.UUID, decision valueobject.ClaimDecision) (*models.Claim, error) {
	target, err := decision.Target()
	if err != nil {
		return nil, err
	}
	claim, err := s.claims.GetByID(ctx, id)
	if err != nil {
		return nil, translateClaimError(err)
	}
	return s.transition(ctx, identity, claim, target)
}

func (s *ClaimService) transition(ctx context.Context, identity models.Identity, claim *models.Claim, target valueobject.ClaimStatus) (*models.Claim, error) {
	id := claim.ID
	current := valueobject.ClaimStatus(claim.Status)
	if !current.CanTransitionTo(target) {
		return nil, apperror.InvalidTransition(string(current), string(target))
	}

	if target != valueobject.ClaimStatusRejected {
		if err := s.ensureReportsOpen(ctx, claim, target); err != nil {
			return nil, err
		}
	}

	updated, err := s.claims.Transition(ctx, repository.ClaimTransition{
		ID:             id,
		From:           string(current),
		To:             string(target),
		Actor:          identity.UserRef(),
		Resolution:     target != valueobject.ClaimStatusClaimRequested,
		CascadeReports: target == valueobject.ClaimStatusApproved,
	})
	if errors.Is(err, common.ErrStaleState) {
		// Заявку успели изменить между чтением и обновлением.
		latest, getErr := s.claims.GetByID(ctx, id)
		if getErr != nil {
			return nil, translateClaimError(getErr)
		}
		return nil, apperror.InvalidTransition(latest.Status, string(target))
	}
	if errors.Is(err, repository.ErrReportClaimed) {
		return nil, apperror.ReportClaimed(string(current), string(target))
	}
	if err != nil {
		return nil, apperror.Persistence(err, "failed to update claim")
	}

	logger.Log.WithFields(logrus.Fields{
		"claim_id": id,
		"from":     current,
		"to":       target,
		"actor":    identity.UserID,
	}).Info("claim service: status changed")

	s.notifyTransition(ctx, updated, target)
	return updated, nil
}

// ensureReportsOpen проверяет, что ни заявление, ни находка ещё не выданы по другой заявке.
func (s *ClaimService) ensureReportsOpen(ctx context.Context, claim *models.Claim, target valueobject.ClaimStatus) error {
	lost, err := s.lost.GetByReference(ctx, claim.LostReference)
	if err != nil {
		if errors.Is(err, repository.ErrLostItemNotFound) {
			return apperror.ErrLostItemNotFound
		}
		return apperror.Persistence(err, "failed to load lost item report")
	}
	found, err := s.found.GetByReference(ctx, claim.FoundReference)
	if err != nil {
		if errors.Is(err, repository.ErrFoundItemNotFound) {
			return apperror.ErrFoundItemNotFound
		}
		return apperror.Persistence(err, "failed to load found item report")
	}

	if lost.Status == models.LostStatusClaimed || found.Status != models.FoundStatusStored {
		return apperror.ReportClaimed(claim.Status, string(target))
	}
	return nil
}

// notifyTransition пишет уведомление о смене статуса; ошибка не откатывает переход.
func (s *ClaimService) notifyTransition(ctx context.Context, claim *models.Claim, status valueobject.ClaimStatus) {
	var title, message string
	switch status {
	case valueobject.ClaimStatusClaimRequested:
		title = TitleClaimRequested
		message = fmt.Sprintf("Your claim for lost item %s was sent to staff for review.", claim.LostReference)
	case valueobject.ClaimStatusApproved:
		title = TitleClaimApproved
		message = fmt.Sprintf("Your claim for lost item %s was approved. The item %s is ready to collect.", claim.LostReference, claim.FoundReference)
	case valueobject.ClaimStatusRejected:
		title = TitleClaimRejected
		message = fmt.Sprintf("Your claim for lost item %s was rejected.", claim.LostReference)
	default:
		return
	}

	ref := claim.LostReference
	notification := &models.Notification{
		UserID:    claim.OwnerID,
		Title:     title,
		Message:   message,
		Reference: &ref,
	}
	if err := s.notifier.Notify(ctx, notification); err != nil {
		logger.Log.WithError(err).WithField("claim_id", claim.ID).Warn("claim service: failed to write notification")
	}
}

func translateClaimError(err error) error {
	if errors.Is(err, repository.ErrClaimNotFound) {
		return apperror.ErrClaimNotFound
	}
	return apperror.Persistence(err, "claim storage failure")
}
