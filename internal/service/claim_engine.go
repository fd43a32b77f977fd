package service

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/sirupsen/logrus"

	"github.com/transitdesk/lostfound-backend/internal/domain/valueobject"
	"github.com/transitdesk/lostfound-backend/internal/logger"
	"github.com/transitdesk/lostfound-backend/internal/matching"
	"github.com/transitdesk/lostfound-backend/internal/models"
	"github.com/transitdesk/lostfound-backend/internal/pkg/apperror"
	"github.com/transitdesk/lostfound-backend/internal/repository"
)

// ClaimEngine сопоставляет новое заявление со всеми подходящими записями противоположного типа
// и создаёт заявки для совпадений уровня Medium и выше.
type ClaimEngine struct {
	lost     LostItemStore
	found    FoundItemStore
	claims   ClaimStore
	notifier Notifier
}

// NewClaimEngine создаёт движок сопоставления.
func NewClaimEngine(lost LostItemStore, found FoundItemStore, claims ClaimStore, notifier Notifier) *ClaimEngine {
	return &ClaimEngine{lost: lost, found: found, claims: claims, notifier: notifier}
}

// OnLostReportCreated сверяет заявление о потере с находками в статусе Stored.
func (e *ClaimEngine) OnLostReportCreated(ctx context.Context, lost *models.LostItem) ([]models.Claim, error) {
	if !slices.Contains(models.MatchableLostStatuses, lost.Status) {
		return []models.Claim{}, nil
	}

	candidates, err := e.found.ListByStatus(ctx, models.MatchableFoundStatuses, models.Page{})
	if err != nil {
		return nil, apperror.Persistence(err, "failed to load found items for matching")
	}

	created := []models.Claim{}
	for i := range candidates {
		if claim, ok := e.link(ctx, lost, &candidates[i]); ok {
			created = append(created, *claim)
		}
	}
	return created, nil
}

// OnFoundReportCreated сверяет находку с заявлениями в статусах Pending и Under Review.
func (e *ClaimEngine) OnFoundReportCreated(ctx context.Context, found *models.FoundItem) ([]models.Claim, error) {
	if !slices.Contains(models.MatchableFoundStatuses, found.Status) {
		return []models.Claim{}, nil
	}

	candidates, err := e.lost.ListByStatus(ctx, models.MatchableLostStatuses, models.Page{})
	if err != nil {
		return nil, apperror.Persistence(err, "failed to load lost items for matching")
	}

	created := []models.Claim{}
	for i := range candidates {
		if claim, ok := e.link(ctx, &candidates[i], found); ok {
			created = append(created, *claim)
		}
	}
	return created, nil
}

// Rescan повторно запускает сопоставление для существующего заявления по его номеру.
func (e *ClaimEngine) Rescan(ctx context.Context, ref string) ([]models.Claim, error) {
	lost, err := e.lost.GetByReference(ctx, ref)
	if err == nil {
		return e.OnLostReportCreated(ctx, lost)
	}
	if !errors.Is(err, repository.ErrLostItemNotFound) {
		return nil, apperror.Persistence(err, "failed to load lost item")
	}

	found, err := e.found.GetByReference(ctx, ref)
	if err == nil {
		return e.OnFoundReportCreated(ctx, found)
	}
	if errors.Is(err, repository.ErrFoundItemNotFound) {
		return nil, apperror.NotFound(fmt.Sprintf("report %s not found", ref))
	}
	return nil, apperror.Persistence(err, "failed to load found item")
}

// link оценивает пару и создаёт заявку, если её ещё нет.
// Ошибка по одному кандидату логируется и не прерывает обход.
func (e *ClaimEngine) link(ctx context.Context, lost *models.LostItem, found *models.FoundItem) (*models.Claim, bool) {
	result := matching.Score(lost, found)
	if !result.Qualifies() {
		return nil, false
	}

	log := logger.Log.WithFields(logrus.Fields{
		"lost_ref":   lost.ReferenceNumber,
		"found_ref":  found.ReferenceNumber,
		"confidence": result.Confidence,
		"score":      result.Score,
	})

	claim := &models.Claim{
		LostReference:   lost.ReferenceNumber,
		FoundReference:  found.ReferenceNumber,
		Description:     lost.Description,
		ContactInfo:     lost.ContactInfo,
		MatchConfidence: result.Confidence,
		MatchReason:     result.Reason,
		OwnerID:         lost.OwnerID,
		Status:          string(valueobject.ClaimStatusUnderReview),
	}

	created, err := e.claims.CreateIfAbsent(ctx, claim)
	if err != nil {
		log.WithError(err).Error("claim engine: failed to create claim")
		return nil, false
	}
	if !created {
		log.Debug("claim engine: pair already linked")
		return nil, false
	}

	ref := lost.ReferenceNumber
	notification := &models.Notification{
		UserID:    lost.OwnerID,
		Title:     TitleMatchFound,
		Message:   fmt.Sprintf("A found item may match your lost item report %s (%s confidence).", lost.ReferenceNumber, result.Confidence),
		Reference: &ref,
	}
	if err := e.notifier.Notify(ctx, notification); err != nil {
		log.WithError(err).Warn("claim engine: failed to write match notification")
	}

	log.Info("claim engine: claim created")
	return claim, true
}
