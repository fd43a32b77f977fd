package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/transitdesk/lostfound-backend/internal/models"
	"github.com/transitdesk/lostfound-backend/internal/pkg/apperror"
	"github.com/transitdesk/lostfound-backend/internal/repository"
)

// Заголовки уведомлений.
const (
	TitleMatchFound     = "Potential Match Found"
	TitleClaimRequested = "Claim Requested"
	TitleClaimApproved  = "Claim Approved"
	TitleClaimRejected  = "Claim Rejected"
)

// NotificationService содержит бизнес-логику работы с уведомлениями.
type NotificationService struct {
	repo NotificationRepository
}

// NewNotificationService создаёт новый сервис уведомлений.
func NewNotificationService(repo NotificationRepository) *NotificationService {
	return &NotificationService{repo: repo}
}

// Notify сохраняет уведомление.
func (s *NotificationService) Notify(ctx context.Context, notification *models.Notification) error {
	notification.IsRead = false
	if err := s.repo.Create(ctx, notification); err != nil {
		return apperror.Persistence(err, "failed to save notification")
	}
	return nil
}

// maxNotificationPage ограничивает выдачу журнала, в том числе без limit.
const maxNotificationPage = 100

// ListNotifications возвращает уведомления вызывающего; анонимный вызов видит весь журнал.
func (s *NotificationService) ListNotifications(ctx context.Context, identity models.Identity, unreadOnly bool, page models.Page) ([]models.Notification, error) {
	if page.Limit <= 0 || page.Limit > maxNotificationPage {
		page.Limit = maxNotificationPage
	}
	if page.Offset < 0 {
		page.Offset = 0
	}

	notifications, err := s.repo.List(ctx, identity.UserRef(), unreadOnly, page)
	if err != nil {
		return nil, apperror.Persistence(err, "failed to list notifications")
	}
	return notifications, nil
}

// MarkAsRead отмечает уведомление как прочитанное.
func (s *NotificationService) MarkAsRead(ctx context.Context, identity models.Identity, id uuid.UUID) error {
	notification, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return translateNotificationError(err)
	}

	if notification.UserID != nil && identity.UserID != "" && *notification.UserID != identity.UserID {
		return apperror.ErrForbidden
	}

	if err := s.repo.MarkAsRead(ctx, id); err != nil {
		return translateNotificationError(err)
	}
	return nil
}

// MarkAllAsRead отмечает все уведомления пользователя как прочитанные.
func (s *NotificationService) MarkAllAsRead(ctx context.Context, identity models.Identity) error {
	if identity.UserID == "" {
		return apperror.ErrUnauthorized
	}
	if err := s.repo.MarkAllAsRead(ctx, identity.UserID); err != nil {
		return apperror.Persistence(err, "failed to mark notifications as read")
	}
	return nil
}

// CountUnread возвращает количество непрочитанных уведомлений.
func (s *NotificationService) CountUnread(ctx context.Context, identity models.Identity) (int, error) {
	count, err := s.repo.CountUnread(ctx, identity.UserRef())
	if err != nil {
		return 0, apperror.Persistence(err, "failed to count notifications")
	}
	return count, nil
}

func translateNotificationError(err error) error {
	if errors.Is(err, repository.ErrNotificationNotFound) {
		return apperror.ErrNotificationNotFound
	}
	return apperror.Persistence(err, "notification storage failure")
}
