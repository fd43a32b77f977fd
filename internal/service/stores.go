package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/transitdesk/lostfound-backend/internal/models"
	"github.com/transitdesk/lostfound-backend/internal/repository"
)

// LostItemStore описывает хранилище заявлений о потере.
type LostItemStore interface {
	Create(ctx context.Context, item *models.LostItem) error
	GetByReference(ctx context.Context, ref string) (*models.LostItem, error)
	ListByStatus(ctx context.Context, statuses []string, page models.Page) ([]models.LostItem, error)
}

// FoundItemStore описывает хранилище находок.
type FoundItemStore interface {
	Create(ctx context.Context, item *models.FoundItem) error
	GetByReference(ctx context.Context, ref string) (*models.FoundItem, error)
	ListByStatus(ctx context.Context, statuses []string, page models.Page) ([]models.FoundItem, error)
}

// ClaimStore описывает хранилище заявок.
type ClaimStore interface {
	CreateIfAbsent(ctx context.Context, claim *models.Claim) (bool, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Claim, error)
	List(ctx context.Context, statuses []string, page models.Page) ([]models.Claim, error)
	ListByReference(ctx context.Context, ref string) ([]models.Claim, error)
	Transition(ctx context.Context, t repository.ClaimTransition) (*models.Claim, error)
}

// NotificationRepository описывает взаимодействие сервиса с хранилищем уведомлений.
type NotificationRepository interface {
	Create(ctx context.Context, notification *models.Notification) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Notification, error)
	List(ctx context.Context, userID *string, unreadOnly bool, page models.Page) ([]models.Notification, error)
	MarkAsRead(ctx context.Context, id uuid.UUID) error
	MarkAllAsRead(ctx context.Context, userID string) error
	CountUnread(ctx context.Context, userID *string) (int, error)
}

// Notifier пишет уведомление в журнал.
type Notifier interface {
	Notify(ctx context.Context, notification *models.Notification) error
}
