package models

import (
	"time"

	"github.com/google/uuid"
)

// Notification уведомление, которое клиент забирает опросом.
type Notification struct {
	ID        uuid.UUID `db:"id" json:"id"`
	UserID    *string   `db:"user_id" json:"userId,omitempty"`
	Title     string    `db:"title" json:"title"`
	Message   string    `db:"message" json:"message"`
	Reference *string   `db:"reference" json:"reference,omitempty"`
	IsRead    bool      `db:"is_read" json:"read"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}
