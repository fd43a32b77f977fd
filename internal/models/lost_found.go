package models

import (
	"time"

	"github.com/google/uuid"
)

// LostItem заявление пассажира о потерянной вещи.
type LostItem struct {
	ID                int64     `db:"id" json:"-"`
	ReferenceNumber   string    `db:"reference_number" json:"referenceNumber"`
	Description       string    `db:"description" json:"description"`
	Type              string    `db:"type" json:"type"`
	Color             *string   `db:"color" json:"color,omitempty"`
	Brand             *string   `db:"brand" json:"brand,omitempty"`
	UniqueIdentifiers *string   `db:"unique_identifiers" json:"uniqueIdentifiers,omitempty"`
	Date              *string   `db:"date_lost" json:"date,omitempty"`
	Time              *string   `db:"time_lost" json:"time,omitempty"`
	Route             string    `db:"route" json:"route"`
	Station           string    `db:"station" json:"station"`
	ContactInfo       string    `db:"contact_info" json:"contactInfo"`
	Image             *string   `db:"image" json:"image,omitempty"`
	OwnerID           *string   `db:"owner_id" json:"ownerId,omitempty"`
	Status            string    `db:"status" json:"status"`
	CreatedAt         time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt         time.Time `db:"updated_at" json:"updatedAt"`
}

// FoundItem запись о вещи, найденной водителем или персоналом.
type FoundItem struct {
	ID              int64     `db:"id" json:"-"`
	ReferenceNumber string    `db:"reference_number" json:"referenceNumber"`
	Description     string    `db:"description" json:"description"`
	Type            string    `db:"type" json:"type"`
	Color           *string   `db:"color" json:"color,omitempty"`
	VehicleNumber   string    `db:"vehicle_number" json:"vehicleNumber"`
	StorageLocation string    `db:"storage_location" json:"storageLocation"`
	DateFound       *string   `db:"date_found" json:"dateFound,omitempty"`
	TimeFound       *string   `db:"time_found" json:"timeFound,omitempty"`
	Image           *string   `db:"image" json:"image,omitempty"`
	ReporterID      *string   `db:"reporter_id" json:"reporterId,omitempty"`
	Status          string    `db:"status" json:"status"`
	CreatedAt       time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt       time.Time `db:"updated_at" json:"updatedAt"`
}

// Claim связывает заявление о потере с находкой и несёт статус согласования.
type Claim struct {
	ID              uuid.UUID  `db:"id" json:"id"`
	LostReference   string     `db:"lost_reference" json:"lostItemRef"`
	FoundReference  string     `db:"found_reference" json:"foundItemRef"`
	Description     string     `db:"description" json:"description"`
	ContactInfo     string     `db:"contact_info" json:"contactInfo"`
	MatchConfidence string     `db:"match_confidence" json:"matchConfidence"`
	MatchReason     string     `db:"match_reason" json:"matchReason"`
	OwnerID         *string    `db:"owner_id" json:"ownerId,omitempty"`
	Status          string     `db:"status" json:"status"`
	RequestedBy     *string    `db:"requested_by" json:"requestedBy,omitempty"`
	ResolvedBy      *string    `db:"resolved_by" json:"resolvedBy,omitempty"`
	ResolvedAt      *time.Time `db:"resolved_at" json:"resolvedAt,omitempty"`
	SubmittedAt     time.Time  `db:"submitted_at" json:"submittedAt"`
	UpdatedAt       time.Time  `db:"updated_at" json:"updatedAt"`
}

// Identity описывает вызывающую сторону. Пустой UserID означает анонимный вызов.
type Identity struct {
	UserID string
	Role   string
}

// UserRef возвращает идентификатор пользователя или nil для анонимного вызова.
func (i Identity) UserRef() *string {
	if i.UserID == "" {
		return nil
	}
	id := i.UserID
	return &id
}

// IsStaff сообщает, действует ли вызывающий от имени персонала.
func (i Identity) IsStaff() bool {
	return i.Role == RoleStaff
}

// Page задаёт необязательную пагинацию. Limit = 0 означает «без ограничения».
type Page struct {
	Limit  int
	Offset int
}
