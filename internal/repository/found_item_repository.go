package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/transitdesk/lostfound-backend/internal/models"
	"github.com/transitdesk/lostfound-backend/internal/repository/common"
)

// ErrFoundItemNotFound возвращается, когда находка не найдена.
var ErrFoundItemNotFound = errors.New("found item not found")

// FoundItemRepository хранит записи о найденных вещах.
type FoundItemRepository struct {
	db        *sqlx.DB
	reference ReferenceGenerator
	now       func() time.Time
}

// NewFoundItemRepository создаёт экземпляр репозитория.
func NewFoundItemRepository(db *sqlx.DB) *FoundItemRepository {
	return &FoundItemRepository{db: db, reference: RandomReference, now: time.Now}
}

// WithReferenceGenerator подменяет генератор номеров.
func (r *FoundItemRepository) WithReferenceGenerator(gen ReferenceGenerator) *FoundItemRepository {
	r.reference = gen
	return r
}

// Create сохраняет находку и присваивает ей уникальный номер.
func (r *FoundItemRepository) Create(ctx context.Context, item *models.FoundItem) error {
	now := r.now().UTC()
	if item.Status == "" {
		item.Status = models.FoundStatusStored
	}

	query := `
		INSERT INTO found_items (
			reference_number, description, type, color, vehicle_number, storage_location,
			date_found, time_found, image, reporter_id, status, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $12)
		ON CONFLICT (reference_number) DO NOTHING
		RETURNING id
	`

	ref, err := insertWithReference(ctx, r.reference, models.FoundReferencePrefix, now, func(ref string) error {
		return r.db.QueryRowxContext(ctx, query,
			ref, item.Description, item.Type, item.Color, item.VehicleNumber, item.StorageLocation,
			item.DateFound, item.TimeFound, item.Image, item.ReporterID, item.Status, now,
		).Scan(&item.ID)
	})
	if err != nil {
		return fmt.Errorf("found item repository: create %w", err)
	}

	item.ReferenceNumber = ref
	item.CreatedAt = now
	item.UpdatedAt = now
	return nil
}

// GetByReference возвращает находку по номеру.
func (r *FoundItemRepository) GetByReference(ctx context.Context, ref string) (*models.FoundItem, error) {
	return common.GetByField[models.FoundItem](ctx, r.db, "found_items", "reference_number", ref, ErrFoundItemNotFound)
}

// ListByStatus возвращает находки с указанными статусами в порядке поступления.
func (r *FoundItemRepository) ListByStatus(ctx context.Context, statuses []string, page models.Page) ([]models.FoundItem, error) {
	query := `SELECT * FROM found_items`
	cond, args := common.StatusFilter(statuses, 0)
	if cond != "" {
		query += " WHERE " + cond
	}
	query += " ORDER BY id ASC"
	query, args = common.Paginate(query, args, page.Limit, page.Offset)

	items := []models.FoundItem{}
	if err := r.db.SelectContext(ctx, &items, query, args...); err != nil {
		return nil, fmt.Errorf("found item repository: list %w", err)
	}
	return items, nil
}
