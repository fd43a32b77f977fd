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

// ErrLostItemNotFound возвращается, когда заявление о потере не найдено.
var ErrLostItemNotFound = errors.New("lost item not found")

// LostItemRepository хранит заявления о потерянных вещах.
type LostItemRepository struct {
	db        *sqlx.DB
	reference ReferenceGenerator
	now       func() time.Time
}

// NewLostItemRepository создаёт экземпляр репозитория.
func NewLostItemRepository(db *sqlx.DB) *LostItemRepository {
	return &LostItemRepository{db: db, reference: RandomReference, now: time.Now}
}

// WithReferenceGenerator подменяет генератор номеров.
func (r *LostItemRepository) WithReferenceGenerator(gen ReferenceGenerator) *LostItemRepository {
	r.reference = gen
	return r
}

// Create сохраняет заявление и присваивает ему уникальный номер.
func (r *LostItemRepository) Create(ctx context.Context, item *models.LostItem) error {
	now := r.now().UTC()
	if item.Status == "" {
		item.Status = models.LostStatusPending
	}

	query := `
		INSERT INTO lost_items (
			reference_number, description, type, color, brand, unique_identifiers,
			date_lost, time_lost, route, station, contact_info, image, owner_id,
			status, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $15)
		ON CONFLICT (reference_number) DO NOTHING
		RETURNING id
	`

	ref, err := insertWithReference(ctx, r.reference, models.LostReferencePrefix, now, func(ref string) error {
		return r.db.QueryRowxContext(ctx, query,
			ref, item.Description, item.Type, item.Color, item.Brand, item.UniqueIdentifiers,
			item.Date, item.Time, item.Route, item.Station, item.ContactInfo, item.Image, item.OwnerID,
			item.Status, now,
		).Scan(&item.ID)
	})
	if err != nil {
		return fmt.Errorf("lost item repository: create %w", err)
	}

	item.ReferenceNumber = ref
	item.CreatedAt = now
	item.UpdatedAt = now
	return nil
}

// GetByReference возвращает заявление по номеру.
func (r *LostItemRepository) GetByReference(ctx context.Context, ref string) (*models.LostItem, error) {
	return common.GetByField[models.LostItem](ctx, r.db, "lost_items", "reference_number", ref, ErrLostItemNotFound)
}

// ListByStatus возвращает заявления с указанными статусами в порядке поступления.
func (r *LostItemRepository) ListByStatus(ctx context.Context, statuses []string, page models.Page) ([]models.LostItem, error) {
	query := `SELECT * FROM lost_items`
	cond, args := common.StatusFilter(statuses, 0)
	if cond != "" {
		query += " WHERE " + cond
	}
	query += " ORDER BY id ASC"
	query, args = common.Paginate(query, args, page.Limit, page.Offset)

	items := []models.LostItem{}
	if err := r.db.SelectContext(ctx, &items, query, args...); err != nil {
		return nil, fmt.Errorf("lost item repository: list %w", err)
	}
	return items, nil
}
