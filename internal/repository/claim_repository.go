package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/transitdesk/lostfound-backend/internal/models"
	"github.com/transitdesk/lostfound-backend/internal/repository/common"
)

var (
	// ErrClaimNotFound возвращается, когда заявка не найдена.
	ErrClaimNotFound = errors.New("claim not found")
	// ErrReportClaimed возвращается, если связанное заявление или находка уже выданы по другой заявке.
	ErrReportClaimed = errors.New("linked report already claimed")
)

// ClaimTransition описывает атомарную смену статуса заявки.
type ClaimTransition struct {
	ID    uuid.UUID
	From  string
	To    string
	Actor *string
	// Resolution отмечает решение персонала: заполняются resolved_by и resolved_at.
	Resolution bool
	// CascadeReports переводит связанные заявление и находку в Claimed.
	CascadeReports bool
}

// ClaimRepository хранит заявки на возврат вещей.
type ClaimRepository struct {
	db  *sqlx.DB
	now func() time.Time
}

// NewClaimRepository создаёт экземпляр репозитория.
func NewClaimRepository(db *sqlx.DB) *ClaimRepository {
	return &ClaimRepository{db: db, now: time.Now}
}

// CreateIfAbsent вставляет заявку, если для пары ещё нет записи.
// Возвращает false, если пару уже связал другой вызов.
func (r *ClaimRepository) CreateIfAbsent(ctx context.Context, claim *models.Claim) (bool, error) {
	now := r.now().UTC()
	if claim.ID == uuid.Nil {
		claim.ID = uuid.New()
	}

	query := `
		INSERT INTO claims (
			id, lost_reference, found_reference, description, contact_info,
			match_confidence, match_reason, owner_id, status, submitted_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $10)
		ON CONFLICT (lost_reference, found_reference) DO NOTHING
		RETURNING id
	`

	var id uuid.UUID
	err := r.db.QueryRowxContext(ctx, query,
		claim.ID, claim.LostReference, claim.FoundReference, claim.Description, claim.ContactInfo,
		claim.MatchConfidence, claim.MatchReason, claim.OwnerID, claim.Status, now,
	).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		if common.IsUniqueViolation(err) {
			return false, nil
		}
		return false, fmt.Errorf("claim repository: create %w", err)
	}

	claim.SubmittedAt = now
	claim.UpdatedAt = now
	return true, nil
}

// GetByID возвращает заявку по идентификатору.
func (r *ClaimRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Claim, error) {
	return common.GetByField[models.Claim](ctx, r.db, "claims", "id", id, ErrClaimNotFound)
}

// GetByPair возвращает заявку по паре номеров.
func (r *ClaimRepository) GetByPair(ctx context.Context, lostRef, foundRef string) (*models.Claim, error) {
	var claim models.Claim
	err := r.db.GetContext(ctx, &claim,
		`SELECT * FROM claims WHERE lost_reference = $1 AND found_reference = $2`, lostRef, foundRef)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrClaimNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("claim repository: get by pair %w", err)
	}
	return &claim, nil
}

// List возвращает заявки с фильтром по статусу.
func (r *ClaimRepository) List(ctx context.Context, statuses []string, page models.Page) ([]models.Claim, error) {
	query := `SELECT * FROM claims`
	cond, args := common.StatusFilter(statuses, 0)
	if cond != "" {
		query += " WHERE " + cond
	}
	query += " ORDER BY submitted_at ASC, id ASC"
	query, args = common.Paginate(query, args, page.Limit, page.Offset)

	claims := []models.Claim{}
	if err := r.db.SelectContext(ctx, &claims, query, args...); err != nil {
		return nil, fmt.Errorf("claim repository: list %w", err)
	}
	return claims, nil
}

// ListByReference возвращает заявки, где участвует заявление или находка с данным номером.
func (r *ClaimRepository) ListByReference(ctx context.Context, ref string) ([]models.Claim, error) {
	claims := []models.Claim{}
	err := r.db.SelectContext(ctx, &claims, `
		SELECT * FROM claims
		WHERE lost_reference = $1 OR found_reference = $1
		ORDER BY submitted_at ASC, id ASC
	`, ref)
	if err != nil {
		return nil, fmt.Errorf("claim repository: list by reference %w", err)
	}
	return claims, nil
}

// Transition меняет статус заявки, только если она всё ещё в статусе From.
// Каскад на заявления выполняется в той же транзакции.
func (r *ClaimRepository) Transition(ctx context.Context, t ClaimTransition) (*models.Claim, error) {
	now := r.now().UTC()

	var requestedBy, resolvedBy *string
	var resolvedAt *time.Time
	if t.Resolution {
		resolvedBy = t.Actor
		resolvedAt = &now
	} else {
		requestedBy = t.Actor
	}

	var updated models.Claim
	err := common.WithTransaction(ctx, r.db, func(tx *sqlx.Tx) error {
		res, err := tx.ExecContext(ctx, `
			UPDATE claims
			SET status = $1,
				updated_at = $2,
				requested_by = COALESCE($3, requested_by),
				resolved_by = COALESCE($4, resolved_by),
				resolved_at = COALESCE($5, resolved_at)
			WHERE id = $6 AND status = $7
		`, t.To, now, requestedBy, resolvedBy, resolvedAt, t.ID, t.From)
		if err != nil {
			return fmt.Errorf("claim repository: transition %w", err)
		}

		affected, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("claim repository: transition rows affected %w", err)
		}
		if affected == 0 {
			return common.ErrStaleState
		}

		if err := tx.GetContext(ctx, &updated, `SELECT * FROM claims WHERE id = $1`, t.ID); err != nil {
			return fmt.Errorf("claim repository: reload %w", err)
		}

		if !t.CascadeReports {
			return nil
		}

		// Заявление и находку выдают только один раз.
		lostRes, err := tx.ExecContext(ctx,
			`UPDATE lost_items SET status = $1, updated_at = $2 WHERE reference_number = $3 AND status <> $1`,
			models.LostStatusClaimed, now, updated.LostReference)
		if err != nil {
			return fmt.Errorf("claim repository: cascade lost item %w", err)
		}
		if err := requireAffected(lostRes); err != nil {
			return err
		}

		foundRes, err := tx.ExecContext(ctx,
			`UPDATE found_items SET status = $1, updated_at = $2 WHERE reference_number = $3 AND status = $4`,
			models.FoundStatusClaimed, now, updated.FoundReference, models.FoundStatusStored)
		if err != nil {
			return fmt.Errorf("claim repository: cascade found item %w", err)
		}
		return requireAffected(foundRes)
	})
	if err != nil {
		return nil, err
	}

	return &updated, nil
}

// requireAffected превращает пустое условное обновление заявления в ErrReportClaimed.
func requireAffected(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("claim repository: cascade rows affected %w", err)
	}
	if affected == 0 {
		return ErrReportClaimed
	}
	return nil
}
