package repository

import (
	"context"
	"fmt"
	"time"

	"booking-platform/internal/data/entity"
	"booking-platform/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

const slotColumns = `id, business_id, offering_id, slot_date, start_time, end_time,
		       bookings_count, is_blocked, created_at, updated_at`

type SlotRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Slot, error)
	FindByOfferingAndDate(ctx context.Context, businessID, offeringID uuid.UUID, date time.Time) ([]*entity.Slot, error)
	// FindOrCreate materializes the slot row for a window, or returns the
	// existing one. Idempotent under concurrency via the natural-key unique
	// index. Takes a Querier so it can run inside the booking transaction.
	FindOrCreate(ctx context.Context, q database.Querier, slot *entity.Slot) (*entity.Slot, error)
	// ReserveSeat atomically increments bookings_count while the slot is
	// unblocked and below capacity. Returns false when the condition does not
	// hold, i.e. the caller lost the capacity race or the slot is blocked.
	ReserveSeat(ctx context.Context, q database.Querier, slotID uuid.UUID, capacity int) (bool, error)
	// ReleaseSeat decrements bookings_count, never below zero.
	ReleaseSeat(ctx context.Context, q database.Querier, slotID uuid.UUID) error
	SetBlocked(ctx context.Context, q database.Querier, slotID uuid.UUID, blocked bool) error
}

type slotRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewSlotRepository(db database.PgxIface, log *zap.Logger) SlotRepository {
	return &slotRepository{
		db:  db,
		log: log.With(zap.String("repository", "slot")),
	}
}

func (r *slotRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Slot, error) {
	query := `SELECT ` + slotColumns + ` FROM slots WHERE id = $1`

	slot, err := r.scanSlot(r.db.QueryRow(ctx, query, id))
	if err != nil {
		r.log.Error("Failed to find slot by ID",
			zap.Error(err),
			zap.String("slot_id", id.String()),
		)
		return nil, fmt.Errorf("find slot by ID %s: %w", id.String(), err)
	}

	return slot, nil
}

func (r *slotRepository) FindByOfferingAndDate(ctx context.Context, businessID, offeringID uuid.UUID, date time.Time) ([]*entity.Slot, error) {
	query := `
		SELECT ` + slotColumns + `
		FROM slots
		WHERE business_id = $1 AND offering_id = $2 AND slot_date = $3
		ORDER BY start_time
	`

	rows, err := r.db.Query(ctx, query, businessID, offeringID, date)
	if err != nil {
		r.log.Error("Failed to find slots",
			zap.Error(err),
			zap.String("business_id", businessID.String()),
			zap.String("offering_id", offeringID.String()),
			zap.Time("date", date),
		)
		return nil, fmt.Errorf("find slots for offering %s on %s: %w",
			offeringID.String(), date.Format("2006-01-02"), err)
	}
	defer rows.Close()

	var slots []*entity.Slot
	for rows.Next() {
		var slot entity.Slot
		err := rows.Scan(
			&slot.ID,
			&slot.BusinessID,
			&slot.OfferingID,
			&slot.Date,
			&slot.StartTime,
			&slot.EndTime,
			&slot.BookingsCount,
			&slot.IsBlocked,
			&slot.CreatedAt,
			&slot.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan slot row", zap.Error(err))
			return nil, fmt.Errorf("scan slot row: %w", err)
		}
		slots = append(slots, &slot)
	}

	return slots, nil
}

func (r *slotRepository) FindOrCreate(ctx context.Context, q database.Querier, slot *entity.Slot) (*entity.Slot, error) {
	insertQuery := `
		INSERT INTO slots (id, business_id, offering_id, slot_date, start_time, end_time,
		                   bookings_count, is_blocked, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, 0, FALSE, $7, $8)
		ON CONFLICT (offering_id, slot_date, start_time) DO NOTHING
	`

	_, err := q.Exec(ctx, insertQuery,
		slot.ID,
		slot.BusinessID,
		slot.OfferingID,
		slot.Date,
		slot.StartTime,
		slot.EndTime,
		slot.CreatedAt,
		slot.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to materialize slot",
			zap.Error(err),
			zap.String("offering_id", slot.OfferingID.String()),
			zap.String("start_time", slot.StartTime),
		)
		return nil, fmt.Errorf("materialize slot %s %s: %w",
			slot.Date.Format("2006-01-02"), slot.StartTime, err)
	}

	selectQuery := `
		SELECT ` + slotColumns + `
		FROM slots
		WHERE offering_id = $1 AND slot_date = $2 AND start_time = $3
	`

	existing, err := r.scanSlot(q.QueryRow(ctx, selectQuery, slot.OfferingID, slot.Date, slot.StartTime))
	if err != nil {
		return nil, fmt.Errorf("load slot %s %s: %w",
			slot.Date.Format("2006-01-02"), slot.StartTime, err)
	}
	if existing == nil {
		// Unreachable after a successful upsert unless the row was deleted
		// concurrently; surface it as a plain error.
		return nil, fmt.Errorf("slot %s %s vanished after upsert",
			slot.Date.Format("2006-01-02"), slot.StartTime)
	}

	return existing, nil
}

func (r *slotRepository) ReserveSeat(ctx context.Context, q database.Querier, slotID uuid.UUID, capacity int) (bool, error) {
	// Conditional atomic increment: the WHERE clause is the capacity
	// invariant, the row lock serializes concurrent bookers.
	query := `
		UPDATE slots
		SET bookings_count = bookings_count + 1, updated_at = NOW()
		WHERE id = $1 AND is_blocked = FALSE AND bookings_count < $2
	`

	result, err := q.Exec(ctx, query, slotID, capacity)
	if err != nil {
		r.log.Error("Failed to reserve seat",
			zap.Error(err),
			zap.String("slot_id", slotID.String()),
		)
		return false, fmt.Errorf("reserve seat on slot %s: %w", slotID.String(), err)
	}

	return result.RowsAffected() > 0, nil
}

func (r *slotRepository) ReleaseSeat(ctx context.Context, q database.Querier, slotID uuid.UUID) error {
	query := `
		UPDATE slots
		SET bookings_count = GREATEST(bookings_count - 1, 0), updated_at = NOW()
		WHERE id = $1
	`

	result, err := q.Exec(ctx, query, slotID)
	if err != nil {
		r.log.Error("Failed to release seat",
			zap.Error(err),
			zap.String("slot_id", slotID.String()),
		)
		return fmt.Errorf("release seat on slot %s: %w", slotID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("slot %s not found", slotID.String())
	}

	return nil
}

func (r *slotRepository) SetBlocked(ctx context.Context, q database.Querier, slotID uuid.UUID, blocked bool) error {
	query := `UPDATE slots SET is_blocked = $2, updated_at = NOW() WHERE id = $1`

	result, err := q.Exec(ctx, query, slotID, blocked)
	if err != nil {
		r.log.Error("Failed to update slot block flag",
			zap.Error(err),
			zap.String("slot_id", slotID.String()),
			zap.Bool("blocked", blocked),
		)
		return fmt.Errorf("set blocked on slot %s: %w", slotID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("slot %s not found", slotID.String())
	}

	return nil
}

func (r *slotRepository) scanSlot(row pgx.Row) (*entity.Slot, error) {
	var slot entity.Slot
	err := row.Scan(
		&slot.ID,
		&slot.BusinessID,
		&slot.OfferingID,
		&slot.Date,
		&slot.StartTime,
		&slot.EndTime,
		&slot.BookingsCount,
		&slot.IsBlocked,
		&slot.CreatedAt,
		&slot.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &slot, nil
}
