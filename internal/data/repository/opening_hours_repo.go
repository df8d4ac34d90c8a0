package repository

import (
	"context"
	"fmt"

	"booking-platform/internal/data/entity"
	"booking-platform/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type OpeningHoursRepository interface {
	// FindByBusinessAndWeekday returns nil when the business is closed that day.
	FindByBusinessAndWeekday(ctx context.Context, businessID uuid.UUID, dayOfWeek int) (*entity.OpeningHours, error)
	FindByBusiness(ctx context.Context, businessID uuid.UUID) ([]*entity.OpeningHours, error)
	// ReplaceForBusiness deletes the whole schedule and recreates it from the
	// given rows. Runs on the supplied Querier so the caller can wrap it in a
	// transaction.
	ReplaceForBusiness(ctx context.Context, q database.Querier, businessID uuid.UUID, hours []*entity.OpeningHours) error
}

type openingHoursRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewOpeningHoursRepository(db database.PgxIface, log *zap.Logger) OpeningHoursRepository {
	return &openingHoursRepository{
		db:  db,
		log: log.With(zap.String("repository", "opening_hours")),
	}
}

func (r *openingHoursRepository) FindByBusinessAndWeekday(ctx context.Context, businessID uuid.UUID, dayOfWeek int) (*entity.OpeningHours, error) {
	query := `
		SELECT id, business_id, day_of_week, opens_at, closes_at, created_at
		FROM opening_hours
		WHERE business_id = $1 AND day_of_week = $2
	`

	var hours entity.OpeningHours
	err := r.db.QueryRow(ctx, query, businessID, dayOfWeek).Scan(
		&hours.ID,
		&hours.BusinessID,
		&hours.DayOfWeek,
		&hours.OpensAt,
		&hours.ClosesAt,
		&hours.CreatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find opening hours",
			zap.Error(err),
			zap.String("business_id", businessID.String()),
			zap.Int("day_of_week", dayOfWeek),
		)
		return nil, fmt.Errorf("find opening hours for business %s weekday %d: %w", businessID.String(), dayOfWeek, err)
	}

	return &hours, nil
}

func (r *openingHoursRepository) FindByBusiness(ctx context.Context, businessID uuid.UUID) ([]*entity.OpeningHours, error) {
	query := `
		SELECT id, business_id, day_of_week, opens_at, closes_at, created_at
		FROM opening_hours
		WHERE business_id = $1
		ORDER BY day_of_week
	`

	rows, err := r.db.Query(ctx, query, businessID)
	if err != nil {
		r.log.Error("Failed to find opening hours by business",
			zap.Error(err),
			zap.String("business_id", businessID.String()),
		)
		return nil, fmt.Errorf("find opening hours for business %s: %w", businessID.String(), err)
	}
	defer rows.Close()

	var schedule []*entity.OpeningHours
	for rows.Next() {
		var hours entity.OpeningHours
		err := rows.Scan(
			&hours.ID,
			&hours.BusinessID,
			&hours.DayOfWeek,
			&hours.OpensAt,
			&hours.ClosesAt,
			&hours.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan opening hours row", zap.Error(err))
			return nil, fmt.Errorf("scan opening hours row: %w", err)
		}
		schedule = append(schedule, &hours)
	}

	return schedule, nil
}

func (r *openingHoursRepository) ReplaceForBusiness(ctx context.Context, q database.Querier, businessID uuid.UUID, hours []*entity.OpeningHours) error {
	deleteQuery := `DELETE FROM opening_hours WHERE business_id = $1`

	if _, err := q.Exec(ctx, deleteQuery, businessID); err != nil {
		r.log.Error("Failed to clear opening hours",
			zap.Error(err),
			zap.String("business_id", businessID.String()),
		)
		return fmt.Errorf("clear opening hours for business %s: %w", businessID.String(), err)
	}

	insertQuery := `
		INSERT INTO opening_hours (id, business_id, day_of_week, opens_at, closes_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	for _, h := range hours {
		_, err := q.Exec(ctx, insertQuery,
			h.ID,
			h.BusinessID,
			h.DayOfWeek,
			h.OpensAt,
			h.ClosesAt,
			h.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to insert opening hours",
				zap.Error(err),
				zap.String("business_id", businessID.String()),
				zap.Int("day_of_week", h.DayOfWeek),
			)
			return fmt.Errorf("insert opening hours for weekday %d: %w", h.DayOfWeek, err)
		}
	}

	return nil
}
