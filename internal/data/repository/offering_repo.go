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

type ServiceOfferingRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.ServiceOffering, error)
	FindByBusinessID(ctx context.Context, businessID uuid.UUID) ([]*entity.ServiceOffering, error)
}

type serviceOfferingRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewServiceOfferingRepository(db database.PgxIface, log *zap.Logger) ServiceOfferingRepository {
	return &serviceOfferingRepository{
		db:  db,
		log: log.With(zap.String("repository", "offering")),
	}
}

func (r *serviceOfferingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.ServiceOffering, error) {
	query := `
		SELECT id, business_id, name, description, duration_minutes, capacity, price,
		       is_active, created_at, updated_at, deleted_at
		FROM service_offerings
		WHERE id = $1 AND deleted_at IS NULL
	`

	var offering entity.ServiceOffering
	err := r.db.QueryRow(ctx, query, id).Scan(
		&offering.ID,
		&offering.BusinessID,
		&offering.Name,
		&offering.Description,
		&offering.DurationMinutes,
		&offering.Capacity,
		&offering.Price,
		&offering.IsActive,
		&offering.CreatedAt,
		&offering.UpdatedAt,
		&offering.DeletedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find offering by ID",
			zap.Error(err),
			zap.String("offering_id", id.String()),
		)
		return nil, fmt.Errorf("find offering by ID %s: %w", id.String(), err)
	}

	return &offering, nil
}

func (r *serviceOfferingRepository) FindByBusinessID(ctx context.Context, businessID uuid.UUID) ([]*entity.ServiceOffering, error) {
	query := `
		SELECT id, business_id, name, description, duration_minutes, capacity, price,
		       is_active, created_at, updated_at, deleted_at
		FROM service_offerings
		WHERE business_id = $1 AND deleted_at IS NULL AND is_active = TRUE
		ORDER BY name
	`

	rows, err := r.db.Query(ctx, query, businessID)
	if err != nil {
		r.log.Error("Failed to find offerings by business ID",
			zap.Error(err),
			zap.String("business_id", businessID.String()),
		)
		return nil, fmt.Errorf("find offerings by business ID %s: %w", businessID.String(), err)
	}
	defer rows.Close()

	var offerings []*entity.ServiceOffering
	for rows.Next() {
		var offering entity.ServiceOffering
		err := rows.Scan(
			&offering.ID,
			&offering.BusinessID,
			&offering.Name,
			&offering.Description,
			&offering.DurationMinutes,
			&offering.Capacity,
			&offering.Price,
			&offering.IsActive,
			&offering.CreatedAt,
			&offering.UpdatedAt,
			&offering.DeletedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan offering row", zap.Error(err))
			return nil, fmt.Errorf("scan offering row: %w", err)
		}
		offerings = append(offerings, &offering)
	}

	return offerings, nil
}
