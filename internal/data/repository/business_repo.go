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

type BusinessRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Business, error)
	FindByOwnerID(ctx context.Context, ownerID uuid.UUID) ([]*entity.Business, error)
}

type businessRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewBusinessRepository(db database.PgxIface, log *zap.Logger) BusinessRepository {
	return &businessRepository{
		db:  db,
		log: log.With(zap.String("repository", "business")),
	}
}

func (r *businessRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Business, error) {
	query := `
		SELECT id, owner_id, name, description, address, phone, is_active,
		       created_at, updated_at, deleted_at
		FROM businesses
		WHERE id = $1 AND deleted_at IS NULL
	`

	var business entity.Business
	err := r.db.QueryRow(ctx, query, id).Scan(
		&business.ID,
		&business.OwnerID,
		&business.Name,
		&business.Description,
		&business.Address,
		&business.Phone,
		&business.IsActive,
		&business.CreatedAt,
		&business.UpdatedAt,
		&business.DeletedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find business by ID",
			zap.Error(err),
			zap.String("business_id", id.String()),
		)
		return nil, fmt.Errorf("find business by ID %s: %w", id.String(), err)
	}

	return &business, nil
}

func (r *businessRepository) FindByOwnerID(ctx context.Context, ownerID uuid.UUID) ([]*entity.Business, error) {
	query := `
		SELECT id, owner_id, name, description, address, phone, is_active,
		       created_at, updated_at, deleted_at
		FROM businesses
		WHERE owner_id = $1 AND deleted_at IS NULL
		ORDER BY created_at
	`

	rows, err := r.db.Query(ctx, query, ownerID)
	if err != nil {
		r.log.Error("Failed to find businesses by owner ID",
			zap.Error(err),
			zap.String("owner_id", ownerID.String()),
		)
		return nil, fmt.Errorf("find businesses by owner ID %s: %w", ownerID.String(), err)
	}
	defer rows.Close()

	var businesses []*entity.Business
	for rows.Next() {
		var business entity.Business
		err := rows.Scan(
			&business.ID,
			&business.OwnerID,
			&business.Name,
			&business.Description,
			&business.Address,
			&business.Phone,
			&business.IsActive,
			&business.CreatedAt,
			&business.UpdatedAt,
			&business.DeletedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan business row", zap.Error(err))
			return nil, fmt.Errorf("scan business row: %w", err)
		}
		businesses = append(businesses, &business)
	}

	return businesses, nil
}
