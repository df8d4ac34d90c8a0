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

const bookingColumns = `id, user_id, slot_id, offering_id, status, special_requests,
		       guest_name, guest_email, guest_phone, created_at, updated_at`

type BookingRepository interface {
	// Create takes a Querier so the insert participates in the booking
	// transaction alongside the seat reservation.
	Create(ctx context.Context, q database.Querier, booking *entity.Booking) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error)
	FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Booking, error)
	CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error)
	FindByBusinessID(ctx context.Context, businessID uuid.UUID, limit, offset int) ([]*entity.Booking, error)
	CountByBusinessID(ctx context.Context, businessID uuid.UUID) (int64, error)
	UpdateStatus(ctx context.Context, q database.Querier, bookingID uuid.UUID, status entity.BookingStatus) error
	UpdateSpecialRequests(ctx context.Context, bookingID uuid.UUID, specialRequests *string) error
}

type bookingRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewBookingRepository(db database.PgxIface, log *zap.Logger) BookingRepository {
	return &bookingRepository{
		db:  db,
		log: log.With(zap.String("repository", "booking")),
	}
}

func (r *bookingRepository) Create(ctx context.Context, q database.Querier, booking *entity.Booking) error {
	query := `
		INSERT INTO bookings (id, user_id, slot_id, offering_id, status, special_requests,
		                      guest_name, guest_email, guest_phone, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := q.Exec(ctx, query,
		booking.ID,
		booking.UserID,
		booking.SlotID,
		booking.OfferingID,
		booking.Status,
		booking.SpecialRequests,
		booking.GuestName,
		booking.GuestEmail,
		booking.GuestPhone,
		booking.CreatedAt,
		booking.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create booking",
			zap.Error(err),
			zap.String("booking_id", booking.ID.String()),
			zap.String("slot_id", booking.SlotID.String()),
		)
		return fmt.Errorf("create booking %s: %w", booking.ID.String(), err)
	}

	return nil
}

func (r *bookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`

	var booking entity.Booking
	err := r.db.QueryRow(ctx, query, id).Scan(
		&booking.ID,
		&booking.UserID,
		&booking.SlotID,
		&booking.OfferingID,
		&booking.Status,
		&booking.SpecialRequests,
		&booking.GuestName,
		&booking.GuestEmail,
		&booking.GuestPhone,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking by ID",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return nil, fmt.Errorf("find booking by ID %s: %w", id.String(), err)
	}

	return &booking, nil
}

func (r *bookingRepository) FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, userID, limit, offset)
	if err != nil {
		r.log.Error("Failed to find bookings by user ID",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("find bookings by user ID %s: %w", userID.String(), err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

func (r *bookingRepository) CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	query := `SELECT COUNT(*) FROM bookings WHERE user_id = $1`

	var count int64
	if err := r.db.QueryRow(ctx, query, userID).Scan(&count); err != nil {
		r.log.Error("Failed to count bookings by user ID",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return 0, fmt.Errorf("count bookings by user ID %s: %w", userID.String(), err)
	}

	return count, nil
}

func (r *bookingRepository) FindByBusinessID(ctx context.Context, businessID uuid.UUID, limit, offset int) ([]*entity.Booking, error) {
	query := `
		SELECT b.id, b.user_id, b.slot_id, b.offering_id, b.status, b.special_requests,
		       b.guest_name, b.guest_email, b.guest_phone, b.created_at, b.updated_at
		FROM bookings b
		JOIN slots s ON s.id = b.slot_id
		WHERE s.business_id = $1
		ORDER BY b.created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, businessID, limit, offset)
	if err != nil {
		r.log.Error("Failed to find bookings by business ID",
			zap.Error(err),
			zap.String("business_id", businessID.String()),
		)
		return nil, fmt.Errorf("find bookings by business ID %s: %w", businessID.String(), err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

func (r *bookingRepository) CountByBusinessID(ctx context.Context, businessID uuid.UUID) (int64, error) {
	query := `
		SELECT COUNT(*)
		FROM bookings b
		JOIN slots s ON s.id = b.slot_id
		WHERE s.business_id = $1
	`

	var count int64
	if err := r.db.QueryRow(ctx, query, businessID).Scan(&count); err != nil {
		r.log.Error("Failed to count bookings by business ID",
			zap.Error(err),
			zap.String("business_id", businessID.String()),
		)
		return 0, fmt.Errorf("count bookings by business ID %s: %w", businessID.String(), err)
	}

	return count, nil
}

func (r *bookingRepository) UpdateStatus(ctx context.Context, q database.Querier, bookingID uuid.UUID, status entity.BookingStatus) error {
	query := `UPDATE bookings SET status = $2, updated_at = NOW() WHERE id = $1`

	result, err := q.Exec(ctx, query, bookingID, status)
	if err != nil {
		r.log.Error("Failed to update booking status",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()),
			zap.String("status", string(status)),
		)
		return fmt.Errorf("update booking %s status to %s: %w", bookingID.String(), string(status), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("booking %s not found", bookingID.String())
	}

	return nil
}

func (r *bookingRepository) UpdateSpecialRequests(ctx context.Context, bookingID uuid.UUID, specialRequests *string) error {
	query := `UPDATE bookings SET special_requests = $2, updated_at = NOW() WHERE id = $1`

	result, err := r.db.Exec(ctx, query, bookingID, specialRequests)
	if err != nil {
		r.log.Error("Failed to update booking special requests",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()),
		)
		return fmt.Errorf("update booking %s special requests: %w", bookingID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("booking %s not found", bookingID.String())
	}

	return nil
}

func (r *bookingRepository) scanBookings(rows pgx.Rows) ([]*entity.Booking, error) {
	var bookings []*entity.Booking
	for rows.Next() {
		var booking entity.Booking
		err := rows.Scan(
			&booking.ID,
			&booking.UserID,
			&booking.SlotID,
			&booking.OfferingID,
			&booking.Status,
			&booking.SpecialRequests,
			&booking.GuestName,
			&booking.GuestEmail,
			&booking.GuestPhone,
			&booking.CreatedAt,
			&booking.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan booking row", zap.Error(err))
			return nil, fmt.Errorf("scan booking row: %w", err)
		}
		bookings = append(bookings, &booking)
	}

	return bookings, nil
}
