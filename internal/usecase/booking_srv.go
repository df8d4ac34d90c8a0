package usecase

import (
	"context"
	"fmt"
	"time"

	"booking-platform/internal/data/entity"
	"booking-platform/internal/data/repository"
	"booking-platform/internal/dto/request"
	"booking-platform/internal/dto/response"
	"booking-platform/internal/timeslot"
	"booking-platform/pkg/database"
	"booking-platform/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type BookingService interface {
	// CreateBooking validates the request, re-checks availability and books
	// the chosen window inside one transaction. userID is nil for guests.
	CreateBooking(ctx context.Context, userID *uuid.UUID, req *request.CreateBookingRequest) (*response.BookingResponse, error)
	GetBookingByID(ctx context.Context, callerID uuid.UUID, bookingID string) (*response.BookingResponse, error)
	GetUserBookings(ctx context.Context, userID uuid.UUID, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error)
	GetBusinessBookings(ctx context.Context, callerID uuid.UUID, businessID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error)
	UpdateBooking(ctx context.Context, callerID uuid.UUID, bookingID string, req *request.UpdateBookingRequest) (*response.BookingResponse, error)
	CancelBooking(ctx context.Context, callerID uuid.UUID, bookingID string) (*response.BookingResponse, error)
}

type bookingService struct {
	db           database.PgxIface
	repo         *repository.Repository
	availability AvailabilityService
	log          *zap.Logger
	now          func() time.Time
}

func NewBookingService(db database.PgxIface, repo *repository.Repository, availability AvailabilityService, log *zap.Logger) BookingService {
	return &bookingService{
		db:           db,
		repo:         repo,
		availability: availability,
		log:          log.With(zap.String("service", "booking")),
		now:          time.Now,
	}
}

func (s *bookingService) CreateBooking(ctx context.Context, userID *uuid.UUID, req *request.CreateBookingRequest) (*response.BookingResponse, error) {
	// Pre-transaction validation: reject before touching the database.
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create booking validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	if userID == nil {
		if emptyStr(req.GuestName) || emptyStr(req.GuestEmail) || emptyStr(req.GuestPhone) {
			return nil, fmt.Errorf("%w: guest bookings require guest_name, guest_email and guest_phone", ErrValidation)
		}
	}

	start, err := time.Parse(time.RFC3339, req.StartDateTime)
	if err != nil {
		return nil, fmt.Errorf("%w: start_date_time must be RFC 3339", ErrValidation)
	}
	if !start.After(s.now()) {
		return nil, fmt.Errorf("%w: start_date_time must be in the future", ErrValidation)
	}
	if start.Second() != 0 || start.Nanosecond() != 0 {
		return nil, fmt.Errorf("%w: start_date_time must be aligned to a whole minute", ErrValidation)
	}

	offeringID, err := uuid.Parse(req.ServiceOfferingID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid service offering ID %s", ErrValidation, req.ServiceOfferingID)
	}

	offering, err := s.repo.Offering.FindByID(ctx, offeringID)
	if err != nil {
		s.log.Error("Failed to load offering", zap.Error(err), zap.String("offering_id", req.ServiceOfferingID))
		return nil, fmt.Errorf("load offering: %w", err)
	}
	if offering == nil {
		return nil, fmt.Errorf("%w: %s", ErrServiceNotFound, req.ServiceOfferingID)
	}

	date := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location())
	startMinutes := start.Hour()*60 + start.Minute()

	// The requested start must land on a window the availability engine
	// would produce for that day. The availability read happens outside the
	// transaction; the conditional increment below is the authoritative
	// re-check.
	windows, err := s.availability.WindowsForDate(ctx, offering, date)
	if err != nil {
		return nil, err
	}
	if !containsStart(windows, startMinutes) {
		return nil, fmt.Errorf("%w: %s %s is not a bookable window",
			ErrSlotUnavailable, date.Format("2006-01-02"), timeslot.FormatMinutes(startMinutes))
	}

	now := s.now()
	candidate := &entity.Slot{
		BaseNoDelete: entity.BaseNoDelete{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		BusinessID: offering.BusinessID,
		OfferingID: offering.ID,
		Date:       date,
		StartTime:  timeslot.FormatMinutes(startMinutes),
		EndTime:    timeslot.FormatMinutes(startMinutes + offering.DurationMinutes),
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		s.log.Error("Failed to begin booking transaction", zap.Error(err))
		return nil, fmt.Errorf("begin booking transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	slot, err := s.repo.Slot.FindOrCreate(ctx, tx, candidate)
	if err != nil {
		return nil, err
	}

	reserved, err := s.repo.Slot.ReserveSeat(ctx, tx, slot.ID, offering.Capacity)
	if err != nil {
		return nil, err
	}
	if !reserved {
		// Blocked, or the capacity race was lost.
		return nil, fmt.Errorf("%w: %s %s is full or blocked",
			ErrSlotUnavailable, date.Format("2006-01-02"), slot.StartTime)
	}

	booking := &entity.Booking{
		BaseNoDelete: entity.BaseNoDelete{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		UserID:          userID,
		SlotID:          slot.ID,
		OfferingID:      offering.ID,
		Status:          entity.BookingStatusCreated,
		SpecialRequests: req.SpecialRequests,
		GuestName:       req.GuestName,
		GuestEmail:      req.GuestEmail,
		GuestPhone:      req.GuestPhone,
	}

	if err := s.repo.Booking.Create(ctx, tx, booking); err != nil {
		// Rollback undoes the seat reservation as well.
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		s.log.Error("Failed to commit booking transaction",
			zap.Error(err),
			zap.String("booking_id", booking.ID.String()),
		)
		return nil, fmt.Errorf("commit booking transaction: %w", err)
	}

	s.log.Info("Booking created",
		zap.String("booking_id", booking.ID.String()),
		zap.String("slot_id", slot.ID.String()),
		zap.String("offering_id", offering.ID.String()),
		zap.String("date", date.Format("2006-01-02")),
		zap.String("start_time", slot.StartTime),
		zap.Bool("guest", booking.IsGuest()),
	)

	businessName := s.businessName(ctx, offering.BusinessID)
	resp := response.BookingToResponse(booking, slot, offering, businessName)
	return &resp, nil
}

func (s *bookingService) GetBookingByID(ctx context.Context, callerID uuid.UUID, bookingID string) (*response.BookingResponse, error) {
	booking, slot, offering, business, err := s.loadBookingGraph(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if !canAccessBooking(callerID, booking, business) {
		return nil, fmt.Errorf("%w: booking %s", ErrUnauthorized, bookingID)
	}

	resp := response.BookingToResponse(booking, slot, offering, business.Name)
	return &resp, nil
}

func (s *bookingService) GetUserBookings(ctx context.Context, userID uuid.UUID, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error) {
	bookings, err := s.repo.Booking.FindByUserID(ctx, userID, req.Limit(), req.Offset())
	if err != nil {
		return nil, fmt.Errorf("get user bookings: %w", err)
	}

	total, err := s.repo.Booking.CountByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("count user bookings: %w", err)
	}

	return s.paginatedResponses(ctx, bookings, req, total), nil
}

func (s *bookingService) GetBusinessBookings(ctx context.Context, callerID uuid.UUID, businessID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error) {
	businessUUID, err := uuid.Parse(businessID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid business ID %s", ErrValidation, businessID)
	}

	business, err := s.repo.Business.FindByID(ctx, businessUUID)
	if err != nil {
		return nil, fmt.Errorf("load business: %w", err)
	}
	if business == nil {
		return nil, fmt.Errorf("%w: %s", ErrBusinessNotFound, businessID)
	}
	if business.OwnerID != callerID {
		return nil, fmt.Errorf("%w: business %s", ErrUnauthorized, businessID)
	}

	bookings, err := s.repo.Booking.FindByBusinessID(ctx, businessUUID, req.Limit(), req.Offset())
	if err != nil {
		return nil, fmt.Errorf("get business bookings: %w", err)
	}

	total, err := s.repo.Booking.CountByBusinessID(ctx, businessUUID)
	if err != nil {
		return nil, fmt.Errorf("count business bookings: %w", err)
	}

	return s.paginatedResponses(ctx, bookings, req, total), nil
}

func (s *bookingService) UpdateBooking(ctx context.Context, callerID uuid.UUID, bookingID string, req *request.UpdateBookingRequest) (*response.BookingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update booking validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}
	if req.Status == nil && req.SpecialRequests == nil {
		return nil, fmt.Errorf("%w: nothing to update", ErrValidation)
	}

	booking, slot, offering, business, err := s.loadBookingGraph(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	isOwner := business.OwnerID == callerID
	if !canAccessBooking(callerID, booking, business) {
		return nil, fmt.Errorf("%w: booking %s", ErrUnauthorized, bookingID)
	}

	if req.Status != nil {
		to := entity.BookingStatus(*req.Status)

		// Validate-then-write: lifecycle failures happen before any
		// persistence attempt.
		if err := ValidateStatusTransition(booking.Status, to, isOwner); err != nil {
			return nil, err
		}

		if err := s.applyStatusChange(ctx, booking, to); err != nil {
			return nil, err
		}
		booking.Status = to
	}

	if req.SpecialRequests != nil {
		if err := s.repo.Booking.UpdateSpecialRequests(ctx, booking.ID, req.SpecialRequests); err != nil {
			return nil, err
		}
		booking.SpecialRequests = req.SpecialRequests
	}

	s.log.Info("Booking updated",
		zap.String("booking_id", bookingID),
		zap.String("status", string(booking.Status)),
	)

	resp := response.BookingToResponse(booking, slot, offering, business.Name)
	return &resp, nil
}

func (s *bookingService) CancelBooking(ctx context.Context, callerID uuid.UUID, bookingID string) (*response.BookingResponse, error) {
	cancelled := string(entity.BookingStatusCancelled)
	return s.UpdateBooking(ctx, callerID, bookingID, &request.UpdateBookingRequest{Status: &cancelled})
}

// applyStatusChange persists a validated transition. Cancellation also frees
// the seat so the window becomes bookable again; the decrement and the status
// update commit together.
func (s *bookingService) applyStatusChange(ctx context.Context, booking *entity.Booking, to entity.BookingStatus) error {
	if to != entity.BookingStatusCancelled {
		return s.repo.Booking.UpdateStatus(ctx, s.db, booking.ID, to)
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		s.log.Error("Failed to begin cancellation transaction", zap.Error(err))
		return fmt.Errorf("begin cancellation transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := s.repo.Booking.UpdateStatus(ctx, tx, booking.ID, to); err != nil {
		return err
	}
	if err := s.repo.Slot.ReleaseSeat(ctx, tx, booking.SlotID); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		s.log.Error("Failed to commit cancellation",
			zap.Error(err),
			zap.String("booking_id", booking.ID.String()),
		)
		return fmt.Errorf("commit cancellation: %w", err)
	}

	return nil
}

// loadBookingGraph resolves a booking together with its slot, offering and
// business, which every read/update path needs for authorization.
func (s *bookingService) loadBookingGraph(ctx context.Context, bookingID string) (*entity.Booking, *entity.Slot, *entity.ServiceOffering, *entity.Business, error) {
	id, err := uuid.Parse(bookingID)
	if err != nil {
		return nil, nil, nil, nil, fmt.Errorf("%w: invalid booking ID %s", ErrValidation, bookingID)
	}

	booking, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		return nil, nil, nil, nil, fmt.Errorf("load booking: %w", err)
	}
	if booking == nil {
		return nil, nil, nil, nil, fmt.Errorf("%w: %s", ErrBookingNotFound, bookingID)
	}

	slot, err := s.repo.Slot.FindByID(ctx, booking.SlotID)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	if slot == nil {
		return nil, nil, nil, nil, fmt.Errorf("%w: %s", ErrSlotNotFound, booking.SlotID.String())
	}

	offering, err := s.repo.Offering.FindByID(ctx, booking.OfferingID)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	if offering == nil {
		return nil, nil, nil, nil, fmt.Errorf("%w: %s", ErrServiceNotFound, booking.OfferingID.String())
	}

	business, err := s.repo.Business.FindByID(ctx, offering.BusinessID)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	if business == nil {
		return nil, nil, nil, nil, fmt.Errorf("%w: %s", ErrBusinessNotFound, offering.BusinessID.String())
	}

	return booking, slot, offering, business, nil
}

func (s *bookingService) paginatedResponses(ctx context.Context, bookings []*entity.Booking, req *request.PaginatedRequest, total int64) *response.PaginatedResponse[response.BookingResponse] {
	responses := make([]response.BookingResponse, len(bookings))
	for i, booking := range bookings {
		slot, _ := s.repo.Slot.FindByID(ctx, booking.SlotID)
		offering, _ := s.repo.Offering.FindByID(ctx, booking.OfferingID)

		var businessName string
		if offering != nil {
			businessName = s.businessName(ctx, offering.BusinessID)
		}

		responses[i] = response.BookingToResponse(booking, slot, offering, businessName)
	}

	return response.NewPaginatedResponse(responses, req.Page, req.PerPage, total)
}

func (s *bookingService) businessName(ctx context.Context, businessID uuid.UUID) string {
	business, _ := s.repo.Business.FindByID(ctx, businessID)
	if business == nil {
		return ""
	}
	return business.Name
}

// canAccessBooking: the booking's own user or the business owner may see and
// mutate it. Guest bookings have no user, so only the owner qualifies.
func canAccessBooking(callerID uuid.UUID, booking *entity.Booking, business *entity.Business) bool {
	if business.OwnerID == callerID {
		return true
	}
	return booking.UserID != nil && *booking.UserID == callerID
}

func containsStart(windows []timeslot.Interval, startMinutes int) bool {
	for _, w := range windows {
		if w.Start == startMinutes {
			return true
		}
	}
	return false
}

func emptyStr(s *string) bool {
	return s == nil || *s == ""
}
