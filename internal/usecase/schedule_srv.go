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

type ScheduleService interface {
	GetOfferings(ctx context.Context, businessID string) ([]response.OfferingResponse, error)
	GetOpeningHours(ctx context.Context, businessID string) ([]response.OpeningHoursResponse, error)
	// ReplaceOpeningHours swaps the whole weekly schedule in one transaction.
	// Owner only.
	ReplaceOpeningHours(ctx context.Context, callerID uuid.UUID, businessID string, req *request.ReplaceOpeningHoursRequest) ([]response.OpeningHoursResponse, error)
	// BlockSlot marks a window as blocked (or unblocks it), materializing the
	// slot row if it does not exist yet. Owner only. Existing bookings on the
	// slot are kept; blocking only stops new ones.
	BlockSlot(ctx context.Context, callerID uuid.UUID, businessID string, req *request.BlockSlotRequest) error
}

type scheduleService struct {
	db   database.PgxIface
	repo *repository.Repository
	log  *zap.Logger
}

func NewScheduleService(db database.PgxIface, repo *repository.Repository, log *zap.Logger) ScheduleService {
	return &scheduleService{
		db:   db,
		repo: repo,
		log:  log.With(zap.String("service", "schedule")),
	}
}

func (s *scheduleService) GetOfferings(ctx context.Context, businessID string) ([]response.OfferingResponse, error) {
	business, err := s.findBusiness(ctx, businessID)
	if err != nil {
		return nil, err
	}

	offerings, err := s.repo.Offering.FindByBusinessID(ctx, business.ID)
	if err != nil {
		return nil, fmt.Errorf("get offerings: %w", err)
	}

	responses := make([]response.OfferingResponse, len(offerings))
	for i, offering := range offerings {
		responses[i] = response.OfferingToResponse(offering)
	}

	return responses, nil
}

func (s *scheduleService) GetOpeningHours(ctx context.Context, businessID string) ([]response.OpeningHoursResponse, error) {
	business, err := s.findBusiness(ctx, businessID)
	if err != nil {
		return nil, err
	}

	schedule, err := s.repo.OpeningHours.FindByBusiness(ctx, business.ID)
	if err != nil {
		return nil, fmt.Errorf("get opening hours: %w", err)
	}

	responses := make([]response.OpeningHoursResponse, len(schedule))
	for i, hours := range schedule {
		responses[i] = response.OpeningHoursToResponse(hours)
	}

	return responses, nil
}

func (s *scheduleService) ReplaceOpeningHours(ctx context.Context, callerID uuid.UUID, businessID string, req *request.ReplaceOpeningHoursRequest) ([]response.OpeningHoursResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Replace opening hours validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	business, err := s.findBusiness(ctx, businessID)
	if err != nil {
		return nil, err
	}
	if business.OwnerID != callerID {
		return nil, fmt.Errorf("%w: business %s", ErrUnauthorized, businessID)
	}

	now := time.Now()
	seen := make(map[int]bool, len(req.Hours))
	rows := make([]*entity.OpeningHours, len(req.Hours))
	for i, input := range req.Hours {
		if seen[input.DayOfWeek] {
			return nil, fmt.Errorf("%w: duplicate weekday %d", ErrValidation, input.DayOfWeek)
		}
		seen[input.DayOfWeek] = true

		opensAt, err := timeslot.ParseTime(input.OpensAt)
		if err != nil {
			return nil, fmt.Errorf("%w: opens_at for weekday %d: %v", ErrValidation, input.DayOfWeek, err)
		}
		closesAt, err := timeslot.ParseTime(input.ClosesAt)
		if err != nil {
			return nil, fmt.Errorf("%w: closes_at for weekday %d: %v", ErrValidation, input.DayOfWeek, err)
		}
		if opensAt >= closesAt {
			return nil, fmt.Errorf("%w: weekday %d opens at or after it closes", ErrValidation, input.DayOfWeek)
		}

		rows[i] = &entity.OpeningHours{
			BaseSimple: entity.BaseSimple{
				ID:        uuid.New(),
				CreatedAt: now,
			},
			BusinessID: business.ID,
			DayOfWeek:  input.DayOfWeek,
			OpensAt:    input.OpensAt,
			ClosesAt:   input.ClosesAt,
		}
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		s.log.Error("Failed to begin schedule transaction", zap.Error(err))
		return nil, fmt.Errorf("begin schedule transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := s.repo.OpeningHours.ReplaceForBusiness(ctx, tx, business.ID, rows); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		s.log.Error("Failed to commit schedule replacement",
			zap.Error(err),
			zap.String("business_id", businessID),
		)
		return nil, fmt.Errorf("commit schedule replacement: %w", err)
	}

	s.log.Info("Opening hours replaced",
		zap.String("business_id", businessID),
		zap.Int("weekdays", len(rows)),
	)

	responses := make([]response.OpeningHoursResponse, len(rows))
	for i, hours := range rows {
		responses[i] = response.OpeningHoursToResponse(hours)
	}

	return responses, nil
}

func (s *scheduleService) BlockSlot(ctx context.Context, callerID uuid.UUID, businessID string, req *request.BlockSlotRequest) error {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Block slot validation failed", zap.Any("errors", errs))
		return fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	business, err := s.findBusiness(ctx, businessID)
	if err != nil {
		return err
	}
	if business.OwnerID != callerID {
		return fmt.Errorf("%w: business %s", ErrUnauthorized, businessID)
	}

	offeringID, err := uuid.Parse(req.ServiceOfferingID)
	if err != nil {
		return fmt.Errorf("%w: invalid service offering ID %s", ErrValidation, req.ServiceOfferingID)
	}

	offering, err := s.repo.Offering.FindByID(ctx, offeringID)
	if err != nil {
		return fmt.Errorf("load offering: %w", err)
	}
	if offering == nil || offering.BusinessID != business.ID {
		return fmt.Errorf("%w: %s", ErrServiceNotFound, req.ServiceOfferingID)
	}

	startMinutes, err := timeslot.ParseTime(req.StartTime)
	if err != nil {
		return fmt.Errorf("%w: start_time: %v", ErrValidation, err)
	}

	// The window must end within the same day, otherwise the stored end time
	// would not round-trip through ParseTime and availability reads for the
	// whole date would fail.
	endMinutes := startMinutes + offering.DurationMinutes
	if endMinutes > 23*60+59 {
		return fmt.Errorf("%w: window starting at %s runs past end of day", ErrValidation, req.StartTime)
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return fmt.Errorf("%w: date must be YYYY-MM-DD", ErrValidation)
	}

	now := time.Now()
	candidate := &entity.Slot{
		BaseNoDelete: entity.BaseNoDelete{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		BusinessID: business.ID,
		OfferingID: offering.ID,
		Date:       date,
		StartTime:  timeslot.FormatMinutes(startMinutes),
		EndTime:    timeslot.FormatMinutes(endMinutes),
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		s.log.Error("Failed to begin block transaction", zap.Error(err))
		return fmt.Errorf("begin block transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	slot, err := s.repo.Slot.FindOrCreate(ctx, tx, candidate)
	if err != nil {
		return err
	}
	if err := s.repo.Slot.SetBlocked(ctx, tx, slot.ID, req.Blocked); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		s.log.Error("Failed to commit slot block",
			zap.Error(err),
			zap.String("slot_id", slot.ID.String()),
		)
		return fmt.Errorf("commit slot block: %w", err)
	}

	s.log.Info("Slot block updated",
		zap.String("slot_id", slot.ID.String()),
		zap.String("date", req.Date),
		zap.String("start_time", slot.StartTime),
		zap.Bool("blocked", req.Blocked),
	)

	return nil
}

func (s *scheduleService) findBusiness(ctx context.Context, businessID string) (*entity.Business, error) {
	id, err := uuid.Parse(businessID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid business ID %s", ErrValidation, businessID)
	}

	business, err := s.repo.Business.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load business: %w", err)
	}
	if business == nil {
		return nil, fmt.Errorf("%w: %s", ErrBusinessNotFound, businessID)
	}

	return business, nil
}
