package usecase

import (
	"context"
	"fmt"
	"time"

	"booking-platform/internal/data/entity"
	"booking-platform/internal/data/repository"
	"booking-platform/internal/dto/response"
	"booking-platform/internal/timeslot"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AvailabilityService interface {
	// GetAvailableSlots computes the bookable windows for each date in
	// [startDate, startDate+days). Closed days and days with no room are
	// omitted from the result.
	GetAvailableSlots(ctx context.Context, businessID, offeringID string, startDate time.Time, days int) ([]response.DayAvailability, error)

	// WindowsForDate returns the free windows of one date as minute
	// intervals. Used by the booking transaction to re-validate a chosen
	// start time. Pure read, safe to call concurrently.
	WindowsForDate(ctx context.Context, offering *entity.ServiceOffering, date time.Time) ([]timeslot.Interval, error)
}

type availabilityService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewAvailabilityService(repo *repository.Repository, log *zap.Logger) AvailabilityService {
	return &availabilityService{
		repo: repo,
		log:  log.With(zap.String("service", "availability")),
	}
}

func (s *availabilityService) GetAvailableSlots(ctx context.Context, businessID, offeringID string, startDate time.Time, days int) ([]response.DayAvailability, error) {
	if days < 1 {
		return nil, fmt.Errorf("%w: days must be at least 1", ErrValidation)
	}

	businessUUID, err := uuid.Parse(businessID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid business ID %s", ErrValidation, businessID)
	}

	offeringUUID, err := uuid.Parse(offeringID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid offering ID %s", ErrValidation, offeringID)
	}

	offering, err := s.repo.Offering.FindByID(ctx, offeringUUID)
	if err != nil {
		s.log.Error("Failed to load offering", zap.Error(err), zap.String("offering_id", offeringID))
		return nil, fmt.Errorf("load offering: %w", err)
	}
	if offering == nil || offering.BusinessID != businessUUID {
		return nil, fmt.Errorf("%w: %s", ErrServiceNotFound, offeringID)
	}

	result := make([]response.DayAvailability, 0, days)
	for i := 0; i < days; i++ {
		date := startDate.AddDate(0, 0, i)

		windows, err := s.WindowsForDate(ctx, offering, date)
		if err != nil {
			return nil, err
		}
		if len(windows) == 0 {
			// Closed or fully booked days are omitted entirely.
			continue
		}

		slots := make([]response.SlotWindow, len(windows))
		for j, w := range windows {
			slots[j] = response.SlotWindow{
				StartTime: timeslot.FormatMinutes(w.Start),
				EndTime:   timeslot.FormatMinutes(w.End),
			}
		}

		result = append(result, response.DayAvailability{
			Date:  date.Format("2006-01-02"),
			Slots: slots,
		})
	}

	s.log.Info("Availability computed",
		zap.String("business_id", businessID),
		zap.String("offering_id", offeringID),
		zap.String("start_date", startDate.Format("2006-01-02")),
		zap.Int("days", days),
		zap.Int("open_days", len(result)),
	)

	return result, nil
}

func (s *availabilityService) WindowsForDate(ctx context.Context, offering *entity.ServiceOffering, date time.Time) ([]timeslot.Interval, error) {
	weekday := int(date.Weekday())

	hours, err := s.repo.OpeningHours.FindByBusinessAndWeekday(ctx, offering.BusinessID, weekday)
	if err != nil {
		return nil, fmt.Errorf("load opening hours: %w", err)
	}
	if hours == nil {
		// Closed that weekday.
		return nil, nil
	}

	opensAt, err := timeslot.ParseTime(hours.OpensAt)
	if err != nil {
		return nil, fmt.Errorf("opening hours for business %s weekday %d: %w",
			offering.BusinessID.String(), weekday, err)
	}
	closesAt, err := timeslot.ParseTime(hours.ClosesAt)
	if err != nil {
		return nil, fmt.Errorf("opening hours for business %s weekday %d: %w",
			offering.BusinessID.String(), weekday, err)
	}

	free := []timeslot.Interval{{Start: opensAt, End: closesAt}}

	blocked, err := s.blockedIntervalsForDay(ctx, offering, date)
	if err != nil {
		return nil, err
	}
	for _, b := range blocked {
		free = timeslot.Subtract(free, b)
	}

	var windows []timeslot.Interval
	for _, iv := range free {
		windows = append(windows, timeslot.SliceWindows(iv, offering.DurationMinutes)...)
	}

	return windows, nil
}

// blockedIntervalsForDay maps the slots that are explicitly blocked or at
// capacity to minute intervals. Slots with remaining room are not obstacles:
// they already match the offering duration, so new bookings join them instead
// of carving around them.
func (s *availabilityService) blockedIntervalsForDay(ctx context.Context, offering *entity.ServiceOffering, date time.Time) ([]timeslot.Interval, error) {
	slots, err := s.repo.Slot.FindByOfferingAndDate(ctx, offering.BusinessID, offering.ID, date)
	if err != nil {
		return nil, fmt.Errorf("load slots: %w", err)
	}

	var blocked []timeslot.Interval
	for _, slot := range slots {
		if !slot.IsBlocked && !slot.IsFull(offering.Capacity) {
			continue
		}

		start, err := timeslot.ParseTime(slot.StartTime)
		if err != nil {
			return nil, fmt.Errorf("slot %s start time: %w", slot.ID.String(), err)
		}
		end, err := timeslot.ParseTime(slot.EndTime)
		if err != nil {
			return nil, fmt.Errorf("slot %s end time: %w", slot.ID.String(), err)
		}

		blocked = append(blocked, timeslot.Interval{Start: start, End: end})
	}

	return blocked, nil
}
