package usecase

import (
	"context"
	"testing"
	"time"

	"booking-platform/internal/data/entity"
	"booking-platform/internal/data/repository"
	"booking-platform/pkg/database"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// Stub repositories. Only the read paths the availability engine touches are
// implemented; everything else is unreachable in these tests.

type stubOfferingRepo struct {
	offering *entity.ServiceOffering
}

func (s *stubOfferingRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.ServiceOffering, error) {
	if s.offering != nil && s.offering.ID == id {
		return s.offering, nil
	}
	return nil, nil
}

func (s *stubOfferingRepo) FindByBusinessID(ctx context.Context, businessID uuid.UUID) ([]*entity.ServiceOffering, error) {
	return nil, nil
}

type stubOpeningHoursRepo struct {
	byWeekday map[int]*entity.OpeningHours
}

func (s *stubOpeningHoursRepo) FindByBusinessAndWeekday(ctx context.Context, businessID uuid.UUID, dayOfWeek int) (*entity.OpeningHours, error) {
	return s.byWeekday[dayOfWeek], nil
}

func (s *stubOpeningHoursRepo) FindByBusiness(ctx context.Context, businessID uuid.UUID) ([]*entity.OpeningHours, error) {
	return nil, nil
}

func (s *stubOpeningHoursRepo) ReplaceForBusiness(ctx context.Context, q database.Querier, businessID uuid.UUID, hours []*entity.OpeningHours) error {
	return nil
}

type stubSlotRepo struct {
	slots []*entity.Slot
}

func (s *stubSlotRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Slot, error) {
	return nil, nil
}

func (s *stubSlotRepo) FindByOfferingAndDate(ctx context.Context, businessID, offeringID uuid.UUID, date time.Time) ([]*entity.Slot, error) {
	return s.slots, nil
}

func (s *stubSlotRepo) FindOrCreate(ctx context.Context, q database.Querier, slot *entity.Slot) (*entity.Slot, error) {
	return slot, nil
}

func (s *stubSlotRepo) ReserveSeat(ctx context.Context, q database.Querier, slotID uuid.UUID, capacity int) (bool, error) {
	return true, nil
}

func (s *stubSlotRepo) ReleaseSeat(ctx context.Context, q database.Querier, slotID uuid.UUID) error {
	return nil
}

func (s *stubSlotRepo) SetBlocked(ctx context.Context, q database.Querier, slotID uuid.UUID, blocked bool) error {
	return nil
}

func availabilityFixture(slots []*entity.Slot, byWeekday map[int]*entity.OpeningHours) (AvailabilityService, *entity.ServiceOffering) {
	businessID := uuid.New()

	offering := &entity.ServiceOffering{
		BusinessID:      businessID,
		Name:            "Deep Tissue Massage",
		DurationMinutes: 60,
		Capacity:        2,
		IsActive:        true,
	}
	offering.ID = uuid.New()

	for _, h := range byWeekday {
		h.BusinessID = businessID
	}

	repo := &repository.Repository{
		Offering:     &stubOfferingRepo{offering: offering},
		OpeningHours: &stubOpeningHoursRepo{byWeekday: byWeekday},
		Slot:         &stubSlotRepo{slots: slots},
	}

	return NewAvailabilityService(repo, zap.NewNop()), offering
}

func allWeekdays(opensAt, closesAt string) map[int]*entity.OpeningHours {
	byWeekday := make(map[int]*entity.OpeningHours)
	for day := 0; day <= 6; day++ {
		byWeekday[day] = &entity.OpeningHours{
			DayOfWeek: day,
			OpensAt:   opensAt,
			ClosesAt:  closesAt,
		}
	}
	return byWeekday
}

func TestGetAvailableSlots_FreeDay(t *testing.T) {
	service, offering := availabilityFixture(nil, allWeekdays("09:00", "17:00"))

	date := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	result, err := service.GetAvailableSlots(context.Background(), offering.BusinessID.String(), offering.ID.String(), date, 1)
	require.NoError(t, err)

	require.Len(t, result, 1)
	assert.Equal(t, "2026-09-07", result[0].Date)
	require.Len(t, result[0].Slots, 8)
	assert.Equal(t, "09:00", result[0].Slots[0].StartTime)
	assert.Equal(t, "10:00", result[0].Slots[0].EndTime)
	assert.Equal(t, "16:00", result[0].Slots[7].StartTime)
	assert.Equal(t, "17:00", result[0].Slots[7].EndTime)
}

func TestGetAvailableSlots_BlockedWindowCarvedOut(t *testing.T) {
	blocked := &entity.Slot{
		Date:      time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC),
		StartTime: "10:00",
		EndTime:   "11:00",
		IsBlocked: true,
	}
	blocked.ID = uuid.New()

	service, offering := availabilityFixture([]*entity.Slot{blocked}, allWeekdays("09:00", "17:00"))

	date := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	result, err := service.GetAvailableSlots(context.Background(), offering.BusinessID.String(), offering.ID.String(), date, 1)
	require.NoError(t, err)

	require.Len(t, result, 1)
	require.Len(t, result[0].Slots, 7)
	assert.Equal(t, "09:00", result[0].Slots[0].StartTime)
	// The window after the blocked one starts where the block ends.
	assert.Equal(t, "11:00", result[0].Slots[1].StartTime)
}

func TestGetAvailableSlots_FullSlotTreatedAsBlocked(t *testing.T) {
	full := &entity.Slot{
		Date:          time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC),
		StartTime:     "09:00",
		EndTime:       "10:00",
		BookingsCount: 2, // capacity is 2
	}
	full.ID = uuid.New()

	partial := &entity.Slot{
		Date:          time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC),
		StartTime:     "10:00",
		EndTime:       "11:00",
		BookingsCount: 1,
	}
	partial.ID = uuid.New()

	service, offering := availabilityFixture([]*entity.Slot{full, partial}, allWeekdays("09:00", "17:00"))

	date := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	result, err := service.GetAvailableSlots(context.Background(), offering.BusinessID.String(), offering.ID.String(), date, 1)
	require.NoError(t, err)

	require.Len(t, result, 1)
	require.Len(t, result[0].Slots, 7)
	// 09:00 is gone; 10:00 still has room and stays bookable.
	assert.Equal(t, "10:00", result[0].Slots[0].StartTime)
}

func TestGetAvailableSlots_ClosedDaysOmitted(t *testing.T) {
	// Open Mondays only.
	byWeekday := map[int]*entity.OpeningHours{
		1: {DayOfWeek: 1, OpensAt: "09:00", ClosesAt: "12:00"},
	}
	service, offering := availabilityFixture(nil, byWeekday)

	// 2026-09-07 is a Monday.
	date := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	result, err := service.GetAvailableSlots(context.Background(), offering.BusinessID.String(), offering.ID.String(), date, 7)
	require.NoError(t, err)

	require.Len(t, result, 1)
	assert.Equal(t, "2026-09-07", result[0].Date)
	assert.Len(t, result[0].Slots, 3)
}

func TestGetAvailableSlots_UnknownOffering(t *testing.T) {
	service, offering := availabilityFixture(nil, allWeekdays("09:00", "17:00"))

	date := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	_, err := service.GetAvailableSlots(context.Background(), offering.BusinessID.String(), uuid.NewString(), date, 1)

	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestGetAvailableSlots_OfferingFromAnotherBusiness(t *testing.T) {
	service, offering := availabilityFixture(nil, allWeekdays("09:00", "17:00"))

	date := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	_, err := service.GetAvailableSlots(context.Background(), uuid.NewString(), offering.ID.String(), date, 1)

	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestGetAvailableSlots_InvalidInput(t *testing.T) {
	service, offering := availabilityFixture(nil, allWeekdays("09:00", "17:00"))
	date := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)

	_, err := service.GetAvailableSlots(context.Background(), "not-a-uuid", offering.ID.String(), date, 1)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = service.GetAvailableSlots(context.Background(), offering.BusinessID.String(), offering.ID.String(), date, 0)
	assert.ErrorIs(t, err, ErrValidation)
}
