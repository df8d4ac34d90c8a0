package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"booking-platform/internal/data/entity"
	"booking-platform/internal/data/repository"
	"booking-platform/internal/dto/request"
	"booking-platform/internal/dto/response"
	"booking-platform/internal/timeslot"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubAvailability struct {
	windows []timeslot.Interval
}

func (s *stubAvailability) GetAvailableSlots(ctx context.Context, businessID, offeringID string, startDate time.Time, days int) ([]response.DayAvailability, error) {
	return nil, nil
}

func (s *stubAvailability) WindowsForDate(ctx context.Context, offering *entity.ServiceOffering, date time.Time) ([]timeslot.Interval, error) {
	return s.windows, nil
}

type bookingFixture struct {
	mock       pgxmock.PgxPoolIface
	service    BookingService
	offeringID uuid.UUID
	businessID uuid.UUID
	ownerID    uuid.UUID
	now        time.Time
}

func newBookingFixture(t *testing.T, windows []timeslot.Interval) *bookingFixture {
	t.Helper()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	repo := repository.NewRepository(mock, zap.NewNop())
	service := NewBookingService(mock, repo, &stubAvailability{windows: windows}, zap.NewNop())

	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	service.(*bookingService).now = func() time.Time { return now }

	return &bookingFixture{
		mock:       mock,
		service:    service,
		offeringID: uuid.New(),
		businessID: uuid.New(),
		ownerID:    uuid.New(),
		now:        now,
	}
}

func (f *bookingFixture) offeringRows() *pgxmock.Rows {
	return pgxmock.NewRows([]string{
		"id", "business_id", "name", "description", "duration_minutes", "capacity",
		"price", "is_active", "created_at", "updated_at", "deleted_at",
	}).AddRow(
		f.offeringID, f.businessID, "Deep Tissue Massage", (*string)(nil), 60, 2,
		50.0, true, f.now, f.now, (*time.Time)(nil),
	)
}

func (f *bookingFixture) slotRows(slotID uuid.UUID, bookingsCount int, blocked bool) *pgxmock.Rows {
	return pgxmock.NewRows([]string{
		"id", "business_id", "offering_id", "slot_date", "start_time", "end_time",
		"bookings_count", "is_blocked", "created_at", "updated_at",
	}).AddRow(
		slotID, f.businessID, f.offeringID, time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC),
		"10:00", "11:00", bookingsCount, blocked, f.now, f.now,
	)
}

func (f *bookingFixture) businessRows() *pgxmock.Rows {
	return pgxmock.NewRows([]string{
		"id", "owner_id", "name", "description", "address", "phone", "is_active",
		"created_at", "updated_at", "deleted_at",
	}).AddRow(
		f.businessID, f.ownerID, "Serenity Spa", (*string)(nil), (*string)(nil),
		(*string)(nil), true, f.now, f.now, (*time.Time)(nil),
	)
}

func createReq(offeringID uuid.UUID) *request.CreateBookingRequest {
	return &request.CreateBookingRequest{
		ServiceOfferingID: offeringID.String(),
		StartDateTime:     "2026-09-07T10:00:00Z",
	}
}

func TestCreateBooking_Success(t *testing.T) {
	f := newBookingFixture(t, []timeslot.Interval{{Start: 600, End: 660}})
	userID := uuid.New()
	slotID := uuid.New()

	f.mock.ExpectQuery("FROM service_offerings").
		WithArgs(f.offeringID).
		WillReturnRows(f.offeringRows())

	f.mock.ExpectBegin()
	f.mock.ExpectExec("INSERT INTO slots").
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	f.mock.ExpectQuery("FROM slots").
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnRows(f.slotRows(slotID, 0, false))
	f.mock.ExpectExec("UPDATE slots").
		WithArgs(slotID, 2).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	f.mock.ExpectExec("INSERT INTO bookings").
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	f.mock.ExpectCommit()

	f.mock.ExpectQuery("FROM businesses").
		WithArgs(f.businessID).
		WillReturnRows(f.businessRows())

	resp, err := f.service.CreateBooking(context.Background(), &userID, createReq(f.offeringID))
	require.NoError(t, err)

	assert.Equal(t, entity.BookingStatusCreated, resp.Status)
	assert.Equal(t, slotID.String(), resp.SlotID)
	assert.Equal(t, "2026-09-07", resp.Date)
	assert.Equal(t, "10:00", resp.StartTime)
	assert.Equal(t, "Serenity Spa", resp.BusinessName)
	require.NotNil(t, resp.UserID)
	assert.Equal(t, userID.String(), *resp.UserID)

	assert.NoError(t, f.mock.ExpectationsWereMet())
}

func TestCreateBooking_GuestRequiresContactDetails(t *testing.T) {
	f := newBookingFixture(t, []timeslot.Interval{{Start: 600, End: 660}})

	// No expectations: validation rejects before any database call.
	_, err := f.service.CreateBooking(context.Background(), nil, createReq(f.offeringID))

	assert.ErrorIs(t, err, ErrValidation)
	assert.NoError(t, f.mock.ExpectationsWereMet())
}

func TestCreateBooking_GuestWithContactDetails(t *testing.T) {
	f := newBookingFixture(t, []timeslot.Interval{{Start: 600, End: 660}})
	slotID := uuid.New()

	req := createReq(f.offeringID)
	name, email, phone := "Ana Pereira", "ana@example.com", "5551234567"
	req.GuestName, req.GuestEmail, req.GuestPhone = &name, &email, &phone

	f.mock.ExpectQuery("FROM service_offerings").
		WithArgs(f.offeringID).
		WillReturnRows(f.offeringRows())

	f.mock.ExpectBegin()
	f.mock.ExpectExec("INSERT INTO slots").
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	f.mock.ExpectQuery("FROM slots").
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnRows(f.slotRows(slotID, 0, false))
	f.mock.ExpectExec("UPDATE slots").
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	f.mock.ExpectExec("INSERT INTO bookings").
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	f.mock.ExpectCommit()

	f.mock.ExpectQuery("FROM businesses").
		WithArgs(pgxmock.AnyArg()).
		WillReturnRows(f.businessRows())

	resp, err := f.service.CreateBooking(context.Background(), nil, req)
	require.NoError(t, err)

	assert.Nil(t, resp.UserID)
	require.NotNil(t, resp.GuestName)
	assert.Equal(t, "Ana Pereira", *resp.GuestName)

	assert.NoError(t, f.mock.ExpectationsWereMet())
}

func TestCreateBooking_PastStartRejected(t *testing.T) {
	f := newBookingFixture(t, []timeslot.Interval{{Start: 600, End: 660}})
	userID := uuid.New()

	req := createReq(f.offeringID)
	req.StartDateTime = "2026-08-30T10:00:00Z"

	_, err := f.service.CreateBooking(context.Background(), &userID, req)

	assert.ErrorIs(t, err, ErrValidation)
	assert.NoError(t, f.mock.ExpectationsWereMet())
}

func TestCreateBooking_SubMinuteStartRejected(t *testing.T) {
	f := newBookingFixture(t, []timeslot.Interval{{Start: 600, End: 660}})
	userID := uuid.New()

	// 10:00:30 must not be silently accepted as the 10:00 window.
	req := createReq(f.offeringID)
	req.StartDateTime = "2026-09-07T10:00:30Z"

	_, err := f.service.CreateBooking(context.Background(), &userID, req)

	assert.ErrorIs(t, err, ErrValidation)
	assert.NoError(t, f.mock.ExpectationsWereMet())
}

func TestCreateBooking_StartOutsideWindows(t *testing.T) {
	// Windows exist, but none starts at 10:00.
	f := newBookingFixture(t, []timeslot.Interval{{Start: 540, End: 600}})
	userID := uuid.New()

	f.mock.ExpectQuery("FROM service_offerings").
		WithArgs(f.offeringID).
		WillReturnRows(f.offeringRows())

	_, err := f.service.CreateBooking(context.Background(), &userID, createReq(f.offeringID))

	assert.ErrorIs(t, err, ErrSlotUnavailable)
	assert.NoError(t, f.mock.ExpectationsWereMet())
}

func TestCreateBooking_CapacityRaceLost(t *testing.T) {
	f := newBookingFixture(t, []timeslot.Interval{{Start: 600, End: 660}})
	userID := uuid.New()
	slotID := uuid.New()

	f.mock.ExpectQuery("FROM service_offerings").
		WithArgs(f.offeringID).
		WillReturnRows(f.offeringRows())

	f.mock.ExpectBegin()
	f.mock.ExpectExec("INSERT INTO slots").
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 0))
	f.mock.ExpectQuery("FROM slots").
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnRows(f.slotRows(slotID, 2, false))
	// Conditional increment matches no row: slot already at capacity.
	f.mock.ExpectExec("UPDATE slots").
		WithArgs(slotID, 2).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	f.mock.ExpectRollback()

	_, err := f.service.CreateBooking(context.Background(), &userID, createReq(f.offeringID))

	assert.ErrorIs(t, err, ErrSlotUnavailable)
	assert.NoError(t, f.mock.ExpectationsWereMet())
}

func TestCreateBooking_InsertFailureRollsBack(t *testing.T) {
	f := newBookingFixture(t, []timeslot.Interval{{Start: 600, End: 660}})
	userID := uuid.New()
	slotID := uuid.New()

	f.mock.ExpectQuery("FROM service_offerings").
		WithArgs(f.offeringID).
		WillReturnRows(f.offeringRows())

	f.mock.ExpectBegin()
	f.mock.ExpectExec("INSERT INTO slots").
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	f.mock.ExpectQuery("FROM slots").
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnRows(f.slotRows(slotID, 0, false))
	f.mock.ExpectExec("UPDATE slots").
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	f.mock.ExpectExec("INSERT INTO bookings").
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnError(errors.New("connection reset"))
	f.mock.ExpectRollback()

	_, err := f.service.CreateBooking(context.Background(), &userID, createReq(f.offeringID))

	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrSlotUnavailable)
	assert.NoError(t, f.mock.ExpectationsWereMet())
}

func TestCreateBooking_UnknownOffering(t *testing.T) {
	f := newBookingFixture(t, []timeslot.Interval{{Start: 600, End: 660}})
	userID := uuid.New()

	f.mock.ExpectQuery("FROM service_offerings").
		WithArgs(f.offeringID).
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "business_id", "name", "description", "duration_minutes", "capacity",
			"price", "is_active", "created_at", "updated_at", "deleted_at",
		}))

	_, err := f.service.CreateBooking(context.Background(), &userID, createReq(f.offeringID))

	assert.ErrorIs(t, err, ErrServiceNotFound)
	assert.NoError(t, f.mock.ExpectationsWereMet())
}

func TestUpdateBooking_CancellationReleasesSeat(t *testing.T) {
	f := newBookingFixture(t, nil)
	userID := uuid.New()
	bookingID := uuid.New()
	slotID := uuid.New()

	bookingRows := pgxmock.NewRows([]string{
		"id", "user_id", "slot_id", "offering_id", "status", "special_requests",
		"guest_name", "guest_email", "guest_phone", "created_at", "updated_at",
	}).AddRow(
		bookingID, &userID, slotID, f.offeringID, entity.BookingStatusCreated,
		(*string)(nil), (*string)(nil), (*string)(nil), (*string)(nil), f.now, f.now,
	)

	f.mock.ExpectQuery("FROM bookings").
		WithArgs(bookingID).
		WillReturnRows(bookingRows)
	f.mock.ExpectQuery("FROM slots").
		WithArgs(slotID).
		WillReturnRows(f.slotRows(slotID, 1, false))
	f.mock.ExpectQuery("FROM service_offerings").
		WithArgs(f.offeringID).
		WillReturnRows(f.offeringRows())
	f.mock.ExpectQuery("FROM businesses").
		WithArgs(f.businessID).
		WillReturnRows(f.businessRows())

	// Status update and seat release commit together.
	f.mock.ExpectBegin()
	f.mock.ExpectExec("UPDATE bookings").
		WithArgs(bookingID, entity.BookingStatusCancelled).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	f.mock.ExpectExec("UPDATE slots").
		WithArgs(slotID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	f.mock.ExpectCommit()

	cancelled := string(entity.BookingStatusCancelled)
	resp, err := f.service.UpdateBooking(context.Background(), userID, bookingID.String(),
		&request.UpdateBookingRequest{Status: &cancelled})
	require.NoError(t, err)

	assert.Equal(t, entity.BookingStatusCancelled, resp.Status)
	assert.NoError(t, f.mock.ExpectationsWereMet())
}

func TestUpdateBooking_StrangerForbidden(t *testing.T) {
	f := newBookingFixture(t, nil)
	bookerID := uuid.New()
	strangerID := uuid.New()
	bookingID := uuid.New()
	slotID := uuid.New()

	bookingRows := pgxmock.NewRows([]string{
		"id", "user_id", "slot_id", "offering_id", "status", "special_requests",
		"guest_name", "guest_email", "guest_phone", "created_at", "updated_at",
	}).AddRow(
		bookingID, &bookerID, slotID, f.offeringID, entity.BookingStatusCreated,
		(*string)(nil), (*string)(nil), (*string)(nil), (*string)(nil), f.now, f.now,
	)

	f.mock.ExpectQuery("FROM bookings").
		WithArgs(bookingID).
		WillReturnRows(bookingRows)
	f.mock.ExpectQuery("FROM slots").
		WithArgs(slotID).
		WillReturnRows(f.slotRows(slotID, 1, false))
	f.mock.ExpectQuery("FROM service_offerings").
		WithArgs(f.offeringID).
		WillReturnRows(f.offeringRows())
	f.mock.ExpectQuery("FROM businesses").
		WithArgs(f.businessID).
		WillReturnRows(f.businessRows())

	cancelled := string(entity.BookingStatusCancelled)
	_, err := f.service.UpdateBooking(context.Background(), strangerID, bookingID.String(),
		&request.UpdateBookingRequest{Status: &cancelled})

	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.NoError(t, f.mock.ExpectationsWereMet())
}

func TestUpdateBooking_NothingToUpdate(t *testing.T) {
	f := newBookingFixture(t, nil)

	_, err := f.service.UpdateBooking(context.Background(), uuid.New(), uuid.NewString(),
		&request.UpdateBookingRequest{})

	assert.ErrorIs(t, err, ErrValidation)
	assert.NoError(t, f.mock.ExpectationsWereMet())
}
