package adaptor

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"booking-platform/internal/data/entity"
	"booking-platform/internal/dto/response"
	"booking-platform/internal/timeslot"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type recordingAvailability struct {
	called    bool
	startDate time.Time
	days      int
}

func (r *recordingAvailability) GetAvailableSlots(ctx context.Context, businessID, offeringID string, startDate time.Time, days int) ([]response.DayAvailability, error) {
	r.called = true
	r.startDate = startDate
	r.days = days
	return nil, nil
}

func (r *recordingAvailability) WindowsForDate(ctx context.Context, offering *entity.ServiceOffering, date time.Time) ([]timeslot.Interval, error) {
	return nil, nil
}

func TestGetAvailability_DefaultStartDateIsLocalMidnight(t *testing.T) {
	svc := &recordingAvailability{}
	handler := NewAvailabilityHandler(svc, zap.NewNop())

	before := time.Now()
	req := httptest.NewRequest(http.MethodGet, "/api/businesses/b/offerings/o/availability", nil)
	rec := httptest.NewRecorder()
	handler.GetAvailability(rec, req)
	after := time.Now()

	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, svc.called)

	// Midnight of the local calendar day, not a UTC epoch truncation.
	assert.Equal(t, 0, svc.startDate.Hour())
	assert.Equal(t, 0, svc.startDate.Minute())
	assert.Equal(t, 0, svc.startDate.Second())
	assert.Equal(t, time.Local, svc.startDate.Location())

	beforeDay := time.Date(before.Year(), before.Month(), before.Day(), 0, 0, 0, 0, before.Location())
	afterDay := time.Date(after.Year(), after.Month(), after.Day(), 0, 0, 0, 0, after.Location())
	assert.True(t, svc.startDate.Equal(beforeDay) || svc.startDate.Equal(afterDay))

	assert.Equal(t, 7, svc.days)
}

func TestGetAvailability_DaysCapped(t *testing.T) {
	svc := &recordingAvailability{}
	handler := NewAvailabilityHandler(svc, zap.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/api/businesses/b/offerings/o/availability?start_date=2026-09-07&days=99", nil)
	rec := httptest.NewRecorder()
	handler.GetAvailability(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC), svc.startDate)
	assert.Equal(t, 31, svc.days)
}

func TestGetAvailability_BadStartDate(t *testing.T) {
	svc := &recordingAvailability{}
	handler := NewAvailabilityHandler(svc, zap.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/api/businesses/b/offerings/o/availability?start_date=07-09-2026", nil)
	rec := httptest.NewRecorder()
	handler.GetAvailability(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, svc.called)
}
