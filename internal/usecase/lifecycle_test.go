package usecase

import (
	"testing"

	"booking-platform/internal/data/entity"

	"github.com/stretchr/testify/assert"
)

func TestValidateStatusTransition(t *testing.T) {
	tests := []struct {
		name    string
		from    entity.BookingStatus
		to      entity.BookingStatus
		isOwner bool
		wantErr error
	}{
		{
			name: "created to pending",
			from: entity.BookingStatusCreated,
			to:   entity.BookingStatusPending,
		},
		{
			name: "created to cancelled",
			from: entity.BookingStatusCreated,
			to:   entity.BookingStatusCancelled,
		},
		{
			name:    "pending to confirmed as owner",
			from:    entity.BookingStatusPending,
			to:      entity.BookingStatusConfirmed,
			isOwner: true,
		},
		{
			name:    "pending to confirmed as customer",
			from:    entity.BookingStatusPending,
			to:      entity.BookingStatusConfirmed,
			wantErr: ErrUnauthorized,
		},
		{
			name:    "confirmed to completed",
			from:    entity.BookingStatusConfirmed,
			to:      entity.BookingStatusCompleted,
			isOwner: true,
		},
		{
			name: "confirmed to cancelled",
			from: entity.BookingStatusConfirmed,
			to:   entity.BookingStatusCancelled,
		},
		{
			name:    "created to confirmed skips pending even for owner",
			from:    entity.BookingStatusCreated,
			to:      entity.BookingStatusConfirmed,
			isOwner: true,
			wantErr: ErrInvalidStatusTransition,
		},
		{
			name:    "completed is terminal",
			from:    entity.BookingStatusCompleted,
			to:      entity.BookingStatusCancelled,
			wantErr: ErrInvalidStatusTransition,
		},
		{
			name:    "cancelled is terminal",
			from:    entity.BookingStatusCancelled,
			to:      entity.BookingStatusPending,
			wantErr: ErrInvalidStatusTransition,
		},
		{
			name:    "no self transition",
			from:    entity.BookingStatusPending,
			to:      entity.BookingStatusPending,
			wantErr: ErrInvalidStatusTransition,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStatusTransition(tt.from, tt.to, tt.isOwner)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}
