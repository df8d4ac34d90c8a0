package wire

import (
	"booking-platform/internal/adaptor"
	"booking-platform/internal/data/repository"
	"booking-platform/pkg/middleware"
	"booking-platform/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireBooking(
	r chi.Router,
	bookingHandler *adaptor.BookingHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== OPTIONAL AUTH ROUTES ====================
	// Booking creation accepts both guests and logged-in users. A present but
	// invalid token is rejected; a missing token means a guest booking.
	r.Group(func(r chi.Router) {
		r.Use(middleware.OptionalAuth(repo.Session, log))

		// POST /api/bookings - Create new booking
		r.Post("/api/bookings", bookingHandler.CreateBooking)
	})

	// ==================== PROTECTED ROUTES (require auth) ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, log))

		// GET /api/bookings/{id} - View one booking (booker or business owner)
		r.Get("/api/bookings/{id}", bookingHandler.GetBookingByID)

		// PATCH /api/bookings/{id} - Change status or special requests
		r.Patch("/api/bookings/{id}", bookingHandler.UpdateBooking)

		// DELETE /api/bookings/{id} - Cancel a booking
		r.Delete("/api/bookings/{id}", bookingHandler.CancelBooking)

		// GET /api/user/bookings - View booking history (user's own bookings)
		r.Get("/api/user/bookings", bookingHandler.GetUserBookings)

		// GET /api/businesses/{businessID}/bookings - Owner view of all bookings
		r.Get("/api/businesses/{businessID}/bookings", bookingHandler.GetBusinessBookings)
	})
}
