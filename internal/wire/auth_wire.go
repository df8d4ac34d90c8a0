package wire

import (
	"booking-platform/internal/adaptor"
	"booking-platform/internal/data/repository"
	"booking-platform/pkg/middleware"
	"booking-platform/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireAuth(
	r chi.Router,
	authHandler *adaptor.AuthHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	// POST /api/auth/register - Create a new account
	r.Post("/api/auth/register", authHandler.Register)

	// POST /api/auth/login - Exchange credentials for a session token
	r.Post("/api/auth/login", authHandler.Login)

	// ==================== PROTECTED ROUTES (require auth) ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, log))

		// POST /api/auth/logout - Revoke the current session
		r.Post("/api/auth/logout", authHandler.Logout)
	})
}
