// Package http exposes the rental marketplace over a JSON REST API.
package http

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-playground/validator/v10"
	"github.com/mejbahuddintamim/bdrent-server/internal/app/config"
	"github.com/mejbahuddintamim/bdrent-server/internal/auth"
	"github.com/mejbahuddintamim/bdrent-server/internal/platform/logger"
	"github.com/mejbahuddintamim/bdrent-server/internal/service"
)

type Server struct {
	listings service.ListingService
	bookings service.BookingService
	users    service.UserService
	payments service.PaymentService
	tokens   *auth.TokenIssuer
	router   *chi.Mux
	validate *validator.Validate
	log      logger.Logger
	httpSrv  *http.Server
}

func NewServer(
	cfg config.HTTPServerConfig,
	listings service.ListingService,
	bookings service.BookingService,
	users service.UserService,
	payments service.PaymentService,
	tokens *auth.TokenIssuer,
	log logger.Logger,
) *Server {
	s := &Server{
		listings: listings,
		bookings: bookings,
		users:    users,
		payments: payments,
		tokens:   tokens,
		router:   chi.NewRouter(),
		validate: validator.New(),
		log:      log,
	}

	s.setupMiddleware(cfg.AllowedOrigins)
	s.setupRoutes()

	s.httpSrv = &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      s.router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupMiddleware(allowedOrigins []string) {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(requestLogger(s.log))
	s.router.Use(middleware.Recoverer)
	s.router.Use(traceMiddleware)
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
}

func (s *Server) setupRoutes() {
	s.router.Get("/health", s.handleHealth)

	s.router.Route("/api", func(r chi.Router) {
		// Public listing reads.
		r.Get("/listings", s.handleListOpenListings)
		r.Get("/listings/search", s.handleSearchListings)
		r.Get("/listings/{id}", s.handleGetListing)

		// Public existence probe used during sign-in.
		r.Get("/users/confirm/{email}", s.handleConfirmUser)
		// Upsert issues the session token, so it cannot require one.
		r.Post("/users", s.handleUpsertUser)

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware(s.tokens, s.log))

			r.Post("/listings", s.handleCreateListing)
			r.Put("/listings/{id}", s.handleUpdateListing)
			r.Delete("/listings/{id}", s.handleDeleteListing)
			r.Get("/host/listings", s.handleListHostListings)
			r.Patch("/listings/{id}/status", s.handleSetBookingStatus)

			r.Post("/bookings", s.handleCreateBooking)
			r.Get("/bookings", s.handleListAllBookings)
			r.Get("/bookings/{id}", s.handleGetBooking)
			r.Delete("/bookings/{id}", s.handleCancelBooking)
			r.Get("/guest/bookings", s.handleListGuestBookings)
			r.Get("/host/bookings", s.handleListHostBookings)

			r.Get("/users", s.handleListUsers)
			r.Get("/users/{email}", s.handleGetUser)
			r.Patch("/users/{email}/identity", s.handleSetIdentityImage)

			r.Post("/payments/intent", s.handleCreatePaymentIntent)
			r.Post("/payments/session", s.handleCreatePaymentSession)
		})
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"}, s.log)
}

// Run blocks until the listener fails or the server is shut down.
func (s *Server) Run() error {
	s.log.Infof("HTTP server listening on %s", s.httpSrv.Addr)
	if err := s.httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpSrv.Shutdown(ctx)
}
