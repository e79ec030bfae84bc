package rest

import (
	"context"
	"fmt"
	"net/http"

	core_port "dar360-service/internal/core/port"
	"dar360-service/internal/core/port/usecases_port"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// Handlers groups the per-entity handler sets the router mounts.
type Handlers struct {
	Auth         *AuthHandlers
	Users        *UserHandlers
	Properties   *PropertyHandlers
	Viewings     *ViewingHandlers
	Contracts    *ContractHandlers
	Applications *ApplicationHandlers
	Maintenance  *MaintenanceHandlers
	Commissions  *CommissionHandlers
	Payments     *PaymentHandlers
	Saved        *SavedPropertyHandlers
	Events       *EventHandlers
}

// Server is the REST API server.
type Server struct {
	httpServer *http.Server
	logger     core_port.LoggerPort
}

// NewServer builds the router and wires every route.
func NewServer(port string, allowedOrigins []string, handlers Handlers,
	validateUC usecases_port.ValidateTokenUseCasePort, baseLogger core_port.LoggerPort) *Server {

	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(LoggerMiddleware(baseLogger))
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Trace-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	requireAuth := AuthMiddleware(validateUC)

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", handlers.Auth.Register)
			r.Post("/login", handlers.Auth.Login)
			r.Post("/forgot-password", handlers.Auth.ForgotPassword)
			r.Post("/reset-password", handlers.Auth.ResetPassword)

			r.Group(func(r chi.Router) {
				r.Use(requireAuth)
				r.Get("/me", handlers.Auth.Me)
				r.Patch("/me", handlers.Auth.UpdateMe)
				r.Post("/change-password", handlers.Auth.ChangePassword)
				r.Post("/logout", handlers.Auth.Logout)
			})
		})

		r.Route("/properties", func(r chi.Router) {
			// Browsing listings and share links are public.
			r.Get("/", handlers.Properties.List)
			r.Get("/{propertyID}", handlers.Properties.Get)
			r.Get("/{propertyID}/share", handlers.Properties.Share)

			r.Group(func(r chi.Router) {
				r.Use(requireAuth)
				r.Post("/", handlers.Properties.Create)
				r.Patch("/{propertyID}", handlers.Properties.Update)
				r.Delete("/{propertyID}", handlers.Properties.Delete)
				r.Post("/{propertyID}/images", handlers.Properties.AddImages)
			})
		})

		r.Group(func(r chi.Router) {
			r.Use(requireAuth)

			r.Route("/viewings", func(r chi.Router) {
				r.Get("/", handlers.Viewings.List)
				r.Post("/", handlers.Viewings.Schedule)
				r.Get("/{viewingID}", handlers.Viewings.Get)
				r.Patch("/{viewingID}", handlers.Viewings.Update)
				r.Post("/{viewingID}/outcome", handlers.Viewings.LogOutcome)
				r.Post("/{viewingID}/cancel", handlers.Viewings.Cancel)
			})

			r.Route("/contracts", func(r chi.Router) {
				r.Get("/", handlers.Contracts.List)
				r.Post("/", handlers.Contracts.Create)
				r.Get("/{contractID}", handlers.Contracts.Get)
				r.Patch("/{contractID}", handlers.Contracts.Update)
				r.Post("/{contractID}/send-otp", handlers.Contracts.SendOTP)
				r.Post("/{contractID}/verify-otp", handlers.Contracts.VerifyOTP)
				r.Get("/{contractID}/generate-pdf", handlers.Contracts.GeneratePDF)
				r.Get("/{contractID}/download", handlers.Contracts.Download)
				r.Get("/{contractID}/payments", handlers.Payments.ListByContract)
			})

			r.Route("/applications", func(r chi.Router) {
				r.Get("/", handlers.Applications.List)
				r.Post("/", handlers.Applications.Submit)
				r.Post("/{applicationID}/approve", handlers.Applications.Approve)
				r.Post("/{applicationID}/reject", handlers.Applications.Reject)
				r.Post("/{applicationID}/withdraw", handlers.Applications.Withdraw)
			})

			r.Route("/maintenance", func(r chi.Router) {
				r.Get("/", handlers.Maintenance.List)
				r.Post("/", handlers.Maintenance.Create)
				r.Get("/{requestID}", handlers.Maintenance.Get)
				r.Patch("/{requestID}", handlers.Maintenance.Update)
			})

			r.Route("/commissions", func(r chi.Router) {
				r.Get("/", handlers.Commissions.List)
				r.Patch("/{commissionID}", handlers.Commissions.Update)
			})

			r.Post("/payments/{chequeID}/mark-paid", handlers.Payments.MarkPaid)

			r.Route("/saved-properties", func(r chi.Router) {
				r.Get("/", handlers.Saved.List)
				r.Post("/", handlers.Saved.Save)
				r.Delete("/{propertyID}", handlers.Saved.Unsave)
			})

			r.Route("/users", func(r chi.Router) {
				r.Get("/", handlers.Users.List)
				r.Post("/verify-rera", handlers.Users.VerifyRera)
				r.Get("/{userID}", handlers.Users.Get)
				r.Patch("/{userID}", handlers.Users.Update)
			})

			r.Get("/events", handlers.Events.Subscribe)
		})
	})

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}

	return &Server{
		httpServer: srv,
		logger:     baseLogger,
	}
}

// Start runs the HTTP server until Stop is called.
func (s *Server) Start() error {
	s.logger.Info("Starting REST API server", core_port.Fields{"address": s.httpServer.Addr})
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		s.logger.Error("Could not start server", err, nil)
		return fmt.Errorf("could not start server: %w", err)
	}
	return nil
}

// Stop shuts the server down gracefully.
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Stopping REST API server...", nil)
	return s.httpServer.Shutdown(ctx)
}
