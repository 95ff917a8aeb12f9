package http

import (
	"net/http"

	"github.com/contact-form-api/internal/application/contact"
	"github.com/contact-form-api/internal/config"
	"github.com/contact-form-api/internal/transport/http/handler"
	appmiddleware "github.com/contact-form-api/internal/transport/http/middleware"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"golang.org/x/time/rate"
)

// NewRouter builds and returns the application router.
func NewRouter(cfg *config.Config, deps *Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// 5 requests/second, burst of 10 — the submission endpoint is public and
	// triggers outbound mail, so it gets the tightest guard.
	submitRL := appmiddleware.NewRateLimiter(rate.Limit(5), 10)

	contactSvc := contact.NewService(contact.ServiceDeps{
		SubmitterRepo:   deps.SubmitterRepo,
		MessageRepo:     deps.MessageRepo,
		Mailer:          deps.Mailer,
		AdminEmail:      cfg.AdminEmail,
		FrontendBaseURL: cfg.FrontendBaseURL,
		TokenTTL:        cfg.VerificationTokenTTL,
	})

	healthH := handler.NewHealthHandler()
	contactH := handler.NewContactHandler(contactSvc)

	r.Get("/health", healthH.Status)
	r.Route("/api", func(r chi.Router) {
		r.With(submitRL.Limit).Post("/send-email", contactH.SendEmail)
		r.Get("/verify-email", contactH.VerifyEmail)
	})

	return r
}
