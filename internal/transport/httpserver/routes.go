package httpserver

import (
	"net/http"
	"time"

	"tenf-admin-go/internal/config"
	"tenf-admin-go/internal/transport/httpserver/handler"
	authmw "tenf-admin-go/internal/transport/httpserver/middleware"
	"tenf-admin-go/pkg/logger"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

func NewRouter(cfg config.Config, handlers *handler.Handlers, log logger.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(authmw.NewCORS(cfg.CORSOrigins))

	// EventSub authenticates with its own HMAC signature, not the admin token.
	r.Post("/webhooks/twitch/eventsub", handlers.TwitchEventSub)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", handlers.Health)

		auth := authmw.NewAdminAuth(cfg.Auth, log)
		r.Group(func(r chi.Router) {
			r.Use(auth.Middleware)

			r.Get("/members", handlers.ListMembers)
			r.Post("/members", handlers.CreateMember)
			r.Post("/members/match", handlers.MatchMemberLogins)
			r.Get("/members/{login}", handlers.GetMember)
			r.Patch("/members/{login}", handlers.UpdateMember)
			r.Delete("/members/{login}", handlers.DeactivateMember)
			r.Post("/members/{login}/badges", handlers.AddMemberBadge)
			r.Delete("/members/{login}/badges/{badge}", handlers.RemoveMemberBadge)

			r.Get("/events", handlers.ListEvents)
			r.Post("/events", handlers.CreateEvent)
			r.Get("/events/{id}", handlers.GetEvent)
			r.Patch("/events/{id}", handlers.UpdateEvent)
			r.Delete("/events/{id}", handlers.DeleteEvent)
			r.Post("/events/{id}/publish", handlers.PublishEvent)
			r.Post("/events/{id}/unpublish", handlers.UnpublishEvent)
			r.Get("/events/{id}/registrations", handlers.ListEventRegistrations)
			r.Post("/events/{id}/registrations", handlers.RegisterForEvent)
			r.Delete("/events/{id}/registrations/{login}", handlers.UnregisterFromEvent)
			r.Get("/events/{id}/presences", handlers.ListEventPresences)
			r.Put("/events/{id}/presences", handlers.SetEventPresence)

			r.Get("/spotlights", handlers.ListSpotlights)
			r.Post("/spotlights", handlers.CreateSpotlight)
			r.Get("/spotlights/active", handlers.GetActiveSpotlight)
			r.Post("/spotlights/{id}/close", handlers.CloseSpotlight)
			r.Get("/spotlights/{id}/evaluations", handlers.ListSpotlightEvaluations)
			r.Put("/spotlights/{id}/evaluations", handlers.EvaluateSpotlight)

			r.Get("/evaluations/{login}", handlers.ListEvaluations)
			r.Get("/evaluations/{login}/average", handlers.GetEvaluationAverage)
			r.Put("/evaluations/{login}/{month}", handlers.ScoreEvaluation)
			r.Delete("/evaluations/{login}/{month}", handlers.DeleteEvaluation)

			r.Post("/vips/{login}/grant", handlers.GrantVip)
			r.Post("/vips/{login}/revoke", handlers.RevokeVip)
			r.Get("/vips/{login}/history", handlers.ListVipHistory)

			r.Get("/webhooks/events", handlers.ListWebhookEvents)
		})
	})

	return r
}
