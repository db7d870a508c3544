package handlers

import (
	"net/http"

	_ "github.com/GlebRadaev/cardguard/docs"
	cardhandlers "github.com/GlebRadaev/cardguard/internal/handlers/cards"
	limithandlers "github.com/GlebRadaev/cardguard/internal/handlers/limits"
	"github.com/GlebRadaev/cardguard/internal/metrics"
	"github.com/GlebRadaev/cardguard/internal/service"
	"github.com/GlebRadaev/cardguard/pkg/auth"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

//go:generate mockgen -source=handlers.go -destination=mock_handlers.go -package=handlers

type CardHandler interface {
	Evaluate(w http.ResponseWriter, r *http.Request)
	IssueCard(w http.ResponseWriter, r *http.Request)
	ReloadCard(w http.ResponseWriter, r *http.Request)
	RecordChargeback(w http.ResponseWriter, r *http.Request)
}

type LimitHandler interface {
	GetSpendingSummary(w http.ResponseWriter, r *http.Request)
	GetWarnings(w http.ResponseWriter, r *http.Request)
}

type Handlers struct {
	CardHandler  CardHandler
	LimitHandler LimitHandler

	jwtService auth.JWTServiceInterface
}

func New(s *service.Services, jwtService auth.JWTServiceInterface) *Handlers {
	return &Handlers{
		CardHandler:  cardhandlers.New(s.CardService),
		LimitHandler: limithandlers.New(s.LimitService),
		jwtService:   jwtService,
	}
}

func (h *Handlers) InitRoutes(r chi.Router) chi.Router {
	r.Use(
		middleware.RealIP,
		middleware.Recoverer,
		middleware.Logger,
		metrics.Middleware,
	)
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("doc.json"),
	))
	r.Handle("/metrics", metrics.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Use(auth.Middleware(h.jwtService))

		r.Route("/cards", func(r chi.Router) {
			r.Post("/", h.CardHandler.IssueCard)
			r.Post("/evaluate", h.CardHandler.Evaluate)
			r.Post("/{cardID}/reload", h.CardHandler.ReloadCard)
			r.Post("/{cardID}/chargeback", h.CardHandler.RecordChargeback)
		})
		r.Route("/limits", func(r chi.Router) {
			r.Get("/summary", h.LimitHandler.GetSpendingSummary)
			r.Get("/warnings", h.LimitHandler.GetWarnings)
		})
	})

	return r
}
