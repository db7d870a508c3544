package service

import (
	"github.com/GlebRadaev/cardguard/internal/config"
	"github.com/GlebRadaev/cardguard/internal/handlers/cards"
	"github.com/GlebRadaev/cardguard/internal/handlers/limits"
	"github.com/GlebRadaev/cardguard/internal/repo"
	issuanceservice "github.com/GlebRadaev/cardguard/internal/service/issuanceservice"
	limitservice "github.com/GlebRadaev/cardguard/internal/service/limitservice"
	riskservice "github.com/GlebRadaev/cardguard/internal/service/riskservice"
)

type Services struct {
	CardService  cards.Service
	LimitService limits.Service
}

func New(repo *repo.Repositories, cfg *config.Config, locker issuanceservice.Locker) *Services {
	loc := cfg.Location()
	policy := config.DefaultLimitPolicy()

	limitService := limitservice.New(repo.UserRepo, repo.CardRepo, policy,
		limitservice.WithLocation(loc),
		limitservice.WithQueryTimeout(cfg.QueryTimeout),
	)
	riskService := riskservice.New(repo.UserRepo, repo.CardRepo, cfg.Risk,
		riskservice.WithLocation(loc),
		riskservice.WithQueryTimeout(cfg.QueryTimeout),
	)
	cardService := issuanceservice.New(limitService, riskService, repo.CardRepo, locker, policy)

	return &Services{
		CardService:  cardService,
		LimitService: limitService,
	}
}
