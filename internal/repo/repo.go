package repo

import (
	"github.com/GlebRadaev/cardguard/internal/pg"
	cardrepo "github.com/GlebRadaev/cardguard/internal/repo/card-repo"
	userrepo "github.com/GlebRadaev/cardguard/internal/repo/user-repo"
	"github.com/GlebRadaev/cardguard/internal/service/issuanceservice"
	"github.com/GlebRadaev/cardguard/internal/service/limitservice"
	"github.com/GlebRadaev/cardguard/internal/service/riskservice"
)

// CardRepo is everything the services need from card storage.
type CardRepo interface {
	riskservice.CardRepo
	limitservice.CardRepo
	issuanceservice.CardRepo
}

type Repositories struct {
	UserRepo riskservice.UserRepo
	CardRepo CardRepo
}

func New(conn pg.Database, txManager pg.TXManager) *Repositories {
	userRepo := userrepo.New(conn)
	cardRepo := cardrepo.New(conn, txManager)

	return &Repositories{
		UserRepo: userRepo,
		CardRepo: cardRepo,
	}
}
