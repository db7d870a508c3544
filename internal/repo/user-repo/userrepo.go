package userrepo

import (
	"context"
	"errors"

	"github.com/GlebRadaev/cardguard/internal/domain"
	"github.com/GlebRadaev/cardguard/internal/pg"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{
		db: db,
	}
}

// FindByID returns nil, nil when the user does not exist. An unset tier is
// read as 0 and resolved by the caller.
func (repo *Repository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	query := `
		SELECT id, COALESCE(kyc_tier, 0), kyc_verified, created_at
		FROM users
		WHERE id = $1
	`
	var user domain.User
	err := repo.db.QueryRow(ctx, query, id).Scan(&user.ID, &user.KYCTier, &user.KYCVerified, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		zap.L().Error("can't find user", zap.String("userID", id), zap.Error(err))
		return nil, err
	}
	return &user, nil
}
