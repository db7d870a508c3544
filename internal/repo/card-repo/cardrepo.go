package cardrepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/GlebRadaev/cardguard/internal/domain"
	"github.com/GlebRadaev/cardguard/internal/pg"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

const cardColumns = `id, user_id, status, initial_balance, current_balance, reloadable, max_reloads, reload_count, ip_address, user_agent, notes, chargeback, created_at`

var (
	ErrCardNotFound   = domain.ErrCardNotFound
	ErrReloadRejected = domain.ErrReloadRejected
)

type Repository struct {
	db        pg.Database
	txManager pg.TXManager
}

func New(db pg.Database, txManager pg.TXManager) *Repository {
	return &Repository{
		db:        db,
		txManager: txManager,
	}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanCard(row scanner) (*domain.Card, error) {
	var card domain.Card
	var status string
	err := row.Scan(
		&card.ID,
		&card.UserID,
		&status,
		&card.Balance.Initial,
		&card.Balance.Current,
		&card.Reloadable.Enabled,
		&card.Reloadable.MaxReloads,
		&card.Reloadable.ReloadCount,
		&card.Metadata.IPAddress,
		&card.Metadata.UserAgent,
		&card.Metadata.Notes,
		&card.Metadata.Chargeback,
		&card.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	card.Status = domain.CardStatus(status)
	return &card, nil
}

// whereClause renders the filter as a WHERE clause with positional args.
func whereClause(filter domain.CardFilter) (string, []any) {
	where := "WHERE user_id = $1"
	args := []any{filter.UserID}
	if len(filter.Statuses) > 0 {
		statuses := make([]string, len(filter.Statuses))
		for i, status := range filter.Statuses {
			statuses[i] = string(status)
		}
		args = append(args, statuses)
		where += fmt.Sprintf(" AND status = ANY($%d)", len(args))
	}
	if !filter.CreatedAfter.IsZero() {
		args = append(args, filter.CreatedAfter)
		where += fmt.Sprintf(" AND created_at >= $%d", len(args))
	}
	if filter.Disputed {
		where += " AND (chargeback OR notes ILIKE '%chargeback%')"
	}
	return where, args
}

func (r *Repository) CountCards(ctx context.Context, filter domain.CardFilter) (int, error) {
	where, args := whereClause(filter)
	query := "SELECT COUNT(*) FROM cards " + where

	var count int
	if err := r.db.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		zap.L().Error("can't count cards", zap.String("userID", filter.UserID), zap.Error(err))
		return 0, err
	}
	return count, nil
}

// SumInitial sums the funded amount of every card matching filter.
func (r *Repository) SumInitial(ctx context.Context, filter domain.CardFilter) (float64, error) {
	where, args := whereClause(filter)
	query := "SELECT COALESCE(SUM(initial_balance), 0) FROM cards " + where

	var sum float64
	if err := r.db.QueryRow(ctx, query, args...).Scan(&sum); err != nil {
		zap.L().Error("can't sum card balances", zap.String("userID", filter.UserID), zap.Error(err))
		return 0, err
	}
	return sum, nil
}

// FindCards returns matching cards newest first. Reload history is not
// loaded; limit <= 0 means no limit.
func (r *Repository) FindCards(ctx context.Context, filter domain.CardFilter, limit int) ([]domain.Card, error) {
	where, args := whereClause(filter)
	query := "SELECT " + cardColumns + " FROM cards " + where + " ORDER BY created_at DESC"
	if limit > 0 {
		args = append(args, limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		zap.L().Error("can't find cards", zap.String("userID", filter.UserID), zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	cards := make([]domain.Card, 0)
	for rows.Next() {
		card, err := scanCard(rows)
		if err != nil {
			zap.L().Error("can't scan card row", zap.Error(err))
			return nil, err
		}
		cards = append(cards, *card)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return cards, nil
}

// FindCardByID returns the user's card with its reload history, or nil, nil
// when the card does not exist or belongs to someone else.
func (r *Repository) FindCardByID(ctx context.Context, cardID, userID string) (*domain.Card, error) {
	query := "SELECT " + cardColumns + " FROM cards WHERE id = $1 AND user_id = $2"
	card, err := scanCard(r.db.QueryRow(ctx, query, cardID, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		zap.L().Error("can't find card", zap.String("cardID", cardID), zap.Error(err))
		return nil, err
	}

	historyQuery := `
		SELECT amount, reloaded_at
		FROM card_reloads
		WHERE card_id = $1
		ORDER BY reloaded_at
	`
	rows, err := r.db.Query(ctx, historyQuery, cardID)
	if err != nil {
		zap.L().Error("can't load reload history", zap.String("cardID", cardID), zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var entry domain.ReloadEntry
		if err := rows.Scan(&entry.Amount, &entry.ReloadedAt); err != nil {
			zap.L().Error("can't scan reload row", zap.Error(err))
			return nil, err
		}
		card.Reloadable.History = append(card.Reloadable.History, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return card, nil
}

// CountReloads counts reload entries across all of the user's cards since after.
func (r *Repository) CountReloads(ctx context.Context, userID string, after time.Time) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM card_reloads
		WHERE user_id = $1 AND reloaded_at >= $2
	`
	var count int
	if err := r.db.QueryRow(ctx, query, userID, after).Scan(&count); err != nil {
		zap.L().Error("can't count reloads", zap.String("userID", userID), zap.Error(err))
		return 0, err
	}
	return count, nil
}

func (r *Repository) CreateCard(ctx context.Context, card *domain.Card) error {
	query := `
		INSERT INTO cards (` + cardColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`
	_, err := r.db.Exec(ctx, query,
		card.ID,
		card.UserID,
		string(card.Status),
		card.Balance.Initial,
		card.Balance.Current,
		card.Reloadable.Enabled,
		card.Reloadable.MaxReloads,
		card.Reloadable.ReloadCount,
		card.Metadata.IPAddress,
		card.Metadata.UserAgent,
		card.Metadata.Notes,
		card.Metadata.Chargeback,
		card.CreatedAt,
	)
	if err != nil {
		zap.L().Error("can't save card", zap.String("cardID", card.ID), zap.Error(err))
		return err
	}
	return nil
}

// ApplyReload bumps the reload counter and current balance and appends the
// history entry in one transaction. The update is guarded so a card that left
// the active status or reached its reload or balance ceiling in the meantime
// is left untouched.
func (r *Repository) ApplyReload(ctx context.Context, cardID, userID string, entry domain.ReloadEntry, maxBalance float64) (*domain.Card, error) {
	updateQuery := `
		UPDATE cards
		SET reload_count = reload_count + 1, current_balance = current_balance + $1
		WHERE id = $2 AND user_id = $3 AND status = 'active' AND reloadable
			AND reload_count < max_reloads AND current_balance + $1 <= $4
		RETURNING ` + cardColumns
	insertQuery := `
		INSERT INTO card_reloads (card_id, user_id, amount, reloaded_at)
		VALUES ($1, $2, $3, $4)
	`

	var updated *domain.Card
	err := r.txManager.Begin(ctx, func(ctx context.Context) error {
		card, err := scanCard(r.db.QueryRow(ctx, updateQuery, entry.Amount, cardID, userID, maxBalance))
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return ErrReloadRejected
			}
			zap.L().Error("can't update card on reload", zap.String("cardID", cardID), zap.Error(err))
			return err
		}
		if _, err := r.db.Exec(ctx, insertQuery, cardID, userID, entry.Amount, entry.ReloadedAt); err != nil {
			zap.L().Error("can't save reload entry", zap.String("cardID", cardID), zap.Error(err))
			return err
		}
		updated = card
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// FlagChargeback marks the card as disputed and appends note to its notes.
func (r *Repository) FlagChargeback(ctx context.Context, cardID, userID, note string) error {
	query := `
		UPDATE cards
		SET chargeback = TRUE,
			notes = CASE WHEN notes = '' THEN $1 ELSE notes || E'\n' || $1 END
		WHERE id = $2 AND user_id = $3
	`
	tag, err := r.db.Exec(ctx, query, note, cardID, userID)
	if err != nil {
		zap.L().Error("can't flag chargeback", zap.String("cardID", cardID), zap.Error(err))
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrCardNotFound
	}
	return nil
}
