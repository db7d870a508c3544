package limitservice

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/GlebRadaev/cardguard/internal/config"
	"github.com/GlebRadaev/cardguard/internal/domain"
	"github.com/GlebRadaev/cardguard/internal/metrics"
	"github.com/GlebRadaev/cardguard/internal/traces"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

//go:generate mockgen -source=limitservice.go -destination=mock_limitservice.go -package=limitservice

type UserRepo interface {
	FindByID(ctx context.Context, id string) (*domain.User, error)
}

type CardRepo interface {
	CountCards(ctx context.Context, filter domain.CardFilter) (int, error)
	SumInitial(ctx context.Context, filter domain.CardFilter) (float64, error)
	FindCardByID(ctx context.Context, cardID, userID string) (*domain.Card, error)
}

const (
	checkFailedReason   = "Error checking limits, please try again"
	defaultQueryTimeout = 2 * time.Second

	operationCreate = "create"
	operationReload = "reload"
)

var ErrUserNotFound = errors.New("user not found")

type Service struct {
	users        UserRepo
	cards        CardRepo
	policy       config.LimitPolicy
	queryTimeout time.Duration
	location     *time.Location
	now          func() time.Time
}

type Option func(*Service)

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func WithLocation(loc *time.Location) Option {
	return func(s *Service) { s.location = loc }
}

func WithQueryTimeout(d time.Duration) Option {
	return func(s *Service) { s.queryTimeout = d }
}

func New(users UserRepo, cards CardRepo, policy config.LimitPolicy, opts ...Option) *Service {
	s := &Service{
		users:        users,
		cards:        cards,
		policy:       policy,
		queryTimeout: defaultQueryTimeout,
		location:     time.Local,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CanCreateCard checks a new card of amount against the user's tier limits.
// Faults deny with limit_check_failed.
func (s *Service) CanCreateCard(ctx context.Context, userID string, amount float64) *domain.LimitDecision {
	ctx, span := traces.StartSpan(ctx, "limits.can_create_card", traces.UserID(userID), traces.Amount(amount))
	defer span.End()
	start := time.Now()

	decision := s.canCreate(ctx, userID, amount)
	metrics.ObserveLimit(operationCreate, decision, time.Since(start))
	return decision
}

func (s *Service) canCreate(ctx context.Context, userID string, amount float64) *domain.LimitDecision {
	if !validAmount(amount) {
		return invalidAmount(amount)
	}

	snap, err := s.gather(ctx, userID, "")
	if err != nil {
		return s.checkFailed(userID, err)
	}
	if snap.user == nil {
		return userNotFound(userID)
	}

	tier, limits := s.resolveTier(snap.user)
	return evaluate(amount, tier, limits, snap.usage)
}

// CanReloadCard checks a reload of amount onto one of the user's cards. Card
// state is checked first, then the same chain as card creation.
func (s *Service) CanReloadCard(ctx context.Context, userID, cardID string, amount float64) *domain.LimitDecision {
	ctx, span := traces.StartSpan(ctx, "limits.can_reload_card",
		traces.UserID(userID), traces.CardID(cardID), traces.Amount(amount))
	defer span.End()
	start := time.Now()

	decision := s.canReload(ctx, userID, cardID, amount)
	metrics.ObserveLimit(operationReload, decision, time.Since(start))
	return decision
}

func (s *Service) canReload(ctx context.Context, userID, cardID string, amount float64) *domain.LimitDecision {
	if !validAmount(amount) {
		return invalidAmount(amount)
	}

	snap, err := s.gather(ctx, userID, cardID)
	if err != nil {
		return s.checkFailed(userID, err)
	}
	if snap.user == nil {
		return userNotFound(userID)
	}
	tier, limits := s.resolveTier(snap.user)

	card := snap.card
	switch {
	case card == nil:
		return deny(domain.DenialCardNotFound, "", 0, 0, fmt.Sprintf("Card %s not found", cardID))
	case !card.Reloadable.Enabled:
		return deny(domain.DenialNotReloadable, "", 0, 0, "Card is not reloadable")
	case card.Status != domain.CardStatusActive:
		return deny(domain.DenialCardStatus, "", 0, 0, fmt.Sprintf("Card is %s", card.Status))
	case card.Reloadable.ReloadCount >= card.Reloadable.MaxReloads:
		return deny(domain.DenialMaxReloads, "", float64(card.Reloadable.MaxReloads), float64(card.Reloadable.ReloadCount),
			fmt.Sprintf("Maximum reloads reached: %d/%d", card.Reloadable.ReloadCount, card.Reloadable.MaxReloads))
	}

	ceiling := math.Min(s.policy.MaxCardBalance(), limits.PerCard)
	if next := roundCents(card.Balance.Current + amount); next > ceiling {
		return deny(domain.DenialBalanceCeiling, "", ceiling, next,
			fmt.Sprintf("Card balance would exceed maximum: %s/%s", money(next), money(ceiling)))
	}

	return evaluate(amount, tier, limits, snap.usage)
}

// GetSpendingSummary reports usage against every limit dimension.
func (s *Service) GetSpendingSummary(ctx context.Context, userID string) (*domain.SpendingSummary, error) {
	ctx, span := traces.StartSpan(ctx, "limits.spending_summary", traces.UserID(userID))
	defer span.End()

	snap, err := s.gather(ctx, userID, "")
	if err != nil {
		traces.Fail(span, err)
		return nil, fmt.Errorf("failed to gather spending for user %s: %w", userID, err)
	}
	if snap.user == nil {
		return nil, ErrUserNotFound
	}

	tier, limits := s.resolveTier(snap.user)
	return &domain.SpendingSummary{
		UserID:      userID,
		Tier:        tier,
		Daily:       usageOf(snap.usage.Daily, limits.Daily),
		Weekly:      usageOf(snap.usage.Weekly, limits.Weekly),
		Monthly:     usageOf(snap.usage.Monthly, limits.Monthly),
		ActiveCards: usageOf(float64(snap.usage.ActiveCards), float64(limits.MaxActiveCards)),
	}, nil
}

// CheckLimitWarnings returns one warning per dimension at or above 80% use.
func (s *Service) CheckLimitWarnings(ctx context.Context, userID string) ([]domain.LimitWarning, error) {
	summary, err := s.GetSpendingSummary(ctx, userID)
	if err != nil {
		return nil, err
	}

	dimensions := []struct {
		kind  domain.LimitType
		label string
		usage domain.LimitUsage
	}{
		{domain.LimitDaily, "daily spending", summary.Daily},
		{domain.LimitWeekly, "weekly spending", summary.Weekly},
		{domain.LimitMonthly, "monthly spending", summary.Monthly},
		{domain.LimitActiveCards, "active cards", summary.ActiveCards},
	}

	warnings := make([]domain.LimitWarning, 0)
	for _, d := range dimensions {
		pct := d.usage.PercentUsed
		if pct < config.WarningPercent {
			continue
		}
		level := domain.WarningLevelWarning
		if pct >= config.CriticalPercent {
			level = domain.WarningLevelCritical
		}
		warnings = append(warnings, domain.LimitWarning{
			Type:        d.kind,
			Level:       level,
			PercentUsed: pct,
			Message:     fmt.Sprintf("You have used %.0f%% of your %s limit", math.Floor(pct), d.label),
		})
	}
	return warnings, nil
}

func (s *Service) resolveTier(user *domain.User) (int, domain.TierLimits) {
	tier := user.KYCTier
	if tier == 0 || !user.KYCVerified {
		tier = config.DefaultTier
	}
	return s.policy.Tier(tier)
}

func (s *Service) checkFailed(userID string, err error) *domain.LimitDecision {
	zap.L().Error("limit check failed, denying", zap.String("userID", userID), zap.Error(err))
	return deny(domain.DenialLimitCheckFailed, "", 0, 0, checkFailedReason)
}

type snapshot struct {
	user  *domain.User
	card  *domain.Card
	usage domain.Usage
}

// windowStart is local midnight days back from now.
func windowStart(now time.Time, days int) time.Time {
	y, m, d := now.Date()
	return time.Date(y, m, d-days, 0, 0, 0, 0, now.Location())
}

func (s *Service) gather(ctx context.Context, userID, cardID string) (*snapshot, error) {
	now := s.now().In(s.location)
	snap := &snapshot{}

	g, gctx := errgroup.WithContext(ctx)
	query := func(name string, fn func(ctx context.Context) error) {
		g.Go(func() error {
			qctx, cancel := context.WithTimeout(gctx, s.queryTimeout)
			defer cancel()
			if err := fn(qctx); err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
			return nil
		})
	}
	sum := func(name string, days int, dst *float64) {
		query(name, func(ctx context.Context) error {
			total, err := s.cards.SumInitial(ctx, domain.CardFilter{UserID: userID, CreatedAfter: windowStart(now, days)})
			if err != nil {
				return err
			}
			*dst = roundCents(total)
			return nil
		})
	}

	query("find user", func(ctx context.Context) (err error) {
		snap.user, err = s.users.FindByID(ctx, userID)
		return err
	})
	if cardID != "" {
		query("find card", func(ctx context.Context) (err error) {
			snap.card, err = s.cards.FindCardByID(ctx, cardID, userID)
			return err
		})
	}
	// Pending cards hold a slot so review-bound issuance cannot outgrow the ceiling.
	query("count open cards", func(ctx context.Context) (err error) {
		snap.usage.ActiveCards, err = s.cards.CountCards(ctx, domain.CardFilter{UserID: userID, Statuses: domain.SlotStatuses})
		return err
	})
	sum("daily spend", 0, &snap.usage.Daily)
	sum("weekly spend", config.WeeklyWindowDays, &snap.usage.Weekly)
	sum("monthly spend", config.MonthlyWindowDays, &snap.usage.Monthly)

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return snap, nil
}
