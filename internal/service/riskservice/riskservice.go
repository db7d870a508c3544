package riskservice

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

//go:generate mockgen -source=riskservice.go -destination=mock_riskservice.go -package=riskservice

type UserRepo interface {
	FindByID(ctx context.Context, id string) (*domain.User, error)
}

type CardRepo interface {
	CountCards(ctx context.Context, filter domain.CardFilter) (int, error)
	FindCards(ctx context.Context, filter domain.CardFilter, limit int) ([]domain.Card, error)
	CountReloads(ctx context.Context, userID string, after time.Time) (int, error)
}

const (
	degradedScore  = 75
	degradedReason = "Risk assessment unavailable - manual review required"

	defaultQueryTimeout = 2 * time.Second
)

var (
	ErrInvalidAmount          = errors.New("amount must be positive")
	ErrInvalidTransactionType = errors.New("transaction type must be purchase or reload")
	ErrUserNotFound           = errors.New("user profile not found")
)

type Request struct {
	UserID          string
	Amount          float64
	IPAddress       string
	UserAgent       string
	TransactionType domain.TransactionType
}

type Service struct {
	users        UserRepo
	cards        CardRepo
	policy       config.RiskPolicy
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

func New(users UserRepo, cards CardRepo, policy config.RiskPolicy, opts ...Option) *Service {
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

// AssessRisk scores a card purchase or reload. It only returns an error for
// invalid input; any failure while gathering signals yields the degraded
// assessment instead.
func (s *Service) AssessRisk(ctx context.Context, req Request) (*domain.RiskAssessment, error) {
	if req.Amount <= 0 || math.IsNaN(req.Amount) || math.IsInf(req.Amount, 0) {
		return nil, ErrInvalidAmount
	}
	if !req.TransactionType.Valid() {
		return nil, ErrInvalidTransactionType
	}

	ctx, span := traces.StartSpan(ctx, "risk.assess",
		traces.UserID(req.UserID),
		traces.Amount(req.Amount),
		traces.TransactionType(string(req.TransactionType)),
	)
	defer span.End()

	start := time.Now()
	now := s.now().In(s.location)

	sig, err := s.gather(ctx, req, now)
	if err != nil {
		traces.Fail(span, err)
		zap.L().Error("risk signals unavailable, falling back to manual review",
			zap.String("userID", req.UserID), zap.Error(err))
		assessment := Degraded()
		metrics.ObserveRisk(assessment, time.Since(start))
		return assessment, nil
	}

	assessment := s.score(analyzerInput{req: req, sig: sig, now: now, policy: s.policy})
	metrics.ObserveRisk(assessment, time.Since(start))
	zap.L().Debug("risk assessed",
		zap.String("userID", req.UserID),
		zap.Int("score", assessment.Score),
		zap.String("level", string(assessment.Level)),
	)
	return assessment, nil
}

// Degraded is the fail-secure assessment: not blocked, but reviewed and
// challenged.
func Degraded() *domain.RiskAssessment {
	return &domain.RiskAssessment{
		Score:          degradedScore,
		Level:          domain.RiskHigh,
		Reasons:        []string{degradedReason},
		ShouldBlock:    false,
		RequiresReview: true,
		RequiresMFA:    true,
		Outcome:        domain.RiskOutcomeDegraded,
	}
}

// signals is everything the analyzers read. Each field is written by exactly
// one query goroutine.
type signals struct {
	user            *domain.User
	cardsLastDay    int
	cardsLastWeek   int
	weekCards       []domain.Card
	frozenCards     int
	disputedCards   int
	reloadsLastHour int
}

func (s *Service) gather(ctx context.Context, req Request, now time.Time) (*signals, error) {
	sig := &signals{}
	dayAgo := now.Add(-24 * time.Hour)
	weekAgo := now.Add(-7 * 24 * time.Hour)

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

	query("find user", func(ctx context.Context) error {
		user, err := s.users.FindByID(ctx, req.UserID)
		if err != nil {
			return err
		}
		if user == nil {
			return ErrUserNotFound
		}
		sig.user = user
		return nil
	})
	query("count cards 24h", func(ctx context.Context) (err error) {
		sig.cardsLastDay, err = s.cards.CountCards(ctx, domain.CardFilter{UserID: req.UserID, CreatedAfter: dayAgo})
		return err
	})
	query("count cards 7d", func(ctx context.Context) (err error) {
		sig.cardsLastWeek, err = s.cards.CountCards(ctx, domain.CardFilter{UserID: req.UserID, CreatedAfter: weekAgo})
		return err
	})
	query("find cards 7d", func(ctx context.Context) (err error) {
		sig.weekCards, err = s.cards.FindCards(ctx, domain.CardFilter{UserID: req.UserID, CreatedAfter: weekAgo}, 0)
		return err
	})
	query("count frozen cards", func(ctx context.Context) (err error) {
		sig.frozenCards, err = s.cards.CountCards(ctx, domain.CardFilter{UserID: req.UserID, Statuses: []domain.CardStatus{domain.CardStatusFrozen}})
		return err
	})
	query("count disputed cards", func(ctx context.Context) (err error) {
		sig.disputedCards, err = s.cards.CountCards(ctx, domain.CardFilter{UserID: req.UserID, Disputed: true})
		return err
	})
	if req.TransactionType == domain.TransactionReload {
		query("count reloads 1h", func(ctx context.Context) (err error) {
			sig.reloadsLastHour, err = s.cards.CountReloads(ctx, req.UserID, now.Add(-time.Hour))
			return err
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return sig, nil
}

func (s *Service) score(in analyzerInput) *domain.RiskAssessment {
	total := 0
	reasons := make([]string, 0)
	for _, analyze := range analyzers {
		points, why := analyze(in)
		total += points
		reasons = append(reasons, why...)
	}
	total = clamp(total)

	p := in.policy
	return &domain.RiskAssessment{
		Score:          total,
		Level:          Level(total, p),
		Reasons:        reasons,
		ShouldBlock:    total >= p.CriticalScore,
		RequiresReview: total >= p.HighScore,
		RequiresMFA:    total >= p.MediumScore,
		Outcome:        domain.RiskOutcomeScored,
	}
}

func clamp(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

func Level(score int, p config.RiskPolicy) domain.RiskLevel {
	switch {
	case score >= p.CriticalScore:
		return domain.RiskCritical
	case score >= p.HighScore:
		return domain.RiskHigh
	case score >= p.MediumScore:
		return domain.RiskMedium
	case score >= p.LowScore:
		return domain.RiskLow
	default:
		return domain.RiskMinimal
	}
}
