package issuanceservice

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/GlebRadaev/cardguard/internal/config"
	"github.com/GlebRadaev/cardguard/internal/domain"
	"github.com/GlebRadaev/cardguard/internal/metrics"
	"github.com/GlebRadaev/cardguard/internal/service/riskservice"
	"github.com/GlebRadaev/cardguard/internal/traces"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

//go:generate mockgen -source=issuanceservice.go -destination=mock_issuanceservice.go -package=issuanceservice

type LimitChecker interface {
	CanCreateCard(ctx context.Context, userID string, amount float64) *domain.LimitDecision
	CanReloadCard(ctx context.Context, userID, cardID string, amount float64) *domain.LimitDecision
}

type RiskAssessor interface {
	AssessRisk(ctx context.Context, req riskservice.Request) (*domain.RiskAssessment, error)
}

type CardRepo interface {
	CreateCard(ctx context.Context, card *domain.Card) error
	ApplyReload(ctx context.Context, cardID, userID string, entry domain.ReloadEntry, maxBalance float64) (*domain.Card, error)
	FlagChargeback(ctx context.Context, cardID, userID, note string) error
}

type Locker interface {
	Lock(ctx context.Context, userID string) (func(), error)
}

var (
	ErrInvalidTransactionType = errors.New("transaction type must be purchase or reload")
	ErrCardIDRequired         = errors.New("card id is required for reloads")
	ErrInvalidMaxReloads      = errors.New("max reloads must not be negative")
	ErrCardNotFound           = domain.ErrCardNotFound
	ErrReloadConflict         = errors.New("card changed while the reload was evaluated")
)

const (
	resultIssued  = "issued"
	resultPending = "pending"
	resultApplied = "applied"
	resultHeld    = "held"
	resultDenied  = "denied"
	resultBlocked = "blocked"
	resultError   = "error"

	chargebackNote = "chargeback"
)

type EvaluationRequest struct {
	UserID          string
	Amount          float64
	TransactionType domain.TransactionType
	CardID          string
	IPAddress       string
	UserAgent       string
}

type IssueRequest struct {
	UserID     string
	Amount     float64
	Reloadable bool
	MaxReloads int
	IPAddress  string
	UserAgent  string
}

type ReloadRequest struct {
	UserID    string
	CardID    string
	Amount    float64
	IPAddress string
	UserAgent string
}

// IssueResult carries the decision and, when it was approved, the new card.
type IssueResult struct {
	Decision *domain.Decision
	Card     *domain.Card
}

// ReloadResult carries the decision and the updated card. Held is set when
// the reload passed limits and risk but needs manual review before funds move.
type ReloadResult struct {
	Decision *domain.Decision
	Card     *domain.Card
	Held     bool
}

type Service struct {
	limits LimitChecker
	risk   RiskAssessor
	cards  CardRepo
	locker Locker
	policy config.LimitPolicy
	now    func() time.Time
}

func New(limits LimitChecker, risk RiskAssessor, cards CardRepo, locker Locker, policy config.LimitPolicy) *Service {
	return &Service{
		limits: limits,
		risk:   risk,
		cards:  cards,
		locker: locker,
		policy: policy,
		now:    time.Now,
	}
}

// Evaluate runs the limit gate and, if it passes, the risk assessment. It
// writes nothing.
func (s *Service) Evaluate(ctx context.Context, req EvaluationRequest) (*domain.Decision, error) {
	var limits *domain.LimitDecision
	switch req.TransactionType {
	case domain.TransactionPurchase:
		limits = s.limits.CanCreateCard(ctx, req.UserID, req.Amount)
	case domain.TransactionReload:
		if req.CardID == "" {
			return nil, ErrCardIDRequired
		}
		limits = s.limits.CanReloadCard(ctx, req.UserID, req.CardID, req.Amount)
	default:
		return nil, ErrInvalidTransactionType
	}

	if !limits.Allowed {
		return &domain.Decision{Approved: false, Limits: limits}, nil
	}

	risk, err := s.risk.AssessRisk(ctx, riskservice.Request{
		UserID:          req.UserID,
		Amount:          req.Amount,
		IPAddress:       req.IPAddress,
		UserAgent:       req.UserAgent,
		TransactionType: req.TransactionType,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to assess risk: %w", err)
	}

	return &domain.Decision{
		Approved:       !risk.ShouldBlock,
		RequiresReview: risk.RequiresReview,
		RequiresMFA:    risk.RequiresMFA,
		Limits:         limits,
		Risk:           risk,
	}, nil
}

// IssueCard evaluates and persists a new card while holding the user's
// issuance lock. Cards needing review are created pending.
func (s *Service) IssueCard(ctx context.Context, req IssueRequest) (*IssueResult, error) {
	if req.MaxReloads < 0 {
		return nil, ErrInvalidMaxReloads
	}

	ctx, span := traces.StartSpan(ctx, "issuance.issue_card", traces.UserID(req.UserID), traces.Amount(req.Amount))
	defer span.End()

	unlock, err := s.locker.Lock(ctx, req.UserID)
	if err != nil {
		traces.Fail(span, err)
		metrics.ObserveIssuance("create", resultError)
		return nil, fmt.Errorf("failed to acquire issuance lock: %w", err)
	}
	defer unlock()

	decision, err := s.Evaluate(ctx, EvaluationRequest{
		UserID:          req.UserID,
		Amount:          req.Amount,
		TransactionType: domain.TransactionPurchase,
		IPAddress:       req.IPAddress,
		UserAgent:       req.UserAgent,
	})
	if err != nil {
		traces.Fail(span, err)
		metrics.ObserveIssuance("create", resultError)
		return nil, err
	}
	if outcome, ok := rejected(decision); ok {
		metrics.ObserveIssuance("create", outcome)
		return &IssueResult{Decision: decision}, nil
	}

	status := domain.CardStatusActive
	if decision.RequiresReview {
		status = domain.CardStatusPending
	}
	maxReloads := 0
	if req.Reloadable {
		maxReloads = req.MaxReloads
	}

	card := &domain.Card{
		ID:         uuid.NewString(),
		UserID:     req.UserID,
		Status:     status,
		Balance:    domain.CardBalance{Initial: req.Amount, Current: req.Amount},
		Reloadable: domain.Reloadable{Enabled: req.Reloadable, MaxReloads: maxReloads},
		Metadata:   domain.CardMetadata{IPAddress: req.IPAddress, UserAgent: req.UserAgent},
		CreatedAt:  s.now(),
	}
	if err := s.cards.CreateCard(ctx, card); err != nil {
		traces.Fail(span, err)
		metrics.ObserveIssuance("create", resultError)
		return nil, fmt.Errorf("failed to save card: %w", err)
	}

	result := resultIssued
	if status == domain.CardStatusPending {
		result = resultPending
	}
	metrics.ObserveIssuance("create", result)
	zap.L().Info("card issued",
		zap.String("userID", req.UserID),
		zap.String("cardID", card.ID),
		zap.String("status", string(status)),
	)
	return &IssueResult{Decision: decision, Card: card}, nil
}

// ReloadCard evaluates and applies a reload while holding the user's
// issuance lock.
func (s *Service) ReloadCard(ctx context.Context, req ReloadRequest) (*ReloadResult, error) {
	ctx, span := traces.StartSpan(ctx, "issuance.reload_card",
		traces.UserID(req.UserID), traces.CardID(req.CardID), traces.Amount(req.Amount))
	defer span.End()

	unlock, err := s.locker.Lock(ctx, req.UserID)
	if err != nil {
		traces.Fail(span, err)
		metrics.ObserveIssuance("reload", resultError)
		return nil, fmt.Errorf("failed to acquire issuance lock: %w", err)
	}
	defer unlock()

	decision, err := s.Evaluate(ctx, EvaluationRequest{
		UserID:          req.UserID,
		Amount:          req.Amount,
		TransactionType: domain.TransactionReload,
		CardID:          req.CardID,
		IPAddress:       req.IPAddress,
		UserAgent:       req.UserAgent,
	})
	if err != nil {
		traces.Fail(span, err)
		metrics.ObserveIssuance("reload", resultError)
		return nil, err
	}
	if outcome, ok := rejected(decision); ok {
		metrics.ObserveIssuance("reload", outcome)
		return &ReloadResult{Decision: decision}, nil
	}
	if decision.RequiresReview {
		metrics.ObserveIssuance("reload", resultHeld)
		return &ReloadResult{Decision: decision, Held: true}, nil
	}

	ceiling := s.policy.MaxCardBalance()
	if decision.Limits.Limits != nil {
		ceiling = math.Min(ceiling, decision.Limits.Limits.PerCard)
	}
	entry := domain.ReloadEntry{Amount: req.Amount, ReloadedAt: s.now()}

	card, err := s.cards.ApplyReload(ctx, req.CardID, req.UserID, entry, ceiling)
	if err != nil {
		traces.Fail(span, err)
		metrics.ObserveIssuance("reload", resultError)
		if errors.Is(err, domain.ErrReloadRejected) {
			return nil, ErrReloadConflict
		}
		return nil, fmt.Errorf("failed to apply reload: %w", err)
	}

	metrics.ObserveIssuance("reload", resultApplied)
	zap.L().Info("card reloaded",
		zap.String("userID", req.UserID),
		zap.String("cardID", req.CardID),
		zap.Float64("amount", req.Amount),
	)
	return &ReloadResult{Decision: decision, Card: card}, nil
}

// RecordChargeback flags a card as disputed. Later risk assessments for the
// user pick the flag up.
func (s *Service) RecordChargeback(ctx context.Context, userID, cardID, note string) error {
	note = strings.TrimSpace(note)
	if note == "" {
		note = chargebackNote
	}

	if err := s.cards.FlagChargeback(ctx, cardID, userID, note); err != nil {
		if errors.Is(err, domain.ErrCardNotFound) {
			return ErrCardNotFound
		}
		zap.L().Error("failed to record chargeback", zap.String("cardID", cardID), zap.Error(err))
		return err
	}
	metrics.ObserveIssuance("chargeback", "recorded")
	zap.L().Info("chargeback recorded", zap.String("userID", userID), zap.String("cardID", cardID))
	return nil
}

func rejected(d *domain.Decision) (string, bool) {
	if d.Approved {
		return "", false
	}
	if d.Risk != nil && d.Risk.ShouldBlock {
		return resultBlocked, true
	}
	return resultDenied, true
}
