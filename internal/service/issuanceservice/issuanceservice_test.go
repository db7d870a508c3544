package issuanceservice

import (
	"context"
	"errors"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/GlebRadaev/cardguard/internal/config"
	"github.com/GlebRadaev/cardguard/internal/domain"
	"github.com/GlebRadaev/cardguard/internal/service/limitservice"
	"github.com/GlebRadaev/cardguard/internal/service/riskservice"
	"github.com/GlebRadaev/cardguard/internal/userlock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomock "go.uber.org/mock/gomock"
)

var testNow = time.Date(2026, 3, 15, 14, 0, 0, 0, time.UTC)

type mocks struct {
	limits *MockLimitChecker
	risk   *MockRiskAssessor
	cards  *MockCardRepo
	locker *MockLocker
}

func NewMock(t *testing.T) (*Service, *mocks) {
	ctrl := gomock.NewController(t)
	m := &mocks{
		limits: NewMockLimitChecker(ctrl),
		risk:   NewMockRiskAssessor(ctrl),
		cards:  NewMockCardRepo(ctrl),
		locker: NewMockLocker(ctrl),
	}
	service := New(m.limits, m.risk, m.cards, m.locker, config.DefaultLimitPolicy())
	service.now = func() time.Time { return testNow }
	return service, m
}

func approved(perCard float64) *domain.LimitDecision {
	return &domain.LimitDecision{
		Allowed: true,
		Outcome: domain.LimitOutcomeApproved,
		Tier:    1,
		Limits:  &domain.TierLimits{Daily: 100, Weekly: 300, Monthly: 1000, PerCard: perCard, MaxActiveCards: 3},
		Usage:   &domain.Usage{},
	}
}

func assessment(score int) *domain.RiskAssessment {
	p := config.DefaultRiskPolicy()
	return &domain.RiskAssessment{
		Score:          score,
		Level:          riskservice.Level(score, p),
		ShouldBlock:    score >= p.CriticalScore,
		RequiresReview: score >= p.HighScore,
		RequiresMFA:    score >= p.MediumScore,
		Outcome:        domain.RiskOutcomeScored,
	}
}

// expectLock expects one lock and asserts it is released.
func expectLock(t *testing.T, m *mocks) {
	released := false
	m.locker.EXPECT().Lock(gomock.Any(), "user-1").Return(func() { released = true }, nil)
	t.Cleanup(func() { assert.True(t, released, "issuance lock was not released") })
}

func TestEvaluate(t *testing.T) {
	denied := &domain.LimitDecision{Outcome: domain.LimitOutcomeDenied, Code: domain.DenialLimitExceeded, Exceeded: domain.LimitDaily}

	tests := []struct {
		name          string
		req           EvaluationRequest
		prepareMock   func(m *mocks)
		expected      *domain.Decision
		expectedError error
	}{
		{
			name: "limits deny, risk is skipped",
			req:  EvaluationRequest{UserID: "user-1", Amount: 30, TransactionType: domain.TransactionPurchase},
			prepareMock: func(m *mocks) {
				m.limits.EXPECT().CanCreateCard(gomock.Any(), "user-1", 30.0).Return(denied)
			},
			expected: &domain.Decision{Approved: false, Limits: denied},
		},
		{
			name: "approved with MFA",
			req:  EvaluationRequest{UserID: "user-1", Amount: 50, TransactionType: domain.TransactionPurchase, IPAddress: "10.0.0.1", UserAgent: "agent/1.0 long"},
			prepareMock: func(m *mocks) {
				m.limits.EXPECT().CanCreateCard(gomock.Any(), "user-1", 50.0).Return(approved(100))
				m.risk.EXPECT().AssessRisk(gomock.Any(), riskservice.Request{
					UserID: "user-1", Amount: 50, IPAddress: "10.0.0.1", UserAgent: "agent/1.0 long", TransactionType: domain.TransactionPurchase,
				}).Return(assessment(55), nil)
			},
			expected: &domain.Decision{Approved: true, RequiresMFA: true, Limits: approved(100), Risk: assessment(55)},
		},
		{
			name: "critical risk blocks",
			req:  EvaluationRequest{UserID: "user-1", Amount: 50, TransactionType: domain.TransactionReload, CardID: "card-1"},
			prepareMock: func(m *mocks) {
				m.limits.EXPECT().CanReloadCard(gomock.Any(), "user-1", "card-1", 50.0).Return(approved(100))
				m.risk.EXPECT().AssessRisk(gomock.Any(), gomock.Any()).Return(assessment(95), nil)
			},
			expected: &domain.Decision{Approved: false, RequiresReview: true, RequiresMFA: true, Limits: approved(100), Risk: assessment(95)},
		},
		{
			name:          "reload without card id",
			req:           EvaluationRequest{UserID: "user-1", Amount: 50, TransactionType: domain.TransactionReload},
			expectedError: ErrCardIDRequired,
		},
		{
			name:          "unknown transaction type",
			req:           EvaluationRequest{UserID: "user-1", Amount: 50, TransactionType: "transfer"},
			expectedError: ErrInvalidTransactionType,
		},
		{
			name: "risk rejects input",
			req:  EvaluationRequest{UserID: "user-1", Amount: 50, TransactionType: domain.TransactionPurchase},
			prepareMock: func(m *mocks) {
				m.limits.EXPECT().CanCreateCard(gomock.Any(), "user-1", 50.0).Return(approved(100))
				m.risk.EXPECT().AssessRisk(gomock.Any(), gomock.Any()).Return(nil, riskservice.ErrInvalidAmount)
			},
			expectedError: riskservice.ErrInvalidAmount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, m := NewMock(t)
			if tt.prepareMock != nil {
				tt.prepareMock(m)
			}

			decision, err := service.Evaluate(context.Background(), tt.req)
			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, decision)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, decision)
		})
	}
}

func TestIssueCard(t *testing.T) {
	t.Run("active card", func(t *testing.T) {
		service, m := NewMock(t)
		expectLock(t, m)
		m.limits.EXPECT().CanCreateCard(gomock.Any(), "user-1", 100.0).Return(approved(100))
		m.risk.EXPECT().AssessRisk(gomock.Any(), gomock.Any()).Return(assessment(10), nil)

		var saved *domain.Card
		m.cards.EXPECT().CreateCard(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, card *domain.Card) error {
			saved = card
			return nil
		})

		result, err := service.IssueCard(context.Background(), IssueRequest{
			UserID: "user-1", Amount: 100, Reloadable: true, MaxReloads: 3, IPAddress: "10.0.0.1", UserAgent: "agent/1.0 long",
		})
		require.NoError(t, err)
		require.NotNil(t, result.Card)
		assert.Same(t, saved, result.Card)
		assert.True(t, result.Decision.Approved)

		assert.NotEmpty(t, saved.ID)
		assert.Equal(t, "user-1", saved.UserID)
		assert.Equal(t, domain.CardStatusActive, saved.Status)
		assert.Equal(t, domain.CardBalance{Initial: 100, Current: 100}, saved.Balance)
		assert.Equal(t, domain.Reloadable{Enabled: true, MaxReloads: 3}, saved.Reloadable)
		assert.Equal(t, domain.CardMetadata{IPAddress: "10.0.0.1", UserAgent: "agent/1.0 long"}, saved.Metadata)
		assert.Equal(t, testNow, saved.CreatedAt)
	})

	t.Run("review required creates pending card", func(t *testing.T) {
		service, m := NewMock(t)
		expectLock(t, m)
		m.limits.EXPECT().CanCreateCard(gomock.Any(), "user-1", 50.0).Return(approved(100))
		m.risk.EXPECT().AssessRisk(gomock.Any(), gomock.Any()).Return(riskservice.Degraded(), nil)
		m.cards.EXPECT().CreateCard(gomock.Any(), gomock.Any()).Return(nil)

		result, err := service.IssueCard(context.Background(), IssueRequest{UserID: "user-1", Amount: 50, MaxReloads: 4})
		require.NoError(t, err)
		assert.Equal(t, domain.CardStatusPending, result.Card.Status)
		assert.Equal(t, 0, result.Card.Reloadable.MaxReloads)
		assert.True(t, result.Decision.RequiresReview)
	})

	t.Run("limit denial persists nothing", func(t *testing.T) {
		service, m := NewMock(t)
		expectLock(t, m)
		m.limits.EXPECT().CanCreateCard(gomock.Any(), "user-1", 30.0).Return(&domain.LimitDecision{Outcome: domain.LimitOutcomeDenied, Code: domain.DenialLimitExceeded})

		result, err := service.IssueCard(context.Background(), IssueRequest{UserID: "user-1", Amount: 30})
		require.NoError(t, err)
		assert.Nil(t, result.Card)
		assert.False(t, result.Decision.Approved)
	})

	t.Run("blocked by risk", func(t *testing.T) {
		service, m := NewMock(t)
		expectLock(t, m)
		m.limits.EXPECT().CanCreateCard(gomock.Any(), "user-1", 30.0).Return(approved(100))
		m.risk.EXPECT().AssessRisk(gomock.Any(), gomock.Any()).Return(assessment(100), nil)

		result, err := service.IssueCard(context.Background(), IssueRequest{UserID: "user-1", Amount: 30})
		require.NoError(t, err)
		assert.Nil(t, result.Card)
		assert.True(t, result.Decision.Risk.ShouldBlock)
	})

	t.Run("save fails", func(t *testing.T) {
		service, m := NewMock(t)
		expectLock(t, m)
		m.limits.EXPECT().CanCreateCard(gomock.Any(), "user-1", 30.0).Return(approved(100))
		m.risk.EXPECT().AssessRisk(gomock.Any(), gomock.Any()).Return(assessment(0), nil)
		dbErr := errors.New("unique violation")
		m.cards.EXPECT().CreateCard(gomock.Any(), gomock.Any()).Return(dbErr)

		result, err := service.IssueCard(context.Background(), IssueRequest{UserID: "user-1", Amount: 30})
		assert.Nil(t, result)
		assert.ErrorIs(t, err, dbErr)
	})

	t.Run("lock not acquired", func(t *testing.T) {
		service, m := NewMock(t)
		m.locker.EXPECT().Lock(gomock.Any(), "user-1").Return(nil, context.DeadlineExceeded)

		result, err := service.IssueCard(context.Background(), IssueRequest{UserID: "user-1", Amount: 30})
		assert.Nil(t, result)
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})

	t.Run("negative max reloads", func(t *testing.T) {
		service, _ := NewMock(t)

		result, err := service.IssueCard(context.Background(), IssueRequest{UserID: "user-1", Amount: 30, Reloadable: true, MaxReloads: -1})
		assert.Nil(t, result)
		assert.ErrorIs(t, err, ErrInvalidMaxReloads)
	})
}

func TestReloadCard(t *testing.T) {
	req := ReloadRequest{UserID: "user-1", CardID: "card-1", Amount: 40, UserAgent: "agent/1.0 long"}

	t.Run("applied", func(t *testing.T) {
		service, m := NewMock(t)
		expectLock(t, m)
		m.limits.EXPECT().CanReloadCard(gomock.Any(), "user-1", "card-1", 40.0).Return(approved(100))
		m.risk.EXPECT().AssessRisk(gomock.Any(), riskservice.Request{
			UserID: "user-1", Amount: 40, UserAgent: "agent/1.0 long", TransactionType: domain.TransactionReload,
		}).Return(assessment(20), nil)
		updated := &domain.Card{ID: "card-1", Balance: domain.CardBalance{Initial: 50, Current: 90}}
		m.cards.EXPECT().ApplyReload(gomock.Any(), "card-1", "user-1", domain.ReloadEntry{Amount: 40, ReloadedAt: testNow}, 100.0).Return(updated, nil)

		result, err := service.ReloadCard(context.Background(), req)
		require.NoError(t, err)
		assert.False(t, result.Held)
		assert.Equal(t, updated, result.Card)
	})

	t.Run("ceiling capped at 500", func(t *testing.T) {
		service, m := NewMock(t)
		expectLock(t, m)
		m.limits.EXPECT().CanReloadCard(gomock.Any(), "user-1", "card-1", 40.0).Return(approved(2000))
		m.risk.EXPECT().AssessRisk(gomock.Any(), gomock.Any()).Return(assessment(0), nil)
		m.cards.EXPECT().ApplyReload(gomock.Any(), "card-1", "user-1", gomock.Any(), 500.0).Return(&domain.Card{ID: "card-1"}, nil)

		_, err := service.ReloadCard(context.Background(), req)
		require.NoError(t, err)
	})

	t.Run("held for review", func(t *testing.T) {
		service, m := NewMock(t)
		expectLock(t, m)
		m.limits.EXPECT().CanReloadCard(gomock.Any(), "user-1", "card-1", 40.0).Return(approved(100))
		m.risk.EXPECT().AssessRisk(gomock.Any(), gomock.Any()).Return(riskservice.Degraded(), nil)

		result, err := service.ReloadCard(context.Background(), req)
		require.NoError(t, err)
		assert.True(t, result.Held)
		assert.Nil(t, result.Card)
	})

	t.Run("denied", func(t *testing.T) {
		service, m := NewMock(t)
		expectLock(t, m)
		m.limits.EXPECT().CanReloadCard(gomock.Any(), "user-1", "card-1", 40.0).
			Return(&domain.LimitDecision{Outcome: domain.LimitOutcomeDenied, Code: domain.DenialMaxReloads})

		result, err := service.ReloadCard(context.Background(), req)
		require.NoError(t, err)
		assert.False(t, result.Decision.Approved)
		assert.Equal(t, domain.DenialMaxReloads, result.Decision.Limits.Code)
		assert.Nil(t, result.Card)
	})

	t.Run("card changed concurrently", func(t *testing.T) {
		service, m := NewMock(t)
		expectLock(t, m)
		m.limits.EXPECT().CanReloadCard(gomock.Any(), "user-1", "card-1", 40.0).Return(approved(100))
		m.risk.EXPECT().AssessRisk(gomock.Any(), gomock.Any()).Return(assessment(0), nil)
		m.cards.EXPECT().ApplyReload(gomock.Any(), "card-1", "user-1", gomock.Any(), gomock.Any()).Return(nil, domain.ErrReloadRejected)

		result, err := service.ReloadCard(context.Background(), req)
		assert.Nil(t, result)
		assert.ErrorIs(t, err, ErrReloadConflict)
	})
}

func TestRecordChargeback(t *testing.T) {
	tests := []struct {
		name          string
		note          string
		prepareMock   func(m *mocks)
		expectedError error
	}{
		{
			name: "with note",
			note: "  issuer dispute 4411 ",
			prepareMock: func(m *mocks) {
				m.cards.EXPECT().FlagChargeback(gomock.Any(), "card-1", "user-1", "issuer dispute 4411").Return(nil)
			},
		},
		{
			name: "empty note",
			prepareMock: func(m *mocks) {
				m.cards.EXPECT().FlagChargeback(gomock.Any(), "card-1", "user-1", "chargeback").Return(nil)
			},
		},
		{
			name: "unknown card",
			note: "dispute",
			prepareMock: func(m *mocks) {
				m.cards.EXPECT().FlagChargeback(gomock.Any(), "card-1", "user-1", "dispute").Return(domain.ErrCardNotFound)
			},
			expectedError: ErrCardNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, m := NewMock(t)
			tt.prepareMock(m)

			err := service.RecordChargeback(context.Background(), "user-1", "card-1", tt.note)
			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				return
			}
			assert.NoError(t, err)
		})
	}
}

// memoryStore backs the real limit service so issuance and limits are
// checked together.
type memoryStore struct {
	mu    sync.Mutex
	user  *domain.User
	cards []domain.Card
}

func (m *memoryStore) FindByID(_ context.Context, _ string) (*domain.User, error) {
	return m.user, nil
}

func (m *memoryStore) matching(filter domain.CardFilter) []domain.Card {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Card
	for _, c := range m.cards {
		if c.UserID != filter.UserID || c.CreatedAt.Before(filter.CreatedAfter) {
			continue
		}
		if len(filter.Statuses) > 0 && !slices.Contains(filter.Statuses, c.Status) {
			continue
		}
		out = append(out, c)
	}
	return out
}

func (m *memoryStore) CountCards(_ context.Context, filter domain.CardFilter) (int, error) {
	return len(m.matching(filter)), nil
}

func (m *memoryStore) SumInitial(_ context.Context, filter domain.CardFilter) (float64, error) {
	var sum float64
	for _, c := range m.matching(filter) {
		sum += c.Balance.Initial
	}
	return sum, nil
}

func (m *memoryStore) FindCardByID(_ context.Context, _, _ string) (*domain.Card, error) {
	return nil, nil
}

func (m *memoryStore) CreateCard(_ context.Context, card *domain.Card) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cards = append(m.cards, *card)
	return nil
}

func (m *memoryStore) ApplyReload(context.Context, string, string, domain.ReloadEntry, float64) (*domain.Card, error) {
	return nil, errors.New("not supported")
}

func (m *memoryStore) FlagChargeback(context.Context, string, string, string) error {
	return errors.New("not supported")
}

func TestIssueCard_PendingCardsCountTowardCeiling(t *testing.T) {
	ctrl := gomock.NewController(t)
	risk := NewMockRiskAssessor(ctrl)
	risk.EXPECT().AssessRisk(gomock.Any(), gomock.Any()).DoAndReturn(
		func(context.Context, riskservice.Request) (*domain.RiskAssessment, error) {
			return riskservice.Degraded(), nil
		}).AnyTimes()

	store := &memoryStore{user: &domain.User{ID: "user-1", KYCTier: 3, KYCVerified: true, CreatedAt: testNow.AddDate(-1, 0, 0)}}
	policy := config.DefaultLimitPolicy()
	limits := limitservice.New(store, store, policy,
		limitservice.WithClock(func() time.Time { return testNow }),
		limitservice.WithLocation(time.UTC),
	)
	service := New(limits, risk, store, userlock.NewLocal(), policy)
	service.now = func() time.Time { return testNow }

	_, tierLimits := policy.Tier(3)
	var denied int
	for i := 0; i < 40; i++ {
		result, err := service.IssueCard(context.Background(), IssueRequest{UserID: "user-1", Amount: 10})
		require.NoError(t, err)
		if result.Card == nil {
			denied++
			assert.Equal(t, domain.LimitMaxCards, result.Decision.Limits.Exceeded)
		}
	}

	assert.Len(t, store.cards, tierLimits.MaxActiveCards)
	assert.Equal(t, 40-tierLimits.MaxActiveCards, denied)
	for _, c := range store.cards {
		assert.Equal(t, domain.CardStatusPending, c.Status)
	}
}
