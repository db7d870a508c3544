package limitservice

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/GlebRadaev/cardguard/internal/config"
	"github.com/GlebRadaev/cardguard/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomock "go.uber.org/mock/gomock"
)

var (
	testNow      = time.Date(2026, 3, 15, 14, 30, 0, 0, time.UTC)
	dailyStart   = time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	weeklyStart  = time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC)
	monthlyStart = time.Date(2026, 2, 13, 0, 0, 0, 0, time.UTC)
)

func NewMock(t *testing.T, opts ...Option) (*Service, *MockUserRepo, *MockCardRepo) {
	ctrl := gomock.NewController(t)
	users := NewMockUserRepo(ctrl)
	cards := NewMockCardRepo(ctrl)
	opts = append([]Option{
		WithClock(func() time.Time { return testNow }),
		WithLocation(time.UTC),
	}, opts...)
	service := New(users, cards, config.DefaultLimitPolicy(), opts...)
	return service, users, cards
}

func tierUser(tier int) *domain.User {
	return &domain.User{ID: "user-1", KYCTier: tier, KYCVerified: true, CreatedAt: testNow.AddDate(-1, 0, 0)}
}

func expectUsage(cards *MockCardRepo, usage domain.Usage) {
	cards.EXPECT().CountCards(gomock.Any(), domain.CardFilter{UserID: "user-1", Statuses: domain.SlotStatuses}).Return(usage.ActiveCards, nil)
	cards.EXPECT().SumInitial(gomock.Any(), domain.CardFilter{UserID: "user-1", CreatedAfter: dailyStart}).Return(usage.Daily, nil)
	cards.EXPECT().SumInitial(gomock.Any(), domain.CardFilter{UserID: "user-1", CreatedAfter: weeklyStart}).Return(usage.Weekly, nil)
	cards.EXPECT().SumInitial(gomock.Any(), domain.CardFilter{UserID: "user-1", CreatedAfter: monthlyStart}).Return(usage.Monthly, nil)
}

func TestCanCreateCard(t *testing.T) {
	tests := []struct {
		name        string
		amount      float64
		user        *domain.User
		usage       domain.Usage
		expected    *domain.LimitDecision
		approvedFor int
	}{
		{
			name:        "tier 1 first card at the per-card limit",
			amount:      100,
			user:        tierUser(1),
			approvedFor: 1,
		},
		{
			name:   "just over the per-card limit",
			amount: 100.01,
			user:   tierUser(1),
			expected: &domain.LimitDecision{
				Outcome: domain.LimitOutcomeDenied, Code: domain.DenialLimitExceeded, Exceeded: domain.LimitPerCard,
				Limit: 100, Current: 100.01, Reason: "Amount exceeds per-card limit: $100.01/$100",
			},
		},
		{
			name:   "daily spend would reach 110",
			amount: 30,
			user:   tierUser(1),
			usage:  domain.Usage{Daily: 80, Weekly: 80, Monthly: 80},
			expected: &domain.LimitDecision{
				Outcome: domain.LimitOutcomeDenied, Code: domain.DenialLimitExceeded, Exceeded: domain.LimitDaily,
				Limit: 100, Current: 110, Reason: "Daily limit exceeded: $110/$100",
			},
		},
		{
			name:   "active cards at maximum",
			amount: 10,
			user:   tierUser(2),
			usage:  domain.Usage{ActiveCards: 10},
			expected: &domain.LimitDecision{
				Outcome: domain.LimitOutcomeDenied, Code: domain.DenialLimitExceeded, Exceeded: domain.LimitMaxCards,
				Limit: 10, Current: 10, Reason: "Maximum active cards reached: 10/10",
			},
		},
		{
			name:   "pending cards awaiting review fill the slots",
			amount: 10,
			user:   tierUser(3),
			usage:  domain.Usage{ActiveCards: 25},
			expected: &domain.LimitDecision{
				Outcome: domain.LimitOutcomeDenied, Code: domain.DenialLimitExceeded, Exceeded: domain.LimitMaxCards,
				Limit: 25, Current: 25, Reason: "Maximum active cards reached: 25/25",
			},
		},
		{
			name:   "weekly window",
			amount: 200,
			user:   tierUser(2),
			usage:  domain.Usage{Daily: 0, Weekly: 1400, Monthly: 1400},
			expected: &domain.LimitDecision{
				Outcome: domain.LimitOutcomeDenied, Code: domain.DenialLimitExceeded, Exceeded: domain.LimitWeekly,
				Limit: 1500, Current: 1600, Reason: "Weekly limit exceeded: $1600/$1500",
			},
		},
		{
			name:   "monthly window",
			amount: 500,
			user:   tierUser(3),
			usage:  domain.Usage{Daily: 0, Weekly: 0, Monthly: 19750.5},
			expected: &domain.LimitDecision{
				Outcome: domain.LimitOutcomeDenied, Code: domain.DenialLimitExceeded, Exceeded: domain.LimitMonthly,
				Limit: 20000, Current: 20250.5, Reason: "Monthly limit exceeded: $20250.50/$20000",
			},
		},
		{
			name:   "unverified tier 3 gets tier 1 limits",
			amount: 150,
			user:   &domain.User{ID: "user-1", KYCTier: 3, KYCVerified: false},
			expected: &domain.LimitDecision{
				Outcome: domain.LimitOutcomeDenied, Code: domain.DenialLimitExceeded, Exceeded: domain.LimitPerCard,
				Limit: 100, Current: 150, Reason: "Amount exceeds per-card limit: $150/$100",
			},
		},
		{
			name:        "unset tier defaults to 1",
			amount:      50,
			user:        &domain.User{ID: "user-1", KYCVerified: true},
			approvedFor: 1,
		},
		{
			name:   "missing user",
			amount: 50,
			user:   nil,
			expected: &domain.LimitDecision{
				Outcome: domain.LimitOutcomeDenied, Code: domain.DenialUserNotFound, Reason: "User user-1 not found",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, users, cards := NewMock(t)
			users.EXPECT().FindByID(gomock.Any(), "user-1").Return(tt.user, nil)
			expectUsage(cards, tt.usage)

			decision := service.CanCreateCard(context.Background(), "user-1", tt.amount)
			require.NotNil(t, decision)

			if tt.expected != nil {
				assert.Equal(t, tt.expected, decision)
				return
			}
			assert.True(t, decision.Allowed)
			assert.Equal(t, domain.LimitOutcomeApproved, decision.Outcome)
			assert.Equal(t, tt.approvedFor, decision.Tier)
			require.NotNil(t, decision.Limits)
			require.NotNil(t, decision.Usage)
			assert.Equal(t, tt.usage, *decision.Usage)
		})
	}
}

func TestCanCreateCard_InvalidAmount(t *testing.T) {
	service, _, _ := NewMock(t)

	for _, amount := range []float64{0, -1} {
		decision := service.CanCreateCard(context.Background(), "user-1", amount)
		assert.False(t, decision.Allowed)
		assert.Equal(t, domain.DenialInvalidAmount, decision.Code)
	}
}

func TestCanCreateCard_FailsClosed(t *testing.T) {
	tests := []struct {
		name        string
		prepareMock func(users *MockUserRepo, cards *MockCardRepo)
	}{
		{
			name: "user lookup fails",
			prepareMock: func(users *MockUserRepo, cards *MockCardRepo) {
				users.EXPECT().FindByID(gomock.Any(), "user-1").Return(nil, errors.New("connection reset"))
				cards.EXPECT().CountCards(gomock.Any(), gomock.Any()).Return(0, nil).AnyTimes()
				cards.EXPECT().SumInitial(gomock.Any(), gomock.Any()).Return(0.0, nil).AnyTimes()
			},
		},
		{
			name: "window sum fails",
			prepareMock: func(users *MockUserRepo, cards *MockCardRepo) {
				users.EXPECT().FindByID(gomock.Any(), "user-1").Return(tierUser(1), nil).AnyTimes()
				cards.EXPECT().CountCards(gomock.Any(), gomock.Any()).Return(0, nil).AnyTimes()
				cards.EXPECT().SumInitial(gomock.Any(), gomock.Any()).Return(0.0, errors.New("statement timeout")).AnyTimes()
			},
		},
		{
			name: "query times out",
			prepareMock: func(users *MockUserRepo, cards *MockCardRepo) {
				users.EXPECT().FindByID(gomock.Any(), "user-1").Return(tierUser(1), nil).AnyTimes()
				cards.EXPECT().CountCards(gomock.Any(), gomock.Any()).DoAndReturn(
					func(ctx context.Context, _ domain.CardFilter) (int, error) {
						<-ctx.Done()
						return 0, ctx.Err()
					})
				cards.EXPECT().SumInitial(gomock.Any(), gomock.Any()).Return(0.0, nil).AnyTimes()
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, users, cards := NewMock(t, WithQueryTimeout(20*time.Millisecond))
			tt.prepareMock(users, cards)

			decision := service.CanCreateCard(context.Background(), "user-1", 50)
			assert.False(t, decision.Allowed)
			assert.Equal(t, domain.LimitOutcomeDenied, decision.Outcome)
			assert.Equal(t, domain.DenialLimitCheckFailed, decision.Code)
			assert.Equal(t, "Error checking limits, please try again", decision.Reason)
		})
	}
}

func TestCanReloadCard(t *testing.T) {
	reloadable := func(status domain.CardStatus, current float64, count, max int) *domain.Card {
		return &domain.Card{
			ID:         "card-1",
			UserID:     "user-1",
			Status:     status,
			Balance:    domain.CardBalance{Initial: 50, Current: current},
			Reloadable: domain.Reloadable{Enabled: true, MaxReloads: max, ReloadCount: count},
		}
	}

	tests := []struct {
		name         string
		amount       float64
		user         *domain.User
		card         *domain.Card
		usage        domain.Usage
		expectedCode domain.DenialCode
		expectedType domain.LimitType
		allowed      bool
	}{
		{
			name:    "reload within every limit",
			amount:  100,
			user:    tierUser(2),
			card:    reloadable(domain.CardStatusActive, 200, 1, 5),
			usage:   domain.Usage{ActiveCards: 1, Daily: 50, Weekly: 50, Monthly: 50},
			allowed: true,
		},
		{
			name:         "card not found",
			amount:       10,
			user:         tierUser(2),
			expectedCode: domain.DenialCardNotFound,
		},
		{
			name:         "card not reloadable",
			amount:       10,
			user:         tierUser(2),
			card:         &domain.Card{ID: "card-1", Status: domain.CardStatusActive},
			expectedCode: domain.DenialNotReloadable,
		},
		{
			name:         "frozen card",
			amount:       10,
			user:         tierUser(2),
			card:         reloadable(domain.CardStatusFrozen, 10, 0, 5),
			expectedCode: domain.DenialCardStatus,
		},
		{
			name:         "cancelled card",
			amount:       10,
			user:         tierUser(2),
			card:         reloadable(domain.CardStatusCancelled, 10, 0, 5),
			expectedCode: domain.DenialCardStatus,
		},
		{
			name:         "pending card under review",
			amount:       10,
			user:         tierUser(2),
			card:         reloadable(domain.CardStatusPending, 10, 0, 5),
			expectedCode: domain.DenialCardStatus,
		},
		{
			name:         "expired card",
			amount:       10,
			user:         tierUser(2),
			card:         reloadable(domain.CardStatusExpired, 10, 0, 5),
			expectedCode: domain.DenialCardStatus,
		},
		{
			name:         "reloads exhausted",
			amount:       10,
			user:         tierUser(2),
			card:         reloadable(domain.CardStatusActive, 10, 5, 5),
			expectedCode: domain.DenialMaxReloads,
		},
		{
			name:         "balance would pass 500",
			amount:       100.01,
			user:         tierUser(3),
			card:         reloadable(domain.CardStatusActive, 400, 0, 5),
			expectedCode: domain.DenialBalanceCeiling,
		},
		{
			name:         "balance ceiling follows tier 1 per-card limit",
			amount:       60,
			user:         tierUser(1),
			card:         reloadable(domain.CardStatusActive, 50, 0, 5),
			expectedCode: domain.DenialBalanceCeiling,
		},
		{
			name:         "card checks pass, daily window denies",
			amount:       50,
			user:         tierUser(1),
			card:         reloadable(domain.CardStatusActive, 40, 0, 5),
			usage:        domain.Usage{ActiveCards: 1, Daily: 60, Weekly: 60, Monthly: 60},
			expectedCode: domain.DenialLimitExceeded,
			expectedType: domain.LimitDaily,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, users, cards := NewMock(t)
			users.EXPECT().FindByID(gomock.Any(), "user-1").Return(tt.user, nil)
			cards.EXPECT().FindCardByID(gomock.Any(), "card-1", "user-1").Return(tt.card, nil)
			expectUsage(cards, tt.usage)

			decision := service.CanReloadCard(context.Background(), "user-1", "card-1", tt.amount)
			require.NotNil(t, decision)
			assert.Equal(t, tt.allowed, decision.Allowed)
			assert.Equal(t, tt.expectedCode, decision.Code)
			assert.Equal(t, tt.expectedType, decision.Exceeded)
			if !tt.allowed {
				assert.Equal(t, domain.LimitOutcomeDenied, decision.Outcome)
				assert.NotEmpty(t, decision.Reason)
			}
		})
	}
}

func TestGetSpendingSummary(t *testing.T) {
	service, users, cards := NewMock(t)
	users.EXPECT().FindByID(gomock.Any(), "user-1").Return(tierUser(1), nil)
	expectUsage(cards, domain.Usage{ActiveCards: 1, Daily: 120, Weekly: 150, Monthly: 250.25})

	summary, err := service.GetSpendingSummary(context.Background(), "user-1")
	require.NoError(t, err)

	assert.Equal(t, 1, summary.Tier)
	assert.Equal(t, domain.LimitUsage{Current: 120, Limit: 100, Remaining: 0, PercentUsed: 100}, summary.Daily)
	assert.Equal(t, domain.LimitUsage{Current: 150, Limit: 300, Remaining: 150, PercentUsed: 50}, summary.Weekly)
	assert.Equal(t, 749.75, summary.Monthly.Remaining)
	assert.InDelta(t, 25.025, summary.Monthly.PercentUsed, 1e-9)
	assert.Equal(t, 1.0, summary.ActiveCards.Current)
	assert.Equal(t, 3.0, summary.ActiveCards.Limit)
	assert.Equal(t, 2.0, summary.ActiveCards.Remaining)
}

func TestGetSpendingSummary_Errors(t *testing.T) {
	t.Run("missing user", func(t *testing.T) {
		service, users, cards := NewMock(t)
		users.EXPECT().FindByID(gomock.Any(), "user-1").Return(nil, nil)
		expectUsage(cards, domain.Usage{})

		summary, err := service.GetSpendingSummary(context.Background(), "user-1")
		assert.Nil(t, summary)
		assert.ErrorIs(t, err, ErrUserNotFound)
	})

	t.Run("store fault", func(t *testing.T) {
		service, users, cards := NewMock(t)
		dbErr := errors.New("connection refused")
		users.EXPECT().FindByID(gomock.Any(), "user-1").Return(tierUser(1), nil).AnyTimes()
		cards.EXPECT().CountCards(gomock.Any(), gomock.Any()).Return(0, dbErr).AnyTimes()
		cards.EXPECT().SumInitial(gomock.Any(), gomock.Any()).Return(0.0, nil).AnyTimes()

		summary, err := service.GetSpendingSummary(context.Background(), "user-1")
		assert.Nil(t, summary)
		assert.ErrorIs(t, err, dbErr)
	})
}

func TestCheckLimitWarnings(t *testing.T) {
	tests := []struct {
		name     string
		usage    domain.Usage
		expected []domain.LimitWarning
	}{
		{
			name:     "nothing near a limit",
			usage:    domain.Usage{ActiveCards: 1, Daily: 10, Weekly: 100, Monthly: 300},
			expected: []domain.LimitWarning{},
		},
		{
			name:  "weekly at 96 percent",
			usage: domain.Usage{ActiveCards: 1, Daily: 0, Weekly: 288, Monthly: 288},
			expected: []domain.LimitWarning{
				{Type: domain.LimitWeekly, Level: domain.WarningLevelCritical, PercentUsed: 96, Message: "You have used 96% of your weekly spending limit"},
			},
		},
		{
			name:  "daily warning and cards critical",
			usage: domain.Usage{ActiveCards: 3, Daily: 80, Weekly: 80, Monthly: 80},
			expected: []domain.LimitWarning{
				{Type: domain.LimitDaily, Level: domain.WarningLevelWarning, PercentUsed: 80, Message: "You have used 80% of your daily spending limit"},
				{Type: domain.LimitActiveCards, Level: domain.WarningLevelCritical, PercentUsed: 100, Message: "You have used 100% of your active cards limit"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, users, cards := NewMock(t)
			users.EXPECT().FindByID(gomock.Any(), "user-1").Return(tierUser(1), nil)
			expectUsage(cards, tt.usage)

			warnings, err := service.CheckLimitWarnings(context.Background(), "user-1")
			require.NoError(t, err)
			assert.Equal(t, tt.expected, warnings)
		})
	}
}

func TestWindowStart(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*60*60)
	now := time.Date(2026, 3, 1, 1, 15, 0, 0, loc)

	assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, loc), windowStart(now, 0))
	assert.Equal(t, time.Date(2026, 2, 22, 0, 0, 0, 0, loc), windowStart(now, 7))
	assert.Equal(t, time.Date(2026, 1, 30, 0, 0, 0, 0, loc), windowStart(now, 30))
}

func TestMoney(t *testing.T) {
	assert.Equal(t, "$110", money(110))
	assert.Equal(t, "$99.50", money(99.5))
	assert.Equal(t, "$0.30", money(roundCents(0.1+0.2)))
}
