package riskservice

import (
	"testing"
	"time"

	"github.com/GlebRadaev/cardguard/internal/config"
	"github.com/GlebRadaev/cardguard/internal/domain"
	"github.com/stretchr/testify/assert"
)

var testNow = time.Date(2026, 3, 15, 14, 0, 0, 0, time.UTC)

func oldUser() *domain.User {
	return &domain.User{ID: "user-1", KYCTier: 2, KYCVerified: true, CreatedAt: testNow.AddDate(-1, 0, 0)}
}

func cardAt(ago time.Duration, initial float64) domain.Card {
	return domain.Card{
		ID:        "card",
		UserID:    "user-1",
		Status:    domain.CardStatusActive,
		Balance:   domain.CardBalance{Initial: initial, Current: initial},
		CreatedAt: testNow.Add(-ago),
	}
}

func input(amount float64, sig *signals) analyzerInput {
	if sig.user == nil {
		sig.user = oldUser()
	}
	return analyzerInput{
		req: Request{
			UserID:          "user-1",
			Amount:          amount,
			UserAgent:       "Mozilla/5.0 (X11; Linux x86_64)",
			TransactionType: domain.TransactionPurchase,
		},
		sig:    sig,
		now:    testNow,
		policy: config.DefaultRiskPolicy(),
	}
}

func TestAnalyzeVelocity(t *testing.T) {
	tests := []struct {
		name          string
		in            analyzerInput
		expectedScore int
		expectedWhy   []string
	}{
		{
			name:          "quiet user",
			in:            input(50, &signals{cardsLastDay: 1, cardsLastWeek: 2}),
			expectedScore: 0,
		},
		{
			name:          "three cards today",
			in:            input(50, &signals{cardsLastDay: 3, cardsLastWeek: 3}),
			expectedScore: 30,
			expectedWhy:   []string{"High card creation velocity: 3 cards in 24 hours"},
		},
		{
			name:          "ten cards this week",
			in:            input(50, &signals{cardsLastDay: 0, cardsLastWeek: 10}),
			expectedScore: 20,
			expectedWhy:   []string{"High weekly card creation: 10 cards in 7 days"},
		},
		{
			name: "daily amount over threshold",
			in: input(300, &signals{
				cardsLastDay: 2,
				weekCards:    []domain.Card{cardAt(time.Hour, 400), cardAt(2*time.Hour, 350), cardAt(48*time.Hour, 500)},
			}),
			expectedScore: 25,
			expectedWhy:   []string{"Daily amount threshold exceeded: $1050"},
		},
		{
			name: "daily amount exactly at threshold",
			in: input(500, &signals{
				weekCards: []domain.Card{cardAt(time.Hour, 500)},
			}),
			expectedScore: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score, why := analyzeVelocity(tt.in)
			assert.Equal(t, tt.expectedScore, score)
			assert.Equal(t, tt.expectedWhy, why)
		})
	}
}

func TestAnalyzeVelocity_Reloads(t *testing.T) {
	in := input(20, &signals{reloadsLastHour: 5})

	score, _ := analyzeVelocity(in)
	assert.Equal(t, 0, score, "reload burst only applies to reloads")

	in.req.TransactionType = domain.TransactionReload
	score, why := analyzeVelocity(in)
	assert.Equal(t, 35, score)
	assert.Equal(t, []string{"Excessive reload frequency: 5 reloads in 1 hour"}, why)
}

func TestAnalyzeAmountPattern(t *testing.T) {
	tests := []struct {
		name          string
		in            analyzerInput
		expectedScore int
		expectedWhy   []string
	}{
		{
			name:          "odd amount, no history",
			in:            input(73.5, &signals{}),
			expectedScore: 0,
		},
		{
			name:          "round amount",
			in:            input(600, &signals{}),
			expectedScore: 5,
			expectedWhy:   []string{"Round number amount"},
		},
		{
			name: "ascending sequence ending at the cap",
			in: input(500, &signals{weekCards: []domain.Card{
				cardAt(24*time.Hour, 400), cardAt(48*time.Hour, 300), cardAt(72*time.Hour, 200), cardAt(96*time.Hour, 100),
			}}),
			expectedScore: 30,
			expectedWhy:   []string{"Round number amount", "Sequential amount pattern detected", "Maximum amount transaction"},
		},
		{
			name: "descending sequence",
			in: input(25, &signals{weekCards: []domain.Card{
				cardAt(time.Hour, 50), cardAt(2*time.Hour, 75),
			}}),
			expectedScore: 15,
			expectedWhy:   []string{"Sequential amount pattern detected"},
		},
		{
			name: "repeated amounts",
			in: input(42, &signals{weekCards: []domain.Card{
				cardAt(time.Hour, 42), cardAt(2*time.Hour, 42),
			}}),
			expectedScore: 10,
			expectedWhy:   []string{"Repeated identical amounts"},
		},
		{
			name: "only five most recent cards count",
			in: input(42, &signals{weekCards: []domain.Card{
				cardAt(1*time.Hour, 10), cardAt(2*time.Hour, 11), cardAt(3*time.Hour, 12),
				cardAt(4*time.Hour, 13), cardAt(5*time.Hour, 14), cardAt(6*time.Hour, 42), cardAt(7*time.Hour, 42),
			}}),
			expectedScore: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score, why := analyzeAmountPattern(tt.in)
			assert.Equal(t, tt.expectedScore, score)
			assert.Equal(t, tt.expectedWhy, why)
		})
	}
}

func TestAnalyzeTimeOfDay(t *testing.T) {
	tests := []struct {
		hour, minute  int
		expectedScore int
	}{
		{1, 59, 0},
		{2, 0, 10},
		{4, 30, 10},
		{5, 59, 10},
		{6, 0, 0},
		{14, 0, 0},
	}

	for _, tt := range tests {
		in := input(10, &signals{})
		in.now = time.Date(2026, 3, 15, tt.hour, tt.minute, 0, 0, time.UTC)
		score, why := analyzeTimeOfDay(in)
		assert.Equal(t, tt.expectedScore, score, "%02d:%02d", tt.hour, tt.minute)
		if tt.expectedScore > 0 {
			assert.Len(t, why, 1)
		}
	}
}

func TestAnalyzeIPAddresses(t *testing.T) {
	withIP := func(c domain.Card, ip string) domain.Card {
		c.Metadata.IPAddress = ip
		return c
	}

	tests := []struct {
		name          string
		cards         []domain.Card
		expectedScore int
	}{
		{
			name:  "two addresses",
			cards: []domain.Card{withIP(cardAt(time.Hour, 10), "10.0.0.1"), withIP(cardAt(2*time.Hour, 10), "10.0.0.2")},
		},
		{
			name: "three addresses today",
			cards: []domain.Card{
				withIP(cardAt(time.Hour, 10), "10.0.0.1"),
				withIP(cardAt(2*time.Hour, 10), "10.0.0.2"),
				withIP(cardAt(3*time.Hour, 10), "10.0.0.3"),
			},
			expectedScore: 20,
		},
		{
			name: "third address is older than a day",
			cards: []domain.Card{
				withIP(cardAt(time.Hour, 10), "10.0.0.1"),
				withIP(cardAt(2*time.Hour, 10), "10.0.0.2"),
				withIP(cardAt(30*time.Hour, 10), "10.0.0.3"),
			},
		},
		{
			name: "empty addresses are ignored",
			cards: []domain.Card{
				withIP(cardAt(time.Hour, 10), "10.0.0.1"),
				withIP(cardAt(2*time.Hour, 10), ""),
				withIP(cardAt(3*time.Hour, 10), "10.0.0.1"),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score, _ := analyzeIPAddresses(input(10, &signals{weekCards: tt.cards}))
			assert.Equal(t, tt.expectedScore, score)
		})
	}
}

func TestAnalyzeBehavior(t *testing.T) {
	newUser := &domain.User{ID: "user-1", KYCVerified: true, CreatedAt: testNow.Add(-9 * time.Second)}
	unverified := &domain.User{ID: "user-1", CreatedAt: testNow.AddDate(0, -2, 0)}

	tests := []struct {
		name          string
		amount        float64
		sig           *signals
		expectedScore int
		expectedWhy   []string
	}{
		{
			name:          "new account, high value",
			amount:        600,
			sig:           &signals{user: newUser},
			expectedScore: 25,
			expectedWhy:   []string{"New account (0 days) with high-value transaction"},
		},
		{
			name:          "new account, small value",
			amount:        499.99,
			sig:           &signals{user: newUser},
			expectedScore: 0,
		},
		{
			name:          "unverified above threshold",
			amount:        100.01,
			sig:           &signals{user: unverified},
			expectedScore: 15,
			expectedWhy:   []string{"Unverified account with significant amount"},
		},
		{
			name:          "unverified at threshold",
			amount:        100,
			sig:           &signals{user: unverified},
			expectedScore: 0,
		},
		{
			name:          "frozen cards add up",
			amount:        10,
			sig:           &signals{frozenCards: 2},
			expectedScore: 40,
			expectedWhy:   []string{"2 frozen card(s) on account"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score, why := analyzeBehavior(input(tt.amount, tt.sig))
			assert.Equal(t, tt.expectedScore, score)
			assert.Equal(t, tt.expectedWhy, why)
		})
	}
}

func TestAnalyzeDevices(t *testing.T) {
	withUA := func(c domain.Card, ua string) domain.Card {
		c.Metadata.UserAgent = ua
		return c
	}

	t.Run("many devices this week", func(t *testing.T) {
		in := input(10, &signals{weekCards: []domain.Card{
			withUA(cardAt(time.Hour, 10), "agent-one/1.0"),
			withUA(cardAt(50*time.Hour, 10), "agent-two/1.0"),
			withUA(cardAt(100*time.Hour, 10), "agent-three/1.0"),
		}})
		score, why := analyzeDevices(in)
		assert.Equal(t, 15, score)
		assert.Equal(t, []string{"Multiple devices: 3 user agents in 7 days"}, why)
	})

	t.Run("short user agent", func(t *testing.T) {
		in := input(10, &signals{})
		in.req.UserAgent = "curl/8"
		score, why := analyzeDevices(in)
		assert.Equal(t, 10, score)
		assert.Equal(t, []string{"Missing or suspicious user agent"}, why)
	})

	t.Run("missing user agent", func(t *testing.T) {
		in := input(10, &signals{})
		in.req.UserAgent = ""
		score, _ := analyzeDevices(in)
		assert.Equal(t, 10, score)
	})
}

func TestAnalyzeChargebacks(t *testing.T) {
	tests := []struct {
		name          string
		disputed      int
		expectedScore int
	}{
		{name: "clean history"},
		{name: "one disputed card", disputed: 1, expectedScore: 40},
		{name: "counted once", disputed: 3, expectedScore: 40},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score, reasons := analyzeChargebacks(input(10, &signals{disputedCards: tt.disputed}))
			assert.Equal(t, tt.expectedScore, score)
			if tt.expectedScore > 0 {
				assert.Equal(t, []string{"Previous chargeback history"}, reasons)
			}
		})
	}
}

func TestIsArithmetic(t *testing.T) {
	tests := []struct {
		values   []float64
		expected bool
	}{
		{[]float64{100, 200}, false},
		{[]float64{100, 200, 300}, true},
		{[]float64{300, 200, 100}, true},
		{[]float64{100, 100, 100}, false},
		{[]float64{100, 200, 301}, false},
		{[]float64{0.1, 0.2, 0.3}, true},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, isArithmetic(tt.values), "%v", tt.values)
	}
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "1050", formatAmount(1050))
	assert.Equal(t, "1000.50", formatAmount(1000.5))
}
