package config

import (
	"errors"
	"fmt"

	"github.com/GlebRadaev/cardguard/internal/domain"
)

// RiskPolicy holds every threshold the risk analyzers compare against.
type RiskPolicy struct {
	DailyCardLimit       int     `env:"DAILY_CARD_LIMIT"        envDefault:"3"`
	WeeklyCardLimit      int     `env:"WEEKLY_CARD_LIMIT"       envDefault:"10"`
	DailyAmountLimit     float64 `env:"DAILY_AMOUNT_LIMIT"      envDefault:"1000"`
	HourlyReloadLimit    int     `env:"HOURLY_RELOAD_LIMIT"     envDefault:"5"`
	MaxTransactionAmount float64 `env:"MAX_TRANSACTION_AMOUNT"  envDefault:"500"`
	RoundAmountStep      float64 `env:"ROUND_AMOUNT_STEP"       envDefault:"100"`
	PatternLookback      int     `env:"PATTERN_LOOKBACK"        envDefault:"5"`
	NightStartHour       int     `env:"NIGHT_START_HOUR"        envDefault:"2"`
	NightEndHour         int     `env:"NIGHT_END_HOUR"          envDefault:"6"`
	DistinctIPLimit      int     `env:"DISTINCT_IP_LIMIT"       envDefault:"3"`
	DistinctDeviceLimit  int     `env:"DISTINCT_DEVICE_LIMIT"   envDefault:"3"`
	NewAccountDays       int     `env:"NEW_ACCOUNT_DAYS"        envDefault:"7"`
	NewAccountAmount     float64 `env:"NEW_ACCOUNT_AMOUNT"      envDefault:"500"`
	UnverifiedAmount     float64 `env:"UNVERIFIED_AMOUNT"       envDefault:"100"`
	MinUserAgentLength   int     `env:"MIN_USER_AGENT_LENGTH"   envDefault:"10"`
	CriticalScore        int     `env:"CRITICAL_SCORE"          envDefault:"90"`
	HighScore            int     `env:"HIGH_SCORE"              envDefault:"75"`
	MediumScore          int     `env:"MEDIUM_SCORE"            envDefault:"50"`
	LowScore             int     `env:"LOW_SCORE"               envDefault:"25"`
}

func DefaultRiskPolicy() RiskPolicy {
	return RiskPolicy{
		DailyCardLimit:       3,
		WeeklyCardLimit:      10,
		DailyAmountLimit:     1000,
		HourlyReloadLimit:    5,
		MaxTransactionAmount: 500,
		RoundAmountStep:      100,
		PatternLookback:      5,
		NightStartHour:       2,
		NightEndHour:         6,
		DistinctIPLimit:      3,
		DistinctDeviceLimit:  3,
		NewAccountDays:       7,
		NewAccountAmount:     500,
		UnverifiedAmount:     100,
		MinUserAgentLength:   10,
		CriticalScore:        90,
		HighScore:            75,
		MediumScore:          50,
		LowScore:             25,
	}
}

var ErrInvalidRiskPolicy = errors.New("invalid risk policy")

// Validate checks the score ladder is strictly increasing and ends at or
// below 100, so blocking implies review and review implies MFA.
func (p RiskPolicy) Validate() error {
	if p.LowScore <= 0 || p.LowScore >= p.MediumScore || p.MediumScore >= p.HighScore ||
		p.HighScore >= p.CriticalScore || p.CriticalScore > 100 {
		return fmt.Errorf("%w: scores must satisfy 0 < low < medium < high < critical <= 100, got %d/%d/%d/%d",
			ErrInvalidRiskPolicy, p.LowScore, p.MediumScore, p.HighScore, p.CriticalScore)
	}
	if p.NightStartHour < 0 || p.NightEndHour > 24 || p.NightStartHour >= p.NightEndHour {
		return fmt.Errorf("%w: night window %d-%d must lie within 0-24 and start before it ends",
			ErrInvalidRiskPolicy, p.NightStartHour, p.NightEndHour)
	}
	if p.RoundAmountStep <= 0 || p.PatternLookback <= 0 {
		return fmt.Errorf("%w: round amount step and pattern lookback must be positive", ErrInvalidRiskPolicy)
	}
	return nil
}

const (
	DefaultTier       = 1
	MaxCardBalance    = 500.0
	WarningPercent    = 80.0
	CriticalPercent   = 95.0
	WeeklyWindowDays  = 7
	MonthlyWindowDays = 30
)

// LimitPolicy is the tier table plus the absolute per-card balance ceiling.
// It is read-only after construction.
type LimitPolicy struct {
	tiers          map[int]domain.TierLimits
	maxCardBalance float64
}

func NewLimitPolicy(tiers map[int]domain.TierLimits, maxCardBalance float64) LimitPolicy {
	copied := make(map[int]domain.TierLimits, len(tiers))
	for tier, limits := range tiers {
		copied[tier] = limits
	}
	return LimitPolicy{tiers: copied, maxCardBalance: maxCardBalance}
}

func DefaultLimitPolicy() LimitPolicy {
	return NewLimitPolicy(map[int]domain.TierLimits{
		1: {Daily: 100, Weekly: 300, Monthly: 1000, PerCard: 100, MaxActiveCards: 3},
		2: {Daily: 500, Weekly: 1500, Monthly: 5000, PerCard: 500, MaxActiveCards: 10},
		3: {Daily: 2000, Weekly: 7000, Monthly: 20000, PerCard: 500, MaxActiveCards: 25},
	}, MaxCardBalance)
}

// Tier returns the limits for tier, falling back to the default tier for
// unknown values.
func (p LimitPolicy) Tier(tier int) (int, domain.TierLimits) {
	if limits, ok := p.tiers[tier]; ok {
		return tier, limits
	}
	return DefaultTier, p.tiers[DefaultTier]
}

func (p LimitPolicy) MaxCardBalance() float64 {
	return p.maxCardBalance
}
