package limitservice

import (
	"fmt"
	"math"
	"strconv"

	"github.com/GlebRadaev/cardguard/internal/domain"
)

// evaluate runs the constraint chain in order and stops at the first
// violation: per-card, active cards, then daily, weekly and monthly spend.
func evaluate(amount float64, tier int, limits domain.TierLimits, usage domain.Usage) *domain.LimitDecision {
	if amount > limits.PerCard {
		return deny(domain.DenialLimitExceeded, domain.LimitPerCard, limits.PerCard, amount,
			fmt.Sprintf("Amount exceeds per-card limit: %s/%s", money(amount), money(limits.PerCard)))
	}
	if usage.ActiveCards >= limits.MaxActiveCards {
		return deny(domain.DenialLimitExceeded, domain.LimitMaxCards, float64(limits.MaxActiveCards), float64(usage.ActiveCards),
			fmt.Sprintf("Maximum active cards reached: %d/%d", usage.ActiveCards, limits.MaxActiveCards))
	}

	windows := []struct {
		kind  domain.LimitType
		label string
		spent float64
		limit float64
	}{
		{domain.LimitDaily, "Daily", usage.Daily, limits.Daily},
		{domain.LimitWeekly, "Weekly", usage.Weekly, limits.Weekly},
		{domain.LimitMonthly, "Monthly", usage.Monthly, limits.Monthly},
	}
	for _, w := range windows {
		if next := roundCents(w.spent + amount); next > w.limit {
			return deny(domain.DenialLimitExceeded, w.kind, w.limit, next,
				fmt.Sprintf("%s limit exceeded: %s/%s", w.label, money(next), money(w.limit)))
		}
	}

	return &domain.LimitDecision{
		Allowed: true,
		Outcome: domain.LimitOutcomeApproved,
		Tier:    tier,
		Limits:  &limits,
		Usage:   &usage,
	}
}

func deny(code domain.DenialCode, exceeded domain.LimitType, limit, current float64, reason string) *domain.LimitDecision {
	return &domain.LimitDecision{
		Allowed:  false,
		Outcome:  domain.LimitOutcomeDenied,
		Code:     code,
		Exceeded: exceeded,
		Limit:    limit,
		Current:  current,
		Reason:   reason,
	}
}

func invalidAmount(amount float64) *domain.LimitDecision {
	return deny(domain.DenialInvalidAmount, "", 0, 0, fmt.Sprintf("Invalid amount: %v", amount))
}

func userNotFound(userID string) *domain.LimitDecision {
	return deny(domain.DenialUserNotFound, "", 0, 0, fmt.Sprintf("User %s not found", userID))
}

func validAmount(amount float64) bool {
	return amount > 0 && !math.IsInf(amount, 0) && !math.IsNaN(amount)
}

func usageOf(current, limit float64) domain.LimitUsage {
	u := domain.LimitUsage{
		Current:   current,
		Limit:     limit,
		Remaining: math.Max(0, roundCents(limit-current)),
	}
	if limit > 0 {
		u.PercentUsed = math.Min(100, current*100/limit)
	}
	return u
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}

// money prints whole dollars without decimals: "$110", "$99.50".
func money(v float64) string {
	if v == math.Trunc(v) {
		return "$" + strconv.FormatFloat(v, 'f', 0, 64)
	}
	return "$" + strconv.FormatFloat(v, 'f', 2, 64)
}
