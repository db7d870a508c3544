package riskservice

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/GlebRadaev/cardguard/internal/config"
	"github.com/GlebRadaev/cardguard/internal/domain"
)

const (
	pointsDailyCards       = 30
	pointsWeeklyCards      = 20
	pointsDailyAmount      = 25
	pointsReloadBurst      = 35
	pointsRoundAmount      = 5
	pointsSequence         = 15
	pointsRepeatedAmount   = 10
	pointsMaxAmount        = 10
	pointsNightTime        = 10
	pointsManyIPs          = 20
	pointsNewAccount       = 25
	pointsUnverified       = 15
	pointsPerFrozenCard    = 20
	pointsManyDevices      = 15
	pointsSuspiciousAgent  = 10
	pointsChargebackRecord = 40

	repeatedAmountCount = 3
	minSequenceLength   = 3
	amountEpsilon       = 1e-9
)

type analyzerInput struct {
	req    Request
	sig    *signals
	now    time.Time
	policy config.RiskPolicy
}

type analyzer func(in analyzerInput) (int, []string)

// analyzers run in this order; reasons are reported in the same order.
var analyzers = []analyzer{
	analyzeVelocity,
	analyzeAmountPattern,
	analyzeTimeOfDay,
	analyzeIPAddresses,
	analyzeBehavior,
	analyzeDevices,
	analyzeChargebacks,
}

func analyzeVelocity(in analyzerInput) (int, []string) {
	p := in.policy
	score := 0
	var reasons []string

	if in.sig.cardsLastDay >= p.DailyCardLimit {
		score += pointsDailyCards
		reasons = append(reasons, fmt.Sprintf("High card creation velocity: %d cards in 24 hours", in.sig.cardsLastDay))
	}
	if in.sig.cardsLastWeek >= p.WeeklyCardLimit {
		score += pointsWeeklyCards
		reasons = append(reasons, fmt.Sprintf("High weekly card creation: %d cards in 7 days", in.sig.cardsLastWeek))
	}

	dayAmount := in.req.Amount
	for _, card := range createdSince(in.sig.weekCards, in.now.Add(-24*time.Hour)) {
		dayAmount += card.Balance.Initial
	}
	if dayAmount > p.DailyAmountLimit {
		score += pointsDailyAmount
		reasons = append(reasons, fmt.Sprintf("Daily amount threshold exceeded: $%s", formatAmount(dayAmount)))
	}

	if in.req.TransactionType == domain.TransactionReload && in.sig.reloadsLastHour >= p.HourlyReloadLimit {
		score += pointsReloadBurst
		reasons = append(reasons, fmt.Sprintf("Excessive reload frequency: %d reloads in 1 hour", in.sig.reloadsLastHour))
	}
	return score, reasons
}

func analyzeAmountPattern(in analyzerInput) (int, []string) {
	p := in.policy
	amount := in.req.Amount
	score := 0
	var reasons []string

	recent := in.sig.weekCards
	if len(recent) > p.PatternLookback {
		recent = recent[:p.PatternLookback]
	}
	// weekCards is newest first; the sequence check needs chronological order.
	amounts := make([]float64, 0, len(recent)+1)
	for i := len(recent) - 1; i >= 0; i-- {
		amounts = append(amounts, recent[i].Balance.Initial)
	}
	amounts = append(amounts, amount)

	if isMultipleOf(amount, p.RoundAmountStep) {
		score += pointsRoundAmount
		reasons = append(reasons, "Round number amount")
	}
	if isArithmetic(amounts) {
		score += pointsSequence
		reasons = append(reasons, "Sequential amount pattern detected")
	}
	if countEqual(amounts, amount) >= repeatedAmountCount {
		score += pointsRepeatedAmount
		reasons = append(reasons, "Repeated identical amounts")
	}
	if sameAmount(amount, p.MaxTransactionAmount) {
		score += pointsMaxAmount
		reasons = append(reasons, "Maximum amount transaction")
	}
	return score, reasons
}

func analyzeTimeOfDay(in analyzerInput) (int, []string) {
	hour := in.now.Hour()
	if hour >= in.policy.NightStartHour && hour < in.policy.NightEndHour {
		return pointsNightTime, []string{fmt.Sprintf("Unusual transaction time: %02d:%02d", hour, in.now.Minute())}
	}
	return 0, nil
}

func analyzeIPAddresses(in analyzerInput) (int, []string) {
	ips := distinct(createdSince(in.sig.weekCards, in.now.Add(-24*time.Hour)), func(c domain.Card) string {
		return c.Metadata.IPAddress
	})
	if ips >= in.policy.DistinctIPLimit {
		return pointsManyIPs, []string{fmt.Sprintf("Multiple IP addresses: %d in 24 hours", ips)}
	}
	return 0, nil
}

func analyzeBehavior(in analyzerInput) (int, []string) {
	p := in.policy
	user := in.sig.user
	amount := in.req.Amount
	score := 0
	var reasons []string

	ageDays := in.now.Sub(user.CreatedAt).Hours() / 24
	if ageDays < float64(p.NewAccountDays) && amount >= p.NewAccountAmount {
		score += pointsNewAccount
		reasons = append(reasons, fmt.Sprintf("New account (%.0f days) with high-value transaction", math.Floor(ageDays)))
	}
	if !user.KYCVerified && amount > p.UnverifiedAmount {
		score += pointsUnverified
		reasons = append(reasons, "Unverified account with significant amount")
	}
	if in.sig.frozenCards > 0 {
		score += pointsPerFrozenCard * in.sig.frozenCards
		reasons = append(reasons, fmt.Sprintf("%d frozen card(s) on account", in.sig.frozenCards))
	}
	return score, reasons
}

func analyzeDevices(in analyzerInput) (int, []string) {
	score := 0
	var reasons []string

	agents := distinct(in.sig.weekCards, func(c domain.Card) string {
		return c.Metadata.UserAgent
	})
	if agents >= in.policy.DistinctDeviceLimit {
		score += pointsManyDevices
		reasons = append(reasons, fmt.Sprintf("Multiple devices: %d user agents in 7 days", agents))
	}
	if len(strings.TrimSpace(in.req.UserAgent)) < in.policy.MinUserAgentLength {
		score += pointsSuspiciousAgent
		reasons = append(reasons, "Missing or suspicious user agent")
	}
	return score, reasons
}

// analyzeChargebacks reads the count of cards flagged as disputed or noted
// with a chargeback. Any one is enough.
func analyzeChargebacks(in analyzerInput) (int, []string) {
	if in.sig.disputedCards > 0 {
		return pointsChargebackRecord, []string{"Previous chargeback history"}
	}
	return 0, nil
}

func createdSince(cards []domain.Card, since time.Time) []domain.Card {
	out := make([]domain.Card, 0, len(cards))
	for _, card := range cards {
		if !card.CreatedAt.Before(since) {
			out = append(out, card)
		}
	}
	return out
}

// distinct counts unique non-empty keys.
func distinct(cards []domain.Card, key func(domain.Card) string) int {
	seen := make(map[string]struct{}, len(cards))
	for _, card := range cards {
		if k := key(card); k != "" {
			seen[k] = struct{}{}
		}
	}
	return len(seen)
}

func isMultipleOf(amount, step float64) bool {
	if step <= 0 {
		return false
	}
	return math.Abs(math.Remainder(amount, step)) < amountEpsilon
}

// isArithmetic reports a sequence of at least three values with a constant,
// non-zero step.
func isArithmetic(values []float64) bool {
	if len(values) < minSequenceLength {
		return false
	}
	step := values[1] - values[0]
	if math.Abs(step) < amountEpsilon {
		return false
	}
	for i := 2; i < len(values); i++ {
		if !sameAmount(values[i]-values[i-1], step) {
			return false
		}
	}
	return true
}

func countEqual(values []float64, target float64) int {
	n := 0
	for _, v := range values {
		if sameAmount(v, target) {
			n++
		}
	}
	return n
}

func sameAmount(a, b float64) bool {
	return math.Abs(a-b) < amountEpsilon
}

func formatAmount(v float64) string {
	if v == math.Trunc(v) {
		return strconv.FormatFloat(v, 'f', 0, 64)
	}
	return strconv.FormatFloat(v, 'f', 2, 64)
}
