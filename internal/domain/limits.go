package domain

type LimitType string

const (
	LimitPerCard     LimitType = "perCard"
	LimitMaxCards    LimitType = "maxCards"
	LimitDaily       LimitType = "daily"
	LimitWeekly      LimitType = "weekly"
	LimitMonthly     LimitType = "monthly"
	LimitActiveCards LimitType = "activeCards"
)

type LimitOutcome string

const (
	LimitOutcomeApproved LimitOutcome = "approved"
	LimitOutcomeDenied   LimitOutcome = "denied"
)

type DenialCode string

const (
	DenialInvalidAmount    DenialCode = "invalid_amount"
	DenialLimitExceeded    DenialCode = "limit_exceeded"
	DenialUserNotFound     DenialCode = "user_not_found"
	DenialCardNotFound     DenialCode = "card_not_found"
	DenialNotReloadable    DenialCode = "not_reloadable"
	DenialCardStatus       DenialCode = "card_status"
	DenialMaxReloads       DenialCode = "max_reloads_reached"
	DenialBalanceCeiling   DenialCode = "balance_ceiling"
	DenialLimitCheckFailed DenialCode = "limit_check_failed"
)

type TierLimits struct {
	Daily          float64 `json:"daily"`
	Weekly         float64 `json:"weekly"`
	Monthly        float64 `json:"monthly"`
	PerCard        float64 `json:"perCard"`
	MaxActiveCards int     `json:"maxActiveCards"`
}

// Usage is the consumption snapshot a decision was made against.
type Usage struct {
	Daily       float64 `json:"daily"`
	Weekly      float64 `json:"weekly"`
	Monthly     float64 `json:"monthly"`
	ActiveCards int     `json:"activeCards"`
}

type LimitDecision struct {
	Allowed  bool         `json:"allowed"`
	Outcome  LimitOutcome `json:"outcome"`
	Code     DenialCode   `json:"code,omitempty"`
	Exceeded LimitType    `json:"exceeded,omitempty"`
	Limit    float64      `json:"limit,omitempty"`
	Current  float64      `json:"current,omitempty"`
	Reason   string       `json:"reason,omitempty"`
	Tier     int          `json:"tier,omitempty"`
	Limits   *TierLimits  `json:"limits,omitempty"`
	Usage    *Usage       `json:"usage,omitempty"`
}

type LimitUsage struct {
	Current     float64 `json:"current"`
	Limit       float64 `json:"limit"`
	Remaining   float64 `json:"remaining"`
	PercentUsed float64 `json:"percentUsed"`
}

type SpendingSummary struct {
	UserID      string     `json:"userId"`
	Tier        int        `json:"tier"`
	Daily       LimitUsage `json:"daily"`
	Weekly      LimitUsage `json:"weekly"`
	Monthly     LimitUsage `json:"monthly"`
	ActiveCards LimitUsage `json:"activeCards"`
}

type WarningLevel string

const (
	WarningLevelWarning  WarningLevel = "warning"
	WarningLevelCritical WarningLevel = "critical"
)

type LimitWarning struct {
	Type        LimitType    `json:"type"`
	Level       WarningLevel `json:"level"`
	PercentUsed float64      `json:"percentUsed"`
	Message     string       `json:"message"`
}
