package dto

import "github.com/GlebRadaev/cardguard/internal/domain"

type LimitUsageDTO struct {
	Current     float64 `json:"current" example:"80"`
	Limit       float64 `json:"limit" example:"100"`
	Remaining   float64 `json:"remaining" example:"20"`
	PercentUsed float64 `json:"percentUsed" example:"80"`
}

type SpendingSummaryResponseDTO struct {
	Tier        int           `json:"tier" example:"1"`
	Daily       LimitUsageDTO `json:"daily"`
	Weekly      LimitUsageDTO `json:"weekly"`
	Monthly     LimitUsageDTO `json:"monthly"`
	ActiveCards LimitUsageDTO `json:"activeCards"`
}

type LimitWarningResponseDTO struct {
	Type        string  `json:"type" example:"weekly"`
	Level       string  `json:"level" example:"critical"`
	PercentUsed float64 `json:"percentUsed" example:"96"`
	Message     string  `json:"message" example:"You have used 96% of your weekly spending limit"`
}

func NewLimitUsageDTO(u domain.LimitUsage) LimitUsageDTO {
	return LimitUsageDTO{
		Current:     u.Current,
		Limit:       u.Limit,
		Remaining:   u.Remaining,
		PercentUsed: u.PercentUsed,
	}
}
