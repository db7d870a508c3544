package domain

type RiskLevel string

const (
	RiskMinimal  RiskLevel = "MINIMAL"
	RiskLow      RiskLevel = "LOW"
	RiskMedium   RiskLevel = "MEDIUM"
	RiskHigh     RiskLevel = "HIGH"
	RiskCritical RiskLevel = "CRITICAL"
)

// RiskOutcome tells a scored assessment apart from the conservative one
// returned when signals could not be gathered.
type RiskOutcome string

const (
	RiskOutcomeScored   RiskOutcome = "scored"
	RiskOutcomeDegraded RiskOutcome = "degraded"
)

type RiskAssessment struct {
	Score          int         `json:"score"`
	Level          RiskLevel   `json:"level"`
	Reasons        []string    `json:"reasons"`
	ShouldBlock    bool        `json:"shouldBlock"`
	RequiresReview bool        `json:"requiresReview"`
	RequiresMFA    bool        `json:"requiresMFA"`
	Outcome        RiskOutcome `json:"outcome"`
}
