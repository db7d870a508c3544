package domain

// Decision combines the hard limit gate with the soft risk assessment. Risk
// is nil when the limit check already denied the request.
type Decision struct {
	Approved       bool            `json:"approved"`
	RequiresReview bool            `json:"requiresReview"`
	RequiresMFA    bool            `json:"requiresMFA"`
	Limits         *LimitDecision  `json:"limits"`
	Risk           *RiskAssessment `json:"risk,omitempty"`
}
