package models

// Match decision statuses.
const (
	DecisionAuthorized = "Authorized"
	DecisionRejected   = "Rejected"
)

// ClaimDecision is the authorization decision derived from a match score.
type ClaimDecision struct {
	Status string `json:"status"`
	Reason string `json:"reason,omitempty"`
}

// MatchResult is the parsed outcome of a vision-model comparison between a
// photographed object and the claimed item label.
type MatchResult struct {
	ObjectName         string
	AnalyzedImage      string
	MatchingPercentage int
	Decision           ClaimDecision
}
