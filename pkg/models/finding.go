package models

// Finding represents a single detected issue.
//
// Title, Description and Recommendation are copied from the rule at
// detection time so the finding stays self-contained even if the rule
// catalog changes between versions.
type Finding struct {
	RuleID          string   `json:"rule_id"`
	Title           string   `json:"title"`
	Severity        Severity `json:"severity"`
	Category        Category `json:"category"`
	Description     string   `json:"description"`
	Recommendation  string   `json:"recommendation"`
	OccurrenceCount int      `json:"occurrence_count"`
	LineNumber      int      `json:"line_number,omitempty"` // best-effort, pattern-based
}
