package models

// AnalysisReport is the aggregate result of one analysis run.
//
// The report contains no timestamps or other per-run state, so
// analyzing the same source twice produces identical reports.
type AnalysisReport struct {
	Findings        []*Finding       `json:"findings"`
	OverallScore    int              `json:"overall_score"`
	RiskLevel       RiskLevel        `json:"risk_level"`
	SafeToDeploy    bool             `json:"safe_to_deploy"`
	Verdict         DeployVerdict    `json:"verdict"`
	SeveritySummary map[Severity]int `json:"severity_summary"`

	// Warnings are analyzer-internal diagnostics (e.g. a rule whose
	// evaluation failed). They are not findings and do not affect the
	// score.
	Warnings []string `json:"warnings,omitempty"`
}

// NewAnalysisReport creates an empty report with all severity buckets
// initialized so callers never need to null-check summary keys.
func NewAnalysisReport() *AnalysisReport {
	summary := make(map[Severity]int, len(Severities))
	for _, s := range Severities {
		summary[s] = 0
	}
	return &AnalysisReport{
		Findings:        make([]*Finding, 0),
		RiskLevel:       RiskMinimal,
		SafeToDeploy:    true,
		Verdict:         VerdictDeployable,
		SeveritySummary: summary,
	}
}

// AddFinding appends a finding and updates the severity summary
func (r *AnalysisReport) AddFinding(f *Finding) {
	r.Findings = append(r.Findings, f)
	r.SeveritySummary[f.Severity]++
}

// Finalize computes the score, risk level and deploy verdict from the
// accumulated findings. overall_score is exactly the sum of severity
// weights; there are no hidden adjustments.
func (r *AnalysisReport) Finalize() {
	score := 0
	for _, f := range r.Findings {
		score += WeightOf(f.Severity)
	}
	r.OverallScore = score
	r.RiskLevel = RiskLevelFor(score)
	r.Verdict = VerdictFor(r.SeveritySummary[SeverityCritical], r.SeveritySummary[SeverityHigh])
	r.SafeToDeploy = r.SeveritySummary[SeverityCritical] == 0
}

// CountByCategory returns how many findings belong to the category
func (r *AnalysisReport) CountByCategory(c Category) int {
	n := 0
	for _, f := range r.Findings {
		if f.Category == c {
			n++
		}
	}
	return n
}
