package models

import "testing"

func TestWeightOf(t *testing.T) {
	tests := []struct {
		severity Severity
		want     int
	}{
		{SeverityCritical, 10},
		{SeverityHigh, 7},
		{SeverityMedium, 4},
		{SeverityLow, 2},
		{SeverityInfo, 0},
		{Severity("unknown"), 0},
	}

	for _, tt := range tests {
		if got := WeightOf(tt.severity); got != tt.want {
			t.Errorf("WeightOf(%s) = %d, want %d", tt.severity, got, tt.want)
		}
	}
}

func TestRiskLevelFor_Boundaries(t *testing.T) {
	tests := []struct {
		score int
		want  RiskLevel
	}{
		{0, RiskMinimal},
		{1, RiskLow},
		{9, RiskLow},
		{10, RiskMedium},
		{19, RiskMedium},
		{20, RiskHigh},
		{21, RiskHigh},
		{100, RiskHigh},
	}

	for _, tt := range tests {
		if got := RiskLevelFor(tt.score); got != tt.want {
			t.Errorf("RiskLevelFor(%d) = %s, want %s", tt.score, got, tt.want)
		}
	}
}

func TestVerdictFor(t *testing.T) {
	tests := []struct {
		name     string
		critical int
		high     int
		want     DeployVerdict
	}{
		{"no findings", 0, 0, VerdictDeployable},
		{"high only", 0, 3, VerdictCaution},
		{"critical only", 1, 0, VerdictBlocked},
		{"critical wins over high", 2, 5, VerdictBlocked},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := VerdictFor(tt.critical, tt.high); got != tt.want {
				t.Errorf("VerdictFor(%d, %d) = %s, want %s", tt.critical, tt.high, got, tt.want)
			}
		})
	}
}

func TestVerdictMessage_Distinct(t *testing.T) {
	// The three tiers must stay distinguishable in user-facing output.
	msgs := map[string]bool{}
	for _, v := range []DeployVerdict{VerdictBlocked, VerdictCaution, VerdictDeployable} {
		msg := VerdictMessage(v)
		if msg == "" {
			t.Errorf("VerdictMessage(%s) is empty", v)
		}
		if msgs[msg] {
			t.Errorf("VerdictMessage(%s) duplicates another verdict message", v)
		}
		msgs[msg] = true
	}
}

func TestAnalysisReport_Finalize(t *testing.T) {
	r := NewAnalysisReport()
	r.AddFinding(&Finding{RuleID: "A", Severity: SeverityCritical})
	r.AddFinding(&Finding{RuleID: "B", Severity: SeverityCritical})
	r.AddFinding(&Finding{RuleID: "C", Severity: SeverityInfo})
	r.Finalize()

	if r.OverallScore != 20 {
		t.Errorf("OverallScore = %d, want 20", r.OverallScore)
	}
	if r.RiskLevel != RiskHigh {
		t.Errorf("RiskLevel = %s, want %s", r.RiskLevel, RiskHigh)
	}
	if r.SafeToDeploy {
		t.Error("SafeToDeploy = true with critical findings present")
	}
	if r.Verdict != VerdictBlocked {
		t.Errorf("Verdict = %s, want %s", r.Verdict, VerdictBlocked)
	}

	// Score is exactly the sum of per-finding weights.
	sum := 0
	for _, f := range r.Findings {
		sum += WeightOf(f.Severity)
	}
	if sum != r.OverallScore {
		t.Errorf("OverallScore %d does not equal weight sum %d", r.OverallScore, sum)
	}
}

func TestAnalysisReport_SummaryHasAllBuckets(t *testing.T) {
	r := NewAnalysisReport()
	for _, s := range Severities {
		if _, ok := r.SeveritySummary[s]; !ok {
			t.Errorf("SeveritySummary missing bucket %s", s)
		}
	}

	r.AddFinding(&Finding{RuleID: "A", Severity: SeverityHigh})
	r.AddFinding(&Finding{RuleID: "B", Severity: SeverityHigh})
	r.AddFinding(&Finding{RuleID: "C", Severity: SeverityLow})

	total := 0
	for _, n := range r.SeveritySummary {
		total += n
	}
	if total != len(r.Findings) {
		t.Errorf("summary counts sum to %d, want %d", total, len(r.Findings))
	}
}

func TestAnalysisReport_HighOnlyIsSafe(t *testing.T) {
	r := NewAnalysisReport()
	r.AddFinding(&Finding{RuleID: "A", Severity: SeverityHigh})
	r.Finalize()

	if !r.SafeToDeploy {
		t.Error("SafeToDeploy = false without critical findings")
	}
	if r.Verdict != VerdictCaution {
		t.Errorf("Verdict = %s, want %s", r.Verdict, VerdictCaution)
	}
}
