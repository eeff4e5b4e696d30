package report

import (
	"strings"
	"testing"

	"github.com/Adwaitbytes/solguard/pkg/models"
)

func sampleReport() *models.AnalysisReport {
	r := models.NewAnalysisReport()
	r.AddFinding(&models.Finding{
		RuleID:          "SOL-001",
		Title:           "Potential Reentrancy Vulnerability",
		Severity:        models.SeverityCritical,
		Category:        models.CategoryReentrancy,
		Description:     "External call without protection",
		Recommendation:  "Use ReentrancyGuard",
		OccurrenceCount: 1,
		LineNumber:      7,
	})
	r.AddFinding(&models.Finding{
		RuleID:          "SOL-100",
		Title:           "Uses OpenZeppelin Contracts",
		Severity:        models.SeverityInfo,
		Category:        models.CategoryInformational,
		Description:     "Audited library imported",
		Recommendation:  "Pin the version",
		OccurrenceCount: 1,
	})
	r.AddFinding(&models.Finding{
		RuleID:          "GAS-001",
		Title:           "Post-Increment In Loop",
		Severity:        models.SeverityInfo,
		Category:        models.CategoryGasOptimization,
		Description:     "i++ costs extra gas",
		Recommendation:  "Use ++i",
		OccurrenceCount: 2,
		LineNumber:      12,
	})
	r.Finalize()
	return r
}

func TestRenderText_Sections(t *testing.T) {
	out := RenderText("Vault.sol", sampleReport())

	for _, want := range []string{
		"Vault.sol",
		"VULNERABILITIES",
		"BEST PRACTICES",
		"GAS OPTIMIZATION",
		"Potential Reentrancy Vulnerability",
		"Uses OpenZeppelin Contracts",
		"Post-Increment In Loop",
		"Deployment blocked",
		"End of Report",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q", want)
		}
	}

	// Gas tips belong to their own section, after the vulnerabilities.
	if strings.Index(out, "GAS OPTIMIZATION") < strings.Index(out, "VULNERABILITIES") {
		t.Error("gas section rendered before vulnerabilities")
	}
}

func TestRenderText_AllSeverityBuckets(t *testing.T) {
	out := RenderText("", models.NewAnalysisReport())

	for _, s := range models.Severities {
		if !strings.Contains(out, strings.ToUpper(string(s))) {
			t.Errorf("severity summary missing bucket %s", s)
		}
	}
	if !strings.Contains(out, "No vulnerabilities detected.") {
		t.Error("empty report missing no-findings line")
	}
}

func TestRenderText_Deterministic(t *testing.T) {
	r := sampleReport()
	if RenderText("Vault.sol", r) != RenderText("Vault.sol", r) {
		t.Error("RenderText is not deterministic")
	}
}

func TestRenderJSON(t *testing.T) {
	r := sampleReport()

	a, err := RenderJSON("Vault.sol", r)
	if err != nil {
		t.Fatalf("RenderJSON() error: %v", err)
	}
	b, err := RenderJSON("Vault.sol", r)
	if err != nil {
		t.Fatal(err)
	}
	if string(a) != string(b) {
		t.Error("RenderJSON is not deterministic")
	}
	for _, want := range []string{`"rule_id": "SOL-001"`, `"overall_score"`, `"severity_summary"`} {
		if !strings.Contains(string(a), want) {
			t.Errorf("JSON missing %q", want)
		}
	}
}

func TestRenderMarkdown(t *testing.T) {
	out := RenderMarkdown("Vault.sol", sampleReport())

	for _, want := range []string{
		"# Contract Audit Report",
		"## Vulnerabilities",
		"## Best Practices",
		"## Gas Optimization",
		"| critical | 1 |",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("markdown missing %q", want)
		}
	}
}
