package report

import (
	"fmt"
	"strings"

	"github.com/Adwaitbytes/solguard/pkg/models"
)

// RenderText renders a plain-text audit report. Pure formatting:
// the same report always renders to the same bytes.
func RenderText(name string, report *models.AnalysisReport) string {
	var sb strings.Builder

	sb.WriteString(strings.Repeat("=", 79) + "\n")
	sb.WriteString("  SOLGUARD CONTRACT AUDIT REPORT\n")
	sb.WriteString(strings.Repeat("=", 79) + "\n\n")

	// Summary
	sb.WriteString("SUMMARY\n")
	sb.WriteString(strings.Repeat("-", 79) + "\n")
	if name != "" {
		sb.WriteString(fmt.Sprintf("Contract:         %s\n", name))
	}
	sb.WriteString(fmt.Sprintf("Risk Level:       %s\n", strings.ToUpper(string(report.RiskLevel))))
	sb.WriteString(fmt.Sprintf("Risk Score:       %d\n", report.OverallScore))
	sb.WriteString(fmt.Sprintf("Verdict:          %s\n", models.VerdictMessage(report.Verdict)))
	sb.WriteString(fmt.Sprintf("Total Findings:   %d\n", len(report.Findings)))
	sb.WriteString("\n")

	// Per-severity counts, most severe first
	sb.WriteString("FINDINGS BY SEVERITY\n")
	sb.WriteString(strings.Repeat("-", 79) + "\n")
	for _, severity := range models.Severities {
		sb.WriteString(fmt.Sprintf("  %-10s: %d\n",
			strings.ToUpper(string(severity)), report.SeveritySummary[severity]))
	}
	sb.WriteString("\n")

	vulns, practices, gas := splitFindings(report)

	if len(vulns) > 0 {
		sb.WriteString("VULNERABILITIES\n")
		sb.WriteString(strings.Repeat("=", 79) + "\n\n")
		for i, f := range vulns {
			writeTextFinding(&sb, i+1, f)
		}
	} else {
		sb.WriteString("No vulnerabilities detected.\n\n")
	}

	if len(practices) > 0 {
		sb.WriteString("BEST PRACTICES\n")
		sb.WriteString(strings.Repeat("=", 79) + "\n\n")
		for i, f := range practices {
			writeTextFinding(&sb, i+1, f)
		}
	}

	if len(gas) > 0 {
		sb.WriteString("GAS OPTIMIZATION\n")
		sb.WriteString(strings.Repeat("=", 79) + "\n\n")
		for i, f := range gas {
			writeTextFinding(&sb, i+1, f)
		}
	}

	if len(report.Warnings) > 0 {
		sb.WriteString("ANALYZER WARNINGS\n")
		sb.WriteString(strings.Repeat("-", 79) + "\n")
		for _, w := range report.Warnings {
			sb.WriteString(fmt.Sprintf("  %s\n", w))
		}
		sb.WriteString("\n")
	}

	sb.WriteString(strings.Repeat("=", 79) + "\n")
	sb.WriteString("End of Report\n")
	sb.WriteString(strings.Repeat("=", 79) + "\n")

	return sb.String()
}

func writeTextFinding(sb *strings.Builder, n int, f *models.Finding) {
	sb.WriteString(fmt.Sprintf("[%d] %s\n", n, f.Title))
	sb.WriteString(strings.Repeat("-", 79) + "\n")
	sb.WriteString(fmt.Sprintf("Severity:       %s\n", strings.ToUpper(string(f.Severity))))
	sb.WriteString(fmt.Sprintf("Category:       %s\n", f.Category))
	sb.WriteString(fmt.Sprintf("Rule:           %s\n", f.RuleID))
	if f.LineNumber > 0 {
		sb.WriteString(fmt.Sprintf("Line:           %d\n", f.LineNumber))
	}
	sb.WriteString(fmt.Sprintf("Occurrences:    %d\n", f.OccurrenceCount))
	sb.WriteString(fmt.Sprintf("Description:    %s\n", f.Description))
	sb.WriteString(fmt.Sprintf("Recommendation: %s\n", f.Recommendation))
	sb.WriteString("\n")
}

// splitFindings groups findings into the three report sections while
// keeping each section in finding order.
func splitFindings(report *models.AnalysisReport) (vulns, practices, gas []*models.Finding) {
	for _, f := range report.Findings {
		switch f.Category {
		case models.CategoryGasOptimization:
			gas = append(gas, f)
		case models.CategoryInformational:
			practices = append(practices, f)
		default:
			vulns = append(vulns, f)
		}
	}
	return vulns, practices, gas
}
