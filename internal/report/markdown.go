package report

import (
	"fmt"
	"strings"

	"github.com/Adwaitbytes/solguard/pkg/models"
)

// RenderMarkdown renders the report as Markdown
func RenderMarkdown(name string, report *models.AnalysisReport) string {
	var sb strings.Builder

	sb.WriteString("# Contract Audit Report\n\n")
	if name != "" {
		sb.WriteString(fmt.Sprintf("**Contract:** `%s`\n\n", name))
	}
	sb.WriteString(fmt.Sprintf("**Risk Level:** %s  \n", strings.ToUpper(string(report.RiskLevel))))
	sb.WriteString(fmt.Sprintf("**Risk Score:** %d  \n", report.OverallScore))
	sb.WriteString(fmt.Sprintf("**Verdict:** %s\n\n", models.VerdictMessage(report.Verdict)))

	sb.WriteString("## Severity Summary\n\n")
	sb.WriteString("| Severity | Count |\n|----------|-------|\n")
	for _, severity := range models.Severities {
		sb.WriteString(fmt.Sprintf("| %s | %d |\n", severity, report.SeveritySummary[severity]))
	}
	sb.WriteString("\n")

	vulns, practices, gas := splitFindings(report)

	writeMarkdownSection(&sb, "Vulnerabilities", vulns)
	writeMarkdownSection(&sb, "Best Practices", practices)
	writeMarkdownSection(&sb, "Gas Optimization", gas)

	if len(report.Warnings) > 0 {
		sb.WriteString("## Analyzer Warnings\n\n")
		for _, w := range report.Warnings {
			sb.WriteString(fmt.Sprintf("- %s\n", w))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

func writeMarkdownSection(sb *strings.Builder, title string, findings []*models.Finding) {
	if len(findings) == 0 {
		return
	}
	sb.WriteString(fmt.Sprintf("## %s\n\n", title))
	for i, f := range findings {
		sb.WriteString(fmt.Sprintf("### %d. %s\n\n", i+1, f.Title))
		sb.WriteString(fmt.Sprintf("- **Severity:** %s\n", f.Severity))
		sb.WriteString(fmt.Sprintf("- **Category:** %s\n", f.Category))
		sb.WriteString(fmt.Sprintf("- **Rule:** %s\n", f.RuleID))
		if f.LineNumber > 0 {
			sb.WriteString(fmt.Sprintf("- **Line:** %d\n", f.LineNumber))
		}
		sb.WriteString(fmt.Sprintf("- **Occurrences:** %d\n\n", f.OccurrenceCount))
		sb.WriteString(fmt.Sprintf("%s\n\n", f.Description))
		sb.WriteString(fmt.Sprintf("**Recommendation:** %s\n\n", f.Recommendation))
	}
}
