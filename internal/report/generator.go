// Package report renders analysis reports for the console and for
// text, JSON and Markdown files. Renderers are pure; only Generate
// touches the filesystem.
package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Adwaitbytes/solguard/internal/config"
	"github.com/Adwaitbytes/solguard/pkg/models"
	"go.uber.org/zap"
)

// ANSI color codes
const (
	colorReset  = "\033[0m"
	colorBold   = "\033[1m"
	colorDim    = "\033[2m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorBlue   = "\033[34m"
	colorWhite  = "\033[37m"
	colorOrange = "\033[38;5;208m"
	colorGray   = "\033[38;5;245m"
)

// Generator writes audit reports in the configured format
type Generator struct {
	config *config.Config
	logger *zap.Logger
}

// NewGenerator creates a new report generator
func NewGenerator(cfg *config.Config, logger *zap.Logger) *Generator {
	return &Generator{config: cfg, logger: logger}
}

// Generate renders the report. With no format configured it prints to
// the console and returns an empty path; otherwise it writes a file
// and returns its absolute path.
func (g *Generator) Generate(name string, report *models.AnalysisReport) (string, error) {
	format := g.config.ReportFormat
	outputFile := g.config.OutputFile

	if format == "" {
		g.PrintConsole(name, report)
		return "", nil
	}

	if outputFile == "" {
		timestamp := time.Now().Format("20060102-150405")
		switch format {
		case "json":
			outputFile = fmt.Sprintf("SOLGUARD-REPORT-%s.json", timestamp)
		case "txt", "text":
			outputFile = fmt.Sprintf("SOLGUARD-REPORT-%s.txt", timestamp)
		case "md", "markdown":
			outputFile = fmt.Sprintf("SOLGUARD-REPORT-%s.md", timestamp)
		default:
			return "", fmt.Errorf("unknown report format: %s", format)
		}
	}

	g.logger.Info("Generating report",
		zap.String("format", format),
		zap.String("output", outputFile))

	var data []byte
	var err error
	switch format {
	case "json":
		data, err = RenderJSON(name, report)
	case "txt", "text":
		data = []byte(RenderText(name, report))
	case "md", "markdown":
		data = []byte(RenderMarkdown(name, report))
	default:
		return "", fmt.Errorf("unknown report format: %s", format)
	}
	if err != nil {
		return "", fmt.Errorf("failed to render %s report: %w", format, err)
	}

	if err := os.WriteFile(outputFile, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write report: %w", err)
	}

	absPath, _ := filepath.Abs(outputFile)
	return absPath, nil
}

// PrintConsole prints the report to stdout with colors
func (g *Generator) PrintConsole(name string, report *models.AnalysisReport) {
	fmt.Println()
	fmt.Printf("%s%sAUDIT COMPLETE%s\n", colorBold, colorOrange, colorReset)
	fmt.Println()

	if name != "" {
		fmt.Printf("  %sContract:%s  %s\n", colorGray, colorReset, name)
	}
	fmt.Printf("  %sRisk:%s      %s%s%s (score %d)\n", colorGray, colorReset,
		getRiskColor(report.RiskLevel), strings.ToUpper(string(report.RiskLevel)), colorReset,
		report.OverallScore)
	fmt.Printf("  %sVerdict:%s   %s%s%s\n", colorGray, colorReset,
		getVerdictColor(report.Verdict), models.VerdictMessage(report.Verdict), colorReset)
	fmt.Println()

	if len(report.Findings) == 0 {
		fmt.Printf("  %s%s✓ No issues found%s\n", colorBold, colorGreen, colorReset)
		fmt.Println()
		return
	}

	fmt.Printf("%s───────────────────────────────────────────────────────────────%s\n", colorGray, colorReset)

	for i, finding := range report.Findings {
		severityColor := getSeverityColor(finding.Severity)
		severityLabel := strings.ToUpper(string(finding.Severity))

		fmt.Printf("\n  %s%s[%d]%s %s%s%s\n", colorBold, colorWhite, i+1, colorReset, colorBold, finding.Title, colorReset)
		fmt.Printf("      %sSeverity:%s  %s%s%s\n", colorGray, colorReset, severityColor, severityLabel, colorReset)
		fmt.Printf("      %sCategory:%s  %s\n", colorGray, colorReset, finding.Category)
		if finding.LineNumber > 0 {
			fmt.Printf("      %sLine:%s      %s%d%s\n", colorGray, colorReset, colorOrange, finding.LineNumber, colorReset)
		}
		if finding.OccurrenceCount > 1 {
			fmt.Printf("      %sHits:%s      %d\n", colorGray, colorReset, finding.OccurrenceCount)
		}
		fmt.Printf("      %sDetail:%s    %s%s%s\n", colorGray, colorReset, colorDim, finding.Description, colorReset)
		fmt.Printf("      %sFix:%s       %s\n", colorGray, colorReset, finding.Recommendation)
	}

	if len(report.Warnings) > 0 {
		fmt.Println()
		for _, w := range report.Warnings {
			fmt.Printf("  %s⚠ %s%s\n", colorYellow, w, colorReset)
		}
	}

	fmt.Println()
	fmt.Printf("%s───────────────────────────────────────────────────────────────%s\n", colorGray, colorReset)
	fmt.Println()
}

// getSeverityColor returns ANSI color for severity level
func getSeverityColor(severity models.Severity) string {
	switch severity {
	case models.SeverityCritical:
		return colorRed + colorBold
	case models.SeverityHigh:
		return colorOrange
	case models.SeverityMedium:
		return colorYellow
	case models.SeverityLow:
		return colorGreen
	case models.SeverityInfo:
		return colorBlue
	default:
		return colorWhite
	}
}

// getRiskColor returns ANSI color for a risk level
func getRiskColor(level models.RiskLevel) string {
	switch level {
	case models.RiskHigh:
		return colorRed + colorBold
	case models.RiskMedium:
		return colorYellow
	case models.RiskLow:
		return colorGreen
	default:
		return colorBlue
	}
}

// getVerdictColor returns ANSI color for the deploy verdict
func getVerdictColor(v models.DeployVerdict) string {
	switch v {
	case models.VerdictBlocked:
		return colorRed + colorBold
	case models.VerdictCaution:
		return colorOrange
	default:
		return colorGreen
	}
}
