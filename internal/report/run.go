package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Adwaitbytes/solguard/pkg/models"
)

// FileReport pairs a contract name with its analysis report
type FileReport struct {
	Name   string
	Report *models.AnalysisReport
}

// GenerateRun renders reports for a multi-contract run. Console output
// prints each report in turn; file formats produce a single combined
// document.
func (g *Generator) GenerateRun(reports []FileReport) (string, error) {
	if len(reports) == 1 {
		return g.Generate(reports[0].Name, reports[0].Report)
	}

	format := g.config.ReportFormat
	if format == "" {
		for _, r := range reports {
			g.PrintConsole(r.Name, r.Report)
		}
		return "", nil
	}

	outputFile := g.config.OutputFile
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

	g.logger.Info("Generating combined report",
		zap.String("format", format),
		zap.Int("contracts", len(reports)),
		zap.String("output", outputFile))

	var data []byte
	switch format {
	case "json":
		combined := make([]*JSONReport, 0, len(reports))
		for _, r := range reports {
			combined = append(combined, &JSONReport{Contract: r.Name, AnalysisReport: r.Report})
		}
		var err error
		data, err = json.MarshalIndent(combined, "", "  ")
		if err != nil {
			return "", fmt.Errorf("failed to render json report: %w", err)
		}
	case "txt", "text":
		var sb strings.Builder
		for _, r := range reports {
			sb.WriteString(RenderText(r.Name, r.Report))
			sb.WriteString("\n")
		}
		data = []byte(sb.String())
	case "md", "markdown":
		parts := make([]string, 0, len(reports))
		for _, r := range reports {
			parts = append(parts, RenderMarkdown(r.Name, r.Report))
		}
		data = []byte(strings.Join(parts, "\n---\n\n"))
	default:
		return "", fmt.Errorf("unknown report format: %s", format)
	}

	if err := os.WriteFile(outputFile, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write report: %w", err)
	}

	absPath, _ := filepath.Abs(outputFile)
	return absPath, nil
}
