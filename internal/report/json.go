package report

import (
	"encoding/json"

	"github.com/Adwaitbytes/solguard/pkg/models"
)

// JSONReport wraps the analysis report with the contract name for
// file output
type JSONReport struct {
	Contract string `json:"contract,omitempty"`
	*models.AnalysisReport
}

// RenderJSON serializes the report. Map keys are sorted by the
// encoder, so identical reports serialize identically.
func RenderJSON(name string, report *models.AnalysisReport) ([]byte, error) {
	return json.MarshalIndent(&JSONReport{
		Contract:       name,
		AnalysisReport: report,
	}, "", "  ")
}
