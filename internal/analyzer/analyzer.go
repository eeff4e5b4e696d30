// Package analyzer implements the single-pass static source risk
// analyzer: every catalog rule is evaluated against the source text,
// matches become findings, and findings reduce to a score, a risk
// level and a deploy verdict.
package analyzer

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Adwaitbytes/solguard/internal/heuristic"
	"github.com/Adwaitbytes/solguard/internal/rules"
	"github.com/Adwaitbytes/solguard/pkg/models"
	"go.uber.org/zap"
)

// ErrEmptySource is returned when the source text is empty or blank.
// The analyzer fails fast instead of producing an empty report.
var ErrEmptySource = errors.New("source text is empty")

// Analyzer evaluates the rule catalog against contract source.
// It holds no per-run state, so a single instance is safe for
// concurrent use.
type Analyzer struct {
	catalog *rules.Catalog
	logger  *zap.Logger
}

// New creates an analyzer over the given catalog
func New(catalog *rules.Catalog, logger *zap.Logger) *Analyzer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Analyzer{catalog: catalog, logger: logger}
}

// Analyze runs every enabled rule against the source and returns the
// complete report. Rules evaluate in catalog order; a rule whose
// evaluation fails is skipped and surfaced as a report warning, never
// as an error. The call is deterministic: identical source yields an
// identical report.
func (a *Analyzer) Analyze(source string) (*models.AnalysisReport, error) {
	if strings.TrimSpace(source) == "" {
		return nil, ErrEmptySource
	}

	src := prepare(source)
	report := models.NewAnalysisReport()

	for _, rule := range a.catalog.Rules() {
		if !rule.Enabled {
			continue
		}

		res, err := a.evalRule(rule, src)
		if err != nil {
			a.logger.Warn("rule evaluation failed",
				zap.String("rule", rule.ID),
				zap.Error(err))
			report.Warnings = append(report.Warnings,
				fmt.Sprintf("rule %s skipped: %v", rule.ID, err))
			continue
		}
		if !res.Matched {
			continue
		}

		report.AddFinding(&models.Finding{
			RuleID:          rule.ID,
			Title:           rule.Name,
			Severity:        rule.Severity,
			Category:        rule.Category,
			Description:     rule.Message,
			Recommendation:  rule.Recommendation,
			OccurrenceCount: res.Count,
			LineNumber:      res.Line,
		})
	}

	report.Finalize()
	return report, nil
}

// evalRule evaluates a single rule, converting panics into errors so
// one pathological rule cannot abort the whole analysis.
func (a *Analyzer) evalRule(rule *models.Rule, src *preparedSource) (res MatchResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("rule evaluation panicked: %v", r)
		}
	}()

	if rule.Check != "" {
		chk, ok := heuristic.Lookup(rule.Check)
		if !ok {
			return MatchResult{}, fmt.Errorf("unknown heuristic check %q", rule.Check)
		}
		matched, count, line := chk(src.lines)
		return MatchResult{Matched: matched, Count: count, Line: line}, nil
	}

	return matchRule(rule, src), nil
}
