// Package core orchestrates audits over files and directory trees.
package core

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Adwaitbytes/solguard/internal/analyzer"
	"github.com/Adwaitbytes/solguard/internal/config"
	"github.com/Adwaitbytes/solguard/internal/filesystem"
	"github.com/Adwaitbytes/solguard/internal/rules"
	"github.com/Adwaitbytes/solguard/pkg/models"
)

// ProgressCallback is called after each file completes
type ProgressCallback func(current, total int, path string)

// FileResult pairs a source path with its analysis outcome
type FileResult struct {
	Path   string
	Report *models.AnalysisReport
	Err    error
}

// RunSummary aggregates the results of one audit run
type RunSummary struct {
	Results       []*FileResult
	TotalFiles    int
	FailedFiles   int
	TotalFindings int
	WorstRisk     models.RiskLevel
	WorstVerdict  models.DeployVerdict
}

// Runner walks a path and analyzes every contract found
type Runner struct {
	config           *config.Config
	logger           *zap.Logger
	analyzer         *analyzer.Analyzer
	walker           *filesystem.Walker
	progressCallback ProgressCallback
}

// NewRunner creates a runner over the given rule catalog
func NewRunner(cfg *config.Config, catalog *rules.Catalog, logger *zap.Logger) *Runner {
	return &Runner{
		config:   cfg,
		logger:   logger,
		analyzer: analyzer.New(catalog, logger),
		walker:   filesystem.NewWalker(cfg, logger),
	}
}

// SetProgressCallback sets the progress callback function
func (r *Runner) SetProgressCallback(cb ProgressCallback) {
	r.progressCallback = cb
}

// Run audits the file or directory at path. Files are analyzed
// concurrently; unreadable files are recorded as failed results rather
// than aborting the run. Results come back sorted by path so the same
// tree always produces the same summary.
func (r *Runner) Run(ctx context.Context, path string) (*RunSummary, error) {
	files, err := r.walker.Collect(path)
	if err != nil {
		return nil, fmt.Errorf("failed to collect sources: %w", err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no Solidity sources found under %s", path)
	}

	r.logger.Info("Starting audit",
		zap.String("path", path),
		zap.Int("files", len(files)))

	workers := r.config.Workers
	if workers <= 0 {
		workers = 1
	}

	var (
		mu      sync.Mutex
		results []*FileResult
		done    int
	)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for _, file := range files {
		file := file
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			res := &FileResult{Path: file}
			source, err := filesystem.ReadSource(file)
			if err != nil {
				res.Err = err
				r.logger.Warn("Skipping unreadable file", zap.String("path", file), zap.Error(err))
			} else if report, err := r.analyzer.Analyze(source); err != nil {
				res.Err = err
			} else {
				res.Report = report
			}

			mu.Lock()
			results = append(results, res)
			done++
			current := done
			mu.Unlock()

			if r.progressCallback != nil {
				r.progressCallback(current, len(files), file)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(results, func(i, j int) bool { return results[i].Path < results[j].Path })

	return summarize(results), nil
}

// summarize reduces per-file results to run-level aggregates
func summarize(results []*FileResult) *RunSummary {
	summary := &RunSummary{
		Results:      results,
		TotalFiles:   len(results),
		WorstRisk:    models.RiskMinimal,
		WorstVerdict: models.VerdictDeployable,
	}

	worstScore := 0
	for _, res := range results {
		if res.Err != nil {
			summary.FailedFiles++
			continue
		}
		summary.TotalFindings += len(res.Report.Findings)
		if res.Report.OverallScore >= worstScore {
			worstScore = res.Report.OverallScore
			summary.WorstRisk = res.Report.RiskLevel
		}
		if verdictRank(res.Report.Verdict) > verdictRank(summary.WorstVerdict) {
			summary.WorstVerdict = res.Report.Verdict
		}
	}

	return summary
}

func verdictRank(v models.DeployVerdict) int {
	switch v {
	case models.VerdictBlocked:
		return 2
	case models.VerdictCaution:
		return 1
	default:
		return 0
	}
}

// ShouldFail reports whether the run summary trips the CI gate
func ShouldFail(summary *RunSummary, failOn string) bool {
	switch failOn {
	case "critical":
		return summary.WorstVerdict == models.VerdictBlocked
	case "high":
		return summary.WorstVerdict == models.VerdictBlocked ||
			summary.WorstVerdict == models.VerdictCaution
	default:
		return false
	}
}
