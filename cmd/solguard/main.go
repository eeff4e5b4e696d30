package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/Adwaitbytes/solguard/internal/config"
	"github.com/Adwaitbytes/solguard/internal/core"
	"github.com/Adwaitbytes/solguard/internal/report"
	"github.com/Adwaitbytes/solguard/internal/rules"
)

// ANSI colors
const (
	colorReset  = "\033[0m"
	colorBold   = "\033[1m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorBlue   = "\033[34m"
	colorOrange = "\033[38;5;208m"
	colorYellow = "\033[38;5;220m"
	colorGray   = "\033[38;5;245m"
)

var (
	version = "0.1.0"
	logger  *zap.Logger
	verbose bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "solguard",
		Short: "SolGuard - Static Risk Analyzer for Solidity Contracts",
		Long: `Static source analyzer for Ethereum smart contracts. Detects reentrancy,
unsafe destruction, authorization flaws and other risk patterns, scores the
result and renders a deploy verdict.`,
		Version: version,
		Run: func(cmd *cobra.Command, args []string) {
			printBanner()
			cmd.Help()
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")

	rootCmd.SetHelpCommand(&cobra.Command{Hidden: true})

	rootCmd.AddCommand(auditCmd())
	rootCmd.AddCommand(rulesCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// printBanner prints the startup banner
func printBanner() {
	fmt.Println()
	fmt.Printf("%s", colorOrange)
	fmt.Println("▄████▄ ▄████▄ ██     ▄████▄ ██  ██ ▄████▄ █████▄ ████▄")
	fmt.Println("▀████▄ ██  ██ ██     ██ ▄▄▄ ██  ██ ██__██ ██__█▀ ██  ██")
	fmt.Println("▄▄▄▄██ ▀████▀ ██████ ▀████▀ ▀████▀ ██  ██ ██ ▀█▄ ████▀")
	fmt.Printf("%s", colorReset)
	fmt.Println()
	fmt.Printf("%sSolidity Risk Analyzer v%s%s\n", colorGray, version, colorReset)
	fmt.Println()
}

// auditCmd creates the audit command
func auditCmd() *cobra.Command {
	var (
		workers      int
		maxSize      string
		exclude      []string
		rulesPath    string
		noGitignore  bool
		reportFormat string
		outputFile   string
		failOn       string
	)

	cmd := &cobra.Command{
		Use:   "audit <path>",
		Short: "Audit a Solidity file or directory",
		Long:  `Analyze a .sol file or recursively audit a directory, score each contract and report a deploy verdict.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]

			// Validate flags before doing anything
			if err := validateFlags(reportFormat, failOn); err != nil {
				fmt.Printf("\n  %s✗ Invalid parameter:%s %s\n\n", colorRed, colorReset, err.Error())
				return err
			}

			// Initialize logger based on verbose flag
			var err error
			if verbose {
				logger, err = zap.NewDevelopment()
			} else {
				// Silent logger - only errors
				cfg := zap.Config{
					Level:            zap.NewAtomicLevelAt(zapcore.ErrorLevel),
					Encoding:         "json",
					OutputPaths:      []string{"stderr"},
					ErrorOutputPaths: []string{"stderr"},
					EncoderConfig:    zap.NewProductionEncoderConfig(),
				}
				logger, err = cfg.Build()
			}
			if err != nil {
				fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
				return err
			}
			defer logger.Sync()

			printBanner()
			fmt.Printf("  %sAuditing:%s  %s\n", colorGray, colorReset, path)
			fmt.Println()

			// Load configuration
			cfg, err := config.LoadConfig()
			if err != nil {
				logger.Error("Failed to load config", zap.Error(err))
				return err
			}

			// Override config with CLI flags
			if workers > 0 {
				cfg.Workers = workers
			}
			if maxSize != "" {
				cfg.MaxSize = maxSize
			}
			if len(exclude) > 0 {
				cfg.Exclude = exclude
			}
			if rulesPath != "" {
				cfg.RulesPath = rulesPath
			}
			if noGitignore {
				cfg.UseGitignore = false
			}
			if reportFormat != "" {
				cfg.ReportFormat = reportFormat
			}
			if outputFile != "" {
				cfg.OutputFile = outputFile
			}
			if failOn != "" {
				cfg.FailOn = failOn
			}

			// Build the rule catalog, then layer custom YAML rules on top
			catalog, err := rules.NewCatalog()
			if err != nil {
				logger.Error("Failed to build rule catalog", zap.Error(err))
				return err
			}
			if cfg.RulesPath != "" {
				if err := rules.NewLoader(cfg.RulesPath).Load(catalog); err != nil {
					logger.Error("Failed to load custom rules", zap.Error(err))
					return err
				}
			}

			runner := core.NewRunner(cfg, catalog, logger)

			// Progress bar for multi-file runs
			var (
				bar     *progressbar.ProgressBar
				barOnce sync.Once
			)
			runner.SetProgressCallback(func(current, total int, file string) {
				if total <= 1 {
					return
				}
				barOnce.Do(func() {
					bar = progressbar.NewOptions(total,
						progressbar.OptionSetDescription("auditing"),
						progressbar.OptionSetWriter(os.Stderr),
						progressbar.OptionShowCount(),
						progressbar.OptionClearOnFinish(),
					)
				})
				bar.Add(1)
			})

			summary, err := runner.Run(context.Background(), path)
			if err != nil {
				logger.Error("Audit failed", zap.Error(err))
				return err
			}
			if bar != nil {
				bar.Finish()
			}

			// Render reports for contracts that analyzed cleanly
			generator := report.NewGenerator(cfg, logger)
			fileReports := make([]report.FileReport, 0, len(summary.Results))
			for _, res := range summary.Results {
				if res.Err != nil {
					fmt.Printf("  %s⚠ %s:%s %v\n", colorYellow, res.Path, colorReset, res.Err)
					continue
				}
				fileReports = append(fileReports, report.FileReport{Name: res.Path, Report: res.Report})
			}

			if len(fileReports) > 0 {
				reportPath, err := generator.GenerateRun(fileReports)
				if err != nil {
					logger.Error("Failed to generate report", zap.Error(err))
					return err
				}
				if reportPath != "" {
					fmt.Printf("  %sReport:%s    %s%s%s\n", colorGray, colorReset, colorOrange, reportPath, colorReset)
					fmt.Println()
				}
			}

			// Run summary for directory audits
			if summary.TotalFiles > 1 {
				printRunSummary(summary)
			}

			if core.ShouldFail(summary, cfg.FailOn) {
				fmt.Printf("  %s✗ Audit gate failed (--fail-on=%s)%s\n\n", colorRed, cfg.FailOn, colorReset)
				logger.Sync()
				os.Exit(2)
			}

			return nil
		},
	}

	cmd.Flags().IntVar(&workers, "workers", 0, "Number of worker goroutines (default: CPU cores)")
	cmd.Flags().StringVar(&maxSize, "max-size", "", "Maximum file size to analyze (default: 512K)")
	cmd.Flags().StringSliceVar(&exclude, "exclude", nil, "Directories to exclude (comma-separated)")
	cmd.Flags().StringVar(&rulesPath, "rules", "", "Directory with custom YAML rules")
	cmd.Flags().BoolVar(&noGitignore, "no-gitignore", false, "Ignore .gitignore when collecting sources")
	cmd.Flags().StringVarP(&reportFormat, "report", "r", "", "Report format: txt, json, md (default: console output)")
	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file path")
	cmd.Flags().StringVar(&failOn, "fail-on", "", "Exit non-zero on verdict: critical (blocked), high (blocked or caution)")

	return cmd
}

// printRunSummary prints run-level aggregates after a directory audit
func printRunSummary(summary *core.RunSummary) {
	fmt.Println()
	fmt.Printf("%s%sRUN SUMMARY%s\n", colorBold, colorOrange, colorReset)
	fmt.Println()
	fmt.Printf("  %sContracts:%s  %d\n", colorGray, colorReset, summary.TotalFiles)
	if summary.FailedFiles > 0 {
		fmt.Printf("  %sFailed:%s     %s%d%s\n", colorGray, colorReset, colorYellow, summary.FailedFiles, colorReset)
	}
	fmt.Printf("  %sFindings:%s   %d\n", colorGray, colorReset, summary.TotalFindings)
	fmt.Printf("  %sWorst risk:%s %s\n", colorGray, colorReset, strings.ToUpper(string(summary.WorstRisk)))
	fmt.Printf("  %sVerdict:%s    %s\n", colorGray, colorReset, string(summary.WorstVerdict))
	fmt.Println()
}

// rulesCmd creates the rules command
func rulesCmd() *cobra.Command {
	var rulesPath string

	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List the rule catalog",
		Long:  `Display every rule in the catalog, including custom YAML rules when --rules is given.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := rules.NewCatalog()
			if err != nil {
				return err
			}
			if rulesPath != "" {
				if err := rules.NewLoader(rulesPath).Load(catalog); err != nil {
					return err
				}
			}

			fmt.Println()
			fmt.Printf("%s%sRULE CATALOG%s %s(%d rules)%s\n", colorBold, colorOrange, colorReset, colorGray, catalog.Len(), colorReset)
			fmt.Println()
			for _, r := range catalog.Rules() {
				marker := "✓"
				if !r.Enabled {
					marker = "○"
				}
				fmt.Printf("  %s %s%-8s%s %s%-10s%s %-18s %s\n",
					marker,
					colorBold, r.ID, colorReset,
					severityColor(string(r.Severity)), strings.ToUpper(string(r.Severity)), colorReset,
					string(r.Category), r.Name)
			}
			fmt.Println()
			return nil
		},
	}

	cmd.Flags().StringVar(&rulesPath, "rules", "", "Directory with custom YAML rules")
	return cmd
}

// severityColor returns ANSI color for a severity name
func severityColor(severity string) string {
	switch severity {
	case "critical":
		return colorRed + colorBold
	case "high":
		return colorOrange
	case "medium":
		return colorYellow
	case "low":
		return colorGreen
	default:
		return colorBlue
	}
}

// validateFlags validates CLI flag values
func validateFlags(reportFormat, failOn string) error {
	if reportFormat != "" {
		validFormats := []string{"txt", "text", "json", "md", "markdown"}
		if !contains(validFormats, reportFormat) {
			return fmt.Errorf("--report must be one of: %s (got: %s)", strings.Join(validFormats, ", "), reportFormat)
		}
	}

	if failOn != "" {
		validGates := []string{"none", "critical", "high"}
		if !contains(validGates, failOn) {
			return fmt.Errorf("--fail-on must be one of: %s (got: %s)", strings.Join(validGates, ", "), failOn)
		}
	}

	return nil
}

// contains checks if a slice contains a string
func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
