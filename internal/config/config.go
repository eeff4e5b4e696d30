package config

import (
	"runtime"

	"github.com/spf13/viper"
)

// Config represents the auditor configuration
type Config struct {
	// Audit settings
	Workers      int      `mapstructure:"workers"`       // parallel file audits
	MaxSize      string   `mapstructure:"max_size"`      // maximum file size to audit
	Exclude      []string `mapstructure:"exclude"`       // directories to exclude
	RulesPath    string   `mapstructure:"rules_path"`    // extra YAML rules directory
	UseGitignore bool     `mapstructure:"use_gitignore"` // honor .gitignore when walking

	// Report settings
	ReportFormat string `mapstructure:"report_format"` // text, json, md
	OutputFile   string `mapstructure:"output_file"`   // output file path

	// CI gate: exit non-zero when the verdict reaches this tier
	FailOn string `mapstructure:"fail_on"` // none, critical, high
}

// LoadConfig loads configuration from environment variables and defaults
func LoadConfig() (*Config, error) {
	v := viper.New()

	v.SetDefault("workers", runtime.NumCPU())
	v.SetDefault("max_size", "512K")
	v.SetDefault("exclude", []string{".git", "node_modules", "lib", "artifacts", "cache", "out"})
	v.SetDefault("rules_path", "configs/rules")
	v.SetDefault("use_gitignore", true)
	v.SetDefault("report_format", "")
	v.SetDefault("fail_on", "none")

	v.SetEnvPrefix("SOLGUARD")
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
