package models

import "regexp"

// Severity represents the severity level of a finding
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityMedium   Severity = "medium"
	SeverityLow      Severity = "low"
	SeverityInfo     Severity = "info"
)

// Severities lists all severity levels from most to least severe.
// Renderers and summaries iterate this instead of ranging over maps
// so output order is stable.
var Severities = []Severity{
	SeverityCritical,
	SeverityHigh,
	SeverityMedium,
	SeverityLow,
	SeverityInfo,
}

// GetSeverityPriority returns numeric priority for severity (higher = more severe)
func GetSeverityPriority(s Severity) int {
	switch s {
	case SeverityCritical:
		return 5
	case SeverityHigh:
		return 4
	case SeverityMedium:
		return 3
	case SeverityLow:
		return 2
	case SeverityInfo:
		return 1
	default:
		return 0
	}
}

// Category represents the vulnerability class a rule belongs to
type Category string

const (
	CategoryReentrancy      Category = "reentrancy"
	CategoryUncheckedCall   Category = "unchecked-call"
	CategoryAuthorization   Category = "authorization"
	CategoryArithmetic      Category = "arithmetic"
	CategoryDenialOfService Category = "denial-of-service"
	CategoryCodeQuality     Category = "code-quality"
	CategoryInformational   Category = "informational"
	// CategoryGasOptimization findings are advisory only and never
	// contribute to the risk score.
	CategoryGasOptimization Category = "gas-optimization"
)

// RuleKind determines how matches are reported
type RuleKind string

const (
	// KindPresence rules report a single finding when the pattern occurs
	KindPresence RuleKind = "presence"
	// KindCount rules report how many times the pattern occurs
	KindCount RuleKind = "count"
)

// Rule represents a single detection rule
type Rule struct {
	ID             string   `yaml:"id" json:"id"`
	Name           string   `yaml:"name" json:"name"`
	Category       Category `yaml:"category" json:"category"`
	Severity       Severity `yaml:"severity" json:"severity"`
	Kind           RuleKind `yaml:"kind" json:"kind"`
	Pattern        string   `yaml:"pattern" json:"pattern"`
	IsRegex        bool     `yaml:"is_regex" json:"is_regex"`
	GuardPattern   string   `yaml:"guard_pattern" json:"guard_pattern,omitempty"`
	GuardIsRegex   bool     `yaml:"guard_is_regex" json:"guard_is_regex,omitempty"`
	Check          string   `yaml:"check" json:"check,omitempty"`
	RawSource      bool     `yaml:"raw_source" json:"raw_source,omitempty"`
	Message        string   `yaml:"message" json:"message"`
	Recommendation string   `yaml:"recommendation" json:"recommendation"`
	Enabled        bool     `yaml:"enabled" json:"enabled"`

	CompiledRe    *regexp.Regexp `yaml:"-" json:"-"`
	CompiledGuard *regexp.Regexp `yaml:"-" json:"-"`
}

// Compile compiles the rule's regex patterns. Plain string patterns
// are left as-is and matched with substring search.
func (r *Rule) Compile() error {
	if r.IsRegex && r.Pattern != "" {
		re, err := regexp.Compile(r.Pattern)
		if err != nil {
			return err
		}
		r.CompiledRe = re
	}
	if r.GuardIsRegex && r.GuardPattern != "" {
		re, err := regexp.Compile(r.GuardPattern)
		if err != nil {
			return err
		}
		r.CompiledGuard = re
	}
	return nil
}
