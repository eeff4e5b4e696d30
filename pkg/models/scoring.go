package models

// Severity weights. Informational findings carry no weight so they can
// never move the risk level.
const (
	WeightCritical = 10
	WeightHigh     = 7
	WeightMedium   = 4
	WeightLow      = 2
	WeightInfo     = 0
)

// WeightOf returns the numeric score weight for a severity level
func WeightOf(s Severity) int {
	switch s {
	case SeverityCritical:
		return WeightCritical
	case SeverityHigh:
		return WeightHigh
	case SeverityMedium:
		return WeightMedium
	case SeverityLow:
		return WeightLow
	default:
		return WeightInfo
	}
}

// RiskLevel is the categorical bucket derived from the overall score
type RiskLevel string

const (
	RiskMinimal RiskLevel = "minimal"
	RiskLow     RiskLevel = "low"
	RiskMedium  RiskLevel = "medium"
	RiskHigh    RiskLevel = "high"
)

// Risk level thresholds. A score meets a level when it is >= the
// threshold; levels are checked from highest to lowest.
const (
	ThresholdHigh   = 20
	ThresholdMedium = 10
	ThresholdLow    = 1
)

// RiskLevelFor maps an accumulated score to its risk level
func RiskLevelFor(score int) RiskLevel {
	switch {
	case score >= ThresholdHigh:
		return RiskHigh
	case score >= ThresholdMedium:
		return RiskMedium
	case score >= ThresholdLow:
		return RiskLow
	default:
		return RiskMinimal
	}
}

// DeployVerdict is the three-tier deployment gate. Only critical
// findings block deployment; high findings downgrade to a caution.
type DeployVerdict string

const (
	VerdictBlocked    DeployVerdict = "blocked"
	VerdictCaution    DeployVerdict = "caution"
	VerdictDeployable DeployVerdict = "deployable"
)

// VerdictFor derives the deploy verdict from severity counts
func VerdictFor(criticalCount, highCount int) DeployVerdict {
	if criticalCount > 0 {
		return VerdictBlocked
	}
	if highCount > 0 {
		return VerdictCaution
	}
	return VerdictDeployable
}

// VerdictMessage returns the user-facing message for a verdict
func VerdictMessage(v DeployVerdict) string {
	switch v {
	case VerdictBlocked:
		return "Deployment blocked: fix critical vulnerabilities before deploying"
	case VerdictCaution:
		return "Deployable with caution: review high severity findings first"
	default:
		return "Safe to deploy: no blocking issues found"
	}
}
