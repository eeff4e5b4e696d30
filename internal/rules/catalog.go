// Package rules holds the fixed, versioned detection rule catalog and
// the loader for user-supplied YAML rules.
package rules

import (
	"fmt"

	"github.com/Adwaitbytes/solguard/pkg/models"
)

// Catalog is the ordered, immutable-after-construction rule set.
// Rules are compiled once at startup and shared by reference across
// analyses; nothing mutates them at runtime.
type Catalog struct {
	rules []*models.Rule
	byID  map[string]*models.Rule
}

// NewCatalog creates a catalog with the built-in rules
func NewCatalog() (*Catalog, error) {
	c := &Catalog{byID: make(map[string]*models.Rule)}
	for _, r := range builtinRules() {
		if err := c.Add(r); err != nil {
			return nil, fmt.Errorf("builtin rule %s: %w", r.ID, err)
		}
	}
	return c, nil
}

// Add compiles and appends a rule. IDs must be unique.
func (c *Catalog) Add(r *models.Rule) error {
	if r.ID == "" {
		return fmt.Errorf("rule has empty id")
	}
	if _, exists := c.byID[r.ID]; exists {
		return fmt.Errorf("duplicate rule id %s", r.ID)
	}
	if err := r.Compile(); err != nil {
		return fmt.Errorf("compile pattern: %w", err)
	}
	c.rules = append(c.rules, r)
	c.byID[r.ID] = r
	return nil
}

// Rules returns the rules in evaluation order
func (c *Catalog) Rules() []*models.Rule {
	return c.rules
}

// Get returns a rule by ID, or nil
func (c *Catalog) Get(id string) *models.Rule {
	return c.byID[id]
}

// Len returns the number of rules
func (c *Catalog) Len() int {
	return len(c.rules)
}

// builtinRules returns the built-in rule definitions in evaluation
// order. Report ordering is derived from this order, so appending new
// rules at the end keeps existing reports stable.
func builtinRules() []*models.Rule {
	return []*models.Rule{
		{
			ID:           "SOL-001",
			Name:         "Potential Reentrancy Vulnerability",
			Category:     models.CategoryReentrancy,
			Severity:     models.SeverityCritical,
			Kind:         models.KindPresence,
			Pattern:      ".call{value:",
			GuardPattern: `ReentrancyGuard|nonReentrant`,
			GuardIsRegex: true,
			Message:      "External call transferring value without reentrancy protection. The callee can re-enter this contract before state updates complete.",
			Recommendation: "Apply OpenZeppelin's ReentrancyGuard (nonReentrant modifier) and follow the checks-effects-interactions pattern.",
			Enabled:      true,
		},
		{
			ID:             "SOL-002",
			Name:           "Unsafe Contract Destruction",
			Category:       models.CategoryAuthorization,
			Severity:       models.SeverityCritical,
			Kind:           models.KindPresence,
			Pattern:        "selfdestruct(",
			Message:        "selfdestruct permanently destroys the contract and force-sends its balance to an arbitrary address.",
			Recommendation: "Remove selfdestruct, or gate it behind multi-sig authorization and a timelock if destruction is genuinely required.",
			Enabled:        true,
		},
		{
			ID:             "SOL-003",
			Name:           "Deprecated suicide Call",
			Category:       models.CategoryAuthorization,
			Severity:       models.SeverityCritical,
			Kind:           models.KindPresence,
			Pattern:        "suicide(",
			Message:        "suicide is a deprecated alias of selfdestruct and destroys the contract.",
			Recommendation: "Remove the call entirely; see the selfdestruct guidance.",
			Enabled:        true,
		},
		{
			ID:             "SOL-004",
			Name:           "tx.origin Authentication",
			Category:       models.CategoryAuthorization,
			Severity:       models.SeverityHigh,
			Kind:           models.KindPresence,
			Pattern:        "tx.origin",
			Message:        "tx.origin refers to the transaction originator, not the caller, so any intermediate contract can impersonate the user.",
			Recommendation: "Authenticate with msg.sender instead of tx.origin.",
			Enabled:        true,
		},
		{
			ID:             "SOL-005",
			Name:           "Dangerous delegatecall",
			Category:       models.CategoryUncheckedCall,
			Severity:       models.SeverityHigh,
			Kind:           models.KindPresence,
			Pattern:        ".delegatecall(",
			Message:        "delegatecall executes foreign code in this contract's storage context; a controlled target can overwrite any state.",
			Recommendation: "Restrict delegatecall targets to immutable, audited implementations.",
			Enabled:        true,
		},
		{
			ID:             "SOL-006",
			Name:           "Unchecked Low-Level Call",
			Category:       models.CategoryUncheckedCall,
			Severity:       models.SeverityHigh,
			Kind:           models.KindPresence,
			Pattern:        `\.call\(`,
			IsRegex:        true,
			GuardPattern:   `require\s*\(\s*(success|ok|sent)`,
			GuardIsRegex:   true,
			Message:        "Low-level call whose return value is never checked; a failed call continues execution silently.",
			Recommendation: "Capture the success flag and require(success), or use a higher-level call.",
			Enabled:        true,
		},
		{
			ID:             "SOL-007",
			Name:           "Block Timestamp Dependence",
			Category:       models.CategoryCodeQuality,
			Severity:       models.SeverityMedium,
			Kind:           models.KindPresence,
			Pattern:        "block.timestamp",
			Message:        "block.timestamp can be skewed by validators within a small window and must not decide value-bearing logic.",
			Recommendation: "Tolerate a timestamp drift of several seconds, or use block numbers for ordering.",
			Enabled:        true,
		},
		{
			ID:             "SOL-008",
			Name:           "Weak Randomness Source",
			Category:       models.CategoryArithmetic,
			Severity:       models.SeverityMedium,
			Kind:           models.KindPresence,
			Pattern:        `blockhash\(|block\.difficulty|block\.prevrandao`,
			IsRegex:        true,
			Message:        "Block fields are observable and partially controllable by validators and do not provide secure randomness.",
			Recommendation: "Use a verifiable randomness source such as Chainlink VRF.",
			Enabled:        true,
		},
		{
			ID:             "SOL-009",
			Name:           "Pre-0.8 Arithmetic Without SafeMath",
			Category:       models.CategoryArithmetic,
			Severity:       models.SeverityMedium,
			Kind:           models.KindPresence,
			Pattern:        `pragma\s+solidity\s*[\^<>=~]*\s*0\.[4-7]\.`,
			IsRegex:        true,
			GuardPattern:   "SafeMath",
			Message:        "Compiler versions before 0.8 wrap on overflow; unchecked arithmetic can silently corrupt balances.",
			Recommendation: "Upgrade to Solidity >= 0.8, or apply SafeMath to all arithmetic.",
			Enabled:        true,
		},
		{
			ID:             "SOL-010",
			Name:           "External Calls Inside Loop",
			Category:       models.CategoryDenialOfService,
			Severity:       models.SeverityMedium,
			Kind:           models.KindPresence,
			Check:          "loop-external-call",
			Message:        "A loop performing external calls lets a single reverting or gas-griefing callee block the whole batch.",
			Recommendation: "Use a pull-payment pattern instead of pushing funds in a loop.",
			Enabled:        true,
		},
		{
			ID:             "SOL-011",
			Name:           "Division Before Multiplication",
			Category:       models.CategoryArithmetic,
			Severity:       models.SeverityLow,
			Kind:           models.KindPresence,
			Check:          "divide-before-multiply",
			Message:        "Integer division truncates; dividing before multiplying loses precision.",
			Recommendation: "Reorder the expression to multiply before dividing.",
			Enabled:        true,
		},
		{
			ID:             "SOL-012",
			Name:           "Floating Pragma",
			Category:       models.CategoryCodeQuality,
			Severity:       models.SeverityLow,
			Kind:           models.KindPresence,
			Pattern:        `pragma\s+solidity\s*\^`,
			IsRegex:        true,
			Message:        "A floating pragma allows compilation with untested compiler versions.",
			Recommendation: "Pin an exact compiler version for deployed contracts.",
			Enabled:        true,
		},
		{
			ID:             "SOL-013",
			Name:           "Deprecated throw Statement",
			Category:       models.CategoryCodeQuality,
			Severity:       models.SeverityLow,
			Kind:           models.KindPresence,
			Pattern:        `\bthrow\s*;`,
			IsRegex:        true,
			Message:        "throw is removed in modern Solidity and consumes all remaining gas on failure.",
			Recommendation: "Use require, revert or assert.",
			Enabled:        true,
		},
		{
			ID:             "SOL-100",
			Name:           "Uses OpenZeppelin Contracts",
			Category:       models.CategoryInformational,
			Severity:       models.SeverityInfo,
			Kind:           models.KindPresence,
			Pattern:        "@openzeppelin/contracts",
			RawSource:      true,
			Message:        "The contract imports the audited OpenZeppelin library.",
			Recommendation: "Keep the dependency pinned to a released version.",
			Enabled:        true,
		},
		{
			ID:             "SOL-101",
			Name:           "Uses SafeMath Library",
			Category:       models.CategoryInformational,
			Severity:       models.SeverityInfo,
			Kind:           models.KindPresence,
			Pattern:        "SafeMath",
			Message:        "The contract applies the SafeMath library for checked arithmetic.",
			Recommendation: "SafeMath is redundant on Solidity >= 0.8 and can be dropped there.",
			Enabled:        true,
		},
		{
			ID:             "SOL-102",
			Name:           "External Call Sites",
			Category:       models.CategoryInformational,
			Severity:       models.SeverityInfo,
			Kind:           models.KindCount,
			Pattern:        `\.call\(|\.call\{|\.delegatecall\(|\.staticcall\(`,
			IsRegex:        true,
			Message:        "Count of low-level external call sites in the contract.",
			Recommendation: "Review each external call site for failure handling and reentrancy exposure.",
			Enabled:        true,
		},
		{
			ID:             "GAS-001",
			Name:           "Post-Increment In Loop",
			Category:       models.CategoryGasOptimization,
			Severity:       models.SeverityInfo,
			Kind:           models.KindCount,
			Pattern:        `for\s*\([^;)]*;[^;)]*;\s*\w+\+\+\s*\)`,
			IsRegex:        true,
			Message:        "Loop counters using post-increment spend extra gas per iteration.",
			Recommendation: "Use ++i, or an unchecked increment block on Solidity >= 0.8.",
			Enabled:        true,
		},
		{
			ID:             "GAS-002",
			Name:           "Array Length In Loop Condition",
			Category:       models.CategoryGasOptimization,
			Severity:       models.SeverityInfo,
			Kind:           models.KindCount,
			Pattern:        `for\s*\([^)]*\.length`,
			IsRegex:        true,
			Message:        "Reading .length on every iteration re-loads the array length from storage.",
			Recommendation: "Cache the length in a local variable before the loop.",
			Enabled:        true,
		},
		{
			ID:             "GAS-003",
			Name:           "require With Revert Strings",
			Category:       models.CategoryGasOptimization,
			Severity:       models.SeverityInfo,
			Kind:           models.KindCount,
			Pattern:        `require\s*\(`,
			IsRegex:        true,
			Message:        "Count of require statements; revert strings cost deployment and runtime gas.",
			Recommendation: "Prefer custom errors (Solidity >= 0.8.4) over revert strings.",
			Enabled:        true,
		},
	}
}
