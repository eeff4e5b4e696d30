package analyzer

import (
	"testing"

	"github.com/Adwaitbytes/solguard/pkg/models"
)

func mustCompile(t *testing.T, r *models.Rule) *models.Rule {
	t.Helper()
	if err := r.Compile(); err != nil {
		t.Fatalf("Compile() error: %v", err)
	}
	return r
}

func TestMatchRule_PlainPattern(t *testing.T) {
	rule := mustCompile(t, &models.Rule{
		ID:      "T-1",
		Pattern: "tx.origin",
	})

	src := prepare("require(tx.origin == owner);\nif (tx.origin != admin) revert();\n")
	res := matchRule(rule, src)

	if !res.Matched {
		t.Fatal("expected match")
	}
	if res.Count != 2 {
		t.Errorf("Count = %d, want 2", res.Count)
	}
	if res.Line != 1 {
		t.Errorf("Line = %d, want 1", res.Line)
	}
}

func TestMatchRule_RegexPattern(t *testing.T) {
	rule := mustCompile(t, &models.Rule{
		ID:      "T-2",
		Pattern: `blockhash\(|block\.difficulty`,
		IsRegex: true,
	})

	src := prepare("uint r = uint(blockhash(block.number - 1));\nuint d = block.difficulty;\n")
	res := matchRule(rule, src)

	if !res.Matched || res.Count != 2 {
		t.Errorf("Matched = %v, Count = %d, want true/2", res.Matched, res.Count)
	}
}

func TestMatchRule_GuardSuppression(t *testing.T) {
	rule := mustCompile(t, &models.Rule{
		ID:           "T-3",
		Pattern:      ".call{value:",
		GuardPattern: `ReentrancyGuard|nonReentrant`,
		GuardIsRegex: true,
	})

	unguarded := prepare(`to.call{value: amount}("");`)
	if res := matchRule(rule, unguarded); !res.Matched {
		t.Error("unguarded source should match")
	}

	guarded := prepare(`function f() external nonReentrant { to.call{value: amount}(""); }`)
	if res := matchRule(rule, guarded); res.Matched {
		t.Error("guard present, rule should not match")
	}
}

func TestMatchRule_PlainGuard(t *testing.T) {
	rule := mustCompile(t, &models.Rule{
		ID:           "T-4",
		Pattern:      `pragma\s+solidity\s*\^?0\.6`,
		IsRegex:      true,
		GuardPattern: "SafeMath",
	})

	bare := prepare("pragma solidity ^0.6.12;\ncontract C {}\n")
	if res := matchRule(rule, bare); !res.Matched {
		t.Error("should match without SafeMath")
	}

	safe := prepare("pragma solidity ^0.6.12;\nusing SafeMath for uint256;\n")
	if res := matchRule(rule, safe); res.Matched {
		t.Error("SafeMath guard should suppress the match")
	}
}

func TestMatchRule_RawSourceScope(t *testing.T) {
	rule := mustCompile(t, &models.Rule{
		ID:        "T-5",
		Pattern:   "@openzeppelin/contracts",
		RawSource: true,
	})

	src := prepare(`import "@openzeppelin/contracts/utils/Address.sol";`)
	if res := matchRule(rule, src); !res.Matched {
		t.Error("raw-source rule must see import string literals")
	}

	// The same pattern without raw scope is blind to string literals.
	stripped := mustCompile(t, &models.Rule{
		ID:      "T-6",
		Pattern: "@openzeppelin/contracts",
	})
	if res := matchRule(stripped, src); res.Matched {
		t.Error("stripped-scope rule should not see string literals")
	}
}

func TestMatchRule_NoMatch(t *testing.T) {
	rule := mustCompile(t, &models.Rule{ID: "T-7", Pattern: "selfdestruct("})

	src := prepare("contract C { uint x; }")
	if res := matchRule(rule, src); res.Matched || res.Count != 0 || res.Line != 0 {
		t.Errorf("unexpected result %+v for non-matching rule", res)
	}
}
