package analyzer

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/Adwaitbytes/solguard/internal/rules"
	"github.com/Adwaitbytes/solguard/pkg/models"
)

func newTestAnalyzer(t *testing.T) *Analyzer {
	t.Helper()
	catalog, err := rules.NewCatalog()
	if err != nil {
		t.Fatalf("NewCatalog() error: %v", err)
	}
	return New(catalog, nil)
}

const reentrantSource = `pragma solidity 0.8.19;

contract Vault {
    mapping(address => uint) balances;

    function withdraw(uint amount) external {
        (bool ok, ) = msg.sender.call{value: amount}("");
        balances[msg.sender] -= amount;
    }
}
`

func findByRule(r *models.AnalysisReport, id string) *models.Finding {
	for _, f := range r.Findings {
		if f.RuleID == id {
			return f
		}
	}
	return nil
}

func TestAnalyze_Reentrancy(t *testing.T) {
	report, err := newTestAnalyzer(t).Analyze(reentrantSource)
	if err != nil {
		t.Fatalf("Analyze() error: %v", err)
	}

	if n := report.SeveritySummary[models.SeverityCritical]; n != 1 {
		t.Fatalf("critical findings = %d, want 1", n)
	}
	f := findByRule(report, "SOL-001")
	if f == nil {
		t.Fatal("reentrancy finding missing")
	}
	if f.Title != "Potential Reentrancy Vulnerability" {
		t.Errorf("Title = %q", f.Title)
	}
	if report.SafeToDeploy {
		t.Error("SafeToDeploy = true with a critical finding")
	}
	if report.Verdict != models.VerdictBlocked {
		t.Errorf("Verdict = %s, want %s", report.Verdict, models.VerdictBlocked)
	}
}

func TestAnalyze_ReentrancyGuardSuppresses(t *testing.T) {
	guarded := strings.Replace(reentrantSource,
		"function withdraw(uint amount) external {",
		"function withdraw(uint amount) external nonReentrant {", 1)

	report, err := newTestAnalyzer(t).Analyze(guarded)
	if err != nil {
		t.Fatal(err)
	}

	if findByRule(report, "SOL-001") != nil {
		t.Error("reentrancy reported despite nonReentrant guard")
	}
	// The informational call-site counter still fires.
	if findByRule(report, "SOL-102") == nil {
		t.Error("call-site counter missing")
	}
}

func TestAnalyze_SelfdestructAndReentrancy(t *testing.T) {
	src := reentrantSource + `
contract Killable {
    function destroy() external {
        selfdestruct(payable(msg.sender));
    }
}
`
	report, err := newTestAnalyzer(t).Analyze(src)
	if err != nil {
		t.Fatal(err)
	}

	if findByRule(report, "SOL-002") == nil {
		t.Fatal("selfdestruct finding missing")
	}
	if report.OverallScore < 20 {
		t.Errorf("OverallScore = %d, want >= 20", report.OverallScore)
	}
	if report.RiskLevel != models.RiskHigh {
		t.Errorf("RiskLevel = %s, want %s", report.RiskLevel, models.RiskHigh)
	}
}

func TestAnalyze_OpenZeppelinInfoOnly(t *testing.T) {
	src := `import "@openzeppelin/contracts/token/ERC20/ERC20.sol";

contract Token is ERC20 {
    constructor() ERC20("Token", "TKN") {}
}
`
	report, err := newTestAnalyzer(t).Analyze(src)
	if err != nil {
		t.Fatal(err)
	}

	if len(report.Findings) != 1 {
		t.Fatalf("findings = %d, want 1: %+v", len(report.Findings), report.Findings)
	}
	f := report.Findings[0]
	if f.RuleID != "SOL-100" || f.Severity != models.SeverityInfo {
		t.Errorf("unexpected finding %+v", f)
	}
	if report.OverallScore != 0 {
		t.Errorf("OverallScore = %d, want 0", report.OverallScore)
	}
	if report.RiskLevel != models.RiskMinimal {
		t.Errorf("RiskLevel = %s, want %s", report.RiskLevel, models.RiskMinimal)
	}
	if !report.SafeToDeploy {
		t.Error("SafeToDeploy = false for info-only report")
	}
}

func TestAnalyze_CleanSource(t *testing.T) {
	src := `contract Counter {
    uint256 value;

    function increment() external {
        value += 1;
    }
}
`
	report, err := newTestAnalyzer(t).Analyze(src)
	if err != nil {
		t.Fatal(err)
	}

	if len(report.Findings) != 0 {
		t.Errorf("findings = %d, want 0: %+v", len(report.Findings), report.Findings)
	}
	if report.OverallScore != 0 || report.RiskLevel != models.RiskMinimal {
		t.Errorf("score = %d, level = %s, want 0/%s",
			report.OverallScore, report.RiskLevel, models.RiskMinimal)
	}
}

func TestAnalyze_EmptySource(t *testing.T) {
	a := newTestAnalyzer(t)

	for _, src := range []string{"", "   \n\t\n"} {
		if _, err := a.Analyze(src); !errors.Is(err, ErrEmptySource) {
			t.Errorf("Analyze(%q) error = %v, want ErrEmptySource", src, err)
		}
	}
}

func TestAnalyze_Deterministic(t *testing.T) {
	a := newTestAnalyzer(t)

	first, err := a.Analyze(reentrantSource)
	if err != nil {
		t.Fatal(err)
	}
	second, err := a.Analyze(reentrantSource)
	if err != nil {
		t.Fatal(err)
	}

	fb, err := json.Marshal(first)
	if err != nil {
		t.Fatal(err)
	}
	sb, err := json.Marshal(second)
	if err != nil {
		t.Fatal(err)
	}
	if string(fb) != string(sb) {
		t.Errorf("reports differ between runs:\n%s\n%s", fb, sb)
	}
}

func TestAnalyze_CommentedCodeIgnored(t *testing.T) {
	src := `contract Safe {
    // selfdestruct(payable(owner));
    /* msg.sender.call{value: 1}(""); */
    uint x;
}
`
	report, err := newTestAnalyzer(t).Analyze(src)
	if err != nil {
		t.Fatal(err)
	}

	if n := report.SeveritySummary[models.SeverityCritical]; n != 0 {
		t.Errorf("critical findings = %d from commented-out code", n)
	}
}

func TestAnalyze_OccurrenceCountAndLine(t *testing.T) {
	src := `contract C {
    function f(uint a, uint b, uint c) external {
        require(a > 0);
        require(b > 0);
        require(c > 0);
        selfdestruct(payable(msg.sender));
    }
}
`
	report, err := newTestAnalyzer(t).Analyze(src)
	if err != nil {
		t.Fatal(err)
	}

	gas := findByRule(report, "GAS-003")
	if gas == nil {
		t.Fatal("require counter missing")
	}
	if gas.OccurrenceCount != 3 {
		t.Errorf("OccurrenceCount = %d, want 3", gas.OccurrenceCount)
	}

	sd := findByRule(report, "SOL-002")
	if sd == nil {
		t.Fatal("selfdestruct finding missing")
	}
	if sd.LineNumber != 6 {
		t.Errorf("LineNumber = %d, want 6", sd.LineNumber)
	}
}

func TestAnalyze_BrokenRuleBecomesWarning(t *testing.T) {
	catalog, err := rules.NewCatalog()
	if err != nil {
		t.Fatal(err)
	}
	if err := catalog.Add(&models.Rule{
		ID:       "BROKEN-CHECK",
		Name:     "Broken",
		Severity: models.SeverityLow,
		Category: models.CategoryCodeQuality,
		Kind:     models.KindPresence,
		Check:    "no-such-check",
		Enabled:  true,
	}); err != nil {
		t.Fatal(err)
	}

	report, err := New(catalog, nil).Analyze(reentrantSource)
	if err != nil {
		t.Fatalf("Analyze() failed because of one broken rule: %v", err)
	}

	if len(report.Warnings) != 1 {
		t.Fatalf("warnings = %d, want 1: %v", len(report.Warnings), report.Warnings)
	}
	if !strings.Contains(report.Warnings[0], "BROKEN-CHECK") {
		t.Errorf("warning does not name the rule: %q", report.Warnings[0])
	}
	if findByRule(report, "BROKEN-CHECK") != nil {
		t.Error("broken rule produced a finding")
	}
	// Healthy rules still ran.
	if findByRule(report, "SOL-001") == nil {
		t.Error("healthy rules skipped after broken rule")
	}
}

func TestAnalyze_FindingsInCatalogOrder(t *testing.T) {
	src := reentrantSource + "\ncontract D { function d() external { selfdestruct(payable(msg.sender)); } }\n"

	a := newTestAnalyzer(t)
	report, err := a.Analyze(src)
	if err != nil {
		t.Fatal(err)
	}

	order := map[string]int{}
	for i, r := range a.catalog.Rules() {
		order[r.ID] = i
	}
	for i := 1; i < len(report.Findings); i++ {
		if order[report.Findings[i-1].RuleID] > order[report.Findings[i].RuleID] {
			t.Fatalf("findings out of catalog order: %s before %s",
				report.Findings[i-1].RuleID, report.Findings[i].RuleID)
		}
	}
}
