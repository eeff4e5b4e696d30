package analyzer

import (
	"strings"

	"github.com/Adwaitbytes/solguard/internal/tokenizer"
	"github.com/Adwaitbytes/solguard/pkg/models"
)

// MatchResult describes how a single rule matched the source
type MatchResult struct {
	Matched bool
	Count   int
	Line    int // 1-based line of the first occurrence, 0 if unknown
}

// preparedSource carries the raw input and its stripped form. Both
// have identical length and newline positions, so offsets computed on
// either map onto the original source.
type preparedSource struct {
	raw      string
	stripped string
	lines    []string
}

func prepare(source string) *preparedSource {
	stripped := tokenizer.Strip(source)
	return &preparedSource{
		raw:      source,
		stripped: stripped,
		lines:    strings.Split(stripped, "\n"),
	}
}

// matchRule evaluates a pattern rule against the prepared source.
// Guard patterns are part of the rule: a presence rule with a guard
// matches only when the pattern occurs and the guard does not.
func matchRule(rule *models.Rule, src *preparedSource) MatchResult {
	text := src.stripped
	if rule.RawSource {
		text = src.raw
	}

	var count, first int
	if rule.IsRegex {
		locs := rule.CompiledRe.FindAllStringIndex(text, -1)
		count = len(locs)
		if count > 0 {
			first = locs[0][0]
		}
	} else {
		count = strings.Count(text, rule.Pattern)
		if count > 0 {
			first = strings.Index(text, rule.Pattern)
		}
	}

	if count == 0 {
		return MatchResult{}
	}

	if rule.GuardPattern != "" && guardMatches(rule, text) {
		return MatchResult{}
	}

	return MatchResult{
		Matched: true,
		Count:   count,
		Line:    tokenizer.LineAt(text, first),
	}
}

func guardMatches(rule *models.Rule, text string) bool {
	if rule.GuardIsRegex {
		return rule.CompiledGuard.MatchString(text)
	}
	return strings.Contains(text, rule.GuardPattern)
}
