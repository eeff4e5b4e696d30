// Package heuristic contains multi-line source checks for conditions a
// single pattern cannot express. Checks receive the prepared
// (comment- and string-stripped) source split into lines and must be
// pure: same input, same result.
package heuristic

import "strings"

// lookahead is how many lines past a loop header are inspected for an
// external call. Loop bodies longer than this are out of reach for a
// line-based heuristic.
const lookahead = 12

// Check evaluates a condition over prepared source lines. It returns
// whether the condition holds, how many times it occurred and the
// 1-based line of the first occurrence.
type Check func(lines []string) (matched bool, count int, line int)

var registry = map[string]Check{
	"loop-external-call":     LoopExternalCall,
	"divide-before-multiply": DivideBeforeMultiply,
}

// Lookup returns the named check
func Lookup(name string) (Check, bool) {
	c, ok := registry[name]
	return c, ok
}

// LoopExternalCall reports loops whose body performs an external call
// or transfer. Iterating over unbounded collections while calling out
// lets a single reverting recipient brick the loop.
func LoopExternalCall(lines []string) (bool, int, int) {
	count := 0
	first := 0

	for i, raw := range lines {
		l := strings.ToLower(raw)
		if !isLoopHeader(l) {
			continue
		}
		end := i + lookahead
		if end > len(lines) {
			end = len(lines)
		}
		for _, body := range lines[i:end] {
			b := strings.ToLower(body)
			if strings.Contains(b, ".call(") || strings.Contains(b, ".call{") ||
				strings.Contains(b, ".transfer(") || strings.Contains(b, ".send(") {
				count++
				if first == 0 {
					first = i + 1
				}
				break
			}
		}
	}

	return count > 0, count, first
}

// DivideBeforeMultiply reports lines where a division happens before a
// multiplication. Integer division truncates, so dividing first loses
// precision that the multiplication then amplifies.
func DivideBeforeMultiply(lines []string) (bool, int, int) {
	count := 0
	first := 0

	for i, raw := range lines {
		l := strings.TrimSpace(raw)
		div := strings.Index(l, "/")
		mul := strings.Index(l, "*")
		if div < 0 || mul < 0 || div >= mul {
			continue
		}
		count++
		if first == 0 {
			first = i + 1
		}
	}

	return count > 0, count, first
}

func isLoopHeader(l string) bool {
	return strings.Contains(l, "for (") || strings.Contains(l, "for(") ||
		strings.Contains(l, "while (") || strings.Contains(l, "while(")
}
