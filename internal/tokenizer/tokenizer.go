// Package tokenizer prepares Solidity source for pattern matching by
// blanking out comments and string literals. Stripped bytes are
// replaced with spaces and newlines are kept, so byte offsets and line
// numbers in the prepared text map 1:1 onto the original source.
package tokenizer

type state int

const (
	stateCode state = iota
	stateLineComment
	stateBlockComment
	stateString
)

// Strip returns a copy of src with comments and string literals
// replaced by spaces. The result has the same length and the same
// newline positions as the input.
func Strip(src string) string {
	out := []byte(src)
	st := stateCode
	var quote byte

	for i := 0; i < len(src); i++ {
		c := src[i]

		switch st {
		case stateCode:
			switch {
			case c == '/' && i+1 < len(src) && src[i+1] == '/':
				st = stateLineComment
				out[i] = ' '
			case c == '/' && i+1 < len(src) && src[i+1] == '*':
				st = stateBlockComment
				out[i] = ' '
			case c == '"' || c == '\'':
				st = stateString
				quote = c
				out[i] = ' '
			}
		case stateLineComment:
			if c == '\n' {
				st = stateCode
			} else {
				out[i] = ' '
			}
		case stateBlockComment:
			if c == '*' && i+1 < len(src) && src[i+1] == '/' {
				out[i] = ' '
				out[i+1] = ' '
				i++
				st = stateCode
			} else if c != '\n' {
				out[i] = ' '
			}
		case stateString:
			switch {
			case c == '\\' && i+1 < len(src):
				out[i] = ' '
				if src[i+1] != '\n' {
					out[i+1] = ' '
				}
				i++
			case c == quote:
				out[i] = ' '
				st = stateCode
			case c != '\n':
				out[i] = ' '
			}
		}
	}

	return string(out)
}

// LineAt returns the 1-based line number of a byte offset
func LineAt(src string, offset int) int {
	if offset < 0 {
		return 0
	}
	if offset > len(src) {
		offset = len(src)
	}
	line := 1
	for i := 0; i < offset; i++ {
		if src[i] == '\n' {
			line++
		}
	}
	return line
}
