package turtle

import "fmt"

// SyntaxError signals malformed Turtle input, either from the tokenizer
// (a bad byte sequence) or from the parser (an unexpected token).
type SyntaxError struct {
	LineNo int    // 1-based input line at the point of failure
	Reason string // English message
}

// Error implements the standard error interface.
func (e *SyntaxError) Error() string {
	return fmt.Sprintf("turtle syntax violation on line %d: %s", e.LineNo, e.Reason)
}
