package sparql

import "fmt"

// SyntaxError reports a malformed query. Offset is the byte offset into the
// query text where the offending token begins.
type SyntaxError struct {
	Offset int
	Reason string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("sparql syntax violation at offset %d: %s", e.Offset, e.Reason)
}
