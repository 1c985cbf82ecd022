// Package diag defines the canonical rule codes (ERRGO-series) reported by errgo.
// Each code represents a distinct precondition or invariant of the expansion pipeline.
package diag

import "fmt"

// Code represents an errgo diagnostic code (ERRGO-series).
type Code int

const (
	codeInvalid Code = iota

	ERRGO001UnsupportedSignature
	ERRGO002MalformedShape
	ERRGO003ShapeConflict
)

// String returns the canonical code and short name of the rule.
// Example: "ERRGO003: ShapeConflict"
func (c Code) String() string {
	switch c {
	case ERRGO001UnsupportedSignature:
		return "ERRGO001: UnsupportedSignature"
	case ERRGO002MalformedShape:
		return "ERRGO002: MalformedShape"
	case ERRGO003ShapeConflict:
		return "ERRGO003: ShapeConflict"
	default:
		return fmt.Sprintf("<unknown diagnostic code %d>", int(c))
	}
}

// Description returns a one-line explanation of the rule.
func (c Code) Description() string {
	switch c {
	case ERRGO001UnsupportedSignature:
		return "Function must return (T, E) where E is a simple undefined type name."
	case ERRGO002MalformedShape:
		return "Marker argument must be an identifier or an identifier with a typed field block."
	case ERRGO003ShapeConflict:
		return "Marker invocations sharing a variant name must agree on the field set."
	default:
		return "<unknown diagnostic code>"
	}
}
