package shape

import (
	"go/ast"

	"github.com/aatifsyed/errgo/internal/diag"
)

// NamedField is one `name: type = value` entry of a struct shape. The
// declared type and the value expression are kept both as parsed syntax
// and as the verbatim source text they were written with; the two are
// never reconciled or type-checked here.
type NamedField struct {
	Name     string
	Type     ast.Expr
	TypeSrc  string
	Value    ast.Expr
	ValueSrc string
}

// VariantShape is the structure of one variant of the generated sum type:
// a name, opaque passthrough attributes, and an optional field list.
//
// Struct=false means the unit shape (a bare tag). Struct=true with zero
// fields is the empty struct shape; it dedups as unit-like, but the
// syntax chosen at the first occurrence is preserved in the output.
type VariantShape struct {
	Name   string
	Attrs  []string
	Struct bool
	Fields []NamedField
}

// UnitLike reports whether the shape carries no fields.
func (s *VariantShape) UnitLike() bool {
	return !s.Struct || len(s.Fields) == 0
}

// Field returns the field with the given name, if any.
func (s *VariantShape) Field(name string) (NamedField, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return NamedField{}, false
}

// ConflictsWith reports whether two shapes with the same name disagree on
// structure: unit-like vs field-bearing, or a different field set. The
// comparison is order-insensitive over (field name, declared type text).
func (s *VariantShape) ConflictsWith(other *VariantShape) bool {
	if s.UnitLike() != other.UnitLike() {
		return true
	}
	if s.UnitLike() {
		return false
	}
	if len(s.Fields) != len(other.Fields) {
		return true
	}
	for _, f := range other.Fields {
		have, ok := s.Field(f.Name)
		if !ok || have.TypeSrc != f.TypeSrc {
			return true
		}
	}
	return false
}

// CallSite is one marker invocation found in the function body, in source
// order. Shape always points at the canonical (first-occurrence) shape
// object; Values holds the value expressions supplied at this particular
// site, reordered to the canonical field order.
type CallSite struct {
	Span   diag.Span
	Shape  *VariantShape
	Values []NamedField
	First  bool
}

// ErrorTypeSpec is everything the synthesizer needs to emit the sum type:
// the name taken from the function's return type, its exportedness, the
// opaque type-level attribute lines, and the deduplicated variants in
// first-seen order.
type ErrorTypeSpec struct {
	Name     string
	Exported bool
	Attrs    []string
	Variants []*VariantShape
}
