package shape

import (
	"github.com/aatifsyed/errgo/internal/diag"
)

// Catalog is an insertion-ordered mapping of variant name to canonical
// shape: a slice preserves first-seen order, a map gives O(1) conflict
// lookups. It is the single dedup point for a whole collection pass.
type Catalog struct {
	order []*VariantShape
	index map[string]*entry
}

type entry struct {
	shape *VariantShape
	first diag.Span
}

func NewCatalog() *Catalog {
	return &Catalog{index: make(map[string]*entry)}
}

// Add registers one marker occurrence. The first occurrence of a name
// fixes the canonical shape; every later occurrence must be a values-only
// reconstruction of that exact shape. Later attributes on repeats are
// accepted but ignored.
//
// On a structural mismatch Add returns an ERRGO003 diagnostic carrying
// both the conflicting span and the first occurrence as a note.
func (c *Catalog) Add(span diag.Span, s *VariantShape) (*CallSite, *diag.Diagnostic) {
	prior, seen := c.index[s.Name]
	if !seen {
		c.order = append(c.order, s)
		c.index[s.Name] = &entry{shape: s, first: span}
		return &CallSite{Span: span, Shape: s, Values: s.Fields, First: true}, nil
	}

	if prior.shape.ConflictsWith(s) {
		return nil, diag.Errorf(
			diag.ERRGO003ShapeConflict, span,
			"variant %s does not match the shape established at its first use", s.Name,
		).WithNote(prior.first, "variant %s first declared here", s.Name)
	}

	// Values-only reconstruction: field order is normalized to the
	// canonical shape, whatever order the repeat was written in.
	values := make([]NamedField, 0, len(prior.shape.Fields))
	for _, f := range prior.shape.Fields {
		v, ok := s.Field(f.Name)
		if !ok {
			// Unreachable after ConflictsWith, kept as a guard.
			return nil, diag.Errorf(
				diag.ERRGO003ShapeConflict, span,
				"variant %s is missing field %s", s.Name, f.Name,
			).WithNote(prior.first, "variant %s first declared here", s.Name)
		}
		values = append(values, v)
	}

	return &CallSite{Span: span, Shape: prior.shape, Values: values}, nil
}

// Len returns the number of distinct variants collected so far.
func (c *Catalog) Len() int { return len(c.order) }

// Variants returns the distinct shapes in first-seen order.
func (c *Catalog) Variants() []*VariantShape { return c.order }
