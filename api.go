package errgo

import (
	"github.com/aatifsyed/errgo/internal/diag"
	"github.com/aatifsyed/errgo/internal/rewrite"
	"github.com/aatifsyed/errgo/internal/shape"
)

// The data model and diagnostic types live in internal packages; these
// aliases are the public names front-ends program against.
type (
	// Diagnostic is a structured expansion failure: code, message, span
	// and secondary notes. It implements error.
	Diagnostic = diag.Diagnostic

	// Code is the ERRGO-series diagnostic code.
	Code = diag.Code

	// Span is a half-open source region.
	Span = diag.Span

	// Note is a secondary location attached to a Diagnostic.
	Note = diag.Note

	// Edit replaces one byte range of the original source.
	Edit = rewrite.Edit

	// ErrorTypeSpec describes the generated sum type.
	ErrorTypeSpec = shape.ErrorTypeSpec

	// VariantShape is one variant of the generated sum type.
	VariantShape = shape.VariantShape

	// NamedField is one typed, named field of a struct-shaped variant.
	NamedField = shape.NamedField
)

// Diagnostic codes, one per failure class.
const (
	UnsupportedSignatureError = diag.ERRGO001UnsupportedSignature
	MalformedShapeError       = diag.ERRGO002MalformedShape
	ShapeConflictError        = diag.ERRGO003ShapeConflict
)
