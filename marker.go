package errgo

// New marks an inline error-construction site. The argument is either a
// bare identifier naming a unit variant, or a composite literal
//
//	Name{Field: errgo.Val[Type](value), ...}
//
// declaring a struct variant; further string arguments are opaque
// attributes forwarded onto the generated variant. New never executes:
// expansion replaces the whole call with a construction expression of the
// generated type, and annotated sources are not buildable before
// expansion.
func New(shape any, attrs ...string) error {
	panic("errgo: marker invocation survived expansion; run errgo generate")
}

// Val carries a field's declared type and its value expression inside a
// struct shape. The type argument is copied verbatim into the generated
// field; the value expression replaces the wrapper at the rewritten call
// site.
func Val[T any](value T) T {
	return value
}
