// Package collect implements the scanning pass: it walks a function body,
// recognizes marker invocations, extracts their variant shapes and builds
// the ordered, deduplicated catalog the synthesizer and rewriter consume.
//
// Recognition is purely syntactic. A marker invocation is a call of the
// form
//
//	errgo.New(Name)
//	errgo.New(Name{Field: errgo.Val[Type](value), ...}, "attr", ...)
//
// where "errgo" is whatever local name the file imported the marker
// package under. The walk traverses the whole body, including closures,
// switch arms, loop bodies and argument lists, and never mutates the
// input AST.
package collect
