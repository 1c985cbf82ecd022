// Package errgo generates nominal error sum types from inline
// construction sites.
//
// If you want to throw errors inline without hand-writing an error type,
// yet still hand your callers a fully nominal, type-switchable error,
// annotate a function and declare error shapes right where they occur:
//
//	//errgo:errors
//	func shaveYaks(numYaks, emptyBuckets, numRazors int) (int, ShaveYaksError) {
//		if numRazors == 0 {
//			return 0, errgo.New(NotEnoughRazors)
//		}
//		if numYaks > emptyBuckets {
//			return 0, errgo.New(NotEnoughBuckets{
//				Got:      errgo.Val[int](emptyBuckets),
//				Required: errgo.Val[int](numYaks),
//			})
//		}
//		return numYaks, nil
//	}
//
// Running the expansion (see cmd/errgo, or the analyzer package for a
// go/analysis front-end) synthesizes the sum type immediately before the
// function,
//
//	type ShaveYaksError interface {
//		error
//		isShaveYaksError()
//	}
//
//	type ShaveYaksError_NotEnoughRazors struct{}
//
//	type ShaveYaksError_NotEnoughBuckets struct {
//		Got      int
//		Required int
//	}
//
// and replaces every marker invocation with a direct construction of the
// matching variant, for example
//
//	return 0, ShaveYaksError_NotEnoughBuckets{Got: emptyBuckets, Required: numYaks}
//
// The type's name comes from the function's declared error result; its
// visibility is whatever the capitalization of that name says. Variants
// appear in first-occurrence order, scanning the body depth-first, left
// to right, through closures, switch arms and nested calls.
//
// Reusing a variant within one function is allowed as long as every use
// agrees on the field set; repeats are values-only reconstructions of the
// shape fixed at the first occurrence. Uses that disagree fail the
// expansion with a diagnostic pointing at both sites.
//
// Attribute strings passed after the shape, and //errgo:attr doc lines on
// the function, are forwarded verbatim as comment lines onto the
// generated variant and type respectively. errgo never interprets them;
// they exist for downstream code generators.
//
// Expansion is a pure function of one annotated function: no state is
// kept between invocations, and files can be expanded in parallel.
package errgo
