// Package shape holds the data model of one expansion: the variant shapes
// extracted from marker invocations, the call sites they were extracted
// from, and the insertion-ordered catalog that deduplicates shapes by
// variant name while detecting field-shape conflicts.
//
// Everything here is transient. A catalog lives for exactly one expansion
// and is never shared or persisted.
package shape
