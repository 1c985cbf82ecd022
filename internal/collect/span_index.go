package collect

import (
	"go/token"

	"github.com/sirkon/rbtree"

	"github.com/aatifsyed/errgo/internal/diag"
)

// siteSpan is a half-open [start,end) region occupied by one marker
// invocation. Valid call sites are pairwise disjoint; any overlap means a
// marker was written inside another marker's argument list.
type siteSpan struct {
	start token.Pos
	end   token.Pos
}

// Cmp defines ordering for the RB-tree as "disjoint by position".
//   - return -1 if this span ends at or before other's start
//   - return  1 if this span starts at or after other's end
//   - return  0 if spans overlap in any way (including containment).
//
// InsertReturn hands back the overlapping node on 0, which is exactly the
// enclosing-marker detection we need.
func (s *siteSpan) Cmp(other *siteSpan) int {
	if s.end <= other.start {
		return -1
	}
	if s.start >= other.end {
		return 1
	}
	return 0
}

// spanIndex keeps the spans of all call sites seen so far and rejects
// overlapping insertions.
type spanIndex struct {
	tree *rbtree.Tree[*siteSpan]
}

func newSpanIndex() *spanIndex {
	return &spanIndex{tree: rbtree.New[*siteSpan]()}
}

// insert registers a span. If it overlaps an already-registered span the
// existing span is returned with overlaps=true and nothing is inserted.
func (x *spanIndex) insert(span diag.Span) (existing diag.Span, overlaps bool) {
	s := &siteSpan{start: span.Pos, end: span.End}
	r := x.tree.InsertReturn(s)
	if r != s {
		return diag.Span{Pos: r.start, End: r.end}, true
	}
	return diag.Span{}, false
}
