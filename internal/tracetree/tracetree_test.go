package tracetree

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

func at(offset, dur time.Duration) (time.Time, time.Time) {
	return t0.Add(offset), t0.Add(offset + dur)
}

func span(id, parent string, offset, dur time.Duration) Span {
	start, end := at(offset, dur)
	return Span{ID: id, ParentID: parent, Name: id, Start: start, End: end}
}

func TestAssembleBuildsTree(t *testing.T) {
	roots := Assemble([]Span{
		span("run", "", 0, 10*time.Second),
		span("agent", "run", time.Second, 5*time.Second),
		span("tool", "agent", 2*time.Second, time.Second),
		span("probe", "run", 7*time.Second, time.Second),
	})

	require.Len(t, roots, 1)
	run := roots[0]
	require.Len(t, run.Children, 2)
	assert.Equal(t, "agent", run.Children[0].Span.ID)
	assert.Equal(t, "probe", run.Children[1].Span.ID)
	require.Len(t, run.Children[0].Children, 1)
	assert.Equal(t, "tool", run.Children[0].Children[0].Span.ID)
}

func TestOrphanPromotedToRoot(t *testing.T) {
	roots := Assemble([]Span{
		span("a", "", 0, time.Second),
		span("lost", "never-recorded", 2*time.Second, time.Second),
	})

	require.Len(t, roots, 2)
	assert.Equal(t, "a", roots[0].Span.ID)
	assert.Equal(t, "lost", roots[1].Span.ID)
}

func TestParentCycleDoesNotDropSpans(t *testing.T) {
	roots := Assemble([]Span{
		span("x", "y", 0, time.Second),
		span("y", "x", time.Second, time.Second),
	})

	// Both members of the cycle survive as roots.
	require.Len(t, roots, 2)
}

func TestSelfParentIsRoot(t *testing.T) {
	roots := Assemble([]Span{span("s", "s", 0, time.Second)})
	require.Len(t, roots, 1)
	assert.Empty(t, roots[0].Children)
}

func TestSubtreeDurationCoversChildren(t *testing.T) {
	roots := Assemble([]Span{
		span("run", "", 0, 2*time.Second),
		// child outlives the parent span
		span("agent", "run", time.Second, 5*time.Second),
	})

	require.Len(t, roots, 1)
	assert.Equal(t, 6*time.Second, roots[0].SubtreeDuration())
	assert.Equal(t, 2*time.Second, roots[0].Span.Duration())
}

func TestWalkDepthFirst(t *testing.T) {
	roots := Assemble([]Span{
		span("run", "", 0, 10*time.Second),
		span("agent", "run", time.Second, time.Second),
		span("tool", "agent", time.Second, time.Second),
	})

	var order []string
	var depths []int
	roots[0].Walk(func(n *Node, depth int) {
		order = append(order, n.Span.ID)
		depths = append(depths, depth)
	})

	assert.Equal(t, []string{"run", "agent", "tool"}, order)
	assert.Equal(t, []int{0, 1, 2}, depths)
}

func TestChildrenSortedByStart(t *testing.T) {
	roots := Assemble([]Span{
		span("run", "", 0, 10*time.Second),
		span("late", "run", 5*time.Second, time.Second),
		span("early", "run", time.Second, time.Second),
	})

	require.Len(t, roots, 1)
	require.Len(t, roots[0].Children, 2)
	assert.Equal(t, "early", roots[0].Children[0].Span.ID)
	assert.Equal(t, "late", roots[0].Children[1].Span.ID)
}

func TestNegativeDurationClamped(t *testing.T) {
	s := Span{ID: "bad", Start: t0, End: t0.Add(-time.Second)}
	assert.Equal(t, time.Duration(0), s.Duration())
}
