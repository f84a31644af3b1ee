package viewport

// UpdateGate holds the committed window and decides whether a freshly
// computed candidate is a significant enough change to replace it.
// Sub-threshold boundary drift is suppressed: replacing the window on every
// pixel of scroll would re-render constantly for windows that differ by a
// row or two already covered by the buffer.
type UpdateGate struct {
	Thresholds ThresholdConfig

	committed    RenderContext
	contentWidth float64
}

// Committed returns the window currently driving output. Starts as the
// empty window a grid holds at mount.
func (g *UpdateGate) Committed() RenderContext {
	return g.committed
}

// Evaluate compares the candidate against the committed window and commits
// it when warranted, reporting whether a commit happened.
//
// A structurally equal candidate is always a no-op. Otherwise the candidate
// commits when any of the four boundary deltas meets or exceeds its axis
// threshold, when the scrollable content width changed since the last
// commit (the column set mutated), or when force is set. Force bypasses the
// thresholds but not the equality short-circuit; snapshot replacements
// (page, columns, viewport) use it because thresholds only exist to damp
// scroll noise.
//
// contentWidth is recorded only on commit: a width change arriving with an
// equal candidate stays pending, so the next differing candidate commits
// regardless of thresholds.
func (g *UpdateGate) Evaluate(candidate RenderContext, contentWidth float64, force bool) bool {
	if candidate == g.committed {
		return false
	}

	commit := force || contentWidth != g.contentWidth ||
		absInt(candidate.FirstRowIndex-g.committed.FirstRowIndex) >= g.Thresholds.RowThreshold ||
		absInt(candidate.LastRowIndex-g.committed.LastRowIndex) >= g.Thresholds.RowThreshold ||
		absInt(candidate.FirstColumnIndex-g.committed.FirstColumnIndex) >= g.Thresholds.ColumnThreshold ||
		absInt(candidate.LastColumnIndex-g.committed.LastColumnIndex) >= g.Thresholds.ColumnThreshold

	if !commit {
		return false
	}
	g.committed = candidate
	g.contentWidth = contentWidth
	return true
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
