// Package textmatch locates entity text inside a page's positioned text
// runs and reduces each occurrence to a bounding rectangle.
package textmatch

import (
	"strings"
	"unicode"

	"pii-redaction-be/pkg/geometry"
)

// Run is a contiguous span of rendered text with a known position, as
// emitted by the page rasterizer in reading order.
type Run struct {
	Text   string  `json:"text"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Query is one entity occurrence to locate.
type Query struct {
	ID   string
	Text string
}

// Result holds the per-entity rectangles plus the ids that could not be
// located. A miss is reportable but never aborts the remaining queries.
type Result struct {
	Bounds    map[string]geometry.Rect
	Unmatched []string
}

// charRef maps one character of the flattened buffer back to its run.
type charRef struct {
	run int
}

// flatten concatenates all run strings, already lowercased, and records
// per byte the index of the run it came from. An entity's text may span
// several runs (line wraps, kerning boundaries), so matching must happen
// against the flattened buffer rather than run by run. Lowercasing is
// done rune by rune while the ref table is built: strings.ToLower can
// change byte lengths for some scripts, which would desynchronize match
// offsets from the ref table.
func flatten(runs []Run) (string, []charRef) {
	var sb strings.Builder
	refs := make([]charRef, 0, 64)
	for i, run := range runs {
		for _, r := range run.Text {
			n := sb.Len()
			sb.WriteRune(unicode.ToLower(r))
			for range sb.Len() - n {
				refs = append(refs, charRef{run: i})
			}
		}
	}
	return sb.String(), refs
}

// lowerRunes lowercases rune by rune, mirroring flatten, so a query and
// the flattened buffer always agree on byte layout.
func lowerRunes(s string) string {
	var sb strings.Builder
	for _, r := range s {
		sb.WriteRune(unicode.ToLower(r))
	}
	return sb.String()
}

func runRect(r Run) geometry.Rect {
	return geometry.Rect{X: r.X, Y: r.Y, Width: r.Width, Height: r.Height}
}

// ResolvePositions finds the first occurrence of each query's text in the
// page's flattened text, case-insensitively, and returns the union of the
// first and last matched character's source-run boxes. Queries with empty
// text are skipped entirely. Matching is deterministic: the first match
// in reading order always wins, and queries are processed in input order.
func ResolvePositions(runs []Run, queries []Query) Result {
	res := Result{Bounds: make(map[string]geometry.Rect, len(queries))}

	flat, refs := flatten(runs)

	for _, q := range queries {
		if q.Text == "" {
			continue
		}
		needle := lowerRunes(q.Text)
		idx := strings.Index(flat, needle)
		if idx < 0 {
			res.Unmatched = append(res.Unmatched, q.ID)
			continue
		}

		first := refs[idx]
		last := refs[idx+len(needle)-1]
		res.Bounds[q.ID] = runRect(runs[first.run]).Union(runRect(runs[last.run]))
	}

	return res
}
