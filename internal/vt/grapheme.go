package vt

import "github.com/rivo/uniseg"

// GraphemeSegmenter decides, codepoint by codepoint, whether an incoming
// rune extends the current cell's codepoint sequence (a combining mark) or
// starts a new cell (§4.4 "Writing text" step 2). It is grounded on
// uniseg.NewGraphemes, the same grapheme-cluster iterator
// ericwq-aprilsh's parser uses to walk a decoded rune stream
// (other_examples/ericwq-aprilsh__parser.go), applied here one pending
// cell at a time instead of over a whole buffered string.
type GraphemeSegmenter struct {
	pending []rune
}

// NewGraphemeSegmenter returns a segmenter starting a fresh cluster.
func NewGraphemeSegmenter() *GraphemeSegmenter {
	return &GraphemeSegmenter{}
}

// Step reports whether r extends the current grapheme cluster (true) or
// begins a new one (false), and updates internal state accordingly.
func (g *GraphemeSegmenter) Step(r rune) (extends bool) {
	if len(g.pending) == 0 {
		g.pending = append(g.pending, r)
		return false
	}
	candidate := string(g.pending) + string(r)
	gr := uniseg.NewGraphemes(candidate)
	gr.Next()
	_, to := gr.Positions()
	if to == len(candidate) {
		g.pending = append(g.pending, r)
		return true
	}
	g.pending = []rune{r}
	return false
}

// Reset forces the next Step call to begin a new grapheme cluster,
// regardless of what codepoint preceded it.
func (g *GraphemeSegmenter) Reset() {
	g.pending = g.pending[:0]
}
