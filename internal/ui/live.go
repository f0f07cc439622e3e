package ui

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/arin/copygen/internal/variant"
)

// LiveView renders growing snapshots to a terminal as they arrive. Since
// every snapshot extends the previous one, only the new tail is written.
// It satisfies generate.Observer.
type LiveView struct {
	w       io.Writer
	prefix  string
	spinner *Spinner

	mu      sync.Mutex
	shown   string
	started bool
	results []variant.Variant
}

// NewLiveView creates a view writing to w. The optional spinner is stopped
// when the first snapshot arrives.
func NewLiveView(w io.Writer, prefix string, sp *Spinner) *LiveView {
	return &LiveView{w: w, prefix: prefix, spinner: sp}
}

// OnSnapshot writes the part of text not yet shown.
func (v *LiveView) OnSnapshot(text string) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if !v.started {
		if v.spinner != nil {
			v.spinner.Stop()
		}
		fmt.Fprint(v.w, v.prefix)
		v.started = true
	}
	delta, ok := strings.CutPrefix(text, v.shown)
	if !ok {
		// Not an extension of what is on screen: start over on a new line.
		fmt.Fprint(v.w, "\n"+v.prefix)
		delta = text
	}
	fmt.Fprint(v.w, strings.ReplaceAll(delta, "\n", "\n"+v.prefix))
	v.shown = text
}

// OnResults keeps the parsed variants for Results.
func (v *LiveView) OnResults(variants []variant.Variant) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.results = variants
}

// Results returns the variants delivered by OnResults, if any.
func (v *LiveView) Results() []variant.Variant {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.results
}

// Finish stops the spinner and terminates the live text with a blank line.
func (v *LiveView) Finish() {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.spinner != nil {
		v.spinner.Stop()
	}
	if v.started {
		fmt.Fprint(v.w, "\n\n")
	}
}
