package ui

import (
	"bytes"
	"strings"
	"testing"
)

func TestSpinner_SuccessAndFail(t *testing.T) {
	var buf bytes.Buffer
	sp := NewSpinnerTo(&buf, "working")

	sp.Start()
	sp.Success("Generated 3 taglines")
	if !strings.Contains(buf.String(), "✓ Generated 3 taglines") {
		t.Errorf("expected success line, got %q", buf.String())
	}

	buf.Reset()
	sp.Fail("Generation failed")
	if !strings.Contains(buf.String(), "✗ Generation failed") {
		t.Errorf("expected failure line, got %q", buf.String())
	}
}
