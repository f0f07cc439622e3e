package ui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/arin/copygen/internal/variant"
)

func TestLiveView_WritesOnlyNewTail(t *testing.T) {
	var buf bytes.Buffer
	v := NewLiveView(&buf, "  ", nil)

	v.OnSnapshot("1. [A]")
	v.OnSnapshot("1. [A] hello")
	v.OnSnapshot("1. [A] hello\n2. [B] world")
	v.Finish()

	want := "  1. [A] hello\n  2. [B] world\n\n"
	if buf.String() != want {
		t.Errorf("expected %q, got %q", want, buf.String())
	}
}

func TestLiveView_MultiByteSnapshots(t *testing.T) {
	var buf bytes.Buffer
	v := NewLiveView(&buf, "", nil)

	v.OnSnapshot("守护")
	v.OnSnapshot("守护每一刻")
	v.Finish()

	if got := strings.TrimSpace(buf.String()); got != "守护每一刻" {
		t.Errorf("expected %q, got %q", "守护每一刻", got)
	}
}

func TestLiveView_NonExtendingSnapshotRestarts(t *testing.T) {
	var buf bytes.Buffer
	v := NewLiveView(&buf, "", nil)

	v.OnSnapshot("abc")
	v.OnSnapshot("xyz")

	if buf.String() != "abc\nxyz" {
		t.Errorf("unexpected output %q", buf.String())
	}
}

func TestLiveView_FinishWithoutSnapshots(t *testing.T) {
	var buf bytes.Buffer
	v := NewLiveView(&buf, "  ", nil)
	v.Finish()

	if buf.Len() != 0 {
		t.Errorf("expected no output, got %q", buf.String())
	}
}

func TestLiveView_KeepsResults(t *testing.T) {
	v := NewLiveView(&bytes.Buffer{}, "", nil)
	want := []variant.Variant{{Style: "A", Content: "a"}}
	v.OnResults(want)

	if got := v.Results(); len(got) != 1 || got[0] != want[0] {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestRenderVariants(t *testing.T) {
	var buf bytes.Buffer
	RenderVariants(&buf, []variant.Variant{
		{Style: "科技感", Content: "7天续航"},
		{Style: "情感化", Content: "守护每一刻"},
	})

	out := buf.String()
	for _, want := range []string{"[科技感]", "7天续航", "[情感化]", "守护每一刻"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q, got:\n%s", want, out)
		}
	}
	if strings.Index(out, "科技感") > strings.Index(out, "情感化") {
		t.Error("cards should keep variant order")
	}
}

func TestRenderVariants_Empty(t *testing.T) {
	var buf bytes.Buffer
	RenderVariants(&buf, nil)

	if !strings.Contains(buf.String(), "No taglines") {
		t.Errorf("expected empty notice, got %q", buf.String())
	}
}
