package lectern

import (
	"strings"
	"testing"
)

func TestTextBlockMeasureSingleLine(t *testing.T) {
	n := NewText("t", "Hello", 40, ColorWhite)
	w, h := n.Text.measure()
	if w <= 0 {
		t.Errorf("width = %v, want > 0", w)
	}
	assertNear(t, "height", h, 40*lineSpacing)
}

func TestTextBlockExplicitNewlines(t *testing.T) {
	n := NewText("t", "one\ntwo\nthree", 20, ColorWhite)
	n.Text.layout()
	if len(n.Text.lines) != 3 {
		t.Fatalf("lines = %q", n.Text.lines)
	}
	_, h := n.Text.measure()
	assertNear(t, "height", h, 3*20*lineSpacing)
}

func TestTextBlockWordWrap(t *testing.T) {
	content := "the quick brown fox jumps over the lazy dog"
	n := NewText("t", content, 30, ColorWhite)
	full, _ := n.Text.measure()

	n.Text.WrapWidth = full / 2
	n.Text.dirty = true
	n.Text.layout()
	if len(n.Text.lines) < 2 {
		t.Fatalf("expected wrapping, got %q", n.Text.lines)
	}
	if strings.Join(n.Text.lines, " ") != content {
		t.Errorf("wrapped text lost words: %q", n.Text.lines)
	}
	for i, w := range n.Text.widths {
		if w > full/2 {
			t.Errorf("line %d width %v exceeds wrap width %v", i, w, full/2)
		}
	}
}

func TestTextBlockLongWordKeepsOwnLine(t *testing.T) {
	n := NewText("t", "a supercalifragilistic b", 30, ColorWhite)
	n.Text.WrapWidth = 40
	n.Text.layout()
	found := false
	for _, l := range n.Text.lines {
		if l == "supercalifragilistic" {
			found = true
		}
	}
	if !found {
		t.Errorf("lines = %q", n.Text.lines)
	}
}

func TestTextBlockNoWrapWhenZeroWidth(t *testing.T) {
	n := NewText("t", "a fairly long sentence that would wrap", 30, ColorWhite)
	n.Text.layout()
	if len(n.Text.lines) != 1 {
		t.Errorf("lines = %q, want one", n.Text.lines)
	}
}

func TestTextBlockAlignOffset(t *testing.T) {
	tb := &TextBlock{}
	if tb.alignOffset(100) != 0 {
		t.Error("left")
	}
	tb.Align = TextAlignCenter
	if tb.alignOffset(100) != -50 {
		t.Error("center")
	}
	tb.Align = TextAlignRight
	if tb.alignOffset(100) != -100 {
		t.Error("right")
	}
}

func TestTextLocalBoundsFollowAlignment(t *testing.T) {
	n := NewText("t", "centered", 30, ColorWhite)
	n.Text.Align = TextAlignCenter
	r := localBounds(n)
	assertNear(t, "x", r.X, -r.Width/2)
}

func TestTextBlockLayoutCaching(t *testing.T) {
	n := NewText("t", "cached", 30, ColorWhite)
	n.Text.layout()
	if n.Text.dirty {
		t.Fatal("layout should clear dirty")
	}
	n.SetText("cached")
	if n.Text.dirty {
		t.Error("same content should not dirty the block")
	}
	n.SetText("changed")
	if !n.Text.dirty {
		t.Error("new content should dirty the block")
	}
}

func TestBoldUsesSeparateFace(t *testing.T) {
	if faceSource(true) == faceSource(false) {
		t.Error("bold and regular share a face source")
	}
	if faceSource(true) != faceSource(true) {
		t.Error("face source not cached")
	}
}
