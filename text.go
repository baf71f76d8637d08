package lectern

import (
	"bytes"
	"strings"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

// lineSpacing is the line advance as a multiple of the font size.
const lineSpacing = 1.25

// TextBlock holds text content, formatting, and cached layout state.
// Size is in surface pixels; the presentation transform scales it.
type TextBlock struct {
	Content   string
	Size      float64
	Bold      bool
	Align     TextAlign
	WrapWidth float64 // 0 disables wrapping

	dirty     bool
	lines     []string
	widths    []float64
	measuredW float64
	measuredH float64
}

var (
	regularSource *text.GoTextFaceSource
	boldSource    *text.GoTextFaceSource
)

// faceSource lazily parses the embedded Go fonts.
func faceSource(bold bool) *text.GoTextFaceSource {
	if bold {
		if boldSource == nil {
			src, err := text.NewGoTextFaceSource(bytes.NewReader(gobold.TTF))
			if err != nil {
				panic("lectern: parse gobold: " + err.Error())
			}
			boldSource = src
		}
		return boldSource
	}
	if regularSource == nil {
		src, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
		if err != nil {
			panic("lectern: parse goregular: " + err.Error())
		}
		regularSource = src
	}
	return regularSource
}

func (tb *TextBlock) face() *text.GoTextFace {
	return &text.GoTextFace{Source: faceSource(tb.Bold), Size: tb.Size}
}

// measure lays the block out if needed and returns its size.
func (tb *TextBlock) measure() (w, h float64) {
	tb.layout()
	return tb.measuredW, tb.measuredH
}

// alignOffset returns the x offset of the block's left edge relative to the
// node origin for the given block width.
func (tb *TextBlock) alignOffset(w float64) float64 {
	switch tb.Align {
	case TextAlignCenter:
		return -w / 2
	case TextAlignRight:
		return -w
	}
	return 0
}

func (tb *TextBlock) layout() {
	if !tb.dirty {
		return
	}
	tb.dirty = false
	face := tb.face()

	tb.lines = tb.lines[:0]
	for _, para := range strings.Split(tb.Content, "\n") {
		tb.lines = append(tb.lines, wrapLine(para, face, tb.WrapWidth)...)
	}
	tb.widths = tb.widths[:0]
	tb.measuredW = 0
	for _, l := range tb.lines {
		w := text.Advance(l, face)
		tb.widths = append(tb.widths, w)
		tb.measuredW = max(tb.measuredW, w)
	}
	tb.measuredH = float64(len(tb.lines)) * tb.Size * lineSpacing
}

// wrapLine breaks s into lines no wider than width. A single word wider than
// width gets a line of its own.
func wrapLine(s string, face text.Face, width float64) []string {
	if width <= 0 || text.Advance(s, face) <= width {
		return []string{s}
	}
	var out []string
	var cur strings.Builder
	for _, word := range strings.Fields(s) {
		if cur.Len() == 0 {
			cur.WriteString(word)
			continue
		}
		candidate := cur.String() + " " + word
		if text.Advance(candidate, face) > width {
			out = append(out, cur.String())
			cur.Reset()
			cur.WriteString(word)
			continue
		}
		cur.WriteString(" ")
		cur.WriteString(word)
	}
	if cur.Len() > 0 {
		out = append(out, cur.String())
	}
	return out
}
