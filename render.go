package lectern

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// ringSegments is the number of line segments in a full ring.
const ringSegments = 96

// geoM converts an affine matrix to an ebiten.GeoM.
func geoM(m [6]float64) ebiten.GeoM {
	var g ebiten.GeoM
	g.SetElement(0, 0, m[0])
	g.SetElement(1, 0, m[1])
	g.SetElement(0, 1, m[2])
	g.SetElement(1, 1, m[3])
	g.SetElement(0, 2, m[4])
	g.SetElement(1, 2, m[5])
	return g
}

// worldScale returns the uniform scale factor of a transform.
func worldScale(m [6]float64) float64 {
	return math.Sqrt(math.Abs(m[0]*m[3] - m[1]*m[2]))
}

// tint sets a premultiplied color scale for c at the given alpha.
func tint(cs *ebiten.ColorScale, c Color, alpha float64) {
	a := c.A * alpha
	cs.Scale(float32(c.R*a), float32(c.G*a), float32(c.B*a), float32(a))
}

// drawNode renders n and its subtree in paint order. view is applied on top
// of each node's world transform; it is the identity except inside clipped
// subtrees. World transforms must be current.
func (s *Scene) drawNode(dst *ebiten.Image, n *Node, view [6]float64, stats *debugStats) {
	if !n.Visible || n.worldAlpha <= 0 {
		return
	}
	stats.nodes++
	m := multiplyAffine(view, n.worldTransform)

	switch n.Type {
	case NodeTypeRect:
		stats.drawCalls += drawRect(dst, n, m)
	case NodeTypeText:
		stats.drawCalls += drawText(dst, n, m)
	case NodeTypeRing:
		stats.drawCalls += drawRing(dst, n, m)
	case NodeTypeImage:
		stats.drawCalls += drawImage(dst, n, m)
	}

	if n.Clip {
		s.drawClipped(dst, n, m, stats)
		return
	}
	for _, c := range n.paintOrder() {
		s.drawNode(dst, c, view, stats)
	}
}

// drawClipped renders the children of n into an offscreen image of n's size
// and draws that with n's transform, so nothing outside n's box shows.
func (s *Scene) drawClipped(dst *ebiten.Image, n *Node, m [6]float64, stats *debugStats) {
	w, h := int(math.Ceil(n.Width)), int(math.Ceil(n.Height))
	if w <= 0 || h <= 0 {
		return
	}
	if n.clipImage == nil || n.clipImage.Bounds().Dx() != w || n.clipImage.Bounds().Dy() != h {
		if n.clipImage != nil {
			n.clipImage.Deallocate()
		}
		n.clipImage = ebiten.NewImage(w, h)
	} else {
		n.clipImage.Clear()
	}

	inv := invertAffine(n.worldTransform)
	for _, c := range n.paintOrder() {
		s.drawNode(n.clipImage, c, inv, stats)
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM(m)
	op.Filter = ebiten.FilterLinear
	dst.DrawImage(n.clipImage, op)
	stats.drawCalls++
}

func drawRect(dst *ebiten.Image, n *Node, m [6]float64) int {
	if n.Width <= 0 || n.Height <= 0 {
		return 0
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(n.Width, n.Height)
	op.GeoM.Concat(geoM(m))
	tint(&op.ColorScale, n.Color, n.worldAlpha)
	dst.DrawImage(WhitePixel, op)
	return 1
}

func drawImage(dst *ebiten.Image, n *Node, m [6]float64) int {
	if n.customImage == nil {
		return 0
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM(m)
	op.Filter = ebiten.FilterLinear
	tint(&op.ColorScale, n.Color, n.worldAlpha)
	dst.DrawImage(n.customImage, op)
	return 1
}

// drawText draws each laid-out line with its own alignment offset.
func drawText(dst *ebiten.Image, n *Node, m [6]float64) int {
	tb := n.Text
	if tb == nil || tb.Content == "" {
		return 0
	}
	tb.layout()
	face := tb.face()
	world := geoM(m)
	calls := 0
	for i, line := range tb.lines {
		if line == "" {
			continue
		}
		op := &text.DrawOptions{}
		op.GeoM.Translate(tb.alignOffset(tb.widths[i]), float64(i)*tb.Size*lineSpacing)
		op.GeoM.Concat(world)
		op.Filter = ebiten.FilterLinear
		tint(&op.ColorScale, n.Color, n.worldAlpha)
		text.Draw(dst, line, face, op)
		calls++
	}
	return calls
}

// drawRing draws the full track, then the progress arc clockwise from
// twelve o'clock.
func drawRing(dst *ebiten.Image, n *Node, m [6]float64) int {
	r := n.Ring
	if r == nil || r.Radius <= 0 {
		return 0
	}
	width := float32(r.Width * worldScale(m))
	calls := 0
	if r.Track.A > 0 {
		calls += strokeArc(dst, m, r.Radius, 1, width, r.Track.WithAlpha(n.worldAlpha))
	}
	if p := clamp01(r.Progress); p > 0 {
		calls += strokeArc(dst, m, r.Radius, p, width, n.Color.WithAlpha(n.worldAlpha))
	}
	return calls
}

func strokeArc(dst *ebiten.Image, m [6]float64, radius, fraction float64, width float32, c Color) int {
	segs := int(math.Ceil(fraction * ringSegments))
	sweep := fraction * 2 * math.Pi
	clr := c.toRGBA()
	px, py := transformPoint(m, 0, -radius)
	for i := 1; i <= segs; i++ {
		a := -math.Pi/2 + sweep*float64(i)/float64(segs)
		x, y := transformPoint(m, radius*math.Cos(a), radius*math.Sin(a))
		vector.StrokeLine(dst, float32(px), float32(py), float32(x), float32(y), width, clr, true)
		px, py = x, y
	}
	return segs
}
