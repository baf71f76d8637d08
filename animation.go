package lectern

import (
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Animation is anything the Scene advances once per tick. Update returns true
// once the animation has finished; finished animations are dropped.
type Animation interface {
	Update(dt float32) bool
}

// TweenGroup animates up to 4 float64 fields on a Node simultaneously.
// Create one via the convenience constructors (TweenPosition, TweenAlpha,
// TweenValue) and hand it to Scene.Animate, or call Update(dt) yourself.
// The group auto-applies values and marks the node dirty. If the target node
// is disposed, the group stops immediately.
type TweenGroup struct {
	tweens [4]*gween.Tween
	count  int
	fields [4]*float64
	target *Node
	Done   bool

	// OnComplete runs once, on the Update call that finishes the group.
	// It does not run for cancelled groups.
	OnComplete func()
}

// Update advances all tweens by dt seconds, writes values to the target fields,
// and marks the node dirty. Returns true when the group is done.
func (g *TweenGroup) Update(dt float32) bool {
	if g.Done {
		return true
	}

	if g.target != nil && g.target.IsDisposed() {
		g.Done = true
		return true
	}

	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		*g.fields[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	g.Done = allDone

	if g.target != nil {
		g.target.MarkDirty()
	}
	if g.Done && g.OnComplete != nil {
		fn := g.OnComplete
		g.OnComplete = nil
		fn()
	}
	return g.Done
}

// Cancel stops the group where it is. OnComplete does not run.
func (g *TweenGroup) Cancel() {
	if g == nil {
		return
	}
	g.Done = true
	g.OnComplete = nil
}

// seconds converts a duration to gween's float32 seconds.
func seconds(d time.Duration) float32 {
	return float32(d.Seconds())
}

// TweenPosition creates a TweenGroup that animates node.X and node.Y to the
// given target coordinates over the specified duration using the easing function.
func TweenPosition(node *Node, toX, toY float64, d time.Duration, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 2, target: node}
	g.tweens[0] = gween.New(float32(node.X), float32(toX), seconds(d), fn)
	g.tweens[1] = gween.New(float32(node.Y), float32(toY), seconds(d), fn)
	g.fields[0] = &node.X
	g.fields[1] = &node.Y
	return g
}

// TweenAlpha creates a TweenGroup that animates node.Alpha to the target value
// over the specified duration using the easing function.
func TweenAlpha(node *Node, to float64, d time.Duration, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 1, target: node}
	g.tweens[0] = gween.New(float32(node.Alpha), float32(to), seconds(d), fn)
	g.fields[0] = &node.Alpha
	return g
}

// TweenAlphaY animates node.Alpha and node.Y together; used for elements that
// fade while sliding out of view.
func TweenAlphaY(node *Node, toAlpha, toY float64, d time.Duration, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 2, target: node}
	g.tweens[0] = gween.New(float32(node.Alpha), float32(toAlpha), seconds(d), fn)
	g.tweens[1] = gween.New(float32(node.Y), float32(toY), seconds(d), fn)
	g.fields[0] = &node.Alpha
	g.fields[1] = &node.Y
	return g
}

// TweenValue animates an arbitrary field owned by node (for example a ring's
// progress). node may be nil when the field is not tied to a node.
func TweenValue(node *Node, field *float64, to float64, d time.Duration, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 1, target: node}
	g.tweens[0] = gween.New(float32(*field), float32(to), seconds(d), fn)
	g.fields[0] = field
	return g
}

// --- Ring ---

// Ring is the state of a circular progress indicator. Progress runs from 0
// (empty) to 1 (full circle), drawn clockwise from twelve o'clock.
type Ring struct {
	Radius   float64
	Width    float64
	Progress float64
	Track    Color // drawn under the progress arc when A > 0
}
