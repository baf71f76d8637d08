package lectern

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// tapSlop is the largest touch movement, in pixels, still treated as a tap.
const tapSlop = 10.0

// --- Built-in HitShape types ---

// HitRect is an axis-aligned rectangular hit area in local coordinates.
type HitRect struct {
	X, Y, Width, Height float64
}

// Contains reports whether (x, y) lies inside the rectangle.
func (r HitRect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// HitCircle is a circular hit area in local coordinates.
type HitCircle struct {
	CenterX, CenterY, Radius float64
}

// Contains reports whether (x, y) lies inside or on the circle.
func (c HitCircle) Contains(x, y float64) bool {
	dx := x - c.CenterX
	dy := y - c.CenterY
	return dx*dx+dy*dy <= c.Radius*c.Radius
}

// --- Event contexts ---

// KeyContext carries a key press.
type KeyContext struct {
	Key       ebiten.Key
	Modifiers KeyModifiers
}

// PointerContext carries a pointer position in window pixels.
type PointerContext struct {
	X, Y      float64
	Modifiers KeyModifiers
}

// SwipeContext carries a completed touch gesture: where it started and its
// total displacement.
type SwipeContext struct {
	StartX, StartY float64
	DX, DY         float64
}

// --- Per-pointer state ---

type pointerState struct {
	down    bool
	lastX   float64
	lastY   float64
	hitNode *Node
}

type touchState struct {
	startX, startY float64
	lastX, lastY   float64
}

// --- Handler registry ---

// EventType identifies a scene-level callback list.
type EventType uint8

const (
	EventKey EventType = iota
	EventPointerMove
	EventClick
	EventSwipe
)

type handler[T any] struct {
	id uint32
	fn func(T)
}

type handlerRegistry struct {
	key         []handler[KeyContext]
	pointerMove []handler[PointerContext]
	click       []handler[ClickContext]
	swipe       []handler[SwipeContext]
	nextID      uint32
}

// CallbackHandle allows removing a registered scene-level callback.
type CallbackHandle struct {
	id    uint32
	reg   *handlerRegistry
	event EventType
}

// Remove unregisters this callback so it no longer fires.
func (h CallbackHandle) Remove() {
	if h.reg == nil {
		return
	}
	switch h.event {
	case EventKey:
		h.reg.key = removeHandler(h.reg.key, h.id)
	case EventPointerMove:
		h.reg.pointerMove = removeHandler(h.reg.pointerMove, h.id)
	case EventClick:
		h.reg.click = removeHandler(h.reg.click, h.id)
	case EventSwipe:
		h.reg.swipe = removeHandler(h.reg.swipe, h.id)
	}
}

func removeHandler[T any](s []handler[T], id uint32) []handler[T] {
	for i := range s {
		if s[i].id == id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = handler[T]{}
			return s[:len(s)-1]
		}
	}
	return s
}

func addHandler[T any](reg *handlerRegistry, list *[]handler[T], ev EventType, fn func(T)) CallbackHandle {
	reg.nextID++
	*list = append(*list, handler[T]{id: reg.nextID, fn: fn})
	return CallbackHandle{id: reg.nextID, reg: reg, event: ev}
}

func fire[T any](list []handler[T], ctx T) {
	for _, h := range list {
		h.fn(ctx)
	}
}

// --- Scene-level event registration ---

// OnKey registers a callback for key presses.
func (s *Scene) OnKey(fn func(KeyContext)) CallbackHandle {
	return addHandler(&s.handlers, &s.handlers.key, EventKey, fn)
}

// OnPointerMove registers a callback for mouse movement.
func (s *Scene) OnPointerMove(fn func(PointerContext)) CallbackHandle {
	return addHandler(&s.handlers, &s.handlers.pointerMove, EventPointerMove, fn)
}

// OnClick registers a scene-level callback for clicks and taps on
// interactable nodes.
func (s *Scene) OnClick(fn func(ClickContext)) CallbackHandle {
	return addHandler(&s.handlers, &s.handlers.click, EventClick, fn)
}

// OnSwipe registers a callback for completed touch gestures that were not
// taps. Classify them with DetectSwipe.
func (s *Scene) OnSwipe(fn func(SwipeContext)) CallbackHandle {
	return addHandler(&s.handlers, &s.handlers.swipe, EventSwipe, fn)
}

// --- Hit testing ---

// nodeContainsLocal tests whether (lx, ly) falls inside a node's hit region.
// Uses HitShape if set; otherwise the node's local bounds.
func nodeContainsLocal(n *Node, lx, ly float64) bool {
	if n.HitShape != nil {
		return n.HitShape.Contains(lx, ly)
	}
	b := localBounds(n)
	if b.Width == 0 && b.Height == 0 {
		return false
	}
	return b.Contains(lx, ly)
}

// collectInteractable walks the tree in paint order, appending interactable
// nodes that have a click handler or hit shape to buf. Skips invisible and
// non-interactable subtrees.
func collectInteractable(n *Node, buf []*Node) []*Node {
	if !n.Visible || !n.Interactable {
		return buf
	}
	if n.OnClick != nil || n.HitShape != nil {
		buf = append(buf, n)
	}
	for _, child := range n.paintOrder() {
		buf = collectInteractable(child, buf)
	}
	return buf
}

// hitTest finds the topmost interactable node at window point (x, y).
func (s *Scene) hitTest(x, y float64) *Node {
	s.hitBuf = collectInteractable(s.root, s.hitBuf[:0])
	for i := len(s.hitBuf) - 1; i >= 0; i-- {
		n := s.hitBuf[i]
		lx, ly := n.WorldToLocal(x, y)
		if nodeContainsLocal(n, lx, ly) {
			return n
		}
	}
	return nil
}

// --- Input processing ---

// readModifiers reads the current keyboard modifier state.
func readModifiers() KeyModifiers {
	var mods KeyModifiers
	if ebiten.IsKeyPressed(ebiten.KeyShift) {
		mods |= ModShift
	}
	if ebiten.IsKeyPressed(ebiten.KeyControl) {
		mods |= ModCtrl
	}
	if ebiten.IsKeyPressed(ebiten.KeyAlt) {
		mods |= ModAlt
	}
	if ebiten.IsKeyPressed(ebiten.KeyMeta) {
		mods |= ModMeta
	}
	return mods
}

// processInput handles keyboard, mouse and touch input for one tick. An
// injected event, when queued, replaces real input for the tick.
func (s *Scene) processInput() {
	mods := readModifiers()
	if s.processInjectedInput(mods) {
		return
	}

	s.keyBuf = inpututil.AppendJustPressedKeys(s.keyBuf[:0])
	for _, k := range s.keyBuf {
		s.fireKey(k, mods)
	}

	mx, my := ebiten.CursorPosition()
	s.processPointer(float64(mx), float64(my), ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft), mods)

	s.processTouches()
}

// processPointer runs the mouse state machine: movement, press, and a click
// when the release lands on the node that was pressed.
func (s *Scene) processPointer(x, y float64, pressed bool, mods KeyModifiers) {
	ps := &s.mouse
	if x != ps.lastX || y != ps.lastY {
		ps.lastX, ps.lastY = x, y
		fire(s.handlers.pointerMove, PointerContext{X: x, Y: y, Modifiers: mods})
	}

	switch {
	case pressed && !ps.down:
		ps.down = true
		ps.hitNode = s.hitTest(x, y)
	case !pressed && ps.down:
		ps.down = false
		target := s.hitTest(x, y)
		if target != nil && target == ps.hitNode {
			s.fireClick(target, x, y, 0, mods)
		}
		ps.hitNode = nil
	}
}

// processTouches tracks every active touch and resolves it into a tap or a
// gesture when it ends.
func (s *Scene) processTouches() {
	s.touchBuf = inpututil.AppendJustPressedTouchIDs(s.touchBuf[:0])
	for _, id := range s.touchBuf {
		x, y := ebiten.TouchPosition(id)
		s.touches[id] = &touchState{
			startX: float64(x), startY: float64(y),
			lastX: float64(x), lastY: float64(y),
		}
	}

	s.touchBuf = ebiten.AppendTouchIDs(s.touchBuf[:0])
	for _, id := range s.touchBuf {
		if ts := s.touches[id]; ts != nil {
			x, y := ebiten.TouchPosition(id)
			ts.lastX, ts.lastY = float64(x), float64(y)
		}
	}

	s.touchBuf = inpututil.AppendJustReleasedTouchIDs(s.touchBuf[:0])
	for _, id := range s.touchBuf {
		ts := s.touches[id]
		if ts == nil {
			continue
		}
		delete(s.touches, id)
		s.endGesture(ts.startX, ts.startY, ts.lastX, ts.lastY, int(id)+1)
	}
}

// endGesture resolves a finished touch: small movements are taps on the node
// under the start point, anything larger is reported as a swipe.
func (s *Scene) endGesture(x0, y0, x1, y1 float64, pointerID int) {
	dx, dy := x1-x0, y1-y0
	if math.Abs(dx) <= tapSlop && math.Abs(dy) <= tapSlop {
		if target := s.hitTest(x0, y0); target != nil {
			s.fireClick(target, x0, y0, pointerID, 0)
		}
		return
	}
	fire(s.handlers.swipe, SwipeContext{StartX: x0, StartY: y0, DX: dx, DY: dy})
}

// --- Event dispatch ---

func (s *Scene) fireKey(k ebiten.Key, mods KeyModifiers) {
	fire(s.handlers.key, KeyContext{Key: k, Modifiers: mods})
}

func (s *Scene) fireClick(node *Node, x, y float64, pointerID int, mods KeyModifiers) {
	lx, ly := node.WorldToLocal(x, y)
	ctx := ClickContext{
		Node: node, UserData: node.UserData,
		GlobalX: x, GlobalY: y, LocalX: lx, LocalY: ly,
		PointerID: pointerID, Modifiers: mods,
	}
	// Scene-level handlers first.
	fire(s.handlers.click, ctx)
	if node.OnClick != nil {
		node.OnClick(ctx)
	}
}
