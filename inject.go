package lectern

import "github.com/hajimehoshi/ebiten/v2"

type syntheticKind uint8

const (
	synthKey syntheticKind = iota
	synthPointer
	synthGesture
)

// syntheticEvent is a single injected input event. Pointer coordinates are
// window pixels, the same space real mouse input arrives in.
type syntheticEvent struct {
	kind    syntheticKind
	key     ebiten.Key
	mods    KeyModifiers
	x, y    float64
	toX     float64
	toY     float64
	pressed bool
}

// InjectKey queues a key press with the given modifiers. The event is
// consumed on the next tick's processInput call.
func (s *Scene) InjectKey(key ebiten.Key, mods KeyModifiers) {
	s.injectQueue = append(s.injectQueue, syntheticEvent{kind: synthKey, key: key, mods: mods})
}

// InjectPress queues a left-button press at the given window coordinates.
func (s *Scene) InjectPress(x, y float64) {
	s.injectQueue = append(s.injectQueue, syntheticEvent{kind: synthPointer, x: x, y: y, pressed: true})
}

// InjectRelease queues a left-button release at the given window coordinates.
func (s *Scene) InjectRelease(x, y float64) {
	s.injectQueue = append(s.injectQueue, syntheticEvent{kind: synthPointer, x: x, y: y})
}

// InjectMove queues a pointer move with no button held.
func (s *Scene) InjectMove(x, y float64) {
	s.InjectRelease(x, y)
}

// InjectClick is a convenience that queues a press followed by a release
// at the same coordinates. Consumes two ticks.
func (s *Scene) InjectClick(x, y float64) {
	s.InjectPress(x, y)
	s.InjectRelease(x, y)
}

// InjectSwipe queues a complete touch gesture from (fromX, fromY) to
// (toX, toY). Consumes one tick.
func (s *Scene) InjectSwipe(fromX, fromY, toX, toY float64) {
	s.injectQueue = append(s.injectQueue, syntheticEvent{
		kind: synthGesture,
		x:    fromX, y: fromY,
		toX: toX, toY: toY,
	})
}

// processInjectedInput pops one event from the inject queue and feeds it
// through the same paths as real input. Returns true if an event was
// consumed.
func (s *Scene) processInjectedInput(mods KeyModifiers) bool {
	if len(s.injectQueue) == 0 {
		return false
	}
	evt := s.injectQueue[0]
	copy(s.injectQueue, s.injectQueue[1:])
	s.injectQueue = s.injectQueue[:len(s.injectQueue)-1]

	switch evt.kind {
	case synthKey:
		s.fireKey(evt.key, evt.mods|mods)
	case synthPointer:
		s.processPointer(evt.x, evt.y, evt.pressed, mods)
	case synthGesture:
		s.endGesture(evt.x, evt.y, evt.toX, evt.toY, 1)
	}
	return true
}
