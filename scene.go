package lectern

import (
	"log/slog"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// Scene is the top-level object that owns the node tree, the scheduler, the
// running animations and the input state. The root node works in window
// pixels; the presentation surface hangs below it with its own scale.
type Scene struct {
	root  *Node
	clock *Scheduler
	log   *slog.Logger
	debug bool

	// ClearColor fills the window before the tree is drawn.
	ClearColor Color
	// ScreenshotDir is where Screenshot writes PNG files.
	ScreenshotDir string

	animations []Animation
	updateFunc func()
	viewW      float64
	viewH      float64

	// Input state
	handlers    handlerRegistry
	mouse       pointerState
	touches     map[ebiten.TouchID]*touchState
	hitBuf      []*Node
	keyBuf      []ebiten.Key
	touchBuf    []ebiten.TouchID
	injectQueue []syntheticEvent

	testRunner      *TestRunner
	screenshotQueue []string
}

// NewScene creates a new scene with a pre-created root container and its own
// scheduler.
func NewScene() *Scene {
	root := NewContainer("root")
	root.Interactable = true
	return &Scene{
		root:          root,
		clock:         NewScheduler(),
		log:           nopLogger,
		ClearColor:    RGB(0x0f, 0x17, 0x2a),
		ScreenshotDir: "screenshots",
		touches:       make(map[ebiten.TouchID]*touchState),
	}
}

// Root returns the scene's root container node.
func (s *Scene) Root() *Node {
	return s.root
}

// Clock returns the scheduler advanced by this scene.
func (s *Scene) Clock() *Scheduler {
	return s.clock
}

// SetLogger sets the logger used for debug output and screenshot errors.
func (s *Scene) SetLogger(log *slog.Logger) {
	if log == nil {
		log = nopLogger
	}
	s.log = log
}

// SetUpdateFunc registers fn to run every tick after timers fire and before
// animations advance. Frame callbacks it requests run on the next tick.
func (s *Scene) SetUpdateFunc(fn func()) {
	s.updateFunc = fn
}

// SetViewport records the window size in logical pixels. Run calls it from
// ebiten's Layout.
func (s *Scene) SetViewport(w, h float64) {
	s.viewW, s.viewH = w, h
}

// ViewportSize returns the window size last recorded with SetViewport.
func (s *Scene) ViewportSize() (w, h float64) {
	return s.viewW, s.viewH
}

// Animate adds a to the set of running animations. It is advanced once per
// tick until it reports completion.
func (s *Scene) Animate(a Animation) {
	if a == nil {
		return
	}
	s.animations = append(s.animations, a)
}

// NumAnimations returns the number of running animations.
func (s *Scene) NumAnimations() int {
	return len(s.animations)
}

// FlushLayout recomputes world transforms for every dirty node now instead
// of waiting for the end of the tick.
func (s *Scene) FlushLayout() {
	updateWorldTransform(s.root, identityTransform, 1.0, false)
}

// Update runs one ebiten tick: scripted steps, input, then Advance by one
// tick's worth of time.
func (s *Scene) Update() {
	// Hit testing needs current transforms.
	s.FlushLayout()
	if s.testRunner != nil {
		s.testRunner.step(s)
	}
	s.processInput()
	s.Advance(time.Second / time.Duration(ebiten.TPS()))
}

// Advance moves the scene forward by dt without touching input. Tests drive
// the scene through it directly.
func (s *Scene) Advance(dt time.Duration) {
	s.clock.Advance(dt)
	if s.updateFunc != nil {
		s.updateFunc()
	}
	s.tickAnimations(seconds(dt))
	updateNodes(s.root, dt.Seconds())
	s.FlushLayout()
}

// tickAnimations advances every running animation, dropping finished ones.
// Animations added during the pass start on the next tick.
func (s *Scene) tickAnimations(dt float32) {
	n := len(s.animations)
	keep := 0
	for i := 0; i < n; i++ {
		a := s.animations[i]
		if !a.Update(dt) {
			s.animations[keep] = a
			keep++
		}
	}
	// Preserve anything appended while updating.
	keep += copy(s.animations[keep:], s.animations[n:])
	for i := keep; i < len(s.animations); i++ {
		s.animations[i] = nil
	}
	s.animations = s.animations[:keep]
}

// updateNodes runs OnUpdate callbacks depth-first.
func updateNodes(n *Node, dt float64) {
	if n.OnUpdate != nil {
		n.OnUpdate(dt)
	}
	for _, c := range n.children {
		updateNodes(c, dt)
	}
}

// Draw clears the screen, renders the tree and captures queued screenshots.
func (s *Scene) Draw(screen *ebiten.Image) {
	screen.Fill(s.ClearColor.toRGBA())

	var stats debugStats
	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}

	s.drawNode(screen, s.root, identityTransform, &stats)

	if s.debug {
		stats.drawTime = time.Since(t0)
		stats.animations = len(s.animations)
		stats.timers = s.clock.Pending()
		s.debugLog(stats)
	}
	s.flushScreenshots(screen)
}

// SetDebugMode enables or disables debug mode. When enabled, disposed-node
// access panics and per-frame stats are logged at debug level.
func (s *Scene) SetDebugMode(enabled bool) {
	s.debug = enabled
	globalDebug = enabled
}

// globalDebug mirrors the most recently set Scene debug flag so that node
// operations (which lack a Scene pointer) can check it cheaply.
var globalDebug bool
