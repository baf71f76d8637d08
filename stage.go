package lectern

import (
	"github.com/tanema/gween/ease"
)

// Indicator dot sizes, surface pixels.
const (
	dotSize       = 14.0
	dotActiveSize = 36.0
)

// sceneStage is the Stage that moves slide panels on the surface. Phases are
// derived from its own panel tween: Revealed once the tween has run for the
// reveal time, Settled when the tween completes.
type sceneStage struct {
	scene   *Scene
	ui      *surfaceUI
	panels  []*Node
	dots    []*Node
	timings Timings
	theme   Theme

	positions []SlidePosition
	driver    *transitionDriver
}

func newSceneStage(scene *Scene, ui *surfaceUI, t Timings, theme Theme) *sceneStage {
	return &sceneStage{
		scene:     scene,
		ui:        ui,
		panels:    ui.panels,
		dots:      ui.dots,
		timings:   t,
		theme:     theme,
		positions: make([]SlidePosition, len(ui.panels)),
	}
}

// Present implements Stage.
func (st *sceneStage) Present(t Transition, signal func(Phase)) {
	if t.Refresh {
		st.apply(t.View.Cleared())
	}
	st.apply(t.View)

	if st.driver != nil {
		st.driver.cancel()
	}
	d := &transitionDriver{
		reveal: seconds(st.timings.Reveal),
		signal: signal,
	}
	for i, p := range st.panels {
		d.tweens = append(d.tweens, TweenPosition(p, st.positions[i].Offset()*SurfaceWidth, 0, st.timings.Settle, ease.InOutCubic))
	}
	st.driver = d
	st.scene.Animate(d)
}

// jump applies v and places every panel at its final position with no
// transition. Used for the initial state.
func (st *sceneStage) jump(v View) {
	st.apply(v)
	for i, p := range st.panels {
		p.SetPosition(st.positions[i].Offset()*SurfaceWidth, 0)
	}
}

// apply records slide positions and restyles the indicator dots.
func (st *sceneStage) apply(v View) {
	copy(st.positions, v.Positions)
	st.ui.active = v.Active()
	for i, p := range st.panels {
		p.Interactable = st.positions[i] == PositionActive
	}
	for i, dot := range st.dots {
		active := i < len(v.Indicators) && v.Indicators[i]
		st.styleDot(dot, active)
	}
}

func (st *sceneStage) styleDot(dot *Node, active bool) {
	w := dotSize
	c := st.theme.Muted
	if active {
		w = dotActiveSize
		c = st.theme.Accent
	}
	// Dots are laid out around their center.
	dot.Width = w
	dot.PivotX = w / 2
	dot.HitShape = HitRect{X: -6, Y: dotSize/2 - dotSpacing/2, Width: w + 12, Height: dotSpacing}
	dot.Color = c
	dot.UserData = active
	dot.MarkDirty()
}

// Positions returns the current position of every slide panel.
func (st *sceneStage) Positions() []SlidePosition {
	return st.positions
}

// transitionDriver runs the panel tweens of one transition and reports its
// phases.
type transitionDriver struct {
	tweens    []*TweenGroup
	elapsed   float32
	reveal    float32
	revealed  bool
	cancelled bool
	signal    func(Phase)
}

func (d *transitionDriver) cancel() {
	d.cancelled = true
	for _, g := range d.tweens {
		g.Cancel()
	}
}

// Update implements Animation.
func (d *transitionDriver) Update(dt float32) bool {
	if d.cancelled {
		return true
	}
	d.elapsed += dt
	done := true
	for _, g := range d.tweens {
		if !g.Update(dt) {
			done = false
		}
	}
	if !d.revealed && d.elapsed >= d.reveal {
		d.revealed = true
		d.signal(PhaseRevealed)
	}
	if done {
		d.cancelled = true
		d.signal(PhaseSettled)
		return true
	}
	return false
}
