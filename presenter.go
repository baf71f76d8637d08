package lectern

import (
	"fmt"
	"log/slog"
)

// Window is the host window's fullscreen and display-density API.
type Window interface {
	IsFullscreen() bool
	SetFullscreen(fullscreen bool)
	DeviceScaleFactor() float64
}

// headlessWindow is the Window used when none is supplied.
type headlessWindow struct {
	fullscreen bool
	scale      float64
}

func (w *headlessWindow) IsFullscreen() bool { return w.fullscreen }

func (w *headlessWindow) SetFullscreen(fs bool) { w.fullscreen = fs }

func (w *headlessWindow) DeviceScaleFactor() float64 {
	if w.scale <= 0 {
		return 1
	}
	return w.scale
}

// Option configures a Presenter.
type Option func(*presenterOptions)

type presenterOptions struct {
	window  Window
	log     *slog.Logger
	sink    EventSink
	timings Timings
	theme   Theme
	stats   bool
}

// WithWindow sets the window whose fullscreen state and device scale the
// presenter follows.
func WithWindow(w Window) Option {
	return func(o *presenterOptions) { o.window = w }
}

// WithLogger sets the logger shared by the presenter's controllers.
func WithLogger(l *slog.Logger) Option {
	return func(o *presenterOptions) { o.log = l }
}

// WithEventSink sends slide lifecycle events to sink.
func WithEventSink(sink EventSink) Option {
	return func(o *presenterOptions) { o.sink = sink }
}

// WithTimings overrides DefaultTimings.
func WithTimings(t Timings) Option {
	return func(o *presenterOptions) { o.timings = t }
}

// WithTheme overrides DefaultTheme.
func WithTheme(t Theme) Option {
	return func(o *presenterOptions) { o.theme = t }
}

// WithStats adds an FPS / slide / scale overlay in the window corner.
func WithStats(enabled bool) Option {
	return func(o *presenterOptions) { o.stats = enabled }
}

// Presenter builds a deck into a scene and wires the controllers together:
// input drives the SlideDeck, the deck's phases drive the animator and the
// section banner, and window changes drive the ScaleController and the
// navigation chrome.
type Presenter struct {
	scene  *Scene
	deck   *SlideDeck
	ui     *surfaceUI
	stage  *sceneStage
	window Window
	sink   EventSink
	log    *slog.Logger

	scaler   *ScaleController
	animator *SlideAnimator
	sections *SectionIndicatorController
	chrome   *NavigationVisibilityController

	lastViewport Viewport
	fullscreen   bool
}

// NewPresenter builds deck into scene. deck must have at least one slide.
func NewPresenter(scene *Scene, deck *Deck, opts ...Option) *Presenter {
	o := presenterOptions{
		timings: DefaultTimings(),
		theme:   DefaultTheme(),
	}
	for _, fn := range opts {
		fn(&o)
	}
	if o.window == nil {
		o.window = &headlessWindow{}
	}
	if o.log == nil {
		o.log = nopLogger
	}
	scene.SetLogger(o.log)
	scene.ClearColor = o.theme.Background

	p := &Presenter{
		scene:  scene,
		window: o.window,
		sink:   o.sink,
		log:    o.log,
	}
	clock := scene.Clock()

	p.ui = buildSurface(scene, deck, p, o.theme, o.timings)
	scene.Root().AddChild(p.ui.surface)

	p.stage = newSceneStage(scene, p.ui, o.timings, o.theme)
	p.deck = NewSlideDeck(deck, p.stage, o.log)
	p.chrome = NewNavigationVisibilityController(clock, p.ui.chromeV, o.timings, o.log)
	p.sections = NewSectionIndicatorController(clock, deck, p.ui.banner, p.chrome, o.timings, o.log)
	p.animator = NewSlideAnimator(clock, scene, p.ui.targets, o.timings)
	p.scaler = NewScaleController(clock, p.ui, p.viewport, o.timings, o.log)

	p.deck.OnEnter(func(t Transition) {
		p.log.Info("slide", "index", t.To, "total", p.deck.Total(), "refresh", t.Refresh)
		p.emit(SlideEvent{Type: EventSlideEntered, Seq: t.Seq, From: t.From, To: t.To, Refresh: t.Refresh})
		if p.sections.Enter(t.To) {
			p.emit(SlideEvent{Type: EventSectionShown, Seq: t.Seq, From: t.From, To: t.To, Section: p.sections.Section().Number})
		}
	})
	p.deck.OnReveal(func(t Transition) {
		p.animator.Start(t.To)
		p.emit(SlideEvent{Type: EventSlideRevealed, Seq: t.Seq, From: t.From, To: t.To, Refresh: t.Refresh})
	})
	p.deck.OnSettle(func(t Transition) {
		p.emit(SlideEvent{Type: EventSlideSettled, Seq: t.Seq, From: t.From, To: t.To, Refresh: t.Refresh})
	})
	p.scaler.OnChange = func(st ScaleState) {
		p.emit(SlideEvent{Type: EventScaleChanged, Scale: st.Scale})
	}

	scene.OnKey(func(ctx KeyContext) {
		p.Execute(MapKey(ctx.Key, ctx.Modifiers))
	})
	scene.OnSwipe(func(ctx SwipeContext) {
		p.Execute(DetectSwipe(ctx.DX, ctx.DY))
	})
	scene.OnPointerMove(func(PointerContext) {
		p.chrome.PointerMoved()
	})
	scene.SetUpdateFunc(p.poll)

	if o.stats {
		scene.Root().AddChild(NewStatsWidget(func() string {
			return fmt.Sprintf("slide %d/%d\nscale %.3f", p.deck.Current()+1, p.deck.Total(), p.scaler.State().Scale)
		}))
	}

	initial := p.deck.Current()
	p.stage.jump(p.deck.View())
	p.animator.Start(initial)
	scene.FlushLayout()
	p.log.Debug("presenter: ready", "slides", deck.Total(), "sections", len(deck.Sections), "initial", initial)
	return p
}

// Deck returns the slide state machine.
func (p *Presenter) Deck() *SlideDeck { return p.deck }

// Scaler returns the scale controller.
func (p *Presenter) Scaler() *ScaleController { return p.scaler }

// Sections returns the section banner controller.
func (p *Presenter) Sections() *SectionIndicatorController { return p.sections }

// Chrome returns the navigation chrome controller.
func (p *Presenter) Chrome() *NavigationVisibilityController { return p.chrome }

// Positions returns the on-surface position of every slide.
func (p *Presenter) Positions() []SlidePosition { return p.stage.Positions() }

// GoToSlide implements Navigator.
func (p *Presenter) GoToSlide(index int) bool { return p.deck.RequestGoTo(index) }

// Next advances one slide, wrapping at the end.
func (p *Presenter) Next() bool { return p.deck.RequestNext() }

// Prev goes back one slide, wrapping at the start.
func (p *Presenter) Prev() bool { return p.deck.RequestPrev() }

// ToggleFullscreen flips the window's fullscreen state. The presenter reacts
// to the change on the next tick, the same way it reacts to the user
// changing it.
func (p *Presenter) ToggleFullscreen() {
	p.window.SetFullscreen(!p.window.IsFullscreen())
}

// Execute runs a command from MapKey or DetectSwipe. It reports whether the
// command had an effect.
func (p *Presenter) Execute(c Command) bool {
	switch c.Kind {
	case CommandNext:
		return p.Next()
	case CommandPrev:
		return p.Prev()
	case CommandGoTo:
		return p.GoToSlide(c.Index)
	case CommandFirst:
		return p.GoToSlide(0)
	case CommandLast:
		return p.GoToSlide(p.deck.Total() - 1)
	case CommandExitFullscreen:
		if !p.window.IsFullscreen() {
			return false
		}
		p.window.SetFullscreen(false)
		return true
	case CommandToggleFullscreen:
		p.ToggleFullscreen()
		return true
	}
	return false
}

// viewport reads the current window state.
func (p *Presenter) viewport() Viewport {
	w, h := p.scene.ViewportSize()
	return Viewport{
		Width:       w,
		Height:      h,
		DeviceScale: p.window.DeviceScaleFactor(),
		Fullscreen:  p.window.IsFullscreen(),
	}
}

// poll runs once per tick and turns window changes into controller triggers.
func (p *Presenter) poll() {
	v := p.viewport()
	last := p.lastViewport
	p.lastViewport = v

	if v.Fullscreen != p.fullscreen {
		p.fullscreen = v.Fullscreen
		p.log.Debug("presenter: fullscreen changed", "fullscreen", v.Fullscreen)
		p.chrome.SetFullscreen(v.Fullscreen)
		p.scaler.FullscreenChanged()
		p.emit(SlideEvent{Type: EventFullscreenChanged, Fullscreen: v.Fullscreen})
		return
	}
	if v.Width == last.Width && v.Height == last.Height && v.DeviceScale == last.DeviceScale {
		return
	}
	if last.Width <= 0 || last.Height <= 0 {
		// First real size: scale immediately.
		p.scaler.Compute()
		return
	}
	p.scaler.Resize()
}

func (p *Presenter) emit(e SlideEvent) {
	if p.sink != nil {
		p.sink.EmitSlideEvent(e)
	}
}

// --- ScaleTarget ---

// ApplyScale positions and scales the surface inside the window.
func (ui *surfaceUI) ApplyScale(st ScaleState) {
	m := st.Matrix()
	ui.surface.SetScale(m[0], m[3])
	ui.surface.SetPosition(m[4], m[5])
}

// RenderedBounds is the surface box. The surface clips its children, so
// slide content past 1920x1080 is never drawn and does not count.
func (ui *surfaceUI) RenderedBounds() Rect {
	return worldAABB(ui.surface.worldTransform, ui.surface.Width, ui.surface.Height)
}
