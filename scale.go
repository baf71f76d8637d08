package lectern

import (
	"fmt"
	"log/slog"
	"math"
	"time"
)

// Scale limits and overflow-correction constants.
const (
	MinScale = 0.4
	MaxScale = 1.5

	// overflowTolerance is how far (in window pixels) the surface may poke
	// past a viewport edge before it counts as overflow.
	overflowTolerance = 2.0
	// largeOverflow separates the coarse and fine correction factors.
	largeOverflow = 20.0

	coarseCorrection = 0.96
	fineCorrection   = 0.98

	// overflowCheckMargin: margins at or below this are conservative enough
	// that no overflow pass is scheduled.
	overflowCheckMargin = 0.90
)

// Viewport describes the window the presentation surface is scaled into.
// Width and Height are device-independent pixels.
type Viewport struct {
	Width, Height float64
	DeviceScale   float64
	Fullscreen    bool
}

// Margin returns the margin multiplier for v. The table is evaluated top to
// bottom and the first matching row wins.
func Margin(v Viewport) float64 {
	w, h, dpr := v.Width, v.Height, v.DeviceScale
	switch {
	case v.Fullscreen:
		return 1.00
	case w <= 1280 && dpr >= 1.5:
		return 0.88
	case w < 1280 || h < 720:
		return 0.96
	case w < 1600 && (dpr > 1 || w < 1440):
		return 0.92
	case dpr > 1.5:
		return 0.94
	default:
		return 0.95
	}
}

// ComputeScale returns the clamped uniform scale factor for v and the margin
// that produced it.
func ComputeScale(v Viewport) (scale, margin float64) {
	base := math.Min(v.Width/SurfaceWidth, v.Height/SurfaceHeight)
	margin = Margin(v)
	return clampScale(base * margin), margin
}

func clampScale(s float64) float64 {
	return math.Max(MinScale, math.Min(MaxScale, s))
}

// Overshoot measures how far bounds extends past the viewport [0,w]x[0,h].
// It returns 0 when every edge is within tolerance, otherwise the largest
// overshoot across all four edges.
func Overshoot(bounds Rect, w, h float64) float64 {
	left := -bounds.X
	top := -bounds.Y
	right := bounds.X + bounds.Width - w
	bottom := bounds.Y + bounds.Height - h
	if left <= overflowTolerance && top <= overflowTolerance &&
		right <= overflowTolerance && bottom <= overflowTolerance {
		return 0
	}
	return math.Max(math.Max(left, right), math.Max(top, bottom))
}

// CorrectionFactor returns the shrink factor applied for a given overshoot.
func CorrectionFactor(overshoot float64) float64 {
	if overshoot > largeOverflow {
		return coarseCorrection
	}
	return fineCorrection
}

// ScaleState is the result of one scale computation. It is always derived
// fresh from the viewport; nothing is carried over between computations
// except through the overflow passes of the same computation.
type ScaleState struct {
	Scale    float64
	Margin   float64
	Viewport Viewport
	// Corrections counts overflow passes that shrank the scale.
	Corrections int
}

// Transform returns the centering transform as a CSS-style string.
func (s ScaleState) Transform() string {
	return fmt.Sprintf("translate(-50%%, -50%%) scale(%.4f)", s.Scale)
}

// Matrix returns the affine matrix that maps surface coordinates to window
// coordinates: translate by -50% of the surface, scale, then move to the
// viewport center.
func (s ScaleState) Matrix() [6]float64 {
	sc := s.Scale
	return [6]float64{
		sc, 0, 0, sc,
		s.Viewport.Width/2 - SurfaceWidth/2*sc,
		s.Viewport.Height/2 - SurfaceHeight/2*sc,
	}
}

// ScaleTarget is the surface a ScaleController drives.
type ScaleTarget interface {
	// ApplyScale installs the centered transform for st.
	ApplyScale(st ScaleState)
	// RenderedBounds measures the surface as currently laid out, in window
	// coordinates.
	RenderedBounds() Rect
}

// ScaleController keeps the presentation surface scaled to the viewport.
// Computations are guarded: while one is in progress (including its deferred
// overflow passes) further triggers are ignored rather than queued.
type ScaleController struct {
	clock    *Scheduler
	target   ScaleTarget
	viewport func() Viewport
	log      *slog.Logger

	resizeDebounce  time.Duration
	fullscreenDelay time.Duration

	state    ScaleState
	busy     bool
	debounce TimerHandle

	// OnChange, if set, runs after every applied scale (including overflow
	// corrections).
	OnChange func(ScaleState)
}

// NewScaleController creates a controller. viewport is queried at the start
// of every computation.
func NewScaleController(clock *Scheduler, target ScaleTarget, viewport func() Viewport, t Timings, log *slog.Logger) *ScaleController {
	if log == nil {
		log = nopLogger
	}
	return &ScaleController{
		clock:           clock,
		target:          target,
		viewport:        viewport,
		log:             log,
		resizeDebounce:  t.ResizeDebounce,
		fullscreenDelay: t.FullscreenDelay,
	}
}

// State returns the most recently applied scale state.
func (c *ScaleController) State() ScaleState {
	return c.state
}

// Busy reports whether a computation (or its overflow check) is in progress.
func (c *ScaleController) Busy() bool {
	return c.busy
}

// Compute runs a scale computation now. Returns false if one is already in
// progress and the trigger was ignored.
func (c *ScaleController) Compute() bool {
	if c.busy {
		c.log.Debug("scale: trigger ignored, computation in progress")
		return false
	}
	v := c.viewport()
	if v.Width <= 0 || v.Height <= 0 {
		return false
	}
	c.busy = true

	scale, margin := ComputeScale(v)
	c.apply(ScaleState{Scale: scale, Margin: margin, Viewport: v})
	c.log.Debug("scale: computed",
		"width", v.Width, "height", v.Height, "dpr", v.DeviceScale,
		"fullscreen", v.Fullscreen, "margin", margin, "scale", scale)

	if margin > overflowCheckMargin {
		c.clock.RequestFrame(c.correctOverflow)
		return true
	}
	c.busy = false
	return true
}

// Resize schedules a computation after the resize debounce window. Each call
// supersedes the pending one, so a burst of resizes computes once.
func (c *ScaleController) Resize() {
	c.debounce.Cancel()
	c.debounce = c.clock.After(c.resizeDebounce, func() {
		c.Compute()
	})
}

// FullscreenChanged schedules a computation after the fullscreen settle delay.
func (c *ScaleController) FullscreenChanged() {
	c.clock.After(c.fullscreenDelay, func() {
		c.Compute()
	})
}

// correctOverflow is one overflow pass. Passes repeat on successive frames
// until the surface fits or the scale reaches MinScale.
func (c *ScaleController) correctOverflow() {
	v := c.state.Viewport
	over := Overshoot(c.target.RenderedBounds(), v.Width, v.Height)
	if over == 0 || c.state.Scale <= MinScale {
		c.busy = false
		return
	}

	next := c.state
	next.Scale = math.Max(MinScale, c.state.Scale*CorrectionFactor(over))
	next.Corrections++
	c.apply(next)
	c.log.Debug("scale: overflow corrected", "overshoot", over, "scale", next.Scale)

	if next.Scale <= MinScale {
		c.busy = false
		return
	}
	c.clock.RequestFrame(c.correctOverflow)
}

func (c *ScaleController) apply(st ScaleState) {
	c.state = st
	c.target.ApplyScale(st)
	if c.OnChange != nil {
		c.OnChange(st)
	}
}
