package lectern

import (
	"math"
	"testing"
)

func TestMarginTable(t *testing.T) {
	tests := []struct {
		name string
		v    Viewport
		want float64
	}{
		{"fullscreen wins", Viewport{Width: 800, Height: 600, DeviceScale: 2, Fullscreen: true}, 1.00},
		{"small hidpi", Viewport{Width: 1280, Height: 720, DeviceScale: 2}, 0.88},
		{"small hidpi 1.5", Viewport{Width: 1024, Height: 768, DeviceScale: 1.5}, 0.88},
		{"narrow", Viewport{Width: 1200, Height: 800, DeviceScale: 1}, 0.96},
		{"short", Viewport{Width: 1920, Height: 700, DeviceScale: 1}, 0.96},
		{"medium hidpi", Viewport{Width: 1500, Height: 900, DeviceScale: 1.25}, 0.92},
		{"medium lodpi below 1440", Viewport{Width: 1366, Height: 768, DeviceScale: 1}, 0.92},
		{"medium lodpi 1440", Viewport{Width: 1440, Height: 900, DeviceScale: 1}, 0.95},
		{"large retina", Viewport{Width: 2560, Height: 1440, DeviceScale: 2}, 0.94},
		{"desktop", Viewport{Width: 1920, Height: 1080, DeviceScale: 1}, 0.95},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Margin(tt.v); got != tt.want {
				t.Errorf("Margin(%+v) = %v, want %v", tt.v, got, tt.want)
			}
		})
	}
}

func TestComputeScale(t *testing.T) {
	s, m := ComputeScale(Viewport{Width: 1920, Height: 1080, DeviceScale: 1})
	assertNear(t, "scale", s, 0.95)
	assertNear(t, "margin", m, 0.95)

	s, m = ComputeScale(Viewport{Width: 1280, Height: 720, DeviceScale: 2})
	assertNear(t, "margin", m, 0.88)
	assertNear(t, "scale", s, 1280.0/1920*0.88)
}

func TestComputeScaleClamps(t *testing.T) {
	s, _ := ComputeScale(Viewport{Width: 320, Height: 240, DeviceScale: 1})
	if s != MinScale {
		t.Errorf("tiny viewport scale = %v, want %v", s, MinScale)
	}
	s, _ = ComputeScale(Viewport{Width: 7680, Height: 4320, DeviceScale: 1, Fullscreen: true})
	if s != MaxScale {
		t.Errorf("huge viewport scale = %v, want %v", s, MaxScale)
	}
}

func TestScaleStateMatrixCenters(t *testing.T) {
	st := ScaleState{Scale: 0.5, Viewport: Viewport{Width: 1000, Height: 800}}
	m := st.Matrix()
	cx, cy := transformPoint(m, SurfaceWidth/2, SurfaceHeight/2)
	assertNear(t, "center x", cx, 500)
	assertNear(t, "center y", cy, 400)
	if got := st.Transform(); got != "translate(-50%, -50%) scale(0.5000)" {
		t.Errorf("Transform() = %q", got)
	}
}

func TestOvershoot(t *testing.T) {
	if o := Overshoot(Rect{X: -2, Y: 0, Width: 1004, Height: 800}, 1000, 800); o != 0 {
		t.Errorf("within tolerance: overshoot = %v, want 0", o)
	}
	if o := Overshoot(Rect{X: -5, Y: 0, Width: 1000, Height: 830}, 1000, 800); o != 30 {
		t.Errorf("overshoot = %v, want 30", o)
	}
	if f := CorrectionFactor(30); f != 0.96 {
		t.Errorf("factor(30) = %v", f)
	}
	if f := CorrectionFactor(20); f != 0.98 {
		t.Errorf("factor(20) = %v", f)
	}
}

// fakeSurface reports bounds derived from the applied scale, optionally with
// content that sticks out past the surface box.
type fakeSurface struct {
	applied []ScaleState
	extra   float64 // surface pixels of content below the surface
}

func (f *fakeSurface) ApplyScale(st ScaleState) { f.applied = append(f.applied, st) }

func (f *fakeSurface) RenderedBounds() Rect {
	st := f.applied[len(f.applied)-1]
	m := st.Matrix()
	return worldAABB(m, SurfaceWidth, SurfaceHeight+f.extra)
}

func newTestScaler(v *Viewport, surf *fakeSurface) (*ScaleController, *Scheduler) {
	clock := NewScheduler()
	c := NewScaleController(clock, surf, func() Viewport { return *v }, DefaultTimings(), nil)
	return c, clock
}

func TestScaleControllerNoOverflowPassAtLowMargin(t *testing.T) {
	v := Viewport{Width: 1280, Height: 720, DeviceScale: 2}
	surf := &fakeSurface{}
	c, clock := newTestScaler(&v, surf)

	if !c.Compute() {
		t.Fatal("Compute rejected")
	}
	if c.Busy() {
		t.Error("margin 0.88 should not schedule an overflow pass")
	}
	if clock.Pending() != 0 {
		t.Errorf("pending = %d, want 0", clock.Pending())
	}
}

func TestScaleControllerGuardIgnoresTriggers(t *testing.T) {
	v := Viewport{Width: 1920, Height: 1080, DeviceScale: 1}
	surf := &fakeSurface{}
	c, clock := newTestScaler(&v, surf)

	if !c.Compute() {
		t.Fatal("first Compute rejected")
	}
	if !c.Busy() {
		t.Fatal("margin 0.95 should leave an overflow pass pending")
	}
	if c.Compute() {
		t.Error("second Compute should be ignored while busy")
	}
	if len(surf.applied) != 1 {
		t.Errorf("applied %d times, want 1", len(surf.applied))
	}

	clock.Advance(0)
	if c.Busy() {
		t.Error("still busy after a fitting overflow pass")
	}
	if !c.Compute() {
		t.Error("Compute rejected after the guard cleared")
	}
}

func TestScaleControllerOverflowShrinksRepeatedly(t *testing.T) {
	v := Viewport{Width: 1920, Height: 1080, DeviceScale: 1}
	surf := &fakeSurface{extra: 200}
	c, clock := newTestScaler(&v, surf)
	c.Compute()

	for i := 0; i < 100 && c.Busy(); i++ {
		clock.Advance(0)
	}
	if c.Busy() {
		t.Fatal("overflow correction never finished")
	}
	st := c.State()
	if st.Corrections == 0 {
		t.Fatal("expected at least one correction")
	}
	if st.Scale >= 0.95 {
		t.Errorf("scale = %v, want below 0.95", st.Scale)
	}
	if Overshoot(surf.RenderedBounds(), v.Width, v.Height) != 0 {
		t.Error("surface still overflows after correction")
	}
	// Coarse steps are 0.96, fine steps 0.98; each pass uses one of them.
	first := surf.applied[1].Scale / surf.applied[0].Scale
	if math.Abs(first-0.96) > 1e-9 {
		t.Errorf("first correction factor = %v, want 0.96", first)
	}
}

func TestScaleControllerOverflowFloor(t *testing.T) {
	v := Viewport{Width: 1920, Height: 1080, DeviceScale: 1}
	surf := &fakeSurface{extra: 1e6}
	c, clock := newTestScaler(&v, surf)
	c.Compute()
	for i := 0; i < 1000 && c.Busy(); i++ {
		clock.Advance(0)
	}
	if c.Busy() {
		t.Fatal("correction did not stop at the floor")
	}
	if c.State().Scale != MinScale {
		t.Errorf("scale = %v, want floor %v", c.State().Scale, MinScale)
	}
}

func TestScaleControllerResizeDebounce(t *testing.T) {
	v := Viewport{Width: 1280, Height: 720, DeviceScale: 2}
	surf := &fakeSurface{}
	c, clock := newTestScaler(&v, surf)

	for i := 0; i < 5; i++ {
		c.Resize()
		clock.Advance(100 * ms)
	}
	if len(surf.applied) != 0 {
		t.Fatalf("computed during the burst: %d", len(surf.applied))
	}
	clock.Advance(150 * ms)
	if len(surf.applied) != 1 {
		t.Errorf("computed %d times after the burst, want 1", len(surf.applied))
	}
}

func TestScaleControllerFullscreenDelay(t *testing.T) {
	v := Viewport{Width: 1920, Height: 1080, DeviceScale: 1, Fullscreen: true}
	surf := &fakeSurface{}
	c, clock := newTestScaler(&v, surf)

	var changes []ScaleState
	c.OnChange = func(st ScaleState) { changes = append(changes, st) }

	c.FullscreenChanged()
	clock.Advance(99 * ms)
	if len(changes) != 0 {
		t.Fatal("computed before the fullscreen delay")
	}
	clock.Advance(ms)
	if len(changes) != 1 {
		t.Fatalf("changes = %d, want 1", len(changes))
	}
	if changes[0].Margin != 1.0 || changes[0].Scale != 1.0 {
		t.Errorf("fullscreen state = %+v, want margin 1 scale 1", changes[0])
	}
}

func TestScaleControllerIgnoresEmptyViewport(t *testing.T) {
	v := Viewport{}
	surf := &fakeSurface{}
	c, _ := newTestScaler(&v, surf)
	if c.Compute() {
		t.Error("Compute with a zero viewport should be ignored")
	}
	if c.Busy() {
		t.Error("busy after ignored compute")
	}
}
