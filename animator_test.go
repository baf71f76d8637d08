package lectern

import (
	"math"
	"testing"
	"time"
)

func TestStartCounterSteps(t *testing.T) {
	clock := NewScheduler()
	var seen []string
	StartCounter(clock, 42, "%", time.Second, func(s string) { seen = append(seen, s) })

	if len(seen) != 1 || seen[0] != "0%" {
		t.Fatalf("initial = %v, want [0%%]", seen)
	}
	clock.Advance(2 * time.Second)
	if len(seen) != 43 {
		t.Fatalf("updates = %d, want 43", len(seen))
	}
	if seen[42] != "42%" {
		t.Errorf("final = %q, want 42%%", seen[42])
	}
	if clock.Pending() != 0 {
		t.Error("counter timer still pending after reaching target")
	}
}

func TestStartCounterFinishesInDuration(t *testing.T) {
	clock := NewScheduler()
	last := ""
	StartCounter(clock, 10, "", time.Second, func(s string) { last = s })
	clock.Advance(999 * time.Millisecond)
	if last != "9" {
		t.Errorf("at 999ms = %q, want 9", last)
	}
	clock.Advance(time.Millisecond)
	if last != "10" {
		t.Errorf("at 1s = %q, want 10", last)
	}
}

func TestStartCounterZeroTarget(t *testing.T) {
	clock := NewScheduler()
	var seen []string
	h := StartCounter(clock, 0, "x", time.Second, func(s string) { seen = append(seen, s) })
	clock.Advance(time.Second)
	if len(seen) != 1 || seen[0] != "0x" {
		t.Errorf("seen = %v, want [0x]", seen)
	}
	if h.Active() {
		t.Error("zero target should not schedule a timer")
	}
}

func TestStartCounterNegativeTarget(t *testing.T) {
	clock := NewScheduler()
	last := ""
	StartCounter(clock, -5, "", time.Second, func(s string) { last = s })
	clock.Advance(time.Second)
	if last != "-5" {
		t.Errorf("final = %q, want -5", last)
	}
}

func TestSlideAnimatorRestartSupersedesCounter(t *testing.T) {
	scene := NewScene()
	var values []string
	targets := func(int) SlideTargets {
		return SlideTargets{Counters: []CounterBinding{{
			Target: NumberTarget{Element: "n", Target: 100},
			Set:    func(s string) { values = append(values, s) },
		}}}
	}
	a := NewSlideAnimator(scene.Clock(), scene, targets, DefaultTimings())

	a.Start(0)
	scene.Clock().Advance(500 * time.Millisecond)
	a.Start(0)
	if values[len(values)-1] != "0" {
		t.Fatalf("restart did not reset to 0: %q", values[len(values)-1])
	}
	scene.Clock().Advance(2 * time.Second)
	if values[len(values)-1] != "100" {
		t.Errorf("final = %q, want 100", values[len(values)-1])
	}
	if scene.Clock().Pending() != 0 {
		t.Error("superseded counter is still running")
	}
}

func TestSlideAnimatorUnnamedCountersRunIndependently(t *testing.T) {
	scene := NewScene()
	var first, second string
	targets := func(int) SlideTargets {
		return SlideTargets{Counters: []CounterBinding{
			{Target: NumberTarget{Target: 10}, Set: func(s string) { first = s }},
			{Target: NumberTarget{Target: 20}, Set: func(s string) { second = s }},
		}}
	}
	a := NewSlideAnimator(scene.Clock(), scene, targets, DefaultTimings())

	a.Start(0)
	scene.Clock().Advance(time.Second)
	if first != "10" || second != "20" {
		t.Errorf("counters = %q, %q, want 10, 20", first, second)
	}
}

func TestSlideAnimatorRingResetsThenFills(t *testing.T) {
	scene := NewScene()
	ring := NewRing("ring", 100, 10, ColorWhite)
	ring.Ring.Progress = 0.5
	scene.Root().AddChild(ring)

	targets := func(int) SlideTargets { return SlideTargets{Rings: []*Node{ring}} }
	timings := DefaultTimings()
	a := NewSlideAnimator(scene.Clock(), scene, targets, timings)

	a.Start(0)
	if ring.Ring.Progress != 0 {
		t.Fatalf("progress after Start = %v, want 0", ring.Ring.Progress)
	}
	if scene.NumAnimations() != 1 {
		t.Fatalf("animations = %d, want 1", scene.NumAnimations())
	}

	scene.Advance(time.Second)
	mid := ring.Ring.Progress
	if mid <= 0 || mid >= timings.RingFill {
		t.Errorf("progress at 1s = %v, want in (0, %v)", mid, timings.RingFill)
	}

	// Restarting mid-fill resets synchronously and leaves one tween running.
	a.Start(0)
	if ring.Ring.Progress != 0 {
		t.Errorf("restart did not reset: %v", ring.Ring.Progress)
	}
	scene.Advance(timings.RingDuration)
	scene.Advance(0)
	if math.Abs(ring.Ring.Progress-timings.RingFill) > 1e-3 {
		t.Errorf("final progress = %v, want %v", ring.Ring.Progress, timings.RingFill)
	}
	if scene.NumAnimations() != 0 {
		t.Errorf("animations left = %d", scene.NumAnimations())
	}
}

func TestSlideAnimatorNoTargets(t *testing.T) {
	scene := NewScene()
	a := NewSlideAnimator(scene.Clock(), scene, func(int) SlideTargets { return SlideTargets{} }, DefaultTimings())
	a.Start(3)
	if scene.NumAnimations() != 0 || scene.Clock().Pending() != 0 {
		t.Error("slide without targets scheduled work")
	}
}
