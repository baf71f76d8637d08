package lectern

import (
	"strconv"
	"time"

	"github.com/tanema/gween/ease"
)

// CounterBinding connects a NumberTarget to whatever displays it.
type CounterBinding struct {
	Target NumberTarget
	Set    func(string)
}

// SlideTargets is what the animator needs for one slide.
type SlideTargets struct {
	Counters []CounterBinding
	Rings    []*Node
}

// Animator is the subset of Scene the SlideAnimator needs to run tweens and
// force a layout pass.
type Animator interface {
	Animate(a Animation)
	FlushLayout()
}

// counterKey identifies a counter by slide and position on the slide.
type counterKey struct {
	slide, pos int
}

// SlideAnimator restarts the per-slide effects whenever a slide becomes
// active: digit counters and the progress ring.
type SlideAnimator struct {
	clock   *Scheduler
	scene   Animator
	targets func(index int) SlideTargets
	timings Timings

	counters map[counterKey]TimerHandle
	rings    map[*Node]*TweenGroup
}

// NewSlideAnimator creates an animator. targets resolves a slide index to its
// animation targets; a slide with none returns the zero SlideTargets.
func NewSlideAnimator(clock *Scheduler, scene Animator, targets func(int) SlideTargets, t Timings) *SlideAnimator {
	return &SlideAnimator{
		clock:    clock,
		scene:    scene,
		targets:  targets,
		timings:  t,
		counters: make(map[counterKey]TimerHandle),
		rings:    make(map[*Node]*TweenGroup),
	}
}

// Start (re)starts every effect configured for slide index.
func (a *SlideAnimator) Start(index int) {
	tg := a.targets(index)
	for j, c := range tg.Counters {
		key := counterKey{slide: index, pos: j}
		a.counters[key].Cancel()
		a.counters[key] = StartCounter(a.clock, c.Target.Target, c.Target.Suffix, a.timings.CounterDuration, c.Set)
	}
	for _, ring := range tg.Rings {
		a.startRing(ring)
	}
}

// startRing resets the ring to empty with no transition, flushes layout so
// the empty state is what the tween starts from, then fills it.
func (a *SlideAnimator) startRing(n *Node) {
	if n == nil || n.Ring == nil {
		return
	}
	if prev := a.rings[n]; prev != nil {
		prev.Cancel()
	}
	n.Ring.Progress = 0
	n.MarkDirty()
	a.scene.FlushLayout()

	g := TweenValue(n, &n.Ring.Progress, a.timings.RingFill, a.timings.RingDuration, ease.OutCubic)
	g.OnComplete = func() { delete(a.rings, n) }
	a.rings[n] = g
	a.scene.Animate(g)
}

// StartCounter displays 0 and steps the value by one towards target every
// duration/|target|, calling set with the value and suffix on every update.
// It stops exactly at target. Cancel the returned handle to abandon the count.
func StartCounter(clock *Scheduler, target int, suffix string, duration time.Duration, set func(string)) TimerHandle {
	current := 0
	set(strconv.Itoa(current) + suffix)
	if target == 0 {
		return TimerHandle{}
	}
	step := 1
	span := target
	if target < 0 {
		step = -1
		span = -target
	}

	var h TimerHandle
	h = clock.Every(duration/time.Duration(span), func() {
		current += step
		set(strconv.Itoa(current) + suffix)
		if current == target {
			h.Cancel()
		}
	})
	return h
}
