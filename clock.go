package lectern

import "time"

// Scheduler is a single-threaded virtual clock. Timers and frame callbacks
// are queued on it and fire only when Advance is called, which the Scene does
// once per tick. Nothing runs concurrently; a callback may schedule or cancel
// other entries, including itself.
type Scheduler struct {
	now    time.Duration
	nextID uint64
	timers []*timerEntry
	frames []func()
}

type timerEntry struct {
	id        uint64
	at        time.Duration
	every     time.Duration // > 0 for repeating timers
	fn        func()
	cancelled bool
}

// TimerHandle refers to a scheduled timer. The zero value is valid and
// refers to nothing.
type TimerHandle struct {
	id uint64
	s  *Scheduler
}

// Cancel removes the timer if it has not fired yet (or stops a repeating
// timer). Safe to call more than once and from inside the timer's callback.
func (h TimerHandle) Cancel() {
	if h.s == nil {
		return
	}
	h.s.cancel(h.id)
}

// Active reports whether the timer is still scheduled.
func (h TimerHandle) Active() bool {
	if h.s == nil {
		return false
	}
	for _, t := range h.s.timers {
		if t.id == h.id && !t.cancelled {
			return true
		}
	}
	return false
}

// NewScheduler returns a scheduler positioned at time zero.
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// Now returns the elapsed virtual time.
func (s *Scheduler) Now() time.Duration {
	return s.now
}

// After schedules fn to run once, d after the current virtual time.
// Negative durations are treated as zero.
func (s *Scheduler) After(d time.Duration, fn func()) TimerHandle {
	return s.schedule(d, 0, fn)
}

// Every schedules fn to run repeatedly with the given interval until the
// returned handle is cancelled. Intervals below one nanosecond are raised to
// one nanosecond.
func (s *Scheduler) Every(interval time.Duration, fn func()) TimerHandle {
	if interval < 1 {
		interval = 1
	}
	return s.schedule(interval, interval, fn)
}

func (s *Scheduler) schedule(d, every time.Duration, fn func()) TimerHandle {
	if d < 0 {
		d = 0
	}
	s.nextID++
	s.timers = append(s.timers, &timerEntry{
		id:    s.nextID,
		at:    s.now + d,
		every: every,
		fn:    fn,
	})
	return TimerHandle{id: s.nextID, s: s}
}

// RequestFrame queues fn to run at the start of the next Advance, i.e. after
// the frame that is currently being produced has been drawn.
func (s *Scheduler) RequestFrame(fn func()) {
	s.frames = append(s.frames, fn)
}

// Pending returns the number of scheduled timers plus queued frame callbacks.
func (s *Scheduler) Pending() int {
	n := len(s.frames)
	for _, t := range s.timers {
		if !t.cancelled {
			n++
		}
	}
	return n
}

// Advance moves the clock forward by dt. Frame callbacks queued before this
// call run first, then every timer that falls due inside the window fires in
// deadline order (ties in scheduling order). Repeating timers fire once per
// elapsed interval.
func (s *Scheduler) Advance(dt time.Duration) {
	if len(s.frames) > 0 {
		frames := s.frames
		s.frames = nil
		for _, fn := range frames {
			fn()
		}
	}

	target := s.now + dt
	for {
		next := s.nextDue(target)
		if next == nil {
			break
		}
		s.now = next.at
		if next.every > 0 {
			next.at += next.every
		} else {
			next.cancelled = true
		}
		next.fn()
		s.compact()
	}
	s.now = target
	s.compact()
}

// nextDue returns the earliest non-cancelled timer due at or before target.
func (s *Scheduler) nextDue(target time.Duration) *timerEntry {
	var best *timerEntry
	for _, t := range s.timers {
		if t.cancelled || t.at > target {
			continue
		}
		if best == nil || t.at < best.at || (t.at == best.at && t.id < best.id) {
			best = t
		}
	}
	return best
}

func (s *Scheduler) cancel(id uint64) {
	for _, t := range s.timers {
		if t.id == id {
			t.cancelled = true
			return
		}
	}
}

// compact drops cancelled entries without reallocating.
func (s *Scheduler) compact() {
	n := 0
	for _, t := range s.timers {
		if !t.cancelled {
			s.timers[n] = t
			n++
		}
	}
	for i := n; i < len(s.timers); i++ {
		s.timers[i] = nil
	}
	s.timers = s.timers[:n]
}
