package lectern

import (
	"log/slog"
	"time"
)

// Timings collects every delay and duration the controllers use.
type Timings struct {
	// Reveal is how far into a slide transition the new slide's animations
	// start; Settle is the length of the transition itself.
	Reveal time.Duration
	Settle time.Duration

	ResizeDebounce  time.Duration
	FullscreenDelay time.Duration

	CounterDuration time.Duration
	RingDuration    time.Duration
	RingFill        float64

	BannerHold   time.Duration
	BannerFade   time.Duration
	ChromeIdle   time.Duration
	ChromeReveal time.Duration
	ChromeFade   time.Duration
}

// DefaultTimings returns the standard presentation timings.
func DefaultTimings() Timings {
	return Timings{
		Reveal:          300 * time.Millisecond,
		Settle:          600 * time.Millisecond,
		ResizeDebounce:  150 * time.Millisecond,
		FullscreenDelay: 100 * time.Millisecond,
		CounterDuration: 1000 * time.Millisecond,
		RingDuration:    2 * time.Second,
		RingFill:        0.70,
		BannerHold:      1000 * time.Millisecond,
		BannerFade:      400 * time.Millisecond,
		ChromeIdle:      2000 * time.Millisecond,
		ChromeReveal:    2000 * time.Millisecond,
		ChromeFade:      300 * time.Millisecond,
	}
}

var nopLogger = slog.New(slog.DiscardHandler)
