package lectern

import (
	"log/slog"
	"time"
)

// Chrome is the navigation chrome (arrows, indicators) a
// NavigationVisibilityController shows and hides.
type Chrome interface {
	SetChromeVisible(visible bool)
}

// NavigationVisibilityController auto-hides navigation chrome in fullscreen.
// Pointer movement shows the chrome and restarts an idle timer; when the
// timer expires the chrome is hidden. Outside fullscreen the chrome is always
// visible.
type NavigationVisibilityController struct {
	clock  *Scheduler
	chrome Chrome
	idle   time.Duration
	log    *slog.Logger

	fullscreen bool
	visible    bool
	timer      TimerHandle
}

// NewNavigationVisibilityController creates the controller with chrome shown.
func NewNavigationVisibilityController(clock *Scheduler, chrome Chrome, t Timings, log *slog.Logger) *NavigationVisibilityController {
	if log == nil {
		log = nopLogger
	}
	c := &NavigationVisibilityController{
		clock:  clock,
		chrome: chrome,
		idle:   t.ChromeIdle,
		log:    log,
	}
	c.show()
	return c
}

// Visible reports whether the chrome is currently shown.
func (c *NavigationVisibilityController) Visible() bool { return c.visible }

// Fullscreen reports whether the controller is in its active (fullscreen) mode.
func (c *NavigationVisibilityController) Fullscreen() bool { return c.fullscreen }

// SetFullscreen switches modes. Entering fullscreen starts the idle timer;
// leaving it shows the chrome unconditionally.
func (c *NavigationVisibilityController) SetFullscreen(fs bool) {
	if fs == c.fullscreen {
		return
	}
	c.fullscreen = fs
	c.log.Debug("chrome: fullscreen changed", "fullscreen", fs)
	if !fs {
		c.timer.Cancel()
		c.show()
		return
	}
	c.restart(c.idle)
}

// PointerMoved shows the chrome and restarts the idle timer. Ignored outside
// fullscreen.
func (c *NavigationVisibilityController) PointerMoved() {
	if !c.fullscreen {
		return
	}
	c.show()
	c.restart(c.idle)
}

// Reveal shows hidden chrome for d before the idle timer may hide it again.
// Ignored outside fullscreen or when the chrome is already visible.
func (c *NavigationVisibilityController) Reveal(d time.Duration) {
	if !c.fullscreen || c.visible {
		return
	}
	c.show()
	c.restart(d)
}

func (c *NavigationVisibilityController) restart(d time.Duration) {
	c.timer.Cancel()
	c.timer = c.clock.After(d, c.hide)
}

func (c *NavigationVisibilityController) show() {
	if c.visible {
		return
	}
	c.visible = true
	if c.chrome != nil {
		c.chrome.SetChromeVisible(true)
	}
}

func (c *NavigationVisibilityController) hide() {
	if !c.visible || !c.fullscreen {
		return
	}
	c.visible = false
	if c.chrome != nil {
		c.chrome.SetChromeVisible(false)
	}
}
