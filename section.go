package lectern

import (
	"log/slog"
	"time"
)

// Banner is the on-screen section banner.
type Banner interface {
	Populate(s Section)
	// Show makes the banner fully visible immediately.
	Show()
	// FadeOut starts fading the banner out over d.
	FadeOut(d time.Duration)
	// Hide removes the banner immediately, cancelling any fade.
	Hide()
}

// SectionIndicatorController shows a banner when the presentation enters the
// first slide of a section (other than slide 0) and hides it again after a
// short hold.
type SectionIndicatorController struct {
	clock   *Scheduler
	deck    *Deck
	banner  Banner
	chrome  *NavigationVisibilityController
	timings Timings
	log     *slog.Logger

	visible bool
	current Section
	hold    TimerHandle
	fading  bool
}

// NewSectionIndicatorController creates the controller. chrome may be nil.
func NewSectionIndicatorController(clock *Scheduler, deck *Deck, banner Banner, chrome *NavigationVisibilityController, t Timings, log *slog.Logger) *SectionIndicatorController {
	if log == nil {
		log = nopLogger
	}
	return &SectionIndicatorController{
		clock:   clock,
		deck:    deck,
		banner:  banner,
		chrome:  chrome,
		timings: t,
		log:     log,
	}
}

// Visible reports whether the banner is shown (including while fading out).
func (c *SectionIndicatorController) Visible() bool { return c.visible }

// Section returns the section last shown.
func (c *SectionIndicatorController) Section() Section { return c.current }

// Enter is called for every accepted navigation to index. It reports whether
// the banner was shown.
func (c *SectionIndicatorController) Enter(index int) bool {
	if index == 0 {
		return false
	}
	s, ok := c.deck.SectionStartingAt(index)
	if !ok {
		return false
	}

	c.hold.Cancel()
	if c.banner != nil {
		if c.fading {
			c.banner.Hide()
		}
		c.banner.Populate(s)
		c.banner.Show()
	}
	c.fading = false
	c.visible = true
	c.current = s
	c.log.Debug("section: banner shown", "section", s.Number, "title", s.Title)

	if c.chrome != nil {
		c.chrome.Reveal(c.timings.ChromeReveal)
	}

	c.hold = c.clock.After(c.timings.BannerHold, c.fadeOut)
	return true
}

func (c *SectionIndicatorController) fadeOut() {
	c.fading = true
	if c.banner != nil {
		c.banner.FadeOut(c.timings.BannerFade)
	}
	c.hold = c.clock.After(c.timings.BannerFade, c.finish)
}

func (c *SectionIndicatorController) finish() {
	c.fading = false
	c.visible = false
	if c.banner != nil {
		c.banner.Hide()
	}
}
