package lectern

import (
	"testing"
	"time"
)

type recordingBanner struct {
	calls     []string
	populated Section
}

func (b *recordingBanner) Populate(s Section) {
	b.populated = s
	b.calls = append(b.calls, "populate")
}
func (b *recordingBanner) Show()                 { b.calls = append(b.calls, "show") }
func (b *recordingBanner) FadeOut(time.Duration) { b.calls = append(b.calls, "fade") }
func (b *recordingBanner) Hide()                 { b.calls = append(b.calls, "hide") }

type recordingChrome struct {
	states []bool
}

func (c *recordingChrome) SetChromeVisible(v bool) { c.states = append(c.states, v) }

func sectionDeck() *Deck {
	d := testDeck(7)
	d.Sections = []Section{
		{Number: 1, Title: "Intro", StartSlide: 0, EndSlide: 1},
		{Number: 2, Icon: "*", Title: "Middle", Description: "the middle bit", StartSlide: 2, EndSlide: 4},
		{Number: 3, Title: "End", StartSlide: 5, EndSlide: 6},
	}
	return d
}

func TestSectionIndicatorShowsOnSectionStart(t *testing.T) {
	clock := NewScheduler()
	banner := &recordingBanner{}
	c := NewSectionIndicatorController(clock, sectionDeck(), banner, nil, DefaultTimings(), nil)

	if !c.Enter(2) {
		t.Fatal("Enter(2) should show the banner")
	}
	if !c.Visible() || c.Section().Number != 2 {
		t.Errorf("visible=%v section=%d", c.Visible(), c.Section().Number)
	}
	if banner.populated.Title != "Middle" {
		t.Errorf("populated %+v", banner.populated)
	}
	if len(banner.calls) != 2 || banner.calls[0] != "populate" || banner.calls[1] != "show" {
		t.Errorf("calls = %v", banner.calls)
	}
}

func TestSectionIndicatorIgnoresFirstSlideAndMidSection(t *testing.T) {
	clock := NewScheduler()
	banner := &recordingBanner{}
	c := NewSectionIndicatorController(clock, sectionDeck(), banner, nil, DefaultTimings(), nil)

	if c.Enter(0) {
		t.Error("slide 0 must never show the banner")
	}
	if c.Enter(3) {
		t.Error("slide 3 is not a section start")
	}
	if len(banner.calls) != 0 {
		t.Errorf("banner touched: %v", banner.calls)
	}
}

func TestSectionIndicatorAutoHide(t *testing.T) {
	clock := NewScheduler()
	banner := &recordingBanner{}
	c := NewSectionIndicatorController(clock, sectionDeck(), banner, nil, DefaultTimings(), nil)
	c.Enter(5)

	clock.Advance(999 * ms)
	if len(banner.calls) != 2 {
		t.Fatalf("faded early: %v", banner.calls)
	}
	clock.Advance(ms)
	if banner.calls[len(banner.calls)-1] != "fade" {
		t.Fatalf("no fade at 1000ms: %v", banner.calls)
	}
	if !c.Visible() {
		t.Error("banner counts as visible while fading")
	}
	clock.Advance(399 * ms)
	if !c.Visible() {
		t.Error("hidden before the fade finished")
	}
	clock.Advance(ms)
	if c.Visible() {
		t.Error("still visible after 1400ms")
	}
	if banner.calls[len(banner.calls)-1] != "hide" {
		t.Errorf("calls = %v, want trailing hide", banner.calls)
	}
}

func TestSectionIndicatorReshowRestartsHold(t *testing.T) {
	clock := NewScheduler()
	banner := &recordingBanner{}
	c := NewSectionIndicatorController(clock, sectionDeck(), banner, nil, DefaultTimings(), nil)

	c.Enter(2)
	clock.Advance(1200 * ms) // fading
	c.Enter(5)
	if c.Section().Number != 3 {
		t.Errorf("section = %d, want 3", c.Section().Number)
	}
	// The in-flight fade is cut short before repopulating.
	n := len(banner.calls)
	if banner.calls[n-3] != "hide" || banner.calls[n-2] != "populate" || banner.calls[n-1] != "show" {
		t.Errorf("calls = %v", banner.calls)
	}

	clock.Advance(999 * ms)
	if !c.Visible() {
		t.Error("old timers hid the re-shown banner")
	}
	clock.Advance(401 * ms)
	if c.Visible() {
		t.Error("banner not hidden 1400ms after the re-show")
	}
}

func TestSectionIndicatorRevealsHiddenChrome(t *testing.T) {
	clock := NewScheduler()
	rc := &recordingChrome{}
	timings := DefaultTimings()
	chrome := NewNavigationVisibilityController(clock, rc, timings, nil)
	chrome.SetFullscreen(true)
	clock.Advance(timings.ChromeIdle)
	if chrome.Visible() {
		t.Fatal("chrome should be hidden after idle")
	}

	c := NewSectionIndicatorController(clock, sectionDeck(), &recordingBanner{}, chrome, timings, nil)
	c.Enter(2)
	if !chrome.Visible() {
		t.Fatal("section start should reveal hidden chrome")
	}
	clock.Advance(timings.ChromeReveal - ms)
	if !chrome.Visible() {
		t.Error("chrome hid before the reveal period ended")
	}
	clock.Advance(ms)
	if chrome.Visible() {
		t.Error("chrome still visible after the reveal period")
	}
}

func TestBannerLabelShowsNumberAndLabel(t *testing.T) {
	tests := []struct {
		sec  Section
		want string
	}{
		{Section{Number: 2}, "Section 2"},
		{Section{Number: 2, Icon: "📈"}, "📈 Section 2"},
		{Section{Number: 3, Icon: "📈", Label: "Slides 4-7"}, "📈 Section 3 · Slides 4-7"},
	}
	for _, tt := range tests {
		if got := bannerLabel(tt.sec); got != tt.want {
			t.Errorf("bannerLabel(%+v) = %q, want %q", tt.sec, got, tt.want)
		}
	}

	b := newBannerView(NewScene(), DefaultTheme())
	b.Populate(Section{Number: 3, Title: "Plans", Label: "Slides 4-7"})
	if got := b.label.Text.Content; got != "Section 3 · Slides 4-7" {
		t.Errorf("banner label = %q", got)
	}
	if got := b.title.Text.Content; got != "Plans" {
		t.Errorf("banner title = %q", got)
	}
}
