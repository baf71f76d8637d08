package lectern

// SlideEventType identifies a presentation lifecycle event.
type SlideEventType uint8

const (
	// EventSlideEntered fires when a navigation request is accepted.
	EventSlideEntered SlideEventType = iota
	// EventSlideRevealed fires when the incoming slide's animations start.
	EventSlideRevealed
	// EventSlideSettled fires when the transition ends and input is accepted
	// again.
	EventSlideSettled
	// EventSectionShown fires when the section banner is shown.
	EventSectionShown
	// EventScaleChanged fires after every applied scale, including overflow
	// corrections.
	EventScaleChanged
	// EventFullscreenChanged fires when the window enters or leaves
	// fullscreen.
	EventFullscreenChanged
)

var slideEventNames = [...]string{
	EventSlideEntered:      "slide_entered",
	EventSlideRevealed:     "slide_revealed",
	EventSlideSettled:      "slide_settled",
	EventSectionShown:      "section_shown",
	EventScaleChanged:      "scale_changed",
	EventFullscreenChanged: "fullscreen_changed",
}

func (t SlideEventType) String() string {
	if int(t) < len(slideEventNames) {
		return slideEventNames[t]
	}
	return "unknown"
}

// SlideEvent carries one presentation lifecycle event to an EventSink.
type SlideEvent struct {
	Type SlideEventType
	Seq  uint64
	From int
	To   int
	// Refresh is set when the request re-entered the current slide.
	Refresh bool
	// Section is the section number for EventSectionShown.
	Section int
	// Scale is the applied scale for EventScaleChanged.
	Scale float64
	// Fullscreen is the new mode for EventFullscreenChanged.
	Fullscreen bool
}

// EventSink receives presentation lifecycle events. The ecs package provides
// a donburi-backed implementation.
type EventSink interface {
	EmitSlideEvent(event SlideEvent)
}
