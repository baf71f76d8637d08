package lectern

import (
	"log/slog"
	"time"
)

// --- Deck data ---

// BlockKind identifies a kind of slide content block.
type BlockKind uint8

const (
	BlockParagraph BlockKind = iota
	BlockHeading
	BlockBullet
	BlockCode
	BlockQuote
)

// Block is one unit of slide content.
type Block struct {
	Kind  BlockKind
	Level int // heading level or list nesting depth
	Text  string
}

// NumberTarget animates the text node named Element from 0 to Target,
// appending Suffix on every update. Label is drawn under the number.
type NumberTarget struct {
	Element string
	Target  int
	Suffix  string
	Label   string
}

// Slide is one panel of the deck.
type Slide struct {
	ID           string
	Title        string
	Blocks       []Block
	Numbers      []NumberTarget
	ProgressRing bool
	// IndexCards renders one clickable card per section that jumps to the
	// section's first slide.
	IndexCards bool
	// Active pre-marks the slide shown at startup.
	Active     bool
	Background *Color
}

// Section groups a contiguous range of slides.
type Section struct {
	Number      int
	Icon        string
	Title       string
	Description string
	Label       string
	StartSlide  int
	EndSlide    int
}

// Deck is the static presentation: slides and their sections. It is built
// once and never resized.
type Deck struct {
	Title    string
	Slides   []Slide
	Sections []Section
}

// Total returns the number of slides.
func (d *Deck) Total() int {
	return len(d.Slides)
}

// InitialIndex returns the first pre-marked active slide, or 0.
func (d *Deck) InitialIndex() int {
	for i, s := range d.Slides {
		if s.Active {
			return i
		}
	}
	return 0
}

// SectionStartingAt returns the section whose StartSlide is index.
func (d *Deck) SectionStartingAt(index int) (Section, bool) {
	for _, s := range d.Sections {
		if s.StartSlide == index {
			return s, true
		}
	}
	return Section{}, false
}

// SectionOf returns the section containing index.
func (d *Deck) SectionOf(index int) (Section, bool) {
	for _, s := range d.Sections {
		if index >= s.StartSlide && index <= s.EndSlide {
			return s, true
		}
	}
	return Section{}, false
}

// --- State machine ---

// TransitionState is the SlideDeck's lock state.
type TransitionState uint8

const (
	Idle TransitionState = iota
	Transitioning
)

func (s TransitionState) String() string {
	if s == Transitioning {
		return "transitioning"
	}
	return "idle"
}

// Phase is a step in the life of a transition.
type Phase uint8

const (
	// PhaseRevealed: the incoming slide is far enough in for its animations
	// to start.
	PhaseRevealed Phase = iota
	// PhaseSettled: the transition has finished and the deck is unlocked.
	PhaseSettled
)

// Transition describes one accepted navigation request.
type Transition struct {
	Seq     uint64
	From    int
	To      int
	Refresh bool // To == From; the active marker is re-applied
	View    View
}

// Stage applies transitions to the display. Present must apply t.View
// synchronously before returning, then call signal once with PhaseRevealed
// and once with PhaseSettled, in that order, when those phases complete.
type Stage interface {
	Present(t Transition, signal func(Phase))
}

// Navigator is the handle collaborators (index cards, nav arrows, scripts)
// use to request navigation.
type Navigator interface {
	GoToSlide(index int) bool
}

// SlideDeck owns the current slide index and the transition lock. At most one
// transition is in flight; requests arriving while one is in flight are
// dropped.
type SlideDeck struct {
	deck    *Deck
	current int
	state   TransitionState
	stage   Stage
	seq     uint64
	log     *slog.Logger

	onEnter  []func(Transition)
	onReveal []func(Transition)
	onSettle []func(Transition)
}

// NewSlideDeck creates the state machine in Idle at the deck's pre-marked
// slide. The deck must contain at least one slide.
func NewSlideDeck(deck *Deck, stage Stage, log *slog.Logger) *SlideDeck {
	if log == nil {
		log = nopLogger
	}
	return &SlideDeck{
		deck:    deck,
		current: deck.InitialIndex(),
		stage:   stage,
		log:     log,
	}
}

// OnEnter registers fn to run synchronously inside every accepted request,
// after the view has been applied.
func (d *SlideDeck) OnEnter(fn func(Transition)) { d.onEnter = append(d.onEnter, fn) }

// OnReveal registers fn to run when a transition reaches PhaseRevealed.
func (d *SlideDeck) OnReveal(fn func(Transition)) { d.onReveal = append(d.onReveal, fn) }

// OnSettle registers fn to run when a transition reaches PhaseSettled, after
// the deck is back to Idle.
func (d *SlideDeck) OnSettle(fn func(Transition)) { d.onSettle = append(d.onSettle, fn) }

// Current returns the active slide index. It changes as soon as a request is
// accepted, not when the transition settles.
func (d *SlideDeck) Current() int { return d.current }

// Total returns the number of slides.
func (d *SlideDeck) Total() int { return d.deck.Total() }

// State returns the transition state.
func (d *SlideDeck) State() TransitionState { return d.state }

// Deck returns the underlying static deck.
func (d *SlideDeck) Deck() *Deck { return d.deck }

// View returns the projection of the current state.
func (d *SlideDeck) View() View { return Project(d.current, d.Total()) }

// GoToSlide implements Navigator.
func (d *SlideDeck) GoToSlide(index int) bool { return d.RequestGoTo(index) }

// RequestGoTo asks for slide index. It returns false, changing nothing, when
// index is out of range or a transition is in flight. Requesting the current
// slide performs a refresh: the active marker is re-applied and the slide's
// animations restart.
func (d *SlideDeck) RequestGoTo(index int) bool {
	if index < 0 || index >= d.Total() {
		return false
	}
	if d.state == Transitioning {
		d.log.Debug("deck: request dropped, transition in flight", "index", index)
		return false
	}

	d.seq++
	t := Transition{
		Seq:     d.seq,
		From:    d.current,
		To:      index,
		Refresh: index == d.current,
		View:    Project(index, d.Total()),
	}
	d.state = Transitioning
	d.current = index
	d.log.Debug("deck: transition", "from", t.From, "to", t.To, "refresh", t.Refresh)

	// Phases reported synchronously by the stage are held back until the
	// enter hooks have run.
	revealed, entering := false, true
	var held []Phase
	d.stage.Present(t, func(p Phase) {
		if entering {
			held = append(held, p)
			return
		}
		d.signal(t, p, &revealed)
	})
	for _, fn := range d.onEnter {
		fn(t)
	}
	entering = false
	for _, p := range held {
		d.signal(t, p, &revealed)
	}
	return true
}

// signal handles a phase report for t. Reports for superseded transitions
// and duplicate reports are ignored.
func (d *SlideDeck) signal(t Transition, p Phase, revealed *bool) {
	if t.Seq != d.seq {
		return
	}
	switch p {
	case PhaseRevealed:
		if *revealed {
			return
		}
		*revealed = true
		for _, fn := range d.onReveal {
			fn(t)
		}
	case PhaseSettled:
		if d.state != Transitioning {
			return
		}
		if !*revealed {
			d.signal(t, PhaseRevealed, revealed)
		}
		d.state = Idle
		for _, fn := range d.onSettle {
			fn(t)
		}
	}
}

// RequestNext moves to the following slide, wrapping to the first.
func (d *SlideDeck) RequestNext() bool {
	if d.Total() == 0 {
		return false
	}
	return d.RequestGoTo((d.current + 1) % d.Total())
}

// RequestPrev moves to the preceding slide, wrapping to the last.
func (d *SlideDeck) RequestPrev() bool {
	n := d.Total()
	if n == 0 {
		return false
	}
	return d.RequestGoTo((d.current - 1 + n) % n)
}

// --- Timed stage ---

// TimedStage reports phases on fixed delays. It is the stage used when there
// is nothing on screen whose completion could be observed, and the fallback
// for tests. Project, if set, receives every transition synchronously.
type TimedStage struct {
	Clock   *Scheduler
	Reveal  time.Duration
	Settle  time.Duration
	Project func(Transition)
}

// Present implements Stage.
func (s *TimedStage) Present(t Transition, signal func(Phase)) {
	if s.Project != nil {
		s.Project(t)
	}
	s.Clock.After(s.Reveal, func() { signal(PhaseRevealed) })
	s.Clock.After(s.Settle, func() { signal(PhaseSettled) })
}
