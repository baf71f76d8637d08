package lectern

import (
	"strconv"
	"strings"
	"time"

	"github.com/tanema/gween/ease"
)

// Theme holds the colors the presentation is drawn with.
type Theme struct {
	Background Color
	Slide      Color
	Text       Color
	Muted      Color
	Accent     Color
	Banner     Color
}

// DefaultTheme returns the standard dark theme.
func DefaultTheme() Theme {
	return Theme{
		Background: RGB(0x0f, 0x17, 0x2a),
		Slide:      RGB(0x1e, 0x29, 0x3b),
		Text:       RGB(0xf1, 0xf5, 0xf9),
		Muted:      RGB(0x64, 0x74, 0x8b),
		Accent:     RGB(0x38, 0xbd, 0xf8),
		Banner:     RGB(0x0b, 0x12, 0x20),
	}
}

// Surface layout, in surface pixels.
const (
	contentLeft  = 120.0
	contentTop   = 100.0
	contentWidth = SurfaceWidth - 2*contentLeft
	blockGap     = 24.0

	statsTop     = 660.0
	statsSpacing = 420.0
	statSize     = 96.0

	ringX      = 1600.0
	ringY      = 760.0
	ringRadius = 140.0
	ringWidth  = 24.0

	chromeY      = 1000.0
	arrowSize    = 64.0
	dotSpacing   = 48.0
	chromeHideDY = 80.0
	bannerX      = 560.0
	bannerY      = 380.0
	bannerW      = 800.0
	bannerH      = 320.0
	cardW        = 520.0
	cardH        = 150.0
	cardGap      = 40.0
	cardsPerRow  = 3
	cardsTop     = 300.0
)

// surfaceUI is the node tree built for a deck.
type surfaceUI struct {
	surface *Node
	slides  *Node
	panels  []*Node
	chrome  *Node
	prev    *Node
	next    *Node
	dots    []*Node
	banner  *bannerView
	chromeV *chromeView
	active  int // index of the active panel, -1 if none

	counters [][]CounterBinding
	rings    [][]*Node
}

// targets implements the SlideAnimator lookup.
func (ui *surfaceUI) targets(index int) SlideTargets {
	if index < 0 || index >= len(ui.panels) {
		return SlideTargets{}
	}
	return SlideTargets{Counters: ui.counters[index], Rings: ui.rings[index]}
}

// stepNavigator is a Navigator that can also step to neighbouring slides.
type stepNavigator interface {
	Navigator
	Next() bool
	Prev() bool
}

// buildSurface creates the presentation surface for deck. Clicks on index
// cards, arrows and dots go to nav.
func buildSurface(scene *Scene, deck *Deck, nav stepNavigator, theme Theme, t Timings) *surfaceUI {
	ui := &surfaceUI{active: -1}

	ui.surface = NewContainer("surface")
	ui.surface.Width, ui.surface.Height = SurfaceWidth, SurfaceHeight
	ui.surface.Clip = true
	ui.surface.Interactable = true

	ui.slides = NewContainer("slides")
	ui.slides.Interactable = true
	ui.surface.AddChild(ui.slides)

	for i := range deck.Slides {
		panel, counters, rings := buildPanel(deck, i, nav, theme)
		ui.panels = append(ui.panels, panel)
		ui.counters = append(ui.counters, counters)
		ui.rings = append(ui.rings, rings)
		ui.slides.AddChild(panel)
	}

	ui.banner = newBannerView(scene, theme)
	ui.surface.AddChild(ui.banner.node)

	ui.chrome = buildChrome(ui, deck.Total(), nav, theme)
	ui.surface.AddChild(ui.chrome)
	ui.chromeV = &chromeView{scene: scene, node: ui.chrome, fade: t.ChromeFade}

	return ui
}

// buildPanel creates the panel for slide i and returns it with its counter
// bindings and rings.
func buildPanel(deck *Deck, i int, nav Navigator, theme Theme) (*Node, []CounterBinding, []*Node) {
	s := deck.Slides[i]
	name := s.ID
	if name == "" {
		name = "slide_" + strconv.Itoa(i)
	}
	panel := NewContainer(name)
	panel.Width, panel.Height = SurfaceWidth, SurfaceHeight
	panel.Interactable = true
	panel.X = SurfaceWidth

	bg := theme.Slide
	if s.Background != nil {
		bg = *s.Background
	}
	panel.AddChild(NewRect("background", SurfaceWidth, SurfaceHeight, bg))

	y := contentTop
	if s.Title != "" {
		title := NewText("title", s.Title, 72, theme.Text)
		title.Text.Bold = true
		title.Text.WrapWidth = contentWidth
		title.SetPosition(contentLeft, y)
		panel.AddChild(title)
		_, h := title.Text.measure()
		y += h + 2*blockGap
	}

	for j, b := range s.Blocks {
		n := blockNode(b, j, theme)
		n.SetPosition(contentLeft+blockIndent(b), y)
		panel.AddChild(n)
		_, h := n.Text.measure()
		y += h + blockGap
	}

	var counters []CounterBinding
	for j, nt := range s.Numbers {
		group := NewContainer("stat_" + nt.Element)
		group.SetPosition(contentLeft+float64(j)*statsSpacing, statsTop)
		num := NewText(nt.Element, "0"+nt.Suffix, statSize, theme.Accent)
		num.Text.Bold = true
		group.AddChild(num)
		if nt.Label != "" {
			label := NewText("label", nt.Label, 28, theme.Muted)
			label.SetPosition(0, statSize*lineSpacing)
			group.AddChild(label)
		}
		panel.AddChild(group)
		counters = append(counters, CounterBinding{Target: nt, Set: num.SetText})
	}

	var rings []*Node
	if s.ProgressRing {
		ring := NewRing("progress_ring", ringRadius, ringWidth, theme.Accent)
		ring.Ring.Track = theme.Muted.WithAlpha(0.35)
		ring.SetPosition(ringX, ringY)
		panel.AddChild(ring)
		rings = append(rings, ring)
	}

	if s.IndexCards {
		for k, sec := range deck.Sections {
			card := NewIndexCard(sec, nav, theme)
			card.SetPosition(
				contentLeft+float64(k%cardsPerRow)*(cardW+cardGap),
				cardsTop+float64(k/cardsPerRow)*(cardH+cardGap),
			)
			panel.AddChild(card)
		}
	}
	return panel, counters, rings
}

func blockIndent(b Block) float64 {
	if b.Kind == BlockBullet {
		return 40 * float64(max(b.Level-1, 0))
	}
	return 0
}

func blockNode(b Block, j int, theme Theme) *Node {
	name := "block_" + strconv.Itoa(j)
	var n *Node
	switch b.Kind {
	case BlockHeading:
		n = NewText(name, b.Text, max(60-8*float64(b.Level), 32), theme.Text)
		n.Text.Bold = true
	case BlockBullet:
		n = NewText(name, "• "+b.Text, 36, theme.Text)
	case BlockCode:
		n = NewText(name, b.Text, 30, theme.Accent)
	case BlockQuote:
		n = NewText(name, "“"+strings.TrimSpace(b.Text)+"”", 36, theme.Muted)
	default:
		n = NewText(name, b.Text, 36, theme.Text)
	}
	n.Text.WrapWidth = contentWidth - blockIndent(b)
	return n
}

// NewIndexCard creates a clickable card for section s that asks nav to jump
// to the section's first slide.
func NewIndexCard(s Section, nav Navigator, theme Theme) *Node {
	card := NewRect("card_"+strconv.Itoa(s.Number), cardW, cardH, theme.Banner)
	card.Interactable = true

	heading := strings.TrimSpace(s.Icon + " " + s.Title)
	title := NewText("title", heading, 40, theme.Text)
	title.Text.Bold = true
	title.SetPosition(24, 24)
	card.AddChild(title)
	if s.Description != "" {
		desc := NewText("description", s.Description, 26, theme.Muted)
		desc.Text.WrapWidth = cardW - 48
		desc.SetPosition(24, 84)
		card.AddChild(desc)
	}

	start := s.StartSlide
	card.OnClick = func(ClickContext) {
		nav.GoToSlide(start)
	}
	return card
}

// buildChrome creates the nav arrows and indicator dots along the bottom of
// the surface.
func buildChrome(ui *surfaceUI, total int, nav stepNavigator, theme Theme) *Node {
	chrome := NewContainer("chrome")
	chrome.Interactable = true
	chrome.SetZIndex(10)

	ui.prev = newArrow("nav_prev", "‹", theme)
	ui.prev.SetPosition(40, chromeY-arrowSize/2)
	ui.prev.OnClick = func(ClickContext) { nav.Prev() }
	chrome.AddChild(ui.prev)

	ui.next = newArrow("nav_next", "›", theme)
	ui.next.SetPosition(SurfaceWidth-40-arrowSize, chromeY-arrowSize/2)
	ui.next.OnClick = func(ClickContext) { nav.Next() }
	chrome.AddChild(ui.next)

	left := SurfaceWidth/2 - float64(total-1)*dotSpacing/2
	for i := range total {
		dot := NewRect("dot_"+strconv.Itoa(i), dotSize, dotSize, theme.Muted)
		dot.Interactable = true
		dot.PivotX, dot.PivotY = dotSize/2, dotSize/2
		dot.SetPosition(left+float64(i)*dotSpacing, chromeY)
		index := i
		dot.OnClick = func(ClickContext) {
			nav.GoToSlide(index)
		}
		ui.dots = append(ui.dots, dot)
		chrome.AddChild(dot)
	}
	return chrome
}

func newArrow(name, glyph string, theme Theme) *Node {
	arrow := NewRect(name, arrowSize, arrowSize, theme.Banner.WithAlpha(0.8))
	arrow.Interactable = true
	label := NewText("glyph", glyph, 48, theme.Text)
	label.Text.Align = TextAlignCenter
	label.SetPosition(arrowSize/2, 0)
	arrow.AddChild(label)
	return arrow
}

// --- Chrome ---

// chromeView shows and hides the navigation chrome node. Hidden chrome is
// transparent, pushed below its resting place and not clickable.
type chromeView struct {
	scene *Scene
	node  *Node
	fade  time.Duration
	tween *TweenGroup
}

// SetChromeVisible implements Chrome.
func (c *chromeView) SetChromeVisible(visible bool) {
	c.tween.Cancel()
	alpha, y := 0.0, chromeHideDY
	if visible {
		alpha, y = 1, 0
	}
	c.node.Interactable = visible
	c.tween = TweenAlphaY(c.node, alpha, y, c.fade, ease.OutQuad)
	c.scene.Animate(c.tween)
}

// --- Section banner ---

// bannerView is the on-surface section banner.
type bannerView struct {
	scene *Scene
	node  *Node
	label *Node
	title *Node
	desc  *Node
	tween *TweenGroup
}

func newBannerView(scene *Scene, theme Theme) *bannerView {
	b := &bannerView{scene: scene}
	b.node = NewRect("section_banner", bannerW, bannerH, theme.Banner.WithAlpha(0.92))
	b.node.SetPosition(bannerX, bannerY)
	b.node.SetZIndex(20)
	b.node.Visible = false
	b.node.Alpha = 0

	b.label = NewText("section_label", "", 30, theme.Accent)
	b.label.Text.Align = TextAlignCenter
	b.label.SetPosition(bannerW/2, 48)

	b.title = NewText("section_title", "", 60, theme.Text)
	b.title.Text.Bold = true
	b.title.Text.Align = TextAlignCenter
	b.title.Text.WrapWidth = bannerW - 80
	b.title.SetPosition(bannerW/2, 110)

	b.desc = NewText("section_description", "", 30, theme.Muted)
	b.desc.Text.Align = TextAlignCenter
	b.desc.Text.WrapWidth = bannerW - 80
	b.desc.SetPosition(bannerW/2, 210)

	b.node.AddChild(b.label)
	b.node.AddChild(b.title)
	b.node.AddChild(b.desc)
	return b
}

// Populate implements Banner.
func (b *bannerView) Populate(s Section) {
	b.label.SetText(bannerLabel(s))
	b.title.SetText(s.Title)
	b.desc.SetText(s.Description)
}

// bannerLabel is the banner's top line: icon, section number and, when set,
// the slide-range label.
func bannerLabel(s Section) string {
	label := "Section " + strconv.Itoa(s.Number)
	if s.Label != "" {
		label += " · " + s.Label
	}
	return strings.TrimSpace(s.Icon + " " + label)
}

// Show implements Banner.
func (b *bannerView) Show() {
	b.tween.Cancel()
	b.node.Visible = true
	b.node.SetAlpha(1)
}

// FadeOut implements Banner.
func (b *bannerView) FadeOut(d time.Duration) {
	b.tween.Cancel()
	b.tween = TweenAlpha(b.node, 0, d, ease.Linear)
	b.scene.Animate(b.tween)
}

// Hide implements Banner.
func (b *bannerView) Hide() {
	b.tween.Cancel()
	b.node.Visible = false
	b.node.SetAlpha(0)
}
