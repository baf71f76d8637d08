// autoplay generates a 120-slide deck and advances it on a timer. Next wraps
// from the last slide to the first. A soak test for the transition, counter and banner timers.
// Resize the window or press Ctrl+F while it runs to exercise scaling.
package main

import (
	"log"
	"strconv"
	"time"

	"github.com/phanxgames/lectern"
)

const (
	screenW  = 1280
	screenH  = 720
	count    = 120
	interval = 1200 * time.Millisecond
)

func buildDeck() *lectern.Deck {
	d := &lectern.Deck{Title: "autoplay"}
	for i := range count {
		s := lectern.Slide{
			ID:    "slide_" + strconv.Itoa(i),
			Title: "Slide " + strconv.Itoa(i+1),
			Blocks: []lectern.Block{
				{Kind: lectern.BlockParagraph, Text: "Generated slide " + strconv.Itoa(i+1) + " of " + strconv.Itoa(count)},
			},
		}
		switch i % 4 {
		case 1:
			s.Numbers = []lectern.NumberTarget{
				{Element: "a", Target: i * 7, Label: "items"},
				{Element: "b", Target: -i, Suffix: "%", Label: "change"},
			}
		case 2:
			s.ProgressRing = true
		}
		d.Slides = append(d.Slides, s)
	}
	for start := 0; start < count; start += 12 {
		n := start/12 + 1
		d.Sections = append(d.Sections, lectern.Section{
			Number:     n,
			Title:      "Part " + strconv.Itoa(n),
			StartSlide: start,
			EndSlide:   min(start+11, count-1),
		})
	}
	return d
}

func main() {
	scene := lectern.NewScene()
	p := lectern.NewPresenter(scene, buildDeck(),
		lectern.WithWindow(lectern.EbitenWindow{}),
		lectern.WithStats(true),
	)

	scene.Clock().Every(interval, func() { p.Next() })

	if err := lectern.Run(scene, lectern.RunConfig{
		Title:  "lectern - autoplay",
		Width:  screenW,
		Height: screenH,
	}); err != nil {
		log.Fatal(err)
	}
}
