// Package deckfile reads lectern decks from YAML files whose slide bodies
// are written in markdown.
//
// A deck file looks like this:
//
//	title: Quarterly review
//	sections:
//	  - number: 1
//	    icon: "📈"
//	    title: Growth
//	    start: 1
//	    end: 3
//	slides:
//	  - id: intro
//	    title: Welcome
//	    body: |
//	      # Where we are
//	      - shipped the **new** editor
//	    numbers:
//	      - element: users
//	        target: 42
//	        suffix: k
//	        label: Active users
//	    progress_ring: true
//
// Section start and end are zero-based slide indexes, inclusive.
package deckfile

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/phanxgames/lectern"
	"github.com/phanxgames/lectern/internal/config"
)

// Deck validation errors. Validate wraps them with the offending slide or
// section, so match them with errors.Is.
var (
	ErrNoSlides       = errors.New("deck has no slides")
	ErrSectionRange   = errors.New("section range outside the deck")
	ErrSectionOverlap = errors.New("sections overlap")
	ErrDuplicateID    = errors.New("duplicate slide id")
)

// File is the on-disk shape of a deck.
type File struct {
	Title    string        `yaml:"title"`
	Sections []SectionFile `yaml:"sections"`
	Slides   []SlideFile   `yaml:"slides"`
}

// SectionFile is one entry of the sections list.
type SectionFile struct {
	Number      int    `yaml:"number"`
	Icon        string `yaml:"icon"`
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Label       string `yaml:"label"`
	Start       int    `yaml:"start"`
	End         int    `yaml:"end"`
}

// SlideFile is one entry of the slides list.
type SlideFile struct {
	ID           string       `yaml:"id"`
	Title        string       `yaml:"title"`
	Body         string       `yaml:"body"`
	Numbers      []NumberFile `yaml:"numbers"`
	ProgressRing bool         `yaml:"progress_ring"`
	IndexCards   bool         `yaml:"index_cards"`
	Active       bool         `yaml:"active"`
	Background   string       `yaml:"background"`
}

// NumberFile describes an animated counter.
type NumberFile struct {
	Element string `yaml:"element"`
	Target  int    `yaml:"target"`
	Suffix  string `yaml:"suffix"`
	Label   string `yaml:"label"`
}

// Load reads and parses the deck file at path.
func Load(path string) (*lectern.Deck, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading deck %s: %w", path, err)
	}
	d, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("deck %s: %w", path, err)
	}
	return d, nil
}

// Parse decodes a deck file, converts the markdown bodies to blocks and
// validates the result.
func Parse(data []byte) (*lectern.Deck, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing deck: %w", err)
	}
	d, err := f.Deck()
	if err != nil {
		return nil, err
	}
	if err := Validate(d); err != nil {
		return nil, err
	}
	return d, nil
}

// Deck converts the file to a lectern.Deck without validating it.
func (f *File) Deck() (*lectern.Deck, error) {
	d := &lectern.Deck{Title: f.Title}
	for i, sf := range f.Slides {
		s := lectern.Slide{
			ID:           sf.ID,
			Title:        sf.Title,
			Blocks:       Blocks([]byte(sf.Body)),
			ProgressRing: sf.ProgressRing,
			IndexCards:   sf.IndexCards,
			Active:       sf.Active,
		}
		if sf.Background != "" {
			c, err := config.ParseColor(sf.Background)
			if err != nil {
				return nil, fmt.Errorf("slide %d background %q: %w", i, sf.Background, err)
			}
			s.Background = &c
		}
		for j, nf := range sf.Numbers {
			el := nf.Element
			if el == "" {
				el = "number_" + strconv.Itoa(j)
			}
			s.Numbers = append(s.Numbers, lectern.NumberTarget{
				Element: el,
				Target:  nf.Target,
				Suffix:  nf.Suffix,
				Label:   nf.Label,
			})
		}
		d.Slides = append(d.Slides, s)
	}
	for i, sf := range f.Sections {
		num := sf.Number
		if num == 0 {
			num = i + 1
		}
		d.Sections = append(d.Sections, lectern.Section{
			Number:      num,
			Icon:        sf.Icon,
			Title:       sf.Title,
			Description: sf.Description,
			Label:       sf.Label,
			StartSlide:  sf.Start,
			EndSlide:    sf.End,
		})
	}
	return d, nil
}

// Validate reports structural problems the controllers assume away: an
// empty deck, duplicate slide ids, sections outside the deck and
// overlapping sections.
func Validate(d *lectern.Deck) error {
	if len(d.Slides) == 0 {
		return ErrNoSlides
	}
	ids := make(map[string]int, len(d.Slides))
	for i, s := range d.Slides {
		if s.ID == "" {
			continue
		}
		if prev, ok := ids[s.ID]; ok {
			return fmt.Errorf("slides %d and %d use %q: %w", prev, i, s.ID, ErrDuplicateID)
		}
		ids[s.ID] = i
	}

	secs := make([]lectern.Section, len(d.Sections))
	copy(secs, d.Sections)
	for _, s := range secs {
		if s.StartSlide < 0 || s.EndSlide >= len(d.Slides) || s.StartSlide > s.EndSlide {
			return fmt.Errorf("section %d covers %d-%d of %d slides: %w",
				s.Number, s.StartSlide, s.EndSlide, len(d.Slides), ErrSectionRange)
		}
	}
	sort.SliceStable(secs, func(i, j int) bool { return secs[i].StartSlide < secs[j].StartSlide })
	for i := 1; i < len(secs); i++ {
		if secs[i].StartSlide <= secs[i-1].EndSlide {
			return fmt.Errorf("section %d starts at slide %d inside section %d: %w",
				secs[i].Number, secs[i].StartSlide, secs[i-1].Number, ErrSectionOverlap)
		}
	}
	return nil
}
