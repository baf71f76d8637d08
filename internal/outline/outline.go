// Package outline renders a deck as a terminal outline for `lectern outline`.
package outline

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/phanxgames/lectern"
)

// Markdown lists the deck's slides grouped under their sections.
func Markdown(d *lectern.Deck) string {
	var b strings.Builder
	title := d.Title
	if title == "" {
		title = "Untitled deck"
	}
	fmt.Fprintf(&b, "# %s\n\n", title)
	fmt.Fprintf(&b, "%s, %s\n\n", plural(d.Total(), "slide"), plural(len(d.Sections), "section"))

	open := false
	for i, s := range d.Slides {
		if sec, ok := d.SectionStartingAt(i); ok {
			fmt.Fprintf(&b, "\n## %s\n\n", sectionHeading(sec))
			if sec.Description != "" {
				fmt.Fprintf(&b, "%s\n\n", sec.Description)
			}
			open = true
		} else if _, in := d.SectionOf(i); !in && open {
			b.WriteString("\n---\n\n")
			open = false
		}
		fmt.Fprintf(&b, "%d. %s\n", i+1, slideLine(s))
	}
	return b.String()
}

func sectionHeading(s lectern.Section) string {
	h := strconv.Itoa(s.Number) + ". " + s.Title
	if s.Icon != "" {
		h = s.Icon + " " + h
	}
	return h
}

func slideLine(s lectern.Slide) string {
	label := s.Title
	if label == "" {
		for _, b := range s.Blocks {
			if b.Text != "" {
				label = b.Text
				break
			}
		}
	}
	if label == "" {
		label = "(untitled)"
	}
	line := "**" + label + "**"
	if s.ID != "" {
		line += " `" + s.ID + "`"
	}

	var tags []string
	for _, n := range s.Numbers {
		tag := strconv.Itoa(n.Target) + n.Suffix
		if n.Label != "" {
			tag += " " + n.Label
		}
		tags = append(tags, tag)
	}
	if s.ProgressRing {
		tags = append(tags, "progress ring")
	}
	if s.IndexCards {
		tags = append(tags, "section index")
	}
	if s.Active {
		tags = append(tags, "starts here")
	}
	if len(tags) > 0 {
		line += " _(" + strings.Join(tags, ", ") + ")_"
	}
	return line
}

func plural(n int, word string) string {
	if n == 1 {
		return "1 " + word
	}
	return strconv.Itoa(n) + " " + word + "s"
}

// Render renders the outline for a terminal. An empty style picks light or
// dark automatically; otherwise style names a glamour standard style such
// as "dark", "light" or "notty".
func Render(d *lectern.Deck, style string, width int) (string, error) {
	opts := []glamour.TermRendererOption{glamour.WithWordWrap(width)}
	if style == "" {
		opts = append(opts, glamour.WithAutoStyle())
	} else {
		opts = append(opts, glamour.WithStandardStyle(style))
	}
	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return "", fmt.Errorf("creating renderer: %w", err)
	}
	out, err := r.Render(Markdown(d))
	if err != nil {
		return "", fmt.Errorf("rendering outline: %w", err)
	}
	return out, nil
}
