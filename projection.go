package lectern

// SlidePosition is where a slide sits relative to the active one.
type SlidePosition uint8

const (
	PositionNext   SlidePosition = iota // right of the active slide
	PositionActive                      // on the surface
	PositionPrev                        // stacked off to the left
)

func (p SlidePosition) String() string {
	switch p {
	case PositionActive:
		return "active"
	case PositionPrev:
		return "prev"
	default:
		return "next"
	}
}

// Offset returns the horizontal panel offset, in surface widths.
func (p SlidePosition) Offset() float64 {
	switch p {
	case PositionActive:
		return 0
	case PositionPrev:
		return -1
	default:
		return 1
	}
}

// View is the visual projection of a deck state: one position per slide and
// one indicator flag per slide. It is derived, never stored as state.
type View struct {
	Positions  []SlidePosition
	Indicators []bool
}

// Project computes the view for a deck of total slides with active current.
func Project(current, total int) View {
	v := View{
		Positions:  make([]SlidePosition, total),
		Indicators: make([]bool, total),
	}
	for i := range total {
		switch {
		case i < current:
			v.Positions[i] = PositionPrev
		case i == current:
			v.Positions[i] = PositionActive
			v.Indicators[i] = true
		default:
			v.Positions[i] = PositionNext
		}
	}
	return v
}

// Active returns the index of the active slide, or -1 if none.
func (v View) Active() int {
	for i, p := range v.Positions {
		if p == PositionActive {
			return i
		}
	}
	return -1
}

// Cleared returns a copy of v with the active marker removed; used for the
// refresh cycle that removes and re-applies the marker.
func (v View) Cleared() View {
	c := View{
		Positions:  make([]SlidePosition, len(v.Positions)),
		Indicators: make([]bool, len(v.Indicators)),
	}
	copy(c.Positions, v.Positions)
	for i, p := range c.Positions {
		if p == PositionActive {
			c.Positions[i] = PositionNext
		}
	}
	return c
}
