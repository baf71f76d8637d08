package lectern

import "testing"

func TestProjectPositions(t *testing.T) {
	v := Project(2, 5)
	want := []SlidePosition{PositionPrev, PositionPrev, PositionActive, PositionNext, PositionNext}
	for i, p := range want {
		if v.Positions[i] != p {
			t.Errorf("slide %d = %v, want %v", i, v.Positions[i], p)
		}
	}
	for i, on := range v.Indicators {
		if on != (i == 2) {
			t.Errorf("indicator %d = %v", i, on)
		}
	}
}

func TestProjectExactlyOneActive(t *testing.T) {
	for total := 1; total <= 6; total++ {
		for cur := 0; cur < total; cur++ {
			v := Project(cur, total)
			active, lit := 0, 0
			for i := range v.Positions {
				if v.Positions[i] == PositionActive {
					active++
				}
				if v.Indicators[i] {
					lit++
				}
			}
			if active != 1 || lit != 1 || v.Active() != cur {
				t.Errorf("Project(%d, %d): %d active, %d lit", cur, total, active, lit)
			}
		}
	}
}

func TestViewCleared(t *testing.T) {
	v := Project(1, 3)
	c := v.Cleared()
	if c.Active() != -1 {
		t.Errorf("cleared view still has active slide %d", c.Active())
	}
	for _, on := range c.Indicators {
		if on {
			t.Error("cleared view has a lit indicator")
		}
	}
	if v.Active() != 1 {
		t.Error("Cleared modified the original view")
	}
	if c.Positions[0] != PositionPrev || c.Positions[2] != PositionNext {
		t.Errorf("cleared positions = %v", c.Positions)
	}
}

func TestSlidePositionOffset(t *testing.T) {
	if PositionPrev.Offset() != -1 || PositionActive.Offset() != 0 || PositionNext.Offset() != 1 {
		t.Error("unexpected offsets")
	}
	if PositionActive.String() != "active" {
		t.Errorf("String() = %q", PositionActive.String())
	}
}
