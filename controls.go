package lectern

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// SwipeThreshold is the minimum horizontal travel, in screen pixels, for a
// touch gesture to count as a swipe.
const SwipeThreshold = 50.0

// CommandKind identifies a presenter command produced by input mapping.
type CommandKind uint8

const (
	CommandNone CommandKind = iota
	CommandNext
	CommandPrev
	CommandGoTo // Index holds the target slide
	CommandFirst
	CommandLast
	CommandExitFullscreen
	CommandToggleFullscreen
)

// Command is one presenter action.
type Command struct {
	Kind  CommandKind
	Index int
}

// MapKey translates a key press into a presenter command. Keys with no
// binding map to CommandNone.
func MapKey(key ebiten.Key, mods KeyModifiers) Command {
	if key == ebiten.KeyF && mods&(ModCtrl|ModMeta) != 0 {
		return Command{Kind: CommandToggleFullscreen}
	}
	switch key {
	case ebiten.KeyArrowRight, ebiten.KeySpace, ebiten.KeyPageDown:
		return Command{Kind: CommandNext}
	case ebiten.KeyArrowLeft, ebiten.KeyPageUp:
		return Command{Kind: CommandPrev}
	case ebiten.KeyHome:
		return Command{Kind: CommandFirst}
	case ebiten.KeyEnd:
		return Command{Kind: CommandLast}
	case ebiten.KeyEscape:
		return Command{Kind: CommandExitFullscreen}
	}
	if d, ok := digitOf(key); ok && d >= 1 {
		return Command{Kind: CommandGoTo, Index: d - 1}
	}
	return Command{}
}

var digitKeys = [...][2]ebiten.Key{
	{ebiten.KeyDigit0, ebiten.KeyNumpad0},
	{ebiten.KeyDigit1, ebiten.KeyNumpad1},
	{ebiten.KeyDigit2, ebiten.KeyNumpad2},
	{ebiten.KeyDigit3, ebiten.KeyNumpad3},
	{ebiten.KeyDigit4, ebiten.KeyNumpad4},
	{ebiten.KeyDigit5, ebiten.KeyNumpad5},
	{ebiten.KeyDigit6, ebiten.KeyNumpad6},
	{ebiten.KeyDigit7, ebiten.KeyNumpad7},
	{ebiten.KeyDigit8, ebiten.KeyNumpad8},
	{ebiten.KeyDigit9, ebiten.KeyNumpad9},
}

func digitOf(key ebiten.Key) (int, bool) {
	for d, keys := range digitKeys {
		if key == keys[0] || key == keys[1] {
			return d, true
		}
	}
	return 0, false
}

// DetectSwipe classifies a completed touch gesture by its total displacement.
// A mostly-horizontal movement longer than SwipeThreshold to the left maps to
// CommandNext, to the right to CommandPrev; anything else is CommandNone.
func DetectSwipe(dx, dy float64) Command {
	adx := math.Abs(dx)
	if adx <= SwipeThreshold || adx <= math.Abs(dy) {
		return Command{}
	}
	if dx < 0 {
		return Command{Kind: CommandNext}
	}
	return Command{Kind: CommandPrev}
}
