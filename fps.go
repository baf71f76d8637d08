package lectern

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// NewStatsWidget creates a node that shows FPS and TPS plus whatever extra
// returns (for example the slide position and scale). It refreshes about
// twice a second and draws on top of its siblings.
func NewStatsWidget(extra func() string) *Node {
	img := ebiten.NewImage(160, 64)

	node := NewImage("stats_widget", img)
	node.ZIndex = 1 << 20

	elapsed := 0.5
	node.OnUpdate = func(dt float64) {
		elapsed += dt
		if elapsed < 0.5 {
			return
		}
		elapsed = 0

		img.Clear()
		img.Fill(color.RGBA{0, 0, 0, 128})

		msg := fmt.Sprintf("FPS: %.1f\nTPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS())
		if extra != nil {
			msg += "\n" + extra()
		}
		ebitenutil.DebugPrint(img, msg)
	}
	return node
}
