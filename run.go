package lectern

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// RunConfig holds window and loop settings for Run.
type RunConfig struct {
	Title      string
	Width      int
	Height     int
	Fullscreen bool
	// ExitOnScriptDone ends the loop once an attached TestRunner finishes.
	ExitOnScriptDone bool
}

// EbitenWindow is the Window backed by ebiten's global window state.
type EbitenWindow struct{}

// IsFullscreen implements Window.
func (EbitenWindow) IsFullscreen() bool { return ebiten.IsFullscreen() }

// SetFullscreen implements Window.
func (EbitenWindow) SetFullscreen(fs bool) { ebiten.SetFullscreen(fs) }

// DeviceScaleFactor implements Window.
func (EbitenWindow) DeviceScaleFactor() float64 {
	if m := ebiten.Monitor(); m != nil {
		return m.DeviceScaleFactor()
	}
	return 1
}

// game adapts a Scene to ebiten.Game.
type game struct {
	scene *Scene
	cfg   RunConfig
}

func (g *game) Update() error {
	g.scene.Update()
	if g.cfg.ExitOnScriptDone && g.scene.testRunner != nil && g.scene.testRunner.Done() {
		return ebiten.Termination
	}
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	g.scene.Draw(screen)
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.scene.SetViewport(float64(outsideWidth), float64(outsideHeight))
	return outsideWidth, outsideHeight
}

// Run opens a resizable window and runs the scene until the window closes.
// Build the presentation with NewPresenter first, passing EbitenWindow{} via
// WithWindow so fullscreen changes reach it.
func Run(scene *Scene, cfg RunConfig) error {
	if cfg.Width <= 0 {
		cfg.Width = 1280
	}
	if cfg.Height <= 0 {
		cfg.Height = 720
	}
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetFullscreen(cfg.Fullscreen)
	return ebiten.RunGame(&game{scene: scene, cfg: cfg})
}
