package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/phanxgames/lectern"
	"github.com/phanxgames/lectern/internal/config"
	"github.com/phanxgames/lectern/internal/deckfile"
	"github.com/phanxgames/lectern/internal/logging"
)

var presentCmd = &cobra.Command{
	Use:   "present DECK",
	Short: "Open a window and present a deck",
	Long: `Presents the deck in a resizable window. Arrow keys, space, page up/down,
home/end and digits navigate. Ctrl+F toggles fullscreen and Escape leaves it.
Swipes and the on-screen arrows and dots also navigate.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(cmd)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		applyPresentFlags(cmd, cfg)
		script, _ := cmd.Flags().GetString("script")

		printBanner(cmd.OutOrStdout())
		p, err := buildPresentation(cfg, args[0], script, lectern.EbitenWindow{})
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		if err := lectern.Run(p.scene, p.run); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(presentCmd)

	presentCmd.Flags().BoolP("fullscreen", "f", false, "Start in fullscreen")
	presentCmd.Flags().Bool("stats", false, "Show the FPS and scale overlay")
	presentCmd.Flags().Bool("debug", false, "Enable debug checks and per-frame stats logging")
	presentCmd.Flags().String("script", "", "Run a YAML/JSON input script and exit when it finishes")
	presentCmd.Flags().String("screenshots", "", "Directory for script screenshots")
}

func applyPresentFlags(cmd *cobra.Command, cfg *config.Config) {
	f := cmd.Flags()
	if f.Changed("fullscreen") {
		cfg.Window.Fullscreen, _ = f.GetBool("fullscreen")
	}
	if f.Changed("stats") {
		cfg.Stats, _ = f.GetBool("stats")
	}
	if f.Changed("debug") {
		cfg.Debug, _ = f.GetBool("debug")
	}
	if dir, _ := f.GetString("screenshots"); dir != "" {
		cfg.ScreenshotDir = dir
	}
}

// presentation is a deck built into a scene and ready to run.
type presentation struct {
	scene     *lectern.Scene
	presenter *lectern.Presenter
	run       lectern.RunConfig
}

func buildPresentation(cfg *config.Config, deckPath, scriptPath string, win lectern.Window) (*presentation, error) {
	deck, err := deckfile.Load(deckPath)
	if err != nil {
		return nil, err
	}
	theme, err := cfg.Theme.Theme()
	if err != nil {
		return nil, err
	}
	log := logging.New(cfg.Level())

	scene := lectern.NewScene()
	scene.SetDebugMode(cfg.Debug)
	scene.ScreenshotDir = cfg.ScreenshotDir

	var runner *lectern.TestRunner
	if scriptPath != "" {
		data, err := os.ReadFile(scriptPath)
		if err != nil {
			return nil, fmt.Errorf("reading script %s: %w", scriptPath, err)
		}
		if runner, err = lectern.LoadTestScript(data); err != nil {
			return nil, fmt.Errorf("script %s: %w", scriptPath, err)
		}
		scene.SetTestRunner(runner)
	}

	title := cfg.Window.Title
	if deck.Title != "" {
		title = deck.Title
	}
	p := lectern.NewPresenter(scene, deck,
		lectern.WithWindow(win),
		lectern.WithLogger(log),
		lectern.WithEventSink(logSink{log: log}),
		lectern.WithTimings(cfg.LecternTimings()),
		lectern.WithTheme(theme),
		lectern.WithStats(cfg.Stats),
	)
	return &presentation{
		scene:     scene,
		presenter: p,
		run: lectern.RunConfig{
			Title:            title,
			Width:            cfg.Window.Width,
			Height:           cfg.Window.Height,
			Fullscreen:       cfg.Window.Fullscreen,
			ExitOnScriptDone: runner != nil,
		},
	}, nil
}

// logSink writes presentation events to the debug log.
type logSink struct {
	log *slog.Logger
}

func (s logSink) EmitSlideEvent(e lectern.SlideEvent) {
	switch e.Type {
	case lectern.EventScaleChanged:
		s.log.Debug("event", "type", e.Type, "scale", e.Scale)
	case lectern.EventFullscreenChanged:
		s.log.Debug("event", "type", e.Type, "fullscreen", e.Fullscreen)
	case lectern.EventSectionShown:
		s.log.Debug("event", "type", e.Type, "section", e.Section, "slide", e.To)
	default:
		s.log.Debug("event", "type", e.Type, "seq", e.Seq, "from", e.From, "to", e.To, "refresh", e.Refresh)
	}
}
