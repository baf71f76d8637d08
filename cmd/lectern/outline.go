package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/phanxgames/lectern/internal/deckfile"
	"github.com/phanxgames/lectern/internal/outline"
)

var outlineCmd = &cobra.Command{
	Use:   "outline DECK",
	Short: "Print the slides and sections of a deck",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		style, _ := cmd.Flags().GetString("style")
		width, _ := cmd.Flags().GetInt("width")
		raw, _ := cmd.Flags().GetBool("raw")
		if err := runOutline(cmd.OutOrStdout(), args[0], style, width, raw); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(outlineCmd)

	outlineCmd.Flags().String("style", "", "glamour style (dark, light, notty); detected when empty")
	outlineCmd.Flags().Int("width", 80, "Word wrap width")
	outlineCmd.Flags().Bool("raw", false, "Print the markdown source instead of rendering it")
}

func runOutline(w io.Writer, path, style string, width int, raw bool) error {
	d, err := deckfile.Load(path)
	if err != nil {
		return err
	}
	if raw {
		_, err = io.WriteString(w, outline.Markdown(d))
		return err
	}
	out, err := outline.Render(d, style, width)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, out)
	return err
}
