package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/phanxgames/lectern/internal/deckfile"
)

var validateCmd = &cobra.Command{
	Use:   "validate DECK...",
	Short: "Check deck files for consistency",
	Long:  `Parses each deck and reports empty decks, duplicate slide ids and sections that overlap or fall outside the deck.`,
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := runValidate(cmd.OutOrStdout(), args); err != nil {
			fmt.Printf("Validation failed: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

// runValidate checks every deck and returns the number of failures as an
// error once all of them have been reported.
func runValidate(w io.Writer, paths []string) error {
	failed := 0
	for _, path := range paths {
		d, err := deckfile.Load(path)
		if err != nil {
			fmt.Fprintf(w, "✗ %v\n", err)
			failed++
			continue
		}
		fmt.Fprintf(w, "✓ %s: %d slides, %d sections\n", path, d.Total(), len(d.Sections))
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d decks invalid", failed, len(paths))
	}
	return nil
}
