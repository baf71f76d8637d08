package main

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

var bannerLines = []struct {
	text  string
	color string
}{
	{"  _           _", "#7dd3fc"},
	{" | | ___  ___| |_ ___ _ __ _ __", "#38bdf8"},
	{" | |/ _ \\/ __| __/ _ \\ '__| '_ \\", "#0ea5e9"},
	{" | |  __/ (__| ||  __/ |  | | | |", "#0284c7"},
	{" |_|\\___|\\___|\\__\\___|_|  |_| |_|", "#0369a1"},
}

// printBanner writes the lectern logo, colored when w is a capable terminal.
func printBanner(w io.Writer) {
	out := termenv.NewOutput(w)
	fmt.Fprintln(w)
	for _, l := range bannerLines {
		fmt.Fprintln(w, out.String(l.text).Foreground(out.Color(l.color)))
	}
	fmt.Fprintln(w)
}
