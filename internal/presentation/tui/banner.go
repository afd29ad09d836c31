package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

var bannerLines = []struct {
	text  string
	color string
}{
	{"                     _ ", "#f59e0b"},
	{"   ___  __ _ ___  ___| |", "#f97316"},
	{"  / _ \\/ _` / __|/ _ \\ |", "#ef4444"},
	{" |  __/ (_| \\__ \\  __/ |", "#ec4899"},
	{"  \\___|\\__,_|___/\\___|_|", "#a855f7"},
}

// PrintBanner writes the easel banner to w, colored for the detected profile.
func PrintBanner(w io.Writer) {
	p := termenv.ColorProfile()

	fmt.Fprintln(w)
	for _, line := range bannerLines {
		fmt.Fprintln(w, termenv.String(line.text).Foreground(p.Color(line.color)))
	}
	fmt.Fprintln(w)
}
