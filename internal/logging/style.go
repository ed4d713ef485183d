package logging

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"
)

const (
	colorTeal   = "#3ddbd9"
	colorBlue   = "#4589ff"
	colorLight  = "#78a9ff"
	colorOrange = "#ff832b"
	colorRed    = "#da1e28"
	colorGray   = "#8d8d8d"
)

var (
	fieldStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color(colorLight))
	equalsStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(colorGray))
)

// styledConsole is the terminal writer: colored level badges and field names.
func styledConsole(out io.Writer) zerolog.ConsoleWriter {
	return zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: time.TimeOnly,

		FormatLevel: func(i any) string {
			lvl := strings.ToLower(fmt.Sprint(i))

			return lipgloss.NewStyle().
				Foreground(lipgloss.Color("#ffffff")).
				Background(lipgloss.Color(levelColor(lvl))).
				Padding(0, 1).
				Render(levelLabel(lvl))
		},

		FormatFieldName: func(i any) string {
			return fieldStyle.Render(fmt.Sprint(i)) + equalsStyle.Render("=")
		},
	}
}

func levelColor(lvl string) string {
	switch lvl {
	case "debug", "trace":
		return colorTeal
	case "info":
		return colorBlue
	case "warn":
		return colorOrange
	case "error", "fatal", "panic":
		return colorRed
	default:
		return colorGray
	}
}

func levelLabel(lvl string) string {
	if len(lvl) < 3 {
		return strings.ToUpper(lvl)
	}

	return strings.ToUpper(lvl[:3])
}
