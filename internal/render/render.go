// Package render turns answer documents into plain text, styled terminal
// output or HTML fragments.
package render

import (
	"fmt"
	"html"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Format selects an output flavour.
type Format string

const (
	FormatPlain Format = "plain"
	FormatTerm  Format = "term"
	FormatHTML  Format = "html"
)

// ParseFormat validates a format name. Empty means FormatTerm.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "term", "terminal":
		return FormatTerm, nil
	case "plain", "text":
		return FormatPlain, nil
	case "html":
		return FormatHTML, nil
	default:
		return "", fmt.Errorf("unsupported format: %s (use plain|term|html)", s)
	}
}

// Span is a run of text, optionally emphasised.
type Span struct {
	Text string
	Bold bool
}

// Line is one output line.
type Line []Span

// Doc is an ordered list of lines.
type Doc []Line

// T is a plain span.
func T(s string) Span { return Span{Text: s} }

// B is an emphasised span.
func B(s string) Span { return Span{Text: s, Bold: true} }

// L builds a line from spans.
func L(spans ...Span) Line { return Line(spans) }

// Text builds a single-line document of unstyled text.
func Text(s string) Doc { return Doc{L(T(s))} }

var bold = lipgloss.NewStyle().Bold(true)

// Render writes d in format f.
func (d Doc) Render(f Format) string {
	sep := "\n"
	if f == FormatHTML {
		sep = "<br>\n"
	}
	lines := make([]string, 0, len(d))
	for _, ln := range d {
		var b strings.Builder
		for _, sp := range ln {
			b.WriteString(span(sp, f))
		}
		lines = append(lines, b.String())
	}
	return strings.Join(lines, sep)
}

// String is the plain rendering.
func (d Doc) String() string { return d.Render(FormatPlain) }

func span(sp Span, f Format) string {
	switch f {
	case FormatHTML:
		s := html.EscapeString(sp.Text)
		if sp.Bold {
			return "<b>" + s + "</b>"
		}
		return s
	case FormatTerm:
		if sp.Bold {
			return bold.Render(sp.Text)
		}
		return sp.Text
	default:
		return sp.Text
	}
}
