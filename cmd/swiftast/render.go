package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/you-not-fish/swiftast/internal/driver"
	"github.com/you-not-fish/swiftast/internal/syntax"
)

var (
	colorError = lipgloss.Color("#EF4444") // Red
	colorOK    = lipgloss.Color("#10B981") // Emerald
	colorCaret = lipgloss.Color("#F59E0B") // Amber
	colorMuted = lipgloss.Color("#6B7280") // Gray
)

// styles renders terminal output. The zero value renders plain text.
type styles struct {
	color bool

	location lipgloss.Style
	err      lipgloss.Style
	ok       lipgloss.Style
	caret    lipgloss.Style
	muted    lipgloss.Style
}

func newStyles(color bool) styles {
	return styles{
		color:    color,
		location: lipgloss.NewStyle().Bold(true),
		err:      lipgloss.NewStyle().Foreground(colorError).Bold(true),
		ok:       lipgloss.NewStyle().Foreground(colorOK).Bold(true),
		caret:    lipgloss.NewStyle().Foreground(colorCaret).Bold(true),
		muted:    lipgloss.NewStyle().Foreground(colorMuted),
	}
}

func (s styles) render(st lipgloss.Style, text string) string {
	if !s.color {
		return text
	}
	return st.Render(text)
}

// diagnostic writes d followed by the offending source line and a caret
// under the start of its range.
func (s styles) diagnostic(w io.Writer, d syntax.Diagnostic, src []byte) {
	fmt.Fprintf(w, "%s %s %s\n",
		s.render(s.location, d.Range.Start.String()+":"),
		s.render(s.err, "error:"),
		d.Msg)

	line := sourceLine(src, int(d.Range.Start.Line()))
	if line == "" {
		return
	}
	col := int(d.Range.Start.Col())
	// Tabs keep their width so the caret lines up.
	var pad strings.Builder
	for i, r := range []rune(line) {
		if i >= col-1 {
			break
		}
		if r == '\t' {
			pad.WriteByte('\t')
		} else {
			pad.WriteByte(' ')
		}
	}
	fmt.Fprintf(w, "    %s\n    %s%s\n", s.render(s.muted, line), pad.String(), s.render(s.caret, "^"))
}

// result writes the diagnostics of r, or the read error.
func (s styles) result(w io.Writer, r driver.Result) {
	if r.Err != nil {
		fmt.Fprintf(w, "%s %v\n", s.render(s.err, "error:"), r.Err)
		return
	}
	for _, d := range r.Diags {
		s.diagnostic(w, d, r.Src)
	}
}

// summary writes the closing line of check and watch.
func (s styles) summary(w io.Writer, files, diags, failed int) {
	if failed > 0 {
		fmt.Fprintf(w, "%s %d of %d files failed, %d diagnostics\n", s.render(s.err, "FAIL"), failed, files, diags)
		return
	}
	fmt.Fprintf(w, "%s %d files\n", s.render(s.ok, "ok"), files)
}

// sourceLine returns line n (1-based) of src without its line break.
func sourceLine(src []byte, n int) string {
	lines := strings.Split(string(src), "\n")
	if n < 1 || n > len(lines) {
		return ""
	}
	return strings.TrimRight(lines[n-1], "\r")
}

// formatLiteral formats token text for display, escaping special characters.
func formatLiteral(lit string) string {
	if lit == "" {
		return "\"\""
	}

	var b strings.Builder
	b.WriteRune('"')
	for _, r := range lit {
		switch r {
		case '\n':
			b.WriteString("\\n")
		case '\t':
			b.WriteString("\\t")
		case '\r':
			b.WriteString("\\r")
		case '\\':
			b.WriteString("\\\\")
		case '"':
			b.WriteString("\\\"")
		case 0:
			b.WriteString("\\0")
		default:
			b.WriteRune(r)
		}
	}
	b.WriteRune('"')
	return b.String()
}
