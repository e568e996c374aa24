package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"phpfix/internal/diag"
	"phpfix/internal/source"
)

const tabWidth = 4

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждого diag печатает:
// <path>:<line>:<col>: <SEV> <CODE>: <Message>
// затем контекст строки с подчёркиванием ^~~~ по Span, затем Notes.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	p := newPalette(opts.Color)
	for _, d := range bag.Items() {
		prettyOne(w, d, fs, opts, p)
	}
}

type palette struct {
	sev     map[diag.Severity]*color.Color
	path    *color.Color
	gutter  *color.Color
	caret   *color.Color
	noteTag *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		sev: map[diag.Severity]*color.Color{
			diag.SevError:   color.New(color.FgRed, color.Bold),
			diag.SevWarning: color.New(color.FgYellow, color.Bold),
			diag.SevInfo:    color.New(color.FgCyan, color.Bold),
		},
		path:    color.New(color.Bold),
		gutter:  color.New(color.FgBlue),
		caret:   color.New(color.FgGreen, color.Bold),
		noteTag: color.New(color.FgCyan),
	}
	all := []*color.Color{p.path, p.gutter, p.caret, p.noteTag}
	for _, c := range p.sev {
		all = append(all, c)
	}
	for _, c := range all {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func prettyOne(w io.Writer, d diag.Diagnostic, fs *source.FileSet, opts PrettyOpts, p palette) {
	f := fs.Get(d.Primary.File)
	start, end := fs.Resolve(d.Primary)
	path := formatPath(f, fs, opts.PathMode)

	sevColor := p.sev[d.Severity]
	if sevColor == nil {
		sevColor = p.sev[diag.SevInfo]
	}
	fmt.Fprintf(w, "%s: %s %s: %s\n",
		p.path.Sprintf("%s:%d:%d", path, start.Line, start.Col),
		sevColor.Sprint(d.Severity.String()),
		d.Code.ID(),
		d.Message)

	writeSnippet(w, f, start, end, int(opts.Context), p)

	if !opts.ShowNotes {
		return
	}
	for _, n := range d.Notes {
		nf := fs.Get(n.Span.File)
		ns, _ := fs.Resolve(n.Span)
		fmt.Fprintf(w, "  %s %s:%d:%d: %s\n", p.noteTag.Sprint("note:"), formatPath(nf, fs, opts.PathMode), ns.Line, ns.Col, n.Msg)
	}
}

// writeSnippet prints the primary line with context lines before it and a
// caret line underneath. Columns are display columns: tabs expand and wide
// runes take two cells.
func writeSnippet(w io.Writer, f *source.File, start, end source.LineCol, context int, p palette) {
	if len(f.Content) == 0 {
		return
	}
	first := int(start.Line) - context
	if first < 1 {
		first = 1
	}
	width := len(fmt.Sprint(start.Line))
	for ln := first; ln <= int(start.Line); ln++ {
		line := f.GetLine(uint32(ln))
		fmt.Fprintf(w, " %s %s\n", p.gutter.Sprintf("%*d |", width, ln), expandTabs(line))
	}

	line := f.GetLine(start.Line)
	from := clampCol(int(start.Col)-1, len(line))
	to := len(line)
	if end.Line == start.Line {
		to = clampCol(int(end.Col)-1, len(line))
	}
	pad := runewidth.StringWidth(expandTabs(line[:from]))
	mark := runewidth.StringWidth(expandTabs(line[:to])) - pad
	underline := "^"
	if mark > 1 {
		underline += strings.Repeat("~", mark-1)
	}
	fmt.Fprintf(w, " %s %s%s\n", p.gutter.Sprintf("%*s |", width, ""), strings.Repeat(" ", pad), p.caret.Sprint(underline))
}

func clampCol(c, n int) int {
	if c < 0 {
		return 0
	}
	if c > n {
		return n
	}
	return c
}

func expandTabs(s string) string {
	if !strings.Contains(s, "\t") {
		return s
	}
	var sb strings.Builder
	col := 0
	for _, r := range s {
		if r == '\t' {
			n := tabWidth - col%tabWidth
			sb.WriteString(strings.Repeat(" ", n))
			col += n
			continue
		}
		sb.WriteRune(r)
		col += runewidth.RuneWidth(r)
	}
	return sb.String()
}

func formatPath(f *source.File, fs *source.FileSet, mode PathMode) string {
	switch mode {
	case PathModeAbsolute:
		return f.FormatPath("absolute", "")
	case PathModeRelative:
		return f.FormatPath("relative", fs.BaseDir())
	case PathModeBasename:
		return f.FormatPath("basename", "")
	default:
		return f.FormatPath("auto", "")
	}
}
