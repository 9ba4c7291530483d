package commands

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/glamour"
)

type outputFormat int

const (
	formatText outputFormat = iota
	formatMarkdown
	formatPretty
)

func pickFormat(markdown, pretty bool) outputFormat {
	switch {
	case pretty:
		return formatPretty
	case markdown:
		return formatMarkdown
	default:
		return formatText
	}
}

// table is a titled grid of cells rendered as aligned text or Markdown.
type table struct {
	title  string
	header []string
	rows   [][]string
	footer string
}

func (t *table) add(cells ...string) {
	t.rows = append(t.rows, cells)
}

func (t *table) write(w io.Writer, format outputFormat) error {
	switch format {
	case formatMarkdown:
		_, err := io.WriteString(w, t.markdown())
		return err
	case formatPretty:
		r, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(100),
		)
		if err != nil {
			return fmt.Errorf("creating renderer: %w", err)
		}
		out, err := r.Render(t.markdown())
		if err != nil {
			return fmt.Errorf("rendering markdown: %w", err)
		}
		_, err = io.WriteString(w, out)
		return err
	default:
		return t.text(w)
	}
}

func (t *table) text(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(t.header, "\t"))
	for _, row := range t.rows {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	if t.footer != "" {
		_, err := fmt.Fprintln(w, t.footer)
		return err
	}
	return nil
}

func (t *table) markdown() string {
	var b strings.Builder
	if t.title != "" {
		fmt.Fprintf(&b, "## %s\n\n", t.title)
	}
	b.WriteString("| " + strings.Join(t.header, " | ") + " |\n")
	sep := make([]string, len(t.header))
	for i := range sep {
		sep[i] = "---"
	}
	b.WriteString("| " + strings.Join(sep, " | ") + " |\n")
	for _, row := range t.rows {
		cells := make([]string, len(row))
		for i, c := range row {
			cells[i] = strings.ReplaceAll(c, "|", `\|`)
		}
		b.WriteString("| " + strings.Join(cells, " | ") + " |\n")
	}
	if t.footer != "" {
		fmt.Fprintf(&b, "\n%s\n", t.footer)
	}
	return b.String()
}
