// Package output renders command results in the format the user asked for.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/leapstack-labs/leaptable/pkg/result"
)

// Mode is an output format.
type Mode string

// Output modes.
const (
	ModeAuto     Mode = "auto"
	ModeTable    Mode = "table"
	ModeJSON     Mode = "json"
	ModeYAML     Mode = "yaml"
	ModeCSV      Mode = "csv"
	ModeMarkdown Mode = "markdown"
)

// Renderer writes results to an output stream.
type Renderer struct {
	out  io.Writer
	err  io.Writer
	mode Mode
}

// NewRenderer creates a renderer. ModeAuto resolves to a table on a terminal
// and markdown otherwise.
func NewRenderer(out, errOut io.Writer, mode Mode) *Renderer {
	if mode == "" || mode == ModeAuto {
		mode = ModeMarkdown
		if isTerminal(out) {
			mode = ModeTable
		}
	}
	return &Renderer{out: out, err: errOut, mode: mode}
}

// Mode returns the resolved output mode.
func (r *Renderer) Mode() Mode {
	return r.mode
}

// Out returns the output writer.
func (r *Renderer) Out() io.Writer {
	return r.out
}

// Println writes a status line. Structured modes keep stdout machine-readable,
// so status goes to the error stream there.
func (r *Renderer) Println(a ...any) {
	w := r.out
	if r.structured() {
		w = r.err
	}
	_, _ = fmt.Fprintln(w, a...)
}

// Rows renders result rows. Tabular modes keep every cell in order; JSON and
// YAML emit one object per row, so duplicate column names collapse to the
// first occurrence.
func (r *Renderer) Rows(rows []result.Row) error {
	switch r.mode {
	case ModeJSON:
		return r.json(rowMaps(rows))
	case ModeYAML:
		return r.yaml(rowMaps(rows))
	}

	if len(rows) == 0 {
		if r.mode != ModeCSV {
			_, _ = fmt.Fprintln(r.out, "(0 rows)")
		}
		return nil
	}

	t := r.newTable()
	header := make(table.Row, 0, rows[0].Len())
	for _, name := range rows[0].Names() {
		header = append(header, name)
	}
	t.AppendHeader(header)
	for _, row := range rows {
		cells := make(table.Row, 0, row.Len())
		for _, v := range row.Values() {
			cells = append(cells, FormatValue(v))
		}
		t.AppendRow(cells)
	}
	r.render(t)

	if r.mode == ModeTable {
		_, _ = fmt.Fprintf(r.out, "(%d rows)\n", len(rows))
	}
	return nil
}

// Value renders any structured value: JSON and YAML encode it, other modes
// fall back to a key/value table built by the caller.
func (r *Renderer) Value(v any, fallback func(t table.Writer)) error {
	switch r.mode {
	case ModeJSON:
		return r.json(v)
	case ModeYAML:
		return r.yaml(v)
	}
	t := r.newTable()
	fallback(t)
	r.render(t)
	return nil
}

func (r *Renderer) structured() bool {
	return r.mode == ModeJSON || r.mode == ModeYAML || r.mode == ModeCSV
}

func (r *Renderer) newTable() table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(r.out)
	t.SetStyle(table.StyleLight)
	return t
}

func (r *Renderer) render(t table.Writer) {
	switch r.mode {
	case ModeCSV:
		t.RenderCSV()
	case ModeMarkdown:
		t.RenderMarkdown()
	default:
		t.Render()
	}
}

func (r *Renderer) json(v any) error {
	enc := json.NewEncoder(r.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (r *Renderer) yaml(v any) error {
	enc := yaml.NewEncoder(r.out)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

func rowMaps(rows []result.Row) []map[string]any {
	out := make([]map[string]any, len(rows))
	for i, row := range rows {
		out[i] = row.Map()
	}
	return out
}

// FormatValue renders a cell for tabular output.
func FormatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return "NULL"
	case time.Time:
		return val.Format(time.RFC3339)
	default:
		return fmt.Sprintf("%v", val)
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
