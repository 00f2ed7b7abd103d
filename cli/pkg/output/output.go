package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/arijbelmabrouk/Convex-Churn-Optimization/common/churn"
)

var (
	successColor = color.New(color.FgGreen, color.Bold)
	errorColor   = color.New(color.FgRed, color.Bold)
	infoColor    = color.New(color.FgCyan)
	warnColor    = color.New(color.FgYellow)
	headerColor  = color.New(color.FgWhite, color.Bold)
	mutedColor   = color.New(color.Faint)

	tierColors = map[string]*color.Color{
		churn.TierHigh.Slug():     color.New(color.FgRed, color.Bold),
		churn.TierElevated.Slug(): color.New(color.FgYellow, color.Bold),
		churn.TierLow.Slug():      color.New(color.FgGreen, color.Bold),
	}
)

func Success(w io.Writer, format string, a ...interface{}) {
	successColor.Fprintf(w, "✓ "+format+"\n", a...)
}

func Error(w io.Writer, format string, a ...interface{}) {
	errorColor.Fprintf(w, "✗ "+format+"\n", a...)
}

func Info(w io.Writer, format string, a ...interface{}) {
	infoColor.Fprintf(w, format+"\n", a...)
}

func Warn(w io.Writer, format string, a ...interface{}) {
	warnColor.Fprintf(w, "⚠ "+format+"\n", a...)
}

func JSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// Assessment prints a tiered prediction: the colored headline, the
// advisory for high risk, and the engine that produced it.
func Assessment(w io.Writer, a churn.Assessment) {
	c, ok := tierColors[a.Tier]
	if !ok {
		c = infoColor
	}
	c.Fprintf(w, "%s: %s\n", a.Headline, a.Percent)
	if a.Advisory != "" {
		Warn(w, "%s", a.Advisory)
	}
	mutedColor.Fprintf(w, "Engine: %s\n", a.Engine)
}

type Table struct {
	headers []string
	rows    [][]string
}

func NewTable(headers []string) *Table {
	return &Table{
		headers: headers,
		rows:    [][]string{},
	}
}

func (t *Table) AddRow(row []string) {
	t.rows = append(t.rows, row)
}

func (t *Table) Render(w io.Writer) {
	// Calculate column widths
	widths := make([]int, len(t.headers))
	for i, header := range t.headers {
		widths[i] = len(header)
	}

	for _, row := range t.rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	for i, header := range t.headers {
		headerColor.Fprintf(w, "%-*s  ", widths[i], header)
	}
	fmt.Fprintln(w)

	for i := range t.headers {
		fmt.Fprint(w, strings.Repeat("-", widths[i])+"  ")
	}
	fmt.Fprintln(w)

	for _, row := range t.rows {
		for i, cell := range row {
			if i >= len(widths) {
				break
			}
			fmt.Fprintf(w, "%-*s  ", widths[i], cell)
		}
		fmt.Fprintln(w)
	}
}
