package preview

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/matzehuels/erdlayout/pkg/layout"
)

// pointsPerInch converts canvas units to Graphviz node sizes.
const pointsPerInch = 72.0

// Options configures DOT output.
type Options struct {
	// Columns lists "name type" rows under each table header. When false
	// only the table name is shown.
	Columns bool
}

// ToDOT converts a layout to DOT. Canvas y grows downward, Graphviz y grows
// upward, so y is flipped around the canvas height. Relationships naming
// unknown tables and self-loops are omitted.
func ToDOT(r layout.Result, opts Options) string {
	height := layout.DefaultHeight
	if r.Bounds != nil {
		height = r.Bounds.Height
	}

	var buf bytes.Buffer
	buf.WriteString("digraph ERD {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  inputscale=72;\n")
	buf.WriteString("  notranslate=true;\n")
	buf.WriteString("  overlap=true;\n")
	buf.WriteString("  splines=true;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=record, style=\"rounded,filled\", fillcolor=white, fixedsize=true, fontsize=11];\n")
	buf.WriteString("  edge [arrowhead=normal, color=\"#555555\"];\n")
	buf.WriteString("\n")

	known := make(map[string]bool, len(r.Tables))
	for _, t := range r.Tables {
		if known[t.Name] {
			continue
		}
		known[t.Name] = true
		cx := t.X + t.Width/2
		cy := height - (t.Y + t.Height/2)
		fmt.Fprintf(&buf, "  %s [label=%s, pos=\"%.2f,%.2f!\", width=%.4f, height=%.4f];\n",
			dotQuote(t.Name), dotQuote(recordLabel(t, opts)), cx, cy, t.Width/pointsPerInch, t.Height/pointsPerInch)
	}

	buf.WriteString("\n")
	for _, rel := range r.Relationships {
		if rel.IsSelfLoop() || !known[rel.From.Table] || !known[rel.To.Table] {
			continue
		}
		fmt.Fprintf(&buf, "  %s -> %s;\n", dotQuote(rel.From.Table), dotQuote(rel.To.Table))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func recordLabel(t layout.PositionedTable, opts Options) string {
	if !opts.Columns || len(t.Columns) == 0 {
		return "{" + escapeRecord(t.Name) + "}"
	}
	rows := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		rows[i] = escapeRecord(c.Name+" "+c.Type) + `\l`
	}
	return "{" + escapeRecord(t.Name) + "|" + strings.Join(rows, "") + "}"
}

var recordEscaper = strings.NewReplacer(
	`\`, `\\`,
	"{", `\{`,
	"}", `\}`,
	"|", `\|`,
	"<", `\<`,
	">", `\>`,
)

// dotQuote quotes s as a DOT string. Backslashes are left alone so that
// record escapes and \l line ends reach Graphviz intact.
func dotQuote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `\"`) + `"`
}

// escapeRecord escapes characters with meaning in record labels.
func escapeRecord(s string) string {
	return recordEscaper.Replace(s)
}
