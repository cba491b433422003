package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/erdlayout/pkg/layout"
)

// List styles
var (
	listDimStyle    = lipgloss.NewStyle().Foreground(colorDim)
	listHeaderStyle = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
)

// =============================================================================
// TableListModel - Interactive layout browser
// =============================================================================

// TableListModel is the bubbletea model for browsing the tables of a layout.
type TableListModel struct {
	Tables   []layout.PositionedTable
	Cluster  map[string]int // table name -> 1-based cluster number
	Links    map[string]int // table name -> relationship count
	Cursor   int
	Height   int
	Offset   int
	Expanded bool
}

// NewTableListModel creates a browser over r.
func NewTableListModel(r layout.Result) TableListModel {
	m := TableListModel{
		Tables:  r.Tables,
		Cluster: make(map[string]int, len(r.Tables)),
		Links:   make(map[string]int, len(r.Tables)),
		Height:  15,
	}
	for i, c := range r.Clusters {
		for _, name := range c.Tables {
			m.Cluster[name] = i + 1
		}
	}
	for _, rel := range r.Relationships {
		m.Links[rel.From.Table]++
		if !rel.IsSelfLoop() {
			m.Links[rel.To.Table]++
		}
	}
	return m
}

func (m TableListModel) Init() tea.Cmd {
	return nil
}

func (m TableListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Tables)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter", " ":
			m.Expanded = !m.Expanded
		}
	case tea.WindowSizeMsg:
		m.Height = max(5, msg.Height-8)
	}
	return m, nil
}

func (m TableListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Layout Tables"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ columns  q quit"))
	b.WriteString("\n\n")

	if len(m.Tables) == 0 {
		b.WriteString(listDimStyle.Render("  No tables"))
		b.WriteString("\n")
		return b.String()
	}

	end := min(m.Offset+m.Height, len(m.Tables))
	rows := make([][]string, 0, end-m.Offset)
	for i := m.Offset; i < end; i++ {
		t := m.Tables[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		cluster := "—"
		if n, ok := m.Cluster[t.Name]; ok {
			cluster = fmt.Sprint(n)
		}
		rows = append(rows, []string{
			cursor,
			t.Name,
			cluster,
			fmt.Sprintf("%.0f, %.0f", t.X, t.Y),
			fmt.Sprintf("%.0f×%.0f", t.Width, t.Height),
			fmt.Sprint(len(t.Columns)),
			fmt.Sprint(m.Links[t.Name]),
		})
	}

	tbl := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Table", "Cluster", "Position", "Size", "Cols", "Links").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return listHeaderStyle
			}
			idx := m.Offset + row
			base := lipgloss.NewStyle()
			if idx >= len(m.Tables) {
				return base
			}
			if col >= 2 {
				base = base.Foreground(colorGray)
			}
			if idx == m.Cursor {
				if col == 1 {
					return base.Foreground(colorGreen).Bold(true)
				}
				return base.Bold(true)
			}
			if m.Links[m.Tables[idx].Name] == 0 {
				return base.Foreground(colorDim)
			}
			return base
		})

	b.WriteString(tbl.Render())
	b.WriteString("\n")

	if m.Expanded {
		b.WriteString(m.columnsView(m.Tables[m.Cursor]))
	}

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Tables))))
	return b.String()
}

func (m TableListModel) columnsView(t layout.PositionedTable) string {
	var b strings.Builder
	b.WriteString("\n  ")
	b.WriteString(StyleHighlight.Render(t.Name))
	b.WriteString("\n")
	if len(t.Columns) == 0 {
		b.WriteString(listDimStyle.Render("    (no columns)"))
		b.WriteString("\n")
		return b.String()
	}
	width := 0
	for _, c := range t.Columns {
		width = max(width, len(c.Name))
	}
	for _, c := range t.Columns {
		fmt.Fprintf(&b, "    %s  %s\n",
			StyleValue.Render(fmt.Sprintf("%-*s", width, c.Name)),
			listDimStyle.Render(c.Type))
	}
	return b.String()
}
