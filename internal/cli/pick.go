package cli

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/scenesnap/scenesnap/pkg/pipeline"
	"github.com/scenesnap/scenesnap/pkg/scene"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// pickCommand creates the pick command for interactive selection.
func (c *CLI) pickCommand() *cobra.Command {
	var (
		output  string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "pick [file-or-url]",
		Short: "Interactively choose selection roots from the document tree",
		Long: `Interactively choose selection roots from the document tree.

The pick command loads a scene document, shows its node tree, and lets you
mark nodes with the space bar. Confirming with enter serializes the marked
nodes as the selection, exactly like 'snapshot --select'.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runPick(cmd.Context(), args[0], output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

// runPick loads the document, runs the picker, and serializes the choice.
func (c *CLI) runPick(ctx context.Context, input string, output string, noCache bool) error {
	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	doc, _, err := runner.Load(ctx, pipeline.Options{Input: input, Logger: c.Logger})
	if err != nil {
		return fmt.Errorf("load document: %w", err)
	}
	if len(doc.Nodes) == 0 {
		printWarning("Document has no nodes")
		return nil
	}

	model := NewNodePickerModel(doc)
	final, err := tea.NewProgram(model, tea.WithContext(ctx)).Run()
	if err != nil {
		return fmt.Errorf("picker: %w", err)
	}

	picked := final.(NodePickerModel).SelectedIDs()
	if len(picked) == 0 {
		printInfo("Nothing selected")
		return nil
	}

	return c.runSnapshot(ctx, input, picked, output, noCache, false)
}

// =============================================================================
// NodePickerModel - Interactive node selection
// =============================================================================

// nodeItem is one row of the flattened document tree.
type nodeItem struct {
	id    string
	name  string
	typ   string
	depth int
}

// NodePickerModel is the bubbletea model for interactive node selection.
type NodePickerModel struct {
	PageName string
	Items    []nodeItem
	Cursor   int
	Marked   map[int]bool
	Height   int
	Offset   int
}

// NewNodePickerModel flattens the document forest into picker rows.
func NewNodePickerModel(doc *scene.Document) NodePickerModel {
	m := NodePickerModel{
		PageName: doc.Page.Name,
		Marked:   make(map[int]bool),
		Height:   15,
	}
	for _, n := range doc.Nodes {
		m.Items = appendItems(m.Items, n, 0)
	}
	return m
}

func appendItems(items []nodeItem, n *scene.Node, depth int) []nodeItem {
	items = append(items, nodeItem{id: n.ID, name: n.Name, typ: string(n.Type), depth: depth})
	for _, child := range n.Children {
		items = appendItems(items, child, depth+1)
	}
	return items
}

// SelectedIDs returns the marked node ids in tree order.
func (m NodePickerModel) SelectedIDs() []string {
	var ids []string
	for i, item := range m.Items {
		if m.Marked[i] {
			ids = append(ids, item.id)
		}
	}
	return ids
}

func (m NodePickerModel) Init() tea.Cmd {
	return nil
}

func (m NodePickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.Marked = make(map[int]bool)
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Items)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case " ":
			if m.Marked[m.Cursor] {
				delete(m.Marked, m.Cursor)
			} else {
				m.Marked[m.Cursor] = true
			}
		case "enter":
			if len(m.Marked) == 0 {
				m.Marked[m.Cursor] = true
			}
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 6
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m NodePickerModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Nodes"))
	b.WriteString(" ")
	b.WriteString(listDimStyle.Render(m.PageName))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  space mark  ⏎ confirm  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Items) {
		end = len(m.Items)
	}

	for i := m.Offset; i < end; i++ {
		item := m.Items[i]

		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		mark := "[ ]"
		if m.Marked[i] {
			mark = "[" + StyleSuccess.Render("✓") + "]"
		}

		indent := strings.Repeat("  ", item.depth)
		line := fmt.Sprintf("%s%s %s%s  %s", cursor, mark, indent, item.name,
			listDimStyle.Render(item.typ+" · "+item.id))

		if i == m.Cursor {
			b.WriteString(listSelectedStyle.Render(line))
		} else if m.Marked[i] {
			b.WriteString(listNormalStyle.Render(line))
		} else {
			b.WriteString(listDimStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d] %d marked", m.Cursor+1, len(m.Items), len(m.Marked))))

	return b.String()
}
