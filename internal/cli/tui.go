package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/stackchart/pkg/errors"
	chartio "github.com/matzehuels/stackchart/pkg/io"
)

var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorGreen)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
	listHeaderStyle   = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
)

// chartEntry summarises one chart document found on disk.
type chartEntry struct {
	Path     string
	Format   chartio.Format
	Kind     string
	Caption  string
	Datasets int
	Err      error
}

// Valid reports whether the document decoded into a chart.
func (e chartEntry) Valid() bool { return e.Err == nil }

// scanCharts reads every .yaml, .yml, .toml and .json file directly in dir.
func scanCharts(dir string) ([]chartEntry, error) {
	files, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "read %s", dir)
	}
	var out []chartEntry
	for _, f := range files {
		if f.IsDir() {
			continue
		}
		format, err := chartio.ParseFormat(filepath.Ext(f.Name()))
		if err != nil {
			continue
		}
		out = append(out, inspectChart(filepath.Join(dir, f.Name()), format))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out, nil
}

func inspectChart(path string, format chartio.Format) chartEntry {
	e := chartEntry{Path: path, Format: format}
	data, err := os.ReadFile(path)
	if err != nil {
		e.Err = err
		return e
	}
	dec, err := chartio.Decoder(data, format)
	if err != nil {
		e.Err = err
		return e
	}
	var head struct {
		Caption  string `json:"caption" yaml:"caption" toml:"caption"`
		Datasets []struct {
			Name string `json:"name" yaml:"name" toml:"name"`
		} `json:"datasets" yaml:"datasets" toml:"datasets"`
	}
	_ = dec(&head)
	e.Caption, e.Datasets = head.Caption, len(head.Datasets)

	c, err := chartio.ParseChart(data, format)
	if err != nil {
		e.Err = err
		return e
	}
	e.Kind = c.Kind()
	return e
}

// ChartListModel is the bubbletea model for choosing a chart document.
type ChartListModel struct {
	Charts   []chartEntry
	Cursor   int
	Offset   int
	Height   int
	Selected *chartEntry
}

func NewChartListModel(charts []chartEntry) ChartListModel {
	return ChartListModel{Charts: charts, Height: 15}
}

func (m ChartListModel) Init() tea.Cmd { return nil }

func (m ChartListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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
			if m.Cursor < len(m.Charts)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			if len(m.Charts) == 0 || !m.Charts[m.Cursor].Valid() {
				return m, nil
			}
			sel := m.Charts[m.Cursor]
			m.Selected = &sel
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-8, 5)
	}
	return m, nil
}

func (m ChartListModel) View() string {
	var b strings.Builder
	b.WriteString(StyleTitle.Render("Select Chart"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ render  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.Charts))
	var rows [][]string
	for i := m.Offset; i < end; i++ {
		e := m.Charts[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		kind, detail := e.Kind, e.Caption
		if !e.Valid() {
			kind, detail = "-", errors.UserMessage(e.Err)
		}
		rows = append(rows, []string{cursor, filepath.Base(e.Path), kind, string(e.Format), strconv.Itoa(e.Datasets), detail})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "File", "Type", "Format", "Sets", "Caption").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return listHeaderStyle
			}
			i := m.Offset + row
			if i >= len(m.Charts) {
				return lipgloss.NewStyle()
			}
			switch {
			case !m.Charts[i].Valid():
				return listDimStyle
			case i == m.Cursor:
				return listSelectedStyle
			}
			return listNormalStyle
		})
	b.WriteString(t.Render())
	b.WriteString("\n\n")
	if len(m.Charts) > 0 {
		b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Charts))))
	}
	return b.String()
}

func (c *CLI) pickCommand() *cobra.Command {
	var opts renderOpts
	cmd := &cobra.Command{
		Use:   "pick [dir]",
		Short: "Choose a chart document interactively and render it",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			charts, err := scanCharts(dir)
			if err != nil {
				return err
			}
			if len(charts) == 0 {
				return errors.New(errors.ErrCodeFileNotFound, "no chart documents in %s", dir)
			}

			final, err := tea.NewProgram(NewChartListModel(charts), tea.WithContext(cmd.Context())).Run()
			if err != nil {
				return err
			}
			sel := final.(ChartListModel).Selected
			if sel == nil {
				return nil
			}

			runner, err := c.newRunner(cmd.Context(), opts.cache)
			if err != nil {
				return err
			}
			defer runner.Close()
			return c.runRender(cmd.Context(), runner, sel.Path, &opts, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
	opts.register(cmd)
	return cmd
}
