package cli

import (
	"fmt"
	"image/color"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/mpgalab/placeview/pkg/geometry"
	"github.com/mpgalab/placeview/pkg/placement"
	"github.com/mpgalab/placeview/pkg/render"
	"github.com/mpgalab/placeview/pkg/view"
)

// inspectCommand creates the inspect command for interactive placement exploration.
func (c *CLI) inspectCommand() *cobra.Command {
	var palette string

	cmd := &cobra.Command{
		Use:   "inspect [placement.json]",
		Short: "Explore a placement interactively in the terminal",
		Long: `Open a placement file in an interactive terminal viewer.

Move the cursor over the thermal map to identify cells, pan and zoom
the viewport, and read per-cell thermal and power values in the status
line.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, err := placement.ParseFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to parse %s: %w", args[0], err)
			}
			rec.Name = recordName(args[0])

			if palette == "" {
				palette = c.Config.Palette
			}
			rctx, err := render.NewContext(palette, rec)
			if err != nil {
				return err
			}

			m := newInspectModel(rec, rctx)
			p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
			_, err = p.Run()
			return err
		},
	}

	cmd.Flags().StringVar(&palette, "palette", "", "color palette for the thermal map")

	return cmd
}

// =============================================================================
// InspectModel - Interactive placement viewer
// =============================================================================

const (
	inspectPanStep    = 4.0
	inspectStatusRows = 3
)

// InspectModel is the bubbletea model for the interactive placement viewer.
type InspectModel struct {
	Rec    *placement.Record
	Ctx    *render.Context
	Win    view.Window
	Width  int
	Height int

	// Cursor position in viewport character coordinates.
	CursorX int
	CursorY int
}

// newInspectModel creates a viewer model framing the record's full field.
func newInspectModel(rec *placement.Record, rctx *render.Context) InspectModel {
	return InspectModel{
		Rec:    rec,
		Ctx:    rctx,
		Win:    view.FromField(rec.FieldOrDefault()),
		Width:  80,
		Height: 24,
	}
}

func (m InspectModel) Init() tea.Cmd {
	return nil
}

// canvasHeight is the drawable area above the status block.
func (m InspectModel) canvasHeight() int {
	h := m.Height - inspectStatusRows
	if h < 4 {
		h = 4
	}
	return h
}

// cursorPoint maps the cursor to data space. Terminal cells are roughly
// twice as tall as wide, so vertical characters count double to keep the
// mapping visually square.
func (m InspectModel) cursorPoint() geometry.Point {
	pxW := float64(m.Width)
	pxH := float64(m.canvasHeight()) * 2
	return m.Win.FromPixel(float64(m.CursorX)+0.5, (float64(m.CursorY)+0.5)*2, pxW, pxH)
}

func (m InspectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit

		case "left", "h":
			if m.CursorX > 0 {
				m.CursorX--
			}
		case "right", "l":
			if m.CursorX < m.Width-1 {
				m.CursorX++
			}
		case "up", "k":
			if m.CursorY > 0 {
				m.CursorY--
			}
		case "down", "j":
			if m.CursorY < m.canvasHeight()-1 {
				m.CursorY++
			}

		case "shift+left", "H":
			m.Win.Pan(inspectPanStep, 0, float64(m.Width))
		case "shift+right", "L":
			m.Win.Pan(-inspectPanStep, 0, float64(m.Width))
		case "shift+up", "K":
			m.Win.Pan(0, -inspectPanStep, float64(m.Width))
		case "shift+down", "J":
			m.Win.Pan(0, inspectPanStep, float64(m.Width))

		case "+", "=":
			m.Win.Zoom(view.DefaultZoomStep, m.cursorPoint())
		case "-", "_":
			m.Win.Zoom(1/view.DefaultZoomStep, m.cursorPoint())
		case "0":
			m.Win.Reset(m.Rec.FieldOrDefault())
		}

	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		if m.CursorX >= m.Width {
			m.CursorX = m.Width - 1
		}
		if m.CursorY >= m.canvasHeight() {
			m.CursorY = m.canvasHeight() - 1
		}
	}
	return m, nil
}

func (m InspectModel) View() string {
	var b strings.Builder

	canvasH := m.canvasHeight()
	pxW := float64(m.Width)
	pxH := float64(canvasH) * 2

	for row := 0; row < canvasH; row++ {
		for col := 0; col < m.Width; col++ {
			p := m.Win.FromPixel(float64(col)+0.5, (float64(row)+0.5)*2, pxW, pxH)
			cell, ok := placement.FindCellAt(p, m.Rec)

			glyph := " "
			style := lipgloss.NewStyle()
			if ok {
				glyph = "█"
				if cell.HighThermal() {
					glyph = "▓"
				}
				style = style.Foreground(lipglossColor(m.Ctx.ThermalColor(cell.ThermalValue)))
			}
			if col == m.CursorX && row == m.CursorY {
				glyph = "┼"
				style = lipgloss.NewStyle().Foreground(colorCyan).Bold(true)
			}
			b.WriteString(style.Render(glyph))
		}
		b.WriteString("\n")
	}

	b.WriteString(m.statusLine())
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("hjkl/arrows move  HJKL pan  +/- zoom  0 reset  q quit"))

	return b.String()
}

// statusLine describes whatever is under the cursor.
func (m InspectModel) statusLine() string {
	p := m.cursorPoint()
	pos := StyleDim.Render(fmt.Sprintf("(%.1f, %.1f)", p.X, p.Y))

	cell, ok := placement.FindCellAt(p, m.Rec)
	if !ok {
		return pos + "  " + StyleDim.Render("empty")
	}

	name := cell.Name
	if name == "" {
		name = fmt.Sprintf("cell_%d", cell.ID)
	}
	info := fmt.Sprintf("%s (ID: %d)  thermal: %.2f  power: %.2f",
		name, cell.ID, cell.ThermalValue, cell.PowerDensity)
	if cell.HighThermal() {
		info += "  " + StyleWarning.Render("hot")
	}
	return pos + "  " + StyleValue.Render(info)
}

// lipglossColor converts an RGBA fill to a terminal color.
func lipglossColor(c color.RGBA) lipgloss.Color {
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B))
}
