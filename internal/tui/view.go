package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"geoenvelope/internal/envelope"
)

const (
	sidebarWidth = 28
	headerHeight = 1
	footerHeight = 2
)

// layout is the screen geometry shared by View and mouse tracking.
type layout struct {
	contentW, contentH int
	sidebarW           int
	mapX, mapY         int // map origin in terminal cells
	mapW, mapH         int
}

func (m Model) layout() layout {
	lo := layout{
		contentW: max(10, m.width),
		contentH: max(4, m.height-headerHeight-footerHeight),
		mapY:     headerHeight,
	}
	if m.showSidebar {
		lo.sidebarW = sidebarWidth
		lo.mapX = sidebarWidth + 1
	}
	lo.mapW = max(10, lo.contentW-lo.sidebarW-1)
	lo.mapH = lo.contentH
	return lo
}

// inMap reports whether terminal cell (x, y) lies on the map and returns it
// relative to the map origin.
func (lo layout) inMap(x, y int) (int, int, bool) {
	cx, cy := x-lo.mapX, y-lo.mapY
	return cx, cy, cx >= 0 && cx < lo.mapW && cy >= 0 && cy < lo.mapH
}

func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	lo := m.layout()

	header := titleStyle.Render(" envelope ─ bounding boxes in the terminal ")
	header = lipgloss.NewStyle().Width(lo.contentW).Render(header)

	popup := ""
	if m.inspectPopup != "" && !m.showAttrs {
		box := popupStyle.MaxWidth(max(20, min(52, lo.contentW/2))).Render(m.inspectPopup)
		popup = lipgloss.Place(lo.contentW, lo.contentH, lipgloss.Left, lipgloss.Center, box)
	}

	body := m.renderMapArea(lo)
	if m.showSidebar {
		m.l.SetSize(sidebarWidth-2, lo.contentH-2)
		sidebar := lipgloss.NewStyle().Width(lo.sidebarW).Render(m.l.View())
		body = lipgloss.JoinHorizontal(lipgloss.Top, sidebar, " ", body)
	}

	ui := lipgloss.JoinVertical(lipgloss.Left, header, popup, body, m.renderFooter(lo))
	return appStyle.Width(lo.contentW).Height(m.height).Render(ui)
}

// renderMapArea draws whichever of the attribute table, the paste box or the
// map currently owns the map column.
func (m Model) renderMapArea(lo layout) string {
	if m.showAttrs {
		colW := 0
		for _, c := range m.tbl.Columns() {
			colW += c.Width + 3
		}
		if colW == 0 {
			colW = min(60, lo.contentW-6)
		}
		boxW := min(lo.mapW, max(32, colW))
		m.tbl.SetWidth(boxW - 4)
		m.tbl.SetHeight(min(lo.mapH-2, 20))
		attrs := boxStyle.Width(boxW).Render(m.tbl.View())
		return lipgloss.Place(lo.mapW, lo.mapH, lipgloss.Center, lipgloss.Center, attrs)
	}
	var canvas string
	if m.pasteMode {
		m.ta.SetWidth(lo.mapW)
		m.ta.SetHeight(min(lo.mapH, 12))
		canvas = m.ta.View()
	} else {
		canvas = m.renderAsciiMap(lo.mapW, lo.mapH)
	}
	return lipgloss.NewStyle().Width(lo.mapW).Height(lo.mapH).Render(canvas)
}

// renderFooter lays out status and help on the left and the hovered
// position on the right.
func (m Model) renderFooter(lo layout) string {
	left := lipgloss.JoinHorizontal(lipgloss.Bottom, dimStyle.Render(" "+m.status+" "), m.renderHelp())
	coords := ""
	if m.hoverHasGeo {
		coords = fmt.Sprintf("  lon=%.5f lat=%.5f  ", m.hoverLon, m.hoverLat)
		if !m.ref.IsEmpty() {
			in := m.ref.ContainsPoint(envelope.Point{m.hoverLon, m.hoverLat})
			coords = fmt.Sprintf("  in ref=%v", in) + coords
		}
		coords = dimStyle.Render(coords)
	}
	spacerW := max(0, lo.contentW-lipgloss.Width(left)-lipgloss.Width(coords))
	right := lipgloss.Place(spacerW+lipgloss.Width(coords), 1, lipgloss.Right, lipgloss.Center, coords)
	return lipgloss.NewStyle().Width(lo.contentW).Render(lipgloss.JoinHorizontal(lipgloss.Bottom, left, right))
}

func (m Model) renderHelp() string {
	if !m.helpVisible {
		return ""
	}
	keys := []string{
		"↑↓←→ pan",
		"+/- zoom",
		"Tab sidebar",
		"Enter open",
		"p paste",
		"a attrs",
		"i inspect",
		"l layers",
		"o outline",
		"[/] radius",
		"r pin ref",
		"g great-circle",
		"h help",
		"q quit",
	}
	return dimStyle.Render("  " + strings.Join(keys, "  "))
}
