package tui

import (
	"fmt"
	"path/filepath"
	"strings"

	list "github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"geoenvelope/internal/geom"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.showSidebar {
			m.l.SetSize(sidebarWidth-2, m.layout().contentH-2)
		}
	case tea.KeyMsg:
		// If list is visible and filtering, send keys to list and ignore global commands
		if m.showSidebar && m.l.FilterState() == list.Filtering {
			var cmd tea.Cmd
			m.l, cmd = m.l.Update(msg)
			return m, cmd
		}
		if m.pasteMode {
			return m.updatePaste(msg)
		}
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "1":
			m.showPoints = !m.showPoints
			m.status = fmt.Sprintf("points: %v", m.showPoints)
		case "2":
			m.showLines = !m.showLines
			m.status = fmt.Sprintf("lines: %v", m.showLines)
		case "3":
			m.showPolys = !m.showPolys
			m.status = fmt.Sprintf("polys: %v", m.showPolys)
		case "o":
			m.showOutline = !m.showOutline
			m.status = fmt.Sprintf("outline: %v", m.showOutline)
		case "+", "=":
			if m.zoom < 64 {
				m.zoom *= 1.2
				m.status = fmt.Sprintf("zoom: %.2fx", m.zoom)
			}
		case "-", "_":
			if m.zoom > 0.05 {
				m.zoom /= 1.2
				m.status = fmt.Sprintf("zoom: %.2fx", m.zoom)
			}
		case "[":
			if m.radiusIdx > 0 {
				m.radiusIdx--
			}
			m.status = fmt.Sprintf("radius: %g  expanded: %s", m.radius(), m.expanded())
		case "]":
			if m.radiusIdx < len(radiusSteps)-1 {
				m.radiusIdx++
			}
			m.status = fmt.Sprintf("radius: %g  expanded: %s", m.radius(), m.expanded())
		case "g":
			m.gc = !m.gc
			if m.gc {
				m.status = "metrics: great-circle (meters)"
			} else {
				m.status = "metrics: planar (layer units)"
			}
		case "r":
			if m.layer.Envelope.IsEmpty() {
				m.ref, m.refName = m.layer.Envelope, ""
				m.status = "reference cleared"
				break
			}
			m.ref = m.layer.Envelope
			m.refName = filepath.Base(m.selPath)
			if m.selPath == "" {
				m.refName = "<pasted>"
			}
			m.status = "reference: " + m.refName + " " + m.ref.String()
		case "tab":
			m.showSidebar = !m.showSidebar
			if m.showSidebar {
				m.refreshDir()
				m.l.SetSize(sidebarWidth-2, m.layout().contentH-2)
			}
		case "p":
			m.pasteMode = true
			m.ta.SetValue("")
			m.status = "paste mode"
			m.ta.Focus()
		case "h":
			m.helpVisible = !m.helpVisible
		case "a":
			m.showAttrs = !m.showAttrs
			if m.showAttrs {
				m.refreshAttrsFromCurrent()
			}
		case "i":
			if m.inspectPopup != "" {
				m.inspectPopup = ""
				break
			}
			m.inspectPopup = strings.Join(m.inspectLines(), "\n")
			m.status = "inspect popup"
		case "esc":
			m.inspectPopup = ""
		case "l":
			// toggle all layers
			all := m.showPoints && m.showLines && m.showPolys
			m.showPoints = !all
			m.showLines = !all
			m.showPolys = !all
			m.status = fmt.Sprintf("layers: pts=%v ls=%v poly=%v", m.showPoints, m.showLines, m.showPolys)
		case "enter":
			if m.showSidebar {
				if it, ok := m.l.SelectedItem().(fileItem); ok {
					m.loadPath(it.path)
				}
			}
		case "up":
			m.offsetY -= 1
		case "down":
			m.offsetY += 1
		case "left":
			m.offsetX -= 2
		case "right":
			m.offsetX += 2
		}
	case tea.MouseMsg:
		m.updateHover(msg)
	}
	// Pass messages to list when visible
	if m.showSidebar {
		var cmd tea.Cmd
		m.l, cmd = m.l.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) updatePaste(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.pasteMode = false
		m.ta.Blur()
		return m, nil
	case "enter":
		w := strings.TrimSpace(m.ta.Value())
		if w == "" {
			m.status = "paste: empty"
			return m, nil
		}
		l, err := geom.ParseWKT(w)
		if err != nil {
			m.status = "wkt error: " + err.Error()
			return m, nil
		}
		m.selPath = ""
		m.setLayer(l)
		m.status = "rendered WKT  counts: " + l.Counts() + "  env: " + l.Envelope.String()
		m.pasteMode = false
		m.ta.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.ta, cmd = m.ta.Update(msg)
	return m, cmd
}

// updateHover tracks the mouse over the map area and snaps the highlight to
// the nearest vertex.
func (m *Model) updateHover(msg tea.MouseMsg) {
	lo := m.layout()
	cx, cy, ok := lo.inMap(msg.X, msg.Y)
	if !ok {
		m.hovering = false
		return
	}
	m.hovering = true
	m.hoverCellX, m.hoverCellY = cx, cy
	m.hoverLon, m.hoverLat, m.hoverHasGeo = m.cellToLonLat(cx, cy, lo.mapW, lo.mapH)
	// nearest vertex in micro coords
	hxMic, hyMic := cx*2, cy*4
	best := -1
	bx, by := hxMic, hyMic
	for _, p := range m.layer.Vertices() {
		mx, my, ok := m.screenXYMicro(p[0], p[1], lo.mapW, lo.mapH)
		if !ok {
			continue
		}
		dx := mx - hxMic
		dy := my - hyMic
		if d := dx*dx + dy*dy; best < 0 || d < best {
			best = d
			bx, by = mx, my
		}
	}
	m.hoverMicX, m.hoverMicY = bx, by
}
