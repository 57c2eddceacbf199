package tui

import (
	"os"

	list "github.com/charmbracelet/bubbles/list"
	table "github.com/charmbracelet/bubbles/table"
	textarea "github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"geoenvelope/internal/envelope"
	"geoenvelope/internal/geom"
)

// radiusSteps are the expand radii cycled with [ and ], in layer units.
var radiusSteps = []float64{0, 0.001, 0.01, 0.1, 0.5, 1, 5, 10}

type Model struct {
	width  int
	height int

	showSidebar bool
	helpVisible bool

	zoom    float64
	offsetX int
	offsetY int

	status string

	// File explorer
	cwd     string
	l       list.Model
	items   []list.Item
	selPath string

	// Data
	layer geom.Layer

	// pinned reference envelope
	ref     envelope.Envelope
	refName string

	radiusIdx int
	gc        bool

	// paste mode
	pasteMode bool
	ta        textarea.Model

	// layer visibility
	showPoints  bool
	showLines   bool
	showPolys   bool
	showOutline bool

	// inspect popup
	inspectPopup string

	// hover state
	hovering    bool
	hoverCellX  int
	hoverCellY  int
	hoverMicX   int
	hoverMicY   int
	hoverHasGeo bool
	hoverLon    float64
	hoverLat    float64

	// attributes table
	showAttrs bool
	tbl       table.Model
}

func New() Model {
	m := Model{
		showSidebar: false,
		helpVisible: true,
		zoom:        1.0,
		status:      "envelope ready",
		showPoints:  true,
		showLines:   true,
		showPolys:   true,
		showOutline: true,
	}
	m.cwd, _ = os.Getwd()
	// list setup
	d := list.NewDefaultDelegate()
	d.ShowDescription = false
	m.l = list.New(nil, d, 0, 0)
	m.l.Title = "Files"
	m.l.SetShowHelp(false)
	m.l.SetShowStatusBar(false)
	m.l.SetFilteringEnabled(true)
	// textarea setup
	m.ta = textarea.New()
	m.ta.Placeholder = "Paste WKT here (POINT, LINESTRING, POLYGON, MULTI*, GEOMETRYCOLLECTION). Press Enter to render; Esc to cancel."
	m.ta.CharLimit = 0
	m.ta.SetWidth(50)
	m.ta.SetHeight(6)
	// attributes table setup (columns will be inferred per dataset)
	m.tbl = table.New(table.WithFocused(true))
	m.tbl.SetHeight(12)
	m.refreshDir()
	return m
}

// NewWithPath preloads a file's data at launch.
func NewWithPath(path string) Model {
	m := New()
	m.loadPath(path)
	return m
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) radius() float64 { return radiusSteps[m.radiusIdx] }

// expanded is the layer envelope grown by the current radius.
func (m Model) expanded() envelope.Envelope {
	e, err := m.layer.Envelope.ExpandBy(m.radius())
	if err != nil {
		return m.layer.Envelope
	}
	return e
}

// frame returns the bounds the map projects onto: the expanded layer envelope
// and the pinned reference. Zero-length axes are widened so that a single
// point or a vertical line still projects.
func (m Model) frame() (minX, minY, maxX, maxY float64, ok bool) {
	minX, minY, maxX, maxY, ok = m.expanded().ExpandEnvelope(m.ref).Bounds()
	if !ok {
		return 0, 0, 0, 0, false
	}
	if maxX == minX {
		minX, maxX = minX-0.5, maxX+0.5
	}
	if maxY == minY {
		minY, maxY = minY-0.5, maxY+0.5
	}
	return minX, minY, maxX, maxY, true
}

// setLayer replaces the displayed data and resets the viewport.
func (m *Model) setLayer(l geom.Layer) {
	m.layer = l
	m.zoom = 1.0
	m.offsetX, m.offsetY = 0, 0
	m.inspectPopup = ""
	m.showPolys = len(l.Polygons) > 0
	m.showLines = len(l.Lines) > 0 && !m.showPolys
	m.showPoints = len(l.Points) > 0 && !m.showPolys
}
