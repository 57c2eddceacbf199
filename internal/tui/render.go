package tui

import (
	"sort"
	"strings"

	"geoenvelope/internal/envelope"
)

// cellToLonLat converts a map cell coordinate back to lon/lat using the frame, zoom, and pan.
func (m Model) cellToLonLat(cx, cy, w, h int) (float64, float64, bool) {
	minX, minY, maxX, maxY, ok := m.frame()
	if !ok || w <= 1 || h <= 1 {
		return 0, 0, false
	}
	zx := float64(cx-m.offsetX) / float64(w-1)
	zy := 1.0 - float64(cy-m.offsetY)/float64(h-1)
	nx := 0.5 + (zx-0.5)/m.zoom
	ny := 0.5 + (zy-0.5)/m.zoom
	lon := minX + nx*(maxX-minX)
	lat := minY + ny*(maxY-minY)
	return lon, lat, true
}

func (m Model) renderAsciiMap(w, h int) string {
	// High-resolution braille buffer for crisp lines/edges
	br := newBrailleBuf(w, h)

	// Draw polygons (fill then edges)
	if m.showPolys {
		for _, poly := range m.layer.Polygons {
			var ringsMic [][][2]int
			for _, ring := range poly {
				var sm [][2]int
				for _, p := range ring {
					mx, my, ok := m.screenXYMicro(p[0], p[1], w, h)
					if !ok {
						continue
					}
					sm = append(sm, [2]int{mx, my})
				}
				if len(sm) >= 3 {
					ringsMic = append(ringsMic, sm)
				}
			}
			if len(ringsMic) == 0 {
				continue
			}
			// fill using even-odd rule per scanline on outer ring (holes ignored)
			fillRing(br, ringsMic[0], h*4)
			for _, r := range ringsMic {
				for i := 0; i < len(r); i++ {
					a := r[i]
					b := r[(i+1)%len(r)]
					br.drawLineMicro(a[0], a[1], b[0], b[1])
				}
			}
		}
	}

	// Draw points only when dataset has no lines or polygons
	if m.showPoints && len(m.layer.Lines) == 0 && len(m.layer.Polygons) == 0 {
		for _, p := range m.layer.Points {
			mx, my, ok := m.screenXYMicro(p[0], p[1], w, h)
			if !ok {
				continue
			}
			br.setPixel(mx, my)
		}
	}

	// Draw line strings (high-res)
	if m.showLines {
		for _, ls := range m.layer.Lines {
			var prev *[2]int
			for _, p := range ls {
				mx, my, ok := m.screenXYMicro(p[0], p[1], w, h)
				if !ok {
					continue
				}
				if prev != nil {
					br.drawLineMicro(prev[0], prev[1], mx, my)
				}
				prev = &[2]int{mx, my}
			}
		}
	}

	if m.showOutline {
		m.outline(br, m.expanded(), w, h)
		m.outline(br, m.ref, w, h)
	}

	lines := br.toLines()

	// Hover highlight: draw an orange circle at the hovered vertex cell
	if m.hovering {
		cx := m.hoverMicX / 2
		cy := m.hoverMicY / 4
		if cy >= 0 && cy < len(lines) {
			r := []rune(lines[cy])
			if cx >= 0 && cx < len(r) {
				circle := hoverStyle.Render("◯")
				lines[cy] = string(r[:cx]) + circle + string(r[cx+1:])
			}
		}
	}
	return strings.Join(lines, "\n")
}

func fillRing(br *brailleBuf, ring [][2]int, hMic int) {
	for yMic := 0; yMic < hMic; yMic++ {
		var xs []int
		for i := 0; i < len(ring); i++ {
			a := ring[i]
			b := ring[(i+1)%len(ring)]
			if a[1] == b[1] { // horizontal edge: skip
				continue
			}
			y0, y1 := a[1], b[1]
			x0, x1 := a[0], b[0]
			if (yMic >= y0 && yMic < y1) || (yMic >= y1 && yMic < y0) {
				t := float64(yMic-y0) / float64(y1-y0)
				xs = append(xs, int(float64(x0)+t*float64(x1-x0)))
			}
		}
		sort.Ints(xs)
		for i := 0; i+1 < len(xs); i += 2 {
			for xMic := max(0, xs[i]); xMic <= xs[i+1]; xMic++ {
				br.setPixel(xMic, yMic)
			}
		}
	}
}

// outline draws the four edges of e. Empty envelopes draw nothing.
func (m Model) outline(br *brailleBuf, e envelope.Envelope, w, h int) {
	minX, minY, maxX, maxY, ok := e.Bounds()
	if !ok {
		return
	}
	x0, y0, _ := m.screenXYMicro(minX, minY, w, h)
	x1, y1, _ := m.screenXYMicro(maxX, maxY, w, h)
	br.drawRectMicro(x0, y0, x1, y1)
}

// screenXYMicro maps lon/lat into a 2x4 microgrid per cell for braille rendering.
func (m Model) screenXYMicro(lon, lat float64, w, h int) (int, int, bool) {
	sx, sy, ok := m.project(lon, lat, w*2, h*4)
	return sx + m.offsetX*2, sy + m.offsetY*4, ok
}

// screenXY maps lon/lat to current screen integer coordinates considering zoom and pan.
func (m Model) screenXY(lon, lat float64, w, h int) (int, int, bool) {
	sx, sy, ok := m.project(lon, lat, w, h)
	return sx + m.offsetX, sy + m.offsetY, ok
}

func (m Model) project(lon, lat float64, w, h int) (int, int, bool) {
	minX, minY, maxX, maxY, ok := m.frame()
	if !ok {
		return 0, 0, false
	}
	nx := (lon - minX) / (maxX - minX)
	ny := (lat - minY) / (maxY - minY)
	// Apply zoom around center (0.5, 0.5)
	zx := 0.5 + (nx-0.5)*m.zoom
	zy := 0.5 + (ny-0.5)*m.zoom
	return int(zx * float64(w-1)), int((1.0 - zy) * float64(h-1)), true
}

// inspectNearest finds the vertex closest to the viewport center.
func (m Model) inspectNearest() (envelope.Point, bool) {
	lo := m.layout()
	w, h := lo.mapW, lo.mapH
	cx, cy := w/2, h/2
	bestD := -1
	var best envelope.Point
	for _, p := range m.layer.Vertices() {
		sx, sy, ok := m.screenXY(p[0], p[1], w, h)
		if !ok {
			continue
		}
		dx := sx - cx
		dy := sy - cy
		d := dx*dx + dy*dy
		if bestD < 0 || d < bestD {
			bestD = d
			best = p
		}
	}
	return best, bestD >= 0
}
