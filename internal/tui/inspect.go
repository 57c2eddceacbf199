package tui

import (
	"fmt"
	"path/filepath"

	"geoenvelope/internal/envelope"
)

// inspectLines describes the current layer envelope: bounds, metrics (planar
// or great-circle), the expanded envelope and its relation to the pinned
// reference.
func (m Model) inspectLines() []string {
	name := filepath.Base(m.selPath)
	if m.selPath == "" {
		name = "<pasted>"
	}
	e := m.layer.Envelope
	out := []string{
		fmt.Sprintf("name: %s", name),
		fmt.Sprintf("counts: %s  features=%d", m.layer.Counts(), len(m.layer.Features)),
		fmt.Sprintf("envelope: %s", e),
	}
	if e.IsEmpty() {
		return append(out, "metrics: n/a (empty envelope)")
	}
	out = append(out, m.metricLines(e)...)
	if r := m.radius(); r > 0 {
		out = append(out, fmt.Sprintf("expanded r=%g: %s", r, m.expanded()))
	}
	if p, ok := m.inspectNearest(); ok {
		out = append(out, fmt.Sprintf("nearest: lon=%.6f lat=%.6f", p.X(), p.Y()))
	}
	if m.ref.IsEmpty() {
		return append(out, "reference: none (r to pin)")
	}
	out = append(out,
		fmt.Sprintf("reference %s: %s", m.refName, m.ref),
		fmt.Sprintf("contains ref: %v", e.ContainsEnvelope(m.ref)),
		fmt.Sprintf("within ref: %v", e.WithinEnvelope(m.ref)),
		fmt.Sprintf("intersects ref: %v", e.IntersectsEnvelope(m.ref)),
	)
	return out
}

func (m Model) metricLines(e envelope.Envelope) []string {
	c, _ := e.Center()
	center := fmt.Sprintf("center: %.6f, %.6f", c.X(), c.Y())
	if m.gc {
		w, _ := e.WidthGC()
		h, _ := e.HeightGC()
		a, _ := e.AreaGC()
		return []string{
			fmt.Sprintf("width: %.1f m  height: %.1f m", w, h),
			fmt.Sprintf("area: %.1f km²", a/1e6),
			center,
		}
	}
	w, _ := e.Width()
	h, _ := e.Height()
	a, _ := e.Area()
	return []string{
		fmt.Sprintf("width: %g  height: %g", w, h),
		fmt.Sprintf("area: %g", a),
		center,
	}
}
