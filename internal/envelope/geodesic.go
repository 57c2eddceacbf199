package envelope

import "geoenvelope/internal/greatcircle"

// WidthGC treats e as longitude/latitude degrees and returns the mean of the
// great-circle lengths of its bottom and top edges, in meters. The two differ
// away from the equator as meridians converge.
func (e Envelope) WidthGC() (float64, error) {
	if !e.ok {
		return 0, ErrEmptyEnvelope
	}
	bottom := greatcircle.Distance([2]float64{e.minX, e.minY}, [2]float64{e.maxX, e.minY})
	top := greatcircle.Distance([2]float64{e.minX, e.maxY}, [2]float64{e.maxX, e.maxY})
	return (bottom + top) / 2, nil
}

// HeightGC returns the great-circle length of the western edge of e in
// meters. On a sphere every meridian edge has the same length.
func (e Envelope) HeightGC() (float64, error) {
	if !e.ok {
		return 0, ErrEmptyEnvelope
	}
	return greatcircle.Distance([2]float64{e.minX, e.minY}, [2]float64{e.minX, e.maxY}), nil
}

// AreaGC is WidthGC * HeightGC in square meters. It approximates, and is not,
// the spherical area of the box.
func (e Envelope) AreaGC() (float64, error) {
	w, err := e.WidthGC()
	if err != nil {
		return 0, err
	}
	h, err := e.HeightGC()
	if err != nil {
		return 0, err
	}
	return w * h, nil
}
