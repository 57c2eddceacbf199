package envelope

import (
	"bytes"
	"encoding/json"

	"github.com/pkg/errors"
)

// MarshalJSON encodes e as a GeoJSON bbox array [minX, minY, maxX, maxY], or
// null when e is empty.
func (e Envelope) MarshalJSON() ([]byte, error) {
	if !e.ok {
		return []byte("null"), nil
	}
	return json.Marshal([4]float64{e.minX, e.minY, e.maxX, e.maxY})
}

// UnmarshalJSON decodes a GeoJSON bbox. Three-dimensional boxes keep their x
// and y bounds only.
func (e *Envelope) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*e = Envelope{}
		return nil
	}
	var b []float64
	if err := json.Unmarshal(data, &b); err != nil {
		return errors.Wrap(ErrInvalidInput, err.Error())
	}
	var (
		out Envelope
		err error
	)
	switch len(b) {
	case 4:
		out, err = New(b[0], b[1], b[2], b[3])
	case 6:
		out, err = New(b[0], b[1], b[3], b[4])
	default:
		return errors.Wrapf(ErrInvalidInput, "bbox has %d values", len(b))
	}
	if err != nil {
		return err
	}
	*e = out
	return nil
}
