package envelope

import "github.com/pkg/errors"

var (
	// ErrInvalidArgument is returned for a negative radius or inverted bounds.
	ErrInvalidArgument = errors.New("envelope: invalid argument")
	// ErrInvalidInput is returned when a geometry carries a non-numeric coordinate.
	ErrInvalidInput = errors.New("envelope: invalid input")
	// ErrEmptyEnvelope is returned when a metric is requested on the empty envelope.
	ErrEmptyEnvelope = errors.New("envelope: empty envelope")
)
