package qualifier

import "github.com/pkg/errors"

// Recognize parses segment with the grammar of a single axis.
func Recognize(axis Axis, segment string) (*Qualifier, bool) {
	if !axis.IsValid() || segment == "" {
		return nil, false
	}
	return axes[axis].parse(axis, segment)
}

// RecognizeFrom tries every axis from start onwards, in precedence order, and
// returns the first one whose grammar accepts the segment.
func RecognizeFrom(start Axis, segment string) (*Qualifier, bool) {
	if start < 0 {
		start = 0
	}
	for axis := start; axis < AxisCount; axis++ {
		if q, ok := Recognize(axis, segment); ok {
			return q, true
		}
	}
	return nil, false
}

// Parse recognizes a segment on any axis.
func Parse(segment string) (*Qualifier, error) {
	q, ok := RecognizeFrom(0, segment)
	if !ok {
		return nil, errors.Errorf("Unrecognized qualifier segment: %q", segment)
	}
	return q, nil
}

func MustParse(segment string) *Qualifier {
	q, err := Parse(segment)
	if err != nil {
		panic(err)
	}
	return q
}
