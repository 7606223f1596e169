package folderconfig

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/vtex/go-resconfig/qualifier"
)

// Separator joins the segments of a resource folder name.
const Separator = "-"

// FromSegments builds a configuration from the segments of a folder name. The
// first segment is the resource type and is skipped.
//
// Qualifiers must appear in axis order, so a cursor walks the axes once: each
// segment is tried against the axes from the cursor onwards and the cursor moves
// past the axis that accepts it. An empty segment, or one that no remaining axis
// accepts, makes the whole name invalid and nothing is returned.
func FromSegments(segments []string) (*Configuration, bool) {
	if len(segments) == 0 {
		return nil, false
	}
	return fromQualifierSegments(segments[1:])
}

// FromQualifiers is FromSegments for a list with no resource type segment.
func FromQualifiers(segments []string) (*Configuration, bool) {
	return fromQualifierSegments(segments)
}

// FromFolderName parses a complete folder name such as "values-en-rUS".
func FromFolderName(name string) (*Configuration, bool) {
	if name == "" {
		return nil, false
	}
	return FromSegments(strings.Split(name, Separator))
}

func fromQualifierSegments(segments []string) (*Configuration, bool) {
	config := New()
	cursor := qualifier.Axis(0)
	for _, seg := range segments {
		if seg == "" {
			return nil, false
		}
		q, ok := recognizeAt(config, cursor, seg)
		if !ok {
			return nil, false
		}
		config.qualifiers[q.Axis()] = q
		cursor = q.Axis() + 1
	}
	return config, true
}

func recognizeAt(config *Configuration, cursor qualifier.Axis, seg string) (*qualifier.Qualifier, bool) {
	for axis := cursor; axis < qualifier.AxisCount; axis++ {
		if config.qualifiers[axis] != nil {
			continue
		}
		if q, ok := qualifier.Recognize(axis, seg); ok {
			return q, true
		}
	}
	return nil, false
}

// Parse reads the qualifier part of a folder name, such as "en-rUS-hdpi". A
// leading dash is allowed so that UniqueKey output parses back, and the empty
// string is the default configuration.
func Parse(qualifiers string) (*Configuration, error) {
	qualifiers = strings.TrimPrefix(qualifiers, Separator)
	if qualifiers == "" {
		return New(), nil
	}
	config, ok := FromQualifiers(strings.Split(qualifiers, Separator))
	if !ok {
		return nil, errors.Errorf("Invalid qualifier list: %q", qualifiers)
	}
	return config, nil
}

func MustParse(qualifiers string) *Configuration {
	config, err := Parse(qualifiers)
	if err != nil {
		panic(err)
	}
	return config
}

func (c *Configuration) MarshalText() ([]byte, error) {
	return []byte(strings.Join(c.Segments(), Separator)), nil
}

func (c *Configuration) UnmarshalText(b []byte) error {
	config, err := Parse(string(b))
	if err != nil {
		return err
	}
	*c = *config
	return nil
}
