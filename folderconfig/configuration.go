package folderconfig

import (
	"math"
	"strings"

	"github.com/vtex/go-resconfig/qualifier"
)

// Configuration is the full set of qualifiers describing one resource variant
// or one device: a fixed vector with one optional slot per axis.
//
// A Configuration is not safe for concurrent mutation. Owners that share one
// across goroutines must guard it themselves or hand out clones.
type Configuration struct {
	qualifiers [qualifier.AxisCount]*qualifier.Qualifier
}

// New returns an empty configuration, which is the default configuration.
func New() *Configuration {
	return &Configuration{}
}

// Default returns a configuration holding a fake qualifier on every axis.
// It is built on each call so callers never share it.
func Default() *Configuration {
	c := New()
	for _, axis := range qualifier.Axes() {
		c.qualifiers[axis] = qualifier.NewFake(axis)
	}
	return c
}

func (c *Configuration) Clone() *Configuration {
	clone := *c
	return &clone
}

// Get returns the qualifier at the axis or nil.
func (c *Configuration) Get(axis qualifier.Axis) *qualifier.Qualifier {
	if !axis.IsValid() {
		return nil
	}
	return c.qualifiers[axis]
}

// Put stores q in the slot of its own axis, replacing what was there.
func (c *Configuration) Put(q *qualifier.Qualifier) {
	if q == nil {
		return
	}
	c.qualifiers[q.Axis()] = q
}

func (c *Configuration) Remove(axis qualifier.Axis) {
	if axis.IsValid() {
		c.qualifiers[axis] = nil
	}
}

// Qualifiers returns the non-nil qualifiers in axis order.
func (c *Configuration) Qualifiers() []*qualifier.Qualifier {
	qs := make([]*qualifier.Qualifier, 0, qualifier.AxisCount)
	for _, q := range c.qualifiers {
		if q != nil {
			qs = append(qs, q)
		}
	}
	return qs
}

// Set overwrites every slot with the one from other, including empty slots.
// With nonFakeOnly, slots where other holds a fake qualifier are left alone.
func (c *Configuration) Set(other *Configuration, nonFakeOnly bool) {
	if other == nil {
		return
	}
	for i, q := range other.qualifiers {
		if !nonFakeOnly || q == nil || !q.HasFakeValue() {
			c.qualifiers[i] = q
		}
	}
}

// Add overwrites only the slots where other has a qualifier.
func (c *Configuration) Add(other *Configuration) {
	if other == nil {
		return
	}
	for i, q := range other.qualifiers {
		if q != nil {
			c.qualifiers[i] = q
		}
	}
}

// Subtract clears the slots where other has a valid qualifier.
func (c *Configuration) Subtract(other *Configuration) {
	if other == nil {
		return
	}
	for i, q := range other.qualifiers {
		if q != nil && q.IsValid() {
			c.qualifiers[i] = nil
		}
	}
}

func (c *Configuration) IsDefault() bool {
	for _, q := range c.qualifiers {
		if q != nil {
			return false
		}
	}
	return true
}

func (c *Configuration) Equals(other *Configuration) bool {
	if c == nil || other == nil {
		return c == other
	}
	for i, q := range c.qualifiers {
		if !q.Equals(other.qualifiers[i]) {
			return false
		}
	}
	return true
}

// Compare sorts nil first and the default configuration next, then compares
// slot by slot in axis order, an empty slot sorting before a filled one.
func (c *Configuration) Compare(other *Configuration) int {
	switch {
	case c == nil && other == nil:
		return 0
	case c == nil:
		return -1
	case other == nil:
		return 1
	}
	if c.IsDefault() {
		if other.IsDefault() {
			return 0
		}
		return -1
	}
	for i, q1 := range c.qualifiers {
		q2 := other.qualifiers[i]
		switch {
		case q1 == nil && q2 == nil:
			continue
		case q1 == nil:
			return -1
		case q2 == nil:
			return 1
		}
		if result := q1.Compare(q2); result != 0 {
			return result
		}
	}
	return 0
}

func (c *Configuration) LessThan(other *Configuration) bool {
	return c.Compare(other) < 0
}

// InvalidQualifier returns the first qualifier, in axis order, that is present
// but not valid.
func (c *Configuration) InvalidQualifier() *qualifier.Qualifier {
	for _, q := range c.qualifiers {
		if q != nil && !q.IsValid() {
			return q
		}
	}
	return nil
}

// CheckRegion reports false when a region is set without a language.
func (c *Configuration) CheckRegion() bool {
	return c.Region() == nil || c.Language() != nil
}

// HighestPriorityQualifier returns the first filled axis at or after start.
func (c *Configuration) HighestPriorityQualifier(start qualifier.Axis) (qualifier.Axis, bool) {
	if start < 0 {
		start = 0
	}
	for axis := start; axis < qualifier.AxisCount; axis++ {
		if c.qualifiers[axis] != nil {
			return axis, true
		}
	}
	return -1, false
}

// UpdateScreenWidthAndHeight derives the smallest width, width and height in dp
// from the screen dimension, density and orientation. It does nothing unless all
// three are present and the density is not nodpi.
func (c *Configuration) UpdateScreenWidthAndHeight() {
	sizeQ, densityQ, orientQ := c.ScreenDimension(), c.Density(), c.ScreenOrientation()
	if sizeQ == nil || densityQ == nil || orientQ == nil {
		return
	}
	dpi := densityQ.Density().DpiValue()
	if densityQ.Density() == qualifier.DpiNone || dpi == 0 {
		return
	}

	size1, size2 := sizeQ.Dimensions()
	if size1 < size2 {
		size1, size2 = size2, size1
	}

	// Round up so that a w480dp resource still matches a 480.5dp screen.
	dp1 := int(math.Ceil(float64(size1) * qualifier.DefaultDpi / float64(dpi)))
	dp2 := int(math.Ceil(float64(size2) * qualifier.DefaultDpi / float64(dpi)))

	c.SetSmallestScreenWidth(qualifier.NewSmallestScreenWidth(dp2))

	switch orientQ.ScreenOrientation() {
	case qualifier.OrientationPortrait:
		c.SetScreenWidth(qualifier.NewScreenWidth(dp2))
		c.SetScreenHeight(qualifier.NewScreenHeight(dp1))
	case qualifier.OrientationLandscape:
		c.SetScreenWidth(qualifier.NewScreenWidth(dp1))
		c.SetScreenHeight(qualifier.NewScreenHeight(dp2))
	case qualifier.OrientationSquare:
		c.SetScreenWidth(qualifier.NewScreenWidth(dp2))
		c.SetScreenHeight(qualifier.NewScreenHeight(dp2))
	}
}

// Normalize adds the version qualifier implied by the other qualifiers, the
// way the platform packager does: a sw600dp folder is only read from API 13.
func (c *Configuration) Normalize() {
	minSdk := 0
	raise := func(level int) {
		if level > minSdk {
			minSdk = level
		}
	}

	if c.ScreenSize() != nil || c.ScreenRatio() != nil || c.Density() != nil {
		raise(4)
	}
	if q := c.UiMode(); q != nil && q.UiMode() != qualifier.ModeNormal {
		raise(8)
	}
	if c.NightMode() != nil {
		raise(8)
	}
	if c.SmallestScreenWidth() != nil || c.ScreenWidth() != nil || c.ScreenHeight() != nil {
		raise(13)
	}

	if minSdk == 0 {
		return
	}
	if v := c.Version(); v != nil && v.IsValid() && v.Number() >= minSdk {
		return
	}
	c.SetVersion(qualifier.NewVersion(minSdk))
}

// IsMatchFor reports whether a resource with this configuration can be used for
// the reference. An axis only rules the resource out when both sides have a
// qualifier and this one does not match the reference's.
func (c *Configuration) IsMatchFor(reference *Configuration) bool {
	if reference == nil {
		return false
	}
	for i, q := range c.qualifiers {
		ref := reference.qualifiers[i]
		if q != nil && ref != nil && !q.IsMatchFor(ref) {
			return false
		}
	}
	return true
}

// Segments returns the folder segments of the valid qualifiers in axis order.
func (c *Configuration) Segments() []string {
	segments := make([]string, 0, qualifier.AxisCount)
	for _, q := range c.qualifiers {
		if q == nil {
			continue
		}
		if seg := q.FolderSegment(); seg != "" {
			segments = append(segments, seg)
		}
	}
	return segments
}

// UniqueKey is the qualifier part of a folder name, each segment preceded by a
// dash: "-en-rUS-hdpi". The default configuration has an empty key.
func (c *Configuration) UniqueKey() string {
	var sb strings.Builder
	for _, seg := range c.Segments() {
		sb.WriteString(Separator)
		sb.WriteString(seg)
	}
	return sb.String()
}

// FolderName prefixes the unique key with a resource type name.
func (c *Configuration) FolderName(resourceType string) string {
	return resourceType + c.UniqueKey()
}

// String returns a human readable description such as
// "Language en, Region US, High Density", or "default".
func (c *Configuration) String() string {
	if c.IsDefault() {
		return "default"
	}
	values := make([]string, 0, qualifier.AxisCount)
	for _, q := range c.qualifiers {
		if q == nil {
			continue
		}
		if v := q.LongDisplayValue(); v != "" {
			values = append(values, v)
		}
	}
	return strings.Join(values, ", ")
}
