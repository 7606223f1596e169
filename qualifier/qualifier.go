package qualifier

import (
	"fmt"
	"strings"
)

const (
	fakeNumber = -1
	fakeText   = "__"
)

// Qualifier is a single constraint on one Axis, such as "en" on the language
// axis or "hdpi" on the density axis.
//
// Qualifiers are immutable: build them with the New* constructors or Recognize
// and replace them wholesale. The behavior of each axis (grammar, matching,
// ordering) lives in the per-axis table in behavior.go.
type Qualifier struct {
	axis   Axis
	value  int
	value2 int // smaller screen dimension, or written width of a code
	text   string
	fake   bool
}

func NewCountryCode(mcc int) *Qualifier {
	return &Qualifier{axis: AxisCountryCode, value: mcc}
}

func NewNetworkCode(mnc int) *Qualifier {
	return &Qualifier{axis: AxisNetworkCode, value: mnc}
}

func NewLanguage(lang string) *Qualifier {
	return &Qualifier{axis: AxisLanguage, text: lang}
}

func NewRegion(region string) *Qualifier {
	return &Qualifier{axis: AxisRegion, text: region}
}

func NewSmallestScreenWidth(dp int) *Qualifier {
	return &Qualifier{axis: AxisSmallestScreenWidth, value: dp}
}

func NewScreenWidth(dp int) *Qualifier {
	return &Qualifier{axis: AxisScreenWidth, value: dp}
}

func NewScreenHeight(dp int) *Qualifier {
	return &Qualifier{axis: AxisScreenHeight, value: dp}
}

func NewScreenSize(v Size) *Qualifier {
	return &Qualifier{axis: AxisScreenSize, value: int(v)}
}

func NewScreenRatio(v Ratio) *Qualifier {
	return &Qualifier{axis: AxisScreenRatio, value: int(v)}
}

func NewScreenOrientation(v Orientation) *Qualifier {
	return &Qualifier{axis: AxisScreenOrientation, value: int(v)}
}

func NewUiMode(v Mode) *Qualifier {
	return &Qualifier{axis: AxisUiMode, value: int(v)}
}

func NewNightMode(v Night) *Qualifier {
	return &Qualifier{axis: AxisNightMode, value: int(v)}
}

func NewDensity(v Dpi) *Qualifier {
	return &Qualifier{axis: AxisDensity, value: int(v)}
}

func NewTouchScreen(v Touch) *Qualifier {
	return &Qualifier{axis: AxisTouchScreen, value: int(v)}
}

func NewKeyboardState(v Keyboard) *Qualifier {
	return &Qualifier{axis: AxisKeyboardState, value: int(v)}
}

func NewTextInputMethod(v Input) *Qualifier {
	return &Qualifier{axis: AxisTextInputMethod, value: int(v)}
}

func NewNavigationState(v NavState) *Qualifier {
	return &Qualifier{axis: AxisNavigationState, value: int(v)}
}

func NewNavigationMethod(v NavMethod) *Qualifier {
	return &Qualifier{axis: AxisNavigationMethod, value: int(v)}
}

// NewScreenDimension stores the two raw pixel sizes with the larger one first.
func NewScreenDimension(size1, size2 int) *Qualifier {
	if size1 < size2 {
		size1, size2 = size2, size1
	}
	return &Qualifier{axis: AxisScreenDimension, value: size1, value2: size2}
}

func NewVersion(apiLevel int) *Qualifier {
	return &Qualifier{axis: AxisVersion, value: apiLevel}
}

// NewFake returns a placeholder qualifier for the axis: present in its slot but
// carrying no real value. Fake qualifiers are never valid.
func NewFake(axis Axis) *Qualifier {
	return &Qualifier{
		axis:   axis,
		value:  fakeNumber,
		value2: fakeNumber,
		text:   fakeText,
		fake:   true,
	}
}

func (q *Qualifier) Axis() Axis {
	return q.axis
}

func (q *Qualifier) HasFakeValue() bool {
	return q.fake
}

func (q *Qualifier) IsValid() bool {
	if q.fake || !q.axis.IsValid() {
		return false
	}
	return axes[q.axis].valid(q)
}

// Number is the numeric payload: country/network code, dp value, API level, or
// the larger screen dimension.
func (q *Qualifier) Number() int {
	return q.value
}

// Text is the payload of language and region qualifiers.
func (q *Qualifier) Text() string {
	return q.text
}

// Dimensions returns the raw pixel sizes of a screen dimension, larger first.
func (q *Qualifier) Dimensions() (int, int) {
	return q.value, q.value2
}

func (q *Qualifier) ScreenSize() Size               { return Size(q.value) }
func (q *Qualifier) ScreenRatio() Ratio             { return Ratio(q.value) }
func (q *Qualifier) ScreenOrientation() Orientation { return Orientation(q.value) }
func (q *Qualifier) UiMode() Mode                   { return Mode(q.value) }
func (q *Qualifier) NightMode() Night               { return Night(q.value) }
func (q *Qualifier) Density() Dpi                   { return Dpi(q.value) }
func (q *Qualifier) TouchScreen() Touch             { return Touch(q.value) }
func (q *Qualifier) KeyboardState() Keyboard        { return Keyboard(q.value) }
func (q *Qualifier) TextInputMethod() Input         { return Input(q.value) }
func (q *Qualifier) NavigationState() NavState      { return NavState(q.value) }
func (q *Qualifier) NavigationMethod() NavMethod    { return NavMethod(q.value) }

// FolderSegment is the token for this qualifier in a folder name, or "" when
// the qualifier is not valid.
func (q *Qualifier) FolderSegment() string {
	if !q.IsValid() {
		return ""
	}
	return axes[q.axis].segment(q)
}

func (q *Qualifier) ShortDisplayValue() string {
	if !q.IsValid() {
		return ""
	}
	return axes[q.axis].short(q)
}

func (q *Qualifier) LongDisplayValue() string {
	if !q.IsValid() {
		return ""
	}
	return axes[q.axis].long(q)
}

func (q *Qualifier) String() string {
	if q.fake {
		return fmt.Sprintf("%s(fake)", q.axis)
	}
	if !q.IsValid() {
		return fmt.Sprintf("%s(invalid)", q.axis)
	}
	if seg := q.FolderSegment(); seg != "" {
		return seg
	}
	return q.ShortDisplayValue()
}

func (q *Qualifier) Equals(other *Qualifier) bool {
	if q == nil || other == nil {
		return q == other
	}
	return q.axis == other.axis &&
		q.fake == other.fake &&
		q.value == other.value &&
		q.value2 == other.value2 &&
		q.text == other.text
}

// Compare orders qualifiers: nil first, then by axis, fake values before real
// ones, then by the axis payload.
func (q *Qualifier) Compare(other *Qualifier) int {
	if q == nil || other == nil {
		return compareNil(q == nil, other == nil)
	}
	if q.axis != other.axis {
		return compareInts(int(q.axis), int(other.axis))
	}
	if q.fake != other.fake {
		if q.fake {
			return -1
		}
		return 1
	}
	if axes[q.axis].kind == kindText {
		return strings.Compare(q.text, other.text)
	}
	if c := compareInts(q.value, other.value); c != 0 {
		return c
	}
	return compareInts(q.value2, other.value2)
}

func (q *Qualifier) LessThan(other *Qualifier) bool {
	return q.Compare(other) < 0
}

// IsMatchFor reports whether a resource carrying q can be used on a device
// described by reference. The test is asymmetric: a w600dp resource matches
// a w800dp device but not the other way around.
func (q *Qualifier) IsMatchFor(reference *Qualifier) bool {
	if reference == nil || q.axis != reference.axis {
		return false
	}
	return axes[q.axis].match(q, reference)
}

// IsBetterMatchThan reports whether q is a better match for reference than
// currentBest, which may be nil. Both q and currentBest must already satisfy
// IsMatchFor(reference).
func (q *Qualifier) IsBetterMatchThan(currentBest, reference *Qualifier) bool {
	if reference == nil || q.axis != reference.axis {
		return false
	}
	return axes[q.axis].better(q, currentBest, reference)
}

func compareNil(aNil, bNil bool) int {
	switch {
	case aNil && bNil:
		return 0
	case aNil:
		return -1
	}
	return 1
}

func compareInts(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
