package qualifier

import (
	"fmt"
	"regexp"
	"strconv"
)

type kind int

const (
	// kindCode is a prefixed number that must match exactly (mcc, mnc).
	kindCode kind = iota
	// kindText is a two letter code that must match exactly (language, region).
	kindText
	// kindMinimum is a number the reference must reach (sw, w, h, v).
	kindMinimum
	// kindEnum is a value from a fixed table.
	kindEnum
	// kindDimension is a pair of raw pixel sizes.
	kindDimension
)

type behavior struct {
	kind     kind
	pattern  string
	// Range and minimum rendered width of kindCode values.
	minCode  int
	maxCode  int
	digits   int
	prefix   string
	suffix   string
	shortFmt string
	longFmt  string
	values   enumTable
	match    func(q, ref *Qualifier) bool
	better   func(q, best, ref *Qualifier) bool

	grammar *regexp.Regexp
}

var axes [AxisCount]behavior

func init() {
	axes = [AxisCount]behavior{
		AxisCountryCode: {
			kind: kindCode, pattern: `^mcc(\d{3})$`, prefix: "mcc",
			minCode: 1, maxCode: 999, digits: 3,
			shortFmt: "MCC %d", longFmt: "Mobile Country Code %d",
			match: matchCode, better: neverBetter,
		},
		AxisNetworkCode: {
			kind: kindCode, pattern: `^mnc(\d{1,3})$`, prefix: "mnc",
			minCode: 0, maxCode: 999, digits: 1,
			shortFmt: "MNC %d", longFmt: "Mobile Network Code %d",
			match: matchCode, better: neverBetter,
		},
		AxisLanguage: {
			kind: kindText, pattern: `^([a-z]{2})$`,
			shortFmt: "%s", longFmt: "Language %s",
			match: matchEqual, better: neverBetter,
		},
		AxisRegion: {
			kind: kindText, pattern: `^r([A-Z]{2})$`, prefix: "r",
			shortFmt: "%s", longFmt: "Region %s",
			match: matchEqual, better: neverBetter,
		},
		AxisSmallestScreenWidth: {
			kind: kindMinimum, pattern: `^sw(\d+)dp$`, prefix: "sw", suffix: "dp",
			shortFmt: "sw%ddp", longFmt: "Smallest Screen Width %ddp",
			match: matchAtMost, better: closestBelow,
		},
		AxisScreenWidth: {
			kind: kindMinimum, pattern: `^w(\d+)dp$`, prefix: "w", suffix: "dp",
			shortFmt: "w%ddp", longFmt: "Screen Width %ddp",
			match: matchAtMost, better: closestBelow,
		},
		AxisScreenHeight: {
			kind: kindMinimum, pattern: `^h(\d+)dp$`, prefix: "h", suffix: "dp",
			shortFmt: "h%ddp", longFmt: "Screen Height %ddp",
			match: matchAtMost, better: closestBelow,
		},
		AxisScreenSize: {
			kind: kindEnum, values: sizeValues,
			match: matchAtMost, better: closestBelow,
		},
		AxisScreenRatio: {
			kind: kindEnum, values: ratioValues,
			match: matchEqual, better: neverBetter,
		},
		AxisScreenOrientation: {
			kind: kindEnum, values: orientationValues,
			match: matchEqual, better: neverBetter,
		},
		AxisUiMode: {
			kind: kindEnum, values: modeValues,
			match: matchUiMode, better: betterUiMode,
		},
		AxisNightMode: {
			kind: kindEnum, values: nightValues,
			match: matchEqual, better: neverBetter,
		},
		AxisDensity: {
			kind: kindEnum, values: dpiValues,
			match: matchAlways, better: betterDensity,
		},
		AxisTouchScreen: {
			kind: kindEnum, values: touchValues,
			match: matchEqual, better: neverBetter,
		},
		AxisKeyboardState: {
			kind: kindEnum, values: keyboardValues,
			match: matchKeyboard, better: betterKeyboard,
		},
		AxisTextInputMethod: {
			kind: kindEnum, values: inputValues,
			match: matchEqual, better: neverBetter,
		},
		AxisNavigationState: {
			kind: kindEnum, values: navStateValues,
			match: matchEqual, better: neverBetter,
		},
		AxisNavigationMethod: {
			kind: kindEnum, values: navMethodValues,
			match: matchEqual, better: neverBetter,
		},
		AxisScreenDimension: {
			kind: kindDimension, pattern: `^(\d+)x(\d+)$`,
			shortFmt: "%dx%d", longFmt: "Screen Dimension %dx%d",
			match: matchEqual, better: neverBetter,
		},
		AxisVersion: {
			kind: kindMinimum, pattern: `^v(\d+)$`, prefix: "v",
			shortFmt: "API %d", longFmt: "API Level %d",
			match: matchAtMost, better: closestBelow,
		},
	}

	for i := range axes {
		if axes[i].pattern != "" {
			axes[i].grammar = regexp.MustCompile(axes[i].pattern)
		}
	}
}

func (b *behavior) parse(axis Axis, segment string) (*Qualifier, bool) {
	if b.kind == kindEnum {
		v, ok := b.values.lookup(segment)
		if !ok {
			return nil, false
		}
		return &Qualifier{axis: axis, value: v}, true
	}

	m := b.grammar.FindStringSubmatch(segment)
	if len(m) == 0 {
		return nil, false
	}
	switch b.kind {
	case kindText:
		return &Qualifier{axis: axis, text: m[1]}, true
	case kindCode:
		v, err := strconv.Atoi(m[1])
		if err != nil {
			return nil, false
		}
		q := &Qualifier{axis: axis, value: v}
		// Keep a written width the default rendering would lose, as in mnc01.
		if len(m[1]) != len(b.codeDigits(v, 0)) {
			q.value2 = len(m[1])
		}
		if !q.IsValid() {
			return nil, false
		}
		return q, true
	case kindDimension:
		v1, err1 := strconv.Atoi(m[1])
		v2, err2 := strconv.Atoi(m[2])
		if err1 != nil || err2 != nil {
			return nil, false
		}
		q := NewScreenDimension(v1, v2)
		if !q.IsValid() {
			return nil, false
		}
		return q, true
	default:
		v, err := strconv.Atoi(m[1])
		if err != nil {
			return nil, false
		}
		return &Qualifier{axis: axis, value: v}, true
	}
}

func (b *behavior) rawSegment(q *Qualifier) string {
	switch b.kind {
	case kindText:
		return b.prefix + q.text
	case kindEnum:
		return b.values.folder(q.value)
	case kindCode:
		return b.prefix + b.codeDigits(q.value, q.value2)
	case kindDimension:
		return fmt.Sprintf("%dx%d", q.value, q.value2)
	default:
		return b.prefix + strconv.Itoa(q.value) + b.suffix
	}
}

// codeDigits renders a code zero padded to the axis width, or to width when
// larger.
func (b *behavior) codeDigits(v, width int) string {
	if width < b.digits {
		width = b.digits
	}
	return fmt.Sprintf("%0*d", width, v)
}

func (b *behavior) valid(q *Qualifier) bool {
	switch b.kind {
	case kindEnum:
		return q.value >= 0 && q.value < len(b.values)
	case kindDimension:
		return q.value > 0 && q.value2 > 0
	case kindCode:
		return q.value >= b.minCode && q.value <= b.maxCode && q.value2 <= 3
	default:
		return q.value >= 0 && b.grammar.MatchString(b.rawSegment(q))
	}
}

func (b *behavior) segment(q *Qualifier) string {
	return b.rawSegment(q)
}

func (b *behavior) short(q *Qualifier) string {
	switch b.kind {
	case kindEnum:
		return b.values.display(q.value)
	case kindText:
		return fmt.Sprintf(b.shortFmt, q.text)
	case kindDimension:
		return fmt.Sprintf(b.shortFmt, q.value, q.value2)
	default:
		return fmt.Sprintf(b.shortFmt, q.value)
	}
}

func (b *behavior) long(q *Qualifier) string {
	switch b.kind {
	case kindEnum:
		return b.values.display(q.value)
	case kindText:
		return fmt.Sprintf(b.longFmt, q.text)
	case kindDimension:
		return fmt.Sprintf(b.longFmt, q.value, q.value2)
	}
	s := fmt.Sprintf(b.longFmt, q.value)
	if q.axis == AxisVersion {
		if codename, ok := apiCodenames[q.value]; ok {
			s += " (" + codename + ")"
		}
	}
	return s
}

var apiCodenames = map[int]string{
	9:  "G",
	14: "I",
	16: "J",
	17: "J-MR1",
	18: "J-MR2",
	19: "K",
	21: "L",
	22: "L-MR1",
	23: "M",
	24: "N",
	25: "N-MR1",
	26: "O",
}

func matchEqual(q, ref *Qualifier) bool {
	return q.Equals(ref)
}

// matchCode compares code values only: mnc01 and mnc1 name the same network.
func matchCode(q, ref *Qualifier) bool {
	return q.value == ref.value
}

func matchAlways(q, ref *Qualifier) bool {
	return true
}

// matchAtMost accepts any value up to the reference: a v11 resource runs on
// v14, and a large layout is usable on an xlarge screen.
func matchAtMost(q, ref *Qualifier) bool {
	return q.value <= ref.value
}

// matchUiMode lets normal mode stand in for any mode.
func matchUiMode(q, ref *Qualifier) bool {
	return Mode(q.value) == ModeNormal || q.value == ref.value
}

// matchKeyboard accepts an exposed keyboard resource for a soft keyboard device.
func matchKeyboard(q, ref *Qualifier) bool {
	if Keyboard(ref.value) == KeysSoft && Keyboard(q.value) == KeysExposed {
		return true
	}
	return q.value == ref.value
}

func neverBetter(q, best, ref *Qualifier) bool {
	return false
}

// closestBelow prefers an exact match, then the highest value not above the
// reference. IsMatchFor has already excluded values above it.
func closestBelow(q, best, ref *Qualifier) bool {
	if best == nil {
		return true
	}
	if best.value == ref.value {
		return false
	}
	if q.value == ref.value {
		return true
	}
	return q.value > best.value
}

// betterDensity prefers an exact density, otherwise the highest dpi since
// scaling down looks better than scaling up.
func betterDensity(q, best, ref *Qualifier) bool {
	if best == nil {
		return true
	}
	if best.value == ref.value {
		return false
	}
	if q.value == ref.value {
		return true
	}
	return Dpi(q.value).DpiValue() > Dpi(best.value).DpiValue()
}

func betterUiMode(q, best, ref *Qualifier) bool {
	if best == nil {
		return true
	}
	if best.value == ref.value {
		return false
	}
	return q.value == ref.value || Mode(q.value) == ModeNormal
}

// betterKeyboard only has something to decide for a soft keyboard device, where
// both keyssoft and keysexposed match and keyssoft wins.
func betterKeyboard(q, best, ref *Qualifier) bool {
	if best == nil {
		return true
	}
	if Keyboard(ref.value) != KeysSoft || Keyboard(best.value) == KeysSoft {
		return false
	}
	return Keyboard(q.value) == KeysSoft
}
