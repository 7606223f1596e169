package qualifier

// Enumerated qualifier values. Each enum has a folder value (the token used in
// resource folder names) and a display value. The constant order is the
// sort order of the values.

type enumValue struct {
	folder  string
	display string
}

type enumTable []enumValue

func (t enumTable) lookup(segment string) (int, bool) {
	for i, v := range t {
		if v.folder != "" && v.folder == segment {
			return i, true
		}
	}
	return -1, false
}

func (t enumTable) folder(i int) string {
	if i < 0 || i >= len(t) {
		return ""
	}
	return t[i].folder
}

func (t enumTable) display(i int) string {
	if i < 0 || i >= len(t) {
		return ""
	}
	return t[i].display
}

// Size is the screen layout size. Larger sizes sort after smaller ones.
type Size int

const (
	SizeSmall Size = iota
	SizeNormal
	SizeLarge
	SizeXLarge
)

var sizeValues = enumTable{
	{"small", "Small"},
	{"normal", "Normal"},
	{"large", "Large"},
	{"xlarge", "X-Large"},
}

func (v Size) FolderValue() string { return sizeValues.folder(int(v)) }
func (v Size) String() string      { return sizeValues.display(int(v)) }

type Ratio int

const (
	RatioLong Ratio = iota
	RatioNotLong
)

var ratioValues = enumTable{
	{"long", "Long"},
	{"notlong", "Not Long"},
}

func (v Ratio) FolderValue() string { return ratioValues.folder(int(v)) }
func (v Ratio) String() string      { return ratioValues.display(int(v)) }

type Orientation int

const (
	OrientationPortrait Orientation = iota
	OrientationLandscape
	OrientationSquare
)

var orientationValues = enumTable{
	{"port", "Portrait"},
	{"land", "Landscape"},
	{"square", "Square"},
}

func (v Orientation) FolderValue() string { return orientationValues.folder(int(v)) }
func (v Orientation) String() string      { return orientationValues.display(int(v)) }

// Mode is the UI mode. ModeNormal has no folder value: it only exists on
// reference configurations and matches every other mode.
type Mode int

const (
	ModeNormal Mode = iota
	ModeCar
	ModeDesk
	ModeTelevision
	ModeAppliance
)

var modeValues = enumTable{
	{"", "Normal"},
	{"car", "Car Dock"},
	{"desk", "Desk Dock"},
	{"television", "Television"},
	{"appliance", "Appliance"},
}

func (v Mode) FolderValue() string { return modeValues.folder(int(v)) }
func (v Mode) String() string      { return modeValues.display(int(v)) }

type Night int

const (
	NightOff Night = iota
	NightOn
)

var nightValues = enumTable{
	{"notnight", "Not Night"},
	{"night", "Night"},
}

func (v Night) FolderValue() string { return nightValues.folder(int(v)) }
func (v Night) String() string      { return nightValues.display(int(v)) }

// DefaultDpi is the baseline density against which dp values are computed.
const DefaultDpi = 160

type Dpi int

const (
	DpiLow Dpi = iota
	DpiMedium
	DpiTV
	DpiHigh
	DpiXHigh
	DpiXXHigh
	DpiNone
)

var dpiValues = enumTable{
	{"ldpi", "Low Density"},
	{"mdpi", "Medium Density"},
	{"tvdpi", "TV Density"},
	{"hdpi", "High Density"},
	{"xhdpi", "X-High Density"},
	{"xxhdpi", "XX-High Density"},
	{"nodpi", "No Density"},
}

var dpiPerInch = [...]int{
	DpiLow:    120,
	DpiMedium: 160,
	DpiTV:     213,
	DpiHigh:   240,
	DpiXHigh:  320,
	DpiXXHigh: 480,
	DpiNone:   0,
}

func (v Dpi) FolderValue() string { return dpiValues.folder(int(v)) }
func (v Dpi) String() string      { return dpiValues.display(int(v)) }

// DpiValue returns the dots per inch for the density, 0 for DpiNone.
func (v Dpi) DpiValue() int {
	if v < 0 || int(v) >= len(dpiPerInch) {
		return 0
	}
	return dpiPerInch[v]
}

type Touch int

const (
	TouchNone Touch = iota
	TouchStylus
	TouchFinger
)

var touchValues = enumTable{
	{"notouch", "No Touch"},
	{"stylus", "Stylus"},
	{"finger", "Finger"},
}

func (v Touch) FolderValue() string { return touchValues.folder(int(v)) }
func (v Touch) String() string      { return touchValues.display(int(v)) }

type Keyboard int

const (
	KeysExposed Keyboard = iota
	KeysHidden
	KeysSoft
)

var keyboardValues = enumTable{
	{"keysexposed", "Exposed"},
	{"keyshidden", "Hidden"},
	{"keyssoft", "Soft"},
}

func (v Keyboard) FolderValue() string { return keyboardValues.folder(int(v)) }
func (v Keyboard) String() string      { return keyboardValues.display(int(v)) }

type Input int

const (
	InputNoKeys Input = iota
	InputQwerty
	InputTwelveKey
)

var inputValues = enumTable{
	{"nokeys", "No Keys"},
	{"qwerty", "Qwerty"},
	{"12key", "12 Key"},
}

func (v Input) FolderValue() string { return inputValues.folder(int(v)) }
func (v Input) String() string      { return inputValues.display(int(v)) }

type NavState int

const (
	NavStateExposed NavState = iota
	NavStateHidden
)

var navStateValues = enumTable{
	{"navexposed", "Exposed"},
	{"navhidden", "Hidden"},
}

func (v NavState) FolderValue() string { return navStateValues.folder(int(v)) }
func (v NavState) String() string      { return navStateValues.display(int(v)) }

type NavMethod int

const (
	NavMethodNone NavMethod = iota
	NavMethodDpad
	NavMethodTrackball
	NavMethodWheel
)

var navMethodValues = enumTable{
	{"nonav", "No Navigation"},
	{"dpad", "D-pad"},
	{"trackball", "Trackball"},
	{"wheel", "Wheel"},
}

func (v NavMethod) FolderValue() string { return navMethodValues.folder(int(v)) }
func (v NavMethod) String() string      { return navMethodValues.display(int(v)) }
