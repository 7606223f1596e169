package qualifier

import "strings"

// Axis identifies one dimension of resource variation.
//
// The numeric order of the constants is the matching precedence used by the
// resolver and the order in which qualifiers must appear in a folder name.
// Reordering them changes which resource wins a match.
type Axis int

const (
	AxisCountryCode Axis = iota
	AxisNetworkCode
	AxisLanguage
	AxisRegion
	AxisSmallestScreenWidth
	AxisScreenWidth
	AxisScreenHeight
	AxisScreenSize
	AxisScreenRatio
	AxisScreenOrientation
	AxisUiMode
	AxisNightMode
	AxisDensity
	AxisTouchScreen
	AxisKeyboardState
	AxisTextInputMethod
	AxisNavigationState
	AxisNavigationMethod
	AxisScreenDimension
	AxisVersion

	// AxisCount is the number of axes, not an axis itself.
	AxisCount
)

var axisNames = [AxisCount]string{
	AxisCountryCode:         "CountryCode",
	AxisNetworkCode:         "NetworkCode",
	AxisLanguage:            "Language",
	AxisRegion:              "Region",
	AxisSmallestScreenWidth: "SmallestScreenWidth",
	AxisScreenWidth:         "ScreenWidth",
	AxisScreenHeight:        "ScreenHeight",
	AxisScreenSize:          "ScreenSize",
	AxisScreenRatio:         "ScreenRatio",
	AxisScreenOrientation:   "ScreenOrientation",
	AxisUiMode:              "UiMode",
	AxisNightMode:           "NightMode",
	AxisDensity:             "Density",
	AxisTouchScreen:         "TouchScreen",
	AxisKeyboardState:       "KeyboardState",
	AxisTextInputMethod:     "TextInputMethod",
	AxisNavigationState:     "NavigationState",
	AxisNavigationMethod:    "NavigationMethod",
	AxisScreenDimension:     "ScreenDimension",
	AxisVersion:             "Version",
}

func (a Axis) String() string {
	if !a.IsValid() {
		return "Unknown"
	}
	return axisNames[a]
}

func (a Axis) IsValid() bool {
	return a >= 0 && a < AxisCount
}

// Axes returns every axis in precedence order.
func Axes() []Axis {
	axes := make([]Axis, AxisCount)
	for i := range axes {
		axes[i] = Axis(i)
	}
	return axes
}

// ParseAxis looks an axis up by name, ignoring case.
func ParseAxis(name string) (Axis, bool) {
	for i, n := range axisNames {
		if strings.EqualFold(n, name) {
			return Axis(i), true
		}
	}
	return -1, false
}

func (a Axis) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}
