package folderconfig

import (
	"fmt"

	q "github.com/vtex/go-resconfig/qualifier"
)

func (c *Configuration) set(axis q.Axis, value *q.Qualifier) {
	if value != nil && value.Axis() != axis {
		panic(fmt.Sprintf("Cannot store a %s qualifier in the %s slot", value.Axis(), axis))
	}
	c.qualifiers[axis] = value
}

func (c *Configuration) CountryCode() *q.Qualifier         { return c.qualifiers[q.AxisCountryCode] }
func (c *Configuration) NetworkCode() *q.Qualifier         { return c.qualifiers[q.AxisNetworkCode] }
func (c *Configuration) Language() *q.Qualifier            { return c.qualifiers[q.AxisLanguage] }
func (c *Configuration) Region() *q.Qualifier              { return c.qualifiers[q.AxisRegion] }
func (c *Configuration) SmallestScreenWidth() *q.Qualifier { return c.qualifiers[q.AxisSmallestScreenWidth] }
func (c *Configuration) ScreenWidth() *q.Qualifier         { return c.qualifiers[q.AxisScreenWidth] }
func (c *Configuration) ScreenHeight() *q.Qualifier        { return c.qualifiers[q.AxisScreenHeight] }
func (c *Configuration) ScreenSize() *q.Qualifier          { return c.qualifiers[q.AxisScreenSize] }
func (c *Configuration) ScreenRatio() *q.Qualifier         { return c.qualifiers[q.AxisScreenRatio] }
func (c *Configuration) ScreenOrientation() *q.Qualifier   { return c.qualifiers[q.AxisScreenOrientation] }
func (c *Configuration) UiMode() *q.Qualifier              { return c.qualifiers[q.AxisUiMode] }
func (c *Configuration) NightMode() *q.Qualifier           { return c.qualifiers[q.AxisNightMode] }
func (c *Configuration) Density() *q.Qualifier             { return c.qualifiers[q.AxisDensity] }
func (c *Configuration) TouchScreen() *q.Qualifier         { return c.qualifiers[q.AxisTouchScreen] }
func (c *Configuration) KeyboardState() *q.Qualifier       { return c.qualifiers[q.AxisKeyboardState] }
func (c *Configuration) TextInputMethod() *q.Qualifier     { return c.qualifiers[q.AxisTextInputMethod] }
func (c *Configuration) NavigationState() *q.Qualifier     { return c.qualifiers[q.AxisNavigationState] }
func (c *Configuration) NavigationMethod() *q.Qualifier    { return c.qualifiers[q.AxisNavigationMethod] }
func (c *Configuration) ScreenDimension() *q.Qualifier     { return c.qualifiers[q.AxisScreenDimension] }
func (c *Configuration) Version() *q.Qualifier             { return c.qualifiers[q.AxisVersion] }

// The setters panic when handed a qualifier of another axis. A nil value
// clears the slot.

func (c *Configuration) SetCountryCode(v *q.Qualifier)      { c.set(q.AxisCountryCode, v) }
func (c *Configuration) SetNetworkCode(v *q.Qualifier)      { c.set(q.AxisNetworkCode, v) }
func (c *Configuration) SetLanguage(v *q.Qualifier)         { c.set(q.AxisLanguage, v) }
func (c *Configuration) SetRegion(v *q.Qualifier)           { c.set(q.AxisRegion, v) }
func (c *Configuration) SetSmallestScreenWidth(v *q.Qualifier) {
	c.set(q.AxisSmallestScreenWidth, v)
}
func (c *Configuration) SetScreenWidth(v *q.Qualifier)       { c.set(q.AxisScreenWidth, v) }
func (c *Configuration) SetScreenHeight(v *q.Qualifier)      { c.set(q.AxisScreenHeight, v) }
func (c *Configuration) SetScreenSize(v *q.Qualifier)        { c.set(q.AxisScreenSize, v) }
func (c *Configuration) SetScreenRatio(v *q.Qualifier)       { c.set(q.AxisScreenRatio, v) }
func (c *Configuration) SetScreenOrientation(v *q.Qualifier) { c.set(q.AxisScreenOrientation, v) }
func (c *Configuration) SetUiMode(v *q.Qualifier)            { c.set(q.AxisUiMode, v) }
func (c *Configuration) SetNightMode(v *q.Qualifier)         { c.set(q.AxisNightMode, v) }
func (c *Configuration) SetDensity(v *q.Qualifier)           { c.set(q.AxisDensity, v) }
func (c *Configuration) SetTouchScreen(v *q.Qualifier)       { c.set(q.AxisTouchScreen, v) }
func (c *Configuration) SetKeyboardState(v *q.Qualifier)     { c.set(q.AxisKeyboardState, v) }
func (c *Configuration) SetTextInputMethod(v *q.Qualifier)   { c.set(q.AxisTextInputMethod, v) }
func (c *Configuration) SetNavigationState(v *q.Qualifier)   { c.set(q.AxisNavigationState, v) }
func (c *Configuration) SetNavigationMethod(v *q.Qualifier)  { c.set(q.AxisNavigationMethod, v) }
func (c *Configuration) SetScreenDimension(v *q.Qualifier)   { c.set(q.AxisScreenDimension, v) }
func (c *Configuration) SetVersion(v *q.Qualifier)           { c.set(q.AxisVersion, v) }
