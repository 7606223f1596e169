package qualifier

import (
	"sort"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestRecognize(t *testing.T) {
	Convey("Recognize", t, func() {
		Convey("It should parse each axis grammar", func() {
			cases := map[string]*Qualifier{
				"mcc310":      NewCountryCode(310),
				"mnc26":       NewNetworkCode(26),
				"en":          NewLanguage("en"),
				"rUS":         NewRegion("US"),
				"sw600dp":     NewSmallestScreenWidth(600),
				"w720dp":      NewScreenWidth(720),
				"h480dp":      NewScreenHeight(480),
				"xlarge":      NewScreenSize(SizeXLarge),
				"notlong":     NewScreenRatio(RatioNotLong),
				"land":        NewScreenOrientation(OrientationLandscape),
				"television":  NewUiMode(ModeTelevision),
				"night":       NewNightMode(NightOn),
				"xhdpi":       NewDensity(DpiXHigh),
				"finger":      NewTouchScreen(TouchFinger),
				"keyssoft":    NewKeyboardState(KeysSoft),
				"12key":       NewTextInputMethod(InputTwelveKey),
				"navhidden":   NewNavigationState(NavStateHidden),
				"trackball":   NewNavigationMethod(NavMethodTrackball),
				"1280x720":    NewScreenDimension(1280, 720),
				"v14":         NewVersion(14),
			}
			for segment, expected := range cases {
				q, err := Parse(segment)
				So(err, ShouldBeNil)
				So(q.Equals(expected), ShouldBeTrue)
				So(q.IsValid(), ShouldBeTrue)
				So(q.FolderSegment(), ShouldEqual, segment)
			}
		})

		Convey("It should only accept a segment on its own axis", func() {
			_, ok := Recognize(AxisRegion, "en")
			So(ok, ShouldBeFalse)

			q, ok := Recognize(AxisLanguage, "en")
			So(ok, ShouldBeTrue)
			So(q.Axis(), ShouldEqual, AxisLanguage)
		})

		Convey("It should skip earlier axes when recognizing from a cursor", func() {
			_, ok := RecognizeFrom(AxisDensity, "en")
			So(ok, ShouldBeFalse)

			q, ok := RecognizeFrom(AxisDensity, "v11")
			So(ok, ShouldBeTrue)
			So(q.Axis(), ShouldEqual, AxisVersion)
		})

		Convey("It should reject malformed segments", func() {
			for _, segment := range []string{"", "EN", "rus", "mcc31", "sw600", "w-1dp", "v", "0x720", "normaldpi", "foo"} {
				_, err := Parse(segment)
				So(err, ShouldNotBeNil)
			}
		})

		Convey("It should keep leading zeros of country and network codes", func() {
			mcc, err := Parse("mcc001")
			So(err, ShouldBeNil)
			So(mcc.IsValid(), ShouldBeTrue)
			So(mcc.Number(), ShouldEqual, 1)
			So(mcc.FolderSegment(), ShouldEqual, "mcc001")
			So(mcc.Equals(NewCountryCode(1)), ShouldBeTrue)
			So(NewCountryCode(1).FolderSegment(), ShouldEqual, "mcc001")

			for _, segment := range []string{"mnc01", "mnc00", "mnc001", "mnc1", "mnc260"} {
				mnc, err := Parse(segment)
				So(err, ShouldBeNil)
				So(mnc.IsValid(), ShouldBeTrue)
				So(mnc.FolderSegment(), ShouldEqual, segment)
			}
		})

		Convey("It should match network codes by value whatever their width", func() {
			So(MustParse("mnc01").IsMatchFor(NewNetworkCode(1)), ShouldBeTrue)
			So(MustParse("mnc01").IsMatchFor(NewNetworkCode(10)), ShouldBeFalse)
		})

		Convey("It should reject out of range codes", func() {
			_, err := Parse("mcc000")
			So(err, ShouldNotBeNil)
			So(NewCountryCode(1000).IsValid(), ShouldBeFalse)
			So(NewNetworkCode(-1).IsValid(), ShouldBeFalse)
		})

		Convey("It should store the larger screen dimension first", func() {
			q := MustParse("720x1280")
			v1, v2 := q.Dimensions()
			So(v1, ShouldEqual, 1280)
			So(v2, ShouldEqual, 720)
			So(q.FolderSegment(), ShouldEqual, "1280x720")
		})

		Convey("It should panic on MustParse of an invalid segment", func() {
			So(func() { MustParse("nope") }, ShouldPanic)
		})
	})
}

func TestFakeQualifiers(t *testing.T) {
	Convey("Fake qualifiers", t, func() {
		Convey("They should be present but never valid", func() {
			for _, axis := range Axes() {
				q := NewFake(axis)
				So(q.HasFakeValue(), ShouldBeTrue)
				So(q.IsValid(), ShouldBeFalse)
				So(q.FolderSegment(), ShouldEqual, "")
				So(q.Axis(), ShouldEqual, axis)
			}
		})

		Convey("They should not equal a real value", func() {
			So(NewFake(AxisLanguage).Equals(NewLanguage("en")), ShouldBeFalse)
			So(NewFake(AxisLanguage).Equals(NewFake(AxisLanguage)), ShouldBeTrue)
		})

		Convey("They should sort before real values", func() {
			So(NewFake(AxisVersion).LessThan(NewVersion(1)), ShouldBeTrue)
		})
	})
}

func TestIsMatchFor(t *testing.T) {
	Convey("IsMatchFor", t, func() {
		Convey("Equality axes should match only the same value", func() {
			So(NewLanguage("en").IsMatchFor(NewLanguage("en")), ShouldBeTrue)
			So(NewLanguage("en").IsMatchFor(NewLanguage("fr")), ShouldBeFalse)
			So(NewScreenOrientation(OrientationPortrait).IsMatchFor(NewScreenOrientation(OrientationLandscape)), ShouldBeFalse)
		})

		Convey("Minimum axes should match values up to the reference", func() {
			So(NewVersion(11).IsMatchFor(NewVersion(14)), ShouldBeTrue)
			So(NewVersion(14).IsMatchFor(NewVersion(14)), ShouldBeTrue)
			So(NewVersion(15).IsMatchFor(NewVersion(14)), ShouldBeFalse)
			So(NewSmallestScreenWidth(600).IsMatchFor(NewSmallestScreenWidth(720)), ShouldBeTrue)
			So(NewScreenWidth(800).IsMatchFor(NewScreenWidth(720)), ShouldBeFalse)
		})

		Convey("Screen size should match smaller sizes", func() {
			So(NewScreenSize(SizeLarge).IsMatchFor(NewScreenSize(SizeXLarge)), ShouldBeTrue)
			So(NewScreenSize(SizeXLarge).IsMatchFor(NewScreenSize(SizeLarge)), ShouldBeFalse)
		})

		Convey("Density should always match", func() {
			So(NewDensity(DpiLow).IsMatchFor(NewDensity(DpiXHigh)), ShouldBeTrue)
			So(NewDensity(DpiNone).IsMatchFor(NewDensity(DpiMedium)), ShouldBeTrue)
		})

		Convey("Normal UI mode should match every mode", func() {
			So(NewUiMode(ModeNormal).IsMatchFor(NewUiMode(ModeCar)), ShouldBeTrue)
			So(NewUiMode(ModeDesk).IsMatchFor(NewUiMode(ModeCar)), ShouldBeFalse)
			So(NewUiMode(ModeCar).IsMatchFor(NewUiMode(ModeCar)), ShouldBeTrue)
		})

		Convey("An exposed keyboard should match a soft keyboard device", func() {
			So(NewKeyboardState(KeysExposed).IsMatchFor(NewKeyboardState(KeysSoft)), ShouldBeTrue)
			So(NewKeyboardState(KeysSoft).IsMatchFor(NewKeyboardState(KeysExposed)), ShouldBeFalse)
			So(NewKeyboardState(KeysHidden).IsMatchFor(NewKeyboardState(KeysSoft)), ShouldBeFalse)
		})

		Convey("Qualifiers of different axes should never match", func() {
			So(NewVersion(4).IsMatchFor(NewScreenWidth(4)), ShouldBeFalse)
			So(NewVersion(4).IsMatchFor(nil), ShouldBeFalse)
		})
	})
}

func TestIsBetterMatchThan(t *testing.T) {
	Convey("IsBetterMatchThan", t, func() {
		Convey("Minimum axes should prefer the closest value below the reference", func() {
			ref := NewVersion(14)
			So(NewVersion(4).IsBetterMatchThan(nil, ref), ShouldBeTrue)
			So(NewVersion(11).IsBetterMatchThan(NewVersion(4), ref), ShouldBeTrue)
			So(NewVersion(4).IsBetterMatchThan(NewVersion(11), ref), ShouldBeFalse)
			So(NewVersion(14).IsBetterMatchThan(NewVersion(11), ref), ShouldBeTrue)
			So(NewVersion(13).IsBetterMatchThan(NewVersion(14), ref), ShouldBeFalse)
		})

		Convey("Density should prefer exact, then higher dpi", func() {
			ref := NewDensity(DpiHigh)
			So(NewDensity(DpiXHigh).IsBetterMatchThan(NewDensity(DpiMedium), ref), ShouldBeTrue)
			So(NewDensity(DpiLow).IsBetterMatchThan(NewDensity(DpiMedium), ref), ShouldBeFalse)
			So(NewDensity(DpiHigh).IsBetterMatchThan(NewDensity(DpiXHigh), ref), ShouldBeTrue)
			So(NewDensity(DpiXXHigh).IsBetterMatchThan(NewDensity(DpiHigh), ref), ShouldBeFalse)
		})

		Convey("UI mode should prefer exact, then normal", func() {
			ref := NewUiMode(ModeCar)
			So(NewUiMode(ModeNormal).IsBetterMatchThan(nil, ref), ShouldBeTrue)
			So(NewUiMode(ModeCar).IsBetterMatchThan(NewUiMode(ModeNormal), ref), ShouldBeTrue)
			So(NewUiMode(ModeNormal).IsBetterMatchThan(NewUiMode(ModeCar), ref), ShouldBeFalse)
		})

		Convey("Soft keyboard should beat exposed on a soft keyboard device", func() {
			ref := NewKeyboardState(KeysSoft)
			So(NewKeyboardState(KeysSoft).IsBetterMatchThan(NewKeyboardState(KeysExposed), ref), ShouldBeTrue)
			So(NewKeyboardState(KeysExposed).IsBetterMatchThan(NewKeyboardState(KeysSoft), ref), ShouldBeFalse)
		})

		Convey("Equality axes should never report a better match", func() {
			So(NewLanguage("en").IsBetterMatchThan(nil, NewLanguage("en")), ShouldBeFalse)
		})
	})
}

func TestDisplayAndSort(t *testing.T) {
	Convey("Display values", t, func() {
		So(NewLanguage("en").LongDisplayValue(), ShouldEqual, "Language en")
		So(NewRegion("US").ShortDisplayValue(), ShouldEqual, "US")
		So(NewDensity(DpiHigh).LongDisplayValue(), ShouldEqual, "High Density")
		So(NewVersion(16).LongDisplayValue(), ShouldEqual, "API Level 16 (J)")
		So(NewVersion(15).LongDisplayValue(), ShouldEqual, "API Level 15")
		So(NewCountryCode(31).LongDisplayValue(), ShouldEqual, "Mobile Country Code 31")
		So(NewCountryCode(0).LongDisplayValue(), ShouldEqual, "")
		So(NewUiMode(ModeNormal).String(), ShouldEqual, "Normal")
	})

	Convey("Sorting", t, func() {
		qs := []*Qualifier{NewVersion(14), NewLanguage("fr"), NewVersion(4), NewLanguage("en")}
		sort.Slice(qs, LessQualifier(qs))
		So(qs[0].Equals(NewLanguage("en")), ShouldBeTrue)
		So(qs[1].Equals(NewLanguage("fr")), ShouldBeTrue)
		So(qs[2].Equals(NewVersion(4)), ShouldBeTrue)
		So(qs[3].Equals(NewVersion(14)), ShouldBeTrue)

		sort.Slice(qs, Reverse(LessQualifier(qs)))
		So(qs[0].Equals(NewVersion(14)), ShouldBeTrue)
	})

	Convey("Compare should sort nil first", t, func() {
		var none *Qualifier
		So(none.Compare(nil), ShouldEqual, 0)
		So(none.Compare(NewVersion(1)), ShouldEqual, -1)
		So(NewVersion(1).Compare(nil), ShouldEqual, 1)
		So(none.LessThan(NewLanguage("en")), ShouldBeTrue)
	})

	Convey("Axes", t, func() {
		So(len(Axes()), ShouldEqual, 20)
		So(AxisVersion.String(), ShouldEqual, "Version")
		axis, ok := ParseAxis("density")
		So(ok, ShouldBeTrue)
		So(axis, ShouldEqual, AxisDensity)
		_, ok = ParseAxis("nope")
		So(ok, ShouldBeFalse)
	})
}
