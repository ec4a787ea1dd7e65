// SPDX-License-Identifier: Apache-2.0
// Copyright Contributors to the OpenTimelineIO project

package ges

// PropertyKind is the value type of a declared property.
type PropertyKind int

const (
	KindString PropertyKind = iota
	KindBool
	KindEnum
)

func (k PropertyKind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindBool:
		return "boolean"
	case KindEnum:
		return "enum"
	}
	return "invalid"
}

// PropertySpec describes one attribute of a timeline object.
type PropertySpec struct {
	Name    string
	Nick    string
	Blurb   string
	Kind    PropertyKind
	Enum    *EnumTable // KindEnum only
	Default any
	// Applies is the media type of the track nodes the attribute is pushed to.
	Applies MediaType
}

// Property names.
const (
	PropText       = "text"
	PropFontDesc   = "font-desc"
	PropHAlignment = "halignment"
	PropVAlignment = "valignment"
	PropMute       = "mute"
	PropPattern    = "pattern"
)

// Defaults shared with the title sources of the editing services.
const (
	DefaultText     = ""
	DefaultFontDesc = "Serif 36"
	DefaultHAlign   = HAlignCenter
	DefaultVAlign   = VAlignBaseline
	DefaultPattern  = PatternBlack
)

var overlayProperties = []PropertySpec{
	{
		Name: PropText, Nick: "Text", Blurb: "The text to display",
		Kind: KindString, Default: DefaultText, Applies: MediaVideo,
	},
	{
		Name: PropFontDesc, Nick: "font description",
		Blurb: "Pango font description of font to be used for rendering. " +
			"See documentation of pango_font_description_from_string for syntax.",
		Kind: KindString, Default: DefaultFontDesc, Applies: MediaVideo,
	},
	{
		Name: PropHAlignment, Nick: "horizontal alignment", Blurb: "Horizontal alignment of the text",
		Kind: KindEnum, Enum: HAlignEnum, Default: DefaultHAlign, Applies: MediaVideo,
	},
	{
		Name: PropVAlignment, Nick: "vertical alignment", Blurb: "Vertical alignment of the text",
		Kind: KindEnum, Enum: VAlignEnum, Default: DefaultVAlign, Applies: MediaVideo,
	},
	{
		Name: PropMute, Nick: "Mute", Blurb: "Mute audio track",
		Kind: KindBool, Default: false, Applies: MediaAudio,
	},
}

var testSourceProperties = []PropertySpec{
	{
		Name: PropPattern, Nick: "Pattern", Blurb: "Test pattern to generate",
		Kind: KindEnum, Enum: PatternEnum, Default: DefaultPattern, Applies: MediaVideo,
	},
}

func lookupProperty(specs []PropertySpec, name string) (PropertySpec, bool) {
	for _, ps := range specs {
		if ps.Name == name {
			return ps, true
		}
	}
	return PropertySpec{}, false
}

func copySpecs(specs []PropertySpec) []PropertySpec {
	out := make([]PropertySpec, len(specs))
	copy(out, specs)
	return out
}

func asString(name string, value any) (string, error) {
	s, ok := value.(string)
	if !ok {
		return "", invalidAttribute(name, value)
	}
	return s, nil
}

func asBool(name string, value any) (bool, error) {
	b, ok := value.(bool)
	if !ok {
		return false, invalidAttribute(name, value)
	}
	return b, nil
}

// asEnum accepts the enum's own Go type, a plain int or a nick.
func asEnum(table *EnumTable, name string, value any) (int, error) {
	var v int
	switch tv := value.(type) {
	case HAlign:
		if table != HAlignEnum {
			return 0, invalidAttribute(name, value)
		}
		v = int(tv)
	case VAlign:
		if table != VAlignEnum {
			return 0, invalidAttribute(name, value)
		}
		v = int(tv)
	case Pattern:
		if table != PatternEnum {
			return 0, invalidAttribute(name, value)
		}
		v = int(tv)
	case int:
		v = tv
	case string:
		n, err := table.Parse(tv)
		if err != nil {
			return 0, invalidAttribute(name, value)
		}
		v = n
	default:
		return 0, invalidAttribute(name, value)
	}
	if !table.Contains(v) {
		return 0, invalidAttribute(name, value)
	}
	return v, nil
}
