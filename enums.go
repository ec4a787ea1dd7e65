// SPDX-License-Identifier: Apache-2.0
// Copyright Contributors to the OpenTimelineIO project

package ges

import (
	"strconv"

	"github.com/pkg/errors"
)

// EnumValue is one member of a registered enumeration.
type EnumValue struct {
	Value int
	Name  string
	Nick  string
}

// EnumTable describes a closed enumeration for introspection.
type EnumTable struct {
	TypeName string
	Values   []EnumValue
}

// Lookup returns the member with the given numeric value.
func (t *EnumTable) Lookup(v int) (EnumValue, bool) {
	for _, ev := range t.Values {
		if ev.Value == v {
			return ev, true
		}
	}
	return EnumValue{}, false
}

// ByNick returns the member whose nick or name is s.
func (t *EnumTable) ByNick(s string) (EnumValue, bool) {
	for _, ev := range t.Values {
		if ev.Nick == s || ev.Name == s {
			return ev, true
		}
	}
	return EnumValue{}, false
}

// Contains reports whether v is a declared value.
func (t *EnumTable) Contains(v int) bool {
	_, ok := t.Lookup(v)
	return ok
}

// Nicks lists the members' nicks in declaration order.
func (t *EnumTable) Nicks() []string {
	nicks := make([]string, len(t.Values))
	for i, ev := range t.Values {
		nicks[i] = ev.Nick
	}
	return nicks
}

// Parse accepts a nick, a name or a decimal value.
func (t *EnumTable) Parse(s string) (int, error) {
	if ev, ok := t.ByNick(s); ok {
		return ev.Value, nil
	}
	if n, err := strconv.Atoi(s); err == nil && t.Contains(n) {
		return n, nil
	}
	return 0, errors.Wrapf(ErrInvalidAttribute, "%q is not a %s", s, t.TypeName)
}

func (t *EnumTable) nick(v int) string {
	if ev, ok := t.Lookup(v); ok {
		return ev.Nick
	}
	return t.TypeName + "(" + strconv.Itoa(v) + ")"
}

func (t *EnumTable) marshal(v int) ([]byte, error) {
	ev, ok := t.Lookup(v)
	if !ok {
		return nil, errors.Wrapf(ErrInvalidAttribute, "%d is not a %s", v, t.TypeName)
	}
	return []byte(ev.Nick), nil
}

// HAlign is the horizontal alignment of overlay text.
type HAlign int

const (
	HAlignLeft HAlign = iota
	HAlignCenter
	HAlignRight
)

// HAlignEnum is the registered HAlign table.
var HAlignEnum = &EnumTable{
	TypeName: "GESTimelineOverlayHAlign",
	Values: []EnumValue{
		{int(HAlignLeft), "left", "left"},
		{int(HAlignCenter), "center", "center"},
		{int(HAlignRight), "right", "right"},
	},
}

func (a HAlign) Valid() bool                  { return HAlignEnum.Contains(int(a)) }
func (a HAlign) String() string               { return HAlignEnum.nick(int(a)) }
func (a HAlign) MarshalText() ([]byte, error) { return HAlignEnum.marshal(int(a)) }

func (a *HAlign) UnmarshalText(text []byte) error {
	v, err := HAlignEnum.Parse(string(text))
	if err != nil {
		return err
	}
	*a = HAlign(v)
	return nil
}

// VAlign is the vertical alignment of overlay text.
type VAlign int

const (
	VAlignBaseline VAlign = iota
	VAlignBottom
	VAlignTop
)

// VAlignEnum is the registered VAlign table.
var VAlignEnum = &EnumTable{
	TypeName: "GESTimelineOverlayVAlign",
	Values: []EnumValue{
		{int(VAlignBaseline), "baseline", "baseline"},
		{int(VAlignBottom), "bottom", "bottom"},
		{int(VAlignTop), "top", "top"},
	},
}

func (a VAlign) Valid() bool                  { return VAlignEnum.Contains(int(a)) }
func (a VAlign) String() string               { return VAlignEnum.nick(int(a)) }
func (a VAlign) MarshalText() ([]byte, error) { return VAlignEnum.marshal(int(a)) }

func (a *VAlign) UnmarshalText(text []byte) error {
	v, err := VAlignEnum.Parse(string(text))
	if err != nil {
		return err
	}
	*a = VAlign(v)
	return nil
}

// Pattern selects the image a test source generates. Values match the
// videotestsrc "pattern" property.
type Pattern int

const (
	PatternSMPTE Pattern = iota
	PatternSnow
	PatternBlack
	PatternWhite
	PatternRed
	PatternGreen
	PatternBlue
	PatternCheckers1
	PatternCheckers2
	PatternCheckers4
	PatternCheckers8
	PatternCircular
	PatternBlink
	PatternSMPTE75
	PatternZonePlate
	PatternGamut
	PatternChromaZonePlate
	PatternSolidColor
)

// PatternEnum is the registered Pattern table.
var PatternEnum = &EnumTable{
	TypeName: "GESVideoTestPattern",
	Values: []EnumValue{
		{int(PatternSMPTE), "SMPTE 100% color bars", "smpte"},
		{int(PatternSnow), "Random (television snow)", "snow"},
		{int(PatternBlack), "100% Black", "black"},
		{int(PatternWhite), "100% White", "white"},
		{int(PatternRed), "Red", "red"},
		{int(PatternGreen), "Green", "green"},
		{int(PatternBlue), "Blue", "blue"},
		{int(PatternCheckers1), "Checkers 1px", "checkers-1"},
		{int(PatternCheckers2), "Checkers 2px", "checkers-2"},
		{int(PatternCheckers4), "Checkers 4px", "checkers-4"},
		{int(PatternCheckers8), "Checkers 8px", "checkers-8"},
		{int(PatternCircular), "Circular", "circular"},
		{int(PatternBlink), "Blink", "blink"},
		{int(PatternSMPTE75), "SMPTE 75% color bars", "smpte75"},
		{int(PatternZonePlate), "Zone plate", "zone-plate"},
		{int(PatternGamut), "Gamut checkers", "gamut"},
		{int(PatternChromaZonePlate), "Chroma zone plate", "chroma-zone-plate"},
		{int(PatternSolidColor), "Solid color", "solid-color"},
	},
}

func (p Pattern) Valid() bool                  { return PatternEnum.Contains(int(p)) }
func (p Pattern) String() string               { return PatternEnum.nick(int(p)) }
func (p Pattern) MarshalText() ([]byte, error) { return PatternEnum.marshal(int(p)) }

func (p *Pattern) UnmarshalText(text []byte) error {
	v, err := PatternEnum.Parse(string(text))
	if err != nil {
		return err
	}
	*p = Pattern(v)
	return nil
}

// EnumTables lists every registered enumeration.
func EnumTables() []*EnumTable {
	return []*EnumTable{HAlignEnum, VAlignEnum, PatternEnum}
}
