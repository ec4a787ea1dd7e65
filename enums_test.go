// SPDX-License-Identifier: Apache-2.0
// Copyright Contributors to the OpenTimelineIO project

package ges

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestEnumTables(t *testing.T) {
	assert.Equal(t, "GESTimelineOverlayHAlign", HAlignEnum.TypeName)
	assert.Equal(t, []string{"left", "center", "right"}, HAlignEnum.Nicks())
	assert.Equal(t, "GESTimelineOverlayVAlign", VAlignEnum.TypeName)
	assert.Equal(t, []string{"baseline", "bottom", "top"}, VAlignEnum.Nicks())
	assert.Len(t, PatternEnum.Values, 18)
	assert.Len(t, EnumTables(), 3)
}

func TestEnumTable_Parse(t *testing.T) {
	tests := []struct {
		table *EnumTable
		in    string
		want  int
		ok    bool
	}{
		{HAlignEnum, "left", 0, true},
		{HAlignEnum, "2", 2, true},
		{HAlignEnum, "3", 0, false},
		{VAlignEnum, "top", 2, true},
		{PatternEnum, "black", 2, true},
		{PatternEnum, "100% White", 3, true},
		{PatternEnum, "Black", 0, false},
	}
	for _, tt := range tests {
		got, err := tt.table.Parse(tt.in)
		if !tt.ok {
			assert.ErrorIs(t, err, ErrInvalidAttribute, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestEnum_String(t *testing.T) {
	assert.Equal(t, "center", HAlignCenter.String())
	assert.Equal(t, "baseline", VAlignBaseline.String())
	assert.Equal(t, "zone-plate", PatternZonePlate.String())
	assert.Equal(t, "GESTimelineOverlayHAlign(9)", HAlign(9).String())
}

func TestEnum_TextMarshaling(t *testing.T) {
	type doc struct {
		H HAlign  `yaml:"h"`
		V VAlign  `yaml:"v"`
		P Pattern `yaml:"p"`
	}

	out, err := yaml.Marshal(doc{HAlignRight, VAlignTop, PatternSMPTE75})
	require.NoError(t, err)
	assert.Equal(t, "h: right\nv: top\np: smpte75\n", string(out))

	var d doc
	require.NoError(t, yaml.Unmarshal([]byte("h: left\nv: bottom\np: gamut\n"), &d))
	assert.Equal(t, doc{HAlignLeft, VAlignBottom, PatternGamut}, d)

	assert.Error(t, yaml.Unmarshal([]byte("h: sideways\n"), &d))

	_, err = HAlign(5).MarshalText()
	assert.ErrorIs(t, err, ErrInvalidAttribute)
}

func TestTrack_MediaType(t *testing.T) {
	assert.Equal(t, MediaVideo, NewVideoTrack(0).MediaType())
	assert.Equal(t, MediaAudio, NewAudioTrack(1).MediaType())
	assert.Equal(t, MediaOther, (&Track{Type: TrackTypeText}).MediaType())
	assert.Equal(t, MediaOther, (&Track{Type: TrackTypeVideo | TrackTypeAudio}).MediaType())

	assert.True(t, (TrackTypeVideo | TrackTypeAudio).Has(TrackTypeAudio))
	assert.False(t, TrackTypeVideo.Has(TrackTypeAudio))
	assert.Equal(t, "video track 0", NewVideoTrack(0).String())
}
