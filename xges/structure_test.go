// SPDX-License-Identifier: Apache-2.0
// Copyright Contributors to the OpenTimelineIO project

package xges

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStructure(t *testing.T) {
	tests := []struct {
		in     string
		name   string
		fields []Field
	}{
		{"properties;", "properties", nil},
		{"metadatas", "metadatas", nil},
		{
			`metadatas, name=(string)"Test\ Project";`,
			"metadatas",
			[]Field{{"name", "string", "Test Project"}},
		},
		{
			`properties, name=(string)clip1, mute=(boolean)false, is-image=(boolean)false;`,
			"properties",
			[]Field{{"name", "string", "clip1"}, {"mute", "boolean", "false"}, {"is-image", "boolean", "false"}},
		},
		{
			`properties, text=(string)"trailing\ ", halignment=(GESTextHAlign)center;`,
			"properties",
			[]Field{{"text", "string", "trailing "}, {"halignment", "GESTextHAlign", "center"}},
		},
		{
			`video/x-raw, width=(int)1920, framerate=(fraction)25/1`,
			"video/x-raw",
			[]Field{{"width", "int", "1920"}, {"framerate", "fraction", "25/1"}},
		},
	}
	for _, tt := range tests {
		st, err := ParseStructure(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.name, st.Name, tt.in)
		assert.Equal(t, tt.fields, st.Fields, tt.in)
	}
}

func TestParseStructure_Malformed(t *testing.T) {
	for _, in := range []string{
		"",
		", a=(int)1;",
		`properties, text=(string)"unterminated;`,
		"properties, broken;",
		"properties, t=(int;",
	} {
		_, err := ParseStructure(in)
		assert.ErrorIs(t, err, ErrMalformedStructure, "%q", in)
	}
}

func TestStructure_String(t *testing.T) {
	st := NewStructure("properties")
	assert.Equal(t, "properties;", st.String())

	st.Set("text", "string", `a "b", c\d`)
	st.Set("halignment", "int", "1")
	st.Set("text", "string", "replaced text")
	assert.Equal(t, `properties, text=(string)"replaced\ text", halignment=(int)1;`, st.String())

	back, err := ParseStructure(st.String())
	require.NoError(t, err)
	assert.Equal(t, st, back)

	v, ok := back.GetString("text")
	assert.True(t, ok)
	assert.Equal(t, "replaced text", v)
	_, ok = back.GetString("halignment")
	assert.False(t, ok)
}

func TestStructure_EscapeRoundTrip(t *testing.T) {
	for _, s := range []string{`plain`, `with space`, `comma, here`, `quote "x"`, `back\slash`, ``} {
		st := NewStructure("properties")
		st.Set("text", "string", s)
		back, err := ParseStructure(st.String())
		require.NoError(t, err, s)
		got, _ := back.GetString("text")
		assert.Equal(t, s, got)
	}
}
