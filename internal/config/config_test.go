// SPDX-License-Identifier: Apache-2.0
// Copyright Contributors to the OpenTimelineIO project

package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ges "github.com/Avalanche-io/otio-gesobjects"
	"github.com/Avalanche-io/otio-gesobjects/memnode"
)

const sampleConfig = `
backend: memory
output: out.xges
project:
  name: Credits
  rate: 24
  tracks: [video, audio]
  objects:
    - kind: test
      name: bars
      duration: 2s
      pattern: smpte75
    - kind: overlay
      name: title
      start: 1s
      duration: 3s
      layer: 1
      text: Hello
      halignment: left
      valignment: top
      mute: true
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "gesobj.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad(t *testing.T) {
	cfg, err := Load(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, BackendMemory, cfg.Backend)
	assert.Equal(t, "out.xges", cfg.Output)
	assert.Equal(t, "Credits", cfg.Project.Name)
	assert.Equal(t, 24.0, cfg.Project.Rate)
	require.Len(t, cfg.Project.Objects, 2)
	assert.Equal(t, 2*time.Second, cfg.Project.Objects[0].Duration)
	assert.Equal(t, "left", cfg.Project.Objects[1].HAlign)
}

func TestLoad_Missing(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, defaultConfig(), cfg)
}

func TestLoad_Invalid(t *testing.T) {
	_, err := Load(writeConfig(t, "project: [unclosed"))
	assert.Error(t, err)
}

func TestSave(t *testing.T) {
	cfg, err := Load(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "saved.yaml")
	require.NoError(t, cfg.Save(path))
	back, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, back)
}

func TestContext(t *testing.T) {
	assert.Equal(t, defaultConfig(), FromContext(context.Background()))

	cfg := &Config{Backend: BackendGst}
	assert.Same(t, cfg, FromContext(WithConfig(context.Background(), cfg)))
}

func TestBuild(t *testing.T) {
	cfg, err := Load(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	factory := memnode.NewFactory()
	edit, err := cfg.Project.Build(factory)
	require.NoError(t, err)

	assert.Equal(t, "Credits", edit.Name)
	require.Len(t, edit.Tracks, 2)
	require.Len(t, edit.Objects, 2)

	bars := edit.Objects[0].(*ges.TimelineTestSource)
	assert.Equal(t, "bars", bars.Name())
	assert.Equal(t, ges.PatternSMPTE75, bars.Pattern())
	assert.Equal(t, uint64(2*ges.GSTSecond), bars.Duration())
	assert.Len(t, bars.TrackObjects(), 1)

	title := edit.Objects[1].(*ges.TimelineOverlay)
	assert.Equal(t, "Hello", title.Text())
	assert.Equal(t, ges.HAlignLeft, title.HAlign())
	assert.Equal(t, ges.VAlignTop, title.VAlign())
	assert.Equal(t, ges.DefaultFontDesc, title.FontDesc())
	assert.True(t, title.Mute())
	assert.Equal(t, uint64(1*ges.GSTSecond), title.Start())
	assert.Equal(t, 1, title.Priority())
	require.Len(t, title.TrackObjects(), 2)

	// one pattern node, one text overlay, one muted passthrough
	assert.Len(t, factory.Nodes(), 3)
	for _, to := range title.TrackObjects() {
		if to.MediaType() == ges.MediaAudio {
			assert.False(t, to.Node.Active())
		}
	}
}

func TestBuild_Errors(t *testing.T) {
	tests := []struct {
		name    string
		project ProjectConfig
	}{
		{"unknown track", ProjectConfig{Tracks: []string{"subtitle"}}},
		{"unknown kind", ProjectConfig{Objects: []ObjectConfig{{Kind: "transition"}}}},
		{"bad alignment", ProjectConfig{Objects: []ObjectConfig{{Kind: KindOverlay, HAlign: "middle"}}}},
		{"bad pattern", ProjectConfig{Objects: []ObjectConfig{{Kind: KindTest, Pattern: "plaid"}}}},
		{"negative start", ProjectConfig{Objects: []ObjectConfig{{Kind: KindTest, Start: -time.Second}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.project.Build(memnode.NewFactory())
			assert.Error(t, err)
		})
	}
}
