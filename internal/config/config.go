// SPDX-License-Identifier: Apache-2.0
// Copyright Contributors to the OpenTimelineIO project

package config

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	ges "github.com/Avalanche-io/otio-gesobjects"
	"github.com/Avalanche-io/otio-gesobjects/xges"
)

type contextKey string

const configKey contextKey = "config"

// Backends for track nodes.
const (
	BackendMemory = "memory"
	BackendGst    = "gst"
)

// Object kinds.
const (
	KindOverlay = "overlay"
	KindTest    = "test"
)

// Config holds all application configuration
type Config struct {
	// Core settings
	Backend string `yaml:"backend"`
	Output  string `yaml:"output"`
	Verbose bool   `yaml:"verbose"`

	Project ProjectConfig `yaml:"project"`
}

// ProjectConfig describes the edit built by the build command.
type ProjectConfig struct {
	Name    string         `yaml:"name"`
	Rate    float64        `yaml:"rate"`
	Tracks  []string       `yaml:"tracks"`
	Objects []ObjectConfig `yaml:"objects"`
}

// ObjectConfig describes one timeline object. Empty attribute fields keep
// the object's defaults.
type ObjectConfig struct {
	Kind     string        `yaml:"kind"`
	Name     string        `yaml:"name"`
	Start    time.Duration `yaml:"start"`
	Duration time.Duration `yaml:"duration"`
	InPoint  time.Duration `yaml:"inpoint"`
	Layer    int           `yaml:"layer"`

	// overlay
	Text     string `yaml:"text"`
	FontDesc string `yaml:"font_desc"`
	HAlign   string `yaml:"halignment"`
	VAlign   string `yaml:"valignment"`
	Mute     bool   `yaml:"mute"`

	// test
	Pattern string `yaml:"pattern"`
}

// Load reads configuration from file or returns defaults
func Load(path string) (*Config, error) {
	cfg := defaultConfig()

	if path == "" {
		path = findConfigFile()
	}

	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrapf(err, "parse %s", path)
	}

	return cfg, nil
}

// Save writes configuration to file
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

func defaultConfig() *Config {
	return &Config{
		Backend: BackendMemory,
		Project: ProjectConfig{
			Name:   "Untitled",
			Rate:   xges.DefaultRate,
			Tracks: []string{"video", "audio"},
		},
	}
}

func findConfigFile() string {
	candidates := []string{
		"./gesobj.yaml",
		"./gesobj.yml",
		filepath.Join(os.Getenv("HOME"), ".gesobj", "config.yaml"),
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// WithConfig stores config in context
func WithConfig(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, configKey, cfg)
}

// FromContext retrieves config from context
func FromContext(ctx context.Context) *Config {
	if cfg, ok := ctx.Value(configKey).(*Config); ok {
		return cfg
	}
	return defaultConfig()
}

// Build creates the project's tracks and objects and materializes a track
// object for every object on every track it supports.
func (p *ProjectConfig) Build(factory ges.NodeFactory) (*xges.Edit, error) {
	edit := &xges.Edit{Name: p.Name, Rate: p.Rate}

	for i, kind := range p.Tracks {
		switch kind {
		case "video":
			edit.Tracks = append(edit.Tracks, ges.NewVideoTrack(i))
		case "audio":
			edit.Tracks = append(edit.Tracks, ges.NewAudioTrack(i))
		default:
			return nil, errors.Errorf("track %d: unknown track type %q", i, kind)
		}
	}

	for i, oc := range p.Objects {
		obj, err := oc.build(factory)
		if err != nil {
			return nil, errors.Wrapf(err, "object %d", i)
		}
		edit.Objects = append(edit.Objects, obj)
	}

	if err := edit.Materialize(); err != nil {
		return nil, err
	}
	return edit, nil
}

func (oc ObjectConfig) build(factory ges.NodeFactory) (ges.TimelineObject, error) {
	opts := []ges.Option{ges.WithNodeFactory(factory)}
	if oc.Name != "" {
		opts = append(opts, ges.WithName(oc.Name))
	}

	var (
		obj   ges.TimelineObject
		attrs []attr
	)
	switch oc.Kind {
	case KindOverlay:
		obj = ges.NewTimelineOverlay(opts...)
		attrs = []attr{
			{ges.PropText, oc.Text, oc.Text != ""},
			{ges.PropFontDesc, oc.FontDesc, oc.FontDesc != ""},
			{ges.PropHAlignment, oc.HAlign, oc.HAlign != ""},
			{ges.PropVAlignment, oc.VAlign, oc.VAlign != ""},
			{ges.PropMute, oc.Mute, oc.Mute},
		}
	case KindTest:
		obj = ges.NewTimelineTestSource(opts...)
		attrs = []attr{{ges.PropPattern, oc.Pattern, oc.Pattern != ""}}
	default:
		return nil, errors.Errorf("unknown object kind %q", oc.Kind)
	}

	for _, a := range attrs {
		if !a.set {
			continue
		}
		if err := obj.Set(a.name, a.value); err != nil {
			return nil, err
		}
	}

	if oc.Start < 0 || oc.Duration < 0 || oc.InPoint < 0 {
		return nil, errors.New("negative timing")
	}
	obj.SetStart(uint64(oc.Start))
	obj.SetDuration(uint64(oc.Duration))
	obj.SetInPoint(uint64(oc.InPoint))
	obj.SetPriority(oc.Layer)
	return obj, nil
}

type attr struct {
	name  string
	value any
	set   bool
}
