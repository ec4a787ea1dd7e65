// SPDX-License-Identifier: Apache-2.0
// Copyright Contributors to the OpenTimelineIO project

package xges

import (
	"encoding/xml"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	ges "github.com/Avalanche-io/otio-gesobjects"
	"github.com/Avalanche-io/otio-gesobjects/internal/logging"
)

// Decoder reads XGES data into timeline objects
type Decoder struct {
	r       io.Reader
	rate    float64
	factory ges.NodeFactory
	logger  zerolog.Logger
}

// NewDecoder creates a new XGES decoder
func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{
		r:      r,
		rate:   DefaultRate,
		logger: logging.WithComponent("xges"),
	}
}

// SetNodeFactory sets the factory handed to every decoded timeline object.
func (d *Decoder) SetNodeFactory(factory ges.NodeFactory) {
	d.factory = factory
}

// Decode reads XGES XML. Clip types without a timeline object counterpart
// are skipped.
func (d *Decoder) Decode() (*Edit, error) {
	var doc GES
	if err := xml.NewDecoder(d.r).Decode(&doc); err != nil {
		return nil, errors.Wrap(err, "failed to decode XGES XML")
	}

	timeline := &doc.Project.Timeline
	d.extractFrameRate(timeline)

	edit := &Edit{
		Name: d.extractName(doc.Project.Metadatas),
		Rate: d.rate,
	}
	for _, t := range timeline.Tracks {
		edit.Tracks = append(edit.Tracks, &ges.Track{ID: t.TrackID, Type: t.TrackType, Caps: t.Caps})
	}

	for _, layer := range timeline.Layers {
		for i := range layer.Clips {
			obj, err := d.convertClip(&layer.Clips[i], layer.Priority)
			if err != nil {
				return nil, errors.Wrapf(err, "clip %d", layer.Clips[i].ID)
			}
			if obj != nil {
				edit.Objects = append(edit.Objects, obj)
			}
		}
	}
	return edit, nil
}

// extractFrameRate reads the framerate from the video track restriction caps
func (d *Decoder) extractFrameRate(timeline *Timeline) {
	for _, track := range timeline.Tracks {
		if track.TrackType != ges.TrackTypeVideo {
			continue
		}
		if rate := d.extractFrameRateFromProperties(track.Properties); rate > 0 {
			d.rate = rate
			return
		}
	}
}

// extractFrameRateFromProperties parses framerate from restriction-caps
func (d *Decoder) extractFrameRateFromProperties(props string) float64 {
	st, err := ParseStructure(props)
	if err != nil {
		return 0
	}
	caps, ok := st.GetString("restriction-caps")
	if !ok {
		return 0
	}
	capsSt, err := ParseStructure(caps)
	if err != nil {
		return 0
	}
	f, ok := capsSt.Get("framerate")
	if !ok {
		return 0
	}

	num, den, ok := strings.Cut(f.Value, "/")
	if !ok {
		return 0
	}
	n, err1 := strconv.ParseFloat(num, 64)
	dd, err2 := strconv.ParseFloat(den, 64)
	if err1 != nil || err2 != nil || dd == 0 {
		return 0
	}
	return n / dd
}

// extractName extracts the name from a GstStructure string
func (d *Decoder) extractName(s string) string {
	if s == "" {
		return ""
	}
	st, err := ParseStructure(s)
	if err != nil {
		d.logger.Debug().Err(err).Msg("unreadable structure")
		return ""
	}
	name, _ := st.GetString("name")
	return name
}

func (d *Decoder) convertClip(clip *Clip, priority int) (ges.TimelineObject, error) {
	opts := []ges.Option{
		ges.WithName(d.extractName(clip.Properties)),
		ges.WithID(d.extractID(clip.Metadatas)),
		ges.WithNodeFactory(d.factory),
	}

	var obj ges.TimelineObject
	switch clip.TypeName {
	case ClipTypeTextOverlay, ClipTypeTitle:
		obj = ges.NewTimelineOverlay(opts...)
	case ClipTypeTest:
		src := ges.NewTimelineTestSource(opts...)
		// asset-id typically contains the test pattern type (e.g. "smpte", "snow", "black")
		if v, err := ges.PatternEnum.Parse(clip.AssetID); err == nil {
			if err := src.SetPattern(ges.Pattern(v)); err != nil {
				return nil, err
			}
		}
		obj = src
	case ClipTypeURI:
		d.logger.Debug().Int("clip", clip.ID).Str("asset", clip.AssetID).Msg("skipping media clip")
		return nil, nil
	case ClipTypeTransition:
		d.logger.Debug().Int("clip", clip.ID).Str("asset", clip.AssetID).Msg("skipping transition")
		return nil, nil
	default:
		d.logger.Debug().Int("clip", clip.ID).Str("type", clip.TypeName).Msg("skipping unsupported clip type")
		return nil, nil
	}

	obj.SetStart(clip.Start)
	obj.SetDuration(clip.Duration)
	obj.SetInPoint(clip.Inpoint)
	obj.SetPriority(priority)

	if err := d.applyProperties(obj, clip.Properties); err != nil {
		return nil, err
	}
	if err := d.applyProperties(obj, clip.ChildrenProperties); err != nil {
		return nil, err
	}
	return obj, nil
}

func (d *Decoder) extractID(metadatas string) string {
	if metadatas == "" {
		return ""
	}
	st, err := ParseStructure(metadatas)
	if err != nil {
		return ""
	}
	id, _ := st.GetString("id")
	return id
}

// applyProperties sets every declared property of obj found in the
// structure s. Child properties may carry an element prefix, as in
// GstTextOverlay::text. Unknown fields are ignored.
func (d *Decoder) applyProperties(obj ges.TimelineObject, s string) error {
	if s == "" {
		return nil
	}
	st, err := ParseStructure(s)
	if err != nil {
		return err
	}
	for _, ps := range obj.Properties() {
		f, ok := propertyField(st, ps.Name)
		if !ok {
			continue
		}
		v, err := deserializeValue(ps, f)
		if err != nil {
			return err
		}
		if err := obj.Set(ps.Name, v); err != nil {
			return err
		}
	}
	return nil
}

// propertyField finds name as a bare field or as Element::name.
func propertyField(st *Structure, name string) (Field, bool) {
	if f, ok := st.Get(name); ok {
		return f, true
	}
	suffix := "::" + name
	for _, f := range st.Fields {
		if strings.HasSuffix(f.Name, suffix) {
			return f, true
		}
	}
	return Field{}, false
}

// deserializeValue accepts enums as (int)N or as (TypeName)nick.
func deserializeValue(ps ges.PropertySpec, f Field) (any, error) {
	switch ps.Kind {
	case ges.KindString:
		return f.Value, nil
	case ges.KindBool:
		return parseBool(f.Value)
	case ges.KindEnum:
		switch f.Type {
		case "int", "uint", "gint", "i":
			n, err := strconv.Atoi(f.Value)
			if err != nil {
				return nil, errors.Wrapf(ges.ErrInvalidAttribute, "%s=%q", ps.Name, f.Value)
			}
			return n, nil
		}
		return f.Value, nil
	}
	return nil, errors.Errorf("%s: unsupported kind %s", ps.Name, ps.Kind)
}
