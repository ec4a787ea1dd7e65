// SPDX-License-Identifier: Apache-2.0
// Copyright Contributors to the OpenTimelineIO project

package xges

import (
	"encoding/xml"
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	ges "github.com/Avalanche-io/otio-gesobjects"
	"github.com/Avalanche-io/otio-gesobjects/internal/logging"
)

// DefaultRate is used when an Edit carries no frame rate.
const DefaultRate = 25.0

// Encoder writes timeline objects as XGES XML
type Encoder struct {
	w      io.Writer
	rate   float64
	logger zerolog.Logger
}

// NewEncoder creates a new XGES encoder
func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{
		w:      w,
		rate:   DefaultRate,
		logger: logging.WithComponent("xges"),
	}
}

// Encode converts an Edit to XGES and writes it
func (e *Encoder) Encode(edit *Edit) error {
	if edit.Rate > 0 {
		e.rate = edit.Rate
	}

	doc := &GES{
		Version: FormatVersion,
		Project: Project{
			Properties: "properties;",
			Metadatas:  e.buildProjectMetadatas(edit.Name),
			Timeline: Timeline{
				Properties: "properties, auto-transition=(boolean)true;",
				Metadatas:  fmt.Sprintf("metadatas, framerate=(fraction)%s;", framerate(e.rate)),
			},
		},
	}

	for _, track := range edit.Tracks {
		doc.Project.Timeline.Tracks = append(doc.Project.Timeline.Tracks, Track{
			Caps:       track.Caps,
			TrackType:  track.Type,
			TrackID:    track.ID,
			Properties: e.buildTrackProperties(track.Type),
			Metadatas:  "metadatas;",
		})
	}

	layers, err := e.buildLayers(edit.Objects)
	if err != nil {
		return err
	}
	doc.Project.Timeline.Layers = layers

	output, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return errors.Wrap(err, "failed to marshal XGES")
	}
	if _, err := e.w.Write([]byte(xml.Header)); err != nil {
		return err
	}
	if _, err := e.w.Write(output); err != nil {
		return err
	}
	_, err = e.w.Write([]byte("\n"))
	return err
}

// buildLayers groups objects by priority, one layer each, clips ordered by
// start time.
func (e *Encoder) buildLayers(objects []ges.TimelineObject) ([]Layer, error) {
	byPriority := make(map[int][]ges.TimelineObject)
	for _, obj := range objects {
		byPriority[obj.Priority()] = append(byPriority[obj.Priority()], obj)
	}
	priorities := make([]int, 0, len(byPriority))
	for p := range byPriority {
		priorities = append(priorities, p)
	}
	sort.Ints(priorities)

	var layers []Layer
	clipID := 0
	for _, priority := range priorities {
		objs := byPriority[priority]
		sort.SliceStable(objs, func(i, j int) bool { return objs[i].Start() < objs[j].Start() })

		layer := Layer{
			Priority:   priority,
			Properties: "properties, auto-transition=(boolean)true;",
			Metadatas:  "metadatas, volume=(float)1;",
		}
		for _, obj := range objs {
			clip, err := e.convertObject(obj, clipID)
			if err != nil {
				return nil, err
			}
			layer.Clips = append(layer.Clips, *clip)
			clipID++
		}
		layers = append(layers, layer)
	}
	return layers, nil
}

// convertObject converts a timeline object to an XGES clip. Attributes pushed
// to video nodes go to children-properties, the others to properties.
func (e *Encoder) convertObject(obj ges.TimelineObject, id int) (*Clip, error) {
	props := NewStructure("properties")
	name := obj.Name()
	if name == "" {
		name = fmt.Sprintf("clip%d", id)
	}
	props.Set("name", "string", name)

	children := NewStructure("properties")
	for _, ps := range obj.Properties() {
		v, err := obj.Get(ps.Name)
		if err != nil {
			return nil, err
		}
		typ, value, err := serializeValue(ps, v)
		if err != nil {
			return nil, errors.Wrapf(err, "clip %d", id)
		}
		if ps.Applies == ges.MediaVideo {
			children.Set(ps.Name, typ, value)
		} else {
			props.Set(ps.Name, typ, value)
		}
	}

	meta := NewStructure("metadatas")
	meta.Set("id", "string", obj.ID())

	clip := &Clip{
		ID:                 id,
		AssetID:            e.assetID(obj),
		TypeName:           obj.TypeName(),
		LayerPriority:      obj.Priority(),
		TrackTypes:         obj.SupportedTrackTypes(),
		Start:              obj.Start(),
		Duration:           obj.Duration(),
		Inpoint:            obj.InPoint(),
		Properties:         props.String(),
		Metadatas:          meta.String(),
		ChildrenProperties: children.String(),
	}
	e.logger.Debug().Int("clip", id).Str("type", clip.TypeName).Msg("encoded timeline object")
	return clip, nil
}

// assetID follows the editing services: test clips are keyed by their
// pattern, other generated clips by their type name.
func (e *Encoder) assetID(obj ges.TimelineObject) string {
	if src, ok := obj.(*ges.TimelineTestSource); ok {
		return src.Pattern().String()
	}
	return obj.TypeName()
}

func serializeValue(ps ges.PropertySpec, v any) (typ, value string, err error) {
	switch ps.Kind {
	case ges.KindString:
		s, ok := v.(string)
		if !ok {
			return "", "", errors.Errorf("%s: expected string, got %T", ps.Name, v)
		}
		return "string", s, nil
	case ges.KindBool:
		b, ok := v.(bool)
		if !ok {
			return "", "", errors.Errorf("%s: expected boolean, got %T", ps.Name, v)
		}
		return "boolean", formatBool(b), nil
	case ges.KindEnum:
		n, ok := enumInt(v)
		if !ok {
			return "", "", errors.Errorf("%s: expected enum, got %T", ps.Name, v)
		}
		return "int", strconv.Itoa(n), nil
	}
	return "", "", errors.Errorf("%s: unsupported kind %s", ps.Name, ps.Kind)
}

func enumInt(v any) (int, bool) {
	switch tv := v.(type) {
	case ges.HAlign:
		return int(tv), true
	case ges.VAlign:
		return int(tv), true
	case ges.Pattern:
		return int(tv), true
	case int:
		return tv, true
	}
	return 0, false
}

// framerate formats rate as a fraction. NTSC rates such as 29.97 are
// written over 1001.
func framerate(rate float64) string {
	if n := math.Round(rate); math.Abs(rate-n) < 1e-6 {
		return fmt.Sprintf("%d/1", int64(n))
	}
	if n := math.Round(rate * 1.001); math.Abs(rate*1.001-n) < 1e-3 {
		return fmt.Sprintf("%d/1001", int64(n)*1000)
	}
	num, den := int64(math.Round(rate*1000)), int64(1000)
	g := gcd(num, den)
	return fmt.Sprintf("%d/%d", num/g, den/g)
}

func gcd(a, b int64) int64 {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// buildProjectMetadatas creates project metadata string
func (e *Encoder) buildProjectMetadatas(name string) string {
	meta := NewStructure("metadatas")
	if name != "" {
		meta.Set("name", "string", name)
	}
	return meta.String()
}

// buildTrackProperties creates the restriction caps of a track
func (e *Encoder) buildTrackProperties(trackType ges.TrackType) string {
	switch trackType {
	case ges.TrackTypeVideo:
		return fmt.Sprintf(
			`properties, restriction-caps=(string)"video/x-raw\,\ width\=\(int\)1920\,\ height\=\(int\)1080\,\ framerate\=\(fraction\)%s", mixing=(boolean)true;`,
			framerate(e.rate),
		)
	case ges.TrackTypeAudio:
		return `properties, restriction-caps=(string)"audio/x-raw\,\ rate\=\(int\)48000\,\ channels\=\(int\)2", mixing=(boolean)true;`
	}
	return "properties, mixing=(boolean)true;"
}
