// SPDX-License-Identifier: Apache-2.0
// Copyright Contributors to the OpenTimelineIO project

// Package otio converts timeline objects to and from OpenTimelineIO
// timelines. Objects become clips with a GeneratorReference: overlays use the
// "title" generator, test sources use their pattern nick. Attribute values
// travel in the clip metadata under the "xges" key.
package otio

import (
	"fmt"
	"math"
	"sort"
	"strconv"

	"github.com/Avalanche-io/gotio"
	"github.com/Avalanche-io/gotio/opentime"
	"github.com/pkg/errors"

	ges "github.com/Avalanche-io/otio-gesobjects"
	"github.com/Avalanche-io/otio-gesobjects/internal/logging"
)

const (
	// MetadataKey holds the xges attributes in clip metadata.
	MetadataKey = "xges"
	// GeneratorTitle is the generator kind of text overlays.
	GeneratorTitle = "title"
)

// ErrOverlap is returned when two objects of one layer overlap in time.
var ErrOverlap = errors.New("overlapping timeline objects")

// ToTimeline lays objects out on one video track per layer, filling the
// space between them with gaps.
func ToTimeline(name string, rate float64, objects []ges.TimelineObject) (*gotio.Timeline, error) {
	if rate <= 0 {
		rate = 25.0
	}
	timeline := gotio.NewTimeline(name, nil, nil)

	byPriority := make(map[int][]ges.TimelineObject)
	for _, obj := range objects {
		byPriority[obj.Priority()] = append(byPriority[obj.Priority()], obj)
	}
	priorities := make([]int, 0, len(byPriority))
	for p := range byPriority {
		priorities = append(priorities, p)
	}
	sort.Ints(priorities)

	for _, priority := range priorities {
		objs := byPriority[priority]
		sort.SliceStable(objs, func(i, j int) bool { return objs[i].Start() < objs[j].Start() })

		track := gotio.NewTrack(layerName(priority), nil, gotio.TrackKindVideo, nil, nil)
		var currentTime uint64
		for _, obj := range objs {
			if obj.Start() < currentTime {
				return nil, errors.Wrapf(ErrOverlap, "%q starts at %d before %d on layer %d",
					obj.Name(), obj.Start(), currentTime, priority)
			}
			if obj.Start() > currentTime {
				gap := gotio.NewGapWithDuration(toRationalTime(obj.Start()-currentTime, rate))
				if err := track.AppendChild(gap); err != nil {
					return nil, err
				}
			}

			clip, err := convertObject(obj, rate)
			if err != nil {
				return nil, err
			}
			if err := track.AppendChild(clip); err != nil {
				return nil, err
			}
			currentTime = obj.Start() + obj.Duration()
		}

		if err := timeline.Tracks().AppendChild(track); err != nil {
			return nil, err
		}
	}
	return timeline, nil
}

func layerName(priority int) string {
	return "Layer " + strconv.Itoa(priority)
}

// convertObject converts a timeline object to a generator clip
func convertObject(obj ges.TimelineObject, rate float64) (*gotio.Clip, error) {
	sourceRange := opentime.NewTimeRange(
		toRationalTime(obj.InPoint(), rate),
		toRationalTime(obj.Duration(), rate),
	)

	kind := GeneratorTitle
	if src, ok := obj.(*ges.TimelineTestSource); ok {
		kind = src.Pattern().String()
	}
	mediaRef := gotio.NewGeneratorReference("", kind, nil, nil, nil)
	clip := gotio.NewClip(obj.Name(), mediaRef, &sourceRange, nil, nil, nil, "", nil)

	xgesMetadata := map[string]interface{}{
		"id":        obj.ID(),
		"clip-type": obj.TypeName(),
	}
	for _, ps := range obj.Properties() {
		v, err := obj.Get(ps.Name)
		if err != nil {
			return nil, err
		}
		switch ps.Kind {
		case ges.KindEnum:
			// store the nick, e.g. "center"
			nick, ok := v.(fmt.Stringer)
			if !ok {
				return nil, errors.Errorf("%s: expected enum, got %T", ps.Name, v)
			}
			xgesMetadata[ps.Name] = nick.String()
		default:
			xgesMetadata[ps.Name] = v
		}
	}
	clip.SetMetadata(map[string]interface{}{MetadataKey: xgesMetadata})
	return clip, nil
}

// FromTimeline rebuilds timeline objects from the generator clips of every
// video track. Track index becomes the object priority. Other items only
// advance time.
func FromTimeline(timeline *gotio.Timeline, opts ...ges.Option) ([]ges.TimelineObject, error) {
	logger := logging.WithComponent("otio")

	var objects []ges.TimelineObject
	for priority, track := range timeline.VideoTracks() {
		var currentTime uint64
		for _, child := range track.Children() {
			if _, isTransition := child.(*gotio.Transition); isTransition {
				continue
			}
			dur, err := child.Duration()
			if err != nil {
				return nil, err
			}
			duration := toNanoseconds(dur)

			if clip, ok := child.(*gotio.Clip); ok {
				obj, err := convertClip(clip, opts)
				if err != nil {
					return nil, errors.Wrapf(err, "clip %q", clip.Name())
				}
				if obj != nil {
					obj.SetStart(currentTime)
					obj.SetDuration(duration)
					obj.SetPriority(priority)
					objects = append(objects, obj)
				} else {
					logger.Debug().Str("clip", clip.Name()).Msg("skipping clip without generator")
				}
			}
			currentTime += duration
		}
	}
	return objects, nil
}

func convertClip(clip *gotio.Clip, opts []ges.Option) (ges.TimelineObject, error) {
	genRef, ok := clip.MediaReference().(*gotio.GeneratorReference)
	if !ok {
		return nil, nil
	}

	xgesMetadata := clipMetadata(clip)
	if id, ok := xgesMetadata["id"].(string); ok {
		opts = append(opts, ges.WithID(id))
	}
	opts = append(opts, ges.WithName(clip.Name()))

	var obj ges.TimelineObject
	kind := genRef.GeneratorKind()
	if kind == GeneratorTitle {
		obj = ges.NewTimelineOverlay(opts...)
	} else if _, err := ges.PatternEnum.Parse(kind); err == nil {
		src := ges.NewTimelineTestSource(opts...)
		if err := src.Set(ges.PropPattern, kind); err != nil {
			return nil, err
		}
		obj = src
	} else {
		return nil, nil
	}

	if clip.SourceRange() != nil {
		obj.SetInPoint(toNanoseconds(clip.SourceRange().StartTime()))
	}
	for _, ps := range obj.Properties() {
		v, ok := xgesMetadata[ps.Name]
		if !ok {
			continue
		}
		if err := obj.Set(ps.Name, v); err != nil {
			return nil, err
		}
	}
	return obj, nil
}

func clipMetadata(clip *gotio.Clip) map[string]interface{} {
	metadata := clip.Metadata()
	if metadata == nil {
		return nil
	}
	xgesMetadata, _ := metadata[MetadataKey].(map[string]interface{})
	return xgesMetadata
}

// toRationalTime converts nanoseconds to RationalTime
func toRationalTime(ns uint64, rate float64) opentime.RationalTime {
	seconds := float64(ns) / float64(ges.GSTSecond)
	return opentime.FromSeconds(seconds, rate)
}

// toNanoseconds converts RationalTime to nanoseconds
func toNanoseconds(t opentime.RationalTime) uint64 {
	return uint64(math.Round(t.ToSeconds() * float64(ges.GSTSecond)))
}
