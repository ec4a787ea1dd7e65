// SPDX-License-Identifier: Apache-2.0
// Copyright Contributors to the OpenTimelineIO project

// Package ges implements the timeline objects of a GStreamer Editing Services
// style editor that materialize as per-track processing nodes.
//
// A timeline object keeps the canonical value of each of its attributes and
// pushes every change onto the track nodes it has already produced. Nodes
// themselves come from an external NodeFactory (see the memnode and gstnode
// packages).
//
// Timeline objects are not safe for concurrent use. All calls on a given
// object must be serialized through a single owner, typically the
// application's main loop.
package ges

import "fmt"

// TrackType is the XGES track-type bitmask.
type TrackType int

// Track types (as bitmask)
const (
	TrackTypeUnknown TrackType = 1 << 0
	TrackTypeAudio   TrackType = 1 << 1
	TrackTypeVideo   TrackType = 1 << 2
	TrackTypeText    TrackType = 1 << 3
	TrackTypeCustom  TrackType = 1 << 4
)

// Has reports whether all bits of other are set in t.
func (t TrackType) Has(other TrackType) bool {
	return other != 0 && t&other == other
}

func (t TrackType) String() string {
	switch t {
	case TrackTypeUnknown:
		return "unknown"
	case TrackTypeAudio:
		return "audio"
	case TrackTypeVideo:
		return "video"
	case TrackTypeText:
		return "text"
	case TrackTypeCustom:
		return "custom"
	}
	return fmt.Sprintf("track-type(%d)", int(t))
}

// MediaType is the closed set of media kinds a track node dispatch
// distinguishes.
type MediaType int

const (
	MediaOther MediaType = iota
	MediaVideo
	MediaAudio
)

func (m MediaType) String() string {
	switch m {
	case MediaVideo:
		return "video"
	case MediaAudio:
		return "audio"
	default:
		return "other"
	}
}

// Track is a single media lane of the timeline output.
type Track struct {
	ID   int
	Type TrackType
	Caps string
}

// NewVideoTrack creates a raw video track.
func NewVideoTrack(id int) *Track {
	return &Track{ID: id, Type: TrackTypeVideo, Caps: "video/x-raw(ANY)"}
}

// NewAudioTrack creates a raw audio track.
func NewAudioTrack(id int) *Track {
	return &Track{ID: id, Type: TrackTypeAudio, Caps: "audio/x-raw(ANY)"}
}

// MediaType maps the track's type onto the media kind used for node dispatch.
// Tracks carrying several bits, or none of video and audio, are MediaOther.
func (t *Track) MediaType() MediaType {
	switch t.Type {
	case TrackTypeVideo:
		return MediaVideo
	case TrackTypeAudio:
		return MediaAudio
	default:
		return MediaOther
	}
}

func (t *Track) String() string {
	return fmt.Sprintf("%s track %d", t.Type, t.ID)
}
