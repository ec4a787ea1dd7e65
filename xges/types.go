// SPDX-License-Identifier: Apache-2.0
// Copyright Contributors to the OpenTimelineIO project

package xges

import (
	"encoding/xml"

	"github.com/pkg/errors"

	ges "github.com/Avalanche-io/otio-gesobjects"
)

// GES represents the root element of an XGES file
type GES struct {
	XMLName xml.Name `xml:"ges"`
	Version string   `xml:"version,attr"`
	Project Project  `xml:"project"`
}

// Project represents the project element
type Project struct {
	Properties string   `xml:"properties,attr,omitempty"`
	Metadatas  string   `xml:"metadatas,attr,omitempty"`
	Timeline   Timeline `xml:"timeline"`
}

// Timeline represents the timeline element
type Timeline struct {
	Properties string  `xml:"properties,attr,omitempty"`
	Metadatas  string  `xml:"metadatas,attr,omitempty"`
	Tracks     []Track `xml:"track"`
	Layers     []Layer `xml:"layer"`
}

// Track represents a track element
type Track struct {
	Caps       string        `xml:"caps,attr"`
	TrackType  ges.TrackType `xml:"track-type,attr"`
	TrackID    int           `xml:"track-id,attr"`
	Properties string        `xml:"properties,attr,omitempty"`
	Metadatas  string        `xml:"metadatas,attr,omitempty"`
}

// Layer holds the clips of one priority
type Layer struct {
	Priority   int    `xml:"priority,attr"`
	Properties string `xml:"properties,attr,omitempty"`
	Metadatas  string `xml:"metadatas,attr,omitempty"`
	Clips      []Clip `xml:"clip"`
}

// Clip is the serialized form of a timeline object
type Clip struct {
	ID                 int           `xml:"id,attr"`
	AssetID            string        `xml:"asset-id,attr"`
	TypeName           string        `xml:"type-name,attr"`
	LayerPriority      int           `xml:"layer-priority,attr"`
	TrackTypes         ges.TrackType `xml:"track-types,attr"`
	Start              uint64        `xml:"start,attr"`
	Duration           uint64        `xml:"duration,attr"`
	Inpoint            uint64        `xml:"inpoint,attr"`
	Rate               int           `xml:"rate,attr"` // always 0 in GES projects
	Properties         string        `xml:"properties,attr,omitempty"`
	Metadatas          string        `xml:"metadatas,attr,omitempty"`
	ChildrenProperties string        `xml:"children-properties,attr,omitempty"`
}

// Clip type names the codec understands. GESTitleClip is read as a text
// overlay for older projects.
const (
	ClipTypeTextOverlay = ges.TypeTextOverlay
	ClipTypeTest        = ges.TypeTestSource
	ClipTypeTitle       = "GESTitleClip"
	ClipTypeURI         = "GESUriClip"
	ClipTypeTransition  = "GESTransitionClip"
)

// FormatVersion is written to the ges element.
const FormatVersion = "0.3"

// Edit is a set of tracks and the timeline objects laid out on them.
type Edit struct {
	Name    string
	Rate    float64
	Tracks  []*ges.Track
	Objects []ges.TimelineObject
}

// Materialize creates a track object for every object on every track whose
// type the object supports. Tracks that already hold one of the object's
// track objects are skipped, as are objects limited to a single node.
func (e *Edit) Materialize() error {
	for _, obj := range e.Objects {
		for _, track := range e.Tracks {
			if !obj.SupportedTrackTypes().Has(track.Type) || hasTrackObject(obj, track) {
				continue
			}
			_, err := obj.CreateTrackObject(track)
			if errors.Is(err, ges.ErrAlreadyMaterialized) {
				continue
			}
			if err != nil {
				return errors.Wrapf(err, "materialize %s %q on %s", obj.TypeName(), obj.Name(), track)
			}
		}
	}
	return nil
}

func hasTrackObject(obj ges.TimelineObject, track *ges.Track) bool {
	for _, to := range obj.TrackObjects() {
		if to.Track == track {
			return true
		}
	}
	return false
}
