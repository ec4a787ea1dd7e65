// SPDX-License-Identifier: Apache-2.0
// Copyright Contributors to the OpenTimelineIO project

package ges

import "github.com/pkg/errors"

// TypeTestSource is the XGES type name of TimelineTestSource.
const TypeTestSource = "GESTestClip"

// TimelineTestSource generates a solid color or test pattern on a single
// video track.
type TimelineTestSource struct {
	object

	pattern Pattern
}

var _ TimelineObject = (*TimelineTestSource)(nil)

// NewTimelineTestSource creates a black test source.
func NewTimelineTestSource(opts ...Option) *TimelineTestSource {
	return &TimelineTestSource{
		object:  newObject(TypeTestSource, opts),
		pattern: DefaultPattern,
	}
}

func (t *TimelineTestSource) TypeName() string { return TypeTestSource }

// SupportedTrackTypes reports video only.
func (t *TimelineTestSource) SupportedTrackTypes() TrackType { return TrackTypeVideo }

func (t *TimelineTestSource) Pattern() Pattern { return t.pattern }

// SetPattern stores the pattern and updates the existing node in place.
func (t *TimelineTestSource) SetPattern(pattern Pattern) error {
	if !pattern.Valid() {
		return invalidAttribute(PropPattern, int(pattern))
	}
	t.logger.Debug().Stringer("pattern", pattern).Msg("set pattern")
	t.pattern = pattern
	return t.propagate(MediaVideo, func(n TrackNode) error {
		return n.Configure(NodePropPattern, pattern)
	})
}

// CreateTrackObject creates the pattern generating node. Only video tracks
// are accepted and only one node may exist at a time.
func (t *TimelineTestSource) CreateTrackObject(track *Track) (*TrackObject, error) {
	if track == nil {
		return nil, errors.Wrap(ErrUnsupportedTrackType, "nil track")
	}
	if track.MediaType() != MediaVideo {
		return nil, errors.Wrapf(ErrUnsupportedTrackType, "%s cannot produce a node for %s", TypeTestSource, track)
	}
	if len(t.trackObjects) > 0 {
		return nil, errors.Wrapf(ErrAlreadyMaterialized, "%s already has a node on %s", TypeTestSource, t.trackObjects[0].Track)
	}

	node, err := newNode(t.factory, NodeTestPattern)
	if err != nil {
		return nil, err
	}
	if err := node.Configure(NodePropPattern, t.pattern); err != nil {
		return nil, errors.Wrapf(err, "seed %s node for %s", NodeTestPattern, track)
	}
	return t.record(track, node), nil
}

// Node returns the current pattern node, if any.
func (t *TimelineTestSource) Node() (TrackNode, bool) {
	if len(t.trackObjects) == 0 {
		return nil, false
	}
	return t.trackObjects[0].Node, true
}

// Properties describes the test source attributes.
func (t *TimelineTestSource) Properties() []PropertySpec {
	return copySpecs(testSourceProperties)
}

// Get returns the stored value of the named attribute.
func (t *TimelineTestSource) Get(name string) (any, error) {
	if name == PropPattern {
		return t.pattern, nil
	}
	return nil, errors.Wrapf(ErrUnknownProperty, "%s has no property %q", TypeTestSource, name)
}

// Set validates value and applies it through SetPattern.
func (t *TimelineTestSource) Set(name string, value any) error {
	if name != PropPattern {
		return errors.Wrapf(ErrUnknownProperty, "%s has no property %q", TypeTestSource, name)
	}
	v, err := asEnum(PatternEnum, name, value)
	if err != nil {
		return err
	}
	return t.SetPattern(Pattern(v))
}
