// SPDX-License-Identifier: Apache-2.0
// Copyright Contributors to the OpenTimelineIO project

package ges

import "github.com/pkg/errors"

// TypeTextOverlay is the XGES type name of TimelineOverlay.
const TypeTextOverlay = "GESTextOverlayClip"

// TimelineOverlay displays text over the video of the layers below it.
//
// On a video track it becomes a text-overlay node; on any other track it
// becomes a passthrough node whose active state follows the mute attribute.
type TimelineOverlay struct {
	object

	text     string
	fontDesc string
	halign   HAlign
	valign   VAlign
	mute     bool
}

var _ TimelineObject = (*TimelineOverlay)(nil)

// NewTimelineOverlay creates an overlay with default attributes.
func NewTimelineOverlay(opts ...Option) *TimelineOverlay {
	return &TimelineOverlay{
		object:   newObject(TypeTextOverlay, opts),
		text:     DefaultText,
		fontDesc: DefaultFontDesc,
		halign:   DefaultHAlign,
		valign:   DefaultVAlign,
	}
}

func (t *TimelineOverlay) TypeName() string { return TypeTextOverlay }

// SupportedTrackTypes reports video and audio.
func (t *TimelineOverlay) SupportedTrackTypes() TrackType {
	return TrackTypeVideo | TrackTypeAudio
}

func (t *TimelineOverlay) Text() string     { return t.text }
func (t *TimelineOverlay) FontDesc() string { return t.fontDesc }
func (t *TimelineOverlay) HAlign() HAlign   { return t.halign }
func (t *TimelineOverlay) VAlign() VAlign   { return t.valign }
func (t *TimelineOverlay) Mute() bool       { return t.mute }

// SetText stores the text and pushes it to every video node.
func (t *TimelineOverlay) SetText(text string) error {
	t.logger.Debug().Str("text", text).Msg("set text")
	t.text = text
	return t.propagate(MediaVideo, func(n TrackNode) error {
		return n.Configure(NodePropText, text)
	})
}

// SetFontDesc stores the Pango font description and pushes it to every
// video node.
func (t *TimelineOverlay) SetFontDesc(fontDesc string) error {
	t.logger.Debug().Str("font_desc", fontDesc).Msg("set font description")
	t.fontDesc = fontDesc
	return t.propagate(MediaVideo, func(n TrackNode) error {
		return n.Configure(NodePropFontDesc, fontDesc)
	})
}

// SetHAlign stores the horizontal alignment and pushes it to every video
// node. Values outside HAlignEnum are rejected.
func (t *TimelineOverlay) SetHAlign(halign HAlign) error {
	if !halign.Valid() {
		return invalidAttribute(PropHAlignment, int(halign))
	}
	t.logger.Debug().Stringer("halign", halign).Msg("set horizontal alignment")
	t.halign = halign
	return t.propagate(MediaVideo, func(n TrackNode) error {
		return n.Configure(NodePropHAlignment, halign)
	})
}

// SetVAlign stores the vertical alignment and pushes it to every video node.
// Values outside VAlignEnum are rejected.
func (t *TimelineOverlay) SetVAlign(valign VAlign) error {
	if !valign.Valid() {
		return invalidAttribute(PropVAlignment, int(valign))
	}
	t.logger.Debug().Stringer("valign", valign).Msg("set vertical alignment")
	t.valign = valign
	return t.propagate(MediaVideo, func(n TrackNode) error {
		return n.Configure(NodePropVAlignment, valign)
	})
}

// SetMute deactivates (or reactivates) every audio node. Video nodes are
// left untouched.
func (t *TimelineOverlay) SetMute(mute bool) error {
	t.logger.Debug().Bool("mute", mute).Msg("set mute")
	t.mute = mute
	return t.propagate(MediaAudio, func(n TrackNode) error {
		return n.SetActive(!mute)
	})
}

// CreateTrackObject asks the node factory for the node matching track and
// seeds it with the current attributes. The association is recorded so later
// setters reach the node.
func (t *TimelineOverlay) CreateTrackObject(track *Track) (*TrackObject, error) {
	if track == nil {
		return nil, errors.Wrap(ErrUnsupportedTrackType, "nil track")
	}

	kind := NodePassthrough
	if track.MediaType() == MediaVideo {
		kind = NodeTextOverlay
	}
	node, err := newNode(t.factory, kind)
	if err != nil {
		return nil, err
	}
	if err := t.seed(track, node); err != nil {
		return nil, errors.Wrapf(err, "seed %s node for %s", kind, track)
	}
	return t.record(track, node), nil
}

func (t *TimelineOverlay) seed(track *Track, node TrackNode) error {
	switch track.MediaType() {
	case MediaVideo:
		if err := node.Configure(NodePropText, t.text); err != nil {
			return err
		}
		if err := node.Configure(NodePropFontDesc, t.fontDesc); err != nil {
			return err
		}
		if err := node.Configure(NodePropHAlignment, t.halign); err != nil {
			return err
		}
		return node.Configure(NodePropVAlignment, t.valign)
	case MediaAudio:
		return node.SetActive(!t.mute)
	}
	return nil
}

// Properties describes the overlay attributes.
func (t *TimelineOverlay) Properties() []PropertySpec {
	return copySpecs(overlayProperties)
}

// Get returns the stored value of the named attribute.
func (t *TimelineOverlay) Get(name string) (any, error) {
	switch name {
	case PropText:
		return t.text, nil
	case PropFontDesc:
		return t.fontDesc, nil
	case PropHAlignment:
		return t.halign, nil
	case PropVAlignment:
		return t.valign, nil
	case PropMute:
		return t.mute, nil
	}
	return nil, errors.Wrapf(ErrUnknownProperty, "%s has no property %q", TypeTextOverlay, name)
}

// Set validates value against the named attribute and applies it through the
// typed setter.
func (t *TimelineOverlay) Set(name string, value any) error {
	ps, ok := lookupProperty(overlayProperties, name)
	if !ok {
		return errors.Wrapf(ErrUnknownProperty, "%s has no property %q", TypeTextOverlay, name)
	}
	switch name {
	case PropText, PropFontDesc:
		s, err := asString(name, value)
		if err != nil {
			return err
		}
		if name == PropText {
			return t.SetText(s)
		}
		return t.SetFontDesc(s)
	case PropHAlignment, PropVAlignment:
		v, err := asEnum(ps.Enum, name, value)
		if err != nil {
			return err
		}
		if name == PropHAlignment {
			return t.SetHAlign(HAlign(v))
		}
		return t.SetVAlign(VAlign(v))
	default:
		b, err := asBool(name, value)
		if err != nil {
			return err
		}
		return t.SetMute(b)
	}
}
