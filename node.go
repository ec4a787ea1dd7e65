// SPDX-License-Identifier: Apache-2.0
// Copyright Contributors to the OpenTimelineIO project

package ges

import "fmt"

// NodeKind selects the concrete processing node a factory builds.
type NodeKind int

const (
	// NodeTextOverlay renders text over video.
	NodeTextOverlay NodeKind = iota
	// NodePassthrough forwards its input unchanged.
	NodePassthrough
	// NodeTestPattern generates a test image.
	NodeTestPattern
)

func (k NodeKind) String() string {
	switch k {
	case NodeTextOverlay:
		return "text-overlay"
	case NodePassthrough:
		return "passthrough"
	case NodeTestPattern:
		return "test-pattern"
	}
	return fmt.Sprintf("node-kind(%d)", int(k))
}

// Node property names pushed through TrackNode.Configure.
const (
	NodePropText       = "text"
	NodePropFontDesc   = "font-desc"
	NodePropHAlignment = "halignment"
	NodePropVAlignment = "valignment"
	NodePropPattern    = "pattern"
)

// TrackNode is a concrete per-track processing element owned by the
// pipeline framework.
type TrackNode interface {
	Kind() NodeKind
	// Configure sets a node property. Enum values are passed as HAlign,
	// VAlign or Pattern.
	Configure(name string, value any) error
	// SetActive toggles the node's participation in the pipeline.
	SetActive(active bool) error
	Active() bool
}

// NodeFactory produces track nodes.
type NodeFactory interface {
	NewTrackNode(kind NodeKind) (TrackNode, error)
}

// NodeFactoryFunc adapts a function to NodeFactory.
type NodeFactoryFunc func(kind NodeKind) (TrackNode, error)

func (f NodeFactoryFunc) NewTrackNode(kind NodeKind) (TrackNode, error) {
	return f(kind)
}

// TrackObject records that a timeline object materialized Node in Track.
type TrackObject struct {
	Track *Track
	Node  TrackNode
}

// MediaType is the media type of the owning track.
func (to *TrackObject) MediaType() MediaType {
	if to.Track == nil {
		return MediaOther
	}
	return to.Track.MediaType()
}

func newNode(factory NodeFactory, kind NodeKind) (TrackNode, error) {
	if factory == nil {
		return nil, &FactoryError{Kind: kind, Err: fmt.Errorf("no node factory")}
	}
	node, err := factory.NewTrackNode(kind)
	if err != nil {
		return nil, &FactoryError{Kind: kind, Err: err}
	}
	if node == nil {
		return nil, &FactoryError{Kind: kind, Err: fmt.Errorf("factory returned no node")}
	}
	return node, nil
}
