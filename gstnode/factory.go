// SPDX-License-Identifier: Apache-2.0
// Copyright Contributors to the OpenTimelineIO project

//go:build cgo

package gstnode

import (
	"sync"

	"github.com/go-gst/go-glib/glib"
	"github.com/go-gst/go-gst/gst"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	ges "github.com/Avalanche-io/otio-gesobjects"
	"github.com/Avalanche-io/otio-gesobjects/internal/logging"
)

var initOnce sync.Once

// Factory creates GStreamer backed track nodes.
type Factory struct {
	logger zerolog.Logger
}

var _ ges.NodeFactory = (*Factory)(nil)

// NewFactory initializes GStreamer on first use.
func NewFactory() *Factory {
	initOnce.Do(func() { gst.Init(nil) })
	return &Factory{logger: logging.WithComponent("gstnode")}
}

// NewTrackNode makes the element for kind.
func (f *Factory) NewTrackNode(kind ges.NodeKind) (ges.TrackNode, error) {
	name, err := ElementName(kind)
	if err != nil {
		return nil, err
	}
	element, err := gst.NewElement(name)
	if err != nil {
		return nil, errors.Wrapf(err, "make %s", name)
	}
	f.logger.Debug().Str("element", element.GetName()).Stringer("kind", kind).Msg("created element")
	return &Node{kind: kind, element: element, active: true}, nil
}

// Node wraps a *gst.Element so it satisfies ges.TrackNode.
type Node struct {
	kind    ges.NodeKind
	element *gst.Element
	active  bool
}

var _ ges.TrackNode = (*Node)(nil)

func (n *Node) Kind() ges.NodeKind    { return n.kind }
func (n *Node) Active() bool          { return n.active }
func (n *Node) Element() *gst.Element { return n.element }

// Configure sets an element property. Enum values go through a GValue of the
// property's own enum type.
func (n *Node) Configure(name string, value any) error {
	var err error
	switch v := value.(type) {
	case ges.HAlign:
		err = n.setEnum(name, int(v))
	case ges.VAlign:
		err = n.setEnum(name, int(v))
	case ges.Pattern:
		err = n.setEnum(name, int(v))
	default:
		err = n.element.SetProperty(name, value)
	}
	return errors.Wrapf(err, "set %s.%s", n.element.GetName(), name)
}

func (n *Node) setEnum(name string, v int) error {
	t, err := n.element.GetPropertyType(name)
	if err != nil {
		return err
	}
	val, err := glib.ValueInit(t)
	if err != nil {
		return err
	}
	val.SetEnum(v)
	return n.element.SetPropertyValue(name, val)
}

// SetActive silences a text overlay or makes a passthrough drop every buffer.
// Generators only record the state.
func (n *Node) SetActive(active bool) error {
	var err error
	switch n.kind {
	case ges.NodeTextOverlay:
		err = n.element.SetProperty("silent", !active)
	case ges.NodePassthrough:
		drop := float32(0)
		if !active {
			drop = 1
		}
		err = n.element.SetProperty("drop-probability", drop)
	}
	if err != nil {
		return errors.Wrapf(err, "toggle %s", n.element.GetName())
	}
	n.active = active
	return nil
}
