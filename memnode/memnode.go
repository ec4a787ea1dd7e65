// SPDX-License-Identifier: Apache-2.0
// Copyright Contributors to the OpenTimelineIO project

// Package memnode provides track nodes that live only in memory. They record
// every property pushed to them, which makes them suitable for tests and for
// dry runs without a media framework.
package memnode

import (
	"fmt"

	"github.com/pkg/errors"

	ges "github.com/Avalanche-io/otio-gesobjects"
)

// ErrUnknownProperty is returned by Configure for a property the node kind
// does not have.
var ErrUnknownProperty = errors.New("memnode: unknown property")

var nodeProperties = map[ges.NodeKind][]string{
	ges.NodeTextOverlay: {ges.NodePropText, ges.NodePropFontDesc, ges.NodePropHAlignment, ges.NodePropVAlignment},
	ges.NodeTestPattern: {ges.NodePropPattern},
	ges.NodePassthrough: nil,
}

// Node is an in-memory ges.TrackNode.
type Node struct {
	id     int
	kind   ges.NodeKind
	active bool
	props  map[string]any
	// Sets counts Configure calls per property.
	Sets map[string]int
}

var _ ges.TrackNode = (*Node)(nil)

// NewNode creates an active node of the given kind.
func NewNode(id int, kind ges.NodeKind) *Node {
	return &Node{
		id:     id,
		kind:   kind,
		active: true,
		props:  make(map[string]any),
		Sets:   make(map[string]int),
	}
}

func (n *Node) ID() int            { return n.id }
func (n *Node) Kind() ges.NodeKind { return n.kind }
func (n *Node) Active() bool       { return n.active }

// Configure stores value under name.
func (n *Node) Configure(name string, value any) error {
	if !n.accepts(name) {
		return errors.Wrapf(ErrUnknownProperty, "%s node has no property %q", n.kind, name)
	}
	n.props[name] = value
	n.Sets[name]++
	return nil
}

// SetActive toggles the node.
func (n *Node) SetActive(active bool) error {
	n.active = active
	return nil
}

// Property returns the last value configured for name.
func (n *Node) Property(name string) (any, bool) {
	v, ok := n.props[name]
	return v, ok
}

func (n *Node) accepts(name string) bool {
	for _, p := range nodeProperties[n.kind] {
		if p == name {
			return true
		}
	}
	return false
}

func (n *Node) String() string {
	return fmt.Sprintf("%s#%d", n.kind, n.id)
}

// Factory hands out Nodes. Kinds listed in Fail make NewTrackNode return the
// mapped error.
type Factory struct {
	Fail  map[ges.NodeKind]error
	nodes []*Node
}

var _ ges.NodeFactory = (*Factory)(nil)

// NewFactory creates an empty factory.
func NewFactory() *Factory {
	return &Factory{Fail: make(map[ges.NodeKind]error)}
}

// NewTrackNode creates and remembers a node of the given kind.
func (f *Factory) NewTrackNode(kind ges.NodeKind) (ges.TrackNode, error) {
	if err, ok := f.Fail[kind]; ok {
		return nil, err
	}
	if _, ok := nodeProperties[kind]; !ok {
		return nil, errors.Errorf("memnode: unsupported node kind %s", kind)
	}
	n := NewNode(len(f.nodes), kind)
	f.nodes = append(f.nodes, n)
	return n, nil
}

// Nodes lists every node created so far.
func (f *Factory) Nodes() []*Node {
	out := make([]*Node, len(f.nodes))
	copy(out, f.nodes)
	return out
}
