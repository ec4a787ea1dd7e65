// SPDX-License-Identifier: Apache-2.0
// Copyright Contributors to the OpenTimelineIO project

//go:build !cgo

package gstnode

import (
	ges "github.com/Avalanche-io/otio-gesobjects"
)

// Factory is a stub when CGO is disabled.
type Factory struct{}

var _ ges.NodeFactory = (*Factory)(nil)

// NewFactory returns a factory whose requests always fail.
func NewFactory() *Factory { return &Factory{} }

// NewTrackNode returns ErrCGORequired.
func (f *Factory) NewTrackNode(kind ges.NodeKind) (ges.TrackNode, error) {
	if _, err := ElementName(kind); err != nil {
		return nil, err
	}
	return nil, ErrCGORequired
}
