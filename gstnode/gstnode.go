// SPDX-License-Identifier: Apache-2.0
// Copyright Contributors to the OpenTimelineIO project

// Package gstnode builds track nodes from GStreamer elements through go-gst.
//
// Text overlays become "textoverlay", passthrough nodes "identity" and test
// patterns "videotestsrc". Without cgo every request fails with
// ErrCGORequired.
package gstnode

import (
	"github.com/pkg/errors"

	ges "github.com/Avalanche-io/otio-gesobjects"
)

// ErrCGORequired is returned when GStreamer functions are called without CGO support.
var ErrCGORequired = errors.New("GStreamer support requires CGO")

// ErrUnknownKind is returned for a node kind without an element.
var ErrUnknownKind = errors.New("no element for node kind")

var elementNames = map[ges.NodeKind]string{
	ges.NodeTextOverlay: "textoverlay",
	ges.NodePassthrough: "identity",
	ges.NodeTestPattern: "videotestsrc",
}

// ElementName returns the element factory name used for kind.
func ElementName(kind ges.NodeKind) (string, error) {
	name, ok := elementNames[kind]
	if !ok {
		return "", errors.Wrapf(ErrUnknownKind, "%s", kind)
	}
	return name, nil
}
