// SPDX-License-Identifier: Apache-2.0
// Copyright Contributors to the OpenTimelineIO project

package ges

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrInvalidAttribute is returned when a value is outside an attribute's
	// declared domain or has the wrong type. The value is never stored.
	ErrInvalidAttribute = errors.New("invalid attribute value")

	// ErrUnknownProperty is returned by the named accessors for a property
	// the object does not declare.
	ErrUnknownProperty = errors.New("unknown property")

	// ErrUnsupportedTrackType is returned when a node is requested for a
	// track whose media type the object cannot produce.
	ErrUnsupportedTrackType = errors.New("unsupported track type")

	// ErrFactoryFailure matches every *FactoryError.
	ErrFactoryFailure = errors.New("track node factory failure")

	// ErrAlreadyMaterialized is returned when a single-node object already
	// has its track node.
	ErrAlreadyMaterialized = errors.New("track node already created")
)

// FactoryError reports that the external NodeFactory could not produce a node.
type FactoryError struct {
	Kind NodeKind
	Err  error
}

func (e *FactoryError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("cannot create %s node", e.Kind)
	}
	return fmt.Sprintf("cannot create %s node: %v", e.Kind, e.Err)
}

// Unwrap returns the factory's own error.
func (e *FactoryError) Unwrap() error { return e.Err }

// Cause is the pkg/errors counterpart of Unwrap.
func (e *FactoryError) Cause() error { return e.Err }

// Is makes every FactoryError match ErrFactoryFailure.
func (e *FactoryError) Is(target error) bool { return target == ErrFactoryFailure }

func invalidAttribute(name string, value any) error {
	return errors.Wrapf(ErrInvalidAttribute, "%s: %v (%T)", name, value, value)
}
