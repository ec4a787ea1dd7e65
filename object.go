// SPDX-License-Identifier: Apache-2.0
// Copyright Contributors to the OpenTimelineIO project

package ges

import (
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/Avalanche-io/otio-gesobjects/internal/logging"
)

// GStreamer time is in nanoseconds
const GSTSecond = 1000000000

// TimelineObject is a time-range scoped element of a layer that materializes
// into track nodes.
type TimelineObject interface {
	ID() string
	Name() string
	SetName(name string)
	// TypeName is the XGES type name of the object.
	TypeName() string
	Start() uint64
	SetStart(ns uint64)
	Duration() uint64
	SetDuration(ns uint64)
	InPoint() uint64
	SetInPoint(ns uint64)
	Priority() int
	SetPriority(priority int)

	// SupportedTrackTypes is the set of track types the object produces
	// nodes for.
	SupportedTrackTypes() TrackType
	CreateTrackObject(track *Track) (*TrackObject, error)
	TrackObjects() []*TrackObject
	ReleaseTrackObject(to *TrackObject) bool

	Properties() []PropertySpec
	Get(name string) (any, error)
	Set(name string, value any) error
}

// Option configures a timeline object at construction.
type Option func(*object)

// WithNodeFactory sets the factory used by CreateTrackObject.
func WithNodeFactory(factory NodeFactory) Option {
	return func(o *object) { o.factory = factory }
}

// WithLogger replaces the component logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *object) { o.logger = logger }
}

// WithName sets the object name.
func WithName(name string) Option {
	return func(o *object) { o.name = name }
}

// WithID keeps a known identifier instead of generating one.
func WithID(id string) Option {
	return func(o *object) {
		if id != "" {
			o.id = id
		}
	}
}

// object holds what every timeline object shares: identity, placement and
// the track objects produced so far.
type object struct {
	id       string
	name     string
	start    uint64
	duration uint64
	inpoint  uint64
	priority int

	factory      NodeFactory
	logger       zerolog.Logger
	trackObjects []*TrackObject
}

func newObject(typeName string, opts []Option) object {
	o := object{
		id:     uuid.NewString(),
		logger: logging.WithComponent("ges"),
	}
	for _, opt := range opts {
		opt(&o)
	}
	o.logger = o.logger.With().Str("type", typeName).Str("object", o.id).Logger()
	return o
}

func (o *object) ID() string               { return o.id }
func (o *object) Name() string             { return o.name }
func (o *object) SetName(name string)      { o.name = name }
func (o *object) Start() uint64            { return o.start }
func (o *object) SetStart(ns uint64)       { o.start = ns }
func (o *object) Duration() uint64         { return o.duration }
func (o *object) SetDuration(ns uint64)    { o.duration = ns }
func (o *object) InPoint() uint64          { return o.inpoint }
func (o *object) SetInPoint(ns uint64)     { o.inpoint = ns }
func (o *object) Priority() int            { return o.priority }
func (o *object) SetPriority(priority int) { o.priority = priority }

// TrackObjects returns the associated track objects in creation order.
func (o *object) TrackObjects() []*TrackObject {
	out := make([]*TrackObject, len(o.trackObjects))
	copy(out, o.trackObjects)
	return out
}

// ReleaseTrackObject forgets the association with to. Later attribute changes
// no longer reach its node.
func (o *object) ReleaseTrackObject(to *TrackObject) bool {
	for i, cur := range o.trackObjects {
		if cur == to {
			o.trackObjects = append(o.trackObjects[:i], o.trackObjects[i+1:]...)
			o.logger.Debug().Stringer("track", to.Track).Msg("released track object")
			return true
		}
	}
	return false
}

func (o *object) record(track *Track, node TrackNode) *TrackObject {
	to := &TrackObject{Track: track, Node: node}
	o.trackObjects = append(o.trackObjects, to)
	o.logger.Debug().
		Stringer("track", track).
		Stringer("node", node.Kind()).
		Msg("created track object")
	return to
}

// propagate runs push on the node of every track object of the given media
// type. All nodes are visited; the first failure is returned.
func (o *object) propagate(media MediaType, push func(TrackNode) error) error {
	var first error
	for _, to := range o.trackObjects {
		if to.MediaType() != media {
			continue
		}
		if err := push(to.Node); err != nil {
			o.logger.Warn().Err(err).Stringer("track", to.Track).Msg("propagation failed")
			if first == nil {
				first = errors.Wrapf(err, "propagate to %s", to.Track)
			}
		}
	}
	return first
}
