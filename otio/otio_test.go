// SPDX-License-Identifier: Apache-2.0
// Copyright Contributors to the OpenTimelineIO project

package otio

import (
	"testing"

	"github.com/Avalanche-io/gotio"
	"github.com/Avalanche-io/gotio/opentime"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ges "github.com/Avalanche-io/otio-gesobjects"
)

func sampleObjects(t *testing.T) []ges.TimelineObject {
	t.Helper()

	bars := ges.NewTimelineTestSource(ges.WithName("bars"))
	require.NoError(t, bars.SetPattern(ges.PatternSMPTE))
	bars.SetDuration(2 * ges.GSTSecond)

	title := ges.NewTimelineOverlay(ges.WithName("title"))
	require.NoError(t, title.SetText("Hello"))
	require.NoError(t, title.SetVAlign(ges.VAlignTop))
	title.SetStart(1 * ges.GSTSecond)
	title.SetDuration(3 * ges.GSTSecond)
	title.SetPriority(1)

	return []ges.TimelineObject{title, bars}
}

func TestToTimeline(t *testing.T) {
	timeline, err := ToTimeline("Demo", 25, sampleObjects(t))
	require.NoError(t, err)

	assert.Equal(t, "Demo", timeline.Name())
	tracks := timeline.VideoTracks()
	require.Len(t, tracks, 2)

	// layer 0: the test source alone
	children := tracks[0].Children()
	require.Len(t, children, 1)
	bars, ok := children[0].(*gotio.Clip)
	require.True(t, ok)
	assert.Equal(t, "bars", bars.Name())
	ref, ok := bars.MediaReference().(*gotio.GeneratorReference)
	require.True(t, ok)
	assert.Equal(t, "smpte", ref.GeneratorKind())

	// layer 1: a one second gap, then the title
	children = tracks[1].Children()
	require.Len(t, children, 2)
	_, isGap := children[0].(*gotio.Gap)
	assert.True(t, isGap)
	gapDur, err := children[0].Duration()
	require.NoError(t, err)
	assert.Equal(t, opentime.FromSeconds(1, 25).Value(), gapDur.Value())

	title := children[1].(*gotio.Clip)
	ref = title.MediaReference().(*gotio.GeneratorReference)
	assert.Equal(t, GeneratorTitle, ref.GeneratorKind())
	dur, err := title.Duration()
	require.NoError(t, err)
	assert.Equal(t, opentime.FromSeconds(3, 25).Value(), dur.Value())

	xgesMetadata := clipMetadata(title)
	require.NotNil(t, xgesMetadata)
	assert.Equal(t, "Hello", xgesMetadata[ges.PropText])
	assert.Equal(t, "top", xgesMetadata[ges.PropVAlignment])
	assert.Equal(t, false, xgesMetadata[ges.PropMute])
	assert.Equal(t, ges.TypeTextOverlay, xgesMetadata["clip-type"])
}

func TestToTimeline_Overlap(t *testing.T) {
	a := ges.NewTimelineTestSource()
	a.SetDuration(2 * ges.GSTSecond)
	b := ges.NewTimelineTestSource()
	b.SetStart(1 * ges.GSTSecond)
	b.SetDuration(2 * ges.GSTSecond)

	_, err := ToTimeline("", 0, []ges.TimelineObject{a, b})
	assert.ErrorIs(t, err, ErrOverlap)
}

func TestFromTimeline_RoundTrip(t *testing.T) {
	in := sampleObjects(t)
	timeline, err := ToTimeline("Demo", 25, in)
	require.NoError(t, err)

	out, err := FromTimeline(timeline)
	require.NoError(t, err)
	require.Len(t, out, 2)

	bars, ok := out[0].(*ges.TimelineTestSource)
	require.True(t, ok, "got %T", out[0])
	assert.Equal(t, in[1].ID(), bars.ID())
	assert.Equal(t, ges.PatternSMPTE, bars.Pattern())
	assert.Equal(t, 0, bars.Priority())
	assert.Equal(t, uint64(2*ges.GSTSecond), bars.Duration())

	title, ok := out[1].(*ges.TimelineOverlay)
	require.True(t, ok, "got %T", out[1])
	assert.Equal(t, in[0].ID(), title.ID())
	assert.Equal(t, "title", title.Name())
	assert.Equal(t, "Hello", title.Text())
	assert.Equal(t, ges.VAlignTop, title.VAlign())
	assert.Equal(t, ges.HAlignCenter, title.HAlign())
	assert.Equal(t, uint64(1*ges.GSTSecond), title.Start())
	assert.Equal(t, uint64(3*ges.GSTSecond), title.Duration())
	assert.Equal(t, 1, title.Priority())
}

func TestFromTimeline_SkipsMediaClips(t *testing.T) {
	timeline := gotio.NewTimeline("mixed", nil, nil)
	track := gotio.NewTrack("V1", nil, gotio.TrackKindVideo, nil, nil)

	sourceRange := opentime.NewTimeRange(opentime.NewRationalTime(0, 24), opentime.NewRationalTime(48, 24))
	mediaRef := gotio.NewExternalReference("", "file:///media/clip001.mov", nil, nil)
	require.NoError(t, track.AppendChild(gotio.NewClip("shot", mediaRef, &sourceRange, nil, nil, nil, "", nil)))

	genRange := opentime.NewTimeRange(opentime.NewRationalTime(0, 24), opentime.NewRationalTime(24, 24))
	genRef := gotio.NewGeneratorReference("", "snow", nil, nil, nil)
	require.NoError(t, track.AppendChild(gotio.NewClip("noise", genRef, &genRange, nil, nil, nil, "", nil)))

	unknownRef := gotio.NewGeneratorReference("", "fractal", nil, nil, nil)
	require.NoError(t, track.AppendChild(gotio.NewClip("fractal", unknownRef, &genRange, nil, nil, nil, "", nil)))
	require.NoError(t, timeline.Tracks().AppendChild(track))

	out, err := FromTimeline(timeline)
	require.NoError(t, err)
	require.Len(t, out, 1)

	noise := out[0].(*ges.TimelineTestSource)
	assert.Equal(t, ges.PatternSnow, noise.Pattern())
	assert.Equal(t, uint64(2*ges.GSTSecond), noise.Start())
	assert.Equal(t, uint64(1*ges.GSTSecond), noise.Duration())
}
