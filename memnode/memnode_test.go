// SPDX-License-Identifier: Apache-2.0
// Copyright Contributors to the OpenTimelineIO project

package memnode

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ges "github.com/Avalanche-io/otio-gesobjects"
)

func TestFactory_NewTrackNode(t *testing.T) {
	f := NewFactory()

	n, err := f.NewTrackNode(ges.NodeTextOverlay)
	require.NoError(t, err)
	assert.Equal(t, ges.NodeTextOverlay, n.Kind())
	assert.True(t, n.Active())

	_, err = f.NewTrackNode(ges.NodeKind(42))
	assert.Error(t, err)

	assert.Len(t, f.Nodes(), 1)
}

func TestFactory_Fail(t *testing.T) {
	boom := errors.New("no textoverlay plugin")
	f := NewFactory()
	f.Fail[ges.NodeTextOverlay] = boom

	_, err := f.NewTrackNode(ges.NodeTextOverlay)
	assert.Same(t, boom, err)

	_, err = f.NewTrackNode(ges.NodePassthrough)
	assert.NoError(t, err)
}

func TestNode_Configure(t *testing.T) {
	n := NewNode(0, ges.NodeTestPattern)

	require.NoError(t, n.Configure(ges.NodePropPattern, ges.PatternWhite))
	v, ok := n.Property(ges.NodePropPattern)
	require.True(t, ok)
	assert.Equal(t, ges.PatternWhite, v)
	assert.Equal(t, 1, n.Sets[ges.NodePropPattern])

	err := n.Configure(ges.NodePropText, "nope")
	assert.ErrorIs(t, err, ErrUnknownProperty)

	require.NoError(t, n.SetActive(false))
	assert.False(t, n.Active())
	assert.Equal(t, "test-pattern#0", n.String())
}
