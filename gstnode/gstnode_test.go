// SPDX-License-Identifier: Apache-2.0
// Copyright Contributors to the OpenTimelineIO project

package gstnode

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ges "github.com/Avalanche-io/otio-gesobjects"
)

func TestElementName(t *testing.T) {
	tests := []struct {
		kind ges.NodeKind
		want string
	}{
		{ges.NodeTextOverlay, "textoverlay"},
		{ges.NodePassthrough, "identity"},
		{ges.NodeTestPattern, "videotestsrc"},
	}
	for _, tt := range tests {
		got, err := ElementName(tt.kind)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}

	_, err := ElementName(ges.NodeKind(99))
	assert.ErrorIs(t, err, ErrUnknownKind)
}
