// SPDX-License-Identifier: Apache-2.0
// Copyright Contributors to the OpenTimelineIO project

package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithComponent_DefaultsToInfo(t *testing.T) {
	// runs before any Init call in this package
	assert.Equal(t, zerolog.InfoLevel, WithComponent("ges").GetLevel())
}

func TestInit(t *testing.T) {
	Init(true)
	assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())
	assert.Equal(t, zerolog.TraceLevel, WithComponent("ges").GetLevel())
	Init(false)
	assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())
}

func TestNewLogger(t *testing.T) {
	var a, b bytes.Buffer
	logger := NewLogger(&a, &b)
	logger.Info().Str("clip", "title").Msg("created")

	for _, buf := range []*bytes.Buffer{&a, &b} {
		var entry map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		assert.Equal(t, "title", entry["clip"])
		assert.Equal(t, "created", entry["message"])
	}
}
