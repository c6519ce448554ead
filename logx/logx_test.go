// Copyright (c) 2026, CoEditAR. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package logx

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coeditar.org/core/config"
)

func TestText(t *testing.T) {
	var b bytes.Buffer
	l, err := New(config.Log{Level: "warn"}, &b)
	require.NoError(t, err)
	l.Info("hidden")
	l.Warn("shown", "space", "lobby")
	assert.NotContains(t, b.String(), "hidden")
	assert.Contains(t, b.String(), "level=WARN msg=shown space=lobby")

	l.Level.Set(slog.LevelDebug)
	l.Debug("now shown")
	assert.Contains(t, b.String(), "now shown")
	require.NoError(t, l.Close())
}

func TestJSONAndFile(t *testing.T) {
	var b bytes.Buffer
	fp := filepath.Join(t.TempDir(), "logs", "coeditar.log")
	l, err := New(config.Log{Format: "json", File: fp, MaxSize: 1}, &b)
	require.NoError(t, err)
	l.Info("loaded", "entities", 2)
	require.NoError(t, l.Close())

	var rec map[string]any
	require.NoError(t, json.Unmarshal(b.Bytes(), &rec))
	assert.Equal(t, "loaded", rec["msg"])
	assert.Equal(t, 2.0, rec["entities"])

	data, err := os.ReadFile(fp)
	require.NoError(t, err)
	assert.Equal(t, b.String(), string(data))
}

func TestDefaultLevel(t *testing.T) {
	l, err := New(config.Log{}, nil)
	require.NoError(t, err)
	assert.Equal(t, UserLevel, l.Level.Level())
	l.Info("discarded")

	_, err = New(config.Log{Level: "loud"}, nil)
	assert.Error(t, err)
	_, err = New(config.Log{Format: "xml"}, nil)
	assert.Error(t, err)
}
