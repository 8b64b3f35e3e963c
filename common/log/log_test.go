// Copyright (c) 2019-2022 The Lumachain Foundation
// Use of this source code is governed by an MIT
// license that can be found in the LICENSE file.
//

package log

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

// captureStdout routes os.Stdout through a pipe while fn runs and
// returns everything written to it.  The logger snapshots os.Stdout at
// construction time, so fn must create the logger itself.
func captureStdout(t *testing.T, fn func()) string {
	t.Helper()

	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	orig := os.Stdout
	os.Stdout = w
	defer func() { os.Stdout = orig }()

	fn()

	w.Close()
	data, err := io.ReadAll(r)
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}

func TestLoggerNilSafe(t *testing.T) {
	prev := std
	std = nil
	defer func() { std = prev }()

	// Logging before Init must be a silent no-op, not a crash.
	assert.NotPanics(t, func() {
		Info("too early")
		Errorf("too early %d", 1)
	})

	var l *Logger
	assert.NotPanics(t, func() { l.Warn("nil receiver") })
}

func TestLoggerLevelFilter(t *testing.T) {
	out := captureStdout(t, func() {
		logger := NewDefault("", LevelInfo, 0, 0)
		logger.Debug("noise")
		logger.Info("signal")
		logger.Warnf("trouble at height %d", 42)

		logger.SetPrintLevel(LevelError)
		logger.Info("muted")
		logger.Error("still heard")

		logger.SetPrintLevel(LevelOff)
		logger.Fatal("silenced")
	})

	assert.NotContains(t, out, "noise")
	assert.Contains(t, out, "[INF] signal")
	assert.Contains(t, out, "[WRN] trouble at height 42")
	assert.NotContains(t, out, "muted")
	assert.Contains(t, out, "[ERR] still heard")
	assert.NotContains(t, out, "silenced")
}

func TestLoggerPackageLevel(t *testing.T) {
	out := captureStdout(t, func() {
		Init("", LevelDebug, 0, 0)
		Debugf("vin %d is live", 0)
		Warn("pool full")
	})

	assert.Contains(t, out, "[DBG] vin 0 is live")
	assert.Contains(t, out, "[WRN] pool full")
}

func TestLoggerWritesFile(t *testing.T) {
	dir := t.TempDir()
	captureStdout(t, func() {
		logger := NewDefault(dir, LevelInfo, 0, 0)
		logger.Info("persisted line")
	})

	data, err := os.ReadFile(filepath.Join(dir, "node.log"))
	assert.NoError(t, err)
	assert.Contains(t, string(data), "[INF] persisted line")
}
