// Copyright 2026 The Motioncore Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package safety

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdmitSucceedsInNormal(t *testing.T) {
	g := New(nil)
	require.True(t, g.Admit())
	assert.Equal(t, Normal, g.State())
}

func TestAssertEstopBlocksAdmission(t *testing.T) {
	var called int
	g := New(func() { called++ })
	g.AssertEstop()
	assert.Equal(t, EStop, g.State())
	assert.False(t, g.IsSafe())
	assert.False(t, g.Admit())
	assert.Equal(t, 1, called)
}

func TestAssertEstopIsIdempotent(t *testing.T) {
	var called int
	g := New(func() { called++ })
	g.AssertEstop()
	g.AssertEstop()
	g.AssertEstop()
	assert.Equal(t, 1, called)
}

func TestReleaseEstopEntersRecoveryWait(t *testing.T) {
	g := New(nil)
	g.AssertEstop()
	g.ReleaseEstop()
	assert.Equal(t, RecoveryWait, g.State())
	assert.True(t, g.IsSafe())
}

func TestRecoveryWaitCollapsesToNormalOnAdmit(t *testing.T) {
	g := New(nil)
	g.AssertEstop()
	g.ReleaseEstop()
	require.True(t, g.Admit())
	assert.Equal(t, Normal, g.State())
}

func TestReleaseWhileNotEstopIsNoop(t *testing.T) {
	g := New(nil)
	g.ReleaseEstop()
	assert.Equal(t, Normal, g.State())
}
