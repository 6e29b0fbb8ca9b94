// Copyright (c) 2026 Scrapbook. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package scroll_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/scrapbook/internal/scroll"
)

/*
TestSimulation_DownwardLoop auto-scrolls down and wraps back one copy at a
time.
*/
func TestSimulation_DownwardLoop(t *testing.T) {
	report := scroll.Simulation{
		ContentHeight: 900,
		ClientHeight:  200,
		Duration:      6 * time.Second,
		SampleEvery:   100 * time.Millisecond,
		Options:       scroll.Options{AutoScroll: true},
	}.Run()

	require.NotEmpty(t, report.Jumps)
	for _, jump := range report.Jumps {
		assert.Equal(t, -300.0, jump.To-jump.From)
	}

	require.NotEmpty(t, report.Samples)
	assert.Equal(t, 300.0, report.Samples[0].Offset)
	for _, sample := range report.Samples {
		assert.GreaterOrEqual(t, sample.Offset, 0.0)
		assert.LessOrEqual(t, sample.Offset, 900.0)
	}
}

/*
TestSimulation_WheelReversesDirection pauses on an upward wheel gesture and
then loops upward.
*/
func TestSimulation_WheelReversesDirection(t *testing.T) {
	report := scroll.Simulation{
		ContentHeight: 900,
		ClientHeight:  200,
		Duration:      8 * time.Second,
		SampleEvery:   100 * time.Millisecond,
		Gestures:      []scroll.Gesture{{At: time.Second, WheelDelta: -10}},
		Options:       scroll.Options{AutoScroll: true},
	}.Run()

	require.NotEmpty(t, report.Jumps)
	for _, jump := range report.Jumps {
		assert.Equal(t, 300.0, jump.To-jump.From)
	}

	last := report.Samples[len(report.Samples)-1]
	assert.Equal(t, scroll.DirectionUp, last.Direction)

	var paused bool
	for _, sample := range report.Samples {
		if sample.Mode == scroll.ModePaused {
			paused = true
		}
	}
	assert.True(t, paused)
}
