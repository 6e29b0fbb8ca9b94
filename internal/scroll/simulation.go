// Copyright (c) 2026 Scrapbook. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package scroll

import (
	"cmp"
	"slices"
	"time"
)

// Gesture is a wheel event injected into a [Simulation].
type Gesture struct {
	At         time.Duration
	WheelDelta float64
}

// Simulation drives a controller over a [MemoryViewport] on virtual time.
type Simulation struct {
	ContentHeight float64
	ClientHeight  float64
	Duration      time.Duration
	SampleEvery   time.Duration
	Gestures      []Gesture
	Options       Options
}

// Sample is the controller state at one point of virtual time.
type Sample struct {
	At        time.Duration
	Offset    float64
	State     State
	Mode      Mode
	Direction Direction
}

// Report is the outcome of a [Simulation].
type Report struct {
	Samples []Sample
	Jumps   []Jump
}

// Run plays the simulation to its end and closes the controller.
func (simulation Simulation) Run() Report {
	var report Report

	scheduler := NewVirtualScheduler(DefaultFrameInterval)
	viewport := NewMemoryViewport(simulation.ContentHeight, simulation.ClientHeight)

	options := simulation.Options
	observe := options.OnJump
	options.OnJump = func(jump Jump) {
		report.Jumps = append(report.Jumps, jump)
		if observe != nil {
			observe(jump)
		}
	}

	controller := NewController(viewport, scheduler, options)
	defer controller.Close()
	controller.Sync()

	gestures := slices.Clone(simulation.Gestures)
	slices.SortStableFunc(gestures, func(a, b Gesture) int { return cmp.Compare(a.At, b.At) })

	sampleEvery := max(simulation.SampleEvery, DefaultFrameInterval)
	nextSample := time.Duration(0)

	for scheduler.Now() <= simulation.Duration {
		for len(gestures) > 0 && gestures[0].At <= scheduler.Now() {
			viewport.SetScrollTop(viewport.ScrollTop() + gestures[0].WheelDelta)
			controller.OnWheel(gestures[0].WheelDelta)
			controller.OnScroll()
			gestures = gestures[1:]
		}

		if scheduler.Now() >= nextSample {
			report.Samples = append(report.Samples, Sample{
				At:        scheduler.Now(),
				Offset:    viewport.ScrollTop(),
				State:     controller.State(),
				Mode:      controller.Mode(),
				Direction: controller.Direction(),
			})
			nextSample += sampleEvery
		}

		scheduler.Step()
	}
	return report
}
