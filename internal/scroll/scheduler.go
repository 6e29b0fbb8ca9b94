// Copyright (c) 2026 Scrapbook. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package scroll

import (
	"slices"
	"time"
)

// Handle identifies a scheduled callback. The zero Handle is never issued.
type Handle uint64

// Scheduler is the cooperative event loop the controller runs on.
//
// Callbacks never run concurrently with each other. Cancelling a handle that
// already ran, or was already cancelled, is a no-op.
type Scheduler interface {
	// RequestFrame runs fn on the next animation frame.
	RequestFrame(fn func()) Handle
	// After runs fn once d has elapsed.
	After(d time.Duration, fn func()) Handle
	// Cancel stops a pending callback.
	Cancel(handle Handle)
}

// DefaultFrameInterval approximates a 60 Hz display.
const DefaultFrameInterval = 16 * time.Millisecond

type frameTask struct {
	handle Handle
	fn     func()
}

type timerTask struct {
	handle Handle
	at     time.Duration
	fn     func()
}

// VirtualScheduler is a deterministic [Scheduler] driven by an explicit
// virtual clock. Nothing runs until Step or Advance is called.
type VirtualScheduler struct {
	interval time.Duration
	now      time.Duration
	last     Handle
	frames   []frameTask
	running  []frameTask
	timers   []timerTask
}

// NewVirtualScheduler creates a scheduler whose frames are interval apart.
func NewVirtualScheduler(interval time.Duration) *VirtualScheduler {
	if interval <= 0 {
		interval = DefaultFrameInterval
	}
	return &VirtualScheduler{interval: interval}
}

func (scheduler *VirtualScheduler) RequestFrame(fn func()) Handle {
	scheduler.last++
	scheduler.frames = append(scheduler.frames, frameTask{handle: scheduler.last, fn: fn})
	return scheduler.last
}

func (scheduler *VirtualScheduler) After(d time.Duration, fn func()) Handle {
	scheduler.last++
	scheduler.timers = append(scheduler.timers, timerTask{
		handle: scheduler.last,
		at:     scheduler.now + max(d, 0),
		fn:     fn,
	})
	return scheduler.last
}

func (scheduler *VirtualScheduler) Cancel(handle Handle) {
	isTask := func(task frameTask) bool { return task.handle == handle }
	scheduler.frames = slices.DeleteFunc(scheduler.frames, isTask)
	scheduler.running = slices.DeleteFunc(scheduler.running, isTask)
	scheduler.timers = slices.DeleteFunc(scheduler.timers, func(task timerTask) bool { return task.handle == handle })
}

// Now is the virtual time elapsed since creation.
func (scheduler *VirtualScheduler) Now() time.Duration {
	return scheduler.now
}

// Pending counts callbacks that have not run yet.
func (scheduler *VirtualScheduler) Pending() int {
	return len(scheduler.frames) + len(scheduler.running) + len(scheduler.timers)
}

// Step advances the clock by one frame. Timers that came due fire first, in
// due order, then the frame callbacks requested before the step. Callbacks
// requested while stepping wait for the next frame.
func (scheduler *VirtualScheduler) Step() {
	scheduler.now += scheduler.interval
	scheduler.fireTimers()

	scheduler.running, scheduler.frames = scheduler.frames, nil
	for len(scheduler.running) > 0 {
		task := scheduler.running[0]
		scheduler.running = scheduler.running[1:]
		task.fn()
	}
}

// Advance steps whole frames until at least d of virtual time has passed.
func (scheduler *VirtualScheduler) Advance(d time.Duration) {
	target := scheduler.now + d
	for scheduler.now < target {
		scheduler.Step()
	}
}

func (scheduler *VirtualScheduler) fireTimers() {
	for {
		index := -1
		for i, task := range scheduler.timers {
			if task.at <= scheduler.now && (index < 0 || task.at < scheduler.timers[index].at) {
				index = i
			}
		}
		if index < 0 {
			return
		}
		task := scheduler.timers[index]
		scheduler.timers = slices.Delete(scheduler.timers, index, index+1)
		task.fn()
	}
}
