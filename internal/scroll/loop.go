// Copyright (c) 2026 Scrapbook. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package scroll

import (
	"context"
	"slices"
	"sync"
	"time"
)

// postBuffer bounds callbacks waiting for the loop goroutine.
const postBuffer = 64

// LoopScheduler is a real-time [Scheduler]. Every callback, including those
// handed to Post, runs on the goroutine that called Run.
type LoopScheduler struct {
	interval time.Duration

	mu      sync.Mutex
	last    Handle
	frames  []frameTask
	running []frameTask
	timers  map[Handle]*time.Timer

	posts chan func()
	done  chan struct{}
}

// NewLoopScheduler creates a scheduler ticking every interval.
func NewLoopScheduler(interval time.Duration) *LoopScheduler {
	if interval <= 0 {
		interval = DefaultFrameInterval
	}
	return &LoopScheduler{
		interval: interval,
		timers:   make(map[Handle]*time.Timer),
		posts:    make(chan func(), postBuffer),
		done:     make(chan struct{}),
	}
}

// Run drives frames and timers until ctx is cancelled. It must be called
// once. Pending timers are stopped on return and later callbacks dropped.
func (scheduler *LoopScheduler) Run(ctx context.Context) {
	ticker := time.NewTicker(scheduler.interval)
	defer ticker.Stop()
	defer scheduler.stop()

	for {
		select {
		case <-ctx.Done():
			return
		case fn := <-scheduler.posts:
			fn()
		case <-ticker.C:
			scheduler.runFrames()
		}
	}
}

// Post runs fn on the loop goroutine. It is how outside events (scroll,
// wheel, touch) reach a controller. Posts after Run returned are dropped.
func (scheduler *LoopScheduler) Post(fn func()) {
	select {
	case <-scheduler.done:
		return
	default:
	}

	select {
	case <-scheduler.done:
	case scheduler.posts <- fn:
	}
}

func (scheduler *LoopScheduler) RequestFrame(fn func()) Handle {
	scheduler.mu.Lock()
	defer scheduler.mu.Unlock()

	scheduler.last++
	scheduler.frames = append(scheduler.frames, frameTask{handle: scheduler.last, fn: fn})
	return scheduler.last
}

func (scheduler *LoopScheduler) After(d time.Duration, fn func()) Handle {
	scheduler.mu.Lock()
	defer scheduler.mu.Unlock()

	scheduler.last++
	handle := scheduler.last
	scheduler.timers[handle] = time.AfterFunc(d, func() {
		scheduler.Post(func() {
			if scheduler.claimTimer(handle) {
				fn()
			}
		})
	})
	return handle
}

func (scheduler *LoopScheduler) Cancel(handle Handle) {
	scheduler.mu.Lock()
	defer scheduler.mu.Unlock()

	isTask := func(task frameTask) bool { return task.handle == handle }
	scheduler.frames = slices.DeleteFunc(scheduler.frames, isTask)
	scheduler.running = slices.DeleteFunc(scheduler.running, isTask)

	if timer, ok := scheduler.timers[handle]; ok {
		timer.Stop()
		delete(scheduler.timers, handle)
	}
}

// runFrames runs the frames requested before this tick.
func (scheduler *LoopScheduler) runFrames() {
	scheduler.mu.Lock()
	scheduler.running, scheduler.frames = scheduler.frames, nil
	scheduler.mu.Unlock()

	for {
		scheduler.mu.Lock()
		if len(scheduler.running) == 0 {
			scheduler.mu.Unlock()
			return
		}
		task := scheduler.running[0]
		scheduler.running = scheduler.running[1:]
		scheduler.mu.Unlock()

		task.fn()
	}
}

// claimTimer reports whether the timer is still live and retires it.
func (scheduler *LoopScheduler) claimTimer(handle Handle) bool {
	scheduler.mu.Lock()
	defer scheduler.mu.Unlock()

	if _, ok := scheduler.timers[handle]; !ok {
		return false
	}
	delete(scheduler.timers, handle)
	return true
}

func (scheduler *LoopScheduler) stop() {
	close(scheduler.done)

	scheduler.mu.Lock()
	defer scheduler.mu.Unlock()

	for handle, timer := range scheduler.timers {
		timer.Stop()
		delete(scheduler.timers, handle)
	}
	scheduler.frames = nil
	scheduler.running = nil
}
