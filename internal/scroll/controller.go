// Copyright (c) 2026 Scrapbook. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package scroll implements the endless scroll over the three copy feed.

The viewport holds the item sequence three times. The [Controller] parks the
viewport at the start of the middle copy and, whenever the offset drifts near
the outer edge of the first or last copy, moves it by exactly one copy
height. Copies are identical, so the move is invisible.

An optional auto-scroll advances the offset a few pixels per frame in the
direction of the user's last gesture, pausing while the user interacts.

The controller is a state machine over two collaborators: a [Viewport] it
measures and moves, and a [Scheduler] that provides animation frames and
timers. It is not safe for concurrent use; every method and every scheduled
callback must run on the scheduler's goroutine.
*/
package scroll

import (
	"time"
)

// State is the reset state machine position.
type State int

const (
	StateUninitialized State = iota
	StateInitialized
	StateResetting
	StateClosed
)

func (state State) String() string {
	switch state {
	case StateUninitialized:
		return "uninitialized"
	case StateInitialized:
		return "initialized"
	case StateResetting:
		return "resetting"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// Mode is the auto-scroll mode, orthogonal to [State].
type Mode int

const (
	ModeOff Mode = iota
	ModeAutoScrolling
	ModePaused
)

func (mode Mode) String() string {
	switch mode {
	case ModeOff:
		return "off"
	case ModeAutoScrolling:
		return "auto_scrolling"
	case ModePaused:
		return "paused"
	default:
		return "unknown"
	}
}

// Direction is the tracked scroll direction.
type Direction int

const (
	DirectionDown Direction = iota
	DirectionUp
)

func (direction Direction) String() string {
	if direction == DirectionUp {
		return "up"
	}
	return "down"
}

// Jump describes one recentring move.
type Jump struct {
	From       float64
	To         float64
	CopyHeight float64
}

// Options tunes a [Controller]. Zero numeric fields take the defaults.
type Options struct {
	// MinBuffer is the smallest edge distance, in pixels, that triggers a reset.
	MinBuffer float64
	// BufferRatio scales the buffer with the viewport height.
	BufferRatio float64
	// Cooldown suppresses reset checks after a jump.
	Cooldown time.Duration

	// AutoScroll enables the passive animation.
	AutoScroll bool
	// Speed is the auto-scroll distance per frame, in pixels.
	Speed float64
	// PauseDuration is the quiet period after a gesture before auto-scroll resumes.
	PauseDuration time.Duration

	// OnJump, when set, observes every applied jump.
	OnJump func(Jump)
}

// Defaults.
const (
	DefaultMinBuffer     = 100.0
	DefaultBufferRatio   = 0.1
	DefaultCooldown      = 50 * time.Millisecond
	DefaultSpeed         = 2.0
	DefaultPauseDuration = 1500 * time.Millisecond
)

func (options Options) withDefaults() Options {
	if options.MinBuffer <= 0 {
		options.MinBuffer = DefaultMinBuffer
	}
	if options.BufferRatio <= 0 {
		options.BufferRatio = DefaultBufferRatio
	}
	if options.Cooldown <= 0 {
		options.Cooldown = DefaultCooldown
	}
	if options.Speed <= 0 {
		options.Speed = DefaultSpeed
	}
	if options.PauseDuration <= 0 {
		options.PauseDuration = DefaultPauseDuration
	}
	return options
}

// Controller keeps the viewport inside the middle copy.
type Controller struct {
	viewport  Viewport
	scheduler Scheduler
	options   Options

	state     State
	mode      Mode
	direction Direction
	touchY    float64
	jumps     int

	resetFrame  Handle
	cooldown    Handle
	autoFrame   Handle
	resumeTimer Handle
}

// NewController creates an uninitialized controller. Call Sync once the
// content is laid out.
func NewController(viewport Viewport, scheduler Scheduler, options Options) *Controller {
	return &Controller{
		viewport:  viewport,
		scheduler: scheduler,
		options:   options.withDefaults(),
	}
}

func (controller *Controller) State() State         { return controller.state }
func (controller *Controller) Mode() Mode           { return controller.mode }
func (controller *Controller) Direction() Direction { return controller.direction }

// Jumps counts the jumps applied so far.
func (controller *Controller) Jumps() int { return controller.jumps }

// # Lifecycle

// Sync reacts to a content change. The first time content has a height the
// viewport is parked at the start of the middle copy. Content collapsing to
// zero height (an emptied list) re-arms initialization.
func (controller *Controller) Sync() {
	if controller.state == StateClosed {
		return
	}

	copyHeight := controller.copyHeight()
	if copyHeight <= 0 {
		if controller.state != StateUninitialized {
			controller.disarm()
			controller.state = StateUninitialized
		}
		return
	}

	if controller.state != StateUninitialized {
		return
	}

	controller.viewport.SetScrollTop(copyHeight)
	controller.state = StateInitialized
	if controller.options.AutoScroll {
		controller.startAutoScroll()
	}
}

// Close cancels every pending frame and timer. Later calls are no-ops.
func (controller *Controller) Close() {
	if controller.state == StateClosed {
		return
	}
	controller.disarm()
	controller.state = StateClosed
}

func (controller *Controller) disarm() {
	for _, handle := range []*Handle{
		&controller.resetFrame, &controller.cooldown, &controller.autoFrame, &controller.resumeTimer,
	} {
		if *handle != 0 {
			controller.scheduler.Cancel(*handle)
			*handle = 0
		}
	}
	controller.mode = ModeOff
}

// # Reset Cycle

// OnScroll handles a scroll event. It is ignored until initialized and
// while a reset or its cooldown is in progress.
func (controller *Controller) OnScroll() {
	if controller.state != StateInitialized {
		return
	}
	controller.checkBounds()
}

func (controller *Controller) checkBounds() {
	copyHeight := controller.copyHeight()
	if copyHeight <= 0 {
		return
	}

	if controller.edge(controller.viewport.ScrollTop(), copyHeight) == 0 {
		return
	}

	controller.state = StateResetting
	controller.resetFrame = controller.scheduler.RequestFrame(controller.resetInFrame)
}

// resetInFrame re-reads the live offset and height after layout and jumps
// only if the trigger still holds.
func (controller *Controller) resetInFrame() {
	controller.resetFrame = 0
	if controller.state != StateResetting {
		return
	}

	offset := controller.viewport.ScrollTop()
	copyHeight := controller.copyHeight()
	if copyHeight > 0 {
		if edge := controller.edge(offset, copyHeight); edge != 0 {
			controller.jump(offset, offset+float64(edge)*copyHeight, copyHeight)
		}
	}

	controller.cooldown = controller.scheduler.After(controller.options.Cooldown, controller.endCooldown)
}

func (controller *Controller) endCooldown() {
	controller.cooldown = 0
	if controller.state == StateResetting {
		controller.state = StateInitialized
	}
}

// edge returns +1 near the top of the first copy, -1 near the end of the
// last one and 0 in between. The sign is the jump direction in copies.
func (controller *Controller) edge(offset, copyHeight float64) int {
	buffer := controller.buffer()
	switch {
	case offset <= buffer:
		return 1
	case offset >= 2*copyHeight-buffer:
		return -1
	default:
		return 0
	}
}

// jump moves the viewport by exactly one copy height. A move that would
// land outside the content is skipped.
func (controller *Controller) jump(from, to, copyHeight float64) {
	if to < 0 || to > 3*copyHeight {
		return
	}

	controller.viewport.SetScrollTop(to)
	controller.jumps++
	if controller.options.OnJump != nil {
		controller.options.OnJump(Jump{From: from, To: controller.viewport.ScrollTop(), CopyHeight: copyHeight})
	}
}

func (controller *Controller) copyHeight() float64 {
	return controller.viewport.ScrollHeight() / 3
}

func (controller *Controller) buffer() float64 {
	return max(controller.options.MinBuffer, controller.options.BufferRatio*controller.viewport.ClientHeight())
}

// # Auto-scroll

// OnWheel records the direction of a wheel gesture and pauses auto-scroll.
// A zero delta keeps the current direction.
func (controller *Controller) OnWheel(deltaY float64) {
	if controller.state == StateClosed {
		return
	}
	switch {
	case deltaY > 0:
		controller.direction = DirectionDown
	case deltaY < 0:
		controller.direction = DirectionUp
	}
	controller.pause()
}

// OnTouchStart begins tracking a drag at y and pauses auto-scroll.
func (controller *Controller) OnTouchStart(y float64) {
	if controller.state == StateClosed {
		return
	}
	controller.touchY = y
	controller.pause()
}

// OnTouchMove updates the direction from the previous touch point. A finger
// moving up scrolls the content down.
func (controller *Controller) OnTouchMove(y float64) {
	if controller.state == StateClosed {
		return
	}
	switch {
	case y < controller.touchY:
		controller.direction = DirectionDown
	case y > controller.touchY:
		controller.direction = DirectionUp
	}
	controller.touchY = y
	controller.pause()
}

// pause cancels the in-flight animation frame before anything else is
// scheduled, then restarts the quiet period.
func (controller *Controller) pause() {
	if !controller.options.AutoScroll || controller.state == StateUninitialized {
		return
	}

	if controller.autoFrame != 0 {
		controller.scheduler.Cancel(controller.autoFrame)
		controller.autoFrame = 0
	}
	if controller.resumeTimer != 0 {
		controller.scheduler.Cancel(controller.resumeTimer)
	}

	controller.mode = ModePaused
	controller.resumeTimer = controller.scheduler.After(controller.options.PauseDuration, controller.resume)
}

func (controller *Controller) resume() {
	controller.resumeTimer = 0
	if controller.mode != ModePaused {
		return
	}
	controller.startAutoScroll()
}

func (controller *Controller) startAutoScroll() {
	if controller.autoFrame != 0 {
		return
	}
	controller.mode = ModeAutoScrolling
	controller.autoFrame = controller.scheduler.RequestFrame(controller.autoScrollFrame)
}

func (controller *Controller) autoScrollFrame() {
	controller.autoFrame = 0
	if controller.mode != ModeAutoScrolling {
		return
	}

	delta := controller.options.Speed
	if controller.direction == DirectionUp {
		delta = -delta
	}
	maxOffset := max(controller.viewport.ScrollHeight()-controller.viewport.ClientHeight(), 0)
	controller.viewport.SetScrollTop(clamp(controller.viewport.ScrollTop()+delta, 0, maxOffset))
	controller.OnScroll()

	controller.autoFrame = controller.scheduler.RequestFrame(controller.autoScrollFrame)
}
