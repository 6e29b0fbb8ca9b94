// Copyright (c) 2026 Scrapbook. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package scroll_test

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/scrapbook/internal/scroll"
)

type harness struct {
	viewport   *scroll.MemoryViewport
	scheduler  *scroll.VirtualScheduler
	controller *scroll.Controller
	jumps      []scroll.Jump
}

func newHarness(contentHeight, clientHeight float64, options scroll.Options) *harness {
	h := &harness{
		viewport:  scroll.NewMemoryViewport(contentHeight, clientHeight),
		scheduler: scroll.NewVirtualScheduler(scroll.DefaultFrameInterval),
	}
	options.OnJump = func(jump scroll.Jump) { h.jumps = append(h.jumps, jump) }
	h.controller = scroll.NewController(h.viewport, h.scheduler, options)
	return h
}

// scrollTo moves the viewport the way a user would and fires the scroll event.
func (h *harness) scrollTo(offset float64) {
	h.viewport.SetScrollTop(offset)
	h.controller.OnScroll()
}

/*
TestController_InitializeAndTopJump places the viewport at the middle copy
and jumps forward one copy from near the top.
*/
func TestController_InitializeAndTopJump(t *testing.T) {
	h := newHarness(900, 200, scroll.Options{})

	h.controller.Sync()
	assert.Equal(t, scroll.StateInitialized, h.controller.State())
	assert.Equal(t, 300.0, h.viewport.ScrollTop())

	h.scrollTo(10)
	assert.Equal(t, scroll.StateResetting, h.controller.State())
	assert.Equal(t, 10.0, h.viewport.ScrollTop(), "jump waits for the next frame")

	h.scheduler.Step()
	assert.Equal(t, 310.0, h.viewport.ScrollTop())
	assert.Equal(t, scroll.StateResetting, h.controller.State(), "cooldown still running")

	h.scheduler.Advance(scroll.DefaultCooldown)
	assert.Equal(t, scroll.StateInitialized, h.controller.State())
	assert.Equal(t, 1, h.controller.Jumps())
}

/*
TestController_BottomJump jumps back one copy from near the end of the last
copy boundary.
*/
func TestController_BottomJump(t *testing.T) {
	h := newHarness(900, 200, scroll.Options{})
	h.controller.Sync()

	h.scrollTo(550)
	h.scheduler.Step()

	assert.Equal(t, 250.0, h.viewport.ScrollTop())
	require.Len(t, h.jumps, 1)
	assert.Equal(t, scroll.Jump{From: 550, To: 250, CopyHeight: 300}, h.jumps[0])
}

/*
TestController_NoJumpInsideMiddle leaves offsets away from both edges alone.
*/
func TestController_NoJumpInsideMiddle(t *testing.T) {
	h := newHarness(900, 200, scroll.Options{})
	h.controller.Sync()

	for _, offset := range []float64{101, 300, 499} {
		h.scrollTo(offset)
		assert.Equal(t, scroll.StateInitialized, h.controller.State(), "offset %v", offset)
	}
	assert.Zero(t, h.scheduler.Pending())
}

/*
TestController_StaleTrigger skips the jump when the offset left the edge
before the frame ran.
*/
func TestController_StaleTrigger(t *testing.T) {
	h := newHarness(900, 200, scroll.Options{})
	h.controller.Sync()

	h.scrollTo(10)
	h.viewport.SetScrollTop(150)
	h.scheduler.Step()

	assert.Equal(t, 150.0, h.viewport.ScrollTop())
	assert.Zero(t, h.controller.Jumps())

	h.scheduler.Advance(scroll.DefaultCooldown)
	assert.Equal(t, scroll.StateInitialized, h.controller.State())
}

/*
TestController_LiveHeight measures the copy height inside the frame, not
when the scroll event fired.
*/
func TestController_LiveHeight(t *testing.T) {
	h := newHarness(900, 200, scroll.Options{})
	h.controller.Sync()

	h.scrollTo(10)
	h.viewport.SetContentHeight(1200)
	h.scheduler.Step()

	assert.Equal(t, 410.0, h.viewport.ScrollTop())
}

/*
TestController_CooldownSuppressesChecks ignores scroll events until the
cooldown after a jump has elapsed.
*/
func TestController_CooldownSuppressesChecks(t *testing.T) {
	h := newHarness(900, 200, scroll.Options{})
	h.controller.Sync()

	h.scrollTo(10)
	h.scheduler.Step()
	require.Equal(t, 310.0, h.viewport.ScrollTop())

	h.scrollTo(20)
	assert.Equal(t, 1, h.scheduler.Pending(), "only the cooldown timer is pending")

	h.scheduler.Step()
	assert.Equal(t, 20.0, h.viewport.ScrollTop())

	h.scheduler.Advance(scroll.DefaultCooldown)
	h.scrollTo(20)
	h.scheduler.Step()
	assert.Equal(t, 320.0, h.viewport.ScrollTop())
}

/*
TestController_BufferScalesWithViewport uses ten percent of a tall viewport
as the edge buffer.
*/
func TestController_BufferScalesWithViewport(t *testing.T) {
	h := newHarness(9000, 2000, scroll.Options{})
	h.controller.Sync()
	require.Equal(t, 3000.0, h.viewport.ScrollTop())

	h.scrollTo(150)
	h.scheduler.Step()
	assert.Equal(t, 3150.0, h.viewport.ScrollTop())

	h.scheduler.Advance(scroll.DefaultCooldown)
	h.scrollTo(250)
	assert.Equal(t, scroll.StateInitialized, h.controller.State())
}

/*
TestController_JumpOutsideContentSkipped never moves past the content end.
*/
func TestController_JumpOutsideContentSkipped(t *testing.T) {
	h := newHarness(120, 0, scroll.Options{})
	h.controller.Sync()

	h.scrollTo(90)
	h.scheduler.Step()

	assert.Equal(t, 90.0, h.viewport.ScrollTop())
	assert.Zero(t, h.controller.Jumps())
}

/*
TestController_EmptyContent never initializes nor schedules anything.
*/
func TestController_EmptyContent(t *testing.T) {
	h := newHarness(0, 200, scroll.Options{AutoScroll: true})

	h.controller.Sync()
	h.controller.OnScroll()
	h.controller.OnWheel(10)
	h.controller.OnTouchStart(100)
	h.scheduler.Advance(time.Second)

	assert.Equal(t, scroll.StateUninitialized, h.controller.State())
	assert.Equal(t, scroll.ModeOff, h.controller.Mode())
	assert.Zero(t, h.viewport.ScrollTop())
	assert.Zero(t, h.scheduler.Pending())
}

/*
TestController_Rearm returns to uninitialized when content empties and
initializes again when it comes back.
*/
func TestController_Rearm(t *testing.T) {
	h := newHarness(900, 200, scroll.Options{AutoScroll: true})
	h.controller.Sync()
	h.scrollTo(10)

	h.viewport.SetContentHeight(0)
	h.controller.Sync()
	assert.Equal(t, scroll.StateUninitialized, h.controller.State())
	assert.Equal(t, scroll.ModeOff, h.controller.Mode())
	assert.Zero(t, h.scheduler.Pending())

	h.viewport.SetContentHeight(600)
	h.controller.Sync()
	assert.Equal(t, scroll.StateInitialized, h.controller.State())
	assert.Equal(t, 200.0, h.viewport.ScrollTop())
	assert.Equal(t, scroll.ModeAutoScrolling, h.controller.Mode())
}

/*
TestController_SyncAfterInitKeepsOffset does not re-park an initialized
viewport when content grows.
*/
func TestController_SyncAfterInitKeepsOffset(t *testing.T) {
	h := newHarness(900, 200, scroll.Options{})
	h.controller.Sync()
	h.scrollTo(350)

	h.viewport.SetContentHeight(1500)
	h.controller.Sync()
	assert.Equal(t, 350.0, h.viewport.ScrollTop())
}

/*
TestController_AutoScroll advances two pixels per frame, pauses on a wheel
gesture and resumes in the gesture's direction after the quiet period.
*/
func TestController_AutoScroll(t *testing.T) {
	h := newHarness(900, 200, scroll.Options{AutoScroll: true})
	h.controller.Sync()
	require.Equal(t, scroll.ModeAutoScrolling, h.controller.Mode())

	h.scheduler.Step()
	assert.Equal(t, 302.0, h.viewport.ScrollTop())
	h.scheduler.Step()
	assert.Equal(t, 304.0, h.viewport.ScrollTop())

	h.controller.OnWheel(-3)
	assert.Equal(t, scroll.ModePaused, h.controller.Mode())
	assert.Equal(t, scroll.DirectionUp, h.controller.Direction())

	h.scheduler.Advance(time.Second)
	assert.Equal(t, 304.0, h.viewport.ScrollTop(), "no movement while paused")

	h.scheduler.Advance(600 * time.Millisecond)
	assert.Equal(t, scroll.ModeAutoScrolling, h.controller.Mode())

	before := h.viewport.ScrollTop()
	h.scheduler.Step()
	assert.Equal(t, before-2, h.viewport.ScrollTop())
}

/*
TestController_GesturesExtendPause restarts the quiet period on every gesture.
*/
func TestController_GesturesExtendPause(t *testing.T) {
	h := newHarness(900, 200, scroll.Options{AutoScroll: true})
	h.controller.Sync()

	h.controller.OnWheel(5)
	h.scheduler.Advance(time.Second)
	h.controller.OnWheel(5)
	h.scheduler.Advance(time.Second)
	assert.Equal(t, scroll.ModePaused, h.controller.Mode())

	h.scheduler.Advance(600 * time.Millisecond)
	assert.Equal(t, scroll.ModeAutoScrolling, h.controller.Mode())
	assert.Equal(t, scroll.DirectionDown, h.controller.Direction())
}

/*
TestController_TouchDirection infers direction from successive touch points.
*/
func TestController_TouchDirection(t *testing.T) {
	h := newHarness(900, 200, scroll.Options{AutoScroll: true})
	h.controller.Sync()

	h.controller.OnTouchStart(500)
	assert.Equal(t, scroll.ModePaused, h.controller.Mode())

	h.controller.OnTouchMove(450)
	assert.Equal(t, scroll.DirectionDown, h.controller.Direction())

	h.controller.OnTouchMove(480)
	assert.Equal(t, scroll.DirectionUp, h.controller.Direction())

	h.controller.OnTouchMove(480)
	assert.Equal(t, scroll.DirectionUp, h.controller.Direction())

	h.controller.OnWheel(0)
	assert.Equal(t, scroll.DirectionUp, h.controller.Direction())
}

/*
TestController_AutoScrollDisabled tracks direction without scheduling work.
*/
func TestController_AutoScrollDisabled(t *testing.T) {
	h := newHarness(900, 200, scroll.Options{})
	h.controller.Sync()

	h.controller.OnWheel(-1)
	assert.Equal(t, scroll.DirectionUp, h.controller.Direction())
	assert.Equal(t, scroll.ModeOff, h.controller.Mode())
	assert.Zero(t, h.scheduler.Pending())
}

/*
TestController_AutoScrollWrapsAround keeps scrolling down forever by
jumping back a copy at the bottom edge.
*/
func TestController_AutoScrollWrapsAround(t *testing.T) {
	h := newHarness(900, 200, scroll.Options{AutoScroll: true})
	h.controller.Sync()

	h.scheduler.Advance(10 * time.Second)

	require.NotEmpty(t, h.jumps)
	for _, jump := range h.jumps {
		assert.Equal(t, -jump.CopyHeight, jump.To-jump.From)
	}
	assert.GreaterOrEqual(t, h.viewport.ScrollTop(), 100.0)
	assert.LessOrEqual(t, h.viewport.ScrollTop(), 502.0)
}

/*
TestController_Close cancels every pending callback; later calls do nothing.
*/
func TestController_Close(t *testing.T) {
	h := newHarness(900, 200, scroll.Options{AutoScroll: true})
	h.controller.Sync()
	h.scrollTo(10)
	h.controller.OnWheel(1)
	require.NotZero(t, h.scheduler.Pending())

	h.controller.Close()
	assert.Equal(t, scroll.StateClosed, h.controller.State())
	assert.Zero(t, h.scheduler.Pending())

	offset := h.viewport.ScrollTop()
	h.controller.Close()
	h.controller.Sync()
	h.scrollTo(10)
	h.controller.OnWheel(1)
	h.controller.OnTouchStart(5)
	h.controller.OnTouchMove(1)
	h.scheduler.Advance(2 * time.Second)

	assert.Zero(t, h.scheduler.Pending())
	assert.Equal(t, 10.0, h.viewport.ScrollTop())
	assert.Equal(t, 10.0, offset)
}

/*
TestController_RandomScrolls checks, over random scroll sequences, that the
offset stays inside the content and every jump is exactly one copy height.
*/
func TestController_RandomScrolls(t *testing.T) {
	random := rand.New(rand.NewPCG(7, 42))
	heights := []float64{600, 900, 1200}

	h := newHarness(900, 200, scroll.Options{AutoScroll: true})
	h.controller.Sync()

	for range 2000 {
		switch random.IntN(6) {
		case 0:
			h.viewport.SetContentHeight(heights[random.IntN(len(heights))])
			h.controller.Sync()
		case 1:
			h.controller.OnWheel(random.Float64()*20 - 10)
		case 2:
			h.scheduler.Advance(time.Duration(random.IntN(200)) * time.Millisecond)
		default:
			h.scrollTo(random.Float64() * h.viewport.ScrollHeight())
			h.scheduler.Step()
		}

		copyHeight := h.viewport.ScrollHeight() / 3
		require.GreaterOrEqual(t, h.viewport.ScrollTop(), 0.0)
		require.LessOrEqual(t, h.viewport.ScrollTop(), 3*copyHeight)
	}

	require.NotEmpty(t, h.jumps)
	for _, jump := range h.jumps {
		assert.InDelta(t, jump.CopyHeight, abs(jump.To-jump.From), 1e-9, "jump %+v", jump)
	}
}

func abs(value float64) float64 {
	if value < 0 {
		return -value
	}
	return value
}
