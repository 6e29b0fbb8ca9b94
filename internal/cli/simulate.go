// Copyright (c) 2026 Scrapbook. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/taibuivan/scrapbook/internal/scroll"
	"github.com/taibuivan/scrapbook/pkg/slice"
)

// SimulateOptions holds flags for the simulate command.
type SimulateOptions struct {
	*RootOptions
	ContentHeight float64
	ClientHeight  float64
	Duration      time.Duration
	SampleEvery   time.Duration
	Wheel         []string
	NoAutoScroll  bool
	Speed         float64
	Pause         time.Duration
}

type sampleView struct {
	AtMs      int64   `json:"atMs"`
	Offset    float64 `json:"offset"`
	State     string  `json:"state"`
	Mode      string  `json:"mode"`
	Direction string  `json:"direction"`
}

type jumpView struct {
	From       float64 `json:"from"`
	To         float64 `json:"to"`
	CopyHeight float64 `json:"copyHeight"`
}

type simulationView struct {
	Samples []sampleView `json:"samples"`
	Jumps   []jumpView   `json:"jumps"`
}

// NewSimulateCommand creates the simulate command.
func NewSimulateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SimulateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run the scroll controller on virtual time",
		Long: `Run the infinite-scroll controller over a synthetic viewport on a
virtual clock and print sampled offsets and every jump.

The content height is the height of all three copies together.

Example:
  scrapbook simulate --content-height 2700 --client-height 800 --duration 10s --wheel 2s:-300`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			gestures, err := parseGestures(opts.Wheel)
			if err != nil {
				return WrapExitError(ExitCommandError, "invalid --wheel", err)
			}
			if opts.ContentHeight < 0 || opts.ClientHeight < 0 {
				return NewExitError(ExitCommandError, "heights must not be negative")
			}

			report := scroll.Simulation{
				ContentHeight: opts.ContentHeight,
				ClientHeight:  opts.ClientHeight,
				Duration:      opts.Duration,
				SampleEvery:   opts.SampleEvery,
				Gestures:      gestures,
				Options: scroll.Options{
					AutoScroll:    !opts.NoAutoScroll,
					Speed:         opts.Speed,
					PauseDuration: opts.Pause,
				},
			}.Run()

			view := simulationView{
				Samples: slice.Map(report.Samples, func(sample scroll.Sample) sampleView {
					return sampleView{
						AtMs:      sample.At.Milliseconds(),
						Offset:    sample.Offset,
						State:     sample.State.String(),
						Mode:      sample.Mode.String(),
						Direction: sample.Direction.String(),
					}
				}),
				Jumps: slice.Map(report.Jumps, func(jump scroll.Jump) jumpView {
					return jumpView(jump)
				}),
			}

			lines := slice.Map(view.Samples, func(sample sampleView) string {
				return fmt.Sprintf("t=%dms offset=%.1f state=%s mode=%s direction=%s",
					sample.AtMs, sample.Offset, sample.State, sample.Mode, sample.Direction)
			})
			lines = append(lines, slice.Map(view.Jumps, func(jump jumpView) string {
				return fmt.Sprintf("jump %.1f -> %.1f", jump.From, jump.To)
			})...)
			lines = append(lines, fmt.Sprintf("%d jumps", len(view.Jumps)))

			return opts.formatter(cmd).Success(view, lines...)
		},
	}

	cmd.Flags().Float64Var(&opts.ContentHeight, "content-height", 2700, "height of all three copies, in pixels")
	cmd.Flags().Float64Var(&opts.ClientHeight, "client-height", 800, "visible viewport height, in pixels")
	cmd.Flags().DurationVar(&opts.Duration, "duration", 10*time.Second, "virtual time to simulate")
	cmd.Flags().DurationVar(&opts.SampleEvery, "sample-every", 500*time.Millisecond, "sampling interval")
	cmd.Flags().StringSliceVar(&opts.Wheel, "wheel", nil, "wheel gesture as <at>:<deltaY>, e.g. 2s:-300 (repeatable)")
	cmd.Flags().BoolVar(&opts.NoAutoScroll, "no-auto-scroll", false, "disable the passive auto-scroll")
	cmd.Flags().Float64Var(&opts.Speed, "speed", scroll.DefaultSpeed, "auto-scroll pixels per frame")
	cmd.Flags().DurationVar(&opts.Pause, "pause", scroll.DefaultPauseDuration, "quiet period before auto-scroll resumes")

	return cmd
}

// parseGestures reads <duration>:<deltaY> pairs.
func parseGestures(values []string) ([]scroll.Gesture, error) {
	gestures := make([]scroll.Gesture, 0, len(values))
	for _, value := range values {
		rawAt, rawDelta, found := strings.Cut(value, ":")
		if !found {
			return nil, fmt.Errorf("%q: expected <at>:<deltaY>", value)
		}

		at, err := time.ParseDuration(rawAt)
		if err != nil {
			return nil, fmt.Errorf("%q: %w", value, err)
		}
		delta, err := strconv.ParseFloat(rawDelta, 64)
		if err != nil {
			return nil, fmt.Errorf("%q: %w", value, err)
		}

		gestures = append(gestures, scroll.Gesture{At: at, WheelDelta: delta})
	}
	return gestures, nil
}
