package loop

import (
	"fmt"

	"Cinematic3D/internal/behaviour"
	"Cinematic3D/internal/easing"
	"Cinematic3D/internal/logger"
	"Cinematic3D/internal/pose"
	"Cinematic3D/internal/timeline"

	"github.com/aquilax/go-perlin"
	"go.uber.org/zap"
)

const (
	perlinAlpha = 2
	perlinBeta  = 2
	perlinN     = 3
	// driftFrequency keeps samples off the integer lattice, where 1D perlin
	// noise is always zero.
	driftFrequency = 0.37
)

// Swim is the slow leg of an idle loop: towards target and back, forever.
func Swim(subject pose.Subject, target timeline.Target, dur float64, ease easing.Func) (*timeline.Timeline, error) {
	return timeline.NewBuilder(subject, timeline.Options{Name: "swim", Repeat: timeline.Infinite, Yoyo: true}).
		To(timeline.Spec{Label: "swim", Targets: []timeline.Target{target}, Duration: dur, Ease: ease}).
		Build()
}

// Wiggle swings prop to base+amplitude, then to base-amplitude, half seconds
// each, and plays that back and forth forever.
func Wiggle(subject pose.Subject, prop pose.Property, base, amplitude, half float64, ease easing.Func) (*timeline.Timeline, error) {
	return timeline.NewBuilder(subject, timeline.Options{Name: "wiggle", Repeat: timeline.Infinite, Yoyo: true}).
		To(timeline.Spec{Label: "left", Targets: []timeline.Target{timeline.Abs(prop, base+amplitude)}, Duration: half, Ease: ease}).
		To(timeline.Spec{Label: "right", Targets: []timeline.Target{timeline.Abs(prop, base-amplitude)}, Duration: half, Ease: ease}).
		Build()
}

// Drift wanders prop around the value it has when the loop starts, following
// seeded perlin noise, and comes back to it at the end of every pass.
func Drift(subject pose.Subject, prop pose.Property, amplitude, step float64, samples int, seed int64) (*timeline.Timeline, error) {
	if samples < 2 {
		return nil, fmt.Errorf("%w: drift needs at least 2 samples, got %d", timeline.ErrMalformedSegment, samples)
	}
	offsets := DriftOffsets(amplitude, samples, seed)

	b := timeline.NewBuilder(subject, timeline.Options{Name: "drift", Repeat: timeline.Infinite})
	prev := 0.0
	for i := 1; i <= samples; i++ {
		next := 0.0
		if i < samples {
			next = offsets[i]
		}
		b.To(timeline.Spec{
			Targets:  []timeline.Target{timeline.Rel(prop, next-prev)},
			Duration: step,
			Ease:     easing.SineInOut,
		})
		prev = next
	}
	return b.Build()
}

// DriftOffsets samples the noise Drift follows. The first offset is zero.
func DriftOffsets(amplitude float64, samples int, seed int64) []float64 {
	noise := perlin.NewPerlin(perlinAlpha, perlinBeta, perlinN, seed)
	offsets := make([]float64, samples)
	for i := range offsets {
		offsets[i] = amplitude * noise.Noise1D(float64(i)*driftFrequency)
	}
	offsets[0] = 0
	return offsets
}

// PlayerRegistry is the part of the frame loop a Handle needs.
type PlayerRegistry interface {
	Add(p behaviour.Player)
	Remove(p behaviour.Player)
}

// Handle owns the timelines of a running idle loop.
type Handle struct {
	players   PlayerRegistry
	timelines []*timeline.Timeline
	stopped   bool
}

// Start registers the timelines together so they advance in the same frames,
// in the order given.
func Start(players PlayerRegistry, timelines ...*timeline.Timeline) *Handle {
	h := &Handle{players: players}
	names := make([]string, 0, len(timelines))
	for _, tl := range timelines {
		if tl == nil {
			continue
		}
		h.timelines = append(h.timelines, tl)
		players.Add(tl)
		names = append(names, tl.Name())
	}
	logger.Log.Info("Idle loop started", zap.Strings("timelines", names))
	return h
}

func (h *Handle) Timelines() []*timeline.Timeline {
	return h.timelines
}

// Running reports whether Stop has not been called yet.
func (h *Handle) Running() bool {
	return !h.stopped
}

// Stop halts every timeline of the loop where it is. Calling it again does nothing.
func (h *Handle) Stop() {
	if h.stopped {
		return
	}
	h.stopped = true
	for _, tl := range h.timelines {
		tl.Stop()
		h.players.Remove(tl)
	}
	logger.Log.Info("Idle loop stopped", zap.Int("timelines", len(h.timelines)))
}
