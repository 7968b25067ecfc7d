package timeline

import (
	"fmt"
	"sort"

	"Cinematic3D/internal/logger"

	"go.uber.org/zap"
)

type State int

const (
	Idle State = iota
	Playing
	Paused
	Completed
	Stopped
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Playing:
		return "playing"
	case Paused:
		return "paused"
	case Completed:
		return "completed"
	case Stopped:
		return "stopped"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Callback is a zero length action placed on a timeline. It fires once per
// pass through its point, in either direction.
type Callback struct {
	label  string
	at     float64
	action func() error
}

func (c *Callback) Label() string { return c.label }
func (c *Callback) At() float64 { return c.at }

// Timeline plays segments and callbacks against one subject.
//
// Write order inside a single Advance is part of the contract: segments the
// playhead swept past are settled first, in the order the playhead met them;
// segments under the playhead are then rendered in registration order, so the
// segment registered last wins when two of them drive the same property at the
// same time. Callbacks fire after segments, in crossing order.
//
// A Timeline is not safe for concurrent use. It is meant to be advanced from
// the frame loop only.
type Timeline struct {
	name      string
	segments  []*Segment
	callbacks []*Callback
	labels    map[string]float64
	duration  float64
	repeat    int
	yoyo      bool

	state     State
	pos       float64
	reversed  bool
	iteration int
	// passOpen makes callbacks sitting exactly on the pass origin fire; it is
	// set when a pass starts from the origin rather than from a yoyo turn.
	passOpen bool
	// wrapPending holds the jump back to the origin after a pass ended exactly
	// on its boundary, so the end values stay visible until time moves on.
	wrapPending bool

	onComplete []func()
}

func (tl *Timeline) Name() string { return tl.name }
func (tl *Timeline) Duration() float64 { return tl.duration }
func (tl *Timeline) Position() float64 { return tl.pos }
func (tl *Timeline) State() State { return tl.state }

// Reversed reports whether the current pass plays backwards.
func (tl *Timeline) Reversed() bool { return tl.reversed }

// Iteration is the number of passes completed so far.
func (tl *Timeline) Iteration() int { return tl.iteration }

func (tl *Timeline) Infinite() bool { return tl.repeat == Infinite }

// Done reports whether the timeline reached a terminal state.
func (tl *Timeline) Done() bool {
	return tl.state == Completed || tl.state == Stopped
}

func (tl *Timeline) Segments() []*Segment {
	return tl.segments
}

// Segment returns the segment placed with label.
func (tl *Timeline) Segment(label string) *Segment {
	for _, s := range tl.segments {
		if s.label == label {
			return s
		}
	}
	return nil
}

func (tl *Timeline) LabelTime(name string) (float64, bool) {
	t, ok := tl.labels[name]
	return t, ok
}

// OnComplete queues fn to run once when the last pass ends. Infinite timelines
// never run it.
func (tl *Timeline) OnComplete(fn func()) {
	if fn != nil {
		tl.onComplete = append(tl.onComplete, fn)
	}
}

// Play starts an idle timeline. Advance starts it too.
func (tl *Timeline) Play() {
	if tl.state == Idle {
		tl.state = Playing
		tl.passOpen = true
	}
}

func (tl *Timeline) Pause() {
	if tl.state == Playing {
		tl.state = Paused
	}
}

func (tl *Timeline) Resume() {
	if tl.state == Paused {
		tl.state = Playing
	}
}

// Stop ends the timeline where it is without running OnComplete.
func (tl *Timeline) Stop() {
	if !tl.Done() {
		tl.state = Stopped
	}
}

// Advance moves the playhead by dt seconds and renders the result onto the
// subject. A large dt may cross several pass boundaries in one call. A dt
// that lands exactly on a boundary completes or turns around immediately, but
// a repeat without yoyo jumps back to the origin only once time passes it.
func (tl *Timeline) Advance(dt float64) {
	if tl.state == Idle {
		tl.Play()
	}
	if tl.state != Playing {
		return
	}
	if !(dt > 0) {
		dt = 0
	}

	remaining := dt
	for tl.state == Playing {
		if tl.wrapPending {
			if remaining <= 0 {
				return
			}
			tl.wrap()
		}
		room := tl.duration - tl.pos
		if tl.reversed {
			room = tl.pos
		}

		step := remaining
		next := tl.pos + step
		if tl.reversed {
			next = tl.pos - step
		}
		atBoundary := step >= room
		if atBoundary {
			step = room
			next = tl.duration
			if tl.reversed {
				next = 0
			}
		}

		tl.render(tl.pos, next)
		tl.pos = next
		remaining -= step

		// a callback may have paused or stopped us
		if tl.state != Playing {
			return
		}
		if !atBoundary || !tl.endPass(remaining) || remaining <= 0 {
			return
		}
	}
}

// endPass handles the boundary at the end of a pass and reports whether
// playback continues. remaining is the time left in the current Advance.
func (tl *Timeline) endPass(remaining float64) bool {
	tl.iteration++
	if tl.repeat != Infinite && tl.iteration > tl.repeat {
		tl.state = Completed
		tl.complete()
		return false
	}
	if tl.yoyo {
		tl.reversed = !tl.reversed
		return true
	}
	tl.wrapPending = true
	return remaining > 0
}

func (tl *Timeline) wrap() {
	tl.wrapPending = false
	tl.settle()
	tl.pos = 0
	tl.passOpen = true
}

// settle jumps back to the origin: every segment returns to its start values,
// latest start first, without firing callbacks.
func (tl *Timeline) settle() {
	swept := make([]*Segment, 0, len(tl.segments))
	for _, s := range tl.segments {
		if s.activated {
			swept = append(swept, s)
		}
	}
	sort.SliceStable(swept, func(i, j int) bool { return swept[i].start > swept[j].start })
	for _, s := range swept {
		s.Render(0)
	}
}

func (tl *Timeline) render(from, to float64) {
	if tl.reversed {
		tl.renderBackward(from, to)
	} else {
		tl.renderForward(from, to)
	}
	tl.passOpen = false
}

func (tl *Timeline) renderForward(from, to float64) {
	var swept, current []*Segment
	for _, s := range tl.segments {
		end := s.End()
		switch {
		case s.start > to:
		case end <= to && end > from:
			swept = append(swept, s)
		case end > to:
			current = append(current, s)
		}
	}
	sort.SliceStable(swept, func(i, j int) bool { return swept[i].End() < swept[j].End() })
	for _, s := range swept {
		s.Render(s.duration)
	}
	for _, s := range current {
		s.Render(to - s.start)
	}

	var crossed []*Callback
	for _, c := range tl.callbacks {
		if (c.at > from || (tl.passOpen && c.at == from)) && c.at <= to {
			crossed = append(crossed, c)
		}
	}
	sort.SliceStable(crossed, func(i, j int) bool { return crossed[i].at < crossed[j].at })
	tl.fire(crossed)
}

func (tl *Timeline) renderBackward(from, to float64) {
	var swept, current []*Segment
	for _, s := range tl.segments {
		end := s.End()
		switch {
		case end < to:
		case s.start >= to && s.start < from:
			swept = append(swept, s)
		case s.start < to:
			current = append(current, s)
		}
	}
	sort.SliceStable(swept, func(i, j int) bool { return swept[i].start > swept[j].start })
	for _, s := range swept {
		s.Render(0)
	}
	for _, s := range current {
		s.Render(to - s.start)
	}

	var crossed []*Callback
	for _, c := range tl.callbacks {
		if c.at >= to && c.at < from {
			crossed = append(crossed, c)
		}
	}
	sort.SliceStable(crossed, func(i, j int) bool { return crossed[i].at > crossed[j].at })
	tl.fire(crossed)
}

func (tl *Timeline) fire(callbacks []*Callback) {
	for _, c := range callbacks {
		run(tl.name, "callback", c.label, c.action)
	}
}

func (tl *Timeline) complete() {
	pending := tl.onComplete
	tl.onComplete = nil
	for _, fn := range pending {
		fn := fn
		run(tl.name, "onComplete", "", func() error {
			fn()
			return nil
		})
	}
}

// run calls action and logs its error or panic.
func run(timeline, kind, label string, action func() error) {
	defer func() {
		if r := recover(); r != nil {
			logger.Log.Error("Timeline action panicked",
				zap.String("timeline", timeline),
				zap.String("kind", kind),
				zap.String("label", label),
				zap.Any("panic", r))
		}
	}()
	if err := action(); err != nil {
		logger.Log.Error("Timeline action failed",
			zap.String("timeline", timeline),
			zap.String("kind", kind),
			zap.String("label", label),
			zap.Error(err))
	}
}
