package timeline

import (
	"fmt"
	"math"

	"Cinematic3D/internal/easing"
	"Cinematic3D/internal/pose"

	"go.uber.org/multierr"
)

// Infinite repeats a timeline until it is stopped.
const Infinite = -1

type Options struct {
	Name string
	// Repeat is the number of extra passes after the first one, or Infinite.
	Repeat int
	// Yoyo plays every other pass backwards instead of jumping back to the start.
	Yoyo bool
	// DefaultEase is used by specs without an ease; nil means easing.Default.
	DefaultEase easing.Func
}

// Builder places segments, callbacks and labels, then checks all of them at once.
// Every method records its problems and returns the builder so calls chain;
// Build reports them together.
type Builder struct {
	subject pose.Subject
	opts    Options

	segments  []*Segment
	callbacks []*Callback
	labels    map[string]float64

	hasPrev   bool
	prevStart float64
	prevEnd   float64
	end       float64

	err error
}

func NewBuilder(subject pose.Subject, opts Options) *Builder {
	return &Builder{
		subject: subject,
		opts:    opts,
		labels:  make(map[string]float64),
	}
}

func (b *Builder) resolve(a Anchor) (float64, error) {
	var t float64
	switch a.Placement {
	case Sequential:
		t = b.prevEnd + a.Offset
	case End:
		t = b.end + a.Offset
	case Absolute:
		t = a.Offset
	case Sync:
		at, ok := b.labels[a.Label]
		if !ok {
			return 0, fmt.Errorf("%w %q", ErrUnknownLabel, a.Label)
		}
		t = at + a.Offset
	case SyncPrevious:
		if b.hasPrev {
			t = b.prevStart
		}
		t += a.Offset
	default:
		return 0, fmt.Errorf("%w: unknown placement %d", ErrMalformedSegment, a.Placement)
	}
	if t < 0 || math.IsNaN(t) || math.IsInf(t, 0) {
		return 0, fmt.Errorf("%w: anchor %s resolves to start %v", ErrMalformedSegment, a, t)
	}
	return t, nil
}

func (b *Builder) fail(kind string, index int, label string, err error) {
	if label != "" {
		b.err = multierr.Append(b.err, fmt.Errorf("%s %d (%s): %w", kind, index, label, err))
		return
	}
	b.err = multierr.Append(b.err, fmt.Errorf("%s %d: %w", kind, index, err))
}

func (b *Builder) defineLabel(name string, t float64) error {
	if name == "" {
		return nil
	}
	if _, exists := b.labels[name]; exists {
		return fmt.Errorf("%w: label %q defined twice", ErrMalformedSegment, name)
	}
	b.labels[name] = t
	return nil
}

func (b *Builder) place(start, end float64) {
	b.hasPrev = true
	b.prevStart = start
	b.prevEnd = end
	if end > b.end {
		b.end = end
	}
}

// To places a segment.
func (b *Builder) To(spec Spec) *Builder {
	index := len(b.segments)
	if err := validate(b.subject, spec); err != nil {
		b.fail("segment", index, spec.Label, err)
		return b
	}
	start, err := b.resolve(spec.Anchor)
	if err != nil {
		b.fail("segment", index, spec.Label, err)
		return b
	}
	if err := b.defineLabel(spec.Label, start); err != nil {
		b.fail("segment", index, spec.Label, err)
		return b
	}
	if spec.Ease == nil {
		spec.Ease = b.opts.DefaultEase
	}
	seg := newSegment(b.subject, spec, start)
	b.segments = append(b.segments, seg)
	b.place(start, seg.End())
	return b
}

// Call places a callback.
func (b *Builder) Call(label string, a Anchor, action func()) *Builder {
	if action == nil {
		return b.CallErr(label, a, nil)
	}
	return b.CallErr(label, a, func() error {
		action()
		return nil
	})
}

// CallErr places a callback whose failure is logged without stopping playback.
func (b *Builder) CallErr(label string, a Anchor, action func() error) *Builder {
	index := len(b.callbacks)
	if action == nil {
		b.fail("callback", index, label, fmt.Errorf("%w: nil action", ErrMalformedSegment))
		return b
	}
	at, err := b.resolve(a)
	if err != nil {
		b.fail("callback", index, label, err)
		return b
	}
	if err := b.defineLabel(label, at); err != nil {
		b.fail("callback", index, label, err)
		return b
	}
	b.callbacks = append(b.callbacks, &Callback{label: label, at: at, action: action})
	b.place(at, at)
	return b
}

// Label names a point in time without placing anything there.
func (b *Builder) Label(name string, a Anchor) *Builder {
	if name == "" {
		b.err = multierr.Append(b.err, fmt.Errorf("%w: empty label name", ErrMalformedSegment))
		return b
	}
	t, err := b.resolve(a)
	if err == nil {
		err = b.defineLabel(name, t)
	}
	if err != nil {
		b.err = multierr.Append(b.err, fmt.Errorf("label %s: %w", name, err))
	}
	return b
}

// Build returns the timeline or every construction error joined together.
func (b *Builder) Build() (*Timeline, error) {
	if b.opts.Repeat < Infinite {
		b.err = multierr.Append(b.err, fmt.Errorf("%w: repeat %d", ErrMalformedSegment, b.opts.Repeat))
	}
	if b.opts.Repeat == Infinite && !(b.end > 0) {
		b.err = multierr.Append(b.err, fmt.Errorf("%w: infinite repeat of an empty timeline", ErrMalformedSegment))
	}
	if b.err != nil {
		return nil, b.err
	}

	labels := make(map[string]float64, len(b.labels))
	for k, v := range b.labels {
		labels[k] = v
	}
	return &Timeline{
		name:      b.opts.Name,
		segments:  b.segments,
		callbacks: b.callbacks,
		labels:    labels,
		duration:  b.end,
		repeat:    b.opts.Repeat,
		yoyo:      b.opts.Yoyo,
	}, nil
}
