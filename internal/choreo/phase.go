package choreo

import (
	"fmt"

	"Cinematic3D/internal/easing"
	"Cinematic3D/internal/logger"
	"Cinematic3D/internal/pose"
	"Cinematic3D/internal/timeline"

	"go.uber.org/zap"
)

type ItemKind int

const (
	SegmentItem ItemKind = iota
	CallbackItem
	LabelItem
)

// Item is one thing a phase records for the timeline.
type Item struct {
	Kind   ItemKind
	Spec   timeline.Spec
	Action func() error
}

// Phase is a pure step of an authored sequence: it receives the running
// state and returns the next state plus what it wants placed on the timeline.
type Phase struct {
	Name string
	Step func(State) (State, []Item)
}

// Compile folds phases left to right.
func Compile(initial State, phases ...Phase) (State, []Item) {
	state := initial
	var items []Item
	for _, ph := range phases {
		if ph.Step == nil {
			continue
		}
		var recorded []Item
		state, recorded = ph.Step(state)
		items = append(items, recorded...)
	}
	return state, items
}

// Option adjusts the spec a phase records.
type Option func(*options)

type options struct {
	anchor timeline.Anchor
	label  string
	only   []pose.Property
}

// Anchored places the recorded item with a instead of after the previous one.
func Anchored(a timeline.Anchor) Option {
	return func(o *options) { o.anchor = a }
}

// Labeled overrides the label, which defaults to the phase name.
func Labeled(label string) Option {
	return func(o *options) { o.label = label }
}

// Only limits the snapshot to props. Without it a tween records the
// properties the move changed.
func Only(props ...pose.Property) Option {
	return func(o *options) { o.only = props }
}

func collect(name string, opts []Option) options {
	o := options{label: name}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Tween applies move and records a segment towards the resulting absolute
// values. A move that changes nothing records a hold of the same length.
func Tween(name string, dur float64, ease easing.Func, move Move, opts ...Option) Phase {
	o := collect(name, opts)
	return Phase{
		Name: name,
		Step: func(before State) (State, []Item) {
			after := before
			if move != nil {
				after = move(before)
			}
			spec := timeline.Spec{
				Label:    o.label,
				Targets:  snapshot(before, after, o.only),
				Duration: dur,
				Ease:     ease,
				Anchor:   o.anchor,
			}
			return after, []Item{{Kind: SegmentItem, Spec: spec}}
		},
	}
}

func snapshot(before, after State, only []pose.Property) []timeline.Target {
	props := only
	if props == nil {
		for _, p := range pose.Properties() {
			if after.Value(p) != before.Value(p) {
				props = append(props, p)
			}
		}
	}
	targets := make([]timeline.Target, 0, len(props))
	for _, p := range props {
		targets = append(targets, timeline.Abs(p, after.Value(p)))
	}
	return targets
}

// Nudge records relative deltas that resolve when the segment starts playing.
// The running state still moves by the deltas so later phases can build on it.
func Nudge(name string, dur float64, ease easing.Func, deltas map[pose.Property]float64, opts ...Option) Phase {
	o := collect(name, opts)
	return Phase{
		Name: name,
		Step: func(s State) (State, []Item) {
			targets := make([]timeline.Target, 0, len(deltas))
			for _, p := range pose.Properties() {
				d, ok := deltas[p]
				if !ok {
					continue
				}
				targets = append(targets, timeline.Rel(p, d))
				s = s.AddToAxis(p, d)
			}
			spec := timeline.Spec{Label: o.label, Targets: targets, Duration: dur, Ease: ease, Anchor: o.anchor}
			return s, []Item{{Kind: SegmentItem, Spec: spec}}
		},
	}
}

func Hold(name string, dur float64, opts ...Option) Phase {
	o := collect(name, opts)
	return Phase{
		Name: name,
		Step: func(s State) (State, []Item) {
			return s, []Item{{Kind: SegmentItem, Spec: timeline.Spec{Label: o.label, Duration: dur, Anchor: o.anchor}}}
		},
	}
}

// Cue records a callback.
func Cue(name string, action func() error, opts ...Option) Phase {
	o := collect(name, opts)
	return Phase{
		Name: name,
		Step: func(s State) (State, []Item) {
			return s, []Item{{Kind: CallbackItem, Spec: timeline.Spec{Label: o.label, Anchor: o.anchor}, Action: action}}
		},
	}
}

// Mark names a point in time for later phases to sync with.
func Mark(name string, a timeline.Anchor) Phase {
	return Phase{
		Name: name,
		Step: func(s State) (State, []Item) {
			return s, []Item{{Kind: LabelItem, Spec: timeline.Spec{Label: name, Anchor: a}}}
		},
	}
}

// Sequence compiles phases and builds the timeline that plays them on subject.
func Sequence(subject pose.Subject, opts timeline.Options, initial State, phases ...Phase) (*timeline.Timeline, State, error) {
	final, items := Compile(initial, phases...)

	b := timeline.NewBuilder(subject, opts)
	for _, it := range items {
		switch it.Kind {
		case SegmentItem:
			b.To(it.Spec)
		case CallbackItem:
			b.CallErr(it.Spec.Label, it.Spec.Anchor, it.Action)
		case LabelItem:
			b.Label(it.Spec.Label, it.Spec.Anchor)
		}
	}

	tl, err := b.Build()
	if err != nil {
		return nil, final, fmt.Errorf("sequence %q: %w", opts.Name, err)
	}

	logger.Log.Debug("Compiled sequence",
		zap.String("name", opts.Name),
		zap.Int("phases", len(phases)),
		zap.Int("items", len(items)),
		zap.Float64("duration", tl.Duration()))
	return tl, final, nil
}
