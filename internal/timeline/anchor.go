package timeline

import (
	"fmt"
	"strconv"
	"strings"
)

// Placement says what an Anchor is relative to.
type Placement int

const (
	// Sequential starts when the previously placed item ends.
	Sequential Placement = iota
	// End starts after everything placed so far.
	End
	// Absolute starts at Offset from the timeline origin.
	Absolute
	// Sync starts together with the label named by Label.
	Sync
	// SyncPrevious starts together with the previously placed item.
	SyncPrevious
)

// Anchor positions an item on a timeline. The zero value is Sequential.
type Anchor struct {
	Placement Placement
	Label     string
	Offset    float64
}

func After() Anchor {
	return Anchor{}
}

// Gap is Sequential with a signed delay; a negative gap overlaps the previous item.
func Gap(offset float64) Anchor {
	return Anchor{Placement: Sequential, Offset: offset}
}

func AtEnd() Anchor {
	return Anchor{Placement: End}
}

func At(t float64) Anchor {
	return Anchor{Placement: Absolute, Offset: t}
}

func With(label string, offset float64) Anchor {
	return Anchor{Placement: Sync, Label: label, Offset: offset}
}

func WithPrevious(offset float64) Anchor {
	return Anchor{Placement: SyncPrevious, Offset: offset}
}

func (a Anchor) String() string {
	switch a.Placement {
	case Sequential:
		if a.Offset != 0 {
			return fmt.Sprintf("after%+g", a.Offset)
		}
		return "after"
	case End:
		return "end"
	case Absolute:
		return fmt.Sprintf("at %g", a.Offset)
	case Sync:
		if a.Offset != 0 {
			return fmt.Sprintf("%s%+g", a.Label, a.Offset)
		}
		return a.Label
	case SyncPrevious:
		if a.Offset != 0 {
			return fmt.Sprintf("<%+g", a.Offset)
		}
		return "<"
	}
	return fmt.Sprintf("placement(%d)", int(a.Placement))
}

// ParseAnchor reads the position strings scene files use:
//
//	""  ">"  ">0.5"     after the previous item, optionally with a gap
//	"<"  "<-0.2"        with the previous item
//	"+=1"  "-=0.5"      relative to the end of everything so far
//	"3.5"               absolute time
//	"fly"  "fly+=0.5"   relative to a label
func ParseAnchor(s string) (Anchor, error) {
	s = strings.TrimSpace(s)
	switch {
	case s == "" || s == ">":
		return After(), nil
	case s == "<":
		return WithPrevious(0), nil
	case strings.HasPrefix(s, ">"):
		off, err := strconv.ParseFloat(s[1:], 64)
		if err != nil {
			return Anchor{}, fmt.Errorf("anchor %q: %w", s, err)
		}
		return Gap(off), nil
	case strings.HasPrefix(s, "<"):
		off, err := strconv.ParseFloat(s[1:], 64)
		if err != nil {
			return Anchor{}, fmt.Errorf("anchor %q: %w", s, err)
		}
		return WithPrevious(off), nil
	case strings.HasPrefix(s, "+=") || strings.HasPrefix(s, "-="):
		off, err := relativeOffset(s)
		if err != nil {
			return Anchor{}, err
		}
		return Anchor{Placement: End, Offset: off}, nil
	}

	if t, err := strconv.ParseFloat(s, 64); err == nil {
		return At(t), nil
	}
	i := strings.LastIndex(s, "+=")
	if j := strings.LastIndex(s, "-="); j > i {
		i = j
	}
	if i > 0 {
		off, err := relativeOffset(s[i:])
		if err != nil {
			return Anchor{}, err
		}
		return With(s[:i], off), nil
	}
	return With(s, 0), nil
}

func relativeOffset(s string) (float64, error) {
	off, err := strconv.ParseFloat(s[2:], 64)
	if err != nil {
		return 0, fmt.Errorf("anchor offset %q: %w", s, err)
	}
	if s[0] == '-' {
		off = -off
	}
	return off, nil
}
