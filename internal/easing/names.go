package easing

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var ErrUnknownEase = errors.New("unknown ease")

// Default is used by timelines when a segment names no ease.
var Default Func = QuadOut

type family struct {
	in, out, inOut Func
}

var families = map[string]family{
	"power0": {Linear, Linear, Linear},
	"power1": {QuadIn, QuadOut, QuadInOut},
	"quad":   {QuadIn, QuadOut, QuadInOut},
	"power2": {CubicIn, CubicOut, CubicInOut},
	"cubic":  {CubicIn, CubicOut, CubicInOut},
	"power3": {QuartIn, QuartOut, QuartInOut},
	"quart":  {QuartIn, QuartOut, QuartInOut},
	"power4": {QuintIn, QuintOut, QuintInOut},
	"quint":  {QuintIn, QuintOut, QuintInOut},
	"strong": {QuintIn, QuintOut, QuintInOut},
	"sine":   {SineIn, SineOut, SineInOut},
	"bounce": {nil, BounceOut, nil},
}

// Lookup resolves names such as "power2.inOut", "bounce.out" or "sine".
// A bare family name means the out variant, "none" and "linear" are linear.
// "bounce.out(0.6)" is a DampedBounceOut with that strength.
// An empty name returns Default.
func Lookup(name string) (Func, error) {
	name = strings.TrimSpace(name)
	switch strings.ToLower(name) {
	case "":
		return Default, nil
	case "none", "linear":
		return Linear, nil
	}

	if open := strings.IndexByte(name, '('); open >= 0 {
		return lookupDamped(name, open)
	}

	base, variant, _ := strings.Cut(name, ".")
	f, ok := families[strings.ToLower(base)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEase, name)
	}

	var fn Func
	switch strings.ToLower(variant) {
	case "", "out":
		fn = f.out
	case "in":
		fn = f.in
	case "inout":
		fn = f.inOut
	}
	if fn == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEase, name)
	}
	return fn, nil
}

func lookupDamped(name string, open int) (Func, error) {
	switch strings.ToLower(name[:open]) {
	case "bounce", "bounce.out":
	default:
		return nil, fmt.Errorf("%w: %q takes no strength", ErrUnknownEase, name)
	}
	if !strings.HasSuffix(name, ")") {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEase, name)
	}
	strength, err := strconv.ParseFloat(strings.TrimSpace(name[open+1:len(name)-1]), 64)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrUnknownEase, name, err)
	}
	return DampedBounceOut(strength), nil
}
