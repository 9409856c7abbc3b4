package animate

import (
	"fmt"
	"math"
	"strings"

	"github.com/fogleman/ease"
	"github.com/pkg/errors"
)

// ErrNotImplemented marks easing curves that have a name but no formula.
var ErrNotImplemented = errors.New("not implemented")

// EasingMode alters how the base curve of an Easing is applied.
type EasingMode uint8

const (
	// EaseIn applies the curve as is.
	EaseIn EasingMode = iota
	// EaseOut applies the complement of the curve: 1 - f(1 - p).
	EaseOut
	// EaseInOut applies EaseIn for the first half and EaseOut for the second.
	EaseInOut
)

var easingModeNames = map[EasingMode]string{
	EaseIn:    "in",
	EaseOut:   "out",
	EaseInOut: "inOut",
}

func (m EasingMode) String() string {
	if name, ok := easingModeNames[m]; ok {
		return name
	}
	return fmt.Sprintf("EasingMode(%d)", uint8(m))
}

// ParseEasingMode parses "in", "out" or "inOut", case-insensitively.
func ParseEasingMode(s string) (EasingMode, error) {
	for m, name := range easingModeNames {
		if strings.EqualFold(s, name) {
			return m, nil
		}
	}
	return EaseIn, errors.Errorf("unknown easing mode %q", s)
}

// EasingFn selects the base curve of an Easing.
type EasingFn uint8

const (
	Linear EasingFn = iota
	// Back retracts slightly before moving in the indicated direction.
	Back
	// Bounce settles like a ball bouncing on the floor.
	Bounce
	// Circle accelerates along a quarter circle.
	Circle
	// Elastic oscillates like a spring before coming to rest.
	Elastic
	// Exponential follows 2^(10t - 10).
	Exponential
	// Power has no exponent to work with and always panics.
	Power
	Quadratic
	Cubic
	Quartic
	Quintic
	// Sine follows 1 - cos(t·π/2).
	Sine
)

var easingFnNames = map[EasingFn]string{
	Linear:      "linear",
	Back:        "back",
	Bounce:      "bounce",
	Circle:      "circle",
	Elastic:     "elastic",
	Exponential: "exponential",
	Power:       "power",
	Quadratic:   "quadratic",
	Cubic:       "cubic",
	Quartic:     "quartic",
	Quintic:     "quintic",
	Sine:        "sine",
}

func (fn EasingFn) String() string {
	if name, ok := easingFnNames[fn]; ok {
		return name
	}
	return fmt.Sprintf("EasingFn(%d)", uint8(fn))
}

// ParseEasingFn parses a curve name such as "quadratic", case-insensitively.
func ParseEasingFn(s string) (EasingFn, error) {
	for fn, name := range easingFnNames {
		if strings.EqualFold(s, name) {
			return fn, nil
		}
	}
	return Linear, errors.Errorf("unknown easing function %q", s)
}

func (fn EasingFn) curve() func(float64) float64 {
	switch fn {
	case Linear:
		return ease.Linear
	case Back:
		return ease.InBack
	case Bounce:
		return ease.InBounce
	case Circle:
		return ease.InCirc
	case Elastic:
		return elastic
	case Exponential:
		return ease.InExpo
	case Quadratic:
		return ease.InQuad
	case Cubic:
		return ease.InCubic
	case Quartic:
		return ease.InQuart
	case Quintic:
		return ease.InQuint
	case Sine:
		return ease.InSine
	}
	return nil
}

// apply evaluates the base curve. Both ends are exact for every curve.
func (fn EasingFn) apply(p float64) float64 {
	assertProgress(p)
	f := fn.curve()
	if f == nil {
		panic(errors.Wrapf(ErrNotImplemented, "animate: easing function %s", fn))
	}
	switch p {
	case 0:
		return 0
	case 1:
		return 1
	}
	return f(p)
}

// elastic is the easings.net easeInElastic curve.
func elastic(p float64) float64 {
	const c4 = (2 * math.Pi) / 3
	return -(math.Pow(2, 10*p-10) * math.Sin((p*10-10.75)*c4))
}

// Easing maps linear progress to eased progress.
// The zero value is linear.
type Easing struct {
	Fn   EasingFn
	Mode EasingMode
}

// Ease maps p in [0, 1] to eased progress. Progress outside [0, 1] is a bug
// in the caller's time bookkeeping and panics.
func (e Easing) Ease(p float64) float64 {
	assertProgress(p)
	switch e.Mode {
	case EaseOut:
		return 1 - e.Fn.apply(1-p)
	case EaseInOut:
		if p < 0.5 {
			return e.Fn.apply(p*2) / 2
		}
		return 1 - e.Fn.apply(2-p*2)/2
	default:
		return e.Fn.apply(p)
	}
}

func (e Easing) String() string {
	return e.Fn.String() + "/" + e.Mode.String()
}

func assertProgress(p float64) {
	if !(p >= 0 && p <= 1) {
		panic(fmt.Sprintf("animate: progress %v outside [0, 1]", p))
	}
}
