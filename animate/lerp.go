package animate

import "math"

// epsilon is the gap between 1 and the next float64.
const epsilon = 0x1p-52

// Direction selects which end of a from/to pair an interpolation starts at.
type Direction uint8

const (
	Forward Direction = iota
	// Backward swaps from and to before blending.
	Backward
)

func (d Direction) String() string {
	if d == Backward {
		return "backward"
	}
	return "forward"
}

// LerpFloat blends from and to at t. The ends are exact: t == 0 yields from
// and t == 1 yields to, bit for bit. Eased progress may overshoot [0, 1].
func LerpFloat(from, to, t float64, dir Direction) float64 {
	if dir == Backward {
		from, to = to, from
	}
	if t == 0 {
		return from
	}
	if math.Abs(1-t) < epsilon {
		return to
	}
	if math.Abs(from-to) < epsilon {
		return from
	}
	return from*(1-t) + to*t
}

// LerpColor blends each channel on its own. There is no premultiplication
// and no gamma handling.
func LerpColor(from, to Color, t float64, dir Direction) Color {
	return Color{
		R: lerpChannel(from.R, to.R, t, dir),
		G: lerpChannel(from.G, to.G, t, dir),
		B: lerpChannel(from.B, to.B, t, dir),
		A: lerpChannel(from.A, to.A, t, dir),
	}
}

// lerpChannel rounds half away from the start of the ramp: up while the
// channel grows, down while it shrinks.
func lerpChannel(from, to uint8, t float64, dir Direction) uint8 {
	if dir == Backward {
		from, to = to, from
	}
	if t == 0 {
		return from
	}
	if math.Abs(1-t) < epsilon {
		return to
	}
	if from == to {
		return from
	}

	f, g := float64(from), float64(to)
	v := f*(1-t) + g*t
	if g >= f {
		v += 0.5
	} else {
		v -= 0.5
	}
	return clampChannel(int(v))
}

func clampChannel(v int) uint8 {
	switch {
	case v < 0:
		return 0
	case v > 255:
		return 255
	}
	return uint8(v)
}
