package animate

import (
	"strconv"
	"time"
)

// endpoints is the from/to pair of one animated property.
type endpoints struct {
	from Value
	to   Value
}

func newEndpoints(from, to Value) endpoints {
	from.mustMatch(to)
	return endpoints{from: from, to: to}
}

// at returns the value at eased progress t.
func (e endpoints) at(t float64, dir Direction) Value {
	switch e.from.tag {
	case TagFloat:
		return FloatValue(LerpFloat(e.from.f, e.to.f, t, dir))
	case TagColor:
		return ColorValue(LerpColor(e.from.c, e.to.c, t, dir))
	default:
		return e.from.prop.interpolate(e.from, e.to, t, dir)
	}
}

// retarget makes the displayed value the new start and next the new end.
func (e *endpoints) retarget(displayed, next Value) {
	e.to.mustMatch(next)
	e.from = displayed
	e.to = next
}

// PropState is the per-property pass state.
type PropState uint8

const (
	PropIdle PropState = iota
	PropPassInProgress
	PropPassFinished
	PropCompleted
)

func (s PropState) String() string {
	switch s {
	case PropIdle:
		return "idle"
	case PropPassInProgress:
		return "pass in progress"
	case PropPassFinished:
		return "pass finished"
	case PropCompleted:
		return "completed"
	}
	return "PropState(" + strconv.Itoa(int(s)) + ")"
}

// animatedProp tracks the clock of one property. Elapsed time of a running
// pass is banked + (now - started), computed when read.
type animatedProp struct {
	kind    PropKind
	values  endpoints
	state   PropState
	started time.Time
	banked  time.Duration
	passes  int
}

func newAnimatedProp(kind PropKind, from, to Value) *animatedProp {
	return &animatedProp{kind: kind, values: newEndpoints(from, to)}
}

func (p *animatedProp) elapsed(now time.Time) time.Duration {
	switch p.state {
	case PropPassInProgress:
		d := p.banked + now.Sub(p.started)
		if d < 0 {
			return 0
		}
		return d
	case PropPassFinished, PropCompleted:
		return p.banked
	}
	return 0
}

func (p *animatedProp) start(now time.Time) {
	p.state = PropPassInProgress
	p.started = now
	p.banked = 0
}

// advance makes at most one state transition.
func (p *animatedProp) advance(now time.Time, repeat RepeatMode, duration time.Duration) {
	switch p.state {
	case PropIdle:
		p.start(now)
	case PropPassInProgress:
		if elapsed := p.elapsed(now); elapsed >= duration {
			p.banked = elapsed
			p.state = PropPassFinished
			p.passes++
		}
	case PropPassFinished:
		if repeat.more(p.passes) {
			p.start(now)
		} else {
			p.state = PropCompleted
		}
	}
}

// retarget restarts the clock from the displayed value toward next. An idle
// property keeps waiting for its first advance.
func (p *animatedProp) retarget(now time.Time, displayed, next Value) {
	p.values.retarget(displayed, next)
	switch p.state {
	case PropIdle:
	case PropCompleted:
		p.passes = 0
		p.start(now)
	default:
		p.start(now)
	}
}

func (p *animatedProp) reset() {
	p.state = PropIdle
	p.started = time.Time{}
	p.banked = 0
	p.passes = 0
}
