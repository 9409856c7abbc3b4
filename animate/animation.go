package animate

import (
	"strconv"
	"time"
)

// State is the top-level state of an Animation.
type State uint8

const (
	Idle State = iota
	InProgress
	Completed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case InProgress:
		return "in progress"
	case Completed:
		return "completed"
	}
	return "State(" + strconv.Itoa(int(s)) + ")"
}

// FillMode decides whether a completed animation keeps its end values.
type FillMode uint8

const (
	// FillRemoved drops the animated values once the animation completes.
	FillRemoved FillMode = iota
	// FillForwards keeps applying the animated values after completion.
	FillForwards
)

func (f FillMode) String() string {
	if f == FillForwards {
		return "forwards"
	}
	return "removed"
}

// RepeatMode is the number of passes an animation performs.
type RepeatMode struct {
	times   int
	forever bool
}

// Times repeats the animation n times. Anything below one means one pass.
func Times(n int) RepeatMode {
	return RepeatMode{times: n}
}

// Forever loops between passes and never completes.
func Forever() RepeatMode {
	return RepeatMode{forever: true}
}

// Passes returns the pass count and whether the mode loops forever.
func (r RepeatMode) Passes() (int, bool) {
	if r.forever {
		return 0, true
	}
	if r.times < 1 {
		return 1, false
	}
	return r.times, false
}

func (r RepeatMode) more(passes int) bool {
	n, forever := r.Passes()
	return forever || passes < n
}

func (r RepeatMode) String() string {
	if n, forever := r.Passes(); !forever {
		return strconv.Itoa(n)
	}
	return "forever"
}

// Animation drives one or more style properties of an element. Build it
// with the chainable setters, then call Advance once per frame.
type Animation struct {
	id          ID
	engine      *Engine
	state       State
	easing      Easing
	fill        FillMode
	duration    time.Duration
	repeat      RepeatMode
	autoReverse bool
	stopped     bool

	// now is the time of the last Advance. Every read within a frame uses it.
	now   time.Time
	props map[PropKind]*animatedProp
	order []PropKind
	seeds map[PropKind]Value
	held  map[PropKind]Value
}

// ID returns the identity update messages are addressed to.
func (a *Animation) ID() ID { return a.id }

// Duration sets the length of one pass. With a zero duration every property
// shows its target at once, or its start value when auto-reversing, rather
// than holding the start value.
func (a *Animation) Duration(d time.Duration) *Animation {
	a.duration = d
	return a
}

// Easing replaces the easing curve and mode.
func (a *Animation) Easing(e Easing) *Animation {
	a.easing = e
	return a
}

// EaseFn selects the base easing curve.
func (a *Animation) EaseFn(fn EasingFn) *Animation {
	a.easing.Fn = fn
	return a
}

// EaseMode selects how the base curve is applied.
func (a *Animation) EaseMode(mode EasingMode) *Animation {
	a.easing.Mode = mode
	return a
}

func (a *Animation) EaseIn() *Animation    { return a.EaseMode(EaseIn) }
func (a *Animation) EaseOut() *Animation   { return a.EaseMode(EaseOut) }
func (a *Animation) EaseInOut() *Animation { return a.EaseMode(EaseInOut) }

// Fill sets the fill mode.
func (a *Animation) Fill(mode FillMode) *Animation {
	a.fill = mode
	return a
}

// AutoReverse makes every pass play to the end and back within its duration.
func (a *Animation) AutoReverse(on bool) *Animation {
	a.autoReverse = on
	return a
}

// Repeat sets the repeat mode.
func (a *Animation) Repeat(mode RepeatMode) *Animation {
	a.repeat = mode
	return a
}

// RepeatCount performs n passes.
func (a *Animation) RepeatCount(n int) *Animation {
	return a.Repeat(Times(n))
}

// RepeatForever loops forever when on is true and runs a single pass
// otherwise.
func (a *Animation) RepeatForever(on bool) *Animation {
	if on {
		return a.Repeat(Forever())
	}
	return a.Repeat(Times(1))
}

// From seeds the starting value of kind. Without a seed the first target of
// a property is both its start and its end.
func (a *Animation) From(kind PropKind, v Value) *Animation {
	kind.checkValue(v)
	a.seeds[kind] = v
	return a
}

// Drive registers fn with the engine's runtime. Every evaluation of fn
// becomes a new target for kind.
func (a *Animation) Drive(kind PropKind, fn func() Value) *Animation {
	id, queue := a.id, a.engine.queue
	a.engine.runtime.Effect(func() {
		v := fn()
		kind.checkValue(v)
		queue.Push(id, kind, v)
	})
	return a
}

func (a *Animation) driveFloat(kind PropKind, fn func() float64) *Animation {
	return a.Drive(kind, func() Value { return FloatValue(fn()) })
}

func (a *Animation) driveColor(kind PropKind, fn func() Color) *Animation {
	return a.Drive(kind, func() Value { return ColorValue(fn()) })
}

func (a *Animation) Width(fn func() float64) *Animation { return a.driveFloat(PropWidth, fn) }

func (a *Animation) Height(fn func() float64) *Animation { return a.driveFloat(PropHeight, fn) }

func (a *Animation) Scale(fn func() float64) *Animation { return a.driveFloat(PropScale, fn) }

func (a *Animation) TranslateX(fn func() float64) *Animation {
	return a.driveFloat(PropTranslateX, fn)
}

func (a *Animation) TranslateY(fn func() float64) *Animation {
	return a.driveFloat(PropTranslateY, fn)
}

func (a *Animation) BorderRadius(fn func() float64) *Animation {
	return a.driveFloat(PropBorderRadius, fn)
}

func (a *Animation) BorderWidth(fn func() float64) *Animation {
	return a.driveFloat(PropBorderWidth, fn)
}

func (a *Animation) Background(fn func() Color) *Animation {
	return a.driveColor(PropBackground, fn)
}

// Color animates the text color.
func (a *Animation) Color(fn func() Color) *Animation { return a.driveColor(PropColor, fn) }

func (a *Animation) BorderColor(fn func() Color) *Animation {
	return a.driveColor(PropBorderColor, fn)
}

// AnimateProp drives a registered style property.
func AnimateProp[T any](a *Animation, p *Prop[T], fn func() T) *Animation {
	return a.Drive(p.kind, func() Value { return p.Value(fn()) })
}

func (a *Animation) IsIdle() bool        { return a.state == Idle }
func (a *Animation) IsInProgress() bool  { return a.state == InProgress }
func (a *Animation) IsCompleted() bool   { return a.state == Completed }
func (a *Animation) IsAutoReverse() bool { return a.autoReverse }

// State returns the top-level state.
func (a *Animation) State() State { return a.state }

// Kinds lists the animated properties in the order they first got a target.
func (a *Animation) Kinds() []PropKind {
	out := make([]PropKind, len(a.order))
	copy(out, a.order)
	return out
}

// PropState returns the pass state of kind.
func (a *Animation) PropState(kind PropKind) (PropState, bool) {
	p, ok := a.props[kind]
	if !ok {
		return PropIdle, false
	}
	return p.state, true
}

// Passes returns how many passes kind has finished.
func (a *Animation) Passes(kind PropKind) int {
	if p, ok := a.props[kind]; ok {
		return p.passes
	}
	return 0
}

// Elapsed returns the elapsed time of the current pass of kind as of the
// last Advance.
func (a *Animation) Elapsed(kind PropKind) time.Duration {
	if p, ok := a.props[kind]; ok {
		return p.elapsed(a.now)
	}
	return 0
}

// Begin restarts every property from the beginning of its first pass.
func (a *Animation) Begin() {
	for kind, v := range a.held {
		p := a.props[kind]
		p.values.retarget(a.valueOf(p), v)
	}
	clear(a.held)
	for _, p := range a.props {
		p.reset()
	}
	a.stopped = false
	a.state = InProgress
}

// Stop completes the animation immediately. Values read afterwards are the
// ones displayed by the last frame. Stopping twice is a no-op.
func (a *Animation) Stop() {
	if a.state == Completed && a.stopped {
		return
	}
	a.state = Completed
	a.stopped = true
}

// Advance applies queued targets and moves every property's clock forward.
// A stopped animation still takes its targets, so that Begin resumes toward
// them, but its clocks and values stay frozen.
func (a *Animation) Advance() {
	if a.stopped {
		for _, msg := range a.engine.queue.DrainFor(a.id) {
			a.hold(msg.Kind, msg.Value)
		}
		return
	}

	// Retargets start from what the previous frame displayed.
	now := a.engine.clock.Now()
	for _, msg := range a.engine.queue.DrainFor(a.id) {
		a.apply(now, msg.Kind, msg.Value)
	}
	a.now = now

	switch a.state {
	case Idle:
		a.Begin()
		a.advanceProps(now)
	case InProgress:
		a.advanceProps(now)
	}
}

func (a *Animation) apply(now time.Time, kind PropKind, v Value) {
	kind.checkValue(v)
	p, ok := a.props[kind]
	if !ok {
		from := v
		if seed, ok := a.seeds[kind]; ok {
			from = seed
		}
		a.props[kind] = newAnimatedProp(kind, from, v)
		a.order = append(a.order, kind)
	} else {
		if p.values.to.same(v) {
			return
		}
		p.retarget(now, a.valueOf(p), v)
	}

	if a.state == Completed {
		a.state = InProgress
	}
}

// hold records v as the target of kind without touching any clock or any
// displayed value. Begin starts held properties from the value frozen on
// screen.
func (a *Animation) hold(kind PropKind, v Value) {
	kind.checkValue(v)
	p, ok := a.props[kind]
	if !ok {
		from := v
		if seed, ok := a.seeds[kind]; ok {
			from = seed
		}
		a.props[kind] = newAnimatedProp(kind, from, v)
		a.order = append(a.order, kind)
		return
	}
	p.values.to.mustMatch(v)
	if p.values.to.same(v) {
		delete(a.held, kind)
		return
	}
	a.held[kind] = v
}

func (a *Animation) advanceProps(now time.Time) {
	running := false
	for _, kind := range a.order {
		p := a.props[kind]
		p.advance(now, a.repeat, a.duration)
		if p.state != PropCompleted {
			running = true
		}
	}
	if !running {
		a.state = Completed
	}
}

// progress returns the eased progress of p's current pass.
func (a *Animation) progress(p *animatedProp) float64 {
	elapsed := p.elapsed(a.now)
	if elapsed > a.duration {
		elapsed = a.duration
	}
	return a.easing.Ease(float64(elapsed) / float64(a.duration))
}

func (a *Animation) valueOf(p *animatedProp) Value {
	if a.duration <= 0 {
		if a.autoReverse {
			return p.values.from
		}
		return p.values.to
	}

	t := a.progress(p)
	if !a.autoReverse {
		return p.values.at(t, Forward)
	}
	if t > 0.5 {
		return p.values.at(t*2-1, Backward)
	}
	return p.values.at(t*2, Forward)
}

// IsPlayingReverse reports whether kind is on the return leg of an
// auto-reversing pass.
func (a *Animation) IsPlayingReverse(kind PropKind) bool {
	p, ok := a.props[kind]
	if !ok || !a.autoReverse || a.duration <= 0 {
		return false
	}
	return a.progress(p) > 0.5
}

// CurrentValue returns the value of kind as of the last Advance. It is only
// meaningful while ShouldApply is true.
func (a *Animation) CurrentValue(kind PropKind) (Value, bool) {
	p, ok := a.props[kind]
	if !ok {
		return Value{}, false
	}
	return a.valueOf(p), true
}

// ShouldApply reports whether the style layer should paint the animated
// values instead of the base values of the element.
func (a *Animation) ShouldApply() bool {
	if a.autoReverse && a.IsCompleted() {
		return false
	}
	if a.fill == FillForwards {
		return true
	}
	return !a.IsCompleted()
}

// RequiresLayout reports whether any animated property affects layout.
func (a *Animation) RequiresLayout() bool {
	for _, kind := range a.order {
		if kind.RequiresLayout() {
			return true
		}
	}
	return false
}
