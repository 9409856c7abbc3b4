package animate

import "time"

// Runtime runs fn now and again whenever something fn read changes.
type Runtime interface {
	Effect(fn func())
}

// RuntimeFunc adapts a function to the Runtime interface.
type RuntimeFunc func(fn func())

// Effect calls f(fn).
func (f RuntimeFunc) Effect(fn func()) { f(fn) }

// RunOnce evaluates each driving closure a single time and never again.
var RunOnce Runtime = RuntimeFunc(func(fn func()) { fn() })

// Clock is the time source of an Engine. It must be monotonic.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

// time.Now carries a monotonic reading, so Sub ignores wall clock changes.
func (systemClock) Now() time.Time { return time.Now() }

// Engine connects animations to the reactive runtime that drives their
// targets and to the queue those targets travel through.
type Engine struct {
	runtime Runtime
	queue   *Queue
	clock   Clock
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock replaces the system clock.
func WithClock(c Clock) Option {
	return func(e *Engine) {
		e.clock = c
	}
}

// WithQueue shares an existing Queue.
func WithQueue(q *Queue) Option {
	return func(e *Engine) {
		e.queue = q
	}
}

// NewEngine creates an Engine. A nil runtime means RunOnce.
func NewEngine(rt Runtime, opts ...Option) *Engine {
	e := new(Engine)
	e.runtime = rt
	if e.runtime == nil {
		e.runtime = RunOnce
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.queue == nil {
		e.queue = NewQueue()
	}
	if e.clock == nil {
		e.clock = systemClock{}
	}
	return e
}

// Queue returns the update queue.
func (e *Engine) Queue() *Queue {
	return e.queue
}

// New creates an idle Animation with a fresh ID: one second, linear, one
// pass, FillRemoved.
func (e *Engine) New() *Animation {
	a := new(Animation)
	a.id = NextID()
	a.engine = e
	a.duration = time.Second
	a.repeat = Times(1)
	a.fill = FillRemoved
	a.props = make(map[PropKind]*animatedProp)
	a.seeds = make(map[PropKind]Value)
	a.held = make(map[PropKind]Value)
	return a
}

// Release stops a and drops its pending and future messages. Call it when
// the element owning a is destroyed.
func (e *Engine) Release(a *Animation) {
	a.Stop()
	e.queue.Close(a.id)
}
