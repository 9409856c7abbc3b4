// Package reactive provides signals and effects for the frame-loop goroutine.
//
// An effect runs immediately and records every signal it reads. Setting one
// of those signals to a different value runs the effect again:
//
//	rt := reactive.NewRuntime()
//	width := reactive.NewSignal(rt, 100.0)
//	rt.Effect(func() {
//	    log.Println("width is now", width.Get())
//	})
//	width.Set(200) // logs again
//
// Batch coalesces several Set calls so that each affected effect runs once.
// Nothing here is safe for concurrent use.
package reactive

// effect is a registered closure plus the bookkeeping needed to rerun it.
type effect struct {
	id      uint64
	fn      func()
	sources []source
}

// source is a signal an effect read during its last run.
type source interface {
	unsubscribe(e *effect)
}

// Runtime tracks which effect is running and which are waiting on a batch.
type Runtime struct {
	nextID  uint64
	running *effect

	depth        int
	pending      map[uint64]*effect
	pendingOrder []uint64
}

// NewRuntime creates an empty Runtime.
func NewRuntime() *Runtime {
	rt := new(Runtime)
	rt.pending = make(map[uint64]*effect)
	return rt
}

// Effect runs fn now and again whenever a signal read by its latest run
// changes.
func (rt *Runtime) Effect(fn func()) {
	rt.nextID++
	rt.run(&effect{id: rt.nextID, fn: fn})
}

// run drops the dependencies of e and records them afresh while fn runs.
func (rt *Runtime) run(e *effect) {
	for _, src := range e.sources {
		src.unsubscribe(e)
	}
	e.sources = e.sources[:0]

	prev := rt.running
	rt.running = e
	defer func() { rt.running = prev }()
	e.fn()
}

// Batch runs fn and defers every effect it triggers until fn returns. Each
// effect runs at most once per batch, in the order it was first triggered.
func (rt *Runtime) Batch(fn func()) {
	rt.depth++
	defer func() {
		rt.depth--
		if rt.depth == 0 {
			rt.flush()
		}
	}()
	fn()
}

func (rt *Runtime) schedule(e *effect) {
	if rt.depth == 0 {
		rt.run(e)
		return
	}
	if _, ok := rt.pending[e.id]; ok {
		return
	}
	rt.pending[e.id] = e
	rt.pendingOrder = append(rt.pendingOrder, e.id)
}

func (rt *Runtime) flush() {
	for len(rt.pendingOrder) > 0 {
		order := rt.pendingOrder
		rt.pendingOrder = nil
		for _, id := range order {
			e := rt.pending[id]
			delete(rt.pending, id)
			rt.run(e)
		}
	}
}

// Signal holds a value and reruns the effects that read it when it changes.
type Signal[T comparable] struct {
	rt    *Runtime
	value T
	subs  []*effect
}

// NewSignal creates a signal owned by rt.
func NewSignal[T comparable](rt *Runtime, initial T) *Signal[T] {
	return &Signal[T]{rt: rt, value: initial}
}

// Get returns the value and subscribes the running effect, if any.
func (s *Signal[T]) Get() T {
	if e := s.rt.running; e != nil && !s.subscribed(e) {
		s.subs = append(s.subs, e)
		e.sources = append(e.sources, s)
	}
	return s.value
}

// Peek returns the value without subscribing.
func (s *Signal[T]) Peek() T {
	return s.value
}

// Set stores v. If v differs from the current value every subscribed
// effect runs again, or is queued when inside Batch.
func (s *Signal[T]) Set(v T) {
	if v == s.value {
		return
	}
	s.value = v

	subs := make([]*effect, len(s.subs))
	copy(subs, s.subs)
	for _, e := range subs {
		s.rt.schedule(e)
	}
}

// Update sets the value to fn applied to the current value.
func (s *Signal[T]) Update(fn func(T) T) {
	s.Set(fn(s.value))
}

func (s *Signal[T]) unsubscribe(e *effect) {
	for i, sub := range s.subs {
		if sub == e {
			s.subs = append(s.subs[:i], s.subs[i+1:]...)
			return
		}
	}
}

func (s *Signal[T]) subscribed(e *effect) bool {
	for _, sub := range s.subs {
		if sub == e {
			return true
		}
	}
	return false
}
