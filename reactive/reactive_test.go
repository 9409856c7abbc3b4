package reactive

import (
	"testing"
	"time"

	"github.com/presiyan-ivanov/floem/animate"
)

func TestEffect_RunsImmediatelyAndOnChange(t *testing.T) {
	rt := NewRuntime()
	count := NewSignal(rt, 1)

	var seen []int
	rt.Effect(func() {
		seen = append(seen, count.Get())
	})

	count.Set(2)
	count.Set(2)
	count.Update(func(v int) int { return v + 1 })

	want := []int{1, 2, 3}
	if len(seen) != len(want) {
		t.Fatalf("effect ran %d times, want %d (%v)", len(seen), len(want), seen)
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Errorf("run %d saw %d, want %d", i, seen[i], want[i])
		}
	}
}

func TestPeek_DoesNotSubscribe(t *testing.T) {
	rt := NewRuntime()
	s := NewSignal(rt, "a")

	runs := 0
	rt.Effect(func() {
		runs++
		_ = s.Peek()
	})
	s.Set("b")
	if runs != 1 {
		t.Errorf("effect ran %d times, want 1", runs)
	}
}

func TestBatch_RunsEachEffectOnce(t *testing.T) {
	type tc struct {
		batched bool
		want    int
	}

	tests := map[string]tc{
		"without batch": {batched: false, want: 3},
		"with batch":    {batched: true, want: 2},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			rt := NewRuntime()
			first := NewSignal(rt, "Ada")
			last := NewSignal(rt, "Lovelace")

			runs := 0
			rt.Effect(func() {
				runs++
				_ = first.Get() + last.Get()
			})

			set := func() {
				first.Set("Grace")
				last.Set("Hopper")
			}
			if tt.batched {
				rt.Batch(set)
			} else {
				set()
			}

			if runs != tt.want {
				t.Errorf("effect ran %d times, want %d", runs, tt.want)
			}
		})
	}
}

type fixedClock struct{ now time.Time }

func (c *fixedClock) Now() time.Time { return c.now }

func TestRuntime_DrivesAnimationTargets(t *testing.T) {
	rt := NewRuntime()
	clk := &fixedClock{now: time.Unix(0, 0)}
	engine := animate.NewEngine(rt, animate.WithClock(clk))

	target := NewSignal(rt, 100.0)
	a := engine.New().From(animate.PropWidth, animate.FloatValue(0)).Width(target.Get)
	a.Advance()

	clk.now = clk.now.Add(500 * time.Millisecond)
	a.Advance()

	target.Set(200)
	if engine.Queue().Pending(a.ID()) != 1 {
		t.Fatalf("Pending() = %d, want 1", engine.Queue().Pending(a.ID()))
	}

	a.Advance()
	clk.now = clk.now.Add(500 * time.Millisecond)
	a.Advance()

	v, _ := a.CurrentValue(animate.PropWidth)
	if got := v.AsFloat(); got != 125 {
		t.Errorf("width = %v, want 125", got)
	}
}

func TestEffect_DropsStaleDependencies(t *testing.T) {
	rt := NewRuntime()
	useWide := NewSignal(rt, true)
	wide := NewSignal(rt, 200)
	narrow := NewSignal(rt, 50)

	var seen []int
	rt.Effect(func() {
		if useWide.Get() {
			seen = append(seen, wide.Get())
		} else {
			seen = append(seen, narrow.Get())
		}
	})

	useWide.Set(false)
	wide.Set(300)
	narrow.Set(60)

	want := []int{200, 50, 60}
	if len(seen) != len(want) {
		t.Fatalf("effect saw %v, want %v", seen, want)
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Errorf("run %d saw %d, want %d", i, seen[i], want[i])
		}
	}
	if len(wide.subs) != 0 {
		t.Errorf("unread signal still has %d subscribers", len(wide.subs))
	}
}
