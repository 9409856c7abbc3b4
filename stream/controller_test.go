package stream

import (
	"strings"
	"testing"
	"time"

	"github.com/presiyan-ivanov/floem/animate"
	"github.com/presiyan-ivanov/floem/reactive"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Add(d time.Duration) { c.now = c.now.Add(d) }

func newTestController(t *testing.T, doc string) (*Controller, *fakeClock) {
	t.Helper()
	cfg, err := ReadConfig(strings.NewReader(doc))
	if err != nil {
		t.Fatal(err)
	}
	clk := &fakeClock{now: time.Unix(1700000000, 0)}
	c, err := NewController(cfg.Animations, reactive.NewRuntime(), animate.WithClock(clk))
	if err != nil {
		t.Fatal(err)
	}
	return c, clk
}

func frameFloat(t *testing.T, f *Frame, track string, kind animate.PropKind) float64 {
	t.Helper()
	for _, tf := range f.Tracks {
		if tf.Name != track {
			continue
		}
		v, ok := tf.Value(kind)
		if !ok {
			t.Fatalf("%s has no %s entry", track, kind)
		}
		return v.AsFloat()
	}
	t.Fatalf("no track %s", track)
	return 0
}

const boxConfig = `
animations:
  - name: box
    duration: 1s
    easing:
      fn: linear
    props:
      width:
        from: "0"
        to: ["100", "200"]
`

func TestController_CalculateFrame(t *testing.T) {
	c, clk := newTestController(t, boxConfig)

	f := c.CalculateFrame()
	if len(f.Tracks) != 1 {
		t.Fatalf("got %d tracks, want 1", len(f.Tracks))
	}
	tf := f.Tracks[0]
	if tf.State != animate.InProgress.String() || !tf.Apply || !tf.Layout {
		t.Errorf("unexpected first frame %+v", tf)
	}
	if got := frameFloat(t, f, "box", animate.PropWidth); got != 0 {
		t.Errorf("width at start = %v, want 0", got)
	}

	clk.Add(500 * time.Millisecond)
	if got := frameFloat(t, c.CalculateFrame(), "box", animate.PropWidth); got != 50 {
		t.Errorf("width at 0.5s = %v, want 50", got)
	}

	clk.Add(500 * time.Millisecond)
	c.CalculateFrame()
	f = c.CalculateFrame()
	if !f.Tracks[0].Completed || f.Tracks[0].Apply {
		t.Errorf("finished track should be completed and not applied: %+v", f.Tracks[0])
	}
}

func TestController_Cycle(t *testing.T) {
	c, clk := newTestController(t, boxConfig)

	c.CalculateFrame()
	clk.Add(500 * time.Millisecond)
	c.CalculateFrame()

	c.Cycle()
	if got := frameFloat(t, c.CalculateFrame(), "box", animate.PropWidth); got != 50 {
		t.Errorf("width right after cycle = %v, want 50", got)
	}
	clk.Add(500 * time.Millisecond)
	if got := frameFloat(t, c.CalculateFrame(), "box", animate.PropWidth); got != 125 {
		t.Errorf("width half way to new target = %v, want 125", got)
	}
}

func TestController_Retarget(t *testing.T) {
	c, clk := newTestController(t, boxConfig)
	c.CalculateFrame()

	if err := c.Retarget(ControlMessage{Animation: "box", Prop: "width", Value: "300"}); err != nil {
		t.Fatal(err)
	}
	clk.Add(500 * time.Millisecond)
	if got := frameFloat(t, c.CalculateFrame(), "box", animate.PropWidth); got != 0 {
		t.Errorf("width when the retarget lands = %v, want 0", got)
	}
	clk.Add(500 * time.Millisecond)
	if got := frameFloat(t, c.CalculateFrame(), "box", animate.PropWidth); got != 150 {
		t.Errorf("width = %v, want 150", got)
	}

	tests := map[string]ControlMessage{
		"unknown animation": {Animation: "circle", Prop: "width", Value: "1"},
		"unknown prop": {Animation: "box", Prop: "depth", Value: "1"},
		"not animated":      {Animation: "box", Prop: "height", Value: "1"},
		"bad value":         {Animation: "box", Prop: "width", Value: "wide"},
	}
	for name, m := range tests {
		t.Run(name, func(t *testing.T) {
			if err := c.Retarget(m); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestController_StopRestart(t *testing.T) {
	c, clk := newTestController(t, boxConfig)
	c.CalculateFrame()
	clk.Add(250 * time.Millisecond)
	c.CalculateFrame()

	c.Stop()
	clk.Add(250 * time.Millisecond)
	f := c.CalculateFrame()
	if !f.Tracks[0].Completed {
		t.Error("stopped track should be completed")
	}
	if got := frameFloat(t, f, "box", animate.PropWidth); got != 25 {
		t.Errorf("stopped width = %v, want 25", got)
	}

	c.Restart()
	if got := frameFloat(t, c.CalculateFrame(), "box", animate.PropWidth); got != 0 {
		t.Errorf("restarted width = %v, want 0", got)
	}
}

func TestController_RetargetWhileStopped(t *testing.T) {
	c, clk := newTestController(t, boxConfig)
	c.CalculateFrame()
	clk.Add(time.Second)
	c.CalculateFrame()
	c.CalculateFrame()

	c.Stop()
	if err := c.Retarget(ControlMessage{Animation: "box", Prop: "width", Value: "300"}); err != nil {
		t.Fatal(err)
	}
	if got := frameFloat(t, c.CalculateFrame(), "box", animate.PropWidth); got != 100 {
		t.Errorf("stopped width = %v, want 100", got)
	}

	c.Restart()
	if got := frameFloat(t, c.CalculateFrame(), "box", animate.PropWidth); got != 100 {
		t.Errorf("width on restart = %v, want 100", got)
	}
	clk.Add(500 * time.Millisecond)
	if got := frameFloat(t, c.CalculateFrame(), "box", animate.PropWidth); got != 200 {
		t.Errorf("width half way = %v, want 200", got)
	}
	clk.Add(500 * time.Millisecond)
	if got := frameFloat(t, c.CalculateFrame(), "box", animate.PropWidth); got != 300 {
		t.Errorf("width at end = %v, want 300", got)
	}
}

func TestController_StopBeforeFirstFrame(t *testing.T) {
	c, clk := newTestController(t, boxConfig)
	c.Stop()
	c.CalculateFrame()

	c.Restart()
	f := c.CalculateFrame()
	if n := len(f.Tracks[0].Entries); n != 1 {
		t.Fatalf("entries after restart = %d, want 1", n)
	}
	if f.Tracks[0].Completed {
		t.Error("restarted track should not be completed")
	}
	clk.Add(500 * time.Millisecond)
	if got := frameFloat(t, c.CalculateFrame(), "box", animate.PropWidth); got != 50 {
		t.Errorf("width = %v, want 50", got)
	}
}

func TestNewController_Errors(t *testing.T) {
	tests := map[string]string{
		"missing name": "animations:\n  - props:\n      width:\n        to: \"1\"\n",
		"duplicate":    "animations:\n  - name: a\n  - name: a\n",
		"bad easing":   "animations:\n  - name: a\n    easing:\n      fn: wobble\n",
		"bad fill":     "animations:\n  - name: a\n    fill: sideways\n",
		"unknown prop": "animations:\n  - name: a\n    props:\n      depth:\n        to: \"1\"\n",
		"no targets":   "animations:\n  - name: a\n    props:\n      width:\n        from: \"1\"\n",
		"bad target":   "animations:\n  - name: a\n    props:\n      background:\n        to: red\n",
	}

	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			cfg, err := ReadConfig(strings.NewReader(doc))
			if err != nil {
				t.Fatal(err)
			}
			if _, err := NewController(cfg.Animations, reactive.NewRuntime()); err == nil {
				t.Error("expected an error")
			}
		})
	}
}
