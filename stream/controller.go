package stream

import (
	"log"
	"sort"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/presiyan-ivanov/floem/animate"
	"github.com/presiyan-ivanov/floem/reactive"
)

// trackProp is one declared property: the signal that drives it and the
// targets it cycles through.
type trackProp struct {
	kind    animate.PropKind
	targets []animate.Value
	next    int
	target  *reactive.Signal[animate.Value]
}

// Track is a named animation built from an AnimationConfig.
type Track struct {
	Name  string
	Anim  *animate.Animation
	props []*trackProp
}

func (t *Track) prop(kind animate.PropKind) *trackProp {
	for _, p := range t.props {
		if p.kind == kind {
			return p
		}
	}
	return nil
}

// Controller owns the animations of the streamer. All of its methods must be
// called from the frame-loop goroutine.
type Controller struct {
	engine *animate.Engine
	rt     *reactive.Runtime
	tracks []*Track
}

// NewController builds one Track per AnimationConfig.
func NewController(configs []AnimationConfig, rt *reactive.Runtime, opts ...animate.Option) (*Controller, error) {
	c := new(Controller)
	c.rt = rt
	c.engine = animate.NewEngine(rt, opts...)

	for _, cfg := range configs {
		t, err := c.buildTrack(cfg)
		if err != nil {
			return nil, errors.Wrapf(err, "animation %q", cfg.Name)
		}
		c.tracks = append(c.tracks, t)
	}
	return c, nil
}

func (c *Controller) buildTrack(cfg AnimationConfig) (*Track, error) {
	if cfg.Name == "" {
		return nil, errors.New("missing name")
	}
	if c.Track(cfg.Name) != nil {
		return nil, errors.New("duplicate name")
	}

	a := c.engine.New().AutoReverse(cfg.AutoReverse)
	if cfg.Duration > 0 {
		a.Duration(time.Duration(cfg.Duration))
	}
	if cfg.Easing.Fn != "" {
		fn, err := animate.ParseEasingFn(cfg.Easing.Fn)
		if err != nil {
			return nil, err
		}
		a.EaseFn(fn)
	}
	if cfg.Easing.Mode != "" {
		mode, err := animate.ParseEasingMode(cfg.Easing.Mode)
		if err != nil {
			return nil, err
		}
		a.EaseMode(mode)
	}
	switch {
	case cfg.Repeat.Forever:
		a.RepeatForever(true)
	case cfg.Repeat.Times > 0:
		a.RepeatCount(cfg.Repeat.Times)
	}
	switch strings.ToLower(cfg.Fill) {
	case "", "removed":
		a.Fill(animate.FillRemoved)
	case "forwards":
		a.Fill(animate.FillForwards)
	default:
		return nil, errors.Errorf("unknown fill mode %q", cfg.Fill)
	}

	names := make([]string, 0, len(cfg.Props))
	for name := range cfg.Props {
		names = append(names, name)
	}
	sort.Strings(names)

	t := &Track{Name: cfg.Name, Anim: a}
	for _, name := range names {
		p, err := c.buildProp(a, name, cfg.Props[name])
		if err != nil {
			return nil, err
		}
		t.props = append(t.props, p)
	}
	return t, nil
}

func (c *Controller) buildProp(a *animate.Animation, name string, cfg PropConfig) (*trackProp, error) {
	kind, err := animate.ParsePropKind(name)
	if err != nil {
		return nil, err
	}
	if len(cfg.To) == 0 {
		return nil, errors.Errorf("%s: no targets", name)
	}

	p := &trackProp{kind: kind}
	for _, raw := range cfg.To {
		v, err := kind.ParseValue(raw)
		if err != nil {
			return nil, err
		}
		p.targets = append(p.targets, v)
	}
	if cfg.From != "" {
		from, err := kind.ParseValue(cfg.From)
		if err != nil {
			return nil, err
		}
		a.From(kind, from)
	}

	p.target = reactive.NewSignal(c.rt, p.targets[0])
	a.Drive(kind, p.target.Get)
	return p, nil
}

// Engine returns the engine shared by every track.
func (c *Controller) Engine() *animate.Engine {
	return c.engine
}

// Tracks returns the tracks in declaration order.
func (c *Controller) Tracks() []*Track {
	return c.tracks
}

// Track finds a track by name.
func (c *Controller) Track(name string) *Track {
	for _, t := range c.tracks {
		if t.Name == name {
			return t
		}
	}
	return nil
}

// CalculateFrame advances every animation once and snapshots the result.
func (c *Controller) CalculateFrame() *Frame {
	for _, t := range c.tracks {
		t.Anim.Advance()
	}

	f := NewFrame()
	for _, t := range c.tracks {
		f.add(t)
	}
	return f
}

// Cycle moves every property with more than one target to its next target.
func (c *Controller) Cycle() {
	c.rt.Batch(func() {
		for _, t := range c.tracks {
			for _, p := range t.props {
				if len(p.targets) < 2 {
					continue
				}
				p.next = (p.next + 1) % len(p.targets)
				p.target.Set(p.targets[p.next])
			}
		}
	})
}

// Retarget points one property of one track at a new value.
func (c *Controller) Retarget(m ControlMessage) error {
	t := c.Track(m.Animation)
	if t == nil {
		return errors.Errorf("unknown animation %q", m.Animation)
	}
	kind, err := animate.ParsePropKind(m.Prop)
	if err != nil {
		return err
	}
	p := t.prop(kind)
	if p == nil {
		return errors.Errorf("animation %q does not animate %s", m.Animation, kind)
	}
	v, err := kind.ParseValue(m.Value)
	if err != nil {
		return err
	}

	log.Printf("Retarget %s.%s -> %s", t.Name, kind, v)
	p.target.Set(v)
	return nil
}

// Restart begins every animation again from its first pass.
func (c *Controller) Restart() {
	for _, t := range c.tracks {
		t.Anim.Begin()
	}
}

// Stop cancels every animation.
func (c *Controller) Stop() {
	for _, t := range c.tracks {
		t.Anim.Stop()
	}
}
