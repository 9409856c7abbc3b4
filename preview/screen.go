// Package preview draws frames in the terminal, one row per track.
package preview

import (
	"fmt"
	"math"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/pkg/errors"
	"github.com/presiyan-ivanov/floem/animate"
	"github.com/presiyan-ivanov/floem/stream"
)

const labelWidth = 12

// Screen is a stream.Sink. The bar of a track is as long as its width
// (one cell per unit, cut at the screen edge) and painted in its background
// color. Tracks that should not be applied are drawn dimmed.
type Screen struct {
	mu     sync.Mutex
	screen tcell.Screen
}

// New opens the terminal.
func New() (*Screen, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, errors.Wrap(err, "create screen")
	}
	if err := s.Init(); err != nil {
		return nil, errors.Wrap(err, "init screen")
	}
	return NewWithScreen(s), nil
}

// NewWithScreen draws on an initialised screen.
func NewWithScreen(s tcell.Screen) *Screen {
	p := new(Screen)
	p.screen = s
	return p
}

// Show draws f.
func (p *Screen) Show(f *stream.Frame) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.screen.Clear()
	width, height := p.screen.Size()
	for row, t := range f.Tracks {
		if row >= height {
			break
		}
		p.drawTrack(row, width, &t)
	}
	p.screen.Show()
	return nil
}

func (p *Screen) drawTrack(row, width int, t *stream.TrackFrame) {
	label := fmt.Sprintf("%-*.*s", labelWidth-1, labelWidth-1, t.Name)
	for x, r := range label {
		p.screen.SetContent(x, row, r, nil, tcell.StyleDefault)
	}

	style := tcell.StyleDefault
	if v, ok := t.Value(animate.PropBackground); ok {
		c := v.AsColor()
		style = style.Foreground(tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B)))
	}
	if !t.Apply {
		style = style.Dim(true)
	}

	n := 1
	if v, ok := t.Value(animate.PropWidth); ok {
		n = int(math.Round(v.AsFloat()))
	}
	for x := labelWidth; x < labelWidth+n && x < width; x++ {
		p.screen.SetContent(x, row, '█', nil, style)
	}
}

// Close restores the terminal.
func (p *Screen) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.screen.Fini()
}
