package stream

import (
	"encoding/binary"
	"math"

	"github.com/pkg/errors"
	"github.com/presiyan-ivanov/floem/animate"
)

// Entry is the value of one property in a frame.
type Entry struct {
	Kind  animate.PropKind `json:"-"`
	Prop  string           `json:"prop"`
	Value animate.Value    `json:"-"`
	Text  string           `json:"value"`
}

// TrackFrame is the state of one track in a frame.
type TrackFrame struct {
	Name      string  `json:"name"`
	ID        uint64  `json:"id"`
	State     string  `json:"state"`
	Apply     bool    `json:"apply"`
	Layout    bool    `json:"layout"`
	Completed bool    `json:"completed"`
	Entries   []Entry `json:"entries"`
}

// Value returns the entry for kind.
func (t *TrackFrame) Value(kind animate.PropKind) (animate.Value, bool) {
	for _, e := range t.Entries {
		if e.Kind == kind {
			return e.Value, true
		}
	}
	return animate.Value{}, false
}

// Frame is a snapshot of every track after one Advance.
type Frame struct {
	Tracks []TrackFrame `json:"tracks"`
}

// NewFrame creates an empty Frame.
func NewFrame() *Frame {
	f := new(Frame)
	return f
}

func (f *Frame) add(t *Track) {
	a := t.Anim
	tf := TrackFrame{
		Name:      t.Name,
		ID:        uint64(a.ID()),
		State:     a.State().String(),
		Apply:     a.ShouldApply(),
		Layout:    a.RequiresLayout(),
		Completed: a.IsCompleted(),
	}
	for _, kind := range a.Kinds() {
		v, _ := a.CurrentValue(kind)
		tf.Entries = append(tf.Entries, Entry{Kind: kind, Prop: kind.String(), Value: v, Text: v.String()})
	}
	f.Tracks = append(f.Tracks, tf)
}

const (
	flagApply byte = 1 << iota
	flagLayout
	flagCompleted
)

// MarshalBinary encodes the frame for an ledrx-style receiver. All integers
// are little endian:
//
//	u16 track count
//	per track: u64 id, u8 flags (apply, layout, completed), u8 entry count
//	per entry: u16 kind, u8 tag, payload
//
// The payload is a float64 for floats, r g b a bytes for colors, and a u16
// length followed by the text form for dynamic values.
func (f *Frame) MarshalBinary() (data []byte, err error) {
	if len(f.Tracks) > math.MaxUint16 {
		return nil, errors.Errorf("too many tracks: %d", len(f.Tracks))
	}

	data = make([]byte, 2, 2+len(f.Tracks)*16)
	binary.LittleEndian.PutUint16(data, uint16(len(f.Tracks)))
	for _, t := range f.Tracks {
		if len(t.Entries) > math.MaxUint8 {
			return nil, errors.Errorf("track %s: too many entries: %d", t.Name, len(t.Entries))
		}

		var flags byte
		if t.Apply {
			flags |= flagApply
		}
		if t.Layout {
			flags |= flagLayout
		}
		if t.Completed {
			flags |= flagCompleted
		}
		data = binary.LittleEndian.AppendUint64(data, t.ID)
		data = append(data, flags, byte(len(t.Entries)))

		for _, e := range t.Entries {
			data = binary.LittleEndian.AppendUint16(data, uint16(e.Kind))
			data = append(data, byte(e.Value.Tag()))
			switch e.Value.Tag() {
			case animate.TagFloat:
				data = binary.LittleEndian.AppendUint64(data, math.Float64bits(e.Value.AsFloat()))
			case animate.TagColor:
				c := e.Value.AsColor()
				data = append(data, c.R, c.G, c.B, c.A)
			default:
				if len(e.Text) > math.MaxUint16 {
					return nil, errors.Errorf("track %s: %s value too long", t.Name, e.Prop)
				}
				data = binary.LittleEndian.AppendUint16(data, uint16(len(e.Text)))
				data = append(data, e.Text...)
			}
		}
	}

	return data, nil
}
