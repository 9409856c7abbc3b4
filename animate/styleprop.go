package animate

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"sync"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/pkg/errors"
)

// PropKind names the style property an animated property drives.
type PropKind uint16

// Built-in kinds. Kinds of registered style properties start after these.
const (
	PropWidth PropKind = iota + 1
	PropHeight
	PropScale
	PropTranslateX
	PropTranslateY
	PropBorderRadius
	PropBorderWidth
	PropBackground
	PropColor
	PropBorderColor

	firstDynamicKind PropKind = 64
)

var builtinKinds = []struct {
	kind PropKind
	name string
	tag  ValueTag
}{
	{PropWidth, "width", TagFloat},
	{PropHeight, "height", TagFloat},
	{PropScale, "scale", TagFloat},
	{PropTranslateX, "translateX", TagFloat},
	{PropTranslateY, "translateY", TagFloat},
	{PropBorderRadius, "borderRadius", TagFloat},
	{PropBorderWidth, "borderWidth", TagFloat},
	{PropBackground, "background", TagColor},
	{PropColor, "color", TagColor},
	{PropBorderColor, "borderColor", TagColor},
}

func (k PropKind) String() string {
	for _, b := range builtinKinds {
		if b.kind == k {
			return b.name
		}
	}
	if p := lookupKind(k); p != nil {
		return p.name
	}
	return fmt.Sprintf("PropKind(%d)", uint16(k))
}

// Tag reports the Value variant a kind carries.
func (k PropKind) Tag() ValueTag {
	for _, b := range builtinKinds {
		if b.kind == k {
			return b.tag
		}
	}
	return TagDynamic
}

// RequiresLayout reports whether animating k changes layout rather than
// only paint.
func (k PropKind) RequiresLayout() bool {
	switch k {
	case PropWidth, PropHeight:
		return true
	}
	if p := lookupKind(k); p != nil {
		return p.layout
	}
	return false
}

// ParseValue parses s as a value of kind k: a number for float kinds, a hex
// color for color kinds, and whatever the registered parser accepts for
// dynamic kinds.
func (k PropKind) ParseValue(s string) (Value, error) {
	switch k.Tag() {
	case TagFloat:
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return Value{}, errors.Wrapf(err, "%s", k)
		}
		return FloatValue(f), nil
	case TagColor:
		c, err := ParseHex(s)
		if err != nil {
			return Value{}, errors.Wrapf(err, "%s", k)
		}
		return ColorValue(c), nil
	}

	p := lookupKind(k)
	if p == nil {
		return Value{}, errors.Errorf("unknown property kind %d", uint16(k))
	}
	return p.Parse(s)
}

// checkValue panics if v cannot be a value of kind k.
func (k PropKind) checkValue(v Value) {
	if want := k.Tag(); want != v.tag {
		panic(fmt.Sprintf("animate: %s takes %s values, got %s", k, want, v.tag))
	}
	if v.tag == TagDynamic && v.prop.kind != k {
		panic(fmt.Sprintf("animate: %s got a value of %s", k, v.prop.name))
	}
}

// ParsePropKind resolves a built-in or registered property name.
func ParsePropKind(name string) (PropKind, error) {
	if k, ok := builtinKind(name); ok {
		return k, nil
	}
	if p, ok := LookupProp(name); ok {
		return p.kind, nil
	}
	return 0, errors.Errorf("unknown style property %q", name)
}

// StyleProp is the type-erased descriptor of a registered style property.
type StyleProp struct {
	name   string
	kind   PropKind
	layout bool
	lerp   func(from, to any, t float64) any
	parse  func(s string) (any, error)
}

// Name returns the registered name.
func (p *StyleProp) Name() string { return p.name }

// Kind returns the PropKind assigned at registration.
func (p *StyleProp) Kind() PropKind { return p.kind }

// RequiresLayout reports whether the property affects layout.
func (p *StyleProp) RequiresLayout() bool { return p.layout }

// Parse parses s into a value of this property.
func (p *StyleProp) Parse(s string) (Value, error) {
	if p.parse == nil {
		return Value{}, errors.Errorf("style property %s has no parser", p.name)
	}
	v, err := p.parse(s)
	if err != nil {
		return Value{}, errors.Wrapf(err, "%s", p.name)
	}
	return DynamicValue(p, v), nil
}

func (p *StyleProp) interpolate(from, to Value, t float64, dir Direction) Value {
	if dir == Backward {
		from, to = to, from
	}
	if t == 0 {
		return from
	}
	if math.Abs(1-t) < epsilon {
		return to
	}
	return DynamicValue(p, p.lerp(from.dyn, to.dyn, t))
}

// Prop is a registered style property whose values are Ts.
type Prop[T any] struct {
	*StyleProp
}

// Value wraps v as a Value of this property.
func (p *Prop[T]) Value(v T) Value {
	return DynamicValue(p.StyleProp, v)
}

// Get unwraps a Value of this property.
func (p *Prop[T]) Get(v Value) T {
	if v.tag == TagDynamic && v.prop != p.StyleProp {
		panic(fmt.Sprintf("animate: %s value read as %s", v.prop.name, p.name))
	}
	return AsDynamic[T](v)
}

// WithParser installs the parser used by PropKind.ParseValue.
func (p *Prop[T]) WithParser(parse func(string) (T, error)) *Prop[T] {
	p.parse = func(s string) (any, error) {
		return parse(s)
	}
	return p
}

var registry = struct {
	sync.Mutex
	next   PropKind
	byKind map[PropKind]*StyleProp
	byName map[string]*StyleProp
}{
	next:   firstDynamicKind,
	byKind: make(map[PropKind]*StyleProp),
	byName: make(map[string]*StyleProp),
}

// RegisterProp adds a style property with its own PropKind. lerp blends two
// values at t; the engine handles direction and the exact ends. Registering
// a name twice panics.
func RegisterProp[T any](name string, lerp func(from, to T, t float64) T, layout bool) *Prop[T] {
	registry.Lock()
	defer registry.Unlock()

	if _, ok := builtinKind(name); ok {
		panic(fmt.Sprintf("animate: style property %q is built in", name))
	}
	if _, ok := registry.byName[name]; ok {
		panic(fmt.Sprintf("animate: style property %q registered twice", name))
	}

	p := &StyleProp{
		name:   name,
		kind:   registry.next,
		layout: layout,
		lerp: func(from, to any, t float64) any {
			return lerp(from.(T), to.(T), t)
		},
	}
	registry.next++
	registry.byKind[p.kind] = p
	registry.byName[name] = p
	return &Prop[T]{StyleProp: p}
}

func builtinKind(name string) (PropKind, bool) {
	for _, b := range builtinKinds {
		if b.name == name {
			return b.kind, true
		}
	}
	return 0, false
}

// LookupProp finds a registered style property by name.
func LookupProp(name string) (*StyleProp, bool) {
	registry.Lock()
	defer registry.Unlock()
	p, ok := registry.byName[name]
	return p, ok
}

func lookupKind(k PropKind) *StyleProp {
	if k < firstDynamicKind {
		return nil
	}
	registry.Lock()
	defer registry.Unlock()
	return registry.byKind[k]
}

// SizeUnit is the unit of a Length.
type SizeUnit uint8

const (
	UnitPx SizeUnit = iota
	UnitPct
)

// Length is a size in pixels or percent of the parent.
type Length struct {
	Value float64
	Unit  SizeUnit
}

// Px returns a pixel Length.
func Px(v float64) Length { return Length{Value: v, Unit: UnitPx} }

// Pct returns a percent Length.
func Pct(v float64) Length { return Length{Value: v, Unit: UnitPct} }

func (l Length) String() string {
	if l.Unit == UnitPct {
		return strconv.FormatFloat(l.Value, 'g', -1, 64) + "%"
	}
	return strconv.FormatFloat(l.Value, 'g', -1, 64) + "px"
}

// ParseLength parses "12px", "12" or "50%".
func ParseLength(s string) (Length, error) {
	s = strings.TrimSpace(s)
	unit := UnitPx
	switch {
	case strings.HasSuffix(s, "%"):
		unit = UnitPct
		s = strings.TrimSuffix(s, "%")
	case strings.HasSuffix(s, "px"):
		s = strings.TrimSuffix(s, "px")
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return Length{}, errors.Wrap(err, "parse length")
	}
	return Length{Value: v, Unit: unit}, nil
}

func lerpLength(from, to Length, t float64) Length {
	if from.Unit != to.Unit {
		panic(fmt.Sprintf("animate: cannot blend %s into %s", from, to))
	}
	return Length{Value: from.Value*(1-t) + to.Value*t, Unit: from.Unit}
}

// Registered style properties.
var (
	// Padding is a layout-affecting Length. Both ends must share a unit.
	Padding = RegisterProp("padding", lerpLength, true).WithParser(ParseLength)

	// ShadowColor blends through HCL space instead of per channel.
	ShadowColor = RegisterProp("shadowColor", func(from, to colorful.Color, t float64) colorful.Color {
		return from.BlendHcl(to, t).Clamped()
	}, false).WithParser(colorful.Hex)
)
