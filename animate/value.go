package animate

import (
	"fmt"
	"reflect"
	"strconv"
)

// ValueTag identifies the active variant of a Value.
type ValueTag uint8

const (
	TagFloat ValueTag = iota
	TagColor
	TagDynamic
)

func (t ValueTag) String() string {
	switch t {
	case TagFloat:
		return "float"
	case TagColor:
		return "color"
	case TagDynamic:
		return "dynamic"
	}
	return "tag(" + strconv.Itoa(int(t)) + ")"
}

// Value is a float, a Color or a dynamic style value owned by a registered
// StyleProp. Values of different tags never mix: every accessor and every
// interpolation panics on a mismatch.
type Value struct {
	tag  ValueTag
	f    float64
	c    Color
	dyn  any
	prop *StyleProp
}

// FloatValue wraps a float.
func FloatValue(f float64) Value {
	return Value{tag: TagFloat, f: f}
}

// ColorValue wraps a Color.
func ColorValue(c Color) Value {
	return Value{tag: TagColor, c: c}
}

// DynamicValue wraps v as a value of the style property p. Prefer
// Prop[T].Value, which checks the payload type at compile time.
func DynamicValue(p *StyleProp, v any) Value {
	if p == nil {
		panic("animate: dynamic value without a style property")
	}
	return Value{tag: TagDynamic, dyn: v, prop: p}
}

// Tag reports the active variant.
func (v Value) Tag() ValueTag {
	return v.tag
}

// Prop returns the style property of a dynamic value, nil otherwise.
func (v Value) Prop() *StyleProp {
	return v.prop
}

// AsFloat returns the float payload. It panics unless v is a float.
func (v Value) AsFloat() float64 {
	if v.tag != TagFloat {
		panic(mismatch("AsFloat", TagFloat, v.tag))
	}
	return v.f
}

// AsColor returns the color payload. It panics unless v is a color.
func (v Value) AsColor() Color {
	if v.tag != TagColor {
		panic(mismatch("AsColor", TagColor, v.tag))
	}
	return v.c
}

// AsDynamic returns the payload of a dynamic value. It panics if v is not
// dynamic or holds something other than a T.
func AsDynamic[T any](v Value) T {
	if v.tag != TagDynamic {
		panic(mismatch("AsDynamic", TagDynamic, v.tag))
	}
	out, ok := v.dyn.(T)
	if !ok {
		var want T
		panic(fmt.Sprintf("animate: AsDynamic: %s holds %T, not %T", v.prop.name, v.dyn, want))
	}
	return out
}

func (v Value) String() string {
	switch v.tag {
	case TagFloat:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case TagColor:
		return v.c.String()
	default:
		return fmt.Sprint(v.dyn)
	}
}

// mustMatch panics unless v and o can be interpolated against each other.
func (v Value) mustMatch(o Value) {
	if v.tag != o.tag {
		panic(fmt.Sprintf("animate: cannot combine %s value with %s value", v.tag, o.tag))
	}
	if v.tag != TagDynamic {
		return
	}
	if v.prop != o.prop {
		panic(fmt.Sprintf("animate: cannot combine %s value with %s value", v.prop.name, o.prop.name))
	}
	if reflect.TypeOf(v.dyn) != reflect.TypeOf(o.dyn) {
		panic(fmt.Sprintf("animate: %s: cannot combine %T with %T", v.prop.name, v.dyn, o.dyn))
	}
}

// same reports whether two values are known to be identical. Dynamic values
// are never considered identical.
func (v Value) same(o Value) bool {
	switch v.tag {
	case TagFloat:
		return o.tag == TagFloat && v.f == o.f
	case TagColor:
		return o.tag == TagColor && v.c == o.c
	}
	return false
}

func mismatch(op string, want, got ValueTag) string {
	return fmt.Sprintf("animate: %s called on %s value, want %s", op, got, want)
}
