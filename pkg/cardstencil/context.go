package cardstencil

import (
	"fmt"
	"reflect"
)

// Kind identifies which case of the Value variant is populated.
type Kind uint8

const (
	KindAbsent Kind = iota
	KindScalar
	KindSequence
	KindMapping
)

func (k Kind) String() string {
	switch k {
	case KindAbsent:
		return "absent"
	case KindScalar:
		return "scalar"
	case KindSequence:
		return "sequence"
	case KindMapping:
		return "mapping"
	default:
		return "unknown"
	}
}

// Context resolves names to values. Lookup returns Absent() for names that
// are not present, never a zero Value of another kind.
type Context interface {
	Lookup(name string) Value
}

// ContextFunc adapts a function to the Context interface.
type ContextFunc func(name string) Value

func (f ContextFunc) Lookup(name string) Value { return f(name) }

// FieldMap is the usual rendering context: note field names mapped to their
// values. Values may be strings, numbers, booleans, slices, maps, structs or
// anything else accepted by ValueOf.
//
// Example:
//
//	data := FieldMap{
//	    "Front": "Capital of France?",
//	    "Text":  "{{c1::Paris::capital}} is in {{c2::France}}",
//	    "Tags":  []string{"geo", "europe"},
//	}
type FieldMap map[string]interface{}

func (m FieldMap) Lookup(name string) Value {
	v, ok := m[name]
	if !ok {
		return Absent()
	}
	return ValueOf(v)
}

// Value is a context value resolved once into one of three cases: scalar,
// ordered sequence, or keyed mapping. The zero Value is the absent sentinel.
type Value struct {
	kind  Kind
	raw   interface{}
	items []Value
	ctx   Context
}

// Absent returns the sentinel for a name that is not present.
func Absent() Value {
	return Value{}
}

// Scalar wraps v as a scalar without inspecting it.
func Scalar(v interface{}) Value {
	return Value{kind: KindScalar, raw: v}
}

// Sequence builds a sequence value from already resolved items.
func Sequence(items ...Value) Value {
	return Value{kind: KindSequence, raw: items, items: items}
}

// Mapping wraps a Context as a mapping value.
func Mapping(ctx Context) Value {
	return Value{kind: KindMapping, raw: ctx, ctx: ctx}
}

// ValueOf resolves a Go value into the Value variant. Slices and arrays
// become sequences (except []byte, which is text), string-keyed maps,
// structs and Context implementations become mappings, everything else is a
// scalar. A nil interface is a present, falsy scalar.
func ValueOf(v interface{}) Value {
	switch t := v.(type) {
	case Value:
		return t
	case nil:
		return Scalar(nil)
	case string, bool, int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64, float32, float64:
		return Scalar(t)
	case []byte:
		return Scalar(string(t))
	case Context:
		return Value{kind: KindMapping, raw: t, ctx: t}
	case map[string]interface{}:
		return Value{kind: KindMapping, raw: t, ctx: FieldMap(t)}
	case []interface{}:
		items := make([]Value, len(t))
		for i, item := range t {
			items[i] = ValueOf(item)
		}
		return Value{kind: KindSequence, raw: t, items: items}
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		items := make([]Value, rv.Len())
		for i := range items {
			items[i] = ValueOf(rv.Index(i).Interface())
		}
		return Value{kind: KindSequence, raw: v, items: items}
	case reflect.Map:
		if rv.Type().Key().Kind() == reflect.String {
			return Value{kind: KindMapping, raw: v, ctx: mapContext{rv}}
		}
	case reflect.Struct:
		return Value{kind: KindMapping, raw: v, ctx: structContext{rv}}
	case reflect.Ptr, reflect.Interface:
		if rv.IsNil() {
			return Scalar(nil)
		}
		return ValueOf(rv.Elem().Interface())
	}
	return Scalar(v)
}

func (v Value) Kind() Kind { return v.kind }

func (v Value) IsAbsent() bool { return v.kind == KindAbsent }

// Raw returns the Go value the Value was resolved from.
func (v Value) Raw() interface{} { return v.raw }

// Items returns the elements of a sequence, or nil for other kinds.
func (v Value) Items() []Value { return v.items }

// Lookup resolves name against a mapping. Scalars, sequences and the absent
// sentinel have no keys.
func (v Value) Lookup(name string) Value {
	if v.kind != KindMapping || v.ctx == nil {
		return Absent()
	}
	return v.ctx.Lookup(name)
}

// Truthy reports whether v counts as true for a section.
func (v Value) Truthy() bool {
	switch v.kind {
	case KindScalar:
		return scalarTruthy(v.raw)
	case KindSequence:
		return len(v.items) > 0
	case KindMapping:
		return mappingTruthy(v.ctx)
	default:
		return false
	}
}

// mappingTruthy reports false for maps without keys. Structs and custom
// contexts cannot be enumerated and always count as true.
func mappingTruthy(ctx Context) bool {
	switch c := ctx.(type) {
	case nil:
		return false
	case FieldMap:
		return len(c) > 0
	case mapContext:
		return c.rv.Len() > 0
	default:
		return true
	}
}

// String renders v as template output.
func (v Value) String() string {
	switch v.kind {
	case KindAbsent:
		return ""
	case KindScalar:
		switch t := v.raw.(type) {
		case nil:
			return ""
		case string:
			return t
		default:
			return fmt.Sprint(t)
		}
	default:
		return fmt.Sprint(v.raw)
	}
}

// isIntegerZero reports whether v is a scalar integer equal to zero. The raw
// modifier prints such values instead of treating them as empty.
func (v Value) isIntegerZero() bool {
	if v.kind != KindScalar || v.raw == nil {
		return false
	}
	rv := reflect.ValueOf(v.raw)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return rv.Uint() == 0
	}
	return false
}

func scalarTruthy(raw interface{}) bool {
	if raw == nil {
		return false
	}
	rv := reflect.ValueOf(raw)
	switch rv.Kind() {
	case reflect.Bool:
		return rv.Bool()
	case reflect.String:
		return rv.Len() > 0
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int() != 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return rv.Uint() != 0
	case reflect.Float32, reflect.Float64:
		return rv.Float() != 0
	}
	return true
}

type mapContext struct {
	rv reflect.Value
}

func (m mapContext) Lookup(name string) Value {
	key := reflect.ValueOf(name).Convert(m.rv.Type().Key())
	v := m.rv.MapIndex(key)
	if !v.IsValid() {
		return Absent()
	}
	return ValueOf(v.Interface())
}

// structContext looks names up as attributes: the exported field with that
// name first, then a field tagged `card:"name"`.
type structContext struct {
	rv reflect.Value
}

func (s structContext) Lookup(name string) Value {
	t := s.rv.Type()
	if sf, ok := t.FieldByName(name); ok && sf.IsExported() {
		return ValueOf(s.rv.FieldByIndex(sf.Index).Interface())
	}
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if sf.IsExported() && sf.Tag.Get("card") == name {
			return ValueOf(s.rv.Field(i).Interface())
		}
	}
	return Absent()
}
