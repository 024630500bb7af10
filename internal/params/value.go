package params

import "strconv"

// Kind identifies the shape a Value holds.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

// Field is one ordered key/value entry of an object Value.
type Field struct {
	Key string
	Val Value
}

// Value is an immutable node of a parameter tree. The zero value is null.
type Value struct {
	kind Kind
	b    bool
	num  string // number as originally written
	str  string
	arr  []Value
	obj  []Field
}

// Null returns the null value.
func Null() Value { return Value{} }

// Bool returns a boolean value.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// String returns a string value.
func String(s string) Value { return Value{kind: KindString, str: s} }

// Int returns a number value holding an integer.
func Int(i int) Value { return Value{kind: KindNumber, num: strconv.Itoa(i)} }

// Float returns a number value. Whole floats render without a decimal
// point, matching how JSON sources write them.
func Float(f float64) Value {
	return Value{kind: KindNumber, num: strconv.FormatFloat(f, 'f', -1, 64)}
}

// Number returns a number value from its literal text (e.g. "7.5").
func Number(text string) Value { return Value{kind: KindNumber, num: text} }

// Array returns an array value.
func Array(items ...Value) Value { return Value{kind: KindArray, arr: items} }

// Object returns an object value. Field order is preserved.
func Object(fields ...Field) Value { return Value{kind: KindObject, obj: fields} }

// KV builds one object field.
func KV(key string, v Value) Field { return Field{Key: key, Val: v} }

// Kind reports the shape of v.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is null.
func (v Value) IsNull() bool { return v.kind == KindNull }

// Text renders a scalar value as a string: strings verbatim, numbers by
// their original text, bools as "true"/"false". Null, arrays and objects
// have no text form.
func (v Value) Text() (string, bool) {
	switch v.kind {
	case KindString:
		return v.str, true
	case KindNumber:
		return v.num, true
	case KindBool:
		if v.b {
			return "true", true
		}
		return "false", true
	}
	return "", false
}

// Get returns the value of the first field named key. Only objects have
// fields.
func (v Value) Get(key string) (Value, bool) {
	if v.kind != KindObject {
		return Value{}, false
	}
	for _, f := range v.obj {
		if f.Key == key {
			return f.Val, true
		}
	}
	return Value{}, false
}

// Fields returns the ordered fields of an object value. Callers must not
// modify the returned slice.
func (v Value) Fields() []Field {
	if v.kind != KindObject {
		return nil
	}
	return v.obj
}

// Items returns the elements of an array value. Callers must not modify
// the returned slice.
func (v Value) Items() []Value {
	if v.kind != KindArray {
		return nil
	}
	return v.arr
}

// Len returns the number of fields or elements of a composite value, and
// zero for scalars.
func (v Value) Len() int {
	switch v.kind {
	case KindObject:
		return len(v.obj)
	case KindArray:
		return len(v.arr)
	}
	return 0
}
