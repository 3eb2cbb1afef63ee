// Copyright (C) MongoDB, Inc. 2017-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package bson

import (
	"bytes"
	"math"
	"strconv"
)

// Kind is the decoded shape of a Value. Several BSON types can decode to the
// same Kind; the wire type is available from Value.Type.
type Kind uint8

// The decoded kinds.
const (
	KindNull Kind = iota
	KindBoolean
	KindInt32
	KindInt64
	KindDouble
	KindString
	KindBinaryHex
	KindBinaryRaw
	KindObjectIDHex
	KindRegex
	KindMinKey
	KindMaxKey
	KindArray
	KindDocument
)

var kindNames = [...]string{
	KindNull:        "null",
	KindBoolean:     "boolean",
	KindInt32:       "int32",
	KindInt64:       "int64",
	KindDouble:      "double",
	KindString:      "string",
	KindBinaryHex:   "binary hex",
	KindBinaryRaw:   "binary",
	KindObjectIDHex: "objectID hex",
	KindRegex:       "regex",
	KindMinKey:      "min key",
	KindMaxKey:      "max key",
	KindArray:       "array",
	KindDocument:    "document",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "kind(" + strconv.Itoa(int(k)) + ")"
}

// KindError specifies that an accessor for one kind was called on a Value of
// another kind.
type KindError struct {
	Method string
	Kind   Kind
}

// Error implements the error interface.
func (ke KindError) Error() string {
	return "call of " + ke.Method + " on " + ke.Kind.String() + " value"
}

// MinKeySentinel is the host representation of a BSON MinKey.
type MinKeySentinel struct{}

// MaxKeySentinel is the host representation of a BSON MaxKey.
type MaxKeySentinel struct{}

// Array is an ordered sequence of decoded values.
type Array []Value

// Value is a decoded BSON value. Exactly one Kind is active. The zero Value is
// a null.
type Value struct {
	t    Type
	kind Kind

	boolean bool
	i64     int64
	f64     float64
	str     string
	subtype byte
	bin     []byte
	arr     Array
	doc     *Document
}

// Null returns a BSON null value.
func Null() Value { return Value{t: TypeNull, kind: KindNull} }

// Undefined returns a value decoded from the deprecated undefined type. It is
// a null value whose Type is TypeUndefined.
func Undefined() Value { return Value{t: TypeUndefined, kind: KindNull} }

// Boolean returns a boolean value.
func Boolean(b bool) Value { return Value{t: TypeBoolean, kind: KindBoolean, boolean: b} }

// Int32 returns a 32-bit integer value.
func Int32(i32 int32) Value { return Value{t: TypeInt32, kind: KindInt32, i64: int64(i32)} }

// Int64 returns a 64-bit integer value.
func Int64(i64 int64) Value { return Value{t: TypeInt64, kind: KindInt64, i64: i64} }

// DateTime returns a 64-bit integer value holding milliseconds since the Unix
// epoch, whose Type is TypeDateTime.
func DateTime(dt int64) Value { return Value{t: TypeDateTime, kind: KindInt64, i64: dt} }

// Timestamp returns a 64-bit integer value holding a raw BSON timestamp,
// whose Type is TypeTimestamp. The increment is the low 32 bits and the time
// is the high 32 bits.
func Timestamp(ts int64) Value { return Value{t: TypeTimestamp, kind: KindInt64, i64: ts} }

// Double returns a double value.
func Double(f64 float64) Value { return Value{t: TypeDouble, kind: KindDouble, f64: f64} }

// String returns a string value.
func String(s string) Value { return Value{t: TypeString, kind: KindString, str: s} }

// JavaScript returns a string value whose Type is TypeJavaScript.
func JavaScript(code string) Value { return Value{t: TypeJavaScript, kind: KindString, str: code} }

// BinaryHex returns a binary value already rendered as hex.
func BinaryHex(subtype byte, s string) Value {
	return Value{t: TypeBinary, kind: KindBinaryHex, subtype: subtype, str: s}
}

// BinaryRaw returns a binary value holding the payload bytes unchanged.
func BinaryRaw(subtype byte, b []byte) Value {
	return Value{t: TypeBinary, kind: KindBinaryRaw, subtype: subtype, bin: b}
}

// ObjectIDHex returns an ObjectID value rendered as 24 hex characters.
func ObjectIDHex(s string) Value { return Value{t: TypeObjectID, kind: KindObjectIDHex, str: s} }

// Regex returns a regular expression value in its combined "/pattern/flags"
// form.
func Regex(s string) Value { return Value{t: TypeRegex, kind: KindRegex, str: s} }

// MinKey returns the MinKey sentinel value.
func MinKey() Value { return Value{t: TypeMinKey, kind: KindMinKey} }

// MaxKey returns the MaxKey sentinel value.
func MaxKey() Value { return Value{t: TypeMaxKey, kind: KindMaxKey} }

// ArrayOf returns an array value holding vals in order.
func ArrayOf(vals ...Value) Value {
	if vals == nil {
		vals = Array{}
	}
	return Value{t: TypeArray, kind: KindArray, arr: vals}
}

// DocumentOf returns a document value. A nil doc is an empty document.
func DocumentOf(doc *Document) Value {
	if doc == nil {
		doc = NewDocument()
	}
	return Value{t: TypeEmbeddedDocument, kind: KindDocument, doc: doc}
}

// Kind returns the decoded kind of v.
func (v Value) Kind() Kind { return v.kind }

// Type returns the BSON type v was decoded from. It is 0 for the zero Value.
func (v Value) Type() Type { return v.t }

// IsNull reports whether v is a null, including a decoded undefined.
func (v Value) IsNull() bool { return v.kind == KindNull }

// Boolean returns the boolean value. It panics if v is not a boolean.
func (v Value) Boolean() bool {
	b, ok := v.BooleanOK()
	if !ok {
		panic(KindError{"bson.Value.Boolean", v.kind})
	}
	return b
}

// BooleanOK is the same as Boolean, except it returns a boolean instead of
// panicking.
func (v Value) BooleanOK() (bool, bool) {
	if v.kind != KindBoolean {
		return false, false
	}
	return v.boolean, true
}

// Int32 returns the int32 value. It panics if v is not an int32.
func (v Value) Int32() int32 {
	i32, ok := v.Int32OK()
	if !ok {
		panic(KindError{"bson.Value.Int32", v.kind})
	}
	return i32
}

// Int32OK is the same as Int32, except it returns a boolean instead of
// panicking.
func (v Value) Int32OK() (int32, bool) {
	if v.kind != KindInt32 {
		return 0, false
	}
	return int32(v.i64), true
}

// Int64 returns the int64 value of a 64-bit integer, datetime or timestamp.
// It panics if v is not an int64.
func (v Value) Int64() int64 {
	i64, ok := v.Int64OK()
	if !ok {
		panic(KindError{"bson.Value.Int64", v.kind})
	}
	return i64
}

// Int64OK is the same as Int64, except it returns a boolean instead of
// panicking.
func (v Value) Int64OK() (int64, bool) {
	if v.kind != KindInt64 {
		return 0, false
	}
	return v.i64, true
}

// Double returns the float64 value. It panics if v is not a double.
func (v Value) Double() float64 {
	f64, ok := v.DoubleOK()
	if !ok {
		panic(KindError{"bson.Value.Double", v.kind})
	}
	return f64
}

// DoubleOK is the same as Double, except it returns a boolean instead of
// panicking.
func (v Value) DoubleOK() (float64, bool) {
	if v.kind != KindDouble {
		return 0, false
	}
	return v.f64, true
}

// StringValue returns the text of a string, hex binary, hex ObjectID or regex
// value. It panics for any other kind.
func (v Value) StringValue() string {
	s, ok := v.StringValueOK()
	if !ok {
		panic(KindError{"bson.Value.StringValue", v.kind})
	}
	return s
}

// StringValueOK is the same as StringValue, except it returns a boolean
// instead of panicking.
func (v Value) StringValueOK() (string, bool) {
	switch v.kind {
	case KindString, KindBinaryHex, KindObjectIDHex, KindRegex:
		return v.str, true
	default:
		return "", false
	}
}

// Binary returns the subtype and payload of a raw binary value. It panics if
// v is not a raw binary.
func (v Value) Binary() (subtype byte, data []byte) {
	subtype, data, ok := v.BinaryOK()
	if !ok {
		panic(KindError{"bson.Value.Binary", v.kind})
	}
	return subtype, data
}

// BinaryOK is the same as Binary, except it returns a boolean instead of
// panicking.
func (v Value) BinaryOK() (subtype byte, data []byte, ok bool) {
	if v.kind != KindBinaryRaw {
		return 0x00, nil, false
	}
	return v.subtype, v.bin, true
}

// Subtype returns the binary subtype of a hex or raw binary value, and 0 for
// every other kind.
func (v Value) Subtype() byte { return v.subtype }

// Array returns the elements of an array value. It panics if v is not an
// array.
func (v Value) Array() Array {
	arr, ok := v.ArrayOK()
	if !ok {
		panic(KindError{"bson.Value.Array", v.kind})
	}
	return arr
}

// ArrayOK is the same as Array, except it returns a boolean instead of
// panicking.
func (v Value) ArrayOK() (Array, bool) {
	if v.kind != KindArray {
		return nil, false
	}
	return v.arr, true
}

// Document returns the document of a document value. It panics if v is not a
// document.
func (v Value) Document() *Document {
	doc, ok := v.DocumentOK()
	if !ok {
		panic(KindError{"bson.Value.Document", v.kind})
	}
	return doc
}

// DocumentOK is the same as Document, except it returns a boolean instead of
// panicking.
func (v Value) DocumentOK() (*Document, bool) {
	if v.kind != KindDocument {
		return nil, false
	}
	return v.doc, true
}

// Interface returns v as plain Go values:
//
//	Null                                  nil
//	Boolean                               bool
//	Int32                                 int32
//	Int64                                 int64
//	Double                                float64
//	String, BinaryHex, ObjectIDHex, Regex string
//	BinaryRaw                             []byte
//	MinKey, MaxKey                        MinKeySentinel{}, MaxKeySentinel{}
//	Array                                 []any
//	Document                              D
func (v Value) Interface() any {
	switch v.kind {
	case KindBoolean:
		return v.boolean
	case KindInt32:
		return int32(v.i64)
	case KindInt64:
		return v.i64
	case KindDouble:
		return v.f64
	case KindString, KindBinaryHex, KindObjectIDHex, KindRegex:
		return v.str
	case KindBinaryRaw:
		return v.bin
	case KindMinKey:
		return MinKeySentinel{}
	case KindMaxKey:
		return MaxKeySentinel{}
	case KindArray:
		out := make([]any, 0, len(v.arr))
		for _, elem := range v.arr {
			out = append(out, elem.Interface())
		}
		return out
	case KindDocument:
		return v.doc.D()
	default:
		return nil
	}
}

// Equal reports whether v and v2 hold the same kind and the same content.
// The wire type is not compared, so a DateTime and an Int64 holding the same
// number are equal. Doubles are compared bitwise so NaN equals NaN.
func (v Value) Equal(v2 Value) bool {
	if v.kind != v2.kind {
		return false
	}
	switch v.kind {
	case KindNull, KindMinKey, KindMaxKey:
		return true
	case KindBoolean:
		return v.boolean == v2.boolean
	case KindInt32, KindInt64:
		return v.i64 == v2.i64
	case KindDouble:
		return math.Float64bits(v.f64) == math.Float64bits(v2.f64)
	case KindString, KindObjectIDHex, KindRegex:
		return v.str == v2.str
	case KindBinaryHex:
		return v.subtype == v2.subtype && v.str == v2.str
	case KindBinaryRaw:
		return v.subtype == v2.subtype && bytes.Equal(v.bin, v2.bin)
	case KindArray:
		if len(v.arr) != len(v2.arr) {
			return false
		}
		for i := range v.arr {
			if !v.arr[i].Equal(v2.arr[i]) {
				return false
			}
		}
		return true
	case KindDocument:
		return v.doc.Equal(v2.doc)
	default:
		return false
	}
}

// String implements the fmt.Stringer interface. It returns the JSON form of
// v, see MarshalJSON.
func (v Value) String() string {
	b, err := v.MarshalJSON()
	if err != nil {
		return "<" + err.Error() + ">"
	}
	return string(b)
}
