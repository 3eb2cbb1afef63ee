// Copyright (C) MongoDB, Inc. 2017-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package bson

import (
	"errors"
	"strconv"

	"github.com/ikmak/bsonread/internal/optionutil"
	"github.com/ikmak/bsonread/options"
)

// minDocumentSize is the size of an empty document: a 4 byte length and the
// terminator.
const minDocumentSize = 5

// DefaultMaxDepth is the nesting limit used when no MaxDepth is configured.
// The top-level document is depth 1.
const DefaultMaxDepth = 2048

// A Decoder decodes BSON documents into Values. A Decoder is immutable once
// created and may be used from multiple goroutines at the same time.
type Decoder struct {
	strictLength    bool
	strictArrayKeys bool
	maxDepth        int
}

var defaultDecoder = &Decoder{maxDepth: DefaultMaxDepth}

// NewDecoder returns a Decoder configured by opts. Later options override
// earlier ones. A MaxDepth of 0 selects DefaultMaxDepth.
func NewDecoder(opts ...options.Builder[options.DecodeOptions]) (*Decoder, error) {
	args, err := optionutil.NewOptionsFromBuilder[options.DecodeOptions](opts...)
	if err != nil {
		return nil, err
	}
	maxDepth := args.MaxDepth
	if maxDepth == 0 {
		maxDepth = DefaultMaxDepth
	}
	return &Decoder{
		strictLength:    args.StrictLength,
		strictArrayKeys: args.StrictArrayKeys,
		maxDepth:        maxDepth,
	}, nil
}

// Decode decodes the BSON document at the start of b with the default
// options. The result is a Value of KindDocument. On failure the returned
// error is a *DecodeError and no partial value is returned.
func Decode(b []byte) (Value, error) {
	return defaultDecoder.Decode(b)
}

// DecodeArray is the same as Decode, except the top-level document is decoded
// as an array: its keys are discarded and its values are kept in arrival
// order.
func DecodeArray(b []byte) (Value, error) {
	return defaultDecoder.DecodeArray(b)
}

// Decode decodes the BSON document at the start of b.
func (d *Decoder) Decode(b []byte) (Value, error) {
	return d.decode(b, newDocumentSink())
}

// DecodeArray decodes the BSON document at the start of b as an array.
func (d *Decoder) DecodeArray(b []byte) (Value, error) {
	return d.decode(b, newArraySink(d.strictArrayKeys))
}

func (d *Decoder) decode(b []byte, s sink) (Value, error) {
	if len(b) < minDocumentSize {
		return Value{}, newDecodeError(ErrInvalidBuffer, 0)
	}

	ds := &decodeState{Decoder: d, c: newCursor(b)}
	val, err := ds.container(s, 1)
	if err != nil {
		return Value{}, err
	}
	if d.strictLength && ds.c.pos != len(b) {
		return Value{}, newDecodeError(ErrLengthMismatch, ds.c.pos)
	}
	return val, nil
}

// sink accumulates the elements of one document or array.
type sink interface {
	add(key []byte, keyPos int, val Value) error
	value() Value
}

type documentSink struct {
	doc *Document
}

func newDocumentSink() *documentSink { return &documentSink{doc: NewDocument()} }

func (ds *documentSink) add(key []byte, _ int, val Value) error {
	ds.doc.Set(string(key), val)
	return nil
}

func (ds *documentSink) value() Value { return DocumentOf(ds.doc) }

type arraySink struct {
	arr    Array
	strict bool
}

func newArraySink(strict bool) *arraySink { return &arraySink{arr: Array{}, strict: strict} }

func (as *arraySink) add(key []byte, keyPos int, val Value) error {
	if as.strict && string(key) != strconv.Itoa(len(as.arr)) {
		err := newDecodeError(ErrInvalidArrayKey, keyPos)
		err.setKey(string(key))
		return err
	}
	as.arr = append(as.arr, val)
	return nil
}

func (as *arraySink) value() Value { return ArrayOf(as.arr...) }

// decodeState is the state of a single decode call. It is never shared.
type decodeState struct {
	*Decoder
	c *cursor
}

// container decodes a document or array starting at the cursor into s. The
// length prefix is informational: iteration stops at the terminator.
func (ds *decodeState) container(s sink, depth int) (Value, error) {
	c := ds.c
	maxDepth := ds.maxDepth
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	if depth > maxDepth {
		return Value{}, newDecodeError(ErrMaxDepthExceeded, c.pos)
	}

	start := c.pos
	if err := c.require(minDocumentSize); err != nil {
		return Value{}, err
	}
	length, err := c.readInt32()
	if err != nil {
		return Value{}, err
	}
	if length == minDocumentSize && c.remaining() == 1 && c.buf[c.pos] == 0x00 {
		c.pos++
		return s.value(), nil
	}

	for {
		tagPos := c.pos
		tag, err := c.readUint8()
		if err != nil {
			return Value{}, err
		}
		t := Type(tag)
		if t == typeEndOfContainer {
			break
		}
		if !t.IsValid() {
			err := newDecodeError(ErrUnsupportedType, tagPos)
			err.Type = t
			return Value{}, err
		}

		keyPos := c.pos
		key, err := c.readCString()
		if err != nil {
			return Value{}, annotate(err, t, nil)
		}
		val, err := ds.element(t, depth)
		if err != nil {
			return Value{}, annotate(err, t, key)
		}
		if err := s.add(key, keyPos, val); err != nil {
			return Value{}, err
		}
	}

	if ds.strictLength && int(length) != c.pos-start {
		return Value{}, newDecodeError(ErrLengthMismatch, start)
	}
	return s.value(), nil
}

// element decodes the payload of an element of type t. The type tag and key
// have already been consumed.
func (ds *decodeState) element(t Type, depth int) (Value, error) {
	c := ds.c
	switch t {
	case TypeDouble:
		f64, err := c.readDouble()
		if err != nil {
			return Value{}, err
		}
		return Double(f64), nil
	case TypeString:
		s, err := c.readString()
		if err != nil {
			return Value{}, err
		}
		return String(s), nil
	case TypeJavaScript:
		code, err := c.readString()
		if err != nil {
			return Value{}, err
		}
		return JavaScript(code), nil
	case TypeEmbeddedDocument:
		return ds.container(newDocumentSink(), depth+1)
	case TypeArray:
		return ds.container(newArraySink(ds.strictArrayKeys), depth+1)
	case TypeBinary:
		return ds.binary()
	case TypeUndefined:
		return Undefined(), nil
	case TypeNull:
		return Null(), nil
	case TypeObjectID:
		b, err := c.readFixed(12)
		if err != nil {
			return Value{}, err
		}
		var oid [12]byte
		copy(oid[:], b)
		return ObjectIDHex(FormatObjectID(oid)), nil
	case TypeBoolean:
		pos := c.pos
		b, err := c.readUint8()
		if err != nil {
			return Value{}, err
		}
		switch b {
		case 0x00:
			return Boolean(false), nil
		case 0x01:
			return Boolean(true), nil
		default:
			return Value{}, newDecodeError(ErrInvalidBoolean, pos)
		}
	case TypeDateTime, TypeTimestamp, TypeInt64:
		i64, err := c.readInt64()
		if err != nil {
			return Value{}, err
		}
		switch t {
		case TypeDateTime:
			return DateTime(i64), nil
		case TypeTimestamp:
			return Timestamp(i64), nil
		default:
			return Int64(i64), nil
		}
	case TypeRegex:
		pattern, err := c.readCString()
		if err != nil {
			return Value{}, err
		}
		flags, err := c.readCString()
		if err != nil {
			return Value{}, err
		}
		if len(flags) == 0 {
			return Regex("/" + string(pattern)), nil
		}
		return Regex("/" + string(pattern) + "/" + string(flags)), nil
	case TypeInt32:
		i32, err := c.readInt32()
		if err != nil {
			return Value{}, err
		}
		return Int32(i32), nil
	case TypeMinKey:
		return MinKey(), nil
	case TypeMaxKey:
		return MaxKey(), nil
	default:
		err := newDecodeError(ErrUnsupportedType, c.pos)
		err.Type = t
		return Value{}, err
	}
}

// binary decodes a binary payload: an int32 length, a subtype byte and the
// payload. UUID and MD5 payloads of 16 bytes are rendered as hex.
func (ds *decodeState) binary() (Value, error) {
	c := ds.c
	length, err := c.readInt32()
	if err != nil {
		return Value{}, err
	}
	subtype, err := c.readUint8()
	if err != nil {
		return Value{}, err
	}
	b, err := c.readFixed(int(length))
	if err != nil {
		return Value{}, err
	}
	if s, ok := formatBinary(subtype, b); ok {
		return BinaryHex(subtype, s), nil
	}
	data := make([]byte, len(b))
	copy(data, b)
	return BinaryRaw(subtype, data), nil
}

// annotate records the element type and key on a DecodeError that does not
// carry them yet, so the innermost element is reported.
func annotate(err error, t Type, key []byte) error {
	var de *DecodeError
	if !errors.As(err, &de) {
		return err
	}
	if de.Type == 0 {
		de.Type = t
	}
	if !de.keySet && key != nil {
		de.setKey(string(key))
	}
	return err
}
