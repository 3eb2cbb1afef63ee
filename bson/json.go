// Copyright (C) MongoDB, Inc. 2017-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package bson

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// MarshalJSON implements the json.Marshaler interface. Documents keep their
// key order. Values without a JSON equivalent use the extended JSON wrappers:
//
//	MinKey, MaxKey     {"$minKey":1}, {"$maxKey":1}
//	BinaryRaw          {"$binary":{"base64":"...","subType":"hh"}}
//	NaN and infinities {"$numberDouble":"NaN"}
func (v Value) MarshalJSON() ([]byte, error) {
	return v.appendJSON(nil)
}

// MarshalJSON implements the json.Marshaler interface.
func (d *Document) MarshalJSON() ([]byte, error) {
	return d.appendJSON(nil)
}

func (v Value) appendJSON(dst []byte) ([]byte, error) {
	switch v.kind {
	case KindNull:
		return append(dst, "null"...), nil
	case KindBoolean:
		return strconv.AppendBool(dst, v.boolean), nil
	case KindInt32, KindInt64:
		return strconv.AppendInt(dst, v.i64, 10), nil
	case KindDouble:
		return appendJSONDouble(dst, v.f64), nil
	case KindString, KindBinaryHex, KindObjectIDHex, KindRegex:
		return appendJSONString(dst, v.str)
	case KindBinaryRaw:
		dst = append(dst, `{"$binary":{"base64":"`...)
		dst = append(dst, base64.StdEncoding.EncodeToString(v.bin)...)
		return append(dst, fmt.Sprintf(`","subType":"%02x"}}`, v.subtype)...), nil
	case KindMinKey:
		return append(dst, `{"$minKey":1}`...), nil
	case KindMaxKey:
		return append(dst, `{"$maxKey":1}`...), nil
	case KindArray:
		var err error
		dst = append(dst, '[')
		for i, elem := range v.arr {
			if i > 0 {
				dst = append(dst, ',')
			}
			dst, err = elem.appendJSON(dst)
			if err != nil {
				return nil, err
			}
		}
		return append(dst, ']'), nil
	case KindDocument:
		return v.doc.appendJSON(dst)
	default:
		return nil, fmt.Errorf("bson: cannot marshal %s to JSON", v.kind)
	}
}

func (d *Document) appendJSON(dst []byte) ([]byte, error) {
	var err error
	dst = append(dst, '{')
	for i, elem := range d.Elements() {
		if i > 0 {
			dst = append(dst, ',')
		}
		dst, err = appendJSONString(dst, elem.Key)
		if err != nil {
			return nil, err
		}
		dst = append(dst, ':')
		dst, err = elem.Value.appendJSON(dst)
		if err != nil {
			return nil, err
		}
	}
	return append(dst, '}'), nil
}

func appendJSONString(dst []byte, s string) ([]byte, error) {
	b, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return append(dst, b...), nil
}

func appendJSONDouble(dst []byte, f float64) []byte {
	switch {
	case math.IsNaN(f):
		return append(dst, `{"$numberDouble":"NaN"}`...)
	case math.IsInf(f, 1):
		return append(dst, `{"$numberDouble":"Infinity"}`...)
	case math.IsInf(f, -1):
		return append(dst, `{"$numberDouble":"-Infinity"}`...)
	}
	if f == math.Trunc(f) && math.Abs(f) < 1e21 {
		// Keep a fractional part so the value reads back as a double.
		return strconv.AppendFloat(dst, f, 'f', 1, 64)
	}
	return strconv.AppendFloat(dst, f, 'g', -1, 64)
}
