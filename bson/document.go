// Copyright (C) MongoDB, Inc. 2017-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package bson

import "strconv"

// E is a single key and host value of a D.
type E struct {
	Key   string
	Value any
}

// D is the host form of a decoded document: an ordered slice of E.
//
//	bson.D{{"hello", "world"}, {"pi", 3.14159}}
type D []E

// Map creates a map from the elements of the D. Nested documents are left as
// D.
func (d D) Map() map[string]any {
	m := make(map[string]any, len(d))
	for _, e := range d {
		m[e.Key] = e.Value
	}
	return m
}

// Element is a key and decoded value of a Document.
type Element struct {
	Key   string
	Value Value
}

// Document is an ordered mapping from field name to decoded value. Keys keep
// the order in which they were first set; setting an existing key replaces
// its value in place.
type Document struct {
	elems []Element
	index map[string]int
}

// NewDocument creates a Document holding elems. Duplicate keys follow the
// same last-write-wins rule as Set.
func NewDocument(elems ...Element) *Document {
	doc := &Document{
		elems: make([]Element, 0, len(elems)),
		index: make(map[string]int, len(elems)),
	}
	for _, elem := range elems {
		doc.Set(elem.Key, elem.Value)
	}
	return doc
}

// Len returns the number of distinct keys in the document.
func (d *Document) Len() int {
	if d == nil {
		return 0
	}
	return len(d.elems)
}

// Set stores val under key. A new key is appended; an existing key keeps its
// position and takes the new value.
func (d *Document) Set(key string, val Value) *Document {
	if d.index == nil {
		d.index = make(map[string]int)
	}
	if i, ok := d.index[key]; ok {
		d.elems[i].Value = val
		return d
	}
	d.index[key] = len(d.elems)
	d.elems = append(d.elems, Element{Key: key, Value: val})
	return d
}

// Lookup returns the value stored under key.
func (d *Document) Lookup(key string) (Value, bool) {
	if d == nil {
		return Value{}, false
	}
	i, ok := d.index[key]
	if !ok {
		return Value{}, false
	}
	return d.elems[i].Value, true
}

// LookupPath searches the document, potentially recursively, for the given
// path. Intermediate keys must name documents or arrays; array elements are
// addressed by their decimal position.
func (d *Document) LookupPath(path ...string) (Value, bool) {
	if len(path) == 0 {
		return Value{}, false
	}
	val, ok := d.Lookup(path[0])
	if !ok {
		return Value{}, false
	}
	for _, key := range path[1:] {
		switch val.Kind() {
		case KindDocument:
			val, ok = val.doc.Lookup(key)
			if !ok {
				return Value{}, false
			}
		case KindArray:
			i, err := strconv.Atoi(key)
			if err != nil || i < 0 || i >= len(val.arr) {
				return Value{}, false
			}
			val = val.arr[i]
		default:
			return Value{}, false
		}
	}
	return val, true
}

// Keys returns the keys of the document in order.
func (d *Document) Keys() []string {
	if d == nil {
		return nil
	}
	keys := make([]string, 0, len(d.elems))
	for _, elem := range d.elems {
		keys = append(keys, elem.Key)
	}
	return keys
}

// Elements returns a copy of the elements of the document in order.
func (d *Document) Elements() []Element {
	if d == nil {
		return nil
	}
	elems := make([]Element, len(d.elems))
	copy(elems, d.elems)
	return elems
}

// D converts the document into its host form.
func (d *Document) D() D {
	out := make(D, 0, d.Len())
	if d == nil {
		return out
	}
	for _, elem := range d.elems {
		out = append(out, E{Key: elem.Key, Value: elem.Value.Interface()})
	}
	return out
}

// Map converts the document into an unordered map of host values. Nested
// documents are converted to maps as well.
func (d *Document) Map() map[string]any {
	m := make(map[string]any, d.Len())
	if d == nil {
		return m
	}
	for _, elem := range d.elems {
		m[elem.Key] = mapValue(elem.Value)
	}
	return m
}

func mapValue(v Value) any {
	switch v.Kind() {
	case KindDocument:
		return v.doc.Map()
	case KindArray:
		out := make([]any, 0, len(v.arr))
		for _, elem := range v.arr {
			out = append(out, mapValue(elem))
		}
		return out
	default:
		return v.Interface()
	}
}

// Equal reports whether d and d2 hold the same keys in the same order with
// equal values. A nil document equals an empty one.
func (d *Document) Equal(d2 *Document) bool {
	if d.Len() != d2.Len() {
		return false
	}
	for i := 0; i < d.Len(); i++ {
		if d.elems[i].Key != d2.elems[i].Key || !d.elems[i].Value.Equal(d2.elems[i].Value) {
			return false
		}
	}
	return true
}
