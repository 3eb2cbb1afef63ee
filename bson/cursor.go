// Copyright (C) MongoDB, Inc. 2017-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package bson

import (
	"bytes"
	"math"
)

// cursor is a bounds-checked reader over an immutable byte slice. Every read
// checks the remaining length before touching the slice, so pos never passes
// len(buf).
type cursor struct {
	buf []byte
	pos int
}

func newCursor(b []byte) *cursor { return &cursor{buf: b} }

func (c *cursor) remaining() int { return len(c.buf) - c.pos }

func (c *cursor) underrun(need int) *DecodeError {
	err := newDecodeError(ErrBufferUnderrun, c.pos)
	err.Need = need
	return err
}

// require checks that n more bytes can be read.
func (c *cursor) require(n int) error {
	if n < 0 || c.remaining() < n {
		return c.underrun(n)
	}
	return nil
}

func (c *cursor) readUint8() (byte, error) {
	if err := c.require(1); err != nil {
		return 0, err
	}
	b := c.buf[c.pos]
	c.pos++
	return b, nil
}

func (c *cursor) readInt32() (int32, error) {
	if err := c.require(4); err != nil {
		return 0, err
	}
	idx := c.pos
	c.pos += 4
	return int32(c.buf[idx]) | int32(c.buf[idx+1])<<8 | int32(c.buf[idx+2])<<16 | int32(c.buf[idx+3])<<24, nil
}

func (c *cursor) readUint64() (uint64, error) {
	if err := c.require(8); err != nil {
		return 0, err
	}
	idx := c.pos
	c.pos += 8
	return uint64(c.buf[idx]) | uint64(c.buf[idx+1])<<8 | uint64(c.buf[idx+2])<<16 | uint64(c.buf[idx+3])<<24 |
		uint64(c.buf[idx+4])<<32 | uint64(c.buf[idx+5])<<40 | uint64(c.buf[idx+6])<<48 | uint64(c.buf[idx+7])<<56, nil
}

func (c *cursor) readInt64() (int64, error) {
	u64, err := c.readUint64()
	return int64(u64), err
}

func (c *cursor) readDouble() (float64, error) {
	bits, err := c.readUint64()
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(bits), nil
}

// readCString returns the bytes up to, and excluding, the next NUL and
// advances past the NUL.
func (c *cursor) readCString() ([]byte, error) {
	idx := bytes.IndexByte(c.buf[c.pos:], 0x00)
	if idx < 0 {
		err := newDecodeError(ErrMalformedCString, c.pos)
		err.eof = true
		return nil, err
	}
	start := c.pos
	c.pos += idx + 1
	return c.buf[start : start+idx], nil
}

// readFixed returns the next n bytes. The returned slice aliases the input
// and must be copied before it outlives the decode call.
func (c *cursor) readFixed(n int) ([]byte, error) {
	if err := c.require(n); err != nil {
		return nil, err
	}
	start := c.pos
	c.pos += n
	return c.buf[start:c.pos:c.pos], nil
}

// readString reads a length-prefixed, NUL-terminated string. The length
// includes the trailing NUL.
func (c *cursor) readString() (string, error) {
	start := c.pos
	length, err := c.readInt32()
	if err != nil {
		return "", err
	}
	if length < 1 {
		return "", newDecodeError(ErrMalformedCString, start)
	}
	b, err := c.readFixed(int(length))
	if err != nil {
		return "", err
	}
	if b[length-1] != 0x00 {
		return "", newDecodeError(ErrMalformedCString, c.pos-1)
	}
	return string(b[:length-1]), nil
}
