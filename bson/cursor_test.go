// Copyright (C) MongoDB, Inc. 2017-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package bson

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCursor(t *testing.T) {
	t.Run("readUint8", func(t *testing.T) {
		c := newCursor([]byte{0xAB})
		b, err := c.readUint8()
		require.NoError(t, err)
		assert.Equal(t, byte(0xAB), b)
		assert.Equal(t, 1, c.pos)

		_, err = c.readUint8()
		assert.True(t, errors.Is(err, ErrBufferUnderrun))
		assert.Equal(t, 1, c.pos)
	})
	t.Run("readInt32", func(t *testing.T) {
		c := newCursor([]byte{0xFE, 0xFF, 0xFF, 0xFF, 0x01, 0x02, 0x03})
		i32, err := c.readInt32()
		require.NoError(t, err)
		assert.Equal(t, int32(-2), i32)

		_, err = c.readInt32()
		var de *DecodeError
		require.True(t, errors.As(err, &de))
		assert.Equal(t, ErrBufferUnderrun, de.Kind)
		assert.Equal(t, 4, de.Offset)
		assert.Equal(t, 4, de.Need)
		assert.Equal(t, 4, c.pos, "a failed read does not advance")
	})
	t.Run("readInt64", func(t *testing.T) {
		c := newCursor([]byte{0x01, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x80})
		i64, err := c.readInt64()
		require.NoError(t, err)
		assert.Equal(t, int64(math.MinInt64+1), i64)

		_, err = newCursor(make([]byte, 7)).readInt64()
		assert.True(t, errors.Is(err, ErrBufferUnderrun))
	})
	t.Run("readDouble", func(t *testing.T) {
		bits := math.Float64bits(-1.5)
		b := make([]byte, 8)
		for i := range b {
			b[i] = byte(bits >> (8 * i))
		}
		f64, err := newCursor(b).readDouble()
		require.NoError(t, err)
		assert.Equal(t, -1.5, f64)

		_, err = newCursor(b[:3]).readDouble()
		assert.True(t, errors.Is(err, ErrBufferUnderrun))
	})
	t.Run("readCString", func(t *testing.T) {
		c := newCursor([]byte{'f', 'o', 'o', 0x00, 0x00, 'x'})
		s, err := c.readCString()
		require.NoError(t, err)
		assert.Equal(t, []byte("foo"), s)
		assert.Equal(t, 4, c.pos)

		s, err = c.readCString()
		require.NoError(t, err)
		assert.Empty(t, s)
		assert.Equal(t, 5, c.pos)

		_, err = c.readCString()
		assert.True(t, errors.Is(err, ErrMalformedCString))
		assert.True(t, errors.Is(err, ErrBufferUnderrun))
		assert.Equal(t, 5, c.pos)
	})
	t.Run("readFixed", func(t *testing.T) {
		c := newCursor([]byte{0x01, 0x02, 0x03})
		b, err := c.readFixed(2)
		require.NoError(t, err)
		assert.Equal(t, []byte{0x01, 0x02}, b)

		_, err = c.readFixed(2)
		assert.True(t, errors.Is(err, ErrBufferUnderrun))
		_, err = c.readFixed(-1)
		assert.True(t, errors.Is(err, ErrBufferUnderrun))

		b, err = c.readFixed(0)
		require.NoError(t, err)
		assert.Empty(t, b)
		assert.Equal(t, 1, c.remaining())
	})
	t.Run("readString", func(t *testing.T) {
		testCases := []struct {
			name string
			b    []byte
			want string
			kind ErrorKind
		}{
			{"ok", []byte{0x03, 0x00, 0x00, 0x00, 'h', 'i', 0x00}, "hi", 0},
			{"empty", []byte{0x01, 0x00, 0x00, 0x00, 0x00}, "", 0},
			{"embedded nul", []byte{0x04, 0x00, 0x00, 0x00, 'a', 0x00, 'b', 0x00}, "a\x00b", 0},
			{"zero length", []byte{0x00, 0x00, 0x00, 0x00}, "", ErrMalformedCString},
			{"negative length", []byte{0xFF, 0xFF, 0xFF, 0xFF}, "", ErrMalformedCString},
			{"no terminator", []byte{0x02, 0x00, 0x00, 0x00, 'h', 'i'}, "", ErrMalformedCString},
			{"too long", []byte{0x09, 0x00, 0x00, 0x00, 'h', 'i', 0x00}, "", ErrBufferUnderrun},
			{"short length", []byte{0x09, 0x00}, "", ErrBufferUnderrun},
		}
		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				s, err := newCursor(tc.b).readString()
				if tc.kind == 0 {
					require.NoError(t, err)
					assert.Equal(t, tc.want, s)
					return
				}
				assert.True(t, errors.Is(err, tc.kind), "got %v", err)
			})
		}
	})
}
