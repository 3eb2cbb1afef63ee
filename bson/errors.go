// Copyright (C) MongoDB, Inc. 2017-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package bson

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/go-stack/stack"
)

// ErrorKind classifies a decoding failure. Each ErrorKind is itself an error,
// so callers can test a returned error with errors.Is:
//
//	if errors.Is(err, bson.ErrBufferUnderrun) { ... }
type ErrorKind uint8

// The kinds of decoding failure.
const (
	// ErrInvalidBuffer indicates the input is absent or shorter than the
	// smallest possible document.
	ErrInvalidBuffer ErrorKind = iota + 1
	// ErrBufferUnderrun indicates a read required more bytes than remain.
	ErrBufferUnderrun
	// ErrMalformedCString indicates a field name or string payload is not
	// NUL terminated.
	ErrMalformedCString
	// ErrUnsupportedType indicates a type tag this package does not decode.
	ErrUnsupportedType
	// ErrInvalidBoolean indicates a boolean byte other than 0x00 or 0x01.
	ErrInvalidBoolean
	// ErrLengthMismatch indicates a declared container length that differs
	// from the bytes actually consumed. Only reported in strict length mode.
	ErrLengthMismatch
	// ErrInvalidArrayKey indicates an array key that is not the decimal
	// position of the value. Only reported in strict array key mode.
	ErrInvalidArrayKey
	// ErrMaxDepthExceeded indicates containers nested deeper than the
	// configured maximum.
	ErrMaxDepthExceeded
)

var errorKindNames = map[ErrorKind]string{
	ErrInvalidBuffer:    "invalid buffer",
	ErrBufferUnderrun:   "buffer underrun",
	ErrMalformedCString: "malformed cstring",
	ErrUnsupportedType:  "unsupported type",
	ErrInvalidBoolean:   "invalid boolean",
	ErrLengthMismatch:   "length mismatch",
	ErrInvalidArrayKey:  "invalid array key",
	ErrMaxDepthExceeded: "max depth exceeded",
}

// Error implements the error interface.
func (k ErrorKind) Error() string {
	if name, ok := errorKindNames[k]; ok {
		return name
	}
	return "unknown error kind " + strconv.Itoa(int(k))
}

// DecodeError is returned by every decoding function in this package. It
// records what went wrong, where in the input it happened and the call stack
// at the point of detection.
type DecodeError struct {
	Kind ErrorKind
	// Offset is the position in the input at which the failure was detected.
	Offset int
	// Type is the offending type tag for ErrUnsupportedType, and the tag of
	// the element being decoded for other kinds when one is known.
	Type Type
	// Need is the number of bytes a failed read required.
	Need int
	// Key is the field name of the element being decoded, when known.
	Key   string
	Stack stack.CallStack

	// eof is set when a cstring ran off the end of the input, which is both a
	// malformed cstring and an underrun.
	eof bool
	// keySet records that Key names the innermost element, which may have an
	// empty name.
	keySet bool
}

func (e *DecodeError) setKey(key string) {
	e.Key = key
	e.keySet = true
}

func newDecodeError(kind ErrorKind, offset int) *DecodeError {
	return &DecodeError{
		Kind:   kind,
		Offset: offset,
		Stack:  stack.Trace().TrimBelow(stack.Caller(1)).TrimRuntime(),
	}
}

// Error implements the error interface.
func (e *DecodeError) Error() string {
	var b bytes.Buffer
	b.WriteString("bson: ")
	b.WriteString(e.Kind.Error())
	switch e.Kind {
	case ErrUnsupportedType:
		fmt.Fprintf(&b, ": type 0x%02X (%s)", byte(e.Type), e.Type)
	case ErrBufferUnderrun:
		if e.Need > 0 {
			fmt.Fprintf(&b, ": need %d bytes", e.Need)
		}
	}
	if e.keySet {
		fmt.Fprintf(&b, " in element %q", e.Key)
	}
	fmt.Fprintf(&b, " at offset %d", e.Offset)
	return b.String()
}

// Unwrap returns the error kind, and ErrBufferUnderrun as well when a cstring
// ran off the end of the input.
func (e *DecodeError) Unwrap() []error {
	if e.eof && e.Kind != ErrBufferUnderrun {
		return []error{e.Kind, ErrBufferUnderrun}
	}
	return []error{e.Kind}
}

// ErrorStack returns a string representing the stack at the point where the
// error occurred.
func (e *DecodeError) ErrorStack() string {
	s := bytes.NewBufferString(e.Kind.Error() + ": [")

	for i, call := range e.Stack {
		if i != 0 {
			s.WriteString(", ")
		}

		// go vet doesn't like %k even though it's part of stack's API, so we move the format
		// string so it doesn't complain.
		callFormat := "%k.%n %v"

		s.WriteString(fmt.Sprintf(callFormat, call, call, call))
	}

	s.WriteRune(']')

	return s.String()
}
