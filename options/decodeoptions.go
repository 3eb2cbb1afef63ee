// Copyright (C) MongoDB, Inc. 2017-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package options

import "errors"

// ErrNegativeMaxDepth is returned when SetMaxDepth is given a negative depth.
var ErrNegativeMaxDepth = errors.New("max depth must not be negative")

// DecodeOptions represents arguments that can be used to configure a
// bson.Decoder.
type DecodeOptions struct {
	// If true, the declared length of every document and array must match the
	// number of bytes consumed while decoding it, and the top-level document
	// must span the whole input. The default value is false, which means the
	// length prefix is informational and trailing bytes after the top-level
	// document are ignored.
	StrictLength bool

	// If true, the keys of an array must be the decimal positions "0", "1",
	// ... in order. The default value is false, which means array values are
	// placed by arrival order and the key text is never consulted.
	StrictArrayKeys bool

	// The maximum nesting depth of documents and arrays. The top-level
	// document is depth 1. The default value is 0, which selects the default
	// limit of 2048 (bson.DefaultMaxDepth). Input nested deeper than the limit
	// fails with bson.ErrMaxDepthExceeded.
	MaxDepth int
}

// DecodeOptionsBuilder contains options to configure a bson.Decoder. Each
// option can be set through setter functions. See documentation for each
// setter function for an explanation of the option.
type DecodeOptionsBuilder struct {
	Opts []func(*DecodeOptions) error
}

// Decode creates a new DecodeOptionsBuilder instance.
func Decode() *DecodeOptionsBuilder {
	return &DecodeOptionsBuilder{}
}

// OptionsSetters returns a list of DecodeOptions setter functions.
func (do *DecodeOptionsBuilder) OptionsSetters() []func(*DecodeOptions) error {
	return do.Opts
}

// SetStrictLength sets the value for the StrictLength field.
func (do *DecodeOptionsBuilder) SetStrictLength(b bool) *DecodeOptionsBuilder {
	do.Opts = append(do.Opts, func(opts *DecodeOptions) error {
		opts.StrictLength = b

		return nil
	})

	return do
}

// SetStrictArrayKeys sets the value for the StrictArrayKeys field.
func (do *DecodeOptionsBuilder) SetStrictArrayKeys(b bool) *DecodeOptionsBuilder {
	do.Opts = append(do.Opts, func(opts *DecodeOptions) error {
		opts.StrictArrayKeys = b

		return nil
	})

	return do
}

// SetMaxDepth sets the value for the MaxDepth field. A depth of 0 selects the
// default limit of 2048.
func (do *DecodeOptionsBuilder) SetMaxDepth(depth int) *DecodeOptionsBuilder {
	do.Opts = append(do.Opts, func(opts *DecodeOptions) error {
		if depth < 0 {
			return ErrNegativeMaxDepth
		}
		opts.MaxDepth = depth

		return nil
	})

	return do
}
