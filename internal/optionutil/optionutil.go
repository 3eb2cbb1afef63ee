// Copyright (C) MongoDB, Inc. 2024-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package optionutil

import (
	"reflect"

	"github.com/ikmak/bsonread/options"
)

// NewOptionsFromBuilder will functionally merge a slice of options.Builder in
// a "last-one-wins" manner, where nil builders are ignored.
func NewOptionsFromBuilder[T any](opts ...options.Builder[T]) (*T, error) {
	args := new(T)
	for _, opt := range opts {
		if opt == nil || reflect.ValueOf(opt).IsNil() {
			// A typed nil builder passed through the interface is skipped as
			// well.
			continue
		}

		for _, setArgs := range opt.OptionsSetters() {
			if setArgs == nil {
				continue
			}

			if err := setArgs(args); err != nil {
				return nil, err
			}
		}
	}
	return args, nil
}

// BuilderWithCallback implements an options.Builder for an arbitrary options
// type, re-assigning a complete options value and then running an optional
// callback.
type BuilderWithCallback[T any] struct {
	Options  *T
	Callback func(*T) error
}

// OptionsSetters returns a single setter that copies Options into the target
// and then runs Callback, if any.
func (opts *BuilderWithCallback[T]) OptionsSetters() []func(*T) error {
	return []func(*T) error{
		func(args *T) error {
			if opts.Options != nil {
				*args = *opts.Options
			}

			if opts.Callback != nil {
				return opts.Callback(args)
			}

			return nil
		},
	}
}

// NewBuilderFromOptions will construct a Builder from the provided options
// value.
func NewBuilderFromOptions[T any](args *T, callback func(*T) error) *BuilderWithCallback[T] {
	return &BuilderWithCallback[T]{Options: args, Callback: callback}
}
