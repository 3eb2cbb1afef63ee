// Copyright (C) MongoDB, Inc. 2017-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package main

import (
	"flag"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lookupMap(m map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := m[key]
		return v, ok
	}
}

func parse(t *testing.T, args ...string) (*flag.FlagSet, *config) {
	t.Helper()

	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	cfg := registerFlags(fs)
	require.NoError(t, fs.Parse(args))
	return fs, cfg
}

func TestApplyEnv(t *testing.T) {
	t.Run("environment fills unset flags", func(t *testing.T) {
		fs, cfg := parse(t)
		err := cfg.applyEnv(fs, lookupMap(map[string]string{
			envStrict:   "true",
			envFormat:   "pretty",
			envJobs:     "3",
			envLogLevel: "warn",
		}))
		require.NoError(t, err)
		assert.True(t, cfg.strict)
		assert.Equal(t, "pretty", cfg.format)
		assert.Equal(t, 3, cfg.jobs)
		assert.Equal(t, logrus.WarnLevel, cfg.level)
	})
	t.Run("flags win", func(t *testing.T) {
		fs, cfg := parse(t, "-format=go", "-j=1", "-v")
		err := cfg.applyEnv(fs, lookupMap(map[string]string{
			envFormat:   "pretty",
			envJobs:     "3",
			envLogLevel: "warn",
		}))
		require.NoError(t, err)
		assert.Equal(t, "go", cfg.format)
		assert.Equal(t, 1, cfg.jobs)
		assert.Equal(t, logrus.DebugLevel, cfg.level)
	})
	t.Run("defaults", func(t *testing.T) {
		fs, cfg := parse(t)
		require.NoError(t, cfg.applyEnv(fs, lookupMap(nil)))
		assert.False(t, cfg.strict)
		assert.Equal(t, "json", cfg.format)
		assert.Equal(t, logrus.InfoLevel, cfg.level)
	})
	t.Run("env file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bsontojson.env")
		require.NoError(t, os.WriteFile(path, []byte("BSONTOJSON_FORMAT=pretty\nBSONTOJSON_JOBS=2\n"), 0o600))

		fs, cfg := parse(t, "-env", path)
		err := cfg.applyEnv(fs, lookupMap(map[string]string{envJobs: "5"}))
		require.NoError(t, err)
		assert.Equal(t, "pretty", cfg.format)
		assert.Equal(t, 5, cfg.jobs, "the environment overrides the file")
	})
	t.Run("missing env file", func(t *testing.T) {
		fs, cfg := parse(t, "-env", filepath.Join(t.TempDir(), "missing.env"))
		err := cfg.applyEnv(fs, lookupMap(nil))
		assert.ErrorContains(t, err, "cannot load env file")
	})
	t.Run("invalid values", func(t *testing.T) {
		testCases := []struct {
			name string
			env  map[string]string
			want string
		}{
			{"jobs", map[string]string{envJobs: "many"}, "invalid " + envJobs},
			{"strict", map[string]string{envStrict: "maybe"}, "invalid " + envStrict},
			{"log level", map[string]string{envLogLevel: "loud"}, "invalid " + envLogLevel},
		}
		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				fs, cfg := parse(t)
				err := cfg.applyEnv(fs, lookupMap(tc.env))
				assert.ErrorContains(t, err, tc.want)
			})
		}
	})
}
