// Copyright (C) MongoDB, Inc. 2017-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package main

import (
	"flag"
	"runtime"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Environment variables that provide defaults for flags not given on the
// command line.
const (
	envStrict   = "BSONTOJSON_STRICT"
	envFormat   = "BSONTOJSON_FORMAT"
	envJobs     = "BSONTOJSON_JOBS"
	envLogLevel = "BSONTOJSON_LOG_LEVEL"
)

var envFlags = map[string]string{
	envStrict: "strict",
	envFormat: "format",
	envJobs:   "j",
}

type config struct {
	snappy          bool
	strict          bool
	strictArrayKeys bool
	maxDepth        int
	jobs            int
	format          string
	color           bool
	stats           bool
	envFile         string
	verbose         bool

	level logrus.Level
}

func registerFlags(fs *flag.FlagSet) *config {
	cfg := &config{level: logrus.InfoLevel}
	fs.BoolVar(&cfg.snappy, "snappy", false, "inputs are snappy block compressed")
	fs.BoolVar(&cfg.strict, "strict", false, "reject documents whose length prefix does not match their content")
	fs.BoolVar(&cfg.strictArrayKeys, "strict-array-keys", false, "reject arrays whose keys are not 0, 1, 2, ...")
	fs.IntVar(&cfg.maxDepth, "max-depth", 0, "maximum nesting depth, 0 for the default of 2048")
	fs.IntVar(&cfg.jobs, "j", runtime.GOMAXPROCS(0), "number of files decoded at once")
	fs.StringVar(&cfg.format, "format", "json", "output format: json, pretty or go")
	fs.BoolVar(&cfg.color, "color", false, "colorize pretty output")
	fs.BoolVar(&cfg.stats, "stats", false, "print document size statistics to stderr")
	fs.StringVar(&cfg.envFile, "env", "", "load defaults from an env `file`")
	fs.BoolVar(&cfg.verbose, "v", false, "log debug output")
	return cfg
}

// applyEnv fills flags that were not set on the command line from the
// environment, after loading the env file if one was given. Variables already
// present in the environment take precedence over the file.
func (cfg *config) applyEnv(fs *flag.FlagSet, lookup func(string) (string, bool)) error {
	if cfg.envFile != "" {
		vars, err := godotenv.Read(cfg.envFile)
		if err != nil {
			return errors.Wrapf(err, "cannot load env file %s", cfg.envFile)
		}
		environ := lookup
		lookup = func(key string) (string, bool) {
			if v, ok := environ(key); ok {
				return v, true
			}
			v, ok := vars[key]
			return v, ok
		}
	}

	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })

	for env, name := range envFlags {
		if set[name] {
			continue
		}
		v, ok := lookup(env)
		if !ok || v == "" {
			continue
		}
		if err := fs.Set(name, v); err != nil {
			return errors.Wrapf(err, "invalid %s", env)
		}
	}

	if cfg.verbose {
		cfg.level = logrus.DebugLevel
		return nil
	}
	if v, ok := lookup(envLogLevel); ok && v != "" {
		level, err := logrus.ParseLevel(v)
		if err != nil {
			return errors.Wrapf(err, "invalid %s", envLogLevel)
		}
		cfg.level = level
	}
	return nil
}
