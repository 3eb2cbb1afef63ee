// Copyright (C) MongoDB, Inc. 2017-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

// Command bsontojson prints files of concatenated BSON documents, such as the
// output of mongodump, as JSON.
//
//	bsontojson [flags] [file ...]
//
// Standard input is read when no file or "-" is given.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/ikmak/bsonread/bson"
	"github.com/ikmak/bsonread/internal/dump"
	"github.com/ikmak/bsonread/internal/optionutil"
	"github.com/ikmak/bsonread/options"
)

func main() {
	err := mainReal(os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func mainReal(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("bsontojson", flag.ContinueOnError)
	fs.SetOutput(stderr)
	cfg := registerFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := cfg.applyEnv(fs, os.LookupEnv); err != nil {
		return err
	}

	log := logrus.New()
	log.SetOutput(stderr)
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	log.SetLevel(cfg.level)

	format, err := dump.ParseFormat(cfg.format)
	if err != nil {
		return err
	}

	decOpts := &options.DecodeOptions{
		StrictLength:    cfg.strict,
		StrictArrayKeys: cfg.strictArrayKeys,
	}
	dec, err := bson.NewDecoder(
		optionutil.NewBuilderFromOptions(decOpts, nil),
		options.Decode().SetMaxDepth(cfg.maxDepth),
	)
	if err != nil {
		return errors.Wrap(err, "invalid decoder options")
	}

	names := fs.Args()
	if len(names) == 0 {
		names = []string{"-"}
	}
	inputs := make([]dump.Input, 0, len(names))
	for _, name := range names {
		inputs = append(inputs, input(name, stdin))
	}

	d := &dump.Dumper{
		Decoder: dec,
		Format:  format,
		Color:   cfg.color,
		Snappy:  cfg.snappy,
		Jobs:    cfg.jobs,
		Log:     log,
	}
	log.WithFields(logrus.Fields{
		"files":  len(inputs),
		"format": format,
		"jobs":   cfg.jobs,
	}).Debug("starting")

	summary, err := d.Run(context.Background(), stdout, inputs)
	if err != nil {
		return err
	}
	if cfg.stats {
		fmt.Fprintln(stderr, summary)
	}
	return nil
}

func input(name string, stdin io.Reader) dump.Input {
	if name == "-" {
		return dump.Input{
			Name: "stdin",
			Open: func() (io.ReadCloser, error) { return io.NopCloser(stdin), nil },
		}
	}
	return dump.Input{
		Name: name,
		Open: func() (io.ReadCloser, error) { return os.Open(name) },
	}
}
