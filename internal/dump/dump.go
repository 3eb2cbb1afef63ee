// Copyright (C) MongoDB, Inc. 2017-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

// Package dump converts files of concatenated BSON documents into text.
package dump

import (
	"bytes"
	"context"
	"io"

	"github.com/golang/snappy"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/ikmak/bsonread/bson"
)

// Input is a named source of BSON documents. Open is called once, from the
// goroutine that processes the input.
type Input struct {
	Name string
	Open func() (io.ReadCloser, error)
}

// Dumper decodes inputs and renders their documents.
type Dumper struct {
	Decoder *bson.Decoder
	Format  Format
	Color   bool
	// Snappy inputs are snappy block compressed.
	Snappy bool
	// Jobs bounds the number of inputs processed at once. Zero or less means
	// one at a time.
	Jobs int
	Log  logrus.FieldLogger
}

// Result is the rendered output of a single input.
type Result struct {
	Name   string
	Output []byte
	Sizes  []float64
}

// Run processes inputs concurrently and writes their output to w in input
// order. It returns a Summary over every document of every input. The first
// error stops the run; output of inputs before the failing one is still
// written.
func (d *Dumper) Run(ctx context.Context, w io.Writer, inputs []Input) (Summary, error) {
	jobs := d.Jobs
	if jobs < 1 {
		jobs = 1
	}

	results := make([]*Result, len(inputs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for i, in := range inputs {
		i, in := i, in
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := d.File(in)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	waitErr := g.Wait()

	var sizes []float64
	for _, res := range results {
		if res == nil {
			break
		}
		if _, err := w.Write(res.Output); err != nil {
			return Summary{}, errors.Wrapf(err, "writing output of %s", res.Name)
		}
		sizes = append(sizes, res.Sizes...)
	}
	if waitErr != nil {
		return Summary{}, waitErr
	}
	return Summarize(sizes)
}

// File reads, decodes and renders every document of a single input.
func (d *Dumper) File(in Input) (*Result, error) {
	log := d.logger().WithField("file", in.Name)

	rc, err := in.Open()
	if err != nil {
		return nil, errors.Wrapf(err, "cannot open %s", in.Name)
	}
	defer rc.Close()

	raw, err := io.ReadAll(rc)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", in.Name)
	}
	if d.Snappy {
		raw, err = snappy.Decode(nil, raw)
		if err != nil {
			return nil, errors.Wrapf(err, "decompressing %s", in.Name)
		}
	}

	docs, err := Split(bytes.NewReader(raw))
	if err != nil {
		return nil, errors.Wrapf(err, "splitting %s", in.Name)
	}

	dec := d.Decoder
	if dec == nil {
		dec, err = bson.NewDecoder()
		if err != nil {
			return nil, errors.Wrap(err, "creating decoder")
		}
	}

	res := &Result{Name: in.Name, Sizes: make([]float64, 0, len(docs))}
	var out bytes.Buffer
	for i, doc := range docs {
		val, err := dec.Decode(doc)
		if err != nil {
			var de *bson.DecodeError
			if errors.As(err, &de) {
				log.WithField("document", i).Debug(de.ErrorStack())
			}
			return nil, errors.Wrapf(err, "%s: document %d", in.Name, i)
		}
		b, err := render(val, d.Format, d.Color)
		if err != nil {
			return nil, errors.Wrapf(err, "%s: rendering document %d", in.Name, i)
		}
		out.Write(b)
		res.Sizes = append(res.Sizes, float64(len(doc)))
	}
	res.Output = out.Bytes()

	log.WithFields(logrus.Fields{
		"documents": len(docs),
		"bytes":     len(raw),
	}).Debug("decoded file")
	return res, nil
}

func (d *Dumper) logger() logrus.FieldLogger {
	if d.Log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		return l
	}
	return d.Log
}
