// Copyright (C) MongoDB, Inc. 2017-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package dump

import (
	"fmt"

	"github.com/montanaflynn/stats"
)

// Summary describes the sizes in bytes of the documents of a run.
type Summary struct {
	Count  int
	Total  float64
	Min    float64
	Max    float64
	Mean   float64
	Median float64
	P90    float64
}

// Summarize computes a Summary of sizes. An empty input yields a zero Summary.
func Summarize(sizes []float64) (Summary, error) {
	if len(sizes) == 0 {
		return Summary{}, nil
	}

	sum, err := stats.Sum(sizes)
	if err != nil {
		return Summary{}, err
	}

	min, err := stats.Min(sizes)
	if err != nil {
		return Summary{}, err
	}

	max, err := stats.Max(sizes)
	if err != nil {
		return Summary{}, err
	}

	mean, err := stats.Mean(sizes)
	if err != nil {
		return Summary{}, err
	}

	median, err := stats.Median(sizes)
	if err != nil {
		return Summary{}, err
	}

	p90, err := stats.Percentile(sizes, 90)
	if err != nil {
		return Summary{}, err
	}

	s := Summary{
		Count:  len(sizes),
		Total:  sum,
		Min:    min,
		Max:    max,
		Mean:   mean,
		Median: median,
		P90:    p90,
	}
	return s, nil
}

func (s Summary) String() string {
	return fmt.Sprintf("documents=%d bytes=%.0f min=%.0f max=%.0f mean=%.1f median=%.1f p90=%.1f",
		s.Count, s.Total, s.Min, s.Max, s.Mean, s.Median, s.P90)
}
