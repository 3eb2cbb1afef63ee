// Copyright (C) MongoDB, Inc. 2017-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package dump

import (
	"strings"

	krpretty "github.com/kr/pretty"
	"github.com/pkg/errors"
	"github.com/tidwall/pretty"

	"github.com/ikmak/bsonread/bson"
)

// Format is an output format for decoded documents.
type Format int

// The output formats.
const (
	FormatJSON Format = iota
	FormatPretty
	FormatGo
)

func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatPretty:
		return "pretty"
	case FormatGo:
		return "go"
	default:
		return "unknown"
	}
}

// ParseFormat parses the name of a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json", "":
		return FormatJSON, nil
	case "pretty":
		return FormatPretty, nil
	case "go":
		return FormatGo, nil
	default:
		return 0, errors.Errorf("unknown format %q", s)
	}
}

// render writes doc in the given format. The result always ends in a newline.
func render(doc bson.Value, f Format, color bool) ([]byte, error) {
	switch f {
	case FormatGo:
		return []byte(krpretty.Sprint(doc.Interface()) + "\n"), nil
	case FormatPretty:
		b, err := doc.MarshalJSON()
		if err != nil {
			return nil, err
		}
		b = pretty.Pretty(b)
		if color {
			b = pretty.Color(b, nil)
		}
		return b, nil
	default:
		b, err := doc.MarshalJSON()
		if err != nil {
			return nil, err
		}
		return append(b, '\n'), nil
	}
}
