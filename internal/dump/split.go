// Copyright (C) MongoDB, Inc. 2017-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package dump

import (
	"bufio"
	"encoding/binary"
	"io"

	"github.com/pkg/errors"
)

// MaxDocumentSize is the largest document Split accepts.
const MaxDocumentSize = 16 * 1024 * 1024

// ErrDocumentSize is returned by Split for a length prefix outside
// [5, MaxDocumentSize].
var ErrDocumentSize = errors.New("invalid document size")

// Split reads a stream of concatenated BSON documents, as written by
// mongodump, and returns each document as its own slice. The documents are
// not validated beyond their length prefix.
func Split(r io.Reader) ([][]byte, error) {
	br := bufio.NewReader(r)

	var docs [][]byte
	var offset int64
	for {
		var header [4]byte
		_, err := io.ReadFull(br, header[:])
		if err == io.EOF {
			return docs, nil
		}
		if err != nil {
			return nil, errors.Wrapf(err, "reading length of document %d at offset %d", len(docs), offset)
		}

		length := int32(binary.LittleEndian.Uint32(header[:]))
		if length < 5 || length > MaxDocumentSize {
			return nil, errors.Wrapf(ErrDocumentSize, "document %d at offset %d has length %d", len(docs), offset, length)
		}

		doc := make([]byte, length)
		copy(doc, header[:])
		if _, err := io.ReadFull(br, doc[4:]); err != nil {
			if err == io.EOF {
				err = io.ErrUnexpectedEOF
			}
			return nil, errors.Wrapf(err, "reading document %d at offset %d", len(docs), offset)
		}

		docs = append(docs, doc)
		offset += int64(length)
	}
}
