// Copyright (C) MongoDB, Inc. 2017-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

// Package bson is a library for reading BSON into generic values. It does not
// encode.
//
// Decode turns a byte slice holding a BSON document into a Value whose Kind
// is KindDocument. Each element becomes a Value of one of a fixed set of
// kinds; ObjectIDs, UUIDs and MD5 digests are rendered as lowercase hex, and
// MinKey and MaxKey are kinds of their own.
//
// Example:
//
//	val, err := bson.Decode(raw)
//	if err != nil { return err }
//	name, ok := val.Document().Lookup("name")
//	s, ok := name.StringValueOK()
//	// do something with s...
//
// Arrays are encoded like documents whose keys are positions. Their values are
// kept in arrival order and the keys are ignored unless the Decoder was
// created with options.Decode().SetStrictArrayKeys(true).
//
// Every failure is returned as a *DecodeError whose Kind can be matched with
// errors.Is, and no partial value is ever returned. Decode and a Decoder keep
// no state between calls, so both may be used from many goroutines at once.
package bson
