// Copyright (C) MongoDB, Inc. 2017-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package bson

import (
	"encoding/hex"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FormatObjectID returns the 24 character lowercase hex form of an ObjectID.
func FormatObjectID(oid [12]byte) string {
	return primitive.ObjectID(oid).Hex()
}

// FormatUUID returns the hyphenated 8-4-4-4-12 lowercase hex form of a UUID.
// Legacy (subtype 0x03) and standard (subtype 0x04) UUIDs are rendered the
// same way; no byte reordering is applied to legacy values.
func FormatUUID(b [16]byte) string {
	return uuid.UUID(b).String()
}

// FormatMD5 returns the 32 character lowercase hex form of an MD5 digest.
func FormatMD5(b [16]byte) string {
	var buf [32]byte
	hex.Encode(buf[:], b[:])
	return string(buf[:])
}

// formatBinary renders a binary payload with a well-known fixed-size subtype
// as hex. ok is false when the payload should be passed through unchanged.
func formatBinary(subtype byte, b []byte) (s string, ok bool) {
	if len(b) != 16 {
		return "", false
	}
	var arr [16]byte
	copy(arr[:], b)
	switch subtype {
	case TypeBinaryUUIDOld, TypeBinaryUUID:
		return FormatUUID(arr), true
	case TypeBinaryMD5:
		return FormatMD5(arr), true
	default:
		return "", false
	}
}
