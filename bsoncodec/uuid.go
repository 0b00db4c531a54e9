// Copyright (C) bsonkit authors 2014-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package bsoncodec

import (
	"github.com/google/uuid"

	"github.com/bsonkit/bson"
)

// uuidBinarySubtype is the standard ("new") UUID binary subtype, as used
// by the MongoDB drivers for github.com/google/uuid-style UUIDs.
const uuidBinarySubtype = 0x04

// UUIDHandler bridges github.com/google/uuid.UUID <-> bson.Binary subtype
// 0x04, rounding out the domain stack's identifier types alongside
// bson.ObjectID.
var UUIDHandler Handler[uuid.UUID] = NewHandler(
	ReaderFunc(func(v bson.Value) (uuid.UUID, error) {
		b, ok := v.(bson.Binary)
		if !ok || b.Subtype != uuidBinarySubtype {
			return uuid.UUID{}, typeMismatch("uuid binary", v)
		}
		id, err := uuid.FromBytes(b.Data)
		if err != nil {
			return uuid.UUID{}, typeMismatch("uuid binary", v)
		}
		return id, nil
	}),
	SafeWriterFunc(func(id uuid.UUID) bson.Value {
		data := make([]byte, 16)
		copy(data, id[:])
		return bson.Binary{Subtype: uuidBinarySubtype, Data: data}
	}),
)
