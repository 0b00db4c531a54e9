// Copyright (C) bsonkit authors 2014-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package bsoncodec

import (
	"time"

	"github.com/bsonkit/bson"
)

// StringHandler reads/writes bson.String <-> string.
var StringHandler Handler[string] = NewHandler(
	ReaderFunc(func(v bson.Value) (string, error) {
		s, ok := v.(bson.String)
		if !ok {
			return "", typeMismatch("string", v)
		}
		return s.Value, nil
	}),
	SafeWriterFunc(func(s string) bson.Value { return bson.String{Value: s} }),
)

// BoolHandler reads from any BooleanLike variant and writes bson.Boolean.
var BoolHandler Handler[bool] = NewHandler(
	ReaderFunc(func(v bson.Value) (bool, error) {
		b, ok := v.(bson.BooleanLike)
		if !ok {
			return false, typeMismatch("boolean-like", v)
		}
		return b.ToBool(), nil
	}),
	SafeWriterFunc(func(b bool) bson.Value { return bson.Boolean{Value: b} }),
)

// Int32Handler reads from any exactly-representable NumberLike and writes
// bson.Int32.
var Int32Handler Handler[int32] = NewHandler(
	ReaderFunc(func(v bson.Value) (int32, error) {
		n, ok := v.(bson.NumberLike)
		if !ok {
			return 0, typeMismatch("numeric", v)
		}
		i, ok := n.ToInt32()
		if !ok {
			return 0, typeMismatch("int32-representable numeric", v)
		}
		return i, nil
	}),
	SafeWriterFunc(func(i int32) bson.Value { return bson.Int32{Value: i} }),
)

// Int64Handler reads from any exactly-representable NumberLike and writes
// bson.Int64.
var Int64Handler Handler[int64] = NewHandler(
	ReaderFunc(func(v bson.Value) (int64, error) {
		n, ok := v.(bson.NumberLike)
		if !ok {
			return 0, typeMismatch("numeric", v)
		}
		i, ok := n.ToInt64()
		if !ok {
			return 0, typeMismatch("int64-representable numeric", v)
		}
		return i, nil
	}),
	SafeWriterFunc(func(i int64) bson.Value { return bson.Int64{Value: i} }),
)

// Float64Handler reads from any exactly-representable NumberLike and
// writes bson.Double.
var Float64Handler Handler[float64] = NewHandler(
	ReaderFunc(func(v bson.Value) (float64, error) {
		n, ok := v.(bson.NumberLike)
		if !ok {
			return 0, typeMismatch("numeric", v)
		}
		f, ok := n.ToFloat64()
		if !ok {
			return 0, typeMismatch("float64-representable numeric", v)
		}
		return f, nil
	}),
	SafeWriterFunc(func(f float64) bson.Value { return bson.Double{Value: f} }),
)

// TimeHandler bridges time.Time <-> bson.DateTime. DateTime carries
// millisecond resolution on the wire; finer precision is truncated.
var TimeHandler Handler[time.Time] = NewHandler(
	ReaderFunc(func(v bson.Value) (time.Time, error) {
		dt, ok := v.(bson.DateTime)
		if !ok {
			return time.Time{}, typeMismatch("datetime", v)
		}
		return time.UnixMilli(dt.Millis).UTC(), nil
	}),
	SafeWriterFunc(func(t time.Time) bson.Value {
		return bson.DateTime{Millis: t.UnixMilli()}
	}),
)

// ObjectIDHandler round-trips bson.ObjectID unchanged.
var ObjectIDHandler Handler[bson.ObjectID] = NewHandler(
	ReaderFunc(func(v bson.Value) (bson.ObjectID, error) {
		oid, ok := v.(bson.ObjectID)
		if !ok {
			return bson.ObjectID{}, typeMismatch("objectId", v)
		}
		return oid, nil
	}),
	SafeWriterFunc(func(oid bson.ObjectID) bson.Value { return oid }),
)

// BytesHandler bridges bson.Binary <-> []byte: it writes subtype 0x00
// (generic) and reads the data of a Binary of any subtype.
var BytesHandler Handler[[]byte] = NewHandler(
	ReaderFunc(func(v bson.Value) ([]byte, error) {
		b, ok := v.(bson.Binary)
		if !ok {
			return nil, typeMismatch("binary", v)
		}
		cp := make([]byte, len(b.Data))
		copy(cp, b.Data)
		return cp, nil
	}),
	SafeWriterFunc(func(b []byte) bson.Value {
		cp := make([]byte, len(b))
		copy(cp, b)
		return bson.Binary{Subtype: 0x00, Data: cp}
	}),
)
