// Copyright (C) bsonkit authors 2014-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package bsoncodec

import "github.com/bsonkit/bson"

// NumberLikeHandler is the identity-projection default codec for the
// NumberLike tag: it reads any numeric variant and writes the
// original value back unchanged, rather than narrowing to one concrete
// representation.
var NumberLikeHandler Handler[bson.NumberLike] = NewHandler(
	ReaderFunc(func(v bson.Value) (bson.NumberLike, error) {
		n, ok := v.(bson.NumberLike)
		if !ok {
			return nil, typeMismatch("numeric", v)
		}
		return n, nil
	}),
	SafeWriterFunc(func(n bson.NumberLike) bson.Value { return n }),
)

// BooleanLikeHandler is the identity-projection default codec for the
// BooleanLike tag.
var BooleanLikeHandler Handler[bson.BooleanLike] = NewHandler(
	ReaderFunc(func(v bson.Value) (bson.BooleanLike, error) {
		b, ok := v.(bson.BooleanLike)
		if !ok {
			return nil, typeMismatch("boolean-like", v)
		}
		return b, nil
	}),
	SafeWriterFunc(func(b bson.BooleanLike) bson.Value { return b }),
)
