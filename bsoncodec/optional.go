// Copyright (C) bsonkit authors 2014-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package bsoncodec

import "github.com/bsonkit/bson"

// OptionHandler lifts a Handler[T] to a Handler[bson.Option[T]]: a Null
// value (or, for writing, a None) round-trips as bson.Null rather than the
// key being omitted — use ElementsOf at the Document-construction site for
// the "omit the key entirely" behavior instead.
func OptionHandler[T any](elem Handler[T]) Handler[bson.Option[T]] {
	return NewHandler(
		ReaderFunc(func(v bson.Value) (bson.Option[T], error) {
			if _, isNull := v.(bson.Null); isNull {
				return bson.None[T](), nil
			}
			t, err := elem.ReadTry(v)
			if err != nil {
				return bson.Option[T]{}, err
			}
			return bson.Some(t), nil
		}),
		WriterFunc(func(opt bson.Option[T]) (bson.Value, error) {
			t, ok := opt.Get()
			if !ok {
				return bson.Null{}, nil
			}
			return elem.WriteTry(t)
		}),
	)
}
