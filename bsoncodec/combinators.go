// Copyright (C) bsonkit authors 2014-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package bsoncodec

import (
	"github.com/bsonkit/bson"
	"github.com/bsonkit/bson/bsonerr"
)

// MapReader lifts a total function A -> B over a Reader[A], failing as B's
// zero value plus the underlying error when the read itself fails.
func MapReader[A, B any](r Reader[A], f func(A) B) Reader[B] {
	return ReaderFunc(func(v bson.Value) (B, error) {
		a, err := r.ReadTry(v)
		if err != nil {
			var zero B
			return zero, err
		}
		return f(a), nil
	})
}

// Collect is MapReader's partial-function counterpart: f may decline to
// produce a B, in which case the read fails with a DecodeFailure.
func Collect[A, B any](r Reader[A], f func(A) (B, bool)) Reader[B] {
	return ReaderFunc(func(v bson.Value) (B, error) {
		var zero B
		a, err := r.ReadTry(v)
		if err != nil {
			return zero, err
		}
		b, ok := f(a)
		if !ok {
			return zero, bsonerr.NewDecodeFailure("", "collect: predicate rejected value")
		}
		return b, nil
	})
}

// AfterRead runs a validation pass over a successfully decoded value,
// returning the validator's error unchanged when it rejects the value.
func AfterRead[T any](r Reader[T], validate func(T) error) Reader[T] {
	return ReaderFunc(func(v bson.Value) (T, error) {
		var zero T
		t, err := r.ReadTry(v)
		if err != nil {
			return zero, err
		}
		if err := validate(t); err != nil {
			return zero, err
		}
		return t, nil
	})
}

// BeforeRead rewrites the bson.Value handed to the underlying reader —
// useful for e.g. unwrapping an envelope before decoding the payload.
func BeforeRead[T any](r Reader[T], pre func(bson.Value) bson.Value) Reader[T] {
	return ReaderFunc(func(v bson.Value) (T, error) {
		return r.ReadTry(pre(v))
	})
}

// Widen re-types a Reader[A] as a Reader[B] via an injective lift, most
// often used to view a sum-type variant's reader as a reader of the sum's
// common interface.
func Widen[A, B any](r Reader[A], up func(A) B) Reader[B] {
	return MapReader(r, up)
}

// Contramap lifts a total function B -> A over a Writer[A], producing a
// Writer[B].
func Contramap[A, B any](w Writer[A], f func(B) A) Writer[B] {
	return WriterFunc(func(b B) (bson.Value, error) {
		return w.WriteTry(f(b))
	})
}

// Narrow is Contramap's partial counterpart: f may decline to narrow B
// down to an A, failing the write.
func Narrow[A, B any](w Writer[A], f func(B) (A, bool)) Writer[B] {
	return WriterFunc(func(b B) (bson.Value, error) {
		a, ok := f(b)
		if !ok {
			return nil, typeMismatch("narrow: predicate rejected value", nil)
		}
		return w.WriteTry(a)
	})
}

// BeforeWrite adjusts a T before it reaches the underlying writer.
func BeforeWrite[T any](w Writer[T], adjust func(T) T) Writer[T] {
	return WriterFunc(func(t T) (bson.Value, error) {
		return w.WriteTry(adjust(t))
	})
}

// AfterWrite post-processes the bson.Value a writer produced.
func AfterWrite[T any](w Writer[T], post func(bson.Value) bson.Value) Writer[T] {
	return WriterFunc(func(t T) (bson.Value, error) {
		v, err := w.WriteTry(t)
		if err != nil {
			return nil, err
		}
		return post(v), nil
	})
}
