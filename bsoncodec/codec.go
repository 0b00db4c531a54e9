// Copyright (C) bsonkit authors 2014-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

// Package bsoncodec is the codec layer: Reader[T]/Writer[T]
// pairs that convert between bson.Value and Go types, and the combinators
// used to build new codecs out of existing ones without touching the wire
// format. It has no dependency on bsonderive, so the two can be imported
// independently.
package bsoncodec

import "github.com/bsonkit/bson"

// Reader decodes a bson.Value into a T, or fails.
type Reader[T any] interface {
	ReadTry(v bson.Value) (T, error)
}

// Writer encodes a T into a bson.Value, or fails.
type Writer[T any] interface {
	WriteTry(t T) (bson.Value, error)
}

// Handler is a Reader and a Writer for the same T.
type Handler[T any] interface {
	Reader[T]
	Writer[T]
}

// DocumentReader is a Reader restricted to decoding from a *bson.Document,
// for codecs that only make sense at the document level (records, sums).
type DocumentReader[T any] interface {
	ReadDocumentTry(d *bson.Document) (T, error)
}

// DocumentWriter is the Writer analogue of DocumentReader.
type DocumentWriter[T any] interface {
	WriteDocumentTry(t T) (*bson.Document, error)
}

type funcReader[T any] struct {
	f func(bson.Value) (T, error)
}

func (r funcReader[T]) ReadTry(v bson.Value) (T, error) { return r.f(v) }

// ReaderFunc adapts a plain function to a Reader.
func ReaderFunc[T any](f func(bson.Value) (T, error)) Reader[T] { return funcReader[T]{f} }

type funcWriter[T any] struct {
	f func(T) (bson.Value, error)
}

func (w funcWriter[T]) WriteTry(t T) (bson.Value, error) { return w.f(t) }

// WriterFunc adapts a plain function to a Writer.
func WriterFunc[T any](f func(T) (bson.Value, error)) Writer[T] { return funcWriter[T]{f} }

type pairHandler[T any] struct {
	Reader[T]
	Writer[T]
}

// NewHandler pairs a Reader and a Writer into a Handler.
func NewHandler[T any](r Reader[T], w Writer[T]) Handler[T] { return pairHandler[T]{r, w} }

// SafeWriter is a Writer whose WriteTry never fails — most primitive
// writers are, since there is nothing to reject on the way out.
type SafeWriter[T any] interface {
	Writer[T]
	SafeWrite(t T) bson.Value
}

type safeFuncWriter[T any] struct {
	f func(T) bson.Value
}

func (w safeFuncWriter[T]) WriteTry(t T) (bson.Value, error) { return w.f(t), nil }
func (w safeFuncWriter[T]) SafeWrite(t T) bson.Value         { return w.f(t) }

// SafeWriterFunc adapts an infallible encoding function to a SafeWriter.
func SafeWriterFunc[T any](f func(T) bson.Value) SafeWriter[T] { return safeFuncWriter[T]{f} }

// ReadOpt discards the reader's error, returning ok=false on failure.
func ReadOpt[T any](r Reader[T], v bson.Value) (T, bool) {
	t, err := r.ReadTry(v)
	if err != nil {
		var zero T
		return zero, false
	}
	return t, true
}

// ReadOrElse returns def in place of a reader failure.
func ReadOrElse[T any](r Reader[T], v bson.Value, def T) T {
	t, ok := ReadOpt(r, v)
	if !ok {
		return def
	}
	return t
}

// WriteOpt discards the writer's error, returning ok=false on failure.
func WriteOpt[T any](w Writer[T], t T) (bson.Value, bool) {
	v, err := w.WriteTry(t)
	if err != nil {
		return nil, false
	}
	return v, true
}

// AsValueReader lifts a DocumentReader to a plain Reader, rejecting any
// bson.Value that is not a *bson.Document with a TypeMismatch.
func AsValueReader[T any](dr DocumentReader[T]) Reader[T] {
	return ReaderFunc(func(v bson.Value) (T, error) {
		var zero T
		d, ok := v.(*bson.Document)
		if !ok {
			return zero, typeMismatch("document", v)
		}
		return dr.ReadDocumentTry(d)
	})
}

// AsValueWriter lifts a DocumentWriter to a plain Writer.
func AsValueWriter[T any](dw DocumentWriter[T]) Writer[T] {
	return WriterFunc(func(t T) (bson.Value, error) {
		return dw.WriteDocumentTry(t)
	})
}
