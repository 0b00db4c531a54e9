// Copyright (C) bsonkit authors 2014-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package bson

import (
	"strconv"

	"github.com/bsonkit/bson/bsonerr"
)

// ValueReader is the minimal reader shape the typed accessors in this
// file need: a function from a Value to a T or an error. bsoncodec.Reader[T]
// values satisfy this via their ReadTry method value, e.g.
// bson.GetAsTry(doc, "name", myReader.ReadTry).
type ValueReader[T any] func(Value) (T, error)

// GetAsOpt returns None if key is absent, the stored value is Null, or
// read fails; otherwise Some(v).
func GetAsOpt[T any](d *Document, key string, read ValueReader[T]) Option[T] {
	v, ok := d.Get(key)
	if !ok {
		return None[T]()
	}
	if _, isNull := v.(Null); isNull {
		return None[T]()
	}
	t, err := read(v)
	if err != nil {
		return None[T]()
	}
	return Some(t)
}

// GetAsTry fails with ValueNotFound when key is absent or Null;
// otherwise propagates the reader's failure or success.
func GetAsTry[T any](d *Document, key string, read ValueReader[T]) (T, error) {
	var zero T
	v, ok := d.Get(key)
	if !ok {
		return zero, bsonerr.NewValueNotFound(key)
	}
	if _, isNull := v.(Null); isNull {
		return zero, bsonerr.NewValueNotFound(key)
	}
	t, err := read(v)
	if err != nil {
		return zero, bsonerr.WithPath(key, err)
	}
	return t, nil
}

// GetOrElse returns def on an absent/Null key or a reader failure.
func GetOrElse[T any](d *Document, key string, def T, read ValueReader[T]) T {
	t, err := GetAsTry(d, key, read)
	if err != nil {
		return def
	}
	return t
}

// GetAsUnflattenedTry returns Success(None) on an absent-or-Null key,
// Success(Some(v)) on a successful read, and an error on reader failure
// — distinct from GetAsOpt, which swallows reader failures into None.
func GetAsUnflattenedTry[T any](d *Document, key string, read ValueReader[T]) (Option[T], error) {
	v, ok := d.Get(key)
	if !ok {
		return None[T](), nil
	}
	if _, isNull := v.(Null); isNull {
		return None[T](), nil
	}
	t, err := read(v)
	if err != nil {
		return None[T](), bsonerr.WithPath(key, err)
	}
	return Some(t), nil
}

// ArrayGetAsOpt is the Array analogue of GetAsOpt, indexed by position.
func ArrayGetAsOpt[T any](a *Array, index int, read ValueReader[T]) Option[T] {
	v, ok := a.Get(index)
	if !ok {
		return None[T]()
	}
	if _, isNull := v.(Null); isNull {
		return None[T]()
	}
	t, err := read(v)
	if err != nil {
		return None[T]()
	}
	return Some(t)
}

// ArrayGetAsTry is the Array analogue of GetAsTry.
func ArrayGetAsTry[T any](a *Array, index int, read ValueReader[T]) (T, error) {
	var zero T
	v, ok := a.Get(index)
	if !ok {
		return zero, bsonerr.NewValueNotFound(indexPath(index))
	}
	if _, isNull := v.(Null); isNull {
		return zero, bsonerr.NewValueNotFound(indexPath(index))
	}
	t, err := read(v)
	if err != nil {
		return zero, bsonerr.WithPath(indexPath(index), err)
	}
	return t, nil
}

// ArrayGetOrElse returns def on an out-of-range/Null index or a reader
// failure.
func ArrayGetOrElse[T any](a *Array, index int, def T, read ValueReader[T]) T {
	t, err := ArrayGetAsTry(a, index, read)
	if err != nil {
		return def
	}
	return t
}

// ArrayGetAsUnflattenedTry is the Array analogue of GetAsUnflattenedTry.
func ArrayGetAsUnflattenedTry[T any](a *Array, index int, read ValueReader[T]) (Option[T], error) {
	v, ok := a.Get(index)
	if !ok {
		return None[T](), nil
	}
	if _, isNull := v.(Null); isNull {
		return None[T](), nil
	}
	t, err := read(v)
	if err != nil {
		return None[T](), bsonerr.WithPath(indexPath(index), err)
	}
	return Some(t), nil
}

func indexPath(i int) string {
	return "[" + strconv.Itoa(i) + "]"
}
