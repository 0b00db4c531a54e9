// Copyright (C) bsonkit authors 2014-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package bsoncodec

import (
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/samber/lo"
	"golang.org/x/exp/slices"

	"github.com/bsonkit/bson"
)

// SliceHandler lifts a Handler[T] to a Handler[[]T], reading/writing a
// bson.Array in element order.
func SliceHandler[T any](elem Handler[T]) Handler[[]T] {
	return NewHandler(
		ReaderFunc(func(v bson.Value) ([]T, error) {
			arr, ok := v.(*bson.Array)
			if !ok {
				return nil, typeMismatch("array", v)
			}
			out := make([]T, arr.Len())
			for i, ev := range arr.Values() {
				t, err := elem.ReadTry(ev)
				if err != nil {
					return nil, bsonerrWithIndex(i, err)
				}
				out[i] = t
			}
			return out, nil
		}),
		WriterFunc(func(ts []T) (bson.Value, error) {
			values := make([]bson.Value, len(ts))
			for i, t := range ts {
				v, err := elem.WriteTry(t)
				if err != nil {
					return nil, bsonerrWithIndex(i, err)
				}
				values[i] = v
			}
			return bson.NewArray(values...), nil
		}),
	)
}

// MapHandler lifts a Handler[V] to a Handler[map[string]V], reading/
// writing a bson.Document keyed by field name.
func MapHandler[V any](elem Handler[V]) Handler[map[string]V] {
	return NewHandler(
		ReaderFunc(func(v bson.Value) (map[string]V, error) {
			doc, ok := v.(*bson.Document)
			if !ok {
				return nil, typeMismatch("document", v)
			}
			out := make(map[string]V, doc.Size())
			for _, e := range doc.Elements() {
				t, err := elem.ReadTry(e.Value)
				if err != nil {
					return nil, bsonerrWithKey(e.Name, err)
				}
				out[e.Name] = t
			}
			return out, nil
		}),
		WriterFunc(func(m map[string]V) (bson.Value, error) {
			keys := lo.Keys(m)
			slices.Sort(keys)
			elements := make([]bson.Element, 0, len(keys))
			for _, k := range keys {
				v, err := elem.WriteTry(m[k])
				if err != nil {
					return nil, bsonerrWithKey(k, err)
				}
				elements = append(elements, bson.Element{Name: k, Value: v})
			}
			return bson.NewStrictDocument(elements...), nil
		}),
	)
}

// SetHandler lifts a Handler[T] to a Handler[mapset.Set[T]]. Sets have no
// canonical order; reading simply ignores array position, and writing
// sorts elements by their encoded string form so that repeated encodes of
// the same set are byte-identical.
func SetHandler[T comparable](elem Handler[T]) Handler[mapset.Set[T]] {
	return NewHandler(
		ReaderFunc(func(v bson.Value) (mapset.Set[T], error) {
			arr, ok := v.(*bson.Array)
			if !ok {
				return nil, typeMismatch("array", v)
			}
			out := mapset.NewThreadUnsafeSet[T]()
			for i, ev := range arr.Values() {
				t, err := elem.ReadTry(ev)
				if err != nil {
					return nil, bsonerrWithIndex(i, err)
				}
				out.Add(t)
			}
			return out, nil
		}),
		WriterFunc(func(s mapset.Set[T]) (bson.Value, error) {
			items := s.ToSlice()
			encoded := make([]bson.Value, len(items))
			for i, t := range items {
				v, err := elem.WriteTry(t)
				if err != nil {
					return nil, err
				}
				encoded[i] = v
			}
			slices.SortFunc(encoded, func(a, b bson.Value) int {
				return strings.Compare(a.String(), b.String())
			})
			return bson.NewArray(encoded...), nil
		}),
	)
}
