// Copyright (C) bsonkit authors 2014-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package bson

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bsonkit/bson/bsonerr"
)

func stringReader(v Value) (string, error) {
	s, ok := v.(String)
	if !ok {
		return "", bsonerr.NewTypeMismatch("string", v.BSONType().String())
	}
	return s.Value, nil
}

func TestGetAsOptSwallowsFailureAndNull(t *testing.T) {
	require := require.New(t)

	doc := NewDocument(
		Element{Name: "name", Value: String{Value: "Ada"}},
		Element{Name: "missing_type", Value: Int32{Value: 1}},
		Element{Name: "nulled", Value: Null{}},
	)

	opt := GetAsOpt(doc, "name", stringReader)
	v, ok := opt.Get()
	require.True(ok)
	require.Equal("Ada", v)

	opt = GetAsOpt(doc, "absent", stringReader)
	_, ok = opt.Get()
	require.False(ok)

	opt = GetAsOpt(doc, "nulled", stringReader)
	_, ok = opt.Get()
	require.False(ok)

	opt = GetAsOpt(doc, "missing_type", stringReader)
	_, ok = opt.Get()
	require.False(ok)
}

func TestGetAsTryDistinguishesAbsentFromReaderError(t *testing.T) {
	require := require.New(t)

	doc := NewDocument(Element{Name: "name", Value: String{Value: "Ada"}})

	v, err := GetAsTry(doc, "name", stringReader)
	require.NoError(err)
	require.Equal("Ada", v)

	_, err = GetAsTry(doc, "absent", stringReader)
	require.Error(err)
}

func TestGetOrElseFallsBackOnFailure(t *testing.T) {
	require := require.New(t)

	doc := NewDocument(Element{Name: "x", Value: Int32{Value: 1}})
	require.Equal("fallback", GetOrElse(doc, "x", "fallback", stringReader))
	require.Equal("fallback", GetOrElse(doc, "absent", "fallback", stringReader))
}

func TestGetAsUnflattenedTryPropagatesReaderError(t *testing.T) {
	require := require.New(t)

	doc := NewDocument(Element{Name: "x", Value: Int32{Value: 1}})

	opt, err := GetAsUnflattenedTry(doc, "absent", stringReader)
	require.NoError(err)
	_, ok := opt.Get()
	require.False(ok)

	_, err = GetAsUnflattenedTry(doc, "x", stringReader)
	require.Error(err)
}

func TestArrayGetAsOptAndTry(t *testing.T) {
	require := require.New(t)

	arr := NewArray(String{Value: "a"}, Null{}, Int32{Value: 1})

	opt := ArrayGetAsOpt(arr, 0, stringReader)
	v, ok := opt.Get()
	require.True(ok)
	require.Equal("a", v)

	opt = ArrayGetAsOpt(arr, 1, stringReader)
	_, ok = opt.Get()
	require.False(ok)

	_, err := ArrayGetAsTry(arr, 5, stringReader)
	require.Error(err)

	require.Equal("d", ArrayGetOrElse(arr, 2, "d", stringReader))

	opt2, err := ArrayGetAsUnflattenedTry(arr, 1, stringReader)
	require.NoError(err)
	_, ok = opt2.Get()
	require.False(ok)

	_, err = ArrayGetAsUnflattenedTry(arr, 2, stringReader)
	require.Error(err)
}

func TestElementsOfProducesZeroOrOneElement(t *testing.T) {
	require := require.New(t)

	none := ElementsOf("nick", None[string](), func(s string) Value { return String{Value: s} })
	require.Empty(none)

	some := ElementsOf("nick", Some("Ada"), func(s string) Value { return String{Value: s} })
	require.Len(some, 1)
	require.Equal("nick", some[0].Name)
	require.Equal(String{Value: "Ada"}, some[0].Value)
}
