// Copyright (C) bsonkit authors 2014-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package bsonutil_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/bsonkit/bson"
	"github.com/bsonkit/bson/bsonutil"
)

func TestToNativeDocumentAndArray(t *testing.T) {
	require := require.New(t)

	doc := bson.NewDocument(
		bson.Element{Name: "name", Value: bson.String{Value: "Ada"}},
		bson.Element{Name: "age", Value: bson.Int32{Value: 30}},
		bson.Element{Name: "tags", Value: bson.NewArray(bson.String{Value: "x"}, bson.String{Value: "y"})},
	)

	native, err := bsonutil.ToNative(doc)
	require.NoError(err)

	want := map[string]interface{}{
		"name": "Ada",
		"age":  int32(30),
		"tags": []interface{}{"x", "y"},
	}
	if diff := cmp.Diff(want, native); diff != "" {
		t.Errorf("ToNative mismatch (-want +got):\n%s", diff)
	}
}

func TestFromNativeRoundTrip(t *testing.T) {
	require := require.New(t)

	native := map[string]interface{}{
		"ok":    true,
		"count": int32(3),
		"list":  []interface{}{"a", "b"},
	}

	v, err := bsonutil.FromNative(native)
	require.NoError(err)

	doc, ok := v.(*bson.Document)
	require.True(ok)
	require.True(doc.Contains("ok"))
	require.True(doc.Contains("count"))
	require.True(doc.Contains("list"))

	back, err := bsonutil.ToNative(doc)
	require.NoError(err)
	backMap := back.(map[string]interface{})
	require.Equal(true, backMap["ok"])
	require.Equal(int32(3), backMap["count"])
}

func TestFromNativeRejectsUnsupportedType(t *testing.T) {
	_, err := bsonutil.FromNative(complex(1, 2))
	require.Error(t, err)
}

func TestToNativePassesOpaqueScalarsThrough(t *testing.T) {
	require := require.New(t)

	oid := bson.NewObjectID()
	native, err := bsonutil.ToNative(oid)
	require.NoError(err)
	require.Equal(oid, native)
}
