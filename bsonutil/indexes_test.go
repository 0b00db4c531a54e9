// Copyright (C) bsonkit authors 2014-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package bsonutil_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bsonkit/bson"
	"github.com/bsonkit/bson/bsonutil"
)

func TestIsIndexKeysEqualNumericEpsilon(t *testing.T) {
	require := require.New(t)

	a := bson.NewDocument(bson.Element{Name: "x", Value: bson.Int32{Value: 1}})
	b := bson.NewDocument(bson.Element{Name: "x", Value: bson.Double{Value: 1.0000000001}})
	require.True(bsonutil.IsIndexKeysEqual(a, b))

	c := bson.NewDocument(bson.Element{Name: "x", Value: bson.Double{Value: -1}})
	require.False(bsonutil.IsIndexKeysEqual(a, c))
}

func TestIsIndexKeysEqualOrderSensitive(t *testing.T) {
	require := require.New(t)

	a := bson.NewDocument(
		bson.Element{Name: "x", Value: bson.Int32{Value: 1}},
		bson.Element{Name: "y", Value: bson.Int32{Value: 1}},
	)
	b := bson.NewDocument(
		bson.Element{Name: "y", Value: bson.Int32{Value: 1}},
		bson.Element{Name: "x", Value: bson.Int32{Value: 1}},
	)
	require.False(bsonutil.IsIndexKeysEqual(a, b))
}

func TestIsIndexKeysEqualStringDirections(t *testing.T) {
	require := require.New(t)

	a := bson.NewDocument(bson.Element{Name: "x", Value: bson.String{Value: "text"}})
	b := bson.NewDocument(bson.Element{Name: "x", Value: bson.String{Value: "text"}})
	require.True(bsonutil.IsIndexKeysEqual(a, b))

	c := bson.NewDocument(bson.Element{Name: "x", Value: bson.Int32{Value: 1}})
	require.False(bsonutil.IsIndexKeysEqual(a, c))
}
