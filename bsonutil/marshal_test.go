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

func TestMarshalOrderedPreservesInsertionOrder(t *testing.T) {
	require := require.New(t)

	doc := bson.NewDocument(
		bson.Element{Name: "z", Value: bson.Int32{Value: 1}},
		bson.Element{Name: "a", Value: bson.Int32{Value: 2}},
		bson.Element{Name: "m", Value: bson.Int32{Value: 3}},
	)

	out, err := bsonutil.MarshalOrdered(doc)
	require.NoError(err)
	require.Equal(`{"z":1,"a":2,"m":3}`, string(out))
}

func TestMarshalOrderedNestedDocumentAndArray(t *testing.T) {
	require := require.New(t)

	doc := bson.NewDocument(
		bson.Element{Name: "outer", Value: bson.NewDocument(
			bson.Element{Name: "inner", Value: bson.String{Value: "v"}},
		)},
		bson.Element{Name: "list", Value: bson.NewArray(bson.Int32{Value: 1}, bson.Int32{Value: 2})},
	)

	out, err := bsonutil.MarshalOrdered(doc)
	require.NoError(err)
	require.Equal(`{"outer":{"inner":"v"},"list":[1,2]}`, string(out))
}
