// Copyright (C) bsonkit authors 2014-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package bsoncodec_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bsonkit/bson"
	"github.com/bsonkit/bson/bsoncodec"
)

func TestMapReader(t *testing.T) {
	require := require.New(t)

	lenReader := bsoncodec.MapReader(bsoncodec.StringHandler, func(s string) int { return len(s) })
	n, err := lenReader.ReadTry(bson.String{Value: "hello"})
	require.NoError(err)
	require.Equal(5, n)
}

func TestCollectRejectsPredicate(t *testing.T) {
	require := require.New(t)

	positive := bsoncodec.Collect(bsoncodec.Int32Handler, func(i int32) (int32, bool) {
		return i, i > 0
	})

	v, err := positive.ReadTry(bson.Int32{Value: 5})
	require.NoError(err)
	require.EqualValues(5, v)

	_, err = positive.ReadTry(bson.Int32{Value: -1})
	require.Error(err)
}

func TestAfterReadValidation(t *testing.T) {
	require := require.New(t)

	nonEmpty := bsoncodec.AfterRead(bsoncodec.StringHandler, func(s string) error {
		if s == "" {
			return fmt.Errorf("must not be empty")
		}
		return nil
	})

	_, err := nonEmpty.ReadTry(bson.String{Value: ""})
	require.Error(err)

	v, err := nonEmpty.ReadTry(bson.String{Value: "ok"})
	require.NoError(err)
	require.Equal("ok", v)
}

func TestContramapAndNarrow(t *testing.T) {
	require := require.New(t)

	type wrapped struct{ inner string }

	w := bsoncodec.Contramap(bsoncodec.StringHandler, func(x wrapped) string { return x.inner })
	v, err := w.WriteTry(wrapped{inner: "z"})
	require.NoError(err)
	require.Equal(bson.String{Value: "z"}, v)

	n := bsoncodec.Narrow(bsoncodec.StringHandler, func(x wrapped) (string, bool) {
		if x.inner == "" {
			return "", false
		}
		return x.inner, true
	})
	_, err = n.WriteTry(wrapped{})
	require.Error(err)
}

func TestBeforeAndAfterWrite(t *testing.T) {
	require := require.New(t)

	shout := bsoncodec.BeforeWrite(bsoncodec.StringHandler, func(s string) string { return s + "!" })
	v, err := shout.WriteTry("hi")
	require.NoError(err)
	require.Equal(bson.String{Value: "hi!"}, v)

	tagged := bsoncodec.AfterWrite(bsoncodec.Int32Handler, func(v bson.Value) bson.Value {
		return bson.Int64{Value: int64(v.(bson.Int32).Value)}
	})
	v2, err := tagged.WriteTry(7)
	require.NoError(err)
	require.Equal(bson.Int64{Value: 7}, v2)
}

func TestWiden(t *testing.T) {
	require := require.New(t)

	type concrete struct{ n int32 }

	r := bsoncodec.Widen[int32, concrete](bsoncodec.Int32Handler, func(i int32) concrete { return concrete{n: i} })

	out, err := r.ReadTry(bson.Int32{Value: 9})
	require.NoError(err)
	require.Equal(concrete{n: 9}, out)
}
