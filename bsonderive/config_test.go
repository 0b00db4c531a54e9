// Copyright (C) bsonkit authors 2014-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package bsonderive_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bsonkit/bson"
	"github.com/bsonkit/bson/bsoncodec"
	"github.com/bsonkit/bson/bsonderive"
)

type amount struct {
	Cents int64
}

func TestRegisterHandlerOverridesDefaultCodec(t *testing.T) {
	require := require.New(t)

	type invoice struct {
		Total amount
	}

	amountHandler := bsoncodec.NewHandler[amount](
		bsoncodec.ReaderFunc(func(v bson.Value) (amount, error) {
			cents, err := bsoncodec.Int64Handler.ReadTry(v)
			if err != nil {
				return amount{}, err
			}
			return amount{Cents: cents}, nil
		}),
		bsoncodec.WriterFunc(func(a amount) (bson.Value, error) {
			return bsoncodec.Int64Handler.WriteTry(a.Cents)
		}),
	)

	cfg := bsonderive.RegisterHandler[amount](bsonderive.DefaultConfig(), amountHandler)
	h, err := bsonderive.DeriveHandler[invoice](cfg)
	require.NoError(err)

	v, err := h.WriteTry(invoice{Total: amount{Cents: 499}})
	require.NoError(err)

	doc := v.(*bson.Document)
	total, ok := doc.Get("Total")
	require.True(ok)
	require.Equal(bson.Int64{Value: 499}, total)

	back, err := h.ReadTry(v)
	require.NoError(err)
	require.Equal(int64(499), back.Total.Cents)
}

func TestSnakeCaseConversion(t *testing.T) {
	require := require.New(t)
	require.Equal("user_id", bsonderive.SnakeCase("UserID"))
	require.Equal("full_name", bsonderive.SnakeCase("FullName"))
	require.Equal("id", bsonderive.SnakeCase("ID"))
}
