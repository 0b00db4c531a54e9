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
	"github.com/bsonkit/bson/bsonderive"
)

type shape interface{ isShape() }

type circle struct{ Radius float64 }
type square struct{ Side float64 }

func (circle) isShape() {}
func (square) isShape() {}

func TestDeriveSumDispatchRoundTrip(t *testing.T) {
	require := require.New(t)

	h, err := bsonderive.DeriveSum[shape](bsonderive.DefaultConfig(), circle{}, square{})
	require.NoError(err)

	v, err := h.WriteTry(circle{Radius: 2.5})
	require.NoError(err)

	doc, ok := v.(*bson.Document)
	require.True(ok)
	disc, ok := doc.Get("className")
	require.True(ok)
	require.Equal(bson.String{Value: "circle"}, disc)

	back, err := h.ReadTry(v)
	require.NoError(err)
	c, ok := back.(circle)
	require.True(ok)
	require.Equal(2.5, c.Radius)
}

func TestDeriveSumUnknownDiscriminatorFails(t *testing.T) {
	require := require.New(t)

	h, err := bsonderive.DeriveSum[shape](bsonderive.DefaultConfig(), circle{}, square{})
	require.NoError(err)

	bogus := bson.NewDocument(bson.Element{Name: "className", Value: bson.String{Value: "triangle"}})
	_, err = h.ReadTry(bogus)
	require.Error(err)
}

func TestDeriveSumCustomDiscriminatorKeyAndNaming(t *testing.T) {
	require := require.New(t)

	cfg := bsonderive.DefaultConfig().
		WithDiscriminatorKey("kind").
		WithTypeNaming(bsonderive.PascalCase)
	h, err := bsonderive.DeriveSum[shape](cfg, circle{}, square{})
	require.NoError(err)

	v, err := h.WriteTry(square{Side: 1})
	require.NoError(err)
	doc := v.(*bson.Document)
	disc, ok := doc.Get("kind")
	require.True(ok)
	require.Equal(bson.String{Value: "Square"}, disc)
}

func TestDeriveSumDiscriminatorCollision(t *testing.T) {
	_, err := bsonderive.DeriveSum[shape](
		bsonderive.DefaultConfig().WithTypeNaming(func(string) string { return "same" }),
		circle{}, square{},
	)
	require.Error(t, err)
}

type treeNode interface{ isTree() }

type leaf struct{ Value int32 }
type branch struct {
	Left  treeNode
	Right treeNode
}

func (leaf) isTree()   {}
func (branch) isTree() {}

func TestDeriveSumRecursiveVariant(t *testing.T) {
	require := require.New(t)

	h, err := bsonderive.DeriveSum[treeNode](bsonderive.DefaultConfig(), leaf{}, branch{})
	require.NoError(err)

	tree := branch{Left: leaf{Value: 1}, Right: leaf{Value: 2}}
	v, err := h.WriteTry(tree)
	require.NoError(err)

	back, err := h.ReadTry(v)
	require.NoError(err)
	b, ok := back.(branch)
	require.True(ok)
	l, ok := b.Left.(leaf)
	require.True(ok)
	require.Equal(int32(1), l.Value)
	r, ok := b.Right.(leaf)
	require.True(ok)
	require.Equal(int32(2), r.Value)
}
