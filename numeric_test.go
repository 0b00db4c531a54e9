// Copyright (C) bsonkit authors 2014-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package bson

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

// Every numeric variant encoding the same whole number must agree through
// ToInt32 (and the rest of the lattice).
func TestNumericCoercionAgreesAcrossVariants(t *testing.T) {
	require := require.New(t)

	dec, err := NewDecimal128FromString("42")
	require.NoError(err)

	variants := []NumberLike{
		Int32{Value: 42},
		Int64{Value: 42},
		Double{Value: 42},
		dec,
	}
	for _, v := range variants {
		i32, ok := v.ToInt32()
		require.True(ok, "%T", v)
		require.EqualValues(42, i32)

		i64, ok := v.ToInt64()
		require.True(ok, "%T", v)
		require.EqualValues(42, i64)

		f64, ok := v.ToFloat64()
		require.True(ok, "%T", v)
		require.EqualValues(42, f64)
	}
}

func TestNumericCoercionRejectsInexact(t *testing.T) {
	require := require.New(t)

	_, ok := Double{Value: 2.5}.ToInt32()
	require.False(ok)

	_, ok = Double{Value: 2.5}.ToInt64()
	require.False(ok)

	_, ok = Int64{Value: math.MaxInt64}.ToInt32()
	require.False(ok)

	// MaxInt64 is not exactly representable as a float64.
	_, ok = Int64{Value: math.MaxInt64}.ToFloat64()
	require.False(ok)

	// 2^24+1 is the first integer float32 cannot hold.
	_, ok = Int32{Value: 1<<24 + 1}.ToFloat32()
	require.False(ok)
	f, ok := Int32{Value: 1 << 24}.ToFloat32()
	require.True(ok)
	require.EqualValues(1<<24, f)

	half, err := NewDecimal128FromString("0.5")
	require.NoError(err)
	_, ok = half.ToInt64()
	require.False(ok)
}

func TestDecimal128ToFloat64Exactness(t *testing.T) {
	require := require.New(t)

	// 18 significant digits are more than a float64 can carry.
	wide, err := NewDecimal128FromString("123456789012345678")
	require.NoError(err)
	_, ok := wide.ToFloat64()
	require.False(ok)

	// 2^53 is the top of float64's exact-integer range.
	top, err := NewDecimal128FromString("9007199254740992")
	require.NoError(err)
	f, ok := top.ToFloat64()
	require.True(ok)
	require.EqualValues(9007199254740992, f)

	// 2^53+1 rounds down to 2^53, so it must be rejected.
	beyond, err := NewDecimal128FromString("9007199254740993")
	require.NoError(err)
	_, ok = beyond.ToFloat64()
	require.False(ok)

	// "0.1" is the shortest decimal form of its nearest float64, so it
	// converts even though the binary value is not exact.
	tenth, err := NewDecimal128FromString("0.1")
	require.NoError(err)
	f, ok = tenth.ToFloat64()
	require.True(ok)
	require.Equal(0.1, f)
}

func TestDecimal128IntegralCoercion(t *testing.T) {
	require := require.New(t)

	// "120.00" is 120 exactly (coefficient 12000, exponent -2): a negative
	// exponent is fine as long as the fractional part is all zeros.
	d, err := NewDecimal128FromString("120.00")
	require.NoError(err)
	i, ok := d.ToInt64()
	require.True(ok)
	require.EqualValues(120, i)

	neg, err := NewDecimal128FromString("-7")
	require.NoError(err)
	i, ok = neg.ToInt64()
	require.True(ok)
	require.EqualValues(-7, i)
}

func TestBooleanLikeViews(t *testing.T) {
	require := require.New(t)

	require.True(Int32{Value: -3}.ToBool())
	require.False(Int32{}.ToBool())
	require.True(Double{Value: 0.1}.ToBool())
	require.False(Double{}.ToBool())
	require.True(Boolean{Value: true}.ToBool())
	require.False(Null{}.ToBool())
	require.False(Undefined{}.ToBool())

	zero, err := NewDecimal128FromString("0")
	require.NoError(err)
	require.False(zero.ToBool())
}

func TestDateTimeAndTimestampIntegralViews(t *testing.T) {
	require := require.New(t)

	ms, ok := DateTime{Millis: 1234567890123}.ToInt64()
	require.True(ok)
	require.EqualValues(1234567890123, ms)

	_, ok = DateTime{Millis: 1234567890123}.ToInt32()
	require.False(ok)

	packed, ok := Timestamp{Seconds: 1, Increment: 2}.ToInt64()
	require.True(ok)
	require.Equal(int64(1)<<32|2, packed)
}
