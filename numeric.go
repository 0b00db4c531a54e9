// Copyright (C) bsonkit authors 2014-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package bson

import "math"

// NumberLike is satisfied by every numeric BSON variant. Each
// coercion succeeds (returns ok=true) iff the source value is exactly
// representable in the target: whole for integral targets, within the
// target's finite range for floats, and, for the Decimal128->float64
// direction, when the decimal round-trips through float64 (see
// parseFloatStrict).
type NumberLike interface {
	Value
	ToInt32() (int32, bool)
	ToInt64() (int64, bool)
	ToFloat32() (float32, bool)
	ToFloat64() (float64, bool)
	ToDecimal128() (Decimal128, bool)
}

// BooleanLike is satisfied by every numeric BSON variant, Boolean, Null,
// and Undefined: numbers are true iff non-zero, undefined/null are
// false, and booleans are themselves.
type BooleanLike interface {
	Value
	ToBool() bool
}

func (i Int32) ToInt32() (int32, bool) { return i.Value, true }
func (i Int32) ToInt64() (int64, bool) { return int64(i.Value), true }
func (i Int32) ToFloat32() (float32, bool) {
	f := float32(i.Value)
	// float32 carries a 24-bit mantissa; not every int32 survives.
	if float64(f) != float64(i.Value) {
		return 0, false
	}
	return f, true
}
func (i Int32) ToFloat64() (float64, bool) { return float64(i.Value), true }
func (i Int32) ToDecimal128() (Decimal128, bool) {
	return packDecimal128(i.Value < 0, absInt64(int64(i.Value)), 0), true
}
func (i Int32) ToBool() bool { return i.Value != 0 }

func (i Int64) ToInt32() (int32, bool) {
	if i.Value < math.MinInt32 || i.Value > math.MaxInt32 {
		return 0, false
	}
	return int32(i.Value), true
}
func (i Int64) ToInt64() (int64, bool) { return i.Value, true }
func (i Int64) ToFloat32() (float32, bool) {
	g, ok := i.ToFloat64()
	if !ok {
		return 0, false
	}
	f := float32(g)
	if float64(f) != g {
		return 0, false
	}
	return f, true
}
func (i Int64) ToFloat64() (float64, bool) {
	f := float64(i.Value)
	// MaxInt64 rounds up to 2^63 as a float64; converting that back to
	// int64 overflows, so reject it before the round-trip check.
	if f >= math.MaxInt64 || int64(f) != i.Value {
		return 0, false
	}
	return f, true
}
func (i Int64) ToDecimal128() (Decimal128, bool) {
	return packDecimal128(i.Value < 0, absInt64(i.Value), 0), true
}
func (i Int64) ToBool() bool { return i.Value != 0 }

func (d Double) ToInt32() (int32, bool) {
	if d.Value != math.Trunc(d.Value) || d.Value < math.MinInt32 || d.Value > math.MaxInt32 {
		return 0, false
	}
	return int32(d.Value), true
}
func (d Double) ToInt64() (int64, bool) {
	if d.Value != math.Trunc(d.Value) || d.Value < math.MinInt64 || d.Value >= math.MaxInt64 {
		return 0, false
	}
	return int64(d.Value), true
}
func (d Double) ToFloat32() (float32, bool) {
	f := float32(d.Value)
	if float64(f) != d.Value {
		return 0, false
	}
	return f, true
}
func (d Double) ToFloat64() (float64, bool) { return d.Value, true }
func (d Double) ToDecimal128() (Decimal128, bool) {
	dec, err := NewDecimal128FromString(formatFloat(d.Value))
	return dec, err == nil
}
func (d Double) ToBool() bool { return d.Value != 0 }

func (d Decimal128) ToInt32() (int32, bool) {
	i64, ok := d.ToInt64()
	if !ok || i64 < math.MinInt32 || i64 > math.MaxInt32 {
		return 0, false
	}
	return int32(i64), true
}
func (d Decimal128) ToInt64() (int64, bool) {
	negative, coeff, exponent := unpackDecimal128(d)
	if exponent < 0 {
		// Only representable as an integer if the fractional part is
		// entirely zero, i.e. coeff is divisible by 10^-exponent.
		div := pow10(-exponent)
		rem := new(bigIntAlias).Mod(coeff, div)
		if rem.Sign() != 0 {
			return 0, false
		}
		coeff = new(bigIntAlias).Div(coeff, div)
		exponent = 0
	}
	for exponent > 0 {
		coeff = new(bigIntAlias).Mul(coeff, bigTen)
		exponent--
	}
	if !coeff.IsInt64() {
		return 0, false
	}
	v := coeff.Int64()
	if negative {
		v = -v
	}
	return v, true
}
func (d Decimal128) ToFloat32() (float32, bool) {
	g, ok := d.ToFloat64()
	if !ok {
		return 0, false
	}
	f := float32(g)
	if float64(f) != g {
		return 0, false
	}
	return f, true
}

// ToFloat64 converts through the decimal string form, succeeding only
// when the nearest float64 denotes the same decimal value — more
// significant digits than a float64 carries fail instead of rounding.
func (d Decimal128) ToFloat64() (float64, bool) {
	s, err := d.DecimalString()
	if err != nil {
		return 0, false
	}
	f, err := parseFloatStrict(s)
	if err != nil {
		return 0, false
	}
	return f, true
}
func (d Decimal128) ToDecimal128() (Decimal128, bool) { return d, true }
func (d Decimal128) ToBool() bool {
	_, coeff, _ := unpackDecimal128(d)
	return coeff.Sign() != 0
}

func (b Boolean) ToBool() bool { return b.Value }
func (Null) ToBool() bool      { return false }
func (Undefined) ToBool() bool { return false }

// DateTime and Timestamp only expose an integral view: milliseconds since
// epoch, and the packed 64-bit (seconds<<32 | increment) respectively.
// ToInt32 succeeds only when the 64-bit value happens to fit in range.
func (d DateTime) ToInt64() (int64, bool) { return d.Millis, true }
func (d DateTime) ToInt32() (int32, bool) {
	if d.Millis < math.MinInt32 || d.Millis > math.MaxInt32 {
		return 0, false
	}
	return int32(d.Millis), true
}

func (t Timestamp) packed() int64 {
	return int64(uint64(t.Seconds)<<32 | uint64(t.Increment))
}
func (t Timestamp) ToInt64() (int64, bool) { return t.packed(), true }
func (t Timestamp) ToInt32() (int32, bool) {
	p := t.packed()
	if p < math.MinInt32 || p > math.MaxInt32 {
		return 0, false
	}
	return int32(p), true
}

func absInt64(v int64) *bigIntAlias {
	if v < 0 {
		v = -v
	}
	return new(bigIntAlias).SetInt64(v)
}
