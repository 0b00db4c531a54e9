// Copyright (C) bsonkit authors 2014-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package bson

import (
	"fmt"
	"strings"
)

// Double is the Double BSON variant: an IEEE-754 64-bit float.
type Double struct {
	baseValue
	Value float64
}

func (d Double) BSONType() Type { return TypeDouble }
func (d Double) ByteSize() int  { return 8 }
func (d Double) String() string { return formatFloat(d.Value) }
func (d Double) Equal(o Value) bool {
	od, ok := o.(Double)
	return ok && od.Value == d.Value
}

// String is the String BSON variant: UTF-8 text.
type String struct {
	baseValue
	Value string
}

func (s String) BSONType() Type { return TypeString }
func (s String) ByteSize() int  { return 5 + len(s.Value) }
func (s String) String() string {
	return "'" + strings.ReplaceAll(s.Value, "'", "\\'") + "'"
}
func (s String) Equal(o Value) bool {
	os_, ok := o.(String)
	return ok && os_.Value == s.Value
}

// Binary is the Binary BSON variant: a subtype byte plus opaque bytes.
type Binary struct {
	baseValue
	Subtype byte
	Data    []byte
}

func (b Binary) BSONType() Type { return TypeBinary }
func (b Binary) ByteSize() int  { return 5 + len(b.Data) }
func (b Binary) String() string {
	return fmt.Sprintf("BinData(%d, %x)", b.Subtype, b.Data)
}
func (b Binary) Equal(o Value) bool {
	ob, ok := o.(Binary)
	if !ok || ob.Subtype != b.Subtype || len(ob.Data) != len(b.Data) {
		return false
	}
	for i := range b.Data {
		if b.Data[i] != ob.Data[i] {
			return false
		}
	}
	return true
}

// Undefined is the deprecated Undefined BSON variant.
type Undefined struct{ baseValue }

func (Undefined) BSONType() Type { return TypeUndefined }
func (Undefined) ByteSize() int  { return 0 }
func (Undefined) String() string { return "undefined" }
func (Undefined) Equal(o Value) bool {
	_, ok := o.(Undefined)
	return ok
}

// Boolean is the Boolean BSON variant.
type Boolean struct {
	baseValue
	Value bool
}

func (b Boolean) BSONType() Type { return TypeBoolean }
func (b Boolean) ByteSize() int  { return 1 }
func (b Boolean) String() string {
	if b.Value {
		return "true"
	}
	return "false"
}
func (b Boolean) Equal(o Value) bool {
	ob, ok := o.(Boolean)
	return ok && ob.Value == b.Value
}

// DateTime is the DateTime BSON variant: signed 64-bit milliseconds since
// the Unix epoch.
type DateTime struct {
	baseValue
	Millis int64
}

func (d DateTime) BSONType() Type { return TypeDateTime }
func (d DateTime) ByteSize() int  { return 8 }
func (d DateTime) String() string {
	return fmt.Sprintf("ISODate('%s')", formatISODate(d.Millis))
}
func (d DateTime) Equal(o Value) bool {
	od, ok := o.(DateTime)
	return ok && od.Millis == d.Millis
}

// Null is the Null BSON variant.
type Null struct{ baseValue }

func (Null) BSONType() Type { return TypeNull }
func (Null) ByteSize() int  { return 0 }
func (Null) String() string { return "null" }
func (Null) Equal(o Value) bool {
	_, ok := o.(Null)
	return ok
}

// Regex is the Regex BSON variant: a pattern plus flags, both encoded as
// BSON cstrings (no length prefix).
type Regex struct {
	baseValue
	Pattern string
	Flags   string
}

func (r Regex) BSONType() Type { return TypeRegex }
func (r Regex) ByteSize() int  { return 2 + len(r.Pattern) + len(r.Flags) }
func (r Regex) String() string {
	return fmt.Sprintf("/%s/%s", r.Pattern, r.Flags)
}
func (r Regex) Equal(o Value) bool {
	or_, ok := o.(Regex)
	return ok && or_.Pattern == r.Pattern && or_.Flags == r.Flags
}

// JavaScript is the JavaScript (no scope) BSON variant.
type JavaScript struct {
	baseValue
	Code string
}

func (j JavaScript) BSONType() Type { return TypeJavaScript }
func (j JavaScript) ByteSize() int  { return 5 + len(j.Code) }
func (j JavaScript) String() string {
	return fmt.Sprintf("Code('%s')", j.Code)
}
func (j JavaScript) Equal(o Value) bool {
	oj, ok := o.(JavaScript)
	return ok && oj.Code == j.Code
}

// Symbol is the deprecated Symbol BSON variant.
type Symbol struct {
	baseValue
	Value string
}

func (s Symbol) BSONType() Type { return TypeSymbol }
func (s Symbol) ByteSize() int  { return 5 + len(s.Value) }
func (s Symbol) String() string {
	return fmt.Sprintf("Symbol('%s')", s.Value)
}
func (s Symbol) Equal(o Value) bool {
	os_, ok := o.(Symbol)
	return ok && os_.Value == s.Value
}

// JavaScriptWithScope is the JavaScript-with-scope BSON variant: source
// text plus a Document scope.
type JavaScriptWithScope struct {
	baseValue
	Code  string
	Scope *Document
}

func (j JavaScriptWithScope) BSONType() Type { return TypeJavaScriptWithScope }
func (j JavaScriptWithScope) ByteSize() int {
	scopeSize := 5
	if j.Scope != nil {
		scopeSize = j.Scope.ByteSize()
	}
	// int32 total length + length-prefixed source + scope document.
	return 4 + 5 + len(j.Code) + scopeSize
}
func (j JavaScriptWithScope) String() string {
	return fmt.Sprintf("Code('%s', %s)", j.Code, j.Scope.String())
}
func (j JavaScriptWithScope) Equal(o Value) bool {
	oj, ok := o.(JavaScriptWithScope)
	if !ok || oj.Code != j.Code {
		return false
	}
	if j.Scope == nil || oj.Scope == nil {
		return j.Scope == oj.Scope
	}
	return j.Scope.Equal(oj.Scope)
}

// Int32 is the Int32 BSON variant.
type Int32 struct {
	baseValue
	Value int32
}

func (i Int32) BSONType() Type { return TypeInt32 }
func (i Int32) ByteSize() int  { return 4 }
func (i Int32) String() string { return fmt.Sprintf("NumberInt(%d)", i.Value) }
func (i Int32) Equal(o Value) bool {
	oi, ok := o.(Int32)
	return ok && oi.Value == i.Value
}

// Timestamp is the Timestamp BSON variant: a packed 64-bit value with
// seconds in the high 32 bits and an ordinal in the low 32 bits.
type Timestamp struct {
	baseValue
	Seconds   uint32
	Increment uint32
}

func (t Timestamp) BSONType() Type { return TypeTimestamp }
func (t Timestamp) ByteSize() int  { return 8 }
func (t Timestamp) String() string {
	return fmt.Sprintf("Timestamp(%d, %d)", t.Seconds, t.Increment)
}
func (t Timestamp) Equal(o Value) bool {
	ot, ok := o.(Timestamp)
	return ok && ot.Seconds == t.Seconds && ot.Increment == t.Increment
}

// Int64 is the Int64 BSON variant.
type Int64 struct {
	baseValue
	Value int64
}

func (i Int64) BSONType() Type { return TypeInt64 }
func (i Int64) ByteSize() int  { return 8 }
func (i Int64) String() string { return fmt.Sprintf("NumberLong(%d)", i.Value) }
func (i Int64) Equal(o Value) bool {
	oi, ok := o.(Int64)
	return ok && oi.Value == i.Value
}

// Decimal128 is the Decimal128 BSON variant: the 128-bit IEEE-754-2008
// decimal floating point format, stored as its two little-endian 64-bit
// halves. Decimal string parsing/canonicalization is delegated to
// gopkg.in/mgo.v2/bson's ParseDecimal128 (see decimal128.go).
type Decimal128 struct {
	baseValue
	Hi uint64
	Lo uint64
}

func (d Decimal128) BSONType() Type { return TypeDecimal128 }
func (d Decimal128) ByteSize() int  { return 16 }
func (d Decimal128) String() string {
	s, err := d.DecimalString()
	if err != nil {
		return fmt.Sprintf("NumberDecimal('<invalid: %v>')", err)
	}
	return fmt.Sprintf("NumberDecimal('%s')", s)
}
func (d Decimal128) Equal(o Value) bool {
	od, ok := o.(Decimal128)
	return ok && od.Hi == d.Hi && od.Lo == d.Lo
}

// MinKey is the MinKey BSON variant, a value that compares less than
// every other BSON value.
type MinKey struct{ baseValue }

func (MinKey) BSONType() Type { return TypeMinKey }
func (MinKey) ByteSize() int  { return 0 }
func (MinKey) String() string { return "MinKey" }
func (MinKey) Equal(o Value) bool {
	_, ok := o.(MinKey)
	return ok
}

// MaxKey is the MaxKey BSON variant, a value that compares greater than
// every other BSON value.
type MaxKey struct{ baseValue }

func (MaxKey) BSONType() Type { return TypeMaxKey }
func (MaxKey) ByteSize() int  { return 0 }
func (MaxKey) String() string { return "MaxKey" }
func (MaxKey) Equal(o Value) bool {
	_, ok := o.(MaxKey)
	return ok
}
