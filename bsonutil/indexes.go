// Copyright (C) bsonkit authors 2014-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package bsonutil

import "github.com/bsonkit/bson"

// indexKeyEpsilon: index key direction values of 1 and 1.0000000001
// describe the same index.
const indexKeyEpsilon = 1e-9

// IsIndexKeysEqual reports whether two index-key Documents describe the
// same index: same field names in the same order, and equal direction/
// index-type values per field (numeric values compared within
// indexKeyEpsilon, since 1 and 1.0 and NumberLong(1) are all "ascending").
func IsIndexKeysEqual(a, b *bson.Document) bool {
	ae, be := a.Elements(), b.Elements()
	if len(ae) != len(be) {
		return false
	}
	for i := range ae {
		if ae[i].Name != be[i].Name {
			return false
		}
		if !indexValueEqual(ae[i].Value, be[i].Value) {
			return false
		}
	}
	return true
}

func indexValueEqual(a, b bson.Value) bool {
	as, aIsString := a.(bson.String)
	bs, bIsString := b.(bson.String)
	if aIsString || bIsString {
		return aIsString && bIsString && as.Value == bs.Value
	}
	an, aOk := a.(bson.NumberLike)
	bn, bOk := b.(bson.NumberLike)
	if !aOk || !bOk {
		return false
	}
	af, aOk := an.ToFloat64()
	bf, bOk := bn.ToFloat64()
	if !aOk || !bOk {
		return false
	}
	diff := af - bf
	if diff < 0 {
		diff = -diff
	}
	return diff < indexKeyEpsilon
}
