// Copyright (C) bsonkit authors 2014-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

// Package bsonutil holds the small, non-generic helpers that sit above
// bson/bsoncodec/bsonderive: converting a Value tree to/from plain Go
// native data (map[string]interface{}, []interface{}, primitives) for
// interop with code that doesn't want to depend on the bson package's own
// types, index-key comparison, and order-preserving JSON rendering of a
// Document.
package bsonutil

import (
	"fmt"

	"github.com/bsonkit/bson"
	"github.com/bsonkit/bson/bsonerr"
)

// ToNative converts a bson.Value into plain Go data: *bson.Document
// becomes map[string]interface{}, *bson.Array becomes []interface{}, and
// every scalar becomes its most natural native Go type (string, bool,
// int32, int64, float64, []byte). DateTime, ObjectID, and the other
// BSON-specific variants stay as themselves: there is no native Go
// equivalent that wouldn't lose the BSON/native distinction.
func ToNative(v bson.Value) (interface{}, error) {
	switch val := v.(type) {
	case nil:
		return nil, nil
	case bson.Null:
		return nil, nil
	case *bson.Document:
		m := make(map[string]interface{}, val.Size())
		for _, e := range val.Elements() {
			nv, err := ToNative(e.Value)
			if err != nil {
				return nil, bsonerr.WithPath(e.Name, err)
			}
			m[e.Name] = nv
		}
		return m, nil
	case *bson.Array:
		out := make([]interface{}, val.Len())
		for i, ev := range val.Values() {
			nv, err := ToNative(ev)
			if err != nil {
				return nil, bsonerr.WithPath(fmt.Sprintf("[%d]", i), err)
			}
			out[i] = nv
		}
		return out, nil
	case bson.String:
		return val.Value, nil
	case bson.Boolean:
		return val.Value, nil
	case bson.Int32:
		return val.Value, nil
	case bson.Int64:
		return val.Value, nil
	case bson.Double:
		return val.Value, nil
	case bson.Binary:
		cp := make([]byte, len(val.Data))
		copy(cp, val.Data)
		return cp, nil
	default:
		// DateTime, ObjectID, Decimal128, Regex, Timestamp, MinKey,
		// MaxKey and the deprecated variants have no native Go type that
		// wouldn't lose information, so they pass through unchanged.
		return v, nil
	}
}

// FromNative is ToNative's inverse for the subset of native Go data it
// produces, plus the common case of hand-built map[string]interface{}/
// []interface{} literals: maps become strict Documents (keys sorted is
// NOT guaranteed — map iteration order is intentionally randomized by Go,
// so callers needing deterministic key order should build the Document
// directly instead), slices become Arrays, and bson.Value is passed
// through unchanged so a partially-native, partially-BSON tree converts
// in one pass.
func FromNative(x interface{}) (bson.Value, error) {
	switch val := x.(type) {
	case nil:
		return bson.Null{}, nil
	case bson.Value:
		return val, nil
	case map[string]interface{}:
		elements := make([]bson.Element, 0, len(val))
		for k, v := range val {
			bv, err := FromNative(v)
			if err != nil {
				return nil, bsonerr.WithPath(k, err)
			}
			elements = append(elements, bson.Element{Name: k, Value: bv})
		}
		return bson.NewStrictDocument(elements...), nil
	case []interface{}:
		values := make([]bson.Value, len(val))
		for i, v := range val {
			bv, err := FromNative(v)
			if err != nil {
				return nil, bsonerr.WithPath(fmt.Sprintf("[%d]", i), err)
			}
			values[i] = bv
		}
		return bson.NewArray(values...), nil
	case string:
		return bson.String{Value: val}, nil
	case bool:
		return bson.Boolean{Value: val}, nil
	case int32:
		return bson.Int32{Value: val}, nil
	case int64:
		return bson.Int64{Value: val}, nil
	case int:
		return bson.Int64{Value: int64(val)}, nil
	case float64:
		return bson.Double{Value: val}, nil
	case []byte:
		cp := make([]byte, len(val))
		copy(cp, val)
		return bson.Binary{Subtype: 0x00, Data: cp}, nil
	default:
		return nil, bsonerr.NewTypeMismatch("native-convertible value", fmt.Sprintf("%T", x))
	}
}
