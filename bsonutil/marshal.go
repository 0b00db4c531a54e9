// Copyright (C) bsonkit authors 2014-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package bsonutil

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/bsonkit/bson"
)

// MarshalOrdered renders a Document as JSON text with its elements in
// their original insertion order — encoding/json's own map marshaling
// sorts keys alphabetically, which loses the ordering some consumers
// (and this package's own tests) need preserved.
func MarshalOrdered(d *bson.Document) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range d.Elements() {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(e.Name)
		if err != nil {
			return nil, fmt.Errorf("cannot marshal key %q: %w", e.Name, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := marshalValueOrdered(e.Value)
		if err != nil {
			return nil, fmt.Errorf("cannot marshal value for key %q: %w", e.Name, err)
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func marshalValueOrdered(v bson.Value) ([]byte, error) {
	if nested, ok := v.(*bson.Document); ok {
		return MarshalOrdered(nested)
	}
	if arr, ok := v.(*bson.Array); ok {
		var buf bytes.Buffer
		buf.WriteByte('[')
		for i, ev := range arr.Values() {
			if i > 0 {
				buf.WriteByte(',')
			}
			b, err := marshalValueOrdered(ev)
			if err != nil {
				return nil, err
			}
			buf.Write(b)
		}
		buf.WriteByte(']')
		return buf.Bytes(), nil
	}
	native, err := ToNative(v)
	if err != nil {
		return nil, err
	}
	return json.Marshal(native)
}
