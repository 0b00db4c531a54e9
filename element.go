// Copyright (C) bsonkit authors 2014-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package bson

// Element is a single (name, value) pair inside a Document.
type Element struct {
	Name  string
	Value Value
}

// ByteSize is the number of wire bytes this element contributes inside
// its owning document: the type tag, the cstring name, and the value's
// own payload.
func (e Element) ByteSize() int {
	return 1 + len(e.Name) + 1 + e.Value.ByteSize()
}

// ElementsOf yields zero or one elements from an Option: an absent
// Option produces no element, a present one produces exactly one. It is
// the Document-construction-site counterpart of the codec layer's
// OptionHandler, for callers that want key omission rather than Null.
func ElementsOf[T any](name string, opt Option[T], toValue func(T) Value) []Element {
	v, ok := opt.Get()
	if !ok {
		return nil
	}
	return []Element{{Name: name, Value: toValue(v)}}
}
