// Copyright (C) bsonkit authors 2014-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package bson

import "strings"

// Document is the ordered-by-insertion BSON document variant: a list of
// named elements. Every mutation method returns a fresh Document; the
// receiver is left untouched. A Document constructed via NewStrictDocument
// guarantees name uniqueness across every subsequent mutation; one
// constructed via NewDocument may carry duplicate names, in which case
// ToMap keeps the LAST occurrence.
type Document struct {
	baseValue
	elements []Element
	strict   bool
}

// NewDocument builds a Document preserving every element, including
// duplicate names, in the order given.
func NewDocument(elements ...Element) *Document {
	cp := make([]Element, len(elements))
	copy(cp, elements)
	return &Document{elements: cp}
}

// NewStrictDocument builds a Document that collapses duplicate names:
// the element's position follows its first appearance, but its value is
// the LAST one supplied for that name ("replacing the prior element in
// place").
func NewStrictDocument(elements ...Element) *Document {
	d := &Document{strict: true}
	for _, e := range elements {
		d.elements = strictUpsert(d.elements, e)
	}
	return d
}

func strictUpsert(elements []Element, e Element) []Element {
	for i := range elements {
		if elements[i].Name == e.Name {
			elements[i].Value = e.Value
			return elements
		}
	}
	return append(elements, e)
}

// IsStrict reports whether this Document enforces name uniqueness.
func (d *Document) IsStrict() bool { return d.strict }

func (d *Document) BSONType() Type { return TypeDocument }

func (d *Document) ByteSize() int {
	size := 5
	for _, e := range d.elements {
		size += e.ByteSize()
	}
	return size
}

// Get returns the value for name, preferring (per ToMap semantics) the
// last occurrence if the document carries duplicates.
func (d *Document) Get(name string) (Value, bool) {
	var (
		result Value
		found  bool
	)
	for _, e := range d.elements {
		if e.Name == name {
			result, found = e.Value, true
		}
	}
	return result, found
}

// Contains reports whether name is present.
func (d *Document) Contains(name string) bool {
	_, ok := d.Get(name)
	return ok
}

// ToMap is the total projection from Document to a Go map: when the same
// name appears twice, the last occurrence wins.
func (d *Document) ToMap() map[string]Value {
	m := make(map[string]Value, len(d.elements))
	for _, e := range d.elements {
		m[e.Name] = e.Value
	}
	return m
}

// Elements returns a copy of the ordered element list.
func (d *Document) Elements() []Element {
	cp := make([]Element, len(d.elements))
	copy(cp, d.elements)
	return cp
}

// HeadOption returns the first element, if any.
func (d *Document) HeadOption() (Element, bool) {
	if len(d.elements) == 0 {
		return Element{}, false
	}
	return d.elements[0], true
}

// Size is the number of elements (counting duplicates for a non-strict
// Document).
func (d *Document) Size() int { return len(d.elements) }

// IsEmpty reports whether the document has no elements.
func (d *Document) IsEmpty() bool { return len(d.elements) == 0 }

// Concat returns a new Document with other's elements appended after the
// receiver's. A strict receiver stays strict: an element whose name
// already exists replaces the existing element in place rather than
// appending a duplicate.
func (d *Document) Concat(other *Document) *Document {
	return d.AppendElements(other.Elements())
}

// AppendElements returns a new Document with elements appended. Strict
// documents upsert in place by name; non-strict documents simply append,
// preserving duplicates.
func (d *Document) AppendElements(elements []Element) *Document {
	cp := make([]Element, len(d.elements))
	copy(cp, d.elements)
	if !d.strict {
		cp = append(cp, elements...)
		return &Document{elements: cp, strict: false}
	}
	for _, e := range elements {
		cp = strictUpsert(cp, e)
	}
	return &Document{elements: cp, strict: true}
}

// RemoveKeys returns a new Document with every element whose name is in
// keys removed.
func (d *Document) RemoveKeys(keys ...string) *Document {
	remove := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		remove[k] = struct{}{}
	}
	cp := make([]Element, 0, len(d.elements))
	for _, e := range d.elements {
		if _, drop := remove[e.Name]; drop {
			continue
		}
		cp = append(cp, e)
	}
	return &Document{elements: cp, strict: d.strict}
}

// Equal reports name->value map equality, ignoring element order and the
// strict/non-strict distinction.
func (d *Document) Equal(o Value) bool {
	od, ok := o.(*Document)
	if !ok {
		return false
	}
	am, bm := d.ToMap(), od.ToMap()
	if len(am) != len(bm) {
		return false
	}
	for k, v := range am {
		bv, ok := bm[k]
		if !ok || !v.Equal(bv) {
			return false
		}
	}
	return true
}

func (d *Document) String() string {
	if len(d.elements) == 0 {
		return "{}"
	}
	var sb strings.Builder
	sb.WriteString("{ ")
	for i, e := range d.elements {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(e.Name)
		sb.WriteString(": ")
		sb.WriteString(e.Value.String())
	}
	sb.WriteString(" }")
	return sb.String()
}
