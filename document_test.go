// Copyright (C) bsonkit authors 2014-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package bson

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestDocumentSemantics(t *testing.T) {
	Convey("Given a non-strict Document with a duplicate key", t, func() {
		d := NewDocument(
			Element{Name: "a", Value: Int32{Value: 1}},
			Element{Name: "a", Value: Int32{Value: 2}},
			Element{Name: "b", Value: Int32{Value: 3}},
		)

		Convey("Size counts every element, including duplicates", func() {
			So(d.Size(), ShouldEqual, 3)
		})

		Convey("Get returns the last occurrence", func() {
			v, ok := d.Get("a")
			So(ok, ShouldBeTrue)
			So(v, ShouldResemble, Int32{Value: 2})
		})

		Convey("ToMap keeps the last occurrence per key", func() {
			m := d.ToMap()
			So(m, ShouldHaveLength, 2)
			So(m["a"], ShouldResemble, Int32{Value: 2})
		})
	})

	Convey("Given a strict Document built from elements with a duplicate key", t, func() {
		d := NewStrictDocument(
			Element{Name: "a", Value: Int32{Value: 1}},
			Element{Name: "b", Value: Int32{Value: 2}},
			Element{Name: "a", Value: Int32{Value: 99}},
		)

		Convey("the later value replaces the earlier one in place", func() {
			So(d.Size(), ShouldEqual, 2)
			es := d.Elements()
			So(es[0].Name, ShouldEqual, "a")
			So(es[0].Value, ShouldResemble, Int32{Value: 99})
			So(es[1].Name, ShouldEqual, "b")
		})
	})

	Convey("Given two Documents with the same key/value pairs in different orders", t, func() {
		a := NewDocument(Element{Name: "x", Value: Int32{Value: 1}}, Element{Name: "y", Value: Int32{Value: 2}})
		b := NewDocument(Element{Name: "y", Value: Int32{Value: 2}}, Element{Name: "x", Value: Int32{Value: 1}})

		Convey("they are Equal regardless of order", func() {
			So(a.Equal(b), ShouldBeTrue)
		})
	})

	Convey("Given an Array", t, func() {
		a := NewArray(Int32{Value: 1}, Int32{Value: 2})
		b := NewArray(Int32{Value: 2}, Int32{Value: 1})

		Convey("equality is position-sensitive", func() {
			So(a.Equal(b), ShouldBeFalse)
			So(a.Equal(NewArray(Int32{Value: 1}, Int32{Value: 2})), ShouldBeTrue)
		})

		Convey("Append does not mutate the receiver", func() {
			c := a.Append(Int32{Value: 3})
			So(a.Len(), ShouldEqual, 2)
			So(c.Len(), ShouldEqual, 3)
		})
	})

	Convey("Given a Document's RemoveKeys and Concat", t, func() {
		d := NewDocument(Element{Name: "a", Value: Int32{Value: 1}}, Element{Name: "b", Value: Int32{Value: 2}})

		Convey("RemoveKeys drops only the named keys, leaving the receiver untouched", func() {
			d2 := d.RemoveKeys("a")
			So(d2.Contains("a"), ShouldBeFalse)
			So(d.Contains("a"), ShouldBeTrue)
		})

		Convey("Concat appends another Document's elements", func() {
			other := NewDocument(Element{Name: "c", Value: Int32{Value: 3}})
			merged := d.Concat(other)
			So(merged.Size(), ShouldEqual, 3)
			So(d.Size(), ShouldEqual, 2)
		})
	})
}
