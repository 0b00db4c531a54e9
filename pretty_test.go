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

func TestPrettyPrintNotation(t *testing.T) {
	Convey("When pretty-printing values", t, func() {

		Convey("strings are single-quoted with quotes escaped", func() {
			So(PrettyPrint(String{Value: "it's"}), ShouldEqual, `'it\'s'`)
		})

		Convey("integral doubles keep a trailing .0", func() {
			So(PrettyPrint(Double{Value: 3}), ShouldEqual, "3.0")
			So(PrettyPrint(Double{Value: 3.5}), ShouldEqual, "3.5")
		})

		Convey("Int64 renders as NumberLong", func() {
			So(PrettyPrint(Int64{Value: 12}), ShouldEqual, "NumberLong(12)")
		})

		Convey("DateTime renders as ISODate in UTC", func() {
			So(PrettyPrint(DateTime{Millis: 0}), ShouldEqual, "ISODate('1970-01-01T00:00:00.000Z')")
		})

		Convey("ObjectID renders as ObjectId with its hex form", func() {
			oid, err := ObjectIDFromHex("0123456789abcdef01234567")
			So(err, ShouldBeNil)
			So(PrettyPrint(oid), ShouldEqual, "ObjectId('0123456789abcdef01234567')")
		})

		Convey("documents and arrays nest", func() {
			d := NewDocument(
				Element{Name: "a", Value: Int32{Value: 1}},
				Element{Name: "b", Value: NewArray(Boolean{Value: true}, Null{})},
			)
			So(PrettyPrint(d), ShouldEqual, "{ a: NumberInt(1), b: [ true, null ] }")
		})
	})
}
