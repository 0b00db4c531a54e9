// Copyright (C) bsonkit authors 2014-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package bson

import (
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

func TestObjectIDGeneration(t *testing.T) {
	Convey("When generating ObjectIDs", t, func() {

		Convey("consecutive ids are distinct and carry a sane timestamp", func() {
			before := time.Now().Unix()
			a := NewObjectID()
			b := NewObjectID()
			after := time.Now().Unix()

			So(a.Hex(), ShouldNotEqual, b.Hex())
			So(a.Timestamp(), ShouldBeGreaterThanOrEqualTo, before)
			So(a.Timestamp(), ShouldBeLessThanOrEqualTo, after)
		})

		Convey("the machine and pid bytes are stable within a process", func() {
			a := NewObjectID().Bytes()
			b := NewObjectID().Bytes()
			So(a[4:9], ShouldResemble, b[4:9])
		})

		Convey("the counter occupies the trailing 3 bytes", func() {
			a := NewObjectID().Bytes()
			b := NewObjectID().Bytes()
			ca := uint32(a[9])<<16 | uint32(a[10])<<8 | uint32(a[11])
			cb := uint32(b[9])<<16 | uint32(b[10])<<8 | uint32(b[11])
			So(cb, ShouldEqual, (ca+1)&0xFFFFFF)
		})
	})

	Convey("When building an ObjectID from a time", t, func() {
		at := time.Unix(1500000000, 0)

		Convey("timestampOnly zeroes the last 8 bytes for range queries", func() {
			oid := NewObjectIDFromTime(at, true)
			So(oid.Timestamp(), ShouldEqual, int64(1500000000))
			raw := oid.Bytes()
			for _, b := range raw[4:] {
				So(b, ShouldEqual, 0)
			}
		})

		Convey("without timestampOnly the remaining bytes are generated", func() {
			oid := NewObjectIDFromTime(at, false)
			So(oid.Timestamp(), ShouldEqual, int64(1500000000))
			raw := oid.Bytes()
			nonZero := false
			for _, b := range raw[4:] {
				if b != 0 {
					nonZero = true
				}
			}
			So(nonZero, ShouldBeTrue)
		})
	})
}

func TestObjectIDHexRoundTrip(t *testing.T) {
	Convey("When converting ObjectIDs to and from hex", t, func() {

		Convey("a generated id survives the round trip", func() {
			oid := NewObjectID()
			parsed, err := ObjectIDFromHex(oid.Hex())
			So(err, ShouldBeNil)
			So(parsed.Equal(oid), ShouldBeTrue)
		})

		Convey("a short string is rejected", func() {
			_, err := ObjectIDFromHex("abc")
			So(err, ShouldNotBeNil)
		})

		Convey("non-hex characters are rejected", func() {
			_, err := ObjectIDFromHex("zzzzzzzzzzzzzzzzzzzzzzzz")
			So(err, ShouldNotBeNil)
		})
	})
}
