// Copyright (C) bsonkit authors 2014-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package bson

import (
	"math"
	"strconv"
	"time"
)

// formatFloat renders a float64 the way the Mongo shell does: integral
// values print with a trailing ".0" (unless the shortest form is already
// in exponent notation, e.g. "1e+21"), everything else uses the shortest
// round-tripping representation.
func formatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return s
	}
	for _, c := range s {
		if c == '.' || c == 'e' || c == 'E' {
			return s
		}
	}
	return s + ".0"
}

func formatISODate(millis int64) string {
	t := time.UnixMilli(millis).UTC()
	return t.Format("2006-01-02T15:04:05.000Z")
}

// PrettyPrint renders v using a Mongo-shell-like debug notation. It is a
// debug helper only; it carries no byte contract and its format may
// change.
func PrettyPrint(v Value) string {
	return v.String()
}
