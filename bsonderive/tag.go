// Copyright (C) bsonkit authors 2014-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package bsonderive

import "strings"

// fieldTag is the parsed form of a `bson:"name,opt1,opt2"` struct tag.
type fieldTag struct {
	name       string
	ignore     bool
	omitempty  bool
	flatten    bool
	noneAsNull bool
	present    bool
}

func parseFieldTag(raw string) fieldTag {
	if raw == "" {
		return fieldTag{}
	}
	parts := strings.Split(raw, ",")
	t := fieldTag{present: true}
	if parts[0] == "-" {
		t.ignore = true
		return t
	}
	t.name = parts[0]
	for _, opt := range parts[1:] {
		switch opt {
		case "omitempty":
			t.omitempty = true
		case "flatten":
			t.flatten = true
		case "noneasnull":
			t.noneAsNull = true
		}
	}
	return t
}
