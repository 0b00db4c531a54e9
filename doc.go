// Copyright (C) bsonkit authors 2014-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

// Package bson implements the BSON value algebra: a closed set of tagged
// variants, their ordering and equality rules, their computed wire size,
// and their bit-exact binary encoding.
//
// The codec layer that maps Go types onto this value tree lives in the
// sibling bsoncodec and bsonderive packages.
package bson
