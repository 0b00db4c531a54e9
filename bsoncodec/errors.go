// Copyright (C) bsonkit authors 2014-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package bsoncodec

import (
	"fmt"

	"github.com/bsonkit/bson"
	"github.com/bsonkit/bson/bsonerr"
)

func typeMismatch(want string, got bson.Value) error {
	return bsonerr.NewTypeMismatch(want, fmt.Sprintf("%T", got))
}

func bsonerrWithIndex(i int, err error) error {
	return bsonerr.WithPath(fmt.Sprintf("[%d]", i), err)
}

func bsonerrWithKey(key string, err error) error {
	return bsonerr.WithPath(key, err)
}
