// Copyright (C) bsonkit authors 2014-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package bsonderive

import "reflect"

// buildCtx is threaded through one DeriveHandler/DeriveSum call. structs
// caches struct types currently being (or already) derived, breaking self-
// and mutual-recursion the same way; ifaces caches sum-interface types so
// a record field (or another sum variant) typed as I can refer back to a
// DeriveSum currently under construction — the same fixpoint trick one
// level up, since an interface has no record fields of its own to close
// over a *reflectCodec, only a *fieldCodec slot.
type buildCtx struct {
	cfg     Config
	structs map[reflect.Type]*reflectCodec
	ifaces  map[reflect.Type]*fieldCodec
}

func newBuildCtx(cfg Config) *buildCtx {
	return &buildCtx{
		cfg:     cfg,
		structs: map[reflect.Type]*reflectCodec{},
		ifaces:  map[reflect.Type]*fieldCodec{},
	}
}
