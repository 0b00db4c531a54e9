// Copyright (C) bsonkit authors 2014-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package bsonderive

import (
	"reflect"

	"github.com/bsonkit/bson"
	"github.com/bsonkit/bson/bsoncodec"
	"github.com/bsonkit/bson/bsonerr"
)

type sumVariant struct {
	name  string
	typ   reflect.Type
	codec *reflectCodec
}

// DeriveSum builds a bsoncodec.Handler[I] for a closed sum type: I is the
// marker interface every variant implements, and variantZeroValues is one
// zero value per concrete variant struct (e.g. DeriveSum[Shape](cfg,
// Circle{}, Square{})). Each variant is derived as its own record (so
// variants may use @Flatten, pointers, nested records, and so on) and
// tagged on encode with a discriminator element (cfg's discriminator key,
// default "className") whose value is cfg.typeNaming applied to the variant's Go
// type name; on decode the discriminator selects which variant's record
// reader to run.
//
// A variant field typed I (including I itself, for recursive sums like a
// tree) resolves back to this same handler. A sum nested inside another
// sum is expressed by passing the inner sum's variants directly in the
// outer variant list — each leaf gets its own discriminator value, which
// is the same wire shape a nested dispatch would produce.
func DeriveSum[I any](cfg Config, variantZeroValues ...I) (bsoncodec.Handler[I], error) {
	ifaceType := reflect.TypeOf((*I)(nil)).Elem()
	ctx := newBuildCtx(cfg)
	slot := &fieldCodec{}
	ctx.ifaces[ifaceType] = slot

	byName := make(map[string]*sumVariant, len(variantZeroValues))
	byType := make(map[reflect.Type]*sumVariant, len(variantZeroValues))
	var variants []*sumVariant

	for _, zero := range variantZeroValues {
		vt := reflect.TypeOf(zero)
		if vt == nil || vt.Kind() != reflect.Struct {
			return nil, bsonerr.NewDerivationError(ifaceType.String(), "every sum variant must be a struct value")
		}
		codec, err := buildRecordCodec(vt, ctx)
		if err != nil {
			return nil, err
		}
		name := cfg.typeNaming(vt.Name())
		if _, dup := byName[name]; dup {
			return nil, bsonerr.NewDerivationError(ifaceType.String(), "two variants share discriminator value "+name)
		}
		v := &sumVariant{name: name, typ: vt, codec: codec}
		byName[name] = v
		byType[vt] = v
		variants = append(variants, v)
	}

	discKey := cfg.discriminator

	slot.read = func(rv reflect.Value, v bson.Value) error {
		doc, ok := v.(*bson.Document)
		if !ok {
			return bsonerr.NewTypeMismatch("document", typeName(v))
		}
		discVal, ok := doc.Get(discKey)
		if !ok {
			return bsonerr.NewTypeMismatch("document with a "+discKey+" discriminator", "document without one")
		}
		discStr, ok := discVal.(bson.String)
		if !ok {
			return bsonerr.WithPath(discKey, bsonerr.NewTypeMismatch("string", typeName(discVal)))
		}
		variant, ok := byName[discStr.Value]
		if !ok {
			return bsonerr.WithPath(discKey, bsonerr.NewTypeMismatch("a known variant discriminator", discStr.Value))
		}
		inst := reflect.New(variant.typ).Elem()
		if err := variant.codec.read(inst, doc); err != nil {
			return err
		}
		rv.Set(inst)
		return nil
	}

	slot.write = func(rv reflect.Value) (bson.Value, error) {
		if rv.Kind() == reflect.Interface {
			if rv.IsNil() {
				return nil, bsonerr.NewDerivationError(ifaceType.String(), "cannot encode a nil sum value")
			}
			rv = rv.Elem()
		}
		variant, ok := byType[rv.Type()]
		if !ok {
			return nil, bsonerr.NewDerivationError(ifaceType.String(), "unregistered variant type "+rv.Type().String())
		}
		doc, err := variant.codec.write(rv)
		if err != nil {
			return nil, err
		}
		elements := append([]bson.Element{{Name: discKey, Value: bson.String{Value: variant.name}}}, doc.Elements()...)
		return bson.NewStrictDocument(elements...), nil
	}
	slot.isEmpty = func(rv reflect.Value) bool { return rv.Kind() == reflect.Interface && rv.IsNil() }

	return sumHandler[I]{slot: slot}, nil
}

type sumHandler[I any] struct {
	slot *fieldCodec
}

func (h sumHandler[I]) ReadTry(v bson.Value) (I, error) {
	var out I
	rv := reflect.ValueOf(&out).Elem()
	if err := h.slot.read(rv, v); err != nil {
		var zero I
		return zero, err
	}
	return out, nil
}

func (h sumHandler[I]) WriteTry(t I) (bson.Value, error) {
	rv := reflect.ValueOf(&t).Elem()
	return h.slot.write(rv)
}
