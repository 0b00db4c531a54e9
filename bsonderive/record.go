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

// reflectCodec is a record's reflection-driven read/write pair, keyed by
// its concrete Go struct type. read/write are assigned after every field
// has been resolved, but the *reflectCodec value itself is registered in
// the build cache before that happens — the fixpoint that lets a
// self-referential or mutually-recursive field capture a pointer to a
// codec that isn't finished being built yet, and only dereference it once
// an actual decode/encode call runs.
type reflectCodec struct {
	typ   reflect.Type
	read  func(rv reflect.Value, doc *bson.Document) error
	write func(rv reflect.Value) (*bson.Document, error)
}

type recordField struct {
	index      int
	name       string
	codec      fieldCodec
	omitempty  bool
	optional   bool
	noneAsNull bool
	flatten    bool
	nested     *reflectCodec
}

func buildRecordCodec(t reflect.Type, ctx *buildCtx) (*reflectCodec, error) {
	if t.Kind() != reflect.Struct {
		return nil, bsonerr.NewDerivationError(t.String(), "not a struct")
	}
	if existing, ok := ctx.structs[t]; ok {
		return existing, nil
	}
	rc := &reflectCodec{typ: t}
	ctx.structs[t] = rc

	fields, err := buildRecordFields(t, ctx)
	if err != nil {
		return nil, err
	}

	rc.read = func(rv reflect.Value, doc *bson.Document) error {
		for _, f := range fields {
			if f.flatten {
				if err := f.nested.read(rv.Field(f.index), doc); err != nil {
					return err
				}
				continue
			}
			v, ok := doc.Get(f.name)
			if !ok {
				if f.optional {
					continue
				}
				return bsonerr.NewValueNotFound(f.name)
			}
			if err := f.codec.read(rv.Field(f.index), v); err != nil {
				return bsonerr.WithPath(f.name, err)
			}
		}
		return nil
	}

	rc.write = func(rv reflect.Value) (*bson.Document, error) {
		var elements []bson.Element
		for _, f := range fields {
			if f.flatten {
				nested, err := f.nested.write(rv.Field(f.index))
				if err != nil {
					return nil, err
				}
				elements = append(elements, nested.Elements()...)
				continue
			}
			fv := rv.Field(f.index)
			if f.optional && fv.IsNil() && !f.noneAsNull {
				// A nil optional field is omitted entirely, not written
				// as Null; only the noneasnull opt-in writes the key.
				continue
			}
			if f.omitempty && f.codec.isEmpty(fv) {
				continue
			}
			v, err := f.codec.write(fv)
			if err != nil {
				return nil, bsonerr.WithPath(f.name, err)
			}
			elements = append(elements, bson.Element{Name: f.name, Value: v})
		}
		return bson.NewStrictDocument(elements...), nil
	}

	return rc, nil
}

func buildRecordFields(t reflect.Type, ctx *buildCtx) ([]recordField, error) {
	var fields []recordField
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if sf.PkgPath != "" {
			continue // unexported
		}
		tag := parseFieldTag(sf.Tag.Get("bson"))
		if tag.ignore || ctx.cfg.ignore[sf.Name] {
			continue
		}

		if tag.flatten || ctx.cfg.flatten[sf.Name] {
			if sf.Type.Kind() != reflect.Struct {
				return nil, bsonerr.NewDerivationError(t.String(), "flatten field "+sf.Name+" must be a struct type")
			}
			if sf.Type == t {
				return nil, bsonerr.NewDerivationError(t.String(), "flatten field "+sf.Name+" cannot be the enclosing type")
			}
			// An in-progress cache entry means sf.Type is an ancestor on
			// the current derivation path: flattening into it would splice
			// a record into itself, so it is rejected here rather than
			// left to recurse forever at encode time.
			if existing, ok := ctx.structs[sf.Type]; ok && existing.read == nil {
				return nil, bsonerr.NewDerivationError(t.String(), "flatten field "+sf.Name+" recurses into a type still being derived")
			}
			nested, err := buildRecordCodec(sf.Type, ctx)
			if err != nil {
				return nil, err
			}
			fields = append(fields, recordField{index: i, flatten: true, nested: nested})
			continue
		}

		name := resolveFieldName(sf.Name, tag, ctx.cfg)
		codec, err := resolveFieldCodec(sf.Type, ctx)
		if err != nil {
			return nil, bsonerr.WithPath(sf.Name, err)
		}
		fields = append(fields, recordField{
			index:      i,
			name:       name,
			codec:      codec,
			omitempty:  tag.omitempty,
			optional:   sf.Type.Kind() == reflect.Ptr,
			noneAsNull: tag.noneAsNull || ctx.cfg.noneAsNull[sf.Name],
		})
	}
	return fields, nil
}

func resolveFieldName(goName string, tag fieldTag, cfg Config) string {
	if tag.present && tag.name != "" {
		return tag.name
	}
	if override, ok := cfg.rename[goName]; ok {
		return override
	}
	return cfg.fieldNaming(goName)
}

type recordHandler[T any] struct {
	codec *reflectCodec
}

func (h recordHandler[T]) ReadTry(v bson.Value) (T, error) {
	var zero T
	doc, ok := v.(*bson.Document)
	if !ok {
		return zero, bsonerr.NewTypeMismatch("document", typeName(v))
	}
	rv := reflect.New(h.codec.typ).Elem()
	if err := h.codec.read(rv, doc); err != nil {
		return zero, err
	}
	return rv.Interface().(T), nil
}

func (h recordHandler[T]) WriteTry(t T) (bson.Value, error) {
	rv := reflect.ValueOf(t)
	doc, err := h.codec.write(rv)
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// DeriveHandler builds a bsoncodec.Handler[T] for a struct type T by
// reflecting over its fields and their `bson:"..."` tags. T must itself be
// a struct (not a pointer to one); use bsoncodec's OptionHandler/pointer
// fields for optionality one level up instead.
func DeriveHandler[T any](cfg Config) (bsoncodec.Handler[T], error) {
	t := reflect.TypeOf((*T)(nil)).Elem()
	codec, err := buildRecordCodec(t, newBuildCtx(cfg))
	if err != nil {
		return nil, err
	}
	return recordHandler[T]{codec: codec}, nil
}
