// Copyright (C) bsonkit authors 2014-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package bsonderive

import (
	"reflect"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/bsonkit/bson"
	"github.com/bsonkit/bson/bsoncodec"
	"github.com/bsonkit/bson/bsonerr"
	"github.com/bsonkit/bson/bsonlog"
)

// fieldCodec is the reflection-driven analogue of bsoncodec.Handler[T],
// operating on a reflect.Value of a known static type instead of a
// compile-time T. Derivation builds one of these per struct field (or per
// sum-type variant), then wraps the whole record in a genuinely generic
// bsoncodec.Handler[T] at the DeriveHandler/DeriveSum boundary.
type fieldCodec struct {
	read    func(rv reflect.Value, v bson.Value) error
	write   func(rv reflect.Value) (bson.Value, error)
	isEmpty func(rv reflect.Value) bool
}

func adaptHandler[T any](h bsoncodec.Handler[T]) fieldCodec {
	return fieldCodec{
		read: func(rv reflect.Value, v bson.Value) error {
			t, err := h.ReadTry(v)
			if err != nil {
				return err
			}
			rv.Set(reflect.ValueOf(t))
			return nil
		},
		write: func(rv reflect.Value) (bson.Value, error) {
			return h.WriteTry(rv.Interface().(T))
		},
		isEmpty: func(rv reflect.Value) bool {
			return rv.IsZero()
		},
	}
}

var byteSliceType = reflect.TypeOf([]byte(nil))
var timeType = reflect.TypeOf(time.Time{})
var objectIDType = reflect.TypeOf(bson.ObjectID{})
var uuidType = reflect.TypeOf(uuid.UUID{})

func defaultPrimitiveCodec(t reflect.Type) (fieldCodec, bool) {
	switch {
	case t == byteSliceType:
		return adaptHandler(bsoncodec.BytesHandler), true
	case t == timeType:
		return adaptHandler(bsoncodec.TimeHandler), true
	case t == objectIDType:
		return adaptHandler(bsoncodec.ObjectIDHandler), true
	case t == uuidType:
		return adaptHandler(bsoncodec.UUIDHandler), true
	}
	switch t.Kind() {
	case reflect.String:
		return kindedCodec(t, reflect.TypeOf(""), adaptHandler(bsoncodec.StringHandler)), true
	case reflect.Bool:
		return kindedCodec(t, reflect.TypeOf(false), adaptHandler(bsoncodec.BoolHandler)), true
	case reflect.Int32:
		return kindedCodec(t, reflect.TypeOf(int32(0)), adaptHandler(bsoncodec.Int32Handler)), true
	case reflect.Int64, reflect.Int:
		return kindedCodec(t, reflect.TypeOf(int64(0)), adaptHandler(bsoncodec.Int64Handler)), true
	case reflect.Float64, reflect.Float32:
		return kindedCodec(t, reflect.TypeOf(float64(0)), adaptHandler(bsoncodec.Float64Handler)), true
	}
	return fieldCodec{}, false
}

// kindedCodec re-targets a fieldCodec built over a handler's exact static
// type (concrete, e.g. string) onto a distinct-but-convertible field type
// (e.g. a defined type `type Name string`), which reflect.Value.Set
// otherwise rejects as an assignability mismatch even though the
// underlying kinds agree.
func kindedCodec(t, concrete reflect.Type, base fieldCodec) fieldCodec {
	if t == concrete {
		return base
	}
	return fieldCodec{
		read: func(rv reflect.Value, v bson.Value) error {
			tmp := reflect.New(concrete).Elem()
			if err := base.read(tmp, v); err != nil {
				return err
			}
			rv.Set(tmp.Convert(t))
			return nil
		},
		write: func(rv reflect.Value) (bson.Value, error) {
			return base.write(rv.Convert(concrete))
		},
		isEmpty: func(rv reflect.Value) bool { return rv.IsZero() },
	}
}

// resolveFieldCodec builds the fieldCodec for a field's static Go type,
// recursing for pointers (Optional), slices (Seq), maps (string-keyed
// records), nested structs, and sum interfaces already registered in
// ctx.ifaces.
func resolveFieldCodec(t reflect.Type, ctx *buildCtx) (fieldCodec, error) {
	if explicit, ok := ctx.cfg.handlers[t]; ok {
		return explicit, nil
	}
	if prim, ok := defaultPrimitiveCodec(t); ok {
		return prim, nil
	}

	switch t.Kind() {
	case reflect.Interface:
		slot, ok := ctx.ifaces[t]
		if !ok {
			return fieldCodec{}, bsonerr.NewDerivationError(t.String(), "no sum handler registered for this interface type; call DeriveSum for it first")
		}
		return fieldCodec{
			read:    func(rv reflect.Value, v bson.Value) error { return slot.read(rv, v) },
			write:   func(rv reflect.Value) (bson.Value, error) { return slot.write(rv) },
			isEmpty: func(rv reflect.Value) bool { return rv.IsNil() },
		}, nil

	case reflect.Ptr:
		elemCodec, err := resolveFieldCodec(t.Elem(), ctx)
		if err != nil {
			return fieldCodec{}, err
		}
		return fieldCodec{
			read: func(rv reflect.Value, v bson.Value) error {
				if _, isNull := v.(bson.Null); isNull {
					rv.Set(reflect.Zero(t))
					return nil
				}
				elem := reflect.New(t.Elem())
				if err := elemCodec.read(elem.Elem(), v); err != nil {
					return err
				}
				rv.Set(elem)
				return nil
			},
			write: func(rv reflect.Value) (bson.Value, error) {
				if rv.IsNil() {
					return bson.Null{}, nil
				}
				return elemCodec.write(rv.Elem())
			},
			isEmpty: func(rv reflect.Value) bool { return rv.IsNil() },
		}, nil

	case reflect.Slice:
		elemType := t.Elem()
		elemCodec, err := resolveFieldCodec(elemType, ctx)
		if err != nil {
			return fieldCodec{}, err
		}
		return fieldCodec{
			read: func(rv reflect.Value, v bson.Value) error {
				arr, ok := v.(*bson.Array)
				if !ok {
					return bsonerr.NewTypeMismatch("array", typeName(v))
				}
				out := reflect.MakeSlice(t, arr.Len(), arr.Len())
				for i, ev := range arr.Values() {
					if err := elemCodec.read(out.Index(i), ev); err != nil {
						return bsonerr.WithPath(indexPath(i), err)
					}
				}
				rv.Set(out)
				return nil
			},
			write: func(rv reflect.Value) (bson.Value, error) {
				values := make([]bson.Value, rv.Len())
				for i := 0; i < rv.Len(); i++ {
					v, err := elemCodec.write(rv.Index(i))
					if err != nil {
						return nil, bsonerr.WithPath(indexPath(i), err)
					}
					values[i] = v
				}
				return bson.NewArray(values...), nil
			},
			isEmpty: func(rv reflect.Value) bool { return rv.Len() == 0 },
		}, nil

	case reflect.Map:
		if t.Key().Kind() != reflect.String {
			return fieldCodec{}, bsonerr.NewDerivationError(t.String(), "map fields must have string keys")
		}
		valCodec, err := resolveFieldCodec(t.Elem(), ctx)
		if err != nil {
			return fieldCodec{}, err
		}
		return fieldCodec{
			read: func(rv reflect.Value, v bson.Value) error {
				doc, ok := v.(*bson.Document)
				if !ok {
					return bsonerr.NewTypeMismatch("document", typeName(v))
				}
				out := reflect.MakeMapWithSize(t, doc.Size())
				for _, e := range doc.Elements() {
					ev := reflect.New(t.Elem()).Elem()
					if err := valCodec.read(ev, e.Value); err != nil {
						return bsonerr.WithPath(e.Name, err)
					}
					out.SetMapIndex(reflect.ValueOf(e.Name).Convert(t.Key()), ev)
				}
				rv.Set(out)
				return nil
			},
			write: func(rv reflect.Value) (bson.Value, error) {
				keys := rv.MapKeys()
				elements := make([]bson.Element, 0, len(keys))
				for _, k := range keys {
					v, err := valCodec.write(rv.MapIndex(k))
					if err != nil {
						return nil, bsonerr.WithPath(k.String(), err)
					}
					elements = append(elements, bson.Element{Name: k.String(), Value: v})
				}
				return bson.NewStrictDocument(elements...), nil
			},
			isEmpty: func(rv reflect.Value) bool { return rv.Len() == 0 },
		}, nil

	case reflect.Struct:
		// A struct type already mid-construction (self/mutual recursion)
		// is always followed regardless of autoMaterialize — the cache
		// hit in buildRecordCodec makes this free. A genuinely new nested
		// struct type requires either an explicit registration above or
		// WithAutoMaterialize.
		_, inProgress := ctx.structs[t]
		if !inProgress && !ctx.cfg.autoMaterialize {
			return fieldCodec{}, bsonerr.NewDerivationError(t.String(), "no handler registered for this struct field type; register one with RegisterHandler or enable WithAutoMaterialize")
		}
		if !inProgress {
			bsonlog.Logf(bsonlog.Debug, "bsonderive: auto-materializing record codec for %s", t)
		}
		rc, err := buildRecordCodec(t, ctx)
		if err != nil {
			return fieldCodec{}, err
		}
		return fieldCodec{
			read: func(rv reflect.Value, v bson.Value) error {
				doc, ok := v.(*bson.Document)
				if !ok {
					return bsonerr.NewTypeMismatch("document", typeName(v))
				}
				return rc.read(rv, doc)
			},
			write: func(rv reflect.Value) (bson.Value, error) {
				return rc.write(rv)
			},
			isEmpty: func(rv reflect.Value) bool { return rv.IsZero() },
		}, nil
	}

	return fieldCodec{}, bsonerr.NewDerivationError(t.String(), "no handler registered for this field type; register one explicitly or enable WithAutoMaterialize")
}

func typeName(v bson.Value) string {
	if v == nil {
		return "<nil>"
	}
	return v.BSONType().String()
}

func indexPath(i int) string {
	return "[" + strconv.Itoa(i) + "]"
}
