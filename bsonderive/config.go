// Copyright (C) bsonkit authors 2014-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

// Package bsonderive is the derivation layer: given a Go struct or a
// closed set of variant types, it builds a bsoncodec.Handler by
// reflecting over field/type shape and `bson:"..."` struct tags, the way
// encoding/json's and go.mongodb.org/mongo-driver/bson's own reflective
// marshalers do, rather than via code generation or build-time macros.
//
// Optional fields are represented as Go pointers (*T), not a generic
// Option[T] wrapper: reflect has no portable way (even as of Go 1.23) to
// recover a generic instantiation's type arguments, so a struct field
// declared bson.Option[T] cannot be told apart from any other struct by
// reflection alone. Pointers are the idiom encoding/json and the Mongo
// driver both already use for "present or absent", and field.Type.Kind()
// == reflect.Ptr is trivial to detect. bson.Option[T] remains the type
// used by the typed Document/Array accessors in the bson package itself.
package bsonderive

import (
	"reflect"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/bsonkit/bson/bsoncodec"
)

// FieldNaming maps a Go struct field name to its default BSON element
// name, applied whenever a field has no explicit `bson:"name"` tag.
type FieldNaming func(fieldName string) string

// TypeNaming maps a Go type name to its default sum-type discriminator
// value.
type TypeNaming func(typeName string) string

// Identity is the FieldNaming/TypeNaming that leaves the Go name alone.
func Identity(name string) string { return name }

// SnakeCase converts camelCase/PascalCase to snake_case, e.g. "firstName"
// -> "first_name". An underscore is inserted before every uppercase letter
// that follows a lowercase letter or a digit, and the result is lowercased;
// consecutive uppercase runs stay joined ("UserID" -> "user_id").
func SnakeCase(name string) string {
	var out []rune
	var prev rune
	for i, r := range name {
		if i > 0 && isUpper(r) && (isLower(prev) || isDigit(prev)) {
			out = append(out, '_')
		}
		out = append(out, toLower(r))
		prev = r
	}
	return string(out)
}

func isUpper(r rune) bool { return r >= 'A' && r <= 'Z' }
func isLower(r rune) bool { return r >= 'a' && r <= 'z' }
func isDigit(r rune) bool { return r >= '0' && r <= '9' }
func toLower(r rune) rune {
	if isUpper(r) {
		return r + ('a' - 'A')
	}
	return r
}

var upperCaser = cases.Upper(language.Und)

// PascalCase uppercases the first letter and preserves the rest, e.g.
// "firstName" -> "FirstName". The single-rune casing goes through
// golang.org/x/text/cases so non-ASCII leading letters map the same way
// they would anywhere else in the module.
func PascalCase(name string) string {
	if name == "" {
		return name
	}
	_, size := utf8.DecodeRuneInString(name)
	return upperCaser.String(name[:size]) + name[size:]
}

// Config bundles every derivation knob: naming policies, the sum-type
// discriminator key, and per-field overrides. It is immutable — each
// With*/Ignore*/Rename*/Flatten* method returns a new Config — so sharing
// a base Config across several DeriveHandler/DeriveSum calls is safe.
type Config struct {
	fieldNaming     FieldNaming
	typeNaming      TypeNaming
	discriminator   string
	ignore          map[string]bool
	rename          map[string]string
	flatten         map[string]bool
	noneAsNull      map[string]bool
	autoMaterialize bool
	handlers        map[reflect.Type]fieldCodec
}

// DefaultConfig is Identity naming, discriminator key "className", no
// overrides, and automatic materialization disabled: unknown nested
// struct types must be registered explicitly.
func DefaultConfig() Config {
	return Config{
		fieldNaming:   Identity,
		typeNaming:    Identity,
		discriminator: "className",
	}
}

// WithFieldNaming returns a copy of c using naming for unannotated fields.
func (c Config) WithFieldNaming(naming FieldNaming) Config {
	c.fieldNaming = naming
	return c
}

// WithTypeNaming returns a copy of c using naming for sum-type
// discriminator values.
func (c Config) WithTypeNaming(naming TypeNaming) Config {
	c.typeNaming = naming
	return c
}

// WithDiscriminatorKey returns a copy of c using key as the sum-type
// discriminator element name instead of "className".
func (c Config) WithDiscriminatorKey(key string) Config {
	c.discriminator = key
	return c
}

// WithAutoMaterialize returns a copy of c that derives a record handler
// on the fly for any nested struct field type it doesn't already have a
// handler for, instead of failing at derivation time.
func (c Config) WithAutoMaterialize() Config {
	c.autoMaterialize = true
	return c
}

// IgnoreField returns a copy of c that skips fieldName entirely: absent
// from the encoded document, untouched on decode, analogous to @Ignore.
func (c Config) IgnoreField(fieldName string) Config {
	c = c.clone()
	c.ignore[fieldName] = true
	return c
}

// RenameField returns a copy of c using bsonName for fieldName in place of
// the naming policy's default, analogous to an explicit @Key override.
func (c Config) RenameField(fieldName, bsonName string) Config {
	c = c.clone()
	c.rename[fieldName] = bsonName
	return c
}

// FlattenField returns a copy of c that splices fieldName's own document
// fields into the parent document rather than nesting them, analogous to
// @Flatten. fieldName's type must be a struct (not a pointer, slice, or
// map) and must not be the enclosing type itself — both are rejected with
// a DerivationError at DeriveHandler/DeriveSum time, not silently accepted.
func (c Config) FlattenField(fieldName string) Config {
	c = c.clone()
	c.flatten[fieldName] = true
	return c
}

// NoneAsNullField returns a copy of c that writes a None pointer field as
// an explicit bson.Null element instead of omitting it, the opt-in
// `@NoneAsNull` behavior. The default for every optional (pointer) field
// not named here is omission on write — only a present, non-null value or
// an explicit NoneAsNullField/`noneasnull` tag ever writes the key.
func (c Config) NoneAsNullField(fieldName string) Config {
	c = c.clone()
	c.noneAsNull[fieldName] = true
	return c
}

func (c Config) clone() Config {
	n := c
	n.ignore = cloneSet(c.ignore)
	n.rename = cloneMap(c.rename)
	n.flatten = cloneSet(c.flatten)
	n.noneAsNull = cloneSet(c.noneAsNull)
	n.handlers = cloneHandlers(c.handlers)
	return n
}

func cloneHandlers(m map[reflect.Type]fieldCodec) map[reflect.Type]fieldCodec {
	out := make(map[reflect.Type]fieldCodec, len(m)+1)
	for k, v := range m {
		out[k] = v
	}
	return out
}

// RegisterHandler returns a copy of cfg that uses h for every field of
// type T, overriding both the default primitive codecs and the
// nested-struct/autoMaterialize behavior. Use this to plug in a
// bsoncodec.Handler built from the domain-stack codecs (uuid.UUID,
// mapset.Set[T], a hand-written Handler for a type with bespoke
// validation) wherever such a field appears in a derived record.
func RegisterHandler[T any](cfg Config, h bsoncodec.Handler[T]) Config {
	cfg = cfg.clone()
	t := reflect.TypeOf((*T)(nil)).Elem()
	cfg.handlers[t] = adaptHandler(h)
	return cfg
}

func cloneSet(m map[string]bool) map[string]bool {
	out := make(map[string]bool, len(m)+1)
	for k, v := range m {
		out[k] = v
	}
	return out
}

func cloneMap(m map[string]string) map[string]string {
	out := make(map[string]string, len(m)+1)
	for k, v := range m {
		out[k] = v
	}
	return out
}
