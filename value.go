// Copyright (C) bsonkit authors 2014-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package bson

// Type is the one-byte BSON element type tag used on the wire.
type Type byte

const (
	TypeDouble              Type = 0x01
	TypeString              Type = 0x02
	TypeDocument            Type = 0x03
	TypeArray               Type = 0x04
	TypeBinary              Type = 0x05
	TypeUndefined           Type = 0x06
	TypeObjectID            Type = 0x07
	TypeBoolean             Type = 0x08
	TypeDateTime            Type = 0x09
	TypeNull                Type = 0x0A
	TypeRegex               Type = 0x0B
	TypeJavaScript          Type = 0x0D
	TypeSymbol              Type = 0x0E
	TypeJavaScriptWithScope Type = 0x0F
	TypeInt32               Type = 0x10
	TypeTimestamp           Type = 0x11
	TypeInt64               Type = 0x12
	TypeDecimal128          Type = 0x13
	TypeMinKey              Type = 0xFF
	TypeMaxKey              Type = 0x7F
)

func (t Type) String() string {
	switch t {
	case TypeDouble:
		return "double"
	case TypeString:
		return "string"
	case TypeDocument:
		return "document"
	case TypeArray:
		return "array"
	case TypeBinary:
		return "binary"
	case TypeUndefined:
		return "undefined"
	case TypeObjectID:
		return "objectId"
	case TypeBoolean:
		return "bool"
	case TypeDateTime:
		return "dateTime"
	case TypeNull:
		return "null"
	case TypeRegex:
		return "regex"
	case TypeJavaScript:
		return "javascript"
	case TypeSymbol:
		return "symbol"
	case TypeJavaScriptWithScope:
		return "javascriptWithScope"
	case TypeInt32:
		return "int32"
	case TypeTimestamp:
		return "timestamp"
	case TypeInt64:
		return "int64"
	case TypeDecimal128:
		return "decimal128"
	case TypeMinKey:
		return "minKey"
	case TypeMaxKey:
		return "maxKey"
	default:
		return "unknown"
	}
}

// Value is the closed sum of every BSON variant. Every implementation is
// immutable once constructed; Document and Array mutation methods return
// new values rather than modifying the receiver.
type Value interface {
	// BSONType reports the variant's wire type tag.
	BSONType() Type
	// ByteSize is the number of bytes this value occupies in the BSON
	// wire format, matching what Marshal would emit for it as an
	// element's payload (not counting the element's own type byte and
	// name).
	ByteSize() int
	// Equal reports whether two values are equal: documents compare by
	// name->value map, arrays compare position-sensitively, scalars
	// compare by value.
	Equal(other Value) bool
	// String renders a Mongo-shell-like debug notation. It is not part
	// of the byte contract.
	String() string

	isValue()
}

// baseValue factors the isValue marker so every concrete variant only
// needs to embed it instead of repeating an empty method body.
type baseValue struct{}

func (baseValue) isValue() {}
