// Copyright (C) bsonkit authors 2014-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package bson

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
	"strconv"

	"github.com/bsonkit/bson/bsonerr"
)

// BSON wire encoding. A document is total-length (i32 LE) + repeated
// (type-byte + cstring name + value) + a trailing 0x00; an array is
// identical with stringified decimal indices as names. The little-endian
// reader/writer below is all the buffer machinery the format needs.

type writer struct {
	buf bytes.Buffer
}

func (w *writer) byte(b byte)    { w.buf.WriteByte(b) }
func (w *writer) bytes(b []byte) { w.buf.Write(b) }

func (w *writer) int32(v int32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], uint32(v))
	w.bytes(b[:])
}

func (w *writer) uint32(v uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	w.bytes(b[:])
}

func (w *writer) int64(v int64) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], uint64(v))
	w.bytes(b[:])
}

func (w *writer) uint64(v uint64) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	w.bytes(b[:])
}

func (w *writer) float64(v float64) { w.uint64(math.Float64bits(v)) }
func (w *writer) cstring(s string)  { w.bytes([]byte(s)); w.byte(0) }
func (w *writer) lengthPrefixed(s string) {
	w.int32(int32(len(s) + 1))
	w.cstring(s)
}

type reader struct {
	data []byte
	pos  int
}

func (r *reader) remaining() int { return len(r.data) - r.pos }

func (r *reader) need(n int) error {
	if r.remaining() < n {
		return bsonerr.NewDecodeFailure("wire", fmt.Sprintf("need %d bytes, have %d", n, r.remaining()))
	}
	return nil
}

func (r *reader) readByte() (byte, error) {
	if err := r.need(1); err != nil {
		return 0, err
	}
	b := r.data[r.pos]
	r.pos++
	return b, nil
}

func (r *reader) readBytes(n int) ([]byte, error) {
	if err := r.need(n); err != nil {
		return nil, err
	}
	b := r.data[r.pos : r.pos+n]
	r.pos += n
	return b, nil
}

func (r *reader) readInt32() (int32, error) {
	b, err := r.readBytes(4)
	if err != nil {
		return 0, err
	}
	return int32(binary.LittleEndian.Uint32(b)), nil
}

func (r *reader) readUint32() (uint32, error) {
	b, err := r.readBytes(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

func (r *reader) readInt64() (int64, error) {
	b, err := r.readBytes(8)
	if err != nil {
		return 0, err
	}
	return int64(binary.LittleEndian.Uint64(b)), nil
}

func (r *reader) readUint64() (uint64, error) {
	b, err := r.readBytes(8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

func (r *reader) readFloat64() (float64, error) {
	u, err := r.readUint64()
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(u), nil
}

func (r *reader) readCString() (string, error) {
	start := r.pos
	for r.pos < len(r.data) {
		if r.data[r.pos] == 0 {
			s := string(r.data[start:r.pos])
			r.pos++
			return s, nil
		}
		r.pos++
	}
	return "", bsonerr.NewDecodeFailure("wire", "unterminated cstring")
}

func (r *reader) readLengthPrefixedString() (string, error) {
	n, err := r.readInt32()
	if err != nil {
		return "", err
	}
	if n < 1 {
		return "", bsonerr.NewDecodeFailure("wire", fmt.Sprintf("invalid string length %d", n))
	}
	b, err := r.readBytes(int(n))
	if err != nil {
		return "", err
	}
	if b[len(b)-1] != 0 {
		return "", bsonerr.NewDecodeFailure("wire", "string not null-terminated")
	}
	return string(b[:len(b)-1]), nil
}

// Marshal encodes the document to its BSON wire bytes.
func (d *Document) Marshal() []byte {
	w := &writer{}
	writeDocumentBody(w, d.elements)
	return w.buf.Bytes()
}

// Marshal encodes the array to its BSON wire bytes, using stringified
// decimal indices as element names.
func (a *Array) Marshal() []byte {
	w := &writer{}
	elements := make([]Element, len(a.values))
	for i, v := range a.values {
		elements[i] = Element{Name: strconv.Itoa(i), Value: v}
	}
	writeDocumentBody(w, elements)
	return w.buf.Bytes()
}

func writeDocumentBody(w *writer, elements []Element) {
	size := 5
	for _, e := range elements {
		size += e.ByteSize()
	}
	w.int32(int32(size))
	for _, e := range elements {
		w.byte(byte(e.Value.BSONType()))
		w.cstring(e.Name)
		writeValue(w, e.Value)
	}
	w.byte(0)
}

func writeValue(w *writer, v Value) {
	switch val := v.(type) {
	case Double:
		w.float64(val.Value)
	case String:
		w.lengthPrefixed(val.Value)
	case *Document:
		writeDocumentBody(w, val.elements)
	case *Array:
		elements := make([]Element, len(val.values))
		for i, e := range val.values {
			elements[i] = Element{Name: strconv.Itoa(i), Value: e}
		}
		writeDocumentBody(w, elements)
	case Binary:
		w.int32(int32(len(val.Data)))
		w.byte(val.Subtype)
		w.bytes(val.Data)
	case Undefined:
	case ObjectID:
		w.bytes(val.bytes[:])
	case Boolean:
		if val.Value {
			w.byte(1)
		} else {
			w.byte(0)
		}
	case DateTime:
		w.int64(val.Millis)
	case Null:
	case Regex:
		w.cstring(val.Pattern)
		w.cstring(val.Flags)
	case JavaScript:
		w.lengthPrefixed(val.Code)
	case Symbol:
		w.lengthPrefixed(val.Value)
	case JavaScriptWithScope:
		scopeBytes := (&Document{}).Marshal()
		if val.Scope != nil {
			scopeBytes = val.Scope.Marshal()
		}
		total := 4 + (5 + len(val.Code)) + len(scopeBytes)
		w.int32(int32(total))
		w.lengthPrefixed(val.Code)
		w.bytes(scopeBytes)
	case Int32:
		w.int32(val.Value)
	case Timestamp:
		w.uint32(val.Increment)
		w.uint32(val.Seconds)
	case Int64:
		w.int64(val.Value)
	case Decimal128:
		w.uint64(val.Lo)
		w.uint64(val.Hi)
	case MinKey:
	case MaxKey:
	default:
		panic(fmt.Sprintf("bson: unhandled value type %T in writeValue", v))
	}
}

// Unmarshal decodes a single BSON document from the front of data. There
// is no streaming/incremental mode: data must contain at least one
// complete document.
func Unmarshal(data []byte) (*Document, error) {
	r := &reader{data: data}
	elements, err := readDocumentBody(r)
	if err != nil {
		return nil, err
	}
	return NewDocument(elements...), nil
}

func readDocumentBody(r *reader) ([]Element, error) {
	size, err := r.readInt32()
	if err != nil {
		return nil, err
	}
	if size < 5 {
		return nil, bsonerr.NewDecodeFailure("wire", fmt.Sprintf("invalid document size %d", size))
	}
	var elements []Element
	for {
		tag, err := r.readByte()
		if err != nil {
			return nil, err
		}
		if tag == 0 {
			break
		}
		name, err := r.readCString()
		if err != nil {
			return nil, err
		}
		val, err := readValue(r, Type(tag))
		if err != nil {
			return nil, bsonerr.WithPath(name, err)
		}
		elements = append(elements, Element{Name: name, Value: val})
	}
	return elements, nil
}

// UnmarshalArray decodes a single BSON array from the front of data.
func UnmarshalArray(data []byte) (*Array, error) {
	r := &reader{data: data}
	elements, err := readDocumentBody(r)
	if err != nil {
		return nil, err
	}
	values := make([]Value, len(elements))
	for i, e := range elements {
		values[i] = e.Value
	}
	return NewArray(values...), nil
}

func readValue(r *reader, t Type) (Value, error) {
	switch t {
	case TypeDouble:
		f, err := r.readFloat64()
		return Double{Value: f}, err
	case TypeString:
		s, err := r.readLengthPrefixedString()
		return String{Value: s}, err
	case TypeDocument:
		elements, err := readDocumentBody(r)
		if err != nil {
			return nil, err
		}
		return NewDocument(elements...), nil
	case TypeArray:
		elements, err := readDocumentBody(r)
		if err != nil {
			return nil, err
		}
		values := make([]Value, len(elements))
		for i, e := range elements {
			values[i] = e.Value
		}
		return NewArray(values...), nil
	case TypeBinary:
		n, err := r.readInt32()
		if err != nil {
			return nil, err
		}
		subtype, err := r.readByte()
		if err != nil {
			return nil, err
		}
		data, err := r.readBytes(int(n))
		if err != nil {
			return nil, err
		}
		cp := make([]byte, len(data))
		copy(cp, data)
		return Binary{Subtype: subtype, Data: cp}, nil
	case TypeUndefined:
		return Undefined{}, nil
	case TypeObjectID:
		b, err := r.readBytes(12)
		if err != nil {
			return nil, err
		}
		var oid ObjectID
		copy(oid.bytes[:], b)
		return oid, nil
	case TypeBoolean:
		b, err := r.readByte()
		return Boolean{Value: b != 0}, err
	case TypeDateTime:
		ms, err := r.readInt64()
		return DateTime{Millis: ms}, err
	case TypeNull:
		return Null{}, nil
	case TypeRegex:
		pattern, err := r.readCString()
		if err != nil {
			return nil, err
		}
		flags, err := r.readCString()
		if err != nil {
			return nil, err
		}
		return Regex{Pattern: pattern, Flags: flags}, nil
	case TypeJavaScript:
		s, err := r.readLengthPrefixedString()
		return JavaScript{Code: s}, err
	case TypeSymbol:
		s, err := r.readLengthPrefixedString()
		return Symbol{Value: s}, err
	case TypeJavaScriptWithScope:
		if _, err := r.readInt32(); err != nil { // total length, recomputed on re-encode
			return nil, err
		}
		code, err := r.readLengthPrefixedString()
		if err != nil {
			return nil, err
		}
		elements, err := readDocumentBody(r)
		if err != nil {
			return nil, err
		}
		return JavaScriptWithScope{Code: code, Scope: NewDocument(elements...)}, nil
	case TypeInt32:
		i, err := r.readInt32()
		return Int32{Value: i}, err
	case TypeTimestamp:
		inc, err := r.readUint32()
		if err != nil {
			return nil, err
		}
		sec, err := r.readUint32()
		if err != nil {
			return nil, err
		}
		return Timestamp{Seconds: sec, Increment: inc}, nil
	case TypeInt64:
		i, err := r.readInt64()
		return Int64{Value: i}, err
	case TypeDecimal128:
		lo, err := r.readUint64()
		if err != nil {
			return nil, err
		}
		hi, err := r.readUint64()
		if err != nil {
			return nil, err
		}
		return Decimal128{Hi: hi, Lo: lo}, nil
	case TypeMinKey:
		return MinKey{}, nil
	case TypeMaxKey:
		return MaxKey{}, nil
	default:
		return nil, bsonerr.NewDecodeFailure("wire", fmt.Sprintf("unknown BSON type tag 0x%02x", byte(t)))
	}
}
