// Copyright (C) bsonkit authors 2014-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

// Package bsonerr defines the error taxonomy shared by the bson,
// bsoncodec, and bsonderive packages: TypeMismatch, ValueNotFound,
// DecodeFailure, and DerivationError. Errors are returned as values, never
// thrown; each carries a field/index path identifying where it occurred.
//
// pkg/errors is used for wrapping, so nested field failures keep a
// cause-chained message that errors.Cause can still unwind.
package bsonerr

import (
	"fmt"

	"github.com/pkg/errors"
)

// TypeMismatchErr reports that a value did not match the expected BSON
// type at a given position.
type TypeMismatchErr struct {
	Path     string
	Expected string
	Actual   string
}

func (e *TypeMismatchErr) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("type mismatch: expected %s, got %s", e.Expected, e.Actual)
	}
	return fmt.Sprintf("type mismatch at %q: expected %s, got %s", e.Path, e.Expected, e.Actual)
}

// NewTypeMismatch builds a TypeMismatchErr with no path; use WithPath to
// attach one as the error propagates up through record fields.
func NewTypeMismatch(expected, actual string) error {
	return &TypeMismatchErr{Expected: expected, Actual: actual}
}

// ValueNotFoundErr reports a required key absent from a document, or an
// index out of range in an array.
type ValueNotFoundErr struct {
	Path string
}

func (e *ValueNotFoundErr) Error() string {
	if e.Path == "" {
		return "value not found"
	}
	return fmt.Sprintf("value not found: %q", e.Path)
}

// NewValueNotFound builds a ValueNotFoundErr for the given key/index path.
func NewValueNotFound(path string) error {
	return &ValueNotFoundErr{Path: path}
}

// DecodeFailureErr reports a value that was structurally valid but
// violated a semantic constraint of the target type (e.g. a Decimal128
// not representable as the requested integral type, or invalid ObjectId
// hex).
type DecodeFailureErr struct {
	Path   string
	Reason string
}

func (e *DecodeFailureErr) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("decode failure: %s", e.Reason)
	}
	return fmt.Sprintf("decode failure at %q: %s", e.Path, e.Reason)
}

// NewDecodeFailure builds a DecodeFailureErr for the given path/reason.
func NewDecodeFailure(path, reason string) error {
	return &DecodeFailureErr{Path: path, Reason: reason}
}

// DerivationErr is raised only at codec construction time (never at
// encode/decode time) for shapes the derivation engine cannot handle:
// @Flatten on a recursive type, @Flatten on a non-document type, or
// ambiguous sum-type discriminators.
type DerivationErr struct {
	TypeName string
	Reason   string
}

func (e *DerivationErr) Error() string {
	return fmt.Sprintf("cannot derive codec for %s: %s", e.TypeName, e.Reason)
}

// NewDerivationError builds a DerivationErr.
func NewDerivationError(typeName, reason string) error {
	return &DerivationErr{TypeName: typeName, Reason: reason}
}

// WithPath prepends a field/index segment to any error produced by this
// package, or wraps an arbitrary error with a positional path using
// pkg/errors so the original cause remains inspectable via errors.Cause.
func WithPath(path string, err error) error {
	if err == nil {
		return nil
	}
	switch e := err.(type) {
	case *TypeMismatchErr:
		return &TypeMismatchErr{Path: joinPath(path, e.Path), Expected: e.Expected, Actual: e.Actual}
	case *ValueNotFoundErr:
		return &ValueNotFoundErr{Path: joinPath(path, e.Path)}
	case *DecodeFailureErr:
		return &DecodeFailureErr{Path: joinPath(path, e.Path), Reason: e.Reason}
	default:
		return errors.Wrapf(err, "at %q", path)
	}
}

func joinPath(prefix, rest string) string {
	if rest == "" {
		return prefix
	}
	return prefix + "." + rest
}

// IsValueNotFound reports whether err (or its cause chain) is a
// ValueNotFoundErr.
func IsValueNotFound(err error) bool {
	_, ok := errors.Cause(err).(*ValueNotFoundErr)
	return ok
}

// IsTypeMismatch reports whether err (or its cause chain) is a
// TypeMismatchErr.
func IsTypeMismatch(err error) bool {
	_, ok := errors.Cause(err).(*TypeMismatchErr)
	return ok
}
