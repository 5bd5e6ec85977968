// errors.go: wire-serializable error taxonomy for the Xanthus interpreter
//
// This file provides structured error types using the go-errors library,
// enabling rich error context, categorization, and standardized error codes
// for every failure the command interpreter can produce.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0
package xanthus

import (
	goerrors "errors"

	"github.com/agilira/go-errors"
)

// Error codes for Xanthus interpreter operations.
const (
	// Configuration errors
	ErrCodeInvalidConfig errors.ErrorCode = "XANTHUS_INVALID_CONFIG"

	// Interpreter errors — these mirror the wire error kinds in §7
	// of the protocol spec and are what gets serialized back to a client.
	ErrCodeReturnNotFound     errors.ErrorCode = "XANTHUS_RETURN_NOT_FOUND"
	ErrCodeUnexpectedByte     errors.ErrorCode = "XANTHUS_UNEXPECTED_BYTE"
	ErrCodeTypeNotAtomic      errors.ErrorCode = "XANTHUS_TYPE_NOT_ATOMIC"
	ErrCodeOperationNoSupport errors.ErrorCode = "XANTHUS_OPERATION_NO_SUPPORT"

	// Internal errors — never sent to a client, logged only.
	ErrCodeDateTime        errors.ErrorCode = "XANTHUS_DATETIME"
	ErrCodeInvariantBroken errors.ErrorCode = "XANTHUS_INVARIANT_BROKEN"

	// Transport errors
	ErrCodePortInUse   errors.ErrorCode = "XANTHUS_PORT_IN_USE"
	ErrCodeQueueClosed errors.ErrorCode = "XANTHUS_QUEUE_CLOSED"
)

// Common error messages.
const (
	msgInvalidConfig     = "invalid server configuration"
	msgReturnNotFound    = "key not found"
	msgUnexpectedByte    = "unexpected byte in command stream"
	msgTypeNotAtomic     = "atomic operation requested on a non-atomic value"
	msgOperationNoSupport = "atomic operation not supported for this type"
	msgDateTime          = "time formatting failed"
	msgInvariantBroken   = "internal invariant violated"
	msgPortInUse         = "listening port already in use"
	msgQueueClosed       = "worker queue is shutting down"
)

// NewErrInvalidConfig reports a configuration value that could not be
// normalized to a usable default.
func NewErrInvalidConfig(field string, value interface{}) error {
	return errors.NewWithContext(ErrCodeInvalidConfig, msgInvalidConfig, map[string]interface{}{
		"field": field,
		"value": value,
	})
}

// NewErrReturnNotFound reports §7 ReturnNotFound: the lookup target of a
// CMD_RETURN_KV was absent. keyBytes is the packed key echoed back to the
// client per spec.md §8 scenario 5.
func NewErrReturnNotFound(keyBytes []byte) error {
	return errors.NewWithField(ErrCodeReturnNotFound, msgReturnNotFound, "key", keyBytes)
}

// NewErrUnexpectedByte reports §7 UnexpectedByte: an unknown opcode or tag
// halted interpretation. offset is the byte's position in the request body.
func NewErrUnexpectedByte(b byte, offset int) error {
	return errors.NewWithContext(ErrCodeUnexpectedByte, msgUnexpectedByte, map[string]interface{}{
		"byte":   b,
		"offset": offset,
	})
}

// NewErrTypeNotAtomic reports §7 TypeNotAtomic: an atomic op opcode was
// invoked on a leaf whose Value tag is non-atomic, or on a Map.
func NewErrTypeNotAtomic(keyBytes []byte, typeTag byte) error {
	return errors.NewWithContext(ErrCodeTypeNotAtomic, msgTypeNotAtomic, map[string]interface{}{
		"key":      keyBytes,
		"typeTag":  typeTag,
	})
}

// NewErrOperationNoSupport reports §7 OperationNoSupport: the atomic op
// opcode is not a legal combination for the leaf's underlying type.
func NewErrOperationNoSupport(keyBytes []byte, typeTag byte, op uint16) error {
	return errors.NewWithContext(ErrCodeOperationNoSupport, msgOperationNoSupport, map[string]interface{}{
		"key":     keyBytes,
		"typeTag": typeTag,
		"op":      op,
	})
}

// NewErrDateTime reports §7 DateTime. Internal only — never returned in a
// response body, logged through a Logger instead.
func NewErrDateTime(cause error) error {
	return errors.Wrap(cause, ErrCodeDateTime, msgDateTime)
}

// NewErrInvariantBroken reports an internal inconsistency (e.g. a trie walk
// expecting an Item but finding a Table). The interpreter never produces
// this error and has no wire form for it; Items and Tables are distinct Go
// types in trie.go, so a trie walk cannot meet that inconsistency.
func NewErrInvariantBroken(where string) error {
	return errors.NewWithField(ErrCodeInvariantBroken, msgInvariantBroken, "where", where).
		WithSeverity("critical")
}

// NewErrPortInUse reports a fatal bind failure at startup (spec.md §6: exit
// code 1).
func NewErrPortInUse(addr string, cause error) error {
	return errors.Wrap(cause, ErrCodePortInUse, msgPortInUse).
		WithContext("address", addr)
}

// NewErrQueueClosed reports that a worker's SPSC queue stopped accepting
// pushes because the worker group is shutting down.
func NewErrQueueClosed(workerIndex int) error {
	return errors.NewWithField(ErrCodeQueueClosed, msgQueueClosed, "worker", workerIndex)
}

// IsReturnNotFound reports whether err is the §7 ReturnNotFound kind.
func IsReturnNotFound(err error) bool {
	return errors.HasCode(err, ErrCodeReturnNotFound)
}

// IsTypeNotAtomic reports whether err is the §7 TypeNotAtomic kind.
func IsTypeNotAtomic(err error) bool {
	return errors.HasCode(err, ErrCodeTypeNotAtomic)
}

// GetErrorCode extracts the error code from an error, if any.
func GetErrorCode(err error) errors.ErrorCode {
	if err == nil {
		return ""
	}
	var coder errors.ErrorCoder
	if goerrors.As(err, &coder) {
		return coder.ErrorCode()
	}
	return ""
}
