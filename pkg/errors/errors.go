// Unified error handling for gcodescript
//
// Copyright (C) 2026  Gcodescript Team
//
// This file may be distributed under the terms of the GNU GPLv3 license.

package errors

import (
	"fmt"
)

// ErrorCode represents the category of error
type ErrorCode string

const (
	// Configuration errors
	ErrConfigLoad       ErrorCode = "CONFIG_LOAD"
	ErrConfigValidation ErrorCode = "CONFIG_VALIDATION"

	// Renderer errors
	ErrGCodeArg ErrorCode = "GCODE_ARG"

	// Sequencer errors
	ErrCommandEmpty   ErrorCode = "SEQ_COMMAND_EMPTY"
	ErrCommandCharset ErrorCode = "SEQ_COMMAND_CHARSET"
	ErrLineOverflow   ErrorCode = "SEQ_LINE_OVERFLOW"

	// Framing errors
	ErrFrameParse       ErrorCode = "FRAME_PARSE"
	ErrChecksumMismatch ErrorCode = "FRAME_CHECKSUM"
)

// ScriptError is the unified error type for the script generator.
type ScriptError struct {
	// Code is the error category
	Code ErrorCode

	// Message is a human-readable error description
	Message string

	// Command is the offending command text, if applicable
	Command string

	// Line is the protocol line number, if applicable
	Line int

	// Err wraps the underlying error
	Err error
}

// Error implements the error interface
func (e *ScriptError) Error() string {
	if e.Command != "" {
		return fmt.Sprintf("[%s] %s (command %q)", e.Code, e.Message, e.Command)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *ScriptError) Unwrap() error {
	return e.Err
}

// SetCommand records the offending command text
func (e *ScriptError) SetCommand(text string) *ScriptError {
	e.Command = text
	return e
}

// SetLine records the protocol line number
func (e *ScriptError) SetLine(line int) *ScriptError {
	e.Line = line
	return e
}

// New creates a new ScriptError
func New(code ErrorCode, message string) *ScriptError {
	return &ScriptError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(err error, code ErrorCode, message string) *ScriptError {
	return &ScriptError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Config errors

// ConfigLoadError creates an error for config read/parse failure
func ConfigLoadError(path string, err error) *ScriptError {
	return Wrap(err, ErrConfigLoad, fmt.Sprintf("failed to load config '%s'", path))
}

// ConfigValidationError creates an error for config validation failure
func ConfigValidationError(option string, reason string) *ScriptError {
	return New(ErrConfigValidation, fmt.Sprintf("option '%s': %s", option, reason))
}

// Renderer errors

// GCodeArgError creates an error for an invalid renderer argument
func GCodeArgError(op string, reason string) *ScriptError {
	return New(ErrGCodeArg, fmt.Sprintf("%s: %s", op, reason))
}

// Sequencer errors

// CommandEmptyError creates an error for an empty or nil command
func CommandEmptyError(index int) *ScriptError {
	return New(ErrCommandEmpty, fmt.Sprintf("command %d is empty", index))
}

// CommandCharsetError creates an error for command text the protocol cannot frame
func CommandCharsetError(text string, reason string) *ScriptError {
	return New(ErrCommandCharset, reason).SetCommand(text)
}

// LineOverflowError creates an error for line counter exhaustion
func LineOverflowError(line, max int) *ScriptError {
	return New(ErrLineOverflow, fmt.Sprintf("line number %d exceeds maximum %d", line, max)).SetLine(line)
}

// Framing errors

// FrameParseError creates an error for a malformed framed line
func FrameParseError(line string, reason string) *ScriptError {
	return New(ErrFrameParse, fmt.Sprintf("malformed line %q: %s", line, reason))
}

// ChecksumMismatchError creates an error for a checksum that does not verify
func ChecksumMismatchError(line string, want, got uint8) *ScriptError {
	return New(ErrChecksumMismatch, fmt.Sprintf("checksum mismatch on %q: line carries %d, computed %d", line, want, got))
}

// Is checks if error matches given error code
func Is(err error, code ErrorCode) bool {
	if scriptErr, ok := err.(*ScriptError); ok {
		return scriptErr.Code == code
	}
	return false
}

// IsInvalidCommand checks if error is a command validation error
func IsInvalidCommand(err error) bool {
	return Is(err, ErrCommandEmpty) || Is(err, ErrCommandCharset)
}

// IsConfig checks if error is a config error
func IsConfig(err error) bool {
	return Is(err, ErrConfigLoad) || Is(err, ErrConfigValidation)
}
