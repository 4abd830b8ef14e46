// G/M-code command records for gcodescript
//
// A Code holds one protocol command: the mnemonic, its single-letter
// parameters in insertion order, and an optional human-readable
// comment. Codes are built by the friendly-name helpers in ops.go and
// rendered to text with Text(); the sequencer consumes them through
// its Command interface and never inspects their meaning.
//
// Copyright (C) 2026  Gcodescript Team
//
// This file may be distributed under the terms of the GNU GPLv3 license.

package gcode

import (
	"fmt"
	"strconv"
	"strings"
)

// Param is one single-letter command parameter. An empty Value renders
// as a bare flag letter (e.g. the X in "G28 X").
type Param struct {
	Letter byte
	Value  string
}

// Code describes one G/M-code command.
type Code struct {
	code           string
	comment        string
	checksumExempt bool
	params         []Param
}

// NewCode creates a command record for the given mnemonic.
func NewCode(code string) *Code {
	return &Code{code: code}
}

// WithComment attaches a human-readable comment. Comments never reach
// the checksum input and may be stripped at emission.
func (c *Code) WithComment(comment string) *Code {
	c.comment = comment
	return c
}

// NoChecksum marks the command as exempt from line numbering and
// checksumming even when the sequencer frames everything else.
func (c *Code) NoChecksum() *Code {
	c.checksumExempt = true
	return c
}

// Int appends an integer parameter.
func (c *Code) Int(letter byte, v int) *Code {
	return c.set(letter, strconv.Itoa(v))
}

// Float appends a float parameter, rendered in the shortest form that
// round-trips (G-code consumers accept "10" and "1.5" alike).
func (c *Code) Float(letter byte, v float64) *Code {
	return c.set(letter, strconv.FormatFloat(v, 'g', -1, 64))
}

// Flag appends a bare flag parameter with no value.
func (c *Code) Flag(letter byte) *Code {
	return c.set(letter, "")
}

// Str appends a string-valued parameter.
func (c *Code) Str(letter byte, v string) *Code {
	return c.set(letter, v)
}

// set records a parameter, replacing an existing one with the same
// letter in place so insertion order is stable under overrides.
func (c *Code) set(letter byte, value string) *Code {
	if letter >= 'a' && letter <= 'z' {
		letter -= 'a' - 'A'
	}
	for i := range c.params {
		if c.params[i].Letter == letter {
			c.params[i].Value = value
			return c
		}
	}
	c.params = append(c.params, Param{Letter: letter, Value: value})
	return c
}

// Mnemonic returns the command mnemonic (e.g. "M104").
func (c *Code) Mnemonic() string {
	return c.code
}

// Params returns a copy of the parameter list.
func (c *Code) Params() []Param {
	out := make([]Param, len(c.params))
	copy(out, c.params)
	return out
}

// Text renders the command text: the mnemonic followed by each
// parameter as letter+value, space separated.
func (c *Code) Text() string {
	var b strings.Builder
	b.WriteString(c.code)
	for _, p := range c.params {
		b.WriteByte(' ')
		b.WriteByte(p.Letter)
		b.WriteString(p.Value)
	}
	return b.String()
}

// Equal compares by mnemonic and parameters only; comments and
// checksum exemption are not part of command identity.
func (c *Code) Equal(rhs *Code) bool {
	if rhs == nil || c.code != rhs.code || len(c.params) != len(rhs.params) {
		return false
	}
	for i := range c.params {
		if c.params[i] != rhs.params[i] {
			return false
		}
	}
	return true
}

// String implements fmt.Stringer for debugging output.
func (c *Code) String() string {
	parts := []string{"code=" + c.code}
	if c.checksumExempt {
		parts = append(parts, "no_checksum=true")
	}
	if c.comment != "" {
		parts = append(parts, fmt.Sprintf("comment=%q", c.comment))
	}
	for _, p := range c.params {
		parts = append(parts, fmt.Sprintf("%c=%s", p.Letter, p.Value))
	}
	return "<Code(" + strings.Join(parts, ", ") + ")>"
}

// CommandText implements the sequencer's Command interface.
func (c *Code) CommandText() string {
	return c.Text()
}

// CommandComment implements the sequencer's Command interface.
func (c *Code) CommandComment() string {
	return c.comment
}

// ChecksumExempt reports whether the command opted out of framing.
func (c *Code) ChecksumExempt() bool {
	return c.checksumExempt
}
