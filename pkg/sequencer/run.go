// Command sequencing and framing for gcodescript
//
// A Run owns a pending queue of commands, a monotonically increasing
// line counter, and the accumulated script. Commands enter through
// Queue (deferred), Execute (drain queue first, then the call's own
// commands), or ExecuteImmediate (bypass the queue). Every emitted
// command is framed with an N-prefixed line number and an XOR checksum
// unless framing is disabled or the command is checksum-exempt.
//
// A Run is single-writer: it performs no locking and no I/O of its own
// (the optional Sink is caller-provided); concurrent use of one
// instance must be serialized externally. Independent instances are
// fully isolated.
//
// Copyright (C) 2026  Gcodescript Team
//
// This file may be distributed under the terms of the GNU GPLv3 license.

package sequencer

import (
	"io"
	"strings"

	"gcodescript/pkg/errors"
	"gcodescript/pkg/log"
	"gcodescript/pkg/protocol"
)

// Command is one unit of rendered protocol command text plus an
// optional comment. The sequencer never interprets the text.
type Command interface {
	CommandText() string
	CommandComment() string
}

// checksumExempter is implemented by commands that must be emitted
// without line number and checksum even when framing is enabled.
type checksumExempter interface {
	ChecksumExempt() bool
}

// rawCommand adapts a plain text/comment pair to Command.
type rawCommand struct {
	text    string
	comment string
}

func (r rawCommand) CommandText() string    { return r.text }
func (r rawCommand) CommandComment() string { return r.comment }

// Raw wraps pre-rendered command text as a Command.
func Raw(text, comment string) Command {
	return rawCommand{text: text, comment: comment}
}

// Line is one emitted framed line. Immutable once returned.
type Line struct {
	// Number is the protocol line number, or -1 when the line was
	// emitted without framing.
	Number int

	// Command is the raw command text.
	Command string

	// Checksum is the 8-bit XOR checksum; only meaningful when
	// Number >= 0.
	Checksum uint8

	// Comment is the attached comment, empty if none or stripped.
	Comment string

	// Text is the exact emitted line, without terminator.
	Text string
}

// Options configures a Run.
type Options struct {
	// Checksum enables line numbering and checksum framing. With it
	// off, emission degenerates to the raw command text.
	Checksum bool

	// StripComments drops command comments from the output.
	StripComments bool

	// StartLine is the first line number to assign. Default 0.
	StartLine int

	// MaxLine caps the line counter; exceeding it fails the whole
	// call. Default protocol.MaxLineno.
	MaxLine int

	// Terminator ends each emitted line in Script and Sink output.
	// Default protocol.TerminatorLF.
	Terminator string

	// Sink, if set, receives every emitted line (with terminator) as
	// it is produced, e.g. a transport owned by the caller.
	Sink io.Writer

	// Logger, if set, traces queue and emission activity at DEBUG.
	Logger *log.Logger
}

// Run encapsulates one script build: the pending queue, the line
// counter, and the script produced so far.
type Run struct {
	opts    Options
	queue   []Command
	lineNo  int
	emitted []string
	history []Command
}

// New creates a Run with the given options.
func New(opts Options) *Run {
	if opts.MaxLine <= 0 {
		opts.MaxLine = protocol.MaxLineno
	}
	if opts.Terminator == "" {
		opts.Terminator = protocol.TerminatorLF
	}
	if opts.StartLine < 0 {
		opts.StartLine = 0
	}
	return &Run{
		opts:   opts,
		lineNo: opts.StartLine,
	}
}

// Queue appends commands to the pending queue. Nothing is emitted and
// the line counter does not move. Invalid input rejects the whole call
// and leaves the queue untouched.
func (r *Run) Queue(cmds ...Command) error {
	if err := r.validate(cmds); err != nil {
		return err
	}
	r.queue = append(r.queue, cmds...)
	r.opts.Logger.Debugf("queued %d command(s), %d pending", len(cmds), len(r.queue))
	return nil
}

// Execute drains the entire pending queue in order, then emits the
// call's own commands after it. The returned lines are also appended
// to the running script. On error nothing is drained or emitted.
func (r *Run) Execute(cmds ...Command) ([]Line, error) {
	// Validate before draining so a rejected batch leaves the queue,
	// counter, and script exactly as they were.
	if err := r.validate(cmds); err != nil {
		return nil, err
	}
	combined := make([]Command, 0, len(r.queue)+len(cmds))
	combined = append(combined, r.queue...)
	combined = append(combined, cmds...)
	lines, err := r.emit(combined)
	if err != nil {
		return nil, err
	}
	r.queue = r.queue[:0]
	return lines, nil
}

// ExecuteImmediate emits only the given commands, leaving the pending
// queue untouched. Line numbers are consumed from the same counter as
// Execute.
func (r *Run) ExecuteImmediate(cmds ...Command) ([]Line, error) {
	if err := r.validate(cmds); err != nil {
		return nil, err
	}
	return r.emit(cmds)
}

// Script returns a copy of the full accumulated script, each line
// followed by the configured terminator.
func (r *Run) Script() string {
	if len(r.emitted) == 0 {
		return ""
	}
	return strings.Join(r.emitted, r.opts.Terminator) + r.opts.Terminator
}

// Pending returns a copy of the queued, not-yet-emitted commands.
// Inspection never emits or advances the counter.
func (r *Run) Pending() []Command {
	out := make([]Command, len(r.queue))
	copy(out, r.queue)
	return out
}

// PendingCount returns the number of queued commands.
func (r *Run) PendingCount() int {
	return len(r.queue)
}

// History returns a copy of every command emitted so far, in order.
func (r *Run) History() []Command {
	out := make([]Command, len(r.history))
	copy(out, r.history)
	return out
}

// LineNo returns the next line number the counter will assign.
func (r *Run) LineNo() int {
	return r.lineNo
}

// Reset clears the queue, history, and script and rewinds the counter
// to StartLine, as if the Run were freshly constructed.
func (r *Run) Reset() {
	r.queue = nil
	r.history = nil
	r.emitted = nil
	r.lineNo = r.opts.StartLine
}

// validate checks a batch before any state changes. Empty or nil
// commands, text outside the protocol character set, and comments
// carrying line terminators all reject the whole batch.
func (r *Run) validate(cmds []Command) error {
	for i, cmd := range cmds {
		if cmd == nil {
			return errors.CommandEmptyError(i)
		}
		text := cmd.CommandText()
		if text == "" {
			return errors.CommandEmptyError(i)
		}
		if err := protocol.Validate(text); err != nil {
			return err
		}
		if comment := cmd.CommandComment(); strings.ContainsAny(comment, "\r\n") {
			return errors.CommandCharsetError(text, "comment contains a line terminator")
		}
	}
	return nil
}

// framed reports whether a command consumes a line number.
func (r *Run) framed(cmd Command) bool {
	if !r.opts.Checksum {
		return false
	}
	if ex, ok := cmd.(checksumExempter); ok && ex.ChecksumExempt() {
		return false
	}
	return true
}

// emit frames each command in order and appends to the script. The
// counter overflow check runs up front so either every command in the
// batch is emitted or none is.
func (r *Run) emit(cmds []Command) ([]Line, error) {
	needed := 0
	for _, cmd := range cmds {
		if r.framed(cmd) {
			needed++
		}
	}
	if needed > 0 && r.lineNo+needed-1 > r.opts.MaxLine {
		return nil, errors.LineOverflowError(r.lineNo+needed-1, r.opts.MaxLine)
	}

	lines := make([]Line, 0, len(cmds))
	for _, cmd := range cmds {
		text := cmd.CommandText()
		line := Line{Number: -1, Command: text, Text: text}

		if r.framed(cmd) {
			line.Number = r.lineNo
			line.Text, line.Checksum = protocol.Frame(r.lineNo, text)
			r.lineNo++
		}

		if comment := cmd.CommandComment(); comment != "" && !r.opts.StripComments {
			line.Comment = comment
			line.Text += " " + protocol.CommentSep + comment
		}

		r.emitted = append(r.emitted, line.Text)
		r.history = append(r.history, cmd)
		lines = append(lines, line)

		if r.opts.Sink != nil {
			if _, err := io.WriteString(r.opts.Sink, line.Text+r.opts.Terminator); err != nil {
				r.opts.Logger.Warnf("sink write failed: %v", err)
			}
		}
		r.opts.Logger.Debugf("emit %q", line.Text)
	}
	return lines, nil
}
