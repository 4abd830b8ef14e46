// Package protocol implements the textual line framing used by
// Marlin-style G-code links: an N-prefixed line number, an XOR
// checksum, and an optional trailing comment.
package protocol

import (
	"fmt"
	"strconv"
	"strings"

	"gcodescript/pkg/errors"
)

// Token spellings of the framed-line format.
const (
	LinenoPrefix = "N"
	ChecksumSep  = "*"
	CommentSep   = ";"

	// Line terminators selectable per deployment.
	TerminatorLF   = "\n"
	TerminatorCRLF = "\r\n"
)

// MaxLineno is the largest line number the protocol's N field carries
// (Marlin stores line numbers in a signed 32-bit value).
const MaxLineno = 1<<31 - 1

// Checksum computes the 8-bit XOR checksum over s, the same running
// exclusive-or Marlin firmwares recompute on receive.
func Checksum(s string) uint8 {
	var cs uint8
	for i := 0; i < len(s); i++ {
		cs ^= s[i]
	}
	return cs
}

// Frame assembles the checksummed wire form of a command,
// "N<lineNo> <text>*<sum>", and returns it with the checksum. The
// checksum input is exactly the line-number-prefixed text, so
// receivers can verify by re-XOR.
func Frame(lineNo int, text string) (string, uint8) {
	numbered := fmt.Sprintf("%s%d %s", LinenoPrefix, lineNo, text)
	sum := Checksum(numbered)
	return fmt.Sprintf("%s%s%d", numbered, ChecksumSep, sum), sum
}

// ParsedFrame is one framed line split back into its parts.
type ParsedFrame struct {
	Lineno   int
	Command  string
	Checksum uint8
	Comment  string
}

// Parse re-parses an emitted line and verifies its checksum. Comments
// are stripped before verification since they are excluded from the
// checksum input.
func Parse(line string) (*ParsedFrame, error) {
	body := line
	comment := ""
	if idx := strings.Index(body, CommentSep); idx >= 0 {
		comment = body[idx+len(CommentSep):]
		body = strings.TrimRight(body[:idx], " ")
	}
	if body == "" {
		return nil, errors.FrameParseError(line, "no command body")
	}

	star := strings.LastIndex(body, ChecksumSep)
	if star < 0 {
		return nil, errors.FrameParseError(line, "missing checksum separator")
	}
	numbered := body[:star]
	sum, err := strconv.ParseUint(body[star+len(ChecksumSep):], 10, 8)
	if err != nil {
		return nil, errors.FrameParseError(line, "bad checksum value")
	}

	if !strings.HasPrefix(numbered, LinenoPrefix) {
		return nil, errors.FrameParseError(line, "missing line number prefix")
	}
	rest := numbered[len(LinenoPrefix):]
	sp := strings.IndexByte(rest, ' ')
	if sp < 0 {
		return nil, errors.FrameParseError(line, "no command after line number")
	}
	lineno, err := strconv.Atoi(rest[:sp])
	if err != nil || lineno < 0 {
		return nil, errors.FrameParseError(line, "bad line number")
	}

	if got := Checksum(numbered); got != uint8(sum) {
		return nil, errors.ChecksumMismatchError(line, uint8(sum), got)
	}

	return &ParsedFrame{
		Lineno:   lineno,
		Command:  rest[sp+1:],
		Checksum: uint8(sum),
		Comment:  comment,
	}, nil
}

// Validate checks that command text can be framed: no embedded line
// terminators and printable ASCII only (the checksum is defined over
// single-byte character codes).
func Validate(text string) error {
	for i := 0; i < len(text); i++ {
		c := text[i]
		if c == '\n' || c == '\r' {
			return errors.CommandCharsetError(text, "command text contains a line terminator")
		}
		if c < 0x20 || c > 0x7e {
			return errors.CommandCharsetError(text, fmt.Sprintf("byte 0x%02x at offset %d outside protocol character set", c, i))
		}
	}
	return nil
}
