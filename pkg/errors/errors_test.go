package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"testing"
)

func TestErrorFormatting(t *testing.T) {
	err := CommandCharsetError("G28\nM105", "command text contains a line terminator")
	msg := err.Error()
	if !strings.Contains(msg, string(ErrCommandCharset)) {
		t.Errorf("code missing from message: %q", msg)
	}
	if !strings.Contains(msg, "command") {
		t.Errorf("offending command missing from message: %q", msg)
	}
}

func TestUnwrap(t *testing.T) {
	cause := fmt.Errorf("disk on fire")
	err := ConfigLoadError("/etc/profile.yaml", cause)
	if !stderrors.Is(err, cause) {
		t.Error("wrapped cause not reachable via errors.Is")
	}
}

func TestCodePredicates(t *testing.T) {
	if !Is(CommandEmptyError(2), ErrCommandEmpty) {
		t.Error("Is failed on matching code")
	}
	if Is(CommandEmptyError(2), ErrLineOverflow) {
		t.Error("Is matched wrong code")
	}
	if Is(fmt.Errorf("plain"), ErrCommandEmpty) {
		t.Error("Is matched a non-ScriptError")
	}

	if !IsInvalidCommand(CommandEmptyError(0)) || !IsInvalidCommand(CommandCharsetError("x", "bad")) {
		t.Error("IsInvalidCommand misses command validation errors")
	}
	if IsInvalidCommand(LineOverflowError(10, 5)) {
		t.Error("IsInvalidCommand matched overflow")
	}
	if !IsConfig(ConfigValidationError("opt", "bad")) {
		t.Error("IsConfig misses validation errors")
	}
}

func TestLineOverflowCarriesLine(t *testing.T) {
	err := LineOverflowError(2147483648, 2147483647)
	if err.Line != 2147483648 {
		t.Errorf("Line=%d", err.Line)
	}
	if !Is(err, ErrLineOverflow) {
		t.Error("wrong code")
	}
}
