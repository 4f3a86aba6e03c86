package device

import (
	"errors"
	"fmt"
	"testing"
)

func TestKindMessage(t *testing.T) {
	cases := map[Kind]string{
		KindNone:                "No error.",
		KindFailedConnect:       "Error: Connection to the MODBUS device failed.",
		KindFailedCreateContext: "Error: Failed to create a MODBUS-RTU context.",
		KindFailedSetSlave:      "Error: Failed to set MODBUS slave ID.",
		KindFailedSetTimeout:    "Error: Failed to set MODBUS response timeout.",
		KindFailedReadRegister:  "Error: Failed to read a MODBUS register.",
		KindFailedWriteRegister: "Error: Failed to write a MODBUS register.",
		KindInvalidParameter:    "Error: Invalid parameter provided to function.",
		Kind(99):                "Unknown error occurred.",
		Kind(-1):                "Unknown error occurred.",
	}
	for k, want := range cases {
		if got := k.Message(); got != want {
			t.Errorf("kind %d: got %q want %q", int(k), got, want)
		}
	}
}

func TestErrorIsAndUnwrap(t *testing.T) {
	cause := errors.New("serial: timeout")
	err := fmt.Errorf("wrapped: %w", testDriver.Err(KindFailedWriteRegister, "set flow", cause))

	if !errors.Is(err, ErrFailedWriteRegister) {
		t.Fatalf("errors.Is by kind failed")
	}
	if errors.Is(err, ErrFailedReadRegister) {
		t.Fatalf("matched wrong kind")
	}
	if !errors.Is(err, cause) {
		t.Fatalf("cause not reachable")
	}
	if !errors.Is(err, &Error{Kind: KindFailedWriteRegister, Code: -6}) {
		t.Fatalf("expected match on kind and code")
	}
	if errors.Is(err, &Error{Kind: KindFailedWriteRegister, Code: -1006}) {
		t.Fatalf("matched foreign code")
	}

	var coder interface{ ErrorCode() int }
	if !errors.As(err, &coder) || coder.ErrorCode() != -6 {
		t.Fatalf("ErrorCode not exposed")
	}

	want := "test: set flow: failed to write register: serial: timeout"
	if got := errors.Unwrap(err).Error(); got != want {
		t.Fatalf("Error()=%q want %q", got, want)
	}
}

func TestErrorStateRecord(t *testing.T) {
	var s ErrorState
	if s.Message() != "No error." {
		t.Fatalf("zero state: %q", s.Message())
	}

	err := s.Record(testDriver.Err(KindFailedConnect, "open", nil))
	if err == nil || s.Kind() != KindFailedConnect {
		t.Fatalf("failure not recorded: %v", s.Kind())
	}
	if s.Message() != "Error: Connection to the MODBUS device failed." {
		t.Fatalf("message=%q", s.Message())
	}

	if err := s.Record(nil); err != nil {
		t.Fatalf("Record(nil) returned %v", err)
	}
	if s.Message() != "No error." {
		t.Fatalf("success did not reset: %q", s.Message())
	}

	s.Record(errors.New("foreign"))
	if s.Message() != "Unknown error occurred." {
		t.Fatalf("foreign error message=%q", s.Message())
	}
}
