package device

import (
	"errors"
	"fmt"
	"strings"
)

// Kind is the closed error taxonomy shared by the relay and flow drivers.
type Kind int

const (
	KindNone Kind = iota
	KindInvalidParameter
	KindFailedCreateContext
	KindFailedSetSlave
	KindFailedSetTimeout
	KindFailedConnect
	KindFailedReadRegister
	KindFailedWriteRegister
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "ok"
	case KindInvalidParameter:
		return "invalid parameter"
	case KindFailedCreateContext:
		return "failed to create context"
	case KindFailedSetSlave:
		return "failed to set slave"
	case KindFailedSetTimeout:
		return "failed to set timeout"
	case KindFailedConnect:
		return "failed to connect"
	case KindFailedReadRegister:
		return "failed to read register"
	case KindFailedWriteRegister:
		return "failed to write register"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Message returns the fixed human-readable sentence for k.
func (k Kind) Message() string {
	switch k {
	case KindNone:
		return "No error."
	case KindFailedConnect:
		return "Error: Connection to the MODBUS device failed."
	case KindFailedCreateContext:
		return "Error: Failed to create a MODBUS-RTU context."
	case KindFailedSetSlave:
		return "Error: Failed to set MODBUS slave ID."
	case KindFailedSetTimeout:
		return "Error: Failed to set MODBUS response timeout."
	case KindFailedReadRegister:
		return "Error: Failed to read a MODBUS register."
	case KindFailedWriteRegister:
		return "Error: Failed to write a MODBUS register."
	case KindInvalidParameter:
		return "Error: Invalid parameter provided to function."
	default:
		return "Unknown error occurred."
	}
}

// Sentinels for errors.Is. They match any *Error of the same Kind.
var (
	ErrInvalidParameter    = &Error{Kind: KindInvalidParameter}
	ErrFailedCreateContext = &Error{Kind: KindFailedCreateContext}
	ErrFailedSetSlave      = &Error{Kind: KindFailedSetSlave}
	ErrFailedSetTimeout    = &Error{Kind: KindFailedSetTimeout}
	ErrFailedConnect       = &Error{Kind: KindFailedConnect}
	ErrFailedReadRegister  = &Error{Kind: KindFailedReadRegister}
	ErrFailedWriteRegister = &Error{Kind: KindFailedWriteRegister}
)

// Error is returned by every failing driver operation.
type Error struct {
	Kind Kind
	// Code is the driver's numeric error code (e.g. -1006 for an RRG write failure).
	Code   int
	Driver string
	Op     string
	Err    error
}

func (e *Error) Error() string {
	var b strings.Builder
	if e.Driver != "" {
		b.WriteString(e.Driver)
		b.WriteString(": ")
	}
	if e.Op != "" {
		b.WriteString(e.Op)
		b.WriteString(": ")
	}
	b.WriteString(e.Kind.String())
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && (t.Code == 0 || t.Code == e.Code)
}

// ErrorCode returns the numeric driver code. Callers that only know
// interface{ ErrorCode() int } can extract it without importing this package.
func (e *Error) ErrorCode() int { return e.Code }

// Driver names a driver and its numeric error codes.
type Driver struct {
	Name  string
	Codes map[Kind]int
}

// Err builds an *Error for this driver.
func (d Driver) Err(kind Kind, op string, cause error) *Error {
	return &Error{
		Kind:   kind,
		Code:   d.Codes[kind],
		Driver: d.Name,
		Op:     op,
		Err:    cause,
	}
}

// KindOf extracts the Kind from err. nil maps to KindNone, foreign errors to -1.
func KindOf(err error) Kind {
	if err == nil {
		return KindNone
	}
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return Kind(-1)
}
