// Package rrg drives a gas flow regulator (RRG) over MODBUS-RTU.
//
// The setpoint and the measured flow are signed 32-bit milli-SCCM values
// spread over two holding registers, high word at the lower address.
package rrg

import (
	"math"

	"github.com/tetragramaton/gasflow-go/pkg/device"
)

// Register map.
const (
	RegisterSetpoint uint16 = 2053 // 2 words: 2053-2054
	RegisterFlow     uint16 = 2103 // 2 words: 2103-2104
	RegisterGas      uint16 = 2100
	// RegisterTare is documented by the device; no operation uses it.
	RegisterTare uint16 = 39
)

// Defaults for the regulator's serial link.
const (
	DefaultBaudRate  = 38400
	DefaultSlaveID   = 1
	DefaultTimeoutMs = 50
)

// Numeric error codes, kept stable for callers that log or compare them.
const (
	ErrCodeFailedConnect       = -1001
	ErrCodeFailedCreateContext = -1002
	ErrCodeFailedSetSlave      = -1003
	ErrCodeFailedSetTimeout    = -1004
	ErrCodeFailedReadRegister  = -1005
	ErrCodeFailedWriteRegister = -1006
	ErrCodeInvalidParameter    = -1007
)

var driver = device.Driver{
	Name: "rrg",
	Codes: map[device.Kind]int{
		device.KindFailedConnect:       ErrCodeFailedConnect,
		device.KindFailedCreateContext: ErrCodeFailedCreateContext,
		device.KindFailedSetSlave:      ErrCodeFailedSetSlave,
		device.KindFailedSetTimeout:    ErrCodeFailedSetTimeout,
		device.KindFailedReadRegister:  ErrCodeFailedReadRegister,
		device.KindFailedWriteRegister: ErrCodeFailedWriteRegister,
		device.KindInvalidParameter:    ErrCodeInvalidParameter,
	},
}

// lastErr is the process-wide last-error slot of this package.
var lastErr device.ErrorState

// LastError describes the outcome of the most recent operation of any
// handle in this process. Prefer Handle.LastError when more than one
// goroutine uses the package.
func LastError() string {
	return lastErr.Message()
}

// DefaultConfig returns the regulator defaults for port.
func DefaultConfig(port string) device.Config {
	return device.Config{
		Port:      port,
		BaudRate:  DefaultBaudRate,
		SlaveID:   DefaultSlaveID,
		TimeoutMs: DefaultTimeoutMs,
	}
}

// Handle is an open connection to one regulator.
type Handle struct {
	conn *device.Conn
	last device.ErrorState
}

// Open connects to the regulator described by cfg.
func Open(cfg *device.Config, opts ...device.Option) (*Handle, error) {
	o := device.Resolve(opts...)
	conn, err := device.Open(cfg, o.Transport, driver, o.Logger)
	if err != nil {
		return nil, lastErr.Record(err)
	}
	lastErr.Reset()
	return &Handle{conn: conn}, nil
}

// Close disconnects from the regulator. Closing twice is a no-op.
func (h *Handle) Close() error {
	if h == nil {
		return nil
	}
	return h.conn.Close()
}

// SetFlow writes a new setpoint in SCCM.
//
// The device takes whole milli-SCCM. sccm*1000 is computed in float64 and
// truncated toward zero, so a value like 1.001 is written as 1000 and reads
// back as 1.0. Callers that need exact thousandths should round first.
//
// The high word goes to 2053 first, then the low word to 2054. If the second
// write fails the first one is not rolled back and the device holds a mixed
// setpoint until the next successful SetFlow.
func (h *Handle) SetFlow(sccm float64) error {
	if h == nil {
		return h.record(driver.Err(device.KindInvalidParameter, "set flow", nil))
	}
	hi, lo, err := EncodeSetpoint(sccm)
	if err != nil {
		return h.record(driver.Err(device.KindInvalidParameter, "set flow", err))
	}
	return h.record(h.conn.WriteRegisters("set flow", RegisterSetpoint, hi, lo))
}

// GetFlow reads the measured flow in SCCM.
func (h *Handle) GetFlow() (float64, error) {
	if h == nil {
		return 0, h.record(driver.Err(device.KindInvalidParameter, "get flow", nil))
	}
	words, err := h.conn.ReadRegisters("get flow", RegisterFlow, 2)
	if err != nil {
		return 0, h.record(err)
	}
	h.record(nil)
	return DecodeFlow(words[0], words[1]), nil
}

// SetGas selects the gas calibration profile. The id is not checked against
// the device's gas table; the device rejects unknown profiles itself.
func (h *Handle) SetGas(gasID int) error {
	if h == nil {
		return h.record(driver.Err(device.KindInvalidParameter, "set gas", nil))
	}
	if gasID < 0 || gasID > math.MaxUint16 {
		return h.record(driver.Err(device.KindInvalidParameter, "set gas", nil))
	}
	return h.record(h.conn.WriteRegisters("set gas", RegisterGas, uint16(gasID)))
}

// IsOpen reports whether the handle still holds a connection to the regulator.
func (h *Handle) IsOpen() bool {
	return h != nil && h.conn.IsOpen()
}

// LastError describes the outcome of this handle's most recent operation.
func (h *Handle) LastError() string {
	if h == nil {
		return lastErr.Message()
	}
	return h.last.Message()
}

func (h *Handle) record(err error) error {
	if h != nil {
		h.last.Record(err)
	}
	return lastErr.Record(err)
}
