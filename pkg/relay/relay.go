// Package relay drives an electrically actuated relay over MODBUS-RTU.
package relay

import "github.com/tetragramaton/gasflow-go/pkg/device"

// RegisterOnOff switches the relay: 1 turns it on, 0 turns it off.
const RegisterOnOff uint16 = 512

const (
	DefaultBaudRate  = 115200
	DefaultSlaveID   = 6
	DefaultTimeoutMs = 10
)

const (
	ErrCodeFailedConnect       = -6001
	ErrCodeFailedCreateContext = -6002
	ErrCodeFailedSetSlave      = -6003
	ErrCodeFailedSetTimeout    = -6004
	ErrCodeFailedWriteRegister = -6005
	ErrCodeInvalidParameter    = -6006
)

var driver = device.Driver{
	Name: "relay",
	Codes: map[device.Kind]int{
		device.KindFailedConnect:       ErrCodeFailedConnect,
		device.KindFailedCreateContext: ErrCodeFailedCreateContext,
		device.KindFailedSetSlave:      ErrCodeFailedSetSlave,
		device.KindFailedSetTimeout:    ErrCodeFailedSetTimeout,
		device.KindFailedWriteRegister: ErrCodeFailedWriteRegister,
		device.KindInvalidParameter:    ErrCodeInvalidParameter,
	},
}

var lastErr device.ErrorState

// LastError describes the most recent relay operation in this process.
func LastError() string {
	return lastErr.Message()
}

func DefaultConfig(port string) device.Config {
	return device.Config{
		Port:      port,
		BaudRate:  DefaultBaudRate,
		SlaveID:   DefaultSlaveID,
		TimeoutMs: DefaultTimeoutMs,
	}
}

// Handle is an open connection to one relay.
type Handle struct {
	conn *device.Conn
	last device.ErrorState
}

func Open(cfg *device.Config, opts ...device.Option) (*Handle, error) {
	o := device.Resolve(opts...)
	conn, err := device.Open(cfg, o.Transport, driver, o.Logger)
	if err != nil {
		return nil, lastErr.Record(err)
	}
	lastErr.Reset()
	return &Handle{conn: conn}, nil
}

func (h *Handle) Close() error {
	if h == nil {
		return nil
	}
	return h.conn.Close()
}

// TurnOn writes 1 to the on/off register. Success means the device
// acknowledged the write; the contact state is not read back.
func (h *Handle) TurnOn() error {
	return h.write("turn on", 1)
}

// TurnOff writes 0 to the on/off register.
func (h *Handle) TurnOff() error {
	return h.write("turn off", 0)
}

// Set turns the relay on or off.
func (h *Handle) Set(on bool) error {
	if on {
		return h.TurnOn()
	}
	return h.TurnOff()
}

// IsOpen reports whether the handle still holds a connection to the relay.
func (h *Handle) IsOpen() bool {
	return h != nil && h.conn.IsOpen()
}

func (h *Handle) LastError() string {
	if h == nil {
		return lastErr.Message()
	}
	return h.last.Message()
}

func (h *Handle) write(op string, v uint16) error {
	if h == nil {
		return lastErr.Record(driver.Err(device.KindInvalidParameter, op, nil))
	}
	err := h.conn.WriteRegisters(op, RegisterOnOff, v)
	h.last.Record(err)
	return lastErr.Record(err)
}
