package modbus

//go:generate mockgen -destination=mock/mock_modbus.go -package=mock github.com/tetragramaton/gasflow-go/internal/interface/modbus Transport,Session

import "time"

// RTUParams is what a transport needs to create an RTU session.
type RTUParams struct {
	Port     string `json:"port"`
	BaudRate int    `json:"baud_rate"`
	Parity   string `json:"parity"` // "N","E","O"
	DataBits int    `json:"data_bits"`
	StopBits int    `json:"stop_bits"`
}

// Transport creates RTU sessions. One call, one session; nothing is opened yet.
type Transport interface {
	NewRTU(params RTUParams) (Session, error)
}

// Session is a single MODBUS-RTU session between creation and Release.
// Close disconnects, Release frees whatever the session still holds.
type Session interface {
	API
	SetSlave(id int) error
	SetResponseTimeout(d time.Duration) error
	Connect() error
	Close() error
	Release()
}

// API is the register surface the drivers use.
type API interface {
	ReadHoldingRegisters(address, quantity uint16) (words []uint16, err error)
	WriteSingleRegister(address, value uint16) error
}
