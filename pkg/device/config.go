package device

import "time"

// Fixed serial framing for both devices: 8N1.
const (
	DataBits = 8
	StopBits = 1
	Parity   = "N"
)

// Config holds the connection parameters of one device.
type Config struct {
	Port      string `json:"port" yaml:"port"`           // e.g. "/dev/ttyUSB0" or "COM3"
	BaudRate  int    `json:"baud_rate" yaml:"baud_rate"` // e.g. 38400
	SlaveID   int    `json:"slave_id" yaml:"slave_id"`
	TimeoutMs int    `json:"timeout_ms" yaml:"timeout_ms"` // response timeout
}

// Timeout is the response timeout as a duration.
func (c Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutMs) * time.Millisecond
}

func (c Config) rtuParams() RTUParams {
	return RTUParams{
		Port:     c.Port,
		BaudRate: c.BaudRate,
		Parity:   Parity,
		DataBits: DataBits,
		StopBits: StopBits,
	}
}
