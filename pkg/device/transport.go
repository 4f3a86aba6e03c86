package device

import modbusIface "github.com/tetragramaton/gasflow-go/internal/interface/modbus"

// The transport contract, exported so callers outside this module can supply
// their own RTU backend or the in-memory one in pkg/modbustest.
type (
	Transport = modbusIface.Transport
	Session   = modbusIface.Session
	RTUParams = modbusIface.RTUParams
	// RegisterAPI is the register surface of a Session.
	RegisterAPI = modbusIface.API
)
