package modbus

import (
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/goburrow/modbus"
	"github.com/goburrow/serial"
	"github.com/sirupsen/logrus"

	modbusIface "github.com/tetragramaton/gasflow-go/internal/interface/modbus"
)

// RTUOptions tune the serial line below every session the transport creates.
type RTUOptions struct {
	RS485 serial.RS485Config
	// Trace logs every frame at trace level.
	Trace  bool
	Logger logrus.FieldLogger
}

type rtuTransport struct {
	opts RTUOptions
}

// NewRTUTransport returns the goburrow backed RTU transport.
func NewRTUTransport(opts RTUOptions) modbusIface.Transport {
	if opts.Logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		opts.Logger = l
	}
	return &rtuTransport{opts: opts}
}

func (t *rtuTransport) NewRTU(p modbusIface.RTUParams) (modbusIface.Session, error) {
	if err := checkParams(p); err != nil {
		return nil, err
	}

	rh := modbus.NewRTUClientHandler(p.Port)
	rh.BaudRate = p.BaudRate
	rh.DataBits = p.DataBits
	rh.Parity = p.Parity
	rh.StopBits = p.StopBits
	rh.RS485 = t.opts.RS485
	if t.opts.Trace {
		w := t.opts.Logger.WithField("port", p.Port).WriterLevel(logrus.TraceLevel)
		rh.Logger = log.New(w, "", 0)
	}

	return &rtuHandler{
		client: modbus.NewClient(rh),
		rh:     rh,
	}, nil
}

type rtuHandler struct {
	client    modbus.Client
	rh        *modbus.RTUClientHandler
	connected bool
}

func (h *rtuHandler) SetSlave(id int) error {
	if h.rh == nil {
		return errReleased
	}
	if id < 0 || id > 247 {
		return fmt.Errorf("modbus: slave id %d out of range", id)
	}
	h.rh.SlaveId = byte(id)
	return nil
}

func (h *rtuHandler) SetResponseTimeout(d time.Duration) error {
	if h.rh == nil {
		return errReleased
	}
	if d <= 0 {
		return fmt.Errorf("modbus: response timeout %v must be positive", d)
	}
	h.rh.Timeout = d
	return nil
}

func (h *rtuHandler) Connect() error {
	if h.rh == nil {
		return errReleased
	}
	if err := h.rh.Connect(); err != nil {
		return err
	}
	h.connected = true
	return nil
}

func (h *rtuHandler) Close() error {
	if h.rh == nil || !h.connected {
		return nil
	}
	h.connected = false
	return h.rh.Close()
}

func (h *rtuHandler) Release() {
	if h.rh == nil {
		return
	}
	if h.connected {
		_ = h.Close()
	}
	h.rh = nil
	h.client = nil
}

func (h *rtuHandler) ReadHoldingRegisters(address, quantity uint16) ([]uint16, error) {
	if h.client == nil {
		return nil, errReleased
	}
	res, err := h.client.ReadHoldingRegisters(address, quantity)
	if err != nil {
		return nil, err
	}
	return bytesToWords(res, quantity)
}

func (h *rtuHandler) WriteSingleRegister(address, value uint16) error {
	if h.client == nil {
		return errReleased
	}
	_, err := h.client.WriteSingleRegister(address, value)
	return err
}

var errReleased = errors.New("modbus: session released")

func checkParams(p modbusIface.RTUParams) error {
	if p.Port == "" {
		return errors.New("modbus: empty serial port")
	}
	if p.BaudRate <= 0 {
		return fmt.Errorf("modbus: invalid baud rate %d", p.BaudRate)
	}
	switch p.Parity {
	case "N", "E", "O":
	default:
		return fmt.Errorf("modbus: invalid parity %q", p.Parity)
	}
	return nil
}

// bytesToWords decodes big-endian register payload.
func bytesToWords(b []byte, quantity uint16) ([]uint16, error) {
	if len(b) < int(quantity)*2 {
		return nil, fmt.Errorf("modbus: short response: %d bytes for %d registers", len(b), quantity)
	}
	out := make([]uint16, quantity)
	for i := range out {
		out[i] = uint16(b[2*i])<<8 | uint16(b[2*i+1])
	}
	return out, nil
}
