package modbus

import (
	"fmt"
	"io"
	"log"
	"strings"
	"sync"
	"time"

	sv "github.com/simonvetter/modbus"
	"github.com/sirupsen/logrus"

	modbusIface "github.com/tetragramaton/gasflow-go/internal/interface/modbus"
)

const (
	BackendGoburrow    = "goburrow"
	BackendSimonvetter = "simonvetter"
)

// NewTransport picks a backend by name. An empty name means goburrow.
func NewTransport(backend string, opts RTUOptions) (modbusIface.Transport, error) {
	switch strings.ToLower(backend) {
	case "", BackendGoburrow:
		return NewRTUTransport(opts), nil
	case BackendSimonvetter:
		return NewSVTransport(opts), nil
	default:
		return nil, fmt.Errorf("modbus: unknown backend %q", backend)
	}
}

type svTransport struct {
	opts RTUOptions
}

// NewSVTransport returns an RTU transport built on simonvetter/modbus.
// RS485 options are not supported by this backend and are ignored.
func NewSVTransport(opts RTUOptions) modbusIface.Transport {
	if opts.Logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		opts.Logger = l
	}
	return &svTransport{opts: opts}
}

func (t *svTransport) NewRTU(p modbusIface.RTUParams) (modbusIface.Session, error) {
	if err := checkParams(p); err != nil {
		return nil, err
	}
	conf := &sv.ClientConfiguration{
		URL:      "rtu://" + p.Port,
		Speed:    uint(p.BaudRate),
		DataBits: uint(p.DataBits),
		StopBits: uint(p.StopBits),
		Parity:   svParity(p.Parity),
	}
	if t.opts.Trace {
		w := t.opts.Logger.WithField("port", p.Port).WriterLevel(logrus.TraceLevel)
		conf.Logger = log.New(w, "", 0)
	}
	c, err := sv.NewClient(conf)
	if err != nil {
		return nil, err
	}
	return &svHandler{conf: conf, client: c}, nil
}

func svParity(p string) uint {
	switch p {
	case "E":
		return sv.PARITY_EVEN
	case "O":
		return sv.PARITY_ODD
	default:
		return sv.PARITY_NONE
	}
}

// svHandler rebuilds the client when the timeout changes because
// simonvetter only reads Timeout at construction.
type svHandler struct {
	mu        sync.Mutex
	conf      *sv.ClientConfiguration
	client    *sv.ModbusClient
	unitID    uint8
	connected bool
}

func (h *svHandler) SetSlave(id int) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.client == nil {
		return errReleased
	}
	if id < 0 || id > 247 {
		return fmt.Errorf("modbus: slave id %d out of range", id)
	}
	h.unitID = uint8(id)
	return h.client.SetUnitId(h.unitID)
}

func (h *svHandler) SetResponseTimeout(d time.Duration) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.client == nil {
		return errReleased
	}
	if d <= 0 {
		return fmt.Errorf("modbus: response timeout %v must be positive", d)
	}
	if h.connected {
		return fmt.Errorf("modbus: cannot change timeout on an open session")
	}
	h.conf.Timeout = d
	c, err := sv.NewClient(h.conf)
	if err != nil {
		return err
	}
	if err := c.SetUnitId(h.unitID); err != nil {
		return err
	}
	h.client = c
	return nil
}

func (h *svHandler) Connect() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.client == nil {
		return errReleased
	}
	if err := h.client.Open(); err != nil {
		return err
	}
	h.connected = true
	return nil
}

func (h *svHandler) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.closeLocked()
}

func (h *svHandler) closeLocked() error {
	if h.client == nil || !h.connected {
		return nil
	}
	h.connected = false
	return h.client.Close()
}

func (h *svHandler) Release() {
	h.mu.Lock()
	defer h.mu.Unlock()
	_ = h.closeLocked()
	h.client = nil
}

func (h *svHandler) ReadHoldingRegisters(address, quantity uint16) ([]uint16, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.client == nil {
		return nil, errReleased
	}
	words, err := h.client.ReadRegisters(address, quantity, sv.HOLDING_REGISTER)
	if err != nil {
		return nil, err
	}
	if len(words) < int(quantity) {
		return nil, fmt.Errorf("modbus: short response: %d of %d registers", len(words), quantity)
	}
	return words, nil
}

func (h *svHandler) WriteSingleRegister(address, value uint16) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.client == nil {
		return errReleased
	}
	return h.client.WriteRegister(address, value)
}
