// Package device holds the connection lifecycle and error taxonomy shared by
// the relay and gas flow regulator drivers.
package device

import (
	"fmt"
	"io"
	"sync"

	"github.com/sirupsen/logrus"
)

// Conn owns one transport session between a successful Open and Close.
// Register operations are serialized; MODBUS-RTU is half-duplex.
type Conn struct {
	mu      sync.Mutex
	session Session
	closed  bool

	cfg Config
	drv Driver
	log logrus.FieldLogger
}

// Open creates, configures and connects a session for cfg.
// Any failure after the session is created releases it before returning.
func Open(cfg *Config, tr Transport, drv Driver, log logrus.FieldLogger) (*Conn, error) {
	if log == nil {
		log = DiscardLogger()
	}
	if cfg == nil || tr == nil {
		log.WithField("driver", drv.Name).Debug("open: missing config or transport")
		return nil, drv.Err(KindInvalidParameter, "open", nil)
	}
	c := *cfg
	log = log.WithFields(logrus.Fields{
		"driver":   drv.Name,
		"port":     c.Port,
		"slave_id": c.SlaveID,
	})

	session, err := tr.NewRTU(c.rtuParams())
	if err != nil {
		log.WithError(err).Debug("open: create rtu session")
		return nil, drv.Err(KindFailedCreateContext, "open", err)
	}
	if session == nil {
		return nil, drv.Err(KindFailedCreateContext, "open", fmt.Errorf("transport returned no session"))
	}

	owned := false
	defer func() {
		if !owned {
			session.Release()
		}
	}()

	if err := session.SetSlave(c.SlaveID); err != nil {
		log.WithError(err).Debug("open: set slave")
		return nil, drv.Err(KindFailedSetSlave, "open", err)
	}
	if err := session.SetResponseTimeout(c.Timeout()); err != nil {
		log.WithError(err).WithField("timeout_ms", c.TimeoutMs).Debug("open: set response timeout")
		return nil, drv.Err(KindFailedSetTimeout, "open", err)
	}
	if err := session.Connect(); err != nil {
		log.WithError(err).Debug("open: connect")
		return nil, drv.Err(KindFailedConnect, "open", err)
	}

	owned = true
	log.Debug("open: connected")
	return &Conn{
		session: session,
		cfg:     c,
		drv:     drv,
		log:     log,
	}, nil
}

// Config returns the parameters the connection was opened with.
func (c *Conn) Config() Config {
	return c.cfg
}

// IsOpen reports whether the connection is usable, i.e. opened and not yet
// closed. A nil Conn is not open.
func (c *Conn) IsOpen() bool {
	if c == nil {
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return !c.closed && c.session != nil
}

// Close disconnects and releases the session. Closing a nil or already
// closed Conn is a no-op.
func (c *Conn) Close() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed || c.session == nil {
		return nil
	}
	err := c.session.Close()
	c.session.Release()
	c.session = nil
	c.closed = true

	if err != nil {
		c.log.WithError(err).Debug("close: disconnect")
		return fmt.Errorf("%s: close: %w", c.drv.Name, err)
	}
	c.log.Debug("close: released")
	return nil
}

// WriteRegisters writes values to addr, addr+1, ... one single-register
// write at a time. It stops at the first failure; earlier writes stay on the
// device.
func (c *Conn) WriteRegisters(op string, addr uint16, values ...uint16) error {
	if c == nil {
		return Driver{}.Err(KindInvalidParameter, op, nil)
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed || c.session == nil {
		return c.drv.Err(KindInvalidParameter, op, nil)
	}
	for i, v := range values {
		reg := addr + uint16(i)
		if err := c.session.WriteSingleRegister(reg, v); err != nil {
			c.log.WithError(err).WithFields(logrus.Fields{
				"op":       op,
				"register": reg,
				"value":    v,
				"written":  i,
			}).Debug("write register")
			return c.drv.Err(KindFailedWriteRegister, op, fmt.Errorf("register %d: %w", reg, err))
		}
	}
	return nil
}

// ReadRegisters reads n consecutive holding registers starting at addr.
func (c *Conn) ReadRegisters(op string, addr, n uint16) ([]uint16, error) {
	if c == nil {
		return nil, Driver{}.Err(KindInvalidParameter, op, nil)
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed || c.session == nil {
		return nil, c.drv.Err(KindInvalidParameter, op, nil)
	}
	words, err := c.session.ReadHoldingRegisters(addr, n)
	if err != nil {
		c.log.WithError(err).WithFields(logrus.Fields{
			"op":       op,
			"register": addr,
			"quantity": n,
		}).Debug("read registers")
		return nil, c.drv.Err(KindFailedReadRegister, op, fmt.Errorf("register %d: %w", addr, err))
	}
	if len(words) < int(n) {
		return nil, c.drv.Err(KindFailedReadRegister, op,
			fmt.Errorf("register %d: short response: got %d words, want %d", addr, len(words), n))
	}
	return words[:n], nil
}

// DiscardLogger returns a logger that drops everything.
func DiscardLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	l.SetLevel(logrus.PanicLevel)
	return l
}
