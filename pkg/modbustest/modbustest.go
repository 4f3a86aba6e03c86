// Package modbustest provides an in-memory MODBUS transport for tests.
// Writes land in a register bank that reads echo back.
package modbustest

import (
	"errors"
	"fmt"
	"sync"
	"time"

	modbusIface "github.com/tetragramaton/gasflow-go/internal/interface/modbus"
)

// Step names a Session call that can be made to fail.
type Step string

const (
	StepCreate  Step = "create"
	StepSlave   Step = "slave"
	StepTimeout Step = "timeout"
	StepConnect Step = "connect"
	StepRead    Step = "read"
	StepWrite   Step = "write"
)

var ErrInjected = errors.New("modbustest: injected failure")

type mirror struct {
	from, to, n uint16
}

// Write is one recorded single-register write.
type Write struct {
	Addr  uint16
	Value uint16
}

// Transport is a fake modbus.Transport backed by one shared register bank.
type Transport struct {
	mu sync.Mutex

	regs map[uint16]uint16
	fail map[Step]bool
	// failWriteAt fails only the write to this address when set.
	failWriteAt *uint16
	mirrors     []mirror

	Created   int
	Released  int
	Connected int
	Closed    int

	LastParams  modbusIface.RTUParams
	LastSlave   int
	LastTimeout time.Duration
	Writes      []Write
}

func New() *Transport {
	return &Transport{
		regs: make(map[uint16]uint16),
		fail: make(map[Step]bool),
	}
}

// Fail makes every later call of the given step return ErrInjected.
func (t *Transport) Fail(s Step) *Transport {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.fail[s] = true
	return t
}

// FailWriteAt fails writes to a single address only.
func (t *Transport) FailWriteAt(addr uint16) *Transport {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.failWriteAt = &addr
	return t
}

// Mirror copies every write to [from, from+n) into the same offset at to.
// It stands in for a device whose reading follows its setpoint.
func (t *Transport) Mirror(from, to, n uint16) *Transport {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.mirrors = append(t.mirrors, mirror{from: from, to: to, n: n})
	return t
}

// Heal clears all injected failures.
func (t *Transport) Heal() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.fail = make(map[Step]bool)
	t.failWriteAt = nil
}

// Set preloads a register.
func (t *Transport) Set(addr, value uint16) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.regs[addr] = value
}

// Get returns the current register value.
func (t *Transport) Get(addr uint16) uint16 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.regs[addr]
}

// Balanced reports whether every created session was released.
func (t *Transport) Balanced() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.Created == t.Released
}

func (t *Transport) NewRTU(p modbusIface.RTUParams) (modbusIface.Session, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.LastParams = p
	if t.fail[StepCreate] {
		return nil, ErrInjected
	}
	t.Created++
	return &session{t: t}, nil
}

type session struct {
	t         *Transport
	connected bool
	released  bool
}

func (s *session) SetSlave(id int) error {
	s.t.mu.Lock()
	defer s.t.mu.Unlock()
	if s.t.fail[StepSlave] {
		return ErrInjected
	}
	s.t.LastSlave = id
	return nil
}

func (s *session) SetResponseTimeout(d time.Duration) error {
	s.t.mu.Lock()
	defer s.t.mu.Unlock()
	if s.t.fail[StepTimeout] {
		return ErrInjected
	}
	s.t.LastTimeout = d
	return nil
}

func (s *session) Connect() error {
	s.t.mu.Lock()
	defer s.t.mu.Unlock()
	if s.t.fail[StepConnect] {
		return ErrInjected
	}
	s.connected = true
	s.t.Connected++
	return nil
}

func (s *session) Close() error {
	s.t.mu.Lock()
	defer s.t.mu.Unlock()
	if s.connected {
		s.connected = false
		s.t.Closed++
	}
	return nil
}

func (s *session) Release() {
	s.t.mu.Lock()
	defer s.t.mu.Unlock()
	if s.released {
		panic("modbustest: session released twice")
	}
	s.released = true
	s.t.Released++
}

func (s *session) ReadHoldingRegisters(address, quantity uint16) ([]uint16, error) {
	s.t.mu.Lock()
	defer s.t.mu.Unlock()
	if err := s.usable(); err != nil {
		return nil, err
	}
	if s.t.fail[StepRead] {
		return nil, ErrInjected
	}
	out := make([]uint16, quantity)
	for i := range out {
		out[i] = s.t.regs[address+uint16(i)]
	}
	return out, nil
}

func (s *session) WriteSingleRegister(address, value uint16) error {
	s.t.mu.Lock()
	defer s.t.mu.Unlock()
	if err := s.usable(); err != nil {
		return err
	}
	if s.t.fail[StepWrite] {
		return ErrInjected
	}
	if s.t.failWriteAt != nil && *s.t.failWriteAt == address {
		return fmt.Errorf("write %d: %w", address, ErrInjected)
	}
	s.t.regs[address] = value
	for _, m := range s.t.mirrors {
		if address >= m.from && address < m.from+m.n {
			s.t.regs[m.to+(address-m.from)] = value
		}
	}
	s.t.Writes = append(s.t.Writes, Write{Addr: address, Value: value})
	return nil
}

func (s *session) usable() error {
	if s.released {
		return errors.New("modbustest: session released")
	}
	if !s.connected {
		return errors.New("modbustest: not connected")
	}
	return nil
}
