package device_test

import (
	"testing"

	"github.com/tetragramaton/gasflow-go/pkg/device"
	"github.com/tetragramaton/gasflow-go/pkg/modbustest"
)

// portRecorder is a Transport written against the exported aliases only.
type portRecorder struct {
	inner device.Transport
	ports []string
}

func (p *portRecorder) NewRTU(params device.RTUParams) (device.Session, error) {
	p.ports = append(p.ports, params.Port)
	return p.inner.NewRTU(params)
}

var (
	_ device.Transport   = (*portRecorder)(nil)
	_ device.Transport   = modbustest.New()
	_ device.RegisterAPI = device.Session(nil)
)

func TestOpen_ExternalTransport(t *testing.T) {
	fake := modbustest.New()
	tr := &portRecorder{inner: fake}
	cfg := &device.Config{Port: "/dev/fake3", BaudRate: 9600, SlaveID: 2, TimeoutMs: 20}

	c, err := device.Open(cfg, tr, device.Driver{Name: "ext"}, nil)
	if err != nil {
		t.Fatalf("Open err=%v", err)
	}
	if !c.IsOpen() {
		t.Fatalf("conn not open after Open")
	}
	if len(tr.ports) != 1 || tr.ports[0] != "/dev/fake3" {
		t.Fatalf("ports=%v", tr.ports)
	}
	if err := c.WriteRegisters("write", 7, 42); err != nil {
		t.Fatalf("WriteRegisters err=%v", err)
	}
	if fake.Get(7) != 42 {
		t.Fatalf("register 7=%d", fake.Get(7))
	}

	if err := c.Close(); err != nil {
		t.Fatalf("Close err=%v", err)
	}
	if c.IsOpen() {
		t.Fatalf("conn open after Close")
	}
}
