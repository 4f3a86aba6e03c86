package rrg

import (
	"math"
	"testing"
)

func TestEncodeSetpoint_KnownWords(t *testing.T) {
	cases := []struct {
		sccm   float64
		hi, lo uint16
	}{
		{0, 0x0000, 0x0000},
		{1.5, 0x0000, 0x05DC},     // 1500
		{65.5, 0x0000, 0xFFDC},    // 65500
		{65.625, 0x0001, 0x0059},  // 65625
		{100, 0x0001, 0x86A0},     // 100000
		{2000.25, 0x001E, 0x857A}, // 2000250
		{-1, 0xFFFF, 0xFC18},      // -1000 two's complement
	}
	for _, tc := range cases {
		hi, lo, err := EncodeSetpoint(tc.sccm)
		if err != nil {
			t.Fatalf("%v: err=%v", tc.sccm, err)
		}
		if hi != tc.hi || lo != tc.lo {
			t.Errorf("%v: got %#04x %#04x want %#04x %#04x", tc.sccm, hi, lo, tc.hi, tc.lo)
		}
	}
}

func TestEncodeSetpoint_Truncates(t *testing.T) {
	hi, lo, _ := EncodeSetpoint(1.2349)
	if got := DecodeFlow(hi, lo); got != 1.234 {
		t.Fatalf("got %v want 1.234", got)
	}
}

// 1.001 has no exact float64 form; sccm*1000 lands just under 1001.
func TestEncodeSetpoint_FloatRepresentationLoss(t *testing.T) {
	for _, tc := range []struct {
		in   float64
		want int32
	}{
		{1.001, 1000},
		{-1.001, -1000},
		{1.5, 1500},
	} {
		hi, lo, err := EncodeSetpoint(tc.in)
		if err != nil {
			t.Fatalf("%v: err=%v", tc.in, err)
		}
		if got := int32(uint32(hi)<<16 | uint32(lo)); got != tc.want {
			t.Errorf("%v: encoded %d milli-sccm want %d", tc.in, got, tc.want)
		}
	}
}

func TestEncodeSetpoint_Rejects(t *testing.T) {
	for _, v := range []float64{math.NaN(), math.Inf(1), math.Inf(-1), 2147484.0, -2147484.0} {
		if _, _, err := EncodeSetpoint(v); err == nil {
			t.Errorf("%v: expected error", v)
		}
	}
	if _, _, err := EncodeSetpoint(2147483.647); err != nil {
		t.Errorf("max representable rejected: %v", err)
	}
}

func TestSetpointRoundTrip(t *testing.T) {
	values := []float64{
		0, 0.001, 0.5, 1, 1.005, 3.14159, 10, 42.42, 99.999, 100,
		250.125, 1000, 5000.5, 65535.999, 123456.789, 2147483.647,
	}
	for _, s := range values {
		hi, lo, err := EncodeSetpoint(s)
		if err != nil {
			t.Fatalf("%v: err=%v", s, err)
		}
		got := DecodeFlow(hi, lo)
		if math.Abs(got-s) > 0.001+1e-6 {
			t.Errorf("%v: decoded %v", s, got)
		}
	}
}

func TestDecodeFlow_Signed(t *testing.T) {
	if got := DecodeFlow(0xFFFF, 0xFC18); got != -1 {
		t.Fatalf("got %v want -1", got)
	}
	if got := DecodeFlow(0x0001, 0x86A0); got != 100 {
		t.Fatalf("got %v want 100", got)
	}
}
