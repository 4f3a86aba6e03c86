package rrg

import (
	"fmt"
	"math"
)

// Flow values travel as signed 32-bit milli-SCCM, high word first.
const scale = 1000.0

// EncodeSetpoint converts sccm to the (high, low) register pair.
// The value is truncated toward zero at three decimals after the float64
// multiply, so inputs without an exact binary form can lose one milli-SCCM:
// 1.001 encodes as 1000.
func EncodeSetpoint(sccm float64) (hi, lo uint16, err error) {
	if math.IsNaN(sccm) || math.IsInf(sccm, 0) {
		return 0, 0, fmt.Errorf("setpoint %v is not a number", sccm)
	}
	milli := math.Trunc(sccm * scale)
	if milli > math.MaxInt32 || milli < math.MinInt32 {
		return 0, 0, fmt.Errorf("setpoint %v sccm does not fit 32 bits", sccm)
	}
	v := uint32(int32(milli))
	return uint16(v >> 16), uint16(v & 0xFFFF), nil
}

// DecodeFlow reassembles a register pair into SCCM.
func DecodeFlow(hi, lo uint16) float64 {
	v := int32(uint32(hi)<<16 | uint32(lo))
	return float64(v) / scale
}
