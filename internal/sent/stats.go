package sent

import "math"

// Stats holds the running diagnostic counters for one channel (spec §3).
// All fields saturate at math.MaxUint32 rather than wrapping.
type Stats struct {
	HWOverflowCnt    uint32
	ShortIntervalErr uint32
	LongIntervalErr  uint32
	SyncErr          uint32
	CrcErrCnt        uint32
	FrameCnt         uint32
	PauseCnt         uint32
	RestartCnt       uint32
	SC12             uint32
	SC16             uint32
	SCCrcErr         uint32
}

// TotalError returns the sum of every error-class counter (spec §8
// invariant: ShortIntervalErr + LongIntervalErr + SyncErr + CrcErrCnt).
func (s *Stats) TotalError() uint32 {
	return s.ShortIntervalErr + s.LongIntervalErr + s.SyncErr + s.CrcErrCnt
}

// satInc increments *c by one, saturating at math.MaxUint32.
func satInc(c *uint32) {
	if *c < math.MaxUint32 {
		*c++
	}
}
