package sent

// recalibrate recomputes tick_per_unit from a pulse believed to be a sync
// pulse (spec §4.2). The calibrator has no memory of prior estimates:
// every sync pulse fully overrides tickPerUnit, which is how the decoder
// tracks slow clock drift between transmitter and receiver.
func recalibrate(ticks uint32) uint32 {
	return roundDiv(ticks, syncInterval+offset)
}

// isSync reports whether a pulse of the given tick length, given the
// current tickPerUnit estimate, looks like a sync pulse: within ±20% of
// the nominal (syncInterval+offset) unit sync length (spec §4.1).
func isSync(ticks, tickPerUnit uint32) bool {
	if tickPerUnit == 0 {
		return false
	}
	syncClocks := uint64(syncInterval+offset) * uint64(tickPerUnit)
	t := uint64(ticks)
	return 80*syncClocks <= 100*t && 100*t <= 120*syncClocks
}

// roundDiv divides a by b, rounding to the nearest integer (ties away
// from zero, matching "add half the divisor before integer division").
func roundDiv(a, b uint32) uint32 {
	if b == 0 {
		return 0
	}
	return (a + b/2) / b
}

// pulseInterval converts a raw tick count into a 0..15 nibble interval
// given the current tick_per_unit estimate, per spec §4.1. The caller is
// responsible for treating negative/out-of-range results as short/long
// interval errors; Go has no unsigned underflow trap, so this returns a
// signed int wide enough to go negative.
func pulseInterval(ticks, tickPerUnit uint32) int {
	if tickPerUnit == 0 {
		return -1
	}
	units := roundDiv(ticks, tickPerUnit)
	return int(units) - offset
}
