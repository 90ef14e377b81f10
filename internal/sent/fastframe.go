package sent

// Fast-channel state machine, spec §4.3. Decode is the only entry point;
// every other method here is a per-state step invoked from it. Framing
// errors outside CALIB always re-enter INIT, never CALIB — calibration
// is not discarded on transient noise (spec §4.3, final paragraph).

// Decode processes one pulse (the tick interval since the previous
// falling edge) and returns +1 if a frame just validated, -1 if this
// pulse caused a framing or CRC rejection, or 0 if the frame is still
// being assembled. flags bit 0 is the caller's hardware-overflow
// indicator (spec §6).
func (c *Channel) Decode(ticks uint32, flags uint8) int32 {
	if flags&0x01 != 0 {
		satInc(&c.stats.HWOverflowCnt)
	}

	switch c.state {
	case stateCalib:
		return c.stepCalib(ticks)
	case stateInit:
		return c.stepInit(ticks)
	case stateSync:
		return c.stepSync(ticks)
	case stateStatus:
		return c.stepStatus(ticks)
	default: // stateSig1D1..stateSig2D3, stateCRC
		return c.stepPayload(ticks)
	}
}

// stepCalib acquires tickPerUnit with no known sync yet (spec §4.3
// CALIB). The first pulse ever seen is assumed to be a sync pulse; every
// pulse after that tests the current tickPerUnit hypothesis against a
// full frame's worth of in-range intervals before trusting it.
func (c *Channel) stepCalib(ticks uint32) int32 {
	c.pulseCounter++

	if c.tickPerUnit == 0 {
		c.tickPerUnit = recalibrate(ticks)
		c.statePulseCounter = 1
		return 0
	}

	interval := pulseInterval(ticks, c.tickPerUnit)
	if interval >= nibbleMin && interval <= nibbleMax {
		c.statePulseCounter++
		if c.statePulseCounter == 1+payloadPulses {
			c.state = stateInit
			c.pulseCounter = 0
			c.statePulseCounter = 0
			return 0
		}
	} else {
		c.tickPerUnit = recalibrate(ticks)
		c.statePulseCounter = 1
	}

	if c.state == stateCalib && c.pulseCounter >= calibrationPulses {
		c.restart()
	}
	return 0
}

// stepInit hunts for a true sync pulse (spec §4.3 INIT). A single
// tolerated non-sync pulse observed right before the sync is recorded as
// a legal inter-frame pause.
func (c *Channel) stepInit(ticks uint32) int32 {
	if isSync(ticks, c.tickPerUnit) {
		if c.statePulseCounter == 1 {
			c.pausePulseReceived = true
		}
		c.statePulseCounter = 0
		c.state = stateStatus
		c.tickPerUnit = recalibrate(ticks)
		return 0
	}

	c.statePulseCounter++
	if c.statePulseCounter > resyncBudget {
		c.restart()
	}
	return 0
}

// stepSync awaits the next sync pulse that opens a frame (spec §4.3
// SYNC). At most one non-sync pulse is tolerated as a pause; a second
// one is a sync error that drops back to INIT.
func (c *Channel) stepSync(ticks uint32) int32 {
	if isSync(ticks, c.tickPerUnit) {
		c.rxReg = 0
		c.tickPerUnit = recalibrate(ticks)
		c.state = stateStatus
		c.statePulseCounter = 0
		return 0
	}

	if c.statePulseCounter == 0 {
		c.statePulseCounter = 1
		c.pausePulseReceived = true
		satInc(&c.stats.PauseCnt)
		return 0
	}

	satInc(&c.stats.SyncErr)
	interval := pulseInterval(ticks, c.tickPerUnit)
	if interval > syncInterval {
		satInc(&c.stats.LongIntervalErr)
	} else {
		satInc(&c.stats.ShortIntervalErr)
	}
	c.state = stateInit
	c.statePulseCounter = 0
	c.sc.reset()
	return -1
}

// stepStatus handles the status-nibble pulse. A transmitter is allowed
// one late pause pulse here if none was seen yet in SYNC or INIT; any
// other pulse falls through to the shared data-nibble rule (spec §4.3
// STATUS).
func (c *Channel) stepStatus(ticks uint32) int32 {
	if !c.pausePulseReceived && isSync(ticks, c.tickPerUnit) {
		satInc(&c.stats.PauseCnt)
		c.tickPerUnit = recalibrate(ticks)
		return 0
	}
	return c.stepPayload(ticks)
}

// stepPayload is the shared data-nibble rule for STATUS through CRC
// (spec §4.3). It captures one nibble into rxReg, or rejects the pulse
// as a short/long interval error.
func (c *Channel) stepPayload(ticks uint32) int32 {
	interval := pulseInterval(ticks, c.tickPerUnit)

	if interval < nibbleMin {
		satInc(&c.stats.ShortIntervalErr)
		c.state = stateInit
		c.statePulseCounter = 0
		c.sc.reset()
		return -1
	}
	if interval > nibbleMax {
		satInc(&c.stats.LongIntervalErr)
		c.state = stateInit
		c.statePulseCounter = 0
		c.sc.reset()
		return -1
	}

	c.rxReg = (c.rxReg << 4) | uint32(interval)

	if c.state != stateCRC {
		c.state = nextDataState(c.state)
		return 0
	}

	satInc(&c.stats.FrameCnt)
	c.pausePulseReceived = false
	frame := c.rxReg
	c.rxReg = 0 // transitions into SYNC always occur with rxReg cleared.
	c.state = stateSync
	c.statePulseCounter = 0

	if crc4Valid(frame) {
		c.rxLast = frame
		c.hasValidFast = true
		c.sc.observe(payloadNibble(frame, 0), &c.stats)
		return 1
	}

	satInc(&c.stats.CrcErrCnt)
	c.sc.reset()
	return -1
}

// restart zeroes runtime FSM state and returns to CALIB (spec §3
// lifecycle). It does not clear the slow-channel mailbox; only a
// fast-channel framing error does that (via slowChannel.reset).
func (c *Channel) restart() {
	c.state = stateCalib
	c.tickPerUnit = 0
	c.pulseCounter = 0
	c.statePulseCounter = 0
	c.pausePulseReceived = false
	c.rxReg = 0
	satInc(&c.stats.RestartCnt)
}
