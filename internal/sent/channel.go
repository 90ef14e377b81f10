package sent

import "errors"

// ErrNoData is returned by reader methods when no fast-channel frame has
// ever validated since the channel was constructed (spec §6).
var ErrNoData = errors.New("sent: no frame decoded yet")

// ErrSlowChannelValueNotFound is returned by GetSlowChannelValue when no
// valid mailbox entry exists for the requested id.
var ErrSlowChannelValueNotFound = errors.New("sent: slow-channel id not found")

// Channel holds all decoder state for one physical SENT line (spec §3).
// It is mutated exclusively by Decode, one pulse at a time; concurrent
// readers must apply their own synchronization (spec §5).
type Channel struct {
	state fsmState

	tickPerUnit uint32

	pulseCounter      uint32
	statePulseCounter uint32

	pausePulseReceived bool

	rxReg        uint32
	rxLast       uint32
	hasValidFast bool

	sc slowChannel

	stats Stats
}

// NewChannel returns a channel in the CALIB state with all counters zero
// and every mailbox slot invalid (spec §3 lifecycle).
func NewChannel() *Channel {
	return &Channel{state: stateCalib}
}

// State reports the channel's current FSM state, mostly useful for tests
// and diagnostics.
func (c *Channel) State() string {
	return c.state.String()
}

// Stats returns a copy of the channel's running diagnostic counters.
func (c *Channel) Stats() Stats {
	return c.stats
}

// GetTickTime returns the channel's current tick_per_unit estimate (spec
// §6), as a float for diagnostic display.
func (c *Channel) GetTickTime() float64 {
	return float64(c.tickPerUnit)
}

// GetMsg returns the most recently CRC-validated 32-bit frame, or
// ErrNoData if no frame has ever validated.
func (c *Channel) GetMsg() (uint32, error) {
	if !c.hasValidFast {
		return 0, ErrNoData
	}
	return c.rxLast, nil
}

// Signals is the decomposed content of the most recently validated frame
// (spec §4.3, "Signal extraction").
type Signals struct {
	Status byte
	Sig0   uint16
	Sig1   uint16
}

// GetSignals decomposes the most recently validated frame into its
// status nibble and two 12-bit signals, or returns ErrNoData if no frame
// has ever validated.
func (c *Channel) GetSignals() (Signals, error) {
	if !c.hasValidFast {
		return Signals{}, ErrNoData
	}
	frame := c.rxLast
	return Signals{
		Status: byte((frame >> 28) & 0xF),
		Sig0:   uint16((frame >> 16) & 0xFFF),
		Sig1:   swapSig1Nibbles(uint16((frame >> 4) & 0xFFF)),
	}, nil
}

// swapSig1Nibbles reverses the nibble order of sig1 as stored internally.
// The transform is applied once on read and, per spec §4.3/§9, is
// preserved verbatim: it is a device-observed quirk, not a protocol rule,
// so it is never made configurable.
func swapSig1Nibbles(tmp uint16) uint16 {
	return ((tmp >> 8) & 0x00F) | (tmp & 0x0F0) | ((tmp << 8) & 0xF00)
}

// GetSlowChannelValue returns the most recently stored value for a
// slow-channel id, or ErrSlowChannelValueNotFound if no valid mailbox
// entry matches.
func (c *Channel) GetSlowChannelValue(id byte) (uint16, error) {
	v, ok := c.sc.value(id)
	if !ok {
		return 0, ErrSlowChannelValueNotFound
	}
	return v, nil
}
