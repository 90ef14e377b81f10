package sent

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// statusFor packs the two slow-channel bits into a status nibble; the
// other two bits are irrelevant to the demultiplexer and left zero.
func statusFor(b2, b3 uint32) byte {
	return byte((b3 << 3) | (b2 << 2))
}

func TestSlowChannelSSMAssembly(t *testing.T) {
	var sc slowChannel
	var stats Stats

	b2 := []uint32{0, 1, 0, 1, 1, 0, 1, 0, 1, 0, 1, 1, 0, 0, 0, 0}
	b3 := []uint32{1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0}
	require.Len(t, b2, 16)
	require.Len(t, b3, 16)

	for i := range b2 {
		sc.observe(statusFor(b2[i], b3[i]), &stats)
	}

	v, ok := sc.value(0x5)
	require.True(t, ok, "id 0x5 should have been stored by the SSM frame")
	assert.Equal(t, uint16(0xAB), v)
}

func TestSlowChannelESMNarrowAssembly(t *testing.T) {
	var sc slowChannel
	var stats Stats

	// Frames 1..6 carry the ESM start pattern (b3=1) plus the candidate
	// CRC-6 (b2); frames 7..18 carry twelve payload bits (0xABC) with
	// b3=0 throughout, satisfying the fixed framing zeros at bit
	// positions 11, 5 and 0 and selecting the narrow (12-bit) form via a
	// zero C flag at bit 10.
	b2 := []uint32{1, 0, 0, 0, 1, 0, 1, 0, 1, 0, 1, 0, 1, 1, 1, 1, 0, 0}
	b3 := []uint32{1, 1, 1, 1, 1, 1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0}
	require.Len(t, b2, 18)
	require.Len(t, b3, 18)

	for i := range b2 {
		sc.observe(statusFor(b2[i], b3[i]), &stats)
	}

	assert.Equal(t, uint32(0), stats.SCCrcErr)
	assert.Equal(t, uint32(1), stats.SC12)
	assert.Equal(t, uint32(0), stats.SC16)

	v, ok := sc.value(0x0)
	require.True(t, ok, "ESM narrow frame should have stored id 0")
	assert.Equal(t, uint16(0xABC), v)
}

func TestSlowChannelESMCRCMismatchLeavesMailboxAlone(t *testing.T) {
	var sc slowChannel
	var stats Stats

	b2 := []uint32{1, 0, 0, 0, 1, 0, 1, 0, 1, 0, 1, 0, 1, 1, 1, 1, 0, 0}
	b3 := []uint32{1, 1, 1, 1, 1, 1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0}
	// Corrupt one of the CRC bits so the candidate no longer matches.
	b2[0] = 0

	for i := range b2 {
		sc.observe(statusFor(b2[i], b3[i]), &stats)
	}

	assert.Equal(t, uint32(1), stats.SCCrcErr)
	_, ok := sc.value(0x0)
	assert.False(t, ok, "a CRC-rejected ESM candidate must not populate the mailbox")
}

func TestSlowChannelResetClearsMailboxButNotCRCShift(t *testing.T) {
	var sc slowChannel
	var stats Stats
	require.NoError(t, sc.store(1, 0xAAA))

	sc.crcShift = 0xDEADBEEF
	sc.reset()

	assert.Equal(t, uint32(0), sc.shift2)
	assert.Equal(t, uint32(0), sc.shift3)
	assert.Equal(t, uint32(0xDEADBEEF), sc.crcShift, "crcShift is deliberately left untouched by reset")

	_, ok := sc.value(1)
	assert.False(t, ok, "reset must invalidate every mailbox entry")

	_ = stats
}

func TestSlowChannelStoreOverwritesExistingID(t *testing.T) {
	var sc slowChannel
	require.NoError(t, sc.store(3, 0x111))
	require.NoError(t, sc.store(3, 0x222))

	v, ok := sc.value(3)
	require.True(t, ok)
	assert.Equal(t, uint16(0x222), v)
}

func TestSlowChannelStoreFillsMailbox(t *testing.T) {
	var sc slowChannel
	for id := 0; id < mailboxSlots; id++ {
		require.NoError(t, sc.store(byte(id%256), uint16(id)))
	}
	// mailboxSlots distinct ids now occupy every slot; one more distinct
	// id has nowhere to go.
	err := sc.store(200, 0xFFFF)
	assert.ErrorIs(t, err, ErrMailboxFull)
}
