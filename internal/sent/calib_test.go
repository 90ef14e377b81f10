package sent

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecalibrateNominalSync(t *testing.T) {
	// A 168-tick sync pulse at tick_per_unit=3 is exact: (44+12)*3=168.
	assert.Equal(t, uint32(3), recalibrate(168))
}

func TestRoundDivRoundsToNearest(t *testing.T) {
	assert.Equal(t, uint32(3), roundDiv(168, 56))
	assert.Equal(t, uint32(0), roundDiv(10, 0))
	// ties round away from zero: 7/2 -> add 1 -> 8/2=4
	assert.Equal(t, uint32(4), roundDiv(7, 2))
}

func TestPulseIntervalUnknownTickPerUnit(t *testing.T) {
	assert.Equal(t, -1, pulseInterval(168, 0))
}

func TestPulseIntervalNibbleTicks(t *testing.T) {
	tpu := uint32(3)
	for n := 0; n <= 15; n++ {
		ticks := uint32((n + offset) * int(tpu))
		assert.Equal(t, n, pulseInterval(ticks, tpu), "nibble %d", n)
	}
}

func TestIsSyncToleranceBoundary(t *testing.T) {
	tpu := uint32(3)
	// nominal sync is 168 ticks; the accepted window at tpu=3 is [135,201].
	assert.True(t, isSync(135, tpu))
	assert.True(t, isSync(168, tpu))
	assert.True(t, isSync(201, tpu))
	assert.False(t, isSync(134, tpu))
	assert.False(t, isSync(202, tpu))
}

func TestIsSyncUnknownTickPerUnit(t *testing.T) {
	assert.False(t, isSync(168, 0))
}
