package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sentbus/sentdecode/internal/sent"
)

func TestReplayDecodesAValidTrace(t *testing.T) {
	trace := strings.Join([]string{
		"168,0", "36,0", "39,0", "42,0", "45,0", "48,0", "51,0", "54,0", "57,0", // calibration
		"168,0",                                                 // sync
		"36,0", "39,0", "42,0", "45,0", "48,0", "51,0", "54,0", // status..sig2d3
		"42,0", // crc nibble
	}, "\n")

	c := sent.NewChannel()
	err := replay(strings.NewReader(trace), c)
	require.NoError(t, err)

	assert.Equal(t, uint32(1), c.Stats().FrameCnt)
	assert.Equal(t, uint32(0), c.Stats().TotalError())

	msg, err := c.GetMsg()
	require.NoError(t, err)
	assert.Equal(t, uint32(0x01234562), msg)
}

func TestReplayRejectsMalformedRow(t *testing.T) {
	c := sent.NewChannel()
	err := replay(strings.NewReader("not,a,number\n"), c)
	assert.Error(t, err)
}
