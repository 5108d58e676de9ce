package pointsource

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStdin_ReadsLinesThenEOF(t *testing.T) {
	s := NewStdin(strings.NewReader("[1,1]\n[2,2]\n"))

	line, err, ok := s.Next()
	require.True(t, ok)
	require.NoError(t, err)
	assert.Equal(t, "[1,1]", string(line))

	line, err, ok = s.Next()
	require.True(t, ok)
	require.NoError(t, err)
	assert.Equal(t, "[2,2]", string(line))

	_, err, ok = s.Next()
	assert.False(t, ok)
	assert.NoError(t, err)
}

func TestChannel_ClosedChannelSignalsCleanEnd(t *testing.T) {
	ch := make(chan []byte, 1)
	src := NewChannel(ch)

	ch <- []byte("[1,1]")
	line, err, ok := src.Next()
	require.True(t, ok)
	require.NoError(t, err)
	assert.Equal(t, "[1,1]", string(line))

	close(ch)
	_, err, ok = src.Next()
	assert.False(t, ok)
	assert.NoError(t, err)
}
