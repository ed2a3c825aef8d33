package input

import (
	"bufio"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestApplyLetterKeys(t *testing.T) {
	s := newStream()
	now := time.Now()

	in := s.apply([]byte("a w"), now)
	assert.True(t, in.Left)
	assert.True(t, in.Up)
	assert.True(t, in.Fire)
	assert.False(t, in.Right)
	assert.False(t, in.Down)
	assert.False(t, in.Quit)
	assert.True(t, in.Any())
}

func TestApplyArrowKeys(t *testing.T) {
	s := newStream()
	in := s.apply([]byte("\x1b[A\x1b[D"), time.Now())
	assert.True(t, in.Up)
	assert.True(t, in.Left)
	assert.False(t, in.Quit)
}

func TestKeysReleaseAfterHoldDuration(t *testing.T) {
	s := newStream()
	now := time.Now()
	assert.True(t, s.apply([]byte("d"), now).Right)
	assert.True(t, s.apply(nil, now.Add(keyHoldDuration/2)).Right, "still held")
	assert.False(t, s.apply(nil, now.Add(keyHoldDuration)).Right, "released")
}

func TestEmptyStreamHoldsNothing(t *testing.T) {
	s := newStream()
	in := s.apply(nil, time.Now())
	assert.Equal(t, Input{}, in)
	assert.False(t, in.Any())
}

func TestReset(t *testing.T) {
	s := newStream()
	now := time.Now()
	s.apply([]byte("\r"), now)
	s.Reset()
	assert.False(t, s.apply(nil, now).Enter)
}

func TestQuitKeys(t *testing.T) {
	for _, b := range []byte{'q', 'Q', 0x03} {
		s := newStream()
		assert.True(t, s.apply([]byte{b}, time.Now()).Quit, "byte %q", b)
	}
}

func TestReadInputMarksClosed(t *testing.T) {
	s := StartStream(bufio.NewReader(strings.NewReader("")))
	deadline := time.Now().Add(time.Second)
	for !s.Closed() && time.Now().Before(deadline) {
		ReadInput(s)
		time.Sleep(time.Millisecond)
	}
	assert.True(t, s.Closed())
}
