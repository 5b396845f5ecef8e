package qh

import (
	"sync/atomic"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
)

func TestSize(t *testing.T) {
	assert.Equal(t, uintptr(Size), unsafe.Sizeof(QH{}))
	assert.Equal(t, uintptr(48), unsafe.Offsetof(QH{}.setup)+8)
}

func TestIndex(t *testing.T) {
	tests := []struct {
		endpoint uint8
		in       bool
		want     int
	}{
		{0, false, 0},
		{0, true, 1},
		{1, false, 2},
		{3, true, 7},
		{7, true, 15},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Index(tt.endpoint, tt.in), "ep %d in=%v", tt.endpoint, tt.in)
	}
}

func TestMaxPacketLength(t *testing.T) {
	tests := []struct {
		name string
		n    int
		want int
	}{
		{"zero", 0, 0},
		{"full speed", 64, 64},
		{"limit", MaxPacketLength, MaxPacketLength},
		{"over limit", 4096, MaxPacketLength},
		{"negative", -1, 0},
		{"very negative", -1 << 20, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var q QH
			q.SetInterruptOnSetup(true)
			q.SetZeroLengthTermination(true)

			q.SetMaxPacketLength(tt.n)
			assert.Equal(t, tt.want, q.MaxPacketLength())
			// Neighbouring capability bits are untouched.
			assert.Equal(t, uint32(tt.want)<<16|1<<15, q.Capabilities())
		})
	}
}

func TestCapabilityBits(t *testing.T) {
	var q QH
	q.SetMaxPacketLength(512)
	q.SetInterruptOnSetup(true)
	assert.Equal(t, uint32(512<<16|1<<15), q.Capabilities())

	q.SetZeroLengthTermination(false)
	assert.NotZero(t, q.Capabilities()&(1<<29))
	q.SetZeroLengthTermination(true)
	assert.Zero(t, q.Capabilities()&(1<<29))

	q.SetInterruptOnSetup(false)
	assert.Equal(t, uint32(512<<16), q.Capabilities())
}

func TestOverlay(t *testing.T) {
	var q QH
	q.SetOverlayNext(0x2000_0020)
	assert.Equal(t, uint32(0x2000_0020), q.OverlayNext())
	assert.Zero(t, q.OverlayToken())
}

func TestSetup(t *testing.T) {
	var q QH
	// Written the way the controller would deposit a GET_DESCRIPTOR request.
	atomic.StoreUint32(&q.setup[0], 0x0100_0680)
	atomic.StoreUint32(&q.setup[1], 0x0040_0000)

	assert.Equal(t, [8]byte{0x80, 0x06, 0x00, 0x01, 0x00, 0x00, 0x40, 0x00}, q.Setup())
}

func TestClear(t *testing.T) {
	var q QH
	q.SetMaxPacketLength(64)
	q.SetOverlayNext(0x40)
	atomic.StoreUint32(&q.current, 0x80)

	q.Clear()
	assert.Equal(t, QH{}, q)
}

func TestAddr(t *testing.T) {
	var list [2]QH
	assert.Equal(t, uint32(Size), list[1].Addr()-list[0].Addr())
}
