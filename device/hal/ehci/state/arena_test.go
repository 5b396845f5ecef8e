package state

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ardnew/ehciarena/device/hal/ehci/qh"
	"github.com/ardnew/ehciarena/device/hal/ehci/ral"
	"github.com/ardnew/ehciarena/device/hal/ehci/td"
)

func TestArenaAlignment(t *testing.T) {
	c := newContext(ral.NewMemory())

	for _, inst := range ral.Instances() {
		t.Run(inst.String(), func(t *testing.T) {
			s := c.State(inst)
			assert.Zero(t, s.QueueHeadBase()%QueueHeadAlign, "queue head base %#x", s.QueueHeadBase())
			assert.Zero(t, s.TransferDescriptorBase()%TransferDescriptorAlign, "transfer descriptor base %#x", s.TransferDescriptorBase())
		})
	}
}

func TestArenaSize(t *testing.T) {
	assert.Equal(t, 16, SlotCount)
	assert.Equal(t, 16*qh.Size, QueueHeadArenaSize)
	assert.Equal(t, 16*td.Size, TransferDescriptorArenaSize)

	c := newContext(ral.NewMemory())
	s := c.State(ral.USB1)
	qs := s.QueueHeadSpan()
	ts := s.TransferDescriptorSpan()
	assert.Equal(t, uintptr(QueueHeadArenaSize), qs.Hi-qs.Lo)
	assert.Equal(t, uintptr(TransferDescriptorArenaSize), ts.Hi-ts.Lo)
}

func TestArenasDisjoint(t *testing.T) {
	c := newContext(ral.NewMemory())

	var spans []Span
	for _, inst := range ral.Instances() {
		s := c.State(inst)
		spans = append(spans, s.QueueHeadSpan(), s.TransferDescriptorSpan())
	}

	for i := range spans {
		for j := i + 1; j < len(spans); j++ {
			assert.False(t, spans[i].Overlaps(spans[j]), "span %d %v overlaps span %d %v", i, spans[i], j, spans[j])
		}
	}
}

func TestArenaZeroed(t *testing.T) {
	c := newContext(ral.NewMemory())

	for _, inst := range ral.Instances() {
		s := c.State(inst)
		for i := range s.qhs.list {
			assert.Equal(t, qh.QH{}, s.qhs.list[i], "%v queue head %d", inst, i)
		}
		for i := range s.tds.list {
			assert.Equal(t, td.TD{}, s.tds.list[i], "%v transfer descriptor %d", inst, i)
		}
	}
}

func TestSpan(t *testing.T) {
	a := Span{Lo: 0x1000, Hi: 0x1400}

	tests := []struct {
		name     string
		other    Span
		overlaps bool
	}{
		{"before", Span{Lo: 0x0800, Hi: 0x1000}, false},
		{"after", Span{Lo: 0x1400, Hi: 0x1800}, false},
		{"inside", Span{Lo: 0x1100, Hi: 0x1200}, true},
		{"straddle low", Span{Lo: 0x0f00, Hi: 0x1001}, true},
		{"straddle high", Span{Lo: 0x13ff, Hi: 0x1500}, true},
		{"same", a, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.overlaps, a.Overlaps(tt.other))
			assert.Equal(t, tt.overlaps, tt.other.Overlaps(a))
		})
	}

	assert.True(t, a.Contains(0x1000))
	assert.True(t, a.Contains(0x13ff))
	assert.False(t, a.Contains(0x1400))
	assert.False(t, a.Contains(0x0fff))
}

func TestCarve(t *testing.T) {
	mem := make([]byte, 256)

	for off := 0; off < 32; off++ {
		p := carve(mem[off:], 32, 64)
		addr := uintptr(p)
		require.Zero(t, addr%32, "offset %d", off)

		base := uintptr(unsafe.Pointer(&mem[off]))
		buf := Span{Lo: base, Hi: base + uintptr(len(mem)-off)}
		assert.True(t, buf.Contains(addr), "offset %d", off)
		assert.True(t, buf.Contains(addr+63), "offset %d", off)
	}
}

func TestCarveTooSmall(t *testing.T) {
	assert.Panics(t, func() { carve(make([]byte, 16), 32, 64) })
}
