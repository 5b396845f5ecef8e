// Package qh defines the device-mode endpoint queue head (dQH) record.
//
// The controller finds queue head i at ENDPTLISTADDR + i*Size. Queue heads
// are ordered OUT then IN for each endpoint number; see [Index].
package qh

import (
	"sync/atomic"
	"unsafe"
)

// Size is the size of a QH in bytes.
const Size = 64

// Compile-time layout check.
var _ [Size]byte = [unsafe.Sizeof(QH{})]byte{}

// Capabilities bits.
const (
	capIOS         uint32 = 1 << 15
	capMaxPktShift        = 16
	capMaxPktMask  uint32 = 0x7FF << capMaxPktShift
	capZLT         uint32 = 1 << 29
)

// MaxPacketLength is the largest value [QH.SetMaxPacketLength] accepts.
const MaxPacketLength = 0x400

// Overlay word indices.
const (
	overlayNext  = 0
	overlayToken = 1
)

// QH is an endpoint queue head. The zero value is an unconfigured queue head
// that the controller ignores.
type QH struct {
	capabilities uint32
	current      uint32
	overlay      [7]uint32
	_            uint32
	setup        [2]uint32
	_            [4]uint32
}

// Index returns the queue head slot for an endpoint number and direction.
func Index(endpoint uint8, in bool) int {
	i := int(endpoint) * 2
	if in {
		i++
	}
	return i
}

// Addr returns the 32-bit bus address of the queue head.
func (q *QH) Addr() uint32 {
	return uint32(uintptr(unsafe.Pointer(q)))
}

// Clear resets every field the controller reads to zero.
func (q *QH) Clear() {
	atomic.StoreUint32(&q.capabilities, 0)
	atomic.StoreUint32(&q.current, 0)
	for i := range q.overlay {
		atomic.StoreUint32(&q.overlay[i], 0)
	}
	for i := range q.setup {
		atomic.StoreUint32(&q.setup[i], 0)
	}
}

// Capabilities returns the raw endpoint capabilities word.
func (q *QH) Capabilities() uint32 {
	return atomic.LoadUint32(&q.capabilities)
}

// SetMaxPacketLength sets the endpoint's maximum packet length, clamped to
// [0, MaxPacketLength].
func (q *QH) SetMaxPacketLength(n int) {
	n = max(0, min(n, MaxPacketLength))
	q.modifyCapabilities(capMaxPktMask, uint32(n)<<capMaxPktShift&capMaxPktMask)
}

// MaxPacketLength returns the endpoint's maximum packet length.
func (q *QH) MaxPacketLength() int {
	return int((q.Capabilities() & capMaxPktMask) >> capMaxPktShift)
}

// SetInterruptOnSetup enables the setup interrupt for control endpoints.
func (q *QH) SetInterruptOnSetup(ios bool) {
	var set uint32
	if ios {
		set = capIOS
	}
	q.modifyCapabilities(capIOS, set)
}

// SetZeroLengthTermination enables or disables automatic zero-length
// packets. The hardware bit is inverted.
func (q *QH) SetZeroLengthTermination(enabled bool) {
	var set uint32
	if !enabled {
		set = capZLT
	}
	q.modifyCapabilities(capZLT, set)
}

// CurrentTD returns the address of the TD the controller is executing.
func (q *QH) CurrentTD() uint32 {
	return atomic.LoadUint32(&q.current)
}

// SetOverlayNext stores the next TD pointer of the overlay area. Priming the
// endpoint makes the controller fetch that TD.
func (q *QH) SetOverlayNext(next uint32) {
	atomic.StoreUint32(&q.overlay[overlayNext], next)
}

// OverlayNext returns the overlay's next TD pointer.
func (q *QH) OverlayNext() uint32 {
	return atomic.LoadUint32(&q.overlay[overlayNext])
}

// OverlayToken returns the token word of the overlay area.
func (q *QH) OverlayToken() uint32 {
	return atomic.LoadUint32(&q.overlay[overlayToken])
}

// Setup returns the 8-byte SETUP packet the controller last deposited.
func (q *QH) Setup() [8]byte {
	var out [8]byte
	lo := atomic.LoadUint32(&q.setup[0])
	hi := atomic.LoadUint32(&q.setup[1])
	for i := 0; i < 4; i++ {
		out[i] = byte(lo >> (8 * i))
		out[4+i] = byte(hi >> (8 * i))
	}
	return out
}

func (q *QH) modifyCapabilities(clear, set uint32) {
	v := atomic.LoadUint32(&q.capabilities)
	atomic.StoreUint32(&q.capabilities, v&^clear|set)
}
