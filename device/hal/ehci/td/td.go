// Package td defines the device-mode transfer descriptor (dTD) record.
//
// A TD is read and written by the controller's DMA engine once the queue head
// that points to it is primed. Every field access is a 32-bit atomic load or
// store so the compiler neither caches nor reorders it.
package td

import (
	"sync/atomic"
	"unsafe"
)

// Size is the size of a TD in bytes.
const Size = 32

// Compile-time layout check.
var _ [Size]byte = [unsafe.Sizeof(TD{})]byte{}

// Next link pointer bits.
const (
	nextTerminate uint32 = 1 << 0
	nextPointer   uint32 = 0xFFFFFFE0
)

// Token bits.
const (
	tokenStatus     uint32 = 0xFF
	tokenIOC        uint32 = 1 << 15
	tokenTotalShift        = 16
	tokenTotalMask  uint32 = 0x7FFF << tokenTotalShift
)

// MaxTotalBytes is the largest transfer a single TD can describe.
const MaxTotalBytes = 0x7FFF

// pageSize is the span of each buffer pointer.
const pageSize = 4096

// Status is the status field of a TD token.
type Status uint8

// Status bits.
const (
	StatusTransactionError Status = 1 << 3
	StatusDataBufferError  Status = 1 << 5
	StatusHalted           Status = 1 << 6
	StatusActive           Status = 1 << 7
)

// Errored reports whether any error bit is set.
func (s Status) Errored() bool {
	return s&(StatusTransactionError|StatusDataBufferError|StatusHalted) != 0
}

// TD is a transfer descriptor. The zero value is an inactive descriptor with
// a zero next pointer.
type TD struct {
	next    uint32
	token   uint32
	buffers [5]uint32
	_       uint32
}

// Addr returns the 32-bit bus address of the descriptor.
func (t *TD) Addr() uint32 {
	return uint32(uintptr(unsafe.Pointer(t)))
}

// Clear resets every field to zero.
func (t *TD) Clear() {
	atomic.StoreUint32(&t.next, 0)
	atomic.StoreUint32(&t.token, 0)
	for i := range t.buffers {
		atomic.StoreUint32(&t.buffers[i], 0)
	}
}

// SetNext links the descriptor to the TD at addr.
func (t *TD) SetNext(addr uint32) {
	atomic.StoreUint32(&t.next, addr&nextPointer)
}

// Terminate marks the descriptor as the last in its chain.
func (t *TD) Terminate() {
	atomic.StoreUint32(&t.next, nextTerminate)
}

// Next returns the next link pointer and whether the chain ends here.
func (t *TD) Next() (addr uint32, terminated bool) {
	v := atomic.LoadUint32(&t.next)
	return v & nextPointer, v&nextTerminate != 0
}

// SetBuffer points the descriptor at size bytes starting at addr. The five
// buffer pointers cover consecutive 4 KiB pages.
func (t *TD) SetBuffer(addr uint32, size int) {
	atomic.StoreUint32(&t.buffers[0], addr)
	page := addr &^ (pageSize - 1)
	for i := 1; i < len(t.buffers); i++ {
		atomic.StoreUint32(&t.buffers[i], page+uint32(i)*pageSize)
	}
	t.SetTotalBytes(size)
}

// Buffer returns buffer pointer i.
func (t *TD) Buffer(i int) uint32 {
	return atomic.LoadUint32(&t.buffers[i])
}

// SetTotalBytes sets the byte count the controller should transfer, clamped
// to [0, MaxTotalBytes].
func (t *TD) SetTotalBytes(n int) {
	n = max(0, min(n, MaxTotalBytes))
	t.modifyToken(tokenTotalMask, uint32(n)<<tokenTotalShift&tokenTotalMask)
}

// TotalBytes returns the bytes remaining. The controller decrements it as
// the transfer progresses.
func (t *TD) TotalBytes() int {
	return int((atomic.LoadUint32(&t.token) & tokenTotalMask) >> tokenTotalShift)
}

// SetInterruptOnComplete requests an interrupt when the TD retires.
func (t *TD) SetInterruptOnComplete(ioc bool) {
	var set uint32
	if ioc {
		set = tokenIOC
	}
	t.modifyToken(tokenIOC, set)
}

// SetActive hands the descriptor to the controller, or clears the status.
func (t *TD) SetActive(active bool) {
	var set uint32
	if active {
		set = uint32(StatusActive)
	}
	t.modifyToken(tokenStatus, set)
}

// Active reports whether the controller still owns the descriptor.
func (t *TD) Active() bool {
	return t.Status()&StatusActive != 0
}

// Status returns the token status field.
func (t *TD) Status() Status {
	return Status(atomic.LoadUint32(&t.token) & tokenStatus)
}

func (t *TD) modifyToken(clear, set uint32) {
	v := atomic.LoadUint32(&t.token)
	atomic.StoreUint32(&t.token, v&^clear|set)
}
