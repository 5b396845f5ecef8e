package state

import (
	"fmt"
	"unsafe"

	"github.com/ardnew/ehciarena/device/hal/ehci/qh"
	"github.com/ardnew/ehciarena/device/hal/ehci/td"
	"github.com/ardnew/ehciarena/pkg"
)

// EndpointCount is the number of endpoint numbers served by one controller.
const EndpointCount = 8

// SlotCount is the number of queue heads, and of transfer descriptors, per
// controller instance: one per endpoint number per direction.
const SlotCount = 2 * EndpointCount

// Hardware alignment of each arena's base address.
const (
	QueueHeadAlign          = 4096 // ENDPTLISTADDR
	TransferDescriptorAlign = 32   // dTD next pointer
)

// Arena sizes in bytes.
const (
	QueueHeadArenaSize          = SlotCount * qh.Size
	TransferDescriptorArenaSize = SlotCount * td.Size
)

// Span is a half-open address range [Lo, Hi).
type Span struct {
	Lo, Hi uintptr
}

// Contains reports whether addr lies inside the span.
func (s Span) Contains(addr uintptr) bool {
	return addr >= s.Lo && addr < s.Hi
}

// Overlaps reports whether the two spans share any address.
func (s Span) Overlaps(o Span) bool {
	return s.Lo < o.Hi && o.Lo < s.Hi
}

// queueHeadArena is the contiguous, page-aligned queue head list. Go has no
// alignment attribute for variables, so the list is carved out of an
// oversized backing array at construction.
type queueHeadArena struct {
	mem  [QueueHeadArenaSize + QueueHeadAlign]byte
	list *[SlotCount]qh.QH
}

func (a *queueHeadArena) init() {
	a.list = (*[SlotCount]qh.QH)(carve(a.mem[:], QueueHeadAlign, QueueHeadArenaSize))
}

func (a *queueHeadArena) span() Span {
	lo := uintptr(unsafe.Pointer(a.list))
	return Span{Lo: lo, Hi: lo + QueueHeadArenaSize}
}

// transferDescriptorArena is the contiguous transfer descriptor list,
// aligned for the controller's DMA engine.
type transferDescriptorArena struct {
	mem  [TransferDescriptorArenaSize + TransferDescriptorAlign]byte
	list *[SlotCount]td.TD
}

func (a *transferDescriptorArena) init() {
	a.list = (*[SlotCount]td.TD)(carve(a.mem[:], TransferDescriptorAlign, TransferDescriptorArenaSize))
}

func (a *transferDescriptorArena) span() Span {
	lo := uintptr(unsafe.Pointer(a.list))
	return Span{Lo: lo, Hi: lo + TransferDescriptorArenaSize}
}

// carve returns the first align-aligned address in mem with room for size
// bytes. The Go heap does not move objects, so the address is stable for the
// life of mem.
func carve(mem []byte, align, size uintptr) unsafe.Pointer {
	base := unsafe.Pointer(unsafe.SliceData(mem))
	off := (align - uintptr(base)%align) % align
	if off+size > uintptr(len(mem)) {
		panic(fmt.Errorf("state: carve %d bytes at %d alignment from %d: %w",
			size, align, len(mem), pkg.ErrMisaligned))
	}
	p := unsafe.Add(base, off)
	pkg.LogDebug(pkg.ComponentArena, "arena carved",
		"base", fmt.Sprintf("%#x", uintptr(p)), "align", align, "size", size)
	return p
}
