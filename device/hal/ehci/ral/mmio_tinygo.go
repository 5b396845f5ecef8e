//go:build tinygo

package ral

import (
	"runtime/volatile"
	"unsafe"
)

// MMIO accesses the memory-mapped controller registers directly.
type MMIO struct{}

func reg32(inst Instance, reg Register) *volatile.Register32 {
	return (*volatile.Register32)(unsafe.Pointer(inst.Base() + uintptr(reg)))
}

// Read32 implements [Bus].
func (MMIO) Read32(inst Instance, reg Register) uint32 {
	return reg32(inst, reg).Get()
}

// Write32 implements [Bus].
func (MMIO) Write32(inst Instance, reg Register, val uint32) {
	reg32(inst, reg).Set(val)
}
