package ral

import (
	"sync"

	"github.com/ardnew/ehciarena/pkg"
)

// Write is one register store recorded by [Memory].
type Write struct {
	Instance Instance
	Register Register
	Value    uint32
}

// Memory is a simulated register file implementing [Bus]. It stores the last
// value written to each register and keeps a journal of every write in
// order. It backs host-side tests and the ehci-arena tool.
type Memory struct {
	mu      sync.Mutex
	regs    [InstanceCount]map[Register]uint32
	journal []Write
}

// NewMemory returns an empty simulated register file. Every register
// reads as zero until written.
func NewMemory() *Memory {
	m := &Memory{}
	for i := range m.regs {
		m.regs[i] = make(map[Register]uint32)
	}
	return m
}

// Read32 implements [Bus].
func (m *Memory) Read32(inst Instance, reg Register) uint32 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.bank(inst)[reg]
}

// Write32 implements [Bus].
func (m *Memory) Write32(inst Instance, reg Register, val uint32) {
	m.mu.Lock()
	m.bank(inst)[reg] = val
	m.journal = append(m.journal, Write{Instance: inst, Register: reg, Value: val})
	m.mu.Unlock()

	pkg.LogDebug(pkg.ComponentRegister, "register write",
		"instance", inst.String(), "register", reg.String(), "value", val)
}

// Writes returns a copy of the write journal.
func (m *Memory) Writes() []Write {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Write, len(m.journal))
	copy(out, m.journal)
	return out
}

// Last returns the most recent value written to reg on inst, and false if
// reg was never written.
func (m *Memory) Last(inst Instance, reg Register) (uint32, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := len(m.journal) - 1; i >= 0; i-- {
		w := m.journal[i]
		if w.Instance == inst && w.Register == reg {
			return w.Value, true
		}
	}
	return 0, false
}

// bank returns the register map for inst. Caller holds m.mu.
func (m *Memory) bank(inst Instance) map[Register]uint32 {
	if !inst.Valid() {
		panic("ral: register access on " + inst.String())
	}
	return m.regs[inst]
}
