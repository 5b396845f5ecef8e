package state

import (
	"fmt"
	"sync"

	"github.com/ardnew/ehciarena/device/hal/ehci/qh"
	"github.com/ardnew/ehciarena/device/hal/ehci/ral"
	"github.com/ardnew/ehciarena/device/hal/ehci/td"
	"github.com/ardnew/ehciarena/pkg"
)

// Phase is the lifecycle phase of an instance State.
type Phase uint8

// Lifecycle phases. A State only moves forward.
const (
	PhaseConstructed      Phase = iota // Arenas zeroed, nothing bound or stolen
	PhaseBound                         // Arena address published to the controller
	PhaseSlotsDistributed              // At least one slot handed out
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseConstructed:
		return "constructed"
	case PhaseBound:
		return "bound"
	case PhaseSlotsDistributed:
		return "slots-distributed"
	default:
		return "unknown"
	}
}

// State is the descriptor storage of one controller instance: a queue head
// arena, a transfer descriptor arena, and the handoff records that guard
// them.
//
// Arena memory is reachable only through the Steal methods, and each element
// is handed out at most once. Once the arena is bound the controller's DMA
// engine reads and writes it without software synchronization; holders of
// stolen elements must use the qh and td accessors, which are atomic.
//
// A State must not be copied.
type State struct {
	inst ral.Instance
	qhs  queueHeadArena
	tds  transferDescriptorArena

	mu      sync.Mutex
	qhSlots handoff
	tdSlots handoff
	bound   bool
}

func (s *State) init(inst ral.Instance) {
	s.inst = inst
	s.qhs.init()
	s.tds.init()
}

// Instance returns the controller instance that owns s.
func (s *State) Instance() ral.Instance {
	return s.inst
}

// QueueHeadBase returns the address of queue head 0.
func (s *State) QueueHeadBase() uintptr {
	return s.qhs.span().Lo
}

// TransferDescriptorBase returns the address of transfer descriptor 0.
func (s *State) TransferDescriptorBase() uintptr {
	return s.tds.span().Lo
}

// QueueHeadSpan returns the address range of the queue head arena.
func (s *State) QueueHeadSpan() Span {
	return s.qhs.span()
}

// TransferDescriptorSpan returns the address range of the transfer
// descriptor arena.
func (s *State) TransferDescriptorSpan() Span {
	return s.tds.span()
}

// Bound reports whether the queue head arena has been published to the
// controller.
func (s *State) Bound() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.bound
}

// Phase returns the lifecycle phase.
func (s *State) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch {
	case s.qhSlots.count() < SlotCount || s.tdSlots.count() < SlotCount:
		return PhaseSlotsDistributed
	case s.bound:
		return PhaseBound
	default:
		return PhaseConstructed
	}
}

// Available returns how many queue heads and transfer descriptors have not
// been handed out.
func (s *State) Available() (qhs, tds int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.qhSlots.count(), s.tdSlots.count()
}

// QueueHeadAvailable reports whether queue head i can still be stolen.
// It is false for indices outside the arena.
func (s *State) QueueHeadAvailable(i int) bool {
	if i < 0 || i >= SlotCount {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.qhSlots.available(i)
}

// TransferDescriptorAvailable reports whether transfer descriptor i can
// still be stolen. It is false for indices outside the arena.
func (s *State) TransferDescriptorAvailable(i int) bool {
	if i < 0 || i >= SlotCount {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tdSlots.available(i)
}

// bind writes the queue head arena's base address to the instance's
// ENDPTLISTADDR register. Rebinding writes the same address again.
func (s *State) bind(bus ral.Bus) {
	base := s.QueueHeadBase()
	if base%QueueHeadAlign != 0 {
		panic(fmt.Errorf("state: %v queue heads at %#x: %w", s.inst, base, pkg.ErrMisaligned))
	}
	bus.Write32(s.inst, ral.ENDPTLISTADDR, uint32(base))

	s.mu.Lock()
	s.bound = true
	s.mu.Unlock()

	pkg.LogInfo(pkg.ComponentBinder, "endpoint list bound",
		"instance", s.inst.String(), "addr", fmt.Sprintf("0x%08x", uint32(base)))
}

// StealQueueHeads hands out every queue head not yet stolen. Elements for
// slots stolen earlier are nil; no queue head is ever handed out twice.
func (s *State) StealQueueHeads() QueueHeads {
	s.mu.Lock()
	out, withheld := stealAll(&s.qhSlots, s.qhs.list)
	s.mu.Unlock()

	s.logSteal("queue heads", withheld)
	return QueueHeads(out)
}

// StealTransferDescriptors hands out every transfer descriptor not yet
// stolen. Elements for slots stolen earlier are nil.
func (s *State) StealTransferDescriptors() TransferDescriptors {
	s.mu.Lock()
	out, withheld := stealAll(&s.tdSlots, s.tds.list)
	s.mu.Unlock()

	s.logSteal("transfer descriptors", withheld)
	return TransferDescriptors(out)
}

// StealQueueHead hands out queue head i. It returns an error wrapping
// [pkg.ErrSlotIndex] or [pkg.ErrSlotStolen] if it cannot.
func (s *State) StealQueueHead(i int) (*qh.QH, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	q, err := stealOne(&s.qhSlots, s.qhs.list, i)
	if err != nil {
		return nil, fmt.Errorf("%v queue head: %w", s.inst, err)
	}
	pkg.LogDebug(pkg.ComponentHandoff, "queue head stolen", "instance", s.inst.String(), "slot", i)
	return q, nil
}

// StealTransferDescriptor hands out transfer descriptor i. It returns an
// error wrapping [pkg.ErrSlotIndex] or [pkg.ErrSlotStolen] if it cannot.
func (s *State) StealTransferDescriptor(i int) (*td.TD, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, err := stealOne(&s.tdSlots, s.tds.list, i)
	if err != nil {
		return nil, fmt.Errorf("%v transfer descriptor: %w", s.inst, err)
	}
	pkg.LogDebug(pkg.ComponentHandoff, "transfer descriptor stolen", "instance", s.inst.String(), "slot", i)
	return t, nil
}

func (s *State) logSteal(what string, withheld int) {
	if withheld > 0 {
		pkg.LogWarn(pkg.ComponentHandoff, what+" already stolen",
			"instance", s.inst.String(), "withheld", withheld)
	}
	pkg.LogDebug(pkg.ComponentHandoff, what+" stolen",
		"instance", s.inst.String(), "issued", SlotCount-withheld)
}
