package state

import (
	"fmt"

	"github.com/ardnew/ehciarena/device/hal/ehci/qh"
	"github.com/ardnew/ehciarena/device/hal/ehci/td"
	"github.com/ardnew/ehciarena/pkg"
)

// slot is the handoff marker of one arena element.
type slot uint8

const (
	slotAvailable slot = iota
	slotStolen
)

// handoff records which elements of one arena have been handed out. A slot
// never returns to available.
type handoff [SlotCount]slot

// take marks slot i stolen and reports whether it was available.
func (h *handoff) take(i int) bool {
	if h[i] == slotStolen {
		return false
	}
	h[i] = slotStolen
	return true
}

func (h *handoff) available(i int) bool {
	return h[i] == slotAvailable
}

func (h *handoff) count() (n int) {
	for _, s := range h {
		if s == slotAvailable {
			n++
		}
	}
	return n
}

// QueueHeads is the result of a queue head steal. Element i points at queue
// head i, or is nil if that slot was handed out earlier.
type QueueHeads [SlotCount]*qh.QH

// Present returns the number of non-nil elements.
func (q *QueueHeads) Present() int {
	return present(q[:])
}

// TransferDescriptors is the result of a transfer descriptor steal. Element i
// points at descriptor i, or is nil if that slot was handed out earlier.
type TransferDescriptors [SlotCount]*td.TD

// Present returns the number of non-nil elements.
func (t *TransferDescriptors) Present() int {
	return present(t[:])
}

func present[T any](ptrs []*T) (n int) {
	for _, p := range ptrs {
		if p != nil {
			n++
		}
	}
	return n
}

// stealAll hands out every available element of list.
func stealAll[T any](h *handoff, list *[SlotCount]T) (out [SlotCount]*T, withheld int) {
	for i := range list {
		if h.take(i) {
			out[i] = &list[i]
		} else {
			withheld++
		}
	}
	return out, withheld
}

// stealOne hands out element i of list.
func stealOne[T any](h *handoff, list *[SlotCount]T, i int) (*T, error) {
	if i < 0 || i >= SlotCount {
		return nil, fmt.Errorf("slot %d: %w", i, pkg.ErrSlotIndex)
	}
	if !h.take(i) {
		return nil, fmt.Errorf("slot %d: %w", i, pkg.ErrSlotStolen)
	}
	return &list[i], nil
}
