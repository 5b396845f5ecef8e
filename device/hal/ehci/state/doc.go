// Package state owns the DMA-visible descriptor memory of the two USB
// controller instances and hands it to the driver.
//
// Each instance has a [State] holding [SlotCount] queue heads in a
// 4096-byte-aligned arena and [SlotCount] transfer descriptors in a
// 32-byte-aligned arena. A single [Context], created by [Open], owns both
// States for the life of the process and selects between them by
// [ral.Instance].
//
// # Bring-up
//
//	arenas, err := state.Open(ral.MMIO{})
//	if err != nil {
//	    return err
//	}
//	arenas.Bind(ral.USB1)
//	qhs := arenas.StealQueueHeads(ral.USB1)
//	tds := arenas.StealTransferDescriptors(ral.USB1)
//
// Bind tells the controller where the queue heads live. The Steal calls give
// the driver exclusive pointers to the records; every slot is handed out at
// most once, and later steals return nil for it.
//
// # Hardware access
//
// After Bind the controller's DMA engine is a third party to the arena
// memory. It reads and writes queue heads and transfer descriptors at any
// time, with no lock to take. Every field access must go through the
// atomic accessors of packages qh and td.
package state
