package pkg

import "errors"

// Arena layer errors.
var (
	// ErrUnknownInstance indicates a controller instance outside the closed
	// set of known instances. Reaching the selector with one is fatal.
	ErrUnknownInstance = errors.New("unknown controller instance")

	// ErrSlotIndex indicates a slot index outside the arena.
	ErrSlotIndex = errors.New("slot index out of range")

	// ErrSlotStolen indicates the slot was already handed out.
	ErrSlotStolen = errors.New("slot already stolen")

	// ErrContextOpen indicates the process-wide arena context was already
	// opened.
	ErrContextOpen = errors.New("arena context already open")

	// ErrMisaligned indicates an arena base address that violates its
	// hardware alignment.
	ErrMisaligned = errors.New("arena base misaligned")

	// ErrUnsupportedFormat indicates an unknown report output format.
	ErrUnsupportedFormat = errors.New("unsupported format")
)
