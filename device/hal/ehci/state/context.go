package state

import (
	"fmt"
	"sync/atomic"

	"github.com/ardnew/ehciarena/device/hal/ehci/qh"
	"github.com/ardnew/ehciarena/device/hal/ehci/ral"
	"github.com/ardnew/ehciarena/device/hal/ehci/td"
	"github.com/ardnew/ehciarena/pkg"
)

// opened is set by the first successful Open.
var opened atomic.Bool

// contexts is the statically allocated storage Open hands out. Nothing but
// Open refers to it.
var contexts Context

// Context owns the descriptor State of both controller instances for the
// life of the process. Whatever brings up the controllers holds the Context
// and passes it along.
type Context struct {
	bus    ral.Bus
	states [ral.InstanceCount]State
}

// Open constructs the process-wide Context, with register accesses going
// through bus. Only the first call succeeds; later calls return
// [pkg.ErrContextOpen]. The Context is never released.
func Open(bus ral.Bus) (*Context, error) {
	if !opened.CompareAndSwap(false, true) {
		return nil, pkg.ErrContextOpen
	}
	contexts.init(bus)
	return &contexts, nil
}

// newContext builds a private Context outside the static storage.
func newContext(bus ral.Bus) *Context {
	c := new(Context)
	c.init(bus)
	return c
}

func (c *Context) init(bus ral.Bus) {
	c.bus = bus
	for _, inst := range ral.Instances() {
		c.states[inst].init(inst)
	}
	pkg.LogDebug(pkg.ComponentArena, "arena context constructed", "instances", ral.InstanceCount)
}

// State returns the State of inst. It panics with an error wrapping
// [pkg.ErrUnknownInstance] if inst is not one of the known instances; there
// is no State to fall back on.
func (c *Context) State(inst ral.Instance) *State {
	if !inst.Valid() {
		err := fmt.Errorf("state: select %v: %w", inst, pkg.ErrUnknownInstance)
		pkg.LogError(pkg.ComponentArena, "invalid instance selected", "error", err)
		panic(err)
	}
	return &c.states[inst]
}

// Bind publishes the queue head arena of inst to the controller by writing
// its base address to ENDPTLISTADDR. Call it before the controller runs;
// repeating it is harmless.
func (c *Context) Bind(inst ral.Instance) {
	c.State(inst).bind(c.bus)
}

// AssignEndptListAddr is an alias for Bind.
func (c *Context) AssignEndptListAddr(inst ral.Instance) {
	c.Bind(inst)
}

// StealQueueHeads hands out the queue heads of inst. See
// [State.StealQueueHeads].
func (c *Context) StealQueueHeads(inst ral.Instance) QueueHeads {
	return c.State(inst).StealQueueHeads()
}

// StealTransferDescriptors hands out the transfer descriptors of inst. See
// [State.StealTransferDescriptors].
func (c *Context) StealTransferDescriptors(inst ral.Instance) TransferDescriptors {
	return c.State(inst).StealTransferDescriptors()
}

// StealQueueHead hands out queue head i of inst.
func (c *Context) StealQueueHead(inst ral.Instance, i int) (*qh.QH, error) {
	return c.State(inst).StealQueueHead(i)
}

// StealTransferDescriptor hands out transfer descriptor i of inst.
func (c *Context) StealTransferDescriptor(inst ral.Instance, i int) (*td.TD, error) {
	return c.State(inst).StealTransferDescriptor(i)
}
