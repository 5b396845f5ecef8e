// Package cmd holds the commands of the ehci-arena tool.
package cmd

import (
	"fmt"
	"io"

	"github.com/ardnew/ehciarena/device/hal/ehci/ral"
	"github.com/ardnew/ehciarena/device/hal/ehci/state"
	"github.com/ardnew/ehciarena/internal/report"
	"github.com/ardnew/ehciarena/pkg"
)

// CLI is the root command.
type CLI struct {
	Globals Globals `embed:""`

	Layout  Layout  `cmd:"" default:"1" help:"Report arena placement and alignment"`
	Bringup Bringup `cmd:"" help:"Bind controller instances and hand out their descriptor slots"`
}

// Globals are flags shared by every command.
type Globals struct {
	Config string     `help:"Configuration file (JSON, YAML or TOML)" type:"path"`
	Format string     `help:"Report format" enum:"text,json,yaml,toml" default:"text" short:"f"`
	Log    LogOptions `embed:"" prefix:"log-"`
}

// LogOptions configures the arena layer's logger.
type LogOptions struct {
	Level  string `help:"Log level" enum:"debug,info,warn,error" default:"warn"`
	Format string `help:"Log format" enum:"text,json" default:"text"`
}

// Apply configures the default logger to write to w.
func (o LogOptions) Apply(w io.Writer) {
	pkg.SetLogLevel(pkg.ParseLogLevel(o.Level))
	pkg.SetLogFormat(w, pkg.ParseLogFormat(o.Format))
}

// Layout reports where each instance's arenas live.
type Layout struct{}

// Run prints the layout report.
func (c *Layout) Run(g *Globals, arenas *state.Context, bus *ral.Memory, out io.Writer) error {
	r := report.Layout(arenas, bus)
	if !r.Disjoint {
		pkg.LogError(pkg.ComponentCLI, "descriptor arenas overlap")
	}
	return report.Render(out, r, g.Format)
}

// Bringup publishes arenas to the (simulated) controller and steals their
// slots, the way driver initialization does.
type Bringup struct {
	Instances []string `help:"Controller instances to bring up" default:"usb1,usb2" sep:","`
	Passes    int      `help:"Steal passes per instance; passes after the first hand out nothing" default:"1"`
	NoBind    bool     `help:"Skip writing ENDPTLISTADDR"`
}

// Run binds and steals, then prints the resulting report.
func (c *Bringup) Run(g *Globals, arenas *state.Context, bus *ral.Memory, out io.Writer) error {
	insts := make([]ral.Instance, 0, len(c.Instances))
	for _, name := range c.Instances {
		inst, ok := ral.ParseInstance(name)
		if !ok {
			return fmt.Errorf("instance %q: %w", name, pkg.ErrUnknownInstance)
		}
		insts = append(insts, inst)
	}

	type steal struct {
		inst ral.Instance
		pass int
		qhs  state.QueueHeads
		tds  state.TransferDescriptors
	}
	var steals []steal

	for _, inst := range insts {
		if !c.NoBind {
			arenas.Bind(inst)
		}
		for pass := 1; pass <= c.Passes; pass++ {
			steals = append(steals, steal{
				inst: inst,
				pass: pass,
				qhs:  arenas.StealQueueHeads(inst),
				tds:  arenas.StealTransferDescriptors(inst),
			})
		}
		pkg.LogInfo(pkg.ComponentCLI, "instance brought up",
			"instance", inst.String(), "phase", arenas.State(inst).Phase().String())
	}

	r := report.Layout(arenas, bus)
	for i := range steals {
		r.AddSteal(steals[i].inst, steals[i].pass, &steals[i].qhs, &steals[i].tds)
	}
	r.AddWrites(bus)
	return report.Render(out, r, g.Format)
}
