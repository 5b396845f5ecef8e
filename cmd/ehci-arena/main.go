// Command ehci-arena inspects the USB descriptor arenas on the host.
//
// It opens the arena context against a simulated register file, then
// reports where each controller instance's queue heads and transfer
// descriptors live, or walks through driver bring-up (bind, then steal).
package main

import (
	"os"

	"github.com/ardnew/ehciarena/device/hal/ehci/ral"
	"github.com/ardnew/ehciarena/device/hal/ehci/state"
	"github.com/ardnew/ehciarena/internal/cmd"
)

func main() {
	args := os.Args[1:]

	var cli cmd.CLI
	parser, err := cmd.NewParser(&cli, cmd.FindUserConfig(args))
	if err != nil {
		panic(err)
	}
	ctx, err := parser.Parse(args)
	parser.FatalIfErrorf(err)

	bus := ral.NewMemory()
	arenas, err := state.Open(bus)
	ctx.FatalIfErrorf(err)

	ctx.FatalIfErrorf(cmd.Execute(ctx, &cli, arenas, bus, os.Stdout, os.Stderr))
}
