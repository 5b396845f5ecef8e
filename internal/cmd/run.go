package cmd

import (
	"io"

	"github.com/alecthomas/kong"
	kongtoml "github.com/alecthomas/kong-toml"
	kongyaml "github.com/alecthomas/kong-yaml"

	"github.com/ardnew/ehciarena/device/hal/ehci/ral"
	"github.com/ardnew/ehciarena/device/hal/ehci/state"
)

// NewParser builds the ehci-arena parser for cli. Configuration is read
// from userConfig (see [FindUserConfig]) and the working-directory
// defaults; flags override file values.
func NewParser(cli *CLI, userConfig string, opts ...kong.Option) (*kong.Kong, error) {
	jsonPaths, yamlPaths, tomlPaths := ConfigPaths(userConfig)
	return kong.New(cli, append([]kong.Option{
		kong.Name("ehci-arena"),
		kong.Description("Inspect USB controller descriptor arenas"),
		kong.UsageOnError(),
		kong.Configuration(kong.JSON, jsonPaths...),
		kong.Configuration(kongyaml.Loader, yamlPaths...),
		kong.Configuration(kongtoml.Loader, tomlPaths...),
	}, opts...)...)
}

// Execute applies the parsed logging options to logOut and runs the
// selected command against arenas, writing its report to out.
func Execute(kctx *kong.Context, cli *CLI, arenas *state.Context, bus *ral.Memory, out, logOut io.Writer) error {
	cli.Globals.Log.Apply(logOut)

	kctx.Bind(&cli.Globals, arenas, bus)
	kctx.BindTo(out, (*io.Writer)(nil))
	return kctx.Run()
}
