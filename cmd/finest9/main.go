package main

import (
	"github.com/alecthomas/kong"
)

var version = "dev"

type CLI struct {
	Version kong.VersionFlag `short:"v" help:"Show version"`
	Debug   bool             `help:"Enable debug logging"`
	LogFile string           `name:"log-file" help:"Write diagnostics to this file" type:"path"`

	Play     PlayCmd     `cmd:"" default:"1" help:"Play a game in the terminal"`
	Simulate SimulateCmd `cmd:"" help:"Run bot-only games and report statistics"`
	Rules    RulesCmd    `cmd:"" help:"Print the rules"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("finest9"),
		kong.Description("Finest 9 - a dice and card matching game"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)

	err := ctx.Run(&cli)
	ctx.FatalIfErrorf(err)
}
