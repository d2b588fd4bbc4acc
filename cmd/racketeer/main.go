package main

import (
	"github.com/alecthomas/kong"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Version  kong.VersionFlag `short:"v" help:"Show version"`
	Simulate SimulateCmd      `cmd:"" help:"Run matches between configured players"`
	Train    TrainCmd         `cmd:"" help:"Train a Q-learning agent against heuristic opponents"`
	Eval     EvalCmd          `cmd:"" help:"Evaluate a trained agent without exploration"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("racketeer"),
		kong.Description("Card racket simulator with heuristic and learning opponents"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
