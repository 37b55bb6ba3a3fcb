package main

import (
	"fmt"
	"log"
	"os"

	"github.com/urfave/cli/v2"
)

var (
	// Version information (set via ldflags during build)
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	app := &cli.App{
		Name:  "registry",
		Usage: "Land registry contract client and off-chain index CLI",
		Description: `A command-line tool for the land registry demo.

Use this CLI to register and transfer properties on the registry
contract and to inspect the off-chain property record index.`,
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		Commands: []*cli.Command{
			registerCommand(),
			transferCommand(),
			recordsCommand(),
			healthCommand(),
		},
		// Global flags available to all commands
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config",
				Usage: "Path to configuration file",
			},
			&cli.StringFlag{
				Name:  "env",
				Value: "config/",
				Usage: "Path to environment files",
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
