// Package main is the entry point for the aeexport CLI. All functionality
// lives in internal/cli, which defines the cobra commands.
package main

import (
	"github.com/GSIL-UCalgary/Hackathon15-AlphaEarth-Alberta/internal/cli"
)

// version is set at build time via ldflags.
var version = "dev"

func main() {
	cli.Version = version
	cli.Execute(cli.NewRootCommand())
}
