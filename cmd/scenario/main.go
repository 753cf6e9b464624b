// Package main provides a CLI for running Lua scenario scripts.
package main

import (
	"context"
	"flag"
	"log"
	"os"

	scenariocmd "github.com/louisbranch/cookieclicker/internal/cmd/scenario"
	entrypoint "github.com/louisbranch/cookieclicker/internal/platform/cmd"
	"github.com/louisbranch/cookieclicker/internal/platform/config"
)

func main() {
	cfg, err := scenariocmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.Exitf("Error: %v", err)
	}
	log.SetPrefix(entrypoint.LogPrefix(entrypoint.ServiceScenario))

	ctx, stop := entrypoint.SignalContext(context.Background())
	defer stop()

	if err := scenariocmd.Run(ctx, cfg, os.Stdout, os.Stderr); err != nil {
		config.Exitf("Error: %v", err)
	}
}
