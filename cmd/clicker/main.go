// Command clicker plays one turn against a persistent save slot.
package main

import (
	"context"
	"flag"
	"log"
	"os"

	clickercmd "github.com/louisbranch/cookieclicker/internal/cmd/clicker"
	entrypoint "github.com/louisbranch/cookieclicker/internal/platform/cmd"
	"github.com/louisbranch/cookieclicker/internal/platform/config"
)

func main() {
	cfg, err := clickercmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		log.Fatalf("parse flags: %v", err)
	}
	log.SetPrefix(entrypoint.LogPrefix(entrypoint.ServiceClicker))
	ctx, stop := entrypoint.SignalContext(context.Background())
	defer stop()

	config.ExitOnError("clicker", clickercmd.Run(ctx, cfg, os.Stdout, os.Stderr))
}
