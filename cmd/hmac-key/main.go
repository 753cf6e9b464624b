// Command hmac-key prints a fresh save signing key as environment lines.
package main

import (
	"flag"
	"os"

	"github.com/louisbranch/cookieclicker/internal/platform/config"
	"github.com/louisbranch/cookieclicker/internal/tools/hmackey"
)

func main() {
	cfg, err := hmackey.ParseConfig(flag.CommandLine, os.Args[1:])
	config.ExitOnError("parse flags", err)
	config.ExitOnError("generate key", hmackey.Run(cfg, os.Stdout, nil))
}
