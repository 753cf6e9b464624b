// Package scenario parses scenario command flags and runs a Lua script against
// a fresh game.
package scenario

import (
	"context"
	"errors"
	"flag"
	"io"
	"log"

	entrypoint "github.com/louisbranch/cookieclicker/internal/platform/cmd"
	"github.com/louisbranch/cookieclicker/internal/services/game/app"
	"github.com/louisbranch/cookieclicker/internal/services/game/domain/catalog"
	"github.com/louisbranch/cookieclicker/internal/tools/scenario"
	"golang.org/x/text/language"
)

// Config holds scenario command configuration.
type Config struct {
	Game       app.Config
	Scenario   string `env:"COOKIECLICKER_SCENARIO_FILE"`
	Assertions bool   `env:"COOKIECLICKER_SCENARIO_ASSERT"  envDefault:"true"`
	Verbose    bool   `env:"COOKIECLICKER_SCENARIO_VERBOSE"`
	Locale     string `env:"COOKIECLICKER_LOCALE"           envDefault:"en-US"`
	Report     bool   `env:"COOKIECLICKER_SCENARIO_REPORT"  envDefault:"true"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}

	fs.StringVar(&cfg.Scenario, "scenario", cfg.Scenario, "path to scenario lua file")
	fs.BoolVar(&cfg.Assertions, "assert", cfg.Assertions, "enable assertions (disable to log expectations)")
	fs.BoolVar(&cfg.Verbose, "verbose", cfg.Verbose, "enable verbose logging")
	fs.BoolVar(&cfg.Report, "report", cfg.Report, "print the final game report")
	fs.StringVar(&cfg.Locale, "locale", cfg.Locale, "locale for the final report")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	if err := cfg.Game.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run executes the scenario command.
func Run(ctx context.Context, cfg Config, out io.Writer, errOut io.Writer) error {
	if out == nil {
		out = io.Discard
	}
	if errOut == nil {
		errOut = io.Discard
	}
	if cfg.Scenario == "" {
		return errors.New("scenario path is required")
	}

	mode := scenario.AssertionStrict
	if !cfg.Assertions {
		mode = scenario.AssertionLogOnly
	}

	logger := log.New(errOut, "", 0)
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceScenario, func(ctx context.Context) error {
		state, err := scenario.RunFile(ctx, scenario.Config{
			Game:       cfg.Game,
			Assertions: mode,
			Verbose:    cfg.Verbose,
			Logger:     logger,
		}, cfg.Scenario)
		if err != nil {
			return err
		}
		if !cfg.Report {
			return nil
		}
		return app.WriteReport(out, language.Make(cfg.Locale), catalog.New(cfg.Game.TicksPerSecond), state)
	})
}
