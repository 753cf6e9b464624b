// Package clicker parses clicker command flags and plays one turn on a save
// slot.
package clicker

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	entrypoint "github.com/louisbranch/cookieclicker/internal/platform/cmd"
	apperrors "github.com/louisbranch/cookieclicker/internal/platform/errors"
	"github.com/louisbranch/cookieclicker/internal/services/game/app"
	"github.com/louisbranch/cookieclicker/internal/services/game/domain/command"
	"github.com/louisbranch/cookieclicker/internal/services/game/storage/integrity"
	storagesqlite "github.com/louisbranch/cookieclicker/internal/services/game/storage/sqlite"
	"golang.org/x/text/language"
)

// Config holds clicker command configuration.
type Config struct {
	Game    app.Config
	Slot    string `env:"COOKIECLICKER_SLOT"   envDefault:"main"`
	Locale  string `env:"COOKIECLICKER_LOCALE" envDefault:"en-US"`
	Command string
	Payload string
	Settle  bool
	Reset   bool
	List    bool
	Filter  string
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.Slot, "slot", cfg.Slot, "save slot id")
	fs.StringVar(&cfg.Locale, "locale", cfg.Locale, "locale for messages and numbers")
	fs.StringVar(&cfg.Game.DBPath, "db", cfg.Game.DBPath, "path to the save database")
	fs.StringVar(&cfg.Command, "command", "", "command type to apply, e.g. building.transact")
	fs.StringVar(&cfg.Payload, "payload", "", "command payload JSON")
	fs.BoolVar(&cfg.Settle, "settle", false, "warp by the time elapsed since the last save first")
	fs.BoolVar(&cfg.Reset, "reset", false, "discard the slot and start over")
	fs.BoolVar(&cfg.List, "list", false, "list save slots instead of playing")
	fs.StringVar(&cfg.Filter, "filter", "", "AIP-160 filter for -list, e.g. \"bank > 1000.0\"")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	if err := cfg.Game.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run opens the save store and executes the configured action.
func Run(ctx context.Context, cfg Config, out io.Writer, errOut io.Writer) error {
	if out == nil {
		out = io.Discard
	}
	if errOut == nil {
		errOut = io.Discard
	}
	if strings.TrimSpace(cfg.Slot) == "" {
		return command.ErrSlotRequired
	}
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceClicker, func(ctx context.Context) error {
		svc, closeStore, err := openService(ctx, cfg.Game)
		if err != nil {
			return err
		}
		defer closeStore()

		err = play(ctx, svc, cfg, out)
		if err != nil {
			var domainErr *apperrors.Error
			if errors.As(err, &domainErr) {
				fmt.Fprintln(errOut, apperrors.Localize(err, cfg.Locale))
			}
		}
		return err
	})
}

func openService(ctx context.Context, cfg app.Config) (*app.Service, func(), error) {
	ring, err := integrity.KeyringFromEnv()
	if err != nil {
		return nil, nil, fmt.Errorf("load save keyring: %w", err)
	}
	if dir := filepath.Dir(cfg.DBPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, nil, fmt.Errorf("create data dir: %w", err)
		}
	}
	store, err := storagesqlite.Open(ctx, cfg.DBPath, storagesqlite.WithKeyring(ring))
	if err != nil {
		return nil, nil, fmt.Errorf("open save store: %w", err)
	}
	svc, err := app.NewService(cfg, store)
	if err != nil {
		_ = store.Close()
		return nil, nil, err
	}
	return svc, func() { _ = store.Close() }, nil
}

func play(ctx context.Context, svc *app.Service, cfg Config, out io.Writer) error {
	tag := language.Make(cfg.Locale)
	if cfg.List {
		slots, err := svc.ListSlots(ctx, cfg.Filter, 0)
		if err != nil {
			return err
		}
		for _, slot := range slots {
			fmt.Fprintf(out, "%s\tticks=%d\tbank=%.2f\tupdated=%s\n", slot.ID, slot.Record.Ticks, slot.Record.Bank, slot.UpdatedAt.Format("2006-01-02T15:04:05Z"))
		}
		return nil
	}
	if cfg.Reset {
		if err := svc.Reset(ctx, cfg.Slot); err != nil {
			return err
		}
	}
	if cfg.Settle {
		if _, _, err := svc.Settle(ctx, cfg.Slot); err != nil {
			return err
		}
	}
	if cfg.Command != "" {
		if _, err := svc.Execute(ctx, command.Command{
			SlotID:      cfg.Slot,
			Type:        command.Type(cfg.Command),
			PayloadJSON: []byte(cfg.Payload),
		}); err != nil {
			return err
		}
	}
	state, err := svc.State(ctx, cfg.Slot)
	if err != nil {
		return err
	}
	return app.WriteReport(out, tag, svc.Catalog(), state)
}
