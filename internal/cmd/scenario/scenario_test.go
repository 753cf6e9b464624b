package scenario

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tools "github.com/louisbranch/cookieclicker/internal/tools/scenario"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"COOKIECLICKER_SCENARIO_FILE",
		"COOKIECLICKER_SCENARIO_ASSERT",
		"COOKIECLICKER_SCENARIO_VERBOSE",
		"COOKIECLICKER_SCENARIO_REPORT",
		"COOKIECLICKER_LOCALE",
		"COOKIECLICKER_PRICE_GROWTH_FACTOR",
		"COOKIECLICKER_REFUND_FACTOR",
		"COOKIECLICKER_TICKS_PER_SECOND",
		"COOKIECLICKER_OTEL_ENDPOINT",
	} {
		t.Setenv(key, "")
	}
}

func writeScenario(t *testing.T, source string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "first_cursor.lua")
	if err := os.WriteFile(path, []byte(source), 0o600); err != nil {
		t.Fatalf("write scenario: %v", err)
	}
	return path
}

func TestParseConfigDefaults(t *testing.T) {
	clearEnv(t)
	fs := flag.NewFlagSet("scenario", flag.ContinueOnError)

	cfg, err := ParseConfig(fs, nil)
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if !cfg.Assertions {
		t.Fatal("expected assertions to default to true")
	}
	if !cfg.Report {
		t.Fatal("expected report to default to true")
	}
	if cfg.Game.TicksPerSecond != 30 {
		t.Fatalf("ticks per second = %d, want 30", cfg.Game.TicksPerSecond)
	}
}

func TestParseConfigFlags(t *testing.T) {
	clearEnv(t)
	fs := flag.NewFlagSet("scenario", flag.ContinueOnError)

	cfg, err := ParseConfig(fs, []string{"-scenario", "x.lua", "-assert=false", "-verbose", "-locale", "pt-BR"})
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.Scenario != "x.lua" || cfg.Assertions || !cfg.Verbose || cfg.Locale != "pt-BR" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
}

func TestRunRequiresScenario(t *testing.T) {
	if err := Run(context.Background(), Config{}, nil, nil); err == nil {
		t.Fatal("expected missing scenario error")
	}
}

func TestRunPrintsReport(t *testing.T) {
	clearEnv(t)
	cfg, err := ParseConfig(flag.NewFlagSet("scenario", flag.ContinueOnError), nil)
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	cfg.Scenario = writeScenario(t, `
local s = Scenario.new("first_cursor")
s:fund(15):buy("cursor"):expect_count("cursor", 1)
return s
`)

	var out bytes.Buffer
	if err := Run(context.Background(), cfg, &out, nil); err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(out.String(), "cursor") || !strings.Contains(out.String(), "1 owned") {
		t.Fatalf("report = %q", out.String())
	}
}

func TestRunLogOnlyExpectations(t *testing.T) {
	clearEnv(t)
	cfg, err := ParseConfig(flag.NewFlagSet("scenario", flag.ContinueOnError), []string{"-assert=false", "-report=false"})
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	cfg.Scenario = writeScenario(t, `
local s = Scenario.new("broke")
s:expect_bank_at_least(100)
return s
`)

	var out, errOut bytes.Buffer
	if err := Run(context.Background(), cfg, &out, &errOut); err != nil {
		t.Fatalf("run: %v", err)
	}
	if out.Len() != 0 {
		t.Fatalf("expected no report, got %q", out.String())
	}
	if errOut.Len() == 0 {
		t.Fatal("expected logged expectation")
	}
}

func TestRunStrictExpectationFails(t *testing.T) {
	clearEnv(t)
	cfg, err := ParseConfig(flag.NewFlagSet("scenario", flag.ContinueOnError), nil)
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	cfg.Scenario = writeScenario(t, `
local s = Scenario.new("broke")
s:expect_bank_at_least(100)
return s
`)

	err = Run(context.Background(), cfg, nil, nil)
	if !errors.Is(err, tools.ErrExpectationFailed) {
		t.Fatalf("error = %v, want expectation failure", err)
	}
}
