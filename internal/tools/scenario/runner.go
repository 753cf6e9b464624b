package scenario

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"os"
	"strconv"
	"strings"

	apperrors "github.com/louisbranch/cookieclicker/internal/platform/errors"
	"github.com/louisbranch/cookieclicker/internal/services/game/app"
	"github.com/louisbranch/cookieclicker/internal/services/game/domain/clicker"
	"github.com/louisbranch/cookieclicker/internal/services/game/domain/command"
)

// ErrExpectationFailed indicates a scenario expectation that did not hold.
var ErrExpectationFailed = apperrors.New(apperrors.CodeScenarioExpectationFailed, "scenario expectation failed")

// AssertionMode controls how failed expectations are handled.
type AssertionMode int

const (
	// AssertionStrict stops the scenario at the first failed expectation.
	AssertionStrict AssertionMode = iota
	// AssertionLogOnly logs failed expectations and keeps going.
	AssertionLogOnly
)

// Config controls scenario execution.
type Config struct {
	Game       app.Config
	Assertions AssertionMode
	Verbose    bool
	Logger     *log.Logger
}

// DefaultConfig returns default runner configuration.
func DefaultConfig() Config {
	return Config{
		Game:       app.DefaultConfig(),
		Assertions: AssertionStrict,
	}
}

// Runner folds scenario steps over a fresh game.
type Runner struct {
	service    *app.Service
	assertions AssertionMode
	logger     *log.Logger
	verbose    bool
}

// NewRunner prepares a runner with an in-memory session service.
func NewRunner(cfg Config) (*Runner, error) {
	service, err := app.NewService(cfg.Game, nil)
	if err != nil {
		return nil, err
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.New(os.Stderr, "", 0)
	}
	return &Runner{
		service:    service,
		assertions: cfg.Assertions,
		logger:     logger,
		verbose:    cfg.Verbose,
	}, nil
}

// RunFile loads and executes a scenario file.
func RunFile(ctx context.Context, cfg Config, path string) (clicker.State, error) {
	runner, err := NewRunner(cfg)
	if err != nil {
		return clicker.State{}, err
	}
	scenario, err := LoadScenarioFromFile(path)
	if err != nil {
		return clicker.State{}, err
	}
	return runner.RunScenario(ctx, scenario)
}

// RunScenario executes the steps against a fresh game and returns the final
// state.
func (r *Runner) RunScenario(ctx context.Context, scenario *Scenario) (clicker.State, error) {
	if scenario == nil {
		return clicker.State{}, errors.New("scenario is required")
	}
	slotID := "scenario:" + scenario.Name
	if err := r.service.Reset(ctx, slotID); err != nil {
		return clicker.State{}, err
	}
	state, err := r.service.State(ctx, slotID)
	if err != nil {
		return clicker.State{}, err
	}

	r.logf("scenario start: %s (%d steps)", scenario.Name, len(scenario.Steps))
	for index, step := range scenario.Steps {
		if err := ctx.Err(); err != nil {
			return clicker.State{}, err
		}
		stepNumber := index + 1
		next, err := r.runStep(ctx, slotID, state, stepNumber, step)
		if err != nil {
			return clicker.State{}, fmt.Errorf("step %d (%s): %w", stepNumber, step.Kind, err)
		}
		state = next
		r.logf("step %d/%d done: %s bank=%s", stepNumber, len(scenario.Steps), step.Kind, formatFloat(state.Bank()))
	}
	r.logf("scenario done: %s", scenario.Name)
	return state, nil
}

func (r *Runner) runStep(ctx context.Context, slotID string, state clicker.State, stepNumber int, step Step) (clicker.State, error) {
	switch step.Kind {
	case StepExpectBankAtLeast:
		want, err := argFloat(step.Args, "amount")
		if err != nil {
			return clicker.State{}, err
		}
		if !atLeast(state.Bank(), want) {
			return state, r.expectationFailed(stepNumber, "bank %s is below %s", formatFloat(state.Bank()), formatFloat(want))
		}
		return state, nil
	case StepExpectCount:
		id, err := argString(step.Args, "building")
		if err != nil {
			return clicker.State{}, err
		}
		want, err := argInt(step.Args, "count")
		if err != nil {
			return clicker.State{}, err
		}
		t, err := r.service.Catalog().Building(id)
		if err != nil {
			return clicker.State{}, err
		}
		if got := state.Count(t); got != int(want) {
			return state, r.expectationFailed(stepNumber, "%s count is %d, want %d", id, got, want)
		}
		return state, nil
	}

	cmdType, payload, err := r.commandFor(step)
	if err != nil {
		return clicker.State{}, err
	}
	cmd, err := command.NewCommand(slotID, cmdType, payload)
	if err != nil {
		return clicker.State{}, err
	}
	cmd.RequestID = slotID + "#" + strconv.Itoa(stepNumber)
	return r.service.Execute(ctx, cmd)
}

func (r *Runner) commandFor(step Step) (command.Type, any, error) {
	switch step.Kind {
	case StepFund:
		amount, err := argFloat(step.Args, "amount")
		return command.TypeAdjustBank, command.AdjustBankPayload{Delta: amount}, err
	case StepBuy, StepSell:
		id, err := argString(step.Args, "building")
		if err != nil {
			return "", nil, err
		}
		amount, err := argInt(step.Args, "amount")
		if step.Kind == StepSell {
			amount = -amount
		}
		return command.TypeTransactBuildings, command.TransactBuildingsPayload{Building: id, Amount: int(amount)}, err
	case StepUpgrade:
		id, err := argString(step.Args, "upgrade")
		return command.TypeBuyUpgrade, command.BuyUpgradePayload{Upgrade: id}, err
	case StepBuff:
		id, err := argString(step.Args, "buff")
		return command.TypeRegisterBuff, command.RegisterBuffPayload{Buff: id}, err
	case StepClickRate:
		rate, err := argFloat(step.Args, "rate")
		return command.TypeSetClickingRate, command.SetClickingRatePayload{Rate: rate}, err
	case StepWarp:
		if _, ok := step.Args["seconds"]; ok {
			seconds, err := argFloat(step.Args, "seconds")
			ticks := int64(math.Floor(seconds * float64(r.service.Catalog().TicksPerSecond())))
			return command.TypeWarp, command.WarpPayload{Ticks: ticks}, err
		}
		ticks, err := argInt(step.Args, "ticks")
		return command.TypeWarp, command.WarpPayload{Ticks: ticks}, err
	default:
		return "", nil, fmt.Errorf("unknown step kind %q", step.Kind)
	}
}

func (r *Runner) expectationFailed(stepNumber int, format string, args ...any) error {
	err := ErrExpectationFailed.Detail(map[string]string{
		"Step":   strconv.Itoa(stepNumber),
		"Reason": fmt.Sprintf(format, args...),
	})
	if r.assertions == AssertionLogOnly {
		r.logger.Printf("expectation failed at step %d: %s", stepNumber, err.Metadata["Reason"])
		return nil
	}
	return fmt.Errorf("%w: %s", err, err.Metadata["Reason"])
}

func (r *Runner) logf(format string, args ...any) {
	if !r.verbose || r.logger == nil {
		return
	}
	r.logger.Printf(format, args...)
}

// atLeast compares with a relative tolerance so accumulated rounding in the
// bank does not fail an exact expectation.
func atLeast(got, want float64) bool {
	return got >= want-1e-9*math.Max(1, math.Abs(want))
}

func argFloat(args map[string]any, key string) (float64, error) {
	switch value := args[key].(type) {
	case float64:
		return value, nil
	case int:
		return float64(value), nil
	case int64:
		return float64(value), nil
	default:
		return 0, fmt.Errorf("%s must be a number", key)
	}
}

func argInt(args map[string]any, key string) (int64, error) {
	switch value := args[key].(type) {
	case int:
		return int64(value), nil
	case int64:
		return value, nil
	case float64:
		if value != math.Trunc(value) {
			return 0, fmt.Errorf("%s must be an integer", key)
		}
		return int64(value), nil
	default:
		return 0, fmt.Errorf("%s must be an integer", key)
	}
}

func argString(args map[string]any, key string) (string, error) {
	value, ok := args[key].(string)
	if !ok || strings.TrimSpace(value) == "" {
		return "", fmt.Errorf("%s is required", key)
	}
	return value, nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
