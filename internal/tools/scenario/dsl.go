package scenario

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Shopify/go-lua"
)

const scenarioTypeName = "scenario"

// Step kinds a script can record.
const (
	StepFund              = "fund"
	StepBuy               = "buy"
	StepSell              = "sell"
	StepUpgrade           = "upgrade"
	StepBuff              = "buff"
	StepClickRate         = "click_rate"
	StepWarp              = "warp"
	StepExpectBankAtLeast = "expect_bank_at_least"
	StepExpectCount       = "expect_count"
)

// Scenario is an ordered list of steps recorded by a Lua script.
type Scenario struct {
	Name  string
	Steps []Step
}

// Step is one recorded action or expectation.
type Step struct {
	Kind string
	Args map[string]any
}

// LoadScenarioFromFile runs the Lua script at path and returns the scenario
// it builds. The script must return the value of Scenario.new.
func LoadScenarioFromFile(path string) (*Scenario, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}
	scenario, err := LoadScenario(filepath.Base(path), string(source))
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(scenario.Name) == "" {
		scenario.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return scenario, nil
}

// LoadScenario runs source as a Lua chunk called name.
func LoadScenario(name, source string) (*Scenario, error) {
	state := lua.NewState()
	lua.OpenLibraries(state)
	registerLuaTypes(state)

	if err := lua.LoadBuffer(state, source, name, ""); err != nil {
		return nil, fmt.Errorf("load lua: %w", err)
	}
	if err := state.ProtectedCall(0, 1, 0); err != nil {
		return nil, fmt.Errorf("run lua: %w", err)
	}

	if state.TypeOf(-1) != lua.TypeUserData {
		state.Pop(1)
		return nil, fmt.Errorf("scenario script must return Scenario")
	}
	ud := state.ToUserData(-1)
	state.Pop(1)
	scenario, ok := ud.(*Scenario)
	if !ok || scenario == nil {
		return nil, fmt.Errorf("scenario script returned invalid Scenario")
	}
	return scenario, nil
}

func registerLuaTypes(state *lua.State) {
	lua.NewMetaTable(state, scenarioTypeName)
	state.NewTable()
	lua.SetFunctions(state, scenarioMethods, 0)
	state.SetField(-2, "__index")
	state.Pop(1)

	state.NewTable()
	lua.SetFunctions(state, scenarioConstructor, 0)
	state.SetGlobal("Scenario")
}

var scenarioConstructor = []lua.RegistryFunction{
	{Name: "new", Function: scenarioNew},
}

func scenarioNew(state *lua.State) int {
	name := lua.OptString(state, 1, "")
	state.PushUserData(&Scenario{Name: name})
	lua.SetMetaTableNamed(state, scenarioTypeName)
	return 1
}

// Every method returns the scenario so calls can be chained.
var scenarioMethods = []lua.RegistryFunction{
	{Name: StepFund, Function: scenarioFund},
	{Name: StepBuy, Function: scenarioBuy},
	{Name: StepSell, Function: scenarioSell},
	{Name: StepUpgrade, Function: scenarioUpgrade},
	{Name: StepBuff, Function: scenarioBuff},
	{Name: StepClickRate, Function: scenarioClickRate},
	{Name: StepWarp, Function: scenarioWarp},
	{Name: "warp_seconds", Function: scenarioWarpSeconds},
	{Name: StepExpectBankAtLeast, Function: scenarioExpectBankAtLeast},
	{Name: StepExpectCount, Function: scenarioExpectCount},
}

func scenarioFund(state *lua.State) int {
	scenario := checkScenario(state)
	return appendStep(state, scenario, StepFund, map[string]any{"amount": lua.CheckNumber(state, 2)})
}

func scenarioBuy(state *lua.State) int {
	scenario := checkScenario(state)
	building := lua.CheckString(state, 2)
	amount := lua.OptInteger(state, 3, 1)
	return appendStep(state, scenario, StepBuy, map[string]any{"building": building, "amount": amount})
}

func scenarioSell(state *lua.State) int {
	scenario := checkScenario(state)
	building := lua.CheckString(state, 2)
	amount := lua.OptInteger(state, 3, 1)
	return appendStep(state, scenario, StepSell, map[string]any{"building": building, "amount": amount})
}

func scenarioUpgrade(state *lua.State) int {
	scenario := checkScenario(state)
	return appendStep(state, scenario, StepUpgrade, map[string]any{"upgrade": lua.CheckString(state, 2)})
}

func scenarioBuff(state *lua.State) int {
	scenario := checkScenario(state)
	return appendStep(state, scenario, StepBuff, map[string]any{"buff": lua.CheckString(state, 2)})
}

func scenarioClickRate(state *lua.State) int {
	scenario := checkScenario(state)
	return appendStep(state, scenario, StepClickRate, map[string]any{"rate": lua.CheckNumber(state, 2)})
}

func scenarioWarp(state *lua.State) int {
	scenario := checkScenario(state)
	return appendStep(state, scenario, StepWarp, map[string]any{"ticks": lua.CheckInteger(state, 2)})
}

// warp_seconds records a warp measured in seconds; the runner converts it
// with its tick rate.
func scenarioWarpSeconds(state *lua.State) int {
	scenario := checkScenario(state)
	return appendStep(state, scenario, StepWarp, map[string]any{"seconds": lua.CheckNumber(state, 2)})
}

func scenarioExpectBankAtLeast(state *lua.State) int {
	scenario := checkScenario(state)
	return appendStep(state, scenario, StepExpectBankAtLeast, map[string]any{"amount": lua.CheckNumber(state, 2)})
}

func scenarioExpectCount(state *lua.State) int {
	scenario := checkScenario(state)
	building := lua.CheckString(state, 2)
	count := lua.CheckInteger(state, 3)
	return appendStep(state, scenario, StepExpectCount, map[string]any{"building": building, "count": count})
}

func checkScenario(state *lua.State) *Scenario {
	ud := lua.CheckUserData(state, 1, scenarioTypeName)
	if scenario, ok := ud.(*Scenario); ok && scenario != nil {
		return scenario
	}
	lua.ArgumentError(state, 1, "scenario expected")
	return nil
}

// appendStep records the step and leaves the scenario on the stack.
func appendStep(state *lua.State, scenario *Scenario, kind string, args map[string]any) int {
	scenario.Steps = append(scenario.Steps, Step{Kind: kind, Args: args})
	state.PushValue(1)
	return 1
}
