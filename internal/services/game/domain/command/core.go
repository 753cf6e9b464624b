package command

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/louisbranch/cookieclicker/internal/services/game/domain/catalog"
	"github.com/louisbranch/cookieclicker/internal/services/game/domain/clicker"
)

// Core command types, one per state mutator.
const (
	TypeWarp              Type = "game.warp"
	TypeTransactBuildings Type = "building.transact"
	TypeBuyUpgrade        Type = "upgrade.buy"
	TypeRegisterBuff      Type = "buff.register"
	TypeAdjustBank        Type = "bank.adjust"
	TypeSetClickingRate   Type = "clicking.set_rate"
)

// WarpPayload advances the game clock.
type WarpPayload struct {
	Ticks int64 `json:"ticks"`
}

// TransactBuildingsPayload buys (positive amount) or sells buildings.
type TransactBuildingsPayload struct {
	Building string `json:"building"`
	Amount   int    `json:"amount"`
}

// BuyUpgradePayload purchases a catalog upgrade.
type BuyUpgradePayload struct {
	Upgrade string `json:"upgrade"`
}

// RegisterBuffPayload activates a fresh catalog buff.
type RegisterBuffPayload struct {
	Buff string `json:"buff"`
}

// AdjustBankPayload adds delta cookies to the bank.
type AdjustBankPayload struct {
	Delta float64 `json:"delta"`
}

// SetClickingRatePayload sets clicks per tick.
type SetClickingRatePayload struct {
	Rate float64 `json:"rate"`
}

// CoreRegistry returns a registry with every core command, resolving content
// ids against c.
func CoreRegistry(c *catalog.Catalog) (*Registry, error) {
	if c == nil {
		return nil, errors.New("catalog is required")
	}
	registry := NewRegistry()
	definitions := []Definition{
		{
			Type:            TypeWarp,
			ValidatePayload: validate[WarpPayload](nil),
			Apply: handle(func(s clicker.State, p WarpPayload) (clicker.State, error) {
				return s.Warp(p.Ticks)
			}),
		},
		{
			Type: TypeTransactBuildings,
			ValidatePayload: validate(func(p TransactBuildingsPayload) error {
				return requireID("building", p.Building)
			}),
			Apply: handle(func(s clicker.State, p TransactBuildingsPayload) (clicker.State, error) {
				t, err := c.Building(p.Building)
				if err != nil {
					return clicker.State{}, err
				}
				return s.TransactBuildings(t, p.Amount)
			}),
		},
		{
			Type: TypeBuyUpgrade,
			ValidatePayload: validate(func(p BuyUpgradePayload) error {
				return requireID("upgrade", p.Upgrade)
			}),
			Apply: handle(func(s clicker.State, p BuyUpgradePayload) (clicker.State, error) {
				u, err := c.Upgrade(p.Upgrade)
				if err != nil {
					return clicker.State{}, err
				}
				return s.BuyUpgrade(u)
			}),
		},
		{
			Type: TypeRegisterBuff,
			ValidatePayload: validate(func(p RegisterBuffPayload) error {
				return requireID("buff", p.Buff)
			}),
			Apply: handle(func(s clicker.State, p RegisterBuffPayload) (clicker.State, error) {
				b, err := c.NewBuff(p.Buff)
				if err != nil {
					return clicker.State{}, err
				}
				return s.RegisterBuff(b)
			}),
		},
		{
			Type:            TypeAdjustBank,
			ValidatePayload: validate[AdjustBankPayload](nil),
			Apply: handle(func(s clicker.State, p AdjustBankPayload) (clicker.State, error) {
				return s.AdjustBank(p.Delta)
			}),
		},
		{
			Type:            TypeSetClickingRate,
			ValidatePayload: validate[SetClickingRatePayload](nil),
			Apply: handle(func(s clicker.State, p SetClickingRatePayload) (clicker.State, error) {
				return s.SetClickingRate(p.Rate)
			}),
		},
	}
	for _, def := range definitions {
		if err := registry.Register(def); err != nil {
			return nil, err
		}
	}
	return registry, nil
}

// NewCommand builds a command for slotID with payload encoded as JSON.
func NewCommand(slotID string, cmdType Type, payload any) (Command, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return Command{}, fmt.Errorf("encode payload: %w", err)
	}
	return Command{SlotID: slotID, Type: cmdType, PayloadJSON: data}, nil
}

func decode[P any](raw json.RawMessage) (P, error) {
	var payload P
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&payload); err != nil {
		return payload, ErrPayloadInvalid.Detail(map[string]string{"Reason": err.Error()})
	}
	return payload, nil
}

func validate[P any](check func(P) error) PayloadValidator {
	return func(raw json.RawMessage) error {
		payload, err := decode[P](raw)
		if err != nil {
			return err
		}
		if check == nil {
			return nil
		}
		return check(payload)
	}
}

func handle[P any](apply func(clicker.State, P) (clicker.State, error)) Handler {
	return func(s clicker.State, raw json.RawMessage) (clicker.State, error) {
		payload, err := decode[P](raw)
		if err != nil {
			return clicker.State{}, err
		}
		return apply(s, payload)
	}
}

func requireID(field, id string) error {
	if strings.TrimSpace(id) == "" {
		return ErrPayloadInvalid.Detail(map[string]string{"Reason": field + " is required"})
	}
	return nil
}
