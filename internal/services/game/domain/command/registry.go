package command

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	apperrors "github.com/louisbranch/cookieclicker/internal/platform/errors"
	"github.com/louisbranch/cookieclicker/internal/services/game/domain/clicker"
	coreencoding "github.com/louisbranch/cookieclicker/internal/services/game/domain/core/encoding"
)

var (
	// ErrSlotRequired indicates a missing save slot id.
	ErrSlotRequired = apperrors.New(apperrors.CodeSlotRequired, "slot id is required")
	// ErrTypeRequired indicates a missing command type.
	ErrTypeRequired = apperrors.New(apperrors.CodeCommandInvalid, "command type is required")
	// ErrTypeUnknown indicates an unregistered command type.
	ErrTypeUnknown = apperrors.New(apperrors.CodeCommandUnknown, "command type is not registered")
	// ErrPayloadInvalid indicates malformed payload JSON.
	ErrPayloadInvalid = apperrors.New(apperrors.CodeCommandInvalid, "payload json must be valid")
)

// Type identifies the command type string.
type Type string

// Command captures the command envelope.
type Command struct {
	SlotID      string
	Type        Type
	// RequestID correlates the command with its trace span. Optional.
	RequestID   string
	PayloadJSON []byte
}

// PayloadValidator validates a payload JSON document.
type PayloadValidator func(json.RawMessage) error

// Handler applies a validated payload to a state.
type Handler func(clicker.State, json.RawMessage) (clicker.State, error)

// Definition registers metadata for a command type.
type Definition struct {
	Type            Type
	ValidatePayload PayloadValidator
	Apply           Handler
}

// Registry stores command definitions and validates commands.
type Registry struct {
	definitions map[Type]Definition
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{definitions: make(map[Type]Definition)}
}

// Register adds a new command type definition to the registry.
func (r *Registry) Register(def Definition) error {
	if r == nil {
		return fmt.Errorf("registry is required")
	}
	def.Type = Type(strings.TrimSpace(string(def.Type)))
	if def.Type == "" {
		return ErrTypeRequired
	}
	if def.Apply == nil {
		return fmt.Errorf("command type %s has no handler", def.Type)
	}
	if r.definitions == nil {
		r.definitions = make(map[Type]Definition)
	}
	if _, exists := r.definitions[def.Type]; exists {
		return fmt.Errorf("command type already registered: %s", def.Type)
	}
	r.definitions[def.Type] = def
	return nil
}

// Validate normalizes cmd and checks its envelope and payload.
func (r *Registry) Validate(cmd Command) (Command, error) {
	cmd.SlotID = strings.TrimSpace(cmd.SlotID)
	if cmd.SlotID == "" {
		return Command{}, ErrSlotRequired
	}
	def, cmd, err := r.resolve(cmd)
	if err != nil {
		return Command{}, err
	}
	if def.ValidatePayload != nil {
		if err := def.ValidatePayload(json.RawMessage(cmd.PayloadJSON)); err != nil {
			return Command{}, fmt.Errorf("payload invalid: %w", err)
		}
	}
	return cmd, nil
}

// Apply validates cmd and applies it to state. The slot id is not required
// here; callers routing commands to slots check it with Validate.
func (r *Registry) Apply(state clicker.State, cmd Command) (clicker.State, error) {
	def, cmd, err := r.resolve(cmd)
	if err != nil {
		return clicker.State{}, err
	}
	if def.ValidatePayload != nil {
		if err := def.ValidatePayload(json.RawMessage(cmd.PayloadJSON)); err != nil {
			return clicker.State{}, fmt.Errorf("payload invalid: %w", err)
		}
	}
	return def.Apply(state, json.RawMessage(cmd.PayloadJSON))
}

func (r *Registry) resolve(cmd Command) (Definition, Command, error) {
	cmd.Type = Type(strings.TrimSpace(string(cmd.Type)))
	if cmd.Type == "" {
		return Definition{}, Command{}, ErrTypeRequired
	}
	def, ok := r.Definition(cmd.Type)
	if !ok {
		return Definition{}, Command{}, ErrTypeUnknown.Detail(map[string]string{"Type": string(cmd.Type)})
	}
	if len(bytes.TrimSpace(cmd.PayloadJSON)) == 0 {
		cmd.PayloadJSON = []byte("{}")
	}
	if !json.Valid(cmd.PayloadJSON) {
		return Definition{}, Command{}, ErrPayloadInvalid
	}
	canonical, err := coreencoding.CanonicalJSON(json.RawMessage(cmd.PayloadJSON))
	if err != nil {
		return Definition{}, Command{}, fmt.Errorf("canonical payload json: %w", err)
	}
	cmd.PayloadJSON = canonical
	return def, cmd, nil
}

// Definition returns the command definition for a given type.
func (r *Registry) Definition(cmdType Type) (Definition, bool) {
	if r == nil {
		return Definition{}, false
	}
	cmdType = Type(strings.TrimSpace(string(cmdType)))
	if cmdType == "" {
		return Definition{}, false
	}
	def, ok := r.definitions[cmdType]
	return def, ok
}

// ListDefinitions returns a stable, sorted snapshot of registered definitions.
func (r *Registry) ListDefinitions() []Definition {
	if r == nil || len(r.definitions) == 0 {
		return nil
	}
	definitions := make([]Definition, 0, len(r.definitions))
	for _, definition := range r.definitions {
		definitions = append(definitions, definition)
	}
	sort.Slice(definitions, func(i, j int) bool {
		return string(definitions[i].Type) < string(definitions[j].Type)
	})
	return definitions
}
