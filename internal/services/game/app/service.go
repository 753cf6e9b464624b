package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/louisbranch/cookieclicker/internal/services/game/domain/catalog"
	"github.com/louisbranch/cookieclicker/internal/services/game/domain/clicker"
	"github.com/louisbranch/cookieclicker/internal/services/game/domain/command"
	"github.com/louisbranch/cookieclicker/internal/services/game/domain/pricing"
	"github.com/louisbranch/cookieclicker/internal/services/game/domain/save"
	"github.com/louisbranch/cookieclicker/internal/services/game/storage"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/louisbranch/cookieclicker/internal/services/game/app"

// Service runs play sessions for save slots. It is safe for concurrent use.
type Service struct {
	mu             sync.Mutex
	catalog        *catalog.Catalog
	registry       *command.Registry
	pricing        pricing.Config
	ticksPerSecond int64
	store          storage.SaveStore
	clock          Clock
	tracer         trace.Tracer
	sessions       map[string]*session
}

type session struct {
	state     clicker.State
	settledAt time.Time
	// carry is wall-clock time already elapsed but shorter than one tick.
	carry time.Duration
}

// Option configures a Service.
type Option func(*Service)

// WithClock overrides the wall clock used for settling.
func WithClock(clock Clock) Option {
	return func(s *Service) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// WithTracerProvider overrides the global tracer provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(s *Service) {
		if tp != nil {
			s.tracer = tp.Tracer(tracerName)
		}
	}
}

// NewService builds a session service. A nil store keeps sessions in memory
// only.
func NewService(cfg Config, store storage.SaveStore, opts ...Option) (*Service, error) {
	if err := cfg.Pricing().Validate(); err != nil {
		return nil, err
	}
	if cfg.TicksPerSecond < 1 {
		return nil, fmt.Errorf("ticks per second must be at least 1, got %d", cfg.TicksPerSecond)
	}
	content := catalog.New(cfg.TicksPerSecond)
	registry, err := command.CoreRegistry(content)
	if err != nil {
		return nil, fmt.Errorf("build command registry: %w", err)
	}
	svc := &Service{
		catalog:        content,
		registry:       registry,
		pricing:        cfg.Pricing(),
		ticksPerSecond: cfg.TicksPerSecond,
		store:          store,
		clock:          realClock{},
		tracer:         otel.Tracer(tracerName),
		sessions:       make(map[string]*session),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(svc)
		}
	}
	return svc, nil
}

// Catalog returns the content the service resolves ids against.
func (s *Service) Catalog() *catalog.Catalog {
	return s.catalog
}

// Registry returns the command registry.
func (s *Service) Registry() *command.Registry {
	return s.registry
}

// State returns the current state of slotID, loading it on first use. A slot
// with no save starts a fresh game.
func (s *Service) State(ctx context.Context, slotID string) (clicker.State, error) {
	if slotID == "" {
		return clicker.State{}, command.ErrSlotRequired
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.session(ctx, slotID)
	if err != nil {
		return clicker.State{}, err
	}
	return sess.state, nil
}

// Execute applies cmd to its slot and persists the result. The slot keeps its
// previous state when the command or the write fails.
func (s *Service) Execute(ctx context.Context, cmd command.Command) (clicker.State, error) {
	cmd, err := s.registry.Validate(cmd)
	if err != nil {
		return clicker.State{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.session(ctx, cmd.SlotID)
	if err != nil {
		return clicker.State{}, err
	}
	return s.apply(ctx, sess, cmd)
}

// Settle warps slotID by the whole ticks elapsed on the clock since its last
// settle. Time shorter than a tick carries over to the next call.
func (s *Service) Settle(ctx context.Context, slotID string) (clicker.State, int64, error) {
	if slotID == "" {
		return clicker.State{}, 0, command.ErrSlotRequired
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.session(ctx, slotID)
	if err != nil {
		return clicker.State{}, 0, err
	}

	now := s.clock.Now()
	ticks, carry := ticksFor(now.Sub(sess.settledAt)+sess.carry, s.ticksPerSecond)
	if ticks == 0 {
		sess.settledAt, sess.carry = now, carry
		return sess.state, 0, nil
	}

	cmd, err := command.NewCommand(slotID, command.TypeWarp, command.WarpPayload{Ticks: ticks})
	if err != nil {
		return clicker.State{}, 0, err
	}
	next, err := s.apply(ctx, sess, cmd)
	if err != nil {
		return clicker.State{}, 0, err
	}
	sess.settledAt, sess.carry = now, carry
	return next, ticks, nil
}

// Reset discards slotID, both in memory and in the store.
func (s *Service) Reset(ctx context.Context, slotID string) error {
	if slotID == "" {
		return command.ErrSlotRequired
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, slotID)
	if s.store == nil {
		return nil
	}
	if err := s.store.DeleteSlot(ctx, slotID); err != nil && !errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("delete slot %s: %w", slotID, err)
	}
	return nil
}

// ListSlots lists saved slots, see storage.SaveStore.
func (s *Service) ListSlots(ctx context.Context, filter string, limit int) ([]storage.Slot, error) {
	if s.store == nil {
		return nil, nil
	}
	return s.store.ListSlots(ctx, filter, limit)
}

// session returns the open session for slotID. Callers hold s.mu.
func (s *Service) session(ctx context.Context, slotID string) (*session, error) {
	if sess, ok := s.sessions[slotID]; ok {
		return sess, nil
	}

	sess := &session{settledAt: s.clock.Now()}
	slot, err := s.loadSlot(ctx, slotID)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		state, err := clicker.NewGame(s.pricing)
		if err != nil {
			return nil, err
		}
		sess.state = state
	case err != nil:
		log.Printf("load slot %s: %v", slotID, err)
		return nil, err
	default:
		state, err := save.Restore(slot.Record, s.catalog)
		if err != nil {
			log.Printf("restore slot %s: %v", slotID, err)
			return nil, fmt.Errorf("restore slot %s: %w", slotID, err)
		}
		sess.state = state
		// Offline time accrues from the last write.
		if !slot.UpdatedAt.IsZero() {
			sess.settledAt = slot.UpdatedAt
		}
	}
	s.sessions[slotID] = sess
	return sess, nil
}

func (s *Service) loadSlot(ctx context.Context, slotID string) (storage.Slot, error) {
	if s.store == nil {
		return storage.Slot{}, storage.ErrNotFound
	}
	return s.store.GetSlot(ctx, slotID)
}

// apply runs cmd against sess inside a span and persists the result. Callers
// hold s.mu.
func (s *Service) apply(ctx context.Context, sess *session, cmd command.Command) (clicker.State, error) {
	ctx, span := s.tracer.Start(ctx, "game.command", trace.WithAttributes(
		attribute.String("command.name", string(cmd.Type)),
		attribute.String("slot.id", cmd.SlotID),
	))
	defer span.End()
	if cmd.RequestID != "" {
		span.SetAttributes(attribute.String("request.id", cmd.RequestID))
	}

	if cmd.Type == command.TypeWarp {
		var payload command.WarpPayload
		if err := json.Unmarshal(cmd.PayloadJSON, &payload); err == nil {
			span.SetAttributes(
				attribute.Int64("warp.ticks", payload.Ticks),
				attribute.Int("warp.steps", sess.state.WarpSteps(payload.Ticks)),
			)
		}
	}

	next, err := s.registry.Apply(sess.state, cmd)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return clicker.State{}, err
	}

	if s.store != nil {
		if err := s.store.PutSlot(ctx, storage.Slot{ID: cmd.SlotID, Record: save.Capture(next)}); err != nil {
			log.Printf("save slot %s: %v", cmd.SlotID, err)
			span.RecordError(err)
			span.SetStatus(otelcodes.Error, err.Error())
			return clicker.State{}, fmt.Errorf("save slot %s: %w", cmd.SlotID, err)
		}
	}
	sess.state = next
	return next, nil
}
