package storage

import (
	"context"
	"time"

	apperrors "github.com/louisbranch/cookieclicker/internal/platform/errors"
	"github.com/louisbranch/cookieclicker/internal/services/game/domain/save"
)

// ErrNotFound indicates a requested save slot is missing.
var ErrNotFound = apperrors.New(apperrors.CodeNotFound, "save slot not found")

// ErrChecksumMismatch indicates a stored record that no longer matches its
// checksum.
var ErrChecksumMismatch = apperrors.New(apperrors.CodeSaveChecksumMismatch, "save checksum mismatch")

// Slot is a persisted save record.
type Slot struct {
	ID     string
	Record save.Record
	// Checksum is the content hash of Record.
	Checksum string
	// Signature and KeyID are empty for unsigned saves.
	Signature string
	KeyID     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// SaveStore persists save slots.
type SaveStore interface {
	// GetSlot returns ErrNotFound when id has no slot.
	GetSlot(ctx context.Context, id string) (Slot, error)
	// PutSlot inserts or replaces a slot. The store computes the checksum and
	// signature, and keeps CreatedAt from the first put.
	PutSlot(ctx context.Context, slot Slot) error
	// DeleteSlot returns ErrNotFound when id has no slot.
	DeleteSlot(ctx context.Context, id string) error
	// ListSlots returns up to limit slots ordered by id, optionally narrowed
	// by an AIP-160 filter over slot_id, ticks, bank, cookies_baked and
	// updated_at.
	ListSlots(ctx context.Context, filter string, limit int) ([]Slot, error)
}
