package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/louisbranch/cookieclicker/internal/platform/storage/sqlitemigrate"
	"github.com/louisbranch/cookieclicker/internal/services/game/domain/save"
	"github.com/louisbranch/cookieclicker/internal/services/game/storage"
	"github.com/louisbranch/cookieclicker/internal/services/game/storage/filter"
	"github.com/louisbranch/cookieclicker/internal/services/game/storage/integrity"
	"github.com/louisbranch/cookieclicker/internal/services/game/storage/sqlite/migrations"

	_ "modernc.org/sqlite"
)

const (
	defaultListLimit = 50
	maxListLimit     = 200
)

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

// fromMillis reverses toMillis for persisted millisecond timestamps.
func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// Store is a SQLite-backed storage.SaveStore.
type Store struct {
	sqlDB   *sql.DB
	keyring *integrity.Keyring
	now     func() time.Time
}

var _ storage.SaveStore = (*Store)(nil)

// Option configures a Store.
type Option func(*Store)

// WithKeyring signs every written slot and verifies signed slots on read.
func WithKeyring(keyring *integrity.Keyring) Option {
	return func(s *Store) {
		s.keyring = keyring
	}
}

// WithClock overrides the clock used for slot timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// Open opens the save slot store at path and applies pending migrations.
func Open(ctx context.Context, path string, opts ...Option) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := sqlitemigrate.Apply(ctx, sqlDB, migrations.SlotsFS, "slots"); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	store := &Store{sqlDB: sqlDB, now: time.Now}
	for _, opt := range opts {
		if opt != nil {
			opt(store)
		}
	}
	return store, nil
}

// Close closes the underlying SQLite database. It is nil-safe.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// GetSlot loads a slot and verifies its checksum and signature.
func (s *Store) GetSlot(ctx context.Context, id string) (Slot, error) {
	if err := ctx.Err(); err != nil {
		return Slot{}, err
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return Slot{}, fmt.Errorf("slot id is required")
	}

	row := s.sqlDB.QueryRowContext(ctx, selectSlotSQL+" WHERE slot_id = ?", id)
	slot, err := s.scanSlot(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Slot{}, storage.ErrNotFound
	}
	if err != nil {
		return Slot{}, fmt.Errorf("get slot %s: %w", id, err)
	}
	return slot, nil
}

// PutSlot writes the slot record, replacing any previous save under its id.
func (s *Store) PutSlot(ctx context.Context, slot Slot) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	slot.ID = strings.TrimSpace(slot.ID)
	if slot.ID == "" {
		return fmt.Errorf("slot id is required")
	}

	data, err := save.Marshal(slot.Record)
	if err != nil {
		return fmt.Errorf("encode slot %s: %w", slot.ID, err)
	}
	checksum, err := slot.Record.Checksum()
	if err != nil {
		return fmt.Errorf("checksum slot %s: %w", slot.ID, err)
	}
	var signature, keyID string
	if s.keyring != nil {
		signature, keyID, err = s.keyring.Sign(slot.ID, checksum)
		if err != nil {
			return fmt.Errorf("sign slot %s: %w", slot.ID, err)
		}
	}

	now := toMillis(s.now())
	_, err = s.sqlDB.ExecContext(ctx, `
INSERT INTO save_slots (
    slot_id, record_json, checksum, signature, key_id,
    ticks, bank, cookies_baked, created_at, updated_at
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(slot_id) DO UPDATE SET
    record_json = excluded.record_json,
    checksum = excluded.checksum,
    signature = excluded.signature,
    key_id = excluded.key_id,
    ticks = excluded.ticks,
    bank = excluded.bank,
    cookies_baked = excluded.cookies_baked,
    updated_at = excluded.updated_at
`,
		slot.ID, data, checksum, signature, keyID,
		slot.Record.Ticks, slot.Record.Bank, slot.Record.CookiesBaked, now, now,
	)
	if err != nil {
		return fmt.Errorf("put slot %s: %w", slot.ID, err)
	}
	return nil
}

// DeleteSlot removes a slot.
func (s *Store) DeleteSlot(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	result, err := s.sqlDB.ExecContext(ctx, "DELETE FROM save_slots WHERE slot_id = ?", strings.TrimSpace(id))
	if err != nil {
		return fmt.Errorf("delete slot %s: %w", id, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete slot %s: %w", id, err)
	}
	if affected == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// ListSlots returns slots ordered by id.
func (s *Store) ListSlots(ctx context.Context, filterStr string, limit int) ([]Slot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}

	cond, err := filter.ParseSlotFilter(filterStr)
	if err != nil {
		return nil, fmt.Errorf("invalid filter: %w", err)
	}

	query := selectSlotSQL
	var params []any
	if cond.Clause != "" {
		query += " WHERE " + cond.Clause
		params = append(params, cond.Params...)
	}
	query += " ORDER BY slot_id LIMIT ?"
	params = append(params, limit)

	rows, err := s.sqlDB.QueryContext(ctx, query, params...)
	if err != nil {
		return nil, fmt.Errorf("list slots: %w", err)
	}
	defer rows.Close()

	var slots []Slot
	for rows.Next() {
		slot, err := s.scanSlot(rows)
		if err != nil {
			return nil, fmt.Errorf("list slots: %w", err)
		}
		slots = append(slots, slot)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list slots: %w", err)
	}
	return slots, nil
}

// Slot aliases storage.Slot for brevity inside this package.
type Slot = storage.Slot

const selectSlotSQL = `
SELECT slot_id, record_json, checksum, signature, key_id, created_at, updated_at
FROM save_slots`

type rowScanner interface {
	Scan(dest ...any) error
}

func (s *Store) scanSlot(row rowScanner) (Slot, error) {
	var (
		slot       Slot
		recordJSON []byte
		createdAt  int64
		updatedAt  int64
	)
	if err := row.Scan(&slot.ID, &recordJSON, &slot.Checksum, &slot.Signature, &slot.KeyID, &createdAt, &updatedAt); err != nil {
		return Slot{}, err
	}
	record, err := save.Unmarshal(recordJSON)
	if err != nil {
		return Slot{}, err
	}
	checksum, err := record.Checksum()
	if err != nil {
		return Slot{}, err
	}
	if checksum != slot.Checksum {
		return Slot{}, storage.ErrChecksumMismatch.Detail(map[string]string{"Slot": slot.ID})
	}
	if slot.Signature != "" && s.keyring != nil {
		if err := s.keyring.Verify(slot.ID, slot.Checksum, slot.Signature, slot.KeyID); err != nil {
			return Slot{}, err
		}
	}
	slot.Record = record
	slot.CreatedAt = fromMillis(createdAt)
	slot.UpdatedAt = fromMillis(updatedAt)
	return slot, nil
}
