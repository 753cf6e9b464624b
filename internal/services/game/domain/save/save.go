// Package save converts game states to and from persistent records.
//
// A record holds only primary fields. Content is stored by catalog id and
// resolved again on restore, and derived production is recomputed.
package save

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"

	apperrors "github.com/louisbranch/cookieclicker/internal/platform/errors"
	"github.com/louisbranch/cookieclicker/internal/services/game/domain/buff"
	"github.com/louisbranch/cookieclicker/internal/services/game/domain/building"
	"github.com/louisbranch/cookieclicker/internal/services/game/domain/catalog"
	"github.com/louisbranch/cookieclicker/internal/services/game/domain/clicker"
	coreencoding "github.com/louisbranch/cookieclicker/internal/services/game/domain/core/encoding"
	"github.com/louisbranch/cookieclicker/internal/services/game/domain/pricing"
	"github.com/louisbranch/cookieclicker/internal/services/game/domain/upgrade"
)

// Version is the record format written by Capture.
const Version = 1

// ErrUnsupportedVersion indicates a record written by an unknown format.
var ErrUnsupportedVersion = apperrors.New(apperrors.CodeSaveVersionUnsupported, "unsupported save record version")

// Record is the persistent form of a game state.
type Record struct {
	Version         int            `json:"version"`
	Pricing         pricing.Config `json:"pricing"`
	Ticks           int64          `json:"ticks"`
	Bank            float64        `json:"bank"`
	Inventory       map[string]int `json:"inventory"`
	Upgrades        []string       `json:"upgrades"`
	Buffs           []BuffRecord   `json:"buffs"`
	ClickingRate    float64        `json:"clicking_rate"`
	CookiesBaked    float64        `json:"cookies_baked"`
	HandmadeCookies float64        `json:"handmade_cookies"`
	CookieClicks    float64        `json:"cookie_clicks"`
}

// BuffRecord stores an active buff by catalog id with its timers.
type BuffRecord struct {
	ID        string `json:"id"`
	TimeLeft  int64  `json:"time_left"`
	TimeTotal int64  `json:"time_total"`
}

// Capture records the primary fields of s.
func Capture(s clicker.State) Record {
	inventory := make(map[string]int)
	for t, count := range s.Inventory() {
		inventory[t.ID] = count
	}
	upgrades := make([]string, 0)
	for _, u := range s.Upgrades() {
		upgrades = append(upgrades, u.ID)
	}
	buffs := make([]BuffRecord, 0)
	for _, b := range s.ActiveBuffs() {
		buffs = append(buffs, BuffRecord{ID: b.ID, TimeLeft: b.TimeLeft, TimeTotal: b.TimeTotal})
	}
	return Record{
		Version:         Version,
		Pricing:         s.Pricing(),
		Ticks:           s.Ticks(),
		Bank:            s.Bank(),
		Inventory:       inventory,
		Upgrades:        upgrades,
		Buffs:           buffs,
		ClickingRate:    s.ClickingRate(),
		CookiesBaked:    s.CookiesBaked(),
		HandmadeCookies: s.HandmadeCookies(),
		CookieClicks:    s.CookieClicks(),
	}
}

// Restore rebuilds the state r describes, resolving content against c.
func Restore(r Record, c *catalog.Catalog) (clicker.State, error) {
	if r.Version != Version {
		return clicker.State{}, ErrUnsupportedVersion.Detail(map[string]string{"Version": strconv.Itoa(r.Version)})
	}
	ids := make([]string, 0, len(r.Inventory))
	for id := range r.Inventory {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	inventory := make(map[building.Type]int, len(r.Inventory))
	for _, id := range ids {
		t, err := c.Building(id)
		if err != nil {
			return clicker.State{}, err
		}
		inventory[t] = r.Inventory[id]
	}
	upgrades := make([]*upgrade.Upgrade, 0, len(r.Upgrades))
	for _, id := range r.Upgrades {
		u, err := c.Upgrade(id)
		if err != nil {
			return clicker.State{}, err
		}
		upgrades = append(upgrades, u)
	}
	buffs := make([]*buff.Buff, 0, len(r.Buffs))
	for _, br := range r.Buffs {
		b, err := c.RestoreBuff(br.ID, br.TimeLeft, br.TimeTotal)
		if err != nil {
			return clicker.State{}, err
		}
		buffs = append(buffs, b)
	}
	return clicker.New(clicker.Params{
		Pricing:         r.Pricing,
		Ticks:           r.Ticks,
		Bank:            r.Bank,
		Inventory:       inventory,
		Upgrades:        upgrades,
		Buffs:           buffs,
		ClickingRate:    r.ClickingRate,
		CookiesBaked:    r.CookiesBaked,
		HandmadeCookies: r.HandmadeCookies,
		CookieClicks:    r.CookieClicks,
	})
}

// Marshal encodes r as canonical JSON.
func Marshal(r Record) ([]byte, error) {
	return coreencoding.CanonicalJSON(r)
}

// Unmarshal decodes a record, rejecting unknown fields.
func Unmarshal(data []byte) (Record, error) {
	var r Record
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&r); err != nil {
		return Record{}, fmt.Errorf("decode save record: %w", err)
	}
	return r, nil
}

// Checksum returns the content hash of r.
func (r Record) Checksum() (string, error) {
	return coreencoding.ContentHash(r)
}
