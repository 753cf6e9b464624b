// Package buff defines time-limited production buffs and their countdown.
//
// A buff is active while TimeLeft is positive. Warping it to zero or below
// expires it for good; expired buffs are dropped, never stored.
package buff

import (
	"strconv"
	"strings"

	apperrors "github.com/louisbranch/cookieclicker/internal/platform/errors"
	"github.com/louisbranch/cookieclicker/internal/services/game/domain/effect"
)

var (
	// ErrRequired indicates a missing buff reference.
	ErrRequired = apperrors.New(apperrors.CodeBuffRequired, "buff is required")
	// ErrInvalidTimer indicates timers outside 0 < timeLeft <= timeTotal.
	ErrInvalidTimer = apperrors.New(apperrors.CodeBuffInvalidTimer, "buff timers must satisfy 0 < time left <= time total")
	// ErrNegativeWarp indicates a countdown by a negative number of ticks.
	ErrNegativeWarp = apperrors.New(apperrors.CodeBuffWarpNegative, "buff cannot be warped by negative ticks")
)

// Buff is an active production modifier with a countdown in ticks.
type Buff struct {
	ID        string
	TimeLeft  int64
	TimeTotal int64
	Effects   []effect.Effect
}

// New creates an active buff.
func New(id string, timeLeft, timeTotal int64, effects ...effect.Effect) (*Buff, error) {
	b := &Buff{
		ID:        strings.TrimSpace(id),
		TimeLeft:  timeLeft,
		TimeTotal: timeTotal,
		Effects:   append([]effect.Effect(nil), effects...),
	}
	if err := b.Validate(); err != nil {
		return nil, err
	}
	return b, nil
}

// Validate checks that b is a well-formed active buff.
func (b *Buff) Validate() error {
	if b == nil {
		return ErrRequired
	}
	if b.TimeTotal <= 0 || b.TimeLeft <= 0 || b.TimeLeft > b.TimeTotal {
		return ErrInvalidTimer.Detail(map[string]string{
			"TimeLeft":  strconv.FormatInt(b.TimeLeft, 10),
			"TimeTotal": strconv.FormatInt(b.TimeTotal, 10),
		})
	}
	return nil
}

// Warp counts b down by dt ticks. It returns the advanced buff and true while
// time remains, or nil and false once the buff has expired.
func (b *Buff) Warp(dt int64) (*Buff, bool, error) {
	if b == nil {
		return nil, false, ErrRequired
	}
	if dt < 0 {
		return nil, false, ErrNegativeWarp
	}
	left := b.TimeLeft - dt
	if left <= 0 {
		return nil, false, nil
	}
	next := *b
	next.TimeLeft = left
	return &next, true, nil
}

// Advance warps every buff by dt and returns the survivors in their original
// order. The input slice is not modified.
func Advance(buffs []*Buff, dt int64) ([]*Buff, error) {
	if dt < 0 {
		return nil, ErrNegativeWarp
	}
	survivors := make([]*Buff, 0, len(buffs))
	for _, b := range buffs {
		next, ok, err := b.Warp(dt)
		if err != nil {
			return nil, err
		}
		if ok {
			survivors = append(survivors, next)
		}
	}
	return survivors, nil
}

// Horizon returns the smallest TimeLeft among buffs, or false when none are
// active.
func Horizon(buffs []*Buff) (int64, bool) {
	var (
		shortest int64
		found    bool
	)
	for _, b := range buffs {
		if b == nil || b.TimeLeft <= 0 {
			continue
		}
		if !found || b.TimeLeft < shortest {
			shortest = b.TimeLeft
			found = true
		}
	}
	return shortest, found
}

// Effects returns the effects of every active buff in order.
func Effects(buffs []*Buff) []effect.Effect {
	var out []effect.Effect
	for _, b := range buffs {
		if b == nil || b.TimeLeft <= 0 {
			continue
		}
		out = append(out, b.Effects...)
	}
	return out
}
