package app

import "time"

// Clock supplies wall-clock time for settling.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now().UTC() }

// ticksFor converts elapsed into whole ticks at ticksPerSecond and returns the
// time left over. Negative elapsed time yields no ticks and no remainder.
func ticksFor(elapsed time.Duration, ticksPerSecond int64) (int64, time.Duration) {
	if elapsed <= 0 || ticksPerSecond < 1 {
		return 0, 0
	}
	seconds := int64(elapsed / time.Second)
	nanos := int64(elapsed % time.Second)
	partial := nanos * ticksPerSecond
	ticks := seconds*ticksPerSecond + partial/int64(time.Second)
	rest := time.Duration((partial % int64(time.Second)) / ticksPerSecond)
	return ticks, rest
}
