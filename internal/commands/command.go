// internal/commands/command.go
// Package commands parses the .commands script format replayed by FauxChat:
//
//	send("Hello!", 3, 250..1000, "justinfan")
//	sleep(1500)
//
// A send posts message count times, waiting delay milliseconds before each
// message. The delay is either a single value or an inclusive range. The
// optional last argument picks the sending user; it defaults to "random".
package commands

import (
	"fmt"
	"math"
	"math/bits"
	"math/rand/v2"
	"strconv"
	"strings"
	"time"
)

// RandomUser is the username that lets the player pick any pooled user
const RandomUser = "random"

// Kind identifies a command
type Kind int

const (
	// KindSend posts a chat message
	KindSend Kind = iota
	// KindSleep pauses playback
	KindSleep
)

func (k Kind) String() string {
	switch k {
	case KindSend:
		return "send"
	case KindSleep:
		return "sleep"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Amount is a millisecond value, either exact or drawn from [Start, End]
type Amount struct {
	Start uint64
	End   uint64
	Range bool
}

// Single returns an exact Amount
func Single(v uint64) Amount {
	return Amount{Start: v, End: v}
}

// Between returns a ranged Amount
func Between(start, end uint64) Amount {
	return Amount{Start: start, End: end, Range: true}
}

// Pick returns the exact value, or a uniform draw from the range
func (a Amount) Pick(r *rand.Rand) uint64 {
	if !a.Range || a.End <= a.Start {
		return a.Start
	}
	return a.Start + r.Uint64N(a.End-a.Start+1)
}

func (a Amount) String() string {
	if a.Range {
		return fmt.Sprintf("%d..%d", a.Start, a.End)
	}
	return strconv.FormatUint(a.Start, 10)
}

// Command is a single parsed line
type Command struct {
	Kind     Kind
	Message  string
	Username string
	Count    uint64
	Delay    Amount
}

// String renders the canonical form of the command
func (c Command) String() string {
	if c.Kind == KindSleep {
		return fmt.Sprintf("sleep(%s)", c.Delay)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "send(%s, %d, %s", strconv.Quote(c.Message), c.Count, c.Delay)
	if c.Username != "" && c.Username != RandomUser {
		fmt.Fprintf(&b, ", %s", strconv.Quote(c.Username))
	}
	b.WriteString(")")
	return b.String()
}

// MaxDuration is where command and script durations saturate
const MaxDuration = time.Duration(math.MaxInt64)

// Bounds returns the shortest and longest time the command can take.
// Totals that do not fit a time.Duration saturate at MaxDuration.
func (c Command) Bounds() (time.Duration, time.Duration) {
	n := uint64(1)
	if c.Kind == KindSend {
		n = c.Count
	}
	return millis(n, c.Delay.Start), millis(n, c.Delay.End)
}

// millis returns n*ms milliseconds, saturating at MaxDuration
func millis(n, ms uint64) time.Duration {
	hi, lo := bits.Mul64(n, ms)
	if hi != 0 || lo > uint64(MaxDuration/time.Millisecond) {
		return MaxDuration
	}
	return time.Duration(lo) * time.Millisecond
}

// addDuration sums two non-negative durations, saturating at MaxDuration
func addDuration(a, b time.Duration) time.Duration {
	if a > MaxDuration-b {
		return MaxDuration
	}
	return a + b
}
