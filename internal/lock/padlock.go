package lock

import (
	"fmt"
	"time"
)

// Padlock is the kind of lock fastened to a restriction slot. The set is closed:
// every evaluator switch handles all values and treats anything else as a
// programming error.
type Padlock int

const (
	None Padlock = iota
	Metal
	FiveMinutes
	TimerPassword
	Combination
	Password
	Owner
	OwnerTimer
	Devotional
	DevotionalTimer
	Mimic
)

// FiveMinutesDuration is the fixed lifetime of a FiveMinutes padlock.
const FiveMinutesDuration = 5 * time.Minute

var padlockNames = map[Padlock]string{
	None:            "None",
	Metal:           "MetalPadlock",
	FiveMinutes:     "FiveMinutesPadlock",
	TimerPassword:   "TimerPasswordPadlock",
	Combination:     "CombinationPadlock",
	Password:        "PasswordPadlock",
	Owner:           "OwnerPadlock",
	OwnerTimer:      "OwnerTimerPadlock",
	Devotional:      "DevotionalPadlock",
	DevotionalTimer: "DevotionalTimerPadlock",
	Mimic:           "MimicPadlock",
}

func (p Padlock) String() string {
	if name, ok := padlockNames[p]; ok {
		return name
	}
	return fmt.Sprintf("Padlock(%d)", int(p))
}

// Valid reports whether p is a member of the closed set.
func (p Padlock) Valid() bool {
	_, ok := padlockNames[p]
	return ok
}

// ParsePadlock maps a wire name back to its padlock.
func ParsePadlock(name string) (Padlock, error) {
	for p, n := range padlockNames {
		if n == name {
			return p, nil
		}
	}
	return None, fmt.Errorf("unknown padlock %q", name)
}

func (p Padlock) MarshalText() ([]byte, error) {
	if !p.Valid() {
		return nil, fmt.Errorf("unknown padlock %d", int(p))
	}
	return []byte(p.String()), nil
}

func (p *Padlock) UnmarshalText(text []byte) error {
	parsed, err := ParsePadlock(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// IsTrivial padlocks unlock for anyone: they either expire on their own or are
// released by client automation.
func (p Padlock) IsTrivial() bool {
	return p == Metal || p == FiveMinutes || p == Mimic
}

// IsPassword padlocks unlock only with the stored password.
func (p Padlock) IsPassword() bool {
	return p == Combination || p == Password || p == TimerPassword
}

func (p Padlock) IsOwner() bool {
	return p == Owner || p == OwnerTimer
}

func (p Padlock) IsDevotional() bool {
	return p == Devotional || p == DevotionalTimer
}

// IsTimed padlocks carry an expiry.
func (p Padlock) IsTimed() bool {
	switch p {
	case FiveMinutes, TimerPassword, OwnerTimer, DevotionalTimer:
		return true
	}
	return false
}
