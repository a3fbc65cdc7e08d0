// Package section defines the typed user-data sections shared by the server
// and the companion client, together with the pure codec functions that merge
// updates into them.
package section

import (
	"errors"
	"fmt"
)

// Kind identifies one section of a user's data document
type Kind string

const (
	KindMood         Kind = "mood"
	KindKicks        Kind = "kicks"
	KindContractions Kind = "contractions"
	KindAppointments Kind = "appointments"
	KindBabyPrep     Kind = "babyPrep"
	KindReminders    Kind = "reminders"
)

// Local mirror keys
const (
	MirrorKeyMood             = "moodHistory"
	MirrorKeyKicks            = "kickHistory"
	MirrorKeyContractions     = "contractionHistory"
	MirrorKeyAppointments     = "appointments"
	MirrorKeyHospitalBag      = "hospitalBag"
	MirrorKeyNurseryChecklist = "nurseryChecklist"
	MirrorKeyReminders        = "reminders"
)

var (
	// ErrValidation is returned when a payload is malformed or violates a field rule
	ErrValidation = errors.New("validation failed")

	// ErrNotFound is returned when an update targets an element that does not exist
	ErrNotFound = errors.New("element not found")
)

var allKinds = []Kind{
	KindMood,
	KindKicks,
	KindContractions,
	KindAppointments,
	KindBabyPrep,
	KindReminders,
}

var mirrorKeys = map[Kind][]string{
	KindMood:         {MirrorKeyMood},
	KindKicks:        {MirrorKeyKicks},
	KindContractions: {MirrorKeyContractions},
	KindAppointments: {MirrorKeyAppointments},
	KindBabyPrep:     {MirrorKeyHospitalBag, MirrorKeyNurseryChecklist},
	KindReminders:    {MirrorKeyReminders},
}

// Kinds returns every known section kind in a stable order
func Kinds() []Kind {
	out := make([]Kind, len(allKinds))
	copy(out, allKinds)
	return out
}

// ParseKind converts a wire dataType into a Kind
func ParseKind(s string) (Kind, error) {
	k := Kind(s)
	if _, ok := mirrorKeys[k]; !ok {
		return "", fmt.Errorf("%w: unknown data type %q", ErrValidation, s)
	}
	return k, nil
}

// Valid reports whether k is one of the known kinds
func (k Kind) Valid() bool {
	_, ok := mirrorKeys[k]
	return ok
}

// MirrorKeys returns the local mirror keys that hold this section.
// babyPrep is split across two keys.
func (k Kind) MirrorKeys() []string {
	keys := mirrorKeys[k]
	out := make([]string, len(keys))
	copy(out, keys)
	return out
}

func (k Kind) String() string {
	return string(k)
}
