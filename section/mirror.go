package section

import (
	"encoding/json"
	"fmt"
)

// Split breaks a section value into the per-key payloads stored by the local
// mirror. Each payload is the bare list, matching what the browser client kept
// in localStorage.
func Split(v Value) (map[string]json.RawMessage, error) {
	v = normalize(v)
	parts := make(map[string]any)
	switch s := v.(type) {
	case MoodSection:
		parts[MirrorKeyMood] = s.Entries
	case KicksSection:
		parts[MirrorKeyKicks] = s.Sessions
	case ContractionsSection:
		parts[MirrorKeyContractions] = s.Entries
	case AppointmentsSection:
		parts[MirrorKeyAppointments] = s.Entries
	case BabyPrepSection:
		parts[MirrorKeyHospitalBag] = s.HospitalBag
		parts[MirrorKeyNurseryChecklist] = s.Nursery
	case RemindersSection:
		parts[MirrorKeyReminders] = s.Entries
	default:
		return nil, fmt.Errorf("%w: unsupported section %T", ErrValidation, v)
	}

	out := make(map[string]json.RawMessage, len(parts))
	for key, list := range parts {
		data, err := json.Marshal(list)
		if err != nil {
			return nil, fmt.Errorf("failed to encode %s: %w", key, err)
		}
		out[key] = data
	}
	return out, nil
}

// Join rebuilds a section value from mirror payloads. Missing keys yield
// empty lists.
func Join(kind Kind, parts map[string]json.RawMessage) (Value, error) {
	decode := func(key string, dst any) error {
		raw, ok := parts[key]
		if !ok || len(raw) == 0 {
			return nil
		}
		if err := json.Unmarshal(raw, dst); err != nil {
			return fmt.Errorf("%w: mirror key %s: %v", ErrValidation, key, err)
		}
		return nil
	}

	var (
		v   Value
		err error
	)
	switch kind {
	case KindMood:
		var s MoodSection
		err = decode(MirrorKeyMood, &s.Entries)
		v = s
	case KindKicks:
		var s KicksSection
		err = decode(MirrorKeyKicks, &s.Sessions)
		v = s
	case KindContractions:
		var s ContractionsSection
		err = decode(MirrorKeyContractions, &s.Entries)
		v = s
	case KindAppointments:
		var s AppointmentsSection
		err = decode(MirrorKeyAppointments, &s.Entries)
		v = s
	case KindBabyPrep:
		var s BabyPrepSection
		if err = decode(MirrorKeyHospitalBag, &s.HospitalBag); err == nil {
			err = decode(MirrorKeyNurseryChecklist, &s.Nursery)
		}
		v = s
	case KindReminders:
		var s RemindersSection
		err = decode(MirrorKeyReminders, &s.Entries)
		v = s
	default:
		return nil, fmt.Errorf("%w: unknown data type %q", ErrValidation, kind)
	}
	if err != nil {
		return nil, err
	}
	return normalize(v), nil
}

// documentFields maps each mirror key to the field of the stored document
// that carries the same list.
var documentFields = map[string]string{
	MirrorKeyMood:             "entries",
	MirrorKeyKicks:            "sessions",
	MirrorKeyContractions:     "entries",
	MirrorKeyAppointments:     "entries",
	MirrorKeyHospitalBag:      "hospitalBag",
	MirrorKeyNurseryChecklist: "nursery",
	MirrorKeyReminders:        "entries",
}

// UnsetKeys reports which mirror keys of kind have no list in the stored
// document raw. A null list counts as unset, an empty one does not.
func UnsetKeys(kind Kind, raw []byte) (map[string]bool, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("%w: decode %s: %v", ErrValidation, kind, err)
	}
	unset := make(map[string]bool)
	for _, key := range kind.MirrorKeys() {
		v, ok := fields[documentFields[key]]
		if !ok || string(v) == "null" {
			unset[key] = true
		}
	}
	return unset, nil
}
