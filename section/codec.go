package section

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
)

// Default returns the empty value for a kind
func Default(kind Kind) Value {
	switch kind {
	case KindMood:
		return MoodSection{Entries: []MoodEntry{}}
	case KindKicks:
		return KicksSection{Sessions: []KickSession{}}
	case KindContractions:
		return ContractionsSection{Entries: []Contraction{}}
	case KindAppointments:
		return AppointmentsSection{Entries: []Appointment{}}
	case KindBabyPrep:
		return BabyPrepSection{HospitalBag: []ChecklistCategory{}, Nursery: []ChecklistCategory{}}
	case KindReminders:
		return RemindersSection{Entries: []Reminder{}}
	}
	return nil
}

// Decode parses a stored or transmitted payload into the kind's typed value.
// An empty or null payload decodes to the default.
func Decode(kind Kind, raw []byte) (Value, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: unknown data type %q", ErrValidation, kind)
	}
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return Default(kind), nil
	}

	var (
		v   Value
		err error
	)
	switch kind {
	case KindMood:
		var s MoodSection
		err = json.Unmarshal(trimmed, &s)
		v = s
	case KindKicks:
		var s KicksSection
		err = json.Unmarshal(trimmed, &s)
		v = s
	case KindContractions:
		var s ContractionsSection
		err = json.Unmarshal(trimmed, &s)
		v = s
	case KindAppointments:
		var s AppointmentsSection
		err = json.Unmarshal(trimmed, &s)
		v = s
	case KindBabyPrep:
		var s BabyPrepSection
		err = json.Unmarshal(trimmed, &s)
		v = s
	case KindReminders:
		var s RemindersSection
		err = json.Unmarshal(trimmed, &s)
		v = s
	}
	if err != nil {
		return nil, fmt.Errorf("%w: decode %s: %v", ErrValidation, kind, err)
	}
	return normalize(v), nil
}

// Encode serializes a section value for storage or transport
func Encode(v Value) (json.RawMessage, error) {
	if v == nil {
		return nil, fmt.Errorf("%w: nil section", ErrValidation)
	}
	data, err := json.Marshal(normalize(v))
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s: %w", v.Kind(), err)
	}
	return data, nil
}

// normalize replaces nil lists with empty ones so values never encode as null
func normalize(v Value) Value {
	switch s := v.(type) {
	case MoodSection:
		if s.Entries == nil {
			s.Entries = []MoodEntry{}
		}
		return s
	case KicksSection:
		if s.Sessions == nil {
			s.Sessions = []KickSession{}
		}
		for i := range s.Sessions {
			if s.Sessions[i].Kicks == nil {
				s.Sessions[i].Kicks = []Kick{}
			}
		}
		return s
	case ContractionsSection:
		if s.Entries == nil {
			s.Entries = []Contraction{}
		}
		return s
	case AppointmentsSection:
		if s.Entries == nil {
			s.Entries = []Appointment{}
		}
		entries := make([]Appointment, len(s.Entries))
		for i, a := range s.Entries {
			if a.Questions == nil {
				a.Questions = []string{}
			}
			entries[i] = a
		}
		s.Entries = entries
		return s
	case BabyPrepSection:
		if s.HospitalBag == nil {
			s.HospitalBag = []ChecklistCategory{}
		}
		if s.Nursery == nil {
			s.Nursery = []ChecklistCategory{}
		}
		return s
	case RemindersSection:
		if s.Entries == nil {
			s.Entries = []Reminder{}
		}
		return s
	}
	return v
}

// UpsertByKey returns a copy of items in which the element whose key equals
// keyOf(item) is replaced by item, or item is appended when no element matches.
func UpsertByKey[T any, K comparable](items []T, item T, keyOf func(T) K) []T {
	key := keyOf(item)
	out := make([]T, 0, len(items)+1)
	replaced := false
	for _, it := range items {
		if !replaced && keyOf(it) == key {
			out = append(out, item)
			replaced = true
			continue
		}
		out = append(out, it)
	}
	if !replaced {
		out = append(out, item)
	}
	return out
}

// RemoveByKey returns a copy of items without the elements whose key equals key.
// Removing a key that is not present yields a copy equal to the input.
func RemoveByKey[T any, K comparable](items []T, key K, keyOf func(T) K) []T {
	out := make([]T, 0, len(items))
	for _, it := range items {
		if keyOf(it) == key {
			continue
		}
		out = append(out, it)
	}
	return out
}

func moodKey(e MoodEntry) string { return e.Date }
func sessionKey(s KickSession) string { return s.Date }
func appointmentKey(a Appointment) string { return a.ID }
func categoryKey(c ChecklistCategory) string { return c.Category }
func reminderKey(r Reminder) int { return r.ID }
func checklistItemKey(i ChecklistItem) int { return i.ID }

// UpsertMood replaces or inserts the entry for entry.Date and keeps entries
// ordered newest date first.
func UpsertMood(s MoodSection, entry MoodEntry) MoodSection {
	s.Entries = UpsertByKey(s.Entries, entry, moodKey)
	sort.SliceStable(s.Entries, func(i, j int) bool {
		return s.Entries[i].Date > s.Entries[j].Date
	})
	return s
}

// RemoveMood drops the entry for date
func RemoveMood(s MoodSection, date string) MoodSection {
	s.Entries = RemoveByKey(s.Entries, date, moodKey)
	return s
}

// AppendKick adds kick to the session for dayKey, creating the session if
// needed, and raises the session duration to the kick's session time.
func AppendKick(s KicksSection, dayKey string, kick Kick) KicksSection {
	session := KickSession{Date: dayKey, Kicks: []Kick{}}
	for _, existing := range s.Sessions {
		if existing.Date == dayKey {
			session = existing
			break
		}
	}

	kicks := make([]Kick, 0, len(session.Kicks)+1)
	kicks = append(kicks, session.Kicks...)
	session.Kicks = append(kicks, kick)
	if kick.SessionTime > session.Duration {
		session.Duration = kick.SessionTime
	}

	s.Sessions = UpsertByKey(s.Sessions, session, sessionKey)
	sort.SliceStable(s.Sessions, func(i, j int) bool {
		return s.Sessions[i].Date > s.Sessions[j].Date
	})
	return s
}

// AppendContraction appends c to the log
func AppendContraction(s ContractionsSection, c Contraction) ContractionsSection {
	entries := make([]Contraction, 0, len(s.Entries)+1)
	entries = append(entries, s.Entries...)
	s.Entries = append(entries, c)
	return s
}

// UpsertAppointment replaces or inserts the appointment with a.ID
func UpsertAppointment(s AppointmentsSection, a Appointment) AppointmentsSection {
	s.Entries = UpsertByKey(s.Entries, a, appointmentKey)
	return s
}

// RemoveAppointment drops the appointment with id
func RemoveAppointment(s AppointmentsSection, id string) AppointmentsSection {
	s.Entries = RemoveByKey(s.Entries, id, appointmentKey)
	return s
}

// FindAppointment returns the appointment with id
func FindAppointment(s AppointmentsSection, id string) (Appointment, bool) {
	for _, a := range s.Entries {
		if a.ID == id {
			return a, true
		}
	}
	return Appointment{}, false
}

// UpsertChecklist replaces or inserts category in the named checklist
func UpsertChecklist(s BabyPrepSection, list ChecklistList, category ChecklistCategory) BabyPrepSection {
	if list == ListNursery {
		s.Nursery = UpsertByKey(s.Nursery, category, categoryKey)
	} else {
		s.HospitalBag = UpsertByKey(s.HospitalBag, category, categoryKey)
	}
	return s
}

// ToggleChecklistItem flips the checked flag of one item
func ToggleChecklistItem(s BabyPrepSection, list ChecklistList, category string, itemID int) (BabyPrepSection, error) {
	for _, c := range s.List(list) {
		if c.Category != category {
			continue
		}
		for _, item := range c.Items {
			if item.ID != itemID {
				continue
			}
			item.Checked = !item.Checked
			updated := ChecklistCategory{
				Category: c.Category,
				Items:    UpsertByKey(c.Items, item, checklistItemKey),
			}
			return UpsertChecklist(s, list, updated), nil
		}
		return s, fmt.Errorf("%w: item %d in %q", ErrNotFound, itemID, category)
	}
	return s, fmt.Errorf("%w: category %q in %s", ErrNotFound, category, list)
}

// ChecklistProgress returns the rounded percentage of checked items in list
func ChecklistProgress(categories []ChecklistCategory) int {
	total, checked := 0, 0
	for _, c := range categories {
		for _, item := range c.Items {
			total++
			if item.Checked {
				checked++
			}
		}
	}
	if total == 0 {
		return 0
	}
	return (checked*100 + total/2) / total
}

// UpsertReminder replaces or inserts the reminder with r.ID
func UpsertReminder(s RemindersSection, r Reminder) RemindersSection {
	s.Entries = UpsertByKey(s.Entries, r, reminderKey)
	return s
}

// ToggleReminder flips the enabled flag of the reminder with id
func ToggleReminder(s RemindersSection, id int) (RemindersSection, error) {
	for _, r := range s.Entries {
		if r.ID == id {
			r.Enabled = !r.Enabled
			return UpsertReminder(s, r), nil
		}
	}
	return s, fmt.Errorf("%w: reminder %d", ErrNotFound, id)
}
