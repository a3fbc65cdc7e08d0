package syncengine

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"uzazi-salama-backend/section"
)

// KeyActiveContraction holds the start of the contraction being timed
const KeyActiveContraction = "activeContraction"

// SaveMood records or replaces the mood entry for entry.Date
func (e *Engine) SaveMood(ctx context.Context, sc SyncContext, entry section.MoodEntry) (Written, error) {
	if entry.Timestamp.IsZero() {
		entry.Timestamp = e.now().UTC()
	}
	if entry.Date == "" {
		entry.Date = section.DayKey(entry.Timestamp)
	}
	if err := section.ValidateEntry(entry); err != nil {
		return Written{}, err
	}
	return e.mutate(ctx, sc, section.KindMood, false, func(v section.Value) (section.Value, error) {
		return section.UpsertMood(v.(section.MoodSection), entry), nil
	})
}

// DeleteMood removes the mood entry for date
func (e *Engine) DeleteMood(ctx context.Context, sc SyncContext, date string) (Written, error) {
	return e.mutate(ctx, sc, section.KindMood, false, func(v section.Value) (section.Value, error) {
		return section.RemoveMood(v.(section.MoodSection), date), nil
	})
}

// RecordKick adds a kick to the session of its UTC calendar day
func (e *Engine) RecordKick(ctx context.Context, sc SyncContext, kick section.Kick) (Written, error) {
	if kick.Time.IsZero() {
		kick.Time = e.now().UTC()
	}
	if err := section.ValidateEntry(kick); err != nil {
		return Written{}, err
	}
	day := section.DayKey(kick.Time)
	return e.mutate(ctx, sc, section.KindKicks, false, func(v section.Value) (section.Value, error) {
		return section.AppendKick(v.(section.KicksSection), day, kick), nil
	})
}

// SaveContraction appends a timed contraction. A zero Duration is derived
// from the start and end times.
func (e *Engine) SaveContraction(ctx context.Context, sc SyncContext, c section.Contraction) (Written, error) {
	if c.Duration == 0 && c.EndTime.After(c.StartTime) {
		c.Duration = int(c.EndTime.Sub(c.StartTime) / time.Second)
	}
	if err := section.ValidateEntry(c); err != nil {
		return Written{}, err
	}
	return e.mutate(ctx, sc, section.KindContractions, false, func(v section.Value) (section.Value, error) {
		return section.AppendContraction(v.(section.ContractionsSection), c), nil
	})
}

type activeContraction struct {
	StartTime time.Time `json:"startTime"`
}

// StartContraction marks the start of a contraction on the device. Starting
// again replaces the pending start.
func (e *Engine) StartContraction(ctx context.Context, sc SyncContext, at time.Time) error {
	if sc.Local == nil {
		return errNoMirror
	}
	if at.IsZero() {
		at = e.now()
	}
	data, err := json.Marshal(activeContraction{StartTime: at.UTC()})
	if err != nil {
		return err
	}
	return sc.Local.Write(ctx, KeyActiveContraction, data)
}

// ActiveContraction returns the pending contraction start, if any
func (e *Engine) ActiveContraction(ctx context.Context, sc SyncContext) (time.Time, bool, error) {
	if sc.Local == nil {
		return time.Time{}, false, errNoMirror
	}
	raw, ok, err := sc.Local.Read(ctx, KeyActiveContraction)
	if err != nil || !ok {
		return time.Time{}, false, err
	}
	var active activeContraction
	if err := json.Unmarshal(raw, &active); err != nil {
		return time.Time{}, false, fmt.Errorf("%w: %s: %v", section.ErrValidation, KeyActiveContraction, err)
	}
	return active.StartTime, true, nil
}

// StopContraction ends the pending contraction at at and saves it
func (e *Engine) StopContraction(ctx context.Context, sc SyncContext, at time.Time) (Written, error) {
	start, ok, err := e.ActiveContraction(ctx, sc)
	if err != nil {
		return Written{}, err
	}
	if !ok {
		return Written{}, ErrNoActiveContraction
	}
	if at.IsZero() {
		at = e.now()
	}

	written, err := e.SaveContraction(ctx, sc, section.Contraction{StartTime: start, EndTime: at.UTC()})
	if err != nil {
		return Written{}, err
	}
	if err := sc.Local.Clear(ctx, KeyActiveContraction); err != nil {
		return written, err
	}
	return written, nil
}

// CreateAppointment stores a new appointment with a generated id. A remote
// failure is returned rather than absorbed.
func (e *Engine) CreateAppointment(ctx context.Context, sc SyncContext, a section.Appointment) (Written, error) {
	a.ID = e.newID()
	if a.CreatedAt.IsZero() {
		a.CreatedAt = e.now().UTC()
	}
	if a.Type == "" {
		a.Type = section.AppointmentRoutine
	}
	if err := section.ValidateEntry(a); err != nil {
		return Written{}, err
	}
	return e.mutate(ctx, sc, section.KindAppointments, true, func(v section.Value) (section.Value, error) {
		return section.UpsertAppointment(v.(section.AppointmentsSection), a), nil
	})
}

// UpdateAppointment replaces an existing appointment, keeping its creation time
func (e *Engine) UpdateAppointment(ctx context.Context, sc SyncContext, a section.Appointment) (Written, error) {
	if err := section.ValidateEntry(a); err != nil {
		return Written{}, err
	}
	return e.mutate(ctx, sc, section.KindAppointments, true, func(v section.Value) (section.Value, error) {
		s := v.(section.AppointmentsSection)
		existing, ok := section.FindAppointment(s, a.ID)
		if !ok {
			return nil, fmt.Errorf("%w: appointment %s", section.ErrNotFound, a.ID)
		}
		a.CreatedAt = existing.CreatedAt
		return section.UpsertAppointment(s, a), nil
	})
}

// DeleteAppointment removes the appointment with id
func (e *Engine) DeleteAppointment(ctx context.Context, sc SyncContext, id string) (Written, error) {
	return e.mutate(ctx, sc, section.KindAppointments, true, func(v section.Value) (section.Value, error) {
		return section.RemoveAppointment(v.(section.AppointmentsSection), id), nil
	})
}

// SaveChecklist replaces or inserts one category of a checklist
func (e *Engine) SaveChecklist(ctx context.Context, sc SyncContext, list section.ChecklistList, category section.ChecklistCategory) (Written, error) {
	if err := section.ValidateEntry(category); err != nil {
		return Written{}, err
	}
	return e.mutate(ctx, sc, section.KindBabyPrep, false, func(v section.Value) (section.Value, error) {
		return section.UpsertChecklist(v.(section.BabyPrepSection), list, category), nil
	})
}

// ToggleChecklistItem flips one checklist item
func (e *Engine) ToggleChecklistItem(ctx context.Context, sc SyncContext, list section.ChecklistList, category string, itemID int) (Written, error) {
	return e.mutate(ctx, sc, section.KindBabyPrep, false, func(v section.Value) (section.Value, error) {
		return section.ToggleChecklistItem(v.(section.BabyPrepSection), list, category, itemID)
	})
}

// SaveReminder replaces or inserts a reminder
func (e *Engine) SaveReminder(ctx context.Context, sc SyncContext, r section.Reminder) (Written, error) {
	if err := section.ValidateEntry(r); err != nil {
		return Written{}, err
	}
	return e.mutate(ctx, sc, section.KindReminders, false, func(v section.Value) (section.Value, error) {
		return section.UpsertReminder(v.(section.RemindersSection), r), nil
	})
}

// ToggleReminder flips the enabled flag of a reminder
func (e *Engine) ToggleReminder(ctx context.Context, sc SyncContext, id int) (Written, error) {
	return e.mutate(ctx, sc, section.KindReminders, false, func(v section.Value) (section.Value, error) {
		return section.ToggleReminder(v.(section.RemindersSection), id)
	})
}

// Moods reads the mood section
func (e *Engine) Moods(ctx context.Context, sc SyncContext) (section.MoodSection, Source, error) {
	return readAs[section.MoodSection](ctx, e, sc, section.KindMood)
}

// Kicks reads the kicks section
func (e *Engine) Kicks(ctx context.Context, sc SyncContext) (section.KicksSection, Source, error) {
	return readAs[section.KicksSection](ctx, e, sc, section.KindKicks)
}

// Contractions reads the contractions section
func (e *Engine) Contractions(ctx context.Context, sc SyncContext) (section.ContractionsSection, Source, error) {
	return readAs[section.ContractionsSection](ctx, e, sc, section.KindContractions)
}

// Appointments reads the appointments section
func (e *Engine) Appointments(ctx context.Context, sc SyncContext) (section.AppointmentsSection, Source, error) {
	return readAs[section.AppointmentsSection](ctx, e, sc, section.KindAppointments)
}

// BabyPrep reads both checklists
func (e *Engine) BabyPrep(ctx context.Context, sc SyncContext) (section.BabyPrepSection, Source, error) {
	return readAs[section.BabyPrepSection](ctx, e, sc, section.KindBabyPrep)
}

// Reminders reads the reminders section
func (e *Engine) Reminders(ctx context.Context, sc SyncContext) (section.RemindersSection, Source, error) {
	return readAs[section.RemindersSection](ctx, e, sc, section.KindReminders)
}

func readAs[T section.Value](ctx context.Context, e *Engine, sc SyncContext, kind section.Kind) (T, Source, error) {
	var zero T
	snap, err := e.Read(ctx, sc, kind)
	if err != nil {
		return zero, 0, err
	}
	v, ok := snap.Value.(T)
	if !ok {
		return zero, 0, fmt.Errorf("unexpected %s value %T", kind, snap.Value)
	}
	return v, snap.Source, nil
}
