package section

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultDecodesToEmptyLists(t *testing.T) {
	for _, kind := range Kinds() {
		v, err := Decode(kind, nil)
		require.NoError(t, err)
		assert.Equal(t, kind, v.Kind())

		raw, err := Encode(v)
		require.NoError(t, err)
		assert.NotContains(t, string(raw), "null", kind)
	}
}

func TestDecodeRejectsUnknownKindAndMalformedPayload(t *testing.T) {
	_, err := Decode(Kind("diary"), []byte(`{}`))
	assert.ErrorIs(t, err, ErrValidation)

	_, err = Decode(KindMood, []byte(`{"entries": "nope"}`))
	assert.ErrorIs(t, err, ErrValidation)
}

func TestParseKind(t *testing.T) {
	k, err := ParseKind("babyPrep")
	require.NoError(t, err)
	assert.Equal(t, KindBabyPrep, k)
	assert.Equal(t, []string{MirrorKeyHospitalBag, MirrorKeyNurseryChecklist}, k.MirrorKeys())

	_, err = ParseKind("BabyPrep")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestUpsertByKeyDoesNotMutateInput(t *testing.T) {
	in := []Reminder{{ID: 1, Type: "water"}, {ID: 2, Type: "rest"}}
	out := UpsertByKey(in, Reminder{ID: 2, Type: "meals"}, reminderKey)

	assert.Equal(t, "rest", in[1].Type)
	assert.Equal(t, "meals", out[1].Type)
	assert.Len(t, out, 2)
}

func TestUpsertIsIdempotent(t *testing.T) {
	entry := MoodEntry{Date: "2024-03-02", Mood: MoodCalm, Notes: "slept well"}
	start := MoodSection{Entries: []MoodEntry{{Date: "2024-03-01", Mood: MoodTired}}}

	once := UpsertMood(start, entry)
	twice := UpsertMood(once, entry)
	assert.Equal(t, once, twice)

	appt := Appointment{ID: "a1", Date: "2024-04-01", Type: AppointmentLab}
	a1 := UpsertAppointment(AppointmentsSection{}, appt)
	assert.Equal(t, a1, UpsertAppointment(a1, appt))

	cat := ChecklistCategory{Category: "Safety", Items: []ChecklistItem{{ID: 1, Text: "Baby monitor"}}}
	b1 := UpsertChecklist(BabyPrepSection{}, ListNursery, cat)
	assert.Equal(t, b1, UpsertChecklist(b1, ListNursery, cat))

	r := Reminder{ID: 1, Type: "water", Enabled: true, Times: []string{"08:00"}}
	r1 := UpsertReminder(RemindersSection{}, r)
	assert.Equal(t, r1, UpsertReminder(r1, r))
}

func TestUpsertMoodReplacesSameDateAndOrdersNewestFirst(t *testing.T) {
	s := MoodSection{}
	s = UpsertMood(s, MoodEntry{Date: "2024-03-01", Mood: MoodHappy})
	s = UpsertMood(s, MoodEntry{Date: "2024-03-03", Mood: MoodSad})
	s = UpsertMood(s, MoodEntry{Date: "2024-03-01", Mood: MoodAnxious})

	require.Len(t, s.Entries, 2)
	assert.Equal(t, "2024-03-03", s.Entries[0].Date)
	assert.Equal(t, MoodAnxious, s.Entries[1].Mood)
}

func TestAppendKickAggregatesBySessionDay(t *testing.T) {
	day := "2024-03-05"
	base := time.Date(2024, 3, 5, 9, 0, 0, 0, time.UTC)

	s := AppendKick(KicksSection{}, day, Kick{Time: base, SessionTime: 30})
	s = AppendKick(s, day, Kick{Time: base.Add(15 * time.Second), SessionTime: 45})

	require.Len(t, s.Sessions, 1)
	assert.Len(t, s.Sessions[0].Kicks, 2)
	assert.Equal(t, 45, s.Sessions[0].Duration)

	// a kick with a smaller session time never lowers the duration
	s = AppendKick(s, day, Kick{Time: base.Add(time.Minute), SessionTime: 10})
	assert.Equal(t, 45, s.Sessions[0].Duration)

	s = AppendKick(s, "2024-03-06", Kick{Time: base.Add(24 * time.Hour), SessionTime: 5})
	require.Len(t, s.Sessions, 2)
	assert.Equal(t, "2024-03-06", s.Sessions[0].Date)
}

func TestRemoveMissingKeyIsNoOp(t *testing.T) {
	s := AppointmentsSection{Entries: []Appointment{{ID: "a1", Date: "2024-04-01", Type: AppointmentRoutine}}}
	out := RemoveAppointment(s, "missing")
	assert.Equal(t, s, out)

	out = RemoveAppointment(s, "a1")
	assert.Empty(t, out.Entries)
	assert.Len(t, s.Entries, 1)
}

func TestToggleChecklistItem(t *testing.T) {
	s := DefaultBabyPrep(LangEnglish)

	toggled, err := ToggleChecklistItem(s, ListHospitalBag, "For Baby", 3)
	require.NoError(t, err)

	var cat ChecklistCategory
	for _, c := range toggled.HospitalBag {
		if c.Category == "For Baby" {
			cat = c
		}
	}
	for _, item := range cat.Items {
		assert.Equal(t, item.ID == 3, item.Checked, item.Text)
	}
	assert.False(t, s.HospitalBag[1].Items[2].Checked)

	back, err := ToggleChecklistItem(toggled, ListHospitalBag, "For Baby", 3)
	require.NoError(t, err)
	assert.Equal(t, s, back)

	_, err = ToggleChecklistItem(s, ListNursery, "For Baby", 3)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = ToggleChecklistItem(s, ListHospitalBag, "For Baby", 99)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestChecklistProgress(t *testing.T) {
	cats := []ChecklistCategory{{Category: "x", Items: []ChecklistItem{
		{ID: 1, Text: "a", Checked: true},
		{ID: 2, Text: "b"},
		{ID: 3, Text: "c"},
	}}}
	assert.Equal(t, 33, ChecklistProgress(cats))
	assert.Equal(t, 0, ChecklistProgress(nil))
}

func TestToggleReminder(t *testing.T) {
	s := DefaultReminders()
	out, err := ToggleReminder(s, 2)
	require.NoError(t, err)
	assert.False(t, out.Entries[1].Enabled)
	assert.True(t, s.Entries[1].Enabled)

	_, err = ToggleReminder(s, 42)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestValidate(t *testing.T) {
	good := MoodSection{Entries: []MoodEntry{{Date: "2024-03-01", Mood: MoodHappy}}}
	assert.NoError(t, Validate(good))

	bad := MoodSection{Entries: []MoodEntry{{Date: "2024-03-01", Mood: "grumpy"}}}
	assert.ErrorIs(t, Validate(bad), ErrValidation)

	start := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	backwards := ContractionsSection{Entries: []Contraction{{StartTime: start, EndTime: start.Add(-time.Minute)}}}
	assert.ErrorIs(t, Validate(backwards), ErrValidation)

	assert.ErrorIs(t, ValidateEntry(Appointment{ID: "x", Date: "tomorrow", Type: AppointmentRoutine}), ErrValidation)
	assert.NoError(t, Validate(DefaultReminders()))
	assert.NoError(t, Validate(DefaultBabyPrep(LangSwahili)))
}

func TestStampSetsLastUpdated(t *testing.T) {
	at := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	v := Stamp(Default(KindReminders), at)
	require.NotNil(t, v.Updated())
	assert.True(t, at.Equal(*v.Updated()))

	raw, err := Encode(v)
	require.NoError(t, err)
	var decoded map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Contains(t, decoded, "lastUpdated")
}

func TestSplitJoinRoundTrip(t *testing.T) {
	prep := DefaultBabyPrep(LangSwahili)
	parts, err := Split(prep)
	require.NoError(t, err)
	assert.Len(t, parts, 2)
	assert.Contains(t, parts, MirrorKeyHospitalBag)
	assert.Contains(t, parts, MirrorKeyNurseryChecklist)

	joined, err := Join(KindBabyPrep, parts)
	require.NoError(t, err)
	assert.Equal(t, prep, joined)

	empty, err := Join(KindMood, nil)
	require.NoError(t, err)
	assert.Equal(t, Default(KindMood), empty)
}

func TestDecodeAppointmentQuestions(t *testing.T) {
	raw := []byte(`{"entries":[{"id":"1712345678901","date":"2024-05-10","time":"09:30",
		"type":"ultrasound","provider":"Dr. Achieng","location":"Kenyatta Hospital","notes":"",
		"questions":["How is baby growing?","Is my iron ok?"],"createdAt":"2024-04-01T08:00:00Z"}],
		"lastUpdated":"2024-04-01T08:00:00Z"}`)

	v, err := Decode(KindAppointments, raw)
	require.NoError(t, err)
	require.NoError(t, Validate(v))

	appts := v.(AppointmentsSection)
	require.Len(t, appts.Entries, 1)
	assert.Equal(t, []string{"How is baby growing?", "Is my iron ok?"}, appts.Entries[0].Questions)

	out, err := Encode(AppointmentsSection{Entries: []Appointment{{ID: "a1", Date: "2024-05-10", Type: AppointmentLab}}})
	require.NoError(t, err)
	assert.Contains(t, string(out), `"questions":[]`)
}
