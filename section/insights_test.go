package section

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func contractionsEvery(start time.Time, interval time.Duration, durationSec, n int) ContractionsSection {
	var s ContractionsSection
	for i := 0; i < n; i++ {
		st := start.Add(time.Duration(i) * interval)
		s = AppendContraction(s, Contraction{
			StartTime: st,
			EndTime:   st.Add(time.Duration(durationSec) * time.Second),
			Duration:  durationSec,
		})
	}
	return s
}

func TestAnalyzeContractions(t *testing.T) {
	start := time.Date(2024, 5, 1, 2, 0, 0, 0, time.UTC)

	_, ok := AnalyzeContractions(contractionsEvery(start, time.Minute, 40, 1), LangEnglish)
	assert.False(t, ok)

	tests := []struct {
		name     string
		interval time.Duration
		duration int
		want     LabourStatus
	}{
		{"close and long", 4 * time.Minute, 60, LabourActive},
		{"regular", 8 * time.Minute, 45, LabourProgressing},
		{"far apart", 20 * time.Minute, 60, LabourEarly},
		{"short", 3 * time.Minute, 20, LabourEarly},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := AnalyzeContractions(contractionsEvery(start, tt.interval, tt.duration, 7), LangSwahili)
			require.True(t, ok)
			assert.Equal(t, tt.want, got.Status)
			assert.Equal(t, 5, got.Count)
			assert.InDelta(t, tt.interval.Minutes(), got.AvgIntervalMinutes, 0.001)
			assert.NotEmpty(t, got.Message)
		})
	}
}

func TestAnalyzeKicks(t *testing.T) {
	now := time.Date(2024, 5, 2, 12, 0, 0, 0, time.UTC)
	var s KicksSection
	for i := 0; i < 4; i++ {
		k := now.Add(-time.Duration(i) * 2 * time.Minute)
		s = AppendKick(s, DayKey(k), Kick{Time: k, SessionTime: i * 120})
	}
	_, ok := AnalyzeKicks(s, now, LangEnglish)
	assert.False(t, ok)

	yesterday := now.Add(-24 * time.Hour)
	s = AppendKick(s, DayKey(yesterday), Kick{Time: yesterday})

	got, ok := AnalyzeKicks(s, now, LangEnglish)
	require.True(t, ok)
	assert.Equal(t, 4, got.TotalToday)
	assert.Equal(t, KickPatternQuiet, got.Pattern)
	assert.NotEmpty(t, got.Warning)
}

func TestAnalyzeMoods(t *testing.T) {
	s := MoodSection{}
	s = UpsertMood(s, MoodEntry{Date: "2024-05-01", Mood: MoodHappy})
	s = UpsertMood(s, MoodEntry{Date: "2024-05-02", Mood: MoodTired})
	_, ok := AnalyzeMoods(s)
	assert.False(t, ok)

	s = UpsertMood(s, MoodEntry{Date: "2024-05-03", Mood: MoodHappy})
	got, ok := AnalyzeMoods(s)
	require.True(t, ok)
	assert.Equal(t, MoodHappy, got.MostCommon)
	assert.Equal(t, 2, got.Count)
	assert.Equal(t, 3, got.Total)
	assert.Equal(t, "Furaha", MoodLabel(got.MostCommon, LangSwahili))
}

func TestDefaults(t *testing.T) {
	r := DefaultReminders()
	require.Len(t, r.Entries, 6)
	assert.Equal(t, "water", r.Entries[0].Type)
	assert.Len(t, r.Entries[0].Times, 7)
	assert.Equal(t, "Kunywa Maji", ReminderLabel("water", LangSwahili))

	bag := DefaultChecklist(ListHospitalBag, LangEnglish)
	require.Len(t, bag, 3)
	assert.Equal(t, "For You", bag[0].Category)
	assert.Len(t, bag[0].Items, 8)
	assert.Equal(t, 1, bag[0].Items[0].ID)

	nursery := DefaultChecklist(ListNursery, LangSwahili)
	require.Len(t, nursery, 5)
	assert.Equal(t, "Kulala", nursery[0].Category)
}
