package section

import (
	"sort"
	"time"
)

// LabourStatus is labour progress derived from recent contractions
type LabourStatus string

const (
	LabourEarly       LabourStatus = "early"
	LabourProgressing LabourStatus = "progressing"
	LabourActive      LabourStatus = "active"
)

var labourMessages = map[LabourStatus]map[Language]string{
	LabourEarly: {
		LangEnglish: "Your contractions are irregular. Continue timing them.",
		LangSwahili: "Mikazo yako haijawa ya kawaida. Endelea kuhesabu.",
	},
	LabourProgressing: {
		LangEnglish: "Your contractions are becoming more regular. Keep timing them.",
		LangSwahili: "Mikazo yako inakuwa ya kawaida zaidi. Endelea kuhesabu.",
	},
	LabourActive: {
		LangEnglish: "Your contractions are getting closer together. You may want to prepare to go to your chosen hospital.",
		LangSwahili: "Mikazo yako inakaribia zaidi. Unaweza kutayarisha kwenda hospitalini.",
	},
}

// ContractionAnalysis summarizes the most recent contractions
type ContractionAnalysis struct {
	AvgIntervalMinutes float64      `json:"avgInterval"`
	AvgDurationMinutes float64      `json:"avgDuration"`
	Status             LabourStatus `json:"status"`
	Message            string       `json:"message"`
	Count              int          `json:"count"`
}

// AnalyzeContractions looks at the last five contractions by start time.
// It needs at least two contractions to compute an interval.
func AnalyzeContractions(s ContractionsSection, lang Language) (ContractionAnalysis, bool) {
	if len(s.Entries) < 2 {
		return ContractionAnalysis{}, false
	}

	entries := make([]Contraction, len(s.Entries))
	copy(entries, s.Entries)
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].StartTime.Before(entries[j].StartTime)
	})
	if len(entries) > 5 {
		entries = entries[len(entries)-5:]
	}

	var intervalSum, durationSum float64
	for i, c := range entries {
		durationSum += float64(c.Duration)
		if i > 0 {
			intervalSum += c.StartTime.Sub(entries[i-1].StartTime).Minutes()
		}
	}
	avgInterval := intervalSum / float64(len(entries)-1)
	avgDuration := durationSum / float64(len(entries)) / 60

	status := LabourEarly
	switch {
	case avgInterval <= 5 && avgDuration >= 0.5:
		status = LabourActive
	case avgInterval <= 10 && avgDuration >= 0.5:
		status = LabourProgressing
	}

	return ContractionAnalysis{
		AvgIntervalMinutes: avgInterval,
		AvgDurationMinutes: avgDuration,
		Status:             status,
		Message:            labourMessages[status][ParseLanguage(string(lang))],
		Count:              len(entries),
	}, true
}

// KickPattern classifies the average spacing of recent kicks
type KickPattern string

const (
	KickPatternActive KickPattern = "active"
	KickPatternNormal KickPattern = "normal"
	KickPatternQuiet  KickPattern = "quiet"
)

var quietKicksMessage = map[Language]string{
	LangEnglish: "Your baby's movements seem quieter than usual. If you're concerned, contact your healthcare provider.",
	LangSwahili: "Harakati za mtoto wako zinaonekana kimya kuliko kawaida. Ikiwa una wasiwasi, wasiliana na mhudumu wako wa afya.",
}

// KickInsights summarizes recent fetal movement
type KickInsights struct {
	TotalToday         int         `json:"totalToday"`
	AvgIntervalMinutes float64     `json:"avgInterval"`
	Pattern            KickPattern `json:"pattern"`
	Warning            string      `json:"warning,omitempty"`
}

// DayKey returns the UTC calendar date of t as YYYY-MM-DD
func DayKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// AllKicks flattens every session into one list ordered by kick time
func AllKicks(s KicksSection) []Kick {
	var kicks []Kick
	for _, session := range s.Sessions {
		kicks = append(kicks, session.Kicks...)
	}
	sort.SliceStable(kicks, func(i, j int) bool {
		return kicks[i].Time.Before(kicks[j].Time)
	})
	return kicks
}

// AnalyzeKicks needs at least five kicks and averages the spacing of the last ten
func AnalyzeKicks(s KicksSection, now time.Time, lang Language) (KickInsights, bool) {
	kicks := AllKicks(s)
	if len(kicks) < 5 {
		return KickInsights{}, false
	}

	today := DayKey(now)
	totalToday := 0
	for _, k := range kicks {
		if DayKey(k.Time) == today {
			totalToday++
		}
	}

	recent := kicks
	if len(recent) > 10 {
		recent = recent[len(recent)-10:]
	}
	var sum float64
	for i := 1; i < len(recent); i++ {
		sum += recent[i].Time.Sub(recent[i-1].Time).Minutes()
	}
	avg := sum / float64(len(recent)-1)

	insights := KickInsights{
		TotalToday:         totalToday,
		AvgIntervalMinutes: avg,
	}
	switch {
	case avg < 5:
		insights.Pattern = KickPatternActive
	case avg < 15:
		insights.Pattern = KickPatternNormal
	default:
		insights.Pattern = KickPatternQuiet
		insights.Warning = quietKicksMessage[ParseLanguage(string(lang))]
	}
	return insights, true
}

var moodLabels = map[Mood]map[Language]string{
	MoodHappy:    {LangEnglish: "Happy", LangSwahili: "Furaha"},
	MoodCalm:     {LangEnglish: "Calm", LangSwahili: "Utulivu"},
	MoodSad:      {LangEnglish: "Sad", LangSwahili: "Huzuni"},
	MoodAnxious:  {LangEnglish: "Anxious", LangSwahili: "Wasiwasi"},
	MoodTired:    {LangEnglish: "Tired", LangSwahili: "Uchovu"},
	MoodAngry:    {LangEnglish: "Frustrated", LangSwahili: "Hasira"},
	MoodNauseous: {LangEnglish: "Nauseous", LangSwahili: "Kichefuchefu"},
	MoodExcited:  {LangEnglish: "Excited", LangSwahili: "Msisimko"},
}

// MoodLabel returns the display label of a mood
func MoodLabel(m Mood, lang Language) string {
	if labels, ok := moodLabels[m]; ok {
		return labels[ParseLanguage(string(lang))]
	}
	return string(m)
}

// MoodInsights reports the most frequent mood of the past week
type MoodInsights struct {
	MostCommon Mood `json:"mostCommon"`
	Count      int  `json:"count"`
	Total      int  `json:"total"`
}

// AnalyzeMoods needs at least three entries and looks at the seven newest.
// Ties go to the mood seen most recently.
func AnalyzeMoods(s MoodSection) (MoodInsights, bool) {
	if len(s.Entries) < 3 {
		return MoodInsights{}, false
	}

	entries := make([]MoodEntry, len(s.Entries))
	copy(entries, s.Entries)
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Date > entries[j].Date
	})
	if len(entries) > 7 {
		entries = entries[:7]
	}

	counts := make(map[Mood]int)
	var order []Mood
	for _, e := range entries {
		if counts[e.Mood] == 0 {
			order = append(order, e.Mood)
		}
		counts[e.Mood]++
	}

	best := order[0]
	for _, m := range order[1:] {
		if counts[m] > counts[best] {
			best = m
		}
	}
	return MoodInsights{MostCommon: best, Count: counts[best], Total: len(entries)}, true
}
