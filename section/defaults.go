package section

// Language is a UI language code
type Language string

const (
	LangEnglish Language = "en"
	LangSwahili Language = "sw"
)

// ParseLanguage falls back to English for anything other than "sw"
func ParseLanguage(s string) Language {
	if Language(s) == LangSwahili {
		return LangSwahili
	}
	return LangEnglish
}

type reminderTemplate struct {
	id    int
	kind  string
	times []string
	label map[Language]string
}

var reminderTemplates = []reminderTemplate{
	{1, "water", []string{"08:00", "10:00", "12:00", "14:00", "16:00", "18:00", "20:00"},
		map[Language]string{LangEnglish: "Drink Water", LangSwahili: "Kunywa Maji"}},
	{2, "vitamins", []string{"09:00"},
		map[Language]string{LangEnglish: "Take Prenatal Vitamins", LangSwahili: "Chukua Vitamini za Ujauzito"}},
	{3, "stretch", []string{"10:00", "15:00"},
		map[Language]string{LangEnglish: "Gentle Stretches", LangSwahili: "Kujinyosha Kwa Upole"}},
	{4, "meals", []string{"08:00", "13:00", "19:00"},
		map[Language]string{LangEnglish: "Eat Regular Meals", LangSwahili: "Kula Mlo wa Kawaida"}},
	{5, "rest", []string{"14:00"},
		map[Language]string{LangEnglish: "Rest Break", LangSwahili: "Mapumziko"}},
	{6, "kicks", []string{"20:00"},
		map[Language]string{LangEnglish: "Count Baby Kicks", LangSwahili: "Hesabu Vuguvugu vya Mtoto"}},
}

// DefaultReminders returns the six built-in reminders, all enabled
func DefaultReminders() RemindersSection {
	entries := make([]Reminder, 0, len(reminderTemplates))
	for _, t := range reminderTemplates {
		times := make([]string, len(t.times))
		copy(times, t.times)
		entries = append(entries, Reminder{ID: t.id, Type: t.kind, Enabled: true, Times: times})
	}
	return RemindersSection{Entries: entries}
}

// ReminderLabel returns the display label of a reminder type
func ReminderLabel(kind string, lang Language) string {
	for _, t := range reminderTemplates {
		if t.kind == kind {
			return t.label[lang]
		}
	}
	return kind
}

type checklistTemplate struct {
	category string
	items    []string
}

var hospitalBagTemplates = map[Language][]checklistTemplate{
	LangEnglish: {
		{"For You", []string{
			"Comfortable clothes (2-3 sets)",
			"Nursing bras",
			"Maternity pads",
			"Toiletries",
			"Phone charger",
			"Snacks",
			"Comfortable shoes",
			"Going-home outfit",
		}},
		{"For Baby", []string{
			"Newborn clothes (3-4 sets)",
			"Diapers",
			"Baby wipes",
			"Blanket",
			"Going-home outfit",
			"Car seat (installed)",
		}},
		{"Important Documents", []string{
			"ID/Passport",
			"Insurance card",
			"Birth plan",
			"Hospital forms",
			"Emergency contacts",
		}},
	},
	LangSwahili: {
		{"Kwa Wewe", []string{
			"Nguo za starehe (seti 2-3)",
			"Suti za kunyonyesha",
			"Ped za ujauzito",
			"Vifaa vya bafuni",
			"Chaja ya simu",
			"Vitafunio",
			"Viatu vya starehe",
			"Nguo za kurudi nyumbani",
		}},
		{"Kwa Mtoto", []string{
			"Nguo za mzazi mchanga (seti 3-4)",
			"Nguo za mtoto",
			"Maji ya kusafisha",
			"Blanketi",
			"Nguo za kurudi nyumbani",
			"Kiti cha gari (kimewekwa)",
		}},
		{"Nyaraka Muhimu", []string{
			"Kitambulisho/Pasipoti",
			"Kadi ya bima",
			"Mpango wa kuzaliwa",
			"Fomu za hospitali",
			"Nambari za dharura",
		}},
	},
}

var nurseryTemplates = map[Language][]checklistTemplate{
	LangEnglish: {
		{"Sleeping", []string{"Crib or bassinet", "Mattress", "Fitted sheets (2-3)", "Swaddles/blankets", "Sleep sack"}},
		{"Feeding", []string{"Bottles (if bottle-feeding)", "Bottle warmer", "Breast pump (if needed)", "Burp cloths", "Nursing pillow"}},
		{"Diapering", []string{"Changing table or pad", "Diapers", "Wipes", "Diaper rash cream", "Diaper pail"}},
		{"Safety", []string{"Baby monitor", "Outlet covers", "Corner guards", "First aid kit", "Thermometer"}},
		{"Comfort", []string{"Rocking chair", "Storage bins", "Night light", "Sound machine", "Clothes organized"}},
	},
	LangSwahili: {
		{"Kulala", []string{"Kitanda cha mtoto au kitanda kidogo", "Godoro", "Shuka za kitanda (2-3)", "Blanketi", "Mfuko wa kulala"}},
		{"Kulisha", []string{"Chupa (ikiwa unalisha chupa)", "Jiko la kupasha chupa", "Pampu ya maziwa (ikiwa inahitajika)", "Nguo za kufutia", "Mto wa kunyonyesha"}},
		{"Kubadilisha Nguo", []string{"Meza ya kubadilisha au pedi", "Nguo za mtoto", "Maji ya kusafisha", "Krimu ya kuvimba", "Pipa la nguo za mtoto"}},
		{"Usalama", []string{"Kifuatiliaji cha mtoto", "Vifuniko vya soketi", "Vikinga vya pembe", "Sanduku la dawa za kwanza", "Kipima joto"}},
		{"Starehe", []string{"Kiti cha kusukuma", "Masanduku ya kuhifadhi", "Taa ya usiku", "Mashine ya sauti", "Nguo zimepangwa"}},
	},
}

func buildChecklist(templates []checklistTemplate) []ChecklistCategory {
	out := make([]ChecklistCategory, 0, len(templates))
	for _, t := range templates {
		items := make([]ChecklistItem, 0, len(t.items))
		for idx, text := range t.items {
			items = append(items, ChecklistItem{ID: idx + 1, Text: text})
		}
		out = append(out, ChecklistCategory{Category: t.category, Items: items})
	}
	return out
}

// DefaultChecklist returns the unchecked default categories of list in lang
func DefaultChecklist(list ChecklistList, lang Language) []ChecklistCategory {
	if list == ListNursery {
		return buildChecklist(nurseryTemplates[ParseLanguage(string(lang))])
	}
	return buildChecklist(hospitalBagTemplates[ParseLanguage(string(lang))])
}

// DefaultBabyPrep returns both default checklists in lang
func DefaultBabyPrep(lang Language) BabyPrepSection {
	return BabyPrepSection{
		HospitalBag: DefaultChecklist(ListHospitalBag, lang),
		Nursery:     DefaultChecklist(ListNursery, lang),
	}
}
