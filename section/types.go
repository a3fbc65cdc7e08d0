package section

import (
	"time"
)

// Value is one of the concrete section types. The set is closed.
type Value interface {
	Kind() Kind
	// Updated returns the server-assigned lastUpdated stamp, if any
	Updated() *time.Time
	stamped(t time.Time) Value
}

// Stamp returns a copy of v carrying t as its lastUpdated instant
func Stamp(v Value, t time.Time) Value {
	return v.stamped(t.UTC())
}

// Mood is a recorded mood value
type Mood string

const (
	MoodHappy    Mood = "happy"
	MoodCalm     Mood = "calm"
	MoodSad      Mood = "sad"
	MoodAnxious  Mood = "anxious"
	MoodTired    Mood = "tired"
	MoodAngry    Mood = "angry"
	MoodNauseous Mood = "nauseous"
	MoodExcited  Mood = "excited"
)

// Moods lists every valid mood
var Moods = []Mood{MoodHappy, MoodCalm, MoodSad, MoodAnxious, MoodTired, MoodAngry, MoodNauseous, MoodExcited}

// MoodEntry is a single day's mood record
type MoodEntry struct {
	Date      string    `json:"date" validate:"required,datetime=2006-01-02"`
	Mood      Mood      `json:"mood" validate:"required,oneof=happy calm sad anxious tired angry nauseous excited"`
	Notes     string    `json:"notes"`
	Timestamp time.Time `json:"timestamp"`
}

// MoodSection holds mood entries, newest date first
type MoodSection struct {
	Entries     []MoodEntry `json:"entries" validate:"dive"`
	LastUpdated *time.Time  `json:"lastUpdated,omitempty"`
}

func (MoodSection) Kind() Kind { return KindMood }
func (s MoodSection) Updated() *time.Time { return s.LastUpdated }
func (s MoodSection) stamped(t time.Time) Value {
	s.LastUpdated = &t
	return s
}

// Kick is one recorded fetal movement. SessionTime is the number of seconds
// elapsed in the counting session when the kick happened.
type Kick struct {
	Time        time.Time `json:"time" validate:"required"`
	SessionTime int       `json:"sessionTime" validate:"gte=0"`
}

// KickSession groups the kicks of one calendar day. Duration is the largest
// SessionTime seen that day.
type KickSession struct {
	Date     string `json:"date" validate:"required,datetime=2006-01-02"`
	Kicks    []Kick `json:"kicks" validate:"dive"`
	Duration int    `json:"duration" validate:"gte=0"`
}

// KicksSection holds kick sessions, newest day first
type KicksSection struct {
	Sessions    []KickSession `json:"sessions" validate:"dive"`
	LastUpdated *time.Time    `json:"lastUpdated,omitempty"`
}

func (KicksSection) Kind() Kind { return KindKicks }
func (s KicksSection) Updated() *time.Time { return s.LastUpdated }
func (s KicksSection) stamped(t time.Time) Value {
	s.LastUpdated = &t
	return s
}

// Contraction is one timed contraction. Duration is in seconds.
type Contraction struct {
	StartTime time.Time `json:"startTime" validate:"required"`
	EndTime   time.Time `json:"endTime" validate:"required,gtefield=StartTime"`
	Duration  int       `json:"duration" validate:"gte=0"`
}

// ContractionsSection is an append-only log of contractions
type ContractionsSection struct {
	Entries     []Contraction `json:"entries" validate:"dive"`
	LastUpdated *time.Time    `json:"lastUpdated,omitempty"`
}

func (ContractionsSection) Kind() Kind { return KindContractions }
func (s ContractionsSection) Updated() *time.Time { return s.LastUpdated }
func (s ContractionsSection) stamped(t time.Time) Value {
	s.LastUpdated = &t
	return s
}

// AppointmentType categorizes an appointment
type AppointmentType string

const (
	AppointmentRoutine      AppointmentType = "routine"
	AppointmentUltrasound   AppointmentType = "ultrasound"
	AppointmentLab          AppointmentType = "lab"
	AppointmentConsultation AppointmentType = "consultation"
	AppointmentOther        AppointmentType = "other"
)

// Appointment is a scheduled prenatal visit
type Appointment struct {
	ID        string          `json:"id" validate:"required"`
	Date      string          `json:"date" validate:"required,datetime=2006-01-02"`
	Time      string          `json:"time" validate:"omitempty,datetime=15:04"`
	Type      AppointmentType `json:"type" validate:"required,oneof=routine ultrasound lab consultation other"`
	Provider  string          `json:"provider"`
	Location  string          `json:"location"`
	Notes     string          `json:"notes"`
	Questions []string        `json:"questions"`
	CreatedAt time.Time       `json:"createdAt"`
}

// AppointmentsSection holds appointments keyed by id
type AppointmentsSection struct {
	Entries     []Appointment `json:"entries" validate:"dive"`
	LastUpdated *time.Time    `json:"lastUpdated,omitempty"`
}

func (AppointmentsSection) Kind() Kind { return KindAppointments }
func (s AppointmentsSection) Updated() *time.Time { return s.LastUpdated }
func (s AppointmentsSection) stamped(t time.Time) Value {
	s.LastUpdated = &t
	return s
}

// ChecklistList names one of the two checklists inside babyPrep
type ChecklistList string

const (
	ListHospitalBag ChecklistList = "hospitalBag"
	ListNursery     ChecklistList = "nursery"
)

// ParseChecklistList validates a checklist list name
func ParseChecklistList(s string) (ChecklistList, bool) {
	switch ChecklistList(s) {
	case ListHospitalBag, ListNursery:
		return ChecklistList(s), true
	}
	return "", false
}

// ChecklistItem is one checkable line of a checklist category
type ChecklistItem struct {
	ID      int    `json:"id" validate:"gte=1"`
	Text    string `json:"text" validate:"required"`
	Checked bool   `json:"checked"`
}

// ChecklistCategory groups checklist items under a title, which is its key
type ChecklistCategory struct {
	Category string          `json:"category" validate:"required"`
	Items    []ChecklistItem `json:"items" validate:"dive"`
}

// BabyPrepSection holds the hospital bag and nursery checklists
type BabyPrepSection struct {
	HospitalBag []ChecklistCategory `json:"hospitalBag" validate:"dive"`
	Nursery     []ChecklistCategory `json:"nursery" validate:"dive"`
	LastUpdated *time.Time          `json:"lastUpdated,omitempty"`
}

func (BabyPrepSection) Kind() Kind { return KindBabyPrep }
func (s BabyPrepSection) Updated() *time.Time { return s.LastUpdated }
func (s BabyPrepSection) stamped(t time.Time) Value {
	s.LastUpdated = &t
	return s
}

// List returns the categories of the named checklist
func (s BabyPrepSection) List(list ChecklistList) []ChecklistCategory {
	if list == ListNursery {
		return s.Nursery
	}
	return s.HospitalBag
}

// Reminder is a recurring daily reminder. Times are "HH:MM".
type Reminder struct {
	ID      int      `json:"id" validate:"gte=1"`
	Type    string   `json:"type" validate:"required"`
	Enabled bool     `json:"enabled"`
	Times   []string `json:"times" validate:"dive,datetime=15:04"`
}

// RemindersSection holds reminders keyed by id
type RemindersSection struct {
	Entries     []Reminder `json:"entries" validate:"dive"`
	LastUpdated *time.Time `json:"lastUpdated,omitempty"`
}

func (RemindersSection) Kind() Kind { return KindReminders }
func (s RemindersSection) Updated() *time.Time { return s.LastUpdated }
func (s RemindersSection) stamped(t time.Time) Value {
	s.LastUpdated = &t
	return s
}
