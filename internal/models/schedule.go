package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/weekendly/internal/constants"
)

type Day string

const (
	DayFriday   Day = "friday"
	DaySaturday Day = "saturday"
	DaySunday   Day = "sunday"
	DayMonday   Day = "monday"
)

// Days lists the plannable days in calendar order. Saturday and Sunday are
// the primary days; Friday and Monday extend a long weekend.
var Days = []Day{DayFriday, DaySaturday, DaySunday, DayMonday}

// PrimaryDays are the two days every weekend plan covers
var PrimaryDays = []Day{DaySaturday, DaySunday}

type TimeSlot string

// TimeSlots is the fixed, chronologically ordered set of hourly slot labels
var TimeSlots = []TimeSlot{
	"6am", "7am", "8am", "9am", "10am", "11am",
	"12pm", "1pm", "2pm", "3pm", "4pm", "5pm",
	"6pm", "7pm", "8pm", "9pm", "10pm", "11pm",
}

// firstSlotHour is the clock hour of TimeSlots[0]
const firstSlotHour = 6

var slotIndex = func() map[TimeSlot]int {
	idx := make(map[TimeSlot]int, len(TimeSlots))
	for i, s := range TimeSlots {
		idx[s] = i
	}
	return idx
}()

// ParseDay resolves a day name case-insensitively. Three-letter
// abbreviations are accepted.
func ParseDay(s string) (Day, bool) {
	norm := strings.ToLower(strings.TrimSpace(s))
	for _, d := range Days {
		if string(d) == norm || (len(norm) == 3 && strings.HasPrefix(string(d), norm)) {
			return d, true
		}
	}
	return "", false
}

func (d Day) Valid() bool {
	for _, known := range Days {
		if d == known {
			return true
		}
	}
	return false
}

// Index returns the calendar position of the day within Days, or -1
func (d Day) Index() int {
	for i, known := range Days {
		if d == known {
			return i
		}
	}
	return -1
}

// Weekday maps the planning day onto time.Weekday
func (d Day) Weekday() time.Weekday {
	switch d {
	case DayFriday:
		return time.Friday
	case DaySaturday:
		return time.Saturday
	case DaySunday:
		return time.Sunday
	default:
		return time.Monday
	}
}

// ParseTimeSlot resolves a slot label. It accepts the canonical labels
// ("10am") as well as "10 AM" and 24-hour "14:00".
func ParseTimeSlot(s string) (TimeSlot, bool) {
	norm := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(s), " ", ""))
	if _, ok := slotIndex[TimeSlot(norm)]; ok {
		return TimeSlot(norm), true
	}
	if t, err := time.Parse(constants.TimeFormat, norm); err == nil && t.Minute() == 0 {
		i := t.Hour() - firstSlotHour
		if i >= 0 && i < len(TimeSlots) {
			return TimeSlots[i], true
		}
	}
	return "", false
}

func (s TimeSlot) Valid() bool {
	_, ok := slotIndex[s]
	return ok
}

// Index returns the chronological position of the slot, or -1 when unknown
func (s TimeSlot) Index() int {
	i, ok := slotIndex[s]
	if !ok {
		return -1
	}
	return i
}

// Minutes returns the slot start as minutes from midnight
func (s TimeSlot) Minutes() int {
	i := s.Index()
	if i < 0 {
		return 0
	}
	return (firstSlotHour + i) * 60
}

// ScheduledActivity is an Activity placed at a day and time slot
type ScheduledActivity struct {
	ScheduledID string    `json:"scheduledId"`
	Activity    Activity  `json:"activity"`
	Day         Day       `json:"day"`
	TimeSlot    TimeSlot  `json:"timeSlot"`
	Completed   bool      `json:"completed"`
	SortKey     int       `json:"sortKey"` // presentation order within a day; 0 means unranked
	CreatedAt   time.Time `json:"createdAt"`
}

// StartTime is the clock time of the slot (HH:MM)
func (s ScheduledActivity) StartTime() string {
	return formatMinutes(s.TimeSlot.Minutes())
}

// EndTime is StartTime plus the activity duration, wrapped to a 24h clock
func (s ScheduledActivity) EndTime() string {
	return formatMinutes(s.TimeSlot.Minutes() + s.Activity.DurationMin)
}

// EndsNextDay reports whether the activity runs past midnight
func (s ScheduledActivity) EndsNextDay() bool {
	return s.TimeSlot.Minutes()+s.Activity.DurationMin >= 24*60
}

func (s ScheduledActivity) MarshalJSON() ([]byte, error) {
	type alias ScheduledActivity
	return json.Marshal(struct {
		alias
		StartTime string `json:"startTime"`
		EndTime   string `json:"endTime"`
	}{
		alias:     alias(s),
		StartTime: s.StartTime(),
		EndTime:   s.EndTime(),
	})
}

func formatMinutes(minutes int) string {
	minutes %= 24 * 60
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}
