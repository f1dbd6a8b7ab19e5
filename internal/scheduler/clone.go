package scheduler

import "github.com/julianstephens/weekendly/internal/models"

func cloneActivity(a models.Activity) models.Activity {
	out := a
	if a.Mood != nil {
		out.Mood = append([]models.Mood(nil), a.Mood...)
	}
	if a.Tags != nil {
		out.Tags = append([]string(nil), a.Tags...)
	}
	if a.Location != nil {
		loc := *a.Location
		out.Location = &loc
	}
	return out
}

func cloneRecord(r models.ScheduledActivity) models.ScheduledActivity {
	out := r
	out.Activity = cloneActivity(r.Activity)
	return out
}

func cloneAll(items []models.ScheduledActivity) []models.ScheduledActivity {
	out := make([]models.ScheduledActivity, len(items))
	for i, it := range items {
		out[i] = cloneRecord(it)
	}
	return out
}
