package scheduler

import "github.com/julianstephens/weekendly/internal/models"

// DaySummary aggregates one day of the plan
type DaySummary struct {
	Day          models.Day        `json:"day"`
	Count        int               `json:"count"`
	Completed    int               `json:"completed"`
	TotalMinutes int               `json:"totalMinutes"`
	MaxPrice     models.PriceLevel `json:"maxPrice,omitempty"`
}

// Summary aggregates the whole plan
type Summary struct {
	Days         []DaySummary      `json:"days"`
	Count        int               `json:"count"`
	Completed    int               `json:"completed"`
	TotalMinutes int               `json:"totalMinutes"`
	MaxPrice     models.PriceLevel `json:"maxPrice,omitempty"`
}

// Summary reports per-day and overall counts, minutes and the most
// expensive price level in the plan. Days without activities are omitted.
func (e *Engine) Summary() Summary {
	e.mu.Lock()
	defer e.mu.Unlock()

	var sum Summary
	for _, day := range models.Days {
		ds := DaySummary{Day: day}
		for _, it := range e.items {
			if it.Day != day {
				continue
			}
			ds.Count++
			ds.TotalMinutes += it.Activity.DurationMin
			if it.Completed {
				ds.Completed++
			}
			if it.Activity.Price.Rank() > ds.MaxPrice.Rank() {
				ds.MaxPrice = it.Activity.Price
			}
		}
		if ds.Count == 0 {
			continue
		}
		sum.Days = append(sum.Days, ds)
		sum.Count += ds.Count
		sum.Completed += ds.Completed
		sum.TotalMinutes += ds.TotalMinutes
		if ds.MaxPrice.Rank() > sum.MaxPrice.Rank() {
			sum.MaxPrice = ds.MaxPrice
		}
	}
	return sum
}
