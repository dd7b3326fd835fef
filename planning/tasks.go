package planning

import (
	"fmt"
	"sort"
	"time"

	"github.com/samletnorge/assist/catalog"
)

// Task is one upcoming planting or harvest action derived from an item.
type Task struct {
	ItemID  string
	Crop    string
	Variety string
	Date    time.Time
	Status  Status
}

// TaskList splits upcoming work into planting and harvest actions.
type TaskList struct {
	Planting []Task
	Harvest  []Task
}

// UpcomingTasks filters items whose planting date or harvest date (actual
// preferred over expected) falls within [reference, reference+horizonDays].
// Both views come back ascending by date, ties broken by item ID so output is
// stable run to run.
func UpcomingTasks(items []PlantingItem, reference time.Time, horizonDays int) (TaskList, error) {
	if horizonDays < 0 {
		return TaskList{}, fmt.Errorf("%w: horizon days must not be negative, got %d",
			catalog.ErrInvalidInput, horizonDays)
	}
	deadline := reference.AddDate(0, 0, horizonDays)
	inWindow := func(d time.Time) bool {
		return !d.Before(reference) && !d.After(deadline)
	}

	list := TaskList{Planting: []Task{}, Harvest: []Task{}}
	for _, item := range items {
		if inWindow(item.PlantingDate) {
			list.Planting = append(list.Planting, Task{
				ItemID:  item.ID,
				Crop:    item.Crop,
				Variety: item.Variety,
				Date:    item.PlantingDate,
				Status:  item.Status,
			})
		}
		if h := item.HarvestDate(); !h.IsZero() && inWindow(h) {
			list.Harvest = append(list.Harvest, Task{
				ItemID:  item.ID,
				Crop:    item.Crop,
				Variety: item.Variety,
				Date:    h,
				Status:  item.Status,
			})
		}
	}
	sortTasks(list.Planting)
	sortTasks(list.Harvest)
	return list, nil
}

func sortTasks(tasks []Task) {
	sort.SliceStable(tasks, func(i, j int) bool {
		if !tasks[i].Date.Equal(tasks[j].Date) {
			return tasks[i].Date.Before(tasks[j].Date)
		}
		return tasks[i].ItemID < tasks[j].ItemID
	})
}

// ShoppingEntry is one (crop, variety) group of a shopping list.
type ShoppingEntry struct {
	Crop          string
	Variety       string
	TotalQuantity int
	PlantingDates []time.Time
}

// ShoppingList groups items by crop and variety, summing quantities and
// collecting each group's distinct planting dates in ascending order. Groups
// come back sorted by crop then variety.
func ShoppingList(items []PlantingItem) []ShoppingEntry {
	type key struct{ crop, variety string }
	groups := map[key]*ShoppingEntry{}
	seen := map[key]map[time.Time]bool{}

	for _, item := range items {
		k := key{item.Crop, item.Variety}
		entry, ok := groups[k]
		if !ok {
			entry = &ShoppingEntry{Crop: item.Crop, Variety: item.Variety}
			groups[k] = entry
			seen[k] = map[time.Time]bool{}
		}
		entry.TotalQuantity += item.Quantity
		if !item.PlantingDate.IsZero() && !seen[k][item.PlantingDate] {
			seen[k][item.PlantingDate] = true
			entry.PlantingDates = append(entry.PlantingDates, item.PlantingDate)
		}
	}

	out := make([]ShoppingEntry, 0, len(groups))
	for _, entry := range groups {
		sort.Slice(entry.PlantingDates, func(i, j int) bool {
			return entry.PlantingDates[i].Before(entry.PlantingDates[j])
		})
		out = append(out, *entry)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Crop != out[j].Crop {
			return out[i].Crop < out[j].Crop
		}
		return out[i].Variety < out[j].Variety
	})
	return out
}
