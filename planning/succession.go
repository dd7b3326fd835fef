package planning

import (
	"fmt"
	"time"

	"github.com/samletnorge/assist/catalog"
)

// SuccessionEntry pairs one sowing date with its derived harvest date.
type SuccessionEntry struct {
	PlantingDate time.Time
	HarvestDate  time.Time
}

// SuccessionDates generates the sowing sequence for a crop between start and
// end inclusive: first date at start, stepped by the crop's succession
// interval, last date never past end. Harvest is planting plus the crop's
// days to maturity. start after end yields an empty sequence; a non-positive
// interval or maturity is rejected so the loop can never run away.
func SuccessionDates(crop catalog.Crop, start, end time.Time) ([]SuccessionEntry, error) {
	if crop.SuccessionIntervalDays <= 0 {
		return nil, fmt.Errorf("%w: crop %q has invalid succession interval %d",
			catalog.ErrInvalidInput, crop.Name, crop.SuccessionIntervalDays)
	}
	if crop.DaysToMaturity <= 0 {
		return nil, fmt.Errorf("%w: crop %q has invalid days to maturity %d",
			catalog.ErrInvalidInput, crop.Name, crop.DaysToMaturity)
	}

	entries := []SuccessionEntry{}
	for d := start; !d.After(end); d = d.AddDate(0, 0, crop.SuccessionIntervalDays) {
		entries = append(entries, SuccessionEntry{
			PlantingDate: d,
			HarvestDate:  d.AddDate(0, 0, crop.DaysToMaturity),
		})
	}
	return entries, nil
}
