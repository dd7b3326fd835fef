// Package planning contains the pure scheduling engine: succession date
// generation, upcoming task and shopping list aggregation, and reminder
// computation. Every operation works on caller-supplied snapshots and shares
// no mutable state, so calls are safe to run concurrently.
package planning

import (
	"fmt"
	"time"

	"github.com/samletnorge/assist/catalog"
)

type Status string

const (
	StatusPlanned   Status = "Planned"
	StatusPlanted   Status = "Planted"
	StatusGrowing   Status = "Growing"
	StatusHarvested Status = "Harvested"
)

// statusOrder fixes the lifecycle order; transitions only move forward.
var statusOrder = map[Status]int{
	StatusPlanned:   0,
	StatusPlanted:   1,
	StatusGrowing:   2,
	StatusHarvested: 3,
}

func ParseStatus(s string) (Status, error) {
	st := Status(s)
	if _, ok := statusOrder[st]; !ok {
		return "", fmt.Errorf("%w: invalid status %q", catalog.ErrInvalidInput, s)
	}
	return st, nil
}

// CanTransitionTo reports whether next is a forward move in the lifecycle.
func (s Status) CanTransitionTo(next Status) bool {
	a, ok := statusOrder[s]
	b, ok2 := statusOrder[next]
	return ok && ok2 && b > a
}

// PlantingItem is one scheduled sowing. The engine never creates or deletes
// items; it only reads snapshots handed in by the store.
type PlantingItem struct {
	ID                  string
	Crop                string
	Variety             string
	PlantingDate        time.Time
	ExpectedHarvestDate time.Time
	ActualHarvestDate   *time.Time
	Quantity            int
	Status              Status
}

// HarvestDate is the actual harvest date when recorded, otherwise the
// expected one.
func (p PlantingItem) HarvestDate() time.Time {
	if p.ActualHarvestDate != nil {
		return *p.ActualHarvestDate
	}
	return p.ExpectedHarvestDate
}
