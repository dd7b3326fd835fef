package catalog

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidInput marks out-of-range months or zones and malformed input.
	ErrInvalidInput = errors.New("invalid input")
	// ErrNotFound marks identifiers that resolve to no record at all. A valid
	// query with zero matches is not an error and never returns this.
	ErrNotFound = errors.New("not found")
)

// Catalog is the crop master loaded at startup. It keeps crops in fixture
// order so every lookup is deterministic, and is never mutated after New.
type Catalog struct {
	crops []Crop
}

func New(crops []Crop) (*Catalog, error) {
	for _, c := range crops {
		if err := c.PlantingStartMonth.Validate(); err != nil {
			return nil, fmt.Errorf("crop %q: %w", c.Name, err)
		}
		if err := c.PlantingEndMonth.Validate(); err != nil {
			return nil, fmt.Errorf("crop %q: %w", c.Name, err)
		}
		if c.DaysToMaturity <= 0 {
			return nil, fmt.Errorf("%w: crop %q has non-positive days to maturity", ErrInvalidInput, c.Name)
		}
	}
	cs := make([]Crop, len(crops))
	copy(cs, crops)
	return &Catalog{crops: cs}, nil
}

// Crops returns the catalog entries in stable fixture order.
func (cat *Catalog) Crops() []Crop {
	out := make([]Crop, len(cat.crops))
	copy(out, cat.crops)
	return out
}

func (cat *Catalog) Len() int {
	return len(cat.crops)
}

// matches is the lenient name check: case-insensitive containment in either
// direction, so "Tomat" finds "Tomat (Tomato)" and a pasted long label still
// finds its crop.
func matches(query, name string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	n := strings.ToLower(name)
	if q == "" {
		return false
	}
	return strings.Contains(n, q) || strings.Contains(q, n)
}

// Find resolves a crop name fragment to the first matching catalog entry.
func (cat *Catalog) Find(name string) (Crop, error) {
	for _, c := range cat.crops {
		if matches(name, c.Name) {
			return c, nil
		}
	}
	return Crop{}, fmt.Errorf("%w: unknown crop %q", ErrNotFound, name)
}

// PlantingCalendar lists the crops whose planting window includes month and
// that are rated for zone. ZoneAll skips the zone filter. Zero matching crops
// is a valid empty result.
func (cat *Catalog) PlantingCalendar(month Month, zone Zone) ([]Crop, error) {
	if err := month.Validate(); err != nil {
		return nil, err
	}
	out := []Crop{}
	for _, c := range cat.crops {
		in, err := c.InPlantingWindow(month)
		if err != nil {
			return nil, err
		}
		if !in {
			continue
		}
		if zone != ZoneAll && !c.GrowsInZone(zone) {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

// CompanionSet is the result of a companion lookup.
type CompanionSet struct {
	Crop Crop
	Good []Crop
	Bad  []Crop
}

// Companions resolves a crop's configured good and bad companion names
// against the catalog. Companion names that resolve to no catalog entry are
// dropped; an unknown query crop fails with ErrNotFound so callers can tell
// "no companions" from "no such crop".
func (cat *Catalog) Companions(name string) (CompanionSet, error) {
	crop, err := cat.Find(name)
	if err != nil {
		return CompanionSet{}, err
	}
	set := CompanionSet{Crop: crop, Good: []Crop{}, Bad: []Crop{}}
	for _, companion := range crop.GoodCompanions {
		if c, err := cat.Find(companion); err == nil {
			set.Good = append(set.Good, c)
		}
	}
	for _, companion := range crop.BadCompanions {
		if c, err := cat.Find(companion); err == nil {
			set.Bad = append(set.Bad, c)
		}
	}
	return set, nil
}

// RotationSet partitions the catalog around a previous crop: Avoid holds the
// crops sharing its family, Suggested everything else. The previous crop
// itself appears in neither.
type RotationSet struct {
	Previous  Crop
	Suggested []Crop
	Avoid     []Crop
}

// RotationSuggestions returns rotation-safe and rotation-unsafe crops after
// growing the named crop, in stable catalog order.
func (cat *Catalog) RotationSuggestions(previous string) (RotationSet, error) {
	crop, err := cat.Find(previous)
	if err != nil {
		return RotationSet{}, err
	}
	set := RotationSet{Previous: crop, Suggested: []Crop{}, Avoid: []Crop{}}
	for _, c := range cat.crops {
		if c.Name == crop.Name {
			continue
		}
		if c.Family == crop.Family {
			set.Avoid = append(set.Avoid, c)
		} else {
			set.Suggested = append(set.Suggested, c)
		}
	}
	return set, nil
}
