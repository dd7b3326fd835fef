// Package catalog holds the immutable Norwegian crop reference data and the
// calendar/matching operations over it: planting window checks, companion
// lookup and rotation suggestions.
package catalog

type CropFamily string

const (
	Nightshades CropFamily = "Nightshades"
	Brassicas   CropFamily = "Brassicas"
	Legumes     CropFamily = "Legumes"
	Cucurbits   CropFamily = "Cucurbits"
	Umbellifers CropFamily = "Umbellifers"
	Alliums     CropFamily = "Alliums"
	Asters      CropFamily = "Asters"
	Chenopods   CropFamily = "Chenopods"
	Grasses     CropFamily = "Grasses"
)

// Zone is a Norwegian climate hardiness zone. Zone 1 is the mildest and 8 the
// harshest; a crop rated for zone N grows in every zone up to and including N.
// ZoneAll marks crops that grow anywhere.
type Zone int

const (
	ZoneMin      = 1
	ZoneMax      = 8
	ZoneAll Zone = 0
)

// Crop is a single entry of the crop master. Reference data only: loaded once
// at startup and never mutated.
type Crop struct {
	Name                   string     `yaml:"name" json:"name"`
	Family                 CropFamily `yaml:"family" json:"family"`
	Zone                   Zone       `yaml:"norwegian_zone" json:"norwegian_zone"`
	PlantingStartMonth     Month      `yaml:"planting_start_month" json:"planting_start_month"`
	PlantingEndMonth       Month      `yaml:"planting_end_month" json:"planting_end_month"`
	DaysToMaturity         int        `yaml:"days_to_maturity" json:"days_to_maturity"`
	FrostTolerant          bool       `yaml:"frost_tolerant" json:"frost_tolerant"`
	SuccessionIntervalDays int        `yaml:"succession_interval_days" json:"succession_interval_days"`
	GoodCompanions         []string   `yaml:"good_companions" json:"good_companions,omitempty"`
	BadCompanions          []string   `yaml:"bad_companions" json:"bad_companions,omitempty"`
}

// GrowsInZone reports whether the crop is rated for the given zone.
func (c Crop) GrowsInZone(zone Zone) bool {
	if c.Zone == ZoneAll {
		return true
	}
	return zone <= c.Zone
}
