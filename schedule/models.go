// Package schedule is the record store for garden plots, planting schedules
// and their planting items, plus the HTTP handlers and the daily reminder
// sweep built on top of it.
package schedule

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/samletnorge/assist/catalog"
	"github.com/samletnorge/assist/planning"
)

type SoilType string

const (
	SoilSandy SoilType = "Sandy"
	SoilClay  SoilType = "Clay"
	SoilLoam  SoilType = "Loam"
	SoilPeat  SoilType = "Peat"
)

type SunExposure string

const (
	SunFull    SunExposure = "Full Sun"
	SunPartial SunExposure = "Partial Shade"
	SunShade   SunExposure = "Full Shade"
)

type GardenPlot struct {
	gorm.Model
	UUID         uuid.UUID `gorm:"type:uuid;uniqueIndex"`
	Name         string
	Zone         catalog.Zone
	SoilType     SoilType
	SunExposure  SunExposure
	LengthMeters float64
	WidthMeters  float64
	AreaSqm      float64
}

func (p *GardenPlot) BeforeCreate(tx *gorm.DB) error {
	if p.UUID == uuid.Nil { // Only generate if not already set
		p.UUID = uuid.New()
	}
	return nil
}

// BeforeSave derives the area whenever both dimensions are known.
func (p *GardenPlot) BeforeSave(tx *gorm.DB) error {
	if p.LengthMeters > 0 && p.WidthMeters > 0 {
		p.AreaSqm = p.LengthMeters * p.WidthMeters
	}
	return nil
}

type PlantingSchedule struct {
	gorm.Model
	UUID                       uuid.UUID `gorm:"type:uuid;uniqueIndex"`
	ScheduleName               string
	GardenPlotID               uint
	Plot                       GardenPlot `gorm:"foreignKey:GardenPlotID"`
	Year                       int
	EnableEmailReminders       bool
	ReminderEmail              string
	ReminderDaysBeforePlanting int
	ReminderDaysBeforeHarvest  int
	Items                      []PlantingItemRecord `gorm:"constraint:OnDelete:CASCADE"`
}

func (s *PlantingSchedule) BeforeCreate(tx *gorm.DB) error {
	if s.UUID == uuid.Nil {
		s.UUID = uuid.New()
	}
	return nil
}

type PlantingItemRecord struct {
	gorm.Model
	UUID                uuid.UUID `gorm:"type:uuid;uniqueIndex"`
	PlantingScheduleID  uint
	Crop                string
	Variety             string
	PlantingDate        time.Time
	ExpectedHarvestDate time.Time
	ActualHarvestDate   *time.Time
	Quantity            int
	Status              planning.Status
}

func (i *PlantingItemRecord) BeforeCreate(tx *gorm.DB) error {
	if i.UUID == uuid.Nil {
		i.UUID = uuid.New()
	}
	return nil
}

// Snapshot converts the record into the engine's value type.
func (i PlantingItemRecord) Snapshot() planning.PlantingItem {
	return planning.PlantingItem{
		ID:                  i.UUID.String(),
		Crop:                i.Crop,
		Variety:             i.Variety,
		PlantingDate:        i.PlantingDate,
		ExpectedHarvestDate: i.ExpectedHarvestDate,
		ActualHarvestDate:   i.ActualHarvestDate,
		Quantity:            i.Quantity,
		Status:              i.Status,
	}
}

// Models lists everything this package persists, for migration.
func Models() []any {
	return []any{&GardenPlot{}, &PlantingSchedule{}, &PlantingItemRecord{}}
}
