package schedule

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/samletnorge/assist/catalog"
	"github.com/samletnorge/assist/planning"
)

func setupService(t *testing.T) *Service {
	t.Helper()

	// Setup in-memory database
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.Exec("PRAGMA foreign_keys = ON").Error
	require.NoError(t, err)

	err = db.AutoMigrate(Models()...)
	require.NoError(t, err)

	cat, err := catalog.LoadDefault()
	require.NoError(t, err)

	return NewService(db, cat, context.Background())
}

func createTestSchedule(t *testing.T, s *Service, reminders bool) *PlantingSchedule {
	t.Helper()

	plot, err := s.CreatePlot(CreatePlotReq{
		Name:         "Bed A",
		Zone:         "4",
		SoilType:     SoilLoam,
		SunExposure:  SunFull,
		LengthMeters: 4,
		WidthMeters:  1.5,
	})
	require.NoError(t, err)

	sched, err := s.CreateSchedule(CreateScheduleReq{
		ScheduleName:               "Kjøkkenhage 2026",
		PlotUUID:                   plot.UUID.String(),
		Year:                       2026,
		EnableEmailReminders:       reminders,
		ReminderEmail:              "gardener@example.com",
		ReminderDaysBeforePlanting: 3,
		ReminderDaysBeforeHarvest:  7,
	})
	require.NoError(t, err)
	return sched
}

// TestCreatePlot_AreaDerived verifies the area is computed from dimensions
func TestCreatePlot_AreaDerived(t *testing.T) {
	s := setupService(t)

	plot, err := s.CreatePlot(CreatePlotReq{
		Name:         "Bed A",
		Zone:         "4",
		LengthMeters: 4,
		WidthMeters:  1.5,
	})
	require.NoError(t, err)
	assert.InDelta(t, 6.0, plot.AreaSqm, 1e-9)

	fetched, err := s.GetPlot(plot.UUID.String())
	require.NoError(t, err)
	assert.Equal(t, plot.UUID, fetched.UUID)
}

// TestCreatePlot_InvalidZone verifies zone validation at the store boundary
func TestCreatePlot_InvalidZone(t *testing.T) {
	s := setupService(t)

	_, err := s.CreatePlot(CreatePlotReq{Name: "Bed B", Zone: "14"})
	assert.ErrorIs(t, err, catalog.ErrInvalidInput)
}

// TestCreateSchedule_UnknownPlot verifies unresolvable plot refs are NotFound
func TestCreateSchedule_UnknownPlot(t *testing.T) {
	s := setupService(t)

	_, err := s.CreateSchedule(CreateScheduleReq{
		ScheduleName: "x",
		PlotUUID:     "00000000-0000-0000-0000-000000000000",
	})
	assert.ErrorIs(t, err, catalog.ErrNotFound)
}

// TestAddItem verifies harvest derivation from the crop's maturity and the
// initial status
func TestAddItem(t *testing.T) {
	s := setupService(t)
	sched := createTestSchedule(t, s, false)

	planted := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	item, err := s.AddItem(sched.UUID.String(), AddItemReq{
		Crop:         "Salat",
		Variety:      "Lollo Rossa",
		PlantingDate: planted,
		Quantity:     10,
	})
	require.NoError(t, err)

	// fixture lettuce matures in 45 days
	assert.Equal(t, "Salat (Lettuce)", item.Crop)
	assert.Equal(t, planted.AddDate(0, 0, 45), item.ExpectedHarvestDate)
	assert.Equal(t, planning.StatusPlanned, item.Status)

	fetched, err := s.GetSchedule(sched.UUID.String())
	require.NoError(t, err)
	require.Len(t, fetched.Items, 1)
}

// TestAddItem_Invalid verifies unknown crops and bad quantities are rejected
func TestAddItem_Invalid(t *testing.T) {
	s := setupService(t)
	sched := createTestSchedule(t, s, false)
	planted := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)

	_, err := s.AddItem(sched.UUID.String(), AddItemReq{Crop: "Zucchini", PlantingDate: planted, Quantity: 1})
	assert.ErrorIs(t, err, catalog.ErrNotFound)

	_, err = s.AddItem(sched.UUID.String(), AddItemReq{Crop: "Salat", PlantingDate: planted, Quantity: 0})
	assert.ErrorIs(t, err, catalog.ErrInvalidInput)

	_, err = s.AddItem(sched.UUID.String(), AddItemReq{Crop: "Salat", Quantity: 1})
	assert.ErrorIs(t, err, catalog.ErrInvalidInput)
}

// TestUpdateItemStatus verifies the lifecycle only moves forward
func TestUpdateItemStatus(t *testing.T) {
	s := setupService(t)
	sched := createTestSchedule(t, s, false)
	item, err := s.AddItem(sched.UUID.String(), AddItemReq{
		Crop:         "Salat",
		PlantingDate: time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
		Quantity:     5,
	})
	require.NoError(t, err)

	updated, err := s.UpdateItemStatus(item.UUID.String(), "Planted")
	require.NoError(t, err)
	assert.Equal(t, planning.StatusPlanted, updated.Status)

	updated, err = s.UpdateItemStatus(item.UUID.String(), "Growing")
	require.NoError(t, err)
	assert.Equal(t, planning.StatusGrowing, updated.Status)

	// backwards is rejected
	_, err = s.UpdateItemStatus(item.UUID.String(), "Planned")
	assert.ErrorIs(t, err, catalog.ErrInvalidInput)

	// unknown status value
	_, err = s.UpdateItemStatus(item.UUID.String(), "Wilted")
	assert.ErrorIs(t, err, catalog.ErrInvalidInput)

	// unknown item
	_, err = s.UpdateItemStatus("00000000-0000-0000-0000-000000000000", "Growing")
	assert.ErrorIs(t, err, catalog.ErrNotFound)
}

// TestRecordHarvest verifies the actual date is stored and the item completes
func TestRecordHarvest(t *testing.T) {
	s := setupService(t)
	sched := createTestSchedule(t, s, false)
	item, err := s.AddItem(sched.UUID.String(), AddItemReq{
		Crop:         "Reddik",
		PlantingDate: time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
		Quantity:     20,
	})
	require.NoError(t, err)

	harvested := time.Date(2026, 5, 2, 0, 0, 0, 0, time.UTC)
	updated, err := s.RecordHarvest(item.UUID.String(), harvested)
	require.NoError(t, err)
	assert.Equal(t, planning.StatusHarvested, updated.Status)
	require.NotNil(t, updated.ActualHarvestDate)
	assert.Equal(t, harvested, *updated.ActualHarvestDate)

	snapshot, err := s.Snapshot(sched.UUID.String())
	require.NoError(t, err)
	require.Len(t, snapshot, 1)
	assert.True(t, harvested.Equal(snapshot[0].HarvestDate()))
}

// TestSnapshot_Empty verifies a valid schedule with no items is an empty
// snapshot, not an error, while an unknown schedule is NotFound
func TestSnapshot_Empty(t *testing.T) {
	s := setupService(t)
	sched := createTestSchedule(t, s, false)

	snapshot, err := s.Snapshot(sched.UUID.String())
	require.NoError(t, err)
	assert.Empty(t, snapshot)

	_, err = s.Snapshot("00000000-0000-0000-0000-000000000000")
	assert.ErrorIs(t, err, catalog.ErrNotFound)
}

// TestCompanionConflicts verifies antagonist pairs on the same schedule are
// reported
func TestCompanionConflicts(t *testing.T) {
	s := setupService(t)
	sched := createTestSchedule(t, s, false)
	planted := time.Date(2026, 4, 15, 0, 0, 0, 0, time.UTC)

	for _, crop := range []string{"Tomat", "Potet"} {
		_, err := s.AddItem(sched.UUID.String(), AddItemReq{Crop: crop, PlantingDate: planted, Quantity: 3})
		require.NoError(t, err)
	}

	warnings, err := s.CompanionConflicts(sched.UUID.String())
	require.NoError(t, err)
	require.NotEmpty(t, warnings)
	found := false
	for _, w := range warnings {
		if w == "Tomat (Tomato) and Potet (Potato) are incompatible companions" {
			found = true
		}
	}
	assert.True(t, found, "expected tomato/potato conflict, got %v", warnings)
}

// TestCompanionConflicts_None verifies friendly pairings stay quiet
func TestCompanionConflicts_None(t *testing.T) {
	s := setupService(t)
	sched := createTestSchedule(t, s, false)
	planted := time.Date(2026, 4, 15, 0, 0, 0, 0, time.UTC)

	for _, crop := range []string{"Gulrot", "Løk"} {
		_, err := s.AddItem(sched.UUID.String(), AddItemReq{Crop: crop, PlantingDate: planted, Quantity: 3})
		require.NoError(t, err)
	}

	warnings, err := s.CompanionConflicts(sched.UUID.String())
	require.NoError(t, err)
	assert.Empty(t, warnings)
}

func TestErrorsAreDistinguishable(t *testing.T) {
	s := setupService(t)

	_, err := s.GetSchedule("00000000-0000-0000-0000-000000000000")
	require.Error(t, err)
	assert.True(t, errors.Is(err, catalog.ErrNotFound))
	assert.False(t, errors.Is(err, catalog.ErrInvalidInput))
}
