package planning

import (
	"errors"
	"testing"

	"github.com/samletnorge/assist/catalog"
)

// TestUpcomingTasks verifies horizon filtering, sorting and the item-ID
// tie-break
func TestUpcomingTasks(t *testing.T) {
	ref := date(2026, 5, 1)
	items := []PlantingItem{
		{ID: "b", Crop: "Salat (Lettuce)", PlantingDate: date(2026, 5, 3), Status: StatusPlanned},
		{ID: "a", Crop: "Reddik (Radish)", PlantingDate: date(2026, 5, 3), Status: StatusPlanned},
		{ID: "c", Crop: "Gulrot (Carrot)", PlantingDate: date(2026, 5, 20), Status: StatusPlanned}, // outside horizon
		{ID: "d", Crop: "Spinat (Spinach)", PlantingDate: date(2026, 4, 1), ExpectedHarvestDate: date(2026, 5, 10), Status: StatusGrowing},
	}

	list, err := UpcomingTasks(items, ref, 14)
	if err != nil {
		t.Fatalf("UpcomingTasks failed: %v", err)
	}

	if len(list.Planting) != 2 {
		t.Fatalf("expected 2 planting tasks, got %d", len(list.Planting))
	}
	// same date: "a" before "b"
	if list.Planting[0].ItemID != "a" || list.Planting[1].ItemID != "b" {
		t.Errorf("tie-break order wrong: %s, %s", list.Planting[0].ItemID, list.Planting[1].ItemID)
	}

	if len(list.Harvest) != 1 || list.Harvest[0].ItemID != "d" {
		t.Errorf("harvest tasks = %+v", list.Harvest)
	}
}

// TestUpcomingTasks_ActualHarvestPreferred verifies a recorded harvest date
// replaces the expected one
func TestUpcomingTasks_ActualHarvestPreferred(t *testing.T) {
	ref := date(2026, 5, 1)
	actual := date(2026, 5, 2)
	items := []PlantingItem{
		{
			ID: "x", Crop: "Salat (Lettuce)",
			PlantingDate:        date(2026, 3, 1),
			ExpectedHarvestDate: date(2026, 8, 1), // outside horizon
			ActualHarvestDate:   &actual,
			Status:              StatusHarvested,
		},
	}
	list, err := UpcomingTasks(items, ref, 7)
	if err != nil {
		t.Fatalf("UpcomingTasks failed: %v", err)
	}
	if len(list.Harvest) != 1 {
		t.Fatalf("expected the actual harvest date to be used, got %+v", list.Harvest)
	}
	if !list.Harvest[0].Date.Equal(actual) {
		t.Errorf("harvest date = %v, want %v", list.Harvest[0].Date, actual)
	}
}

// TestUpcomingTasks_NegativeHorizon verifies the horizon is validated
func TestUpcomingTasks_NegativeHorizon(t *testing.T) {
	_, err := UpcomingTasks(nil, date(2026, 5, 1), -1)
	if !errors.Is(err, catalog.ErrInvalidInput) {
		t.Errorf("negative horizon should wrap ErrInvalidInput, got %v", err)
	}
}

// TestShoppingList verifies grouping by crop and variety, quantity sums and
// distinct sorted planting dates
func TestShoppingList(t *testing.T) {
	items := []PlantingItem{
		{ID: "1", Crop: "Salat (Lettuce)", Variety: "Lollo Rossa", Quantity: 10, PlantingDate: date(2026, 4, 15)},
		{ID: "2", Crop: "Salat (Lettuce)", Variety: "Lollo Rossa", Quantity: 5, PlantingDate: date(2026, 4, 1)},
		{ID: "3", Crop: "Salat (Lettuce)", Variety: "Lollo Rossa", Quantity: 5, PlantingDate: date(2026, 4, 1)}, // duplicate date
		{ID: "4", Crop: "Salat (Lettuce)", Variety: "Crispino", Quantity: 8, PlantingDate: date(2026, 5, 1)},
		{ID: "5", Crop: "Gulrot (Carrot)", Variety: "", Quantity: 30, PlantingDate: date(2026, 4, 20)},
	}

	list := ShoppingList(items)
	if len(list) != 3 {
		t.Fatalf("expected 3 groups, got %d", len(list))
	}

	// deterministic order: crop then variety
	if list[0].Crop != "Gulrot (Carrot)" {
		t.Errorf("first group = %q", list[0].Crop)
	}
	if list[1].Variety != "Crispino" || list[2].Variety != "Lollo Rossa" {
		t.Errorf("variety order wrong: %q, %q", list[1].Variety, list[2].Variety)
	}

	lollo := list[2]
	if lollo.TotalQuantity != 20 {
		t.Errorf("lollo quantity = %d, want 20", lollo.TotalQuantity)
	}
	if len(lollo.PlantingDates) != 2 {
		t.Fatalf("lollo dates should be distinct, got %v", lollo.PlantingDates)
	}
	if !lollo.PlantingDates[0].Equal(date(2026, 4, 1)) || !lollo.PlantingDates[1].Equal(date(2026, 4, 15)) {
		t.Errorf("lollo dates not ascending: %v", lollo.PlantingDates)
	}
}

// TestShoppingList_Empty verifies an empty snapshot yields an empty list
func TestShoppingList_Empty(t *testing.T) {
	if list := ShoppingList(nil); len(list) != 0 {
		t.Errorf("expected empty list, got %v", list)
	}
}

// TestStatusTransitions verifies the lifecycle only moves forward
func TestStatusTransitions(t *testing.T) {
	cases := []struct {
		from, to Status
		ok       bool
	}{
		{StatusPlanned, StatusPlanted, true},
		{StatusPlanned, StatusHarvested, true},
		{StatusPlanted, StatusGrowing, true},
		{StatusGrowing, StatusHarvested, true},
		{StatusHarvested, StatusPlanned, false},
		{StatusGrowing, StatusPlanted, false},
		{StatusPlanned, StatusPlanned, false},
	}
	for _, tc := range cases {
		if got := tc.from.CanTransitionTo(tc.to); got != tc.ok {
			t.Errorf("%s -> %s = %v, want %v", tc.from, tc.to, got, tc.ok)
		}
	}

	if _, err := ParseStatus("Wilted"); !errors.Is(err, catalog.ErrInvalidInput) {
		t.Errorf("unknown status should wrap ErrInvalidInput, got %v", err)
	}
	if st, err := ParseStatus("Growing"); err != nil || st != StatusGrowing {
		t.Errorf("ParseStatus(\"Growing\") = %v, %v", st, err)
	}
}
