package schedule

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/samletnorge/assist/catalog"
	"github.com/samletnorge/assist/planning"
)

type CreatePlotReq struct {
	Name         string
	Zone         string
	SoilType     SoilType
	SunExposure  SunExposure
	LengthMeters float64
	WidthMeters  float64
}

type CreateScheduleReq struct {
	ScheduleName               string
	PlotUUID                   string
	Year                       int
	EnableEmailReminders       bool
	ReminderEmail              string
	ReminderDaysBeforePlanting int
	ReminderDaysBeforeHarvest  int
}

type AddItemReq struct {
	Crop         string
	Variety      string
	PlantingDate time.Time
	Quantity     int
}

// Service owns all reads and writes of the garden records. The crop catalog
// is injected so harvest derivation and conflict checks never touch hidden
// global state.
type Service struct {
	db     *gorm.DB
	cat    *catalog.Catalog
	appCtx context.Context
}

func NewService(db *gorm.DB, cat *catalog.Catalog, appCtx context.Context) *Service {
	return &Service{
		db:     db,
		cat:    cat,
		appCtx: appCtx,
	}
}

func (s *Service) CreatePlot(req CreatePlotReq) (*GardenPlot, error) {
	zone, err := catalog.ParseZone(req.Zone)
	if err != nil {
		return nil, err
	}
	plot := &GardenPlot{
		Name:         req.Name,
		Zone:         zone,
		SoilType:     req.SoilType,
		SunExposure:  req.SunExposure,
		LengthMeters: req.LengthMeters,
		WidthMeters:  req.WidthMeters,
	}
	if err := gorm.G[GardenPlot](s.db).Create(s.appCtx, plot); err != nil {
		return nil, err
	}
	log.Printf("created garden plot %s", plot.UUID)
	return plot, nil
}

func (s *Service) GetPlot(uid string) (*GardenPlot, error) {
	var plot GardenPlot
	err := s.db.WithContext(s.appCtx).Where("uuid = ?", uid).First(&plot).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: garden plot %s", catalog.ErrNotFound, uid)
	}
	if err != nil {
		return nil, err
	}
	return &plot, nil
}

func (s *Service) CreateSchedule(req CreateScheduleReq) (*PlantingSchedule, error) {
	plot, err := s.GetPlot(req.PlotUUID)
	if err != nil {
		return nil, err
	}
	sched := &PlantingSchedule{
		ScheduleName:               req.ScheduleName,
		GardenPlotID:               plot.ID,
		Year:                       req.Year,
		EnableEmailReminders:       req.EnableEmailReminders,
		ReminderEmail:              req.ReminderEmail,
		ReminderDaysBeforePlanting: req.ReminderDaysBeforePlanting,
		ReminderDaysBeforeHarvest:  req.ReminderDaysBeforeHarvest,
	}
	if err := gorm.G[PlantingSchedule](s.db).Create(s.appCtx, sched); err != nil {
		return nil, err
	}
	log.Printf("created planting schedule %s for plot %s", sched.UUID, plot.UUID)
	return sched, nil
}

func (s *Service) GetSchedule(uid string) (*PlantingSchedule, error) {
	var sched PlantingSchedule
	err := s.db.WithContext(s.appCtx).
		Preload("Items").Preload("Plot").
		Where("uuid = ?", uid).First(&sched).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: planting schedule %s", catalog.ErrNotFound, uid)
	}
	if err != nil {
		return nil, err
	}
	return &sched, nil
}

// AddItem schedules one sowing. The crop must resolve in the catalog; the
// expected harvest date is derived from the crop's days to maturity when the
// caller does not supply one.
func (s *Service) AddItem(scheduleUID string, req AddItemReq) (*PlantingItemRecord, error) {
	sched, err := s.GetSchedule(scheduleUID)
	if err != nil {
		return nil, err
	}
	crop, err := s.cat.Find(req.Crop)
	if err != nil {
		return nil, err
	}
	if req.PlantingDate.IsZero() {
		return nil, fmt.Errorf("%w: planting date is required", catalog.ErrInvalidInput)
	}
	if req.Quantity <= 0 {
		return nil, fmt.Errorf("%w: quantity must be positive, got %d", catalog.ErrInvalidInput, req.Quantity)
	}
	item := &PlantingItemRecord{
		PlantingScheduleID:  sched.ID,
		Crop:                crop.Name,
		Variety:             req.Variety,
		PlantingDate:        req.PlantingDate,
		ExpectedHarvestDate: req.PlantingDate.AddDate(0, 0, crop.DaysToMaturity),
		Quantity:            req.Quantity,
		Status:              planning.StatusPlanned,
	}
	if err := gorm.G[PlantingItemRecord](s.db).Create(s.appCtx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *Service) getItem(uid string) (*PlantingItemRecord, error) {
	var item PlantingItemRecord
	err := s.db.WithContext(s.appCtx).Where("uuid = ?", uid).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: planting item %s", catalog.ErrNotFound, uid)
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// UpdateItemStatus moves an item forward in its lifecycle. Backward or
// sideways moves are rejected.
func (s *Service) UpdateItemStatus(itemUID string, status string) (*PlantingItemRecord, error) {
	next, err := planning.ParseStatus(status)
	if err != nil {
		return nil, err
	}
	item, err := s.getItem(itemUID)
	if err != nil {
		return nil, err
	}
	if !item.Status.CanTransitionTo(next) {
		return nil, fmt.Errorf("%w: cannot move item from %s to %s", catalog.ErrInvalidInput, item.Status, next)
	}
	item.Status = next
	if err := s.db.WithContext(s.appCtx).Save(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

// RecordHarvest stores the actual harvest date and completes the lifecycle.
func (s *Service) RecordHarvest(itemUID string, date time.Time) (*PlantingItemRecord, error) {
	if date.IsZero() {
		return nil, fmt.Errorf("%w: harvest date is required", catalog.ErrInvalidInput)
	}
	item, err := s.getItem(itemUID)
	if err != nil {
		return nil, err
	}
	item.ActualHarvestDate = &date
	item.Status = planning.StatusHarvested
	if err := s.db.WithContext(s.appCtx).Save(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

// Snapshot loads a schedule's items as engine values.
func (s *Service) Snapshot(scheduleUID string) ([]planning.PlantingItem, error) {
	sched, err := s.GetSchedule(scheduleUID)
	if err != nil {
		return nil, err
	}
	items := make([]planning.PlantingItem, 0, len(sched.Items))
	for _, rec := range sched.Items {
		items = append(items, rec.Snapshot())
	}
	return items, nil
}

// CompanionConflicts reports every pair of crops on the schedule where one
// lists the other as a bad companion.
func (s *Service) CompanionConflicts(scheduleUID string) ([]string, error) {
	sched, err := s.GetSchedule(scheduleUID)
	if err != nil {
		return nil, err
	}
	planted := map[string]catalog.Crop{}
	for _, item := range sched.Items {
		if crop, err := s.cat.Find(item.Crop); err == nil {
			planted[crop.Name] = crop
		}
	}
	warnings := []string{}
	for name, crop := range planted {
		for _, bad := range crop.BadCompanions {
			if _, ok := planted[bad]; ok {
				warnings = append(warnings, fmt.Sprintf("%s and %s are incompatible companions", name, bad))
			}
		}
	}
	return warnings, nil
}

// SchedulesWithReminders lists the schedules the daily reminder sweep
// should visit.
func (s *Service) SchedulesWithReminders() ([]PlantingSchedule, error) {
	var scheds []PlantingSchedule
	err := s.db.WithContext(s.appCtx).
		Preload("Items").Preload("Plot").
		Where("enable_email_reminders = ?", true).
		Find(&scheds).Error
	if err != nil {
		return nil, err
	}
	return scheds, nil
}
