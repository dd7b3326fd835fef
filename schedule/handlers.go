package schedule

import (
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v3"

	"github.com/samletnorge/assist/catalog"
	"github.com/samletnorge/assist/planning"
)

// GardenHandler serves the garden planning API: catalog queries plus the
// schedule record endpoints.
type GardenHandler struct {
	cat     *catalog.Catalog
	service *Service
}

func NewGardenHandler(cat *catalog.Catalog, s *Service) *GardenHandler {
	return &GardenHandler{
		cat:     cat,
		service: s,
	}
}

func RegisterGardenRoutes(router fiber.Router, handler *GardenHandler) {
	garden := router.Group("/garden")

	garden.Get("/calendar", handler.PlantingCalendar)
	garden.Get("/companions/:crop", handler.Companions)
	garden.Get("/rotation/:crop", handler.RotationSuggestions)
	garden.Post("/succession", handler.SuccessionPlanting)

	garden.Post("/plots", handler.CreatePlot)
	garden.Get("/plots/:uid", handler.GetPlot)

	garden.Post("/schedules", handler.CreateSchedule)
	garden.Get("/schedules/:uid", handler.GetSchedule)
	garden.Post("/schedules/:uid/items", handler.AddItem)
	garden.Get("/schedules/:uid/tasks", handler.UpcomingTasks)
	garden.Get("/schedules/:uid/shopping-list", handler.ShoppingList)
	garden.Get("/schedules/:uid/conflicts", handler.CompanionConflicts)

	garden.Patch("/items/:uid/status", handler.UpdateItemStatus)
	garden.Post("/items/:uid/harvest", handler.RecordHarvest)
}

// httpError maps the engine's error taxonomy onto status codes: invalid
// input is the caller's fault, unknown identifiers are 404, anything else
// is on us.
func httpError(err error) error {
	switch {
	case errors.Is(err, catalog.ErrInvalidInput):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	case errors.Is(err, catalog.ErrNotFound):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	default:
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
}

func parseDate(s string) (time.Time, error) {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: malformed date %q, want YYYY-MM-DD", catalog.ErrInvalidInput, s)
	}
	return d, nil
}

func cropNames(crops []catalog.Crop) []string {
	names := make([]string, len(crops))
	for i, c := range crops {
		names[i] = c.Name
	}
	return names
}

// PlantingCalendar lists crops plantable in a month, optionally narrowed to
// a norwegian zone.
func (h *GardenHandler) PlantingCalendar(c fiber.Ctx) error {
	month, err := catalog.ParseMonth(c.Query("month"))
	if err != nil {
		return httpError(err)
	}
	zone, err := catalog.ParseZone(c.Query("norwegian_zone"))
	if err != nil {
		return httpError(err)
	}
	crops, err := h.cat.PlantingCalendar(month, zone)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"month":   month.String(),
		"crops":   crops,
		"count":   len(crops),
	})
}

func (h *GardenHandler) Companions(c fiber.Ctx) error {
	set, err := h.cat.Companions(c.Params("crop"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(fiber.Map{
		"success":         true,
		"crop":            set.Crop.Name,
		"good_companions": cropNames(set.Good),
		"bad_companions":  cropNames(set.Bad),
		"count":           len(set.Good) + len(set.Bad),
	})
}

func (h *GardenHandler) RotationSuggestions(c fiber.Ctx) error {
	set, err := h.cat.RotationSuggestions(c.Params("crop"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(fiber.Map{
		"success":         true,
		"previous_crop":   set.Previous.Name,
		"previous_family": set.Previous.Family,
		"suggested_crops": cropNames(set.Suggested),
		"avoid_crops":     cropNames(set.Avoid),
		"count":           len(set.Suggested),
	})
}

type successionReq struct {
	CropName  string `json:"crop_name"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

type successionEntryResp struct {
	PlantingDate string `json:"planting_date"`
	HarvestDate  string `json:"harvest_date"`
}

// SuccessionPlanting generates the staggered sowing dates for a crop between
// two dates.
func (h *GardenHandler) SuccessionPlanting(c fiber.Ctx) error {
	req := new(successionReq)
	if err := c.Bind().JSON(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	crop, err := h.cat.Find(req.CropName)
	if err != nil {
		return httpError(err)
	}
	start, err := parseDate(req.StartDate)
	if err != nil {
		return httpError(err)
	}
	end, err := parseDate(req.EndDate)
	if err != nil {
		return httpError(err)
	}
	entries, err := planning.SuccessionDates(crop, start, end)
	if err != nil {
		return httpError(err)
	}
	resp := make([]successionEntryResp, len(entries))
	for i, e := range entries {
		resp[i] = successionEntryResp{
			PlantingDate: e.PlantingDate.Format("2006-01-02"),
			HarvestDate:  e.HarvestDate.Format("2006-01-02"),
		}
	}
	return c.JSON(fiber.Map{
		"success":           true,
		"crop":              crop.Name,
		"interval_days":     crop.SuccessionIntervalDays,
		"planting_schedule": resp,
		"count":             len(resp),
	})
}

type createPlotReq struct {
	Name         string  `json:"plot_name"`
	Zone         string  `json:"norwegian_zone"`
	SoilType     string  `json:"soil_type"`
	SunExposure  string  `json:"sun_exposure"`
	LengthMeters float64 `json:"length_meters"`
	WidthMeters  float64 `json:"width_meters"`
}

func (h *GardenHandler) CreatePlot(c fiber.Ctx) error {
	req := new(createPlotReq)
	if err := c.Bind().JSON(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	plot, err := h.service.CreatePlot(CreatePlotReq{
		Name:         req.Name,
		Zone:         req.Zone,
		SoilType:     SoilType(req.SoilType),
		SunExposure:  SunExposure(req.SunExposure),
		LengthMeters: req.LengthMeters,
		WidthMeters:  req.WidthMeters,
	})
	if err != nil {
		return httpError(err)
	}
	return c.JSON(fiber.Map{
		"success":  true,
		"message":  "garden plot created",
		"uuid":     plot.UUID,
		"area_sqm": plot.AreaSqm,
	})
}

func (h *GardenHandler) GetPlot(c fiber.Ctx) error {
	plot, err := h.service.GetPlot(c.Params("uid"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"plot":    plot,
	})
}

type createScheduleReq struct {
	ScheduleName               string `json:"schedule_name"`
	PlotUUID                   string `json:"garden_plot"`
	Year                       int    `json:"year"`
	EnableEmailReminders       bool   `json:"enable_email_reminders"`
	ReminderEmail              string `json:"reminder_email"`
	ReminderDaysBeforePlanting int    `json:"reminder_days_before_planting"`
	ReminderDaysBeforeHarvest  int    `json:"reminder_days_before_harvest"`
}

func (h *GardenHandler) CreateSchedule(c fiber.Ctx) error {
	req := new(createScheduleReq)
	if err := c.Bind().JSON(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	sched, err := h.service.CreateSchedule(CreateScheduleReq{
		ScheduleName:               req.ScheduleName,
		PlotUUID:                   req.PlotUUID,
		Year:                       req.Year,
		EnableEmailReminders:       req.EnableEmailReminders,
		ReminderEmail:              req.ReminderEmail,
		ReminderDaysBeforePlanting: req.ReminderDaysBeforePlanting,
		ReminderDaysBeforeHarvest:  req.ReminderDaysBeforeHarvest,
	})
	if err != nil {
		return httpError(err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "planting schedule created",
		"uuid":    sched.UUID,
	})
}

func (h *GardenHandler) GetSchedule(c fiber.Ctx) error {
	sched, err := h.service.GetSchedule(c.Params("uid"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(fiber.Map{
		"success":  true,
		"schedule": sched,
		"count":    len(sched.Items),
	})
}

type addItemReq struct {
	Crop         string `json:"crop_name"`
	Variety      string `json:"variety"`
	PlantingDate string `json:"planting_date"`
	Quantity     int    `json:"quantity"`
}

func (h *GardenHandler) AddItem(c fiber.Ctx) error {
	req := new(addItemReq)
	if err := c.Bind().JSON(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	date, err := parseDate(req.PlantingDate)
	if err != nil {
		return httpError(err)
	}
	item, err := h.service.AddItem(c.Params("uid"), AddItemReq{
		Crop:         req.Crop,
		Variety:      req.Variety,
		PlantingDate: date,
		Quantity:     req.Quantity,
	})
	if err != nil {
		return httpError(err)
	}
	return c.JSON(fiber.Map{
		"success":               true,
		"message":               "planting item added",
		"uuid":                  item.UUID,
		"crop":                  item.Crop,
		"expected_harvest_date": item.ExpectedHarvestDate.Format("2006-01-02"),
	})
}

type statusReq struct {
	Status string `json:"status"`
}

func (h *GardenHandler) UpdateItemStatus(c fiber.Ctx) error {
	req := new(statusReq)
	if err := c.Bind().JSON(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	item, err := h.service.UpdateItemStatus(c.Params("uid"), req.Status)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"uuid":    item.UUID,
		"status":  item.Status,
	})
}

type harvestReq struct {
	HarvestDate string `json:"harvest_date"`
}

func (h *GardenHandler) RecordHarvest(c fiber.Ctx) error {
	req := new(harvestReq)
	if err := c.Bind().JSON(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	date, err := parseDate(req.HarvestDate)
	if err != nil {
		return httpError(err)
	}
	item, err := h.service.RecordHarvest(c.Params("uid"), date)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(fiber.Map{
		"success":      true,
		"uuid":         item.UUID,
		"status":       item.Status,
		"harvest_date": date.Format("2006-01-02"),
	})
}

type taskResp struct {
	ItemID  string `json:"item_id"`
	Crop    string `json:"crop"`
	Variety string `json:"variety,omitempty"`
	Date    string `json:"date"`
	Status  string `json:"status"`
}

func toTaskResp(tasks []planning.Task) []taskResp {
	out := make([]taskResp, len(tasks))
	for i, t := range tasks {
		out[i] = taskResp{
			ItemID:  t.ItemID,
			Crop:    t.Crop,
			Variety: t.Variety,
			Date:    t.Date.Format("2006-01-02"),
			Status:  string(t.Status),
		}
	}
	return out
}

// UpcomingTasks aggregates a schedule's planting and harvest work inside a
// horizon counted from today (or an explicit reference date, for testing and
// for planning ahead).
func (h *GardenHandler) UpcomingTasks(c fiber.Ctx) error {
	horizon := fiber.Query(c, "horizon_days", 14)
	reference := time.Now()
	if q := c.Query("reference_date"); q != "" {
		var err error
		if reference, err = parseDate(q); err != nil {
			return httpError(err)
		}
	}
	items, err := h.service.Snapshot(c.Params("uid"))
	if err != nil {
		return httpError(err)
	}
	list, err := planning.UpcomingTasks(items, reference, horizon)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(fiber.Map{
		"success":        true,
		"horizon_days":   horizon,
		"planting_tasks": toTaskResp(list.Planting),
		"harvest_tasks":  toTaskResp(list.Harvest),
		"count":          len(list.Planting) + len(list.Harvest),
	})
}

type shoppingEntryResp struct {
	Crop          string   `json:"crop"`
	Variety       string   `json:"variety,omitempty"`
	TotalQuantity int      `json:"total_quantity"`
	PlantingDates []string `json:"planting_dates"`
}

func (h *GardenHandler) ShoppingList(c fiber.Ctx) error {
	items, err := h.service.Snapshot(c.Params("uid"))
	if err != nil {
		return httpError(err)
	}
	entries := planning.ShoppingList(items)
	resp := make([]shoppingEntryResp, len(entries))
	for i, e := range entries {
		dates := make([]string, len(e.PlantingDates))
		for j, d := range e.PlantingDates {
			dates[j] = d.Format("2006-01-02")
		}
		resp[i] = shoppingEntryResp{
			Crop:          e.Crop,
			Variety:       e.Variety,
			TotalQuantity: e.TotalQuantity,
			PlantingDates: dates,
		}
	}
	return c.JSON(fiber.Map{
		"success":       true,
		"shopping_list": resp,
		"count":         len(resp),
	})
}

func (h *GardenHandler) CompanionConflicts(c fiber.Ctx) error {
	warnings, err := h.service.CompanionConflicts(c.Params("uid"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(fiber.Map{
		"success":  true,
		"warnings": warnings,
		"count":    len(warnings),
	})
}
