package planning

import (
	"fmt"
	"html"
	"strings"
	"time"
)

type ReminderType string

const (
	ReminderPlanting ReminderType = "planting"
	ReminderHarvest  ReminderType = "harvest"
)

// Reminder is one lead-time notification for an item.
type Reminder struct {
	Type      ReminderType
	Crop      string
	Variety   string
	Date      time.Time
	DaysUntil int
}

// ReminderSettings mirrors a schedule's reminder configuration.
type ReminderSettings struct {
	DaysBeforePlanting int
	DaysBeforeHarvest  int
}

// Reminders returns the notifications due for items relative to today.
// Planting reminders fire for Planned items, harvest reminders for Planted or
// Growing ones; in both cases the date must be strictly ahead and within the
// configured lead window.
func Reminders(items []PlantingItem, settings ReminderSettings, today time.Time) []Reminder {
	reminders := []Reminder{}
	for _, item := range items {
		if item.Status == StatusPlanned && !item.PlantingDate.IsZero() {
			days := daysBetween(today, item.PlantingDate)
			if days > 0 && days <= settings.DaysBeforePlanting {
				reminders = append(reminders, Reminder{
					Type:      ReminderPlanting,
					Crop:      item.Crop,
					Variety:   item.Variety,
					Date:      item.PlantingDate,
					DaysUntil: days,
				})
			}
		}
		if (item.Status == StatusPlanted || item.Status == StatusGrowing) && !item.ExpectedHarvestDate.IsZero() {
			days := daysBetween(today, item.ExpectedHarvestDate)
			if days > 0 && days <= settings.DaysBeforeHarvest {
				reminders = append(reminders, Reminder{
					Type:      ReminderHarvest,
					Crop:      item.Crop,
					Variety:   item.Variety,
					Date:      item.ExpectedHarvestDate,
					DaysUntil: days,
				})
			}
		}
	}
	return reminders
}

func daysBetween(from, to time.Time) int {
	f := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	t := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	return int(t.Sub(f).Hours() / 24)
}

// RenderReminderEmail builds the HTML body of a reminder email. Schedule and
// crop names come from user records, so everything is escaped.
func RenderReminderEmail(scheduleName, plotName string, reminders []Reminder) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<h2>Garden Planting Reminders for %s</h2>\n", html.EscapeString(scheduleName))
	fmt.Fprintf(&b, "<p>Garden Plot: %s</p>\n", html.EscapeString(plotName))

	writeSection := func(title, verb string, rtype ReminderType) {
		var section []Reminder
		for _, r := range reminders {
			if r.Type == rtype {
				section = append(section, r)
			}
		}
		if len(section) == 0 {
			return
		}
		fmt.Fprintf(&b, "<h3>%s</h3>\n<ul>\n", title)
		for _, r := range section {
			label := html.EscapeString(r.Crop)
			if r.Variety != "" {
				label += " (" + html.EscapeString(r.Variety) + ")"
			}
			fmt.Fprintf(&b, "<li><strong>%s</strong> - %s in %d days (%s)</li>\n",
				label, verb, r.DaysUntil, r.Date.Format("2006-01-02"))
		}
		b.WriteString("</ul>\n")
	}

	writeSection("Upcoming Planting Tasks", "Plant", ReminderPlanting)
	writeSection("Upcoming Harvest Tasks", "Ready to harvest", ReminderHarvest)

	b.WriteString("<p>Good luck with your gardening!</p>\n")
	b.WriteString("<p><small>This is an automated reminder from your garden planting schedule.</small></p>\n")
	return b.String()
}
