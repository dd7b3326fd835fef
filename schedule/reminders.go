package schedule

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/samletnorge/assist/planning"
)

// ReminderJob is the once-daily sweep over schedules with email reminders
// enabled. One failing schedule never stops the sweep.
type ReminderJob struct {
	service *Service
	mailer  planning.Mailer
}

func NewReminderJob(s *Service, m planning.Mailer) *ReminderJob {
	return &ReminderJob{
		service: s,
		mailer:  m,
	}
}

// Start runs the sweep on the given interval until ctx is cancelled.
func (j *ReminderJob) Start(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := j.RunOnce(time.Now()); err != nil {
					log.Printf("reminder sweep failed: %v", err)
				}
			case <-ctx.Done():
				return
			}
		}
	}()
}

// RunOnce sends reminder emails for every schedule that has any due today.
func (j *ReminderJob) RunOnce(today time.Time) error {
	scheds, err := j.service.SchedulesWithReminders()
	if err != nil {
		return fmt.Errorf("failed to load schedules: %w", err)
	}
	if len(scheds) == 0 {
		log.Println("no planting schedules with reminders enabled")
		return nil
	}

	for _, sched := range scheds {
		if sched.ReminderEmail == "" {
			continue
		}
		items := make([]planning.PlantingItem, 0, len(sched.Items))
		for _, rec := range sched.Items {
			items = append(items, rec.Snapshot())
		}
		reminders := planning.Reminders(items, planning.ReminderSettings{
			DaysBeforePlanting: sched.ReminderDaysBeforePlanting,
			DaysBeforeHarvest:  sched.ReminderDaysBeforeHarvest,
		}, today)
		if len(reminders) == 0 {
			continue
		}

		body := planning.RenderReminderEmail(sched.ScheduleName, sched.Plot.Name, reminders)
		subject := fmt.Sprintf("Garden Reminders: %s", sched.ScheduleName)
		if err := j.mailer.Send(sched.ReminderEmail, subject, body); err != nil {
			log.Printf("failed to send reminders for schedule %s: %v", sched.UUID, err)
			continue
		}
		log.Printf("sent %d reminders for schedule %s", len(reminders), sched.UUID)
	}
	return nil
}
