package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/TonyStark-47/Job-Application-Tracker/internal/mailer"
)

// ReminderService emails users about records dated today. It fires once per
// day at a fixed wall-clock hour in a fixed timezone. Each record carries a
// notified_on watermark so a restarted process does not mail the same
// reminder twice in one day.
type ReminderService struct {
	jobs   reminderStore
	mail   mailer.Mailer
	logger *slog.Logger
	hour   int
	loc    *time.Location
}

func NewReminderService(jobs reminderStore, mail mailer.Mailer, logger *slog.Logger, hour int, loc *time.Location) *ReminderService {
	return &ReminderService{jobs: jobs, mail: mail, logger: logger, hour: hour, loc: loc}
}

// Start launches the background schedule loop. It stops when ctx is
// cancelled.
func (s *ReminderService) Start(ctx context.Context) {
	go func() {
		for {
			now := time.Now().In(s.loc)
			timer := time.NewTimer(time.Until(s.nextRun(now)))
			select {
			case <-ctx.Done():
				timer.Stop()
				return
			case <-timer.C:
			}
			today := time.Now().In(s.loc).Format("2006-01-02")
			s.RunOnce(ctx, today)
		}
	}()
}

// nextRun is the next occurrence of the configured hour, today if it hasn't
// passed yet, otherwise tomorrow.
func (s *ReminderService) nextRun(now time.Time) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), s.hour, 0, 0, 0, s.loc)
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}

// RunOnce sends one reminder per record due on the given date that hasn't
// been notified yet. Each send is independent: a failure is logged, the
// watermark for that record is left untouched, and the batch continues.
// Returns the number of reminders delivered.
func (s *ReminderService) RunOnce(ctx context.Context, today string) int {
	jobs, err := s.jobs.DueOn(ctx, today)
	if err != nil {
		s.logger.Error("reminder scan failed", "date", today, "error", err)
		return 0
	}
	if len(jobs) == 0 {
		return 0
	}

	s.logger.Info("sending interview reminders", "date", today, "due", len(jobs))

	sent := 0
	for _, job := range jobs {
		subject := fmt.Sprintf("Upcoming Interview Reminder: %s at %s", job.JobTitle, job.Company)
		body := fmt.Sprintf(
			"Your interview for %s at %s is scheduled on %s.\nYour status of the application is: %s\nBest of luck!",
			job.JobTitle, job.Company, job.Date, job.Status,
		)

		if err := s.mail.Send(ctx, job.User.Email, subject, body); err != nil {
			s.logger.Error("reminder send failed", "job_id", job.ID, "to", job.User.Email, "error", err)
			continue
		}
		if err := s.jobs.MarkNotified(ctx, job.ID, today); err != nil {
			s.logger.Error("reminder watermark update failed", "job_id", job.ID, "error", err)
		}
		sent++
	}
	return sent
}
