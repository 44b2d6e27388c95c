package services

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/TonyStark-47/Job-Application-Tracker/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedDueJob(t *testing.T, jobs *fakeJobStore, email, title, date string) *models.JobApplication {
	t.Helper()
	job := &models.JobApplication{
		UserID:   1,
		User:     models.User{Email: email},
		JobTitle: title,
		Company:  "Acme",
		Status:   models.StatusAwaitingInterview,
		Date:     date,
	}
	require.NoError(t, jobs.Create(context.Background(), job))
	return job
}

func TestReminderRunOnceSendsPerDueRecord(t *testing.T) {
	jobs := newFakeJobStore()
	mail := &fakeMailer{}
	svc := NewReminderService(jobs, mail, slog.Default(), 16, time.UTC)

	seedDueJob(t, jobs, "a@example.com", "Dev", "2025-03-04")
	seedDueJob(t, jobs, "b@example.com", "Analyst", "2025-03-04")
	seedDueJob(t, jobs, "c@example.com", "Intern", "2025-03-05") // not due today

	sent := svc.RunOnce(context.Background(), "2025-03-04")
	assert.Equal(t, 2, sent)

	mails := mail.sentTo("a@example.com")
	require.Len(t, mails, 1)
	assert.Contains(t, mails[0].Subject, "Upcoming Interview Reminder: Dev at Acme")
	assert.Contains(t, mails[0].Body, "scheduled on 2025-03-04")
	assert.Contains(t, mails[0].Body, models.StatusAwaitingInterview)
	assert.Empty(t, mail.sentTo("c@example.com"))
}

func TestReminderRunTwiceSameDayIsIdempotent(t *testing.T) {
	jobs := newFakeJobStore()
	mail := &fakeMailer{}
	svc := NewReminderService(jobs, mail, slog.Default(), 16, time.UTC)

	seedDueJob(t, jobs, "a@example.com", "Dev", "2025-03-04")

	assert.Equal(t, 1, svc.RunOnce(context.Background(), "2025-03-04"))
	// A restart within the same day must not mail again: the watermark holds.
	assert.Equal(t, 0, svc.RunOnce(context.Background(), "2025-03-04"))
	assert.Len(t, mail.sentTo("a@example.com"), 1)
}

func TestReminderSendFailureSkipsRecordButContinues(t *testing.T) {
	jobs := newFakeJobStore()
	mail := &fakeMailer{failTo: map[string]error{"a@example.com": errors.New("mailbox unavailable")}}
	svc := NewReminderService(jobs, mail, slog.Default(), 16, time.UTC)

	seedDueJob(t, jobs, "a@example.com", "Dev", "2025-03-04")
	seedDueJob(t, jobs, "b@example.com", "Analyst", "2025-03-04")

	assert.Equal(t, 1, svc.RunOnce(context.Background(), "2025-03-04"))
	assert.Len(t, mail.sentTo("b@example.com"), 1)

	// The failed record keeps an empty watermark, so the next run retries it.
	mail.failTo = nil
	assert.Equal(t, 1, svc.RunOnce(context.Background(), "2025-03-04"))
	assert.Len(t, mail.sentTo("a@example.com"), 1)
}

func TestReminderNextRun(t *testing.T) {
	svc := NewReminderService(newFakeJobStore(), &fakeMailer{}, slog.Default(), 16, time.UTC)

	before := time.Date(2025, 3, 4, 9, 30, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2025, 3, 4, 16, 0, 0, 0, time.UTC), svc.nextRun(before))

	// At or past the hour, the next run is tomorrow.
	at := time.Date(2025, 3, 4, 16, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2025, 3, 5, 16, 0, 0, 0, time.UTC), svc.nextRun(at))
}
