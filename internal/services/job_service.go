package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/TonyStark-47/Job-Application-Tracker/internal/dtos"
	"github.com/TonyStark-47/Job-Application-Tracker/internal/models"
	"github.com/TonyStark-47/Job-Application-Tracker/internal/store"
)

// JobService owns the job-application records. Every operation is scoped to
// the calling user; records owned by someone else are indistinguishable from
// missing ones.
type JobService struct {
	jobs   jobStore
	logger *slog.Logger
}

func NewJobService(jobs jobStore, logger *slog.Logger) *JobService {
	return &JobService{jobs: jobs, logger: logger}
}

func (s *JobService) Create(ctx context.Context, userID uint, req *dtos.JobRequest) (*models.JobApplication, error) {
	if err := validateDate(req.Date); err != nil {
		return nil, err
	}

	job := &models.JobApplication{
		UserID:   userID,
		JobTitle: req.JobTitle,
		Company:  req.Company,
		Status:   req.Status,
		Location: req.Location,
		Date:     req.Date,
		Link:     req.Link,
	}
	if err := s.jobs.Create(ctx, job); err != nil {
		return nil, err
	}
	return job, nil
}

func (s *JobService) Get(ctx context.Context, userID, id uint) (*models.JobApplication, error) {
	return s.getOwned(ctx, userID, id)
}

func (s *JobService) List(ctx context.Context, userID uint) ([]models.JobApplication, error) {
	return s.jobs.ListByUser(ctx, userID)
}

func (s *JobService) Update(ctx context.Context, userID, id uint, req *dtos.JobRequest) (*models.JobApplication, error) {
	if err := validateDate(req.Date); err != nil {
		return nil, err
	}

	job, err := s.getOwned(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	job.JobTitle = req.JobTitle
	job.Company = req.Company
	job.Status = req.Status
	job.Location = req.Location
	job.Date = req.Date
	job.Link = req.Link

	if err := s.jobs.Update(ctx, job); err != nil {
		return nil, err
	}
	return job, nil
}

func (s *JobService) Delete(ctx context.Context, userID, id uint) error {
	if _, err := s.getOwned(ctx, userID, id); err != nil {
		return err
	}
	return s.jobs.Delete(ctx, id)
}

func (s *JobService) Search(ctx context.Context, userID uint, text string) ([]models.JobApplication, error) {
	if text == "" {
		return s.jobs.ListByUser(ctx, userID)
	}
	return s.jobs.Search(ctx, userID, text)
}

func (s *JobService) getOwned(ctx context.Context, userID, id uint) (*models.JobApplication, error) {
	job, err := s.jobs.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if job.UserID != userID {
		// Don't leak that the record exists under another owner.
		return nil, store.ErrRecordNotFound
	}
	return job, nil
}

func validateDate(date string) error {
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidDate, err)
	}
	return nil
}
