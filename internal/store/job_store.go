package store

import (
	"context"
	"errors"

	"github.com/TonyStark-47/Job-Application-Tracker/internal/models"
	"gorm.io/gorm"
)

type JobStore struct{ db *gorm.DB }

func (s *Store) Jobs() *JobStore { return &JobStore{db: s.DB} }

// Columns covered by free-text search.
var searchColumns = []string{"job_title", "company", "status", "location", "date", "link"}

func (j *JobStore) Create(ctx context.Context, job *models.JobApplication) error {
	return j.db.WithContext(ctx).Create(job).Error
}

func (j *JobStore) GetByID(ctx context.Context, id uint) (*models.JobApplication, error) {
	var job models.JobApplication
	if err := j.db.WithContext(ctx).First(&job, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return &job, nil
}

func (j *JobStore) Update(ctx context.Context, job *models.JobApplication) error {
	return j.db.WithContext(ctx).Save(job).Error
}

func (j *JobStore) Delete(ctx context.Context, id uint) error {
	tx := j.db.WithContext(ctx).Delete(&models.JobApplication{}, "id = ?", id)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}

func (j *JobStore) ListByUser(ctx context.Context, userID uint) ([]models.JobApplication, error) {
	var jobs []models.JobApplication
	err := j.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("date DESC").
		Find(&jobs).Error
	return jobs, err
}

// Search does a case-insensitive substring match across all six text
// columns, OR-combined, scoped to the owner.
func (j *JobStore) Search(ctx context.Context, userID uint, text string) ([]models.JobApplication, error) {
	pattern := "%" + text + "%"

	q := j.db.WithContext(ctx).Where("user_id = ?", userID)
	var or *gorm.DB
	for i, col := range searchColumns {
		if i == 0 {
			or = j.db.Where(col+" ILIKE ?", pattern)
			continue
		}
		or = or.Or(col+" ILIKE ?", pattern)
	}

	var jobs []models.JobApplication
	err := q.Where(or).Order("date DESC").Find(&jobs).Error
	return jobs, err
}

// DueOn returns records scheduled on the given date that have not yet been
// reminded about today, with the owning user preloaded.
func (j *JobStore) DueOn(ctx context.Context, date string) ([]models.JobApplication, error) {
	var jobs []models.JobApplication
	err := j.db.WithContext(ctx).
		Preload("User").
		Where("date = ? AND notified_on <> ?", date, date).
		Find(&jobs).Error
	return jobs, err
}

func (j *JobStore) MarkNotified(ctx context.Context, id uint, date string) error {
	return j.db.WithContext(ctx).
		Model(&models.JobApplication{}).
		Where("id = ?", id).
		Update("notified_on", date).Error
}
