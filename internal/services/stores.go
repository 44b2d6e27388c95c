package services

import (
	"context"

	"github.com/TonyStark-47/Job-Application-Tracker/internal/models"
)

// Narrow views of the persistence layer. The gorm-backed *store.UserStore
// and *store.JobStore satisfy these; tests substitute in-memory fakes.
// Implementations report missing rows as store.ErrRecordNotFound and email
// uniqueness violations as store.ErrDuplicateEmail.

type userStore interface {
	Create(ctx context.Context, usr *models.User) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

type jobStore interface {
	Create(ctx context.Context, job *models.JobApplication) error
	GetByID(ctx context.Context, id uint) (*models.JobApplication, error)
	Update(ctx context.Context, job *models.JobApplication) error
	Delete(ctx context.Context, id uint) error
	ListByUser(ctx context.Context, userID uint) ([]models.JobApplication, error)
	Search(ctx context.Context, userID uint, text string) ([]models.JobApplication, error)
}

type reminderStore interface {
	DueOn(ctx context.Context, date string) ([]models.JobApplication, error)
	MarkNotified(ctx context.Context, id uint, date string) error
}
