package models

import (
	"time"

	"gorm.io/gorm"
)

// Canonical application statuses. The extractor may store a best-guess label
// outside this set when a posting doesn't fit any of them.
const (
	StatusApplied           = "Applied"
	StatusInterviewed       = "Interviewed"
	StatusRejected          = "Rejected"
	StatusOffered           = "Offered"
	StatusAwaitingInterview = "Awaiting Interview"
)

type User struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Email        string `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"not null" json:"-"`
	Name         string `gorm:"not null" json:"name"`

	// 'omitempty' prevents infinite loops when fetching a User -> Jobs -> User -> ...
	JobApplications []JobApplication `json:"job_applications,omitempty"`
}

type JobApplication struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Foreign Key
	UserID uint `gorm:"index;not null" json:"user_id"`
	// Association: GORM needs Preload() to fill this
	User User `json:"-"`

	JobTitle string `gorm:"not null" json:"job_title"`
	Company  string `gorm:"not null" json:"company"`
	Status   string `gorm:"default:'Applied'" json:"status"`
	Location string `json:"location"`
	// Calendar date in YYYY-MM-DD form. Kept as a string so the daily
	// reminder query is a plain equality.
	Date string `gorm:"not null" json:"date"`
	Link string `json:"link"`

	// Date (YYYY-MM-DD) of the last reminder sent for this record. Empty
	// until the first reminder goes out.
	NotifiedOn string `gorm:"default:''" json:"-"`
}
