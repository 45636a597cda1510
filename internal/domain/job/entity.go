package job

import (
	"time"

	"github.com/google/uuid"
)

type Source struct {
	ID        uuid.UUID
	Name      string
	BaseURL   *string
	CreatedAt time.Time
}

type Job struct {
	ID             uuid.UUID
	SourceID       *uuid.UUID
	CompanyID      *uuid.UUID
	ExternalJobID  *string
	Title          string
	Company        string
	Location       string
	EmploymentType *string
	Description    string
	URL            *string
	IsActive       bool
	PostedAt       *time.Time
	IngestedAt     *time.Time
	CreatedAt      time.Time
}
