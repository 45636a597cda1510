package dto

import "github.com/google/uuid"

type JobResponse struct {
	JobID       uuid.UUID `json:"job_id"`
	Title       string    `json:"title"`
	Company     string    `json:"company"`
	Location    string    `json:"location"`
	Description string    `json:"description"`
	URL         string    `json:"url"`
	Skills      []string  `json:"skills"`
	PostedDate  string    `json:"posted_date"`
}
