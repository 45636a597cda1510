package dto

import "github.com/google/uuid"

type RecommendationResponse struct {
	JobID           uuid.UUID `json:"job_id"`
	Title           string    `json:"title"`
	Company         string    `json:"company"`
	Location        string    `json:"location"`
	URL             string    `json:"url"`
	Skills          []string  `json:"skills"`
	SimilarityScore float64   `json:"similarity_score"`
	PostedDate      string    `json:"posted_date"`
}
