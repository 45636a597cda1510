package dto

import "github.com/google/uuid"

type EducationResponse struct {
	ID           uuid.UUID `json:"id"`
	Institution  string    `json:"institution"`
	Degree       string    `json:"degree"`
	FieldOfStudy string    `json:"field_of_study"`
	StartYear    *int      `json:"start_year"`
	EndYear      *int      `json:"end_year"`
}

type ExperienceResponse struct {
	ID          uuid.UUID `json:"id"`
	Company     string    `json:"company"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	StartDate   string    `json:"start_date"`
	EndDate     string    `json:"end_date"`
}

type PreferencesResponse struct {
	DesiredRoles       []string `json:"desired_roles"`
	PreferredLocations []string `json:"preferred_locations"`
	MinSalary          *int64   `json:"min_salary"`
	MaxSalary          *int64   `json:"max_salary"`
	RemoteOK           bool     `json:"remote_ok"`
}

type CompletenessResponse struct {
	Education   bool `json:"education"`
	Experience  bool `json:"experience"`
	Skills      bool `json:"skills"`
	Preferences bool `json:"preferences"`
	Percent     int  `json:"percent"`
}
