package usecase

import (
	"context"
	"errors"

	"jobpath/internal/repository"

	"github.com/google/uuid"
)

var ErrCompanyNotFound = errors.New("company not found")

type CompanyItem struct {
	CompanyID   uuid.UUID `json:"company_id"`
	Name        string    `json:"name"`
	Website     string    `json:"website"`
	Industry    string    `json:"industry"`
	Description string    `json:"description"`
	OpenJobs    int       `json:"open_jobs"`
}

type CompanyDetail struct {
	CompanyItem
	Jobs []JobItem `json:"jobs"`
}

type CompanyUsecase interface {
	ListCompanies(ctx context.Context, search string, limit, offset int) ([]CompanyItem, error)
	GetCompany(ctx context.Context, id uuid.UUID) (CompanyDetail, error)
}

type Companies struct {
	repo repository.CompanyRepository
}

func NewCompanyUsecase(repo repository.CompanyRepository) *Companies {
	return &Companies{repo: repo}
}

func (u *Companies) ListCompanies(ctx context.Context, search string, limit, offset int) ([]CompanyItem, error) {
	if limit < 0 || offset < 0 {
		return nil, ErrInvalidInput
	}

	items, err := u.repo.ListCompanies(ctx, search, limit, offset)
	if err != nil {
		return nil, ErrInternal
	}

	out := make([]CompanyItem, 0, len(items))
	for _, c := range items {
		out = append(out, toCompanyItem(c))
	}
	return out, nil
}

func (u *Companies) GetCompany(ctx context.Context, id uuid.UUID) (CompanyDetail, error) {
	if id == uuid.Nil {
		return CompanyDetail{}, ErrInvalidInput
	}

	c, err := u.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrCompanyNotFound) {
			return CompanyDetail{}, ErrCompanyNotFound
		}
		return CompanyDetail{}, ErrInternal
	}

	jobs, err := u.repo.OpenJobsByCompanyName(ctx, c.Name, 20)
	if err != nil {
		return CompanyDetail{}, ErrInternal
	}

	detail := CompanyDetail{CompanyItem: toCompanyItem(c), Jobs: make([]JobItem, 0, len(jobs))}
	for _, j := range jobs {
		detail.Jobs = append(detail.Jobs, toJobItem(j, nil))
	}
	return detail, nil
}

func toCompanyItem(c repository.Company) CompanyItem {
	return CompanyItem{
		CompanyID:   c.ID,
		Name:        c.Name,
		Website:     c.Website,
		Industry:    c.Industry,
		Description: c.Description,
		OpenJobs:    c.OpenJobs,
	}
}
