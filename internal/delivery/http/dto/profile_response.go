package dto

import (
	"time"

	"hiretop/internal/domain/candidate"
	"hiretop/internal/domain/enterprise"

	"github.com/google/uuid"
)

type CandidateProfileResponse struct {
	ID              uuid.UUID `json:"id"`
	UserID          uuid.UUID `json:"user_id"`
	FullName        string    `json:"full_name"`
	Email           string    `json:"email"`
	Phone           string    `json:"phone"`
	Location        string    `json:"location"`
	Title           string    `json:"title"`
	Bio             string    `json:"bio"`
	Skills          []string  `json:"skills"`
	ExperienceYears int       `json:"experience_years"`
	Education       string    `json:"education"`
	PhotoURL        string    `json:"photo_url"`
	CVURL           string    `json:"cv_url"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func FromCandidate(p candidate.Profile) CandidateProfileResponse {
	skills := p.Skills
	if skills == nil {
		skills = []string{}
	}
	return CandidateProfileResponse{
		ID:              p.ID,
		UserID:          p.UserID,
		FullName:        p.FullName,
		Email:           p.Email,
		Phone:           p.Phone,
		Location:        p.Location,
		Title:           p.Title,
		Bio:             p.Bio,
		Skills:          skills,
		ExperienceYears: p.ExperienceYears,
		Education:       p.Education,
		PhotoURL:        p.PhotoURL,
		CVURL:           p.CVURL,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}

type EnterpriseProfileResponse struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone"`
	Location    string    `json:"location"`
	Industry    string    `json:"industry"`
	Website     string    `json:"website"`
	Description string    `json:"description"`
	LogoURL     string    `json:"logo_url"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func FromEnterprise(p enterprise.Profile) EnterpriseProfileResponse {
	return EnterpriseProfileResponse{
		ID:          p.ID,
		UserID:      p.UserID,
		Name:        p.Name,
		Email:       p.Email,
		Phone:       p.Phone,
		Location:    p.Location,
		Industry:    p.Industry,
		Website:     p.Website,
		Description: p.Description,
		LogoURL:     p.LogoURL,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
