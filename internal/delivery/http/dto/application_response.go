package dto

import (
	"time"

	"hiretop/internal/domain/application"

	"github.com/google/uuid"
)

type ApplicationResponse struct {
	ID             uuid.UUID `json:"id"`
	JobOfferID     uuid.UUID `json:"job_offer_id"`
	JobTitle       string    `json:"job_title"`
	CandidateID    uuid.UUID `json:"candidate_id"`
	CandidateName  string    `json:"candidate_name"`
	EnterpriseID   uuid.UUID `json:"enterprise_id"`
	EnterpriseName string    `json:"enterprise_name"`
	Status         string    `json:"status"`
	CoverLetter    string    `json:"cover_letter"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func FromApplication(a application.Application) ApplicationResponse {
	return ApplicationResponse{
		ID:             a.ID,
		JobOfferID:     a.JobOfferID,
		JobTitle:       a.JobTitle,
		CandidateID:    a.CandidateID,
		CandidateName:  a.CandidateName,
		EnterpriseID:   a.EnterpriseID,
		EnterpriseName: a.EnterpriseName,
		Status:         string(a.Status),
		CoverLetter:    a.CoverLetter,
		CreatedAt:      a.CreatedAt,
		UpdatedAt:      a.UpdatedAt,
	}
}

func FromApplications(items []application.Application) []ApplicationResponse {
	out := make([]ApplicationResponse, 0, len(items))
	for _, a := range items {
		out = append(out, FromApplication(a))
	}
	return out
}
