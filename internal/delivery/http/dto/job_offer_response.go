package dto

import (
	"time"

	"hiretop/internal/domain/job"

	"github.com/google/uuid"
)

type JobOfferResponse struct {
	ID                uuid.UUID `json:"id"`
	EnterpriseID      uuid.UUID `json:"enterprise_id"`
	EnterpriseName    string    `json:"enterprise_name"`
	EnterpriseLogoURL string    `json:"enterprise_logo_url"`
	Title             string    `json:"title"`
	Description       string    `json:"description"`
	Location          string    `json:"location"`
	ContractType      string    `json:"contract_type"`
	Salary            string    `json:"salary"`
	Skills            []string  `json:"skills"`
	Status            string    `json:"status"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

func FromJobOffer(o job.Offer) JobOfferResponse {
	skills := o.Skills
	if skills == nil {
		skills = []string{}
	}
	return JobOfferResponse{
		ID:                o.ID,
		EnterpriseID:      o.EnterpriseID,
		EnterpriseName:    o.EnterpriseName,
		EnterpriseLogoURL: o.EnterpriseLogoURL,
		Title:             o.Title,
		Description:       o.Description,
		Location:          o.Location,
		ContractType:      string(o.ContractType),
		Salary:            o.Salary,
		Skills:            skills,
		Status:            string(o.Status),
		CreatedAt:         o.CreatedAt,
		UpdatedAt:         o.UpdatedAt,
	}
}

func FromJobOffers(items []job.Offer) []JobOfferResponse {
	out := make([]JobOfferResponse, 0, len(items))
	for _, o := range items {
		out = append(out, FromJobOffer(o))
	}
	return out
}
