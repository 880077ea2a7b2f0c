package job

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("job offer not found")

type Status string

const (
	StatusOpen   Status = "open"
	StatusClosed Status = "closed"
)

func (s Status) Valid() bool {
	return s == StatusOpen || s == StatusClosed
}

type ContractType string

const (
	ContractFullTime   ContractType = "full_time"
	ContractPartTime   ContractType = "part_time"
	ContractInternship ContractType = "internship"
	ContractFreelance  ContractType = "freelance"
	ContractTemporary  ContractType = "temporary"
)

func (c ContractType) Valid() bool {
	switch c {
	case ContractFullTime, ContractPartTime, ContractInternship, ContractFreelance, ContractTemporary:
		return true
	default:
		return false
	}
}

type Offer struct {
	ID           uuid.UUID
	EnterpriseID uuid.UUID
	Title        string
	Description  string
	Location     string
	ContractType ContractType
	Salary       string
	Skills       []string
	Status       Status
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// Read-side join, empty on writes.
	EnterpriseName    string
	EnterpriseLogoURL string
}

type Filter struct {
	Location     string
	Skill        string
	ContractType ContractType
	EnterpriseID uuid.UUID
	Status       Status
	Limit        int
	Offset       int
}
