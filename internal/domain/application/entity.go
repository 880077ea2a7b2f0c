package application

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("job application not found")

type Status string

const (
	StatusPending   Status = "pending"
	StatusReviewed  Status = "reviewed"
	StatusInterview Status = "interview"
	StatusAccepted  Status = "accepted"
	StatusRejected  Status = "rejected"
	StatusWithdrawn Status = "withdrawn"
)

// AllStatuses lists every stage in pipeline order.
var AllStatuses = []Status{
	StatusPending,
	StatusReviewed,
	StatusInterview,
	StatusAccepted,
	StatusRejected,
	StatusWithdrawn,
}

var stageRank = map[Status]int{
	StatusPending:   0,
	StatusReviewed:  1,
	StatusInterview: 2,
}

func (s Status) Valid() bool {
	for _, v := range AllStatuses {
		if v == s {
			return true
		}
	}
	return false
}

func (s Status) Terminal() bool {
	return s == StatusAccepted || s == StatusRejected || s == StatusWithdrawn
}

// CanTransition reports whether an enterprise may move an application from
// one stage to another. Stages only move forward; accepted and rejected are
// reachable from any open stage; terminal stages never change.
func CanTransition(from, to Status) bool {
	if !from.Valid() || !to.Valid() || from.Terminal() || from == to {
		return false
	}
	if to == StatusWithdrawn {
		return false
	}
	if to == StatusAccepted || to == StatusRejected {
		return true
	}
	return stageRank[to] > stageRank[from]
}

type Application struct {
	ID           uuid.UUID
	JobOfferID   uuid.UUID
	CandidateID  uuid.UUID
	EnterpriseID uuid.UUID
	Status       Status
	CoverLetter  string
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// Read-side joins.
	JobTitle       string
	EnterpriseName string
	CandidateName  string
	CandidateUser  uuid.UUID
}
