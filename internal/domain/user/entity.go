package user

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("user not found")

type Role string

const (
	RoleCandidate  Role = "candidate"
	RoleEnterprise Role = "enterprise"
)

func (r Role) Valid() bool {
	return r == RoleCandidate || r == RoleEnterprise
}

type User struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
