package enterprise

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("enterprise profile not found")

type Profile struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Name        string
	Email       string
	Phone       string
	Location    string
	Industry    string
	Website     string
	Description string
	LogoURL     string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
