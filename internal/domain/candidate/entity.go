package candidate

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("candidate profile not found")

type Profile struct {
	ID              uuid.UUID
	UserID          uuid.UUID
	FullName        string
	Email           string
	Phone           string
	Location        string
	Title           string
	Bio             string
	Skills          []string
	ExperienceYears int
	Education       string
	PhotoURL        string
	CVURL           string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// NormalizeSkills trims entries, drops empties and removes case-insensitive
// duplicates while keeping the first spelling seen.
func NormalizeSkills(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, s := range in {
		s = strings.Join(strings.Fields(s), " ")
		if s == "" {
			continue
		}
		k := strings.ToLower(s)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, s)
	}
	return out
}
