package repository

import (
	"context"

	"hiretop/internal/database"
	"hiretop/internal/database/postgres"
	"hiretop/internal/domain/candidate"

	"github.com/google/uuid"
)

type CandidateProfileRepository interface {
	Create(ctx context.Context, p candidate.Profile) (candidate.Profile, error)
	GetByID(ctx context.Context, id uuid.UUID) (candidate.Profile, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) (candidate.Profile, error)
	Update(ctx context.Context, p candidate.Profile) (candidate.Profile, error)
	SetPhotoURL(ctx context.Context, userID uuid.UUID, url string) error
	SetCVURL(ctx context.Context, userID uuid.UUID, url string) error
	DeleteByUserID(ctx context.Context, userID uuid.UUID) error
}

type PostgresCandidateProfileRepository struct {
	db database.Querier
}

func NewPostgresCandidateProfileRepository(db database.Querier) *PostgresCandidateProfileRepository {
	return &PostgresCandidateProfileRepository{db: db}
}

const candidateColumns = `id, user_id, full_name, email, phone, location, title, bio, skills,
	experience_years, education, photo_url, cv_url, created_at, updated_at`

func (r *PostgresCandidateProfileRepository) Create(ctx context.Context, p candidate.Profile) (candidate.Profile, error) {
	row := r.db.QueryRow(ctx,
		`INSERT INTO candidate_profiles
		 (id, user_id, full_name, email, phone, location, title, bio, skills, experience_years, education, photo_url, cv_url)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		 RETURNING `+candidateColumns,
		p.ID, p.UserID, p.FullName, p.Email, p.Phone, p.Location, p.Title, p.Bio, nonNilStrings(p.Skills),
		p.ExperienceYears, p.Education, p.PhotoURL, p.CVURL,
	)
	return scanCandidate(row)
}

func (r *PostgresCandidateProfileRepository) GetByID(ctx context.Context, id uuid.UUID) (candidate.Profile, error) {
	return scanCandidate(r.db.QueryRow(ctx, `SELECT `+candidateColumns+` FROM candidate_profiles WHERE id = $1`, id))
}

func (r *PostgresCandidateProfileRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (candidate.Profile, error) {
	return scanCandidate(r.db.QueryRow(ctx, `SELECT `+candidateColumns+` FROM candidate_profiles WHERE user_id = $1`, userID))
}

// Update writes the editable fields. File URLs are owned by SetPhotoURL and
// SetCVURL.
func (r *PostgresCandidateProfileRepository) Update(ctx context.Context, p candidate.Profile) (candidate.Profile, error) {
	row := r.db.QueryRow(ctx,
		`UPDATE candidate_profiles
		 SET full_name = $1, email = $2, phone = $3, location = $4, title = $5, bio = $6, skills = $7,
		     experience_years = $8, education = $9, updated_at = now()
		 WHERE id = $10 AND user_id = $11
		 RETURNING `+candidateColumns,
		p.FullName, p.Email, p.Phone, p.Location, p.Title, p.Bio, nonNilStrings(p.Skills),
		p.ExperienceYears, p.Education, p.ID, p.UserID,
	)
	return scanCandidate(row)
}

func (r *PostgresCandidateProfileRepository) SetPhotoURL(ctx context.Context, userID uuid.UUID, url string) error {
	return r.setURL(ctx, "photo_url", userID, url)
}

func (r *PostgresCandidateProfileRepository) SetCVURL(ctx context.Context, userID uuid.UUID, url string) error {
	return r.setURL(ctx, "cv_url", userID, url)
}

func (r *PostgresCandidateProfileRepository) setURL(ctx context.Context, column string, userID uuid.UUID, url string) error {
	n, err := r.db.Exec(ctx, `UPDATE candidate_profiles SET `+column+` = $1, updated_at = now() WHERE user_id = $2`, url, userID)
	if err != nil {
		return err
	}
	if n == 0 {
		return candidate.ErrNotFound
	}
	return nil
}

func (r *PostgresCandidateProfileRepository) DeleteByUserID(ctx context.Context, userID uuid.UUID) error {
	n, err := r.db.Exec(ctx, `DELETE FROM candidate_profiles WHERE user_id = $1`, userID)
	if err != nil {
		return err
	}
	if n == 0 {
		return candidate.ErrNotFound
	}
	return nil
}

func scanCandidate(row database.Row) (candidate.Profile, error) {
	var p candidate.Profile
	err := row.Scan(
		&p.ID, &p.UserID, &p.FullName, &p.Email, &p.Phone, &p.Location, &p.Title, &p.Bio, &p.Skills,
		&p.ExperienceYears, &p.Education, &p.PhotoURL, &p.CVURL, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if postgres.IsNoRows(err) {
			return candidate.Profile{}, candidate.ErrNotFound
		}
		return candidate.Profile{}, err
	}
	if p.Skills == nil {
		p.Skills = []string{}
	}
	return p, nil
}

func nonNilStrings(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}
