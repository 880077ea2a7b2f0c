package repository

import (
	"context"

	"hiretop/internal/database"
	"hiretop/internal/database/postgres"
	"hiretop/internal/domain/application"

	"github.com/google/uuid"
)

const ConstraintApplicationUnique = "job_applications_offer_candidate_key"

type JobApplicationRepository interface {
	Create(ctx context.Context, a application.Application) (application.Application, error)
	GetByID(ctx context.Context, id uuid.UUID) (application.Application, error)
	ListByCandidate(ctx context.Context, candidateID uuid.UUID) ([]application.Application, error)
	ListByOffer(ctx context.Context, offerID uuid.UUID) ([]application.Application, error)
	ListByEnterprise(ctx context.Context, enterpriseID uuid.UUID, status application.Status) ([]application.Application, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to application.Status) (application.Application, error)
	CountByStatus(ctx context.Context, f ApplicationCountFilter) (map[application.Status]int, error)
}

// ApplicationCountFilter selects whose applications are counted. Exactly one
// id is expected to be set.
type ApplicationCountFilter struct {
	CandidateID  uuid.UUID
	EnterpriseID uuid.UUID
}

type PostgresJobApplicationRepository struct {
	db database.Querier
}

func NewPostgresJobApplicationRepository(db database.Querier) *PostgresJobApplicationRepository {
	return &PostgresJobApplicationRepository{db: db}
}

const applicationSelect = `SELECT a.id, a.job_offer_id, a.candidate_id, a.enterprise_id, a.status, a.cover_letter,
	a.created_at, a.updated_at, COALESCE(o.title, ''), COALESCE(e.name, ''), COALESCE(c.full_name, ''), c.user_id
	FROM job_applications a
	LEFT JOIN job_offers o ON o.id = a.job_offer_id
	LEFT JOIN enterprise_profiles e ON e.id = a.enterprise_id
	JOIN candidate_profiles c ON c.id = a.candidate_id`

func (r *PostgresJobApplicationRepository) Create(ctx context.Context, a application.Application) (application.Application, error) {
	_, err := r.db.Exec(ctx,
		`INSERT INTO job_applications (id, job_offer_id, candidate_id, enterprise_id, status, cover_letter)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		a.ID, a.JobOfferID, a.CandidateID, a.EnterpriseID, string(a.Status), a.CoverLetter,
	)
	if err != nil {
		return application.Application{}, err
	}
	return r.GetByID(ctx, a.ID)
}

func (r *PostgresJobApplicationRepository) GetByID(ctx context.Context, id uuid.UUID) (application.Application, error) {
	a, err := scanApplication(r.db.QueryRow(ctx, applicationSelect+` WHERE a.id = $1`, id))
	if err != nil {
		if postgres.IsNoRows(err) {
			return application.Application{}, application.ErrNotFound
		}
		return application.Application{}, err
	}
	return a, nil
}

func (r *PostgresJobApplicationRepository) ListByCandidate(ctx context.Context, candidateID uuid.UUID) ([]application.Application, error) {
	return r.list(ctx, applicationSelect+` WHERE a.candidate_id = $1 ORDER BY a.created_at DESC`, candidateID)
}

func (r *PostgresJobApplicationRepository) ListByOffer(ctx context.Context, offerID uuid.UUID) ([]application.Application, error) {
	return r.list(ctx, applicationSelect+` WHERE a.job_offer_id = $1 ORDER BY a.created_at ASC`, offerID)
}

func (r *PostgresJobApplicationRepository) ListByEnterprise(ctx context.Context, enterpriseID uuid.UUID, status application.Status) ([]application.Application, error) {
	if status == "" {
		return r.list(ctx, applicationSelect+` WHERE a.enterprise_id = $1 ORDER BY a.created_at DESC`, enterpriseID)
	}
	return r.list(ctx,
		applicationSelect+` WHERE a.enterprise_id = $1 AND a.status = $2 ORDER BY a.created_at DESC`,
		enterpriseID, string(status),
	)
}

// UpdateStatus moves an application only if it is still in from, so two
// concurrent reviewers cannot both apply a transition.
func (r *PostgresJobApplicationRepository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to application.Status) (application.Application, error) {
	n, err := r.db.Exec(ctx,
		`UPDATE job_applications SET status = $1, updated_at = now() WHERE id = $2 AND status = $3`,
		string(to), id, string(from),
	)
	if err != nil {
		return application.Application{}, err
	}
	if n == 0 {
		return application.Application{}, application.ErrNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *PostgresJobApplicationRepository) CountByStatus(ctx context.Context, f ApplicationCountFilter) (map[application.Status]int, error) {
	col, id := "candidate_id", f.CandidateID
	if f.EnterpriseID != uuid.Nil {
		col, id = "enterprise_id", f.EnterpriseID
	}

	rows, err := r.db.Query(ctx,
		`SELECT status, COUNT(*) FROM job_applications WHERE `+col+` = $1 GROUP BY status`,
		id,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[application.Status]int, len(application.AllStatuses))
	for _, s := range application.AllStatuses {
		out[s] = 0
	}
	for rows.Next() {
		var st string
		var n int
		if err := rows.Scan(&st, &n); err != nil {
			return nil, err
		}
		out[application.Status(st)] = n
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresJobApplicationRepository) list(ctx context.Context, q string, args ...any) ([]application.Application, error) {
	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]application.Application, 0)
	for rows.Next() {
		a, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func scanApplication(row database.Row) (application.Application, error) {
	var a application.Application
	var status string
	err := row.Scan(
		&a.ID, &a.JobOfferID, &a.CandidateID, &a.EnterpriseID, &status, &a.CoverLetter,
		&a.CreatedAt, &a.UpdatedAt, &a.JobTitle, &a.EnterpriseName, &a.CandidateName, &a.CandidateUser,
	)
	if err != nil {
		return application.Application{}, err
	}
	a.Status = application.Status(status)
	return a, nil
}
