package repository

import (
	"context"
	"strconv"
	"strings"

	"hiretop/internal/database"
	"hiretop/internal/database/postgres"
	"hiretop/internal/domain/job"

	"github.com/google/uuid"
)

type JobOfferRepository interface {
	Create(ctx context.Context, o job.Offer) (job.Offer, error)
	GetByID(ctx context.Context, id uuid.UUID) (job.Offer, error)
	List(ctx context.Context, f job.Filter) ([]job.Offer, error)
	Update(ctx context.Context, o job.Offer) (job.Offer, error)
	Delete(ctx context.Context, id uuid.UUID, enterpriseID uuid.UUID) error
	ListBySkills(ctx context.Context, skills []string, excludeCandidateID uuid.UUID, limit int) ([]job.Offer, error)
	CountByStatus(ctx context.Context, enterpriseID uuid.UUID) (map[job.Status]int, error)
}

type PostgresJobOfferRepository struct {
	db database.Querier
}

func NewPostgresJobOfferRepository(db database.Querier) *PostgresJobOfferRepository {
	return &PostgresJobOfferRepository{db: db}
}

const offerSelect = `SELECT o.id, o.enterprise_id, o.title, o.description, o.location, o.contract_type, o.salary,
	o.skills, o.status, o.created_at, o.updated_at, COALESCE(e.name, ''), COALESCE(e.logo_url, '')
	FROM job_offers o
	LEFT JOIN enterprise_profiles e ON e.id = o.enterprise_id`

func (r *PostgresJobOfferRepository) Create(ctx context.Context, o job.Offer) (job.Offer, error) {
	_, err := r.db.Exec(ctx,
		`INSERT INTO job_offers (id, enterprise_id, title, description, location, contract_type, salary, skills, status)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		o.ID, o.EnterpriseID, o.Title, o.Description, o.Location, string(o.ContractType), o.Salary,
		nonNilStrings(o.Skills), string(o.Status),
	)
	if err != nil {
		return job.Offer{}, err
	}
	return r.GetByID(ctx, o.ID)
}

func (r *PostgresJobOfferRepository) GetByID(ctx context.Context, id uuid.UUID) (job.Offer, error) {
	o, err := scanOffer(r.db.QueryRow(ctx, offerSelect+` WHERE o.id = $1`, id))
	if err != nil {
		if postgres.IsNoRows(err) {
			return job.Offer{}, job.ErrNotFound
		}
		return job.Offer{}, err
	}
	return o, nil
}

func (r *PostgresJobOfferRepository) List(ctx context.Context, f job.Filter) ([]job.Offer, error) {
	limit := f.Limit
	if limit <= 0 {
		limit = 20
	}
	if limit > 50 {
		limit = 50
	}
	offset := f.Offset
	if offset < 0 {
		offset = 0
	}

	where := make([]string, 0, 5)
	args := make([]any, 0, 7)
	add := func(cond string, v any) {
		args = append(args, v)
		where = append(where, strings.ReplaceAll(cond, "?", "$"+strconv.Itoa(len(args))))
	}

	if s := strings.TrimSpace(f.Location); s != "" {
		add("lower(o.location) = lower(?)", s)
	}
	if s := strings.TrimSpace(f.Skill); s != "" {
		add("lower_skills(o.skills) @> ARRAY[lower(?::text)]", s)
	}
	if f.ContractType != "" {
		add("o.contract_type = ?", string(f.ContractType))
	}
	if f.EnterpriseID != uuid.Nil {
		add("o.enterprise_id = ?", f.EnterpriseID)
	}
	if f.Status != "" {
		add("o.status = ?", string(f.Status))
	}

	q := offerSelect
	if len(where) > 0 {
		q += " WHERE " + strings.Join(where, " AND ")
	}
	args = append(args, limit, offset)
	q += " ORDER BY o.created_at DESC LIMIT $" + strconv.Itoa(len(args)-1) + " OFFSET $" + strconv.Itoa(len(args))

	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	return collectOffers(rows)
}

func (r *PostgresJobOfferRepository) Update(ctx context.Context, o job.Offer) (job.Offer, error) {
	n, err := r.db.Exec(ctx,
		`UPDATE job_offers
		 SET title = $1, description = $2, location = $3, contract_type = $4, salary = $5, skills = $6,
		     status = $7, updated_at = now()
		 WHERE id = $8 AND enterprise_id = $9`,
		o.Title, o.Description, o.Location, string(o.ContractType), o.Salary, nonNilStrings(o.Skills),
		string(o.Status), o.ID, o.EnterpriseID,
	)
	if err != nil {
		return job.Offer{}, err
	}
	if n == 0 {
		return job.Offer{}, job.ErrNotFound
	}
	return r.GetByID(ctx, o.ID)
}

func (r *PostgresJobOfferRepository) Delete(ctx context.Context, id uuid.UUID, enterpriseID uuid.UUID) error {
	n, err := r.db.Exec(ctx, `DELETE FROM job_offers WHERE id = $1 AND enterprise_id = $2`, id, enterpriseID)
	if err != nil {
		return err
	}
	if n == 0 {
		return job.ErrNotFound
	}
	return nil
}

// ListBySkills returns open offers sharing at least one skill with skills,
// skipping offers the candidate already applied to. Matching is
// case-insensitive and served by the lower_skills GIN index.
func (r *PostgresJobOfferRepository) ListBySkills(ctx context.Context, skills []string, excludeCandidateID uuid.UUID, limit int) ([]job.Offer, error) {
	if len(skills) == 0 {
		return []job.Offer{}, nil
	}
	if limit <= 0 {
		limit = 3
	}

	lowered := make([]string, 0, len(skills))
	for _, s := range skills {
		if s = strings.ToLower(strings.TrimSpace(s)); s != "" {
			lowered = append(lowered, s)
		}
	}
	if len(lowered) == 0 {
		return []job.Offer{}, nil
	}

	rows, err := r.db.Query(ctx,
		offerSelect+`
		 WHERE o.status = 'open'
		   AND lower_skills(o.skills) && $1::text[]
		   AND NOT EXISTS (
		       SELECT 1 FROM job_applications a WHERE a.job_offer_id = o.id AND a.candidate_id = $2
		   )
		 ORDER BY o.created_at DESC
		 LIMIT $3`,
		lowered, excludeCandidateID, limit,
	)
	if err != nil {
		return nil, err
	}
	return collectOffers(rows)
}

func (r *PostgresJobOfferRepository) CountByStatus(ctx context.Context, enterpriseID uuid.UUID) (map[job.Status]int, error) {
	rows, err := r.db.Query(ctx,
		`SELECT status, COUNT(*) FROM job_offers WHERE enterprise_id = $1 GROUP BY status`,
		enterpriseID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := map[job.Status]int{job.StatusOpen: 0, job.StatusClosed: 0}
	for rows.Next() {
		var st string
		var n int
		if err := rows.Scan(&st, &n); err != nil {
			return nil, err
		}
		out[job.Status(st)] = n
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func collectOffers(rows database.Rows) ([]job.Offer, error) {
	defer rows.Close()

	out := make([]job.Offer, 0)
	for rows.Next() {
		o, err := scanOffer(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func scanOffer(row database.Row) (job.Offer, error) {
	var o job.Offer
	var contract, status string
	err := row.Scan(
		&o.ID, &o.EnterpriseID, &o.Title, &o.Description, &o.Location, &contract, &o.Salary,
		&o.Skills, &status, &o.CreatedAt, &o.UpdatedAt, &o.EnterpriseName, &o.EnterpriseLogoURL,
	)
	if err != nil {
		return job.Offer{}, err
	}
	o.ContractType = job.ContractType(contract)
	o.Status = job.Status(status)
	if o.Skills == nil {
		o.Skills = []string{}
	}
	return o, nil
}
