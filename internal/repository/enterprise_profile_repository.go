package repository

import (
	"context"

	"hiretop/internal/database"
	"hiretop/internal/database/postgres"
	"hiretop/internal/domain/enterprise"

	"github.com/google/uuid"
)

type EnterpriseProfileRepository interface {
	Create(ctx context.Context, p enterprise.Profile) (enterprise.Profile, error)
	GetByID(ctx context.Context, id uuid.UUID) (enterprise.Profile, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) (enterprise.Profile, error)
	Update(ctx context.Context, p enterprise.Profile) (enterprise.Profile, error)
	SetLogoURL(ctx context.Context, userID uuid.UUID, url string) error
	DeleteByUserID(ctx context.Context, userID uuid.UUID) error
}

type PostgresEnterpriseProfileRepository struct {
	db database.Querier
}

func NewPostgresEnterpriseProfileRepository(db database.Querier) *PostgresEnterpriseProfileRepository {
	return &PostgresEnterpriseProfileRepository{db: db}
}

const enterpriseColumns = `id, user_id, name, email, phone, location, industry, website, description, logo_url,
	created_at, updated_at`

func (r *PostgresEnterpriseProfileRepository) Create(ctx context.Context, p enterprise.Profile) (enterprise.Profile, error) {
	row := r.db.QueryRow(ctx,
		`INSERT INTO enterprise_profiles
		 (id, user_id, name, email, phone, location, industry, website, description, logo_url)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 RETURNING `+enterpriseColumns,
		p.ID, p.UserID, p.Name, p.Email, p.Phone, p.Location, p.Industry, p.Website, p.Description, p.LogoURL,
	)
	return scanEnterprise(row)
}

func (r *PostgresEnterpriseProfileRepository) GetByID(ctx context.Context, id uuid.UUID) (enterprise.Profile, error) {
	return scanEnterprise(r.db.QueryRow(ctx, `SELECT `+enterpriseColumns+` FROM enterprise_profiles WHERE id = $1`, id))
}

func (r *PostgresEnterpriseProfileRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (enterprise.Profile, error) {
	return scanEnterprise(r.db.QueryRow(ctx, `SELECT `+enterpriseColumns+` FROM enterprise_profiles WHERE user_id = $1`, userID))
}

// Update writes the editable fields; logo_url is set by SetLogoURL.
func (r *PostgresEnterpriseProfileRepository) Update(ctx context.Context, p enterprise.Profile) (enterprise.Profile, error) {
	row := r.db.QueryRow(ctx,
		`UPDATE enterprise_profiles
		 SET name = $1, email = $2, phone = $3, location = $4, industry = $5, website = $6, description = $7,
		     updated_at = now()
		 WHERE id = $8 AND user_id = $9
		 RETURNING `+enterpriseColumns,
		p.Name, p.Email, p.Phone, p.Location, p.Industry, p.Website, p.Description, p.ID, p.UserID,
	)
	return scanEnterprise(row)
}

func (r *PostgresEnterpriseProfileRepository) SetLogoURL(ctx context.Context, userID uuid.UUID, url string) error {
	n, err := r.db.Exec(ctx, `UPDATE enterprise_profiles SET logo_url = $1, updated_at = now() WHERE user_id = $2`, url, userID)
	if err != nil {
		return err
	}
	if n == 0 {
		return enterprise.ErrNotFound
	}
	return nil
}

func (r *PostgresEnterpriseProfileRepository) DeleteByUserID(ctx context.Context, userID uuid.UUID) error {
	n, err := r.db.Exec(ctx, `DELETE FROM enterprise_profiles WHERE user_id = $1`, userID)
	if err != nil {
		return err
	}
	if n == 0 {
		return enterprise.ErrNotFound
	}
	return nil
}

func scanEnterprise(row database.Row) (enterprise.Profile, error) {
	var p enterprise.Profile
	err := row.Scan(
		&p.ID, &p.UserID, &p.Name, &p.Email, &p.Phone, &p.Location, &p.Industry, &p.Website, &p.Description,
		&p.LogoURL, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if postgres.IsNoRows(err) {
			return enterprise.Profile{}, enterprise.ErrNotFound
		}
		return enterprise.Profile{}, err
	}
	return p, nil
}
