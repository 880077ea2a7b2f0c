package seeder

import (
	"context"
	"fmt"

	"hiretop/internal/database"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	DemoPassword        = "hiretop-demo"
	DemoEnterpriseEmail = "talent@acme.test"
	DemoCandidateEmail  = "ada@candidate.test"
)

// AccountsSeeder creates one demo enterprise and one demo candidate, each
// with a profile. Existing rows are left alone.
type AccountsSeeder struct {
	// Cost is the bcrypt cost; zero means bcrypt.DefaultCost.
	Cost int
}

func (AccountsSeeder) Name() string { return "accounts" }

func (s AccountsSeeder) Run(ctx context.Context, db database.DB) error {
	if err := EnsureTableColumns(ctx, db, "users", "id", "email", "password_hash", "role"); err != nil {
		return err
	}

	cost := s.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(DemoPassword), cost)
	if err != nil {
		return err
	}

	return database.WithTx(ctx, db, func(tx database.Tx) error {
		entUser, err := ensureUser(ctx, tx, DemoEnterpriseEmail, string(hash), "enterprise")
		if err != nil {
			return err
		}
		_, err = tx.Exec(ctx,
			`INSERT INTO enterprise_profiles (id, user_id, name, email, location, industry, website, description)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			 ON CONFLICT (user_id) DO NOTHING`,
			uuid.New(), entUser, "Acme Robotics", DemoEnterpriseEmail, "Paris", "Robotics",
			"https://acme.test", "We build warehouse robots and the software that drives them.",
		)
		if err != nil {
			return fmt.Errorf("enterprise profile: %w", err)
		}

		candUser, err := ensureUser(ctx, tx, DemoCandidateEmail, string(hash), "candidate")
		if err != nil {
			return err
		}
		_, err = tx.Exec(ctx,
			`INSERT INTO candidate_profiles (id, user_id, full_name, email, location, title, bio, skills, experience_years, education)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			 ON CONFLICT (user_id) DO NOTHING`,
			uuid.New(), candUser, "Ada Lovelace", DemoCandidateEmail, "Lyon", "Backend developer",
			"Backend developer who likes queues and databases.",
			[]string{"Go", "PostgreSQL", "Docker"}, 4, "MSc Computer Science",
		)
		if err != nil {
			return fmt.Errorf("candidate profile: %w", err)
		}
		return nil
	})
}

func ensureUser(ctx context.Context, tx database.Tx, email, hash, role string) (uuid.UUID, error) {
	_, err := tx.Exec(ctx,
		`INSERT INTO users (id, email, password_hash, role) VALUES ($1, $2, $3, $4)
		 ON CONFLICT (email) DO NOTHING`,
		uuid.New(), email, hash, role,
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("user %s: %w", email, err)
	}

	var id uuid.UUID
	if err := tx.QueryRow(ctx, `SELECT id FROM users WHERE email = $1`, email).Scan(&id); err != nil {
		return uuid.Nil, fmt.Errorf("user %s: %w", email, err)
	}
	return id, nil
}
