package seeder

import (
	"context"
	"fmt"

	"hiretop/internal/database"

	"github.com/google/uuid"
)

// JobOffersSeeder publishes a handful of offers for the demo enterprise. It
// does nothing once that enterprise has any offer.
type JobOffersSeeder struct{}

func (JobOffersSeeder) Name() string { return "job_offers" }

type demoOffer struct {
	Title        string
	Description  string
	Location     string
	ContractType string
	Salary       string
	Skills       []string
}

var demoOffers = []demoOffer{
	{"Backend Engineer (Go)", "Own the fleet telemetry API.", "Paris", "full_time", "55-65k EUR", []string{"Go", "PostgreSQL", "Kubernetes"}},
	{"Platform Engineer", "Keep our clusters boring.", "Remote", "full_time", "60-70k EUR", []string{"Docker", "Kubernetes", "Terraform"}},
	{"Data Intern", "Help us clean six years of sensor data.", "Paris", "internship", "1.2k EUR/month", []string{"Python", "SQL"}},
	{"Mobile Developer", "Ship the operator app.", "Lyon", "freelance", "450 EUR/day", []string{"Kotlin", "Android"}},
}

func (JobOffersSeeder) Run(ctx context.Context, db database.DB) error {
	if err := EnsureTableColumns(ctx, db, "job_offers", "id", "enterprise_id", "title", "skills", "status"); err != nil {
		return err
	}

	return database.WithTx(ctx, db, func(tx database.Tx) error {
		var enterpriseID uuid.UUID
		err := tx.QueryRow(ctx,
			`SELECT ep.id FROM enterprise_profiles ep JOIN users u ON u.id = ep.user_id WHERE u.email = $1`,
			DemoEnterpriseEmail,
		).Scan(&enterpriseID)
		if err != nil {
			return fmt.Errorf("demo enterprise: %w", err)
		}

		var existing int
		if err := tx.QueryRow(ctx, `SELECT count(*) FROM job_offers WHERE enterprise_id = $1`, enterpriseID).Scan(&existing); err != nil {
			return err
		}
		if existing > 0 {
			return nil
		}

		for _, o := range demoOffers {
			_, err := tx.Exec(ctx,
				`INSERT INTO job_offers (id, enterprise_id, title, description, location, contract_type, salary, skills)
				 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
				uuid.New(), enterpriseID, o.Title, o.Description, o.Location, o.ContractType, o.Salary, o.Skills,
			)
			if err != nil {
				return fmt.Errorf("offer %q: %w", o.Title, err)
			}
		}
		return nil
	})
}
