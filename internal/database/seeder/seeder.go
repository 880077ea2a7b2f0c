package seeder

import (
	"context"

	"hiretop/internal/database"
)

type Seeder interface {
	Name() string
	Run(ctx context.Context, db database.DB) error
}
