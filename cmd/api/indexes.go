package main

import (
	"context"

	driver "go.mongodb.org/mongo-driver/mongo"

	"github.com/aseguran/reporting-system/internal/infrastructure/db/mongo"
)

// ensureIndexes creates all collection indexes at startup. The unique
// compound index on reports is load-bearing: it is what makes the report
// upsert race-free, so startup fails hard when it cannot be created.
func ensureIndexes(ctx context.Context, db *driver.Database) error {
	if err := mongo.NewUserRepository(db).EnsureIndexes(ctx); err != nil {
		return err
	}
	if err := mongo.NewEmployeeRepository(db).EnsureIndexes(ctx); err != nil {
		return err
	}
	return mongo.NewReportRepository(db).EnsureIndexes(ctx)
}
