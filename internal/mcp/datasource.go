package mcp

import (
	"context"

	"github.com/claude/spotme/internal/models"
	"github.com/claude/spotme/internal/storage"
)

// DataSource abstracts the data layer for MCP tools. Both *storage.DB (local)
// and HTTPClient (remote via REST API) satisfy this interface.
type DataSource interface {
	FetchRecentWorkouts(ctx context.Context, days int) ([]models.Workout, error)
	FetchAllWorkouts(ctx context.Context) ([]models.Workout, error)
	FetchPersonalRecords(ctx context.Context, name string) ([]models.Exercise, error)
	FetchLastExercise(ctx context.Context, name string) (*models.Exercise, error)
}

// Compile-time check: *storage.DB satisfies DataSource.
var _ DataSource = (*storage.DB)(nil)
