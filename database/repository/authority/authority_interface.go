package authorityRepo

import (
	"context"

	"govconnect/models"
)

// AuthorityRepository is the directory of government authorities.
type AuthorityRepository interface {
	// GetByID retrieves an authority by its unique ID. NotFound when absent.
	GetByID(ctx context.Context, id string) (*models.Authority, error)
	// GetAll retrieves every authority ordered by name.
	GetAll(ctx context.Context) ([]models.Authority, error)
	// GetByCategory returns the authorities of one service category.
	GetByCategory(ctx context.Context, category string) ([]models.Authority, error)
	// Upsert creates or replaces an authority record.
	Upsert(ctx context.Context, authority *models.Authority) error
	EnsureIndexes(ctx context.Context) error
}
