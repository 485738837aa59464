package repository

import (
	"context"

	"creedava-api/domain/model"
)

// ILead persists contact-form leads.
type ILead interface {
	Create(ctx context.Context, lead *model.Lead) error
	GetByID(ctx context.Context, id int64) (*model.Lead, error)
	// List returns a page of leads, newest first, optionally filtered by status.
	List(ctx context.Context, status string, limit, offset int) ([]model.Lead, int64, error)
	Update(ctx context.Context, lead *model.Lead) error
	Delete(ctx context.Context, id int64) error
}
