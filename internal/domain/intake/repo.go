package intake

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, s *Submission) error
	GetByID(ctx context.Context, id uuid.UUID) (*Submission, error)
	List(ctx context.Context, status string, limit, offset int) ([]*Submission, int, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
}
