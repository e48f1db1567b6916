package intake

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

type Service struct {
	submissions Repository
}

func NewService(submissions Repository) *Service {
	return &Service{submissions: submissions}
}

// Submit records an intake form. Submissions always enter the queue pending.
func (s *Service) Submit(ctx context.Context, sub *Submission) error {
	if sub.Name == "" {
		return fmt.Errorf("name is required")
	}
	if sub.Email == "" {
		return fmt.Errorf("email is required")
	}
	sub.Status = StatusPending
	return s.submissions.Create(ctx, sub)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Submission, error) {
	return s.submissions.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, status string, limit, offset int) ([]*Submission, int, error) {
	if status != "" && !validStatuses[status] {
		return nil, 0, fmt.Errorf("invalid status: %s", status)
	}
	return s.submissions.List(ctx, status, limit, offset)
}

func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	if !validStatuses[status] {
		return fmt.Errorf("invalid status: %s", status)
	}
	return s.submissions.UpdateStatus(ctx, id, status)
}
