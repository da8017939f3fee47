package http

import (
	"context"

	"github.com/appbuilder-io/appbuilder-backend/internal/projects/domain"
)

// Store is the persistence surface the handlers need. Implemented by
// repository.Repo; swapped for a fake in tests.
type Store interface {
	Save(ctx context.Context, p *domain.Project) (string, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Project, error)
	Get(ctx context.Context, projectID string) (*domain.Project, error)
	Update(ctx context.Context, projectID string, updates map[string]interface{}) error
	Delete(ctx context.Context, projectID string) error
}

type saveProjectReq struct {
	Prompt    string  `json:"prompt"`
	Code      string  `json:"code"`
	Framework string  `json:"framework"`
	ExpoURL   *string `json:"expo_url"`
}
