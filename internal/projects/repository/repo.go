// Package repository persists projects in the "projects" Firestore collection,
// one document per project keyed by project_id.
package repository

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/appbuilder-io/appbuilder-backend/internal/apierr"
	"github.com/appbuilder-io/appbuilder-backend/internal/projects/domain"
)

const collection = "projects"

type Repo struct {
	db *firestore.Client
}

func NewRepo(db *firestore.Client) *Repo {
	return &Repo{db: db}
}

// Save writes the project, assigning an identifier and timestamp when absent,
// and returns the project id.
func (r *Repo) Save(ctx context.Context, p *domain.Project) (string, error) {
	if p.ProjectID == "" {
		p.ProjectID = uuid.NewString()
	}
	if p.Timestamp.IsZero() {
		p.Timestamp = time.Now().UTC()
	}

	if _, err := r.db.Collection(collection).Doc(p.ProjectID).Set(ctx, p); err != nil {
		return "", fmt.Errorf("save project: %w", err)
	}
	return p.ProjectID, nil
}

// ListByUser returns the user's projects, newest first.
func (r *Repo) ListByUser(ctx context.Context, userID string) ([]domain.Project, error) {
	iter := r.db.Collection(collection).
		Where("user_id", "==", userID).
		OrderBy("timestamp", firestore.Desc).
		Documents(ctx)
	defer iter.Stop()

	out := []domain.Project{}
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("list projects: %w", err)
		}

		var p domain.Project
		if err := doc.DataTo(&p); err != nil {
			return nil, fmt.Errorf("decode project %s: %w", doc.Ref.ID, err)
		}
		out = append(out, p)
	}
	return out, nil
}

func (r *Repo) Get(ctx context.Context, projectID string) (*domain.Project, error) {
	doc, err := r.db.Collection(collection).Doc(projectID).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, apierr.NotFoundf("Not found")
	}
	if err != nil {
		return nil, fmt.Errorf("get project: %w", err)
	}

	var p domain.Project
	if err := doc.DataTo(&p); err != nil {
		return nil, fmt.Errorf("decode project %s: %w", projectID, err)
	}
	return &p, nil
}

// Update merges the given fields into the project document. Fields not named
// in updates keep their stored values.
func (r *Repo) Update(ctx context.Context, projectID string, updates map[string]interface{}) error {
	_, err := r.db.Collection(collection).Doc(projectID).Set(ctx, updates, firestore.MergeAll)
	if err != nil {
		return fmt.Errorf("update project: %w", err)
	}
	return nil
}

func (r *Repo) Delete(ctx context.Context, projectID string) error {
	if _, err := r.db.Collection(collection).Doc(projectID).Delete(ctx); err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	return nil
}

// DeleteAllForUser removes every project owned by the user. Deletion is
// best-effort: a failure part-way leaves earlier deletes in place.
func (r *Repo) DeleteAllForUser(ctx context.Context, userID string) error {
	iter := r.db.Collection(collection).Where("user_id", "==", userID).Documents(ctx)
	defer iter.Stop()

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return fmt.Errorf("list projects for delete: %w", err)
		}
		if _, err := doc.Ref.Delete(ctx); err != nil {
			return fmt.Errorf("delete project %s: %w", doc.Ref.ID, err)
		}
	}
	return nil
}
