// Package users manages user profile documents and the cascade that removes
// a user together with everything they own.
package users

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ProjectPurger removes every project owned by a user. Implemented by the
// projects repository.
type ProjectPurger interface {
	DeleteAllForUser(ctx context.Context, userID string) error
}

type Repo struct {
	db       *firestore.Client
	projects ProjectPurger
}

func NewRepo(db *firestore.Client, projects ProjectPurger) *Repo {
	return &Repo{db: db, projects: projects}
}

// GetProfile returns the profile fields for the user, or nil when no profile
// document exists yet.
func (r *Repo) GetProfile(ctx context.Context, userID string) (map[string]interface{}, error) {
	doc, err := r.db.Collection("users").Doc(userID).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return doc.Data(), nil
}

// UpdateProfile merges the given fields into the profile document, creating
// it on first write.
func (r *Repo) UpdateProfile(ctx context.Context, userID string, updates map[string]interface{}) error {
	_, err := r.db.Collection("users").Doc(userID).Set(ctx, updates, firestore.MergeAll)
	if err != nil {
		return fmt.Errorf("update profile: %w", err)
	}
	return nil
}

// DeleteUserAndProjects deletes all projects owned by the user and then the
// profile document itself. The cascade is best-effort: a crash part-way
// leaves a partial deletion.
func (r *Repo) DeleteUserAndProjects(ctx context.Context, userID string) error {
	if err := r.projects.DeleteAllForUser(ctx, userID); err != nil {
		return err
	}
	if _, err := r.db.Collection("users").Doc(userID).Delete(ctx); err != nil {
		return fmt.Errorf("delete profile: %w", err)
	}
	return nil
}
