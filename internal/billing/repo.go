package billing

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
)

// Repo stores billing records in the users/{uid}/billing subcollection.
// Records are append-only and never mutated.
type Repo struct {
	db *firestore.Client
}

func NewRepo(db *firestore.Client) *Repo {
	return &Repo{db: db}
}

func (r *Repo) billing(userID string) *firestore.CollectionRef {
	return r.db.Collection("users").Doc(userID).Collection("billing")
}

// Append inserts a verified transaction payload for the user, stamping it
// with the insertion time.
func (r *Repo) Append(ctx context.Context, userID string, data map[string]interface{}) error {
	record := make(map[string]interface{}, len(data)+1)
	for k, v := range data {
		record[k] = v
	}
	record["timestamp"] = time.Now().UTC()

	if _, _, err := r.billing(userID).Add(ctx, record); err != nil {
		return fmt.Errorf("append billing record: %w", err)
	}
	return nil
}

// History returns the user's billing records, newest first.
func (r *Repo) History(ctx context.Context, userID string) ([]map[string]interface{}, error) {
	iter := r.billing(userID).OrderBy("timestamp", firestore.Desc).Documents(ctx)
	defer iter.Stop()

	out := []map[string]interface{}{}
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("list billing history: %w", err)
		}
		out = append(out, doc.Data())
	}
	return out, nil
}
