package bootstrap

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
)

// OpenFirestore returns a Firestore client backed by the already-initialized
// Firebase app.
func OpenFirestore(ctx context.Context, app *firebase.App) (*firestore.Client, error) {
	db, err := app.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("firestore client: %w", err)
	}
	return db, nil
}
