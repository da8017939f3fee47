package domain

import "time"

// Project is a single generated-app project owned by a user.
// It is used across the repository and HTTP layers unchanged.
type Project struct {
	ProjectID string    `json:"project_id" firestore:"project_id"`
	UserID    string    `json:"user_id" firestore:"user_id"`
	Prompt    string    `json:"prompt" firestore:"prompt"`
	Code      string    `json:"code" firestore:"code"`
	Framework string    `json:"framework" firestore:"framework"`
	ExpoURL   *string   `json:"expo_url" firestore:"expo_url"`
	Timestamp time.Time `json:"timestamp" firestore:"timestamp"`
}
