package billing

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/appbuilder-io/appbuilder-backend/internal/apierr"
)

func TestInitiate_ConvertsToMinorUnit(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/transaction/initialize" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer sk_test" {
			t.Errorf("unexpected auth header: %s", r.Header.Get("Authorization"))
		}

		var payload map[string]interface{}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Errorf("decode payload: %v", err)
		}
		if payload["email"] != "a@b.c" {
			t.Errorf("unexpected email: %v", payload["email"])
		}
		if payload["amount"] != float64(50000) {
			t.Errorf("expected amount in minor units (50000), got %v", payload["amount"])
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status": true, "data": {"authorization_url": "https://checkout.paystack.com/x"}}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "sk_test")
	raw, err := client.Initiate(context.Background(), "a@b.c", 500)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "authorization_url")
}

func TestInitiate_NonSuccessStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"status": false, "message": "invalid key"}`, http.StatusUnauthorized)
	}))
	defer server.Close()

	client := NewClient(server.URL, "sk_test")
	_, err := client.Initiate(context.Background(), "a@b.c", 500)
	require.Error(t, err)
	assert.Equal(t, http.StatusInternalServerError, apierr.Status(err))
	assert.Contains(t, err.Error(), "invalid key")
}

func TestVerify_ReturnsDataPayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/transaction/verify/ref-123" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status": true, "data": {"reference": "ref-123", "status": "success", "amount": 50000}}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "sk_test")
	data, err := client.Verify(context.Background(), "ref-123")
	require.NoError(t, err)
	assert.Equal(t, "ref-123", data["reference"])
	assert.Equal(t, "success", data["status"])
}

func TestVerify_NonSuccessStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"status": false, "message": "reference not found"}`, http.StatusNotFound)
	}))
	defer server.Close()

	client := NewClient(server.URL, "sk_test")
	_, err := client.Verify(context.Background(), "ref-missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reference not found")
}
