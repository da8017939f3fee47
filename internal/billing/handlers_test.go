package billing

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/appbuilder-io/appbuilder-backend/internal/auth"
)

type stubProcessor struct {
	initiated json.RawMessage
	verified  map[string]interface{}
	err       error
}

func (s *stubProcessor) Initiate(_ context.Context, _ string, _ int64) (json.RawMessage, error) {
	return s.initiated, s.err
}

func (s *stubProcessor) Verify(_ context.Context, _ string) (map[string]interface{}, error) {
	return s.verified, s.err
}

type fakeLedger struct {
	records map[string][]map[string]interface{}
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{records: map[string][]map[string]interface{}{}}
}

func (f *fakeLedger) Append(_ context.Context, userID string, data map[string]interface{}) error {
	f.records[userID] = append(f.records[userID], data)
	return nil
}

func (f *fakeLedger) History(_ context.Context, userID string) ([]map[string]interface{}, error) {
	return f.records[userID], nil
}

func newBillingRouter(p Processor, l Ledger, uid string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewHandler(p, l)

	api := r.Group("/api")
	api.POST("/billing/verify", h.Verify)

	authed := api.Group("")
	authed.Use(func(c *gin.Context) { c.Set(auth.CtxUserID, uid) })
	h.Register(authed)
	return r
}

func post(r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestInitiateHandler_PassesThroughProcessorResponse(t *testing.T) {
	raw := json.RawMessage(`{"status": true, "data": {"authorization_url": "https://checkout.paystack.com/x"}}`)
	r := newBillingRouter(&stubProcessor{initiated: raw}, newFakeLedger(), "user-1")

	w := post(r, "/api/billing/initiate", `{"email": "a@b.c", "amount": 500}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, string(raw), w.Body.String())
}

func TestInitiateHandler_MissingFields(t *testing.T) {
	r := newBillingRouter(&stubProcessor{}, newFakeLedger(), "user-1")

	w := post(r, "/api/billing/initiate", `{"email": "a@b.c"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestVerifyHandler_AppendsRecord(t *testing.T) {
	ledger := newFakeLedger()
	data := map[string]interface{}{"reference": "ref-1", "status": "success"}
	r := newBillingRouter(&stubProcessor{verified: data}, ledger, "")

	w := post(r, "/api/billing/verify", `{"reference": "ref-1", "user_id": "user-1"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"success":true`)
	require.Len(t, ledger.records["user-1"], 1)
	assert.Equal(t, "ref-1", ledger.records["user-1"][0]["reference"])
}

func TestVerifyHandler_NotIdempotent(t *testing.T) {
	ledger := newFakeLedger()
	data := map[string]interface{}{"reference": "ref-1"}
	r := newBillingRouter(&stubProcessor{verified: data}, ledger, "")

	body := `{"reference": "ref-1", "user_id": "user-1"}`
	require.Equal(t, http.StatusOK, post(r, "/api/billing/verify", body).Code)
	require.Equal(t, http.StatusOK, post(r, "/api/billing/verify", body).Code)

	assert.Len(t, ledger.records["user-1"], 2)
}

func TestVerifyHandler_MissingFields(t *testing.T) {
	r := newBillingRouter(&stubProcessor{}, newFakeLedger(), "")

	w := post(r, "/api/billing/verify", `{"reference": "ref-1"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestVerifyHandler_ProcessorFailure(t *testing.T) {
	ledger := newFakeLedger()
	r := newBillingRouter(&stubProcessor{err: errors.New("processor down")}, ledger, "")

	w := post(r, "/api/billing/verify", `{"reference": "ref-1", "user_id": "user-1"}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Empty(t, ledger.records["user-1"])
}

func TestHistoryHandler_OwnerOnly(t *testing.T) {
	ledger := newFakeLedger()
	ledger.records["user-2"] = []map[string]interface{}{{"reference": "ref-1"}}
	r := newBillingRouter(&stubProcessor{}, ledger, "user-1")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/billing/history/user-2", nil)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestHistoryHandler(t *testing.T) {
	ledger := newFakeLedger()
	ledger.records["user-1"] = []map[string]interface{}{{"reference": "ref-1"}}
	r := newBillingRouter(&stubProcessor{}, ledger, "user-1")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/billing/history/user-1", nil)
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"reference":"ref-1"`)
}
