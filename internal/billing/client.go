// Package billing initiates and verifies payments against the Paystack API
// and appends verified transactions to the user's billing ledger.
package billing

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/appbuilder-io/appbuilder-backend/internal/apierr"
)

// Paystack amounts are expressed in the minor currency unit (kobo).
const minorUnitFactor = 100

type Client struct {
	BaseURL   string
	SecretKey string
	HTTP      *http.Client
}

func NewClient(baseURL, secretKey string) *Client {
	if baseURL == "" {
		baseURL = "https://api.paystack.co"
	}
	return &Client{
		BaseURL:   baseURL,
		SecretKey: secretKey,
		HTTP:      &http.Client{Timeout: 30 * time.Second},
	}
}

// Initiate starts a transaction for the given email and major-unit amount and
// returns the processor's raw JSON response.
func (c *Client) Initiate(ctx context.Context, email string, amount int64) (json.RawMessage, error) {
	b, _ := json.Marshal(map[string]interface{}{
		"email":  email,
		"amount": amount * minorUnitFactor,
	})

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/transaction/initialize", bytes.NewReader(b))
	if err != nil {
		return nil, apierr.Downstreamf("paystack request: %v", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.SecretKey)

	resp, err := c.HTTP.Do(httpReq)
	if err != nil {
		return nil, apierr.Downstreamf("Paystack error").WithDetails(err.Error())
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return nil, apierr.Downstreamf("Paystack error").WithDetails(string(body))
	}
	return json.RawMessage(body), nil
}

// Verify fetches the transaction status for a reference and returns the
// processor's data payload.
func (c *Client) Verify(ctx context.Context, reference string) (map[string]interface{}, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/transaction/verify/"+url.PathEscape(reference), nil)
	if err != nil {
		return nil, apierr.Downstreamf("paystack request: %v", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.SecretKey)

	resp, err := c.HTTP.Do(httpReq)
	if err != nil {
		return nil, apierr.Downstreamf("Paystack error").WithDetails(err.Error())
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return nil, apierr.Downstreamf("Paystack error").WithDetails(string(body))
	}

	var out struct {
		Data map[string]interface{} `json:"data"`
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, apierr.Downstreamf("paystack decode").WithDetails(err.Error())
	}
	return out.Data, nil
}
