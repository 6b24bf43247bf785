// Package custody is the HTTP adapter for the external value-transfer
// service. The ledger never moves funds itself: payments pull through
// the custody service's transfer-from endpoint and withdrawals push
// through its transfer endpoint. Requests are HMAC-SHA256 signed so
// the custody side can authenticate the ledger.
package custody

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"stablecoin-payment-ledger/internal/core/domain"

	"github.com/rs/zerolog"
)

const (
	transferFromPath = "/v1/transfer-from"
	transferPath     = "/v1/transfer"

	signatureHeader = "X-Custody-Signature"
	timestampHeader = "X-Custody-Timestamp"
)

// HTTPClient interface for testability.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client implements ports.TokenTransferor against the custody service.
type Client struct {
	baseURL    string
	signingKey []byte
	httpClient HTTPClient
	log        zerolog.Logger
}

// New creates a custody client. A nil httpClient gets a default with
// the given timeout.
func New(baseURL, signingKey string, timeout time.Duration, httpClient HTTPClient, log zerolog.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: timeout}
	}
	return &Client{
		baseURL:    baseURL,
		signingKey: []byte(signingKey),
		httpClient: httpClient,
		log:        log,
	}
}

type transferFromRequest struct {
	Token  domain.Address `json:"token"`
	From   domain.Address `json:"from"`
	To     domain.Address `json:"to"`
	Amount uint64         `json:"amount"`
}

type transferRequest struct {
	Token  domain.Address `json:"token"`
	To     domain.Address `json:"to"`
	Amount uint64         `json:"amount"`
}

type transferResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// TransferFrom pulls amount of token from the payer into the custody
// account.
func (c *Client) TransferFrom(ctx context.Context, token, from, to domain.Address, amount uint64) error {
	return c.post(ctx, transferFromPath, transferFromRequest{
		Token:  token,
		From:   from,
		To:     to,
		Amount: amount,
	})
}

// Transfer pushes amount of token from the custody account to the
// recipient.
func (c *Client) Transfer(ctx context.Context, token, to domain.Address, amount uint64) error {
	return c.post(ctx, transferPath, transferRequest{
		Token:  token,
		To:     to,
		Amount: amount,
	})
}

func (c *Client) post(ctx context.Context, path string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshaling custody request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("creating custody request: %w", err)
	}

	ts := time.Now().Unix()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(timestampHeader, fmt.Sprintf("%d", ts))
	req.Header.Set(signatureHeader, c.sign(http.MethodPost, path, ts, body))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("calling custody service: %w", err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.log.Warn().
			Int("status", resp.StatusCode).
			Str("path", path).
			Msg("custody service returned non-2xx")
		return fmt.Errorf("custody service status %d", resp.StatusCode)
	}

	var out transferResponse
	if err := json.Unmarshal(respBody, &out); err != nil {
		return fmt.Errorf("decoding custody response: %w", err)
	}
	if !out.Success {
		return fmt.Errorf("custody transfer rejected: %s", out.Error)
	}
	return nil
}

// sign computes HMAC-SHA256 over METHOD|PATH|TIMESTAMP|BODY, lowercase
// hex-encoded.
func (c *Client) sign(method, path string, timestamp int64, body []byte) string {
	mac := hmac.New(sha256.New, c.signingKey)
	fmt.Fprintf(mac, "%s|%s|%d|", method, path, timestamp)
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}
