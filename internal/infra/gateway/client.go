package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"praxis-booking/internal/pkg/config"
	"praxis-booking/internal/pkg/errs"
)

// Status values reported by the payment provider. Mapped onto the local
// order lattice by MapStatus.
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProcess  Status = "in_process"
	StatusAuthorized Status = "authorized"
	StatusPaid       Status = "paid"
	StatusRecused    Status = "recused"
	StatusCancelled  Status = "cancelled"
	StatusRefunded   Status = "refunded"
)

type Payer struct {
	Name     string `json:"name"`
	Document string `json:"document"`
	Email    string `json:"email"`
}

type CreateRequest struct {
	Method      string `json:"method"`
	AmountCents int64  `json:"amount_cents"`
	Payer       Payer  `json:"payer"`
	ReferenceID string `json:"reference_id"`
}

// Transaction is the provider's view of one payment. Payload carries the
// method-specific artifacts (PIX QR code, boleto line, card auth id).
type Transaction struct {
	ID      string            `json:"transaction_id"`
	Status  Status            `json:"status"`
	Payload map[string]string `json:"payload,omitempty"`
}

type RefundRequest struct {
	AmountCents int64  `json:"amount_cents,omitempty"`
	Reason      string `json:"reason,omitempty"`
}

type Client interface {
	CreateTransaction(ctx context.Context, req CreateRequest) (*Transaction, error)
	GetTransaction(ctx context.Context, tid string) (*Transaction, error)
	Capture(ctx context.Context, tid string, amountCents int64) (*Transaction, error)
	Refund(ctx context.Context, tid string, req RefundRequest) (*Transaction, error)
}

type HTTPClient struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

func NewHTTPClient(cfg config.GatewayConfig) *HTTPClient {
	return &HTTPClient{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		http:    &http.Client{Timeout: cfg.Timeout},
	}
}

func (c *HTTPClient) CreateTransaction(ctx context.Context, req CreateRequest) (*Transaction, error) {
	return c.do(ctx, http.MethodPost, "/v1/transactions", req)
}

func (c *HTTPClient) GetTransaction(ctx context.Context, tid string) (*Transaction, error) {
	return c.do(ctx, http.MethodGet, "/v1/transactions/"+tid, nil)
}

func (c *HTTPClient) Capture(ctx context.Context, tid string, amountCents int64) (*Transaction, error) {
	body := map[string]int64{"amount_cents": amountCents}
	return c.do(ctx, http.MethodPost, "/v1/transactions/"+tid+"/capture", body)
}

func (c *HTTPClient) Refund(ctx context.Context, tid string, req RefundRequest) (*Transaction, error) {
	return c.do(ctx, http.MethodPost, "/v1/transactions/"+tid+"/refund", req)
}

func (c *HTTPClient) do(ctx context.Context, method, path string, body any) (*Transaction, error) {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, errs.Wrap(err, "failed to encode gateway request")
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, errs.Wrap(err, "failed to build gateway request")
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, errs.Mark(errs.Wrap(err, "gateway request failed"), errs.ErrGateway)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, errs.Mark(errs.Wrap(err, "failed to read gateway response"), errs.ErrGateway)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, errs.Mark(
			errs.New(fmt.Sprintf("gateway returned status %d: %s", resp.StatusCode, string(payload))),
			errs.ErrGateway,
		)
	}

	var tx Transaction
	if err := json.Unmarshal(payload, &tx); err != nil {
		return nil, errs.Mark(errs.Wrap(err, "failed to decode gateway response"), errs.ErrGateway)
	}
	return &tx, nil
}
