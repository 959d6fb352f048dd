// Package api implements loan.Service against the remote loan API. The
// backend owns all ledger math and state transitions; this client only moves
// JSON and normalizes failures into readable messages.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"dayne-web/internal/domain/loan"
)

type Client struct {
	baseURL string
	hc      *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		hc:      &http.Client{Timeout: timeout},
	}
}

type errorBody struct {
	Error string `json:"error"`
}

// do sends one JSON round trip. A non-2xx response surfaces the server's
// `error` field; a malformed body degrades to the fallback message.
func (c *Client) do(ctx context.Context, method, path string, in, out any, fallback string) error {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if method != http.MethodGet {
		// Lets the backend de-duplicate a retried mutation.
		req.Header.Set("X-Request-Id", uuid.NewString())
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", fallback, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%s: %w", fallback, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var eb errorBody
		_ = json.Unmarshal(raw, &eb)
		if eb.Error != "" {
			return errors.New(eb.Error)
		}
		return errors.New(fallback)
	}

	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("%s: %w", fallback, err)
		}
	}
	return nil
}

func (c *Client) details(ctx context.Context, method, path string, in any, fallback string) (*loan.Details, error) {
	var d loan.Details
	if err := c.do(ctx, method, path, in, &d, fallback); err != nil {
		return nil, err
	}
	return &d, nil
}

func (c *Client) proofURL(ctx context.Context, path string) (string, error) {
	var out struct {
		URL string `json:"url"`
	}
	if err := c.do(ctx, http.MethodGet, path, nil, &out, "Failed to fetch proof URL"); err != nil {
		return "", err
	}
	return out.URL, nil
}

func (c *Client) CreateLoan(ctx context.Context, in loan.CreateLoanInput) (*loan.Details, error) {
	return c.details(ctx, http.MethodPost, "/v1/loans", in, "Failed to create loan")
}

func (c *Client) GetManageLoan(ctx context.Context, manageToken string) (*loan.Details, error) {
	return c.details(ctx, http.MethodGet, "/v1/loans/manage/"+manageToken, nil, "Failed to load loan details")
}

func (c *Client) CreatePayment(ctx context.Context, manageToken string, in loan.CreatePaymentInput) (*loan.Details, error) {
	return c.details(ctx, http.MethodPost, "/v1/loans/manage/"+manageToken+"/payments", in, "Failed to record payment")
}

func (c *Client) PresignProofUpload(ctx context.Context, manageToken string, in loan.PresignProofInput) (*loan.PresignProofResponse, error) {
	var out loan.PresignProofResponse
	path := "/v1/loans/manage/" + manageToken + "/uploads/proof/presign"
	if err := c.do(ctx, http.MethodPost, path, in, &out, "Failed to prepare proof upload"); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ProofURLByManage(ctx context.Context, manageToken, paymentID string) (string, error) {
	return c.proofURL(ctx, "/v1/loans/manage/"+manageToken+"/payments/"+paymentID+"/proof-url")
}

func (c *Client) GetPublicLoan(ctx context.Context, publicToken string) (*loan.Details, error) {
	return c.details(ctx, http.MethodGet, "/v1/loans/public/"+publicToken, nil, "Failed to load loan")
}

func (c *Client) ApprovePayment(ctx context.Context, publicToken, paymentID string) (*loan.Details, error) {
	path := "/v1/loans/public/" + publicToken + "/payments/" + paymentID + "/approve"
	return c.details(ctx, http.MethodPost, path, struct{}{}, "Failed to approve payment")
}

func (c *Client) RejectPayment(ctx context.Context, publicToken, paymentID, reason string) (*loan.Details, error) {
	path := "/v1/loans/public/" + publicToken + "/payments/" + paymentID + "/reject"
	in := map[string]string{"reason": reason}
	return c.details(ctx, http.MethodPost, path, in, "Failed to reject payment")
}

func (c *Client) CreateLoanWaiver(ctx context.Context, publicToken string, amount float64) (*loan.Details, error) {
	in := map[string]float64{"amount": amount}
	return c.details(ctx, http.MethodPost, "/v1/loans/public/"+publicToken+"/waivers", in, "Failed to apply waiver")
}

func (c *Client) ProofURLByPublic(ctx context.Context, publicToken, paymentID string) (string, error) {
	return c.proofURL(ctx, "/v1/loans/public/"+publicToken+"/payments/"+paymentID+"/proof-url")
}

func (c *Client) GetArchivedLoan(ctx context.Context, archivedToken string) (*loan.Details, error) {
	return c.details(ctx, http.MethodGet, "/v1/loans/archive/"+archivedToken, nil, "Failed to load archived loan")
}

func (c *Client) ProofURLByArchive(ctx context.Context, archivedToken, paymentID string) (string, error) {
	return c.proofURL(ctx, "/v1/loans/archive/"+archivedToken+"/payments/"+paymentID+"/proof-url")
}

// UploadProofFile streams the proof bytes straight to the presigned target.
// No JSON here: the storage service answers with whatever it likes, only the
// status code matters.
func (c *Client) UploadProofFile(ctx context.Context, uploadURL, contentType string, size int64, body io.Reader) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, uploadURL, body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", contentType)
	req.ContentLength = size

	resp, err := c.hc.Do(req)
	if err != nil {
		return fmt.Errorf("proof file upload failed: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return errors.New("proof file upload failed")
	}
	return nil
}

var _ loan.Service = (*Client)(nil)
