package vietqr

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Client fetches the supported-banks directory from the VietQR API.
// Pure read; a directory outage must never block manual top-ups, so
// callers treat errors as recoverable.
type Client struct {
	httpClient *http.Client
	baseURL    string
	timeout    time.Duration
}

// Bank is a single entry of the bank directory
type Bank struct {
	ID                int    `json:"id"`
	Name              string `json:"name"`
	Code              string `json:"code"`
	BIN               string `json:"bin"`
	ShortName         string `json:"shortName"`
	Logo              string `json:"logo"`
	TransferSupported int    `json:"transferSupported"`
	LookupSupported   int    `json:"lookupSupported"`
}

type listResponse struct {
	Code string `json:"code"`
	Desc string `json:"desc"`
	Data []Bank `json:"data"`
}

// NewClient creates a bank directory client
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
		timeout:    timeout,
	}
}

// ListBanks returns the directory of supported banks
func (c *Client) ListBanks(ctx context.Context) ([]Bank, error) {
	if c.baseURL == "" {
		return nil, fmt.Errorf("bank directory config error: base_url is empty")
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v2/banks", nil)
	if err != nil {
		return nil, fmt.Errorf("bank directory call failed: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("bank directory call failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("bank directory call failed: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("bank directory returned non-2xx status: %d, body: %s", resp.StatusCode, string(body))
	}

	var out listResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("failed to parse bank directory response: %w", err)
	}

	return out.Data, nil
}
