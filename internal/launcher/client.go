package launcher

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"crossgate/internal/port"
)

// Client calls the source application's token exchange endpoint.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates an exchange client for the given source app URL.
func NewClient(sourceURL string) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(sourceURL, "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type exchangeRequest struct {
	IDToken   string `json:"idToken"`
	TargetApp string `json:"targetApp,omitempty"`
}

type exchangeResponse struct {
	CustomToken string `json:"customToken"`
	Error       string `json:"error"`
}

// ExchangeToken posts the identity token and returns the minted
// cross-app token.
func (c *Client) ExchangeToken(ctx context.Context, idToken, targetApp string) (string, error) {
	body, err := json.Marshal(exchangeRequest{IDToken: idToken, TargetApp: targetApp})
	if err != nil {
		return "", fmt.Errorf("marshaling exchange request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/auth/custom-token", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("creating exchange request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("calling exchange endpoint: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	var out exchangeResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decoding exchange response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		if out.Error != "" {
			return "", fmt.Errorf("exchange endpoint: %s", out.Error)
		}
		return "", fmt.Errorf("exchange endpoint: status %d", resp.StatusCode)
	}
	if out.CustomToken == "" {
		return "", fmt.Errorf("exchange endpoint: empty custom token")
	}

	return out.CustomToken, nil
}

// Compile-time check.
var _ port.ExchangeClient = (*Client)(nil)
