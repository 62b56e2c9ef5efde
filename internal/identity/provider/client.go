package provider

import (
	"bytes"
	"context"
	"crypto/rsa"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"crossgate/internal/config"
	"crossgate/internal/domain"
	"crossgate/internal/port"
)

// customTokenAudience is the fixed audience the provider expects on
// service-account-minted cross-app tokens.
const customTokenAudience = "https://identitytoolkit.googleapis.com/google.identity.identitytoolkit.v1.IdentityToolkit"

const customTokenLifetime = time.Hour

// Client is the REST client for the shared identity provider. It is
// constructed once per process and is safe for concurrent use; it
// holds no per-request state.
type Client struct {
	projectID   string
	clientEmail string
	privateKey  *rsa.PrivateKey
	apiKey      string
	baseURL     string
	httpClient  *http.Client
}

// New builds a provider client from configuration. It fails fast when
// any required service-account value is absent or the private key does
// not parse, rather than degrading silently.
func New(cfg config.ProviderConfig) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrProviderConfig, err)
	}

	key, err := jwt.ParseRSAPrivateKeyFromPEM([]byte(cfg.PEMPrivateKey()))
	if err != nil {
		return nil, fmt.Errorf("%w: parsing service-account private key: %v", domain.ErrProviderConfig, err)
	}

	return &Client{
		projectID:   cfg.ProjectID,
		clientEmail: cfg.ClientEmail,
		privateKey:  key,
		apiKey:      cfg.APIKey,
		baseURL:     cfg.BaseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}, nil
}

type tokenInfoResponse struct {
	Iss           string `json:"iss"`
	Aud           string `json:"aud"`
	Sub           string `json:"sub"`
	Email         string `json:"email"`
	EmailVerified string `json:"email_verified"`
}

// VerifyIDToken validates an identity token via the provider's
// tokeninfo endpoint. Any failure, transport included, surfaces as
// domain.ErrInvalidToken; the caller decides what to leak.
func (c *Client) VerifyIDToken(ctx context.Context, idToken string) (*port.ProviderClaims, error) {
	endpoint := c.baseURL + "/v1/tokeninfo?id_token=" + url.QueryEscape(idToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("creating tokeninfo request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, domain.ErrInvalidToken
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, domain.ErrInvalidToken
	}

	var info tokenInfoResponse
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, domain.ErrInvalidToken
	}

	// Validate audience matches our project
	if info.Aud != c.projectID {
		return nil, domain.ErrInvalidToken
	}

	// Validate issuer
	if info.Iss != "https://securetoken.googleapis.com/"+c.projectID &&
		info.Iss != "https://securetoken.google.com/"+c.projectID {
		return nil, domain.ErrInvalidToken
	}

	if info.Sub == "" {
		return nil, domain.ErrInvalidToken
	}

	return &port.ProviderClaims{
		Subject:       info.Sub,
		Email:         info.Email,
		EmailVerified: info.EmailVerified == "true",
	}, nil
}

// MintCustomToken signs a short-lived cross-app token with the
// service-account key. The embedded claims map travels verbatim; the
// provider rejects tokens older than customTokenLifetime.
func (c *Client) MintCustomToken(ctx context.Context, subjectID string, claims map[string]string) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, jwt.MapClaims{
		"iss":    c.clientEmail,
		"sub":    c.clientEmail,
		"aud":    customTokenAudience,
		"iat":    jwt.NewNumericDate(now),
		"exp":    jwt.NewNumericDate(now.Add(customTokenLifetime)),
		"jti":    uuid.New().String(),
		"uid":    subjectID,
		"claims": claims,
	})

	signed, err := token.SignedString(c.privateKey)
	if err != nil {
		return "", fmt.Errorf("%w: signing custom token: %v", domain.ErrMintFailed, err)
	}
	return signed, nil
}

type signInRequest struct {
	Token             string `json:"token"`
	ReturnSecureToken bool   `json:"returnSecureToken"`
}

type signInResponse struct {
	IDToken       string `json:"idToken"`
	LocalID       string `json:"localId"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"emailVerified"`
	ExpiresIn     string `json:"expiresIn"`
}

// SignInWithToken redeems a cross-app token for a provider session.
// The provider governs expiry and single-use invalidation; expired or
// consumed tokens come back as domain.ErrRedemptionFailed.
func (c *Client) SignInWithToken(ctx context.Context, customToken string) (*port.RedeemedSession, error) {
	endpoint := c.baseURL + "/v1/accounts:signInWithCustomToken"
	if c.apiKey != "" {
		endpoint += "?key=" + url.QueryEscape(c.apiKey)
	}

	body, err := json.Marshal(signInRequest{Token: customToken, ReturnSecureToken: true})
	if err != nil {
		return nil, fmt.Errorf("marshaling sign-in request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating sign-in request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, domain.ErrRedemptionFailed
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, domain.ErrRedemptionFailed
	}

	var out signInResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, domain.ErrRedemptionFailed
	}
	if out.LocalID == "" || out.IDToken == "" {
		return nil, domain.ErrRedemptionFailed
	}

	expiresIn := customTokenLifetime
	if secs, convErr := strconv.Atoi(out.ExpiresIn); convErr == nil && secs > 0 {
		expiresIn = time.Duration(secs) * time.Second
	}

	return &port.RedeemedSession{
		SubjectID:     out.LocalID,
		Email:         out.Email,
		EmailVerified: out.EmailVerified,
		IDToken:       out.IDToken,
		ExpiresIn:     expiresIn,
	}, nil
}

// Compile-time checks.
var (
	_ port.TokenVerifier = (*Client)(nil)
	_ port.TokenMinter   = (*Client)(nil)
	_ port.TokenRedeemer = (*Client)(nil)
)
