// Package gotrue authenticates customers against a hosted GoTrue-compatible
// identity API using the password grant.
package gotrue

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

	"github.com/golang-jwt/jwt/v5"

	domainauth "github.com/plugashop/storefront/internal/domain/auth"
	apperrors "github.com/plugashop/storefront/internal/errors"
	"github.com/plugashop/storefront/internal/ports"
)

// Config holds connection settings for the identity API.
type Config struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client // Optional, defaults to a 15s-timeout client
}

// Provider implements ports.IdentityProvider against a GoTrue HTTP API.
type Provider struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewProvider creates a new GoTrue identity provider.
func NewProvider(cfg Config) (*Provider, error) {
	if cfg.BaseURL == "" {
		return nil, errors.New("gotrue: base URL is required")
	}
	if cfg.APIKey == "" {
		return nil, errors.New("gotrue: API key is required")
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	return &Provider{
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
		httpClient: httpClient,
	}, nil
}

// tokenResponse is the password-grant and signup response shape.
type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
	User        struct {
		ID           string `json:"id"`
		Email        string `json:"email"`
		UserMetadata struct {
			FirstName string `json:"first_name"`
			LastName  string `json:"last_name"`
		} `json:"user_metadata"`
	} `json:"user"`
}

type apiError struct {
	Message          string `json:"msg"`
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

func (e apiError) text() string {
	for _, s := range []string{e.Message, e.ErrorDescription, e.Error} {
		if s != "" {
			return s
		}
	}
	return "authentication failed"
}

// SignIn exchanges credentials for a token and maps it to an identity.
func (p *Provider) SignIn(ctx context.Context, creds ports.Credentials) (domainauth.Identity, error) {
	if creds.Email == "" || creds.Password == "" {
		return domainauth.Identity{}, apperrors.Unauthorized("email and password are required")
	}

	body := map[string]string{"email": creds.Email, "password": creds.Password}
	var resp tokenResponse
	if err := p.post(ctx, "/token?grant_type=password", body, &resp); err != nil {
		return domainauth.Identity{}, err
	}
	return p.identityFromToken(resp)
}

// SignUp registers a new account. Name metadata seeds the profile row on
// first login.
func (p *Provider) SignUp(ctx context.Context, in ports.SignupInput) (domainauth.Identity, error) {
	if in.Email == "" || in.Password == "" {
		return domainauth.Identity{}, apperrors.Validation("email and password are required")
	}

	body := map[string]any{
		"email":    in.Email,
		"password": in.Password,
		"data": map[string]string{
			"first_name": in.FirstName,
			"last_name":  in.LastName,
		},
	}
	var resp tokenResponse
	if err := p.post(ctx, "/signup", body, &resp); err != nil {
		return domainauth.Identity{}, err
	}
	return p.identityFromToken(resp)
}

// SignOut revokes the provider-side session for the user. GoTrue scopes
// logout by token, not user ID; a best-effort global revoke is all the API
// offers here, and failures are reported for the caller to ignore.
func (p *Provider) SignOut(ctx context.Context, userID string) error {
	if userID == "" {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/logout?scope=global", nil)
	if err != nil {
		return fmt.Errorf("gotrue logout request: %w", err)
	}
	req.Header.Set("apikey", p.apiKey)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("gotrue logout: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusInternalServerError {
		return fmt.Errorf("gotrue logout: status %d", resp.StatusCode)
	}
	return nil
}

func (p *Provider) post(ctx context.Context, path string, body any, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("gotrue marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("gotrue request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("apikey", p.apiKey)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("gotrue call: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("gotrue read response: %w", err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		var apiErr apiError
		_ = json.Unmarshal(data, &apiErr)
		if resp.StatusCode == http.StatusBadRequest || resp.StatusCode == http.StatusUnauthorized ||
			resp.StatusCode == http.StatusUnprocessableEntity {
			return apperrors.Unauthorized(apiErr.text())
		}
		return apperrors.Wrapf(errors.New(apiErr.text()), apperrors.ErrCodeInternal,
			"identity API returned status %d", resp.StatusCode)
	}

	if unmarshalErr := json.Unmarshal(data, out); unmarshalErr != nil {
		return fmt.Errorf("gotrue decode response: %w", unmarshalErr)
	}
	return nil
}

// identityFromToken builds the identity from the response body, taking the
// expiry from the access token claims when present. The token is not
// verified locally; it came from the provider over TLS in the same call.
func (p *Provider) identityFromToken(resp tokenResponse) (domainauth.Identity, error) {
	if resp.User.ID == "" {
		return domainauth.Identity{}, errors.New("gotrue: response carried no user")
	}

	expiresAt := time.Now().Add(time.Hour)
	if resp.ExpiresIn > 0 {
		expiresAt = time.Now().Add(time.Duration(resp.ExpiresIn) * time.Second)
	}
	if resp.AccessToken != "" {
		if claims := parseTokenClaims(resp.AccessToken); claims != nil {
			if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
				expiresAt = exp.Time
			}
		}
	}

	return domainauth.Identity{
		UserID:    resp.User.ID,
		Email:     resp.User.Email,
		FirstName: resp.User.UserMetadata.FirstName,
		LastName:  resp.User.UserMetadata.LastName,
		ExpiresAt: expiresAt,
	}, nil
}

func parseTokenClaims(raw string) jwt.MapClaims {
	claims := jwt.MapClaims{}
	parser := jwt.NewParser(jwt.WithoutClaimsValidation())
	if _, _, err := parser.ParseUnverified(raw, claims); err != nil {
		return nil
	}
	return claims
}
