package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"

	"github.com/wkwunju/moreach-sub001/pkg/domain"
)

// TokenSource supplies the current bearer token for outgoing requests.
// The session store implements this; the token is re-read on every request
// so a login or logout takes effect without rebuilding the client.
type TokenSource interface {
	Token() (string, bool)
}

// StaticToken is a TokenSource holding a fixed token. Used during the login
// flow, before the session store has been written.
type StaticToken string

// Token implements TokenSource.
func (t StaticToken) Token() (string, bool) {
	return string(t), t != ""
}

// Client is the MoReach API client. It attaches the bearer token when one
// is present and otherwise issues the request unauthenticated; it never
// touches the session itself — 401 handling belongs to the session service.
type Client struct {
	baseURL    string
	tokens     TokenSource
	httpClient *http.Client
}

// New creates a new API client.
func New(baseURL string, tokens TokenSource) *Client {
	return &Client{
		baseURL: baseURL,
		tokens:  tokens,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// CurrentUser returns the authenticated user's record.
func (c *Client) CurrentUser(ctx context.Context) (*domain.User, error) {
	var u domain.User
	if err := c.get(ctx, "/api/v1/auth/me", &u); err != nil {
		return nil, fmt.Errorf("client.CurrentUser: %w", err)
	}
	return &u, nil
}

// CompleteProfileRequest is the payload for finishing account setup.
type CompleteProfileRequest struct {
	FullName  string `json:"full_name"`
	Company   string `json:"company,omitempty"`
	JobTitle  string `json:"job_title,omitempty"`
	Industry  string `json:"industry"`
	UsageType string `json:"usage_type"`
}

// CompleteProfile submits the profile form and returns the updated user
// record the server sends back.
func (c *Client) CompleteProfile(ctx context.Context, req CompleteProfileRequest) (*domain.User, error) {
	var u domain.User
	if err := c.post(ctx, "/api/v1/auth/complete-profile", req, &u); err != nil {
		return nil, fmt.Errorf("client.CompleteProfile: %w", err)
	}
	return &u, nil
}

// VerifyEmailResponse carries the server's confirmation message.
type VerifyEmailResponse struct {
	Message string `json:"message"`
}

// VerifyEmail redeems an email verification token. The endpoint is not
// session-bearing: it works without a stored token and never mutates one.
func (c *Client) VerifyEmail(ctx context.Context, token string) (*VerifyEmailResponse, error) {
	var resp VerifyEmailResponse
	if err := c.post(ctx, "/api/v1/auth/verify-email?token="+url.QueryEscape(token), nil, &resp); err != nil {
		return nil, fmt.Errorf("client.VerifyEmail: %w", err)
	}
	return &resp, nil
}

// ResendVerification asks the server to send a fresh verification email.
func (c *Client) ResendVerification(ctx context.Context) error {
	if err := c.post(ctx, "/api/v1/auth/resend-verification", nil, nil); err != nil {
		return fmt.Errorf("client.ResendVerification: %w", err)
	}
	return nil
}

// ExchangeCode swaps a one-time login callback code for a session token.
func (c *Client) ExchangeCode(ctx context.Context, code string) (string, error) {
	var resp struct {
		Token string `json:"token"`
	}
	if err := c.post(ctx, "/api/v1/auth/cli-exchange", map[string]string{"code": code}, &resp); err != nil {
		return "", fmt.Errorf("client.ExchangeCode: %w", err)
	}
	if resp.Token == "" {
		return "", fmt.Errorf("client.ExchangeCode: empty token in response")
	}
	return resp.Token, nil
}

// --- Campaign methods ---

// CreateCampaignRequest is the payload for creating a new campaign.
type CreateCampaignRequest struct {
	Name        string `json:"name"`
	Audience    string `json:"audience,omitempty"`
	LeadsTarget int    `json:"leads_target,omitempty"`
}

// ListCampaigns fetches the caller's campaigns.
func (c *Client) ListCampaigns(ctx context.Context) ([]domain.Campaign, error) {
	var campaigns []domain.Campaign
	if err := c.get(ctx, "/api/v1/campaigns", &campaigns); err != nil {
		return nil, fmt.Errorf("client.ListCampaigns: %w", err)
	}
	return campaigns, nil
}

// GetCampaign fetches a single campaign by ID.
func (c *Client) GetCampaign(ctx context.Context, id string) (*domain.Campaign, error) {
	var campaign domain.Campaign
	if err := c.get(ctx, "/api/v1/campaigns/"+url.PathEscape(id), &campaign); err != nil {
		return nil, fmt.Errorf("client.GetCampaign: %w", err)
	}
	return &campaign, nil
}

// CreateCampaign creates a new campaign.
func (c *Client) CreateCampaign(ctx context.Context, req CreateCampaignRequest) (*domain.Campaign, error) {
	var created domain.Campaign
	if err := c.post(ctx, "/api/v1/campaigns", req, &created); err != nil {
		return nil, fmt.Errorf("client.CreateCampaign: %w", err)
	}
	return &created, nil
}

// UpdateCampaign updates a campaign's name, audience, and status.
func (c *Client) UpdateCampaign(ctx context.Context, id string, campaign domain.Campaign) (*domain.Campaign, error) {
	var updated domain.Campaign
	if err := c.doRequest(ctx, http.MethodPut, "/api/v1/campaigns/"+url.PathEscape(id), campaign, &updated); err != nil {
		return nil, fmt.Errorf("client.UpdateCampaign: %w", err)
	}
	return &updated, nil
}

// DeleteCampaign deletes a campaign by ID.
func (c *Client) DeleteCampaign(ctx context.Context, id string) error {
	if err := c.doRequest(ctx, http.MethodDelete, "/api/v1/campaigns/"+url.PathEscape(id), nil, nil); err != nil {
		return fmt.Errorf("client.DeleteCampaign: %w", err)
	}
	return nil
}

// --- Billing ---

// CheckoutSession is the server's handle to a hosted payment page.
type CheckoutSession struct {
	SessionID   string `json:"session_id"`
	CheckoutURL string `json:"checkout_url"`
}

// CreateCheckoutSession starts a checkout for the given plan
// ("MONTHLY" or "ANNUALLY") and returns the hosted payment URL.
func (c *Client) CreateCheckoutSession(ctx context.Context, plan string) (*CheckoutSession, error) {
	var sess CheckoutSession
	if err := c.post(ctx, "/api/v1/billing/create-checkout-session", map[string]string{"plan": plan}, &sess); err != nil {
		return nil, fmt.Errorf("client.CreateCheckoutSession: %w", err)
	}
	return &sess, nil
}

func (c *Client) post(ctx context.Context, path string, body any, out any) error {
	return c.doRequest(ctx, http.MethodPost, path, body, out)
}

func (c *Client) doRequest(ctx context.Context, method, path string, body any, out any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("X-Request-ID", uuid.NewString())
	if tok, ok := c.tokens.Token(); ok {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck // best-effort close

	if resp.StatusCode >= 400 {
		respBody, readErr := io.ReadAll(io.LimitReader(resp.Body, 1<<20)) // 1 MB max error body
		if readErr != nil {
			return &HTTPError{StatusCode: resp.StatusCode, Message: fmt.Sprintf("failed to read body: %v", readErr)}
		}
		var apiErr struct {
			Detail string `json:"detail"`
		}
		if json.Unmarshal(respBody, &apiErr) == nil && apiErr.Detail != "" {
			return &HTTPError{StatusCode: resp.StatusCode, Message: apiErr.Detail}
		}
		return &HTTPError{StatusCode: resp.StatusCode, Message: string(respBody)}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.doRequest(ctx, http.MethodGet, path, nil, out)
}
