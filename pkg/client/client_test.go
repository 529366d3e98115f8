package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/wkwunju/moreach-sub001/pkg/domain"
)

func TestCurrentUser(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/auth/me" {
			http.NotFound(w, r)
			return
		}
		if r.Header.Get("Authorization") != "Bearer test-token" {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"detail": "not authenticated"}) //nolint:errcheck
			return
		}
		if r.Header.Get("X-Request-ID") == "" {
			t.Error("missing X-Request-ID header")
		}
		json.NewEncoder(w).Encode(domain.User{ //nolint:errcheck
			ID:               "u-1",
			Email:            "jo@example.com",
			SubscriptionTier: domain.TierFreeTrial,
		})
	}))
	defer srv.Close()

	c := New(srv.URL, StaticToken("test-token"))
	me, err := c.CurrentUser(context.Background())
	if err != nil {
		t.Fatalf("CurrentUser() error: %v", err)
	}
	if me.Email != "jo@example.com" {
		t.Errorf("Email = %q, want %q", me.Email, "jo@example.com")
	}
	if me.SubscriptionTier != domain.TierFreeTrial {
		t.Errorf("SubscriptionTier = %q, want %q", me.SubscriptionTier, domain.TierFreeTrial)
	}
}

func TestCurrentUserUnauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"detail": "token expired"}) //nolint:errcheck
	}))
	defer srv.Close()

	c := New(srv.URL, StaticToken("bad-token"))
	_, err := c.CurrentUser(context.Background())
	if err == nil {
		t.Fatal("expected error for unauthorized request")
	}
	if !IsStatus(err, http.StatusUnauthorized) {
		t.Errorf("IsStatus(err, 401) = false for %v", err)
	}
	if got := Detail(err); got != "token expired" {
		t.Errorf("Detail(err) = %q, want server detail verbatim", got)
	}
}

func TestNoTokenMeansUnauthenticatedRequest(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h := r.Header.Get("Authorization"); h != "" {
			t.Errorf("Authorization = %q, want empty", h)
		}
		json.NewEncoder(w).Encode(VerifyEmailResponse{Message: "ok"}) //nolint:errcheck
	}))
	defer srv.Close()

	c := New(srv.URL, StaticToken(""))
	if _, err := c.VerifyEmail(context.Background(), "abc"); err != nil {
		t.Fatalf("VerifyEmail() error: %v", err)
	}
}

func TestCompleteProfile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/v1/auth/complete-profile" {
			http.NotFound(w, r)
			return
		}
		var req CompleteProfileRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		json.NewEncoder(w).Encode(domain.User{ //nolint:errcheck
			ID:               "u-1",
			FullName:         req.FullName,
			Industry:         req.Industry,
			ProfileCompleted: true,
		})
	}))
	defer srv.Close()

	c := New(srv.URL, StaticToken("tok"))
	u, err := c.CompleteProfile(context.Background(), CompleteProfileRequest{
		FullName:  "Jo Smith",
		Industry:  "Technology",
		UsageType: "Sales",
	})
	if err != nil {
		t.Fatalf("CompleteProfile() error: %v", err)
	}
	if !u.ProfileCompleted {
		t.Error("ProfileCompleted = false, want true")
	}
	if u.FullName != "Jo Smith" {
		t.Errorf("FullName = %q, want %q", u.FullName, "Jo Smith")
	}
}

func TestVerifyEmailSendsTokenParam(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/auth/verify-email" {
			http.NotFound(w, r)
			return
		}
		if got := r.URL.Query().Get("token"); got != "the token" {
			t.Errorf("token param = %q, want %q", got, "the token")
		}
		json.NewEncoder(w).Encode(VerifyEmailResponse{Message: "email verified"}) //nolint:errcheck
	}))
	defer srv.Close()

	c := New(srv.URL, StaticToken(""))
	resp, err := c.VerifyEmail(context.Background(), "the token")
	if err != nil {
		t.Fatalf("VerifyEmail() error: %v", err)
	}
	if resp.Message != "email verified" {
		t.Errorf("Message = %q, want %q", resp.Message, "email verified")
	}
}

func TestVerifyEmailDetailError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"detail": "verification token is invalid or expired"}) //nolint:errcheck
	}))
	defer srv.Close()

	c := New(srv.URL, StaticToken(""))
	_, err := c.VerifyEmail(context.Background(), "nope")
	if err == nil {
		t.Fatal("expected error")
	}
	if got := Detail(err); got != "verification token is invalid or expired" {
		t.Errorf("Detail(err) = %q, want server message verbatim", got)
	}
}

func TestListCampaigns(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/campaigns" {
			http.NotFound(w, r)
			return
		}
		json.NewEncoder(w).Encode([]domain.Campaign{ //nolint:errcheck
			{Name: "Q3 outreach", Status: domain.CampaignStatusActive, LeadsFound: 12},
			{Name: "Founders list", Status: domain.CampaignStatusDraft},
		})
	}))
	defer srv.Close()

	c := New(srv.URL, StaticToken("tok"))
	campaigns, err := c.ListCampaigns(context.Background())
	if err != nil {
		t.Fatalf("ListCampaigns() error: %v", err)
	}
	if len(campaigns) != 2 {
		t.Fatalf("got %d campaigns, want 2", len(campaigns))
	}
	if campaigns[0].Status != domain.CampaignStatusActive {
		t.Errorf("campaigns[0].Status = %q, want %q", campaigns[0].Status, domain.CampaignStatusActive)
	}
}

func TestCreateCampaign(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		var req CreateCampaignRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(domain.Campaign{ //nolint:errcheck
			Name:   req.Name,
			Status: domain.CampaignStatusDraft,
		})
	}))
	defer srv.Close()

	c := New(srv.URL, StaticToken("tok"))
	created, err := c.CreateCampaign(context.Background(), CreateCampaignRequest{Name: "New campaign"})
	if err != nil {
		t.Fatalf("CreateCampaign() error: %v", err)
	}
	if created.Name != "New campaign" {
		t.Errorf("Name = %q, want %q", created.Name, "New campaign")
	}
}

func TestDeleteCampaign(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		if !strings.HasPrefix(r.URL.Path, "/api/v1/campaigns/") {
			http.NotFound(w, r)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c := New(srv.URL, StaticToken("tok"))
	if err := c.DeleteCampaign(context.Background(), "abc-123"); err != nil {
		t.Fatalf("DeleteCampaign() error: %v", err)
	}
}

func TestCreateCheckoutSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/billing/create-checkout-session" {
			http.NotFound(w, r)
			return
		}
		var req map[string]string
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req["plan"] == "" {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(map[string]string{"detail": "plan is required"}) //nolint:errcheck
			return
		}
		json.NewEncoder(w).Encode(CheckoutSession{ //nolint:errcheck
			SessionID:   "cs_123",
			CheckoutURL: "https://pay.example.com/cs_123",
		})
	}))
	defer srv.Close()

	c := New(srv.URL, StaticToken("tok"))
	sess, err := c.CreateCheckoutSession(context.Background(), domain.TierMonthly)
	if err != nil {
		t.Fatalf("CreateCheckoutSession() error: %v", err)
	}
	if sess.CheckoutURL != "https://pay.example.com/cs_123" {
		t.Errorf("CheckoutURL = %q", sess.CheckoutURL)
	}
}

func TestExchangeCode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/auth/cli-exchange" {
			http.NotFound(w, r)
			return
		}
		var req map[string]string
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req["code"] != "one-time" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		json.NewEncoder(w).Encode(map[string]string{"token": "sess-token"}) //nolint:errcheck
	}))
	defer srv.Close()

	c := New(srv.URL, StaticToken(""))
	tok, err := c.ExchangeCode(context.Background(), "one-time")
	if err != nil {
		t.Fatalf("ExchangeCode() error: %v", err)
	}
	if tok != "sess-token" {
		t.Errorf("token = %q, want %q", tok, "sess-token")
	}
}

func TestIsStatus(t *testing.T) {
	err := &HTTPError{StatusCode: 401, Message: "nope"}
	if !IsStatus(err, 401) {
		t.Error("IsStatus(err, 401) = false, want true")
	}
	if IsStatus(err, 500) {
		t.Error("IsStatus(err, 500) = true, want false")
	}
	if IsStatus(context.DeadlineExceeded, 401) {
		t.Error("IsStatus on non-HTTP error = true, want false")
	}
}
