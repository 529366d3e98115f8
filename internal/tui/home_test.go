package tui

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/wkwunju/moreach-sub001/pkg/client"
	"github.com/wkwunju/moreach-sub001/pkg/domain"
	"github.com/wkwunju/moreach-sub001/pkg/session"
)

func loggedInService(t *testing.T, u *domain.User) *session.Service {
	t.Helper()
	store := session.NewStore(session.NewMemKV())
	svc := session.NewService(store, nil, session.NewBus(), nil)
	if err := svc.Login("tok", u); err != nil {
		t.Fatal(err)
	}
	return svc
}

func TestHomeRefreshNotices(t *testing.T) {
	cached := &domain.User{ID: "u-1", Email: "a@b.co"}

	tests := []struct {
		name       string
		signedIn   bool
		msg        refreshDoneMsg
		wantNotice string
	}{
		{"refreshed", true, refreshDoneMsg{user: cached}, "account refreshed"},
		{"cached fallback", true, refreshDoneMsg{user: cached, stale: true}, "could not reach the server — showing cached data"},
		{"no record", true, refreshDoneMsg{}, "could not reach the server"},
		{"logged out", false, refreshDoneMsg{}, "session expired — run `moreach login`"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var svc *session.Service
			if tt.signedIn {
				svc = loggedInService(t, cached)
			} else {
				svc = session.NewService(session.NewStore(session.NewMemKV()), nil, session.NewBus(), nil)
			}
			m := newHomeModel(svc)
			m.refreshing = true

			m, _ = m.Update(tt.msg)
			if m.refreshing {
				t.Error("refreshing = true after refreshDoneMsg, want false")
			}
			if m.notice != tt.wantNotice {
				t.Errorf("notice = %q, want %q", m.notice, tt.wantNotice)
			}
		})
	}
}

func TestHomeRefreshAgainstFailingServer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	store := session.NewStore(session.NewMemKV())
	api := client.New(srv.URL, store)
	svc := session.NewService(store, api, session.NewBus(), nil)
	if err := svc.Login("tok", &domain.User{ID: "u-1", Email: "a@b.co"}); err != nil {
		t.Fatal(err)
	}

	// The fallback record must not be announced as a successful refresh.
	u, stale := svc.RefreshUser(context.Background())
	m := newHomeModel(svc)
	m, _ = m.Update(refreshDoneMsg{user: u, stale: stale})
	if m.notice != "could not reach the server — showing cached data" {
		t.Errorf("notice = %q, want the cached-data notice", m.notice)
	}
	if !strings.Contains(m.View(), m.notice) {
		t.Error("View() does not render the notice")
	}
}
