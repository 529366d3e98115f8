package session

import (
	"context"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/wkwunju/moreach-sub001/pkg/client"
	"github.com/wkwunju/moreach-sub001/pkg/domain"
)

// UserFetcher is the slice of the API client the service needs.
type UserFetcher interface {
	CurrentUser(ctx context.Context) (*domain.User, error)
}

// ErrNoSession is returned when a write-back is attempted without a stored token.
var ErrNoSession = errors.New("no active session")

// Service owns the session lifecycle: login and logout write-through, the
// refresh policy, and entitlement checks against the injected clock. All
// state changes go through the store and fire the bus.
type Service struct {
	store *Store
	api   UserFetcher
	bus   *Bus
	log   *zap.Logger
	now   func() time.Time
}

// NewService wires a session service. A nil logger is replaced with a no-op
// one; the clock defaults to time.Now and is overridable for tests.
func NewService(store *Store, api UserFetcher, bus *Bus, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		store: store,
		api:   api,
		bus:   bus,
		log:   log,
		now:   time.Now,
	}
}

// SetClock replaces the time source. Tests use this to pin entitlement
// boundaries.
func (s *Service) SetClock(now func() time.Time) {
	s.now = now
}

// Store exposes the underlying session store for read access.
func (s *Service) Store() *Store {
	return s.store
}

// Bus exposes the session-change bus for subscribers.
func (s *Service) Bus() *Bus {
	return s.bus
}

// RefreshUser reconciles the cached user record with the server. One
// network round-trip, no retries. The user is nil when no session exists
// (or the server rejected the token); a transient failure falls back to the
// cached record instead of logging the user out, and stale reports that
// fallback so callers can tell served-from-cache apart from a real refresh.
func (s *Service) RefreshUser(ctx context.Context) (u *domain.User, stale bool) {
	token, ok := s.store.Token()
	if !ok {
		return nil, false
	}

	fresh, err := s.api.CurrentUser(ctx)
	if err != nil {
		if client.IsStatus(err, http.StatusUnauthorized) {
			// The server explicitly rejected the credentials. This is the
			// only path that forces a logout from inside this package.
			s.log.Info("token rejected by server, clearing session")
			s.store.Clear()
			s.bus.Notify()
			return nil, false
		}
		// Transient: network unreachable or a non-401 server error. Stale
		// data beats a forced logout on every outage.
		s.log.Warn("user refresh failed, serving cached record", zap.Error(err))
		return s.store.User(), true
	}

	if err := s.store.Write(token, fresh); err != nil {
		// The store still holds the previous record; broadcast anyway so
		// subscribers re-read rather than diverge silently from the caller.
		s.log.Error("persist refreshed user", zap.Error(err))
		s.bus.Notify()
		return fresh, false
	}
	s.bus.Notify()
	return fresh, false
}

// Login stores a freshly issued session and broadcasts the change.
func (s *Service) Login(token string, u *domain.User) error {
	if err := s.store.Write(token, u); err != nil {
		return err
	}
	s.log.Info("session established", zap.String("user_id", u.ID))
	s.bus.Notify()
	return nil
}

// Logout clears the session and fires exactly one broadcast.
func (s *Service) Logout() {
	s.store.Clear()
	s.log.Info("session cleared")
	s.bus.Notify()
}

// SetUser writes an updated user record back under the existing token.
// Used when an API call (profile completion, checkout return) hands back a
// fresh user payload.
func (s *Service) SetUser(u *domain.User) error {
	token, ok := s.store.Token()
	if !ok {
		return ErrNoSession
	}
	if err := s.store.Write(token, u); err != nil {
		return err
	}
	s.bus.Notify()
	return nil
}

// IsAuthenticated reports token presence.
func (s *Service) IsAuthenticated() bool {
	return s.store.IsAuthenticated()
}

// TrialDaysRemaining evaluates the cached record against the service clock.
func (s *Service) TrialDaysRemaining() int {
	return TrialDaysRemaining(s.store.User(), s.now())
}

// IsTrialActive evaluates the cached record against the service clock.
func (s *Service) IsTrialActive() bool {
	return IsTrialActive(s.store.User(), s.now())
}

// IsSubscriptionActive evaluates the cached record against the service clock.
func (s *Service) IsSubscriptionActive() bool {
	return IsSubscriptionActive(s.store.User(), s.now())
}
