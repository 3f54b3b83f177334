package session

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/Abusayem99133/kacha-bazaar/internal/domain"
	"github.com/Abusayem99133/kacha-bazaar/internal/remote"
	"github.com/Abusayem99133/kacha-bazaar/internal/repository"
)

// AuthClient is the slice of the remote auth surface the session state
// depends on. *remote.Auth satisfies it.
type AuthClient interface {
	SignIn(ctx context.Context, email, password string) (*remote.Session, error)
	SignUp(ctx context.Context, email, password string, metadata map[string]string) (*remote.Session, error)
	SignOut(ctx context.Context) error
	Session() *remote.Session
	OnChange(fn func(*remote.Session)) func()
}

// Service holds the current identity and its profile. It is rehydrated
// from the auth client on Init and tracks every subsequent auth change;
// identity changes fan out to subscribers (the cart rebuilds on them).
type Service struct {
	auth     AuthClient
	profiles repository.ProfileRepository

	mu      sync.RWMutex
	user    *remote.User
	profile *domain.UserProfile
	subs    map[int]func()
	nextSub int

	unsubAuth func()
}

func NewService(auth AuthClient, profiles repository.ProfileRepository) *Service {
	return &Service{
		auth:     auth,
		profiles: profiles,
		subs:     make(map[int]func()),
	}
}

// Init subscribes to auth changes and rehydrates state from the current
// session, if any.
func (s *Service) Init(ctx context.Context) error {
	s.unsubAuth = s.auth.OnChange(s.handleAuthChange)

	sess := s.auth.Session()
	if sess == nil {
		return nil
	}

	s.setUser(&sess.User)
	if err := s.loadProfile(ctx, sess.User.ID); err != nil {
		return err
	}
	return nil
}

// Close unsubscribes from auth change notifications.
func (s *Service) Close() {
	if s.unsubAuth != nil {
		s.unsubAuth()
		s.unsubAuth = nil
	}
}

// SignIn authenticates a credential pair. State updates arrive through
// the auth-change callback.
func (s *Service) SignIn(ctx context.Context, email, password string) error {
	if email == "" {
		return &domain.ValidationError{Field: "email", Reason: "required"}
	}
	if password == "" {
		return &domain.ValidationError{Field: "password", Reason: "required"}
	}

	_, err := s.auth.SignIn(ctx, email, password)
	return err
}

// SignUp registers a credential pair and ensures a profile row exists for
// the new identity (role "user"). An existing row is left untouched.
func (s *Service) SignUp(ctx context.Context, email, password, firstName, lastName string) error {
	if email == "" {
		return &domain.ValidationError{Field: "email", Reason: "required"}
	}
	if password == "" {
		return &domain.ValidationError{Field: "password", Reason: "required"}
	}
	if firstName == "" {
		return &domain.ValidationError{Field: "first_name", Reason: "required"}
	}
	if lastName == "" {
		return &domain.ValidationError{Field: "last_name", Reason: "required"}
	}

	sess, err := s.auth.SignUp(ctx, email, password, map[string]string{
		"first_name": firstName,
		"last_name":  lastName,
	})
	if err != nil {
		return err
	}

	userID := sess.User.ID
	if userID == "" {
		return nil
	}

	_, err = s.profiles.Get(ctx, userID)
	if errors.Is(err, domain.ErrNotFound) {
		return s.profiles.Insert(ctx, repository.ProfileInput{
			ID:        userID,
			FirstName: firstName,
			LastName:  lastName,
			Role:      domain.RoleUser,
		})
	}
	return err
}

// SignOut ends the current session.
func (s *Service) SignOut(ctx context.Context) error {
	return s.auth.SignOut(ctx)
}

// User returns the current auth identity, or nil when signed out.
func (s *Service) User() *remote.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// UserID returns the current identity's id, or "" when signed out.
func (s *Service) UserID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return ""
	}
	return s.user.ID
}

// Profile returns the current identity's profile, or nil.
func (s *Service) Profile() *domain.UserProfile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.profile
}

// IsAdmin reports whether the current profile carries the admin role.
func (s *Service) IsAdmin() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.profile != nil && s.profile.IsAdmin()
}

// Subscribe registers fn to run after every identity change. The returned
// func unsubscribes.
func (s *Service) Subscribe(fn func()) func() {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

func (s *Service) handleAuthChange(sess *remote.Session) {
	if sess == nil {
		s.mu.Lock()
		s.user = nil
		s.profile = nil
		s.mu.Unlock()
	} else {
		s.setUser(&sess.User)

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := s.loadProfile(ctx, sess.User.ID); err != nil {
			log.Printf("load profile after auth change: %v", err)
		}
		cancel()
	}

	s.notify()
}

func (s *Service) setUser(u *remote.User) {
	s.mu.Lock()
	s.user = u
	s.mu.Unlock()
}

func (s *Service) loadProfile(ctx context.Context, userID string) error {
	profile, err := s.profiles.Get(ctx, userID)
	if errors.Is(err, domain.ErrNotFound) {
		// Identity without a profile row; admin capability stays off.
		return nil
	}
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.profile = profile
	s.mu.Unlock()
	return nil
}

func (s *Service) notify() {
	s.mu.RLock()
	fns := make([]func(), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.mu.RUnlock()

	for _, fn := range fns {
		fn()
	}
}
