// Package auth registers users and verifies their credentials. A successful
// login yields the user whose ID scopes every ledger operation.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"fjacquet/fintrack/internal/fterrors"
	"fjacquet/fintrack/internal/logging"
	"fjacquet/fintrack/internal/models"
	"fjacquet/fintrack/internal/store"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Service manages user accounts.
type Service struct {
	store  store.Store
	logger logging.Logger
	cost   int
	now    func() time.Time
}

// Option customizes a Service.
type Option func(*Service)

// WithCost sets the bcrypt cost. Tests use bcrypt.MinCost.
func WithCost(cost int) Option {
	return func(s *Service) { s.cost = cost }
}

// WithClock sets the time source for CreatedAt.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService creates an account service over st.
func NewService(st store.Store, logger logging.Logger, opts ...Option) *Service {
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	s := &Service{
		store:  st,
		logger: logger.WithField("component", "auth"),
		cost:   bcrypt.DefaultCost,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func findByName(users []models.User, name string) (models.User, bool) {
	for _, u := range users {
		if strings.EqualFold(u.Name, name) {
			return u, true
		}
	}
	return models.User{}, false
}

// Register creates a user. Names are unique regardless of case; the password
// must be at least models.MinPasswordLength characters.
func (s *Service) Register(ctx context.Context, name, password, currency string) (models.User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.User{}, &fterrors.ValidationError{Entity: "user", Field: "name", Reason: "cannot be empty"}
	}
	if len(password) < models.MinPasswordLength {
		return models.User{}, &fterrors.ValidationError{Entity: "user", Field: "password", Reason: fmt.Sprintf("must be at least %d characters", models.MinPasswordLength)}
	}

	users, err := s.store.LoadUsers(ctx)
	if err != nil {
		return models.User{}, fmt.Errorf("failed to load users: %w", err)
	}
	if _, exists := findByName(users, name); exists {
		return models.User{}, &fterrors.ConflictError{Entity: "user", Key: name}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return models.User{}, fmt.Errorf("failed to hash password: %w", err)
	}
	user := models.User{
		ID:           uuid.NewString(),
		Name:         name,
		PasswordHash: string(hash),
		Currency:     strings.ToUpper(strings.TrimSpace(currency)),
		CreatedAt:    s.now().UTC(),
	}
	if err := s.store.SaveUsers(ctx, append(users, user)); err != nil {
		return models.User{}, fmt.Errorf("failed to save users: %w", err)
	}

	s.logger.WithFields(
		logging.F(logging.FieldUserID, user.ID),
		logging.F(logging.FieldUserName, user.Name),
	).Info("Registered user")
	return user, nil
}

// Login returns the user whose name and password match. Unknown users and
// wrong passwords both yield an AuthenticationError.
func (s *Service) Login(ctx context.Context, name, password string) (models.User, error) {
	name = strings.TrimSpace(name)
	users, err := s.store.LoadUsers(ctx)
	if err != nil {
		return models.User{}, fmt.Errorf("failed to load users: %w", err)
	}
	user, ok := findByName(users, name)
	if !ok {
		s.logger.WithField(logging.FieldUserName, name).Warn("Login for unknown user")
		return models.User{}, &fterrors.AuthenticationError{User: name, Reason: "unknown user"}
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		if !errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			s.logger.WithError(err).WithField(logging.FieldUserID, user.ID).Error("Stored password hash is unusable")
		}
		return models.User{}, &fterrors.AuthenticationError{User: name, Reason: "wrong password"}
	}
	s.logger.WithField(logging.FieldUserID, user.ID).Debug("User logged in")
	return user, nil
}

// List returns every registered user in registration order.
func (s *Service) List(ctx context.Context) ([]models.User, error) {
	users, err := s.store.LoadUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load users: %w", err)
	}
	return users, nil
}
