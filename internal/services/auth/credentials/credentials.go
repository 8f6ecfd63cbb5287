// Package credentials implements email and password sign up and sign in
// over the onboarding account store.
package credentials

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/louisbranch/inpact/internal/platform/errors"
	"github.com/louisbranch/inpact/internal/platform/id"
	"github.com/louisbranch/inpact/internal/services/onboarding/storage"
	"github.com/louisbranch/inpact/internal/services/onboarding/validate"
)

// MinPasswordLength is the shortest accepted password.
const MinPasswordLength = 8

// ErrInvalidCredentials is returned for any failed sign in so callers never
// learn which half was wrong.
var ErrInvalidCredentials = apperrors.New(apperrors.CodeInvalidCredentials, "Invalid email or password. Please try again.")

// Service signs accounts up and in.
type Service struct {
	accounts storage.AccountStore
	cost     int
	now      func() time.Time
	newID    func() (string, error)
}

// Option customizes a Service.
type Option func(*Service)

// WithCost overrides the bcrypt cost.
func WithCost(cost int) Option {
	return func(s *Service) { s.cost = cost }
}

// WithClock overrides the creation timestamp source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService returns a Service over accounts.
func NewService(accounts storage.AccountStore, opts ...Option) *Service {
	s := &Service{
		accounts: accounts,
		cost:     bcrypt.DefaultCost,
		now:      time.Now,
		newID:    id.NewID,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SignUpInput is one registration request.
type SignUpInput struct {
	Email       string
	Password    string
	DisplayName string
}

// SignUp creates a password account.
func (s *Service) SignUp(ctx context.Context, input SignUpInput) (storage.Account, error) {
	if s == nil || s.accounts == nil {
		return storage.Account{}, fmt.Errorf("account store is not configured")
	}
	email := strings.TrimSpace(input.Email)
	if msg, ok := validate.Email(email, "Email is required."); !ok {
		return storage.Account{}, apperrors.New(apperrors.CodeStepInvalid, msg)
	}
	if utf8.RuneCountInString(input.Password) < MinPasswordLength {
		return storage.Account{}, apperrors.New(apperrors.CodeStepInvalid, fmt.Sprintf("Password must be at least %d characters.", MinPasswordLength))
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), s.cost)
	if err != nil {
		return storage.Account{}, fmt.Errorf("hash password: %w", err)
	}
	accountID, err := s.newID()
	if err != nil {
		return storage.Account{}, err
	}

	displayName := strings.TrimSpace(input.DisplayName)
	if displayName == "" {
		displayName = localPart(email)
	}
	account := storage.Account{
		ID:           accountID,
		Email:        strings.ToLower(email),
		DisplayName:  displayName,
		PasswordHash: string(hash),
		CreatedAt:    s.now().UTC(),
	}
	if err := s.accounts.CreateAccount(ctx, account); err != nil {
		return storage.Account{}, err
	}
	return account, nil
}

// SignIn verifies an email and password pair.
func (s *Service) SignIn(ctx context.Context, email, password string) (storage.Account, error) {
	if s == nil || s.accounts == nil {
		return storage.Account{}, fmt.Errorf("account store is not configured")
	}
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return storage.Account{}, ErrInvalidCredentials
	}
	account, err := s.accounts.GetAccountByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return storage.Account{}, ErrInvalidCredentials
		}
		return storage.Account{}, fmt.Errorf("lookup account: %w", err)
	}
	if account.PasswordHash == "" {
		return storage.Account{}, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)) != nil {
		return storage.Account{}, ErrInvalidCredentials
	}
	return account, nil
}

func localPart(email string) string {
	if idx := strings.Index(email, "@"); idx > 0 {
		return email[:idx]
	}
	return email
}
