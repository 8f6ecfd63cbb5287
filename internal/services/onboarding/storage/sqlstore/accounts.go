package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/louisbranch/inpact/internal/services/onboarding/storage"
)

const accountColumns = `id, email, display_name, password_hash, provider, provider_subject, created_at`

// CreateAccount inserts a new sign-in identity. Emails are unique.
func (s *Store) CreateAccount(ctx context.Context, account storage.Account) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	id := strings.TrimSpace(account.ID)
	email := normalizeEmail(account.Email)
	if id == "" {
		return fmt.Errorf("account id is required")
	}
	if email == "" {
		return fmt.Errorf("account email is required")
	}
	createdAt := account.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	err := s.exec(ctx,
		`INSERT INTO accounts (`+accountColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id,
		email,
		strings.TrimSpace(account.DisplayName),
		account.PasswordHash,
		strings.TrimSpace(account.Provider),
		strings.TrimSpace(account.ProviderSubject),
		toMillis(createdAt),
	)
	if err != nil {
		if s.isUniqueViolation(err) {
			return storage.ErrAccountExists
		}
		return fmt.Errorf("create account: %w", err)
	}
	return nil
}

// GetAccount returns one account by id.
func (s *Store) GetAccount(ctx context.Context, id string) (storage.Account, error) {
	return s.getAccount(ctx, "id = ?", strings.TrimSpace(id))
}

// GetAccountByEmail returns one account by normalized email.
func (s *Store) GetAccountByEmail(ctx context.Context, email string) (storage.Account, error) {
	return s.getAccount(ctx, "email = ?", normalizeEmail(email))
}

// GetAccountByProvider returns the account linked to an external identity.
func (s *Store) GetAccountByProvider(ctx context.Context, provider, subject string) (storage.Account, error) {
	provider = strings.TrimSpace(provider)
	subject = strings.TrimSpace(subject)
	if provider == "" || subject == "" {
		return storage.Account{}, fmt.Errorf("provider and subject are required")
	}
	return s.getAccount(ctx, "provider = ? AND provider_subject = ?", provider, subject)
}

func (s *Store) getAccount(ctx context.Context, where string, args ...any) (storage.Account, error) {
	if err := s.ready(ctx); err != nil {
		return storage.Account{}, err
	}
	for _, arg := range args {
		if value, ok := arg.(string); ok && value == "" {
			return storage.Account{}, fmt.Errorf("account lookup key is required")
		}
	}

	var (
		account   storage.Account
		createdAt int64
	)
	err := s.queryRow(ctx, `SELECT `+accountColumns+` FROM accounts WHERE `+where, args...).Scan(
		&account.ID,
		&account.Email,
		&account.DisplayName,
		&account.PasswordHash,
		&account.Provider,
		&account.ProviderSubject,
		&createdAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return storage.Account{}, storage.ErrNotFound
	}
	if err != nil {
		return storage.Account{}, fmt.Errorf("get account: %w", err)
	}
	account.CreatedAt = fromMillis(createdAt)
	return account, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
