package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/99minutos/credential-service/internal/api/metrics"
	"github.com/99minutos/credential-service/internal/core/domain"
	"github.com/99minutos/credential-service/internal/core/ports"
)

// timingPassword seeds the dummy hash compared against when a login email is
// unknown. It never matches a stored account.
const timingPassword = "credential-service/timing-equalizer"

// AccountService implements registration, login and profile lookup.
type AccountService struct {
	repo      ports.AccountRepository
	hasher    ports.PasswordHasher
	tokens    ports.TokenIssuer
	cache     ports.ProfileCache
	metrics   metrics.Recorder
	log       zerolog.Logger
	dummyHash string
	now       func() time.Time
}

// NewAccountService wires the account use cases. cache may be nil, in which
// case profiles are always read from the repository.
func NewAccountService(
	repo ports.AccountRepository,
	hasher ports.PasswordHasher,
	tokens ports.TokenIssuer,
	cache ports.ProfileCache,
	recorder metrics.Recorder,
	log zerolog.Logger,
) (*AccountService, error) {
	// Hashed with the live hasher so the unknown-email branch pays the same
	// work factor as a real comparison.
	dummy, err := hasher.Hash(timingPassword)
	if err != nil {
		return nil, fmt.Errorf("prepare dummy hash: %w", err)
	}
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &AccountService{
		repo:      repo,
		hasher:    hasher,
		tokens:    tokens,
		cache:     cache,
		metrics:   recorder,
		log:       log,
		dummyHash: dummy,
		now:       time.Now,
	}, nil
}

func (s *AccountService) Register(ctx context.Context, email, password string) error {
	if email == "" || password == "" {
		s.metrics.IncRegistration("invalid")
		return domain.ErrValidation
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		if errors.Is(err, domain.ErrPasswordTooLong) {
			s.metrics.IncRegistration("invalid")
			return err
		}
		s.metrics.IncRegistration("error")
		return fmt.Errorf("register: %w", err)
	}

	account := &domain.Account{
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    s.now().UTC(),
	}

	created, err := s.repo.Insert(ctx, account)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateAccount) {
			s.metrics.IncRegistration("duplicate")
			return domain.ErrDuplicateAccount
		}
		s.metrics.IncRegistration("error")
		return fmt.Errorf("register: %w: %w", domain.ErrStorage, err)
	}

	s.metrics.IncRegistration("success")
	s.log.Info().Str("account_id", created.ID).Msg("account registered")
	return nil
}

// Login returns a signed bearer token for the account. Unknown email and
// wrong password both yield domain.ErrInvalidCredentials after exactly one
// hash comparison.
func (s *AccountService) Login(ctx context.Context, email, password string) (string, error) {
	if email == "" || password == "" {
		s.metrics.IncLogin("invalid")
		return "", domain.ErrValidation
	}

	account, err := s.repo.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, domain.ErrAccountNotFound) {
		s.metrics.IncLogin("error")
		return "", fmt.Errorf("login: %w: %w", domain.ErrStorage, err)
	}

	if account == nil {
		_, _ = s.hasher.Verify(password, s.dummyHash)
		s.metrics.IncLogin("rejected")
		return "", domain.ErrInvalidCredentials
	}

	ok, err := s.hasher.Verify(password, account.PasswordHash)
	if err != nil {
		s.metrics.IncLogin("error")
		return "", fmt.Errorf("login: %w", err)
	}
	if !ok {
		s.metrics.IncLogin("rejected")
		return "", domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(account.ID)
	if err != nil {
		s.metrics.IncLogin("error")
		return "", fmt.Errorf("login: %w", err)
	}

	s.metrics.IncLogin("success")
	return token, nil
}

// Profile resolves the account behind an authenticated subject. A cached
// profile is only served after the store confirms the account still exists,
// so a removed account yields domain.ErrAccountNotFound immediately.
func (s *AccountService) Profile(ctx context.Context, id string) (*domain.Account, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, id)
		if err != nil {
			s.log.Warn().Err(err).Str("account_id", id).Msg("profile cache read failed")
		} else if cached != nil {
			exists, err := s.repo.Exists(ctx, id)
			if err != nil {
				return nil, fmt.Errorf("profile: %w: %w", domain.ErrStorage, err)
			}
			if !exists {
				s.metrics.IncProfileCache("stale")
				s.evict(ctx, id)
				return nil, domain.ErrAccountNotFound
			}
			s.metrics.IncProfileCache("hit")
			return cached, nil
		}
		s.metrics.IncProfileCache("miss")
	}

	account, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, fmt.Errorf("profile: %w: %w", domain.ErrStorage, err)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, account); err != nil {
			s.log.Warn().Err(err).Str("account_id", id).Msg("profile cache write failed")
		}
	}
	return account, nil
}

func (s *AccountService) evict(ctx context.Context, id string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, id); err != nil {
		s.log.Warn().Err(err).Str("account_id", id).Msg("profile cache evict failed")
	}
}
