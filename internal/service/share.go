package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"stash/internal/domain"
	"stash/internal/domain/models"
	"stash/internal/domain/repositories"
	"stash/internal/domain/services"
	"stash/internal/policy"
)

// shareTokenBytes gives 128 bits of entropy, hex-encoded to 32 characters.
const shareTokenBytes = 16

type shareService struct {
	shareRepo repositories.ShareTokenRepository
	userRepo  repositories.UserRepository
	storage   *policy.Storage
	baseURL   string
	now       func() time.Time
	logger    *slog.Logger
}

// NewShareService creates a new share token service
func NewShareService(
	shareRepo repositories.ShareTokenRepository,
	userRepo repositories.UserRepository,
	storage *policy.Storage,
	baseURL string,
	logger *slog.Logger,
) services.ShareService {
	return &shareService{
		shareRepo: shareRepo,
		userRepo:  userRepo,
		storage:   storage,
		baseURL:   baseURL,
		now:       time.Now,
		logger:    logger,
	}
}

// Issue mints a random token impersonating userID for a fixed TTL.
// There is no revocation; the token simply dies at expires_at.
func (s *shareService) Issue(ctx context.Context, userID string) (*services.IssuedShare, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}

	buf := make([]byte, shareTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return nil, fmt.Errorf("generate share token: %w", err)
	}
	token := hex.EncodeToString(buf)

	now := s.now()
	share := &models.ShareToken{
		Token:     token,
		UserID:    userID,
		ExpiresAt: now.Add(s.storage.ShareTTL()),
		CreatedAt: now,
	}

	if err := s.shareRepo.Create(ctx, share); err != nil {
		return nil, err
	}

	s.logger.Info("share token issued",
		"user_id", userID,
		"expires_at", share.ExpiresAt,
	)

	return &services.IssuedShare{
		Token:     token,
		URL:       s.baseURL + "/share/" + token,
		ExpiresAt: share.ExpiresAt.Format(time.RFC3339),
	}, nil
}

// Resolve returns the user a valid token impersonates. A token that is
// absent and one that has expired produce the same error, so probing
// responses reveal nothing about which tokens ever existed.
func (s *shareService) Resolve(ctx context.Context, token string) (*models.User, error) {
	share, err := s.shareRepo.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrInvalidShare
		}
		return nil, err
	}

	if share.Expired(s.now()) {
		return nil, domain.ErrInvalidShare
	}

	user, err := s.userRepo.GetByID(ctx, share.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrInvalidShare
		}
		return nil, err
	}

	return user, nil
}
