// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/repraze/repraze-apps-sub001/internal/config"
	"github.com/repraze/repraze-apps-sub001/internal/crypto"
	"github.com/repraze/repraze-apps-sub001/internal/logger"
	"github.com/repraze/repraze-apps-sub001/internal/store"
	"github.com/repraze/repraze-apps-sub001/internal/utils"
	"github.com/repraze/repraze-apps-sub001/internal/validators"
	"github.com/repraze/repraze-apps-sub001/models"
)

// authService is the concrete implementation of AuthService.
// Passwords are checked with a PasswordHasher and tokens are HS256 JWTs.
type authService struct {
	userRepository store.UserRepository
	hasher         crypto.PasswordHasher
	validator      validators.Validator

	// tokenSignKey is the HMAC secret used to sign and verify tokens.
	tokenSignKey string

	// tokenIssuer is the "iss" claim embedded in every issued token.
	// Tokens whose issuer does not match this value are rejected.
	tokenIssuer string

	// tokenDuration controls how long a newly issued token remains valid.
	// Zero issues tokens without expiry.
	tokenDuration time.Duration

	// loginDelay returns the minimum duration of one login attempt.
	loginDelay func() time.Duration

	logger *logger.Logger
}

// NewAuthService constructs an AuthService. All state is read-only after
// construction, so the service is safe for concurrent use.
func NewAuthService(
	userRepository store.UserRepository,
	hasher crypto.PasswordHasher,
	cfg config.App,
	logger *logger.Logger,
) AuthService {
	return &authService{
		userRepository: userRepository,
		hasher:         hasher,
		validator:      validators.NewContentValidator(),
		tokenSignKey:   cfg.TokenSignKey,
		tokenIssuer:    cfg.TokenIssuer,
		tokenDuration:  cfg.TokenDuration,
		loginDelay:     uniformDelay(cfg.LoginDelayMin, cfg.LoginDelayMax),
		logger:         logger,
	}
}

// uniformDelay samples uniformly from [lo, hi].
func uniformDelay(lo, hi time.Duration) func() time.Duration {
	return func() time.Duration {
		if hi <= lo {
			return lo
		}
		return lo + rand.N(hi-lo+1)
	}
}

// Login authenticates credentials.
//
// The delay is started when the attempt begins, so an unknown username and
// a wrong password cannot be told apart by response time. Both yield
// ErrInvalidCredentials.
func (a *authService) Login(ctx context.Context, credentials models.Credentials) (models.User, error) {
	log := logger.FromContext(ctx)

	delay := time.NewTimer(a.loginDelay())
	defer func() {
		select {
		case <-delay.C:
		case <-ctx.Done():
			delay.Stop()
		}
	}()

	if err := a.validator.Validate(ctx, credentials); err != nil {
		return models.User{}, err
	}

	user, err := a.userRepository.FindByUsername(ctx, credentials.Username)
	if errors.Is(err, store.ErrNotFound) {
		log.Info().Str("func", "*authService.Login").Msg("login with unknown username")
		return models.User{}, ErrInvalidCredentials
	}
	if err != nil {
		log.Err(err).Str("func", "*authService.Login").Msg("user search by username failed")
		return models.User{}, fmt.Errorf("user search by username failed: %w", err)
	}

	ok, err := a.hasher.Verify(ctx, user.PasswordHash, credentials.Password)
	if err != nil {
		log.Err(err).Str("func", "*authService.Login").Str("id", user.ID).Msg("password verification failed")
		return models.User{}, fmt.Errorf("password verification failed: %w", err)
	}
	if !ok {
		log.Info().Str("func", "*authService.Login").Str("id", user.ID).Msg("wrong password")
		return models.User{}, ErrInvalidCredentials
	}

	return user, nil
}

// CreateToken issues a signed token for claim. A claim without a subject is
// an internal fault reported as ErrTokenCreationFailed.
func (a *authService) CreateToken(ctx context.Context, claim models.Claim) (models.Token, error) {
	token, err := utils.GenerateJWTToken(a.tokenIssuer, claim, a.tokenDuration, a.tokenSignKey)
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "*authService.CreateToken").
			Str("subject", claim.SubjectID).
			Msg("token creation failed")
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}

// ParseToken normalises every verification failure (expired, wrong issuer,
// wrong algorithm, malformed claim) to ErrTokenIsExpiredOrInvalid.
func (a *authService) ParseToken(ctx context.Context, tokenString string) (models.Claim, error) {
	token, err := utils.ValidateAndParseJWTToken(tokenString, a.tokenSignKey, a.tokenIssuer)
	if err != nil {
		logger.FromContext(ctx).Debug().Err(err).Str("func", "*authService.ParseToken").Msg("token rejected")
		return models.Claim{}, ErrTokenIsExpiredOrInvalid
	}

	return token.Claim, nil
}
