// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/repraze/repraze-apps-sub001/models"
)

var (
	ErrInvalidTokenParams = errors.New("invalid params for generating JWT token")
	ErrInvalidTokenClaims = errors.New("token claims have an unexpected shape")
)

// GenerateJWTToken creates an HMAC-SHA256 JWT carrying claim.
//
// The token includes:
//   - Issuer   (iss): identifies the service that issued the token
//   - Subject  (sub): claim.SubjectID
//   - Name     (name): claim.SubjectName
//   - IssuedAt (iat): the current time
//   - ExpiresAt (exp): now plus tokenDuration, only when tokenDuration > 0
//
// An empty subject id, issuer or sign key is rejected.
//
// Example usage:
//
//	token, err := utils.GenerateJWTToken("repraze", claim, time.Hour, "secret")
func GenerateJWTToken(issuer string, claim models.Claim, tokenDuration time.Duration, signKey string) (models.Token, error) {
	if issuer == "" || signKey == "" || claim.SubjectID == "" {
		return models.Token{}, ErrInvalidTokenParams
	}

	now := time.Now()
	name := claim.SubjectName
	claims := &models.TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:   issuer,
			Subject:  claim.SubjectID,
			IssuedAt: jwt.NewNumericDate(now),
		},
		Name: &name,
	}

	var expiresAt time.Time
	if tokenDuration > 0 {
		expiresAt = now.Add(tokenDuration)
		claims.ExpiresAt = jwt.NewNumericDate(expiresAt)
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(signKey))
	if err != nil {
		return models.Token{}, fmt.Errorf("error occurred during signing JWT token: %w", err)
	}

	return models.Token{
		Token:        token,
		SignedString: tokenString,
		Claim:        claim,
		ExpiresAt:    expiresAt,
	}, nil
}

// ValidateAndParseJWTToken verifies tokenString and extracts its claim.
//
// Validation includes:
//   - Signature verification with tokenSignKey, HS256 only
//   - Issuer (iss) check against tokenIssuer
//   - Expiration (exp) check when the claim is present
//   - Claim shape: a non-empty subject and a name claim
func ValidateAndParseJWTToken(tokenString, tokenSignKey, tokenIssuer string) (models.Token, error) {
	claims := &models.TokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		return []byte(tokenSignKey), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithIssuedAt(),
	)
	if err != nil {
		return models.Token{}, fmt.Errorf("error occurred validating and parsing token: %w", err)
	}

	if claims.Subject == "" || claims.Name == nil {
		return models.Token{}, ErrInvalidTokenClaims
	}

	result := models.Token{
		Token:        token,
		SignedString: tokenString,
		Claim: models.Claim{
			SubjectID:   claims.Subject,
			SubjectName: *claims.Name,
		},
	}
	if claims.ExpiresAt != nil {
		result.ExpiresAt = claims.ExpiresAt.Time
	}

	return result, nil
}

// ParseBearerToken extracts the token from an "Authorization: Bearer <t>"
// header value. The scheme is matched case-insensitively.
func ParseBearerToken(authorizationHeader string) (string, error) {
	scheme, token, found := strings.Cut(strings.TrimSpace(authorizationHeader), " ")
	token = strings.TrimSpace(token)
	if !found || !strings.EqualFold(scheme, "Bearer") || token == "" {
		return "", errors.New("invalid authorization header")
	}
	return token, nil
}
