// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/repraze/repraze-apps-sub001/models"
)

const (
	testIssuer = "test-issuer"
	testKey    = "secret-key"
)

var testClaim = models.Claim{SubjectID: "u-1", SubjectName: "Ada"}

func TestGenerateJWTToken_Success(t *testing.T) {
	token, err := GenerateJWTToken(testIssuer, testClaim, time.Hour, testKey)
	require.NoError(t, err)

	assert.NotEmpty(t, token.SignedString)
	require.NotNil(t, token.Token)
	assert.Equal(t, testClaim, token.Claim)
	assert.WithinDuration(t, time.Now().Add(time.Hour), token.ExpiresAt, 5*time.Second)

	claims, ok := token.Token.Claims.(*models.TokenClaims)
	require.True(t, ok)
	assert.Equal(t, testIssuer, claims.Issuer)
	assert.Equal(t, "u-1", claims.Subject)
	require.NotNil(t, claims.Name)
	assert.Equal(t, "Ada", *claims.Name)
	assert.NotNil(t, claims.IssuedAt)
}

func TestGenerateJWTToken_NoExpiry(t *testing.T) {
	token, err := GenerateJWTToken(testIssuer, testClaim, 0, testKey)
	require.NoError(t, err)
	assert.True(t, token.ExpiresAt.IsZero())

	claims := token.Token.Claims.(*models.TokenClaims)
	assert.Nil(t, claims.ExpiresAt)

	parsed, err := ValidateAndParseJWTToken(token.SignedString, testKey, testIssuer)
	require.NoError(t, err)
	assert.Equal(t, testClaim, parsed.Claim)
}

func TestGenerateJWTToken_InvalidParams(t *testing.T) {
	tests := []struct {
		name   string
		issuer string
		claim  models.Claim
		key    string
	}{
		{"empty issuer", "", testClaim, testKey},
		{"empty key", testIssuer, testClaim, ""},
		{"empty subject", testIssuer, models.Claim{SubjectName: "x"}, testKey},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := GenerateJWTToken(tt.issuer, tt.claim, time.Hour, tt.key)
			assert.ErrorIs(t, err, ErrInvalidTokenParams)
		})
	}
}

func TestValidateAndParseJWTToken_RoundTrip(t *testing.T) {
	token, err := GenerateJWTToken(testIssuer, testClaim, time.Hour, testKey)
	require.NoError(t, err)

	parsed, err := ValidateAndParseJWTToken(token.SignedString, testKey, testIssuer)
	require.NoError(t, err)
	assert.Equal(t, testClaim, parsed.Claim)
	assert.Equal(t, token.SignedString, parsed.SignedString)
	assert.False(t, parsed.ExpiresAt.IsZero())
}

// TestValidateAndParseJWTToken_EmptyName verifies that an empty but present
// name claim is accepted.
func TestValidateAndParseJWTToken_EmptyName(t *testing.T) {
	claim := models.Claim{SubjectID: "u-2"}
	token, err := GenerateJWTToken(testIssuer, claim, time.Hour, testKey)
	require.NoError(t, err)

	parsed, err := ValidateAndParseJWTToken(token.SignedString, testKey, testIssuer)
	require.NoError(t, err)
	assert.Equal(t, claim, parsed.Claim)
}

func signRaw(t *testing.T, method jwt.SigningMethod, claims jwt.Claims, key any) string {
	t.Helper()
	s, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)
	return s
}

func TestValidateAndParseJWTToken_Rejects(t *testing.T) {
	name := "Ada"
	valid := func() *models.TokenClaims {
		return &models.TokenClaims{
			RegisteredClaims: jwt.RegisteredClaims{
				Issuer:    testIssuer,
				Subject:   "u-1",
				IssuedAt:  jwt.NewNumericDate(time.Now()),
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
			Name: &name,
		}
	}

	expired := valid()
	expired.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Minute))

	wrongIssuer := valid()
	wrongIssuer.Issuer = "someone-else"

	noSubject := valid()
	noSubject.Subject = ""

	noName := valid()
	noName.Name = nil

	tests := []struct {
		name  string
		token string
		err   error
	}{
		{name: "garbage", token: "not.a.token"},
		{name: "wrong key", token: signRaw(t, jwt.SigningMethodHS256, valid(), []byte("other"))},
		{name: "HS512 rejected", token: signRaw(t, jwt.SigningMethodHS512, valid(), []byte(testKey))},
		{name: "none rejected", token: signRaw(t, jwt.SigningMethodNone, valid(), jwt.UnsafeAllowNoneSignatureType)},
		{name: "expired", token: signRaw(t, jwt.SigningMethodHS256, expired, []byte(testKey))},
		{name: "wrong issuer", token: signRaw(t, jwt.SigningMethodHS256, wrongIssuer, []byte(testKey))},
		{name: "no subject", token: signRaw(t, jwt.SigningMethodHS256, noSubject, []byte(testKey)), err: ErrInvalidTokenClaims},
		{name: "no name", token: signRaw(t, jwt.SigningMethodHS256, noName, []byte(testKey)), err: ErrInvalidTokenClaims},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ValidateAndParseJWTToken(tt.token, testKey, testIssuer)
			require.Error(t, err)
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
			}
		})
	}
}

func TestParseBearerToken(t *testing.T) {
	tests := []struct {
		header  string
		want    string
		wantErr bool
	}{
		{header: "Bearer abc.def", want: "abc.def"},
		{header: "bearer abc", want: "abc"},
		{header: "  Bearer   abc  ", want: "abc"},
		{header: "Bearer ", wantErr: true},
		{header: "Basic abc", wantErr: true},
		{header: "abc", wantErr: true},
		{header: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			got, err := ParseBearerToken(tt.header)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
