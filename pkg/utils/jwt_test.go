//go:build !integration

package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParse(t *testing.T) {
	t.Setenv("JWT_SECRET", "unit-secret")

	tok, err := GenerateJWT("7", "admin", time.Hour)
	require.NoError(t, err)

	claims, err := ParseJWT(tok)
	require.NoError(t, err)
	assert.Equal(t, "7", claims.UserID)
	assert.Equal(t, "admin", claims.Role)
}

func TestParseRejectsForeignSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "one")
	tok, err := GenerateJWT("7", "admin", time.Hour)
	require.NoError(t, err)

	t.Setenv("JWT_SECRET", "two")
	_, err = ParseJWT(tok)
	assert.Error(t, err)
}

func TestParseRejectsExpired(t *testing.T) {
	t.Setenv("JWT_SECRET", "unit-secret")
	tok, err := GenerateJWT("7", "admin", -time.Minute)
	require.NoError(t, err)

	_, err = ParseJWT(tok)
	assert.Error(t, err)
}
