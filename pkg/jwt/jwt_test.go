package jwt

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-for-unit-tests"

func TestGenerateAndValidate(t *testing.T) {
	m, err := NewManager(testSecret, "expiry-test", time.Hour)
	require.NoError(t, err)

	id := uuid.New()
	tok, err := m.GenerateToken(id, "staff@store.com", "staff", "staff", []string{"product:view"}, "v1")
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	claims, err := m.ValidateToken(tok)
	require.NoError(t, err)
	assert.Equal(t, id, claims.UserID)
	assert.Equal(t, "staff@store.com", claims.Email)
	assert.Equal(t, "staff", claims.Role)
	assert.Equal(t, []string{"product:view"}, claims.Privileges)
	assert.Equal(t, "v1", claims.TokenVersion)
	assert.Equal(t, "expiry-test", claims.Issuer)
}

func TestValidate_Expired(t *testing.T) {
	m, err := NewManager(testSecret, "expiry-test", -time.Minute)
	require.NoError(t, err)

	tok, err := m.GenerateToken(uuid.New(), "a@b.c", "a", "admin", nil, "v1")
	require.NoError(t, err)

	_, err = m.ValidateToken(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidate_WrongSecret(t *testing.T) {
	signer, _ := NewManager(testSecret, "expiry-test", time.Hour)
	other, _ := NewManager("another-secret", "expiry-test", time.Hour)

	tok, err := signer.GenerateToken(uuid.New(), "a@b.c", "a", "admin", nil, "v1")
	require.NoError(t, err)

	_, err = other.ValidateToken(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidate_Empty(t *testing.T) {
	m, _ := NewManager(testSecret, "expiry-test", time.Hour)

	_, err := m.ValidateToken("")
	assert.ErrorIs(t, err, ErrMissingToken)

	_, err = m.ValidateToken("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestNewManager_EmptySecret(t *testing.T) {
	_, err := NewManager("", "x", time.Hour)
	assert.ErrorIs(t, err, ErrEmptySecret)
}
