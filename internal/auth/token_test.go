package auth_test

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"railbooking/internal/auth"
)

func TestIssueAndVerify(t *testing.T) {
	issuer := auth.NewTokenIssuer("test-secret", time.Hour)

	token, err := issuer.Issue("a@b.com")
	require.NoError(t, err)

	email, err := issuer.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "a@b.com", email)
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	issuer := auth.NewTokenIssuer("test-secret", -time.Minute)

	token, err := issuer.Issue("a@b.com")
	require.NoError(t, err)

	_, err = issuer.Verify(token)
	assert.Error(t, err)
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	issuer := auth.NewTokenIssuer("test-secret", time.Hour)
	other := auth.NewTokenIssuer("different-secret", time.Hour)

	token, err := issuer.Issue("a@b.com")
	require.NoError(t, err)

	_, err = other.Verify(token)
	assert.Error(t, err)
}

func TestExtractTokenFromRequest(t *testing.T) {
	r := httptest.NewRequest("GET", "/bookings", nil)
	r.Header.Set("Authorization", "Bearer abc.def.ghi")

	token, err := auth.ExtractTokenFromRequest(r)
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", token)

	r.Header.Set("Authorization", "abc.def.ghi")
	_, err = auth.ExtractTokenFromRequest(r)
	assert.Error(t, err)

	r.Header.Del("Authorization")
	_, err = auth.ExtractTokenFromRequest(r)
	assert.Error(t, err)
}
