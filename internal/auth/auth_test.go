package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-at-least-32-characters"

func TestTokenManager_RoundTrip(t *testing.T) {
	m := NewTokenManager(testSecret, TokenTTL)

	token, err := m.Generate("user-123")
	require.NoError(t, err)

	userID, err := m.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", userID)
}

func TestTokenManager_ExpiresAfterTTL(t *testing.T) {
	issued := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	m := NewTokenManager(testSecret, TokenTTL)
	m.now = func() time.Time { return issued }

	token, err := m.Generate("user-123")
	require.NoError(t, err)

	m.now = func() time.Time { return issued.Add(TokenTTL - time.Minute) }
	_, err = m.Verify(token)
	require.NoError(t, err)

	m.now = func() time.Time { return issued.Add(TokenTTL + time.Minute) }
	_, err = m.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenManager_RejectsBadTokens(t *testing.T) {
	m := NewTokenManager(testSecret, TokenTTL)

	otherSecret, err := NewTokenManager("another-secret-entirely-different", TokenTTL).Generate("user-123")
	require.NoError(t, err)

	noneAlg, err := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{User: TokenUser{ID: "user-123"}}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	noUser, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	tests := map[string]string{
		"garbage":      "not-a-token",
		"wrong secret": otherSecret,
		"alg none":     noneAlg,
		"missing user": noUser,
		"empty":        "",
	}
	for name, token := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := m.Verify(token)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

const base64URLAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-_"

func TestTokenManager_RejectsEveryTamperedCharacter(t *testing.T) {
	m := NewTokenManager(testSecret, TokenTTL)
	valid, err := m.Generate("user-123")
	require.NoError(t, err)

	for i := range len(valid) {
		if valid[i] == '.' {
			continue
		}
		for _, r := range base64URLAlphabet {
			if byte(r) == valid[i] {
				continue
			}
			tampered := valid[:i] + string(r) + valid[i+1:]
			_, err := m.Verify(tampered)
			require.ErrorIs(t, err, ErrInvalidToken, "position %d: %q -> %q", i, valid[i], r)
		}
	}
}

func TestTokenManager_RejectsTamperedSignatureTail(t *testing.T) {
	m := NewTokenManager(testSecret, TokenTTL)
	valid, err := m.Generate("user-123")
	require.NoError(t, err)

	parts := strings.Split(valid, ".")
	require.Len(t, parts, 3)
	require.Len(t, parts[2], 43)

	last := len(valid) - 1
	for _, r := range base64URLAlphabet {
		if byte(r) == valid[last] {
			continue
		}
		_, err := m.Verify(valid[:last] + string(r))
		assert.ErrorIs(t, err, ErrInvalidToken, "last byte %q -> %q", valid[last], r)
	}
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("secret123")
	require.NoError(t, err)
	assert.NotEqual(t, "secret123", hash)

	assert.True(t, CheckPassword(hash, "secret123"))
	assert.False(t, CheckPassword(hash, "secret124"))
	assert.False(t, CheckPassword("not-a-hash", "secret123"))
}

func TestAvatarURL(t *testing.T) {
	// md5("myemailaddress@example.com")
	want := "//www.gravatar.com/avatar/0bc83cb571cd1c50ba6f3e8a78ef1346?s=200&r=pg&d=mm"
	assert.Equal(t, want, AvatarURL("  MyEmailAddress@example.com "))
}
