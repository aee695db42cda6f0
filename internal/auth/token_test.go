package auth

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	token := GenerateToken("7b0c6a1e-user-id")

	userID, ok := VerifyToken(token)

	require.True(t, ok)
	assert.Equal(t, "7b0c6a1e-user-id", userID)
}

func TestVerifyTokenNeverExpires(t *testing.T) {
	// A token issued long ago decodes the same way; there is no expiry check.
	old := base64.StdEncoding.EncodeToString([]byte("user-1.946684800000"))

	userID, ok := VerifyToken(old)

	require.True(t, ok)
	assert.Equal(t, "user-1", userID)
}

func TestVerifyTokenRejectsGarbage(t *testing.T) {
	tests := []struct {
		name  string
		token string
	}{
		{"not base64", "!!!not-base64!!!"},
		{"empty", ""},
		{"empty id", base64.StdEncoding.EncodeToString([]byte(".1700000000000"))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := VerifyToken(tt.token)
			assert.False(t, ok)
		})
	}
}

func TestVerifyTokenWithoutTimestamp(t *testing.T) {
	// The id is everything before the first dot; a payload without one is
	// still a decodable id.
	token := base64.StdEncoding.EncodeToString([]byte("lonely-id"))

	userID, ok := VerifyToken(token)

	require.True(t, ok)
	assert.Equal(t, "lonely-id", userID)
}
