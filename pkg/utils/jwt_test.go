package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	token, err := GenerateToken("doc-1", "doctor", "secret", "simhealth", time.Hour)
	require.NoError(t, err)

	claims, err := ValidateToken(token, "secret", "simhealth")
	require.NoError(t, err)
	assert.Equal(t, "doc-1", claims.UserID)
	assert.Equal(t, "doctor", claims.Role)
}

func TestValidateTokenRejects(t *testing.T) {
	good, err := GenerateToken("doc-1", "", "secret", "simhealth", time.Hour)
	require.NoError(t, err)
	expired, err := GenerateToken("doc-1", "", "secret", "simhealth", -time.Minute)
	require.NoError(t, err)

	tests := []struct {
		name   string
		token  string
		secret string
		issuer string
	}{
		{"wrong secret", good, "other", "simhealth"},
		{"wrong issuer", good, "secret", "someone-else"},
		{"expired", expired, "secret", "simhealth"},
		{"garbage", "not-a-token", "secret", "simhealth"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ValidateToken(tt.token, tt.secret, tt.issuer)
			assert.Error(t, err)
		})
	}
}
