package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndParse(t *testing.T) {
	j := &JWTer{Secret: []byte("test-secret"), Issuer: "test", TTL: 3600 * time.Second}

	token, err := j.Issue("alice", 30)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := j.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Login)
	assert.Equal(t, 30, claims.Age)
	assert.Equal(t, "test", claims.Issuer)
}

func TestParseRejectsWrongSecret(t *testing.T) {
	j := &JWTer{Secret: []byte("test-secret"), Issuer: "test", TTL: time.Hour}
	token, err := j.Issue("alice", 30)
	require.NoError(t, err)

	other := &JWTer{Secret: []byte("other-secret"), Issuer: "test", TTL: time.Hour}
	_, err = other.Parse(token)
	assert.Error(t, err)
}

func TestParseRejectsExpired(t *testing.T) {
	// leeway 是 60s，要造出确实过期的 token 得把 TTL 拉到更早
	j := &JWTer{Secret: []byte("test-secret"), Issuer: "test", TTL: -2 * time.Minute}
	token, err := j.Issue("alice", 30)
	require.NoError(t, err)

	_, err = j.Parse(token)
	assert.Error(t, err)
}
