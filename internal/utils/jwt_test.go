package utils

import (
	"context"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTRoundTrip(t *testing.T) {
	token, err := GenerateJWT(42, "sales", "secret")
	require.NoError(t, err)

	claims, err := ParseJWT(token, "secret")
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "sales", claims.Username)

	_, err = ParseJWT(token, "other-secret")
	assert.Error(t, err)

	_, err = ParseJWT("not-a-token", "secret")
	assert.Error(t, err)
}

func TestParseJWTRejectsUnsignedTokens(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{UserID: 1})
	raw, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = ParseJWT(raw, "secret")
	assert.Error(t, err)
}

func TestNilCacheIsANoop(t *testing.T) {
	var c *Cache
	found, err := c.Get(context.Background(), "k", &struct{}{})
	assert.False(t, found)
	assert.NoError(t, err)
	assert.NoError(t, c.Set(context.Background(), "k", 1))
	c.InvalidateCatalog(context.Background())
	assert.Equal(t, "catalog:v0:list", c.CatalogKey(context.Background(), "list"))
	assert.Equal(t, "lamp:7", LampKey(7))
}
