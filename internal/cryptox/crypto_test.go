package cryptox

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword_Deterministic(t *testing.T) {
	d1 := HashPassword("correct horse battery staple")
	d2 := HashPassword("correct horse battery staple")
	require.Equal(t, d1, d2)

	// 64 key bytes hex-encoded
	require.Len(t, d1, 128)
}

func TestHashPassword_DifferentInputs(t *testing.T) {
	assert.NotEqual(t, HashPassword("password1"), HashPassword("password2"))
	assert.NotEqual(t, HashPassword(""), HashPassword(" "))
}

func TestVerifyPassword(t *testing.T) {
	digest := HashPassword("s3cret")

	assert.True(t, VerifyPassword(digest, "s3cret"))
	assert.False(t, VerifyPassword(digest, "S3cret"))
	assert.False(t, VerifyPassword(digest, ""))
	assert.False(t, VerifyPassword("", "s3cret"))
}
