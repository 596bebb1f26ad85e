package pwhash

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndValidate(t *testing.T) {
	ph, err := New(16, 1000)
	require.NoError(t, err)

	hash, err := ph.HashPassword("s3cret")
	require.NoError(t, err)

	assert.NoError(t, ph.Validate("s3cret", hash))
	assert.Error(t, ph.Validate("wrong", hash))
}

func TestHashIsSalted(t *testing.T) {
	ph, err := New(16, 1000)
	require.NoError(t, err)

	a, err := ph.HashPassword("s3cret")
	require.NoError(t, err)
	b, err := ph.HashPassword("s3cret")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
	assert.NoError(t, ph.Validate("s3cret", a))
	assert.NoError(t, ph.Validate("s3cret", b))
}

func TestValidateMalformedHash(t *testing.T) {
	ph, err := New(16, 1000)
	require.NoError(t, err)

	assert.Error(t, ph.Validate("s3cret", "no-separator"))
	assert.Error(t, ph.Validate("s3cret", "!!$!!"))
}

func TestNewRejectsBadParams(t *testing.T) {
	_, err := New(0, 1000)
	assert.Error(t, err)
	_, err = New(16, 0)
	assert.Error(t, err)
}
