package models

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetPassword_HashesPlaintext(t *testing.T) {
	u := &User{}
	err := u.SetPassword("s3cret-pass")

	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-pass", u.Password)
	assert.True(t, strings.HasPrefix(u.Password, "$2"))
	assert.True(t, u.CheckPassword("s3cret-pass"))
	assert.False(t, u.CheckPassword("wrong"))
}

func TestSetPassword_Empty(t *testing.T) {
	u := &User{}
	assert.Error(t, u.SetPassword(""))
}

func TestRandomPassword(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 20; i++ {
		p, err := RandomPassword()
		require.NoError(t, err)
		assert.Len(t, p, 8)
		for _, r := range p {
			assert.Contains(t, passwordAlphabet, string(r))
		}
		seen[p] = true
	}
	// 20 draws from a 76^8 space should never collide
	assert.Greater(t, len(seen), 1)
}

func TestParseRole(t *testing.T) {
	for _, s := range []string{"admin", "user", "guest"} {
		role, ok := ParseRole(s)
		assert.True(t, ok)
		assert.Equal(t, Role(s), role)
	}
	_, ok := ParseRole("root")
	assert.False(t, ok)
}
