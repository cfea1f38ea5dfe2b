package auth

import (
	"strings"
	"testing"

	"accounts/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestHasherConfig(cost int) *config.Config {
	return &config.Config{Auth: &config.AuthConfig{BcryptCost: cost}}
}

func TestBcryptHasher_HashAndCheck(t *testing.T) {
	hasher := NewBcryptHasher(newTestHasherConfig(bcrypt.MinCost))

	hash, err := hasher.Hash("secret1")
	require.NoError(t, err)
	assert.NotEqual(t, "secret1", hash)

	assert.True(t, hasher.Check("secret1", hash))
	assert.False(t, hasher.Check("secret2", hash))
	assert.False(t, hasher.Check("", hash))
}

func TestBcryptHasher_SaltedHashesDiffer(t *testing.T) {
	hasher := NewBcryptHasher(newTestHasherConfig(bcrypt.MinCost))

	first, err := hasher.Hash("secret1")
	require.NoError(t, err)
	second, err := hasher.Hash("secret1")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.True(t, hasher.Check("secret1", first))
	assert.True(t, hasher.Check("secret1", second))
}

func TestBcryptHasher_UsesConfiguredCost(t *testing.T) {
	hasher := NewBcryptHasher(newTestHasherConfig(5))

	hash, err := hasher.Hash("secret1")
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, 5, cost)
}

func TestBcryptHasher_FallsBackToDefaultCost(t *testing.T) {
	for _, cfg := range []*config.Config{nil, {}, newTestHasherConfig(0), newTestHasherConfig(bcrypt.MaxCost + 1)} {
		h, ok := NewBcryptHasher(cfg).(*bcryptHasher)
		require.True(t, ok)
		assert.Equal(t, bcrypt.DefaultCost, h.cost)
	}
}

func TestBcryptHasher_MalformedHashNeverMatches(t *testing.T) {
	hasher := NewBcryptHasher(newTestHasherConfig(bcrypt.MinCost))

	assert.False(t, hasher.Check("secret1", "not-a-bcrypt-hash"))
	assert.False(t, hasher.Check("secret1", ""))
}

func TestBcryptHasher_LongPasswords(t *testing.T) {
	hasher := NewBcryptHasher(newTestHasherConfig(bcrypt.MinCost))

	for _, password := range []string{
		strings.Repeat("a", 73),
		strings.Repeat("密", 32),
		strings.Repeat("🔑", 32),
	} {
		hash, err := hasher.Hash(password)
		require.NoError(t, err, password)
		assert.True(t, hasher.Check(password, hash), password)
	}
}

func TestBcryptHasher_DistinguishesPasswordsSharingLongPrefix(t *testing.T) {
	hasher := NewBcryptHasher(newTestHasherConfig(bcrypt.MinCost))
	prefix := strings.Repeat("密", 30)

	hash, err := hasher.Hash(prefix + "甲")
	require.NoError(t, err)

	assert.True(t, hasher.Check(prefix+"甲", hash))
	assert.False(t, hasher.Check(prefix+"乙", hash))
}
