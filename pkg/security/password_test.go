package security_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/angelmondragon/stationdesk-backend/pkg/config"
	"github.com/angelmondragon/stationdesk-backend/pkg/security"
)

var cheap = config.PasswordConfig{
	ArgonMemoryKB:    1024,
	ArgonTime:        1,
	ArgonParallelism: 1,
	ArgonSaltLen:     16,
	ArgonKeyLen:      32,
}

func TestHashAndVerify(t *testing.T) {
	hash, err := security.HashPassword("pump-3-night", cheap)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(hash, "$argon2id$v=19$m=1024,t=1,p=1$"))

	ok, err := security.VerifyPassword("pump-3-night", hash)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = security.VerifyPassword("pump-3-day", hash)
	require.NoError(t, err)
	assert.False(t, ok)

	other, err := security.HashPassword("pump-3-night", cheap)
	require.NoError(t, err)
	assert.NotEqual(t, hash, other, "salts must differ")

	_, err = security.HashPassword("", cheap)
	assert.Error(t, err)
}

func TestVerifyRejectsMalformedHashes(t *testing.T) {
	for _, bad := range []string{
		"not-a-hash",
		"$argon2id$v=18$m=1024,t=1,p=1$c2FsdA$a2V5",
		"$argon2id$v=19$m=x,t=1,p=1$c2FsdA$a2V5",
		"$argon2id$v=19$m=1024,t=1,p=1$$a2V5",
		"$argon2i$v=19$m=1024,t=1,p=1$c2FsdA$a2V5",
	} {
		_, err := security.VerifyPassword("x", bad)
		assert.ErrorIs(t, err, security.ErrInvalidHash, bad)
	}
}

func TestLegacyBcrypt(t *testing.T) {
	legacy, err := bcrypt.GenerateFromPassword([]byte("legacy-pass"), bcrypt.MinCost)
	require.NoError(t, err)
	hash := string(legacy)

	assert.True(t, security.IsBcryptHash(hash))
	ok, err := security.VerifyPassword("legacy-pass", hash)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = security.VerifyPassword("wrong", hash)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestNeedsRehash(t *testing.T) {
	legacy, err := bcrypt.GenerateFromPassword([]byte("legacy-pass"), bcrypt.MinCost)
	require.NoError(t, err)
	assert.True(t, security.NeedsRehash(string(legacy), cheap))

	current, err := security.HashPassword("pw", cheap)
	require.NoError(t, err)
	assert.False(t, security.NeedsRehash(current, cheap))

	stronger := cheap
	stronger.ArgonTime = 2
	assert.True(t, security.NeedsRehash(current, stronger))

	assert.False(t, security.NeedsRehash("garbage", cheap))
}

func TestGenerateTempPassword(t *testing.T) {
	pw, err := security.GenerateTempPassword(20)
	require.NoError(t, err)
	assert.Len(t, pw, 20)
	assert.False(t, strings.ContainsAny(pw, "0O1lI $"))

	_, err = security.GenerateTempPassword(0)
	assert.Error(t, err)
}
