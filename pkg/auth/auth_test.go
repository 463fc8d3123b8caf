package auth

import (
	"path/filepath"
	"testing"

	"github.com/arnavshah/care-rota-api/pkg/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHMACKey(t *testing.T) {
	t.Setenv("API_MASTER_SECRET", "test-secret")

	key := GenerateHMACKey("ward-3")
	userID, err := VerifyHMACKey(key)
	require.NoError(t, err)
	assert.Equal(t, "ward-3", userID)

	_, err = VerifyHMACKey("ward-3.deadbeef")
	assert.Error(t, err)
	_, err = VerifyHMACKey("no-dot")
	assert.Error(t, err)

	t.Setenv("API_MASTER_SECRET", "rotated")
	_, err = VerifyHMACKey(key)
	assert.Error(t, err, "keys must not survive a secret rotation")
}

func TestToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "jwt-secret")

	token, err := CreateToken("admin")
	require.NoError(t, err)

	claims, err := VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Username)

	t.Setenv("JWT_SECRET", "other")
	_, err = VerifyToken(token)
	assert.Error(t, err)
}

func TestEnsureAdminExists(t *testing.T) {
	cost := BcryptCost
	BcryptCost = bcrypt.MinCost
	t.Cleanup(func() { BcryptCost = cost })
	db, err := database.Open("", filepath.Join(t.TempDir(), "auth.db"))
	require.NoError(t, err)

	created, err := EnsureAdminExists(db, "admin", "pw")
	require.NoError(t, err)
	assert.True(t, created)

	created, err = EnsureAdminExists(db, "other", "pw")
	require.NoError(t, err)
	assert.False(t, created)

	var user database.MasterUser
	require.NoError(t, db.Where("username = ?", "admin").First(&user).Error)
	assert.True(t, CheckPasswordHash("pw", user.PasswordHash))
	assert.False(t, CheckPasswordHash("nope", user.PasswordHash))
}
