package pg

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tdlogistics/tdl/internal/domain"
	internal_errors "github.com/tdlogistics/tdl/internal/errors"
)

func mustSaveAdmin(t *testing.T, email string) domain.UserId {
	t.Helper()
	id, err := storage.SaveAdminUser(domain.AdminUser{
		Email:    email,
		PassHash: "hash",
		Role:     "admin",
		Name:     "Test Admin",
		IsActive: true,
	})
	require.NoError(t, err)
	return id
}

func TestAdminUser(t *testing.T) {
	id := mustSaveAdmin(t, "admin1@example.com")
	assert.Greater(t, id, int64(0))

	user, err := storage.AdminUser("admin1@example.com")
	require.NoError(t, err)
	assert.Equal(t, id, user.Id)
	assert.Equal(t, "hash", user.PassHash)
	assert.True(t, user.IsActive)
	assert.Zero(t, user.FailedLoginAttempts)
	assert.Nil(t, user.LockedUntil)

	_, err = storage.AdminUser("nonexistent@example.com")
	require.Error(t, err)
	e, ok := err.(*internal_errors.ErrorWithStatusCode)
	require.True(t, ok, "Expected ErrorWithStatusCode")
	assert.Equal(t, 404, e.StatusCode)
}

func TestRecordLoginFailure(t *testing.T) {
	mustSaveAdmin(t, "admin2@example.com")

	// below the threshold: counter grows, no lockout
	for i := 0; i < 2; i++ {
		require.NoError(t, storage.RecordLoginFailure("admin2@example.com", 3, 30*time.Minute))
	}
	user, err := storage.AdminUser("admin2@example.com")
	require.NoError(t, err)
	assert.Equal(t, 2, user.FailedLoginAttempts)
	assert.Nil(t, user.LockedUntil)

	// third failure reaches the threshold and locks
	require.NoError(t, storage.RecordLoginFailure("admin2@example.com", 3, 30*time.Minute))
	user, err = storage.AdminUser("admin2@example.com")
	require.NoError(t, err)
	assert.Equal(t, 3, user.FailedLoginAttempts)
	require.NotNil(t, user.LockedUntil)
	assert.True(t, user.Locked(time.Now().UTC()))

	err = storage.RecordLoginFailure("nonexistent@example.com", 3, 30*time.Minute)
	require.Error(t, err)
}

func TestResetLoginFailures(t *testing.T) {
	mustSaveAdmin(t, "admin3@example.com")
	require.NoError(t, storage.RecordLoginFailure("admin3@example.com", 1, 30*time.Minute))

	require.NoError(t, storage.ResetLoginFailures("admin3@example.com"))

	user, err := storage.AdminUser("admin3@example.com")
	require.NoError(t, err)
	assert.Zero(t, user.FailedLoginAttempts)
	assert.Nil(t, user.LockedUntil)
}

func TestUpdatePassword(t *testing.T) {
	mustSaveAdmin(t, "admin4@example.com")
	require.NoError(t, storage.RecordLoginFailure("admin4@example.com", 1, 30*time.Minute))

	require.NoError(t, storage.UpdatePassword("admin4@example.com", "newhash"))

	user, err := storage.AdminUser("admin4@example.com")
	require.NoError(t, err)
	assert.Equal(t, "newhash", user.PassHash)
	// password reset also clears lockout state
	assert.Zero(t, user.FailedLoginAttempts)
	assert.Nil(t, user.LockedUntil)

	err = storage.UpdatePassword("nonexistent@example.com", "x")
	require.Error(t, err)
	e, ok := err.(*internal_errors.ErrorWithStatusCode)
	require.True(t, ok, "Expected ErrorWithStatusCode")
	assert.Equal(t, 404, e.StatusCode)
}
