package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tdlogistics/tdl/internal/domain"
)

const testSecret = "0123456789abcdef0123456789abcdef"

var testUser = domain.AdminUser{
	Id:    1,
	Email: "admin@tdl-logistics.com",
	Role:  "admin",
	Name:  "Site Admin",
}

func TestIssueVerifyRoundtrip(t *testing.T) {
	svc := New(testSecret, 24*time.Hour)

	token, err := svc.Issue(testUser)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims := svc.Verify(token)
	require.NotNil(t, claims)
	assert.Equal(t, testUser.Id, claims.UserId)
	assert.Equal(t, testUser.Email, claims.Email)
	assert.Equal(t, testUser.Role, claims.Role)
	assert.Equal(t, testUser.Name, claims.Name)
	assert.WithinDuration(t, time.Now(), claims.IssuedAt, 5*time.Second)
}

func TestVerifyRejectsMutatedToken(t *testing.T) {
	svc := New(testSecret, 24*time.Hour)

	token, err := svc.Issue(testUser)
	require.NoError(t, err)

	// Flip one byte anywhere in the token
	for _, i := range []int{0, len(token) / 2, len(token) - 1} {
		mutated := []byte(token)
		if mutated[i] == 'A' {
			mutated[i] = 'B'
		} else {
			mutated[i] = 'A'
		}
		assert.Nil(t, svc.Verify(string(mutated)), "byte %d", i)
	}
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	svc := New(testSecret, -time.Minute)

	token, err := svc.Issue(testUser)
	require.NoError(t, err)

	assert.Nil(t, svc.Verify(token))
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	token, err := New(testSecret, time.Hour).Issue(testUser)
	require.NoError(t, err)

	other := New("ffffffffffffffffffffffffffffffff", time.Hour)
	assert.Nil(t, other.Verify(token))
}

func TestVerifyRejectsGarbage(t *testing.T) {
	svc := New(testSecret, time.Hour)
	for _, s := range []string{"", "not-a-token", "a.b.c"} {
		assert.Nil(t, svc.Verify(s))
	}
}
