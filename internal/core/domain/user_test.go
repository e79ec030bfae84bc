package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNewUser_PasswordHashing(t *testing.T) {
	u, err := NewUser("agent@dar360.ae", "s3cret-pass", "Sara Ahmed", "+971501112233", RoleAgent)
	require.NoError(t, err)

	require.NotEqual(t, "s3cret-pass", u.PasswordHash)
	require.True(t, u.CheckPassword("s3cret-pass"))
	require.False(t, u.CheckPassword("wrong"))
}

func TestUser_SetPassword(t *testing.T) {
	u, err := NewUser("tenant@dar360.ae", "old-pass", "Omar Ali", "", RoleTenant)
	require.NoError(t, err)

	require.NoError(t, u.SetPassword("new-pass"))
	require.True(t, u.CheckPassword("new-pass"))
	require.False(t, u.CheckPassword("old-pass"))
}

func TestUser_VerifyRera(t *testing.T) {
	at := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)

	agent, err := NewUser("agent@dar360.ae", "pass", "Sara Ahmed", "", RoleAgent)
	require.NoError(t, err)
	require.NoError(t, agent.VerifyRera("BRN-12345", at))
	require.Equal(t, "BRN-12345", agent.ReraBRN)
	require.NotNil(t, agent.ReraVerifiedAt)

	owner, err := NewUser("owner@dar360.ae", "pass", "Khalid Noor", "", RoleOwner)
	require.NoError(t, err)
	require.ErrorIs(t, owner.VerifyRera("BRN-12345", at), ErrForbidden)
}

func TestValidRole(t *testing.T) {
	require.True(t, ValidRole("agent"))
	require.True(t, ValidRole("owner"))
	require.True(t, ValidRole("tenant"))
	require.False(t, ValidRole("admin"))
	require.False(t, ValidRole(""))
}
