package board

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mbenali/jobboard/internal/types"
)

func TestRoleGate(t *testing.T) {
	admin := &types.Session{UserID: uuid.New(), Name: "Admin", Email: "admin@example.com", Role: types.RoleAdmin}
	candidate := &types.Session{UserID: uuid.New(), Name: "Sam Carter", Email: "sam@example.com", Role: types.RoleUser}

	t.Run("anonymous", func(t *testing.T) {
		gate := NewRoleGate(nil)
		assert.False(t, gate.SignedIn())
		assert.False(t, gate.IsAdmin())
		assert.False(t, gate.CanApply())

		denied := gate.CheckAdmin()
		require.NotNil(t, denied)
		assert.True(t, denied.NeedsLogin)

		denied = gate.CheckSignedIn()
		require.NotNil(t, denied)
		assert.True(t, denied.NeedsLogin)
	})

	t.Run("candidate", func(t *testing.T) {
		gate := NewRoleGate(candidate)
		assert.True(t, gate.SignedIn())
		assert.False(t, gate.IsAdmin(), "admin controls must never render for a candidate")
		assert.True(t, gate.CanApply())

		denied := gate.CheckAdmin()
		require.NotNil(t, denied)
		assert.False(t, denied.NeedsLogin, "a signed-in candidate is denied, not asked to log in")
		assert.Equal(t, "Access denied", denied.Message)

		assert.Nil(t, gate.CheckSignedIn())
	})

	t.Run("admin", func(t *testing.T) {
		gate := NewRoleGate(admin)
		assert.True(t, gate.IsAdmin())
		assert.False(t, gate.CanApply(), "admins review applications, they do not submit them")
		assert.Nil(t, gate.CheckAdmin())
	})
}
