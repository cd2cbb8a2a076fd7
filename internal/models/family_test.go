package models

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFamily(t *testing.T) {
	t.Run("creates family with valid parameters", func(t *testing.T) {
		family, err := NewFamily("user-1", "The Smiths")

		require.NoError(t, err)
		assert.NotEmpty(t, family.ID)
		assert.Equal(t, "The Smiths", family.Name)
		assert.Equal(t, "user-1", family.OwnerID)
	})

	t.Run("rejects empty name", func(t *testing.T) {
		_, err := NewFamily("user-1", "")
		assert.ErrorIs(t, err, ErrFamilyNameRequired)
	})

	t.Run("rejects empty owner", func(t *testing.T) {
		_, err := NewFamily("", "The Smiths")
		assert.ErrorIs(t, err, ErrFamilyOwnerRequired)
	})
}

func TestFamily_IsOwnedBy(t *testing.T) {
	family, err := NewFamily("user-1", "The Smiths")
	require.NoError(t, err)

	assert.True(t, family.IsOwnedBy("user-1"))
	assert.False(t, family.IsOwnedBy("user-2"))
}

func TestNewFamilyMember(t *testing.T) {
	member := NewFamilyMember("family-1", "user-2", RoleMember)

	assert.NotEmpty(t, member.ID)
	assert.Equal(t, "family-1", member.FamilyID)
	assert.Equal(t, "user-2", member.UserID)
	assert.Equal(t, RoleMember, member.Role)
}

func TestInconsistencyError(t *testing.T) {
	cause := errors.New("insert failed")
	err := &InconsistencyError{Op: "create family", Err: cause}

	assert.Contains(t, err.Error(), "create family")
	assert.ErrorIs(t, err, cause)

	var incErr *InconsistencyError
	assert.ErrorAs(t, error(err), &incErr)
}
