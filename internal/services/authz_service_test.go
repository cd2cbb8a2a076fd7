package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IsraelAraujo70/shopping-list/internal/models"
)

func TestAuthzService_CanReadList(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	list, err := f.lists.CreateList(ctx, "owner", "Groceries")
	require.NoError(t, err)

	t.Run("owner can read", func(t *testing.T) {
		d, err := f.authz.CanReadList(ctx, "owner", list)
		require.NoError(t, err)
		assert.True(t, d.Allowed)
	})

	t.Run("stranger cannot read", func(t *testing.T) {
		d, err := f.authz.CanReadList(ctx, "stranger", list)
		require.NoError(t, err)
		assert.False(t, d.Allowed)
		assert.Equal(t, DenyNotOwnerOrShared, d.Reason)
		assert.ErrorIs(t, d.Err(), models.ErrListNotOwnerOrShared)
	})

	t.Run("view-only share grants read", func(t *testing.T) {
		_, err := f.shares.ShareListWithUser(ctx, "owner", list.ID, "viewer", false)
		require.NoError(t, err)

		d, err := f.authz.CanReadList(ctx, "viewer", list)
		require.NoError(t, err)
		assert.True(t, d.Allowed)
	})
}

func TestAuthzService_CanWriteListItems(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	list, err := f.lists.CreateList(ctx, "owner", "Groceries")
	require.NoError(t, err)

	t.Run("owner can write", func(t *testing.T) {
		d, err := f.authz.CanWriteListItems(ctx, "owner", list)
		require.NoError(t, err)
		assert.True(t, d.Allowed)
	})

	t.Run("unshared user cannot write", func(t *testing.T) {
		d, err := f.authz.CanWriteListItems(ctx, "stranger", list)
		require.NoError(t, err)
		assert.False(t, d.Allowed)
		assert.Equal(t, DenyNotShared, d.Reason)
	})

	t.Run("view-only share cannot write", func(t *testing.T) {
		_, err := f.shares.ShareListWithUser(ctx, "owner", list.ID, "viewer", false)
		require.NoError(t, err)

		d, err := f.authz.CanWriteListItems(ctx, "viewer", list)
		require.NoError(t, err)
		assert.False(t, d.Allowed)
		assert.Equal(t, DenyInsufficientSharePermission, d.Reason)
		assert.ErrorIs(t, d.Err(), models.ErrListInsufficientSharePermission)
	})

	t.Run("edit share can write", func(t *testing.T) {
		_, err := f.shares.ShareListWithUser(ctx, "owner", list.ID, "editor", true)
		require.NoError(t, err)

		d, err := f.authz.CanWriteListItems(ctx, "editor", list)
		require.NoError(t, err)
		assert.True(t, d.Allowed)
	})
}

func TestAuthzService_CanManageList(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	list, err := f.lists.CreateList(ctx, "owner", "Groceries")
	require.NoError(t, err)

	// Even an edit-capable share does not grant management
	_, err = f.shares.ShareListWithUser(ctx, "owner", list.ID, "editor", true)
	require.NoError(t, err)

	assert.True(t, f.authz.CanManageList("owner", list).Allowed)

	d := f.authz.CanManageList("editor", list)
	assert.False(t, d.Allowed)
	assert.Equal(t, DenyNotOwner, d.Reason)
	assert.ErrorIs(t, d.Err(), models.ErrListNotOwner)
}

func TestAuthzService_CanManageFamily(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	family, err := f.families.CreateFamily(ctx, "owner", "The Smiths")
	require.NoError(t, err)

	_, err = f.families.AddMember(ctx, "owner", family.ID, "member")
	require.NoError(t, err)

	assert.True(t, f.authz.CanManageFamily("owner", family).Allowed)

	d := f.authz.CanManageFamily("member", family)
	assert.False(t, d.Allowed)
	assert.Equal(t, DenyNotFamilyOwner, d.Reason)
	assert.ErrorIs(t, d.Err(), models.ErrNotFamilyOwner)
}

func TestAuthzService_IsFamilyMember(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	family, err := f.families.CreateFamily(ctx, "owner", "The Smiths")
	require.NoError(t, err)

	isMember, err := f.authz.IsFamilyMember(ctx, "owner", family.ID)
	require.NoError(t, err)
	assert.True(t, isMember)

	isMember, err = f.authz.IsFamilyMember(ctx, "stranger", family.ID)
	require.NoError(t, err)
	assert.False(t, isMember)
}
