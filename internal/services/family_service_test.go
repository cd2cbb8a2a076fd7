package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IsraelAraujo70/shopping-list/internal/models"
)

func TestFamilyService_CreateFamily(t *testing.T) {
	ctx := context.Background()

	t.Run("creates family with owner membership", func(t *testing.T) {
		f := newFixture()
		family, err := f.families.CreateFamily(ctx, "owner", "The Smiths")
		require.NoError(t, err)

		require.Len(t, family.Members, 1)
		assert.Equal(t, "owner", family.Members[0].UserID)
		assert.Equal(t, models.RoleOwner, family.Members[0].Role)

		members, err := f.families.GetMembers(ctx, "owner", family.ID)
		require.NoError(t, err)
		assert.Len(t, members, 1)
	})

	t.Run("rejects empty name", func(t *testing.T) {
		f := newFixture()
		_, err := f.families.CreateFamily(ctx, "owner", "")
		assert.ErrorIs(t, err, models.ErrFamilyNameRequired)
	})

	t.Run("failed owner membership rolls the family back", func(t *testing.T) {
		f := newFixture()
		f.store.memberAddErr = errors.New("insert failed")

		_, err := f.families.CreateFamily(ctx, "owner", "The Smiths")
		require.Error(t, err)

		var incErr *models.InconsistencyError
		assert.False(t, errors.As(err, &incErr))

		// No half-created family survives
		f.store.memberAddErr = nil
		families, err := f.families.ListFamilies(ctx, "owner")
		require.NoError(t, err)
		assert.Empty(t, families)
	})

	t.Run("failed rollback surfaces an inconsistency", func(t *testing.T) {
		f := newFixture()
		f.store.memberAddErr = errors.New("insert failed")
		f.store.familyDelErr = errors.New("delete failed")

		_, err := f.families.CreateFamily(ctx, "owner", "The Smiths")
		require.Error(t, err)

		var incErr *models.InconsistencyError
		require.ErrorAs(t, err, &incErr)
		assert.Equal(t, "create family", incErr.Op)
	})
}

func TestFamilyService_ListFamilies(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	family, err := f.families.CreateFamily(ctx, "owner", "The Smiths")
	require.NoError(t, err)
	_, err = f.families.AddMember(ctx, "owner", family.ID, "alice")
	require.NoError(t, err)

	t.Run("member sees the family with members", func(t *testing.T) {
		families, err := f.families.ListFamilies(ctx, "alice")
		require.NoError(t, err)
		require.Len(t, families, 1)
		assert.Len(t, families[0].Members, 2)
	})

	t.Run("includes attached lists", func(t *testing.T) {
		list, err := f.lists.CreateList(ctx, "owner", "Groceries")
		require.NoError(t, err)

		// Attach the list to the family directly in the store
		f.store.mu.Lock()
		f.store.lists[list.ID].FamilyID = &family.ID
		f.store.mu.Unlock()

		families, err := f.families.ListFamilies(ctx, "owner")
		require.NoError(t, err)
		require.Len(t, families, 1)
		require.Len(t, families[0].Lists, 1)
		assert.Equal(t, list.ID, families[0].Lists[0].ID)
	})

	t.Run("non-member sees nothing", func(t *testing.T) {
		families, err := f.families.ListFamilies(ctx, "stranger")
		require.NoError(t, err)
		assert.Empty(t, families)
	})
}

func TestFamilyService_GetMembers(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	family, err := f.families.CreateFamily(ctx, "owner", "The Smiths")
	require.NoError(t, err)
	_, err = f.families.AddMember(ctx, "owner", family.ID, "alice")
	require.NoError(t, err)

	t.Run("any member can enumerate", func(t *testing.T) {
		members, err := f.families.GetMembers(ctx, "alice", family.ID)
		require.NoError(t, err)
		assert.Len(t, members, 2)
	})

	t.Run("non-member denied", func(t *testing.T) {
		_, err := f.families.GetMembers(ctx, "stranger", family.ID)
		assert.ErrorIs(t, err, models.ErrNotAMember)
	})

	t.Run("unknown family", func(t *testing.T) {
		_, err := f.families.GetMembers(ctx, "owner", "missing")
		assert.ErrorIs(t, err, models.ErrFamilyNotFound)
	})
}

func TestFamilyService_AddMember(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	family, err := f.families.CreateFamily(ctx, "owner", "The Smiths")
	require.NoError(t, err)

	t.Run("owner adds member", func(t *testing.T) {
		member, err := f.families.AddMember(ctx, "owner", family.ID, "alice")
		require.NoError(t, err)
		assert.Equal(t, models.RoleMember, member.Role)
	})

	t.Run("duplicate member conflicts", func(t *testing.T) {
		_, err := f.families.AddMember(ctx, "owner", family.ID, "alice")
		assert.ErrorIs(t, err, models.ErrAlreadyMember)
	})

	t.Run("member cannot add members", func(t *testing.T) {
		_, err := f.families.AddMember(ctx, "alice", family.ID, "bob")
		assert.ErrorIs(t, err, models.ErrNotFamilyOwner)
	})
}

func TestFamilyService_RemoveMember(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	family, err := f.families.CreateFamily(ctx, "owner", "The Smiths")
	require.NoError(t, err)
	_, err = f.families.AddMember(ctx, "owner", family.ID, "alice")
	require.NoError(t, err)

	t.Run("member cannot remove members", func(t *testing.T) {
		err := f.families.RemoveMember(ctx, "alice", family.ID, "alice")
		assert.ErrorIs(t, err, models.ErrNotFamilyOwner)
	})

	t.Run("owner cannot be removed", func(t *testing.T) {
		err := f.families.RemoveMember(ctx, "owner", family.ID, "owner")
		assert.ErrorIs(t, err, models.ErrCannotRemoveOwner)
	})

	t.Run("removing a non-member fails", func(t *testing.T) {
		err := f.families.RemoveMember(ctx, "owner", family.ID, "stranger")
		assert.ErrorIs(t, err, models.ErrNotAMember)
	})

	t.Run("owner removes member", func(t *testing.T) {
		err := f.families.RemoveMember(ctx, "owner", family.ID, "alice")
		require.NoError(t, err)

		members, err := f.families.GetMembers(ctx, "owner", family.ID)
		require.NoError(t, err)
		assert.Len(t, members, 1)
	})
}
