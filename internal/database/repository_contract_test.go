package database

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"user-management/internal/apperr"
	"user-management/internal/models"
)

func ptr[T any](v T) *T {
	return &v
}

// uniq keeps usernames distinct across subtests sharing one postgres table.
func uniq(t *testing.T, s string) string {
	return fmt.Sprintf("%s_%s", s, t.Name())
}

func insertUser(t *testing.T, repo UserRepository, fullName, username string) *models.User {
	t.Helper()
	user, err := repo.Insert(context.Background(), fullName, username)
	require.NoError(t, err)
	require.NotNil(t, user)
	require.NotZero(t, user.ID)
	return user
}

func runRepositoryContract(t *testing.T, repo UserRepository) {
	ctx := context.Background()

	t.Run("EnsureSchemaIsIdempotent", func(t *testing.T) {
		require.NoError(t, repo.EnsureSchema(ctx))
		require.NoError(t, repo.EnsureSchema(ctx))
	})

	t.Run("InsertThenFindByID", func(t *testing.T) {
		created := insertUser(t, repo, "Jane Doe", uniq(t, "janedoe"))

		found, err := repo.Find(ctx, UserFilter{ID: &created.ID})
		require.NoError(t, err)
		require.Equal(t, []models.User{*created}, found)
	})

	t.Run("InsertAssignsIncreasingIDs", func(t *testing.T) {
		first := insertUser(t, repo, "First", uniq(t, "first"))
		second := insertUser(t, repo, "Second", uniq(t, "second"))
		require.Greater(t, second.ID, first.ID)
	})

	t.Run("InsertRejectsMissingFields", func(t *testing.T) {
		username := uniq(t, "nobody")

		_, err := repo.Insert(ctx, "", username)
		require.True(t, apperr.Is(err, apperr.KindValidation))

		_, err = repo.Insert(ctx, "No Body", "")
		require.True(t, apperr.Is(err, apperr.KindValidation))

		found, err := repo.Find(ctx, UserFilter{Username: &username})
		require.NoError(t, err)
		require.Empty(t, found)
	})

	t.Run("InsertDuplicateUsernameIsPersistenceError", func(t *testing.T) {
		username := uniq(t, "dup")
		insertUser(t, repo, "Dup One", username)

		_, err := repo.Insert(ctx, "Dup Two", username)
		require.Error(t, err)
		require.True(t, apperr.Is(err, apperr.KindPersistence))
	})

	t.Run("FindUnknownIDIsEmptyNotError", func(t *testing.T) {
		found, err := repo.Find(ctx, UserFilter{ID: ptr(int64(987654321))})
		require.NoError(t, err)
		require.NotNil(t, found)
		require.Empty(t, found)
	})

	t.Run("FindCombinesFiltersWithAnd", func(t *testing.T) {
		fullName := uniq(t, "Shared Name")
		a := insertUser(t, repo, fullName, uniq(t, "a"))
		b := insertUser(t, repo, fullName, uniq(t, "b"))

		byName, err := repo.Find(ctx, UserFilter{FullName: &fullName})
		require.NoError(t, err)
		require.Equal(t, []models.User{*a, *b}, byName)

		both, err := repo.Find(ctx, UserFilter{FullName: &fullName, Username: &b.Username})
		require.NoError(t, err)
		require.Equal(t, []models.User{*b}, both)

		mismatch, err := repo.Find(ctx, UserFilter{ID: &a.ID, Username: &b.Username})
		require.NoError(t, err)
		require.Empty(t, mismatch)
	})

	t.Run("FindUsesExactMatch", func(t *testing.T) {
		user := insertUser(t, repo, uniq(t, "Exact Person"), uniq(t, "exact"))

		partial := user.FullName[:5]
		found, err := repo.Find(ctx, UserFilter{FullName: &partial})
		require.NoError(t, err)
		require.Empty(t, found)
	})

	t.Run("FindWithoutFilterReturnsAll", func(t *testing.T) {
		user := insertUser(t, repo, "Listed", uniq(t, "listed"))

		all, err := repo.Find(ctx, UserFilter{})
		require.NoError(t, err)
		require.Contains(t, all, *user)
	})

	t.Run("UpdateByIDChangesOnlyThatRow", func(t *testing.T) {
		target := insertUser(t, repo, "Jane Doe", uniq(t, "target"))
		other := insertUser(t, repo, "Jane Doe", uniq(t, "other"))

		newUsername := uniq(t, "janesmith")
		n, err := repo.Update(ctx, UpdateSelector{ID: &target.ID}, "Jane Smith", newUsername)
		require.NoError(t, err)
		require.EqualValues(t, 1, n)

		found, err := repo.Find(ctx, UserFilter{ID: &target.ID})
		require.NoError(t, err)
		require.Equal(t, []models.User{{ID: target.ID, FullName: "Jane Smith", Username: newUsername}}, found)

		untouched, err := repo.Find(ctx, UserFilter{ID: &other.ID})
		require.NoError(t, err)
		require.Equal(t, []models.User{*other}, untouched)
	})

	t.Run("UpdateByOldName", func(t *testing.T) {
		oldName := uniq(t, "Old Name")
		user := insertUser(t, repo, oldName, uniq(t, "renamed"))

		n, err := repo.Update(ctx, UpdateSelector{OldName: &oldName}, "New Name", user.Username)
		require.NoError(t, err)
		require.EqualValues(t, 1, n)

		found, err := repo.Find(ctx, UserFilter{ID: &user.ID})
		require.NoError(t, err)
		require.Equal(t, "New Name", found[0].FullName)
	})

	t.Run("UpdateNoMatchAffectsZeroRows", func(t *testing.T) {
		n, err := repo.Update(ctx, UpdateSelector{ID: ptr(int64(987654321))}, "Ghost", uniq(t, "ghost"))
		require.NoError(t, err)
		require.Zero(t, n)
	})

	t.Run("UpdateRequiresSelectorAndFields", func(t *testing.T) {
		_, err := repo.Update(ctx, UpdateSelector{}, "A", "b")
		require.True(t, apperr.Is(err, apperr.KindValidation))

		_, err = repo.Update(ctx, UpdateSelector{ID: ptr(int64(1))}, "", "b")
		require.True(t, apperr.Is(err, apperr.KindValidation))
	})

	t.Run("DeleteByID", func(t *testing.T) {
		user := insertUser(t, repo, "John Doe", uniq(t, "jdoe"))

		n, err := repo.Delete(ctx, DeleteSelector{ID: &user.ID})
		require.NoError(t, err)
		require.EqualValues(t, 1, n)

		found, err := repo.Find(ctx, UserFilter{ID: &user.ID})
		require.NoError(t, err)
		require.Empty(t, found)

		n, err = repo.Delete(ctx, DeleteSelector{ID: &user.ID})
		require.NoError(t, err)
		require.Zero(t, n)
	})

	t.Run("DeleteByUsernameIsCaseSensitive", func(t *testing.T) {
		user := insertUser(t, repo, "Case User", uniq(t, "CaseUser"))

		lower := uniq(t, "caseuser")
		n, err := repo.Delete(ctx, DeleteSelector{Username: &lower})
		require.NoError(t, err)
		require.Zero(t, n)

		n, err = repo.Delete(ctx, DeleteSelector{Username: &user.Username})
		require.NoError(t, err)
		require.EqualValues(t, 1, n)
	})

	t.Run("DeletePrefersID", func(t *testing.T) {
		byID := insertUser(t, repo, "By ID", uniq(t, "byid"))
		byName := insertUser(t, repo, "By Name", uniq(t, "byname"))

		n, err := repo.Delete(ctx, DeleteSelector{ID: &byID.ID, Username: &byName.Username})
		require.NoError(t, err)
		require.EqualValues(t, 1, n)

		remaining, err := repo.Find(ctx, UserFilter{ID: &byName.ID})
		require.NoError(t, err)
		require.Len(t, remaining, 1)
	})

	t.Run("IDsAreNotReusedAfterDelete", func(t *testing.T) {
		user := insertUser(t, repo, "Temp", uniq(t, "temp"))
		_, err := repo.Delete(ctx, DeleteSelector{ID: &user.ID})
		require.NoError(t, err)

		next := insertUser(t, repo, "Next", uniq(t, "next"))
		require.Greater(t, next.ID, user.ID)
	})

	t.Run("DeleteRequiresSelector", func(t *testing.T) {
		_, err := repo.Delete(ctx, DeleteSelector{})
		require.True(t, apperr.Is(err, apperr.KindValidation))
	})

	t.Run("Ping", func(t *testing.T) {
		require.NoError(t, repo.Ping(ctx))
	})
}
