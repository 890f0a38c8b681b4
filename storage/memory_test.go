package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"research-directory/models"
)

func TestMemoryStoreAddPublicationAuthor(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	pub := &models.Publication{Title: "T", Kind: models.KindArticle, AuthorIDs: models.RefList{"f1"}}
	require.NoError(t, store.CreatePublication(ctx, pub))

	require.NoError(t, store.AddPublicationAuthor(ctx, pub.ID, "f2"))
	// Adding an existing author is a no-op, not a duplicate.
	require.NoError(t, store.AddPublicationAuthor(ctx, pub.ID, "f1"))

	got, err := store.PublicationByID(ctx, pub.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RefList{"f1", "f2"}, got.AuthorIDs)

	assert.ErrorIs(t, store.AddPublicationAuthor(ctx, "missing", "f1"), ErrNotFound)
}

func TestMemoryStoreByIDsSkipsUnresolvable(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	dept := &models.Department{Name: "D", Slug: "d"}
	require.NoError(t, store.CreateDepartment(ctx, dept))

	depts, err := store.DepartmentsByIDs(ctx, models.RefList{"bogus", dept.ID, "also-bogus"})
	require.NoError(t, err)
	require.Len(t, depts, 1)
	assert.Equal(t, dept.ID, depts[0].ID)
}

func TestMemoryStoreSearchWindow(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	for _, name := range []string{"One", "Two", "Three"} {
		require.NoError(t, store.CreateFaculty(ctx, &models.Faculty{Name: name}))
	}

	facs, err := store.SearchFaculties(ctx, "", 2, 0)
	require.NoError(t, err)
	require.Len(t, facs, 2)
	assert.Equal(t, "One", facs[0].Name)

	facs, err = store.SearchFaculties(ctx, "", 2, 2)
	require.NoError(t, err)
	require.Len(t, facs, 1)
	assert.Equal(t, "Three", facs[0].Name)

	facs, err = store.SearchFaculties(ctx, "", 0, 5)
	require.NoError(t, err)
	assert.Empty(t, facs)
}

func TestMemoryStoreTransactionStagesAndSwaps(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	require.NoError(t, store.CreateDepartment(ctx, &models.Department{Name: "Old", Slug: "old"}))

	// A failing function leaves the original contents alone.
	err := store.RunInTransaction(ctx, func(tx Store) error {
		require.NoError(t, tx.Reset(ctx))
		require.NoError(t, tx.CreateDepartment(ctx, &models.Department{Name: "New", Slug: "new"}))
		return errors.New("abort")
	})
	require.Error(t, err)

	depts, err := store.ListDepartments(ctx)
	require.NoError(t, err)
	require.Len(t, depts, 1)
	assert.Equal(t, "Old", depts[0].Name)

	// A successful function swaps the staged contents in.
	err = store.RunInTransaction(ctx, func(tx Store) error {
		require.NoError(t, tx.Reset(ctx))
		return tx.CreateDepartment(ctx, &models.Department{Name: "New", Slug: "new"})
	})
	require.NoError(t, err)

	depts, err = store.ListDepartments(ctx)
	require.NoError(t, err)
	require.Len(t, depts, 1)
	assert.Equal(t, "New", depts[0].Name)
}
