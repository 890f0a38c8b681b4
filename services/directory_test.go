package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"research-directory/config"
	"research-directory/models"
	"research-directory/storage"
)

func seedDirectory(t *testing.T) (*DirectoryService, *storage.MemoryStore) {
	t.Helper()
	store := storage.NewMemoryStore()
	importer := newTestImporter(store, config.OnWriteErrorAbort)
	_, err := importer.Run(context.Background(), []SourceRow{
		{
			Index:            0,
			Name:             "A. Smith",
			Position:         "Professor",
			ResearchInterest: "Machine Learning",
			Affiliation:      "School of Computer Science",
			Articles:         "1. An Overview of Machine Learning",
		},
		{
			Index:            1,
			Name:             "B. Jones",
			Affiliation:      "School of Computer Science",
			Articles:         "1. An Overview of Machine Learning",
			ConferencePapers: "1. Robotics in Practice",
		},
	})
	require.NoError(t, err)
	return NewDirectoryService(store, zap.NewNop()), store
}

func TestDirectoryDepartments(t *testing.T) {
	directory, _ := seedDirectory(t)
	ctx := context.Background()

	depts, err := directory.Departments(ctx)
	require.NoError(t, err)
	require.Len(t, depts, 1)

	dept, err := directory.DepartmentBySlug(ctx, "school-of-computer-science")
	require.NoError(t, err)
	assert.Equal(t, depts[0].ID, dept.ID)

	_, err = directory.DepartmentBySlug(ctx, "school-of-law")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestDirectoryFacultyProfile(t *testing.T) {
	directory, store := seedDirectory(t)
	ctx := context.Background()

	facs, err := store.SearchFaculties(ctx, "jones", 0, 0)
	require.NoError(t, err)
	require.Len(t, facs, 1)

	profile, err := directory.FacultyProfile(ctx, facs[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "B. Jones", profile.Name)
	require.Len(t, profile.Departments, 1)
	assert.Equal(t, "school-of-computer-science", profile.Departments[0].Slug)
	require.Len(t, profile.Articles, 1)
	assert.Equal(t, "An Overview of Machine Learning", profile.Articles[0].Title)
	require.Len(t, profile.ConferencePapers, 1)
	assert.Equal(t, "Robotics in Practice", profile.ConferencePapers[0].Title)

	_, err = directory.FacultyProfile(ctx, "not-a-real-id")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestDirectoryProfileSkipsDanglingRefs(t *testing.T) {
	directory, store := seedDirectory(t)
	ctx := context.Background()

	// Inject a faculty whose reference lists point nowhere.
	fac := &models.Faculty{
		Name:          "C. Ghost",
		DepartmentIDs: models.RefList{"not-a-ref"},
		ArticleIDs:    models.RefList{"also-not-a-ref"},
	}
	require.NoError(t, store.CreateFaculty(ctx, fac))

	profile, err := directory.FacultyProfile(ctx, fac.ID)
	require.NoError(t, err)
	assert.Empty(t, profile.Departments)
	assert.Empty(t, profile.Articles)
}

func TestDirectorySearchPublications(t *testing.T) {
	directory, _ := seedDirectory(t)
	ctx := context.Background()

	// Substring of a keyword, case-insensitive.
	results, err := directory.SearchPublications(ctx, "MACHINE", 0, 0)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "An Overview of Machine Learning", results[0].Title)
	require.Len(t, results[0].Authors, 2)
	assert.Equal(t, "A. Smith", results[0].Authors[0].Name)
	assert.Equal(t, "B. Jones", results[0].Authors[1].Name)

	results, err = directory.SearchPublications(ctx, "robotics", 0, 0)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, models.KindConference, results[0].Kind)

	results, err = directory.SearchPublications(ctx, "quantum", 0, 0)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestDirectorySearchFaculties(t *testing.T) {
	directory, _ := seedDirectory(t)
	ctx := context.Background()

	results, err := directory.SearchFaculties(ctx, "machine learning", 0, 0)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "A. Smith", results[0].Name)

	results, err = directory.SearchFaculties(ctx, "jones", 1, 0)
	require.NoError(t, err)
	require.Len(t, results, 1)

	results, err = directory.SearchFaculties(ctx, "nobody", 0, 0)
	require.NoError(t, err)
	assert.Empty(t, results)
}
