package storage

import (
	"context"
	"errors"

	"research-directory/models"
)

// ErrNotFound is returned by single-record lookups when no record matches.
var ErrNotFound = errors.New("record not found")

// Store is the persistence boundary of the directory. The import pipeline
// writes through it and the query service reads through it; implementations
// exist for Postgres and, for tests, in-memory.
//
// Lookups by id list must silently skip references that do not resolve
// (including ids that are not valid for the backend's native key type) —
// a dangling reference contributes nothing, it never fails the call.
type Store interface {
	// Reset clears all three collections. Every import run starts with it.
	Reset(ctx context.Context) error

	CreateDepartment(ctx context.Context, dept *models.Department) error
	CreateFaculty(ctx context.Context, fac *models.Faculty) error
	CreatePublication(ctx context.Context, pub *models.Publication) error

	// AddPublicationAuthor appends the faculty to the publication's author
	// list unless it is already present (the merge path of the dedup).
	AddPublicationAuthor(ctx context.Context, pubID, facultyID models.EntityID) error
	// AddFacultyPublication appends the publication to the faculty's
	// per-kind list. Appends are unconditional: order and repetition follow
	// the source.
	AddFacultyPublication(ctx context.Context, facultyID, pubID models.EntityID, kind models.PublicationKind) error

	ListDepartments(ctx context.Context) ([]models.Department, error)
	DepartmentBySlug(ctx context.Context, slug string) (*models.Department, error)
	FacultyByID(ctx context.Context, id models.EntityID) (*models.Faculty, error)
	PublicationByID(ctx context.Context, id models.EntityID) (*models.Publication, error)
	DepartmentsByIDs(ctx context.Context, ids models.RefList) ([]models.Department, error)
	FacultiesByIDs(ctx context.Context, ids models.RefList) ([]models.Faculty, error)
	PublicationsByIDs(ctx context.Context, ids models.RefList) ([]models.Publication, error)

	// SearchPublications matches q case-insensitively as a substring of the
	// title or any keyword.
	SearchPublications(ctx context.Context, q string, limit, offset int) ([]models.Publication, error)
	// SearchFaculties matches q case-insensitively as a substring of the
	// name or research interest.
	SearchFaculties(ctx context.Context, q string, limit, offset int) ([]models.Faculty, error)

	// RunInTransaction executes fn against a transactional view of the
	// store. The import run (clear plus reload) goes through it so a mid-run
	// failure leaves the previous data intact.
	RunInTransaction(ctx context.Context, fn func(Store) error) error
}
