package services

import (
	"context"

	"go.uber.org/zap"

	"research-directory/models"
	"research-directory/storage"
)

// DefaultSearchLimit caps search results when the caller passes no limit.
const DefaultSearchLimit = 20

// DirectoryService is the read side consumed by the query API. Joins over the
// id-list fields skip references that do not resolve instead of failing.
type DirectoryService struct {
	Store  storage.Store
	Logger *zap.Logger
}

// NewDirectoryService creates the query-layer service.
func NewDirectoryService(store storage.Store, logger *zap.Logger) *DirectoryService {
	return &DirectoryService{Store: store, Logger: logger}
}

// DepartmentRef is the compact department shape embedded in faculty profiles.
type DepartmentRef struct {
	ID   models.EntityID `json:"id"`
	Name string          `json:"name"`
	Slug string          `json:"slug"`
}

// PublicationSummary is the compact publication shape embedded in faculty
// profiles.
type PublicationSummary struct {
	ID       models.EntityID        `json:"id"`
	Title    string                 `json:"title"`
	Kind     models.PublicationKind `json:"kind"`
	Keywords []string               `json:"keywords"`
}

// AuthorSummary is the compact faculty shape embedded in publication results.
type AuthorSummary struct {
	ID       models.EntityID `json:"id"`
	Name     string          `json:"name"`
	Position *string         `json:"position,omitempty"`
}

// FacultyProfile is a faculty record with its references resolved.
type FacultyProfile struct {
	models.Faculty
	Departments      []DepartmentRef      `json:"departments"`
	Articles         []PublicationSummary `json:"articles"`
	ConferencePapers []PublicationSummary `json:"conference_papers"`
}

// PublicationDetail is a publication with its author references resolved.
type PublicationDetail struct {
	models.Publication
	Authors []AuthorSummary `json:"authors"`
}

// Departments lists all departments in creation order.
func (d *DirectoryService) Departments(ctx context.Context) ([]models.Department, error) {
	return d.Store.ListDepartments(ctx)
}

// DepartmentBySlug looks a department up by its slug.
func (d *DirectoryService) DepartmentBySlug(ctx context.Context, slug string) (*models.Department, error) {
	return d.Store.DepartmentBySlug(ctx, slug)
}

// FacultyProfile resolves a faculty record and joins its department and
// publication references.
func (d *DirectoryService) FacultyProfile(ctx context.Context, id models.EntityID) (*FacultyProfile, error) {
	fac, err := d.Store.FacultyByID(ctx, id)
	if err != nil {
		return nil, err
	}

	profile := &FacultyProfile{
		Faculty:          *fac,
		Departments:      []DepartmentRef{},
		Articles:         []PublicationSummary{},
		ConferencePapers: []PublicationSummary{},
	}

	depts, err := d.Store.DepartmentsByIDs(ctx, fac.DepartmentIDs)
	if err != nil {
		return nil, err
	}
	for _, dept := range depts {
		profile.Departments = append(profile.Departments, DepartmentRef{ID: dept.ID, Name: dept.Name, Slug: dept.Slug})
	}

	if profile.Articles, err = d.publicationSummaries(ctx, fac.ArticleIDs); err != nil {
		return nil, err
	}
	if profile.ConferencePapers, err = d.publicationSummaries(ctx, fac.ConferencePaperIDs); err != nil {
		return nil, err
	}
	return profile, nil
}

// Publication resolves a publication and joins its author references.
func (d *DirectoryService) Publication(ctx context.Context, id models.EntityID) (*PublicationDetail, error) {
	pub, err := d.Store.PublicationByID(ctx, id)
	if err != nil {
		return nil, err
	}
	detail := &PublicationDetail{Publication: *pub, Authors: []AuthorSummary{}}
	if detail.Authors, err = d.authorSummaries(ctx, pub.AuthorIDs); err != nil {
		return nil, err
	}
	return detail, nil
}

// SearchPublications matches q case-insensitively against titles and keywords
// and joins authors into each result.
func (d *DirectoryService) SearchPublications(ctx context.Context, q string, limit, offset int) ([]PublicationDetail, error) {
	if limit <= 0 {
		limit = DefaultSearchLimit
	}
	pubs, err := d.Store.SearchPublications(ctx, q, limit, offset)
	if err != nil {
		return nil, err
	}
	results := make([]PublicationDetail, 0, len(pubs))
	for _, pub := range pubs {
		authors, err := d.authorSummaries(ctx, pub.AuthorIDs)
		if err != nil {
			return nil, err
		}
		results = append(results, PublicationDetail{Publication: pub, Authors: authors})
	}
	return results, nil
}

// SearchFaculties matches q case-insensitively against names and research
// interests.
func (d *DirectoryService) SearchFaculties(ctx context.Context, q string, limit, offset int) ([]models.Faculty, error) {
	if limit <= 0 {
		limit = DefaultSearchLimit
	}
	return d.Store.SearchFaculties(ctx, q, limit, offset)
}

func (d *DirectoryService) publicationSummaries(ctx context.Context, ids models.RefList) ([]PublicationSummary, error) {
	pubs, err := d.Store.PublicationsByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	out := make([]PublicationSummary, 0, len(pubs))
	for _, pub := range pubs {
		out = append(out, PublicationSummary{ID: pub.ID, Title: pub.Title, Kind: pub.Kind, Keywords: pub.Keywords})
	}
	return out, nil
}

func (d *DirectoryService) authorSummaries(ctx context.Context, ids models.RefList) ([]AuthorSummary, error) {
	facs, err := d.Store.FacultiesByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	out := make([]AuthorSummary, 0, len(facs))
	for _, fac := range facs {
		out = append(out, AuthorSummary{ID: fac.ID, Name: fac.Name, Position: fac.Position})
	}
	return out, nil
}
