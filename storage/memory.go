package storage

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"

	"research-directory/models"
)

// MemoryStore is an in-memory Store used by tests and as a reference for the
// contract. Entities keep insertion order so entity creation order matches
// source row order, same as the Postgres backend.
type MemoryStore struct {
	mu sync.RWMutex

	departments  []models.Department
	faculties    []models.Faculty
	publications []models.Publication
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.departments = nil
	s.faculties = nil
	s.publications = nil
	return nil
}

func (s *MemoryStore) CreateDepartment(ctx context.Context, dept *models.Department) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if dept.ID == "" {
		dept.ID = models.EntityID(uuid.NewString())
	}
	s.departments = append(s.departments, cloneDepartment(*dept))
	return nil
}

func (s *MemoryStore) CreateFaculty(ctx context.Context, fac *models.Faculty) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if fac.ID == "" {
		fac.ID = models.EntityID(uuid.NewString())
	}
	s.faculties = append(s.faculties, cloneFaculty(*fac))
	return nil
}

func (s *MemoryStore) CreatePublication(ctx context.Context, pub *models.Publication) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if pub.ID == "" {
		pub.ID = models.EntityID(uuid.NewString())
	}
	s.publications = append(s.publications, clonePublication(*pub))
	return nil
}

func (s *MemoryStore) AddPublicationAuthor(ctx context.Context, pubID, facultyID models.EntityID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.publications {
		if s.publications[i].ID == pubID {
			if !s.publications[i].AuthorIDs.Contains(facultyID) {
				s.publications[i].AuthorIDs = append(s.publications[i].AuthorIDs, facultyID)
			}
			return nil
		}
	}
	return ErrNotFound
}

func (s *MemoryStore) AddFacultyPublication(ctx context.Context, facultyID, pubID models.EntityID, kind models.PublicationKind) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.faculties {
		if s.faculties[i].ID == facultyID {
			if kind == models.KindConference {
				s.faculties[i].ConferencePaperIDs = append(s.faculties[i].ConferencePaperIDs, pubID)
			} else {
				s.faculties[i].ArticleIDs = append(s.faculties[i].ArticleIDs, pubID)
			}
			return nil
		}
	}
	return ErrNotFound
}

func (s *MemoryStore) ListDepartments(ctx context.Context) ([]models.Department, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Department, 0, len(s.departments))
	for _, d := range s.departments {
		out = append(out, cloneDepartment(d))
	}
	return out, nil
}

func (s *MemoryStore) DepartmentBySlug(ctx context.Context, slug string) (*models.Department, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, d := range s.departments {
		if d.Slug == slug {
			dept := cloneDepartment(d)
			return &dept, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) FacultyByID(ctx context.Context, id models.EntityID) (*models.Faculty, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, f := range s.faculties {
		if f.ID == id {
			fac := cloneFaculty(f)
			return &fac, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) PublicationByID(ctx context.Context, id models.EntityID) (*models.Publication, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.publications {
		if p.ID == id {
			pub := clonePublication(p)
			return &pub, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) DepartmentsByIDs(ctx context.Context, ids models.RefList) ([]models.Department, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []models.Department{}
	for _, id := range ids {
		for _, d := range s.departments {
			if d.ID == id {
				out = append(out, cloneDepartment(d))
				break
			}
		}
	}
	return out, nil
}

func (s *MemoryStore) FacultiesByIDs(ctx context.Context, ids models.RefList) ([]models.Faculty, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []models.Faculty{}
	for _, id := range ids {
		for _, f := range s.faculties {
			if f.ID == id {
				out = append(out, cloneFaculty(f))
				break
			}
		}
	}
	return out, nil
}

func (s *MemoryStore) PublicationsByIDs(ctx context.Context, ids models.RefList) ([]models.Publication, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []models.Publication{}
	for _, id := range ids {
		for _, p := range s.publications {
			if p.ID == id {
				out = append(out, clonePublication(p))
				break
			}
		}
	}
	return out, nil
}

func (s *MemoryStore) SearchPublications(ctx context.Context, q string, limit, offset int) ([]models.Publication, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	needle := strings.ToLower(q)
	matched := []models.Publication{}
	for _, p := range s.publications {
		if strings.Contains(strings.ToLower(p.Title), needle) || keywordMatch(p.Keywords, needle) {
			matched = append(matched, clonePublication(p))
		}
	}
	return window(matched, limit, offset), nil
}

func (s *MemoryStore) SearchFaculties(ctx context.Context, q string, limit, offset int) ([]models.Faculty, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	needle := strings.ToLower(q)
	matched := []models.Faculty{}
	for _, f := range s.faculties {
		interest := ""
		if f.ResearchInterest != nil {
			interest = *f.ResearchInterest
		}
		if strings.Contains(strings.ToLower(f.Name), needle) || strings.Contains(strings.ToLower(interest), needle) {
			matched = append(matched, cloneFaculty(f))
		}
	}
	return window(matched, limit, offset), nil
}

// RunInTransaction stages the mutations on a copy and swaps the data in on
// success, so a failed import run leaves the previous contents intact.
func (s *MemoryStore) RunInTransaction(ctx context.Context, fn func(Store) error) error {
	s.mu.RLock()
	staged := &MemoryStore{
		departments:  append([]models.Department(nil), s.departments...),
		faculties:    make([]models.Faculty, 0, len(s.faculties)),
		publications: make([]models.Publication, 0, len(s.publications)),
	}
	for _, f := range s.faculties {
		staged.faculties = append(staged.faculties, cloneFaculty(f))
	}
	for _, p := range s.publications {
		staged.publications = append(staged.publications, clonePublication(p))
	}
	s.mu.RUnlock()

	if err := fn(staged); err != nil {
		return err
	}

	s.mu.Lock()
	s.departments = staged.departments
	s.faculties = staged.faculties
	s.publications = staged.publications
	s.mu.Unlock()
	return nil
}

func keywordMatch(keywords []string, needle string) bool {
	for _, k := range keywords {
		if strings.Contains(k, needle) {
			return true
		}
	}
	return false
}

func window[T any](items []T, limit, offset int) []T {
	if offset > 0 {
		if offset >= len(items) {
			return []T{}
		}
		items = items[offset:]
	}
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}

func cloneDepartment(d models.Department) models.Department {
	if d.Description != nil {
		desc := *d.Description
		d.Description = &desc
	}
	return d
}

func cloneFaculty(f models.Faculty) models.Faculty {
	if f.Position != nil {
		v := *f.Position
		f.Position = &v
	}
	if f.ResearchInterest != nil {
		v := *f.ResearchInterest
		f.ResearchInterest = &v
	}
	f.DepartmentIDs = append(models.RefList(nil), f.DepartmentIDs...)
	f.ArticleIDs = append(models.RefList(nil), f.ArticleIDs...)
	f.ConferencePaperIDs = append(models.RefList(nil), f.ConferencePaperIDs...)
	return f
}

func clonePublication(p models.Publication) models.Publication {
	p.Keywords = append([]string(nil), p.Keywords...)
	p.AuthorIDs = append(models.RefList(nil), p.AuthorIDs...)
	return p
}
