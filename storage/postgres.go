package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"research-directory/models"
)

// PostgresStore implements Store on top of GORM/PostgreSQL. Reference lists
// and keyword sets live in jsonb columns; searches use ILIKE so matching is
// case-insensitive at read time.
type PostgresStore struct {
	db *gorm.DB
}

// NewPostgresStore wraps an open GORM connection.
func NewPostgresStore(db *gorm.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// AutoMigrate creates or updates the three directory tables.
func (s *PostgresStore) AutoMigrate() error {
	return s.db.AutoMigrate(&models.Department{}, &models.Faculty{}, &models.Publication{})
}

func (s *PostgresStore) Reset(ctx context.Context) error {
	session := s.db.WithContext(ctx).Session(&gorm.Session{AllowGlobalUpdate: true})
	for _, model := range []any{&models.Publication{}, &models.Faculty{}, &models.Department{}} {
		if err := session.Delete(model).Error; err != nil {
			return fmt.Errorf("clear collections: %w", err)
		}
	}
	return nil
}

func (s *PostgresStore) CreateDepartment(ctx context.Context, dept *models.Department) error {
	if dept.ID == "" {
		dept.ID = models.EntityID(uuid.NewString())
	}
	return s.db.WithContext(ctx).Create(dept).Error
}

func (s *PostgresStore) CreateFaculty(ctx context.Context, fac *models.Faculty) error {
	if fac.ID == "" {
		fac.ID = models.EntityID(uuid.NewString())
	}
	return s.db.WithContext(ctx).Create(fac).Error
}

func (s *PostgresStore) CreatePublication(ctx context.Context, pub *models.Publication) error {
	if pub.ID == "" {
		pub.ID = models.EntityID(uuid.NewString())
	}
	return s.db.WithContext(ctx).Create(pub).Error
}

func (s *PostgresStore) AddPublicationAuthor(ctx context.Context, pubID, facultyID models.EntityID) error {
	pub, err := s.PublicationByID(ctx, pubID)
	if err != nil {
		return err
	}
	if pub.AuthorIDs.Contains(facultyID) {
		return nil
	}
	pub.AuthorIDs = append(pub.AuthorIDs, facultyID)
	return s.db.WithContext(ctx).Model(pub).Update("author_ids", pub.AuthorIDs).Error
}

func (s *PostgresStore) AddFacultyPublication(ctx context.Context, facultyID, pubID models.EntityID, kind models.PublicationKind) error {
	fac, err := s.FacultyByID(ctx, facultyID)
	if err != nil {
		return err
	}
	column := "article_ids"
	list := &fac.ArticleIDs
	if kind == models.KindConference {
		column = "conference_paper_ids"
		list = &fac.ConferencePaperIDs
	}
	*list = append(*list, pubID)
	return s.db.WithContext(ctx).Model(fac).Update(column, *list).Error
}

func (s *PostgresStore) ListDepartments(ctx context.Context) ([]models.Department, error) {
	var depts []models.Department
	err := s.db.WithContext(ctx).Order("created_at").Find(&depts).Error
	return depts, err
}

func (s *PostgresStore) DepartmentBySlug(ctx context.Context, slug string) (*models.Department, error) {
	var dept models.Department
	if err := s.db.WithContext(ctx).Where("slug = ?", slug).First(&dept).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &dept, nil
}

func (s *PostgresStore) FacultyByID(ctx context.Context, id models.EntityID) (*models.Faculty, error) {
	if !validID(id) {
		return nil, ErrNotFound
	}
	var fac models.Faculty
	if err := s.db.WithContext(ctx).Where("id = ?", string(id)).First(&fac).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &fac, nil
}

func (s *PostgresStore) PublicationByID(ctx context.Context, id models.EntityID) (*models.Publication, error) {
	if !validID(id) {
		return nil, ErrNotFound
	}
	var pub models.Publication
	if err := s.db.WithContext(ctx).Where("id = ?", string(id)).First(&pub).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &pub, nil
}

func (s *PostgresStore) DepartmentsByIDs(ctx context.Context, ids models.RefList) ([]models.Department, error) {
	valid := filterIDs(ids)
	if len(valid) == 0 {
		return []models.Department{}, nil
	}
	var depts []models.Department
	err := s.db.WithContext(ctx).Where("id IN ?", valid).Find(&depts).Error
	return depts, err
}

func (s *PostgresStore) FacultiesByIDs(ctx context.Context, ids models.RefList) ([]models.Faculty, error) {
	valid := filterIDs(ids)
	if len(valid) == 0 {
		return []models.Faculty{}, nil
	}
	var facs []models.Faculty
	err := s.db.WithContext(ctx).Where("id IN ?", valid).Find(&facs).Error
	return facs, err
}

func (s *PostgresStore) PublicationsByIDs(ctx context.Context, ids models.RefList) ([]models.Publication, error) {
	valid := filterIDs(ids)
	if len(valid) == 0 {
		return []models.Publication{}, nil
	}
	var pubs []models.Publication
	err := s.db.WithContext(ctx).Where("id IN ?", valid).Find(&pubs).Error
	return pubs, err
}

func (s *PostgresStore) SearchPublications(ctx context.Context, q string, limit, offset int) ([]models.Publication, error) {
	pattern := "%" + q + "%"
	query := s.db.WithContext(ctx).
		Where("title ILIKE ? OR keywords::text ILIKE ?", pattern, pattern).
		Order("created_at")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}
	var pubs []models.Publication
	err := query.Find(&pubs).Error
	return pubs, err
}

func (s *PostgresStore) SearchFaculties(ctx context.Context, q string, limit, offset int) ([]models.Faculty, error) {
	pattern := "%" + q + "%"
	query := s.db.WithContext(ctx).
		Where("name ILIKE ? OR research_interest ILIKE ?", pattern, pattern).
		Order("created_at")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}
	var facs []models.Faculty
	err := query.Find(&facs).Error
	return facs, err
}

func (s *PostgresStore) RunInTransaction(ctx context.Context, fn func(Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&PostgresStore{db: tx})
	})
}

// validID reports whether the opaque id parses as the native key type.
// Invalid ids are treated as "no such reference", never as an error.
func validID(id models.EntityID) bool {
	_, err := uuid.Parse(string(id))
	return err == nil
}

func filterIDs(ids models.RefList) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if validID(id) {
			out = append(out, string(id))
		}
	}
	return out
}
