package services

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"research-directory/config"
	"research-directory/models"
	"research-directory/storage"
)

// ImportService rebuilds the directory from one source spreadsheet. A run
// clears the three collections and reloads them row by row inside a single
// store transaction, deduplicating departments by exact name and publications
// by (kind, title).
type ImportService struct {
	Config     *config.Config
	Store      storage.Store
	Classifier *Classifier
	Logger     *zap.Logger
}

// NewImportService creates a new import pipeline instance.
func NewImportService(cfg *config.Config, store storage.Store, classifier *Classifier, logger *zap.Logger) *ImportService {
	return &ImportService{
		Config:     cfg,
		Store:      store,
		Classifier: classifier,
		Logger:     logger,
	}
}

// ImportStats summarises one import run.
type ImportStats struct {
	RowsProcessed       int `json:"rows_processed"`
	RowsSkipped         int `json:"rows_skipped"`
	RowsFailed          int `json:"rows_failed"`
	DepartmentsCreated  int `json:"departments_created"`
	FacultiesCreated    int `json:"faculties_created"`
	PublicationsCreated int `json:"publications_created"`
	PublicationsMerged  int `json:"publications_merged"`
}

// pubKey is the publication dedup key.
type pubKey struct {
	kind  models.PublicationKind
	title string
}

// runState holds the identity caches of a single run. The caches live and die
// with the run; they are never shared across runs or stored globally.
type runState struct {
	store        storage.Store
	departments  map[string]models.EntityID
	publications map[pubKey]models.EntityID
	seenNames    map[string]int
}

// ImportFile reads the source file and runs the pipeline. A file that cannot
// be opened or parsed aborts before any destination mutation.
func (s *ImportService) ImportFile(ctx context.Context, path string) (*ImportStats, error) {
	rows, err := ReadSourceFile(path)
	if err != nil {
		return nil, err
	}
	s.Logger.Info("Source file loaded", zap.String("path", path), zap.Int("rows", len(rows)))
	return s.Run(ctx, rows)
}

// Run executes the full reload for the given rows. On a write error the run
// either aborts (default, previous data stays intact thanks to the enclosing
// transaction) or skips the row, per IMPORT_ON_WRITE_ERROR.
func (s *ImportService) Run(ctx context.Context, rows []SourceRow) (*ImportStats, error) {
	stats := &ImportStats{}
	skipOnWriteError := s.Config != nil && s.Config.ImportOnWriteError == config.OnWriteErrorSkip

	err := s.Store.RunInTransaction(ctx, func(tx storage.Store) error {
		if err := tx.Reset(ctx); err != nil {
			return fmt.Errorf("reset collections: %w", err)
		}
		s.Logger.Info("Cleared department, faculty and publication collections")

		run := &runState{
			store:        tx,
			departments:  map[string]models.EntityID{},
			publications: map[pubKey]models.EntityID{},
			seenNames:    map[string]int{},
		}

		for _, row := range rows {
			if strings.TrimSpace(row.Name) == "" {
				s.Logger.Warn("Row has no name, skipping", zap.Int("sheet_row", row.SheetRow()))
				stats.RowsSkipped++
				continue
			}
			if err := s.processRow(ctx, run, row, stats); err != nil {
				if !skipOnWriteError {
					return fmt.Errorf("row %d: %w", row.SheetRow(), err)
				}
				stats.RowsFailed++
				s.Logger.Error("Row failed, continuing per policy",
					zap.Int("sheet_row", row.SheetRow()), zap.Error(err))
				continue
			}
			stats.RowsProcessed++
		}
		return nil
	})
	if err != nil {
		return stats, err
	}

	s.Logger.Info("Import completed",
		zap.Int("rows_processed", stats.RowsProcessed),
		zap.Int("rows_skipped", stats.RowsSkipped),
		zap.Int("departments", stats.DepartmentsCreated),
		zap.Int("faculties", stats.FacultiesCreated),
		zap.Int("publications", stats.PublicationsCreated))
	return stats, nil
}

func (s *ImportService) processRow(ctx context.Context, run *runState, row SourceRow, stats *ImportStats) error {
	name := strings.TrimSpace(row.Name)
	log := s.Logger.With(zap.Int("sheet_row", row.SheetRow()), zap.String("name", name))

	if prev, ok := run.seenNames[name]; ok {
		// Faculty records are never merged; same name twice means two records.
		log.Warn("Duplicate faculty name, keeping both records", zap.Int("first_sheet_row", prev))
	}
	run.seenNames[name] = row.SheetRow()

	// Departments: keep only discipline-related names, create each distinct
	// name once per run.
	rawAffiliation := strings.TrimSpace(row.Affiliation)
	deptIDs := models.RefList{}
	for _, deptName := range ParseAffiliationList(rawAffiliation) {
		if !s.Classifier.IsDisciplineRelated(deptName) {
			continue
		}
		id, ok := run.departments[deptName]
		if !ok {
			dept := &models.Department{
				Name:              deptName,
				Slug:              Slugify(deptName),
				Type:              s.Classifier.StructuralType(deptName),
				DisciplineRelated: true,
			}
			if err := run.store.CreateDepartment(ctx, dept); err != nil {
				return fmt.Errorf("create department %q: %w", deptName, err)
			}
			run.departments[deptName] = dept.ID
			id = dept.ID
			stats.DepartmentsCreated++
			log.Info("Created department", zap.String("department", deptName), zap.String("slug", dept.Slug))
		}
		deptIDs = append(deptIDs, id)
	}

	fac := &models.Faculty{
		Name:               name,
		Position:           optional(row.Position),
		ResearchInterest:   optional(row.ResearchInterest),
		RawAffiliation:     rawAffiliation,
		DepartmentIDs:      deptIDs,
		ArticleIDs:         models.RefList{},
		ConferencePaperIDs: models.RefList{},
	}
	if err := run.store.CreateFaculty(ctx, fac); err != nil {
		return fmt.Errorf("create faculty: %w", err)
	}
	stats.FacultiesCreated++

	if err := s.processPublications(ctx, run, row, fac.ID, models.KindArticle, ColumnArticle, row.Articles, stats); err != nil {
		return err
	}
	return s.processPublications(ctx, run, row, fac.ID, models.KindConference, ColumnConferencePaper, row.ConferencePapers, stats)
}

func (s *ImportService) processPublications(ctx context.Context, run *runState, row SourceRow, facultyID models.EntityID, kind models.PublicationKind, column, raw string, stats *ImportStats) error {
	for _, title := range ParsePublicationTitles(raw) {
		key := pubKey{kind: kind, title: title}
		id, ok := run.publications[key]
		if !ok {
			pub := &models.Publication{
				Title:          title,
				Kind:           kind,
				Keywords:       ExtractKeywords(title),
				AuthorIDs:      models.RefList{facultyID},
				SourceColumn:   column,
				SourceRowIndex: row.Index,
			}
			if err := run.store.CreatePublication(ctx, pub); err != nil {
				return fmt.Errorf("create %s %q: %w", kind, title, err)
			}
			run.publications[key] = pub.ID
			id = pub.ID
			stats.PublicationsCreated++
		} else {
			if err := run.store.AddPublicationAuthor(ctx, id, facultyID); err != nil {
				return fmt.Errorf("merge author into %s %q: %w", kind, title, err)
			}
			stats.PublicationsMerged++
		}
		if err := run.store.AddFacultyPublication(ctx, facultyID, id, kind); err != nil {
			return fmt.Errorf("link %s %q to faculty: %w", kind, title, err)
		}
	}
	return nil
}
