package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"research-directory/config"
	"research-directory/models"
	"research-directory/services"
	"research-directory/storage"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var (
	rowsImportedCounter prometheus.Counter
	rowsSkippedCounter  prometheus.Counter
	pubsMergedCounter   prometheus.Counter
)

func init() {
	rowsImportedCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "directory_rows_imported_total",
		Help: "Total number of source rows imported into the directory.",
	})
	rowsSkippedCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "directory_rows_skipped_total",
		Help: "Total number of source rows skipped for a blank name.",
	})
	pubsMergedCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "directory_publications_merged_total",
		Help: "Total number of publication mentions merged into existing records.",
	})
	prometheus.MustRegister(rowsImportedCounter, rowsSkippedCounter, pubsMergedCounter)
}

func recordImportStats(stats *services.ImportStats) {
	rowsImportedCounter.Add(float64(stats.RowsProcessed))
	rowsSkippedCounter.Add(float64(stats.RowsSkipped))
	pubsMergedCounter.Add(float64(stats.PublicationsMerged))
}

func main() {
	logging, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("can't initialize zap logger: %v", err)
	}
	defer logging.Sync()

	cfg, err := config.Load()
	if err != nil {
		logging.Fatal("Config load error", zap.Error(err))
	}

	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		logging.Fatal("Failed to connect to database", zap.Error(err))
	}
	logging.Info("Successfully connected to directory database.")

	store := storage.NewPostgresStore(db)
	if err := store.AutoMigrate(); err != nil {
		logging.Fatal("Database auto-migration failed", zap.Error(err))
	}

	rules := services.DefaultClassifierRules()
	if cfg.ClassifierRulesPath != "" {
		rules, err = services.LoadClassifierRules(cfg.ClassifierRulesPath)
		if err != nil {
			logging.Fatal("Failed to load classifier rules", zap.Error(err))
		}
		logging.Info("Classifier rules loaded", zap.String("path", cfg.ClassifierRulesPath))
	}

	importer := services.NewImportService(cfg, store, services.NewClassifier(rules), logging)
	directory := services.NewDirectoryService(store, logging)

	router := gin.Default()
	router.Use(gin.Recovery())
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	setupDepartmentRoutes(router, directory, logging)
	setupFacultyRoutes(router, directory, logging)
	setupPublicationRoutes(router, directory, logging)
	setupSearchRoutes(router, directory, logging)
	setupImportRoutes(router, importer, cfg, logging)

	if cfg.ImportCronSchedule != "" && cfg.ImportSourcePath != "" {
		cronScheduler := cron.New()
		cronScheduler.AddFunc(cfg.ImportCronSchedule, func() {
			logging.Info("Running scheduled import...", zap.String("path", cfg.ImportSourcePath))
			stats, err := importer.ImportFile(context.Background(), cfg.ImportSourcePath)
			if err != nil {
				logging.Error("Scheduled import failed", zap.Error(err))
				return
			}
			recordImportStats(stats)
			logging.Info("Scheduled import completed",
				zap.Int("rows", stats.RowsProcessed), zap.Int("publications", stats.PublicationsCreated))
		})
		cronScheduler.Start()
	}

	logging.Info("Starting server", zap.String("port", cfg.HTTPPort))
	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadTimeout:       30 * time.Second,
		ReadHeaderTimeout: 15 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	if err := srv.ListenAndServe(); err != nil {
		logging.Fatal("Failed to run server", zap.Error(err))
	}
}

func setupDepartmentRoutes(router *gin.Engine, directory *services.DirectoryService, log *zap.Logger) {
	rg := router.Group("/departments")

	rg.GET("/", func(c *gin.Context) {
		depts, err := directory.Departments(c.Request.Context())
		if err != nil {
			log.Error("Database query for departments failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
			return
		}
		c.JSON(http.StatusOK, depts)
	})

	rg.GET("/:slug", func(c *gin.Context) {
		dept, err := directory.DepartmentBySlug(c.Request.Context(), c.Param("slug"))
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "department not found"})
				return
			}
			log.Error("Database query for department failed", zap.String("slug", c.Param("slug")), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
			return
		}
		c.JSON(http.StatusOK, dept)
	})
}

func setupFacultyRoutes(router *gin.Engine, directory *services.DirectoryService, log *zap.Logger) {
	rg := router.Group("/faculties")

	rg.GET("/:id", func(c *gin.Context) {
		profile, err := directory.FacultyProfile(c.Request.Context(), models.EntityID(c.Param("id")))
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "faculty not found"})
				return
			}
			log.Error("Faculty profile lookup failed", zap.String("id", c.Param("id")), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
			return
		}
		c.JSON(http.StatusOK, profile)
	})
}

func setupPublicationRoutes(router *gin.Engine, directory *services.DirectoryService, log *zap.Logger) {
	rg := router.Group("/publications")

	rg.GET("/:id", func(c *gin.Context) {
		detail, err := directory.Publication(c.Request.Context(), models.EntityID(c.Param("id")))
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "publication not found"})
				return
			}
			log.Error("Publication lookup failed", zap.String("id", c.Param("id")), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
			return
		}
		c.JSON(http.StatusOK, detail)
	})
}

func setupSearchRoutes(router *gin.Engine, directory *services.DirectoryService, log *zap.Logger) {
	rg := router.Group("/search")

	paging := func(c *gin.Context) (int, int) {
		limit, _ := strconv.Atoi(c.Query("limit"))
		offset, _ := strconv.Atoi(c.Query("offset"))
		return limit, offset
	}

	rg.GET("/publications", func(c *gin.Context) {
		q := c.Query("q")
		if q == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "query parameter 'q' is required"})
			return
		}
		limit, offset := paging(c)
		results, err := directory.SearchPublications(c.Request.Context(), q, limit, offset)
		if err != nil {
			log.Error("Publication search failed", zap.String("q", q), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
			return
		}
		c.JSON(http.StatusOK, results)
	})

	rg.GET("/faculties", func(c *gin.Context) {
		q := c.Query("q")
		if q == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "query parameter 'q' is required"})
			return
		}
		limit, offset := paging(c)
		results, err := directory.SearchFaculties(c.Request.Context(), q, limit, offset)
		if err != nil {
			log.Error("Faculty search failed", zap.String("q", q), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
			return
		}
		c.JSON(http.StatusOK, results)
	})
}

func setupImportRoutes(router *gin.Engine, importer *services.ImportService, cfg *config.Config, log *zap.Logger) {
	rg := router.Group("/import")

	rg.POST("/run", func(c *gin.Context) {
		if cfg.ImportSourcePath == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "IMPORT_SOURCE_PATH is not configured"})
			return
		}
		go func() {
			stats, err := importer.ImportFile(context.Background(), cfg.ImportSourcePath)
			if err != nil {
				log.Error("Async import failed", zap.Error(err))
				return
			}
			recordImportStats(stats)
			log.Info("Async import completed",
				zap.Int("rows", stats.RowsProcessed),
				zap.Int("departments", stats.DepartmentsCreated),
				zap.Int("publications", stats.PublicationsCreated))
		}()
		c.JSON(http.StatusAccepted, gin.H{"message": "Import triggered."})
	})
}
