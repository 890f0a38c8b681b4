package config

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Write-error policies for the import run.
const (
	OnWriteErrorAbort = "abort"
	OnWriteErrorSkip  = "skip"
)

// Config holds all configuration parameters taken from environment variables.
type Config struct {
	DBHost     string `envconfig:"DB_HOST" required:"true"`
	DBPort     int    `envconfig:"DB_PORT" default:"5432"`
	DBUser     string `envconfig:"DB_USER" required:"true"`
	DBPassword string `envconfig:"DB_PASSWORD" required:"true"`
	DBName     string `envconfig:"DB_NAME" required:"true"`

	HTTPPort string `envconfig:"HTTP_PORT" default:"4242"`

	// Path to the source spreadsheet (.xlsx or .csv) used by the scheduled
	// re-import and the /import/run trigger. The importer binary takes the
	// path as an argument and falls back to this value.
	ImportSourcePath string `envconfig:"IMPORT_SOURCE_PATH"`
	// Cron schedule for automatic re-imports. Empty disables the job.
	ImportCronSchedule string `envconfig:"IMPORT_CRON_SCHEDULE"`
	// What to do when a single row's write fails: "abort" rolls back the whole
	// run, "skip" logs the row and continues.
	ImportOnWriteError string `envconfig:"IMPORT_ON_WRITE_ERROR" default:"abort"`

	// Optional JSON file overriding the built-in classifier vocabulary.
	ClassifierRulesPath string `envconfig:"CLASSIFIER_RULES_PATH"`

	// Optional S3 target for pre-reload snapshots. Snapshots are disabled
	// when the bucket is empty.
	SnapshotS3Bucket   string `envconfig:"SNAPSHOT_S3_BUCKET"`
	SnapshotS3Endpoint string `envconfig:"SNAPSHOT_S3_ENDPOINT"`
	SnapshotS3Key      string `envconfig:"SNAPSHOT_S3_KEY"`
	SnapshotS3Secret   string `envconfig:"SNAPSHOT_S3_SECRET"`
	SnapshotS3Region   string `envconfig:"SNAPSHOT_S3_REGION"`
	SnapshotKeep       int    `envconfig:"SNAPSHOT_KEEP" default:"4"`
}

// DSN returns the data source name for the PostgreSQL connection.
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=disable",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort)
}

// SnapshotEnabled reports whether pre-reload S3 snapshots are configured.
func (c *Config) SnapshotEnabled() bool {
	return c.SnapshotS3Bucket != ""
}

// Load reads the configuration from the environment.
func Load() (*Config, error) {
	_ = godotenv.Load()
	var c Config
	err := envconfig.Process("", &c)
	return &c, err
}
