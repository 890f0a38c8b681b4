package services

import (
	"bytes"
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"research-directory/config"
	"research-directory/models"
	"research-directory/storage"
)

const snapshotPrefix = "snapshots/"

// SnapshotService uploads a gzipped JSON dump of the three collections to S3.
// The importer runs it right before the destructive reload so the previous
// state stays recoverable.
type SnapshotService struct {
	Config   *config.Config
	DB       *gorm.DB
	S3Client *s3.Client
	Logger   *zap.Logger
}

// NewSnapshotService creates a new snapshot service.
func NewSnapshotService(cfg *config.Config, db *gorm.DB, s3Client *s3.Client, logger *zap.Logger) *SnapshotService {
	return &SnapshotService{Config: cfg, DB: db, S3Client: s3Client, Logger: logger}
}

type snapshotPayload struct {
	TakenAt      time.Time            `json:"taken_at"`
	Departments  []models.Department  `json:"departments"`
	Faculties    []models.Faculty     `json:"faculties"`
	Publications []models.Publication `json:"publications"`
}

// Run dumps the current collections and uploads them under a timestamped key,
// then prunes snapshots beyond the retention count. Returns the object URL.
func (s *SnapshotService) Run(ctx context.Context) (string, error) {
	payload := snapshotPayload{TakenAt: time.Now().UTC()}
	if err := s.DB.WithContext(ctx).Find(&payload.Departments).Error; err != nil {
		return "", fmt.Errorf("dump departments: %w", err)
	}
	if err := s.DB.WithContext(ctx).Find(&payload.Faculties).Error; err != nil {
		return "", fmt.Errorf("dump faculties: %w", err)
	}
	if err := s.DB.WithContext(ctx).Find(&payload.Publications).Error; err != nil {
		return "", fmt.Errorf("dump publications: %w", err)
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("encode snapshot: %w", err)
	}
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	if _, err := gz.Write(data); err != nil {
		return "", fmt.Errorf("compress snapshot: %w", err)
	}
	if err := gz.Close(); err != nil {
		return "", fmt.Errorf("compress snapshot: %w", err)
	}

	key := fmt.Sprintf("%sdirectory-%s.json.gz", snapshotPrefix, payload.TakenAt.Format("2006-01-02T15-04-05Z"))
	url, err := storage.UploadObject(ctx, s.S3Client, s.Config, key, buf.Bytes())
	if err != nil {
		return "", fmt.Errorf("upload snapshot: %w", err)
	}
	s.Logger.Info("Snapshot uploaded",
		zap.String("key", key),
		zap.Int("departments", len(payload.Departments)),
		zap.Int("faculties", len(payload.Faculties)),
		zap.Int("publications", len(payload.Publications)))

	if err := s.prune(ctx); err != nil {
		// Retention failures never block the import.
		s.Logger.Warn("Snapshot pruning failed", zap.Error(err))
	}
	return url, nil
}

// prune deletes the oldest snapshots beyond SnapshotKeep. Keys embed the
// timestamp, so lexicographic order is chronological.
func (s *SnapshotService) prune(ctx context.Context) error {
	keep := s.Config.SnapshotKeep
	if keep <= 0 {
		return nil
	}
	out, err := s.S3Client.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
		Bucket: &s.Config.SnapshotS3Bucket,
		Prefix: aws.String(snapshotPrefix),
	})
	if err != nil {
		return err
	}
	keys := make([]string, 0, len(out.Contents))
	for _, obj := range out.Contents {
		if obj.Key != nil {
			keys = append(keys, *obj.Key)
		}
	}
	if len(keys) <= keep {
		return nil
	}
	sort.Strings(keys)
	for _, key := range keys[:len(keys)-keep] {
		if _, err := s.S3Client.DeleteObject(ctx, &s3.DeleteObjectInput{
			Bucket: &s.Config.SnapshotS3Bucket,
			Key:    aws.String(key),
		}); err != nil {
			return err
		}
		s.Logger.Info("Old snapshot deleted", zap.String("key", key))
	}
	return nil
}
