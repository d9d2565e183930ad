package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"bid-finder/config"
	"bid-finder/providers"
	"bid-finder/providers/localfs"
	"bid-finder/providers/s3bucket"
	"bid-finder/storage"
)

// NewSource wählt die Eingabequelle: S3, wenn ein Bucket konfiguriert ist, sonst DATA_DIR.
func NewSource(ctx context.Context, cfg *config.Config, logger *zap.Logger) (providers.Source, error) {
	if !cfg.UseS3Source() {
		logger.Info("Using local source", zap.String("dir", cfg.DataDir))
		return localfs.NewSource(cfg.DataDir), nil
	}
	client, err := storage.NewS3Client(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create s3 client: %w", err)
	}
	logger.Info("Using S3 source", zap.String("bucket", cfg.SourceS3Bucket), zap.String("prefix", cfg.SourceS3Prefix))
	return s3bucket.NewSource(client, cfg.SourceS3Bucket, cfg.SourceS3Prefix, logger), nil
}
