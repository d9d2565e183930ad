package s3bucket

import (
	"bytes"
	"context"
	"errors"
	"io"
	"path"

	"bid-finder/providers"
	"bid-finder/storage"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"go.uber.org/zap"
)

// Source liest die Exporte aus einem S3-Bucket (optional unter einem Präfix).
type Source struct {
	Client *s3.Client
	Bucket string
	Prefix string
	Logger *zap.Logger
}

// NewSource erstellt eine Bucket-Quelle.
func NewSource(client *s3.Client, bucket, prefix string, logger *zap.Logger) *Source {
	return &Source{Client: client, Bucket: bucket, Prefix: prefix, Logger: logger}
}

// Name gibt den Namen der Quelle zurück.
func (s *Source) Name() string {
	return "s3"
}

// Key liefert den Objektschlüssel für name.
func (s *Source) Key(name string) string {
	if s.Prefix == "" {
		return name
	}
	return path.Join(s.Prefix, name)
}

// Open lädt das Objekt vollständig; die Arbeitsmappen passen in den Speicher.
func (s *Source) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	key := s.Key(name)
	data, err := storage.DownloadFile(ctx, s.Client, s.Bucket, key)
	if err != nil {
		var noKey *types.NoSuchKey
		if errors.As(err, &noKey) {
			return nil, providers.ErrNotFound
		}
		return nil, err
	}
	s.Logger.Debug("Downloaded source file", zap.String("key", key), zap.Int("bytes", len(data)))
	return io.NopCloser(bytes.NewReader(data)), nil
}
