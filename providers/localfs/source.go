package localfs

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"bid-finder/providers"
)

// Source liest die Exporte aus einem lokalen Verzeichnis.
type Source struct {
	Dir string
}

// NewSource erstellt eine Quelle für dir.
func NewSource(dir string) *Source {
	return &Source{Dir: dir}
}

// Name gibt den Namen der Quelle zurück.
func (s *Source) Name() string {
	return "local"
}

// Open öffnet name relativ zum Verzeichnis.
func (s *Source) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	f, err := os.Open(filepath.Join(s.Dir, filepath.Base(name)))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, providers.ErrNotFound
	}
	return f, err
}
