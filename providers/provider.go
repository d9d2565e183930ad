package providers

import (
	"context"
	"errors"
	"io"
)

// ErrNotFound meldet, dass eine Eingabedatei in der Quelle nicht existiert.
var ErrNotFound = errors.New("source file not found")

// Source ist das Interface, das jede Eingabequelle des Loaders (Verzeichnis, S3) implementieren muss.
type Source interface {
	// Open öffnet eine Datei der Quelle anhand ihres Namens (z.B. "columns_19_20.xlsx").
	Open(ctx context.Context, name string) (io.ReadCloser, error)

	// Name gibt den eindeutigen Namen der Quelle zurück (z.B. "local").
	Name() string
}
