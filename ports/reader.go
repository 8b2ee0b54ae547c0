package ports

import (
	"context"
)

// NumberReaderPort extracts a raw number payload from an external file
// so the CLI can feed spreadsheet exports straight into validation.
// The returned string is delimiter-separated text in the same shape the
// core parser accepts.
type NumberReaderPort interface {
	ReadNumbers(ctx context.Context, path string) (string, error)
}
