package media

import (
	"context"
	"io"
)

// MediaStore persists uploaded files and returns their path relative to the media root.
type MediaStore interface {
	Save(ctx context.Context, dir, ext string, r io.Reader) (string, error)
}
