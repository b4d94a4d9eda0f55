package enum

import (
	"context"
	"fmt"
	"os"

	"github.com/praetorian-inc/minigrep/pkg/types"
)

// FileEnumerator yields a single named file. An explicitly named file is
// always searched: hidden, size and binary filters do not apply, though
// extraction does when enabled for its type.
type FileEnumerator struct {
	config Config
}

// NewFileEnumerator creates an enumerator for config.Root.
func NewFileEnumerator(config Config) *FileEnumerator {
	return &FileEnumerator{config: config}
}

// Enumerate reads the file and invokes callback once per body.
func (e *FileEnumerator) Enumerate(ctx context.Context, callback func(Blob) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	content, err := os.ReadFile(e.config.Root)
	if err != nil {
		return fmt.Errorf("reading %s: %w", e.config.Root, err)
	}

	if shouldExtract(e.config, getExtension(e.config.Root)) {
		blobs, err := extractBlobs(e.config.Root, content)
		if err != nil {
			return err
		}
		for _, b := range blobs {
			if err := callback(b); err != nil {
				return err
			}
		}
		return nil
	}

	return callback(Blob{
		Content:    content,
		Provenance: types.FileProvenance{FilePath: e.config.Root},
	})
}
