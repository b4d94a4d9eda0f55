// Package enum discovers the bodies a search runs over: a single file, or
// every eligible file beneath a directory.
package enum

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/praetorian-inc/minigrep/pkg/types"
)

// Blob is one searchable body.
type Blob struct {
	Content    []byte
	Provenance types.Provenance
}

// Path returns the display path of the blob.
func (b Blob) Path() string {
	return b.Provenance.Path()
}

// Enumerator discovers content to search from a source.
type Enumerator interface {
	// Enumerate yields blobs from the source in a stable order.
	Enumerate(ctx context.Context, callback func(Blob) error) error
}

// Config for enumeration.
type Config struct {
	// Root is the file or directory to search.
	Root string

	// IncludeHidden includes hidden files/directories (starting with .).
	IncludeHidden bool

	// MaxFileSize is the maximum file size to process during a directory
	// walk (0 = no limit).
	MaxFileSize int64

	// FollowSymlinks follows symbolic links.
	FollowSymlinks bool

	// ExtractArchives enables text extraction from binary files
	// (comma-separated: xlsx,docx,pdf,7z or 'all').
	ExtractArchives string

	// Logger receives skipped-file notices. Nil discards.
	Logger logrus.FieldLogger
}

func (c Config) logger() logrus.FieldLogger {
	if c.Logger != nil {
		return c.Logger
	}
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// New returns a FileEnumerator when Root is a regular file and a
// FilesystemEnumerator when it is a directory.
func New(config Config) (Enumerator, error) {
	info, err := os.Stat(config.Root)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", config.Root, err)
	}
	if info.IsDir() {
		return NewFilesystemEnumerator(config), nil
	}
	return NewFileEnumerator(config), nil
}
