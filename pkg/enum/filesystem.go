package enum

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	gitignore "github.com/sabhiram/go-gitignore"
	"golang.org/x/sync/errgroup"

	"github.com/praetorian-inc/minigrep/pkg/types"
)

// FilesystemEnumerator enumerates files from a filesystem directory.
type FilesystemEnumerator struct {
	config Config
}

// NewFilesystemEnumerator creates a new filesystem enumerator.
func NewFilesystemEnumerator(config Config) *FilesystemEnumerator {
	return &FilesystemEnumerator{config: config}
}

// slot holds the blobs read from one walked file until it is delivered.
type slot struct {
	path  string
	blobs []Blob
	done  chan struct{}
}

// Enumerate walks the directory and yields file blobs.
// Phase 1: walk the tree and collect eligible paths in lexical order.
// Phase 2: read files in parallel, deliver them to callback in walk order.
func (e *FilesystemEnumerator) Enumerate(ctx context.Context, callback func(Blob) error) error {
	files, err := e.walk(ctx)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	numReaders := runtime.NumCPU()
	if numReaders < 1 {
		numReaders = 1
	}

	slots := make([]*slot, len(files))
	for i, path := range files {
		slots[i] = &slot{path: path, done: make(chan struct{})}
	}

	// window bounds how far readers may run ahead of delivery
	window := make(chan struct{}, numReaders*2)
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		for _, s := range slots {
			select {
			case window <- struct{}{}:
			case <-gctx.Done():
				return gctx.Err()
			}
			s := s
			g.Go(func() error {
				defer close(s.done)
				s.blobs = e.readFile(gctx, s.path)
				return nil
			})
		}
		return nil
	})

	deliver := func() error {
		for _, s := range slots {
			if err := ctx.Err(); err != nil {
				return err
			}
			select {
			case <-s.done:
			case <-ctx.Done():
				return ctx.Err()
			}
			<-window
			for _, b := range s.blobs {
				if err := callback(b); err != nil {
					return err
				}
			}
			s.blobs = nil
		}
		return nil
	}

	err = deliver()
	cancel()
	if werr := g.Wait(); err == nil && !errors.Is(werr, context.Canceled) {
		err = werr
	}
	return err
}

// walk collects eligible file paths.
func (e *FilesystemEnumerator) walk(ctx context.Context) ([]string, error) {
	// Load .gitignore patterns if present
	var ignore *gitignore.GitIgnore
	gitignorePath := filepath.Join(e.config.Root, ".gitignore")
	if _, err := os.Stat(gitignorePath); err == nil {
		ignore, _ = gitignore.CompileIgnoreFile(gitignorePath)
	}

	var files []string
	err := filepath.Walk(e.config.Root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			if path == e.config.Root {
				return err
			}
			e.config.logger().WithError(err).WithField("path", path).Warn("skipping unreadable path")
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if info.IsDir() {
			if path != e.config.Root && !e.config.IncludeHidden && isHidden(info.Name()) {
				return filepath.SkipDir
			}
			return nil
		}

		if info.Mode()&os.ModeSymlink != 0 {
			if !e.config.FollowSymlinks {
				return nil
			}
			target, err := os.Stat(path)
			if err != nil || !target.Mode().IsRegular() {
				return nil
			}
			info = target
		} else if !info.Mode().IsRegular() {
			return nil
		}

		if !e.config.IncludeHidden && isHidden(info.Name()) {
			return nil
		}

		if e.config.MaxFileSize > 0 && info.Size() > e.config.MaxFileSize {
			return nil
		}

		if ignore != nil {
			relPath, err := filepath.Rel(e.config.Root, path)
			if err != nil {
				return err
			}
			if ignore.MatchesPath(relPath) {
				return nil
			}
		}

		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", e.config.Root, err)
	}
	return files, nil
}

// readFile reads one file and turns it into blobs. Unreadable and binary
// files are skipped.
func (e *FilesystemEnumerator) readFile(ctx context.Context, path string) []Blob {
	if ctx.Err() != nil {
		return nil
	}

	log := e.config.logger().WithField("path", path)
	content, err := os.ReadFile(path)
	if err != nil {
		log.WithError(err).Warn("skipping unreadable file")
		return nil
	}

	if shouldExtract(e.config, getExtension(path)) {
		blobs, err := extractBlobs(path, content)
		if err != nil {
			log.WithError(err).Debug("extraction failed")
			return nil
		}
		return blobs
	}

	if isBinary(content) {
		log.Debug("skipping binary file")
		return nil
	}

	return []Blob{{
		Content:    content,
		Provenance: types.FileProvenance{FilePath: path},
	}}
}

// shouldExtract checks if a file type should be extracted based on config.
func shouldExtract(config Config, ext string) bool {
	if config.ExtractArchives == "" || !isExtractable(ext) {
		return false
	}
	if config.ExtractArchives == "all" {
		return true
	}
	kinds := strings.Split(strings.ToLower(config.ExtractArchives), ",")
	for _, k := range kinds {
		if strings.TrimSpace(k) == strings.TrimPrefix(ext, ".") {
			return true
		}
	}
	return false
}

// isHidden checks if a filename is hidden (starts with .).
// The special entries "." and ".." are NOT considered hidden.
func isHidden(name string) bool {
	if name == "." || name == ".." {
		return false
	}
	return strings.HasPrefix(name, ".")
}

// isBinary detects if content is binary by checking first 8KB for null bytes.
func isBinary(content []byte) bool {
	checkSize := len(content)
	if checkSize > 8192 {
		checkSize = 8192
	}
	return bytes.IndexByte(content[:checkSize], 0) != -1
}

func getExtension(path string) string {
	return strings.ToLower(filepath.Ext(path))
}
