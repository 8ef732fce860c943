// Package assets lists, filters, and opens the image files a server picks from.
package assets

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"math/rand"
	"mime"
	"os"
	"path"
	"slices"
	"strings"
)

//go:generate counterfeiter -generate

//counterfeiter:generate -o ../fakes --fake-name AssetSource . Source

var (
	ErrSourceUnavailable = errors.New("asset source unavailable")
	ErrNoAssets          = errors.New("no assets available")
	ErrReadFailure       = errors.New("asset read failure")
)

// DefaultExtensions are the accepted suffixes when none are configured.
var DefaultExtensions = []string{".png", ".jpg", ".jpeg", ".gif", ".webp"}

type Source interface {
	List(ctx context.Context) ([]string, error)
	Open(name string) (fs.File, error)
}

// Directory is a Source backed by a directory. The listing is read on every
// call to List; nothing is cached between requests.
type Directory struct {
	fsys       fs.FS
	extensions []string
}

func NewDirectory(dir string, extensions []string) *Directory {
	return NewFS(os.DirFS(dir), extensions)
}

func NewFS(fsys fs.FS, extensions []string) *Directory {
	if len(extensions) == 0 {
		extensions = DefaultExtensions
	}
	return &Directory{
		fsys:       fsys,
		extensions: NormalizeExtensions(extensions),
	}
}

// NormalizeExtensions lower-cases each extension and gives it a leading dot.
// Blank entries and duplicates are dropped.
func NormalizeExtensions(extensions []string) []string {
	result := make([]string, 0, len(extensions))
	for _, ext := range extensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" || ext == "." {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		if !slices.Contains(result, ext) {
			result = append(result, ext)
		}
	}
	return result
}

func (dir *Directory) Extensions() []string {
	return append([]string(nil), dir.extensions...)
}

func (dir *Directory) List(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	entries, err := fs.ReadDir(dir.fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSourceUnavailable, err)
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !dir.Accepts(entry.Name()) {
			continue
		}
		names = append(names, entry.Name())
	}
	return names, nil
}

// Accepts reports whether name ends with one of the accepted extensions,
// ignoring case.
func (dir *Directory) Accepts(name string) bool {
	lower := strings.ToLower(name)
	for _, ext := range dir.extensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

// Open opens name for streaming. The caller must close the returned file.
func (dir *Directory) Open(name string) (fs.File, error) {
	f, err := dir.fsys.Open(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadFailure, err)
	}
	info, err := f.Stat()
	if err != nil {
		closeAndIgnoreError(f)
		return nil, fmt.Errorf("%w: %w", ErrReadFailure, err)
	}
	if info.IsDir() {
		closeAndIgnoreError(f)
		return nil, fmt.Errorf("%w: %s is a directory", ErrReadFailure, name)
	}
	return f, nil
}

// Pick returns one of names chosen by intn, which must return a value in
// [0, n). A nil intn uses math/rand.
func Pick(names []string, intn func(n int) int) (string, error) {
	if len(names) == 0 {
		return "", ErrNoAssets
	}
	if intn == nil {
		intn = rand.Intn
	}
	return names[intn(len(names))], nil
}

// ContentType infers a media type from the file extension.
func ContentType(name string) string {
	if t := mime.TypeByExtension(strings.ToLower(path.Ext(name))); t != "" {
		return t
	}
	return "application/octet-stream"
}

func closeAndIgnoreError(f fs.File) {
	_ = f.Close()
}
