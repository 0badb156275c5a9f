package files

import (
	"encoding/hex"
	"errors"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// ImageRoutePrefix is the public path uploaded images are served from.
const ImageRoutePrefix = "/book/images/"

// DefaultExtensions is the upload allow-list used when none is configured.
var DefaultExtensions = []string{".png", ".jpg", ".jpeg", ".gif", ".webp"}

var (
	ErrMissingFile          = errors.New("no file provided")
	ErrExtensionNotAllowed  = errors.New("file extension not allowed")
	ErrInvalidImageFilename = errors.New("invalid image filename")
)

// Store saves uploads under a fixed directory with collision-free
// generated names.
type Store struct {
	dir     string
	allowed map[string]struct{}
}

func NewStore(dir string, extensions []string) *Store {
	if len(extensions) == 0 {
		extensions = DefaultExtensions
	}
	allowed := make(map[string]struct{}, len(extensions))
	for _, ext := range extensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		allowed[ext] = struct{}{}
	}
	return &Store{dir: dir, allowed: allowed}
}

// Allowed reports whether the filename carries a permitted extension.
func (s *Store) Allowed(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		return false
	}
	_, ok := s.allowed[ext]
	return ok
}

// Save persists an uploaded file under a generated unique name and
// returns the public access path. Nothing is written for disallowed
// extensions.
func (s *Store) Save(fh *multipart.FileHeader) (string, error) {
	if fh == nil {
		return "", ErrMissingFile
	}
	if !s.Allowed(fh.Filename) {
		return "", ErrExtensionNotAllowed
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", err
	}

	id := uuid.New()
	name := hex.EncodeToString(id[:]) + strings.ToLower(filepath.Ext(fh.Filename))

	src, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	dst, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(dst.Name())
		return "", err
	}
	return ImageRoutePrefix + name, nil
}

// Path resolves a stored image name to its on-disk location. Names
// with path separators are rejected to keep requests inside the
// uploads directory.
func (s *Store) Path(name string) (string, error) {
	if name == "" || name != filepath.Base(name) {
		return "", ErrInvalidImageFilename
	}
	p := filepath.Join(s.dir, name)
	if _, err := os.Stat(p); err != nil {
		return "", err
	}
	return p, nil
}
