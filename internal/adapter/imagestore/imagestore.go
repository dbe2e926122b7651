package imagestore

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"regexp"

	"github.com/google/uuid"
	"github.com/niksmo/fashion-store/internal/core/domain"
	"github.com/niksmo/fashion-store/internal/core/port"
)

var _ port.ImageStorage = (*FileStore)(nil)

var ErrNoDir = errors.New("upload directory is required")

var prefixRe = regexp.MustCompile(`^[a-z0-9-]+$`)

// A FileStore writes images to a local directory that is served
// under a public URL prefix.
type FileStore struct {
	dir       string
	urlPrefix string
}

// New accepts an absolute URL prefix (https://cdn.example.com/uploads)
// or a path one (/uploads).
func New(dir, urlPrefix string) (FileStore, error) {
	const op = "imagestore.New"

	if dir == "" {
		return FileStore{}, fmt.Errorf("%s: %w", op, ErrNoDir)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return FileStore{}, fmt.Errorf("%s: %w", op, err)
	}
	if urlPrefix == "" {
		urlPrefix = "/uploads"
	}
	if _, err := url.Parse(urlPrefix); err != nil {
		return FileStore{}, fmt.Errorf("%s: %w", op, err)
	}
	return FileStore{dir: dir, urlPrefix: urlPrefix}, nil
}

func (s FileStore) Dir() string {
	return s.dir
}

// SaveImage stores img under a generated name and returns its URL.
func (s FileStore) SaveImage(
	ctx context.Context, prefix string, img domain.Image,
) (string, error) {
	const op = "FileStore.SaveImage"

	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	if !prefixRe.MatchString(prefix) {
		return "", fmt.Errorf("%s: %w", op, domain.Invalid("bad image prefix %q", prefix))
	}

	name := prefix + "-" + uuid.NewString() + img.Ext()
	p := filepath.Join(s.dir, name)

	if err := os.WriteFile(p, img.Data, 0o644); err != nil {
		return "", fmt.Errorf("%s: %w: %w", op, domain.ErrPersistence, err)
	}

	u, err := url.JoinPath(s.urlPrefix, name)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	slog.Info("image stored", "op", op, "name", name, "size", len(img.Data))
	return u, nil
}
