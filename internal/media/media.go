package media

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/hazolabs/storefront-backend/pkg/config"
	pkgerrors "github.com/hazolabs/storefront-backend/pkg/errors"
	"github.com/hazolabs/storefront-backend/pkg/logger"
)

var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
	".svg":  true,
}

// File describes one stored upload.
type File struct {
	Name      string    `json:"name"`
	URL       string    `json:"url"`
	Size      int64     `json:"size"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Service struct {
	cfg  config.MediaConfig
	logg *logger.Logger
	now  func() time.Time
}

func NewService(cfg config.MediaConfig, logg *logger.Logger) (*Service, error) {
	if cfg.UploadDir == "" {
		return nil, fmt.Errorf("upload dir is required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating upload dir: %w", err)
	}
	return &Service{cfg: cfg, logg: logg, now: time.Now}, nil
}

// Save stores an uploaded image under a collision-proof generated name and
// returns its public URL path.
func (s *Service) Save(ctx context.Context, header *multipart.FileHeader) (*File, error) {
	if header == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "no file provided")
	}

	maxBytes := int64(s.cfg.MaxUploadMB) * 1024 * 1024
	if maxBytes > 0 && header.Size > maxBytes {
		return nil, pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("file exceeds %d MB limit", s.cfg.MaxUploadMB))
	}

	contentType := header.Header.Get("Content-Type")
	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !strings.HasPrefix(contentType, "image/") || !imageExtensions[ext] {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "only image uploads are allowed")
	}

	src, err := header.Open()
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "open upload")
	}
	defer src.Close()

	name := s.generateName(header.Filename, ext)
	path := filepath.Join(s.cfg.UploadDir, name)

	dst, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create upload file")
	}
	defer dst.Close()

	written, err := io.Copy(dst, src)
	if err != nil {
		_ = os.Remove(path)
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "write upload")
	}

	logCtx := s.logg.WithFields(ctx, map[string]any{"file": name, "bytes": written})
	s.logg.Info(logCtx, "media uploaded")

	return &File{
		Name:      name,
		URL:       "/uploads/" + name,
		Size:      written,
		UpdatedAt: s.now(),
	}, nil
}

// List returns stored images, newest first. Non-image files in the directory
// are ignored.
func (s *Service) List(ctx context.Context) ([]File, error) {
	entries, err := os.ReadDir(s.cfg.UploadDir)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "read upload dir")
	}

	files := make([]File, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !imageExtensions[strings.ToLower(filepath.Ext(entry.Name()))] {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		files = append(files, File{
			Name:      entry.Name(),
			URL:       "/uploads/" + entry.Name(),
			Size:      info.Size(),
			UpdatedAt: info.ModTime(),
		})
	}
	sort.Slice(files, func(i, j int) bool {
		return files[i].UpdatedAt.After(files[j].UpdatedAt)
	})
	return files, nil
}

// Delete removes a stored file by bare name; path components are rejected so
// callers cannot reach outside the upload directory.
func (s *Service) Delete(ctx context.Context, name string) error {
	if name == "" || name != filepath.Base(name) || strings.HasPrefix(name, ".") {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid file name")
	}

	path := filepath.Join(s.cfg.UploadDir, name)
	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "file not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete file")
	}

	logCtx := s.logg.WithField(ctx, "file", name)
	s.logg.Info(logCtx, "media deleted")
	return nil
}

// generateName builds <timestamp>-<rand>-<sanitized base><ext>.
func (s *Service) generateName(original, ext string) string {
	base := strings.TrimSuffix(filepath.Base(original), filepath.Ext(original))
	base = sanitizeBase(base)

	buf := make([]byte, 4)
	_, _ = rand.Read(buf)

	return fmt.Sprintf("%d-%s-%s%s", s.now().UnixMilli(), hex.EncodeToString(buf), base, ext)
}

func sanitizeBase(base string) string {
	var b strings.Builder
	for _, r := range base {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	out := b.String()
	if out == "" {
		out = "file"
	}
	if len(out) > 64 {
		out = out[:64]
	}
	return out
}
