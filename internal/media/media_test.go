package media

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/hazolabs/storefront-backend/pkg/config"
	pkgerrors "github.com/hazolabs/storefront-backend/pkg/errors"
	"github.com/hazolabs/storefront-backend/pkg/logger"
)

func newService(t *testing.T) (*Service, string) {
	t.Helper()
	dir := t.TempDir()
	logg := logger.New(logger.Options{ServiceName: "media-test", Output: io.Discard})
	svc, err := NewService(config.MediaConfig{UploadDir: dir, MaxUploadMB: 5}, logg)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc, dir
}

// uploadHeader builds a real multipart.FileHeader the way the router would
// hand it to the controller.
func uploadHeader(t *testing.T, filename, contentType string, content []byte) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreatePart(map[string][]string{
		"Content-Disposition": {`form-data; name="image"; filename="` + filename + `"`},
		"Content-Type":        {contentType},
	})
	if err != nil {
		t.Fatalf("create part: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("write part: %v", err)
	}
	_ = writer.Close()

	req := httptest.NewRequest(http.MethodPost, "/upload", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if err := req.ParseMultipartForm(32 << 20); err != nil {
		t.Fatalf("parse form: %v", err)
	}
	return req.MultipartForm.File["image"][0]
}

func TestSaveStoresImageWithGeneratedName(t *testing.T) {
	svc, dir := newService(t)

	file, err := svc.Save(context.Background(), uploadHeader(t, "hero shot.png", "image/png", []byte("png-bytes")))
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	if !strings.HasSuffix(file.Name, ".png") {
		t.Fatalf("expected png extension, got %q", file.Name)
	}
	if strings.Contains(file.Name, " ") {
		t.Fatalf("name must be sanitized, got %q", file.Name)
	}
	if !strings.HasPrefix(file.URL, "/uploads/") {
		t.Fatalf("unexpected url %q", file.URL)
	}

	data, err := os.ReadFile(filepath.Join(dir, file.Name))
	if err != nil {
		t.Fatalf("read stored file: %v", err)
	}
	if string(data) != "png-bytes" {
		t.Fatalf("stored content mismatch: %q", data)
	}
}

func TestSaveGeneratesUniqueNames(t *testing.T) {
	svc, _ := newService(t)

	first, err := svc.Save(context.Background(), uploadHeader(t, "a.png", "image/png", []byte("one")))
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	second, err := svc.Save(context.Background(), uploadHeader(t, "a.png", "image/png", []byte("two")))
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if first.Name == second.Name {
		t.Fatalf("expected distinct names, both %q", first.Name)
	}
}

func TestSaveRejectsNonImages(t *testing.T) {
	svc, _ := newService(t)

	cases := map[string]*multipart.FileHeader{
		"wrong content type": uploadHeader(t, "a.png", "application/pdf", []byte("x")),
		"wrong extension":    uploadHeader(t, "a.exe", "image/png", []byte("x")),
	}
	for name, header := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := svc.Save(context.Background(), header)
			typed := pkgerrors.As(err)
			if typed == nil || typed.Code() != pkgerrors.CodeValidation {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}

func TestSaveEnforcesSizeLimit(t *testing.T) {
	dir := t.TempDir()
	logg := logger.New(logger.Options{ServiceName: "media-test", Output: io.Discard})
	svc, err := NewService(config.MediaConfig{UploadDir: dir, MaxUploadMB: 1}, logg)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	big := bytes.Repeat([]byte("x"), 1024*1024+1)
	_, err = svc.Save(context.Background(), uploadHeader(t, "big.png", "image/png", big))
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for oversized file, got %v", err)
	}
}

func TestListReturnsImagesNewestFirst(t *testing.T) {
	svc, dir := newService(t)

	if err := os.WriteFile(filepath.Join(dir, "old.png"), []byte("old"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	past := time.Now().Add(-time.Hour)
	if err := os.Chtimes(filepath.Join(dir, "old.png"), past, past); err != nil {
		t.Fatalf("chtimes: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "new.jpg"), []byte("new"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	// non-image files are ignored
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("skip"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	files, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(files) != 2 || files[0].Name != "new.jpg" || files[1].Name != "old.png" {
		t.Fatalf("unexpected listing %+v", files)
	}
}

func TestDeleteRejectsPathTraversal(t *testing.T) {
	svc, dir := newService(t)
	if err := os.WriteFile(filepath.Join(dir, "keep.png"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	for _, name := range []string{"../keep.png", "a/b.png", ".hidden", ""} {
		err := svc.Delete(context.Background(), name)
		typed := pkgerrors.As(err)
		if typed == nil || typed.Code() != pkgerrors.CodeValidation {
			t.Fatalf("expected validation error for %q, got %v", name, err)
		}
	}

	if err := svc.Delete(context.Background(), "keep.png"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	err := svc.Delete(context.Background(), "keep.png")
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}
