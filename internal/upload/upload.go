package upload

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"path"
	"path/filepath"
	"strings"
	"time"
)

const PublicPrefix = "/uploads/"

var ErrNotFound = errors.New("upload not found")

type Store interface {
	Save(ctx context.Context, name string, r io.Reader, size int64, contentType string) error
	Open(ctx context.Context, name string) (io.ReadCloser, string, error)
	// Delete removes name. A missing object is not an error.
	Delete(ctx context.Context, name string) error
}

type Uploader struct {
	Store Store
	Now   func() time.Time
}

// FileName builds the stored name "{unix millis}-{base name}".
func FileName(now time.Time, original string) string {
	base := filepath.Base(strings.ReplaceAll(original, "\\", "/"))
	return fmt.Sprintf("%d-%s", now.UnixMilli(), base)
}

// PublicPath is the URL path under which a stored file is served.
func PublicPath(name string) string {
	return PublicPrefix + name
}

// ValidName reports whether name can address a stored file.
func ValidName(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	return !strings.ContainsAny(name, "/\\") && path.Base(name) == name
}

func (u *Uploader) now() time.Time {
	if u.Now != nil {
		return u.Now()
	}
	return time.Now()
}

// Save stores fh and returns its public path.
func (u *Uploader) Save(ctx context.Context, fh *multipart.FileHeader) (string, error) {
	f, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()

	name := FileName(u.now(), fh.Filename)
	if !ValidName(name) {
		return "", fmt.Errorf("invalid upload name %q", fh.Filename)
	}

	if err := u.Store.Save(ctx, name, f, fh.Size, fh.Header.Get("Content-Type")); err != nil {
		return "", fmt.Errorf("store upload: %w", err)
	}
	return PublicPath(name), nil
}

// Discard deletes the file behind a public path returned by Save.
func (u *Uploader) Discard(ctx context.Context, publicPath string) error {
	name := strings.TrimPrefix(publicPath, PublicPrefix)
	if name == publicPath || !ValidName(name) {
		return fmt.Errorf("not an upload path %q", publicPath)
	}
	return u.Store.Delete(ctx, name)
}
