package storage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/gosimple/slug"
	"github.com/warungkita/pos/internal/clock"
	"github.com/warungkita/pos/internal/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Provide(New)

// Store persists uploaded images and exported documents on local disk.
// Paths handed out are relative to the storage root; URL turns them into
// retrievable locations served under /storage.
type Store struct {
	root      string
	uploadDir string
	exportDir string
	baseURL   string
	clock     clock.Clock
	log       *zap.Logger
}

type Params struct {
	fx.In

	Cfg   config.Config
	Clock clock.Clock
	Log   *zap.Logger
}

func New(p Params) *Store {
	return &Store{
		root:      p.Cfg.StorageDir,
		uploadDir: p.Cfg.UploadDir,
		exportDir: p.Cfg.ExportDir,
		baseURL:   p.Cfg.PublicBaseURL,
		clock:     p.Clock,
		log:       p.Log.Named("storage"),
	}
}

// Root returns the storage root directory.
func (s *Store) Root() string {
	return s.root
}

// SaveUpload writes an uploaded file under the upload directory with a
// slugged, timestamped name and returns the path relative to the root.
func (s *Store) SaveUpload(file *multipart.FileHeader) (string, error) {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	base := strings.TrimSuffix(filepath.Base(file.Filename), filepath.Ext(file.Filename))
	name := fmt.Sprintf("%s_%d%s", slug.Make(base), s.clock.Now().Unix(), ext)

	dir := filepath.Join(s.root, s.uploadDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("write upload: %w", err)
	}

	return filepath.ToSlash(filepath.Join(s.uploadDir, name)), nil
}

// WriteExport writes an exported document under the export directory,
// creating it on first use, and returns the path relative to the root.
func (s *Store) WriteExport(name string, data []byte) (string, error) {
	dir := filepath.Join(s.root, s.exportDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write export: %w", err)
	}

	return filepath.ToSlash(filepath.Join(s.exportDir, name)), nil
}

// Remove deletes a stored file. Missing files are not an error.
func (s *Store) Remove(rel string) error {
	if strings.TrimSpace(rel) == "" {
		return nil
	}
	err := os.Remove(filepath.Join(s.root, filepath.FromSlash(rel)))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// URL returns the public location of a stored file.
func (s *Store) URL(rel string) string {
	return s.baseURL + "/storage/" + strings.TrimLeft(filepath.ToSlash(rel), "/")
}
