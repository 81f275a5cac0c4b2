package file

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// LocalSource stores uploaded files under BaseDir and opens them for import.
type LocalSource struct {
	BaseDir string
}

func NewLocalSource(baseDir string) *LocalSource {
	if baseDir == "" {
		baseDir = "."
	}
	return &LocalSource{BaseDir: baseDir}
}

func (s *LocalSource) Open(ctx context.Context, sourcePath string) (io.ReadCloser, error) {
	_ = ctx

	path := s.resolve(sourcePath)

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file %s: %w", path, err)
	}
	return file, nil
}

// Save writes r to BaseDir/name and returns the path to hand to Open. The file
// only appears under its final name once fully written. An existing file is
// never replaced: Save fails with an error wrapping os.ErrExist instead.
func (s *LocalSource) Save(ctx context.Context, name string, r io.Reader, size int64) (string, error) {
	_ = ctx
	_ = size

	name = filepath.Base(name)
	if name == "." || name == string(filepath.Separator) {
		return "", fmt.Errorf("invalid file name %q", name)
	}

	if err := os.MkdirAll(s.BaseDir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}

	tmp, err := os.CreateTemp(s.BaseDir, ".upload-*")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, r); err != nil {
		_ = tmp.Close()
		return "", fmt.Errorf("write upload: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return "", fmt.Errorf("sync upload: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("close upload: %w", err)
	}

	path := filepath.Join(s.BaseDir, name)
	if err := os.Link(tmp.Name(), path); err != nil {
		return "", fmt.Errorf("store upload: %w", err)
	}

	return path, nil
}

// Remove deletes a file previously returned by Save.
func (s *LocalSource) Remove(ctx context.Context, sourcePath string) error {
	_ = ctx

	path := s.resolve(sourcePath)
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove file %s: %w", path, err)
	}
	return nil
}

func (s *LocalSource) resolve(sourcePath string) string {
	if filepath.IsAbs(sourcePath) {
		return sourcePath
	}
	if rel, err := filepath.Rel(s.BaseDir, sourcePath); err == nil && filepath.IsLocal(rel) {
		return sourcePath
	}
	return filepath.Join(s.BaseDir, sourcePath)
}
