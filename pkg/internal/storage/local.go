package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

type LocalProvider struct {
	dir       string
	publicURL string
}

func NewLocalProvider(dir, publicURL string) (*LocalProvider, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("unable to create upload directory: %w", err)
	}
	return &LocalProvider{dir: dir, publicURL: publicURL}, nil
}

func (v *LocalProvider) Dir() string {
	return v.dir
}

func (v *LocalProvider) Save(ctx context.Context, name string, data []byte, contentType string) error {
	if err := checkName(name); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(v.dir, name), data, 0o644)
}

func (v *LocalProvider) Delete(ctx context.Context, name string) error {
	if err := checkName(name); err != nil {
		return err
	}
	if err := os.Remove(filepath.Join(v.dir, name)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

func (v *LocalProvider) List(ctx context.Context) ([]Object, error) {
	entries, err := os.ReadDir(v.dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []Object{}, nil
		}
		return nil, err
	}

	objects := make([]Object, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || checkName(entry.Name()) != nil {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		objects = append(objects, Object{Name: entry.Name(), ModifiedAt: info.ModTime()})
	}
	return objects, nil
}

func (v *LocalProvider) URL(name string) string {
	return joinURL(v.publicURL, name)
}

func (v *LocalProvider) Owns(ref string) (string, bool) {
	return ownsRef(v.publicURL, ref)
}
