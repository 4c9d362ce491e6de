package storage

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/alpixn/site/pkg/internal/config"
)

var ErrInvalidName = errors.New("invalid object name")

type Object struct {
	Name       string
	ModifiedAt time.Time
}

// Provider stores uploaded files under flat names and exposes them by public URL.
type Provider interface {
	Save(ctx context.Context, name string, data []byte, contentType string) error
	Delete(ctx context.Context, name string) error
	List(ctx context.Context) ([]Object, error)
	URL(name string) string
	// Owns resolves a stored reference (a bare name or one of this provider's
	// public URLs) back to the object name.
	Owns(ref string) (string, bool)
}

func NewProvider(ctx context.Context, cfg config.Storage) (Provider, error) {
	switch cfg.Driver {
	case "", "local":
		return NewLocalProvider(cfg.Dir, cfg.PublicURL)
	case "s3":
		return NewS3Provider(ctx, cfg.S3, cfg.PublicURL)
	default:
		return nil, fmt.Errorf("unsupported storage driver %q", cfg.Driver)
	}
}

func checkName(name string) error {
	if len(name) == 0 || name != path.Base(name) || strings.ContainsAny(name, `/\`) || strings.HasPrefix(name, ".") {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}

func joinURL(base, name string) string {
	return strings.TrimSuffix(base, "/") + "/" + name
}

func ownsRef(publicURL, ref string) (string, bool) {
	ref = strings.TrimSpace(ref)
	if len(ref) == 0 {
		return "", false
	}
	if checkName(ref) == nil && !strings.Contains(ref, ":") {
		return ref, true
	}
	if len(publicURL) == 0 {
		return "", false
	}

	prefix := strings.TrimSuffix(publicURL, "/") + "/"
	if !strings.HasPrefix(ref, prefix) {
		return "", false
	}
	name := strings.TrimPrefix(ref, prefix)
	if checkName(name) != nil {
		return "", false
	}
	return name, true
}
