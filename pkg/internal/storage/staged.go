package storage

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

var ErrFileTooLarge = errors.New("file too large")

type UploadOptions struct {
	Prefix   string
	MaxSize  int64
	MaxWidth int
	Quality  int
}

// Pending is an uploaded object not yet referenced by any record.
// Exactly one of Adopt or Discard decides its fate.
type Pending struct {
	provider Provider
	name     string
	adopted  bool
}

// Stage processes the uploaded image and saves it under a fresh name.
func Stage(ctx context.Context, provider Provider, file *multipart.FileHeader, opts UploadOptions) (*Pending, error) {
	if opts.MaxSize > 0 && file.Size > opts.MaxSize {
		return nil, fmt.Errorf("%w: limit is %d bytes", ErrFileTooLarge, opts.MaxSize)
	}

	src, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("unable to open upload: %w", err)
	}
	defer src.Close()

	data, err := ProcessImage(src, opts.MaxWidth, opts.Quality)
	if err != nil {
		return nil, err
	}

	prefix := opts.Prefix
	if len(prefix) == 0 {
		prefix = "image"
	}
	name := fmt.Sprintf("%s-%s.jpg", prefix, uuid.NewString())
	if err := provider.Save(ctx, name, data, "image/jpeg"); err != nil {
		return nil, fmt.Errorf("unable to save upload: %w", err)
	}

	return &Pending{provider: provider, name: name}, nil
}

func (v *Pending) Name() string {
	if v == nil {
		return ""
	}
	return v.name
}

func (v *Pending) URL() string {
	if v == nil {
		return ""
	}
	return v.provider.URL(v.name)
}

// Adopt marks the object as referenced so Discard leaves it in place.
func (v *Pending) Adopt() {
	if v != nil {
		v.adopted = true
	}
}

// Discard deletes the object unless it was adopted. Failures are only logged.
func (v *Pending) Discard(ctx context.Context) {
	if v == nil || v.adopted {
		return
	}
	if err := v.provider.Delete(ctx, v.name); err != nil {
		log.Warn().Err(err).Str("name", v.name).Msg("Unable to discard staged upload...")
	}
}

// DeleteRefs removes every object behind refs that provider owns. Failures are only logged.
func DeleteRefs(ctx context.Context, provider Provider, refs ...string) {
	for _, ref := range refs {
		name, ok := provider.Owns(ref)
		if !ok {
			continue
		}
		if err := provider.Delete(ctx, name); err != nil {
			log.Warn().Err(err).Str("name", name).Msg("Unable to delete uploaded file...")
		}
	}
}
