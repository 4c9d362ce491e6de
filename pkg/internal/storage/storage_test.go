package storage

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"mime/multipart"
	"strings"
	"testing"
)

func newLocal(t *testing.T) *LocalProvider {
	t.Helper()
	provider, err := NewLocalProvider(t.TempDir(), "http://localhost:5000/uploads")
	if err != nil {
		t.Fatalf("new local provider: %v", err)
	}
	return provider
}

func encodePNG(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		img.Set(x, 0, color.RGBA{R: 200, A: 255})
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func fileHeader(t *testing.T, filename string, data []byte) *multipart.FileHeader {
	t.Helper()
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("image", filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	part.Write(data)
	writer.Close()

	form, err := multipart.NewReader(&body, writer.Boundary()).ReadForm(32 << 20)
	if err != nil {
		t.Fatalf("read form: %v", err)
	}
	return form.File["image"][0]
}

func TestLocalProviderLifecycle(t *testing.T) {
	ctx := context.Background()
	provider := newLocal(t)

	if err := provider.Save(ctx, "a.jpg", []byte("x"), "image/jpeg"); err != nil {
		t.Fatalf("save: %v", err)
	}
	objects, err := provider.List(ctx)
	if err != nil || len(objects) != 1 || objects[0].Name != "a.jpg" {
		t.Fatalf("list = %v, %v", objects, err)
	}
	if err := provider.Delete(ctx, "a.jpg"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := provider.Delete(ctx, "a.jpg"); err != nil {
		t.Fatalf("deleting a missing file should be a no-op: %v", err)
	}
	if err := provider.Save(ctx, "../escape.jpg", []byte("x"), "image/jpeg"); err == nil {
		t.Fatal("expected path traversal to be rejected")
	}
}

func TestOwns(t *testing.T) {
	provider := newLocal(t)

	cases := []struct {
		ref  string
		name string
		ok   bool
	}{
		{"profile-1.jpg", "profile-1.jpg", true},
		{"http://localhost:5000/uploads/blog-2.jpg", "blog-2.jpg", true},
		{"https://images.unsplash.com/photo.jpg", "", false},
		{"http://localhost:5000/uploads/../settings.toml", "", false},
		{"data:image/png;base64,AAAA", "", false},
		{"", "", false},
	}
	for _, c := range cases {
		name, ok := provider.Owns(c.ref)
		if name != c.name || ok != c.ok {
			t.Errorf("Owns(%q) = %q, %v; want %q, %v", c.ref, name, ok, c.name, c.ok)
		}
	}
}

func TestProcessImageResizes(t *testing.T) {
	data, err := ProcessImage(bytes.NewReader(encodePNG(t, 1600, 400)), 800, 80)
	if err != nil {
		t.Fatalf("process: %v", err)
	}
	img, err := jpeg.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode result: %v", err)
	}
	if w, h := img.Bounds().Dx(), img.Bounds().Dy(); w != 800 || h != 200 {
		t.Fatalf("size = %dx%d, want 800x200", w, h)
	}
}

func TestProcessImageRejectsNonImages(t *testing.T) {
	if _, err := ProcessImage(strings.NewReader("not an image"), 800, 80); err == nil {
		t.Fatal("expected an error")
	}
}

func TestStageDiscardAndAdopt(t *testing.T) {
	ctx := context.Background()
	provider := newLocal(t)
	opts := UploadOptions{Prefix: "profile", MaxSize: 5 << 20}

	discarded, err := Stage(ctx, provider, fileHeader(t, "a.png", encodePNG(t, 10, 10)), opts)
	if err != nil {
		t.Fatalf("stage: %v", err)
	}
	if !strings.HasPrefix(discarded.Name(), "profile-") || !strings.HasSuffix(discarded.Name(), ".jpg") {
		t.Fatalf("unexpected name %q", discarded.Name())
	}
	discarded.Discard(ctx)

	adopted, err := Stage(ctx, provider, fileHeader(t, "b.png", encodePNG(t, 10, 10)), opts)
	if err != nil {
		t.Fatalf("stage: %v", err)
	}
	adopted.Adopt()
	adopted.Discard(ctx)

	objects, _ := provider.List(ctx)
	if len(objects) != 1 || objects[0].Name != adopted.Name() {
		t.Fatalf("objects = %v, want only %s", objects, adopted.Name())
	}

	var nothing *Pending
	nothing.Discard(ctx)
	if nothing.Name() != "" {
		t.Fatal("nil pending should have no name")
	}
}

func TestStageRejectsLargeFiles(t *testing.T) {
	provider := newLocal(t)
	_, err := Stage(context.Background(), provider, fileHeader(t, "a.png", encodePNG(t, 10, 10)), UploadOptions{MaxSize: 10})
	if err == nil {
		t.Fatal("expected file too large")
	}
}
