package blurmate

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestMemorySink(t *testing.T) {
	var s MemorySink
	if s.Last() != nil || s.Len() != 0 {
		t.Fatal("new MemorySink is not empty")
	}

	a, b := testImage(2, 2), testImage(3, 3)
	_ = s.Save(context.Background(), a)
	_ = s.Save(context.Background(), b)

	if s.Len() != 2 || s.Last() != b {
		t.Errorf("Len() = %d, Last() = %p; want 2, %p", s.Len(), s.Last(), b)
	}
	imgs := s.Images()
	imgs[0] = nil
	if s.Images()[0] != a {
		t.Error("Images() returned internal storage")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := s.Save(ctx, a); !errors.Is(err, context.Canceled) {
		t.Errorf("Save(cancelled) = %v, want context.Canceled", err)
	}
}

func TestFileSinkPath(t *testing.T) {
	tests := []struct {
		sink FileSink
		id   string
		want string
	}{
		{FileSink{Dir: "out"}, "abc", filepath.Join("out", "blurmate-abc.png")},
		{FileSink{Dir: "out", Prefix: "edit", Format: "jpeg"}, "abc", filepath.Join("out", "edit-abc.jpg")},
		{FileSink{Dir: "out", Format: ".JPG"}, "", filepath.Join("out", "blurmate-untitled.jpg")},
	}
	for _, tt := range tests {
		got, err := tt.sink.Path(tt.id)
		if err != nil {
			t.Fatalf("Path(%q) = %v", tt.id, err)
		}
		if got != tt.want {
			t.Errorf("Path(%q) = %q, want %q", tt.id, got, tt.want)
		}
	}

	bad := FileSink{Dir: "out", Format: "gif"}
	if _, err := bad.Path("x"); err == nil {
		t.Error("Path() with gif format: want error")
	}
}

func TestFileSinkSave(t *testing.T) {
	dir := t.TempDir()
	sink := &FileSink{Dir: dir}
	img := testImage(24, 12)

	ctx := withSessionID(context.Background(), "s1")
	if err := sink.Save(ctx, img); err != nil {
		t.Fatalf("Save() = %v", err)
	}

	got, err := LoadImage(filepath.Join(dir, "blurmate-s1.png"))
	if err != nil {
		t.Fatalf("LoadImage() = %v", err)
	}
	if got.Width() != 24 || got.Height() != 12 {
		t.Errorf("saved image is %dx%d, want 24x12", got.Width(), got.Height())
	}
	if got.At(8, 0) != img.At(8, 0) {
		t.Errorf("pixel (8, 0) = %v, want %v", got.At(8, 0), img.At(8, 0))
	}
}

func TestFileSinkMissingDir(t *testing.T) {
	sink := &FileSink{Dir: filepath.Join(t.TempDir(), "missing")}
	err := sink.Save(context.Background(), testImage(2, 2))
	if err == nil {
		t.Fatal("Save() into a missing directory succeeded")
	}
	if KindOf(classifySinkError(err)) != KindPersistenceFailed {
		t.Errorf("kind = %v, want persistence-failed", KindOf(classifySinkError(err)))
	}
}

func TestFileSinkPermissionDenied(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("root ignores directory permissions")
	}
	dir := t.TempDir()
	if err := os.Chmod(dir, 0o500); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chmod(dir, 0o700) })

	err := (&FileSink{Dir: dir}).Save(context.Background(), testImage(2, 2))
	if !errors.Is(err, ErrPermissionDenied) {
		t.Errorf("Save() = %v, want ErrPermissionDenied", err)
	}
}

func TestSessionIDFromContext(t *testing.T) {
	if _, ok := SessionID(context.Background()); ok {
		t.Error("SessionID() on a bare context reports ok")
	}
	if id, ok := SessionID(withSessionID(context.Background(), "x")); !ok || id != "x" {
		t.Errorf("SessionID() = %q, %v", id, ok)
	}
}
