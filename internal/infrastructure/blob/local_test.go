package blob

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestLocalSave(t *testing.T) {
	root := t.TempDir()
	s, err := NewLocal(root)
	if err != nil {
		t.Fatalf("NewLocal: %v", err)
	}

	key, err := s.Save(context.Background(), 7, bytes.NewReader([]byte("jpegbytes")), "passport photo.jpg")
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if key != "7_passport_photo.jpg" {
		t.Fatalf("key = %q", key)
	}
	got, err := os.ReadFile(filepath.Join(root, key))
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(got) != "jpegbytes" {
		t.Fatalf("content = %q", got)
	}
}

func TestLocalSave_CancelledContext(t *testing.T) {
	s, err := NewLocal(t.TempDir())
	if err != nil {
		t.Fatalf("NewLocal: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := s.Save(ctx, 1, bytes.NewReader(nil), "x.jpg"); err == nil {
		t.Fatal("want error for cancelled context")
	}
}

func TestLocalRemove(t *testing.T) {
	root := t.TempDir()
	s, err := NewLocal(root)
	if err != nil {
		t.Fatalf("NewLocal: %v", err)
	}
	key, err := s.Save(context.Background(), 3, bytes.NewReader([]byte("jpegbytes")), "photo.jpg")
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	if err := s.Remove(context.Background(), key); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if _, err := os.Stat(filepath.Join(root, key)); !os.IsNotExist(err) {
		t.Fatalf("file still present: %v", err)
	}
	// removing an absent key is a no-op
	if err := s.Remove(context.Background(), key); err != nil {
		t.Fatalf("Remove absent: %v", err)
	}
	// keys never climb out of the root
	if err := s.Remove(context.Background(), "../outside.txt"); err != nil {
		t.Fatalf("Remove traversal key: %v", err)
	}
}

func TestSanitizeName(t *testing.T) {
	cases := map[string]string{
		"photo.jpg":           "photo.jpg",
		"../../etc/passwd":    "passwd",
		`..\..\win\shell.exe`: "shell.exe",
		"my photo (1).png":    "my_photo__1_.png",
		"   ":                 "photo",
		"...":                 "photo",
	}
	for in, want := range cases {
		if got := sanitizeName(in); got != want {
			t.Errorf("sanitizeName(%q) = %q, want %q", in, got, want)
		}
	}
}
