package fsutil

import (
	"errors"
	"io/fs"
	"path/filepath"
	"reflect"
	"testing"
)

func TestOSFileSystem_Exists(t *testing.T) {
	fs := OSFileSystem{}

	if !fs.Exists("filesystem.go") {
		t.Error("expected filesystem.go to exist")
	}

	if fs.Exists("nonexistent_file_xyz.go") {
		t.Error("expected nonexistent file to not exist")
	}
}

func TestOSFileSystem_TempDirRoundTrip(t *testing.T) {
	osfs := OSFileSystem{}
	base := filepath.Join(t.TempDir(), "run", "frames")

	if err := osfs.MkdirAll(base, 0755); err != nil {
		t.Fatalf("MkdirAll failed: %v", err)
	}
	for _, name := range []string{"b.json", "a.json"} {
		if err := osfs.WriteFile(filepath.Join(base, name), []byte("{}"), 0644); err != nil {
			t.Fatalf("WriteFile failed: %v", err)
		}
	}

	names, err := osfs.ReadDir(base)
	if err != nil {
		t.Fatalf("ReadDir failed: %v", err)
	}
	if want := []string{"a.json", "b.json"}; !reflect.DeepEqual(names, want) {
		t.Errorf("expected %v, got %v", want, names)
	}

	data, err := osfs.ReadFile(filepath.Join(base, "a.json"))
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if string(data) != "{}" {
		t.Errorf("expected {}, got %q", data)
	}

	if err := osfs.RemoveAll(filepath.Dir(base)); err != nil {
		t.Fatalf("RemoveAll failed: %v", err)
	}
	if osfs.Exists(base) {
		t.Error("expected directory to be removed")
	}
}

func TestMemoryFileSystem_WriteAndRead(t *testing.T) {
	mfs := NewMemoryFileSystem()

	testData := []byte("hello, world")
	if err := mfs.WriteFile("/test.txt", testData, 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	data, err := mfs.ReadFile("/test.txt")
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}

	if string(data) != string(testData) {
		t.Errorf("expected %q, got %q", testData, data)
	}
}

func TestMemoryFileSystem_WriteNeedsParent(t *testing.T) {
	mfs := NewMemoryFileSystem()

	err := mfs.WriteFile("/missing/file.json", nil, 0644)
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected ErrNotExist, got %v", err)
	}

	if err := mfs.MkdirAll("/missing", 0755); err != nil {
		t.Fatalf("MkdirAll failed: %v", err)
	}
	if err := mfs.WriteFile("/missing/file.json", nil, 0644); err != nil {
		t.Fatalf("WriteFile after MkdirAll failed: %v", err)
	}
}

func TestMemoryFileSystem_ReadNonExistent(t *testing.T) {
	mfs := NewMemoryFileSystem()

	_, err := mfs.ReadFile("/nope")
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("expected ErrNotExist, got %v", err)
	}
}

func TestMemoryFileSystem_MkdirAll(t *testing.T) {
	mfs := NewMemoryFileSystem()

	if err := mfs.MkdirAll("/a/b/c", 0755); err != nil {
		t.Fatalf("MkdirAll failed: %v", err)
	}

	for _, dir := range []string{"/a", "/a/b", "/a/b/c"} {
		if !mfs.Exists(dir) {
			t.Errorf("expected %s to exist", dir)
		}
	}

	if err := mfs.WriteFile("/a/file", nil, 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	if err := mfs.MkdirAll("/a/file", 0755); !errors.Is(err, fs.ErrExist) {
		t.Errorf("expected ErrExist for file path, got %v", err)
	}
}

func TestMemoryFileSystem_ReadDir(t *testing.T) {
	mfs := NewMemoryFileSystem()
	if err := mfs.MkdirAll("/rec/frames/nested", 0755); err != nil {
		t.Fatalf("MkdirAll failed: %v", err)
	}
	for _, name := range []string{"/rec/frames/frame_000002.json", "/rec/frames/frame_000001.json", "/rec/header.json"} {
		if err := mfs.WriteFile(name, []byte("x"), 0644); err != nil {
			t.Fatalf("WriteFile %s failed: %v", name, err)
		}
	}

	tests := []struct {
		dir  string
		want []string
	}{
		{"/rec", []string{"frames", "header.json"}},
		{"/rec/frames", []string{"frame_000001.json", "frame_000002.json", "nested"}},
		{"/rec/frames/nested", nil},
	}
	for _, tt := range tests {
		t.Run(tt.dir, func(t *testing.T) {
			got, err := mfs.ReadDir(tt.dir)
			if err != nil {
				t.Fatalf("ReadDir failed: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}

	if _, err := mfs.ReadDir("/absent"); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("expected ErrNotExist, got %v", err)
	}
}

func TestMemoryFileSystem_RemoveAll(t *testing.T) {
	mfs := NewMemoryFileSystem()
	_ = mfs.MkdirAll("/dir/sub", 0755)
	_ = mfs.WriteFile("/dir/file1.txt", []byte("1"), 0644)
	_ = mfs.WriteFile("/dir/sub/file2.txt", []byte("2"), 0644)
	_ = mfs.WriteFile("/dirty.txt", []byte("keep"), 0644)

	if err := mfs.RemoveAll("/dir"); err != nil {
		t.Fatalf("RemoveAll failed: %v", err)
	}

	for _, name := range []string{"/dir", "/dir/sub", "/dir/file1.txt", "/dir/sub/file2.txt"} {
		if mfs.Exists(name) {
			t.Errorf("expected %s to be removed", name)
		}
	}
	if !mfs.Exists("/dirty.txt") {
		t.Error("expected sibling with shared prefix to survive")
	}
}

func TestMemoryFileSystem_PathCleaning(t *testing.T) {
	mfs := NewMemoryFileSystem()
	_ = mfs.MkdirAll("/a", 0755)

	if err := mfs.WriteFile("/a/../a/./file.txt", []byte("data"), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	if !mfs.Exists("/a/file.txt") {
		t.Error("expected cleaned path to exist")
	}
}

func TestMemoryFileSystem_DataIsolation(t *testing.T) {
	mfs := NewMemoryFileSystem()

	original := []byte("original")
	_ = mfs.WriteFile("/iso.txt", original, 0644)
	original[0] = 'X'

	data, _ := mfs.ReadFile("/iso.txt")
	if string(data) != "original" {
		t.Errorf("write did not copy input, got %q", data)
	}

	data[0] = 'Y'
	again, _ := mfs.ReadFile("/iso.txt")
	if string(again) != "original" {
		t.Errorf("read did not copy output, got %q", again)
	}
}

func TestFileSystemInterface(t *testing.T) {
	var _ FileSystem = OSFileSystem{}
	var _ FileSystem = NewMemoryFileSystem()
}
