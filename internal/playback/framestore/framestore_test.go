package framestore

import (
	"errors"
	"io/fs"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"

	"github.com/banshee-data/sensorsim/internal/fsutil"
	"github.com/banshee-data/sensorsim/internal/geom"
	"github.com/banshee-data/sensorsim/internal/playback"
)

// testFrame creates a Frame with a small cloud for testing.
func testFrame(ts float64) *playback.Frame {
	return &playback.Frame{
		Cloud: geom.NewPointCloud(
			geom.Point{X: ts, Y: 1, Z: 2},
			geom.Point{X: -ts, Y: 0.5, Z: 0},
		),
		Timestamp:          ts,
		LinearAcceleration: [3]float64{0, 0.2, 9.80665},
		AngularVelocity:    [3]float64{0, 0, 0.1},
	}
}

func writeSession(t *testing.T, fsys fsutil.FileSystem, base string, timestamps ...float64) *Writer {
	t.Helper()
	w, err := NewWriter(fsys, base, "sensor-01")
	if err != nil {
		t.Fatalf("NewWriter() error = %v", err)
	}
	for _, ts := range timestamps {
		if err := w.Write(testFrame(ts)); err != nil {
			t.Fatalf("Write() error = %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	return w
}

func TestWriteThenOpen(t *testing.T) {
	fsys := fsutil.NewMemoryFileSystem()
	w := writeSession(t, fsys, "/rec", 0.0, 0.1, 0.2)

	if w.Count() != 3 {
		t.Errorf("Count() = %d, want 3", w.Count())
	}
	if _, err := uuid.Parse(w.SessionID()); err != nil {
		t.Errorf("SessionID() = %q is not a UUID: %v", w.SessionID(), err)
	}

	d, err := Open(fsys, "/rec")
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if d.Count() != 3 {
		t.Fatalf("Count() = %d, want 3", d.Count())
	}

	h, ok := d.Header()
	if !ok {
		t.Fatal("expected header")
	}
	want := Header{
		Version:        Version,
		SessionID:      w.SessionID(),
		CreatedNs:      h.CreatedNs,
		SensorID:       "sensor-01",
		TotalFrames:    3,
		StartTimestamp: 0.0,
		EndTimestamp:   0.2,
	}
	if diff := cmp.Diff(want, h); diff != "" {
		t.Errorf("Header() mismatch (-want +got):\n%s", diff)
	}

	for i, ts := range []float64{0.0, 0.1, 0.2} {
		f, err := d.Load(i)
		if err != nil {
			t.Fatalf("Load(%d) error = %v", i, err)
		}
		expected := testFrame(ts)
		expected.Index = i
		expected.FilePath = filepath.Join("/rec", "frames", FrameFileName(i))
		if diff := cmp.Diff(expected, f, cmp.AllowUnexported(geom.PointCloud{})); diff != "" {
			t.Errorf("Load(%d) mismatch (-want +got):\n%s", i, diff)
		}
	}
}

func TestOpenWithoutHeader(t *testing.T) {
	fsys := fsutil.NewMemoryFileSystem()
	w, err := NewWriter(fsys, "/rec", "s")
	if err != nil {
		t.Fatalf("NewWriter() error = %v", err)
	}
	if err := w.Write(testFrame(1)); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	d, err := Open(fsys, "/rec")
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if _, ok := d.Header(); ok {
		t.Error("expected no header before Close")
	}
	if d.Count() != 1 {
		t.Errorf("Count() = %d, want 1", d.Count())
	}
}

func TestOpenOrdersByIndexAndSkipsStrayFiles(t *testing.T) {
	fsys := fsutil.NewMemoryFileSystem()
	if err := fsys.MkdirAll("/rec/frames", 0755); err != nil {
		t.Fatal(err)
	}
	files := map[string]string{
		"frame_000010.json": `{"timestamp":10}`,
		"frame_000002.json": `{"timestamp":2}`,
		"frame_1.json":      `{"timestamp":1}`,
		"notes.txt":         "ignore me",
		"frame_abc.json":    `{}`,
	}
	for name, body := range files {
		if err := fsys.WriteFile(filepath.Join("/rec/frames", name), []byte(body), 0644); err != nil {
			t.Fatal(err)
		}
	}

	d, err := Open(fsys, "/rec")
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if d.Count() != 3 {
		t.Fatalf("Count() = %d, want 3", d.Count())
	}
	for i, want := range []float64{1, 2, 10} {
		f, err := d.Load(i)
		if err != nil {
			t.Fatalf("Load(%d) error = %v", i, err)
		}
		if f.Timestamp != want {
			t.Errorf("Load(%d).Timestamp = %v, want %v", i, f.Timestamp, want)
		}
		if !f.Cloud.Empty() {
			t.Errorf("Load(%d) expected empty cloud", i)
		}
	}
}

func TestOpenErrors(t *testing.T) {
	t.Run("missing frames dir", func(t *testing.T) {
		_, err := Open(fsutil.NewMemoryFileSystem(), "/nowhere")
		if !errors.Is(err, fs.ErrNotExist) {
			t.Errorf("Open() error = %v, want ErrNotExist", err)
		}
	})

	t.Run("bad header", func(t *testing.T) {
		fsys := fsutil.NewMemoryFileSystem()
		_ = fsys.MkdirAll("/rec/frames", 0755)
		_ = fsys.WriteFile("/rec/header.json", []byte("{not json"), 0644)
		if _, err := Open(fsys, "/rec"); err == nil {
			t.Error("expected error for malformed header")
		}
	})
}

func TestLoadErrors(t *testing.T) {
	fsys := fsutil.NewMemoryFileSystem()
	writeSession(t, fsys, "/rec", 0, 1)
	_ = fsys.WriteFile("/rec/frames/"+FrameFileName(1), []byte("garbage"), 0644)

	d, err := Open(fsys, "/rec")
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}

	if _, err := d.Load(1); err == nil {
		t.Error("expected decode error for corrupt frame")
	}
	if _, err := d.Load(2); err == nil {
		t.Error("expected error for out of range index")
	}
	if _, err := d.Load(-1); err == nil {
		t.Error("expected error for negative index")
	}

	_ = fsys.RemoveAll("/rec/frames/" + FrameFileName(0))
	if _, err := d.Load(0); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("Load(0) error = %v, want ErrNotExist", err)
	}
}

func TestWriterClosed(t *testing.T) {
	fsys := fsutil.NewMemoryFileSystem()
	w := writeSession(t, fsys, "/rec", 0)

	if err := w.Write(testFrame(1)); err == nil {
		t.Error("expected error writing after Close")
	}
	if err := w.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
}

func TestOSRoundTripFeedsManager(t *testing.T) {
	base := filepath.Join(t.TempDir(), "session")
	fsys := fsutil.OSFileSystem{}
	writeSession(t, fsys, base, 0, 0.1, 0.2, 0.3, 0.4)

	d, err := Open(fsys, base)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	m, err := playback.NewManager(d, playback.Config{WindowSize: 3})
	if err != nil {
		t.Fatalf("NewManager() error = %v", err)
	}
	if err := m.Seek(3); err != nil {
		t.Fatalf("Seek() error = %v", err)
	}
	if got := m.CurrentFrame().Timestamp; got != 0.3 {
		t.Errorf("CurrentFrame().Timestamp = %v, want 0.3", got)
	}
	if diff := cmp.Diff([]int{2, 3, 4}, m.WindowIndices()); diff != "" {
		t.Errorf("WindowIndices() mismatch (-want +got):\n%s", diff)
	}
}

func TestParseFrameIndex(t *testing.T) {
	tests := []struct {
		name string
		n    int
		ok   bool
	}{
		{"frame_000000.json", 0, true},
		{"frame_123456.json", 123456, true},
		{"frame_1234567.json", 1234567, true},
		{"frame_-1.json", 0, false},
		{"frame_.json", 0, false},
		{"frame_000001.bin", 0, false},
		{"header.json", 0, false},
	}
	for _, tt := range tests {
		n, ok := parseFrameIndex(tt.name)
		if n != tt.n || ok != tt.ok {
			t.Errorf("parseFrameIndex(%q) = %d, %v; want %d, %v", tt.name, n, ok, tt.n, tt.ok)
		}
	}
}
