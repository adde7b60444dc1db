package framestore

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/banshee-data/sensorsim/internal/fsutil"
	"github.com/banshee-data/sensorsim/internal/playback"
)

// Writer records frames to a directory. The header is written on Close.
type Writer struct {
	fsys fsutil.FileSystem
	base string

	header Header
	count  int

	mu     sync.Mutex
	closed bool
}

// NewWriter creates the directory layout under base and starts a new
// session.
func NewWriter(fsys fsutil.FileSystem, base, sensorID string) (*Writer, error) {
	if err := fsys.MkdirAll(framesPath(base), 0755); err != nil {
		return nil, fmt.Errorf("failed to create frame directory: %w", err)
	}
	return &Writer{
		fsys: fsys,
		base: base,
		header: Header{
			Version:   Version,
			SessionID: uuid.NewString(),
			CreatedNs: time.Now().UnixNano(),
			SensorID:  sensorID,
		},
	}, nil
}

// Write appends a frame. Its Index and FilePath are ignored; frames are
// numbered in write order.
func (w *Writer) Write(f *playback.Frame) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return fmt.Errorf("writer is closed")
	}

	data, err := encodeFrame(f)
	if err != nil {
		return fmt.Errorf("failed to serialize frame: %w", err)
	}
	path := filepath.Join(framesPath(w.base), FrameFileName(w.count))
	if err := w.fsys.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write frame %d: %w", w.count, err)
	}

	if w.count == 0 {
		w.header.StartTimestamp = f.Timestamp
	}
	w.header.EndTimestamp = f.Timestamp
	w.count++
	return nil
}

// Close writes the header. Further writes fail; closing twice is a no-op.
func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return nil
	}
	w.closed = true

	w.header.TotalFrames = w.count
	data, err := json.MarshalIndent(w.header, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal header: %w", err)
	}
	if err := w.fsys.WriteFile(headerPath(w.base), data, 0644); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	return nil
}

// Path returns the base directory.
func (w *Writer) Path() string { return w.base }

// SessionID returns the session UUID written to the header.
func (w *Writer) SessionID() string { return w.header.SessionID }

// Count returns the number of frames written.
func (w *Writer) Count() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.count
}
