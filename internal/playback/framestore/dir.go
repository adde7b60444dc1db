package framestore

import (
	"encoding/json"
	"fmt"
	"log"
	"path/filepath"
	"sort"

	"github.com/banshee-data/sensorsim/internal/fsutil"
	"github.com/banshee-data/sensorsim/internal/playback"
)

// Dir is a recorded sequence opened for reading. It implements
// playback.FrameSource.
type Dir struct {
	fsys   fsutil.FileSystem
	base   string
	header *Header
	files  []string // frame paths in index order
}

var _ playback.FrameSource = (*Dir)(nil)

// Open discovers the frames under base. The header is optional, but if
// present it must parse.
func Open(fsys fsutil.FileSystem, base string) (*Dir, error) {
	names, err := fsys.ReadDir(framesPath(base))
	if err != nil {
		return nil, fmt.Errorf("failed to list frames: %w", err)
	}

	type entry struct {
		n    int
		name string
	}
	var entries []entry
	for _, name := range names {
		if n, ok := parseFrameIndex(name); ok {
			entries = append(entries, entry{n, name})
		}
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].n < entries[j].n })

	d := &Dir{fsys: fsys, base: base, files: make([]string, len(entries))}
	for i, e := range entries {
		d.files[i] = filepath.Join(framesPath(base), e.name)
	}

	if fsys.Exists(headerPath(base)) {
		data, err := fsys.ReadFile(headerPath(base))
		if err != nil {
			return nil, fmt.Errorf("failed to read header: %w", err)
		}
		var h Header
		if err := json.Unmarshal(data, &h); err != nil {
			return nil, fmt.Errorf("failed to parse header: %w", err)
		}
		if h.TotalFrames != len(d.files) {
			log.Printf("[framestore] %s: header lists %d frames, found %d", base, h.TotalFrames, len(d.files))
		}
		d.header = &h
	}

	return d, nil
}

// Path returns the base directory.
func (d *Dir) Path() string { return d.base }

// Header returns the session header, and false if there was none.
func (d *Dir) Header() (Header, bool) {
	if d.header == nil {
		return Header{}, false
	}
	return *d.header, true
}

// Count returns the number of frame files found.
func (d *Dir) Count() int { return len(d.files) }

// Load reads and decodes frame i.
func (d *Dir) Load(i int) (*playback.Frame, error) {
	if i < 0 || i >= len(d.files) {
		return nil, fmt.Errorf("frame index out of range: %d not in [0,%d)", i, len(d.files))
	}
	path := d.files[i]
	data, err := d.fsys.ReadFile(path)
	if err != nil {
		return nil, err
	}
	f, err := decodeFrame(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", filepath.Base(path), err)
	}
	f.Index = i
	f.FilePath = path
	return f, nil
}
