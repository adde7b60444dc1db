// Package playback streams a recorded frame sequence with play, pause, seek
// and step controls, keeping a small window of frames resident around the
// cursor.
package playback

import (
	"errors"
	"fmt"

	"github.com/banshee-data/sensorsim/internal/geom"
)

var (
	// ErrFrameLoad wraps any failure to load a frame from its source.
	ErrFrameLoad = errors.New("playback: frame load failed")
	// ErrNoFrames is returned when a source has nothing to play.
	ErrNoFrames = errors.New("playback: source has no frames")
)

// Frame is one recorded sample.
type Frame struct {
	Index              int
	Cloud              geom.PointCloud
	Timestamp          float64 // seconds
	LinearAcceleration [3]float64
	AngularVelocity    [3]float64
	FilePath           string
}

// FrameSource loads frames by sequential index.
type FrameSource interface {
	// Count returns the number of frames available.
	Count() int
	// Load reads frame i, 0 <= i < Count().
	Load(i int) (*Frame, error)
}

// FrameObserver is told about every cursor change.
type FrameObserver interface {
	OnFrameChanged(f *Frame)
}

// SliceSource serves frames held in memory. Load returns a copy so the
// manager never mutates the caller's frames.
type SliceSource []*Frame

// Count returns len(s).
func (s SliceSource) Count() int { return len(s) }

// Load returns a copy of frame i.
func (s SliceSource) Load(i int) (*Frame, error) {
	if i < 0 || i >= len(s) || s[i] == nil {
		return nil, fmt.Errorf("no frame at index %d", i)
	}
	f := *s[i]
	return &f, nil
}
