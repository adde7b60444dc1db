// Package framestore reads and writes recorded frame sequences as a
// directory of JSON files:
//
//	<base>/header.json              optional session metadata
//	<base>/frames/frame_000000.json one file per frame
//
// Frames are ordered by the number in their file name. Gaps are allowed;
// the n-th file found is frame n.
package framestore

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/banshee-data/sensorsim/internal/geom"
	"github.com/banshee-data/sensorsim/internal/playback"
)

// Version is written to new headers.
const Version = "1.0"

const (
	headerFile  = "header.json"
	framesDir   = "frames"
	framePrefix = "frame_"
	frameExt    = ".json"
)

// Header contains metadata about a recorded sequence.
type Header struct {
	Version        string  `json:"version"`
	SessionID      string  `json:"session_id"`
	CreatedNs      int64   `json:"created_ns"`
	SensorID       string  `json:"sensor_id"`
	TotalFrames    int     `json:"total_frames"`
	StartTimestamp float64 `json:"start_timestamp"`
	EndTimestamp   float64 `json:"end_timestamp"`
}

// fileFrame is the on-disk frame encoding.
type fileFrame struct {
	Timestamp          float64      `json:"timestamp"`
	LinearAcceleration [3]float64   `json:"linear_acceleration"`
	AngularVelocity    [3]float64   `json:"angular_velocity"`
	Points             [][3]float64 `json:"points"`
}

// FrameFileName returns the file name used for frame i.
func FrameFileName(i int) string {
	return fmt.Sprintf("%s%06d%s", framePrefix, i, frameExt)
}

// parseFrameIndex extracts the number from a frame file name.
func parseFrameIndex(name string) (int, bool) {
	if !strings.HasPrefix(name, framePrefix) || !strings.HasSuffix(name, frameExt) {
		return 0, false
	}
	n, err := strconv.Atoi(strings.TrimSuffix(strings.TrimPrefix(name, framePrefix), frameExt))
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

func encodeFrame(f *playback.Frame) ([]byte, error) {
	ff := fileFrame{
		Timestamp:          f.Timestamp,
		LinearAcceleration: f.LinearAcceleration,
		AngularVelocity:    f.AngularVelocity,
		Points:             make([][3]float64, 0, f.Cloud.Len()),
	}
	for _, p := range f.Cloud.Points() {
		ff.Points = append(ff.Points, [3]float64{p.X, p.Y, p.Z})
	}
	return json.Marshal(ff)
}

func decodeFrame(data []byte) (*playback.Frame, error) {
	var ff fileFrame
	if err := json.Unmarshal(data, &ff); err != nil {
		return nil, err
	}
	pts := make([]geom.Point, len(ff.Points))
	for i, p := range ff.Points {
		pts[i] = geom.Point{X: p[0], Y: p[1], Z: p[2]}
	}
	return &playback.Frame{
		Cloud:              geom.NewPointCloud(pts...),
		Timestamp:          ff.Timestamp,
		LinearAcceleration: ff.LinearAcceleration,
		AngularVelocity:    ff.AngularVelocity,
	}, nil
}

func headerPath(base string) string { return filepath.Join(base, headerFile) }
func framesPath(base string) string { return filepath.Join(base, framesDir) }
