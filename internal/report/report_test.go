package report

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/sensorsim/internal/geom"
	"github.com/banshee-data/sensorsim/internal/playback"
	"github.com/banshee-data/sensorsim/internal/solver"
)

var pngMagic = []byte("\x89PNG\r\n\x1a\n")

func testDetections() []solver.Detection {
	return []solver.Detection{
		{Transmitter: "tx", Receiver: "rx-a", Point: geom.Point{X: 5, Y: 1}, PathLength: 10.2},
		{Transmitter: "tx", Receiver: "rx-b", Point: geom.Point{X: 6, Y: -1}, PathLength: 12.1},
		{Transmitter: "tx", Receiver: "rx-a", Point: geom.Point{X: 5.5, Y: 1}, PathLength: 11},
	}
}

func requirePNG(t *testing.T, path string) {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Greater(t, len(data), len(pngMagic))
	assert.Equal(t, pngMagic, data[:len(pngMagic)])
}

func TestWriteScenePlot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.png")
	surface := geom.NewPointCloud(
		geom.Point{X: 0, Y: 0}, geom.Point{X: 10, Y: 0},
		geom.Point{X: 10, Y: 5}, geom.Point{X: 0, Y: 5},
	)

	require.NoError(t, WriteScenePlot(path, surface, testDetections()))
	requirePNG(t, path)
}

func TestWriteScenePlotSurfaceOnly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "surface.png")
	surface := geom.NewPointCloud(geom.Point{X: 1, Y: 2}, geom.Point{X: 3, Y: 4})

	require.NoError(t, WriteScenePlot(path, surface, nil))
	requirePNG(t, path)
}

func TestWriteScenePlotBadPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "scene.png")
	surface := geom.NewPointCloud(geom.Point{X: 1, Y: 2}, geom.Point{X: 3, Y: 4})
	assert.Error(t, WriteScenePlot(path, surface, nil))
}

func TestWriteIMUPlot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "imu.png")
	frames := make([]*playback.Frame, 10)
	for i := range frames {
		frames[i] = &playback.Frame{
			Index:              i,
			Timestamp:          float64(i) * 0.1,
			LinearAcceleration: [3]float64{0, float64(i) * 0.05, 9.81},
			AngularVelocity:    [3]float64{0, 0, 0.2},
		}
	}

	require.NoError(t, WriteIMUPlot(path, frames))
	requirePNG(t, path)
}

func TestRenderDetectionScatter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderDetectionScatter(&buf, "Car park run", testDetections()))

	html := buf.String()
	assert.Contains(t, html, "Car park run")
	assert.Contains(t, html, "tx:rx-a")
	assert.Contains(t, html, "tx:rx-b")
	assert.Contains(t, html, "3 detections, 2 pairs")
}

func TestRenderDetectionScatterEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderDetectionScatter(&buf, "Empty", nil))
	assert.Contains(t, buf.String(), "0 detections, 0 pairs")
}
