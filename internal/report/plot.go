// Package report renders simulation and playback output as static PNG plots
// and interactive HTML charts.
package report

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/banshee-data/sensorsim/internal/geom"
	"github.com/banshee-data/sensorsim/internal/playback"
	"github.com/banshee-data/sensorsim/internal/solver"
)

var (
	surfaceColor   = color.RGBA{R: 160, G: 160, B: 160, A: 255}
	detectionColor = color.RGBA{R: 220, G: 40, B: 40, A: 255}
	accelColor     = color.RGBA{R: 31, G: 119, B: 180, A: 255}
	gyroColor      = color.RGBA{R: 255, G: 127, B: 14, A: 255}
)

// WriteScenePlot saves a top-down (X/Y) view of the scene surface with the
// detections overlaid. The format follows the file extension.
func WriteScenePlot(path string, surface geom.PointCloud, detections []solver.Detection) error {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("Scene - %d surface points, %d detections", surface.Len(), len(detections))
	p.X.Label.Text = "X (m)"
	p.Y.Label.Text = "Y (m)"

	if !surface.Empty() {
		pts := make(plotter.XYs, 0, surface.Len())
		for _, pt := range surface.Points() {
			pts = append(pts, plotter.XY{X: pt.X, Y: pt.Y})
		}
		s, err := plotter.NewScatter(pts)
		if err != nil {
			return fmt.Errorf("surface scatter: %w", err)
		}
		s.GlyphStyle.Color = surfaceColor
		s.GlyphStyle.Radius = vg.Points(1)
		s.GlyphStyle.Shape = draw.CircleGlyph{}
		p.Add(s)
		p.Legend.Add("surface", s)
	}

	if len(detections) > 0 {
		pts := make(plotter.XYs, len(detections))
		for i, d := range detections {
			pts[i] = plotter.XY{X: d.Point.X, Y: d.Point.Y}
		}
		s, err := plotter.NewScatter(pts)
		if err != nil {
			return fmt.Errorf("detection scatter: %w", err)
		}
		s.GlyphStyle.Color = detectionColor
		s.GlyphStyle.Radius = vg.Points(4)
		s.GlyphStyle.Shape = draw.CrossGlyph{}
		p.Add(s)
		p.Legend.Add("detections", s)
	}

	p.Legend.Top = true
	p.Legend.Left = false

	if err := p.Save(8*vg.Inch, 8*vg.Inch, path); err != nil {
		return fmt.Errorf("failed to save scene plot: %w", err)
	}
	return nil
}

// WriteIMUPlot saves the lateral acceleration and yaw rate of a frame
// sequence against frame timestamp.
func WriteIMUPlot(path string, frames []*playback.Frame) error {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("IMU - %d frames", len(frames))
	p.X.Label.Text = "Time (s)"
	p.Y.Label.Text = "Accel (m/s/s), yaw rate (rad/s)"

	if len(frames) > 0 {
		accel := make(plotter.XYs, len(frames))
		gyro := make(plotter.XYs, len(frames))
		for i, f := range frames {
			accel[i] = plotter.XY{X: f.Timestamp, Y: f.LinearAcceleration[1]}
			gyro[i] = plotter.XY{X: f.Timestamp, Y: f.AngularVelocity[2]}
		}

		accelLine, err := plotter.NewLine(accel)
		if err != nil {
			return fmt.Errorf("acceleration line: %w", err)
		}
		accelLine.Color = accelColor
		accelLine.Width = vg.Points(1)
		p.Add(accelLine)
		p.Legend.Add("accel Y", accelLine)

		gyroLine, err := plotter.NewLine(gyro)
		if err != nil {
			return fmt.Errorf("yaw rate line: %w", err)
		}
		gyroLine.Color = gyroColor
		gyroLine.Width = vg.Points(1)
		p.Add(gyroLine)
		p.Legend.Add("yaw rate", gyroLine)
	}

	p.Legend.Top = true
	p.Legend.Left = false

	if err := p.Save(14*vg.Inch, 6*vg.Inch, path); err != nil {
		return fmt.Errorf("failed to save IMU plot: %w", err)
	}
	return nil
}
