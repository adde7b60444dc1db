// Command gen-frames generates a synthetic frame recording for testing
// framereplay: a ring of points seen from a platform turning at a constant
// rate.
package main

import (
	"flag"
	"log"
	"math"

	"github.com/banshee-data/sensorsim/internal/fsutil"
	"github.com/banshee-data/sensorsim/internal/geom"
	"github.com/banshee-data/sensorsim/internal/playback"
	"github.com/banshee-data/sensorsim/internal/playback/framestore"
	"github.com/banshee-data/sensorsim/internal/scene"
)

func main() {
	output := flag.String("o", "sample-frames", "output directory")
	frames := flag.Int("n", 100, "number of frames")
	points := flag.Int("points", 360, "points per frame")
	interval := flag.Float64("interval", 0.1, "seconds between frames")
	yawRate := flag.Float64("yaw-rate", 0.2, "platform yaw rate (rad/s)")
	speed := flag.Float64("speed", 2, "platform speed (m/s)")
	flag.Parse()

	w, err := framestore.NewWriter(fsutil.OSFileSystem{}, *output, "synthetic")
	if err != nil {
		log.Fatalf("Failed to create recording: %v", err)
	}

	platform := scene.NewPlatform("synthetic", geom.Identity(), *speed, *yawRate)
	ring := make([]geom.Point, *points)
	for i := range ring {
		a := 2 * math.Pi * float64(i) / float64(*points)
		ring[i] = geom.Point{X: 10 * math.Cos(a), Y: 10 * math.Sin(a), Z: 0.5 * math.Sin(3*a)}
	}
	world := geom.NewPointCloud(ring...)

	for i := 0; i < *frames; i++ {
		// Points are reported in the platform frame.
		pose := platform.Node().LocalTransform()
		back := geom.Point{X: -pose.Position.X, Y: -pose.Position.Y, Z: -pose.Position.Z}
		local := world.
			Transformed(geom.NewTransform(back, 0, 0, 0)).
			Transformed(geom.NewTransform(geom.Point{}, 0, 0, -pose.Yaw()))

		f := &playback.Frame{
			Cloud:              local,
			Timestamp:          float64(i) * *interval,
			LinearAcceleration: platform.LinearAcceleration(),
			AngularVelocity:    platform.AngularVelocity(),
		}
		if err := w.Write(f); err != nil {
			log.Fatalf("Failed to write frame %d: %v", i, err)
		}
		platform.Update(*interval)

		if (i+1)%10 == 0 {
			log.Printf("%d/%d frames", i+1, *frames)
		}
	}

	if err := w.Close(); err != nil {
		log.Fatalf("Failed to finalise recording: %v", err)
	}
	log.Printf("✓ Created: %s", *output)
}
