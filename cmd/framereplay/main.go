// Command framereplay plays back a recorded frame directory in the
// terminal, logging each frame as the cursor reaches it.
//
// Usage:
//
//	go run ./cmd/framereplay -dir <recording> [flags]
//
// Flags:
//
//	-dir       recording directory (required)
//	-config    JSON simulator config for window, interval, speed and loop
//	-speed     playback speed multiplier (overrides config)
//	-loop      wrap to the first frame at the end
//	-seek      start frame
//	-fps       display refresh rate driving the playback clock
//	-imu-plot  write an IMU plot of the whole recording to this PNG and exit
//	-version   print version and exit
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/banshee-data/sensorsim/internal/config"
	"github.com/banshee-data/sensorsim/internal/fsutil"
	"github.com/banshee-data/sensorsim/internal/playback"
	"github.com/banshee-data/sensorsim/internal/playback/framestore"
	"github.com/banshee-data/sensorsim/internal/report"
	"github.com/banshee-data/sensorsim/internal/timeutil"
	"github.com/banshee-data/sensorsim/internal/version"
)

// frameLogger prints a line per frame change.
type frameLogger struct {
	total int
	seen  []int
}

func (l *frameLogger) OnFrameChanged(f *playback.Frame) {
	l.seen = append(l.seen, f.Index)
	log.Printf("frame %d/%d t=%.3fs points=%d accel=%.2f,%.2f,%.2f gyro_z=%.3f",
		f.Index+1, l.total, f.Timestamp, f.Cloud.Len(),
		f.LinearAcceleration[0], f.LinearAcceleration[1], f.LinearAcceleration[2],
		f.AngularVelocity[2])
}

func main() {
	dir := flag.String("dir", "", "recording directory (required)")
	configPath := flag.String("config", "", "JSON simulator config")
	speed := flag.Float64("speed", 0, "playback speed multiplier")
	loop := flag.Bool("loop", false, "loop playback when reaching end")
	seek := flag.Int("seek", 0, "start frame")
	fps := flag.Int("fps", 30, "display refresh rate")
	imuPlot := flag.String("imu-plot", "", "write IMU plot PNG and exit")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(version.String("framereplay"))
		return
	}

	if *dir == "" {
		log.Fatal("Error: -dir flag is required")
	}

	cfg := config.EmptySimConfig()
	if *configPath != "" {
		var err error
		if cfg, err = config.LoadSimConfig(*configPath); err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
	}

	src, err := framestore.Open(fsutil.OSFileSystem{}, *dir)
	if err != nil {
		log.Fatalf("Failed to open recording: %v", err)
	}
	if h, ok := src.Header(); ok {
		log.Printf("Recording info: %d frames, %.2f seconds, sensor=%s session=%s",
			h.TotalFrames, h.EndTimestamp-h.StartTimestamp, h.SensorID, h.SessionID)
	}

	if *imuPlot != "" {
		if err := writeIMUPlot(src, *imuPlot); err != nil {
			log.Fatalf("Failed to write IMU plot: %v", err)
		}
		log.Printf("✓ Created: %s", *imuPlot)
		return
	}

	pcfg := playback.ConfigFromSim(cfg)
	if *speed > 0 {
		pcfg.PlaybackSpeed = *speed
	}
	pcfg.Loop = pcfg.Loop || *loop

	m, err := playback.NewManager(src, pcfg)
	if err != nil {
		log.Fatalf("Failed to start playback: %v", err)
	}

	logger := &frameLogger{total: m.TotalFrames()}
	playback.Observe(m, logger)

	if err := m.Seek(*seek); err != nil {
		log.Printf("Seek: %v", err)
	}
	m.Play()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	clock := timeutil.RealClock{}
	ticker := clock.NewTicker(time.Second / time.Duration(max(*fps, 1)))
	defer ticker.Stop()

	last := clock.Now()
	for m.IsPlaying() {
		select {
		case <-ctx.Done():
			m.Pause()
		case <-ticker.C():
			now := clock.Now()
			if err := m.Update(now.Sub(last)); err != nil {
				log.Printf("Playback: %v", err)
			}
			last = now
		}
	}

	st := m.Status()
	log.Printf("Stopped at frame %d/%d after %d frame changes", st.Index+1, st.Total, len(logger.seen))
}

func writeIMUPlot(src *framestore.Dir, path string) error {
	frames := make([]*playback.Frame, 0, src.Count())
	for i := 0; i < src.Count(); i++ {
		f, err := src.Load(i)
		if err != nil {
			log.Printf("Skipping frame %d: %v", i, err)
			continue
		}
		frames = append(frames, f)
	}
	return report.WriteIMUPlot(path, frames)
}
