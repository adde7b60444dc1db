// Command sensorsim runs a scene simulation and writes its detections.
//
// Usage:
//
//	go run ./cmd/sensorsim -scene config/scene.example.yaml [flags]
//
// Flags:
//
//	-config    JSON simulator config (default: built-in defaults)
//	-scene     YAML scene description (required)
//	-ticks     number of ticks to simulate (default: 200)
//	-realtime  pace ticks with the wall clock instead of running flat out
//	-db        SQLite file to log detections to
//	-record    directory to record detection frames into
//	-plot      PNG path for a top-down scene plot
//	-html      HTML path for an interactive detection scatter
//	-units     speed units for log output (mps, mph, kmph)
//	-v         verbose logging
//	-version   print version and exit
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"os/signal"
	"syscall"

	"github.com/banshee-data/sensorsim/internal/config"
	"github.com/banshee-data/sensorsim/internal/fsutil"
	"github.com/banshee-data/sensorsim/internal/playback/framestore"
	"github.com/banshee-data/sensorsim/internal/report"
	"github.com/banshee-data/sensorsim/internal/scene"
	"github.com/banshee-data/sensorsim/internal/sim"
	"github.com/banshee-data/sensorsim/internal/solver"
	"github.com/banshee-data/sensorsim/internal/storage/sqlite"
	"github.com/banshee-data/sensorsim/internal/units"
	"github.com/banshee-data/sensorsim/internal/version"
)

// collector keeps every detection for the reports and forwards to the
// detection log when there is one.
type collector struct {
	next sim.DetectionStore
	all  []solver.Detection
}

func (c *collector) RecordDetections(ctx context.Context, runID string, tick int, simTime float64, ds []solver.Detection) error {
	c.all = append(c.all, ds...)
	if c.next == nil {
		return nil
	}
	return c.next.RecordDetections(ctx, runID, tick, simTime, ds)
}

func main() {
	configPath := flag.String("config", "", "JSON simulator config")
	scenePath := flag.String("scene", "", "YAML scene description (required)")
	ticks := flag.Int("ticks", 200, "number of ticks to simulate")
	realtime := flag.Bool("realtime", false, "pace ticks with the wall clock")
	dbPath := flag.String("db", "", "SQLite detection log")
	recordDir := flag.String("record", "", "directory to record frames into")
	plotPath := flag.String("plot", "", "PNG scene plot output")
	htmlPath := flag.String("html", "", "HTML detection scatter output")
	speedUnits := flag.String("units", units.MPS, "speed units for log output")
	verbose := flag.Bool("v", false, "verbose logging")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(version.String("sensorsim"))
		return
	}
	if !units.IsValid(*speedUnits) {
		log.Fatalf("Error: invalid -units %q (valid: %s)", *speedUnits, units.ValidUnitsString())
	}
	if *scenePath == "" {
		log.Fatal("Error: -scene flag is required")
	}

	cfg := config.EmptySimConfig()
	if *configPath != "" {
		var err error
		if cfg, err = config.LoadSimConfig(*configPath); err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}
	logVerbose := *verbose || cfg.GetVerbose()

	desc, err := config.LoadScene(*scenePath)
	if err != nil {
		log.Fatalf("Failed to load scene: %v", err)
	}
	sc, err := scene.Build(desc, cfg)
	if err != nil {
		log.Fatalf("Failed to build scene: %v", err)
	}
	log.Printf("Scene %q: %d shapes, %d transmitters, %d receivers",
		sc.Name(), len(sc.Shapes()), len(sc.Transmitters()), len(sc.Receivers()))
	if p := sc.Platform(); p != nil {
		log.Printf("Platform %q: %.1f %s, %.1f deg/s",
			p.Name(), units.FromMPS(p.Speed(), *speedUnits), *speedUnits, p.YawRate()*180/math.Pi)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sink := &collector{}
	opts := sim.Options{
		Store:        sink,
		TickInterval: cfg.GetTickInterval(),
		Verbose:      logVerbose,
	}

	if *dbPath != "" {
		store, err := sqlite.Open(*dbPath)
		if err != nil {
			log.Fatalf("Failed to open detection log: %v", err)
		}
		defer store.Close()

		cfgJSON, _ := json.Marshal(cfg)
		runID, err := store.StartRun(ctx, sqlite.RunMeta{SceneName: sc.Name(), Config: cfgJSON})
		if err != nil {
			log.Fatalf("Failed to start run: %v", err)
		}
		sink.next = store
		opts.RunID = runID
		log.Printf("Logging detections to %s (run %s)", *dbPath, runID)
	}

	if *recordDir != "" {
		w, err := framestore.NewWriter(fsutil.OSFileSystem{}, *recordDir, sc.Name())
		if err != nil {
			log.Fatalf("Failed to start recording: %v", err)
		}
		defer func() {
			if err := w.Close(); err != nil {
				log.Printf("Failed to finalise recording: %v", err)
				return
			}
			log.Printf("✓ Recorded %d frames to %s", w.Count(), w.Path())
		}()
		opts.Frames = w
	}

	sv := solver.New()
	sv.SetVerbose(logVerbose)
	runner := sim.New(sc, sv, opts)

	if *realtime {
		if err := runner.Run(ctx, *ticks); err != nil && ctx.Err() == nil {
			log.Printf("Simulation stopped: %v", err)
		}
	} else {
		for i := 0; i < *ticks && ctx.Err() == nil; i++ {
			if _, err := runner.Step(ctx, cfg.GetTickInterval()); err != nil {
				log.Printf("Simulation stopped: %v", err)
				break
			}
		}
	}
	log.Printf("Simulated %d ticks (%.2fs), %d detections", runner.Ticks(), sc.Elapsed(), runner.Detections())

	if *plotPath != "" {
		if err := report.WriteScenePlot(*plotPath, sc.MergedPointCloud(), sink.all); err != nil {
			log.Printf("Failed to write plot: %v", err)
		} else {
			log.Printf("✓ Created: %s", *plotPath)
		}
	}

	if *htmlPath != "" {
		if err := writeHTML(*htmlPath, sc.Name(), sink.all); err != nil {
			log.Printf("Failed to write chart: %v", err)
		} else {
			log.Printf("✓ Created: %s", *htmlPath)
		}
	}
}

func writeHTML(path, title string, ds []solver.Detection) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := report.RenderDetectionScatter(f, title, ds); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
