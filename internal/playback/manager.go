package playback

import (
	"errors"
	"fmt"
	"log"
	"maps"
	"slices"
	"time"

	"github.com/banshee-data/sensorsim/internal/config"
)

// Config controls windowing and timing.
type Config struct {
	WindowSize    int           // frames kept resident around the cursor
	FrameInterval time.Duration // time per frame at 1x speed
	PlaybackSpeed float64       // multiplier on elapsed time
	Loop          bool          // wrap to the first frame instead of pausing at the end
	Verbose       bool
}

// DefaultConfig returns the defaults used when a SimConfig leaves the
// playback knobs unset.
func DefaultConfig() Config {
	return ConfigFromSim(config.EmptySimConfig())
}

// ConfigFromSim extracts the playback settings from a simulator config.
func ConfigFromSim(c *config.SimConfig) Config {
	return Config{
		WindowSize:    c.GetWindowSize(),
		FrameInterval: c.GetFrameInterval(),
		PlaybackSpeed: c.GetPlaybackSpeed(),
		Loop:          c.GetLoop(),
		Verbose:       c.GetVerbose(),
	}
}

// Status is a point-in-time snapshot of the manager.
type Status struct {
	Index     int
	Total     int
	Playing   bool
	Speed     float64
	Loop      bool
	Window    []int
	Timestamp float64 // of the frame being served; 0 before the first load
	Stale     bool    // the served frame is not the one at Index
}

// Manager is the frame-buffer manager. It is not safe for concurrent use;
// drive it from a single loop.
type Manager struct {
	src   FrameSource
	cfg   Config
	total int

	window  map[int]*Frame
	current int
	served  *Frame // last successfully loaded frame for the cursor

	playing bool
	timer   time.Duration

	observers []func() FrameObserver
}

// NewManager creates a paused manager with the cursor at frame 0. No frame
// is loaded until the first Seek, step or LoadWindowAround.
func NewManager(src FrameSource, cfg Config) (*Manager, error) {
	def := DefaultConfig()
	if cfg.WindowSize <= 0 {
		cfg.WindowSize = def.WindowSize
	}
	if cfg.FrameInterval <= 0 {
		cfg.FrameInterval = def.FrameInterval
	}
	if cfg.PlaybackSpeed <= 0 {
		cfg.PlaybackSpeed = def.PlaybackSpeed
	}

	total := src.Count()
	if total <= 0 {
		return nil, ErrNoFrames
	}

	return &Manager{
		src:    src,
		cfg:    cfg,
		total:  total,
		window: make(map[int]*Frame, cfg.WindowSize),
	}, nil
}

// Play starts playback from the current frame.
func (m *Manager) Play() {
	m.playing = true
	m.timer = 0
	m.debugf("play at %d", m.current)
}

// Pause stops automatic advance.
func (m *Manager) Pause() {
	m.playing = false
	m.debugf("pause at %d", m.current)
}

// IsPlaying reports whether Update advances the cursor.
func (m *Manager) IsPlaying() bool { return m.playing }

// Update advances playback by dt of wall time. Each whole frame interval
// elapsed moves the cursor one frame and notifies observers. At the last
// frame playback pauses, or wraps to the start when looping.
func (m *Manager) Update(dt time.Duration) error {
	if !m.playing || dt <= 0 {
		return nil
	}
	m.timer += time.Duration(float64(dt) * m.cfg.PlaybackSpeed)

	var errs []error
	for m.timer >= m.cfg.FrameInterval {
		m.timer -= m.cfg.FrameInterval

		next := m.current + 1
		if next >= m.total {
			if !m.cfg.Loop {
				m.endOfSequence()
				break
			}
			next = 0
		}
		if err := m.moveTo(next); err != nil {
			errs = append(errs, err)
		}
		if m.current == m.total-1 && !m.cfg.Loop {
			m.endOfSequence()
			break
		}
	}
	return errors.Join(errs...)
}

func (m *Manager) endOfSequence() {
	m.playing = false
	m.timer = 0
	m.debugf("end of sequence at %d, paused", m.current)
}

// Seek moves the cursor to index, clamped to the sequence.
func (m *Manager) Seek(index int) error {
	return m.moveTo(index)
}

// StepForward moves one frame forward, stopping at the last frame.
func (m *Manager) StepForward() error {
	return m.moveTo(m.current + 1)
}

// StepBackward moves one frame back, stopping at the first frame.
func (m *Manager) StepBackward() error {
	return m.moveTo(m.current - 1)
}

// moveTo sets the cursor, reloads the window and notifies observers. A
// failed load for the cursor leaves the previous frame being served.
func (m *Manager) moveTo(index int) error {
	m.current = m.clamp(index)
	err := m.loadWindow(m.current)
	if f, ok := m.window[m.current]; ok {
		m.served = f
	}
	m.notify()
	return err
}

// LoadWindowAround rebuilds the window centred on center. The cursor moves
// to center (clamped) so the current frame is always resident, and
// observers are notified as for Seek.
func (m *Manager) LoadWindowAround(center int) error {
	return m.moveTo(center)
}

// loadWindow makes the resident set exactly the window centred on center:
// frames outside are released and missing ones are loaded. Frames that fail
// to load stay absent and their errors are returned joined.
func (m *Manager) loadWindow(center int) error {
	lo, hi := m.windowBounds(m.clamp(center))

	for i := range m.window {
		if i < lo || i > hi {
			delete(m.window, i)
		}
	}

	var errs []error
	for i := lo; i <= hi; i++ {
		if _, ok := m.window[i]; ok {
			continue
		}
		f, err := m.src.Load(i)
		if err == nil && f == nil {
			err = errors.New("source returned no frame")
		}
		if err != nil {
			err = fmt.Errorf("%w: frame %d: %w", ErrFrameLoad, i, err)
			log.Printf("[playback] %v", err)
			errs = append(errs, err)
			continue
		}
		f.Index = i
		m.window[i] = f
	}

	m.debugf("window [%d,%d] resident=%d", lo, hi, len(m.window))
	return errors.Join(errs...)
}

// windowBounds returns the inclusive index range of the window around
// center, intersected with the sequence.
func (m *Manager) windowBounds(center int) (lo, hi int) {
	lo = center - m.cfg.WindowSize/2
	hi = lo + m.cfg.WindowSize - 1
	return max(lo, 0), min(hi, m.total-1)
}

func (m *Manager) clamp(i int) int {
	return min(max(i, 0), m.total-1)
}

// CurrentIndex returns the cursor.
func (m *Manager) CurrentIndex() int { return m.current }

// CurrentFrame returns the frame being served: the frame at the cursor, or
// the last one that loaded if the cursor's frame failed. It is nil until a
// load has succeeded.
func (m *Manager) CurrentFrame() *Frame { return m.served }

// TotalFrames returns the sequence length.
func (m *Manager) TotalFrames() int { return m.total }

// WindowIndices returns the resident frame indices in ascending order.
func (m *Manager) WindowIndices() []int {
	return slices.Sorted(maps.Keys(m.window))
}

// SetPlaybackSpeed sets the time multiplier; it must be positive.
func (m *Manager) SetPlaybackSpeed(speed float64) error {
	if !(speed > 0) {
		return fmt.Errorf("playback: speed must be positive, got %v", speed)
	}
	m.cfg.PlaybackSpeed = speed
	return nil
}

// SetFrameInterval sets the time per frame at 1x; it must be positive.
func (m *Manager) SetFrameInterval(d time.Duration) error {
	if d <= 0 {
		return fmt.Errorf("playback: frame interval must be positive, got %v", d)
	}
	m.cfg.FrameInterval = d
	return nil
}

// SetLoop enables or disables wrap-around at the end of the sequence.
func (m *Manager) SetLoop(loop bool) { m.cfg.Loop = loop }

// Status returns a snapshot of the playback state.
func (m *Manager) Status() Status {
	s := Status{
		Index:   m.current,
		Total:   m.total,
		Playing: m.playing,
		Speed:   m.cfg.PlaybackSpeed,
		Loop:    m.cfg.Loop,
		Window:  m.WindowIndices(),
	}
	if m.served != nil {
		s.Timestamp = m.served.Timestamp
		s.Stale = m.served.Index != m.current
	}
	return s
}

func (m *Manager) debugf(format string, args ...any) {
	if m.cfg.Verbose {
		log.Printf("[playback] "+format, args...)
	}
}
