package service

import (
	"log/slog"
	"math"
	"sync"
	"time"

	"soilpico/internal/modules/history/persist"
	"soilpico/internal/modules/history/store"
	"soilpico/internal/modules/history/types"
)

const (
	// DefaultSaveInterval bounds write wear on flash: at most one flush per
	// interval regardless of how many samples were admitted in between.
	DefaultSaveInterval = 5 * time.Minute
	// DefaultRecentWindow is the size of the cheap polling window.
	DefaultRecentWindow = 20

	MinMoisturePct  = 0
	MaxMoisturePct  = 100
	MinTemperatureC = -20
	MaxTemperatureC = 80
	MinHumidityPct  = 0
	MaxHumidityPct  = 100
)

// Clock reports time elapsed since the current boot. Injected so the flush
// cadence and timestamps can be driven synthetically in tests.
type Clock func() time.Duration

// Service owns the reading history: it admits raw sensor scalars, enforces
// the retention bound via the store, and flushes to the persistence gateway
// on a time cadence. Persistence failures are logged and absorbed; nothing
// here may interrupt the sampling loop.
type Service struct {
	store        *store.Store
	gateway      *persist.Gateway
	logger       *slog.Logger
	clock        Clock
	saveInterval time.Duration
	recentWindow int

	mu          sync.Mutex
	latest      types.Status
	latestValid bool
	lastFlush   time.Duration
}

type Options struct {
	SaveInterval time.Duration
	RecentWindow int
	Clock        Clock
}

func New(st *store.Store, gw *persist.Gateway, logger *slog.Logger, opts Options) *Service {
	if opts.SaveInterval <= 0 {
		opts.SaveInterval = DefaultSaveInterval
	}
	if opts.RecentWindow <= 0 {
		opts.RecentWindow = DefaultRecentWindow
	}
	if opts.Clock == nil {
		start := time.Now()
		opts.Clock = func() time.Duration { return time.Since(start) }
	}
	return &Service{
		store:        st,
		gateway:      gw,
		logger:       logger,
		clock:        opts.Clock,
		saveInterval: opts.SaveInterval,
		recentWindow: opts.RecentWindow,
	}
}

// LoadHistory populates the store from the durable file. Called once at
// startup, before the sampling loop and HTTP server start. The latest
// status stays unset: loaded timestamps belong to a previous boot session
// and must not be presented as current.
func (s *Service) LoadHistory() {
	s.store.Replace(s.gateway.Load())
}

// Record admits one sample: clamps the raw scalars to their domains, stamps
// the reading with seconds since boot, appends (evicting per the capacity
// bound), and flushes to disk if the save interval has elapsed since the
// last successful flush. A nil temperature or humidity means the climate
// sensor had no valid reading; the sample is still admitted (moisture is
// independent) with zero for the missing fields, and the status marks them
// as unavailable.
func (s *Service) Record(moisture float64, temperature, humidity *float64) {
	now := s.clock()
	r := types.Reading{
		Timestamp: uint32(now / time.Second),
		Moisture:  clampRound(moisture, MinMoisturePct, MaxMoisturePct),
	}

	st := types.Status{Timestamp: r.Timestamp, Moisture: r.Moisture}
	if temperature != nil {
		r.Temperature = clampRound(*temperature, MinTemperatureC, MaxTemperatureC)
		t := r.Temperature
		st.Temperature = &t
	}
	if humidity != nil {
		r.Humidity = clampRound(*humidity, MinHumidityPct, MaxHumidityPct)
		h := r.Humidity
		st.Humidity = &h
	}

	s.store.Append(r)

	s.mu.Lock()
	s.latest = st
	s.latestValid = true
	due := now-s.lastFlush >= s.saveInterval
	s.mu.Unlock()

	if !due {
		return
	}
	if err := s.gateway.Save(s.store.Snapshot()); err != nil {
		// Leave lastFlush untouched so the next tick retries.
		s.logger.Warn("history flush failed, continuing in-memory", "error", err)
		return
	}
	s.mu.Lock()
	s.lastFlush = now
	s.mu.Unlock()
	s.logger.Debug("history flushed", "readings", s.store.Len())
}

// FlushNow writes the current snapshot to disk regardless of cadence. Used
// on graceful shutdown so at most an ungraceful power loss costs samples.
func (s *Service) FlushNow() error {
	if err := s.gateway.Save(s.store.Snapshot()); err != nil {
		return err
	}
	s.mu.Lock()
	s.lastFlush = s.clock()
	s.mu.Unlock()
	return nil
}

// CurrentSnapshot returns the latest status and the recent window for
// dashboard polling. Pure read.
func (s *Service) CurrentSnapshot() types.Snapshot {
	s.mu.Lock()
	st := s.latest
	s.mu.Unlock()
	return types.Snapshot{
		Status: st,
		Recent: s.store.Window(s.recentWindow),
	}
}

// FullHistory returns the entire history in chronological order. Pure read.
func (s *Service) FullHistory() []types.Reading {
	return s.store.Snapshot()
}

// ClearHistory erases the durable file and empties the store. The latest
// status is reset so the dashboard shows "no data" until the next sample.
func (s *Service) ClearHistory() error {
	if err := s.gateway.Erase(); err != nil {
		return err
	}
	s.store.Clear()
	s.mu.Lock()
	s.latest = types.Status{}
	s.latestValid = false
	s.mu.Unlock()
	s.logger.Info("history cleared", "path", s.gateway.Path())
	return nil
}

// Len reports the current history length, for health output.
func (s *Service) Len() int {
	return s.store.Len()
}

// HasStatus reports whether at least one sample was admitted this boot.
func (s *Service) HasStatus() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.latestValid
}

func clampRound(v float64, lo, hi int) int {
	n := int(math.Round(v))
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}
