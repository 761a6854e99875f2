package sensor

import (
	"math/rand"
	"sync"
)

// Sim produces plausible drifting values for development and tests. It
// implements both SoilProbe and ClimateSensor so a host without hardware
// can run the full sampling loop.
type Sim struct {
	mu          sync.Mutex
	rng         *rand.Rand
	moisture    float64
	temperature float64
	humidity    float64
}

func NewSim(seed int64) *Sim {
	return &Sim{
		rng:         rand.New(rand.NewSource(seed)),
		moisture:    45,
		temperature: 21,
		humidity:    55,
	}
}

func (s *Sim) ReadMoisture() (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.moisture = drift(s.rng, s.moisture, 1.5, 5, 95)
	return s.moisture, nil
}

func (s *Sim) ReadClimate() (float64, float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.temperature = drift(s.rng, s.temperature, 0.4, 10, 35)
	s.humidity = drift(s.rng, s.humidity, 1.0, 20, 90)
	return s.temperature, s.humidity, nil
}

func drift(rng *rand.Rand, v, step, lo, hi float64) float64 {
	v += (rng.Float64()*2 - 1) * step
	if v < lo {
		v = lo
	}
	if v > hi {
		v = hi
	}
	return v
}
