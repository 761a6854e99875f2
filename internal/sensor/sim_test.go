package sensor

import "testing"

func TestSim_ValuesStayInRange(t *testing.T) {
	s := NewSim(1)

	for i := 0; i < 1000; i++ {
		m, err := s.ReadMoisture()
		if err != nil {
			t.Fatalf("ReadMoisture: %v", err)
		}
		if m < 5 || m > 95 {
			t.Fatalf("moisture = %v; want within [5, 95]", m)
		}

		temp, hum, err := s.ReadClimate()
		if err != nil {
			t.Fatalf("ReadClimate: %v", err)
		}
		if temp < 10 || temp > 35 {
			t.Fatalf("temperature = %v; want within [10, 35]", temp)
		}
		if hum < 20 || hum > 90 {
			t.Fatalf("humidity = %v; want within [20, 90]", hum)
		}
	}
}

func TestSim_Deterministic(t *testing.T) {
	a, b := NewSim(42), NewSim(42)

	for i := 0; i < 10; i++ {
		ma, _ := a.ReadMoisture()
		mb, _ := b.ReadMoisture()
		if ma != mb {
			t.Fatalf("same seed diverged at step %d: %v != %v", i, ma, mb)
		}
	}
}
