package wave

import (
	"math"
	"sync"
)

type tableKey struct {
	kind       Kind
	sampleRate int
}

// tableCache hands out one shared read-only table per kind and sample rate.
type tableCache struct {
	mu    sync.RWMutex
	store map[tableKey][]float32
}

var tables = &tableCache{store: make(map[tableKey][]float32)}

func (c *tableCache) get(kind Kind, sampleRate int) []float32 {
	key := tableKey{kind, sampleRate}

	c.mu.RLock()
	t, ok := c.store[key]
	c.mu.RUnlock()
	if ok {
		return t
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if t, ok := c.store[key]; ok {
		return t
	}
	t = generateTable(kind, sampleRate)
	c.store[key] = t
	return t
}

// generateTable renders one cycle at 1 Hz, so the table holds sampleRate
// samples and phase indexes it directly.
func generateTable(kind Kind, sampleRate int) []float32 {
	n := sampleRate
	period := Period(sampleRate, 1)
	t := make([]float32, n)
	switch kind {
	case Saw:
		for i := range t {
			t[i] = float32(i)/period*2 - 1
		}
	case Triangle:
		half := period / 2
		for i := range t {
			x := float32(i)
			if x <= half {
				t[i] = x/half*2 - 1
			} else {
				t[i] = (period-x)/half*2 - 1
			}
		}
	case Sine:
		for i := range t {
			theta := 2 * math.Pi * float64(i) / float64(period)
			t[i] = float32(math.Sin(theta))
		}
	case Tangent:
		for i := range t {
			theta := 2 * math.Pi * float64(i) / float64(period)
			t[i] = Clip(float32(math.Tan(theta) / (4 * math.Pi)))
		}
	case Hemicycle:
		half := float64(period) * 0.5
		quarter := half * 0.5
		span := int(math.Round(half))
		if span < 1 {
			span = 1
		}
		for i := range t {
			pos := float64(i%span) - quarter
			v := math.Sqrt(math.Max(quarter*quarter-pos*pos, 0)) / quarter
			if float64(i) > half {
				v = -v
			}
			t[i] = float32(v)
		}
	}
	return t
}
