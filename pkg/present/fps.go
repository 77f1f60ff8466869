package present

import "time"

const (
	fpsSamples = 30
	fpsEvery   = 10
)

// Meter estimates the frame rate from the last fpsSamples frame times,
// recomputed every fpsEvery frames.
type Meter struct {
	samples [fpsSamples]time.Time
	n, next int
	frames  int
	value   float64
}

// Tick records a frame at now.
func (m *Meter) Tick(now time.Time) {
	m.samples[m.next] = now
	m.next = (m.next + 1) % fpsSamples
	if m.n < fpsSamples {
		m.n++
	}
	m.frames++

	if m.frames%fpsEvery != 0 || m.n < 2 {
		return
	}

	oldest := m.samples[0]
	if m.n == fpsSamples {
		oldest = m.samples[m.next]
	}
	if dt := now.Sub(oldest).Seconds(); dt > 0 {
		m.value = float64(m.n-1) / dt
	}
}

// Value returns the last estimate, or 0 before the first one.
func (m *Meter) Value() float64 {
	return m.value
}
