package realtime

import (
	"math/rand"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/tejask-saama/AscensionLPR/internal/domain/patient"
)

// Vitals is one simulated reading.
type Vitals struct {
	HR int    `json:"hr"`
	BP string `json:"bp"`
	O2 int    `json:"o2"`
}

type baseline struct {
	hr, sys, dia, o2 int
}

// Simulator produces jittered vital-sign readings around a patient's
// recorded baseline. Each reading moves a small step from the baseline and
// is clamped to a plausible clinical range, so consecutive polls look like
// live telemetry without ever drifting into nonsense.
type Simulator struct {
	mu    sync.Mutex
	rng   *rand.Rand
	delay func()
}

func NewSimulator() *Simulator {
	return newSimulator(time.Now().UnixNano())
}

func newSimulator(seed int64) *Simulator {
	s := &Simulator{rng: rand.New(rand.NewSource(seed))}
	s.delay = s.processingDelay
	return s
}

// processingDelay imitates the acquisition latency of a bedside monitor,
// a uniform 100-300ms.
func (s *Simulator) processingDelay() {
	s.mu.Lock()
	d := 100 + s.rng.Intn(201)
	s.mu.Unlock()
	time.Sleep(time.Duration(d) * time.Millisecond)
}

// Reading draws the next jittered sample around the given baseline.
func (s *Simulator) Reading(b baseline) Vitals {
	s.mu.Lock()
	defer s.mu.Unlock()
	hr := s.jitter(b.hr, 3, 60, 120)
	sys := s.jitter(b.sys, 4, 90, 160)
	dia := s.jitter(b.dia, 3, 60, 100)
	o2 := s.jitter(b.o2, 2, 88, 100)
	return Vitals{
		HR: hr,
		BP: strconv.Itoa(sys) + "/" + strconv.Itoa(dia),
		O2: o2,
	}
}

func (s *Simulator) jitter(base, spread, min, max int) int {
	v := base + s.rng.Intn(2*spread+1) - spread
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// baselineFrom parses a patient's recorded vitals into numeric baselines.
// Values that cannot be parsed fall back to textbook-normal readings.
func baselineFrom(vs patient.VitalSigns) baseline {
	b := baseline{hr: 72, sys: 120, dia: 80, o2: 98}
	if hr, err := strconv.Atoi(digits(vs.HR)); err == nil && hr > 0 {
		b.hr = hr
	}
	if parts := strings.SplitN(vs.BP, "/", 2); len(parts) == 2 {
		sys, serr := strconv.Atoi(digits(parts[0]))
		dia, derr := strconv.Atoi(digits(parts[1]))
		if serr == nil && derr == nil && sys > 0 && dia > 0 {
			b.sys, b.dia = sys, dia
		}
	}
	if o2, err := strconv.Atoi(digits(vs.O2Saturation)); err == nil && o2 > 0 {
		b.o2 = o2
	}
	return b
}

func digits(s string) string {
	var sb strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
