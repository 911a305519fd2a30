package analysis

import (
	"context"
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/oculab/octascan-api/internal/models"
)

// lockedRand serializes access to a seeded source; rand.Rand itself is not
// safe for concurrent use.
type lockedRand struct {
	mu sync.Mutex
	r  *rand.Rand
}

// Engine is the shared base of the simulated analyzers: a fixed delay plus a
// seeded random source. The results carry no information about the image.
// Delay and seed are injectable so tests run instantly and deterministically.
type Engine struct {
	delay time.Duration
	rng   *lockedRand
}

func newEngine(delay time.Duration, seed int64) Engine {
	return Engine{delay: delay, rng: &lockedRand{r: rand.New(rand.NewSource(seed))}}
}

// wait blocks for the configured delay or until ctx is cancelled, so an
// abandoned request does not leave work running.
func (e *Engine) wait(ctx context.Context) error {
	if e.delay <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(e.delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (e *Engine) float64() float64 {
	e.rng.mu.Lock()
	defer e.rng.mu.Unlock()
	return e.rng.r.Float64()
}

func (e *Engine) intn(n int) int {
	e.rng.mu.Lock()
	defer e.rng.mu.Unlock()
	return e.rng.r.Intn(n)
}

// SimulatedClassifier picks uniformly among the four diagnostic classes with
// a confidence in [85,99], after a 2s delay.
type SimulatedClassifier struct {
	Engine
}

func NewSimulatedClassifier(delay time.Duration, seed int64) *SimulatedClassifier {
	return &SimulatedClassifier{Engine: newEngine(delay, seed)}
}

func (s *SimulatedClassifier) Classify(ctx context.Context, imageURL string) (DiagnosisResult, error) {
	if err := s.wait(ctx); err != nil {
		return DiagnosisResult{}, err
	}
	return DiagnosisResult{
		Diagnosis:  models.Diagnoses[s.intn(len(models.Diagnoses))],
		Confidence: math.Round(85 + s.float64()*14),
	}, nil
}

// SimulatedFluidQuantifier reports a fluid percentage in [15,50] and a volume
// in [0.05,0.20] mm3, after a 2.5s delay.
type SimulatedFluidQuantifier struct {
	Engine
}

func NewSimulatedFluidQuantifier(delay time.Duration, seed int64) *SimulatedFluidQuantifier {
	return &SimulatedFluidQuantifier{Engine: newEngine(delay, seed)}
}

func (s *SimulatedFluidQuantifier) Quantify(ctx context.Context, imageURL string) (FluidResult, error) {
	if err := s.wait(ctx); err != nil {
		return FluidResult{}, err
	}
	percentage := math.Round((15+s.float64()*35)*10) / 10
	volume := math.Round((0.05+s.float64()*0.15)*1000) / 1000
	return FluidResult{
		Percentage: percentage,
		Volume:     volume,
		Severity:   Severity(percentage),
	}, nil
}

// SimulatedEnhancer returns the image unchanged after 2-3s; display-time
// filters stand in for real sharpening.
type SimulatedEnhancer struct {
	Engine
	jitter time.Duration
}

func NewSimulatedEnhancer(delay, jitter time.Duration, seed int64) *SimulatedEnhancer {
	return &SimulatedEnhancer{Engine: newEngine(delay, seed), jitter: jitter}
}

func (s *SimulatedEnhancer) Enhance(ctx context.Context, imageURL string) (EnhanceResult, error) {
	if s.jitter > 0 {
		extra := time.Duration(s.float64() * float64(s.jitter))
		timer := time.NewTimer(extra)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return EnhanceResult{}, ctx.Err()
		case <-timer.C:
		}
	}
	if err := s.wait(ctx); err != nil {
		return EnhanceResult{}, err
	}
	return EnhanceResult{ImageURL: imageURL}, nil
}

// Default engine delays, matching the demo timings.
const (
	DefaultClassifyDelay = 2 * time.Second
	DefaultFluidDelay    = 2500 * time.Millisecond
	DefaultEnhanceDelay  = 2 * time.Second
	DefaultEnhanceJitter = time.Second
)
