// Package engine computes the distribution of the total reward from repeated
// draws of two independent bags, either exactly or by a normal approximation.
package engine

import (
	"context"
	"fmt"
	"math"
	"time"

	"bagcalc/internal/bags"
	"bagcalc/internal/stats"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// Config bounds the cost of a calculation. It is read-only once an Engine is built.
type Config struct {
	ExactThreshold1        int
	ExactThreshold2        int
	Timeout                time.Duration
	ApproximationAvailable bool
	// TopSumsProximity is the smallest 1st-to-3rd probability gap (as a
	// fraction) for which top sums are considered distinct.
	TopSumsProximity float64
}

func DefaultConfig() Config {
	return Config{
		ExactThreshold1:        100,
		ExactThreshold2:        100,
		Timeout:                15 * time.Second,
		ApproximationAvailable: true,
		TopSumsProximity:       0.001,
	}
}

func (c Config) Validate() error {
	switch {
	case c.ExactThreshold1 <= 0 || c.ExactThreshold2 <= 0:
		return fmt.Errorf("exact thresholds must be positive, got %d and %d", c.ExactThreshold1, c.ExactThreshold2)
	case c.Timeout <= 0:
		return fmt.Errorf("timeout must be positive, got %s", c.Timeout)
	case c.TopSumsProximity < 0 || math.IsNaN(c.TopSumsProximity):
		return fmt.Errorf("top sums proximity must be non-negative, got %v", c.TopSumsProximity)
	}
	return nil
}

// Request is one calculation.
type Request struct {
	Bag1   bags.Definition
	Draws1 int
	Bag2   bags.Definition
	Draws2 int
	Target int
}

// Validate repeats the caller's input checks.
func (r Request) Validate() error {
	if r.Draws1 < 0 || r.Draws2 < 0 {
		return fmt.Errorf("%w: draw counts must be non-negative, got %d and %d", ErrInvalidInput, r.Draws1, r.Draws2)
	}
	if r.Draws1 > MaxDraws || r.Draws2 > MaxDraws {
		return fmt.Errorf("%w: draw counts are limited to %d, got %d and %d", ErrInvalidInput, MaxDraws, r.Draws1, r.Draws2)
	}
	if r.Target < 0 {
		return fmt.Errorf("%w: target must be non-negative, got %d", ErrInvalidInput, r.Target)
	}
	if r.Draws1 > 0 && r.Bag1.Len() == 0 {
		return fmt.Errorf("%w: bag 1 has no items", ErrInvalidInput)
	}
	if r.Draws2 > 0 && r.Bag2.Len() == 0 {
		return fmt.Errorf("%w: bag 2 has no items", ErrInvalidInput)
	}
	return CheckTotalRange(r.Bag1, r.Draws1, r.Bag2, r.Draws2)
}

// Result is the outcome of a calculation. ProbAtLeast and ProbExact are
// percentages. TopSums has status TopSumsNotEnumerated for approximations.
type Result struct {
	ProbAtLeast   float64 `json:"prob_at_least"`
	ProbExact     float64 `json:"prob_exact"`
	TopSums       TopSums `json:"top_sums"`
	Method        Method  `json:"method"`
	ExpectedTotal float64 `json:"expected_total"`
	StdDev        float64 `json:"std_dev"`

	// Distribution is the combined exact distribution; empty for approximations.
	Distribution Distribution `json:"-"`
}

// Engine runs calculations. It holds no mutable state and is safe for
// concurrent use.
type Engine struct {
	cfg    Config
	normal stats.StandardNormal
}

// New builds an Engine. normal may be nil only when the config disables the
// approximation.
func New(cfg Config, normal stats.StandardNormal) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.ApproximationAvailable && normal == nil {
		return nil, fmt.Errorf("normal approximation enabled without a standard normal backend")
	}
	return &Engine{cfg: cfg, normal: normal}, nil
}

func (e *Engine) Config() Config { return e.cfg }

// Calculate validates req, selects a method and runs it under the configured deadline.
func (e *Engine) Calculate(ctx context.Context, req Request) (Result, error) {
	if err := req.Validate(); err != nil {
		return Result{}, err
	}

	method := SelectMethod(req.Draws1, req.Draws2, e.cfg)
	start := time.Now()

	var (
		res Result
		err error
	)
	switch method {
	case MethodExact:
		res, err = RunWithDeadline(ctx, e.cfg.Timeout, func(ctx context.Context) (Result, error) {
			return e.exact(ctx, req)
		})
	case MethodNormalApproximation:
		res, err = RunWithDeadline(ctx, e.cfg.Timeout, func(_ context.Context) (Result, error) {
			return e.approximate(req)
		})
	default:
		return Result{}, fmt.Errorf("%w: draws (%d, %d) exceed exact thresholds (%d, %d) and no normal approximation is available",
			ErrUnsupported, req.Draws1, req.Draws2, e.cfg.ExactThreshold1, e.cfg.ExactThreshold2)
	}
	if err != nil {
		log.Debug().Err(err).Str("method", method.String()).Dur("elapsed", time.Since(start)).Msg("Calculation failed")
		return Result{}, err
	}

	log.Debug().
		Str("method", method.String()).
		Int("draws1", req.Draws1).
		Int("draws2", req.Draws2).
		Int("target", req.Target).
		Int("support", res.Distribution.Width()).
		Dur("elapsed", time.Since(start)).
		Msg("Calculation complete")
	return res, nil
}

func (e *Engine) exact(ctx context.Context, req Request) (Result, error) {
	var dist1, dist2 Distribution

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		dist1, err = ComputeDistribution(gctx, req.Bag1, req.Draws1)
		return err
	})
	g.Go(func() error {
		var err error
		dist2, err = ComputeDistribution(gctx, req.Bag2, req.Draws2)
		return err
	})
	if err := g.Wait(); err != nil {
		return Result{}, err
	}

	combined, err := Combine(ctx, dist1, dist2)
	if err != nil {
		return Result{}, err
	}

	m := TotalMoments(req.Bag1, req.Draws1, req.Bag2, req.Draws2)
	sum := Summarize(combined, req.Target, e.cfg.TopSumsProximity)
	return Result{
		ProbAtLeast:   sum.ProbAtLeast,
		ProbExact:     sum.ProbExact,
		TopSums:       sum.TopSums,
		Method:        MethodExact,
		ExpectedTotal: m.Mean,
		StdDev:        m.StdDev,
		Distribution:  combined,
	}, nil
}

func (e *Engine) approximate(req Request) (Result, error) {
	atLeast, exact, err := NormalApproximation(e.normal, req.Bag1, req.Draws1, req.Bag2, req.Draws2, req.Target)
	if err != nil {
		return Result{}, err
	}

	m := TotalMoments(req.Bag1, req.Draws1, req.Bag2, req.Draws2)
	return Result{
		ProbAtLeast:   atLeast,
		ProbExact:     exact,
		TopSums:       TopSums{Status: TopSumsNotEnumerated, Entries: []Outcome{}},
		Method:        MethodNormalApproximation,
		ExpectedTotal: m.Mean,
		StdDev:        m.StdDev,
	}, nil
}
