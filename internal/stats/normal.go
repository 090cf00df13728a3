package stats

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// Backend names a standard normal implementation.
type Backend string

const (
	BackendGonum Backend = "gonum"
	BackendErfc  Backend = "erfc"
	// BackendNone disables the normal approximation entirely.
	BackendNone Backend = "none"
)

// StandardNormal evaluates the N(0,1) distribution.
// Survival is 1-CDF, kept separate so upper tails keep their precision.
type StandardNormal interface {
	CDF(z float64) float64
	Survival(z float64) float64
}

// GonumNormal backs StandardNormal with gonum's distuv.
type GonumNormal struct {
	dist distuv.Normal
}

func NewGonumNormal() *GonumNormal {
	return &GonumNormal{dist: distuv.UnitNormal}
}

func (g *GonumNormal) CDF(z float64) float64 {
	return g.dist.CDF(z)
}

func (g *GonumNormal) Survival(z float64) float64 {
	return g.dist.Survival(z)
}

// ErfcNormal evaluates the standard normal through the complementary error function.
type ErfcNormal struct{}

func (ErfcNormal) CDF(z float64) float64 {
	return 0.5 * math.Erfc(-z/math.Sqrt2)
}

func (ErfcNormal) Survival(z float64) float64 {
	return 0.5 * math.Erfc(z/math.Sqrt2)
}

// NewStandardNormal resolves a backend name. BackendNone yields a nil
// StandardNormal and no error: the caller treats that as "approximation
// unavailable".
func NewStandardNormal(b Backend) (StandardNormal, error) {
	switch b {
	case BackendGonum, "":
		return NewGonumNormal(), nil
	case BackendErfc:
		return ErfcNormal{}, nil
	case BackendNone:
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown normal backend %q (want gonum, erfc or none)", b)
	}
}
