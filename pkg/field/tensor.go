package field

import (
	"errors"
	"fmt"
	"math"
)

const (
	// DefaultResolution is the default grid resolution per axis.
	DefaultResolution = 64

	// MaxResolution bounds the per-axis resolution. A 256^3 grid of 4x4
	// tensors is ~2 GiB; anything larger is a configuration mistake.
	MaxResolution = 256

	// gravitationalConstant is Newton's G in m^3 kg^-1 s^-2.
	gravitationalConstant = 6.67430e-11

	// teslaPerUnit converts the dimensionless tensor magnitude into an
	// effective field strength in Tesla.
	teslaPerUnit = 1e-12
)

// densityCoefficient scales the quadratic form into J/m^3.
var densityCoefficient = 0.5 / (8 * math.Pi * gravitationalConstant)

// ErrInvalidResolution is returned for a grid resolution outside [1, MaxResolution].
var ErrInvalidResolution = errors.New("invalid grid resolution")

// Tensor is a 4x4 local field perturbation sample. Index 0 is the timelike
// component.
type Tensor [4][4]float64

// Scale returns the tensor with every component multiplied by f.
func (t Tensor) Scale(f float64) Tensor {
	var out Tensor
	for mu := 0; mu < 4; mu++ {
		for nu := 0; nu < 4; nu++ {
			out[mu][nu] = t[mu][nu] * f
		}
	}
	return out
}

// Norm2 returns the Euclidean sum of squared components.
func (t Tensor) Norm2() float64 {
	var sum float64
	for mu := 0; mu < 4; mu++ {
		for nu := 0; nu < 4; nu++ {
			sum += t[mu][nu] * t[mu][nu]
		}
	}
	return sum
}

// LorentzQ returns the signed quadratic contraction of the tensor under the
// -+++ signature: time-time and space-space components contribute their
// squares positively, time-space mixing components negatively.
func (t Tensor) LorentzQ() float64 {
	var q float64
	for mu := 0; mu < 4; mu++ {
		for nu := 0; nu < 4; nu++ {
			s := t[mu][nu] * t[mu][nu]
			if (mu == 0) != (nu == 0) {
				q -= s
			} else {
				q += s
			}
		}
	}
	return q
}

// IsZero reports whether every component is exactly zero.
func (t Tensor) IsZero() bool {
	for mu := 0; mu < 4; mu++ {
		for nu := 0; nu < 4; nu++ {
			if t[mu][nu] != 0 {
				return false
			}
		}
	}
	return true
}

// EnergyDensity returns the energy density in J/m^3 for a local tensor.
// The sign follows LorentzQ: mixing-dominated tensors carry negative density.
func EnergyDensity(t Tensor) float64 {
	return densityCoefficient * t.LorentzQ()
}

// Configuration is a sampled tensor field over an N^3 grid.
type Configuration struct {
	resolution int
	points     []Tensor
}

// NewConfiguration allocates a zeroed configuration with the given per-axis
// resolution. It returns ErrInvalidResolution for a resolution outside
// [1, MaxResolution].
func NewConfiguration(resolution int) (*Configuration, error) {
	if resolution < 1 || resolution > MaxResolution {
		return nil, fmt.Errorf("%w: %d (want 1..%d)", ErrInvalidResolution, resolution, MaxResolution)
	}
	n := resolution * resolution * resolution
	return &Configuration{
		resolution: resolution,
		points:     make([]Tensor, n),
	}, nil
}

// Resolution returns the per-axis grid resolution.
func (c *Configuration) Resolution() int {
	return c.resolution
}

// Len returns the total number of sample points.
func (c *Configuration) Len() int {
	return len(c.points)
}

// index converts grid coordinates into the flat point index.
func (c *Configuration) index(i, j, k int) int {
	return (i*c.resolution+j)*c.resolution + k
}

// At returns the tensor at grid coordinates (i, j, k).
func (c *Configuration) At(i, j, k int) Tensor {
	return c.points[c.index(i, j, k)]
}

// SetAt stores the tensor at grid coordinates (i, j, k).
func (c *Configuration) SetAt(i, j, k int, t Tensor) {
	c.points[c.index(i, j, k)] = t
}

// Point returns the tensor at flat index p.
func (c *Configuration) Point(p int) Tensor {
	return c.points[p]
}

// SetPoint stores the tensor at flat index p.
func (c *Configuration) SetPoint(p int, t Tensor) {
	c.points[p] = t
}

// Clone returns a deep copy of the configuration.
func (c *Configuration) Clone() *Configuration {
	points := make([]Tensor, len(c.points))
	copy(points, c.points)
	return &Configuration{
		resolution: c.resolution,
		points:     points,
	}
}

// Zero clears every sample point in place.
func (c *Configuration) Zero() {
	for i := range c.points {
		c.points[i] = Tensor{}
	}
}

// IsZero reports whether every sample point is the zero tensor.
func (c *Configuration) IsZero() bool {
	for i := range c.points {
		if !c.points[i].IsZero() {
			return false
		}
	}
	return true
}

// Norm2 returns the Euclidean sum of squared components over all points.
func (c *Configuration) Norm2() float64 {
	var sum float64
	for i := range c.points {
		sum += c.points[i].Norm2()
	}
	return sum
}

// FieldStrength returns the effective field strength in Tesla derived from
// the total tensor magnitude.
func (c *Configuration) FieldStrength() float64 {
	return math.Sqrt(c.Norm2()) * teslaPerUnit
}

// TotalEnergyDensity returns the scalar energy density in J/m^3 derived
// from the total field magnitude. This is the envelope figure the
// validator compares against a profile's density limit; it is always
// non-negative regardless of per-point sign.
func (c *Configuration) TotalEnergyDensity() float64 {
	return densityCoefficient * c.Norm2()
}

// MinEnergyDensity returns the minimum per-point energy density.
// A zero-length configuration returns 0.
func (c *Configuration) MinEnergyDensity() float64 {
	if len(c.points) == 0 {
		return 0
	}
	min := EnergyDensity(c.points[0])
	for i := 1; i < len(c.points); i++ {
		if d := EnergyDensity(c.points[i]); d < min {
			min = d
		}
	}
	return min
}

// ComplianceRatio returns the fraction of sample points with non-negative
// energy density.
func (c *Configuration) ComplianceRatio() float64 {
	if len(c.points) == 0 {
		return 1.0
	}
	compliant := 0
	for i := range c.points {
		if EnergyDensity(c.points[i]) >= 0 {
			compliant++
		}
	}
	return float64(compliant) / float64(len(c.points))
}

// MeanEnergyDensity returns the mean per-point energy density.
func (c *Configuration) MeanEnergyDensity() float64 {
	if len(c.points) == 0 {
		return 0
	}
	var sum float64
	for i := range c.points {
		sum += EnergyDensity(c.points[i])
	}
	return sum / float64(len(c.points))
}

// StressSample returns the component-wise mean tensor over the grid. The
// monitor caches this as the representative stress sample in metrics.
func (c *Configuration) StressSample() Tensor {
	var out Tensor
	if len(c.points) == 0 {
		return out
	}
	for i := range c.points {
		for mu := 0; mu < 4; mu++ {
			for nu := 0; nu < 4; nu++ {
				out[mu][nu] += c.points[i][mu][nu]
			}
		}
	}
	inv := 1.0 / float64(len(c.points))
	for mu := 0; mu < 4; mu++ {
		for nu := 0; nu < 4; nu++ {
			out[mu][nu] *= inv
		}
	}
	return out
}

// Stability returns a [0,1] stability score derived from the ratio of the
// per-component standard deviation to the mean absolute magnitude. A uniform
// or empty field scores 1.
func (c *Configuration) Stability() float64 {
	n := len(c.points) * 16
	if n == 0 {
		return 1.0
	}

	var sum, sumAbs float64
	for i := range c.points {
		for mu := 0; mu < 4; mu++ {
			for nu := 0; nu < 4; nu++ {
				v := c.points[i][mu][nu]
				sum += v
				sumAbs += math.Abs(v)
			}
		}
	}
	mean := sum / float64(n)
	meanAbs := sumAbs / float64(n)
	if meanAbs == 0 {
		return 1.0
	}

	var variance float64
	for i := range c.points {
		for mu := 0; mu < 4; mu++ {
			for nu := 0; nu < 4; nu++ {
				d := c.points[i][mu][nu] - mean
				variance += d * d
			}
		}
	}
	stddev := math.Sqrt(variance / float64(n))

	return 1.0 / (1.0 + stddev/meanAbs)
}
