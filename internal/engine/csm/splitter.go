// Package csm implements cascaded shadow mapping for the directional sun
// light: frustum slicing, per-cascade shadow camera fitting in light
// space, and the fragment-stage cascade selection rule.
package csm

import (
	"errors"
	"fmt"

	"github.com/terravista/terravista/pkg/math"
)

// Scheme selects how the camera depth range is split into cascades.
type Scheme int

// Split schemes.
const (
	SchemeUniform Scheme = iota
	SchemeLogarithmic
	SchemePractical
	SchemeCustom
)

// String returns the scheme name.
func (s Scheme) String() string {
	switch s {
	case SchemeUniform:
		return "uniform"
	case SchemeLogarithmic:
		return "logarithmic"
	case SchemePractical:
		return "practical"
	case SchemeCustom:
		return "custom"
	default:
		return fmt.Sprintf("Scheme(%d)", int(s))
	}
}

// ParseScheme converts a config string to a Scheme.
func ParseScheme(name string) (Scheme, error) {
	switch name {
	case "uniform":
		return SchemeUniform, nil
	case "logarithmic", "log":
		return SchemeLogarithmic, nil
	case "practical", "":
		return SchemePractical, nil
	default:
		return SchemePractical, fmt.Errorf("unknown split scheme %q", name)
	}
}

// SplitFunc is a caller-supplied split function for SchemeCustom. It must
// return n strictly increasing fractions of (far-near) ending in 1.
type SplitFunc func(n int, near, far float32) []float32

// DefaultLambda is the uniform/logarithmic blend weight for
// SchemePractical. Logarithmic alone over-allocates resolution to the
// near cascades for typical outdoor scenes, uniform under-allocates.
const DefaultLambda = 0.5

// errNoCustomSplit is reported when SchemeCustom is selected without a
// callback. The controller logs it and keeps the last valid split.
var errNoCustomSplit = errors.New("custom split scheme selected but no split function provided")

// Split returns n cascade boundary fractions in (0, 1] for the given
// depth range. Fractions are strictly increasing and the last is always
// exactly 1 (the final cascade reaches the far plane).
func Split(scheme Scheme, n int, near, far, lambda float32, custom SplitFunc) ([]float32, error) {
	if n < 1 {
		return nil, fmt.Errorf("cascade count must be >= 1, got %d", n)
	}
	if far <= near || near <= 0 {
		return nil, fmt.Errorf("invalid depth range [%g, %g]", near, far)
	}

	if scheme == SchemeCustom {
		if custom == nil {
			return nil, errNoCustomSplit
		}
		fractions := custom(n, near, far)
		if err := validateFractions(fractions, n); err != nil {
			return nil, fmt.Errorf("custom split: %w", err)
		}
		return fractions, nil
	}

	fractions := make([]float32, 0, n)
	for i := 1; i < n; i++ {
		var f float32
		switch scheme {
		case SchemeUniform:
			f = uniformAt(i, n, near, far)
		case SchemeLogarithmic:
			f = logarithmicAt(i, n, near, far)
		case SchemePractical:
			f = math.Lerp(uniformAt(i, n, near, far), logarithmicAt(i, n, near, far), lambda)
		}
		fractions = append(fractions, f)
	}
	return append(fractions, 1), nil
}

// uniformAt returns the uniform boundary fraction at index i.
func uniformAt(i, n int, near, far float32) float32 {
	return (near + float32(i)*(far-near)/float32(n)) / far
}

// logarithmicAt returns the logarithmic boundary fraction at index i.
func logarithmicAt(i, n int, near, far float32) float32 {
	return near * math.Pow(far/near, float32(i)/float32(n)) / far
}

// validateFractions checks a custom split result for the boundary
// invariants: n values, strictly increasing, bounded in (0, 1], last
// exactly 1.
func validateFractions(fractions []float32, n int) error {
	if len(fractions) != n {
		return fmt.Errorf("expected %d fractions, got %d", n, len(fractions))
	}
	prev := float32(0)
	for i, f := range fractions {
		if f <= prev || f > 1 {
			return fmt.Errorf("fraction %d out of order or range: %g", i, f)
		}
		prev = f
	}
	if fractions[n-1] != 1 {
		return fmt.Errorf("last fraction must be 1, got %g", fractions[n-1])
	}
	return nil
}
