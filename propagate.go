package orbitalguard

import (
	"fmt"
	"math"
)

// StateSample is one propagated point of a track: position and velocity in
// the Earth-centered inertial frame, in km and km/s, stamped with a Julian
// date epoch.
type StateSample struct {
	Epoch float64
	R     []float64
	V     []float64
}

// j2Secular holds the secularly corrected rates of a two-line element set.
// The J2 zonal harmonic causes the node and the argument of perigee to
// drift linearly in time while the shape of the orbit stays fixed. Rates
// are in rad/s, the corrected semi-major axis in km.
type j2Secular struct {
	a     float64 // corrected semi-major axis
	n     float64 // corrected mean motion (rad/s)
	raanΔ float64 // nodal regression rate (rad/s)
	argpΔ float64 // apsidal rotation rate (rad/s)
}

// newJ2Secular computes the first-order secular J2 correction for el, cf.
// Vallado 4th edition, section 9.6.
func newJ2Secular(el Elements) j2Secular {
	n0 := el.MeanMotionRad()
	a0 := math.Cbrt(Earth.μ / (n0 * n0))
	cosi := math.Cos(el.Inclination)
	e2 := el.Eccentricity * el.Eccentricity

	temp := 1.5 * Earth.J2 * math.Pow(Earth.Radius/a0, 2)
	del1 := temp * (3*cosi*cosi - 1) / math.Pow(1-e2, 1.5)
	a1 := a0 * (1 - del1/3 - del1*del1 - 134*del1*del1*del1/81)
	n1 := math.Sqrt(Earth.μ / (a1 * a1 * a1))

	return j2Secular{
		a:     a1,
		n:     n1,
		raanΔ: -temp * cosi * n1,
		argpΔ: temp * (5*cosi*cosi - 1) * n1 / 2,
	}
}

// solveKepler solves Kepler's equation M = E - e*sin(E) for the eccentric
// anomaly via a Newton-Raphson iteration. The initial guess follows Danby
// for highly eccentric orbits. From Vallado 4th edition, algorithm 2.
func solveKepler(M, e float64) (float64, error) {
	if e < 0 || e >= 1 {
		return 0, fmt.Errorf("%w: eccentricity %f not elliptical", ErrInvalidInput, e)
	}
	const (
		tol     = 1e-10
		maxIter = 30
	)
	E := M + e*math.Sin(M)
	if e >= 0.8 {
		E = M + 0.85*e*sign(math.Sin(M))
	}
	for i := 0; i < maxIter; i++ {
		f := E - e*math.Sin(E) - M
		df := 1 - e*math.Cos(E)
		if math.Abs(df) < 1e-15 {
			return 0, fmt.Errorf("%w: Kepler derivative vanished at E=%f", ErrConvergence, E)
		}
		Δ := f / df
		E -= Δ
		if math.Abs(Δ) < tol {
			return E, nil
		}
	}
	return 0, fmt.Errorf("%w: Kepler's equation did not converge for M=%f e=%f", ErrConvergence, M, e)
}

// Propagate returns the inertial state of el at offsetMin minutes past its
// epoch. Propagation is analytic: the mean anomaly advances at the J2
// corrected mean motion, the node and perigee drift at their secular rates,
// and the perifocal state rotates into ECI. On a numerical failure the
// returned sample carries a zeroed state and a non-nil error.
func Propagate(el Elements, offsetMin float64) (StateSample, error) {
	if err := el.Validate(); err != nil {
		return StateSample{R: make([]float64, 3), V: make([]float64, 3)}, err
	}
	sec := newJ2Secular(el)
	Δt := offsetMin * 60
	epoch := el.Epoch + offsetMin/minutesPerDay

	M := math.Mod(el.MeanAnomaly+sec.n*Δt, 2*math.Pi)
	if M < 0 {
		M += 2 * math.Pi
	}
	Ω := el.RAAN + sec.raanΔ*Δt
	ω := el.ArgPerigee + sec.argpΔ*Δt

	zeroed := StateSample{Epoch: epoch, R: make([]float64, 3), V: make([]float64, 3)}
	E, err := solveKepler(M, el.Eccentricity)
	if err != nil {
		return zeroed, err
	}

	e := el.Eccentricity
	sinν := math.Sqrt(1-e*e) * math.Sin(E) / (1 - e*math.Cos(E))
	cosν := (math.Cos(E) - e) / (1 - e*math.Cos(E))
	ν := math.Atan2(sinν, cosν)

	p := sec.a * (1 - e*e)
	r := p / (1 + e*math.Cos(ν))
	rP := []float64{r * math.Cos(ν), r * math.Sin(ν), 0}
	vFact := math.Sqrt(Earth.μ / p)
	vP := []float64{-vFact * math.Sin(ν), vFact * (e + math.Cos(ν)), 0}

	sample := StateSample{
		Epoch: epoch,
		R:     PQW2ECI(el.Inclination, ω, Ω, rP),
		V:     PQW2ECI(el.Inclination, ω, Ω, vP),
	}
	if !finite(sample.R) || !finite(sample.V) {
		return zeroed, fmt.Errorf("%w: non-finite state at offset %f min", ErrNumericalInstability, offsetMin)
	}
	return sample, nil
}

// GenerateTrack propagates el over [0, durationMin] at stepMin spacing and
// returns the ordered samples. The first failing step aborts the track.
func GenerateTrack(el Elements, durationMin, stepMin float64) ([]StateSample, error) {
	if stepMin <= 0 || durationMin < 0 {
		return nil, fmt.Errorf("%w: duration %f min, step %f min", ErrInvalidInput, durationMin, stepMin)
	}
	n := int(durationMin/stepMin) + 1
	samples := make([]StateSample, 0, n)
	for i := 0; i < n; i++ {
		s, err := Propagate(el, float64(i)*stepMin)
		if err != nil {
			return nil, fmt.Errorf("track %s at step %d: %w", el.Name, i, err)
		}
		samples = append(samples, s)
	}
	return samples, nil
}
