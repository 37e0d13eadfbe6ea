package orbitalguard

import (
	"fmt"
	"math"
	"time"
)

const (
	// maxIDLen bounds every object identifier carried by this package.
	// Longer identifiers are truncated and kept, never rejected.
	maxIDLen = 64
)

// boundID applies the package-wide identifier policy: truncate to maxIDLen
// bytes and continue.
func boundID(id string) string {
	if len(id) > maxIDLen {
		return id[:maxIDLen]
	}
	return id
}

// Elements defines a tracked object via the orbital elements of its reference
// epoch. It is produced once by parsing and is never mutated afterwards: all
// derived quantities are returned as fresh values.
type Elements struct {
	Name         string  // Object identifier, bounded by boundID
	Epoch        float64 // Reference epoch (Julian date)
	MeanMotion   float64 // Mean motion (revolutions per day)
	Eccentricity float64
	Inclination  float64 // radians
	RAAN         float64 // Right ascension of the ascending node (radians)
	ArgPerigee   float64 // Argument of perigee (radians)
	MeanAnomaly  float64 // radians
	BStar        float64 // B* drag term, stored but not modeled
	NDot         float64 // First derivative of mean motion
	NDDot        float64 // Second derivative of mean motion
}

// Validate returns ErrInvalidInput if these elements cannot be propagated.
func (e Elements) Validate() error {
	if e.Eccentricity < 0 || e.Eccentricity >= 1 {
		return fmt.Errorf("%w: eccentricity %f not in [0,1)", ErrInvalidInput, e.Eccentricity)
	}
	if e.MeanMotion <= 0 {
		return fmt.Errorf("%w: mean motion %f rev/day", ErrInvalidInput, e.MeanMotion)
	}
	return nil
}

// MeanMotionRad returns the mean motion in rad/s.
func (e Elements) MeanMotionRad() float64 {
	return e.MeanMotion * 2 * math.Pi / secondsPerDay
}

// SemiMajorAxis derives the semi-major axis (km) from the mean motion via
// n²a³ = μ, keeping both consistent by construction.
func (e Elements) SemiMajorAxis() float64 {
	n := e.MeanMotionRad()
	return math.Cbrt(Earth.GM() / (n * n))
}

// SemiParameter returns the semi-latus rectum (km).
func (e Elements) SemiParameter() float64 {
	a := e.SemiMajorAxis()
	return a * (1 - e.Eccentricity*e.Eccentricity)
}

// Apoapsis returns the apoapsis radius (km).
func (e Elements) Apoapsis() float64 {
	return e.SemiMajorAxis() * (1 + e.Eccentricity)
}

// Periapsis returns the periapsis radius (km).
func (e Elements) Periapsis() float64 {
	return e.SemiMajorAxis() * (1 - e.Eccentricity)
}

// Period returns the orbital period.
func (e Elements) Period() time.Duration {
	// The time package does not trivially handle fractions of a second, so
	// let's compute this in a convoluted way...
	seconds := 2 * math.Pi * math.Sqrt(math.Pow(e.SemiMajorAxis(), 3)/Earth.GM())
	duration, _ := time.ParseDuration(fmt.Sprintf("%.6fs", seconds))
	return duration
}

// String implements the stringer interface.
func (e Elements) String() string {
	return fmt.Sprintf("%s: a=%.1f e=%.6f i=%.3f Ω=%.3f ω=%.3f M=%.3f n=%.4f@%f",
		e.Name, e.SemiMajorAxis(), e.Eccentricity, Rad2deg(e.Inclination),
		Rad2deg(e.RAAN), Rad2deg(e.ArgPerigee), Rad2deg(e.MeanAnomaly),
		e.MeanMotion, e.Epoch)
}
