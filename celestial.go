package orbitalguard

// CelestialObject defines the central body of a propagation.
type CelestialObject struct {
	Name   string
	Radius float64 // Equatorial radius (km)
	μ      float64 // Gravitational parameter (km³/s²)
	J2     float64 // Second zonal harmonic
}

// GM returns μ (which is unexported because it's a lowercase letter)
func (c CelestialObject) GM() float64 {
	return c.μ
}

// String implements the Stringer interface.
func (c CelestialObject) String() string {
	return c.Name + " body"
}

// Equals returns whether the provided celestial object is the same.
func (c *CelestialObject) Equals(b CelestialObject) bool {
	return c.Name == b.Name && c.Radius == b.Radius && c.μ == b.μ && c.J2 == b.J2
}

/* Definitions */

// Earth is home. All tracked objects in this repo orbit it.
var Earth = CelestialObject{"Earth", 6378.1363, 3.98600433e5, 1082.6269e-6}
