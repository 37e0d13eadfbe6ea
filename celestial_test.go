package orbitalguard

import (
	"testing"
)

func TestCelestialObject(t *testing.T) {
	if Earth.GM() != 3.98600433e5 {
		t.Fatalf("Earth μ = %f", Earth.GM())
	}
	if Earth.Radius < 6378 || Earth.Radius > 6379 {
		t.Fatalf("Earth radius = %f", Earth.Radius)
	}
	if Earth.J2 <= 0 {
		t.Fatal("Earth J2 must be positive")
	}
	if Earth.String() != "Earth body" {
		t.Fatalf("stringer %q", Earth.String())
	}
	if !Earth.Equals(Earth) {
		t.Fatal("Earth is not Earth")
	}
	other := Earth
	other.Radius++
	if Earth.Equals(other) {
		t.Fatal("different bodies compare equal")
	}
}
