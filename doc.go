// Package orbitalguard propagates Earth-orbiting objects from their
// two-line element sets, screens pairs of trajectories for close
// approaches, and plans impulsive collision-avoidance burns.
//
// Propagation is analytic Keplerian motion with first-order secular J2
// corrections. Screening compares time-synchronized track samples, bands
// the closest approach into a severity, and attaches a logistic proxy
// probability. All positions are km in the Earth-centered inertial frame,
// velocities km/s, and epochs Julian dates.
package orbitalguard
