package orbitalguard

import "errors"

// Every failure of this package wraps exactly one of the sentinels below, so
// callers can classify with errors.Is without parsing messages. No failure is
// ever parked in package-level state: each call returns its own error, and
// only a Session retains its own last failure.
var (
	// ErrInvalidInput flags a malformed record or argument, such as an
	// eccentricity outside [0,1) or a non-positive mean motion.
	ErrInvalidInput = errors.New("invalid input")

	// ErrConvergence flags a Kepler solve which did not converge within the
	// iteration budget, or hit a numerically zero derivative.
	ErrConvergence = errors.New("kepler solver did not converge")

	// ErrNumericalInstability flags a propagation which produced NaN or Inf
	// components. The returned state is zeroed.
	ErrNumericalInstability = errors.New("propagation produced non-finite state")

	// ErrPastEncounter flags an avoidance plan requested for an encounter at
	// or before the primary's reference epoch.
	ErrPastEncounter = errors.New("encounter time is not in the future")

	// ErrExceedsDeltaVBudget flags an avoidance plan whose required Δv is
	// above the caller's maximum.
	ErrExceedsDeltaVBudget = errors.New("required Δv exceeds budget")

	// ErrInsufficientPropellant flags a burn which needs more propellant than
	// is available. It is distinct from a clamped small burn.
	ErrInsufficientPropellant = errors.New("insufficient propellant")

	// ErrInsufficientBuffer flags a caller-supplied output buffer too small
	// for the full result set.
	ErrInsufficientBuffer = errors.New("output buffer too small")
)
