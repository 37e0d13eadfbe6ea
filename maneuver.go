package orbitalguard

import (
	"fmt"
	"math"
)

// FuelCostUnknown marks a maneuver whose propellant cost has not been
// evaluated against a specific vehicle.
const FuelCostUnknown = -1.0

// g0 is standard gravity in m/s^2, used in the rocket equation.
const g0 = 9.80665

// Maneuver is a single impulsive burn: an epoch (Julian date), a delta-V
// vector in m/s in the inertial frame, and the propellant cost in kg once
// evaluated.
type Maneuver struct {
	ID       string
	Epoch    float64
	DeltaV   []float64
	FuelCost float64
}

// Magnitude returns the burn magnitude in m/s.
func (m Maneuver) Magnitude() float64 {
	return norm(m.DeltaV)
}

func (m Maneuver) String() string {
	return fmt.Sprintf("%s: %.3f m/s at JD %.6f", m.ID, m.Magnitude(), m.Epoch)
}

// FuelConsumption evaluates the rocket equation for a burn of deltaV m/s on
// a vehicle of dryMassKg plus propellantKg, with the specific impulse in
// seconds. An efficiency at or below zero degrades to unity; otherwise the
// effective delta-V is deltaV/efficiency. For very small burns the
// exponential is replaced by its linear expansion to avoid cancellation.
// Returns ErrInsufficientPropellant when the demanded propellant exceeds
// what is available, so callers can tell a small burn from an impossible
// one.
func FuelConsumption(deltaV, isp, dryMassKg, propellantKg, efficiency float64) (float64, error) {
	if deltaV < 0 || isp <= 0 || dryMassKg <= 0 || propellantKg < 0 {
		return 0, fmt.Errorf("%w: deltaV=%f isp=%f dry=%f prop=%f", ErrInvalidInput, deltaV, isp, dryMassKg, propellantKg)
	}
	if efficiency <= 0 {
		efficiency = 1.0
	}
	wet := dryMassKg + propellantKg
	ratio := (deltaV / efficiency) / (isp * g0)
	var used float64
	if ratio < 1e-3 {
		used = wet * ratio
	} else {
		used = wet * (1 - math.Exp(-ratio))
	}
	if used > propellantKg {
		return used, fmt.Errorf("%w: need %.3f kg, have %.3f kg", ErrInsufficientPropellant, used, propellantKg)
	}
	return used, nil
}

// PlanAvoidance plans a single prograde (along-track) burn, executed at
// the encounter epoch encJD, sized to displace the vehicle by targetKm
// over the lead time from el's reference epoch. The burn direction follows
// the velocity at the reference epoch, so the displacement accumulates
// along track, the cheapest direction for a given separation. The id is a
// pure function of the execution epoch, so identical inputs always plan
// the identical maneuver. Fails with ErrPastEncounter when the encounter
// precedes the epoch and with ErrExceedsDeltaVBudget when the required
// delta-V exceeds budgetMps m/s.
func PlanAvoidance(el Elements, encJD, targetKm, budgetMps float64) (Maneuver, error) {
	if targetKm <= 0 {
		return Maneuver{}, fmt.Errorf("%w: target separation %f km", ErrInvalidInput, targetKm)
	}
	Δt := (encJD - el.Epoch) * secondsPerDay
	if Δt <= 0 {
		return Maneuver{}, fmt.Errorf("%w: encounter at JD %f precedes epoch JD %f", ErrPastEncounter, encJD, el.Epoch)
	}
	reqDv := targetKm * 1000 / Δt
	if reqDv > budgetMps {
		return Maneuver{}, fmt.Errorf("%w: need %.3f m/s, budget %.3f m/s", ErrExceedsDeltaVBudget, reqDv, budgetMps)
	}
	state, err := Propagate(el, 0)
	if err != nil {
		return Maneuver{}, err
	}
	dir := unit(state.V)
	return Maneuver{
		ID:       fmt.Sprintf("AVOID_%d", int64(jdToUnixSeconds(encJD)*1e6)),
		Epoch:    encJD,
		DeltaV:   []float64{reqDv * dir[0], reqDv * dir[1], reqDv * dir[2]},
		FuelCost: FuelCostUnknown,
	}, nil
}

// EvaluateFuel stamps m with its propellant cost on the given thruster and
// vehicle, returning the updated maneuver.
func EvaluateFuel(m Maneuver, th Thruster, dryMassKg, propellantKg float64) (Maneuver, error) {
	used, err := FuelConsumption(m.Magnitude(), th.Isp(), dryMassKg, propellantKg, th.Efficiency())
	if err != nil {
		return m, err
	}
	m.FuelCost = used
	return m, nil
}

// ApplyManeuver propagates el to the maneuver epoch, adds the burn to the
// velocity, and returns the post-burn state. The position is untouched, the
// burn being impulsive.
func ApplyManeuver(el Elements, m Maneuver) (StateSample, error) {
	offsetMin := (m.Epoch - el.Epoch) * minutesPerDay
	if offsetMin < 0 {
		return StateSample{}, fmt.Errorf("%w: maneuver at JD %f precedes epoch", ErrPastEncounter, m.Epoch)
	}
	state, err := Propagate(el, offsetMin)
	if err != nil {
		return StateSample{}, err
	}
	for i := 0; i < 3; i++ {
		state.V[i] += m.DeltaV[i] / 1000 // m/s to km/s
	}
	state.Epoch = m.Epoch
	return state, nil
}

func jdToUnixSeconds(jd float64) float64 {
	return (jd - unixEpochJD) * secondsPerDay
}
