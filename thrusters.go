package orbitalguard

// Thruster defines a Thruster interface for propellant accounting.
type Thruster interface {
	// Returns the specific impulse in seconds.
	Isp() float64
	// Returns the propulsive efficiency in (0, 1]; values at or below
	// zero are treated as unity by the fuel model.
	Efficiency() float64
}

/* Available Thrusters */

// Chemical is a bipropellant apogee-class engine.
type Chemical struct{}

// Isp implements the Thruster interface.
func (t Chemical) Isp() float64 {
	return 300
}

// Efficiency implements the Thruster interface.
func (t Chemical) Efficiency() float64 {
	return 1.0
}

// HallEffect is based on a flight-representative Hall effect thruster.
type HallEffect struct{}

// Isp implements the Thruster interface.
func (t HallEffect) Isp() float64 {
	return 3000
}

// Efficiency implements the Thruster interface.
func (t HallEffect) Efficiency() float64 {
	return 0.6
}

// GenericThruster is a generic thruster.
type GenericThruster struct {
	isp        float64
	efficiency float64
}

// Isp implements the Thruster interface.
func (t GenericThruster) Isp() float64 {
	return t.isp
}

// Efficiency implements the Thruster interface.
func (t GenericThruster) Efficiency() float64 {
	return t.efficiency
}

// NewGenericThruster returns a generic thruster.
func NewGenericThruster(isp, efficiency float64) GenericThruster {
	return GenericThruster{isp, efficiency}
}
