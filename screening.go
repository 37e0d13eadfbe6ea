package orbitalguard

import (
	"fmt"
	"math"
	"sort"
)

// Severity ranks the hazard of a close approach.
type Severity int

const (
	SeverityNone Severity = iota
	SeverityLow
	SeverityMedium
	SeverityHigh
	SeverityCrash
)

func (s Severity) String() string {
	switch s {
	case SeverityNone:
		return "NONE"
	case SeverityLow:
		return "LOW"
	case SeverityMedium:
		return "MEDIUM"
	case SeverityHigh:
		return "HIGH"
	case SeverityCrash:
		return "CRASH"
	}
	return fmt.Sprintf("Severity(%d)", int(s))
}

// Track is a named sequence of propagated states, ordered by epoch.
type Track struct {
	Name    string
	Samples []StateSample
}

// Encounter is one detected close approach between two tracks. Distances
// are in km, speeds in km/s, TCA is a Julian date.
type Encounter struct {
	A             string
	B             string
	TCA           float64
	MissDistance  float64
	RelativeSpeed float64
	Severity      Severity
	Probability   float64
}

// SeverityBand maps a miss-distance threshold (km, inclusive upper bound)
// to a severity. Bands must be ordered by increasing threshold.
type SeverityBand struct {
	MaxDistance float64
	Severity    Severity
}

// ScreenConfig parameterizes pairwise screening. Two stock
// parameterizations exist, KilometerBands and MeterBands; there is no
// default, callers must pick one.
type ScreenConfig struct {
	// SyncTolerance is the maximum epoch difference, in seconds, under
	// which two samples are compared.
	SyncTolerance float64
	// Bands classify miss distance; Default applies past the last band.
	Bands   []SeverityBand
	Default Severity
	// LogisticK and LogisticD0 shape the proxy-probability curve
	// p = 1/(1+exp(k(d-d0))).
	LogisticK  float64
	LogisticD0 float64
	// VelocityNorm scales the relative-speed probability factor
	// 1 + relSpeed/VelocityNorm; zero disables the factor.
	VelocityNorm float64
}

// KilometerBands is the kilometer-scale screening parameterization: crash
// under 1 km, stepped bands out to 25 km, and a logistic curve with slope k
// (1/km) centered on d0 (km).
func KilometerBands(k, d0 float64) ScreenConfig {
	return ScreenConfig{
		SyncTolerance: 1.0,
		Bands: []SeverityBand{
			{1, SeverityCrash},
			{5, SeverityHigh},
			{25, SeverityMedium},
		},
		Default:      SeverityLow,
		LogisticK:    k,
		LogisticD0:   d0,
		VelocityNorm: 10,
	}
}

// MeterBands is the parameterization of the meter-denominated variant:
// the same 1, 5 and 25 km edges (thresholds stay in km, the unit Screen
// compares in) under a three-level scale topping out at High, a logistic
// at k = 1.0/km and d0 = 2 km, and no velocity factor.
func MeterBands() ScreenConfig {
	return ScreenConfig{
		SyncTolerance: 1.0,
		Bands: []SeverityBand{
			{1, SeverityHigh},
			{5, SeverityMedium},
			{25, SeverityLow},
		},
		Default:    SeverityNone,
		LogisticK:  1.0,
		LogisticD0: 2.0,
	}
}

// adjusted shrinks the miss distance by the relative-speed factor, so a
// faster closing speed reads as a closer approach. The adjustment feeds
// the probability proxy only; severity bands the raw distance.
func (cfg ScreenConfig) adjusted(d, relSpeed float64) float64 {
	if cfg.VelocityNorm > 0 {
		if factor := 1 + relSpeed/cfg.VelocityNorm; factor > 0 {
			return d / factor
		}
	}
	return d
}

// LogisticProbability returns the proxy collision probability for a miss
// distance d km closing at relSpeed km/s under cfg. Negative or non-finite
// inputs yield 0. This is a screening heuristic, not a covariance based Pc.
func (cfg ScreenConfig) LogisticProbability(d, relSpeed float64) float64 {
	if d < 0 || math.IsNaN(d) || math.IsInf(d, 0) {
		return 0
	}
	dAdj := cfg.adjusted(d, relSpeed)
	return 1 / (1 + math.Exp(cfg.LogisticK*(dAdj-cfg.LogisticD0)))
}

// ClassifySeverity bands the raw miss distance. Severity is a monotone
// step function of distance alone; the relative speed only shapes the
// probability proxy.
func (cfg ScreenConfig) ClassifySeverity(d float64) Severity {
	for _, b := range cfg.Bands {
		if d <= b.MaxDistance {
			return b.Severity
		}
	}
	return cfg.Default
}

// Screen walks two tracks in epoch order and returns their closest
// approach, or nil when the tracks never overlap within the sync tolerance
// or never come within maxKm of each other. One encounter at most is
// reported per pair; distinct passes inside the window are not separated.
// Screening is symmetric: swapping the tracks yields the same encounter
// with A and B exchanged.
func (cfg ScreenConfig) Screen(a, b Track, maxKm float64) (*Encounter, error) {
	if len(a.Samples) == 0 || len(b.Samples) == 0 {
		return nil, fmt.Errorf("%w: empty track", ErrInvalidInput)
	}
	tolDays := cfg.SyncTolerance / secondsPerDay
	best := Encounter{A: a.Name, B: b.Name, MissDistance: math.Inf(1)}

	j := 0
	for _, sa := range a.Samples {
		// Advance b's cursor to the sample nearest sa in time.
		for j+1 < len(b.Samples) &&
			math.Abs(b.Samples[j+1].Epoch-sa.Epoch) <= math.Abs(b.Samples[j].Epoch-sa.Epoch) {
			j++
		}
		sb := b.Samples[j]
		if math.Abs(sb.Epoch-sa.Epoch) > tolDays {
			continue
		}
		d := norm([]float64{sa.R[0] - sb.R[0], sa.R[1] - sb.R[1], sa.R[2] - sb.R[2]})
		if d < best.MissDistance {
			best.MissDistance = d
			best.TCA = sa.Epoch
			best.RelativeSpeed = norm([]float64{sa.V[0] - sb.V[0], sa.V[1] - sb.V[1], sa.V[2] - sb.V[2]})
		}
	}
	if math.IsInf(best.MissDistance, 1) || best.MissDistance > maxKm {
		return nil, nil
	}
	best.Severity = cfg.ClassifySeverity(best.MissDistance)
	best.Probability = cfg.LogisticProbability(best.MissDistance, best.RelativeSpeed)
	return &best, nil
}

// ScreenAll screens every unordered pair of tracks within maxKm and
// returns the encounters found, unsorted, along with the number of pairs
// that could not be screened. A failing pair is skipped, never aborting
// the run. Pair identifiers keep the input ordering of the track slice.
func (cfg ScreenConfig) ScreenAll(tracks []Track, maxKm float64) ([]Encounter, int) {
	var encs []Encounter
	var failed int
	for i := 0; i < len(tracks); i++ {
		for k := i + 1; k < len(tracks); k++ {
			enc, err := cfg.Screen(tracks[i], tracks[k], maxKm)
			if err != nil {
				failed++
				continue
			}
			if enc != nil {
				encs = append(encs, *enc)
			}
		}
	}
	return encs, failed
}

// riskScore orders encounters for triage: probability weighted by the
// severity band, so a HIGH at p=0.5 outranks a LOW at p=0.9.
func riskScore(e Encounter) float64 {
	return e.Probability * float64(e.Severity+1)
}

// SortByRisk stable-sorts encounters by descending risk score.
func SortByRisk(encs []Encounter) {
	sort.SliceStable(encs, func(i, j int) bool {
		return riskScore(encs[i]) > riskScore(encs[j])
	})
}

// SortByTCA stable-sorts encounters chronologically.
func SortByTCA(encs []Encounter) {
	sort.SliceStable(encs, func(i, j int) bool {
		return encs[i].TCA < encs[j].TCA
	})
}

// FilterByProbability compacts encs in place, keeping encounters at or
// above minP, and returns the number kept.
func FilterByProbability(encs []Encounter, minP float64) int {
	n := 0
	for _, e := range encs {
		if e.Probability >= minP {
			encs[n] = e
			n++
		}
	}
	return n
}
