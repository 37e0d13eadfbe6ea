package orbitalguard

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"
)

// ExportConfig configures the exporting of a screening run.
type ExportConfig struct {
	Filename  string
	Tracks    bool
	Timestamp bool
}

// IsUseless returns whether this config doesn't actually do anything.
func (c ExportConfig) IsUseless() bool {
	return c.Filename == ""
}

// trackStateJSON is one state sample on the wire: epoch as Unix
// milliseconds, position in km and velocity in km/s.
type trackStateJSON struct {
	T int64      `json:"t"`
	R [3]float64 `json:"r"`
	V [3]float64 `json:"v"`
}

// trackJSON is a named trajectory on the wire.
type trackJSON struct {
	Name   string           `json:"name"`
	States []trackStateJSON `json:"states"`
}

// encounterJSON is one close approach on the wire. Distances are reported
// in meters and speeds in m/s.
type encounterJSON struct {
	AID         string  `json:"aId"`
	BID         string  `json:"bId"`
	TCAUTC      string  `json:"tcaUtc"`
	MissMeters  float64 `json:"missMeters"`
	RelSpeedMps float64 `json:"relSpeedMps"`
	PcProxy     float64 `json:"pcProxy"`
	Severity    string  `json:"severity"`
}

// maneuverJSON is one planned burn on the wire; delta-V in m/s.
type maneuverJSON struct {
	ID         string     `json:"id"`
	EpochUTC   string     `json:"epochUtc"`
	DeltaVMps  [3]float64 `json:"deltaVMps"`
	FuelCostKg float64    `json:"fuelCostKg"`
}

// reportJSON is the full screening report.
type reportJSON struct {
	Generated  string          `json:"generated"`
	Tracks     []trackJSON     `json:"tracks,omitempty"`
	Encounters []encounterJSON `json:"encounters"`
	Maneuvers  []maneuverJSON  `json:"maneuvers,omitempty"`
}

func trackToJSON(t Track) trackJSON {
	out := trackJSON{Name: t.Name, States: make([]trackStateJSON, len(t.Samples))}
	for i, s := range t.Samples {
		out.States[i] = trackStateJSON{
			T: int64(JDToUnixMs(s.Epoch)),
			R: [3]float64{s.R[0], s.R[1], s.R[2]},
			V: [3]float64{s.V[0], s.V[1], s.V[2]},
		}
	}
	return out
}

func encounterToJSON(e Encounter) encounterJSON {
	return encounterJSON{
		AID:         e.A,
		BID:         e.B,
		TCAUTC:      JDToTime(e.TCA).UTC().Format(time.RFC3339),
		MissMeters:  e.MissDistance * 1000,
		RelSpeedMps: e.RelativeSpeed * 1000,
		PcProxy:     e.Probability,
		Severity:    e.Severity.String(),
	}
}

func maneuverToJSON(m Maneuver) maneuverJSON {
	return maneuverJSON{
		ID:         m.ID,
		EpochUTC:   JDToTime(m.Epoch).UTC().Format(time.RFC3339),
		DeltaVMps:  [3]float64{m.DeltaV[0], m.DeltaV[1], m.DeltaV[2]},
		FuelCostKg: m.FuelCost,
	}
}

// WriteReport marshals a full screening report to w.
func WriteReport(w io.Writer, tracks []Track, encs []Encounter, mans []Maneuver, includeTracks bool) error {
	rep := reportJSON{
		Generated:  time.Now().UTC().Format(time.RFC3339),
		Encounters: make([]encounterJSON, len(encs)),
	}
	for i, e := range encs {
		rep.Encounters[i] = encounterToJSON(e)
	}
	if includeTracks {
		rep.Tracks = make([]trackJSON, len(tracks))
		for i, t := range tracks {
			rep.Tracks[i] = trackToJSON(t)
		}
	}
	for _, m := range mans {
		rep.Maneuvers = append(rep.Maneuvers, maneuverToJSON(m))
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rep)
}

// ExportReport writes the report to the file named by conf, optionally
// timestamping the filename.
func ExportReport(conf ExportConfig, tracks []Track, encs []Encounter, mans []Maneuver) error {
	if conf.IsUseless() {
		return fmt.Errorf("%w: no output filename", ErrInvalidInput)
	}
	filename := conf.Filename
	if conf.Timestamp {
		t := time.Now()
		filename = fmt.Sprintf("%s-%d-%02d-%02dT%02d.%02d.%02d.json", filename, t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second())
	}
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()
	return WriteReport(f, tracks, encs, mans, conf.Tracks)
}

// StreamEncounters streams encounters from the channel to w as a JSON
// array, one element per encounter, until the channel closes.
func StreamEncounters(w io.Writer, encChan <-chan Encounter) error {
	if _, err := io.WriteString(w, "[\n"); err != nil {
		return err
	}
	first := true
	for e := range encChan {
		if !first {
			if _, err := io.WriteString(w, ",\n"); err != nil {
				return err
			}
		}
		first = false
		buf, err := json.Marshal(encounterToJSON(e))
		if err != nil {
			return err
		}
		if _, err := w.Write(buf); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "\n]\n")
	return err
}
