package orbitalguard

import (
	"bytes"
	"encoding/json"
	"testing"
)

func TestWriteReport(t *testing.T) {
	a, b := syntheticPass(1)
	cfg := KilometerBands(0.5, 5)
	enc, err := cfg.Screen(a, b, 100)
	if err != nil {
		t.Fatal(err)
	}
	man := Maneuver{ID: "AVOID_1", Epoch: 2451545.0, DeltaV: []float64{0.1, 0, 0}, FuelCost: FuelCostUnknown}

	var buf bytes.Buffer
	if err := WriteReport(&buf, []Track{a, b}, []Encounter{*enc}, []Maneuver{man}, true); err != nil {
		t.Fatal(err)
	}

	var rep struct {
		Tracks []struct {
			Name   string `json:"name"`
			States []struct {
				T int64      `json:"t"`
				R [3]float64 `json:"r"`
				V [3]float64 `json:"v"`
			} `json:"states"`
		} `json:"tracks"`
		Encounters []struct {
			AID         string  `json:"aId"`
			BID         string  `json:"bId"`
			TCAUTC      string  `json:"tcaUtc"`
			MissMeters  float64 `json:"missMeters"`
			RelSpeedMps float64 `json:"relSpeedMps"`
			PcProxy     float64 `json:"pcProxy"`
			Severity    string  `json:"severity"`
		} `json:"encounters"`
		Maneuvers []struct {
			ID string `json:"id"`
		} `json:"maneuvers"`
	}
	if err := json.Unmarshal(buf.Bytes(), &rep); err != nil {
		t.Fatalf("report is not valid JSON: %s", err)
	}
	if len(rep.Tracks) != 2 || len(rep.Encounters) != 1 || len(rep.Maneuvers) != 1 {
		t.Fatalf("report shape: %d tracks %d encounters %d maneuvers", len(rep.Tracks), len(rep.Encounters), len(rep.Maneuvers))
	}
	e := rep.Encounters[0]
	if e.AID != "ALPHA" || e.BID != "BRAVO" {
		t.Fatalf("identifiers %s %s", e.AID, e.BID)
	}
	// km to meters and km/s to m/s on the wire.
	if e.MissMeters < 999 || e.MissMeters > 1001 {
		t.Fatalf("missMeters %f", e.MissMeters)
	}
	if e.RelSpeedMps < 14999 || e.RelSpeedMps > 15001 {
		t.Fatalf("relSpeedMps %f", e.RelSpeedMps)
	}
	if e.Severity != "CRASH" {
		t.Fatalf("severity %q", e.Severity)
	}
	if rep.Tracks[0].States[0].T == 0 {
		t.Fatal("state epoch missing on the wire")
	}

	// Without tracks the report omits them entirely.
	buf.Reset()
	if err := WriteReport(&buf, []Track{a, b}, []Encounter{*enc}, nil, false); err != nil {
		t.Fatal(err)
	}
	if bytes.Contains(buf.Bytes(), []byte(`"tracks"`)) {
		t.Fatal("tracks present in a trackless report")
	}
}

func TestStreamEncounters(t *testing.T) {
	ch := make(chan Encounter, 3)
	ch <- Encounter{A: "A", B: "B", Severity: SeverityLow, Probability: 0.2}
	ch <- Encounter{A: "C", B: "D", Severity: SeverityHigh, Probability: 0.8}
	close(ch)

	var buf bytes.Buffer
	if err := StreamEncounters(&buf, ch); err != nil {
		t.Fatal(err)
	}
	var encs []map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &encs); err != nil {
		t.Fatalf("stream is not a JSON array: %s", err)
	}
	if len(encs) != 2 {
		t.Fatalf("streamed %d encounters", len(encs))
	}
}

func TestExportConfigUseless(t *testing.T) {
	if !(ExportConfig{}).IsUseless() {
		t.Fatal("empty config should be useless")
	}
	if (ExportConfig{Filename: "out.json"}).IsUseless() {
		t.Fatal("named config should not be useless")
	}
}
