package orbitalguard

import (
	"errors"
	"strings"
	"testing"

	kitlog "github.com/go-kit/kit/log"
	"gonum.org/v1/gonum/floats/scalar"
)

const (
	issName  = "ISS (ZARYA)"
	issLine1 = "1 25544U 98067A   08264.51782528 -.00002182  00000-0 -11606-4 0  2927"
	issLine2 = "2 25544  51.6416 247.4627 0006703 130.5360 325.0288 15.72125391563537"
)

func TestParseTLE(t *testing.T) {
	el, err := ParseTLE(issName, issLine1, issLine2)
	if err != nil {
		t.Fatalf("ParseTLE: %s", err)
	}
	if el.Name != issName {
		t.Fatalf("name %q", el.Name)
	}
	if !scalar.EqualWithinAbs(Rad2deg(el.Inclination), 51.6416, 1e-9) {
		t.Fatalf("inclination %f", Rad2deg(el.Inclination))
	}
	if !scalar.EqualWithinAbs(Rad2deg(el.RAAN), 247.4627, 1e-9) {
		t.Fatalf("RAAN %f", Rad2deg(el.RAAN))
	}
	if !scalar.EqualWithinAbs(el.Eccentricity, 0.0006703, 1e-12) {
		t.Fatalf("eccentricity %f", el.Eccentricity)
	}
	if !scalar.EqualWithinAbs(Rad2deg(el.ArgPerigee), 130.5360, 1e-9) {
		t.Fatalf("argument of perigee %f", Rad2deg(el.ArgPerigee))
	}
	if !scalar.EqualWithinAbs(Rad2deg(el.MeanAnomaly), 325.0288, 1e-9) {
		t.Fatalf("mean anomaly %f", Rad2deg(el.MeanAnomaly))
	}
	if !scalar.EqualWithinAbs(el.MeanMotion, 15.72125391, 1e-12) {
		t.Fatalf("mean motion %f", el.MeanMotion)
	}
	if !scalar.EqualWithinAbs(el.Epoch, tleEpochToJD(8, 264.51782528), 1e-9) {
		t.Fatalf("epoch %f", el.Epoch)
	}
}

func TestParseTLEInvalid(t *testing.T) {
	if _, err := ParseTLE("X", "1 bogus", "2 bogus"); !errors.Is(err, ErrInvalidInput) {
		t.Fatal("short lines accepted")
	}
	// Swapped line numbers.
	if _, err := ParseTLE(issName, issLine2, issLine1); !errors.Is(err, ErrInvalidInput) {
		t.Fatal("swapped lines accepted")
	}
	// Corrupted numeric field.
	bad := issLine2[:10] + "x" + issLine2[11:]
	if _, err := ParseTLE(issName, issLine1, bad); !errors.Is(err, ErrInvalidInput) {
		t.Fatal("corrupted inclination accepted")
	}
}

func TestParseTLESet(t *testing.T) {
	data := strings.Join([]string{
		issName, issLine1, issLine2,
		"BROKEN", "1 short", "2 short",
		issName, issLine1, issLine2,
	}, "\n")
	els, err := ParseTLESet(strings.NewReader(data), kitlog.NewNopLogger())
	if err != nil {
		t.Fatalf("ParseTLESet: %s", err)
	}
	// The broken record is skipped, both valid ones survive.
	if len(els) != 2 {
		t.Fatalf("expected 2 elements, got %d", len(els))
	}
}
