package orbitalguard

import (
	"testing"
)

func TestThrusters(t *testing.T) {
	for _, th := range []Thruster{Chemical{}, HallEffect{}, NewGenericThruster(450, 0.9)} {
		if th.Isp() <= 0 {
			t.Fatalf("%T has a non-positive Isp", th)
		}
		if th.Efficiency() <= 0 || th.Efficiency() > 1 {
			t.Fatalf("%T efficiency %f out of (0, 1]", th, th.Efficiency())
		}
	}
	// Electric propulsion trades thrust for a much higher Isp.
	if (HallEffect{}).Isp() <= (Chemical{}).Isp() {
		t.Fatal("electric Isp should exceed chemical")
	}
}
