package orbitalguard

import (
	"context"
	"testing"

	kitlog "github.com/go-kit/kit/log"
)

func TestBatchGenerateTracks(t *testing.T) {
	iss := issElements()
	twin := issElements()
	twin.Name = "TWIN"
	bp := NewBatchPropagator(4, 90, 1, kitlog.NewNopLogger())
	tracks, ok, failed := bp.GenerateTracks(context.Background(), []Elements{iss, twin})
	if ok != 2 || failed != 0 {
		t.Fatalf("ok=%d failed=%d", ok, failed)
	}
	if len(tracks) != 2 {
		t.Fatalf("%d tracks", len(tracks))
	}
	for _, tr := range tracks {
		if len(tr.Samples) != 91 {
			t.Fatalf("track %s has %d samples", tr.Name, len(tr.Samples))
		}
	}
}

func TestBatchEmptyAndCancelled(t *testing.T) {
	bp := NewBatchPropagator(2, 90, 1, kitlog.NewNopLogger())
	tracks, ok, failed := bp.GenerateTracks(context.Background(), nil)
	if tracks != nil || ok != 0 || failed != 0 {
		t.Fatal("empty catalog did work")
	}

	// A cancelled context stops feeding jobs; whatever is returned must
	// still be well-formed tracks.
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	els := make([]Elements, 64)
	for i := range els {
		els[i] = issElements()
	}
	tracks, _, _ = bp.GenerateTracks(ctx, els)
	for _, tr := range tracks {
		if len(tr.Samples) == 0 {
			t.Fatal("cancelled run returned an empty track")
		}
	}
}

func TestScreenCatalog(t *testing.T) {
	iss := issElements()
	twin := issElements()
	twin.Name = "TWIN"

	bp := NewBatchPropagator(4, 30, 1, kitlog.NewNopLogger())
	encs, err := bp.ScreenCatalog(context.Background(), []Elements{iss, twin}, KilometerBands(0.5, 5), 50)
	if err != nil {
		t.Fatal(err)
	}
	if len(encs) != 1 {
		t.Fatalf("%d encounters", len(encs))
	}
	if encs[0].MissDistance > 1e-6 {
		t.Fatalf("coincident catalog misses by %f km", encs[0].MissDistance)
	}
}
