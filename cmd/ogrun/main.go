package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	kitlog "github.com/go-kit/kit/log"

	orbitalguard "github.com/vaibhav-kodiyan/nova-genisis-orbitalgaurd"
)

// This code reads the scenario, propagates the catalog, screens every pair
// and plans an avoidance burn for the riskiest encounter.

const defaultScenario = "~~unset~~"

var (
	scenario   string
	withTracks bool
	verbose    bool
)

func init() {
	// Read flags
	flag.StringVar(&scenario, "scenario", defaultScenario, "directory holding the scenario conf.toml")
	flag.BoolVar(&withTracks, "tracks", false, "include full trajectories in the report")
	flag.BoolVar(&verbose, "verbose", false, "really verbose (esp. for configuration)")
}

func main() {
	flag.Parse()
	logger := kitlog.NewLogfmtLogger(kitlog.NewSyncWriter(os.Stderr))
	logger = kitlog.With(logger, "app", "ogrun")

	if scenario == defaultScenario {
		logger.Log("level", "error", "err", "no scenario provided")
		os.Exit(1)
	}
	cfg, err := orbitalguard.LoadScenario(scenario)
	if err != nil {
		logger.Log("level", "error", "err", err)
		os.Exit(1)
	}
	if verbose {
		logger.Log("level", "info", "tle", cfg.TLEPath, "duration_min", cfg.DurationMin, "step_min", cfg.StepMin, "workers", cfg.Workers)
	}

	if cfg.MetricsListen != "" {
		go func() {
			http.Handle("/metrics", orbitalguard.MetricsHandler())
			if err := http.ListenAndServe(cfg.MetricsListen, nil); err != nil {
				logger.Log("level", "error", "subsys", "metrics", "err", err)
			}
		}()
	}

	f, err := os.Open(cfg.TLEPath)
	if err != nil {
		logger.Log("level", "error", "err", err)
		os.Exit(1)
	}
	els, err := orbitalguard.ParseTLESet(f, logger)
	f.Close()
	if err != nil {
		logger.Log("level", "error", "err", err)
		os.Exit(1)
	}
	logger.Log("level", "info", "catalog", len(els))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	bp := orbitalguard.NewBatchPropagator(cfg.Workers, cfg.DurationMin, cfg.StepMin, logger)
	tracks, ok, failed := bp.GenerateTracks(ctx, els)
	logger.Log("level", "info", "tracks", ok, "failed", failed)

	encs, failedPairs := cfg.Screen.ScreenAll(tracks, cfg.MaxDistanceKm)
	if failedPairs > 0 {
		logger.Log("level", "warning", "subsys", "screen", "failed_pairs", failedPairs)
	}
	orbitalguard.SortByRisk(encs)
	n := orbitalguard.FilterByProbability(encs, cfg.MinProb)
	encs = encs[:n]
	logger.Log("level", "info", "encounters", n)

	var mans []orbitalguard.Maneuver
	if len(encs) > 0 {
		top := encs[0]
		el, found := findElements(els, top.A)
		if !found {
			logger.Log("level", "error", "err", fmt.Sprintf("no elements for %s", top.A))
			os.Exit(1)
		}
		man, err := orbitalguard.PlanAvoidance(el, top.TCA, cfg.TargetSepKm, cfg.BudgetMps)
		if err != nil {
			logger.Log("level", "warning", "subsys", "maneuver", "err", err)
		} else {
			logger.Log("level", "info", "maneuver", man.String())
			mans = append(mans, man)
		}
	}

	out := os.Stdout
	if cfg.OutputPath != "" {
		out, err = os.Create(cfg.OutputPath)
		if err != nil {
			logger.Log("level", "error", "err", err)
			os.Exit(1)
		}
		defer out.Close()
	}
	if err := orbitalguard.WriteReport(out, tracks, encs, mans, withTracks); err != nil {
		logger.Log("level", "error", "err", err)
		os.Exit(1)
	}
}

func findElements(els []orbitalguard.Elements, name string) (orbitalguard.Elements, bool) {
	for _, el := range els {
		if el.Name == name {
			return el, true
		}
	}
	return orbitalguard.Elements{}, false
}
