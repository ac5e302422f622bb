package sand

import "testing"

func TestSettlePileStopsAndConserves(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Width = 32
	cfg.Height = 24
	cfg.Seed = 7

	scenario, err := LookupScenario("pile")
	if err != nil {
		t.Fatal(err)
	}
	res := Settle(cfg, scenario, 500)
	if !res.Settled {
		t.Fatalf("pile did not settle within budget: %+v", res)
	}
	if res.Ticks <= 0 || res.PeakMoved == 0 {
		t.Fatalf("pile should move before settling: %+v", res)
	}
	if !res.Conserved() {
		t.Fatalf("pile lost cells: initial %v final %v", res.Initial, res.Final)
	}
	if res.Initial[KindSand] == 0 {
		t.Fatal("pile scenario painted no sand")
	}
}

func TestSettleReservoirConservesWater(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Width = 20
	cfg.Height = 16
	cfg.WaterFlow = 3

	scenario, err := LookupScenario("reservoir")
	if err != nil {
		t.Fatal(err)
	}
	res := Settle(cfg, scenario, 200)
	if res.Initial[KindWater] == 0 {
		t.Fatal("reservoir scenario painted no water")
	}
	if !res.Conserved() {
		t.Fatalf("reservoir changed counts: initial %v final %v", res.Initial, res.Final)
	}
}

func TestLookupScenarioUnknown(t *testing.T) {
	if _, err := LookupScenario("volcano"); err == nil {
		t.Fatal("expected error for unknown scenario")
	}
	names := ScenarioNames()
	if len(names) != 3 || names[0] != "pile" {
		t.Fatalf("unexpected scenario names %v", names)
	}
}

func TestSettleEmptyGridSettlesImmediately(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Width, cfg.Height = 8, 8
	res := Settle(cfg, nil, 50)
	if !res.Settled || res.Ticks != 1 {
		t.Fatalf("empty grid result %+v, want settled on tick 1", res)
	}
}
