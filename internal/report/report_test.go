package report

import (
	"strings"
	"testing"

	"github.com/san-kum/thermosim/internal/config"
	"github.com/san-kum/thermosim/internal/sim"
)

func runResult(t *testing.T) *sim.Result {
	t.Helper()
	cfg := config.Default()
	cfg.Scenario.Steps = 30

	ctrl, err := cfg.NewController()
	if err != nil {
		t.Fatalf("controller: %v", err)
	}
	res, err := sim.NewDriver().Run(ctrl, nil, cfg.RunConfig())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	return res
}

func TestSummary(t *testing.T) {
	res := runResult(t)
	res.Metrics["control_effort"] = 4.2

	var b strings.Builder
	if err := Summary(&b, res); err != nil {
		t.Fatalf("summary failed: %v", err)
	}

	out := b.String()
	for _, want := range []string{"samples", "30", "final temp", "control_effort"} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q:\n%s", want, out)
		}
	}
}

func TestPlotHandlesOffByOne(t *testing.T) {
	res := runResult(t)
	if len(res.Temps) != len(res.Controls)+1 {
		t.Fatal("unexpected sequence lengths")
	}

	var b strings.Builder
	Plot(&b, res)
	if !strings.Contains(b.String(), "control output") {
		t.Error("plot missing control section")
	}
}

func TestCompare(t *testing.T) {
	a, b := runResult(t), runResult(t)

	var out strings.Builder
	if err := Compare(&out, "p", a, "pi", b); err != nil {
		t.Fatalf("compare failed: %v", err)
	}
	if !strings.Contains(out.String(), "== pi ==") {
		t.Error("compare missing second summary")
	}
}
