package config

import (
	"os"
	"path/filepath"
	"testing"

	"realty_feasibility/pkg/core/feasibility"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	t.Setenv("FEASIBILITY_ADDR", "")
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Server.Addr != ":8080" {
		t.Errorf("expected default addr, got %q", cfg.Server.Addr)
	}
	if cfg.Options().Solver != feasibility.DefaultSolverConfig() {
		t.Errorf("expected default solver, got %+v", cfg.Options().Solver)
	}
}

func TestLoad_FileAndEnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "feasibility.yaml")
	body := `
engine:
  cash_flow_policy: spread_construction
  solver:
    initial_guess: 0.15
    tolerance: 0.0001
    max_iterations: 50
    bracket_low: -0.5
    bracket_high: 5
server:
  addr: ":9000"
store:
  dir: /tmp/reports
`
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("FEASIBILITY_ADDR", ":7000")
	t.Setenv("DATABASE_URL", "postgres://localhost/feasibility")

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}

	opts := cfg.Options()
	if opts.Policy != feasibility.PolicySpreadConstruction {
		t.Errorf("expected spread policy, got %q", opts.Policy)
	}
	if opts.Solver.MaxIterations != 50 || opts.Solver.InitialGuess != 0.15 || opts.Solver.BracketHigh != 5 {
		t.Errorf("solver section not decoded: %+v", opts.Solver)
	}
	if cfg.Server.Addr != ":7000" {
		t.Errorf("env should override file addr, got %q", cfg.Server.Addr)
	}
	if cfg.Store.DatabaseURL != "postgres://localhost/feasibility" || cfg.Store.Dir != "/tmp/reports" {
		t.Errorf("unexpected store config: %+v", cfg.Store)
	}
	if cfg.Byelaws.ModelID == "" {
		t.Error("unset sections should keep defaults")
	}
}

func TestLoad_MalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("engine: [unclosed"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected a parse error")
	}
}
