package feasibility

import (
	"errors"
	"math"
	"testing"
)

func TestNewProjectInputs_Defaults(t *testing.T) {
	in, err := NewProjectInputs(DefaultParams())
	if err != nil {
		t.Fatalf("default params rejected: %v", err)
	}
	if !in.Valid() {
		t.Error("expected a valid record")
	}
	if in.ProjectDurationYears() != 3 {
		t.Errorf("expected duration 3, got %d", in.ProjectDurationYears())
	}
	if in.Params() != DefaultParams() {
		t.Error("Params() should round-trip the validated values")
	}
}

func TestNewProjectInputs_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(p *Params)
	}{
		{"zero land area", func(p *Params) { p.LandAreaSqMtr = 0 }},
		{"negative land cost", func(p *Params) { p.LandCostPerSqMtr = -1 }},
		{"zero construction cost", func(p *Params) { p.ConstructionCostPerSqFt = 0 }},
		{"NaN fsi", func(p *Params) { p.PermissibleFSI = math.NaN() }},
		{"infinite sale price", func(p *Params) { p.SalePricePerSqFt = math.Inf(1) }},
		{"efficiency above one", func(p *Params) { p.EfficiencyRatio = 1.01 }},
		{"zero efficiency", func(p *Params) { p.EfficiencyRatio = 0 }},
		{"fees above one", func(p *Params) { p.ProfessionalFeesPct = 1.5 }},
		{"negative marketing", func(p *Params) { p.MarketingContingencyPct = -0.01 }},
		{"zero duration", func(p *Params) { p.ProjectDurationYears = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultParams()
			tt.mutate(&p)
			in, err := NewProjectInputs(p)
			if !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
			if in.Valid() {
				t.Error("rejected record must not be valid")
			}
			var fe *Error
			if !errors.As(err, &fe) || fe.Msg == "" {
				t.Errorf("expected a *Error with a message, got %#v", err)
			}
		})
	}
}

func TestNewProjectInputs_BoundaryFractions(t *testing.T) {
	p := DefaultParams()
	p.ProfessionalFeesPct = 0
	p.MarketingContingencyPct = 1
	p.EfficiencyRatio = 1
	if _, err := NewProjectInputs(p); err != nil {
		t.Errorf("closed-interval boundaries should be accepted: %v", err)
	}
}
