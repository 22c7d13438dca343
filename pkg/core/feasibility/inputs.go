package feasibility

import (
	"math"
)

// Params is the raw, unvalidated project record as it arrives from a loader,
// a request body or hardcoded literals. It only becomes usable by the engine
// once NewProjectInputs accepts it.
type Params struct {
	LandAreaSqMtr           float64 `json:"land_area_sq_mtr" yaml:"land_area_sq_mtr"`
	LandCostPerSqMtr        float64 `json:"land_cost_per_sq_mtr" yaml:"land_cost_per_sq_mtr"`
	ConstructionCostPerSqFt float64 `json:"construction_cost_per_sq_ft" yaml:"construction_cost_per_sq_ft"`
	ProfessionalFeesPct     float64 `json:"professional_fees_pct" yaml:"professional_fees_pct"`         // 0.05 = 5%
	MarketingContingencyPct float64 `json:"marketing_contingency_pct" yaml:"marketing_contingency_pct"` // share of revenue
	PermissibleFSI          float64 `json:"permissible_fsi" yaml:"permissible_fsi"`
	EfficiencyRatio         float64 `json:"efficiency_ratio" yaml:"efficiency_ratio"` // saleable / built-up
	SalePricePerSqFt        float64 `json:"sale_price_per_sq_ft" yaml:"sale_price_per_sq_ft"`
	ProjectDurationYears    int     `json:"project_duration_years" yaml:"project_duration_years"`
}

// DefaultParams returns the reference scenario: a 1000 sq m plot at FSI 2.0
// sold over a three year build.
func DefaultParams() Params {
	return Params{
		LandAreaSqMtr:           1000.0,
		LandCostPerSqMtr:        150000.0,
		ConstructionCostPerSqFt: 4000.0,
		ProfessionalFeesPct:     0.05,
		MarketingContingencyPct: 0.08,
		PermissibleFSI:          2.0,
		EfficiencyRatio:         0.85,
		SalePricePerSqFt:        25000.0,
		ProjectDurationYears:    3,
	}
}

// ProjectInputs is a validated, immutable project record. The zero value is
// not valid; obtain one from NewProjectInputs.
type ProjectInputs struct {
	p     Params
	valid bool
}

// NewProjectInputs validates p and returns the immutable record, or an
// ErrInvalidInput error naming the first offending field.
func NewProjectInputs(p Params) (ProjectInputs, error) {
	if err := p.Validate(); err != nil {
		return ProjectInputs{}, err
	}
	return ProjectInputs{p: p, valid: true}, nil
}

// Validate checks every field range without constructing a record.
func (p Params) Validate() error {
	positive := []struct {
		name string
		v    float64
	}{
		{"land_area_sq_mtr", p.LandAreaSqMtr},
		{"land_cost_per_sq_mtr", p.LandCostPerSqMtr},
		{"construction_cost_per_sq_ft", p.ConstructionCostPerSqFt},
		{"permissible_fsi", p.PermissibleFSI},
		{"efficiency_ratio", p.EfficiencyRatio},
		{"sale_price_per_sq_ft", p.SalePricePerSqFt},
	}
	for _, f := range positive {
		if err := checkPositive(f.name, f.v); err != nil {
			return err
		}
	}
	if p.EfficiencyRatio > 1 {
		return invalidf("efficiency_ratio must be <= 1, got %v", p.EfficiencyRatio)
	}

	if err := checkFraction("professional_fees_pct", p.ProfessionalFeesPct); err != nil {
		return err
	}
	if err := checkFraction("marketing_contingency_pct", p.MarketingContingencyPct); err != nil {
		return err
	}

	if p.ProjectDurationYears < 1 {
		return invalidf("project_duration_years must be a positive integer, got %d", p.ProjectDurationYears)
	}
	return nil
}

func checkPositive(name string, v float64) error {
	// !(v > 0) also rejects NaN
	if !(v > 0) || math.IsInf(v, 0) {
		return invalidf("%s must be a positive finite number, got %v", name, v)
	}
	return nil
}

// checkFinite rejects derived amounts that overflowed float64.
func checkFinite(name string, v float64) error {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return invalidf("%s overflows: inputs too large", name)
	}
	return nil
}

func checkFraction(name string, v float64) error {
	if !(v >= 0 && v <= 1) {
		return invalidf("%s must be within [0, 1], got %v", name, v)
	}
	return nil
}

// Params returns a copy of the validated values.
func (in ProjectInputs) Params() Params { return in.p }

// Valid reports whether the record came from NewProjectInputs.
func (in ProjectInputs) Valid() bool { return in.valid }

func (in ProjectInputs) LandAreaSqMtr() float64           { return in.p.LandAreaSqMtr }
func (in ProjectInputs) LandCostPerSqMtr() float64        { return in.p.LandCostPerSqMtr }
func (in ProjectInputs) ConstructionCostPerSqFt() float64 { return in.p.ConstructionCostPerSqFt }
func (in ProjectInputs) ProfessionalFeesPct() float64     { return in.p.ProfessionalFeesPct }
func (in ProjectInputs) MarketingContingencyPct() float64 { return in.p.MarketingContingencyPct }
func (in ProjectInputs) PermissibleFSI() float64          { return in.p.PermissibleFSI }
func (in ProjectInputs) EfficiencyRatio() float64         { return in.p.EfficiencyRatio }
func (in ProjectInputs) SalePricePerSqFt() float64        { return in.p.SalePricePerSqFt }
func (in ProjectInputs) ProjectDurationYears() int        { return in.p.ProjectDurationYears }
