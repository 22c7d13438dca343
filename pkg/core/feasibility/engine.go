// Package feasibility computes the financial feasibility of a single
// real-estate development project: areas, revenue, cost, profit, margin, a
// yearly cash flow series and its internal rate of return.
//
// Every function is pure. Run evaluates the chain in dependency order and
// keeps partial results when the margin or the IRR is undefined.
package feasibility

// Options are the modelling assumptions of a run.
type Options struct {
	Policy CashFlowPolicy `json:"cash_flow_policy" yaml:"cash_flow_policy"`
	Solver SolverConfig   `json:"solver" yaml:"solver"`
}

// DefaultOptions: front-loaded costs, default solver settings.
func DefaultOptions() Options {
	return Options{
		Policy: PolicyFrontLoaded,
		Solver: DefaultSolverConfig(),
	}
}

// FinancialSummary is the headline output. Nil percentages are undefined
// and should be reported as N/A.
type FinancialSummary struct {
	TotalRevenue    float64  `json:"total_revenue"`
	TotalCost       float64  `json:"total_cost"`
	TotalProfit     float64  `json:"total_profit"`
	ProfitMarginPct *float64 `json:"profit_margin_pct"`
	IRRPct          *float64 `json:"irr_pct"`
}

// Report bundles everything a run derives.
type Report struct {
	Inputs    Params           `json:"inputs"`
	Options   Options          `json:"options"`
	Areas     DerivedAreas     `json:"areas"`
	Costs     CostBreakdown    `json:"costs"`
	Summary   FinancialSummary `json:"summary"`
	CashFlows CashFlowSeries   `json:"cash_flows"`
	IRR       *IRRResult       `json:"irr,omitempty"`
	Notes     []string         `json:"notes,omitempty"`

	// MarginErr and IRRErr carry the typed failures behind a nil percentage.
	MarginErr error `json:"-"`
	IRRErr    error `json:"-"`
}

// Run evaluates the project. The returned error is reserved for failures
// that leave no usable result (an unvalidated record, an unknown cash flow
// policy); undefined margin or IRR are recorded on the report instead.
func Run(in ProjectInputs, opts Options) (*Report, error) {
	if !in.Valid() {
		return nil, invalidf("project inputs were not constructed with NewProjectInputs")
	}

	areas, err := DeriveAreas(in.LandAreaSqMtr(), in.PermissibleFSI(), in.EfficiencyRatio())
	if err != nil {
		return nil, err
	}

	revenue := CalculateRevenue(areas, in.SalePricePerSqFt())
	costs := AggregateCosts(in, areas, revenue)
	if err := checkAmounts(revenue, costs); err != nil {
		return nil, err
	}

	rep := &Report{
		Inputs:  in.Params(),
		Options: opts,
		Areas:   areas,
		Costs:   costs,
		Summary: FinancialSummary{
			TotalRevenue: revenue,
			TotalCost:    costs.TotalCost,
		},
	}

	prof, err := CalculateProfitability(revenue, costs.TotalCost)
	rep.Summary.TotalProfit = prof.TotalProfit
	if err != nil {
		rep.MarginErr = err
		rep.Notes = append(rep.Notes, err.Error())
	} else {
		margin := prof.MarginPct
		rep.Summary.ProfitMarginPct = &margin
	}

	flows, err := BuildCashFlows(in.ProjectDurationYears(), costs, revenue, opts.Policy)
	if err != nil {
		return nil, err
	}
	rep.CashFlows = flows

	irr, err := SolveIRR(flows.Flows(), opts.Solver)
	if err != nil {
		rep.IRRErr = err
		rep.Notes = append(rep.Notes, err.Error())
	} else {
		pct := irr.Pct()
		rep.IRR = &irr
		rep.Summary.IRRPct = &pct
	}

	return rep, nil
}

func checkAmounts(revenue float64, costs CostBreakdown) error {
	amounts := []struct {
		name string
		v    float64
	}{
		{"total_revenue", revenue},
		{"land_cost", costs.LandCost},
		{"construction_cost", costs.ConstructionCost},
		{"professional_fees", costs.ProfessionalFees},
		{"marketing_contingency", costs.MarketingContingency},
		{"total_cost", costs.TotalCost},
	}
	for _, a := range amounts {
		if err := checkFinite(a.name, a.v); err != nil {
			return err
		}
	}
	return nil
}

// Evaluate validates p and runs it with opts in one call.
func Evaluate(p Params, opts Options) (*Report, error) {
	in, err := NewProjectInputs(p)
	if err != nil {
		return nil, err
	}
	return Run(in, opts)
}
