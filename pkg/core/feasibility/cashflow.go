package feasibility

// CashFlowPolicy decides when costs are incurred across the project timeline.
// Revenue is always realised at the final period.
type CashFlowPolicy string

const (
	// PolicyFrontLoaded books the entire cost at period 0.
	PolicyFrontLoaded CashFlowPolicy = "front_loaded"
	// PolicySpreadConstruction books land at period 0, spreads construction and
	// professional fees evenly over periods 0..N-1 and nets marketing &
	// contingency against the revenue at period N.
	PolicySpreadConstruction CashFlowPolicy = "spread_construction"
)

// CashFlow is the net cash movement of one period (year).
type CashFlow struct {
	Period      int     `json:"period"`
	NetCashFlow float64 `json:"net_cash_flow"`
}

// CashFlowSeries is ordered by period, starting at 0.
type CashFlowSeries []CashFlow

// Flows returns the bare amounts in period order.
func (s CashFlowSeries) Flows() []float64 {
	out := make([]float64, len(s))
	for i, cf := range s {
		out[i] = cf.NetCashFlow
	}
	return out
}

// Sum adds the flows in period order.
func (s CashFlowSeries) Sum() float64 {
	total := 0.0
	for _, cf := range s {
		total += cf.NetCashFlow
	}
	return total
}

// BuildCashFlows produces durationYears+1 periods of net cash flow.
// An empty policy means PolicyFrontLoaded.
func BuildCashFlows(durationYears int, costs CostBreakdown, totalRevenue float64, policy CashFlowPolicy) (CashFlowSeries, error) {
	if durationYears < 1 {
		return nil, invalidf("project_duration_years must be a positive integer, got %d", durationYears)
	}

	series := make(CashFlowSeries, durationYears+1)
	for i := range series {
		series[i].Period = i
	}

	switch policy {
	case "", PolicyFrontLoaded:
		series[0].NetCashFlow = -costs.TotalCost
		series[durationYears].NetCashFlow = totalRevenue

	case PolicySpreadConstruction:
		share := (costs.ConstructionCost + costs.ProfessionalFees) / float64(durationYears)
		series[0].NetCashFlow = -costs.LandCost
		for i := 0; i < durationYears; i++ {
			series[i].NetCashFlow -= share
		}
		// Last period closes the books so the series still sums to profit.
		earlier := series[:durationYears].Sum()
		series[durationYears].NetCashFlow = (totalRevenue - costs.TotalCost) - earlier

	default:
		return nil, invalidf("unknown cash flow policy %q", policy)
	}

	return series, nil
}
